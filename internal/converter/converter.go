// =============================================================================
// Record Translator - Converter Module
// =============================================================================
//
// This module drives one translation from input text to serialized output.
//
// CONVERSION PIPELINE:
//   1. Select the parser for the input format
//   2. Parse the input into per-row outcomes
//   3. Log every rejected row and keep the accepted records
//   4. Serialize the records in the output format
//
// ERROR HANDLING:
//   Only input the tokenizer cannot read fails the run. Rejected rows are
//   reported in the result and logged at warn level.
//
// =============================================================================

package converter

import (
	"fmt"
	"time"

	"github.com/ginjaninja78/record-translator/internal/config"
	"github.com/ginjaninja78/record-translator/internal/csvparser"
	"github.com/ginjaninja78/record-translator/internal/formatter"
	"github.com/ginjaninja78/record-translator/internal/logger"
	"github.com/ginjaninja78/record-translator/internal/prnparser"
	"github.com/ginjaninja78/record-translator/internal/types"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of one translation.
type Result struct {
	// Output is the serialized document. It is nil if the run failed.
	Output []byte

	// Records are the accepted records, in input order.
	Records []types.CanonicalRecord

	// Rejections are the rejected rows, in input order.
	Rejections []*types.Rejection

	// Success indicates whether the run produced output.
	Success bool

	// Error contains the error if the run failed.
	Error error

	Stats ProcessingStats
}

// ProcessingStats contains statistics about the run.
type ProcessingStats struct {
	// RowsRead is the number of non-blank data rows.
	RowsRead int

	Accepted int
	Rejected int

	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter translates input text using one configuration.
type Converter struct {
	cfg    *config.Config
	layout prnparser.Layout
	logger logger.Logger
}

// New creates a Converter. A nil config uses the defaults; a nil logger
// discards diagnostics.
func New(cfg *config.Config, log logger.Logger) *Converter {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Converter{
		cfg:    cfg,
		layout: prnparser.NewLayout(cfg.FixedWidthSettings.Columns),
		logger: log,
	}
}

// =============================================================================
// PARSING
// =============================================================================

// Parse runs the parser selected by the input format.
//
// RETURNS:
//   - One outcome per data row, in input order.
//   - An error if the format is unknown or the input cannot be tokenized.
func (c *Converter) Parse(format types.InputFormat, input string) ([]types.Outcome, error) {
	switch format {
	case types.DelimitedText:
		return csvparser.Parse(input, c.cfg.CSVSettings)
	case types.FixedWidth:
		return prnparser.Parse(input, c.layout)
	default:
		return nil, fmt.Errorf("%w: input format %q", types.ErrUnknownFormat, format)
	}
}

// Records parses the input, logs every rejection and returns the accepted
// records together with the rejections.
func (c *Converter) Records(format types.InputFormat, input string) ([]types.CanonicalRecord, []*types.Rejection, error) {
	outcomes, err := c.Parse(format, input)
	if err != nil {
		return nil, nil, err
	}

	rejections := types.Rejections(outcomes)
	for _, rejection := range rejections {
		c.logger.Warn("Rejected row",
			"row", rejection.Row,
			"reason", rejection.Reason,
			"error", rejection.Err,
		)
	}

	return types.AcceptedRecords(outcomes), rejections, nil
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run translates input text from one format to another.
//
// PARAMETERS:
//   - input: The complete input text.
//   - in: The input format.
//   - out: The output format.
//
// RETURNS:
//   - A Result describing the run. Result.Error is set when the input cannot
//     be parsed or serialized.
func (c *Converter) Run(input string, in types.InputFormat, out formatter.OutputFormat) Result {
	startTime := time.Now()
	result := Result{}

	c.logger.Debug("Parsing input", "format", in, "bytes", len(input))

	records, rejections, err := c.Records(in, input)
	if err != nil {
		result.Error = fmt.Errorf("failed to parse %s input: %w", in, err)
		return result
	}

	result.Records = records
	result.Rejections = rejections
	result.Stats.Accepted = len(records)
	result.Stats.Rejected = len(rejections)
	result.Stats.RowsRead = len(records) + len(rejections)

	c.logger.Debug("Parsed input",
		"rows", result.Stats.RowsRead,
		"accepted", result.Stats.Accepted,
		"rejected", result.Stats.Rejected,
	)

	output, err := formatter.Format(records, out, c.cfg.OutputSettings)
	if err != nil {
		result.Error = fmt.Errorf("failed to format %s output: %w", out, err)
		return result
	}

	result.Output = output
	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)

	c.logger.Info("Translation complete",
		"output", out,
		"records", len(records),
		"duration", result.Stats.ProcessingTime,
	)

	return result
}
