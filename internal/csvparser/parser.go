// =============================================================================
// Record Translator - Delimited-Text Parser Module
// =============================================================================
//
// This module parses comma-delimited exports into canonical records. It
// handles:
//   - A header row naming the columns (order does not matter)
//   - Quoted fields containing delimiters, newlines and doubled quotes
//   - Extra, unrecognized columns (ignored)
//   - Rows shorter than the header (missing fields are empty)
//
// ROW POLICY:
//   A row becomes a record only when Name, Birthday and Credit Limit are all
//   present. The birthday is normalized first; if it is not a real date the
//   whole row is rejected. Rejections are returned as outcomes, never as
//   errors.
//
// FATAL ERRORS:
//   Syntax the tokenizer cannot recover from (an unterminated quoted field,
//   a bare quote in strict mode) fails the whole input.
//
// =============================================================================

package csvparser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ginjaninja78/record-translator/internal/config"
	"github.com/ginjaninja78/record-translator/internal/normalizer"
	"github.com/ginjaninja78/record-translator/internal/types"
)

// Recognized column headers.
const (
	HeaderName        = "Name"
	HeaderAddress     = "Address"
	HeaderPostcode    = "Postcode"
	HeaderPhone       = "Phone"
	HeaderCreditLimit = "Credit Limit"
	HeaderBirthday    = "Birthday"
)

// requiredHeaders must be non-empty for a row to be accepted.
var requiredHeaders = []string{HeaderName, HeaderBirthday, HeaderCreditLimit}

// byteOrderMark is stripped from the start of the input.
const byteOrderMark = "\ufeff"

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads delimited text and returns one outcome per data row.
//
// PARAMETERS:
//   - input: The complete input text.
//   - settings: Delimiter and quoting settings.
//
// RETURNS:
//   - The outcomes in input order. Empty and header-only input yield none.
//   - An error if the text cannot be tokenized.
func Parse(input string, settings config.CSVSettings) ([]types.Outcome, error) {
	input = strings.TrimPrefix(input, byteOrderMark)
	if strings.TrimSpace(input) == "" {
		return []types.Outcome{}, nil
	}

	reader := csv.NewReader(strings.NewReader(input))
	configureReader(reader, settings)

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []types.Outcome{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	headers := cleanHeaders(header)

	outcomes := make([]types.Outcome, 0)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}

		line, _ := reader.FieldPos(0)
		if isRowEmpty(row) {
			continue
		}

		outcomes = append(outcomes, parseRow(line, rowToMap(row, headers)))
	}

	return outcomes, nil
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings config.CSVSettings) {
	reader.Comma = settings.Comma()

	// Allow rows with fewer or more fields than the header.
	reader.FieldsPerRecord = -1

	reader.LazyQuotes = settings.LazyQuotes

	// Fields are trimmed per column; leading space inside quotes is kept
	// by the tokenizer.
	reader.TrimLeadingSpace = false
}

// cleanHeaders trims header names.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	for i, header := range headers {
		cleaned[i] = strings.TrimSpace(header)
	}
	return cleaned
}

// rowToMap converts a row to a map of header -> raw value. When a header
// repeats, the first column wins.
func rowToMap(row []string, headers []string) map[string]string {
	fields := make(map[string]string, len(headers))
	for colIndex, header := range headers {
		if _, exists := fields[header]; exists {
			continue
		}
		if colIndex < len(row) {
			fields[header] = row[colIndex]
		} else {
			fields[header] = ""
		}
	}
	return fields
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// =============================================================================
// ROW CONVERSION
// =============================================================================

// parseRow applies the row policy to one data row.
func parseRow(line int, fields map[string]string) types.Outcome {
	for _, header := range requiredHeaders {
		if field(fields, header) == "" {
			return types.Rejected(line, fmt.Sprintf("missing required field %q", header), nil)
		}
	}

	birthday, err := normalizer.NormalizeDate(field(fields, HeaderBirthday), normalizer.DayMonthYearSlash)
	if err != nil {
		return types.Rejected(line, "invalid birthday", err)
	}

	return types.Accepted(line, types.CanonicalRecord{
		Name:        field(fields, HeaderName),
		Address:     field(fields, HeaderAddress),
		Postcode:    field(fields, HeaderPostcode),
		Phone:       field(fields, HeaderPhone),
		CreditLimit: normalizer.NormalizeAmount(field(fields, HeaderCreditLimit), false),
		Birthday:    birthday,
	})
}

// field returns the trimmed value of a column, or "" when absent.
func field(fields map[string]string, header string) string {
	return strings.TrimSpace(fields[header])
}
