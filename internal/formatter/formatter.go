// =============================================================================
// Record Translator - Formatter Module
// =============================================================================
//
// This module serializes canonical records. Every formatter renders the same
// six columns in the same order and agrees on two presentation rules:
//   - Birthdays are written as DD/MM/YYYY
//   - Credit limits are written with exactly two fractional digits
//
// SUPPORTED FORMATS:
//   json  - Indented array of objects
//   html  - Standalone document with one table
//   xml   - <records><record n="1">...</record></records>
//   xlsx  - One worksheet with a bold header row
//
// =============================================================================

package formatter

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/record-translator/internal/config"
	"github.com/ginjaninja78/record-translator/internal/types"
)

// BirthdayLayout is the time layout used for birthdays in every output.
const BirthdayLayout = "02/01/2006"

// columnHeaders are the display names of the record fields, in canonical
// order.
var columnHeaders = []string{"Name", "Address", "Postcode", "Phone", "Credit Limit", "Birthday"}

// =============================================================================
// OUTPUT FORMAT
// =============================================================================

// OutputFormat selects a serializer.
type OutputFormat string

const (
	JSON OutputFormat = "json"
	HTML OutputFormat = "html"
	XML  OutputFormat = "xml"
	XLSX OutputFormat = "xlsx"
)

// ParseOutputFormat maps a user supplied tag (case-insensitive) to an
// OutputFormat.
func ParseOutputFormat(tag string) (OutputFormat, error) {
	switch format := OutputFormat(strings.ToLower(strings.TrimSpace(tag))); format {
	case JSON, HTML, XML, XLSX:
		return format, nil
	default:
		return "", fmt.Errorf("%w: output format %q (must be 'json', 'html', 'xml' or 'xlsx')", types.ErrUnknownFormat, tag)
	}
}

// Extension returns the file extension for the format, including the dot.
func (f OutputFormat) Extension() string {
	return "." + string(f)
}

// IsBinary reports whether the format produces non-text output.
func (f OutputFormat) IsBinary() bool {
	return f == XLSX
}

// =============================================================================
// FORMAT DISPATCH
// =============================================================================

// Format serializes records in the requested format.
//
// PARAMETERS:
//   - records: The records to serialize, in output order.
//   - format: The output format.
//   - settings: Serializer options (titles, element names, indentation).
//
// RETURNS:
//   - The serialized document.
//   - An error if the format is unknown or serialization fails.
func Format(records []types.CanonicalRecord, format OutputFormat, settings config.OutputSettings) ([]byte, error) {
	switch format {
	case JSON:
		return FormatJSON(records, settings.Indent)
	case HTML:
		return FormatHTML(records, settings.HTMLTitle)
	case XML:
		return FormatXML(records, settings)
	case XLSX:
		return FormatXLSX(records, settings.SheetName)
	default:
		return nil, fmt.Errorf("%w: output format %q", types.ErrUnknownFormat, format)
	}
}

// formatAmount renders a credit limit with two fractional digits.
func formatAmount(record types.CanonicalRecord) string {
	return record.CreditLimit.StringFixed(2)
}

// formatBirthday renders a birthday as DD/MM/YYYY.
func formatBirthday(record types.CanonicalRecord) string {
	return record.Birthday.Format(BirthdayLayout)
}
