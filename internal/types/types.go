// =============================================================================
// Record Translator - Shared Types
// =============================================================================
//
// This package contains the canonical record model shared by both input
// parsers, the converter and every output formatter. Keeping it here avoids
// import cycles between:
//   - normalizer
//   - csvparser / prnparser
//   - converter
//   - formatter
//
// =============================================================================

package types

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrUnknownFormat is returned when an input or output format tag is not
// recognized.
var ErrUnknownFormat = errors.New("unknown format")

// =============================================================================
// CANONICAL RECORD
// =============================================================================

// CanonicalRecord is one normalized row, independent of the input encoding.
// Records are built once by a parser and only read afterwards.
type CanonicalRecord struct {
	Name     string
	Address  string
	Postcode string
	Phone    string

	// CreditLimit is always rounded to two fractional digits.
	// Unparsable source text yields zero, never a missing value.
	CreditLimit decimal.Decimal

	// Birthday is a validated calendar date.
	Birthday Date
}

// Field keys of a CanonicalRecord, as used in layouts and serializers.
const (
	FieldName        = "name"
	FieldAddress     = "address"
	FieldPostcode    = "postcode"
	FieldPhone       = "phone"
	FieldCreditLimit = "creditLimit"
	FieldBirthday    = "birthday"
)

// CanonicalFields lists the record fields in their canonical order.
var CanonicalFields = []string{
	FieldName,
	FieldAddress,
	FieldPostcode,
	FieldPhone,
	FieldCreditLimit,
	FieldBirthday,
}

// =============================================================================
// CALENDAR DATE
// =============================================================================

// Date is a calendar date without time of day or location.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date. It does not validate the triple; use the
// normalizer for untrusted input.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// Time returns the date as midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Format renders the date with a time layout, e.g. "02/01/2006".
func (d Date) Format(layout string) string {
	return d.Time().Format(layout)
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// =============================================================================
// FORMAT TAGS
// =============================================================================

// InputFormat selects one of the two input parsers.
type InputFormat string

const (
	// DelimitedText is comma-delimited text with a header row.
	DelimitedText InputFormat = "csv"

	// FixedWidth is fixed-column-width text with a header line.
	FixedWidth InputFormat = "prn"
)

// ParseInputFormat maps a user supplied tag (case-insensitive) to an
// InputFormat.
func ParseInputFormat(tag string) (InputFormat, error) {
	switch InputFormat(strings.ToLower(strings.TrimSpace(tag))) {
	case DelimitedText:
		return DelimitedText, nil
	case FixedWidth:
		return FixedWidth, nil
	default:
		return "", fmt.Errorf("%w: input format %q (must be 'csv' or 'prn')", ErrUnknownFormat, tag)
	}
}

// =============================================================================
// ROW OUTCOMES
// =============================================================================

// Rejection explains why a row did not produce a record.
type Rejection struct {
	// Row is the 1-indexed line number of the row in the input.
	Row int

	// Reason is a short, human readable description.
	Reason string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (r *Rejection) Error() string {
	if r.Err != nil {
		return fmt.Sprintf("row %d: %s: %v", r.Row, r.Reason, r.Err)
	}
	return fmt.Sprintf("row %d: %s", r.Row, r.Reason)
}

// Unwrap returns the underlying error.
func (r *Rejection) Unwrap() error {
	return r.Err
}

// Outcome is the result of parsing one input row: either an accepted record
// or a rejection.
type Outcome struct {
	Row       int
	Record    CanonicalRecord
	Rejection *Rejection
}

// Accepted builds an outcome carrying a record.
func Accepted(row int, record CanonicalRecord) Outcome {
	return Outcome{Row: row, Record: record}
}

// Rejected builds an outcome carrying a rejection.
func Rejected(row int, reason string, err error) Outcome {
	return Outcome{
		Row:       row,
		Rejection: &Rejection{Row: row, Reason: reason, Err: err},
	}
}

// IsAccepted reports whether the outcome carries a record.
func (o Outcome) IsAccepted() bool {
	return o.Rejection == nil
}

// AcceptedRecords returns the records of all accepted outcomes, in order.
func AcceptedRecords(outcomes []Outcome) []CanonicalRecord {
	records := make([]CanonicalRecord, 0, len(outcomes))
	for _, outcome := range outcomes {
		if outcome.IsAccepted() {
			records = append(records, outcome.Record)
		}
	}
	return records
}

// Rejections returns the rejections of all rejected outcomes, in order.
func Rejections(outcomes []Outcome) []*Rejection {
	var rejections []*Rejection
	for _, outcome := range outcomes {
		if !outcome.IsAccepted() {
			rejections = append(rejections, outcome.Rejection)
		}
	}
	return rejections
}
