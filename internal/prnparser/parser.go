// =============================================================================
// Record Translator - Fixed-Width Parser Module
// =============================================================================
//
// This module parses fixed-column-width (.prn) exports into canonical
// records. Every column has a fixed width; offsets are cumulative:
//
//   Column        Offset  Width
//   name               0     16
//   address           16     22
//   postcode          38      9
//   phone             47     14
//   creditLimit       61     13   (hundredths, no decimal point)
//   birthday          74      8   (YYYYMMDD)
//
// Offsets count characters, not bytes, so "Bürkestraße" occupies eleven
// columns.
//
// ROW POLICY:
//   The first line is a header and is skipped, as are blank lines. A row
//   whose birthday is not a valid date is rejected and the rest of the input
//   continues, the same as in delimited input.
//
// =============================================================================

package prnparser

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/record-translator/internal/config"
	"github.com/ginjaninja78/record-translator/internal/normalizer"
	"github.com/ginjaninja78/record-translator/internal/types"
)

// =============================================================================
// LAYOUT
// =============================================================================

// Column is one positioned column of the layout.
type Column struct {
	Field string
	Start int
	Width int
}

// Layout is an ordered set of columns with cumulative offsets.
type Layout struct {
	Columns []Column
}

// NewLayout computes offsets from a list of column specs.
func NewLayout(specs []config.ColumnSpec) Layout {
	layout := Layout{Columns: make([]Column, 0, len(specs))}
	offset := 0
	for _, spec := range specs {
		layout.Columns = append(layout.Columns, Column{
			Field: spec.Field,
			Start: offset,
			Width: spec.Width,
		})
		offset += spec.Width
	}
	return layout
}

// DefaultLayout returns the standard layout.
func DefaultLayout() Layout {
	return NewLayout(config.DefaultColumns())
}

// Slice extracts every column of a line, trimmed, keyed by field.
func (l Layout) Slice(line string) map[string]string {
	runes := []rune(line)
	fields := make(map[string]string, len(l.Columns))
	for _, column := range l.Columns {
		fields[column.Field] = sliceColumn(runes, column.Start, column.Width)
	}
	return fields
}

func sliceColumn(runes []rune, start, width int) string {
	if start >= len(runes) {
		return ""
	}
	end := start + width
	if end > len(runes) {
		end = len(runes)
	}
	return strings.TrimSpace(string(runes[start:end]))
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads fixed-width text and returns one outcome per data line.
//
// PARAMETERS:
//   - input: The complete input text; "\n" or "\r\n" line endings.
//   - layout: The column layout.
//
// RETURNS:
//   - The outcomes in input order. Input with at most one line yields none.
//   - An error is currently never returned; it is kept so both parsers
//     share a signature.
func Parse(input string, layout Layout) ([]types.Outcome, error) {
	lines := strings.Split(input, "\n")
	if len(lines) <= 1 {
		return []types.Outcome{}, nil
	}

	outcomes := make([]types.Outcome, 0, len(lines)-1)
	for i, line := range lines[1:] {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		// Header is line 1.
		outcomes = append(outcomes, parseLine(i+2, layout.Slice(line)))
	}

	return outcomes, nil
}

// parseLine converts the sliced columns of one line.
func parseLine(line int, fields map[string]string) types.Outcome {
	birthday, err := normalizer.NormalizeDate(fields[types.FieldBirthday], normalizer.YearMonthDayCompact)
	if err != nil {
		return types.Rejected(line, fmt.Sprintf("invalid birthday %q", fields[types.FieldBirthday]), err)
	}

	return types.Accepted(line, types.CanonicalRecord{
		Name:        fields[types.FieldName],
		Address:     fields[types.FieldAddress],
		Postcode:    fields[types.FieldPostcode],
		Phone:       fields[types.FieldPhone],
		CreditLimit: normalizer.NormalizeAmount(fields[types.FieldCreditLimit], true),
		Birthday:    birthday,
	})
}
