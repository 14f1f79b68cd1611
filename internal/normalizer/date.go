// =============================================================================
// Record Translator - Date Normalizer
// =============================================================================
//
// This module converts birthday text into an exact calendar date. Unlike
// amounts, dates never degrade to a default: text that is not a real date
// is an error.
//
// SUPPORTED FORMATS:
//   - DayMonthYearSlash   : "DD/MM/YYYY" (delimited exports, "1/1/1990" ok)
//   - YearMonthDayCompact : "YYYYMMDD"   (fixed-width exports)
//
// REJECTED:
//   - Empty text
//   - Any other separator ("01-01-1990") or ISO spelling ("1990-01-01")
//   - Two-digit years (no century inference)
//   - Day outside 1-31, month outside 1-12
//   - Dates that do not exist (31 April, 29 February 2019)
//
// =============================================================================

package normalizer

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ginjaninja78/record-translator/internal/types"
)

// ErrInvalidDate is wrapped by every error NormalizeDate returns.
var ErrInvalidDate = errors.New("invalid date")

// DateFormat identifies the textual layout of a date field.
type DateFormat int

const (
	// DayMonthYearSlash is "DD/MM/YYYY".
	DayMonthYearSlash DateFormat = iota

	// YearMonthDayCompact is "YYYYMMDD".
	YearMonthDayCompact
)

// String returns the layout the format stands for.
func (f DateFormat) String() string {
	switch f {
	case DayMonthYearSlash:
		return "DD/MM/YYYY"
	case YearMonthDayCompact:
		return "YYYYMMDD"
	default:
		return fmt.Sprintf("DateFormat(%d)", int(f))
	}
}

var (
	digits     = regexp.MustCompile(`^[0-9]+$`)
	yearDigits = regexp.MustCompile(`^[0-9]{4}$`)
	compact    = regexp.MustCompile(`^[0-9]{8}$`)
)

// NormalizeDate parses text in the given format and validates it against the
// real calendar.
//
// VALIDATION:
//  1. Split the components positionally for the format
//  2. Range check day (1-31) and month (1-12) independently
//  3. Build the date and re-derive year/month/day from it; a mismatch means
//     the day does not exist in that month (time.Date normalizes overflow)
func NormalizeDate(text string, format DateFormat) (types.Date, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return types.Date{}, fmt.Errorf("%w: empty date", ErrInvalidDate)
	}

	var year, month, day int
	var err error

	switch format {
	case DayMonthYearSlash:
		day, month, year, err = splitSlashDate(text)
	case YearMonthDayCompact:
		year, month, day, err = splitCompactDate(text)
	default:
		return types.Date{}, fmt.Errorf("%w: unsupported format %s", ErrInvalidDate, format)
	}
	if err != nil {
		return types.Date{}, err
	}

	if day < 1 || day > 31 {
		return types.Date{}, fmt.Errorf("%w: day %d in %q", ErrInvalidDate, day, text)
	}
	if month < 1 || month > 12 {
		return types.Date{}, fmt.Errorf("%w: month %d in %q", ErrInvalidDate, month, text)
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return types.Date{}, fmt.Errorf("%w: %q does not exist (parsed as %04d-%02d-%02d)", ErrInvalidDate, text, year, month, day)
	}

	return types.NewDate(year, time.Month(month), day), nil
}

// splitSlashDate reads "DD/MM/YYYY". Day and month may have one or more
// digits, the year must have exactly four.
func splitSlashDate(text string) (day, month, year int, err error) {
	parts := strings.Split(text, "/")
	if len(parts) != 3 {
		return 0, 0, 0, formatError(text, DayMonthYearSlash)
	}

	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
		if !digits.MatchString(parts[i]) {
			return 0, 0, 0, formatError(text, DayMonthYearSlash)
		}
	}
	if !yearDigits.MatchString(parts[2]) {
		return 0, 0, 0, formatError(text, DayMonthYearSlash)
	}

	if day, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, 0, formatError(text, DayMonthYearSlash)
	}
	if month, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, 0, formatError(text, DayMonthYearSlash)
	}
	year, _ = strconv.Atoi(parts[2])

	return day, month, year, nil
}

// splitCompactDate reads "YYYYMMDD".
func splitCompactDate(text string) (year, month, day int, err error) {
	if !compact.MatchString(text) {
		return 0, 0, 0, formatError(text, YearMonthDayCompact)
	}

	year, _ = strconv.Atoi(text[0:4])
	month, _ = strconv.Atoi(text[4:6])
	day, _ = strconv.Atoi(text[6:8])

	return year, month, day, nil
}

func formatError(text string, format DateFormat) error {
	return fmt.Errorf("%w: expected %s but got %q", ErrInvalidDate, format, text)
}
