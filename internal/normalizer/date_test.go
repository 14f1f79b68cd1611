package normalizer

import (
	"fmt"
	"testing"
	"time"

	"github.com/ginjaninja78/record-translator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	t.Run("Should read the slash format", func(t *testing.T) {
		got, err := NormalizeDate("01/01/1987", DayMonthYearSlash)
		require.NoError(t, err)
		assert.Equal(t, types.NewDate(1987, time.January, 1), got)
	})

	t.Run("Should read the compact format", func(t *testing.T) {
		got, err := NormalizeDate("19870101", YearMonthDayCompact)
		require.NoError(t, err)
		assert.Equal(t, types.NewDate(1987, time.January, 1), got)
	})

	t.Run("Should accept single digit day and month", func(t *testing.T) {
		for _, input := range []string{"1/1/1990", "01/1/1990", "1/01/1990", " 01/01/1990 "} {
			got, err := NormalizeDate(input, DayMonthYearSlash)
			require.NoError(t, err, input)
			assert.Equal(t, types.NewDate(1990, time.January, 1), got, input)
		}
	})

	t.Run("Should handle leap years", func(t *testing.T) {
		got, err := NormalizeDate("29/02/2020", DayMonthYearSlash)
		require.NoError(t, err)
		assert.Equal(t, types.NewDate(2020, time.February, 29), got)

		got, err = NormalizeDate("20200229", YearMonthDayCompact)
		require.NoError(t, err)
		assert.Equal(t, types.NewDate(2020, time.February, 29), got)

		got, err = NormalizeDate("29/02/2000", DayMonthYearSlash)
		require.NoError(t, err)
		assert.Equal(t, types.NewDate(2000, time.February, 29), got)
	})

	t.Run("Should reject 29 February outside leap years", func(t *testing.T) {
		for _, input := range []string{"29/02/2019", "29/02/1900"} {
			_, err := NormalizeDate(input, DayMonthYearSlash)
			assert.ErrorIs(t, err, ErrInvalidDate, input)
		}
		_, err := NormalizeDate("20190229", YearMonthDayCompact)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("Should reject days that do not exist in the month", func(t *testing.T) {
		for _, input := range []string{"31/04/2022", "31/02/2020", "31/06/2022", "31/09/2022", "31/11/2022"} {
			_, err := NormalizeDate(input, DayMonthYearSlash)
			assert.ErrorIs(t, err, ErrInvalidDate, input)
		}
	})

	t.Run("Should reject out of range components", func(t *testing.T) {
		for _, input := range []string{"00/01/2022", "32/01/2022", "01/00/2022", "01/13/2022"} {
			_, err := NormalizeDate(input, DayMonthYearSlash)
			assert.ErrorIs(t, err, ErrInvalidDate, input)
		}
		for _, input := range []string{"20220100", "20220132", "20220001", "20221301"} {
			_, err := NormalizeDate(input, YearMonthDayCompact)
			assert.ErrorIs(t, err, ErrInvalidDate, input)
		}
	})

	t.Run("Should reject empty text", func(t *testing.T) {
		_, err := NormalizeDate("", DayMonthYearSlash)
		assert.ErrorIs(t, err, ErrInvalidDate)
		_, err = NormalizeDate("  ", YearMonthDayCompact)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("Should reject other separators and spellings", func(t *testing.T) {
		for _, input := range []string{"2020-01-01", "01-01-2022", "01.01.2022", "01/2022", "Jan 1 1990", "01/01/87", "1/1/1/1990", "a1/01/1990"} {
			_, err := NormalizeDate(input, DayMonthYearSlash)
			assert.ErrorIs(t, err, ErrInvalidDate, input)
		}
		for _, input := range []string{"2020010", "202001011", "2020-01-01", "01/01/2020", "2020O101"} {
			_, err := NormalizeDate(input, YearMonthDayCompact)
			assert.ErrorIs(t, err, ErrInvalidDate, input)
		}
	})

	t.Run("Should reject unknown formats", func(t *testing.T) {
		_, err := NormalizeDate("01/01/2020", DateFormat(42))
		assert.ErrorIs(t, err, ErrInvalidDate)
	})
}

func TestNormalizeDateRoundTripsEveryValidDay(t *testing.T) {
	for _, year := range []int{1899, 1900, 1987, 2000, 2019, 2020, 2100} {
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		for d := start; d.Year() == year; d = d.AddDate(0, 0, 1) {
			want := types.NewDate(d.Year(), d.Month(), d.Day())

			slash := fmt.Sprintf("%02d/%02d/%04d", d.Day(), int(d.Month()), d.Year())
			got, err := NormalizeDate(slash, DayMonthYearSlash)
			require.NoError(t, err, slash)
			require.Equal(t, want, got, slash)

			compactText := d.Format("20060102")
			got, err = NormalizeDate(compactText, YearMonthDayCompact)
			require.NoError(t, err, compactText)
			require.Equal(t, want, got, compactText)
		}
	}
}
