package csvparser

import (
	"testing"
	"time"

	"github.com/ginjaninja78/record-translator/internal/config"
	"github.com/ginjaninja78/record-translator/internal/normalizer"
	"github.com/ginjaninja78/record-translator/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "Name,Address,Postcode,Phone,Credit Limit,Birthday\n"

func parseRecords(t *testing.T, input string) []types.CanonicalRecord {
	t.Helper()
	outcomes, err := Parse(input, config.CSVSettings{})
	require.NoError(t, err)
	return types.AcceptedRecords(outcomes)
}

func TestParse(t *testing.T) {
	t.Run("Should parse a valid row", func(t *testing.T) {
		records := parseRecords(t, header+`"Johnson, John",Voorstraat 32,3122gg,020 3849381,10000,01/01/1987`)
		require.Len(t, records, 1)
		assert.Equal(t, "Johnson, John", records[0].Name)
		assert.Equal(t, "Voorstraat 32", records[0].Address)
		assert.Equal(t, "3122gg", records[0].Postcode)
		assert.Equal(t, "020 3849381", records[0].Phone)
		assert.Equal(t, "10000.00", records[0].CreditLimit.StringFixed(2))
		assert.Equal(t, types.NewDate(1987, time.January, 1), records[0].Birthday)
	})

	t.Run("Should keep input order across rows", func(t *testing.T) {
		records := parseRecords(t, header+
			`"Johnson, John",Voorstraat 32,3122gg,020 3849381,10000,01/01/1987`+"\n"+
			`"Gibson, Mal",Vredenburg 21,3209 DD,06-48958986,54.5,09/11/1978`+"\n")
		require.Len(t, records, 2)
		assert.Equal(t, "Johnson, John", records[0].Name)
		assert.Equal(t, "Gibson, Mal", records[1].Name)
		assert.True(t, decimal.RequireFromString("54.5").Equal(records[1].CreditLimit))
		assert.Equal(t, types.NewDate(1978, time.November, 9), records[1].Birthday)
	})

	t.Run("Should return nothing for empty or header-only input", func(t *testing.T) {
		assert.Empty(t, parseRecords(t, ""))
		assert.Empty(t, parseRecords(t, "  \n\t"))
		assert.Empty(t, parseRecords(t, "Name,Address,Postcode,Phone,Credit Limit,Birthday"))
		assert.Empty(t, parseRecords(t, header))
	})

	t.Run("Should unescape quoted fields", func(t *testing.T) {
		records := parseRecords(t, header+
			`"Johnson, ""Johnny""","Voorstraat, 32",3122gg,020 3849381,10000,01/01/1987`+"\n"+
			`"Company ""The Best"", Inc.","First Floor, ""Big Building""",12345,123-456-7890,50000,15/06/1990`)
		require.Len(t, records, 2)
		assert.Equal(t, `Johnson, "Johnny"`, records[0].Name)
		assert.Equal(t, "Voorstraat, 32", records[0].Address)
		assert.Equal(t, `Company "The Best", Inc.`, records[1].Name)
		assert.Equal(t, `First Floor, "Big Building"`, records[1].Address)
	})

	t.Run("Should keep newlines inside quoted fields", func(t *testing.T) {
		records := parseRecords(t, header+"\"Smith, Ann\",\"Line 1\nLine 2\",1234,555,10,02/03/1990")
		require.Len(t, records, 1)
		assert.Equal(t, "Line 1\nLine 2", records[0].Address)
	})

	t.Run("Should preserve non-ASCII text", func(t *testing.T) {
		records := parseRecords(t, header+
			`"Smith, John",Bürkestraße 32,87823,+44 728 889838,9898.3,20/09/1999`+"\n"+
			`"山田, 太郎","東京都新宿区1-2-3",123-4567,03-1234-5678,50000,10/12/1985`)
		require.Len(t, records, 2)
		assert.Equal(t, "Bürkestraße 32", records[0].Address)
		assert.Equal(t, "山田, 太郎", records[1].Name)
		assert.Equal(t, "東京都新宿区1-2-3", records[1].Address)
	})

	t.Run("Should ignore extra columns and accept any column order", func(t *testing.T) {
		records := parseRecords(t, "Birthday,Extra,Name,Credit Limit\n01/01/1987,ignored,Jane,$1000\n")
		require.Len(t, records, 1)
		assert.Equal(t, "Jane", records[0].Name)
		assert.Equal(t, "", records[0].Address)
		assert.Equal(t, "1000.00", records[0].CreditLimit.StringFixed(2))
	})

	t.Run("Should reject rows missing required fields", func(t *testing.T) {
		outcomes, err := Parse(header+
			`"Johnson, John",Voorstraat 32,3122gg,020 3849381,100,01/01/1987`+"\n"+
			`"Anderson, Paul",,4532 AA,030 3458986,,01/01/1990`+"\n"+
			`,,,,0,01/01/1990`+"\n"+
			`"No Birthday",,,,100,`+"\n", config.CSVSettings{})
		require.NoError(t, err)
		require.Len(t, outcomes, 4)

		records := types.AcceptedRecords(outcomes)
		require.Len(t, records, 1)
		assert.Equal(t, "Johnson, John", records[0].Name)

		rejections := types.Rejections(outcomes)
		require.Len(t, rejections, 3)
		assert.Equal(t, 3, rejections[0].Row)
		assert.Contains(t, rejections[0].Reason, "Credit Limit")
		assert.Contains(t, rejections[1].Reason, "Name")
		assert.Contains(t, rejections[2].Reason, "Birthday")
	})

	t.Run("Should reject rows with invalid birthdays", func(t *testing.T) {
		outcomes, err := Parse(header+
			`"Person 1",Address 1,12345,123-456-7890,1000,2990-01-01`+"\n"+
			`"Person 2",Address 2,12345,123-456-7890,1000,01-01-1990`+"\n"+
			`"Person 3",Address 3,12345,123-456-7890,1000,Jan 1 1990`+"\n"+
			`"Person 4",Address 4,12345,123-456-7890,1000,31/04/1990`+"\n", config.CSVSettings{})
		require.NoError(t, err)
		assert.Empty(t, types.AcceptedRecords(outcomes))
		for _, rejection := range types.Rejections(outcomes) {
			assert.ErrorIs(t, rejection, normalizer.ErrInvalidDate)
		}
	})

	t.Run("Should normalize credit limits without failing the row", func(t *testing.T) {
		records := parseRecords(t, header+
			`"Person 1",A,1,1,1000,01/01/1990`+"\n"+
			`"Person 2",A,1,1,"1,000",01/01/1990`+"\n"+
			`"Person 3",A,1,1,$1000,01/01/1990`+"\n"+
			`"Person 4",A,1,1,1000.00,01/01/1990`+"\n"+
			`"Person 5",A,1,1,1.000e3,01/01/1990`+"\n"+
			`"Person 6",A,1,1,not a number,01/01/1990`+"\n"+
			`"Person 7",A,1,1,1000abc,01/01/1990`+"\n")
		require.Len(t, records, 7)
		want := []string{"1000.00", "1000.00", "1000.00", "1000.00", "1000.00", "0.00", "1000.00"}
		for i, record := range records {
			assert.Equal(t, want[i], record.CreditLimit.StringFixed(2), record.Name)
		}
	})

	t.Run("Should skip a leading byte order mark", func(t *testing.T) {
		records := parseRecords(t, "\ufeff"+header+"Jane,,,,5,01/01/1990")
		require.Len(t, records, 1)
		assert.Equal(t, "Jane", records[0].Name)
	})

	t.Run("Should honor a configured delimiter", func(t *testing.T) {
		outcomes, err := Parse("Name;Credit Limit;Birthday\nJane, Doe;1,5;01/01/1990\n", config.CSVSettings{Delimiter: ";"})
		require.NoError(t, err)
		records := types.AcceptedRecords(outcomes)
		require.Len(t, records, 1)
		assert.Equal(t, "Jane, Doe", records[0].Name)
		assert.Equal(t, "15.00", records[0].CreditLimit.StringFixed(2))
	})

	t.Run("Should fail on an unterminated quoted field", func(t *testing.T) {
		_, err := Parse(header+`"Johnson, John,Voorstraat 32,3122gg,020 3849381,10000,01/01/1987`, config.CSVSettings{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read CSV")
	})

	t.Run("Should tolerate stray quotes in lazy mode", func(t *testing.T) {
		input := header + `Jo "JJ" Smith,A,1,1,10,01/01/1990`
		_, err := Parse(input, config.CSVSettings{})
		require.Error(t, err)

		outcomes, err := Parse(input, config.CSVSettings{LazyQuotes: true})
		require.NoError(t, err)
		records := types.AcceptedRecords(outcomes)
		require.Len(t, records, 1)
		assert.Equal(t, `Jo "JJ" Smith`, records[0].Name)
	})
}
