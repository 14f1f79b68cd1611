package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ginjaninja78/record-translator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const csvInput = "Name,Address,Postcode,Phone,Credit Limit,Birthday\n" +
	`"Johnson, John",Voorstraat 32,3122gg,020 3849381,10000,01/01/1987` + "\n" +
	`"Gibson, Mal",Vredenburg 21,3209 DD,06-48958986,54.5,09/11/1978` + "\n"

const prnInput = "Name            Address               Postcode Phone         Credit Limit Birthday\n" +
	"Johnson, John   Voorstraat 32         3122gg   020 3849381        1000000 19870101\n"

// execute runs the command tree with in-memory streams.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCommand()
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestTranslate(t *testing.T) {
	t.Run("Should translate stdin to stdout", func(t *testing.T) {
		stdout, _, err := execute(t, csvInput, "csv", "json")
		require.NoError(t, err)

		var parsed []map[string]any
		require.NoError(t, json.Unmarshal([]byte(stdout), &parsed))
		require.Len(t, parsed, 2)
		assert.Equal(t, "Johnson, John", parsed[0]["name"])
		assert.Equal(t, "09/11/1978", parsed[1]["birthday"])
	})

	t.Run("Should accept format tags in any case", func(t *testing.T) {
		stdout, _, err := execute(t, prnInput, "PRN", "Html")
		require.NoError(t, err)
		assert.Contains(t, stdout, "<td>10000.00</td>")
	})

	t.Run("Should reject unknown formats", func(t *testing.T) {
		_, _, err := execute(t, csvInput, "tsv", "json")
		assert.ErrorIs(t, err, types.ErrUnknownFormat)

		_, _, err = execute(t, csvInput, "csv", "pdf")
		assert.ErrorIs(t, err, types.ErrUnknownFormat)
	})

	t.Run("Should require both formats", func(t *testing.T) {
		_, _, err := execute(t, csvInput, "csv")
		assert.Error(t, err)
	})

	t.Run("Should fail on untokenizable input", func(t *testing.T) {
		_, _, err := execute(t, "Name,Birthday,Credit Limit\n\"open,01/01/1990,1\n", "csv", "json")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse csv input")
	})

	t.Run("Should log skipped rows on stderr", func(t *testing.T) {
		stdout, stderr, err := execute(t, csvInput+`"Bad, Date",A,1,1,10,30/02/1990`+"\n", "csv", "json")
		require.NoError(t, err)
		assert.Contains(t, stderr, "Rejected row")
		assert.Contains(t, stderr, "run_id=")
		assert.NotContains(t, stdout, "Bad, Date")
	})

	t.Run("Should read and write files", func(t *testing.T) {
		dir := t.TempDir()
		in := filepath.Join(dir, "in.csv")
		out := filepath.Join(dir, "out.xml")
		require.NoError(t, os.WriteFile(in, []byte(csvInput), 0644))

		stdout, _, err := execute(t, "", "csv", "xml", "--input", in, "--output", out)
		require.NoError(t, err)
		assert.Empty(t, stdout)

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(data), "<creditLimit>54.50</creditLimit>")
	})

	t.Run("Should write a generated file name under the output directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "out")
		stdout, _, err := execute(t, csvInput, "csv", "xlsx", "--output-dir", dir)
		require.NoError(t, err)

		path := strings.TrimSpace(stdout)
		assert.Equal(t, dir, filepath.Dir(path))
		assert.True(t, strings.HasPrefix(filepath.Base(path), "csv_"))
		assert.Equal(t, ".xlsx", filepath.Ext(path))
		_, err = os.Stat(path)
		assert.NoError(t, err)
	})

	t.Run("Should refuse --output together with --output-dir", func(t *testing.T) {
		_, _, err := execute(t, csvInput, "csv", "json", "-o", "a.json", "--output-dir", "out")
		assert.Error(t, err)
	})

	t.Run("Should apply the configuration file", func(t *testing.T) {
		cfgPath := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(cfgPath, []byte(`
csv_settings:
  delimiter: ";"
output_settings:
  xml_root_element: customers
  xml_record_element: customer
`), 0644))

		stdout, _, err := execute(t, "Name;Credit Limit;Birthday\nJane;1,5;01/01/1990\n", "csv", "xml", "--config", cfgPath)
		require.NoError(t, err)
		assert.Contains(t, stdout, `<customer n="1">`)
		assert.Contains(t, stdout, "<creditLimit>15.00</creditLimit>")
	})

	t.Run("Should fail on an invalid configuration file", func(t *testing.T) {
		cfgPath := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("log_level: loud\n"), 0644))

		_, _, err := execute(t, csvInput, "csv", "json", "--config", cfgPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load config")
	})

	t.Run("Should log debug details with --verbose", func(t *testing.T) {
		_, stderr, err := execute(t, csvInput, "csv", "json", "-v")
		require.NoError(t, err)
		assert.Contains(t, stderr, "Parsed input")
	})
}

func TestValidateCommand(t *testing.T) {
	t.Run("Should report a clean input", func(t *testing.T) {
		stdout, _, err := execute(t, csvInput, "validate", "csv")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Rows read:  2")
		assert.Contains(t, stdout, "Rejected:   0")
		assert.Contains(t, stdout, "No validation issues.")
	})

	t.Run("Should fail when rows are rejected", func(t *testing.T) {
		stdout, _, err := execute(t, csvInput+`,,,,10,01/01/1990`+"\n", "validate", "csv")
		assert.ErrorIs(t, err, ErrValidationFailed)
		assert.Contains(t, stdout, "Rejected:   1")
		assert.Contains(t, stdout, `[ERROR] row 4: missing required field "Name"`)
	})

	t.Run("Should validate fixed-width input", func(t *testing.T) {
		stdout, _, err := execute(t, prnInput, "validate", "prn")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Accepted:   1")
	})
}

func TestSchemaCommand(t *testing.T) {
	stdout, _, err := execute(t, "", "schema")
	require.NoError(t, err)
	assert.Contains(t, stdout, `<xs:element name="records">`)
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Record Translator")
	assert.Contains(t, stdout, "Version:    "+Version)
}
