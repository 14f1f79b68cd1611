package formatter

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/ginjaninja78/record-translator/internal/types"
)

// pageTemplate renders the whole document. html/template escapes every
// interpolated value for its context.
var pageTemplate = template.Must(template.New("records").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; margin: 0; padding: 20px; }
    table { border-collapse: collapse; width: 100%; margin-bottom: 20px; }
    th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
    th { background-color: #f2f2f2; font-weight: bold; }
    tr:nth-child(even) { background-color: #f9f9f9; }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
  <table>
    <thead>
      <tr>
{{- range .Headers}}
        <th>{{.}}</th>
{{- end}}
      </tr>
    </thead>
    <tbody>
{{- range .Rows}}
      <tr>
{{- range .}}
        <td>{{.}}</td>
{{- end}}
      </tr>
{{- end}}
    </tbody>
  </table>
</body>
</html>
`))

type htmlPage struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// FormatHTML renders records as a standalone HTML document with one table.
func FormatHTML(records []types.CanonicalRecord, title string) ([]byte, error) {
	page := htmlPage{
		Title:   title,
		Headers: columnHeaders,
		Rows:    make([][]string, 0, len(records)),
	}
	for _, record := range records {
		page.Rows = append(page.Rows, []string{
			record.Name,
			record.Address,
			record.Postcode,
			record.Phone,
			formatAmount(record),
			formatBirthday(record),
		})
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("failed to render HTML: %w", err)
	}

	return buf.Bytes(), nil
}
