package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ginjaninja78/record-translator/internal/types"
)

// jsonRecord is the wire shape of one record.
type jsonRecord struct {
	Name        string      `json:"name"`
	Address     string      `json:"address"`
	Postcode    string      `json:"postcode"`
	Phone       string      `json:"phone"`
	CreditLimit json.Number `json:"creditLimit"`
	Birthday    string      `json:"birthday"`
}

// FormatJSON renders records as an indented JSON array. Credit limits are
// JSON numbers with two fractional digits; non-ASCII text and markup
// characters are written as-is.
func FormatJSON(records []types.CanonicalRecord, indent string) ([]byte, error) {
	out := make([]jsonRecord, 0, len(records))
	for _, record := range records {
		out = append(out, jsonRecord{
			Name:        record.Name,
			Address:     record.Address,
			Postcode:    record.Postcode,
			Phone:       record.Phone,
			CreditLimit: json.Number(formatAmount(record)),
			Birthday:    formatBirthday(record),
		})
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", indent)
	if err := encoder.Encode(out); err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}

	return buf.Bytes(), nil
}
