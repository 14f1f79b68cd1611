package formatter

import (
	"bytes"
	"fmt"

	"github.com/ginjaninja78/record-translator/internal/types"
	"github.com/xuri/excelize/v2"
)

// amountNumberFormat is the built-in excelize number format "0.00".
const amountNumberFormat = 2

// defaultSheet is the sheet every new workbook starts with.
const defaultSheet = "Sheet1"

// FormatXLSX renders records as a workbook with one sheet. Credit limits are
// numeric cells shown with two decimals; every other column is text.
func FormatXLSX(records []types.CanonicalRecord, sheetName string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if sheetName == "" {
		sheetName = defaultSheet
	}
	if sheetName != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
			return nil, fmt.Errorf("failed to name sheet %q: %w", sheetName, err)
		}
	}

	// Header row
	for i, header := range columnHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(columnHeaders), 1)
	if err := f.SetCellStyle(sheetName, "A1", lastHeader, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: amountNumberFormat})
	if err != nil {
		return nil, fmt.Errorf("failed to create amount style: %w", err)
	}

	for rowIdx, record := range records {
		row := rowIdx + 2
		values := []any{
			record.Name,
			record.Address,
			record.Postcode,
			record.Phone,
			record.CreditLimit.InexactFloat64(),
			formatBirthday(record),
		}
		for colIdx, value := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, row)
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", rowIdx+1, err)
			}
		}

		amountCell, _ := excelize.CoordinatesToCellName(5, row)
		if err := f.SetCellStyle(sheetName, amountCell, amountCell, amountStyle); err != nil {
			return nil, fmt.Errorf("failed to style row %d: %w", rowIdx+1, err)
		}
	}

	// Approximate column widths from the header text
	for i, header := range columnHeaders {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		width := float64(len(header) + 4)
		if width < 15 {
			width = 15
		}
		f.SetColWidth(sheetName, colName, colName, width)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
