package export

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// XLSXExporter renders datasets into a single-sheet workbook.
type XLSXExporter struct {
	Sheet string
}

// NewXLSXExporter constructs a workbook exporter writing to "Sheet1".
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{Sheet: "Sheet1"}
}

// Render writes headers on row 1 and one row per record. Numeric values are stored as numbers.
func (e *XLSXExporter) Render(data Dataset) ([]byte, error) {
	if err := requireHeaders("xlsx", data); err != nil {
		return nil, err
	}
	f := excelize.NewFile()
	defer f.Close()

	sheet := e.Sheet
	if sheet == "" {
		sheet = "Sheet1"
	}
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return nil, fmt.Errorf("name sheet: %w", err)
		}
	}

	headers := make([]interface{}, len(data.Headers))
	for i, h := range data.Headers {
		headers[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("write xlsx headers: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(data.Headers), 1)
	if err != nil {
		return nil, fmt.Errorf("resolve header range: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
		return nil, fmt.Errorf("style headers: %w", err)
	}

	for r, row := range data.Rows {
		values := make([]interface{}, len(data.Headers))
		for i, h := range data.Headers {
			values[i] = cellValue(row[h])
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return nil, fmt.Errorf("resolve row %d: %w", r+2, err)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write xlsx row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

var plainDecimal = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?$`)

// cellValue stores plain decimals as numbers. Anything else, including phone numbers with a leading
// zero or sign, exponents, hex and NaN/Inf spellings, stays text.
func cellValue(raw string) interface{} {
	if !plainDecimal.MatchString(raw) {
		return raw
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return n
	}
	return raw
}
