// Package sheet reads and writes catalog workbooks with excelize.
//
// Parsing is purely structural: the first sheet's first row is the header,
// every later non-empty row becomes a core.RawRow keyed by header text.
// Semantic validation happens in core.
package sheet

import (
	"bytes"
	"errors"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/invbackoffice/internal/core"
)

// Codec adapts this package to core.Workbook.
type Codec struct{}

var _ core.Workbook = Codec{}

// Parse implements core.Workbook.
func (Codec) Parse(data []byte) ([]core.RawRow, error) { return Parse(data) }

// WriteProducts implements core.Workbook.
func (Codec) WriteProducts(products []core.Product) ([]byte, error) { return WriteProducts(products) }

// Parse decodes the first sheet of an .xlsx workbook into raw rows.
// Numeric cells become float64 and text cells string. Empty cells are left
// out of the row and fully empty rows are dropped. Columns with a blank
// header are ignored; a repeated header keeps its first column.
func Parse(data []byte) ([]core.RawRow, error) {
	if len(data) == 0 {
		return nil, &core.ParseError{Err: errors.New("empty file")}
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &core.ParseError{Err: err}
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, &core.ParseError{Err: errors.New("workbook has no sheets")}
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &core.ParseError{Err: err}
	}
	if len(rows) == 0 {
		return []core.RawRow{}, nil
	}

	headers := headerKeys(rows[0])

	out := make([]core.RawRow, 0, len(rows)-1)
	for i, cells := range rows[1:] {
		sheetRow := i + 2
		row := make(core.RawRow, len(cells))

		for col, raw := range cells {
			if col >= len(headers) || headers[col] == "" || raw == "" {
				continue
			}
			v, err := cellValue(f, sheetName, col, sheetRow, raw)
			if err != nil {
				return nil, &core.ParseError{Err: err}
			}
			row[headers[col]] = v
		}

		if len(row) > 0 {
			out = append(out, row)
		}
	}
	return out, nil
}

// headerKeys returns the key for each header column, blanking duplicates.
func headerKeys(header []string) []string {
	keys := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		key := core.CleanCell(h)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		keys[i] = key
	}
	return keys
}

// cellValue types one non-empty cell. Cells stored as numbers come back as
// float64; shared and inline strings stay text even when they look numeric.
func cellValue(f *excelize.File, sheetName string, col, row int, raw string) (any, error) {
	cell, err := excelize.CoordinatesToCellName(col+1, row)
	if err != nil {
		return nil, err
	}

	typ, err := f.GetCellType(sheetName, cell)
	if err != nil {
		return nil, err
	}

	switch typ {
	case excelize.CellTypeNumber, excelize.CellTypeUnset, excelize.CellTypeDate:
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return n, nil
		}
	}
	return raw, nil
}
