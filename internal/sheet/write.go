package sheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/invbackoffice/internal/core"
)

// ProductsSheet is the name of the single sheet in an export.
const ProductsSheet = "Products"

// ProductHeader is the export column order. It starts with the id so that an
// exported workbook can be matched back to stored records.
var ProductHeader = []string{
	core.FieldID,
	core.FieldProductName,
	core.FieldHSNCode,
	core.FieldSKU,
	core.FieldTax,
	core.FieldBarcode,
	core.FieldWarehouseLocation,
	core.FieldImage,
}

// WriteProducts serializes products into an .xlsx workbook with one sheet
// and one header row. Text fields are written as string cells, so a numeric
// looking barcode survives a round trip unchanged. Tax is a numeric cell and
// nil fields are left empty.
func WriteProducts(products []core.Product) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ProductsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyleID, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	for i, h := range ProductHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellStr(ProductsSheet, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(ProductHeader))
	if err := f.SetCellStyle(ProductsSheet, "A1", lastCol+"1", headerStyleID); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	for i, p := range products {
		if err := writeProductRow(f, i+2, p); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(ProductsSheet, "A", lastCol, 20); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeProductRow(f *excelize.File, row int, p core.Product) error {
	values := []any{
		p.ID,
		p.ProductName,
		p.HSNCode,
		p.SKU,
		p.Tax,
		p.Barcode,
		p.WarehouseLocation,
		p.Image,
	}

	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}

		switch x := v.(type) {
		case string:
			if x != "" {
				err = f.SetCellStr(ProductsSheet, cell, x)
			}
		case *string:
			if x != nil {
				err = f.SetCellStr(ProductsSheet, cell, *x)
			}
		case *float64:
			if x != nil {
				err = f.SetCellFloat(ProductsSheet, cell, *x, -1, 64)
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}
