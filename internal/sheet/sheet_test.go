package sheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/invbackoffice/internal/core"
)

// buildWorkbook writes rows to the first sheet of a new workbook.
// nil values leave the cell empty.
func buildWorkbook(t *testing.T, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for r, cells := range rows {
		for c, v := range cells {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, v))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

// =============================================================================
// Parse
// =============================================================================

func TestParse_TypesCells(t *testing.T) {
	data := buildWorkbook(t, [][]any{
		{"productName", "tax", "barcode", "sku"},
		{"Widget", 18, "4006381333931", nil},
		{"Gadget", "5%", nil, "G-1"},
	})

	rows, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, core.RawRow{"productName": "Widget", "tax": float64(18), "barcode": "4006381333931"}, rows[0])
	assert.Equal(t, core.RawRow{"productName": "Gadget", "tax": "5%", "sku": "G-1"}, rows[1])
}

func TestParse_DropsEmptyRows(t *testing.T) {
	data := buildWorkbook(t, [][]any{
		{"productName"},
		{"A"},
		{nil},
		{"B"},
	})

	rows, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "A", rows[0]["productName"])
	assert.Equal(t, "B", rows[1]["productName"])
}

func TestParse_KeepsUnknownColumns(t *testing.T) {
	data := buildWorkbook(t, [][]any{
		{"productName", "color", ""},
		{"A", "red", "ignored"},
	})

	rows, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, core.RawRow{"productName": "A", "color": "red"}, rows[0])
}

func TestParse_HeaderOnly(t *testing.T) {
	data := buildWorkbook(t, [][]any{{"productName", "sku"}})

	rows, err := Parse(data)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParse_InvalidBytes(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"not a zip", []byte("productName,sku\nA,B\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := Parse(tt.data)
			assert.Nil(t, rows)

			var pe *core.ParseError
			assert.ErrorAs(t, err, &pe)
		})
	}
}

// =============================================================================
// WriteProducts
// =============================================================================

func TestWriteProducts_Layout(t *testing.T) {
	data, err := WriteProducts([]core.Product{
		{ID: "id-1", ProductName: "Widget", Tax: core.Ptr(18.5), Barcode: "B1"},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ProductsSheet}, f.GetSheetList())

	rows, err := f.GetRows(ProductsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, ProductHeader, rows[0])
	assert.Equal(t, "Widget", rows[1][1])
}

func TestWriteProducts_Empty(t *testing.T) {
	data, err := WriteProducts(nil)
	require.NoError(t, err)

	rows, err := Parse(data)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRoundTrip(t *testing.T) {
	original := []core.Product{
		{
			ID:                "id-1",
			ProductName:       "Widget",
			HSNCode:           core.Ptr("8471"),
			SKU:               core.Ptr("W-1"),
			Tax:               core.Ptr(18.0),
			Barcode:           "4006381333931",
			WarehouseLocation: core.Ptr("Rack 'A'"),
			Image:             core.Ptr("https://example.com/w.png"),
		},
		{
			ID:          "id-2",
			ProductName: "Gadget",
			Barcode:     "0001",
		},
	}

	data, err := WriteProducts(original)
	require.NoError(t, err)

	rows, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, rows, len(original))

	noGen := func() string {
		t.Fatal("barcode should be read from the sheet")
		return ""
	}

	for i, row := range rows {
		require.NoError(t, core.ValidateProductRow(row))
		got, err := core.NormalizeProduct(row, noGen)
		require.NoError(t, err)

		want := original[i]
		want.ID = ""
		assert.Equal(t, want, got)
	}
}
