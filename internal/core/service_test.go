package core_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/invbackoffice/internal/core"
	"github.com/JonMunkholm/invbackoffice/internal/sheet"
	"github.com/JonMunkholm/invbackoffice/internal/store/memory"
)

// spyStore counts calls that reach the store.
type spyStore struct {
	*memory.Store
	bulkCalls   int
	createCalls int
}

func (s *spyStore) CreateProducts(ctx context.Context, products []core.Product) (int, error) {
	s.bulkCalls++
	return s.Store.CreateProducts(ctx, products)
}

func (s *spyStore) CreateProduct(ctx context.Context, p core.Product) (core.Product, error) {
	s.createCalls++
	return s.Store.CreateProduct(ctx, p)
}

// sequence returns a generator that yields codes in order, then repeats the last.
func sequence(codes ...string) core.BarcodeGenerator {
	i := 0
	return func() string {
		code := codes[i]
		if i < len(codes)-1 {
			i++
		}
		return code
	}
}

func newService(t *testing.T, opts ...core.Option) (*core.Service, *spyStore) {
	t.Helper()
	mem := memory.New()
	spy := &spyStore{Store: mem}
	return core.NewService(spy, mem, sheet.Codec{}, opts...), spy
}

func workbook(t *testing.T, rows ...[]any) []byte {
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
// CreateProduct
// =============================================================================

func TestCreateProduct_GeneratesBarcode(t *testing.T) {
	svc, _ := newService(t, core.WithBarcodeGenerator(sequence("GEN-1")))

	p, err := svc.CreateProduct(context.Background(), core.RawRow{"productName": "Widget"})
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "GEN-1", p.Barcode)
	assert.Nil(t, p.SKU)
	assert.Nil(t, p.Tax)
}

func TestCreateProduct_DefaultGeneratorIsUnique(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	a, err := svc.CreateProduct(ctx, core.RawRow{"productName": "A"})
	require.NoError(t, err)
	b, err := svc.CreateProduct(ctx, core.RawRow{"productName": "B"})
	require.NoError(t, err)

	assert.NotEmpty(t, a.Barcode)
	assert.NotEqual(t, a.Barcode, b.Barcode)
}

func TestCreateProduct_RetriesGeneratedCollision(t *testing.T) {
	svc, spy := newService(t, core.WithBarcodeGenerator(sequence("TAKEN", "TAKEN", "FREE")))
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, core.RawRow{"productName": "first", "barcode": "TAKEN"})
	require.NoError(t, err)

	p, err := svc.CreateProduct(ctx, core.RawRow{"productName": "second"})
	require.NoError(t, err)
	assert.Equal(t, "FREE", p.Barcode)
	assert.Equal(t, 1+core.MaxBarcodeAttempts, spy.createCalls)
}

func TestCreateProduct_GivesUpAfterMaxAttempts(t *testing.T) {
	svc, spy := newService(t, core.WithBarcodeGenerator(sequence("TAKEN")))
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, core.RawRow{"productName": "first"})
	require.NoError(t, err)

	_, err = svc.CreateProduct(ctx, core.RawRow{"productName": "second"})
	assert.True(t, core.IsConstraint(err))
	assert.Equal(t, 1+core.MaxBarcodeAttempts, spy.createCalls)
}

func TestCreateProduct_SuppliedBarcodeCollisionFails(t *testing.T) {
	svc, spy := newService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, core.RawRow{"productName": "first", "barcode": "B1"})
	require.NoError(t, err)

	_, err = svc.CreateProduct(ctx, core.RawRow{"productName": "second", "barcode": "B1"})
	assert.True(t, core.IsConstraint(err))
	assert.Equal(t, 2, spy.createCalls)
}

func TestCreateProduct_InvalidRowNeverReachesStore(t *testing.T) {
	svc, spy := newService(t)

	_, err := svc.CreateProduct(context.Background(), core.RawRow{"sku": "S1"})
	assert.True(t, core.IsValidation(err))
	assert.Zero(t, spy.createCalls)
}

// =============================================================================
// CreateProducts
// =============================================================================

func TestCreateProducts_SkipsDuplicates(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	n, err := svc.CreateProducts(ctx, []core.RawRow{
		{"productName": "A", "barcode": "1"},
		{"productName": "B", "barcode": "2"},
		{"productName": "A again", "barcode": "1"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	list, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0].ProductName)
}

func TestCreateProducts_RegeneratesBatchCollisions(t *testing.T) {
	svc, _ := newService(t, core.WithBarcodeGenerator(sequence("G", "G", "H")))

	n, err := svc.CreateProducts(context.Background(), []core.RawRow{
		{"productName": "A"},
		{"productName": "B"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCreateProducts_InvalidRowFailsBatch(t *testing.T) {
	svc, spy := newService(t)

	_, err := svc.CreateProducts(context.Background(), []core.RawRow{
		{"productName": "A"},
		{"productName": ""},
	})

	var ve *core.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, 2, ve.Row)
	assert.Zero(t, spy.bulkCalls)
}

// =============================================================================
// UpdateProduct / DeleteProduct
// =============================================================================

func TestUpdateProduct(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	p, err := svc.CreateProduct(ctx, core.RawRow{"productName": "Widget", "sku": "S1", "barcode": "B1"})
	require.NoError(t, err)

	got, err := svc.UpdateProduct(ctx, core.RawRow{"id": p.ID, "tax": "18", "barcode": "B2"})
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "Widget", got.ProductName)
	assert.Equal(t, core.Ptr("S1"), got.SKU)
	assert.Equal(t, core.Ptr(18.0), got.Tax)
	assert.Equal(t, "B2", got.Barcode)
}

func TestUpdateProduct_Errors(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.UpdateProduct(ctx, core.RawRow{"productName": "x"})
	var ve *core.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Product ID is required", ve.Message)

	_, err = svc.UpdateProduct(ctx, core.RawRow{"id": "missing", "productName": "x"})
	assert.True(t, core.IsNotFound(err))
}

func TestDeleteProduct(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	err := svc.DeleteProduct(ctx, "")
	var ve *core.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Product ID is required", ve.Message)

	assert.True(t, core.IsNotFound(svc.DeleteProduct(ctx, "missing")))

	p, err := svc.CreateProduct(ctx, core.RawRow{"productName": "Widget"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteProduct(ctx, p.ID))

	list, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

// =============================================================================
// ImportProducts
// =============================================================================

func TestImportProducts_SkipsExistingBarcode(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, core.RawRow{"productName": "Existing", "barcode": "X"})
	require.NoError(t, err)

	data := workbook(t,
		[]any{"productName", "barcode", "tax"},
		[]any{"A", "Y", 18},
		[]any{"B", "X", nil},
		[]any{"C", "Z", "5%"},
	)

	result, err := svc.ImportProducts(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, core.ImportResult{InsertedCount: 2, TotalRows: 3, SkippedCount: 1}, result)

	list, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Existing", list[0].ProductName)
	assert.Equal(t, core.Ptr(18.0), list[1].Tax)
}

func TestImportProducts_Idempotent(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	data := workbook(t,
		[]any{"productName", "barcode"},
		[]any{"A", "1"},
		[]any{"B", "2"},
	)

	first, err := svc.ImportProducts(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, 2, first.InsertedCount)

	second, err := svc.ImportProducts(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, 0, second.InsertedCount)
	assert.Equal(t, 2, second.SkippedCount)
}

func TestImportProducts_EmptySheet(t *testing.T) {
	svc, spy := newService(t)

	result, err := svc.ImportProducts(context.Background(), workbook(t, []any{"productName"}))
	require.NoError(t, err)
	assert.True(t, result.NoData)
	assert.Zero(t, result.InsertedCount)
	assert.Zero(t, spy.bulkCalls)
}

func TestImportProducts_ParseFailure(t *testing.T) {
	svc, spy := newService(t)

	_, err := svc.ImportProducts(context.Background(), []byte("not a workbook"))

	var pe *core.ParseError
	assert.ErrorAs(t, err, &pe)
	assert.Zero(t, spy.bulkCalls)
}

func TestImportProducts_InvalidRowFailsBatch(t *testing.T) {
	svc, spy := newService(t)

	data := workbook(t,
		[]any{"productName", "sku"},
		[]any{"A", "S1"},
		[]any{nil, "S2"},
	)

	_, err := svc.ImportProducts(context.Background(), data)

	var ve *core.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, 3, ve.Row)
	assert.Equal(t, core.FieldProductName, ve.Field)
	assert.Zero(t, spy.bulkCalls)
}

// =============================================================================
// ExportProducts
// =============================================================================

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src, _ := newService(t)

	_, err := src.CreateProduct(ctx, core.RawRow{
		"productName": "Widget", "hsnCode": "8471", "tax": 18, "barcode": "4006381333931",
	})
	require.NoError(t, err)
	_, err = src.CreateProduct(ctx, core.RawRow{"productName": "Gadget", "image": "g.png"})
	require.NoError(t, err)
	_, err = src.CreateProduct(ctx, core.RawRow{
		"productName": "'Pro'", "sku": "=A1", "warehouseLocation": `="Rack"`, "hsnCode": `"8471"`,
	})
	require.NoError(t, err)

	data, err := src.ExportProducts(ctx)
	require.NoError(t, err)

	dst, _ := newService(t)
	result, err := dst.ImportProducts(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, 3, result.InsertedCount)

	want, err := src.ListProducts(ctx)
	require.NoError(t, err)
	got, err := dst.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, got, len(want))

	for i := range want {
		w, g := want[i], got[i]
		w.ID, g.ID = "", ""
		assert.Equal(t, w, g)
	}
}

func TestExportImport_EmptyCatalog(t *testing.T) {
	ctx := context.Background()
	src, _ := newService(t)

	data, err := src.ExportProducts(ctx)
	require.NoError(t, err)

	dst, spy := newService(t)
	result, err := dst.ImportProducts(ctx, data)
	require.NoError(t, err)
	assert.Zero(t, result.InsertedCount)
	assert.True(t, result.NoData)
	assert.Zero(t, spy.bulkCalls)

	got, err := dst.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

// =============================================================================
// Vendors
// =============================================================================

func TestVendorLifecycle(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	v, err := svc.CreateVendor(ctx, core.RawRow{
		"companyName":   "Acme",
		"contactNumber": "9876543210",
		"email":         "ops@acme.test",
		"firstName":     "Asha",
		"lastName":      "Rao",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateVendor(ctx, core.RawRow{"id": v.ID, "paymentTerms": "Net 30"})
	require.NoError(t, err)
	assert.Equal(t, core.Ptr("Net 30"), updated.PaymentTerms)

	list, err := svc.ListVendors(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	err = svc.DeleteVendor(ctx, "")
	var ve *core.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Vendor ID is required", ve.Message)

	require.NoError(t, svc.DeleteVendor(ctx, v.ID))
	assert.True(t, core.IsNotFound(svc.DeleteVendor(ctx, v.ID)))
}
