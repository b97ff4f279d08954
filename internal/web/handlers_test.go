package web

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/invbackoffice/internal/sheet"
)

func createProduct(t *testing.T, s *Server, body map[string]any) map[string]any {
	t.Helper()

	rec := do(t, s, http.MethodPost, "/api/products", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode(t, rec)["product"].(map[string]any)
}

func listProducts(t *testing.T, s *Server, query string) []any {
	t.Helper()

	rec := do(t, s, http.MethodGet, "/api/products"+query, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	return decode(t, rec)["products"].([]any)
}

// =============================================================================
// Products
// =============================================================================

func TestCreateProduct(t *testing.T) {
	s := newTestServer(t, testConfig())

	p := createProduct(t, s, map[string]any{"productName": " Widget ", "tax": "18%", "id": "ignored"})

	assert.Equal(t, "Widget", p["productName"])
	assert.Equal(t, 18.0, p["tax"])
	assert.NotEmpty(t, p["barcode"])
	assert.NotEqual(t, "ignored", p["id"])
	assert.Nil(t, p["sku"])
	assert.Contains(t, p, "sku", "absent optional fields serialize as null")
}

func TestCreateProduct_Errors(t *testing.T) {
	tests := []struct {
		name        string
		body        any
		setup       func(t *testing.T, s *Server)
		wantCode    int
		wantErr     string
		wantErrCode string
	}{
		{
			name:        "missing name",
			body:        map[string]any{"sku": "S"},
			wantCode:    http.StatusBadRequest,
			wantErr:     "Product Name is required",
			wantErrCode: "VAL001",
		},
		{
			name:        "wrong type",
			body:        map[string]any{"productName": "A", "sku": []any{"x"}},
			wantCode:    http.StatusBadRequest,
			wantErrCode: "VAL002",
		},
		{
			name:        "malformed json",
			body:        "{nope",
			wantCode:    http.StatusBadRequest,
			wantErrCode: "VAL002",
		},
		{
			name: "duplicate barcode",
			body: map[string]any{"productName": "B", "barcode": "X"},
			setup: func(t *testing.T, s *Server) {
				createProduct(t, s, map[string]any{"productName": "A", "barcode": "X"})
			},
			wantCode:    http.StatusConflict,
			wantErrCode: "DB002",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, testConfig())
			if tt.setup != nil {
				tt.setup(t, s)
			}

			rec := do(t, s, http.MethodPost, "/api/products", tt.body)
			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())

			body := decode(t, rec)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.wantErrCode, body["code"])
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, body["error"])
			}
		})
	}
}

func TestBulkCreate_SkipsDuplicates(t *testing.T) {
	s := newTestServer(t, testConfig())
	createProduct(t, s, map[string]any{"productName": "Existing", "barcode": "X"})

	rec := do(t, s, http.MethodPost, "/api/products", map[string]any{
		"products": []any{
			map[string]any{"productName": "Dup", "barcode": "X"},
			map[string]any{"productName": "A", "barcode": "A"},
			map[string]any{"productName": "B"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 2.0, decode(t, rec)["insertedCount"])

	assert.Len(t, listProducts(t, s, ""), 3)
}

func TestBulkCreate_InvalidRowFailsBatch(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec := do(t, s, http.MethodPost, "/api/products", map[string]any{
		"products": []any{
			map[string]any{"productName": "A"},
			map[string]any{"sku": "no name"},
		},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Row 2: Product Name is required", decode(t, rec)["error"])
	assert.Empty(t, listProducts(t, s, ""))
}

func TestBulkCreate_NotAList(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec := do(t, s, http.MethodPost, "/api/products", map[string]any{"products": "nope"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListProducts_Search(t *testing.T) {
	s := newTestServer(t, testConfig())
	createProduct(t, s, map[string]any{"productName": "Blue Widget", "sku": "zzz"})
	createProduct(t, s, map[string]any{"productName": "Gadget", "sku": "widget"})

	got := listProducts(t, s, "?search=WIDGET")
	require.Len(t, got, 1)
	assert.Equal(t, "Blue Widget", got[0].(map[string]any)["productName"])

	assert.Len(t, listProducts(t, s, ""), 2)
}

func TestUpdateProduct(t *testing.T) {
	s := newTestServer(t, testConfig())
	p := createProduct(t, s, map[string]any{"productName": "A", "sku": "S1", "barcode": "B1"})

	rec := do(t, s, http.MethodPut, "/api/products", map[string]any{
		"id":      p["id"],
		"sku":     nil,
		"barcode": "B2",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	updated := decode(t, rec)["updatedProduct"].(map[string]any)
	assert.Equal(t, p["id"], updated["id"])
	assert.Equal(t, "A", updated["productName"])
	assert.Nil(t, updated["sku"])
	assert.Equal(t, "B2", updated["barcode"])
}

func TestUpdateProduct_Errors(t *testing.T) {
	s := newTestServer(t, testConfig())
	createProduct(t, s, map[string]any{"productName": "A", "barcode": "TAKEN"})
	p := createProduct(t, s, map[string]any{"productName": "B"})

	tests := []struct {
		name     string
		body     map[string]any
		wantCode int
		wantErr  string
	}{
		{"missing id", map[string]any{"productName": "X"}, http.StatusBadRequest, "Product ID is required"},
		{"unknown id", map[string]any{"id": "00000000-0000-4000-8000-000000000000", "sku": "S"}, http.StatusNotFound, "Product not found"},
		{"empty name", map[string]any{"id": p["id"], "productName": ""}, http.StatusBadRequest, "Product Name is required"},
		{"barcode taken", map[string]any{"id": p["id"], "barcode": "TAKEN"}, http.StatusConflict, "A record with this barcode already exists"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPut, "/api/products", tt.body)
			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			assert.Equal(t, tt.wantErr, decode(t, rec)["error"])
		})
	}
}

func TestDeleteProduct(t *testing.T) {
	s := newTestServer(t, testConfig())
	p := createProduct(t, s, map[string]any{"productName": "A"})

	rec := do(t, s, http.MethodDelete, "/api/products", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Product ID is required", decode(t, rec)["error"])

	rec = do(t, s, http.MethodDelete, "/api/products?id=nope", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Product not found", decode(t, rec)["error"])

	rec = do(t, s, http.MethodDelete, "/api/products?id="+p["id"].(string), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["success"])
	assert.Empty(t, listProducts(t, s, ""))
}

// =============================================================================
// Import / Export
// =============================================================================

func TestImport(t *testing.T) {
	s := newTestServer(t, testConfig())
	createProduct(t, s, map[string]any{"productName": "Existing", "barcode": "X"})

	data := workbook(t,
		[]any{"productName", "barcode", "tax"},
		[]any{"Dup", "X", 5},
		[]any{"A", "A1", "18%"},
		[]any{"B", nil, nil},
	)

	rec := upload(t, s, "file", data)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, 2.0, body["insertedCount"])
	assert.Equal(t, 3.0, body["totalRows"])
	assert.Equal(t, 1.0, body["skippedCount"])

	// Idempotent for rows with supplied barcodes.
	rec = upload(t, s, "file", workbook(t,
		[]any{"productName", "barcode"},
		[]any{"A", "A1"},
	))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0.0, decode(t, rec)["insertedCount"])
}

func TestImport_Errors(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		data     []byte
		wantCode int
		wantErr  string
	}{
		{"not a workbook", "file", []byte("definitely not xlsx"), http.StatusBadRequest, "FILE002"},
		{"no file", "", nil, http.StatusBadRequest, "FILE004"},
		{"wrong field", "upload", []byte("x"), http.StatusBadRequest, "FILE004"},
		{"empty file", "file", []byte{}, http.StatusBadRequest, "FILE005"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, testConfig())

			rec := upload(t, s, tt.field, tt.data)
			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			assert.Equal(t, tt.wantErr, decode(t, rec)["code"])
			assert.Empty(t, listProducts(t, s, ""))
		})
	}
}

func TestImport_InvalidRowNamesSheetRow(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec := upload(t, s, "file", workbook(t,
		[]any{"productName", "sku"},
		[]any{"A", "S1"},
		[]any{nil, "S2"},
	))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Row 3: Product Name is required", decode(t, rec)["error"])
	assert.Empty(t, listProducts(t, s, ""))
}

func TestImport_NoData(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec := upload(t, s, "file", workbook(t, []any{"productName", "sku"}))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, 0.0, body["insertedCount"])
	assert.Equal(t, "No data found in file", body["message"])
}

func TestImport_TooLarge(t *testing.T) {
	cfg := testConfig()
	cfg.Upload.MaxFileSize = 16
	s := newTestServer(t, cfg)

	rec := upload(t, s, "file", make([]byte, 1000))
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code, rec.Body.String())
	assert.Equal(t, "FILE001", decode(t, rec)["code"])
}

func TestExport(t *testing.T) {
	s := newTestServer(t, testConfig())
	createProduct(t, s, map[string]any{"productName": "A", "barcode": "00123", "tax": 5})

	rec := do(t, s, http.MethodGet, "/api/products/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")

	rows, err := sheet.Parse(rec.Body.Bytes())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "00123", rows[0]["barcode"])
	assert.Equal(t, 5.0, rows[0]["tax"])
}

// =============================================================================
// Vendors
// =============================================================================

func TestVendorLifecycle(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec := do(t, s, http.MethodPost, "/api/vendors", map[string]any{"companyName": "Acme"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VAL001", decode(t, rec)["code"])

	rec = do(t, s, http.MethodPost, "/api/vendors", map[string]any{
		"companyName":   "Acme",
		"contactNumber": "555-0100",
		"email":         "ops@acme.test",
		"firstName":     "Ada",
		"lastName":      "Lovelace",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	v := decode(t, rec)["vendor"].(map[string]any)
	assert.Nil(t, v["gstNumber"])

	rec = do(t, s, http.MethodPut, "/api/vendors", map[string]any{"id": v["id"], "state": "KA"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "KA", decode(t, rec)["updatedVendor"].(map[string]any)["state"])

	rec = do(t, s, http.MethodGet, "/api/vendors?search=acm", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["vendors"], 1)

	rec = do(t, s, http.MethodDelete, "/api/vendors", nil)
	assert.Equal(t, "Vendor ID is required", decode(t, rec)["error"])

	rec = do(t, s, http.MethodDelete, "/api/vendors?id="+v["id"].(string), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodDelete, "/api/vendors?id="+v["id"].(string), nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Vendor not found", decode(t, rec)["error"])
}

// =============================================================================
// Column preferences
// =============================================================================

func TestColumns(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec := do(t, s, http.MethodGet, "/api/preferences/products/columns", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["columns"], 7)

	rec = do(t, s, http.MethodPut, "/api/preferences/products/columns",
		map[string]any{"columns": []string{"sku", "productName"}},
		ClientIDHeader, "alice")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []any{"productName", "sku"}, decode(t, rec)["columns"])

	rec = do(t, s, http.MethodGet, "/api/preferences/products/columns", nil, ClientIDHeader, "alice")
	assert.Equal(t, []any{"productName", "sku"}, decode(t, rec)["columns"])

	rec = do(t, s, http.MethodGet, "/api/preferences/products/columns", nil, ClientIDHeader, "bob")
	assert.Len(t, decode(t, rec)["columns"], 7)
}

func TestColumns_Errors(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec := do(t, s, http.MethodPut, "/api/preferences/products/columns",
		map[string]any{"columns": []string{"productName", "price"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VAL003", decode(t, rec)["code"])

	rec = do(t, s, http.MethodGet, "/api/preferences/orders/columns", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
