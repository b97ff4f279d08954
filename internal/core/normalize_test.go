package core

import (
	"reflect"
	"testing"
)

func fixedBarcode(code string) BarcodeGenerator {
	return func() string { return code }
}

// =============================================================================
// ValidateProductRow
// =============================================================================

func TestValidateProductRow(t *testing.T) {
	tests := []struct {
		name      string
		row       RawRow
		wantField string // empty means valid
	}{
		{name: "name only", row: RawRow{"productName": "Widget"}},
		{name: "numbers allowed", row: RawRow{"productName": "Widget", "tax": 18.0, "hsnCode": 8471.0}},
		{name: "nulls allowed", row: RawRow{"productName": "Widget", "sku": nil}},
		{name: "unknown keys ignored", row: RawRow{"productName": "Widget", "color": []any{"red"}}},
		{name: "missing name", row: RawRow{"sku": "S1"}, wantField: FieldProductName},
		{name: "blank name", row: RawRow{"productName": "   "}, wantField: FieldProductName},
		{name: "null name", row: RawRow{"productName": nil}, wantField: FieldProductName},
		{name: "object name", row: RawRow{"productName": map[string]any{"x": 1}}, wantField: FieldProductName},
		{name: "bool tax", row: RawRow{"productName": "Widget", "tax": true}, wantField: FieldTax},
		{name: "array barcode", row: RawRow{"productName": "Widget", "barcode": []any{"a"}}, wantField: FieldBarcode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProductRow(tt.row)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("ValidateProductRow() error = %v, want nil", err)
				}
				return
			}

			ve, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("ValidateProductRow() error = %v, want *ValidationError", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("ValidationError.Field = %q, want %q", ve.Field, tt.wantField)
			}
		})
	}
}

func TestValidatePartialRow(t *testing.T) {
	if err := ValidatePartialRow(RawRow{"sku": "S1"}, ProductFields); err != nil {
		t.Errorf("absent required field should pass, got %v", err)
	}
	if err := ValidatePartialRow(RawRow{"productName": ""}, ProductFields); err == nil {
		t.Error("present but empty required field should fail")
	}
}

// =============================================================================
// NormalizeProduct
// =============================================================================

func TestNormalizeProduct(t *testing.T) {
	tests := []struct {
		name string
		row  RawRow
		want Product
	}{
		{
			name: "name only gets generated barcode",
			row:  RawRow{"productName": "Widget"},
			want: Product{ProductName: "Widget", Barcode: "GEN"},
		},
		{
			name: "full row",
			row: RawRow{
				"productName":       " Widget ",
				"hsnCode":           "8471",
				"sku":               "W-1",
				"tax":               "18%",
				"barcode":           "4006381333931",
				"warehouseLocation": "Rack A",
				"image":             "https://example.com/w.png",
			},
			want: Product{
				ProductName:       "Widget",
				HSNCode:           Ptr("8471"),
				SKU:               Ptr("W-1"),
				Tax:               Ptr(18.0),
				Barcode:           "4006381333931",
				WarehouseLocation: Ptr("Rack A"),
				Image:             Ptr("https://example.com/w.png"),
			},
		},
		{
			name: "empty optionals become nil",
			row:  RawRow{"productName": "Widget", "sku": "", "hsnCode": "  ", "image": nil},
			want: Product{ProductName: "Widget", Barcode: "GEN"},
		},
		{
			name: "unparseable tax swallowed",
			row:  RawRow{"productName": "Widget", "tax": "abc"},
			want: Product{ProductName: "Widget", Barcode: "GEN"},
		},
		{
			name: "numeric cells formatted",
			row:  RawRow{"productName": "Widget", "hsnCode": 8471.0, "barcode": 4006381333931.0, "tax": 5.0},
			want: Product{ProductName: "Widget", HSNCode: Ptr("8471"), Tax: Ptr(5.0), Barcode: "4006381333931"},
		},
		{
			name: "blank barcode generated",
			row:  RawRow{"productName": "Widget", "barcode": "  "},
			want: Product{ProductName: "Widget", Barcode: "GEN"},
		},
		{
			name: "text kept verbatim apart from whitespace",
			row:  RawRow{"productName": "\"Deluxe\"", "sku": "=A1", "warehouseLocation": " 'Rack' "},
			want: Product{ProductName: "\"Deluxe\"", SKU: Ptr("=A1"), WarehouseLocation: Ptr("'Rack'"), Barcode: "GEN"},
		},
		{
			name: "supplied id ignored",
			row:  RawRow{"productName": "Widget", "id": "caller", "barcode": "B1"},
			want: Product{ProductName: "Widget", Barcode: "B1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeProduct(tt.row, fixedBarcode("GEN"))
			if err != nil {
				t.Fatalf("NormalizeProduct() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeProduct() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNormalizeProduct_Deterministic(t *testing.T) {
	row := RawRow{"productName": "Widget", "sku": "S", "tax": "5", "barcode": "B"}

	a, err := NormalizeProduct(row, fixedBarcode("unused"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := NormalizeProduct(row, fixedBarcode("other"))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same row normalized differently: %+v vs %+v", a, b)
	}
}

func TestNormalizeProduct_MissingName(t *testing.T) {
	_, err := NormalizeProduct(RawRow{"sku": "S"}, fixedBarcode("GEN"))
	if !IsValidation(err) {
		t.Errorf("NormalizeProduct() error = %v, want ValidationError", err)
	}
}

// =============================================================================
// NormalizeProductUpdate
// =============================================================================

func TestNormalizeProductUpdate(t *testing.T) {
	u, err := NormalizeProductUpdate(RawRow{
		"id":      "p1",
		"sku":     "",
		"tax":     "12",
		"barcode": "",
	})
	if err != nil {
		t.Fatalf("NormalizeProductUpdate() error = %v", err)
	}

	if u.ProductName.Set {
		t.Error("productName should not be set when absent")
	}
	if !u.SKU.Set || u.SKU.Value != nil {
		t.Errorf("sku = %+v, want set to nil", u.SKU)
	}
	if !u.Tax.Set || u.Tax.Value == nil || *u.Tax.Value != 12 {
		t.Errorf("tax = %+v, want set to 12", u.Tax)
	}
	if !u.Barcode.Set || u.Barcode.Value != "" {
		t.Errorf("barcode = %+v, want set verbatim to empty", u.Barcode)
	}
	if u.Image.Set {
		t.Error("image should not be set when absent")
	}
}

func TestNormalizeProductUpdate_RejectsEmptyName(t *testing.T) {
	_, err := NormalizeProductUpdate(RawRow{"id": "p1", "productName": ""})
	if !IsValidation(err) {
		t.Errorf("NormalizeProductUpdate() error = %v, want ValidationError", err)
	}
}

func TestProductUpdateApply(t *testing.T) {
	p := Product{ID: "p1", ProductName: "A", SKU: Ptr("S"), Barcode: "B"}
	u := ProductUpdate{ProductName: SetTo("B"), SKU: SetTo[*string](nil)}

	got := u.Apply(p)
	want := Product{ID: "p1", ProductName: "B", Barcode: "B"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Apply() = %+v, want %+v", got, want)
	}
}

// =============================================================================
// Vendors
// =============================================================================

func TestNormalizeVendor(t *testing.T) {
	row := RawRow{
		"companyName":   "Acme",
		"contactNumber": 9876543210.0,
		"email":         "ops@acme.test",
		"firstName":     "Asha",
		"lastName":      "Rao",
		"salutation":    "",
		"state":         "KA",
	}

	got, err := NormalizeVendor(row)
	if err != nil {
		t.Fatalf("NormalizeVendor() error = %v", err)
	}
	if got.ContactNumber != "9876543210" {
		t.Errorf("ContactNumber = %q, want %q", got.ContactNumber, "9876543210")
	}
	if got.Salutation != nil {
		t.Errorf("Salutation = %v, want nil", *got.Salutation)
	}
	if got.State == nil || *got.State != "KA" {
		t.Errorf("State = %v, want KA", got.State)
	}

	delete(row, "email")
	if _, err := NormalizeVendor(row); !IsValidation(err) {
		t.Errorf("missing email error = %v, want ValidationError", err)
	}
}
