package core

import "context"

// RawRow is one loosely typed input record: a decoded spreadsheet row or a
// JSON request body. Values are string, float64, bool, nil, or nested JSON.
type RawRow map[string]any

// Has reports whether key is present, even when its value is nil.
func (r RawRow) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// FieldType represents the expected data type for an input field.
type FieldType int

const (
	FieldText FieldType = iota
	FieldNumeric
)

// FieldSpec defines validation rules for a single input field.
type FieldSpec struct {
	Name     string    // Field key as it appears in sheet headers and JSON bodies
	DBColumn string    // Storage column name
	Label    string    // Display label for column pickers
	Type     FieldType // Expected data type
	Required bool      // Value must be present and non-empty
}

// ModuleInfo contains display information about a catalog module.
type ModuleInfo struct {
	Key     string   // Unique identifier: "products"
	Label   string   // Display name: "Products"
	Columns []string // Selectable column keys, in display order
}

// ModuleDefinition contains everything needed to validate and present a module.
type ModuleDefinition struct {
	Info       ModuleInfo
	FieldSpecs []FieldSpec
}

// Product is a canonical catalog record.
// Nil pointer fields are the explicit "no value" marker and encode as null.
type Product struct {
	ID                string   `json:"id"`
	ProductName       string   `json:"productName"`
	HSNCode           *string  `json:"hsnCode"`
	SKU               *string  `json:"sku"`
	Tax               *float64 `json:"tax"`
	Barcode           string   `json:"barcode"`
	WarehouseLocation *string  `json:"warehouseLocation"`
	Image             *string  `json:"image"`
}

// Change is one field of a partial update. Set is false when the caller did
// not supply the field, in which case Value is ignored.
type Change[T any] struct {
	Set   bool
	Value T
}

// SetTo returns a Change that replaces the field with v.
func SetTo[T any](v T) Change[T] {
	return Change[T]{Set: true, Value: v}
}

func (c Change[T]) apply(dst *T) {
	if c.Set {
		*dst = c.Value
	}
}

// ProductUpdate is the partial field set applied by an update.
type ProductUpdate struct {
	ProductName       Change[string]
	HSNCode           Change[*string]
	SKU               Change[*string]
	Tax               Change[*float64]
	Barcode           Change[string]
	WarehouseLocation Change[*string]
	Image             Change[*string]
}

// Apply returns p with every supplied field replaced. The id is never touched.
func (u ProductUpdate) Apply(p Product) Product {
	u.ProductName.apply(&p.ProductName)
	u.HSNCode.apply(&p.HSNCode)
	u.SKU.apply(&p.SKU)
	u.Tax.apply(&p.Tax)
	u.Barcode.apply(&p.Barcode)
	u.WarehouseLocation.apply(&p.WarehouseLocation)
	u.Image.apply(&p.Image)
	return p
}

// Vendor is a supplier record. It shares the product store contract minus
// the barcode policy.
type Vendor struct {
	ID              string  `json:"id"`
	CompanyName     string  `json:"companyName"`
	GSTNumber       *string `json:"gstNumber"`
	BillingAddress  *string `json:"billingAddress"`
	ShippingAddress *string `json:"shippingAddress"`
	ContactNumber   string  `json:"contactNumber"`
	Email           string  `json:"email"`
	Salutation      *string `json:"salutation"`
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	State           *string `json:"state"`
	Code            *string `json:"code"`
	PaymentTerms    *string `json:"paymentTerms"`
}

// VendorUpdate is the partial field set applied by a vendor update.
type VendorUpdate struct {
	CompanyName     Change[string]
	GSTNumber       Change[*string]
	BillingAddress  Change[*string]
	ShippingAddress Change[*string]
	ContactNumber   Change[string]
	Email           Change[string]
	Salutation      Change[*string]
	FirstName       Change[string]
	LastName        Change[string]
	State           Change[*string]
	Code            Change[*string]
	PaymentTerms    Change[*string]
}

// Apply returns v with every supplied field replaced.
func (u VendorUpdate) Apply(v Vendor) Vendor {
	u.CompanyName.apply(&v.CompanyName)
	u.GSTNumber.apply(&v.GSTNumber)
	u.BillingAddress.apply(&v.BillingAddress)
	u.ShippingAddress.apply(&v.ShippingAddress)
	u.ContactNumber.apply(&v.ContactNumber)
	u.Email.apply(&v.Email)
	u.Salutation.apply(&v.Salutation)
	u.FirstName.apply(&v.FirstName)
	u.LastName.apply(&v.LastName)
	u.State.apply(&v.State)
	u.Code.apply(&v.Code)
	u.PaymentTerms.apply(&v.PaymentTerms)
	return v
}

// ProductStore persists catalog records. Implementations enforce barcode
// uniqueness atomically with every write.
type ProductStore interface {
	// CreateProduct inserts one record and returns it with its assigned id.
	// Returns *ConstraintError if the barcode is already taken.
	CreateProduct(ctx context.Context, p Product) (Product, error)

	// CreateProducts inserts a batch, silently skipping records whose barcode
	// already exists in the store or earlier in the batch. Returns the number
	// of records actually inserted.
	CreateProducts(ctx context.Context, products []Product) (int, error)

	// ListProducts returns every record in insertion order.
	ListProducts(ctx context.Context) ([]Product, error)

	// UpdateProduct applies u to the record with the given id.
	// Returns *NotFoundError or *ConstraintError.
	UpdateProduct(ctx context.Context, id string, u ProductUpdate) (Product, error)

	// DeleteProduct permanently removes a record. Returns *NotFoundError.
	DeleteProduct(ctx context.Context, id string) error
}

// VendorStore persists vendor records.
type VendorStore interface {
	CreateVendor(ctx context.Context, v Vendor) (Vendor, error)
	ListVendors(ctx context.Context) ([]Vendor, error)
	UpdateVendor(ctx context.Context, id string, u VendorUpdate) (Vendor, error)
	DeleteVendor(ctx context.Context, id string) error
}

// Workbook converts between spreadsheet bytes and records.
type Workbook interface {
	Parse(data []byte) ([]RawRow, error)
	WriteProducts(products []Product) ([]byte, error)
}

// ImportResult summarizes one bulk import. The store reports only an
// inserted count, so SkippedCount is derived and does not say which rows.
type ImportResult struct {
	InsertedCount int  `json:"insertedCount"`
	TotalRows     int  `json:"totalRows"`
	SkippedCount  int  `json:"skippedCount"`
	NoData        bool `json:"noData,omitempty"`
}
