package core

// Product field keys as they appear in sheet headers and JSON bodies.
const (
	FieldID                = "id"
	FieldProductName       = "productName"
	FieldHSNCode           = "hsnCode"
	FieldSKU               = "sku"
	FieldTax               = "tax"
	FieldBarcode           = "barcode"
	FieldWarehouseLocation = "warehouseLocation"
	FieldImage             = "image"
)

// Module keys.
const (
	ModuleProducts = "products"
	ModuleVendors  = "vendors"
)

// ProductFields lists the product fields in display and export order.
var ProductFields = []FieldSpec{
	{Name: FieldProductName, DBColumn: "product_name", Label: "Product Name", Type: FieldText, Required: true},
	{Name: FieldHSNCode, DBColumn: "hsn_code", Label: "HSN Code", Type: FieldText},
	{Name: FieldSKU, DBColumn: "sku", Label: "SKU", Type: FieldText},
	{Name: FieldTax, DBColumn: "tax", Label: "Tax", Type: FieldNumeric},
	{Name: FieldBarcode, DBColumn: "barcode", Label: "Barcode", Type: FieldText},
	{Name: FieldWarehouseLocation, DBColumn: "warehouse_location", Label: "WHL (Warehouse Location)", Type: FieldText},
	{Name: FieldImage, DBColumn: "image", Label: "Product Image", Type: FieldText},
}

// VendorFields lists the vendor fields in display order.
var VendorFields = []FieldSpec{
	{Name: "companyName", DBColumn: "company_name", Label: "Company Name", Required: true},
	{Name: "gstNumber", DBColumn: "gst_number", Label: "GST Reg. Number"},
	{Name: "billingAddress", DBColumn: "billing_address", Label: "Billing Address"},
	{Name: "shippingAddress", DBColumn: "shipping_address", Label: "Shipping Address"},
	{Name: "contactNumber", DBColumn: "contact_number", Label: "Contact Number", Required: true},
	{Name: "email", DBColumn: "email", Label: "Email", Required: true},
	{Name: "salutation", DBColumn: "salutation", Label: "Salutation"},
	{Name: "firstName", DBColumn: "first_name", Label: "First Name", Required: true},
	{Name: "lastName", DBColumn: "last_name", Label: "Last Name", Required: true},
	{Name: "state", DBColumn: "state", Label: "State"},
	{Name: "code", DBColumn: "code", Label: "Code"},
	{Name: "paymentTerms", DBColumn: "payment_terms", Label: "Payment Terms"},
}

func init() {
	Register(ModuleDefinition{
		Info:       ModuleInfo{Key: ModuleProducts, Label: "Products"},
		FieldSpecs: ProductFields,
	})
	Register(ModuleDefinition{
		Info:       ModuleInfo{Key: ModuleVendors, Label: "Vendors"},
		FieldSpecs: VendorFields,
	})
}
