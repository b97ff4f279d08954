package core

import "strings"

// NormalizeProduct converts a validated create row into a canonical record.
// An absent or blank barcode is filled from gen; a supplied one is kept as is.
// Unknown keys and any supplied id are ignored.
func NormalizeProduct(row RawRow, gen BarcodeGenerator) (Product, error) {
	p := Product{
		ProductName:       requiredText(row[FieldProductName]),
		HSNCode:           optionalText(row[FieldHSNCode]),
		SKU:               optionalText(row[FieldSKU]),
		Tax:               optionalNumber(row[FieldTax]),
		WarehouseLocation: optionalText(row[FieldWarehouseLocation]),
		Image:             optionalText(row[FieldImage]),
	}
	if p.ProductName == "" {
		return Product{}, &ValidationError{Field: FieldProductName, Message: "Product Name is required"}
	}

	if b, ok := cellText(row[FieldBarcode]); ok && strings.TrimSpace(b) != "" {
		p.Barcode = b
	} else {
		p.Barcode = gen()
	}
	return p, nil
}

// NormalizeProductUpdate converts an update body into a partial field set.
// Only keys present in row are applied. The barcode is taken verbatim,
// including the empty string, and is never generated.
func NormalizeProductUpdate(row RawRow) (ProductUpdate, error) {
	if err := ValidatePartialRow(row, ProductFields); err != nil {
		return ProductUpdate{}, err
	}

	var u ProductUpdate
	if row.Has(FieldProductName) {
		u.ProductName = SetTo(requiredText(row[FieldProductName]))
	}
	if row.Has(FieldHSNCode) {
		u.HSNCode = SetTo(optionalText(row[FieldHSNCode]))
	}
	if row.Has(FieldSKU) {
		u.SKU = SetTo(optionalText(row[FieldSKU]))
	}
	if row.Has(FieldTax) {
		u.Tax = SetTo(optionalNumber(row[FieldTax]))
	}
	if row.Has(FieldBarcode) {
		b, _ := cellText(row[FieldBarcode])
		u.Barcode = SetTo(b)
	}
	if row.Has(FieldWarehouseLocation) {
		u.WarehouseLocation = SetTo(optionalText(row[FieldWarehouseLocation]))
	}
	if row.Has(FieldImage) {
		u.Image = SetTo(optionalText(row[FieldImage]))
	}
	return u, nil
}

// NormalizeVendor converts a validated create body into a vendor record.
func NormalizeVendor(row RawRow) (Vendor, error) {
	if err := ValidateVendorRow(row); err != nil {
		return Vendor{}, err
	}
	return Vendor{
		CompanyName:     requiredText(row["companyName"]),
		GSTNumber:       optionalText(row["gstNumber"]),
		BillingAddress:  optionalText(row["billingAddress"]),
		ShippingAddress: optionalText(row["shippingAddress"]),
		ContactNumber:   requiredText(row["contactNumber"]),
		Email:           requiredText(row["email"]),
		Salutation:      optionalText(row["salutation"]),
		FirstName:       requiredText(row["firstName"]),
		LastName:        requiredText(row["lastName"]),
		State:           optionalText(row["state"]),
		Code:            optionalText(row["code"]),
		PaymentTerms:    optionalText(row["paymentTerms"]),
	}, nil
}

// NormalizeVendorUpdate converts a vendor update body into a partial field set.
func NormalizeVendorUpdate(row RawRow) (VendorUpdate, error) {
	if err := ValidatePartialRow(row, VendorFields); err != nil {
		return VendorUpdate{}, err
	}

	required := func(key string) Change[string] {
		if !row.Has(key) {
			return Change[string]{}
		}
		return SetTo(requiredText(row[key]))
	}
	optional := func(key string) Change[*string] {
		if !row.Has(key) {
			return Change[*string]{}
		}
		return SetTo(optionalText(row[key]))
	}

	return VendorUpdate{
		CompanyName:     required("companyName"),
		GSTNumber:       optional("gstNumber"),
		BillingAddress:  optional("billingAddress"),
		ShippingAddress: optional("shippingAddress"),
		ContactNumber:   required("contactNumber"),
		Email:           required("email"),
		Salutation:      optional("salutation"),
		FirstName:       required("firstName"),
		LastName:        required("lastName"),
		State:           optional("state"),
		Code:            optional("code"),
		PaymentTerms:    optional("paymentTerms"),
	}, nil
}
