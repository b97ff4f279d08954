package core

import "context"

// CreateVendor validates and stores one vendor.
func (s *Service) CreateVendor(ctx context.Context, row RawRow) (Vendor, error) {
	v, err := NormalizeVendor(row)
	if err != nil {
		return Vendor{}, err
	}
	return s.vendors.CreateVendor(ctx, v)
}

// ListVendors returns every vendor in insertion order.
func (s *Service) ListVendors(ctx context.Context) ([]Vendor, error) {
	return s.vendors.ListVendors(ctx)
}

// UpdateVendor applies the fields present in row to the vendor named by row["id"].
func (s *Service) UpdateVendor(ctx context.Context, row RawRow) (Vendor, error) {
	id := requiredText(row[FieldID])
	if id == "" {
		return Vendor{}, &ValidationError{Field: FieldID, Message: "Vendor ID is required"}
	}

	u, err := NormalizeVendorUpdate(row)
	if err != nil {
		return Vendor{}, err
	}
	return s.vendors.UpdateVendor(ctx, id, u)
}

// DeleteVendor permanently removes one vendor.
func (s *Service) DeleteVendor(ctx context.Context, id string) error {
	if id == "" {
		return &ValidationError{Field: FieldID, Message: "Vendor ID is required"}
	}
	return s.vendors.DeleteVendor(ctx, id)
}
