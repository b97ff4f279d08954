package core

// validation.go is the schema step that runs before normalization.
//
// Input rows are loosely typed, so validation only checks shape:
//  1. Required fields are present and non-empty
//  2. Every known field holds a scalar (text, number, or null)
//
// Value-level coercion, such as tax parsing, belongs to the normalizer and
// never fails.

import "fmt"

// ValidateRow checks a full record against specs and returns the first error.
func ValidateRow(row RawRow, specs []FieldSpec) error {
	return validateRow(row, specs, false)
}

// ValidatePartialRow checks an update body. Required fields are only checked
// when the key is present.
func ValidatePartialRow(row RawRow, specs []FieldSpec) error {
	return validateRow(row, specs, true)
}

// ValidateProductRow checks a product create body or sheet row.
func ValidateProductRow(row RawRow) error {
	return ValidateRow(row, ProductFields)
}

// ValidateVendorRow checks a vendor create body.
func ValidateVendorRow(row RawRow) error {
	return ValidateRow(row, VendorFields)
}

func validateRow(row RawRow, specs []FieldSpec, partial bool) error {
	for _, spec := range specs {
		v, present := row[spec.Name]

		if present && !isScalar(v) {
			return &ValidationError{
				Field:   spec.Name,
				Value:   fmt.Sprint(v),
				Message: fmt.Sprintf("%s must be text or a number", spec.Label),
			}
		}

		if !spec.Required || (partial && !present) {
			continue
		}
		if requiredText(v) == "" {
			return &ValidationError{
				Field:   spec.Name,
				Message: fmt.Sprintf("%s is required", spec.Label),
			}
		}
	}
	return nil
}
