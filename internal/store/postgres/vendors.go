package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/JonMunkholm/invbackoffice/internal/core"
)

const vendorColumns = `id::text, company_name, gst_number, billing_address, shipping_address,
	contact_number, email, salutation, first_name, last_name, state, code, payment_terms`

func scanVendor(row pgx.Row) (core.Vendor, error) {
	var v core.Vendor
	err := row.Scan(&v.ID, &v.CompanyName, &v.GSTNumber, &v.BillingAddress, &v.ShippingAddress,
		&v.ContactNumber, &v.Email, &v.Salutation, &v.FirstName, &v.LastName, &v.State, &v.Code, &v.PaymentTerms)
	return v, err
}

// CreateVendor implements core.VendorStore.
func (s *Store) CreateVendor(ctx context.Context, v core.Vendor) (core.Vendor, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	row := s.db.QueryRow(ctx, `
INSERT INTO vendors (id, company_name, gst_number, billing_address, shipping_address,
	contact_number, email, salutation, first_name, last_name, state, code, payment_terms)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING `+vendorColumns,
		uuid.NewString(), v.CompanyName, v.GSTNumber, v.BillingAddress, v.ShippingAddress,
		v.ContactNumber, v.Email, v.Salutation, v.FirstName, v.LastName, v.State, v.Code, v.PaymentTerms)

	created, err := scanVendor(row)
	if err != nil {
		return core.Vendor{}, classify("create vendor", err, "Vendor", "", "")
	}
	return created, nil
}

// ListVendors implements core.VendorStore.
func (s *Store) ListVendors(ctx context.Context) ([]core.Vendor, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.Query(ctx, "SELECT "+vendorColumns+" FROM vendors ORDER BY seq")
	if err != nil {
		return nil, classify("list vendors", err, "Vendor", "", "")
	}
	defer rows.Close()

	vendors := []core.Vendor{}
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, classify("scan vendor", err, "Vendor", "", "")
		}
		vendors = append(vendors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list vendors", err, "Vendor", "", "")
	}
	return vendors, nil
}

func vendorAssignments(u core.VendorUpdate) ([]string, []any) {
	def, _ := core.Get(core.ModuleVendors)

	var (
		sets []string
		args []any
	)
	add := func(field string, set bool, value any) {
		if !set {
			return
		}
		spec, _ := def.FieldByName(field)
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", spec.DBColumn, len(args)))
	}

	add("companyName", u.CompanyName.Set, u.CompanyName.Value)
	add("gstNumber", u.GSTNumber.Set, u.GSTNumber.Value)
	add("billingAddress", u.BillingAddress.Set, u.BillingAddress.Value)
	add("shippingAddress", u.ShippingAddress.Set, u.ShippingAddress.Value)
	add("contactNumber", u.ContactNumber.Set, u.ContactNumber.Value)
	add("email", u.Email.Set, u.Email.Value)
	add("salutation", u.Salutation.Set, u.Salutation.Value)
	add("firstName", u.FirstName.Set, u.FirstName.Value)
	add("lastName", u.LastName.Set, u.LastName.Value)
	add("state", u.State.Set, u.State.Value)
	add("code", u.Code.Set, u.Code.Value)
	add("paymentTerms", u.PaymentTerms.Set, u.PaymentTerms.Value)
	return sets, args
}

// UpdateVendor implements core.VendorStore.
func (s *Store) UpdateVendor(ctx context.Context, id string, u core.VendorUpdate) (core.Vendor, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	sets, args := vendorAssignments(u)
	if len(sets) == 0 {
		v, err := scanVendor(s.db.QueryRow(ctx, "SELECT "+vendorColumns+" FROM vendors WHERE id = $1", id))
		if err != nil {
			return core.Vendor{}, classify("get vendor", err, "Vendor", id, "")
		}
		return v, nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE vendors SET %s, updated_at = now() WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), vendorColumns)

	updated, err := scanVendor(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		return core.Vendor{}, classify("update vendor", err, "Vendor", id, "")
	}
	return updated, nil
}

// DeleteVendor implements core.VendorStore.
func (s *Store) DeleteVendor(ctx context.Context, id string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tag, err := s.db.Exec(ctx, "DELETE FROM vendors WHERE id = $1", id)
	if err != nil {
		return classify("delete vendor", err, "Vendor", id, "")
	}
	if tag.RowsAffected() == 0 {
		return &core.NotFoundError{Entity: "Vendor", ID: id}
	}
	return nil
}
