// Package memory is an in-process catalog store. It is the default driver
// and backs most tests. One mutex guards every read and write, so barcode
// checks are atomic with the insert or update that depends on them.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/JonMunkholm/invbackoffice/internal/core"
)

// Store holds products and vendors in insertion order.
type Store struct {
	mu sync.RWMutex

	products  []core.Product
	byBarcode map[string]string // barcode -> product id

	vendors []core.Vendor
}

var (
	_ core.ProductStore = (*Store)(nil)
	_ core.VendorStore  = (*Store)(nil)
)

// New creates an empty store.
func New() *Store {
	return &Store{byBarcode: make(map[string]string)}
}

// CreateProduct implements core.ProductStore.
func (s *Store) CreateProduct(ctx context.Context, p core.Product) (core.Product, error) {
	if err := ctx.Err(); err != nil {
		return core.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byBarcode[p.Barcode]; taken {
		return core.Product{}, &core.ConstraintError{Field: core.FieldBarcode, Value: p.Barcode}
	}
	return s.insertLocked(p), nil
}

// CreateProducts implements core.ProductStore. The whole batch is applied
// under one lock; the first record with a given barcode wins.
func (s *Store) CreateProducts(ctx context.Context, products []core.Product) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	inserted := 0
	for _, p := range products {
		if _, taken := s.byBarcode[p.Barcode]; taken {
			continue
		}
		s.insertLocked(p)
		inserted++
	}
	return inserted, nil
}

func (s *Store) insertLocked(p core.Product) core.Product {
	p = cloneProduct(p)
	p.ID = uuid.NewString()
	s.products = append(s.products, p)
	s.byBarcode[p.Barcode] = p.ID
	return cloneProduct(p)
}

// ListProducts implements core.ProductStore.
func (s *Store) ListProducts(ctx context.Context) ([]core.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.Product, len(s.products))
	for i, p := range s.products {
		out[i] = cloneProduct(p)
	}
	return out, nil
}

// UpdateProduct implements core.ProductStore.
func (s *Store) UpdateProduct(ctx context.Context, id string, u core.ProductUpdate) (core.Product, error) {
	if err := ctx.Err(); err != nil {
		return core.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.productIndexLocked(id)
	if i < 0 {
		return core.Product{}, &core.NotFoundError{Entity: "Product", ID: id}
	}

	current := s.products[i]
	next := cloneProduct(u.Apply(current))

	if next.Barcode != current.Barcode {
		if owner, taken := s.byBarcode[next.Barcode]; taken && owner != id {
			return core.Product{}, &core.ConstraintError{Field: core.FieldBarcode, Value: next.Barcode}
		}
		delete(s.byBarcode, current.Barcode)
		s.byBarcode[next.Barcode] = id
	}

	s.products[i] = next
	return cloneProduct(next), nil
}

// DeleteProduct implements core.ProductStore.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.productIndexLocked(id)
	if i < 0 {
		return &core.NotFoundError{Entity: "Product", ID: id}
	}

	delete(s.byBarcode, s.products[i].Barcode)
	s.products = append(s.products[:i], s.products[i+1:]...)
	return nil
}

func (s *Store) productIndexLocked(id string) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}

// CreateVendor implements core.VendorStore.
func (s *Store) CreateVendor(ctx context.Context, v core.Vendor) (core.Vendor, error) {
	if err := ctx.Err(); err != nil {
		return core.Vendor{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v = cloneVendor(v)
	v.ID = uuid.NewString()
	s.vendors = append(s.vendors, v)
	return cloneVendor(v), nil
}

// ListVendors implements core.VendorStore.
func (s *Store) ListVendors(ctx context.Context) ([]core.Vendor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.Vendor, len(s.vendors))
	for i, v := range s.vendors {
		out[i] = cloneVendor(v)
	}
	return out, nil
}

// UpdateVendor implements core.VendorStore.
func (s *Store) UpdateVendor(ctx context.Context, id string, u core.VendorUpdate) (core.Vendor, error) {
	if err := ctx.Err(); err != nil {
		return core.Vendor{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.vendors {
		if s.vendors[i].ID == id {
			s.vendors[i] = cloneVendor(u.Apply(s.vendors[i]))
			return cloneVendor(s.vendors[i]), nil
		}
	}
	return core.Vendor{}, &core.NotFoundError{Entity: "Vendor", ID: id}
}

// DeleteVendor implements core.VendorStore.
func (s *Store) DeleteVendor(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.vendors {
		if s.vendors[i].ID == id {
			s.vendors = append(s.vendors[:i], s.vendors[i+1:]...)
			return nil
		}
	}
	return &core.NotFoundError{Entity: "Vendor", ID: id}
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneProduct(p core.Product) core.Product {
	p.HSNCode = cloneString(p.HSNCode)
	p.SKU = cloneString(p.SKU)
	p.WarehouseLocation = cloneString(p.WarehouseLocation)
	p.Image = cloneString(p.Image)
	if p.Tax != nil {
		t := *p.Tax
		p.Tax = &t
	}
	return p
}

func cloneVendor(v core.Vendor) core.Vendor {
	v.GSTNumber = cloneString(v.GSTNumber)
	v.BillingAddress = cloneString(v.BillingAddress)
	v.ShippingAddress = cloneString(v.ShippingAddress)
	v.Salutation = cloneString(v.Salutation)
	v.State = cloneString(v.State)
	v.Code = cloneString(v.Code)
	v.PaymentTerms = cloneString(v.PaymentTerms)
	return v
}

// Truncate removes every product and vendor.
func (s *Store) Truncate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = nil
	s.byBarcode = make(map[string]string)
	s.vendors = nil
	return nil
}
