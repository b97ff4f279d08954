package metrics

import (
	"context"
	"time"

	"github.com/JonMunkholm/invbackoffice/internal/core"
)

// productStore decorates a core.ProductStore with timing.
type productStore struct {
	next core.ProductStore
	m    *Metrics
}

// InstrumentProducts wraps s so every call is timed and failures counted.
func (m *Metrics) InstrumentProducts(s core.ProductStore) core.ProductStore {
	return &productStore{next: s, m: m}
}

func (s *productStore) CreateProduct(ctx context.Context, p core.Product) (created core.Product, err error) {
	defer s.m.observe("create_product", time.Now(), &err)
	return s.next.CreateProduct(ctx, p)
}

func (s *productStore) CreateProducts(ctx context.Context, products []core.Product) (n int, err error) {
	defer s.m.observe("create_products", time.Now(), &err)
	return s.next.CreateProducts(ctx, products)
}

func (s *productStore) ListProducts(ctx context.Context) (products []core.Product, err error) {
	defer s.m.observe("list_products", time.Now(), &err)
	return s.next.ListProducts(ctx)
}

func (s *productStore) UpdateProduct(ctx context.Context, id string, u core.ProductUpdate) (updated core.Product, err error) {
	defer s.m.observe("update_product", time.Now(), &err)
	return s.next.UpdateProduct(ctx, id, u)
}

func (s *productStore) DeleteProduct(ctx context.Context, id string) (err error) {
	defer s.m.observe("delete_product", time.Now(), &err)
	return s.next.DeleteProduct(ctx, id)
}

// vendorStore decorates a core.VendorStore with timing.
type vendorStore struct {
	next core.VendorStore
	m    *Metrics
}

// InstrumentVendors wraps s so every call is timed and failures counted.
func (m *Metrics) InstrumentVendors(s core.VendorStore) core.VendorStore {
	return &vendorStore{next: s, m: m}
}

func (s *vendorStore) CreateVendor(ctx context.Context, v core.Vendor) (created core.Vendor, err error) {
	defer s.m.observe("create_vendor", time.Now(), &err)
	return s.next.CreateVendor(ctx, v)
}

func (s *vendorStore) ListVendors(ctx context.Context) (vendors []core.Vendor, err error) {
	defer s.m.observe("list_vendors", time.Now(), &err)
	return s.next.ListVendors(ctx)
}

func (s *vendorStore) UpdateVendor(ctx context.Context, id string, u core.VendorUpdate) (updated core.Vendor, err error) {
	defer s.m.observe("update_vendor", time.Now(), &err)
	return s.next.UpdateVendor(ctx, id, u)
}

func (s *vendorStore) DeleteVendor(ctx context.Context, id string) (err error) {
	defer s.m.observe("delete_vendor", time.Now(), &err)
	return s.next.DeleteVendor(ctx, id)
}
