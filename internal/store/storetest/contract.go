// Package storetest holds the behavioral contract every catalog store
// adapter must satisfy. Adapter packages call RunProductStore and
// RunVendorStore from their own tests with a factory that returns an empty
// store.
package storetest

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/invbackoffice/internal/core"
)

// ProductFactory returns an empty store for one subtest.
type ProductFactory func(t *testing.T) core.ProductStore

// VendorFactory returns an empty store for one subtest.
type VendorFactory func(t *testing.T) core.VendorStore

func product(name, barcode string) core.Product {
	return core.Product{ProductName: name, Barcode: barcode}
}

func barcodes(products []core.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Barcode
	}
	return out
}

// RunProductStore exercises the core.ProductStore contract.
func RunProductStore(t *testing.T, newStore ProductFactory) {
	ctx := context.Background()

	t.Run("create assigns id", func(t *testing.T) {
		s := newStore(t)

		in := core.Product{
			ID:          "caller-supplied",
			ProductName: "Widget",
			SKU:         core.Ptr("W-1"),
			Tax:         core.Ptr(18.0),
			Barcode:     "B1",
		}
		got, err := s.CreateProduct(ctx, in)
		require.NoError(t, err)

		assert.NotEmpty(t, got.ID)
		assert.NotEqual(t, "caller-supplied", got.ID)
		assert.Equal(t, "Widget", got.ProductName)
		assert.Equal(t, core.Ptr("W-1"), got.SKU)
		assert.Equal(t, core.Ptr(18.0), got.Tax)
		assert.Nil(t, got.HSNCode)

		list, err := s.ListProducts(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, got, list[0])
	})

	t.Run("create rejects duplicate barcode", func(t *testing.T) {
		s := newStore(t)

		_, err := s.CreateProduct(ctx, product("A", "B1"))
		require.NoError(t, err)

		_, err = s.CreateProduct(ctx, product("B", "B1"))
		var ce *core.ConstraintError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, core.FieldBarcode, ce.Field)

		list, err := s.ListProducts(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("bulk skips existing and intra-batch duplicates", func(t *testing.T) {
		s := newStore(t)

		_, err := s.CreateProduct(ctx, product("existing", "X"))
		require.NoError(t, err)

		n, err := s.CreateProducts(ctx, []core.Product{
			product("first", "A"),
			product("clash", "X"),
			product("second", "B"),
			product("repeat", "A"),
		})
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		list, err := s.ListProducts(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"X", "A", "B"}, barcodes(list))
		assert.Equal(t, "first", list[1].ProductName)
	})

	t.Run("bulk is idempotent", func(t *testing.T) {
		s := newStore(t)
		batch := []core.Product{product("A", "1"), product("B", "2"), product("C", "3")}

		n, err := s.CreateProducts(ctx, batch)
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		n, err = s.CreateProducts(ctx, batch)
		require.NoError(t, err)
		assert.Equal(t, 0, n)

		list, err := s.ListProducts(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 3)
	})

	t.Run("bulk with empty batch", func(t *testing.T) {
		s := newStore(t)

		n, err := s.CreateProducts(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("list preserves insertion order", func(t *testing.T) {
		s := newStore(t)
		for _, b := range []string{"c", "a", "b"} {
			_, err := s.CreateProduct(ctx, product("P"+b, b))
			require.NoError(t, err)
		}

		list, err := s.ListProducts(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "a", "b"}, barcodes(list))
	})

	t.Run("update applies supplied fields only", func(t *testing.T) {
		s := newStore(t)
		created, err := s.CreateProduct(ctx, core.Product{
			ProductName: "Widget",
			SKU:         core.Ptr("W-1"),
			Image:       core.Ptr("img.png"),
			Barcode:     "B1",
		})
		require.NoError(t, err)

		got, err := s.UpdateProduct(ctx, created.ID, core.ProductUpdate{
			ProductName: core.SetTo("Widget v2"),
			Image:       core.SetTo[*string](nil),
			Tax:         core.SetTo(core.Ptr(5.0)),
		})
		require.NoError(t, err)

		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "Widget v2", got.ProductName)
		assert.Equal(t, core.Ptr("W-1"), got.SKU)
		assert.Nil(t, got.Image)
		assert.Equal(t, core.Ptr(5.0), got.Tax)
		assert.Equal(t, "B1", got.Barcode)

		list, err := s.ListProducts(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, got, list[0])
	})

	t.Run("update unknown id", func(t *testing.T) {
		s := newStore(t)

		_, err := s.UpdateProduct(ctx, "00000000-0000-4000-8000-000000000000", core.ProductUpdate{
			ProductName: core.SetTo("x"),
		})
		var nf *core.NotFoundError
		assert.ErrorAs(t, err, &nf)
	})

	t.Run("update enforces barcode uniqueness", func(t *testing.T) {
		s := newStore(t)
		a, err := s.CreateProduct(ctx, product("A", "BA"))
		require.NoError(t, err)
		_, err = s.CreateProduct(ctx, product("B", "BB"))
		require.NoError(t, err)

		_, err = s.UpdateProduct(ctx, a.ID, core.ProductUpdate{Barcode: core.SetTo("BB")})
		var ce *core.ConstraintError
		require.ErrorAs(t, err, &ce)

		same, err := s.UpdateProduct(ctx, a.ID, core.ProductUpdate{Barcode: core.SetTo("BA")})
		require.NoError(t, err)
		assert.Equal(t, "BA", same.Barcode)

		moved, err := s.UpdateProduct(ctx, a.ID, core.ProductUpdate{Barcode: core.SetTo("BC")})
		require.NoError(t, err)
		assert.Equal(t, "BC", moved.Barcode)

		_, err = s.CreateProduct(ctx, product("reuse", "BA"))
		assert.NoError(t, err)
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)
		a, err := s.CreateProduct(ctx, product("A", "BA"))
		require.NoError(t, err)
		b, err := s.CreateProduct(ctx, product("B", "BB"))
		require.NoError(t, err)

		require.NoError(t, s.DeleteProduct(ctx, a.ID))

		list, err := s.ListProducts(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, b.ID, list[0].ID)

		var nf *core.NotFoundError
		assert.ErrorAs(t, s.DeleteProduct(ctx, a.ID), &nf)

		again, err := s.CreateProduct(ctx, product("A again", "BA"))
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, again.ID)
	})

	t.Run("concurrent creates with one barcode", func(t *testing.T) {
		s := newStore(t)

		const workers = 8
		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			success int
		)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := s.CreateProduct(ctx, product("racer", "SAME")); err == nil {
					mu.Lock()
					success++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, success)
		list, err := s.ListProducts(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})
}

// RunVendorStore exercises the core.VendorStore contract.
func RunVendorStore(t *testing.T, newStore VendorFactory) {
	ctx := context.Background()

	vendor := func(company string) core.Vendor {
		return core.Vendor{
			CompanyName:   company,
			ContactNumber: "9999999999",
			Email:         "ops@example.com",
			FirstName:     "Asha",
			LastName:      "Rao",
		}
	}

	t.Run("create and list", func(t *testing.T) {
		s := newStore(t)

		a, err := s.CreateVendor(ctx, vendor("Acme"))
		require.NoError(t, err)
		assert.NotEmpty(t, a.ID)
		b, err := s.CreateVendor(ctx, vendor("Globex"))
		require.NoError(t, err)

		list, err := s.ListVendors(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, a.ID, list[0].ID)
		assert.Equal(t, b.ID, list[1].ID)
	})

	t.Run("update", func(t *testing.T) {
		s := newStore(t)
		a, err := s.CreateVendor(ctx, vendor("Acme"))
		require.NoError(t, err)

		got, err := s.UpdateVendor(ctx, a.ID, core.VendorUpdate{
			CompanyName: core.SetTo("Acme Ltd"),
			State:       core.SetTo(core.Ptr("KA")),
		})
		require.NoError(t, err)
		assert.Equal(t, "Acme Ltd", got.CompanyName)
		assert.Equal(t, core.Ptr("KA"), got.State)
		assert.Equal(t, "Asha", got.FirstName)

		_, err = s.UpdateVendor(ctx, "00000000-0000-4000-8000-000000000000", core.VendorUpdate{})
		var nf *core.NotFoundError
		assert.ErrorAs(t, err, &nf)
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)
		a, err := s.CreateVendor(ctx, vendor("Acme"))
		require.NoError(t, err)

		require.NoError(t, s.DeleteVendor(ctx, a.ID))

		var nf *core.NotFoundError
		assert.ErrorAs(t, s.DeleteVendor(ctx, a.ID), &nf)

		list, err := s.ListVendors(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}
