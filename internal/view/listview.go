package view

import (
	"context"
	"slices"
	"sync"

	"github.com/JonMunkholm/invbackoffice/internal/core"
)

// Lister is the read side of the catalog.
type Lister interface {
	ListProducts(ctx context.Context) ([]core.Product, error)
}

// ListView is the state behind a product list screen. The filtered list is
// recomputed whenever the records or the query change, so it never lags the
// query. Refresh pulls the full list again and is called after every
// mutation; there is no push from the store.
type ListView struct {
	lister Lister

	mu       sync.RWMutex
	all      []core.Product
	query    string
	filtered []core.Product
}

// NewListView creates an empty view over lister.
func NewListView(lister Lister) *ListView {
	return &ListView{lister: lister}
}

// Refresh re-fetches every record. On error the previous state is kept.
func (v *ListView) Refresh(ctx context.Context) error {
	products, err := v.lister.ListProducts(ctx)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.all = products
	v.filtered = Filter(v.all, v.query)
	return nil
}

// SetQuery replaces the search query and returns the new filtered list.
func (v *ListView) SetQuery(q string) []core.Product {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.query = q
	v.filtered = Filter(v.all, q)
	return slices.Clone(v.filtered)
}

// Query returns the current search query.
func (v *ListView) Query() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.query
}

// All returns a copy of the last fetched list.
func (v *ListView) All() []core.Product {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Clone(v.all)
}

// Visible returns a copy of the records matching the current query.
func (v *ListView) Visible() []core.Product {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Clone(v.filtered)
}
