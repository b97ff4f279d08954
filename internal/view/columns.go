package view

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/JonMunkholm/invbackoffice/internal/core"
	"github.com/JonMunkholm/invbackoffice/internal/prefs"
)

// DefaultClient identifies callers that do not name themselves.
const DefaultClient = "default"

// ColumnKey is the preference key for a module's column set.
func ColumnKey(module, client string) string {
	if client == "" {
		client = DefaultClient
	}
	return fmt.Sprintf("columns:%s:%s", module, client)
}

// ColumnPreference is the visible column set of one module for one client.
// Every change is written back to the store before it takes effect.
type ColumnPreference struct {
	store     prefs.Store
	key       string
	available []string

	mu       sync.RWMutex
	selected []string
}

// LoadColumnPreference restores the column set for module and client.
// With nothing stored, or a stored value that cannot be decoded, every
// column of the module is visible. Stored columns the module no longer has
// are dropped.
func LoadColumnPreference(ctx context.Context, store prefs.Store, module, client string) (*ColumnPreference, error) {
	def, err := core.Lookup(module)
	if err != nil {
		return nil, err
	}

	c := &ColumnPreference{
		store:     store,
		key:       ColumnKey(module, client),
		available: def.Info.Columns,
	}

	var stored []string
	err = prefs.GetJSON(ctx, store, c.key, &stored)
	switch {
	case err == nil:
		c.selected = c.known(stored)
	case errors.Is(err, prefs.ErrNotFound), errors.Is(err, prefs.ErrCorrupt):
		c.selected = append([]string(nil), c.available...)
	default:
		return nil, &core.StoreError{Op: "load column preference", Err: err}
	}
	return c, nil
}

// known keeps the entries of cols that are module columns, in module order,
// without duplicates.
func (c *ColumnPreference) known(cols []string) []string {
	want := make(map[string]bool, len(cols))
	for _, col := range cols {
		want[col] = true
	}
	out := make([]string, 0, len(cols))
	for _, col := range c.available {
		if want[col] {
			out = append(out, col)
		}
	}
	return out
}

// Available returns every selectable column in display order.
func (c *ColumnPreference) Available() []string {
	return append([]string(nil), c.available...)
}

// Columns returns the visible columns in display order.
func (c *ColumnPreference) Columns() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.selected...)
}

// IsVisible reports whether col is currently shown.
func (c *ColumnPreference) IsVisible(col string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, s := range c.selected {
		if s == col {
			return true
		}
	}
	return false
}

// Set replaces the visible set and persists it. Unknown column ids are
// rejected with a *core.ValidationError and nothing is written.
func (c *ColumnPreference) Set(ctx context.Context, cols []string) error {
	for _, col := range cols {
		if !c.isAvailable(col) {
			return &core.ValidationError{
				Field:   "columns",
				Value:   col,
				Message: fmt.Sprintf("unknown column %q", col),
			}
		}
	}

	selected := c.known(cols)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := prefs.SetJSON(ctx, c.store, c.key, selected); err != nil {
		return &core.StoreError{Op: "save column preference", Err: err}
	}
	c.selected = selected
	return nil
}

// Toggle shows col if hidden and hides it if shown.
func (c *ColumnPreference) Toggle(ctx context.Context, col string) error {
	current := c.Columns()
	next := make([]string, 0, len(current)+1)
	found := false
	for _, s := range current {
		if s == col {
			found = true
			continue
		}
		next = append(next, s)
	}
	if !found {
		next = append(next, col)
	}
	return c.Set(ctx, next)
}

func (c *ColumnPreference) isAvailable(col string) bool {
	for _, a := range c.available {
		if a == col {
			return true
		}
	}
	return false
}
