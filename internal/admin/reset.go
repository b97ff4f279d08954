// Package admin provides administrative operations for store management.
package admin

import (
	"context"
	"errors"
	"time"
)

// ResetTimeout is the maximum duration for store reset operations.
const ResetTimeout = 30 * time.Second

// ErrNotResettable is returned when the configured store cannot be reset.
var ErrNotResettable = errors.New("store does not support reset")

// Truncater is implemented by stores that can drop every record.
type Truncater interface {
	Truncate(ctx context.Context) error
}

// Reset removes every product and vendor from store.
// This is a destructive operation - use with caution.
func Reset(ctx context.Context, store any) error {
	t, ok := store.(Truncater)
	if !ok {
		return ErrNotResettable
	}

	ctx, cancel := context.WithTimeout(ctx, ResetTimeout)
	defer cancel()

	return t.Truncate(ctx)
}
