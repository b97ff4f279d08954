// Package postgres is the PostgreSQL catalog store built on pgx.
//
// Barcode uniqueness is a UNIQUE constraint, so every check is atomic with
// the write that depends on it. Bulk inserts send one batch of
// INSERT ... ON CONFLICT (barcode) DO NOTHING statements inside a single
// transaction and sum the affected rows.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/invbackoffice/internal/core"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// DB is a DBTX that can open transactions.
type DB interface {
	DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

var _ DB = (*pgxpool.Pool)(nil)

// PostgreSQL error codes the store reacts to.
const (
	codeUniqueViolation       = "23505"
	codeInvalidTextRepr       = "22P02"
	defaultQueryTimeout       = 5 * time.Second
	productsBarcodeConstraint = "products_barcode_key"
)

// Store implements core.ProductStore and core.VendorStore.
type Store struct {
	db      DB
	timeout time.Duration
}

var (
	_ core.ProductStore = (*Store)(nil)
	_ core.VendorStore  = (*Store)(nil)
)

// New creates a Store. A zero timeout uses the default per-query timeout.
func New(db DB, timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	return &Store{db: db, timeout: timeout}
}

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id                 UUID PRIMARY KEY,
	seq                BIGSERIAL NOT NULL,
	product_name       TEXT NOT NULL,
	hsn_code           TEXT,
	sku                TEXT,
	tax                DOUBLE PRECISION,
	barcode            TEXT NOT NULL,
	warehouse_location TEXT,
	image              TEXT,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT products_barcode_key UNIQUE (barcode)
);

CREATE TABLE IF NOT EXISTS vendors (
	id               UUID PRIMARY KEY,
	seq              BIGSERIAL NOT NULL,
	company_name     TEXT NOT NULL,
	gst_number       TEXT,
	billing_address  TEXT,
	shipping_address TEXT,
	contact_number   TEXT NOT NULL,
	email            TEXT NOT NULL,
	salutation       TEXT,
	first_name       TEXT NOT NULL,
	last_name        TEXT NOT NULL,
	state            TEXT,
	code             TEXT,
	payment_terms    TEXT,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// EnsureSchema creates the tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.db.Exec(ctx, schema); err != nil {
		return &core.StoreError{Op: "ensure schema", Err: err}
	}
	return nil
}

// Truncate removes every row. Used by tests.
func (s *Store) Truncate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.db.Exec(ctx, "TRUNCATE products, vendors"); err != nil {
		return &core.StoreError{Op: "truncate", Err: err}
	}
	return nil
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// classify converts a pgx error into the core error taxonomy.
// entity and id describe the row addressed by id, when there is one.
func classify(op string, err error, entity, id, barcode string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return &core.NotFoundError{Entity: entity, ID: id}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == codeUniqueViolation && pgErr.ConstraintName == productsBarcodeConstraint:
			return &core.ConstraintError{Field: core.FieldBarcode, Value: barcode}
		case pgErr.Code == codeInvalidTextRepr && id != "":
			// A malformed uuid cannot match any row.
			return &core.NotFoundError{Entity: entity, ID: id}
		}
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return &core.StoreError{Op: op, Err: err}
}
