// Package mongo is the MongoDB catalog store.
//
// Records use ObjectIDs as _id, so sorting by _id lists them in insertion
// order. Barcode uniqueness is a unique index; bulk creates use one
// unordered InsertMany and count duplicate-key write errors as skips.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/JonMunkholm/invbackoffice/internal/core"
)

const (
	productsCollection = "products"
	vendorsCollection  = "vendors"
	defaultOpTimeout   = 5 * time.Second
)

// Store implements core.ProductStore and core.VendorStore.
type Store struct {
	products *mongo.Collection
	vendors  *mongo.Collection
	timeout  time.Duration
}

var (
	_ core.ProductStore = (*Store)(nil)
	_ core.VendorStore  = (*Store)(nil)
)

// New creates a Store on db. A zero timeout uses the default per-operation timeout.
func New(db *mongo.Database, timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = defaultOpTimeout
	}
	return &Store{
		products: db.Collection(productsCollection),
		vendors:  db.Collection(vendorsCollection),
		timeout:  timeout,
	}
}

// Connect opens a client and pings it.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the unique barcode index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.products.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "barcode", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("products_barcode_key"),
	})
	if err != nil {
		return &core.StoreError{Op: "ensure indexes", Err: err}
	}
	return nil
}

// Truncate removes every document. Used by tests.
func (s *Store) Truncate(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	for _, c := range []*mongo.Collection{s.products, s.vendors} {
		if _, err := c.DeleteMany(ctx, bson.M{}); err != nil {
			return &core.StoreError{Op: "truncate", Err: err}
		}
	}
	return nil
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// objectID parses a record id. A malformed id cannot match any document.
func objectID(entity, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, &core.NotFoundError{Entity: entity, ID: id}
	}
	return oid, nil
}

// classify converts a driver error into the core error taxonomy.
func classify(op string, err error, entity, id, barcode string) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return &core.NotFoundError{Entity: entity, ID: id}
	case mongo.IsDuplicateKeyError(err):
		return &core.ConstraintError{Field: core.FieldBarcode, Value: barcode}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w", op, err)
	}
	return &core.StoreError{Op: op, Err: err}
}
