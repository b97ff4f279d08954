// Package store opens the catalog store selected by configuration.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/invbackoffice/internal/config"
	"github.com/JonMunkholm/invbackoffice/internal/core"
	"github.com/JonMunkholm/invbackoffice/internal/store/memory"
	"github.com/JonMunkholm/invbackoffice/internal/store/mongo"
	"github.com/JonMunkholm/invbackoffice/internal/store/postgres"
)

// Backend is an opened store and the function that releases it.
// Raw is the adapter itself, for administrative operations such as reset.
type Backend struct {
	Driver   string
	Products core.ProductStore
	Vendors  core.VendorStore
	Raw      any
	Close    func(context.Context) error
}

func noClose(context.Context) error { return nil }

// Open connects to the store named by cfg.Driver and prepares its schema.
func Open(ctx context.Context, cfg config.StoreConfig) (*Backend, error) {
	switch cfg.Driver {
	case config.DriverMemory, "":
		s := memory.New()
		return &Backend{Driver: config.DriverMemory, Products: s, Vendors: s, Raw: s, Close: noClose}, nil
	case config.DriverPostgres:
		return openPostgres(ctx, cfg)
	case config.DriverMongo:
		return openMongo(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

func openPostgres(ctx context.Context, cfg config.StoreConfig) (*Backend, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if u, err := url.Parse(cfg.URL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	}

	s := postgres.New(pool, cfg.QueryTimeout)
	if err := s.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &Backend{
		Driver:   config.DriverPostgres,
		Products: s,
		Vendors:  s,
		Raw:      s,
		Close: func(context.Context) error {
			pool.Close()
			return nil
		},
	}, nil
}

func openMongo(ctx context.Context, cfg config.StoreConfig) (*Backend, error) {
	client, err := mongo.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return nil, err
	}

	s := mongo.New(client.Database(cfg.MongoDatabase), cfg.QueryTimeout)
	if err := s.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	slog.Info("connected to mongo", "database", cfg.MongoDatabase)

	return &Backend{
		Driver:   config.DriverMongo,
		Products: s,
		Vendors:  s,
		Raw:      s,
		Close:    client.Disconnect,
	}, nil
}
