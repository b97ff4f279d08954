package prefs

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/invbackoffice/internal/config"
)

// Open returns the preference store selected by cfg and a function that
// releases it.
func Open(ctx context.Context, cfg config.PrefsConfig) (Store, func() error, error) {
	switch cfg.Driver {
	case config.DriverMemory, "":
		return NewMemory(), func() error { return nil }, nil
	case config.DriverRedis:
		r, err := NewRedis(ctx, RedisOptions{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: cfg.KeyPrefix,
		})
		if err != nil {
			return nil, nil, err
		}
		return r, r.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown prefs driver %q", cfg.Driver)
	}
}
