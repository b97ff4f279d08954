package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/invbackoffice/internal/config"
	"github.com/JonMunkholm/invbackoffice/internal/core"
	"github.com/JonMunkholm/invbackoffice/internal/logging"
	"github.com/JonMunkholm/invbackoffice/internal/prefs"
	"github.com/JonMunkholm/invbackoffice/internal/sheet"
	"github.com/JonMunkholm/invbackoffice/internal/store"
)

// app holds what every subcommand needs once the store is open.
type app struct {
	cfg        *config.Config
	backend    *store.Backend
	service    *core.Service
	prefs      prefs.Store
	closePrefs func() error
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Inventory catalog command line",
		Long:          "catalogctl imports and exports product workbooks and inspects the catalog using the same configuration as the server.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.boot(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close(cmd.Context())
		},
	}

	root.AddCommand(
		newImportCmd(a),
		newExportCmd(a),
		newListCmd(a),
		newColumnsCmd(a),
		newResetCmd(a),
	)
	return root
}

// boot loads configuration and opens the stores.
func (a *app) boot(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg

	// Logs go to stderr so command output stays clean.
	slog.SetDefault(logging.New(os.Stderr, cfg.Logging.Level, cfg.Logging.Format))

	backend, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	a.backend = backend

	if backend.Driver == config.DriverMemory {
		slog.Warn("STORE_DRIVER=memory: changes are discarded when catalogctl exits")
	}

	prefStore, closePrefs, err := prefs.Open(ctx, cfg.Prefs)
	if err != nil {
		return fmt.Errorf("open preference store: %w", err)
	}
	a.prefs, a.closePrefs = prefStore, closePrefs

	a.service = core.NewService(backend.Products, backend.Vendors, sheet.Codec{})
	return nil
}

func (a *app) close(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if a.closePrefs != nil {
		if err := a.closePrefs(); err != nil {
			slog.Warn("preference store close error", "error", err)
		}
	}
	if a.backend != nil {
		return a.backend.Close(ctx)
	}
	return nil
}

// userError renders err the way the API does, keeping the technical detail
// in the log.
func userError(err error) error {
	slog.Debug("command failed", "error", err)
	return fmt.Errorf("%s", core.FormatUserError(err))
}
