package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/JonMunkholm/invbackoffice/internal/config"
	"github.com/JonMunkholm/invbackoffice/internal/core"
	"github.com/JonMunkholm/invbackoffice/internal/logging"
	"github.com/JonMunkholm/invbackoffice/internal/metrics"
	"github.com/JonMunkholm/invbackoffice/internal/prefs"
	"github.com/JonMunkholm/invbackoffice/internal/sheet"
	"github.com/JonMunkholm/invbackoffice/internal/store"
	"github.com/JonMunkholm/invbackoffice/internal/telemetry"
	"github.com/JonMunkholm/invbackoffice/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	ctx := context.Background()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		slog.Error("failed to set up tracing", "error", err)
		os.Exit(1)
	}

	backend, err := store.Open(ctx, cfg.Store)
	if err != nil {
		slog.Error("failed to open store", "driver", cfg.Store.Driver, "error", err)
		os.Exit(1)
	}
	slog.Info("store ready", "driver", backend.Driver)

	prefStore, closePrefs, err := prefs.Open(ctx, cfg.Prefs)
	if err != nil {
		slog.Error("failed to open preference store", "driver", cfg.Prefs.Driver, "error", err)
		os.Exit(1)
	}

	m := metrics.New(prometheus.NewRegistry())
	service := core.NewService(
		m.InstrumentProducts(backend.Products),
		m.InstrumentVendors(backend.Vendors),
		sheet.Codec{},
	)

	for _, mod := range service.Modules() {
		slog.Debug("module registered", "module", mod.Key, "columns", len(mod.Columns))
	}

	server := web.NewServer(service, prefStore, m, cfg)

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		defer close(done)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
		if err := closePrefs(); err != nil {
			slog.Warn("preference store close error", "error", err)
		}
		if err := backend.Close(shutdownCtx); err != nil {
			slog.Warn("store close error", "error", err)
		}
		if err := shutdownTracing(shutdownCtx); err != nil {
			slog.Warn("tracer shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	<-done
}
