// Package app wires configuration, storage, persistence and collaborators
// into a running catalog shared by the server and the CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/tendant/simple-pitch/pkg/simplepitch"
	"github.com/tendant/simple-pitch/pkg/simplepitch/config"
	"github.com/tendant/simple-pitch/pkg/simplepitch/persist"
	"github.com/tendant/simple-pitch/pkg/simplepitch/seed"
)

// App holds the collaborators built from a ServerConfig
type App struct {
	Config   *config.ServerConfig
	Logger   *slog.Logger
	Store    *simplepitch.Store
	Adapter  *persist.Adapter
	Uploader *simplepitch.Uploader
	Registry *prometheus.Registry

	backends *config.Backends
}

// NewLogger returns a JSON logger in production and a text logger elsewhere
func NewLogger(cfg *config.ServerConfig) *slog.Logger {
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// Open builds the app: it opens the backends, loads persisted state into a
// store, attaches debounced saving and imports the seed file into an empty
// store.
func Open(ctx context.Context, cfg *config.ServerConfig, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = NewLogger(cfg)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := persist.NewMetrics()
	metrics.RegisterCollectors(registry)

	backends, err := cfg.BuildBackends(ctx)
	if err != nil {
		return nil, err
	}

	adapter, err := cfg.BuildAdapter(backends, logger, metrics)
	if err != nil {
		_ = backends.Close()
		return nil, fmt.Errorf("failed to create persistence adapter: %w", err)
	}

	store, err := persist.Open(ctx, adapter)
	if err != nil {
		_ = backends.Close()
		return nil, fmt.Errorf("failed to load persisted state: %w", err)
	}

	analyzer, err := cfg.BuildAnalyzer(ctx)
	if err != nil {
		logger.Warn("Content analysis unavailable, uploads use fallback names", "error", err)
		analyzer = simplepitch.NewNoopAnalyzer()
	}

	a := &App{
		Config:  cfg,
		Logger:  logger,
		Store:   store,
		Adapter: adapter,
		Uploader: simplepitch.NewUploader(store, cfg.BuildConverter(logger),
			simplepitch.WithAnalyzer(analyzer),
			simplepitch.WithUploaderLogger(logger),
		),
		Registry: registry,
		backends: backends,
	}

	if err := a.seed(); err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	logger.Info("Catalog loaded",
		"storage", cfg.StorageURL,
		"fallbacks", len(cfg.FallbackStorageURLs),
		"brands", len(store.Brands()),
		"doctors", len(store.Doctors()),
	)
	return a, nil
}

func (a *App) seed() error {
	if a.Config.SeedFile == "" {
		return nil
	}
	if len(a.Store.Brands()) > 0 || len(a.Store.Doctors()) > 0 {
		a.Logger.Debug("Store not empty, skipping seed file", "file", a.Config.SeedFile)
		return nil
	}
	f, err := seed.ReadFile(a.Config.SeedFile)
	if err != nil {
		return err
	}
	res, err := seed.Apply(a.Store, f)
	if err != nil {
		return err
	}
	a.Logger.Info("Seed file imported", "file", a.Config.SeedFile, "brands", res.Brands, "doctors", res.Doctors)
	return nil
}

// Close flushes pending writes and releases the backends
func (a *App) Close(ctx context.Context) error {
	err := a.Adapter.Close(ctx)
	return errors.Join(err, a.backends.Close())
}
