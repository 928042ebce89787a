package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tendant/simple-pitch/internal/app"
	"github.com/tendant/simple-pitch/pkg/simplepitch"
	"github.com/tendant/simple-pitch/pkg/simplepitch/api"
	"github.com/tendant/simple-pitch/pkg/simplepitch/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.FromEnv())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := app.NewLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr: fmt.Sprintf(":%s", cfg.Port),
		Handler: api.NewRouter(api.Config{
			Store:    a.Store,
			Uploader: a.Uploader,
			Sessions: simplepitch.NewSessionRegistry(),
			Resetter: a.Adapter,
			Gatherer: a.Registry,
			Logger:   logger,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Pitch server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			_ = a.Close(context.Background())
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	// Pending debounced saves are written before exit.
	if err := a.Close(shutdownCtx); err != nil {
		return fmt.Errorf("failed to flush pending saves: %w", err)
	}

	logger.Info("Server exiting")
	return nil
}
