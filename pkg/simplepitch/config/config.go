package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tendant/simple-pitch/pkg/simplepitch"
	"github.com/tendant/simple-pitch/pkg/simplepitch/analyze"
	"github.com/tendant/simple-pitch/pkg/simplepitch/convert"
	"github.com/tendant/simple-pitch/pkg/simplepitch/persist"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top of library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:          "8080",
		Environment:   "development",
		StorageURL:    "memory://",
		SaveDebounce:  persist.DefaultWindow,
		GenAIModel:    analyze.DefaultModel,
		PdftoppmPath:  "pdftoppm",
		PDFResolution: convert.DefaultResolution,
	}
}

// ServerConfig represents configuration for the pitch server and CLI
type ServerConfig struct {
	Port        string
	Environment string // development, production, testing

	// Storage configuration
	StorageURL          string   // primary backend, written on every save
	FallbackStorageURLs []string // consulted in order on load only
	SaveDebounce        time.Duration

	// Collaborators
	GenAIAPIKey   string // content analysis is disabled when empty
	GenAIModel    string
	PdftoppmPath  string
	PDFResolution int

	// SeedFile is imported on startup when the store is empty
	SeedFile string
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	if _, err := ParseStorageURL(c.StorageURL); err != nil {
		return fmt.Errorf("storage_url: %w", err)
	}
	for _, u := range c.FallbackStorageURLs {
		if _, err := ParseStorageURL(u); err != nil {
			return fmt.Errorf("fallback storage url: %w", err)
		}
	}

	if c.SaveDebounce <= 0 {
		return errors.New("save_debounce must be positive")
	}

	if c.PDFResolution <= 0 {
		return errors.New("pdf_resolution must be positive")
	}

	return nil
}

// IsProduction reports whether the environment is production
func (c *ServerConfig) IsProduction() bool {
	return c.Environment == "production"
}

// Backends holds the opened storage backends. Close releases their
// connections.
type Backends struct {
	Primary   simplepitch.Backend
	Fallbacks []simplepitch.Backend
	closers   []func() error
}

// Close closes every backend connection
func (b *Backends) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	b.closers = nil
	return errors.Join(errs...)
}

// BuildBackends opens the primary and fallback storage backends
func (c *ServerConfig) BuildBackends(ctx context.Context) (*Backends, error) {
	out := &Backends{}

	primary, closer, err := OpenBackend(ctx, c.StorageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open primary storage: %w", err)
	}
	out.Primary = primary
	out.closers = append(out.closers, closer)

	for _, u := range c.FallbackStorageURLs {
		b, closer, err := OpenBackend(ctx, u)
		if err != nil {
			_ = out.Close()
			return nil, fmt.Errorf("failed to open fallback storage: %w", err)
		}
		out.Fallbacks = append(out.Fallbacks, b)
		out.closers = append(out.closers, closer)
	}

	return out, nil
}

// BuildAdapter creates a persistence adapter over the configured backends
func (c *ServerConfig) BuildAdapter(backends *Backends, logger *slog.Logger, metrics *persist.Metrics) (*persist.Adapter, error) {
	return persist.New(backends.Primary,
		persist.WithFallback(backends.Fallbacks...),
		persist.WithWindow(c.SaveDebounce),
		persist.WithLogger(logger),
		persist.WithMetrics(metrics),
	)
}

// BuildAnalyzer creates the content analyzer. Without an API key a noop
// analyzer is returned so uploads fall back to fixed values.
func (c *ServerConfig) BuildAnalyzer(ctx context.Context) (simplepitch.Analyzer, error) {
	if c.GenAIAPIKey == "" {
		return simplepitch.NewNoopAnalyzer(), nil
	}
	a, err := analyze.NewGenAIAnalyzer(ctx, c.GenAIAPIKey, c.GenAIModel)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// BuildConverter creates the document converter
func (c *ServerConfig) BuildConverter(logger *slog.Logger) simplepitch.Converter {
	return convert.New(
		convert.WithPdftoppm(c.PdftoppmPath),
		convert.WithResolution(c.PDFResolution),
		convert.WithLogger(logger),
	)
}
