package config

import (
	"fmt"
	"time"
)

// WithPort sets the server port
func WithPort(port string) Option {
	return func(c *ServerConfig) error {
		if port == "" {
			return fmt.Errorf("port cannot be empty")
		}
		c.Port = port
		return nil
	}
}

// WithEnvironment sets the environment (development, production, testing)
func WithEnvironment(env string) Option {
	return func(c *ServerConfig) error {
		if env == "" {
			return fmt.Errorf("environment cannot be empty")
		}
		c.Environment = env
		return nil
	}
}

// WithStorage sets the primary storage URL
func WithStorage(url string) Option {
	return func(c *ServerConfig) error {
		if _, err := ParseStorageURL(url); err != nil {
			return err
		}
		c.StorageURL = url
		return nil
	}
}

// WithFallbackStorage appends load-only fallback storage URLs
func WithFallbackStorage(urls ...string) Option {
	return func(c *ServerConfig) error {
		for _, u := range urls {
			if _, err := ParseStorageURL(u); err != nil {
				return err
			}
			c.FallbackStorageURLs = append(c.FallbackStorageURLs, u)
		}
		return nil
	}
}

// WithSaveDebounce sets the quiet window before a collection is written
func WithSaveDebounce(d time.Duration) Option {
	return func(c *ServerConfig) error {
		if d <= 0 {
			return fmt.Errorf("save debounce must be positive, got: %s", d)
		}
		c.SaveDebounce = d
		return nil
	}
}

// WithGenAI enables content analysis with the given key and model
func WithGenAI(apiKey, model string) Option {
	return func(c *ServerConfig) error {
		c.GenAIAPIKey = apiKey
		if model != "" {
			c.GenAIModel = model
		}
		return nil
	}
}

// WithPdftoppm sets the pdftoppm binary path
func WithPdftoppm(path string) Option {
	return func(c *ServerConfig) error {
		if path == "" {
			return fmt.Errorf("pdftoppm path cannot be empty")
		}
		c.PdftoppmPath = path
		return nil
	}
}

// WithSeedFile sets the YAML file imported into an empty store
func WithSeedFile(path string) Option {
	return func(c *ServerConfig) error {
		c.SeedFile = path
		return nil
	}
}
