package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tendant/simple-pitch/pkg/simplepitch"
)

// Backend is a filesystem implementation of the simplepitch.Backend interface.
// Each record is one JSON file named after its key.
type Backend struct {
	mu      sync.RWMutex
	baseDir string
}

// Config options for the filesystem backend
type Config struct {
	BaseDir string // Base directory for storing records
}

// New creates a new filesystem storage backend
func New(config Config) (*Backend, error) {
	if config.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}

	if err := os.MkdirAll(config.BaseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &Backend{baseDir: config.BaseDir}, nil
}

// Name returns the backend name
func (b *Backend) Name() string {
	return "fs"
}

func (b *Backend) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid record key %q", key)
	}
	return filepath.Join(b.baseDir, key+".json"), nil
}

// Get reads the record file for key
func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	path, err := b.path(key)
	if err != nil {
		return nil, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, simplepitch.ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to read record: %w", err)
	}
	return data, nil
}

// Put writes the record file for key. The new content is written to a
// temporary file first and renamed into place.
func (b *Backend) Put(ctx context.Context, key string, data []byte) error {
	path, err := b.path(key)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	tmp, err := os.CreateTemp(b.baseDir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace record: %w", err)
	}
	return nil
}

// Delete removes the record file for key
func (b *Backend) Delete(ctx context.Context, key string) error {
	path, err := b.path(key)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}
