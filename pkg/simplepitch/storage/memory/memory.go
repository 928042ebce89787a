package memory

import (
	"context"
	"sync"

	"github.com/tendant/simple-pitch/pkg/simplepitch"
)

// Backend is an in-memory implementation of the simplepitch.Backend interface
type Backend struct {
	mu      sync.RWMutex
	name    string
	records map[string][]byte
}

// New creates a new in-memory storage backend
func New() *Backend {
	return NewNamed("memory")
}

// NewNamed creates an in-memory backend reported under name in logs
func NewNamed(name string) *Backend {
	return &Backend{
		name:    name,
		records: make(map[string][]byte),
	}
}

// Name returns the backend name
func (b *Backend) Name() string {
	return b.name
}

// Get returns a copy of the record stored under key
func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.records[key]
	if !exists {
		return nil, simplepitch.ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

// Put stores a copy of data under key
func (b *Backend) Put(ctx context.Context, key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.records[key] = append([]byte(nil), data...)
	return nil
}

// Delete removes the record stored under key
func (b *Backend) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.records, key)
	return nil
}
