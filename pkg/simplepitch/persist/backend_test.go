package persist_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/tendant/simple-pitch/pkg/simplepitch"
)

// recordingBackend is an in-memory backend that remembers every write.
type recordingBackend struct {
	name string

	mu      sync.Mutex
	data    map[string][]byte
	puts    map[string][][]byte
	getErr  map[string]error
	putErr  error
	deleted []string
}

func newRecordingBackend(name string) *recordingBackend {
	return &recordingBackend{
		name:   name,
		data:   make(map[string][]byte),
		puts:   make(map[string][][]byte),
		getErr: make(map[string]error),
	}
}

func (b *recordingBackend) Name() string { return b.name }

func (b *recordingBackend) Get(ctx context.Context, key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.getErr[key]; err != nil {
		return nil, err
	}
	v, ok := b.data[key]
	if !ok {
		return nil, simplepitch.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (b *recordingBackend) Put(ctx context.Context, key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.puts[key] = append(b.puts[key], append([]byte(nil), data...))
	if b.putErr != nil {
		return b.putErr
	}
	b.data[key] = append([]byte(nil), data...)
	return nil
}

func (b *recordingBackend) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deleted = append(b.deleted, key)
	delete(b.data, key)
	return nil
}

func (b *recordingBackend) set(key, value string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[key] = []byte(value)
}

func (b *recordingBackend) failGet(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.getErr[key] = errors.New("disk unavailable")
}

func (b *recordingBackend) writes(key string) [][]byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([][]byte(nil), b.puts[key]...)
}

func (b *recordingBackend) has(key string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.data[key]
	return ok
}

// gatedBackend holds the first n puts until release is closed, reporting each
// held key on entered.
type gatedBackend struct {
	*recordingBackend
	hold    atomic.Int32
	entered chan string
	release chan struct{}
}

func newGatedBackend(name string, n int32) *gatedBackend {
	b := &gatedBackend{
		recordingBackend: newRecordingBackend(name),
		entered:          make(chan string, n),
		release:          make(chan struct{}),
	}
	b.hold.Store(n)
	return b
}

func (b *gatedBackend) Put(ctx context.Context, key string, data []byte) error {
	if b.hold.Add(-1) >= 0 {
		b.entered <- key
		select {
		case <-b.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return b.recordingBackend.Put(ctx, key, data)
}
