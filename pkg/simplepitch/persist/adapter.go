package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tendant/simple-pitch/pkg/simplepitch"
)

// DefaultWindow is the quiet period after the last change before a
// collection is written.
const DefaultWindow = time.Second

const defaultWriteTimeout = 10 * time.Second

// Adapter keeps the Store's two collections durable. Saves are debounced per
// collection and written in the background; loads consult the primary
// backend first and the fallbacks in order.
type Adapter struct {
	primary      simplepitch.Backend
	fallbacks    []simplepitch.Backend
	clock        Clock
	window       time.Duration
	writeTimeout time.Duration
	logger       *slog.Logger
	metrics      *Metrics

	// writers serializes encode and put per collection so the last write to
	// land always carries the newest state
	writers map[simplepitch.Collection]*sync.Mutex

	mu         sync.Mutex
	store      *simplepitch.Store
	debouncers map[simplepitch.Collection]*Debouncer
	closed     bool
	inflight   int
	drained    chan struct{}
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithFallback appends read-only fallback backends consulted on load
func WithFallback(backends ...simplepitch.Backend) Option {
	return func(a *Adapter) {
		for _, b := range backends {
			if b != nil {
				a.fallbacks = append(a.fallbacks, b)
			}
		}
	}
}

// WithClock sets the clock driving the debounce window
func WithClock(c Clock) Option {
	return func(a *Adapter) {
		if c != nil {
			a.clock = c
		}
	}
}

// WithWindow sets the debounce window
func WithWindow(d time.Duration) Option {
	return func(a *Adapter) {
		if d > 0 {
			a.window = d
		}
	}
}

// WithWriteTimeout bounds each background write
func WithWriteTimeout(d time.Duration) Option {
	return func(a *Adapter) {
		if d > 0 {
			a.writeTimeout = d
		}
	}
}

// WithLogger sets the adapter logger
func WithLogger(l *slog.Logger) Option {
	return func(a *Adapter) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithMetrics sets the counters the adapter records to
func WithMetrics(m *Metrics) Option {
	return func(a *Adapter) {
		if m != nil {
			a.metrics = m
		}
	}
}

// New creates an adapter writing to primary.
func New(primary simplepitch.Backend, opts ...Option) (*Adapter, error) {
	if primary == nil {
		return nil, errors.New("persist: primary backend is required")
	}
	a := &Adapter{
		primary:      primary,
		clock:        RealClock(),
		window:       DefaultWindow,
		writeTimeout: defaultWriteTimeout,
		logger:       slog.Default(),
		metrics:      NewMetrics(),
		writers:      make(map[simplepitch.Collection]*sync.Mutex),
		debouncers:   make(map[simplepitch.Collection]*Debouncer),
	}
	for _, opt := range opts {
		opt(a)
	}
	for _, c := range simplepitch.Collections() {
		a.writers[c] = &sync.Mutex{}
		a.debouncers[c] = NewDebouncer(a.clock, a.window, func() { a.writeAsync(c) })
	}
	return a, nil
}

// Metrics returns the counters the adapter records to.
func (a *Adapter) Metrics() *Metrics {
	return a.metrics
}

// Backends returns the primary backend followed by the fallbacks.
func (a *Adapter) Backends() []simplepitch.Backend {
	return append([]simplepitch.Backend{a.primary}, a.fallbacks...)
}

// Snapshot is the pair of collections read on load.
type Snapshot struct {
	Brands  []simplepitch.Brand
	Doctors []simplepitch.Doctor
	// Source names the backend the snapshot came from; empty when nothing was
	// stored anywhere
	Source string
}

// Load reads both collections. The first backend holding either record wins
// for both; a read or parse failure of one record is logged and treated as
// absent. Nothing stored anywhere yields empty collections. Only context
// cancellation is returned as an error.
func (a *Adapter) Load(ctx context.Context) (Snapshot, error) {
	for _, b := range a.Backends() {
		if err := ctx.Err(); err != nil {
			return Snapshot{}, err
		}
		snap, found := a.loadFrom(ctx, b)
		if found {
			a.logger.Info("Loaded persisted state", "backend", b.Name(), "brands", len(snap.Brands), "doctors", len(snap.Doctors))
			return snap, nil
		}
	}
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Brands: []simplepitch.Brand{}, Doctors: []simplepitch.Doctor{}}, nil
}

func (a *Adapter) loadFrom(ctx context.Context, b simplepitch.Backend) (Snapshot, bool) {
	snap := Snapshot{Brands: []simplepitch.Brand{}, Doctors: []simplepitch.Doctor{}, Source: b.Name()}
	var brandsFound, doctorsFound bool

	// failures are absorbed per key, so the group never cancels
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		brandsFound = a.readKey(gctx, b, simplepitch.KeyBrands, &snap.Brands)
		return nil
	})
	g.Go(func() error {
		doctorsFound = a.readKey(gctx, b, simplepitch.KeyDoctors, &snap.Doctors)
		return nil
	})
	_ = g.Wait()

	return snap, brandsFound || doctorsFound
}

func (a *Adapter) readKey(ctx context.Context, b simplepitch.Backend, key string, into any) bool {
	data, err := b.Get(ctx, key)
	if errors.Is(err, simplepitch.ErrNotFound) {
		a.metrics.Loads.WithLabelValues(b.Name(), "absent").Inc()
		return false
	}
	if err != nil {
		a.metrics.Loads.WithLabelValues(b.Name(), ResultError).Inc()
		a.logger.Error("Failed to read persisted record", "backend", b.Name(), "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal(data, into); err != nil {
		a.metrics.Loads.WithLabelValues(b.Name(), ResultError).Inc()
		a.logger.Error("Failed to parse persisted record", "backend", b.Name(), "key", key, "error", err)
		return false
	}
	a.metrics.Loads.WithLabelValues(b.Name(), ResultSuccess).Inc()
	return true
}

// Attach subscribes the adapter to store changes. Writes read the store's
// current state when the window elapses.
func (a *Adapter) Attach(store *simplepitch.Store) {
	a.mu.Lock()
	a.store = store
	a.mu.Unlock()
	store.Subscribe(a.Notify)
}

// Notify schedules a debounced save of collection c. It is a Store change
// listener.
func (a *Adapter) Notify(c simplepitch.Collection) {
	a.mu.Lock()
	closed := a.closed
	d := a.debouncers[c]
	a.mu.Unlock()
	if closed || d == nil {
		return
	}
	a.metrics.Scheduled.WithLabelValues(string(c)).Inc()
	d.Trigger()
}

// writeAsync runs when a debounce window elapses. Once the adapter is closed
// the write happens inline, so Close, which is waiting on the debouncer,
// returns only after it lands.
func (a *Adapter) writeAsync(c simplepitch.Collection) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		ctx, cancel := context.WithTimeout(context.Background(), a.writeTimeout)
		defer cancel()
		_ = a.write(ctx, c)
		return
	}
	if a.inflight == 0 {
		a.drained = make(chan struct{})
	}
	a.inflight++
	a.mu.Unlock()

	go func() {
		defer a.writeDone()
		ctx, cancel := context.WithTimeout(context.Background(), a.writeTimeout)
		defer cancel()
		_ = a.write(ctx, c)
	}()
}

func (a *Adapter) writeDone() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.inflight--
	if a.inflight == 0 {
		close(a.drained)
	}
}

func (a *Adapter) encode(c simplepitch.Collection) ([]byte, error) {
	a.mu.Lock()
	store := a.store
	a.mu.Unlock()
	if store == nil {
		return nil, errors.New("persist: no store attached")
	}
	switch c {
	case simplepitch.CollectionBrands:
		return json.Marshal(store.Brands())
	case simplepitch.CollectionDoctors:
		return json.Marshal(store.Doctors())
	default:
		return nil, fmt.Errorf("persist: unknown collection %q", c)
	}
}

func (a *Adapter) write(ctx context.Context, c simplepitch.Collection) error {
	w := a.writers[c]
	w.Lock()
	defer w.Unlock()

	data, err := a.encode(c)
	if err == nil {
		err = a.primary.Put(ctx, c.Key(), data)
	}
	if err != nil {
		err = &simplepitch.StorageError{Backend: a.primary.Name(), Key: c.Key(), Op: "put", Err: err}
		a.metrics.Writes.WithLabelValues(string(c), ResultError).Inc()
		a.logger.Error("Failed to persist collection", "collection", c, "backend", a.primary.Name(), "error", err)
		return err
	}
	a.metrics.Writes.WithLabelValues(string(c), ResultSuccess).Inc()
	a.logger.Debug("Persisted collection", "collection", c, "backend", a.primary.Name(), "bytes", len(data))
	return nil
}

// Flush writes every collection with a pending save now, waiting for the
// writes to finish.
func (a *Adapter) Flush(ctx context.Context) error {
	var errs []error
	for _, c := range simplepitch.Collections() {
		if a.debouncers[c].Stop() {
			if err := a.write(ctx, c); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Close stops accepting changes, flushes pending saves and waits for
// background writes until ctx is done.
func (a *Adapter) Close(ctx context.Context) error {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()

	var errs []error
	for _, c := range simplepitch.Collections() {
		// after Close returns no debounced call can start another write
		if a.debouncers[c].Close() {
			if err := a.write(ctx, c); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if err := a.wait(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (a *Adapter) wait(ctx context.Context) error {
	a.mu.Lock()
	if a.inflight == 0 {
		a.mu.Unlock()
		return nil
	}
	drained := a.drained
	a.mu.Unlock()

	select {
	case <-drained:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("persist: waiting for writes: %w", ctx.Err())
	}
}

// Clear cancels pending saves, waits for background writes and deletes both
// records from every backend.
func (a *Adapter) Clear(ctx context.Context) error {
	for _, d := range a.debouncers {
		d.Stop()
	}
	if err := a.wait(ctx); err != nil {
		return err
	}
	var errs []error
	for _, b := range a.Backends() {
		for _, c := range simplepitch.Collections() {
			if err := b.Delete(ctx, c.Key()); err != nil {
				errs = append(errs, &simplepitch.StorageError{Backend: b.Name(), Key: c.Key(), Op: "delete", Err: err})
			}
		}
	}
	if err := errors.Join(errs...); err != nil {
		a.logger.Error("Failed to clear persisted state", "error", err)
		return err
	}
	a.logger.Info("Cleared persisted state", "backends", len(a.Backends()))
	return nil
}

// Reset empties the attached store and removes persisted state everywhere.
func (a *Adapter) Reset(ctx context.Context) error {
	a.mu.Lock()
	store := a.store
	a.mu.Unlock()
	if store != nil {
		store.Reset()
	}
	return a.Clear(ctx)
}
