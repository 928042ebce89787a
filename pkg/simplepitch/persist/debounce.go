package persist

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of triggers into one call that runs once the
// window has passed without a new trigger. A due call runs with the
// debouncer locked, so Stop and Close return only after it has finished.
type Debouncer struct {
	mu      sync.Mutex
	clock   Clock
	window  time.Duration
	fn      func()
	timer   Timer
	gen     uint64
	pending bool
	closed  bool
}

// NewDebouncer creates a debouncer calling fn after window of quiet.
func NewDebouncer(clock Clock, window time.Duration, fn func()) *Debouncer {
	if clock == nil {
		clock = RealClock()
	}
	return &Debouncer{clock: clock, window: window, fn: fn}
}

// Trigger cancels any pending call and schedules a new one a full window
// from now.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = true
	d.timer = d.clock.AfterFunc(d.window, func() { d.fire(gen) })
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	// a newer trigger or a stop replaced this timer after it became due
	if gen != d.gen || !d.pending {
		return
	}
	d.pending = false
	d.timer = nil
	d.fn()
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Stop cancels the pending call, if any, and reports whether one was pending.
func (d *Debouncer) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stopLocked()
}

// Close stops the debouncer for good: later triggers are ignored. It reports
// whether a call was pending.
func (d *Debouncer) Close() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return d.stopLocked()
}

func (d *Debouncer) stopLocked() bool {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	was := d.pending
	d.pending = false
	return was
}

// Flush runs the pending call now instead of at the end of the window. It
// reports whether there was anything to run.
func (d *Debouncer) Flush() bool {
	if !d.Stop() {
		return false
	}
	d.fn()
	return true
}
