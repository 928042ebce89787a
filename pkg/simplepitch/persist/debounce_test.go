package persist_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/tendant/simple-pitch/pkg/simplepitch/persist"
)

func TestDebouncerCoalescesBursts(t *testing.T) {
	clock := persist.NewManualClock(time.Unix(0, 0))
	var calls atomic.Int32
	d := persist.NewDebouncer(clock, time.Second, func() { calls.Add(1) })

	for i := 0; i < 5; i++ {
		d.Trigger()
		clock.Advance(50 * time.Millisecond)
	}
	assert.True(t, d.Pending())
	assert.Equal(t, 1, clock.Pending())

	// the window restarts at the last trigger
	clock.Advance(900 * time.Millisecond)
	assert.Zero(t, calls.Load())

	clock.Advance(50 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
	assert.False(t, d.Pending())

	clock.Advance(10 * time.Second)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDebouncerFlushAndStop(t *testing.T) {
	clock := persist.NewManualClock(time.Unix(0, 0))
	var calls atomic.Int32
	d := persist.NewDebouncer(clock, time.Second, func() { calls.Add(1) })

	assert.False(t, d.Flush())

	d.Trigger()
	assert.True(t, d.Flush())
	assert.Equal(t, int32(1), calls.Load())

	clock.Advance(time.Second)
	assert.Equal(t, int32(1), calls.Load())

	d.Trigger()
	assert.True(t, d.Stop())
	assert.False(t, d.Stop())
	clock.Advance(time.Second)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDebouncerRealClock(t *testing.T) {
	defer goleak.VerifyNone(t)

	fired := make(chan struct{}, 1)
	d := persist.NewDebouncer(persist.RealClock(), 20*time.Millisecond, func() { fired <- struct{}{} })
	d.Trigger()
	d.Trigger()

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("debounced call did not run")
	}
	assert.False(t, d.Pending())
}

func TestDebouncerClose(t *testing.T) {
	clock := persist.NewManualClock(time.Unix(0, 0))
	var calls atomic.Int32
	d := persist.NewDebouncer(clock, time.Second, func() { calls.Add(1) })

	d.Trigger()
	assert.True(t, d.Close())

	d.Trigger()
	assert.False(t, d.Pending())
	assert.Zero(t, clock.Pending())
	clock.Advance(time.Second)
	assert.Zero(t, calls.Load())
	assert.False(t, d.Close())
}
