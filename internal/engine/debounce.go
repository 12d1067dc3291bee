package engine

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Debouncer coalesces rapid successive triggers into one callback run.
// Continuous controls (the year-range slider) fire on every movement; only
// the last state within the window is worth recomputing, so a newer trigger
// replaces the pending callback rather than queueing behind it
// (last-write-wins). Discrete controls bypass the debouncer entirely.
type Debouncer struct {
	clock  clockwork.Clock
	window time.Duration

	mu         sync.Mutex
	timer      clockwork.Timer
	pending    func()
	superseded func()
}

// NewDebouncer creates a debouncer with the given coalescing window. A
// non-positive window disables coalescing: triggers run synchronously.
func NewDebouncer(clock clockwork.Clock, window time.Duration) *Debouncer {
	return &Debouncer{clock: clock, window: window}
}

// OnSuperseded registers a hook invoked each time a pending trigger is
// discarded in favor of a newer one. Used for the coalesce metric.
func (d *Debouncer) OnSuperseded(fn func()) {
	d.mu.Lock()
	d.superseded = fn
	d.mu.Unlock()
}

// Trigger schedules fn to run after the window elapses with no newer
// trigger. A pending fn is discarded, not queued.
func (d *Debouncer) Trigger(fn func()) {
	if d.window <= 0 {
		fn()
		return
	}

	d.mu.Lock()
	if d.pending != nil && d.superseded != nil {
		d.superseded()
	}
	d.pending = fn
	if d.timer == nil {
		d.timer = d.clock.AfterFunc(d.window, d.fire)
	} else {
		d.timer.Reset(d.window)
	}
	d.mu.Unlock()
}

// Stop discards any pending trigger without running it.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = nil
	d.mu.Unlock()
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	fn := d.pending
	d.pending = nil
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}
