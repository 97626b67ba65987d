// Package debounce coalesces rapid event bursts into a single invocation.
package debounce

import (
	"sync"
	"time"
)

// Debouncer holds a single pending invocation slot. Trigger cancels any
// pending call and schedules a new one; only the last call scheduled within
// the window ever fires.
type Debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	pending *time.Timer
}

func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn after the configured delay, replacing any pending
// invocation. A zero delay fires synchronously.
func (d *Debouncer) Trigger(fn func()) {
	if d.delay <= 0 {
		fn()
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		d.pending.Stop()
	}
	d.pending = time.AfterFunc(d.delay, fn)
}

// Stop cancels the pending invocation, if any.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
}
