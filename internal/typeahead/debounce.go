package typeahead

import (
	"sync"
	"time"
)

// Debouncer delays propagation of a rapidly-changing value until it has
// been stable for the configured interval. Each new input cancels the
// pending delivery of the previous one, so only the last value of a
// burst ever reaches the callback. It is not a batcher: intermediate
// values are discarded, not queued.
type Debouncer struct {
	mu       sync.Mutex
	interval time.Duration
	fn       func(string)
	timer    *time.Timer
	stopped  bool
}

// NewDebouncer creates a debouncer that delivers stable values to fn.
// The callback runs on a timer goroutine.
func NewDebouncer(interval time.Duration, fn func(string)) *Debouncer {
	return &Debouncer{
		interval: interval,
		fn:       fn,
	}
}

// Input records a new value and restarts the quiescence window.
func (d *Debouncer) Input(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, func() {
		d.mu.Lock()
		stopped := d.stopped
		d.mu.Unlock()
		if !stopped {
			d.fn(value)
		}
	})
}

// Stop cancels any pending delivery and rejects further input.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}
