package scheduler

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period applied to search-text changes so
// a rapid burst of keystrokes triggers at most one processing pass
const DefaultDebounce = 300 * time.Millisecond

// Debouncer batches rapid triggers: fn runs once per quiet period, with
// the arguments of the newest call. Safe for concurrent use.
type Debouncer struct {
	interval time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
}

// NewDebouncer creates a debouncer with the given quiet period; a
// non-positive interval falls back to DefaultDebounce
func NewDebouncer(interval time.Duration) *Debouncer {
	if interval <= 0 {
		interval = DefaultDebounce
	}
	return &Debouncer{interval: interval}
}

// Trigger schedules fn after the quiet period, replacing any previously
// scheduled call
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, fn)
}

// Close stops any scheduled call and rejects further triggers
func (d *Debouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
