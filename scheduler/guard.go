// Package scheduler coordinates heavy data-processing passes so that at
// most one instance of a guarded operation is in flight at a time and a
// busy signal is always observable before the pass starts.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrClosed is returned by Do after the guard has been torn down
var ErrClosed = errors.New("scheduler: guard is closed")

// State of a guard slot
type State int

// Guard slot states
const (
	Idle State = iota
	Busy
)

// Operation is one guarded pass. It must honor ctx: after the guard is
// closed the context is cancelled and the operation must not deliver its
// result.
type Operation func(ctx context.Context) error

// Guard serializes invocations of one logical operation slot. A request
// arriving while a pass is in flight replaces any pending request and
// runs when the current pass completes, so rapid triggers coalesce to
// the newest input instead of stacking or being lost.
type Guard struct {
	name    string
	log     *zap.Logger
	onBusy  func(bool)
	onError func(error)

	mu      sync.Mutex
	state   State
	pending Operation
	closed  bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewGuard creates a guard for one operation slot. onBusy, when non-nil,
// observes busy transitions; it is invoked before the heavy work starts
// and after the last coalesced pass completes. onError observes pass
// failures; the guard itself only logs them.
func NewGuard(name string, log *zap.Logger, onBusy func(bool), onError func(error)) *Guard {
	ctx, cancel := context.WithCancel(context.Background())
	return &Guard{
		name:    name,
		log:     log,
		onBusy:  onBusy,
		onError: onError,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// IsBusy reports whether a pass is currently in flight
func (g *Guard) IsBusy() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state == Busy
}

// Do schedules op on the guard's slot. When the slot is idle the busy
// signal is delivered synchronously and the pass starts on its own
// goroutine. When the slot is busy, op replaces any pending request and
// runs after the in-flight pass. Do never blocks on the pass itself.
func (g *Guard) Do(op Operation) error {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return ErrClosed
	}
	if g.state == Busy {
		if g.pending != nil {
			opsCoalesced.WithLabelValues(g.name).Inc()
		}
		g.pending = op
		g.mu.Unlock()
		return nil
	}
	g.state = Busy
	g.mu.Unlock()

	// Busy must be observable before the heavy work begins
	if g.onBusy != nil {
		g.onBusy(true)
	}

	g.wg.Add(1)
	go g.run(op)
	return nil
}

// run executes op and then drains the pending slot until it is empty,
// keeping the busy state up across coalesced passes.
func (g *Guard) run(op Operation) {
	defer g.wg.Done()

	for {
		g.execute(op)

		g.mu.Lock()
		if g.pending == nil || g.closed {
			g.state = Idle
			g.pending = nil
			closed := g.closed
			g.mu.Unlock()
			if g.onBusy != nil && !closed {
				g.onBusy(false)
			}
			return
		}
		op = g.pending
		g.pending = nil
		g.mu.Unlock()
	}
}

// execute runs a single pass, converting panics into operation failures
// so the slot never sticks in Busy
func (g *Guard) execute(op Operation) {
	start := time.Now()
	opsStarted.WithLabelValues(g.name).Inc()

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("operation panicked: %v", r)
			}
		}()
		return op(g.ctx)
	}()

	opDuration.WithLabelValues(g.name).Observe(time.Since(start).Seconds())
	if err != nil {
		opsCompleted.WithLabelValues(g.name, "error").Inc()
		g.log.Warn("guarded operation failed",
			zap.String("op", g.name), zap.Error(err))
		if g.onError != nil && g.ctx.Err() == nil {
			g.onError(err)
		}
		return
	}
	opsCompleted.WithLabelValues(g.name, "ok").Inc()
}

// Close tears the guard down: pending work is discarded, the operation
// context is cancelled so an in-flight pass cannot deliver its result,
// and the busy flag is reset. Close waits for the in-flight goroutine to
// unwind.
func (g *Guard) Close() {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.closed = true
	g.pending = nil
	g.mu.Unlock()

	g.cancel()
	g.wg.Wait()

	g.mu.Lock()
	g.state = Idle
	g.mu.Unlock()
}
