// Package countdown implements the countdown engine: a deadline-based state
// machine that emits remaining-time snapshots on a fixed tick and stops on
// completion or a monotonic cancellation signal.
package countdown

import (
	"context"
	"sync"
	"time"
)

// Status is the engine's lifecycle state.
type Status int

const (
	// StatusIdle means Run has not been called yet.
	StatusIdle Status = iota
	// StatusRunning means the countdown is in progress.
	StatusRunning
	// StatusPaused means the countdown is frozen; remaining time is held.
	StatusPaused
	// StatusCompleted means the countdown reached zero.
	StatusCompleted
	// StatusCancelled means the countdown was stopped before reaching zero.
	StatusCancelled
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Done reports whether the status is terminal.
func (s Status) Done() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Snapshot is an immutable view of the countdown at one tick.
type Snapshot struct {
	// Remaining is the time left until the deadline, clamped at zero.
	Remaining time.Duration
	// Total is the originally requested duration.
	Total time.Duration
	// Status is the engine status when the snapshot was taken.
	Status Status
	// At is the wall-clock time the snapshot was taken.
	At time.Time
}

// DefaultTickInterval is the snapshot cadence used when no option overrides it.
const DefaultTickInterval = time.Second

// Option configures an Engine.
type Option func(*Engine)

// WithInterval sets the tick interval. Values <= 0 fall back to the default.
func WithInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.interval = d
		}
	}
}

// WithClock injects the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithLogger attaches a debug logger. A nil logger disables debug output.
func WithLogger(l *DebugLogger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// Engine owns the countdown state machine. It performs no I/O: it emits
// snapshots on a channel and observes a shared cancellation signal. Remaining
// time is always recomputed from the absolute deadline, never decremented,
// so scheduler jitter cannot accumulate into drift.
type Engine struct {
	total    time.Duration
	interval time.Duration
	now      func() time.Time
	logger   *DebugLogger

	mu       sync.Mutex
	status   Status
	deadline time.Time
	// frozen holds the remaining time while paused.
	frozen time.Duration

	snapshots  chan Snapshot
	cancelled  chan struct{}
	cancelOnce sync.Once
}

// New creates an engine for the given total duration. Negative totals are
// treated as zero.
func New(total time.Duration, opts ...Option) *Engine {
	if total < 0 {
		total = 0
	}
	e := &Engine{
		total:    total,
		interval: DefaultTickInterval,
		now:      time.Now,
		status:   StatusIdle,
		// One slot of slack so a tick is never lost to a consumer that is
		// mid-render; the send still blocks rather than drop.
		snapshots: make(chan Snapshot, 1),
		cancelled: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Snapshots returns the channel of remaining-time snapshots. It is closed
// when the engine reaches a terminal status; no snapshots follow closure.
func (e *Engine) Snapshots() <-chan Snapshot {
	return e.snapshots
}

// Cancel sets the cancellation signal. It is safe to call from any
// goroutine, any number of times; only the first call has an effect and the
// signal is never un-set.
func (e *Engine) Cancel() {
	e.cancelOnce.Do(func() {
		close(e.cancelled)
	})
}

// Cancelled exposes the cancellation signal for additional observers.
func (e *Engine) Cancelled() <-chan struct{} {
	return e.cancelled
}

// Status returns the current engine status.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// Remaining returns the time left at this instant.
func (e *Engine) Remaining() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.remainingLocked(e.now())
}

// Pause freezes the countdown. It has no effect unless the engine is running.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.status != StatusRunning {
		return
	}
	e.frozen = e.remainingLocked(e.now())
	e.status = StatusPaused
	e.logger.Log("paused with %s remaining", e.frozen)
}

// Resume restarts a paused countdown. The deadline is recomputed from the
// frozen remaining time so paused time does not count against the total.
func (e *Engine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.status != StatusPaused {
		return
	}
	e.deadline = e.now().Add(e.frozen)
	e.status = StatusRunning
	e.logger.Log("resumed with %s remaining", e.frozen)
}

// TogglePause pauses a running engine or resumes a paused one.
func (e *Engine) TogglePause() {
	switch e.Status() {
	case StatusRunning:
		e.Pause()
	case StatusPaused:
		e.Resume()
	}
}

// Run executes the countdown until it completes or is cancelled, emitting
// one snapshot at start and one per tick. It closes the snapshot channel on
// every exit path and returns the terminal status. Run may be called once;
// subsequent calls return the current status without side effects.
func (e *Engine) Run(ctx context.Context) Status {
	e.mu.Lock()
	if e.status != StatusIdle {
		status := e.status
		e.mu.Unlock()
		return status
	}
	e.status = StatusRunning
	e.deadline = e.now().Add(e.total)
	e.mu.Unlock()

	e.logger.Log("countdown started: total=%s interval=%s", e.total, e.interval)
	defer close(e.snapshots)

	// A cancellation raised before the run started wins outright; nothing
	// is emitted.
	select {
	case <-e.cancelled:
		return e.finish(StatusCancelled)
	case <-ctx.Done():
		return e.finish(StatusCancelled)
	default:
	}

	// Initial snapshot so the consumer has a frame before the first tick.
	first := e.takeSnapshot()
	if !e.send(ctx, first) {
		return e.finish(StatusCancelled)
	}
	if first.Remaining <= 0 {
		return e.finish(StatusCompleted)
	}

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return e.finish(StatusCancelled)
		case <-e.cancelled:
			return e.finish(StatusCancelled)
		case <-ticker.C:
			snap := e.takeSnapshot()
			if !e.send(ctx, snap) {
				return e.finish(StatusCancelled)
			}
			if snap.Status == StatusRunning && snap.Remaining <= 0 {
				return e.finish(StatusCompleted)
			}
		}
	}
}

// send delivers a snapshot, giving up if cancellation arrives while the
// consumer is busy. Returns false when the run should stop as cancelled.
func (e *Engine) send(ctx context.Context, snap Snapshot) bool {
	select {
	case e.snapshots <- snap:
		return true
	case <-e.cancelled:
		return false
	case <-ctx.Done():
		return false
	}
}

// takeSnapshot reads the countdown state at this instant.
func (e *Engine) takeSnapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now()
	return Snapshot{
		Remaining: e.remainingLocked(now),
		Total:     e.total,
		Status:    e.status,
		At:        now,
	}
}

// remainingLocked computes remaining time from the deadline. Callers must
// hold e.mu.
func (e *Engine) remainingLocked(now time.Time) time.Duration {
	if e.status == StatusPaused {
		return e.frozen
	}
	rem := e.deadline.Sub(now)
	if rem < 0 {
		rem = 0
	}
	return rem
}

// finish records the terminal status.
func (e *Engine) finish(status Status) Status {
	e.mu.Lock()
	e.status = status
	e.mu.Unlock()
	e.logger.Log("countdown finished: status=%s", status)
	return status
}
