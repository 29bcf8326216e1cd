package watch

import (
	"log/slog"
	"sync"
	"time"
)

// Debouncer coalesces rapid triggers into a single callback invocation
// carrying the most recent value. The callback runs on its own goroutine.
type Debouncer[T any] struct {
	interval time.Duration
	callback func(T)

	mu      sync.Mutex
	timer   *time.Timer
	last    T
	stopped bool

	inflight sync.WaitGroup
}

// NewDebouncer creates a debouncer that waits for interval of quiet before
// calling callback with the last triggered value.
func NewDebouncer[T any](interval time.Duration, callback func(T)) *Debouncer[T] {
	return &Debouncer[T]{
		interval: interval,
		callback: callback,
	}
}

// Trigger records v and restarts the quiet period. Triggers after Stop are
// ignored.
func (d *Debouncer[T]) Trigger(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.last = v

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.interval, d.fire)
}

func (d *Debouncer[T]) fire() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	v := d.last
	d.inflight.Add(1)
	d.mu.Unlock()

	defer d.inflight.Done()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("debouncer callback panicked", slog.Any("error", r))
		}
	}()

	d.callback(v)
}

// Stop cancels any pending callback, disables further triggers and waits
// for a callback that is already running to return.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()

	d.stopped = true

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	d.mu.Unlock()

	d.inflight.Wait()
}
