// Package loophost runs lifecycle controllers on a go-eventloop Loop.
//
// The loop is single threaded: timer callbacks and every function passed to
// Do run on the loop goroutine, so controllers need no locking as long as all
// calls into them go through Do.
package loophost

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	eventloop "github.com/joeycumines/go-eventloop"

	"github.com/five82/framewatch/internal/lifecycle"
	"github.com/five82/framewatch/internal/logging"
)

type entry struct {
	id        uint64
	repeating bool
}

// Host owns an event loop and implements lifecycle.Timers on top of its
// setTimeout/setInterval adapter.
type Host struct {
	loop   *eventloop.Loop
	js     *eventloop.JS
	logger *logging.Logger

	mu      sync.Mutex
	handles map[lifecycle.TimerHandle]entry
	next    lifecycle.TimerHandle
}

var _ lifecycle.Timers = (*Host)(nil)

// New creates a host with a fresh loop. The loop does not process anything
// until Run is called.
func New(logger *logging.Logger) (*Host, error) {
	loop, err := eventloop.New()
	if err != nil {
		return nil, fmt.Errorf("create event loop: %w", err)
	}
	js, err := eventloop.NewJS(loop)
	if err != nil {
		_ = loop.Close()
		return nil, fmt.Errorf("create timer adapter: %w", err)
	}
	return &Host{
		loop:    loop,
		js:      js,
		logger:  logger,
		handles: make(map[lifecycle.TimerHandle]entry),
	}, nil
}

// Run blocks processing tasks and timers until ctx is done or Shutdown is
// called.
func (h *Host) Run(ctx context.Context) error {
	err := h.loop.Run(ctx)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	if errors.Is(err, eventloop.ErrLoopTerminated) {
		// stopped by Shutdown while running
		return nil
	}
	return err
}

// Shutdown drains queued work and stops the loop.
func (h *Host) Shutdown(ctx context.Context) error {
	err := h.loop.Shutdown(ctx)
	if errors.Is(err, eventloop.ErrLoopTerminated) {
		return nil
	}
	return err
}

// Close releases the loop without draining it. Use it for hosts that were
// never run.
func (h *Host) Close() error {
	return h.loop.Close()
}

// Do queues fn to run on the loop goroutine.
func (h *Host) Do(fn func()) error {
	if fn == nil {
		return nil
	}
	if err := h.loop.Submit(fn); err != nil {
		return fmt.Errorf("submit to loop: %w", err)
	}
	return nil
}

// Schedule implements lifecycle.Timers. It must be called from the loop
// goroutine or before Run.
func (h *Host) Schedule(fn func(), delay time.Duration, repeating bool) lifecycle.TimerHandle {
	if fn == nil {
		return lifecycle.NoTimer
	}
	ms := toMillis(delay)

	h.mu.Lock()
	h.next++
	handle := h.next
	h.mu.Unlock()

	var (
		id  uint64
		err error
	)
	if repeating {
		id, err = h.js.SetInterval(fn, max(ms, 1))
	} else {
		id, err = h.js.SetTimeout(func() {
			h.forget(handle)
			fn()
		}, ms)
	}
	if err != nil {
		h.logger.Warning().
			Err(err).
			Dur("delay", delay).
			Log("schedule timer failed")
		return lifecycle.NoTimer
	}

	h.mu.Lock()
	h.handles[handle] = entry{id: id, repeating: repeating}
	h.mu.Unlock()
	return handle
}

// Cancel implements lifecycle.Timers. Unknown and already fired handles are
// ignored.
func (h *Host) Cancel(handle lifecycle.TimerHandle) {
	e, ok := h.forget(handle)
	if !ok {
		return
	}
	var err error
	if e.repeating {
		err = h.js.ClearInterval(e.id)
	} else {
		err = h.js.ClearTimeout(e.id)
	}
	if err != nil && !errors.Is(err, eventloop.ErrTimerNotFound) {
		h.logger.Warning().
			Err(err).
			Uint64("timer", e.id).
			Log("cancel timer failed")
	}
}

// Pending returns how many timers are armed.
func (h *Host) Pending() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handles)
}

func (h *Host) forget(handle lifecycle.TimerHandle) (entry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	e, ok := h.handles[handle]
	if ok {
		delete(h.handles, handle)
	}
	return e, ok
}

// toMillis rounds up so that sub-millisecond delays never fire early.
func toMillis(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Millisecond - 1) / time.Millisecond)
}
