package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/framewatch/internal/lifecycle"
)

// afterFunc arms a wall-clock timer and returns its stop function.
type afterFunc func(d time.Duration, f func()) (stop func() bool)

func realAfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// timerFiredMsg carries a timer fire from the clock goroutine into Update.
type timerFiredMsg struct {
	handle lifecycle.TimerHandle
}

type teaTimer struct {
	fn     func()
	period time.Duration
	stop   func() bool
}

// teaTimers implements lifecycle.Timers for a Bubble Tea program. Wall-clock
// timers only post the handle to a channel; callbacks run inside Update, so
// controllers are only ever touched from the program's event loop.
type teaTimers struct {
	after afterFunc
	fired chan lifecycle.TimerHandle
	done  chan struct{}
	live  map[lifecycle.TimerHandle]*teaTimer
	next  lifecycle.TimerHandle
}

var _ lifecycle.Timers = (*teaTimers)(nil)

func newTeaTimers(after afterFunc) *teaTimers {
	if after == nil {
		after = realAfterFunc
	}
	return &teaTimers{
		after: after,
		fired: make(chan lifecycle.TimerHandle, 16),
		done:  make(chan struct{}),
		live:  make(map[lifecycle.TimerHandle]*teaTimer),
	}
}

// Schedule implements lifecycle.Timers.
func (t *teaTimers) Schedule(fn func(), delay time.Duration, repeating bool) lifecycle.TimerHandle {
	if fn == nil {
		return lifecycle.NoTimer
	}
	if delay < 0 {
		delay = 0
	}
	t.next++
	h := t.next
	tm := &teaTimer{fn: fn}
	if repeating {
		tm.period = max(delay, time.Millisecond)
		delay = tm.period
	}
	tm.stop = t.after(delay, t.post(h))
	t.live[h] = tm
	return h
}

// Cancel implements lifecycle.Timers. A fire already sitting in the channel
// is dropped when it reaches dispatch.
func (t *teaTimers) Cancel(h lifecycle.TimerHandle) {
	tm, ok := t.live[h]
	if !ok {
		return
	}
	delete(t.live, h)
	tm.stop()
}

// Pending returns how many timers are armed.
func (t *teaTimers) Pending() int {
	return len(t.live)
}

// dispatch runs the callback for h if it is still armed.
func (t *teaTimers) dispatch(h lifecycle.TimerHandle) {
	tm, ok := t.live[h]
	if !ok {
		return
	}
	if tm.period > 0 {
		tm.stop = t.after(tm.period, t.post(h))
	} else {
		delete(t.live, h)
	}
	tm.fn()
}

// stopAll cancels every timer and releases goroutines blocked on post.
func (t *teaTimers) stopAll() {
	for h, tm := range t.live {
		tm.stop()
		delete(t.live, h)
	}
	select {
	case <-t.done:
	default:
		close(t.done)
	}
}

func (t *teaTimers) post(h lifecycle.TimerHandle) func() {
	return func() {
		select {
		case t.fired <- h:
		case <-t.done:
		}
	}
}

// waitTimerCmd blocks until the next timer fire.
func (t *teaTimers) waitTimerCmd() tea.Cmd {
	fired, done := t.fired, t.done
	return func() tea.Msg {
		select {
		case h := <-fired:
			return timerFiredMsg{handle: h}
		case <-done:
			return nil
		}
	}
}
