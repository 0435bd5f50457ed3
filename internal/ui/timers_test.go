package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/framewatch/internal/lifecycle"
)

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
	fired   bool
}

// fakeClock records armed timers so tests decide when they fire.
type fakeClock struct {
	timers []*fakeTimer
}

func (c *fakeClock) after(d time.Duration, f func()) func() bool {
	t := &fakeTimer{d: d, f: f}
	c.timers = append(c.timers, t)
	return func() bool {
		wasLive := !t.stopped && !t.fired
		t.stopped = true
		return wasLive
	}
}

// fire runs the most recent live timer armed with delay d, as the runtime
// would when it expires.
func (c *fakeClock) fire(t *testing.T, d time.Duration) {
	t.Helper()
	for i := len(c.timers) - 1; i >= 0; i-- {
		tm := c.timers[i]
		if tm.d == d && !tm.stopped && !tm.fired {
			tm.fired = true
			tm.f()
			return
		}
	}
	t.Fatalf("no live timer armed for %v", d)
}

func (c *fakeClock) live() int {
	n := 0
	for _, tm := range c.timers {
		if !tm.stopped && !tm.fired {
			n++
		}
	}
	return n
}

func nextFire(t *testing.T, timers *teaTimers) timerFiredMsg {
	t.Helper()
	msg, ok := timers.waitTimerCmd()().(timerFiredMsg)
	require.True(t, ok)
	return msg
}

func TestTeaTimers_OneShotDispatchesOnce(t *testing.T) {
	clock := &fakeClock{}
	timers := newTeaTimers(clock.after)
	calls := 0
	h := timers.Schedule(func() { calls++ }, time.Second, false)
	require.NotEqual(t, lifecycle.NoTimer, h)
	assert.Equal(t, 1, timers.Pending())

	clock.fire(t, time.Second)
	msg := nextFire(t, timers)
	assert.Equal(t, h, msg.handle)

	timers.dispatch(msg.handle)
	timers.dispatch(msg.handle)
	assert.Equal(t, 1, calls)
	assert.Zero(t, timers.Pending())
}

func TestTeaTimers_CancelledFireIsDropped(t *testing.T) {
	clock := &fakeClock{}
	timers := newTeaTimers(clock.after)
	calls := 0
	h := timers.Schedule(func() { calls++ }, time.Second, false)

	// the fire is already queued when the cancel happens
	clock.fire(t, time.Second)
	timers.Cancel(h)
	timers.Cancel(h)
	timers.dispatch(nextFire(t, timers).handle)
	assert.Zero(t, calls)
}

func TestTeaTimers_RepeatingRearmsBeforeCallback(t *testing.T) {
	clock := &fakeClock{}
	timers := newTeaTimers(clock.after)
	calls := 0
	var h lifecycle.TimerHandle
	h = timers.Schedule(func() {
		calls++
		if calls == 3 {
			timers.Cancel(h)
		}
	}, 500*time.Millisecond, true)

	for i := 0; i < 3; i++ {
		clock.fire(t, 500*time.Millisecond)
		timers.dispatch(nextFire(t, timers).handle)
	}
	assert.Equal(t, 3, calls)
	assert.Zero(t, timers.Pending())
	assert.Zero(t, clock.live())
}

func TestTeaTimers_StopAllReleasesWaiters(t *testing.T) {
	clock := &fakeClock{}
	timers := newTeaTimers(clock.after)
	timers.Schedule(func() {}, time.Second, true)
	timers.Schedule(func() {}, 2*time.Second, false)

	timers.stopAll()
	timers.stopAll()
	assert.Zero(t, timers.Pending())
	assert.Zero(t, clock.live())
	assert.Nil(t, timers.waitTimerCmd()())

	// a late expiry must not block forever
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 32; i++ {
			timers.post(1)()
		}
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("post blocked after stopAll")
	}
}

func TestTeaTimers_NilCallback(t *testing.T) {
	timers := newTeaTimers((&fakeClock{}).after)
	assert.Equal(t, lifecycle.NoTimer, timers.Schedule(nil, time.Second, false))
}
