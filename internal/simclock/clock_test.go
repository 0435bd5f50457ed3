package simclock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClock_OneShotFiresOnceAtDeadline(t *testing.T) {
	c := New(time.Time{})
	var fired []time.Duration
	start := c.Now()
	c.Schedule(func() { fired = append(fired, c.Now().Sub(start)) }, 500*time.Millisecond, false)

	c.Advance(499 * time.Millisecond)
	assert.Empty(t, fired)
	require.Equal(t, 1, c.Pending())

	c.Advance(time.Millisecond)
	assert.Equal(t, []time.Duration{500 * time.Millisecond}, fired)
	assert.Equal(t, 0, c.Pending())

	c.Advance(time.Hour)
	assert.Len(t, fired, 1)
}

func TestClock_RepeatingFiresEveryPeriod(t *testing.T) {
	c := New(time.Time{})
	count := 0
	h := c.Schedule(func() { count++ }, time.Second, true)

	c.Advance(3500 * time.Millisecond)
	assert.Equal(t, 3, count)

	c.Cancel(h)
	c.Advance(10 * time.Second)
	assert.Equal(t, 3, count)
	assert.Equal(t, 0, c.Pending())
}

func TestClock_CancelUnknownAndTwiceIsNoop(t *testing.T) {
	c := New(time.Time{})
	c.Cancel(0)
	c.Cancel(42)

	h := c.Schedule(func() {}, time.Second, false)
	c.Cancel(h)
	c.Cancel(h)
	assert.Equal(t, 0, c.Pending())

	fired := c.Schedule(func() {}, time.Millisecond, false)
	c.Advance(time.Second)
	c.Cancel(fired)
	assert.Equal(t, uint64(1), c.Fired())
}

func TestClock_TiesFireInSchedulingOrder(t *testing.T) {
	c := New(time.Time{})
	var order []string
	c.Schedule(func() { order = append(order, "a") }, time.Second, false)
	c.Schedule(func() { order = append(order, "b") }, time.Second, false)
	c.Schedule(func() { order = append(order, "early") }, 500*time.Millisecond, false)

	c.Advance(time.Second)
	assert.Equal(t, []string{"early", "a", "b"}, order)
}

func TestClock_CallbackMayCancelAndReschedule(t *testing.T) {
	c := New(time.Time{})
	require.Zero(t, c.Schedule(nil, time.Second, true), "nil callbacks are never armed")

	other := c.Schedule(func() { t.Fatal("cancelled timer fired") }, 1500*time.Millisecond, false)
	count := 0
	rep := c.Schedule(func() {
		count++
		c.Cancel(other)
		c.Schedule(func() { count += 10 }, 0, false)
	}, time.Second, true)

	c.Advance(2 * time.Second)
	assert.Equal(t, 22, count)

	c.Cancel(rep)
	assert.Equal(t, 0, c.Pending())
}

func TestClock_AdvanceToPastIsIgnored(t *testing.T) {
	c := New(time.Unix(100, 0))
	c.AdvanceTo(time.Unix(50, 0))
	assert.Equal(t, time.Unix(100, 0), c.Now())
}
