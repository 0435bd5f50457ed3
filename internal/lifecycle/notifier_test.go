package lifecycle_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/framewatch/internal/lifecycle"
	"github.com/five82/framewatch/internal/simclock"
)

type notifierHarness struct {
	clock    *simclock.Clock
	notifier *lifecycle.Notifier
	copied   []string
	copyErr  error
}

func newNotifierHarness(t *testing.T, opts ...lifecycle.Option) *notifierHarness {
	t.Helper()
	h := &notifierHarness{clock: simclock.New(time.Time{})}
	h.notifier = lifecycle.NewNotifier(h.clock, func(payload string) error {
		h.copied = append(h.copied, payload)
		return h.copyErr
	}, opts...)
	h.notifier.OnMount()
	return h
}

func text(s string) func() string {
	return func() string { return s }
}

func TestNotifier_DefaultRevertDelay(t *testing.T) {
	h := newNotifierHarness(t)
	assert.Equal(t, 5*time.Second, h.notifier.RevertDelay())

	h2 := newNotifierHarness(t, lifecycle.WithRevertDelay(-time.Second))
	assert.Equal(t, lifecycle.DefaultRevertDelay, h2.notifier.RevertDelay())
}

func TestNotifier_TriggerShowsThenReverts(t *testing.T) {
	h := newNotifierHarness(t)
	require.NoError(t, h.notifier.Trigger(text("user@example.test")))
	assert.Equal(t, []string{"user@example.test"}, h.copied)
	assert.True(t, h.notifier.Visible())
	assert.Equal(t, lifecycle.Active, h.notifier.State())
	assert.Equal(t, 1, h.clock.Pending())

	h.clock.Advance(4999 * time.Millisecond)
	assert.True(t, h.notifier.Visible())

	h.clock.Advance(time.Millisecond)
	assert.False(t, h.notifier.Visible())
	assert.Equal(t, lifecycle.Idle, h.notifier.State())
	assert.Equal(t, 0, h.clock.Pending())
}

func TestNotifier_RetriggerRestartsCountdown(t *testing.T) {
	h := newNotifierHarness(t, lifecycle.WithRevertDelay(5*time.Second))
	require.NoError(t, h.notifier.Trigger(text("a"))) // t=0
	h.clock.Advance(3 * time.Second)
	require.NoError(t, h.notifier.Trigger(text("b"))) // t=3000
	assert.True(t, h.notifier.Visible())
	assert.Equal(t, 1, h.clock.Pending())

	h.clock.Advance(4 * time.Second) // t=7000
	assert.True(t, h.notifier.Visible(), "countdown restarted at t=3000")

	h.clock.Advance(time.Second) // t=8000
	assert.False(t, h.notifier.Visible())
	assert.Equal(t, []string{"a", "b"}, h.copied)
}

func TestNotifier_RapidTriggersCoalesce(t *testing.T) {
	for _, n := range []int{1, 2, 5, 40} {
		h := newNotifierHarness(t, lifecycle.WithRevertDelay(time.Second))
		var reverts int
		var last time.Time
		for i := 0; i < n; i++ {
			require.NoError(t, h.notifier.Trigger(text("x")))
			assert.Equal(t, 1, h.clock.Pending(), "one pending revert at most")
			last = h.clock.Now()
			h.clock.Advance(100 * time.Millisecond)
			if !h.notifier.Visible() {
				reverts++
			}
		}
		for h.notifier.Visible() {
			h.clock.Advance(time.Millisecond)
		}
		reverts++

		assert.Len(t, h.copied, n)
		assert.Equal(t, 1, reverts)
		assert.Equal(t, time.Second, h.clock.Now().Sub(last))
	}
}

func TestNotifier_UnmountRevertsImmediately(t *testing.T) {
	h := newNotifierHarness(t)
	require.NoError(t, h.notifier.Trigger(text("x")))
	h.clock.Advance(time.Second)

	h.notifier.OnUnmount()
	assert.False(t, h.notifier.Visible())
	assert.Equal(t, 0, h.clock.Pending())

	h.clock.Advance(time.Minute)
	assert.Equal(t, uint64(0), h.clock.Fired(), "no revert after the original deadline")

	// terminal
	require.ErrorIs(t, h.notifier.Trigger(text("y")), lifecycle.ErrNotMounted)
	assert.False(t, h.notifier.Visible())
	assert.Equal(t, []string{"x"}, h.copied)
	h.notifier.OnMount()
	assert.False(t, h.notifier.Mounted())
}

func TestNotifier_UnmountWhenIdle(t *testing.T) {
	h := newNotifierHarness(t)
	h.notifier.OnUnmount()
	h.notifier.OnUnmount()
	assert.False(t, h.notifier.Visible())

	never := lifecycle.NewNotifier(simclock.New(time.Time{}), nil)
	never.OnUnmount()
	assert.Equal(t, lifecycle.Idle, never.State())
	assert.False(t, never.Mounted())
}

func TestNotifier_TriggerBeforeMountFails(t *testing.T) {
	clock := simclock.New(time.Time{})
	calls := 0
	n := lifecycle.NewNotifier(clock, func(string) error { calls++; return nil })
	require.ErrorIs(t, n.Trigger(text("x")), lifecycle.ErrNotMounted)
	assert.Zero(t, calls)
	assert.Zero(t, n.Triggers())
	assert.False(t, n.Visible())
	assert.Equal(t, 0, clock.Pending())
}

func TestNotifier_UnmountBeforeMountIsNoop(t *testing.T) {
	clock := simclock.New(time.Time{})
	var copied []string
	n := lifecycle.NewNotifier(clock, func(payload string) error {
		copied = append(copied, payload)
		return nil
	})
	n.OnUnmount()
	n.OnUnmount()
	assert.False(t, n.Visible())

	n.OnMount()
	assert.True(t, n.Mounted())
	require.NoError(t, n.Trigger(text("x")))
	assert.Equal(t, []string{"x"}, copied)
	assert.True(t, n.Visible())
	assert.Equal(t, 1, clock.Pending())

	clock.Advance(lifecycle.DefaultRevertDelay)
	assert.False(t, n.Visible())
}

func TestNotifier_CopyFailureStillShows(t *testing.T) {
	h := newNotifierHarness(t)
	h.copyErr = errors.New("clipboard unavailable")

	err := h.notifier.Trigger(text("x"))
	require.ErrorIs(t, err, h.copyErr)
	assert.True(t, h.notifier.Visible())
	assert.Equal(t, uint64(1), h.notifier.Triggers())

	h.clock.Advance(lifecycle.DefaultRevertDelay)
	assert.False(t, h.notifier.Visible())
}

func TestNotifier_CopyActionMayUnmount(t *testing.T) {
	clock := simclock.New(time.Time{})
	var n *lifecycle.Notifier
	n = lifecycle.NewNotifier(clock, func(string) error {
		n.OnUnmount()
		return nil
	})
	n.OnMount()
	require.NoError(t, n.Trigger(text("x")))
	assert.False(t, n.Visible())
	assert.Equal(t, 0, clock.Pending())
}

func TestNotifier_NilPayload(t *testing.T) {
	h := newNotifierHarness(t)
	require.NoError(t, h.notifier.Trigger(nil))
	assert.Equal(t, []string{""}, h.copied)
}
