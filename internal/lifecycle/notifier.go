package lifecycle

import (
	"errors"
	"time"

	"github.com/joeycumines/logiface"
)

// ErrNotMounted is returned by Trigger when the notifier is not mounted. The
// copy action is not called.
var ErrNotMounted = errors.New("notifier not mounted")

// CopyFunc is the external effect performed on every trigger.
type CopyFunc func(payload string) error

// Notifier performs an effect and shows a transient notification that hides
// itself after a fixed delay.
type Notifier struct {
	timers Timers
	effect CopyFunc
	logger *logiface.Logger[logiface.Event]
	name   string

	delay    time.Duration
	timer    TimerHandle
	gen      uint64
	visible  bool
	mounted  bool
	disposed bool
	triggers uint64
}

// NewNotifier builds an unmounted Notifier. Call OnMount before Trigger. The
// revert delay defaults to DefaultRevertDelay, see WithRevertDelay.
func NewNotifier(timers Timers, effect CopyFunc, opts ...Option) *Notifier {
	o := resolveOptions(opts)
	return &Notifier{
		timers: timers,
		effect: effect,
		logger: o.logger,
		name:   o.name,
		delay:  o.revertDelay,
	}
}

// OnMount attaches the notifier. Triggers before mount fail with
// ErrNotMounted.
func (n *Notifier) OnMount() {
	if n.mounted || n.disposed {
		return
	}
	n.mounted = true
}

// Trigger calls the copy action with payload(), then shows the notification
// and (re)starts the revert countdown. A pending countdown is replaced, so
// the notification always hides RevertDelay after the most recent trigger.
//
// The error from the copy action is returned as is. The notification is
// shown either way. Triggering an unmounted notifier returns ErrNotMounted.
func (n *Notifier) Trigger(payload func() string) error {
	if !n.mounted {
		return ErrNotMounted
	}

	var text string
	if payload != nil {
		text = payload()
	}

	n.triggers++
	var err error
	if n.effect != nil {
		err = n.effect(text)
	}

	// the copy action may have unmounted us
	if !n.mounted {
		return err
	}

	n.visible = true
	n.cancel()
	gen := n.gen
	n.timer = n.timers.Schedule(func() { n.fire(gen) }, n.delay, false)
	n.logger.Debug().
		Str("controller", n.name).
		Dur("delay", n.delay).
		Uint64("timer", uint64(n.timer)).
		Log("notifier shown")
	return err
}

// OnUnmount cancels any pending countdown and hides the notification
// immediately, whatever its current state. Only a mounted notifier is
// retired; unmounting before OnMount leaves it usable.
func (n *Notifier) OnUnmount() {
	n.cancel()
	n.revert()
	if n.mounted {
		n.mounted = false
		n.disposed = true
	}
}

// Visible reports whether the notification is shown.
func (n *Notifier) Visible() bool { return n.visible }

// Mounted reports whether the notifier is attached.
func (n *Notifier) Mounted() bool { return n.mounted }

// RevertDelay returns how long the notification stays visible.
func (n *Notifier) RevertDelay() time.Duration { return n.delay }

// Triggers returns how many triggers were accepted.
func (n *Notifier) Triggers() uint64 { return n.triggers }

// State reports Active while the notification is shown.
func (n *Notifier) State() State {
	if n.visible {
		return Active
	}
	return Idle
}

func (n *Notifier) fire(gen uint64) {
	if gen != n.gen || n.timer == NoTimer {
		return
	}
	n.timer = NoTimer
	n.revert()
}

func (n *Notifier) cancel() {
	if n.timer == NoTimer {
		return
	}
	n.gen++
	n.timers.Cancel(n.timer)
	n.timer = NoTimer
}

func (n *Notifier) revert() {
	n.cancel()
	if n.visible {
		n.logger.Debug().
			Str("controller", n.name).
			Log("notifier hidden")
	}
	n.visible = false
}
