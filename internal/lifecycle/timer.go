package lifecycle

import "time"

// TimerHandle identifies a timer armed through a [Timers] facility.
// The zero value, [NoTimer], never refers to an armed timer.
type TimerHandle uint64

// NoTimer is the handle of a timer that was never armed.
const NoTimer TimerHandle = 0

// Timers is the host timer facility.
type Timers interface {
	// Schedule arms fn to run after delay, and then every delay when
	// repeating is set, until cancelled. Hosts that cannot schedule return
	// NoTimer.
	Schedule(fn func(), delay time.Duration, repeating bool) TimerHandle

	// Cancel disarms h. Cancelling NoTimer, a fired one-shot or an already
	// cancelled handle does nothing.
	Cancel(h TimerHandle)
}

// State is the coarse state shared by every controller in this package.
type State int

const (
	// Idle means no timer is armed and nothing is shown.
	Idle State = iota
	// Active means the controller owns an armed timer.
	Active
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	default:
		return "unknown"
	}
}
