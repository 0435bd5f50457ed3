package lifecycle

import (
	"time"

	"github.com/joeycumines/logiface"
)

// Poller invokes a reload action every interval while it is mounted and the
// document is visible.
type Poller struct {
	timers Timers
	vis    Visibility
	reload func()
	sub    Subscription
	logger *logiface.Logger[logiface.Event]
	name   string

	interval time.Duration
	timer    TimerHandle
	gen      uint64
	mounted  bool
	visible  bool
	disposed bool
	reloads  uint64
}

// NewPoller builds an unconfigured, unmounted Poller.
func NewPoller(timers Timers, vis Visibility, opts ...Option) *Poller {
	o := resolveOptions(opts)
	return &Poller{
		timers: timers,
		vis:    vis,
		logger: o.logger,
		name:   o.name,
	}
}

// Configure sets the period and the reload action. An interval <= 0 leaves
// the poller inert, which is a valid configuration.
//
// Reconfiguring a mounted poller re-arms it with the new period, or disarms
// it when the interval drops to zero.
func (p *Poller) Configure(interval time.Duration, reload func()) {
	if interval < 0 {
		interval = 0
	}
	p.interval = interval
	p.reload = reload

	if !p.mounted {
		return
	}
	if p.enabled() && p.visible {
		p.arm()
		return
	}
	p.disarm()
}

// OnMount starts polling when configured. It subscribes to visibility
// changes and, if the document is visible, arms the repeating timer.
func (p *Poller) OnMount() {
	if p.mounted || p.disposed {
		return
	}
	if !p.enabled() {
		p.logger.Debug().
			Str("controller", p.name).
			Log("poller mounted without interval, staying idle")
		return
	}

	p.mounted = true
	p.visible = !p.vis.Hidden()
	p.sub = p.vis.Subscribe(p.OnVisibilityChange)
	if p.visible {
		p.arm()
	}
}

// OnVisibilityChange reacts to the document being hidden or shown.
// Hiding disarms without reloading. Showing a hidden document reloads once
// and re-arms. Repeating the current value changes nothing.
func (p *Poller) OnVisibilityChange(hidden bool) {
	if !p.mounted {
		return
	}

	if hidden {
		p.visible = false
		p.disarm()
		return
	}

	if p.visible && p.timer != NoTimer {
		return
	}
	p.visible = true
	if !p.enabled() {
		return
	}

	p.invoke()
	// the reload action may have unmounted us
	if p.mounted && p.visible {
		p.arm()
	}
}

// OnUnmount stops polling for good. Unmounting a poller that is not mounted
// does nothing, so a later OnMount still starts it.
func (p *Poller) OnUnmount() {
	if !p.mounted {
		return
	}
	p.disarm()
	if p.sub != nil {
		p.sub.Unsubscribe()
		p.sub = nil
	}
	p.logger.Debug().
		Str("controller", p.name).
		Uint64("reloads", p.reloads).
		Log("poller unmounted")
	p.mounted = false
	p.visible = false
	p.disposed = true
}

// State reports Active while a timer is armed.
func (p *Poller) State() State {
	if p.timer != NoTimer {
		return Active
	}
	return Idle
}

// Mounted reports whether the poller is attached.
func (p *Poller) Mounted() bool { return p.mounted }

// Visible reports the last visibility the poller observed.
func (p *Poller) Visible() bool { return p.visible }

// Interval returns the configured period.
func (p *Poller) Interval() time.Duration { return p.interval }

// Reloads returns how many times the reload action has been invoked.
func (p *Poller) Reloads() uint64 { return p.reloads }

func (p *Poller) enabled() bool {
	return p.interval > 0
}

func (p *Poller) arm() {
	p.disarm()
	gen := p.gen
	p.timer = p.timers.Schedule(func() { p.tick(gen) }, p.interval, true)
	p.logger.Debug().
		Str("controller", p.name).
		Dur("interval", p.interval).
		Uint64("timer", uint64(p.timer)).
		Log("poller armed")
}

func (p *Poller) disarm() {
	if p.timer == NoTimer {
		return
	}
	p.gen++
	p.timers.Cancel(p.timer)
	p.logger.Debug().
		Str("controller", p.name).
		Uint64("timer", uint64(p.timer)).
		Log("poller disarmed")
	p.timer = NoTimer
}

func (p *Poller) tick(gen uint64) {
	// a fire already queued by the host when we disarmed
	if gen != p.gen || !p.mounted || !p.visible || p.timer == NoTimer {
		return
	}
	p.invoke()
}

func (p *Poller) invoke() {
	p.reloads++
	if p.reload != nil {
		p.reload()
	}
}
