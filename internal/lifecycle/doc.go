// Package lifecycle implements small controllers whose timers are bound to the
// mount/unmount lifecycle of a host element and to the visibility of the host
// document.
//
// # Overview
//
// Two controllers share one pattern, a two-state machine ({Idle, Active}) that
// owns at most one armed timer:
//
//   - Poller: repeatedly invokes a reload action while mounted and visible.
//     Hiding the document disarms the timer; showing it again reloads once
//     immediately and resumes the period. Unmounting stops everything.
//   - Notifier: performs an effect (typically a clipboard write) and shows a
//     notification for a fixed delay. Re-triggering restarts the countdown
//     rather than stacking timers. Unmounting reverts immediately.
//
// # Host contract
//
// Controllers never start goroutines and hold no locks. The host provides:
//
//   - a [Timers] facility (schedule one-shot or repeating callbacks, cancel by
//     [TimerHandle]); cancelling an unknown or fired handle must be a no-op
//   - a [Visibility] source; [Document] is an in-process implementation
//   - mount/unmount notifications, delivered by calling OnMount/OnUnmount
//
// Every controller method, and every timer or visibility callback, must run
// on the host's event-loop goroutine. Handlers for one controller are
// therefore strictly serialized and the invariants hold without
// synchronization.
//
// # Lifecycle
//
// A controller is built, configured, mounted once and unmounted once.
// Unmount is terminal: later calls (including another OnMount) are ignored.
// Hosts that re-attach an element build a fresh controller.
//
// # Error Handling
//
// Misconfiguration (no interval) disables polling silently. Redundant
// lifecycle calls are no-ops. Effect failures from the notifier's copy action
// are returned to the caller of [Notifier.Trigger] untouched, while the
// notification cycle proceeds regardless.
package lifecycle
