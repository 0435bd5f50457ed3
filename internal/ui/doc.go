// Package ui provides the Bubble Tea terminal interface for framewatch.
//
// The interface shows one watch panel: the latest load of the configured
// resource, refreshed by a lifecycle.Poller while the terminal has focus, and
// a copy action whose confirmation toast is owned by a lifecycle.Notifier.
//
// # Timers
//
// Controllers are not safe for concurrent use, so their timers never call
// back from a timer goroutine. teaTimers arms time.AfterFunc timers that
// only post a handle to a channel; the program receives it as a
// timerFiredMsg and runs the callback inside Update. Cancelled handles are
// dropped when they arrive.
//
// # Visibility
//
// The program runs with focus reporting. Losing focus hides the document,
// which stops polling; regaining it reloads once and resumes. The v key
// toggles the same state by hand for terminals without focus events.
//
// # Mounting
//
// Opening help unmounts the panel and closing it mounts a fresh one, so the
// help screen never polls. Quitting unmounts and stops every timer.
//
// # Key Bindings
//
//   - c: Copy the configured text
//   - r: Reload now
//   - +/-: Poll less or more often (persisted to prefs)
//   - v: Hide/show
//   - l: Toggle the framewatch log (the tail of the log file)
//   - j/k, ctrl+d/u, g/G: Scroll
//   - T: Cycle theme
//   - ?: Toggle help
//   - q or Ctrl+C: Quit
package ui
