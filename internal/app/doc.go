// Package app is the composition root for framewatch.
//
// Run layers the TOML config file, saved preferences and command line
// overrides, builds the logger, the source client and the shared
// state.Store, and then hands control to one of two hosts:
//
//   - the Bubble Tea UI (package ui), which logs to a file because it owns
//     the terminal;
//   - headless mode, which runs a single lifecycle.Poller on a go-eventloop
//     loop (package loophost) and logs every reload to stderr as JSON lines.
//
// In headless mode SIGUSR1 hides the document and SIGUSR2 shows it again,
// which is how a supervisor pauses polling without stopping the process.
//
// Fatal errors are returned from Run: an unreadable config, a missing source,
// an unknown log level or clipboard mode. Reload failures are never fatal;
// they are recorded in the store and logged while polling continues.
package app
