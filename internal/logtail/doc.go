// Package logtail reads the end of framewatch's own log file for display in
// the TUI.
//
// Read keeps a ring buffer of maxLines, so memory stays bounded however large
// the file grows, and returns the lines oldest first. A missing file is not an
// error.
//
// The log is JSON lines written by the stumpy backend. Format turns each line
// into a compact "time LEVEL message key=value" form with fields sorted by
// key, and passes anything that is not a JSON object through unchanged.
package logtail
