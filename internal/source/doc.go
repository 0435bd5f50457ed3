// Package source loads the resource framewatch keeps on screen.
//
// A location is either an http(s) URL, a file:// URL or a plain filesystem
// path. Each Fetch is a fresh load, the equivalent of dropping and re-setting
// a frame's src: HTTP requests carry no-cache headers and files are re-read
// from disk. Bodies are capped at 1 MiB; Resource.Truncated reports when the
// cap was hit.
//
// Fetch errors are returned to the caller as is. The reload action built on
// top of this package treats them as data for the status line, never as a
// reason to stop polling.
package source
