// Package logging builds the structured logger shared by every framewatch
// component: a logiface facade writing JSON lines through stumpy.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// Logger is the generic logger type passed around the application.
type Logger = logiface.Logger[logiface.Event]

// Options configure New.
type Options struct {
	// Writer receives one JSON object per line; nil means stderr.
	Writer io.Writer
	// Level is used as is; see ParseLevel.
	Level logiface.Level
	// NoTime drops the timestamp field, for stable test output.
	NoTime bool
}

// New returns a logger.
func New(opts Options) *Logger {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}

	stumpyOpts := []stumpy.Option{stumpy.WithWriter(writer)}
	if opts.NoTime {
		stumpyOpts = append(stumpyOpts, stumpy.WithTimeField(``))
	}

	return stumpy.L.New(
		stumpy.L.WithStumpy(stumpyOpts...),
		stumpy.L.WithLevel(opts.Level),
	).Logger()
}

// ParseLevel maps a config/flag value onto a logiface level.
func ParseLevel(s string) (logiface.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info", "informational":
		return logiface.LevelInformational, nil
	case "trace":
		return logiface.LevelTrace, nil
	case "debug":
		return logiface.LevelDebug, nil
	case "notice":
		return logiface.LevelNotice, nil
	case "warn", "warning":
		return logiface.LevelWarning, nil
	case "err", "error":
		return logiface.LevelError, nil
	case "off", "none", "disabled":
		return logiface.LevelDisabled, nil
	default:
		return logiface.LevelDisabled, fmt.Errorf("unknown log level %q", s)
	}
}

// OpenFile opens path for appending, creating parent directories.
func OpenFile(path string) (*os.File, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("log file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
