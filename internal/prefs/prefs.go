// Package prefs persists choices made inside the TUI between runs.
// Preferences are stored in ~/.config/framewatch/prefs.toml and override the
// matching config file settings.
package prefs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/framewatch/internal/config"
)

// Prefs holds user preferences. Zero values mean "not set".
type Prefs struct {
	Theme    string
	Interval time.Duration
	// IntervalSet distinguishes a saved zero (polling off) from no value.
	IntervalSet bool
}

type filePrefs struct {
	Theme      string `toml:"theme,omitempty"`
	IntervalMS *int64 `toml:"interval_ms,omitempty"`
}

const defaultPrefsPath = "~/.config/framewatch/prefs.toml"

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from the given path. A missing or unreadable file
// yields empty preferences rather than an error.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Prefs{}, nil
	}

	file, err := os.Open(resolved)
	if err != nil {
		return Prefs{}, nil // Graceful degradation
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Prefs{}, nil // Graceful degradation
	}

	var raw filePrefs
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Prefs{}, nil // Graceful degradation
	}

	p := Prefs{Theme: strings.TrimSpace(raw.Theme)}
	if raw.IntervalMS != nil && *raw.IntervalMS >= 0 {
		p.Interval = time.Duration(*raw.IntervalMS) * time.Millisecond
		p.IntervalSet = true
	}
	return p, nil
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	raw := filePrefs{Theme: p.Theme}
	if p.IntervalSet {
		ms := p.Interval.Milliseconds()
		raw.IntervalMS = &ms
	}
	bytes, err := toml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

// Apply returns cfg with the saved preferences layered on top.
func (p Prefs) Apply(cfg config.Config) config.Config {
	if p.Theme != "" {
		cfg.Theme = p.Theme
	}
	if p.IntervalSet {
		cfg.Interval = p.Interval
	}
	return cfg
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
