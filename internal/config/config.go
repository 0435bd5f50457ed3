package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything framewatch reads from its TOML file.
type Config struct {
	Source         string
	Interval       time.Duration // zero disables polling
	RevertDelay    time.Duration
	CopyText       string
	Clipboard      string
	Theme          string
	LogFile        string
	LogLevel       string
	RequestTimeout time.Duration
}

const (
	defaultConfigPath     = "~/.config/framewatch/config.toml"
	defaultLogFile        = "~/.local/state/framewatch/framewatch.log"
	defaultRevertDelay    = 5000 * time.Millisecond
	defaultRequestTimeout = 5000 * time.Millisecond
	defaultClipboard      = "auto"
	defaultTheme          = "Dracula"
	defaultLogLevel       = "info"
)

// DefaultPath returns the config file used when none is given.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		RevertDelay:    defaultRevertDelay,
		Clipboard:      defaultClipboard,
		Theme:          defaultTheme,
		LogFile:        mustExpand(defaultLogFile),
		LogLevel:       defaultLogLevel,
		RequestTimeout: defaultRequestTimeout,
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Source           string `toml:"source"`
		IntervalMs       int64  `toml:"interval_ms"`
		RevertDelayMs    int64  `toml:"revert_delay_ms"`
		CopyText         string `toml:"copy_text"`
		Clipboard        string `toml:"clipboard"`
		Theme            string `toml:"theme"`
		LogFile          string `toml:"log_file"`
		LogLevel         string `toml:"log_level"`
		RequestTimeoutMs int64  `toml:"request_timeout_ms"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.Source = strings.TrimSpace(raw.Source)
	cfg.CopyText = strings.TrimSpace(raw.CopyText)

	// a missing or non-positive interval leaves polling off
	if raw.IntervalMs > 0 {
		cfg.Interval = time.Duration(raw.IntervalMs) * time.Millisecond
	}
	if raw.RevertDelayMs > 0 {
		cfg.RevertDelay = time.Duration(raw.RevertDelayMs) * time.Millisecond
	}
	if raw.RequestTimeoutMs > 0 {
		cfg.RequestTimeout = time.Duration(raw.RequestTimeoutMs) * time.Millisecond
	}

	if v := strings.ToLower(strings.TrimSpace(raw.Clipboard)); v != "" {
		cfg.Clipboard = v
	}
	if v := strings.TrimSpace(raw.Theme); v != "" {
		cfg.Theme = v
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}

	return cfg, nil
}

// CopyPayload returns the text the copy action writes: copy_text when set,
// the source otherwise.
func (c Config) CopyPayload() string {
	if c.CopyText != "" {
		return c.CopyText
	}
	return c.Source
}

// Validate reports settings that make running impossible.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Source) == "" {
		return fmt.Errorf("no source configured (set source in the config file or pass -source)")
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
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
