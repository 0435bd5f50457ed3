package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/five82/framewatch/internal/clipboard"
	"github.com/five82/framewatch/internal/config"
	"github.com/five82/framewatch/internal/logging"
	"github.com/five82/framewatch/internal/prefs"
	"github.com/five82/framewatch/internal/source"
	"github.com/five82/framewatch/internal/state"
	"github.com/five82/framewatch/internal/ui"
)

// Options configure the framewatch application. Zero values defer to the
// config file.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/framewatch/prefs.toml
	Source     string
	// Interval overrides the config when IntervalSet; zero turns polling off.
	Interval    time.Duration
	IntervalSet bool
	LogLevel    string
	Headless    bool

	// Stderr receives headless logs and OSC 52 clipboard sequences; nil means
	// os.Stderr.
	Stderr io.Writer
}

// Run loads configuration and blocks in the TUI, or in headless mode, until
// the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	client, err := source.NewClient(cfg.Source, cfg.RequestTimeout)
	if err != nil {
		return fmt.Errorf("init source client: %w", err)
	}
	store := &state.Store{}

	if opts.Headless {
		logger := logging.New(logging.Options{Writer: stderr, Level: level})
		logger.Info().
			Str("source", client.Location()).
			Dur("interval", cfg.Interval).
			Log("framewatch starting headless")
		return runHeadless(ctx, headlessDeps{
			Fetcher:  client,
			Store:    store,
			Logger:   logger,
			Interval: cfg.Interval,
		})
	}

	// the TUI owns the terminal, so logs go to a file
	var logOut io.Writer = io.Discard
	if f, err := logging.OpenFile(cfg.LogFile); err == nil {
		defer func() { _ = f.Close() }()
		logOut = f
	}
	logger := logging.New(logging.Options{Writer: logOut, Level: level})

	sink, err := newClipboard(cfg.Clipboard, stderr)
	if err != nil {
		return err
	}

	logger.Info().
		Str("source", client.Location()).
		Dur("interval", cfg.Interval).
		Str("clipboard", cfg.Clipboard).
		Log("framewatch starting")

	return ui.Run(ctx, ui.Options{
		Context:     ctx,
		Fetcher:     client,
		Store:       store,
		Clipboard:   sink,
		Logger:      logger,
		Location:    client.Location(),
		Interval:    cfg.Interval,
		RevertDelay: cfg.RevertDelay,
		CopyText:    cfg.CopyPayload(),
		ThemeName:   cfg.Theme,
		PrefsPath:   prefsPath(opts.PrefsPath),
		LogPath:     cfg.LogFile,
	})
}

// resolveConfig layers config file, saved preferences and command line
// overrides, in that order.
func resolveConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)
	cfg = userPrefs.Apply(cfg)

	if opts.Source != "" {
		cfg.Source = opts.Source
	}
	if opts.IntervalSet {
		cfg.Interval = max(opts.Interval, 0)
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newClipboard builds the copy sink. OSC 52 sequences go to stderr, never to
// stdout where Bubble Tea renders from its own goroutine.
func newClipboard(mode string, stderr io.Writer) (clipboard.Sink, error) {
	sink, err := clipboard.New(mode, stderr)
	if err != nil {
		return nil, fmt.Errorf("clipboard: %w", err)
	}
	return sink, nil
}

func prefsPath(path string) string {
	if path == "" {
		return prefs.DefaultPath()
	}
	return path
}
