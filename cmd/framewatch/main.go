package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/five82/framewatch/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "config file path (optional, defaults to ~/.config/framewatch/config.toml)")
	prefsPath := flag.String("prefs", "", "preferences file path (optional)")
	sourceLoc := flag.String("source", "", "URL or file to watch (overrides config)")
	intervalMs := flag.Int("interval", -1, "poll interval in milliseconds, 0 disables polling (overrides config)")
	headless := flag.Bool("headless", false, "poll without a UI and log each reload to stderr")
	logLevel := flag.String("log-level", "", "trace, debug, info, warn, error or off (overrides config)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		Source:     *sourceLoc,
		LogLevel:   *logLevel,
		Headless:   *headless,
	}
	if ms := *intervalMs; ms >= 0 {
		opts.Interval = time.Duration(ms) * time.Millisecond
		opts.IntervalSet = true
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "framewatch: %v\n", err)
		return 1
	}
	return 0
}
