package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/five82/framewatch/internal/lifecycle"
	"github.com/five82/framewatch/internal/logging"
	"github.com/five82/framewatch/internal/loophost"
	"github.com/five82/framewatch/internal/source"
	"github.com/five82/framewatch/internal/state"
)

const shutdownTimeout = 3 * time.Second

type headlessDeps struct {
	Fetcher  source.Fetcher
	Store    *state.Store
	Logger   *logging.Logger
	Interval time.Duration
	// Signals overrides the OS signal source; nil uses notifyVisibility.
	Signals func(ctx context.Context, set func(hidden bool)) (stop func())
}

// watcher is the headless reload action. reload runs on the loop goroutine,
// fetches run on their own goroutines and report to the store.
type watcher struct {
	ctx     context.Context
	fetcher source.Fetcher
	store   *state.Store
	logger  *logging.Logger
	wg      sync.WaitGroup
	seq     uint64
}

func (w *watcher) reload() {
	w.seq++
	seq := w.seq
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		res, err := w.fetcher.Fetch(w.ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			w.store.Update(seq, nil, err)
			w.logger.Warning().
				Err(err).
				Uint64("seq", seq).
				Log("reload failed")
			return
		}
		if !w.store.Update(seq, &res, nil) {
			w.logger.Debug().
				Uint64("seq", seq).
				Log("dropped stale reload result")
			return
		}
		w.logger.Info().
			Uint64("seq", seq).
			Int64("bytes", res.Size).
			Bool("truncated", res.Truncated).
			Log("reloaded")
	}()
}

// runHeadless polls on a go-eventloop loop until ctx is done. SIGUSR1 and
// SIGUSR2 hide and show the document where supported.
func runHeadless(ctx context.Context, deps headlessDeps) error {
	host, err := loophost.New(deps.Logger)
	if err != nil {
		return err
	}

	w := &watcher{
		ctx:     ctx,
		fetcher: deps.Fetcher,
		store:   deps.Store,
		logger:  deps.Logger,
	}
	doc := lifecycle.NewDocument(false)
	poller := lifecycle.NewPoller(host, doc,
		lifecycle.WithLogger(deps.Logger),
		lifecycle.WithName("headless"),
	)
	poller.Configure(deps.Interval, w.reload)

	if err := host.Do(func() {
		poller.OnMount()
		w.reload()
	}); err != nil {
		_ = host.Close()
		return err
	}

	signals := deps.Signals
	if signals == nil {
		signals = notifyVisibility
	}
	stopSignals := signals(ctx, func(hidden bool) {
		_ = host.Do(func() {
			deps.Logger.Info().
				Bool("hidden", hidden).
				Log("visibility changed")
			doc.SetHidden(hidden)
		})
	})
	defer stopSignals()

	go func() {
		<-ctx.Done()
		_ = host.Do(poller.OnUnmount)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := host.Shutdown(shutdownCtx); err != nil {
			deps.Logger.Warning().
				Err(err).
				Log("event loop shutdown")
		}
	}()

	runErr := host.Run(context.Background())
	w.wg.Wait()
	if runErr != nil {
		return fmt.Errorf("event loop: %w", runErr)
	}
	deps.Logger.Info().
		Uint64("reloads", poller.Reloads()).
		Log("framewatch stopped")
	return nil
}
