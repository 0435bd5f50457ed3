package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/framewatch/internal/clipboard"
	"github.com/five82/framewatch/internal/lifecycle"
	"github.com/five82/framewatch/internal/logging"
	"github.com/five82/framewatch/internal/source"
)

// fetchedMsg is the outcome of one reload.
type fetchedMsg struct {
	seq uint64
	res source.Resource
	err error
}

// panel is one mounted instance of the watch view. Every mount builds fresh
// controllers; an unmounted panel is never reused.
type panel struct {
	poller   *lifecycle.Poller
	notifier *lifecycle.Notifier
}

// host owns the controllers and everything their callbacks touch. Model is
// copied on every Update, so it holds host by pointer.
type host struct {
	ctx      context.Context
	fetcher  source.Fetcher
	sink     clipboard.Sink
	logger   *logging.Logger
	timers   *teaTimers
	doc      *lifecycle.Document
	copyText string

	interval    time.Duration
	revertDelay time.Duration

	panel   *panel
	seq     uint64
	pending []tea.Cmd
	closed  bool
}

func (h *host) mounted() bool {
	return h.panel != nil
}

// mount shows the watch panel.
func (h *host) mount() {
	if h.closed || h.panel != nil {
		return
	}
	h.panel = &panel{
		poller:   h.newPoller(),
		notifier: lifecycle.NewNotifier(h.timers, h.copyToSink, lifecycle.WithLogger(h.logger), lifecycle.WithRevertDelay(h.revertDelay)),
	}
	h.panel.poller.OnMount()
	h.panel.notifier.OnMount()
	h.logger.Debug().
		Dur("interval", h.interval).
		Bool("hidden", h.doc.Hidden()).
		Log("watch panel mounted")
}

// unmount tears the watch panel down.
func (h *host) unmount() {
	if h.panel == nil {
		return
	}
	h.panel.poller.OnUnmount()
	h.panel.notifier.OnUnmount()
	h.panel = nil
	h.logger.Debug().Log("watch panel unmounted")
}

// shutdown unmounts and stops every timer. The host is unusable afterwards.
func (h *host) shutdown() {
	h.unmount()
	h.timers.stopAll()
	h.closed = true
}

func (h *host) newPoller() *lifecycle.Poller {
	p := lifecycle.NewPoller(h.timers, h.doc, lifecycle.WithLogger(h.logger))
	p.Configure(h.interval, h.reload)
	return p
}

// setInterval changes the polling period of the live panel.
func (h *host) setInterval(d time.Duration) {
	h.interval = d
	if h.panel == nil {
		return
	}
	if h.panel.poller.Mounted() {
		h.panel.poller.Configure(d, h.reload)
		return
	}
	// a poller mounted without an interval stays inert, so replace it
	h.panel.poller.OnUnmount()
	h.panel.poller = h.newPoller()
	h.panel.poller.OnMount()
}

// reload queues a fetch. Results come back as fetchedMsg.
func (h *host) reload() {
	if h.fetcher == nil {
		return
	}
	h.seq++
	h.pending = append(h.pending, fetchCmd(h.ctx, h.fetcher, h.seq))
}

// copyPayload triggers the notifier with the configured copy text.
func (h *host) copyPayload() error {
	if h.panel == nil {
		return nil
	}
	return h.panel.notifier.Trigger(func() string { return h.copyText })
}

func (h *host) copyToSink(payload string) error {
	if h.sink == nil {
		return nil
	}
	return h.sink.WriteText(payload)
}

func (h *host) notificationVisible() bool {
	return h.panel != nil && h.panel.notifier.Visible()
}

func (h *host) polling() bool {
	return h.panel != nil && h.panel.poller.State() == lifecycle.Active
}

// drain returns the commands queued by controller callbacks.
func (h *host) drain() tea.Cmd {
	if len(h.pending) == 0 {
		return nil
	}
	cmds := h.pending
	h.pending = nil
	return tea.Batch(cmds...)
}

func fetchCmd(ctx context.Context, fetcher source.Fetcher, seq uint64) tea.Cmd {
	return func() tea.Msg {
		res, err := fetcher.Fetch(ctx)
		return fetchedMsg{seq: seq, res: res, err: err}
	}
}
