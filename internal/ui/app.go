package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/framewatch/internal/clipboard"
	"github.com/five82/framewatch/internal/lifecycle"
	"github.com/five82/framewatch/internal/logging"
	"github.com/five82/framewatch/internal/logtail"
	"github.com/five82/framewatch/internal/prefs"
	"github.com/five82/framewatch/internal/source"
	"github.com/five82/framewatch/internal/state"
)

// Options configures the UI.
type Options struct {
	Context     context.Context
	Fetcher     source.Fetcher
	Store       *state.Store
	Clipboard   clipboard.Sink
	Logger      *logging.Logger
	Location    string
	Interval    time.Duration
	RevertDelay time.Duration
	CopyText    string
	ThemeName   string
	PrefsPath   string
	LogPath     string

	// after replaces time.AfterFunc in tests.
	after afterFunc
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	host      *host
	store     *state.Store
	logger    *logging.Logger
	location  string
	prefsPath string
	logPath   string

	// UI state
	theme    Theme
	keys     keyMap
	help     help.Model
	width    int
	height   int
	ready    bool
	showHelp bool
	showLogs bool

	// Data state
	snapshot state.Snapshot
	copyErr  error
	logLines []string
	logErr   error
	viewport viewport.Model
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}

	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}

	h := &host{
		ctx:         ctx,
		fetcher:     opts.Fetcher,
		sink:        opts.Clipboard,
		logger:      opts.Logger,
		timers:      newTeaTimers(opts.after),
		doc:         lifecycle.NewDocument(false),
		copyText:    opts.CopyText,
		interval:    opts.Interval,
		revertDelay: opts.RevertDelay,
	}

	return Model{
		host:      h,
		store:     store,
		logger:    opts.Logger,
		location:  opts.Location,
		prefsPath: opts.PrefsPath,
		logPath:   opts.LogPath,
		theme:     GetTheme(themeName),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		viewport:  viewport.New(0, 0),
	}
}

// Init implements tea.Model. It mounts the watch panel and loads once.
func (m Model) Init() tea.Cmd {
	m.host.mount()
	m.host.reload()
	return tea.Batch(
		m.host.timers.waitTimerCmd(),
		m.host.drain(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		var next tea.Model
		next, cmd = m.handleKey(msg)
		m = next.(Model)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeViewport()

	case tea.FocusMsg:
		m.host.doc.SetHidden(false)

	case tea.BlurMsg:
		m.host.doc.SetHidden(true)

	case timerFiredMsg:
		m.host.timers.dispatch(msg.handle)
		cmd = m.host.timers.waitTimerCmd()

	case fetchedMsg:
		m.applyFetch(msg)

	case logLinesMsg:
		m.logLines = msg.lines
		m.logErr = msg.err
		if m.showLogs {
			m.viewport.SetContent(m.bodyContent())
			m.viewport.GotoBottom()
		}
	}

	return m, tea.Batch(cmd, m.host.drain())
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle help overlay
	if m.showHelp {
		if key.Matches(msg, m.keys.Quit) {
			return m.quit()
		}
		// Any other key closes help and brings the panel back
		m.showHelp = false
		m.host.mount()
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		m.host.unmount()
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		m.copyErr = m.host.copyPayload()
		if m.copyErr != nil {
			m.logger.Warning().
				Err(m.copyErr).
				Log("copy failed")
		}
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		m.host.reload()
		return m, nil

	case key.Matches(msg, m.keys.Slower):
		m.setInterval(stepInterval(m.host.interval, 1))
		return m, nil

	case key.Matches(msg, m.keys.Faster):
		m.setInterval(stepInterval(m.host.interval, -1))
		return m, nil

	case key.Matches(msg, m.keys.ToggleVisible):
		m.host.doc.SetHidden(!m.host.doc.Hidden())
		return m, nil

	case key.Matches(msg, m.keys.ToggleLogs):
		m.showLogs = !m.showLogs
		m.viewport.SetContent(m.bodyContent())
		if m.showLogs {
			return m, loadLogsCmd(m.logPath)
		}
		m.viewport.GotoTop()
		return m, nil
	}

	m.handleScrollKey(msg)
	return m, nil
}

func (m *Model) handleScrollKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.viewport.ScrollUp(1)
	case key.Matches(msg, m.keys.Down):
		m.viewport.ScrollDown(1)
	case key.Matches(msg, m.keys.HalfPageUp):
		m.viewport.HalfPageUp()
	case key.Matches(msg, m.keys.HalfPageDown):
		m.viewport.HalfPageDown()
	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
	}
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.host.shutdown()
	return m, tea.Quit
}

func (m *Model) setInterval(d time.Duration) {
	if d == m.host.interval {
		return
	}
	m.host.setInterval(d)
	m.logger.Info().
		Dur("interval", d).
		Log("poll interval changed")
	m.savePrefs()
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, Interval: m.host.interval, IntervalSet: true}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warning().
			Err(err).
			Str("path", m.prefsPath).
			Log("save preferences failed")
	}
}

func (m *Model) applyFetch(msg fetchedMsg) {
	var res *source.Resource
	if msg.err == nil {
		res = &msg.res
	}
	if !m.store.Update(msg.seq, res, msg.err) {
		m.logger.Debug().
			Uint64("seq", msg.seq).
			Log("dropped stale reload result")
		return
	}
	if msg.err != nil {
		m.logger.Warning().
			Err(msg.err).
			Uint64("seq", msg.seq).
			Log("reload failed")
	} else {
		m.logger.Debug().
			Uint64("seq", msg.seq).
			Int64("bytes", msg.res.Size).
			Log("reloaded")
	}
	m.snapshot = m.store.Snapshot()
	if !m.showLogs {
		m.viewport.SetContent(m.bodyContent())
	}
}

func (m *Model) resizeViewport() {
	// header, footer and body border
	m.viewport.Width = max(m.width-4, 0)
	m.viewport.Height = max(m.height-5, 0)
	m.help.Width = m.width
	m.viewport.SetContent(m.bodyContent())
}

func (m Model) bodyContent() string {
	if m.showLogs {
		return m.logContent()
	}
	if !m.snapshot.HasResource {
		return ""
	}
	body := m.snapshot.Resource.Body
	if m.snapshot.Resource.Truncated {
		body += "\n" + m.theme.Styles().WarningText.Render("(truncated)")
	}
	return body
}

func (m Model) logContent() string {
	styles := m.theme.Styles()
	if m.logErr != nil {
		return styles.DangerText.Render(m.logErr.Error())
	}
	if len(m.logLines) == 0 {
		return styles.MutedText.Render("No log entries yet.")
	}
	return strings.Join(m.logLines, "\n")
}

// renderMain renders the header, the resource body and the footer.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(m.renderBody())
	b.WriteString("\n")

	b.WriteString(m.renderFooter())

	return b.String()
}

// intervalSteps are the periods offered by the +/- keys. Zero turns polling
// off.
var intervalSteps = []time.Duration{
	0,
	time.Second,
	2 * time.Second,
	5 * time.Second,
	10 * time.Second,
	30 * time.Second,
	time.Minute,
	5 * time.Minute,
}

// stepInterval moves cur one step up (dir > 0) or down the ladder. Values
// between steps snap to the neighbouring step in the requested direction.
func stepInterval(cur time.Duration, dir int) time.Duration {
	if dir > 0 {
		for _, s := range intervalSteps {
			if s > cur {
				return s
			}
		}
		return intervalSteps[len(intervalSteps)-1]
	}
	for i := len(intervalSteps) - 1; i >= 0; i-- {
		if intervalSteps[i] < cur {
			return intervalSteps[i]
		}
	}
	return 0
}

func formatInterval(d time.Duration) string {
	if d <= 0 {
		return "off"
	}
	return d.String()
}

func formatAge(now, then time.Time) string {
	if then.IsZero() {
		return "never"
	}
	age := now.Sub(then).Round(time.Second)
	if age < time.Second {
		return "just now"
	}
	return fmt.Sprintf("%s ago", age)
}

const logTailLines = 500

type logLinesMsg struct {
	lines []string
	err   error
}

func loadLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return logLinesMsg{}
		}
		lines, err := logtail.Read(path, logTailLines)
		return logLinesMsg{lines: logtail.FormatLines(lines), err: err}
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	if opts.Context == nil {
		opts.Context = ctx
	}
	m := New(opts)
	defer m.host.shutdown()

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		// cancelled from outside, not a UI failure
		return nil
	}
	return err
}
