package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/ducktail/internal/engine"
	"github.com/five82/ducktail/internal/prefs"
)

const (
	noticeTTL         = 4 * time.Second
	actionClearLog    = "clear-log"
	clearLogTitle     = "Clear log file"
	clearLogMessage   = "Really clear the log file? This cannot be undone."
	filterPlaceholder = "type to filter entries"
)

// Controller is the subset of engine.Loop the UI drives.
type Controller interface {
	InputFilter(term string)
	ClearFilter()
	SetPaused(paused bool)
	ClearLog()
}

// Options configures the UI.
type Options struct {
	Controller   Controller
	Events       <-chan engine.Event
	LogPath      string
	PollInterval time.Duration
	ThemeName    string
	PrefsPath    string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctrl         Controller
	events       <-chan engine.Event
	logPath      string
	pollInterval time.Duration
	prefsPath    string
	keys         keyMap

	// UI state
	theme  Theme
	width  int
	height int
	ready  bool

	// Data state
	snapshot engine.Snapshot
	rendered uint64 // snapshot version currently in the viewport

	viewport  viewport.Model
	filter    textinput.Model
	filtering bool

	confirm  confirmDialog
	showHelp bool
	helpView string

	notice    *engine.Notice
	noticeSeq int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = themeOrder[0]
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	pollInterval := opts.PollInterval
	if pollInterval <= 0 {
		pollInterval = engine.DefaultInterval
	}

	ti := textinput.New()
	ti.Placeholder = filterPlaceholder
	ti.Prompt = ""
	ti.CharLimit = 200

	return Model{
		ctrl:         opts.Controller,
		events:       opts.Events,
		logPath:      opts.LogPath,
		pollInterval: pollInterval,
		prefsPath:    prefsPath,
		keys:         DefaultKeyMap(),
		theme:        GetTheme(themeName),
		filter:       ti,
		snapshot:     engine.Snapshot{Placeholder: engine.PlaceholderLoading},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(0, 0)
			m.ready = true
		}
		m.resize()
		m.refreshContent()
		if m.showHelp {
			m.helpView = renderMarkdown(helpMarkdown(m.keys), helpWidth(m.width))
		}
		return m, nil

	case eventMsg:
		m.snapshot = msg.Snapshot
		if m.ready && m.snapshot.Version != m.rendered {
			m.refreshContent()
		}
		var cmds []tea.Cmd
		if msg.Notice != nil {
			cmds = append(cmds, m.showNotice(*msg.Notice))
		}
		cmds = append(cmds, waitForEvent(m.events))
		return m, tea.Batch(cmds...)

	case eventsClosedMsg:
		return m, tea.Quit

	case noticeExpiredMsg:
		if int(msg) == m.noticeSeq {
			m.notice = nil
		}
		return m, nil

	case confirmResultMsg:
		if msg.Confirmed && msg.Action == actionClearLog && m.ctrl != nil {
			m.ctrl.ClearLog()
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.confirm.active {
		return m.renderModal(m.confirm.View(m.theme))
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.confirm.active {
		var cmd tea.Cmd
		m.confirm, cmd = m.confirm.Update(msg)
		return m, cmd
	}

	if m.filtering {
		return m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		m.helpView = renderMarkdown(helpMarkdown(m.keys), helpWidth(m.width))
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name})
		}
		m.refreshContent()
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		return m, m.filter.Focus()

	case key.Matches(msg, m.keys.ClearFilter), key.Matches(msg, m.keys.Escape):
		m.clearFilter()
		return m, nil

	case key.Matches(msg, m.keys.Pause):
		// The new state arrives with the next event.
		if m.ctrl != nil {
			m.ctrl.SetPaused(!m.snapshot.Paused)
		}
		return m, nil

	case key.Matches(msg, m.keys.ClearLog):
		m.confirm = newConfirmDialog(clearLogTitle, clearLogMessage, actionClearLog)
		return m, nil
	}

	return m.handleScrollKey(msg)
}

// handleFilterKey feeds keystrokes to the filter input. Every change is sent
// to the controller, which debounces it.
func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Confirm), key.Matches(msg, m.keys.Escape):
		m.filtering = false
		m.filter.Blur()
		return m, nil
	}

	before := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if value := m.filter.Value(); value != before && m.ctrl != nil {
		m.ctrl.InputFilter(value)
	}
	return m, cmd
}

func (m *Model) clearFilter() {
	m.filter.SetValue("")
	if m.ctrl != nil {
		m.ctrl.ClearFilter()
	}
}

func (m Model) handleScrollKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
	case key.Matches(msg, m.keys.Down):
		m.viewport.ScrollDown(1)
	case key.Matches(msg, m.keys.Up):
		m.viewport.ScrollUp(1)
	case key.Matches(msg, m.keys.HalfPageDown):
		m.viewport.HalfPageDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.viewport.HalfPageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.PageDown()
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.PageUp()
	}
	return m, nil
}

func (m *Model) showNotice(n engine.Notice) tea.Cmd {
	m.notice = &n
	m.noticeSeq++
	seq := m.noticeSeq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg(seq)
	})
}

// Messages

type eventMsg engine.Event

type eventsClosedMsg struct{}

type noticeExpiredMsg int

// Commands

func waitForEvent(events <-chan engine.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg(ev)
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
