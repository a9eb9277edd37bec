package ui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/uetail/internal/engine"
	"github.com/five82/uetail/internal/prefs"
	"github.com/five82/uetail/internal/state"
	"github.com/five82/uetail/internal/target"
	"github.com/five82/uetail/internal/view"
)

// discoveredMessage is shown the first time a running editor is found.
const discoveredMessage = "Running editor detected automatically"

// clipboardLimit caps the copied text; larger selections are not sent.
const clipboardLimit = 100 * 1024

// Discovery pauses and resumes background target discovery.
type Discovery interface {
	SetActive(active bool)
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Engine    *engine.State
	Discovery Discovery
	Prefs     prefs.Prefs
	PrefsPath string
	Tick      time.Duration
	Logger    *slog.Logger

	// Clipboard receives OSC 52 sequences. Defaults to stderr.
	Clipboard io.Writer
}

type mode int

const (
	modeSelect mode = iota
	modeView
)

// Model is the Bubble Tea model for the application.
type Model struct {
	ctx       context.Context
	store     *state.Store
	engine    *engine.State
	discovery Discovery
	prefs     prefs.Prefs
	prefsPath string
	tick      time.Duration
	logger    *slog.Logger
	clipboard io.Writer

	theme   Theme
	keys    keyMap
	help    help.Model
	gauge   progress.Model
	spinner spinner.Model

	width  int
	height int
	ready  bool

	mode     mode
	showHelp bool

	// Selection mode
	targets    []target.Target
	selected   int
	generation uint64
	seenEditor bool
	status     string

	// View mode
	waiting bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	tick := opts.Tick
	if tick <= 0 {
		tick = engine.DefaultTickInterval
	}

	eng := opts.Engine
	if eng == nil {
		eng = engine.New(engine.Options{})
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	clip := opts.Clipboard
	if clip == nil {
		clip = os.Stderr
	}

	theme := GetTheme(opts.Prefs.Theme)

	m := Model{
		ctx:       ctx,
		store:     opts.Store,
		engine:    eng,
		discovery: opts.Discovery,
		prefs:     opts.Prefs,
		prefsPath: opts.PrefsPath,
		tick:      tick,
		logger:    logger,
		clipboard: clip,
		theme:     theme,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		mode:      modeSelect,
	}
	m.applyTheme()
	m.applySnapshot()
	return m
}

// applyTheme rebuilds the widgets that carry theme colors.
func (m *Model) applyTheme() {
	m.prefs.Theme = m.theme.Name
	m.gauge = progress.New(
		progress.WithSolidFill(m.theme.Success),
		progress.WithoutPercentage(),
	)
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
	m.help.Styles.ShortKey = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Warning))
	m.help.Styles.ShortDesc = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Muted))
	m.help.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Faint))
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tickCmd(m.tick),
		m.spinner.Tick,
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case tickMsg:
		return m.handleTick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case copiedMsg:
		if msg.err != nil {
			m.engine.Status = "Copy failed: " + msg.err.Error()
		} else {
			m.engine.Status = fmt.Sprintf("Copied %d lines to clipboard", msg.lines)
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

	if m.mode == modeSelect {
		return m.renderSelect()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		switch msg.String() {
		case "h", "esc":
			m.showHelp = false
		case "q", "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.applyTheme()
		m.savePrefs()
		return m, nil
	}

	if m.mode == modeSelect {
		return m.handleSelectKey(msg)
	}
	return m.handleViewKey(msg)
}

// handleViewKey processes keyboard input while a log is shown.
func (m Model) handleViewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.leaveView()
	case key.Matches(msg, m.keys.Clear):
		m.engine.Clear()
	case key.Matches(msg, m.keys.ClearFilter):
		m.engine.SetFilter("")
	case key.Matches(msg, m.keys.ToggleTimestamp):
		m.prefs.ShowTimestamp = !m.prefs.ShowTimestamp
		m.savePrefs()
	case key.Matches(msg, m.keys.ToggleWrap):
		m.prefs.WrapLines = !m.prefs.WrapLines
		m.savePrefs()
	case key.Matches(msg, m.keys.Up):
		m.engine.Scroll(1)
	case key.Matches(msg, m.keys.Down):
		m.engine.Scroll(-1)
	case key.Matches(msg, m.keys.PageUp):
		m.engine.Scroll(pageStep)
	case key.Matches(msg, m.keys.PageDown):
		m.engine.Scroll(-pageStep)
	case key.Matches(msg, m.keys.Top):
		m.engine.ScrollTop()
	case key.Matches(msg, m.keys.Bottom):
		m.engine.ScrollBottom()
	case key.Matches(msg, m.keys.Copy):
		return m, m.copyVisible()
	}
	return m, nil
}

// handleMouse applies clicks and wheel events.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if m.mode == modeView {
			m.engine.Scroll(wheelStep)
		} else {
			m.moveSelection(-1)
		}
	case tea.MouseButtonWheelDown:
		if m.mode == modeView {
			m.engine.Scroll(-wheelStep)
		} else {
			m.moveSelection(1)
		}
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress || m.mode != modeView {
			return m, nil
		}
		vp := bodyViewport(m.width, m.height)
		m.engine.Click(msg.Y, msg.X, vp, m.prefs.ShowTimestamp, m.bodySplitter(vp))
	}
	return m, nil
}

// enterView starts tailing the highlighted target. A target whose log path
// cannot be derived leaves the UI in selection mode with the error shown.
func (m *Model) enterView() {
	if len(m.targets) == 0 {
		return
	}
	t := m.targets[m.selected]
	if err := m.engine.Select(m.ctx, t); err != nil {
		m.status = m.engine.Status
		return
	}
	m.mode = modeView
	m.status = ""
	m.waiting = false
	if m.discovery != nil {
		m.discovery.SetActive(false)
	}
}

// leaveView stops the session and returns to the target list.
func (m *Model) leaveView() {
	m.engine.Deselect()
	m.mode = modeSelect
	m.waiting = false
	if m.discovery != nil {
		m.discovery.SetActive(true)
	}
	m.applySnapshot()
}

// handleTick drains pending tail events or picks up discovery results.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.mode == modeView {
		m.engine.Drain()
		m.waiting = m.engine.Lines.Len() == 0 && !m.logExists()
	} else {
		m.applySnapshot()
	}
	return m, tickCmd(m.tick)
}

// logExists reports whether the active log file is present on disk.
func (m Model) logExists() bool {
	_, path, ok := m.engine.Active()
	if !ok {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// applySnapshot copies a newer target list from the store, keeping the
// selection in bounds.
func (m *Model) applySnapshot() {
	if m.store == nil {
		return
	}
	snap := m.store.Snapshot()
	if snap.Generation == m.generation {
		return
	}
	m.generation = snap.Generation
	m.targets = snap.Targets
	m.clampSelection()

	if !m.seenEditor && snap.Discovered() > 0 {
		m.seenEditor = true
		m.status = discoveredMessage
	}
	if snap.IsStale() && snap.LastError != nil {
		m.status = "Discovery failing: " + snap.LastError.Error()
	}
}

func (m *Model) clampSelection() {
	if m.selected >= len(m.targets) {
		m.selected = len(m.targets) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.logger.Warn("save preferences failed", "path", m.prefsPath, "error", err)
	}
}

// renderMain renders the log view: header, bordered body, footer.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderLogs())
	b.WriteString("\n")
	b.WriteString(m.renderFooter(m.engine.Status, m.keys.ShortHelp()))
	return b.String()
}

// renderFooter renders the status line with a short key hint on the right.
func (m Model) renderFooter(status string, bindings []key.Binding) string {
	styles := m.theme.Styles()
	hint := m.help.ShortHelpView(bindings)
	hintWidth := lipgloss.Width(hint)

	statusWidth := m.width - hintWidth - 1
	if statusWidth < 10 {
		hint = ""
		statusWidth = m.width
	}
	left := styles.Status.Width(statusWidth).MaxWidth(statusWidth).Render(truncate(status, statusWidth))
	if hint == "" {
		return left
	}
	return left + " " + hint
}

// Messages

type tickMsg time.Time

type copiedMsg struct {
	lines int
	err   error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// bodySplitter returns the row layout of the log body in vp.
func (m Model) bodySplitter(vp view.Viewport) view.SplitFunc {
	return rowSplitter(vp.ContentWidth(), m.prefs.ShowTimestamp, m.prefs.WrapLines)
}

// copyVisible sends the raw text of the lines shown in the body to the
// terminal clipboard.
func (m Model) copyVisible() tea.Cmd {
	vp := bodyViewport(m.width, m.height)
	lines := m.engine.Filtered()
	var raw []string
	last := -1
	for _, r := range view.Layout(lines, vp.ContentHeight(), m.engine.Cursor.ScrollFromBottom, m.bodySplitter(vp)) {
		if r.Line != last {
			raw = append(raw, lines[r.Line].Raw)
			last = r.Line
		}
	}
	w := m.clipboard
	return func() tea.Msg {
		seq := osc52.New(strings.Join(raw, "\n")).Limit(clipboardLimit)

		term := strings.ToLower(os.Getenv("TERM"))
		if os.Getenv("TMUX") != "" || strings.HasPrefix(term, "tmux") {
			seq = seq.Tmux()
		} else if strings.HasPrefix(term, "screen") {
			seq = seq.Screen()
		}

		_, err := seq.WriteTo(w)
		return copiedMsg{lines: len(raw), err: err}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(m.ctx),
	)
	_, err := p.Run()
	return err
}
