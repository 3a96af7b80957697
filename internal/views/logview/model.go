package logview

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/viewport"
	"github.com/charmbracelet/x/ansi"

	"github.com/olivoil/gesturenav/internal/backend"
	"github.com/olivoil/gesturenav/internal/event"
	"github.com/olivoil/gesturenav/internal/ui"
)

// DefaultLimit is how many lines the view keeps.
const DefaultLimit = 500

// Model is the scrolling pane of publisher events and log lines.
type Model struct {
	viewport viewport.Model
	styles   ui.Styles
	lines    []string
	limit    int
	width    int
	height   int
	active   bool
	follow   bool
}

// New creates a new log view model.
func New(st ui.Styles) Model {
	vp := viewport.New(viewport.WithWidth(80), viewport.WithHeight(24))
	return Model{
		viewport: vp,
		styles:   st,
		limit:    DefaultLimit,
		follow:   true,
	}
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.SetWidth(w - 2)
	m.viewport.SetHeight(h)
	m.refresh()
}

// AddEvent appends a decoded event.
func (m *Model) AddEvent(msg backend.EventMsg) {
	line := fmt.Sprintf("%s %s %-14s %s",
		m.styles.Dim.Render(ui.FormatClock(msg.Received)),
		ui.EventIcon(msg.Event),
		m.styles.Accent.Render(string(msg.Event.Type())),
		ui.Describe(msg.Event),
	)
	m.add(line)
}

// AddLog appends a publisher log line.
func (m *Model) AddLog(msg backend.LogMsg) {
	level := strings.ToUpper(msg.Log.Level)
	switch msg.Log.Level {
	case event.LevelError:
		level = m.styles.Error.Render(level)
	case event.LevelWarn:
		level = m.styles.Warn.Render(level)
	default:
		level = m.styles.Dim.Render(level)
	}
	m.add(fmt.Sprintf("%s %-5s %s: %s",
		m.styles.Dim.Render(ui.FormatClock(msg.Log.Time())),
		level, msg.Log.Who, msg.Log.Message,
	))
}

// AddDropped appends a payload that failed to decode.
func (m *Model) AddDropped(msg backend.DroppedMsg) {
	m.add(m.styles.Error.Render(fmt.Sprintf("dropped (%s): %v", msg.Source, msg.Err)))
}

// Addf appends a free-form note.
func (m *Model) Addf(format string, args ...any) {
	m.add(m.styles.Dim.Render(fmt.Sprintf(format, args...)))
}

// Lines returns the stored lines without styling.
func (m *Model) Lines() []string {
	out := make([]string, len(m.lines))
	for i, l := range m.lines {
		out[i] = ansi.Strip(l)
	}
	return out
}

// Show opens the pane.
func (m *Model) Show() { m.active = true }

// Hide closes the pane.
func (m *Model) Hide() { m.active = false }

// Active returns whether the pane is visible.
func (m *Model) Active() bool { return m.active }

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.active {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	m.follow = m.viewport.AtBottom()
	return m, cmd
}

// View renders the pane.
func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) add(line string) {
	m.lines = append(m.lines, line)
	if over := len(m.lines) - m.limit; over > 0 {
		m.lines = append(m.lines[:0], m.lines[over:]...)
	}
	m.refresh()
}

func (m *Model) refresh() {
	width := m.width - 2
	var b strings.Builder
	for i, l := range m.lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		if width > 0 && ansi.StringWidth(l) > width {
			l = ansi.Truncate(l, width, "…")
		}
		b.WriteString(l)
	}
	if len(m.lines) == 0 {
		b.WriteString(m.styles.Dim.Render("(waiting for publisher)"))
	}
	m.viewport.SetContent(b.String())
	if m.follow {
		m.viewport.GotoBottom()
	}
}
