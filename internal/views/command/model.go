package command

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/textinput"
	"charm.land/bubbles/v2/viewport"
	"charm.land/lipgloss/v2"

	"github.com/olivoil/gesturenav/internal/ui"
)

// maxMenu is the number of completion rows shown at once.
const maxMenu = 10

// ExecuteMsg is sent when a parsed command should be run by the parent.
type ExecuteMsg struct {
	Route Route
}

type menuStyles struct {
	panel    lipgloss.Style
	selected lipgloss.Style
	value    lipgloss.Style
	desc     lipgloss.Style
	err      lipgloss.Style
}

// Model is the command line, its completion menu and a result viewport.
type Model struct {
	input     textinput.Model
	result    viewport.Model
	completer *Completer
	styles    menuStyles
	focused   bool
	width     int
	height    int
	hasResult bool

	candidates []Candidate
	selected   int // index into candidates, -1 = none
}

// New creates a new command model.
func New(th ui.Theme) Model {
	ti := textinput.New()
	ti.Prompt = ": "
	ti.Placeholder = "gesture, nav, reset, touch, strategy..."
	ti.CharLimit = 128

	vp := viewport.New(viewport.WithWidth(80), viewport.WithHeight(10))

	return Model{
		input:     ti,
		result:    vp,
		completer: NewCompleter(),
		selected:  -1,
		styles: menuStyles{
			panel: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(th.Border)).
				PaddingLeft(1).
				PaddingRight(1),
			selected: lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color(th.SelectionForeground)).
				Background(lipgloss.Color(th.SelectionBackground)),
			value: lipgloss.NewStyle().Foreground(lipgloss.Color(th.Foreground)),
			desc:  lipgloss.NewStyle().Foreground(lipgloss.Color(th.Dim)),
			err:   lipgloss.NewStyle().Foreground(lipgloss.Color(th.Red)),
		},
	}
}

// SetSize updates dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.input.SetWidth(w - 4)
	m.result.SetWidth(w - 2)
	m.result.SetHeight(h - 3)
}

// SetResult sets the result viewport content.
func (m *Model) SetResult(content string) {
	m.hasResult = true
	m.candidates = nil
	m.result.SetContent(content)
	m.result.GotoTop()
}

// SetError sets an error in the result viewport.
func (m *Model) SetError(err error) {
	m.SetResult(m.styles.err.Render("Error: " + err.Error()))
}

// ClearResult clears the result viewport.
func (m *Model) ClearResult() {
	m.hasResult = false
	m.candidates = nil
	m.selected = -1
	m.result.SetContent("")
}

// Focus activates the command line input.
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	m.hasResult = false
	m.updateCandidates()
	return m.input.Focus()
}

// Blur deactivates the command line input.
func (m *Model) Blur() {
	m.focused = false
	m.candidates = nil
	m.selected = -1
	m.input.Blur()
}

// Focused returns whether the command line has focus.
func (m *Model) Focused() bool {
	return m.focused
}

// Value returns the current input.
func (m *Model) Value() string {
	return m.input.Value()
}

// Candidates returns the current completion menu.
func (m *Model) Candidates() []Candidate {
	return m.candidates
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	key := keyMsg.String()

	if len(m.candidates) > 0 {
		switch key {
		case "down":
			m.selected = (m.selected + 1) % len(m.candidates)
			return m, nil
		case "up":
			m.selected--
			if m.selected < 0 {
				m.selected = len(m.candidates) - 1
			}
			return m, nil
		case "tab":
			m.acceptCandidate(max(m.selected, 0))
			m.updateCandidates()
			return m, nil
		}
	}

	switch key {
	case "enter":
		if m.selected >= 0 && m.selected < len(m.candidates) {
			m.acceptCandidate(m.selected)
			m.updateCandidates()
			return m, nil
		}
		input := strings.TrimSpace(m.input.Value())
		if input == "" {
			return m, nil
		}
		m.input.SetValue("")
		m.candidates = nil
		m.selected = -1

		route, err := ParseRoute(input)
		if err != nil {
			m.SetError(err)
			return m, nil
		}
		return m, func() tea.Msg { return ExecuteMsg{Route: route} }

	case "esc":
		m.Blur()
		m.ClearResult()
		return m, nil
	}

	if m.hasResult {
		m.ClearResult()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.updateCandidates()
	return m, cmd
}

func (m *Model) acceptCandidate(idx int) {
	if idx < 0 || idx >= len(m.candidates) {
		return
	}
	m.input.SetValue(m.candidates[idx].Line)
	m.input.CursorEnd()
	m.selected = -1
}

func (m *Model) updateCandidates() {
	if m.hasResult {
		m.candidates = nil
		return
	}
	m.candidates = m.completer.Complete(m.input.Value())
	m.selected = -1
}

// MenuHeight returns the lines the completion menu occupies, border included.
func (m Model) MenuHeight() int {
	if !m.focused || m.hasResult || len(m.candidates) == 0 {
		return 0
	}
	return min(len(m.candidates), maxMenu) + 2
}

// ViewInput renders the completion menu above the input line.
func (m Model) ViewInput() string {
	if !m.focused {
		return ""
	}
	var b strings.Builder
	if len(m.candidates) > 0 && !m.hasResult {
		b.WriteString(m.renderCandidates())
		b.WriteByte('\n')
	}
	b.WriteString(m.input.View())
	return b.String()
}

// ViewResult renders the result viewport.
func (m Model) ViewResult() string {
	if !m.hasResult {
		return ""
	}
	return m.result.View()
}

func (m *Model) renderCandidates() string {
	maxValue := 0
	for _, c := range m.candidates {
		maxValue = max(maxValue, len(c.Value))
	}

	shown := m.candidates
	if len(shown) > maxMenu {
		shown = shown[:maxMenu]
	}

	var rows strings.Builder
	for i, c := range shown {
		if i > 0 {
			rows.WriteByte('\n')
		}
		value := fmt.Sprintf("%-*s", maxValue, c.Value)
		desc := ""
		if c.Desc != "" {
			desc = "  " + c.Desc
		}
		if i == m.selected {
			rows.WriteString(m.styles.selected.Render(value + desc))
		} else {
			rows.WriteString(m.styles.value.Render(value))
			rows.WriteString(m.styles.desc.Render(desc))
		}
	}

	return m.styles.panel.Width(max(m.width-4, 40)).Render(rows.String())
}
