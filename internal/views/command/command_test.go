package command

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olivoil/gesturenav/internal/focus"
	"github.com/olivoil/gesturenav/internal/ui"
)

func TestParseRoute(t *testing.T) {
	tests := []struct {
		in   string
		want Route
	}{
		{"gesture Swipe R", Route{Kind: RouteGesture, Gesture: "Swipe R"}},
		{"g  Circle   L", Route{Kind: RouteGesture, Gesture: "Circle L"}},
		{"nav select", Route{Kind: RouteNav, Command: focus.CmdSelect}},
		{"reset", Route{Kind: RouteReset}},
		{"touch", Route{Kind: RouteTouch}},
		{"touch 3 4", Route{Kind: RouteTouch, X: 3, Y: 4, HasPoint: true}},
		{"strategy plain", Route{Kind: RouteStrategy, Strategy: "plain"}},
		{"log", Route{Kind: RouteLog}},
		{"?", Route{Kind: RouteHelp}},
		{"q", Route{Kind: RouteQuit}},
	}
	for _, tt := range tests {
		got, err := ParseRoute(tt.in)
		require.NoError(t, err, tt.in)
		tt.want.Raw = got.Raw
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseRouteErrors(t *testing.T) {
	for _, in := range []string{"", "gesture", "nav sideways", "nav", "touch 1", "touch a b", "strategy", "launch"} {
		_, err := ParseRoute(in)
		assert.Error(t, err, in)
	}
}

func TestCompleteTopLevel(t *testing.T) {
	c := NewCompleter()
	got := c.Complete("st")
	require.Len(t, got, 1)
	assert.Equal(t, Candidate{Value: "strategy", Desc: "Switch selection strategy", Line: "strategy "}, got[0])

	assert.Len(t, c.Complete(""), len(commands))
}

func TestCompleteGestureNames(t *testing.T) {
	c := NewCompleter()
	got := c.Complete("gesture swipe ")
	var values []string
	for _, cand := range got {
		values = append(values, cand.Value)
	}
	assert.Equal(t, []string{"Swipe R", "Swipe L", "Swipe Up", "Swipe Down"}, values)
	assert.Equal(t, "gesture Swipe R", got[0].Line)

	assert.Nil(t, c.Complete("reset "))
	assert.Nil(t, c.Complete("bogus "))
}

func TestModelExecutes(t *testing.T) {
	m := New(ui.DefaultTheme())
	m.Focus()
	for _, r := range "nav back" {
		m, _ = m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	assert.Equal(t, "nav back", m.Value())

	m, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	exec, ok := cmd().(ExecuteMsg)
	require.True(t, ok)
	assert.Equal(t, focus.CmdBack, exec.Route.Command)
	assert.Empty(t, m.Value())
}

func TestModelShowsParseError(t *testing.T) {
	m := New(ui.DefaultTheme())
	m.Focus()
	for _, r := range "zap" {
		m, _ = m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	m, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Contains(t, m.ViewResult(), "unknown command")
}

func TestModelTabAcceptsCandidate(t *testing.T) {
	m := New(ui.DefaultTheme())
	m.Focus()
	for _, r := range "res" {
		m, _ = m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Equal(t, "reset ", m.Value())
}
