package app

import (
	"charm.land/bubbles/v2/key"

	"github.com/olivoil/gesturenav/internal/event"
)

// KeyMap defines all keybindings for the application.
type KeyMap struct {
	Right   key.Binding
	Left    key.Binding
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Back    key.Binding
	Reset   key.Binding
	Touch   key.Binding
	Pane    key.Binding
	Command key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "swipe right"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "swipe left"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "swipe up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "swipe down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", "space"),
			key.WithHelp("enter", "rotate RL"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "rotate LR"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset orientation"),
		),
		Touch: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "simulate touch"),
		),
		Pane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "focus log pane"),
		),
		Command: key.NewBinding(
			key.WithKeys("/", ":"),
			key.WithHelp("/", "command"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// gestureKeys maps navigation keys onto the gestures they emulate.
func (k KeyMap) gestureKeys() []struct {
	binding key.Binding
	gesture string
} {
	return []struct {
		binding key.Binding
		gesture string
	}{
		{k.Right, event.GestureSwipeR},
		{k.Left, event.GestureSwipeL},
		{k.Up, event.GestureSwipeUp},
		{k.Down, event.GestureSwipeDown},
		{k.Select, event.GestureRotateRL},
		{k.Back, event.GestureRotateLR},
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Right, k.Select, k.Back, k.Touch, k.Command, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Right, k.Left, k.Up, k.Down, k.Select, k.Back},
		{k.Reset, k.Touch, k.Pane},
		{k.Command, k.Help, k.Quit},
	}
}
