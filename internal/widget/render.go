package widget

import "charm.land/lipgloss/v2"

// Styles are the lipgloss styles widgets render with.
type Styles struct {
	Title              lipgloss.Style
	TitleFocused       lipgloss.Style
	Button             lipgloss.Style
	ButtonFocused      lipgloss.Style
	Row                lipgloss.Style
	RowSelected        lipgloss.Style
	RowSelectedBlurred lipgloss.Style
	Divider            lipgloss.Style
	Muted              lipgloss.Style
}

// DefaultStyles returns uncoloured styles that still show focus.
func DefaultStyles() Styles {
	return Styles{
		Title:              lipgloss.NewStyle().Bold(true),
		TitleFocused:       lipgloss.NewStyle().Bold(true).Underline(true),
		Button:             lipgloss.NewStyle(),
		ButtonFocused:      lipgloss.NewStyle().Reverse(true),
		Row:                lipgloss.NewStyle(),
		RowSelected:        lipgloss.NewStyle().Reverse(true),
		RowSelectedBlurred: lipgloss.NewStyle().Underline(true),
		Divider:            lipgloss.NewStyle().Faint(true),
		Muted:              lipgloss.NewStyle().Faint(true),
	}
}

// Render draws every node at its bounds.
func (t *Tree) Render(st Styles) string {
	if t.root == nil {
		return ""
	}
	area := t.root.Bounds()
	if area.Empty() {
		return ""
	}
	var layers []*lipgloss.Layer
	t.walk(func(n Node) {
		s := n.render(st)
		if s == "" {
			return
		}
		b := n.Bounds()
		layers = append(layers, lipgloss.NewLayer(s).X(b.X-area.X).Y(b.Y-area.Y))
	})
	// A single layer draws at the canvas origin; the compositor places
	// each one at its offset.
	canvas := lipgloss.NewCanvas(area.W, area.H)
	canvas.Compose(lipgloss.NewCompositor(layers...))
	return canvas.Render()
}
