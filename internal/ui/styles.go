package ui

import (
	"fmt"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/olivoil/gesturenav/internal/event"
	"github.com/olivoil/gesturenav/internal/widget"
)

// Styles are the app-level styles derived from a Theme.
type Styles struct {
	Header  lipgloss.Style
	Active  lipgloss.Style
	Paused  lipgloss.Style
	Dim     lipgloss.Style
	Accent  lipgloss.Style
	Error   lipgloss.Style
	Warn    lipgloss.Style
	Sidebar lipgloss.Style
	Widgets widget.Styles
}

// NewStyles builds styles from a palette.
func NewStyles(t Theme) Styles {
	accent := lipgloss.Color(t.Accent)
	return Styles{
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.BrightWhite)),
		Active: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Green)),
		Paused: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Red)),
		Dim:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Dim)),
		Accent: lipgloss.NewStyle().Foreground(accent),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Red)),
		Warn:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Yellow)),
		Sidebar: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color(t.Border)).
			PaddingLeft(1),
		Widgets: WidgetStyles(t),
	}
}

// WidgetStyles colours the focus widgets with the palette.
func WidgetStyles(t Theme) widget.Styles {
	st := widget.DefaultStyles()
	sel := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.SelectionForeground)).
		Background(lipgloss.Color(t.SelectionBackground))
	st.TitleFocused = st.TitleFocused.Foreground(lipgloss.Color(t.Accent))
	st.ButtonFocused = sel.Bold(true)
	st.RowSelected = sel
	st.RowSelectedBlurred = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent))
	st.Divider = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Border))
	st.Muted = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Dim))
	return st
}

// EventIcon returns a short marker for an event variant.
func EventIcon(e event.Event) string {
	switch e.(type) {
	case event.Gesture:
		return "✋"
	case event.Writing, event.WritingSegment:
		return "✍"
	case event.Activation:
		return "⏻"
	case event.Heartbeat:
		return "♥"
	case event.MouseEvent:
		return "🖱"
	}
	return "·"
}

// Describe renders an event as one line of text.
func Describe(e event.Event) string {
	switch e := e.(type) {
	case event.Gesture:
		return e.Name
	case event.Writing:
		if e.IsFinal {
			return fmt.Sprintf("%s: %q (final)", e.Vocabulary, e.Hypothesis)
		}
		return fmt.Sprintf("%s: %q", e.Vocabulary, e.Hypothesis)
	case event.WritingSegment:
		if e.Started {
			return "segment started"
		}
		return "segment ended"
	case event.Activation:
		if e.Active {
			return "streaming resumed"
		}
		return "streaming paused"
	case event.Heartbeat:
		return fmt.Sprintf("%s active=%t last=%s", e.Sensor, e.Active, FormatDuration(int(e.LastSeconds)))
	case event.MouseEvent:
		if e.Kind == event.MouseMove {
			return fmt.Sprintf("move %.1f,%.1f", e.DX, e.DY)
		}
		return "toggle"
	}
	return string(e.Type())
}

// FormatDuration formats seconds into a human-readable duration.
func FormatDuration(secs int) string {
	if secs <= 0 {
		return "0s"
	}
	d := time.Duration(secs) * time.Second
	if d < time.Minute {
		return fmt.Sprintf("%ds", secs)
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh%dm", h, m)
}

// FormatClock formats t as a short wall-clock time.
func FormatClock(t time.Time) string {
	return t.Local().Format("15:04:05")
}
