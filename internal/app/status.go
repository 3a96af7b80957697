package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/olivoil/gesturenav/internal/event"
	"github.com/olivoil/gesturenav/internal/focus"
	"github.com/olivoil/gesturenav/internal/ui"
)

// publisherStatus is what the header shows about the publisher.
type publisherStatus struct {
	heartbeat   *event.Heartbeat
	heartbeatAt time.Time
	// streaming is the last reported state; nil until the publisher is heard.
	streaming *bool
	writing   *event.Writing
	segment   bool
	gesture   string
	outcome   focus.Outcome
}

// apply records e. It reports whether e belongs in the log pane.
func (s *publisherStatus) apply(e event.Event, at time.Time) bool {
	switch e := e.(type) {
	case event.Heartbeat:
		active := e.Active
		s.heartbeat, s.heartbeatAt, s.streaming = &e, at, &active
		return false
	case event.Activation:
		active := e.Active
		s.streaming = &active
	case event.Writing:
		s.writing = &e
	case event.WritingSegment:
		s.segment = e.Started
		if e.Started {
			s.writing = nil
		}
	case event.MouseEvent:
		// movement is too chatty for the pane
		return e.Kind == event.MouseToggle
	case event.Gesture:
		return false
	}
	return true
}

func (s *publisherStatus) render(st ui.Styles, now time.Time) string {
	var parts []string

	switch {
	case s.streaming == nil:
		parts = append(parts, st.Dim.Render("○ no publisher"))
	case s.isActive():
		parts = append(parts, st.Active.Render("● streaming"))
	default:
		parts = append(parts, st.Paused.Render("○ paused"))
	}
	if hb := s.heartbeat; hb != nil {
		sensor := hb.Sensor
		if sensor == "" {
			sensor = "no sensor"
		}
		seen := ui.FormatDuration(int(now.Sub(s.heartbeatAt).Seconds()))
		parts = append(parts, st.Dim.Render(fmt.Sprintf("%s  last %s  seen %s ago",
			sensor, ui.FormatDuration(int(hb.LastSeconds)), seen)))
	}
	if s.segment {
		parts = append(parts, st.Accent.Render("✍ writing"))
	}
	if w := s.writing; w != nil {
		parts = append(parts, ui.Describe(*w))
	}
	if s.gesture != "" {
		parts = append(parts, st.Accent.Render(s.gesture)+st.Dim.Render(" → "+s.outcome.String()))
	}
	return strings.Join(parts, st.Dim.Render("  │  "))
}

func (s *publisherStatus) isActive() bool {
	return s.streaming != nil && *s.streaming
}
