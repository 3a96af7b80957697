package logging

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/olivoil/gesturenav/internal/event"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		got := ParseLevel(tt.input)
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestPublisherUsesLogLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	Publisher(logger, event.Log{Who: "sensor", Level: event.LevelInfo, Message: "quiet", Timestamp: 1})
	Publisher(logger, event.Log{Who: "sensor", Level: event.LevelError, Message: "battery empty", Timestamp: 1})

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Errorf("info line should be filtered, got: %s", out)
	}
	if !strings.Contains(out, "level=ERROR") || !strings.Contains(out, `msg="battery empty"`) {
		t.Errorf("expected error line, got: %s", out)
	}
	if !strings.Contains(out, "who=sensor") {
		t.Errorf("expected who attr, got: %s", out)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	want := filepath.Join("/tmp/state", "gesturenav", "gesturenav.log")
	if got := DefaultPath("gesturenav"); got != want {
		t.Errorf("DefaultPath = %q, want %q", got, want)
	}
}

func TestInitSetsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	Init(&buf, slog.LevelDebug)
	slog.Debug("hello", "k", "v")

	if !strings.Contains(buf.String(), "k=v") {
		t.Errorf("expected default logger to write to buffer, got: %s", buf.String())
	}
}
