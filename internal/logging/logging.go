package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/olivoil/gesturenav/internal/event"
)

// Init creates a text logger writing to w at level and makes it the
// package-level default.
func Init(w io.Writer, level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// ParseLevel converts a string ("debug", "info", "warn", "error") to slog.Level.
// Unknown strings default to LevelInfo.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DefaultPath returns $XDG_STATE_HOME/<app>/<app>.log.
func DefaultPath(appName string) string {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, _ := os.UserHomeDir()
		stateDir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateDir, appName, appName+".log")
}

// Publisher re-emits a publisher log line at its own level.
func Publisher(logger *slog.Logger, l event.Log) {
	logger.Log(context.Background(), l.SlogLevel(), l.Message,
		"source", "publisher",
		"who", l.Who,
		"ts", l.Time(),
	)
}
