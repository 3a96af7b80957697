package event

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// Log levels used by the publisher.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Log is a log line forwarded by the publisher.
type Log struct {
	Who     string
	Level   string
	Message string
	// Timestamp is milliseconds since the Unix epoch.
	Timestamp int64
}

// Time returns the log timestamp as a time.Time.
func (l Log) Time() time.Time {
	return time.UnixMilli(l.Timestamp)
}

// SlogLevel maps the publisher level onto slog.
func (l Log) SlogLevel() slog.Level {
	switch l.Level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	}
	return slog.LevelInfo
}

// DecodeLog parses {"parameters": {"who", "level", "message", "timestamp"}}.
func DecodeLog(data []byte) (Log, error) {
	var envelope struct {
		Parameters json.RawMessage `json:"parameters"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return Log{}, malformed("Log", "", err)
	}
	p, err := parseParams("Log", envelope.Parameters)
	if err != nil {
		return Log{}, err
	}

	var l Log
	if l.Who, err = p.str("who"); err != nil {
		return Log{}, err
	}
	if l.Level, err = p.str("level"); err != nil {
		return Log{}, err
	}
	switch l.Level {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
	default:
		return Log{}, malformed("Log", "level", fmt.Errorf("unknown level %q", l.Level))
	}
	if l.Message, err = p.str("message"); err != nil {
		return Log{}, err
	}
	if l.Timestamp, err = p.integer("timestamp"); err != nil {
		return Log{}, err
	}
	return l, nil
}

// MarshalLog encodes a log in the publisher's wire shape.
func MarshalLog(l Log) ([]byte, error) {
	return json.Marshal(map[string]any{
		"parameters": map[string]any{
			"who":       l.Who,
			"level":     l.Level,
			"message":   l.Message,
			"timestamp": l.Timestamp,
		},
	})
}
