package backend

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/olivoil/gesturenav/internal/event"
)

// SpoolLine is one broadcast written to a spool file. Events carry their
// type, logs their level; JSON holds the payload as text.
type SpoolLine struct {
	Action string `json:"action"`
	Type   string `json:"type,omitempty"`
	Level  string `json:"level,omitempty"`
	JSON   string `json:"json"`
}

// IsEvent reports whether the line is an event broadcast.
func (l SpoolLine) IsEvent() bool { return l.Action == event.ActionEvent }

// ParseSpoolLine decodes and validates one spool line.
func ParseSpoolLine(line []byte) (SpoolLine, error) {
	var l SpoolLine
	if err := json.Unmarshal(line, &l); err != nil {
		return SpoolLine{}, fmt.Errorf("parse spool line: %w", err)
	}
	switch l.Action {
	case event.ActionEvent, event.ActionLog:
	default:
		return SpoolLine{}, fmt.Errorf("parse spool line: unknown action %q", l.Action)
	}
	if l.JSON == "" {
		return SpoolLine{}, errors.New("parse spool line: missing json")
	}
	return l, nil
}

// readLines returns every complete line in r and the number of bytes they
// span. A trailing line without a newline is left for the next read.
func readLines(r io.Reader) ([][]byte, int64, error) {
	br := bufio.NewReaderSize(r, 64*1024)
	var (
		lines    [][]byte
		consumed int64
	)
	for {
		b, err := br.ReadBytes('\n')
		if errors.Is(err, io.EOF) {
			return lines, consumed, nil
		}
		if err != nil {
			return lines, consumed, fmt.Errorf("read spool: %w", err)
		}
		consumed += int64(len(b))
		if line := bytes.TrimSpace(b); len(line) > 0 {
			lines = append(lines, line)
		}
	}
}

// splitFrames interprets a ZeroMQ message as [topic, payload] or [payload].
func splitFrames(frames [][]byte) (topic string, payload []byte, ok bool) {
	switch len(frames) {
	case 1:
		return "", frames[0], true
	case 2:
		return string(frames[0]), frames[1], true
	}
	return "", nil, false
}
