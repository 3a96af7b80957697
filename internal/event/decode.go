package event

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Message is the wire envelope shared by every event.
type Message struct {
	Type       string          `json:"type"`
	Parameters json.RawMessage `json:"parameters"`
}

// wireMessage distinguishes a missing type from an empty one.
type wireMessage struct {
	Type       *string         `json:"type"`
	Parameters json.RawMessage `json:"parameters"`
}

var (
	nullToken   = []byte("null")
	emptyObject = []byte("{}")
)

// Decode parses a JSON event. Some producers serialize an absent payload as
// the bare token null; every null token outside string literals is read as
// an empty object.
func Decode(data []byte) (Event, error) {
	var w wireMessage
	if err := json.Unmarshal(replaceNullTokens(data), &w); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, malformed("", typeErr.Field, err)
		}
		return nil, malformed("", "", err)
	}
	if w.Type == nil {
		return nil, malformed("", "type", nil)
	}
	return DecodeMessage(Message{Type: *w.Type, Parameters: w.Parameters})
}

// DecodeMessage converts an envelope into its typed variant. The type is
// resolved before parameters are inspected, so an unknown type is reported
// as UnknownType regardless of the parameter shape.
func DecodeMessage(msg Message) (Event, error) {
	t, ok := LookupType(msg.Type)
	if !ok {
		return nil, unknownType(msg.Type)
	}
	p, err := parseParams(msg.Type, msg.Parameters)
	if err != nil {
		return nil, err
	}

	switch t {
	case TypeGesture:
		name, err := p.str("name")
		if err != nil {
			return nil, err
		}
		return Gesture{Name: name}, nil

	case TypeWriting:
		var w Writing
		if w.Vocabulary, err = p.str("vocabulary"); err != nil {
			return nil, err
		}
		if w.Hypothesis, err = p.str("hypothesis"); err != nil {
			return nil, err
		}
		if w.IsFinal, err = p.boolean("final"); err != nil {
			return nil, err
		}
		return w, nil

	case TypeWritingSegment:
		started, err := p.boolean("started")
		if err != nil {
			return nil, err
		}
		return WritingSegment{Started: started}, nil

	case TypeActivation:
		active, err := p.boolean("active")
		if err != nil {
			return nil, err
		}
		return Activation{Active: active}, nil

	case TypeHeartbeat:
		return decodeHeartbeat(p)

	case TypeMouseEvent:
		return decodeMouse(p)
	}
	return nil, unknownType(msg.Type)
}

func decodeHeartbeat(p params) (Event, error) {
	var (
		h   Heartbeat
		err error
	)
	if h.Active, err = p.boolean("active"); err != nil {
		return nil, err
	}
	if h.Flags, err = p.integer("flags"); err != nil {
		return nil, err
	}
	if h.Stream, err = p.str("stream"); err != nil {
		return nil, err
	}
	if h.Sensor, err = p.str("sensor"); err != nil {
		return nil, err
	}
	if h.LastSeconds, err = p.integer("last"); err != nil {
		return nil, err
	}
	if h.LastSeconds < 0 {
		return nil, malformed(p.typ, "last", fmt.Errorf("negative value %d", h.LastSeconds))
	}
	return h, nil
}

func decodeMouse(p params) (Event, error) {
	if !p.has("type") {
		return MouseEvent{Kind: MouseToggle}, nil
	}
	kind, err := p.str("type")
	if err != nil {
		return nil, err
	}
	switch kind {
	case "toggle":
		return MouseEvent{Kind: MouseToggle}, nil
	case "move":
		m := MouseEvent{Kind: MouseMove}
		if m.DX, err = p.float("dx"); err != nil {
			return nil, err
		}
		if m.DY, err = p.float("dy"); err != nil {
			return nil, err
		}
		if m.PalmVertical, err = p.boolean("down"); err != nil {
			return nil, err
		}
		return m, nil
	}
	return nil, malformed(p.typ, "type", fmt.Errorf("invalid mouse event type %q", kind))
}

// Encode is the structural inverse of DecodeMessage.
func Encode(e Event) (Message, error) {
	var fields map[string]any
	switch e := e.(type) {
	case Gesture:
		fields = map[string]any{"name": e.Name}
	case Writing:
		fields = map[string]any{
			"vocabulary": e.Vocabulary,
			"hypothesis": e.Hypothesis,
			"final":      e.IsFinal,
		}
	case WritingSegment:
		fields = map[string]any{"started": e.Started}
	case Activation:
		fields = map[string]any{"active": e.Active}
	case Heartbeat:
		fields = map[string]any{
			"active": e.Active,
			"flags":  e.Flags,
			"stream": e.Stream,
			"sensor": e.Sensor,
			"last":   e.LastSeconds,
		}
	case MouseEvent:
		if e.Kind == MouseMove {
			fields = map[string]any{"type": "move", "dx": e.DX, "dy": e.DY, "down": e.PalmVertical}
		} else {
			fields = map[string]any{"type": "toggle"}
		}
	default:
		return Message{}, fmt.Errorf("encode event: unsupported value %T", e)
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return Message{}, fmt.Errorf("encode %s: %w", e.Type(), err)
	}
	return Message{Type: string(e.Type()), Parameters: raw}, nil
}

// Marshal encodes an event to its JSON text form.
func Marshal(e Event) ([]byte, error) {
	msg, err := Encode(e)
	if err != nil {
		return nil, err
	}
	return json.Marshal(msg)
}

// params gives typed access to a parameters object.
type params struct {
	typ    string
	fields map[string]json.RawMessage
}

func parseParams(typ string, raw json.RawMessage) (params, error) {
	p := params{typ: typ}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return p, malformed(typ, "parameters", nil)
	}
	if bytes.Equal(raw, nullToken) {
		raw = emptyObject
	}
	if raw[0] != '{' {
		return p, malformed(typ, "parameters", errors.New("not an object"))
	}
	if err := json.Unmarshal(raw, &p.fields); err != nil {
		return p, malformed(typ, "parameters", err)
	}
	return p, nil
}

func (p params) has(key string) bool {
	_, ok := p.fields[key]
	return ok
}

func (p params) lookup(key string) (json.RawMessage, error) {
	raw, ok := p.fields[key]
	if !ok {
		return nil, malformed(p.typ, key, errors.New("missing"))
	}
	raw = bytes.TrimSpace(raw)
	if bytes.Equal(raw, nullToken) {
		return nil, malformed(p.typ, key, errors.New("null"))
	}
	return raw, nil
}

func (p params) decode(key string, v any) error {
	raw, err := p.lookup(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return malformed(p.typ, key, err)
	}
	return nil
}

func (p params) str(key string) (string, error) {
	var s string
	err := p.decode(key, &s)
	return s, err
}

func (p params) boolean(key string) (bool, error) {
	var b bool
	err := p.decode(key, &b)
	return b, err
}

func (p params) integer(key string) (int64, error) {
	var n int64
	err := p.decode(key, &n)
	return n, err
}

func (p params) float(key string) (float64, error) {
	var f float64
	err := p.decode(key, &f)
	return f, err
}

// replaceNullTokens rewrites bare null tokens to {} while leaving string
// literals untouched.
func replaceNullTokens(data []byte) []byte {
	if !bytes.Contains(data, nullToken) {
		return data
	}
	out := make([]byte, 0, len(data)+8)
	inString, escaped := false, false
	for i := 0; i < len(data); i++ {
		c := data[i]
		if inString {
			out = append(out, c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
		} else if c == 'n' && bytes.HasPrefix(data[i:], nullToken) {
			out = append(out, emptyObject...)
			i += len(nullToken) - 1
			continue
		}
		out = append(out, c)
	}
	return out
}
