// Package event decodes and encodes the JSON messages emitted by a gesture
// publisher. Every message carries a type discriminator and a parameters
// object; Decode maps it onto one of a closed set of event variants.
package event

import "slices"

// Type is the discriminator carried by every publisher event.
type Type string

const (
	TypeGesture        Type = "Gesture"
	TypeWriting        Type = "Writing"
	TypeMouseEvent     Type = "MouseEvent"
	TypeActivation     Type = "Activation"
	TypeWritingSegment Type = "WritingSegment"
	TypeHeartbeat      Type = "Heartbeat"
)

// typeTable maps wire type names to variants. MouseToggle is the legacy
// name older publishers used for mouse events.
var typeTable = map[string]Type{
	"Gesture":        TypeGesture,
	"Writing":        TypeWriting,
	"MouseEvent":     TypeMouseEvent,
	"MouseToggle":    TypeMouseEvent,
	"Activation":     TypeActivation,
	"WritingSegment": TypeWritingSegment,
	"Heartbeat":      TypeHeartbeat,
}

// LookupType resolves a wire type name, including aliases.
func LookupType(name string) (Type, bool) {
	t, ok := typeTable[name]
	return t, ok
}

// WireNames returns every wire type name that decodes as t, sorted.
func WireNames(t Type) []string {
	var names []string
	for name, v := range typeTable {
		if v == t {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Event is one of Gesture, Writing, WritingSegment, Activation, Heartbeat
// or MouseEvent. The set is closed; switch on the concrete type.
type Event interface {
	Type() Type
	isEvent()
}

// Gesture is a discrete motion command such as "Swipe R".
type Gesture struct {
	Name string
}

// Writing carries the current airwriting hypothesis for a segment.
type Writing struct {
	Vocabulary string
	Hypothesis string
	// IsFinal reports whether the segment has ended.
	IsFinal bool
}

// WritingSegment marks the start or end of an airwriting segment.
type WritingSegment struct {
	Started bool
}

// Activation is sent when sensor streaming is paused or resumed.
type Activation struct {
	Active bool
}

// Heartbeat reports publisher state periodically.
type Heartbeat struct {
	Active bool
	// Flags is the bit set of enabled publisher features.
	Flags  int64
	Stream string
	Sensor string
	// LastSeconds is the time since the last sensor message.
	LastSeconds int64
}

// MouseKind distinguishes airmouse toggles from movement.
type MouseKind int

const (
	MouseToggle MouseKind = iota
	MouseMove
)

func (k MouseKind) String() string {
	if k == MouseMove {
		return "move"
	}
	return "toggle"
}

// MouseEvent is produced by the airmouse feature. Toggle events always have
// zero deltas and PalmVertical false.
type MouseEvent struct {
	Kind   MouseKind
	DX, DY float64
	// PalmVertical is true while the hand is rotated 90° to the right.
	PalmVertical bool
}

func (Gesture) Type() Type        { return TypeGesture }
func (Writing) Type() Type        { return TypeWriting }
func (WritingSegment) Type() Type { return TypeWritingSegment }
func (Activation) Type() Type     { return TypeActivation }
func (Heartbeat) Type() Type      { return TypeHeartbeat }
func (MouseEvent) Type() Type     { return TypeMouseEvent }

func (Gesture) isEvent()        {}
func (Writing) isEvent()        {}
func (WritingSegment) isEvent() {}
func (Activation) isEvent()     {}
func (Heartbeat) isEvent()      {}
func (MouseEvent) isEvent()     {}
