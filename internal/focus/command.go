package focus

import (
	"fmt"
	"strings"

	"github.com/olivoil/gesturenav/internal/event"
)

// Command is a navigation input derived from a gesture.
type Command int

const (
	CmdRight Command = iota + 1
	CmdLeft
	CmdUp
	CmdDown
	CmdSelect
	CmdBack
)

var commandNames = map[Command]string{
	CmdRight:  "right",
	CmdLeft:   "left",
	CmdUp:     "up",
	CmdDown:   "down",
	CmdSelect: "select",
	CmdBack:   "back",
}

func (c Command) String() string {
	if s, ok := commandNames[c]; ok {
		return s
	}
	return fmt.Sprintf("command(%d)", int(c))
}

// ParseCommand is the inverse of Command.String.
func ParseCommand(s string) (Command, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for c, name := range commandNames {
		if name == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown navigation command %q", s)
}

// Bindings maps gesture names to commands.
type Bindings map[string]Command

// DefaultBindings returns the publisher's standard navigation gestures.
func DefaultBindings() Bindings {
	return Bindings{
		event.GestureSwipeR:    CmdRight,
		event.GestureSwipeL:    CmdLeft,
		event.GestureSwipeUp:   CmdUp,
		event.GestureSwipeDown: CmdDown,
		event.GestureRotateRL:  CmdSelect,
		event.GestureRotateLR:  CmdBack,
	}
}

// ParseBindings builds bindings from gesture → command-name pairs on top of
// the defaults. An empty command name removes the default binding.
func ParseBindings(m map[string]string) (Bindings, error) {
	b := DefaultBindings()
	for gesture, name := range m {
		if strings.TrimSpace(name) == "" {
			delete(b, gesture)
			continue
		}
		cmd, err := ParseCommand(name)
		if err != nil {
			return nil, fmt.Errorf("gesture %q: %w", gesture, err)
		}
		b[gesture] = cmd
	}
	return b, nil
}
