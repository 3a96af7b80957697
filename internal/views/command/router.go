package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olivoil/gesturenav/internal/focus"
)

// RouteKind identifies a command.
type RouteKind int

const (
	RouteGesture  RouteKind = iota + 1 // inject a gesture by name
	RouteNav                           // run a navigation command directly
	RouteReset                         // orientation reset request
	RouteTouch                         // touch at a cell, or simulate a touch
	RouteStrategy                      // switch selection strategy
	RouteLog                           // toggle the publisher pane
	RouteHelp
	RouteQuit
)

// Route is a parsed command line.
type Route struct {
	Kind    RouteKind
	Gesture string
	Command focus.Command
	// X and Y are set for a positional touch.
	X, Y     int
	HasPoint bool
	Strategy string
	Raw      string
}

// ParseRoute parses one command line.
func ParseRoute(input string) (Route, error) {
	raw := strings.TrimSpace(input)
	parts := strings.Fields(raw)
	if len(parts) == 0 {
		return Route{}, fmt.Errorf("empty command")
	}
	r := Route{Raw: raw}
	args := parts[1:]

	switch parts[0] {
	case "gesture", "g":
		name := strings.Join(args, " ")
		if name == "" {
			return Route{}, fmt.Errorf("gesture: missing name")
		}
		r.Kind, r.Gesture = RouteGesture, name
	case "nav":
		if len(args) != 1 {
			return Route{}, fmt.Errorf("nav: expected one of right, left, up, down, select, back")
		}
		cmd, err := focus.ParseCommand(args[0])
		if err != nil {
			return Route{}, err
		}
		r.Kind, r.Command = RouteNav, cmd
	case "reset":
		r.Kind = RouteReset
	case "touch":
		r.Kind = RouteTouch
		switch len(args) {
		case 0:
		case 2:
			x, errX := strconv.Atoi(args[0])
			y, errY := strconv.Atoi(args[1])
			if errX != nil || errY != nil {
				return Route{}, fmt.Errorf("touch: coordinates must be integers")
			}
			r.X, r.Y, r.HasPoint = x, y, true
		default:
			return Route{}, fmt.Errorf("touch: expected no arguments or x y")
		}
	case "strategy":
		if len(args) != 1 {
			return Route{}, fmt.Errorf("strategy: expected a name")
		}
		r.Kind, r.Strategy = RouteStrategy, args[0]
	case "log":
		r.Kind = RouteLog
	case "help", "?":
		r.Kind = RouteHelp
	case "quit", "q":
		r.Kind = RouteQuit
	default:
		return Route{}, fmt.Errorf("unknown command %q", parts[0])
	}
	return r, nil
}
