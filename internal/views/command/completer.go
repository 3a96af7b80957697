package command

import (
	"sort"
	"strings"

	"github.com/olivoil/gesturenav/internal/event"
	"github.com/olivoil/gesturenav/internal/focus"
)

// Candidate is a completion option with a description.
type Candidate struct {
	Value string // the text shown in the menu
	Desc  string // short description
	Line  string // the input after accepting
}

// Completer provides live completion for the command line.
type Completer struct {
	gestures []string
}

// NewCompleter creates a completer over the publisher vocabulary.
func NewCompleter() *Completer {
	return &Completer{gestures: event.Vocabulary}
}

// SetGestures replaces the gesture names offered after "gesture".
func (c *Completer) SetGestures(names []string) {
	c.gestures = names
}

type cmdEntry struct {
	desc string
	args func(c *Completer) []subEntry
}

type subEntry struct {
	name string
	desc string
}

var commands = map[string]cmdEntry{
	"gesture": {desc: "Inject a gesture", args: func(c *Completer) []subEntry {
		out := make([]subEntry, len(c.gestures))
		for i, g := range c.gestures {
			out[i] = subEntry{g, "gesture"}
		}
		return out
	}},
	"nav": {desc: "Run a navigation command", args: func(*Completer) []subEntry {
		return []subEntry{
			{focus.CmdRight.String(), "next item or widget"},
			{focus.CmdLeft.String(), "previous item or widget"},
			{focus.CmdUp.String(), "widget above"},
			{focus.CmdDown.String(), "widget below"},
			{focus.CmdSelect.String(), "click focused"},
			{focus.CmdBack.String(), "go back"},
		}
	}},
	"strategy": {desc: "Switch selection strategy", args: func(*Completer) []subEntry {
		return []subEntry{
			{focus.StrategyAnimated, "scroll selection to center"},
			{focus.StrategyPlain, "move selection only"},
			{focus.StrategyDirect, "send d-pad keys"},
		}
	}},
	"reset": {desc: "Reset sensor orientation"},
	"touch": {desc: "Simulate a touch or touch x y"},
	"log":   {desc: "Toggle publisher pane"},
	"help":  {desc: "Show help"},
	"quit":  {desc: "Quit"},
}

// Complete returns candidates for the current input.
func (c *Completer) Complete(input string) []Candidate {
	trimmed := strings.TrimLeft(input, " ")
	cmd, rest, hasArgs := strings.Cut(trimmed, " ")

	if !hasArgs {
		return c.topLevelCandidates(cmd)
	}
	entry, ok := commands[cmd]
	if !ok || entry.args == nil {
		return nil
	}

	var result []Candidate
	for _, s := range entry.args(c) {
		if strings.HasPrefix(strings.ToLower(s.name), strings.ToLower(rest)) {
			result = append(result, Candidate{Value: s.name, Desc: s.desc, Line: cmd + " " + s.name})
		}
	}
	return result
}

func (c *Completer) topLevelCandidates(prefix string) []Candidate {
	keys := make([]string, 0, len(commands))
	for k := range commands {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var result []Candidate
	for _, k := range keys {
		if prefix == "" || strings.HasPrefix(k, prefix) {
			result = append(result, Candidate{Value: k, Desc: commands[k].desc, Line: k + " "})
		}
	}
	return result
}
