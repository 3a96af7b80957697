package focus

import (
	"fmt"
	"log/slog"
	"strings"
)

// Strategy turns directional input into a change on the focused widget.
// Each method reports whether it handled the input.
type Strategy interface {
	Up(focus Widget) bool
	Down(focus Widget) bool
	Left(focus Widget) bool
	Right(focus Widget) bool
	Select(focus Widget) bool
	Back(focus Widget) bool
}

// Strategy names accepted by StrategyByName.
const (
	StrategyAnimated = "animated"
	StrategyPlain    = "plain"
	StrategyDirect   = "dpad"
)

// StrategyByName returns the strategy configured under name.
func StrategyByName(name string, log *slog.Logger) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", StrategyAnimated:
		return AnimatedSelection{Log: log}, nil
	case StrategyPlain:
		return PlainSelection{}, nil
	case StrategyDirect, "direct":
		return DirectKey{}, nil
	}
	return nil, fmt.Errorf("unknown selection strategy %q", name)
}

// DirectKey forwards input to the widget's native key handling as a
// press/release pair.
type DirectKey struct{}

func (DirectKey) dispatch(focus Widget, code KeyCode) bool {
	if d, ok := focus.(KeyDispatcher); ok {
		d.DispatchKey(code, KeyActionDown)
		d.DispatchKey(code, KeyActionUp)
	}
	return true
}

func (s DirectKey) Up(focus Widget) bool     { return s.dispatch(focus, KeyDPadUp) }
func (s DirectKey) Down(focus Widget) bool   { return s.dispatch(focus, KeyDPadDown) }
func (s DirectKey) Left(focus Widget) bool   { return s.dispatch(focus, KeyDPadLeft) }
func (s DirectKey) Right(focus Widget) bool  { return s.dispatch(focus, KeyDPadRight) }
func (s DirectKey) Select(focus Widget) bool { return s.dispatch(focus, KeyDPadCenter) }
func (s DirectKey) Back(focus Widget) bool   { return s.dispatch(focus, KeyBack) }

// PlainSelection moves a list's selection by one. Clamping is left to the
// list.
type PlainSelection struct{}

func (PlainSelection) step(focus Widget, delta int) bool {
	list, ok := focus.(List)
	if !ok {
		return false
	}
	list.SetSelection(list.SelectedIndex() + delta)
	return true
}

func (s PlainSelection) Up(focus Widget) bool    { return s.step(focus, -1) }
func (s PlainSelection) Down(focus Widget) bool  { return s.step(focus, 1) }
func (s PlainSelection) Left(focus Widget) bool  { return s.step(focus, -1) }
func (s PlainSelection) Right(focus Widget) bool { return s.step(focus, 1) }
func (PlainSelection) Select(Widget) bool        { return false }
func (PlainSelection) Back(Widget) bool          { return false }

// AnimatedSelection snaps the selection to its neighbour without a visible
// jump, then smooth-scrolls the new row to the centre of the list. The
// scroll is cosmetic; the snap alone decides the selection.
type AnimatedSelection struct {
	Log *slog.Logger
}

func (s AnimatedSelection) logger() *slog.Logger {
	if s.Log != nil {
		return s.Log
	}
	return slog.Default()
}

func (s AnimatedSelection) step(focus Widget, delta int) bool {
	list, ok := focus.(List)
	if !ok {
		return false
	}
	current := list.SelectedIndex()
	if !list.IsFocused() || current == NoSelection {
		return false
	}
	s.selectIndex(list, current, current+delta)
	return true
}

func (s AnimatedSelection) selectIndex(list List, current, target int) {
	if target < 0 || target >= list.Count() {
		s.logger().Warn("invalid selection", "list", list.ID(), "index", target, "count", list.Count())
		return
	}

	list.SetItemChecked(target, true)

	layout, ok := list.(ListLayout)
	if !ok {
		list.SetSelection(target)
		return
	}

	padTop, padBottom := layout.ListPadding()
	offset := layout.ItemHeight() + layout.DividerHeight()
	top := layout.SelectedTop() - padTop + offset*(target-current)
	layout.SetSelectionFromTop(target, top)

	centered := (layout.Height() - padTop - padBottom - layout.ItemHeight()) / 2
	layout.SmoothScrollToPositionFromTop(target, centered)
}

func (s AnimatedSelection) Up(focus Widget) bool    { return s.step(focus, -1) }
func (s AnimatedSelection) Down(focus Widget) bool  { return s.step(focus, 1) }
func (s AnimatedSelection) Left(focus Widget) bool  { return s.step(focus, -1) }
func (s AnimatedSelection) Right(focus Widget) bool { return s.step(focus, 1) }
func (AnimatedSelection) Select(Widget) bool        { return false }
func (AnimatedSelection) Back(Widget) bool          { return false }
