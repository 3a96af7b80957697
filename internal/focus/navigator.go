// Package focus drives focus navigation and list selection on a widget tree
// from semantic navigation commands.
//
// A Navigator is not safe for concurrent use. Every entry point must be
// called from the one goroutine that owns the widget tree.
package focus

import (
	"log/slog"

	"github.com/google/uuid"
)

// Mode is the input origin the navigator believes is active.
type Mode int

const (
	ModeGesture Mode = iota
	ModeTouch
)

func (m Mode) String() string {
	if m == ModeTouch {
		return "touch"
	}
	return "gesture"
}

// Outcome is the visible result of one command.
type Outcome int

const (
	Noop Outcome = iota
	Moved
	Selected
	Clicked
	WentBack
)

func (o Outcome) String() string {
	switch o {
	case Moved:
		return "moved"
	case Selected:
		return "selected"
	case Clicked:
		return "clicked"
	case WentBack:
		return "back"
	}
	return "noop"
}

// fallback is the secondary search axis for each primary direction.
var fallback = map[Direction]Direction{
	DirRight: DirDown,
	DirLeft:  DirUp,
	DirDown:  DirRight,
	DirUp:    DirLeft,
}

type session struct {
	id        string
	root      Widget
	mode      Mode
	lastFocus string
	lists     map[string]*ListMemory
}

// State is a snapshot of the active session.
type State struct {
	Attached  bool
	SessionID string
	Root      string
	Mode      Mode
	LastFocus string
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithStrategy sets the selection strategy. The default is AnimatedSelection.
func WithStrategy(s Strategy) Option {
	return func(n *Navigator) { n.strategy = s }
}

// WithBindings replaces the gesture bindings.
func WithBindings(b Bindings) Option {
	return func(n *Navigator) { n.bindings = b }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(n *Navigator) { n.log = l }
}

// Navigator moves focus across the subtree attached to it.
type Navigator struct {
	host     Host
	strategy Strategy
	bindings Bindings
	log      *slog.Logger
	sess     *session
}

// New returns a navigator with no attached subtree.
func New(host Host, opts ...Option) *Navigator {
	n := &Navigator{
		host:     host,
		bindings: DefaultBindings(),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.strategy == nil {
		n.strategy = AnimatedSelection{Log: n.log}
	}
	return n
}

// SetStrategy swaps the selection strategy.
func (n *Navigator) SetStrategy(s Strategy) {
	n.strategy = s
}

// Strategy returns the current selection strategy.
func (n *Navigator) Strategy() Strategy {
	return n.strategy
}

// Attach starts a new session on root and configures every list below it.
// A previous session is discarded.
func (n *Navigator) Attach(root Widget) {
	n.sess = &session{
		id:    uuid.NewString(),
		root:  root,
		mode:  ModeGesture,
		lists: make(map[string]*ListMemory),
	}
	walk(root, func(w Widget) {
		if l, ok := w.(List); ok {
			n.setupList(l)
		}
	})
	n.log.Debug("navigator attached", "session", n.sess.id, "root", root.ID(), "lists", len(n.sess.lists))
}

// Detach discards the session.
func (n *Navigator) Detach() {
	if n.sess == nil {
		return
	}
	n.log.Debug("navigator detached", "session", n.sess.id)
	n.sess = nil
}

// State returns a snapshot of the session.
func (n *Navigator) State() State {
	if n.sess == nil {
		return State{}
	}
	return State{
		Attached:  true,
		SessionID: n.sess.id,
		Root:      n.sess.root.ID(),
		Mode:      n.sess.mode,
		LastFocus: n.sess.lastFocus,
	}
}

// ListMemory returns the listener installed on the list with id.
func (n *Navigator) ListMemory(id string) (*ListMemory, bool) {
	if n.sess == nil {
		return nil, false
	}
	m, ok := n.sess.lists[id]
	return m, ok
}

func (n *Navigator) setupList(l List) {
	l.SetFocusable(true)
	l.SetFocusableInTouchMode(false)
	l.SetItemsCanFocus(false)

	mem := &ListMemory{log: n.log}
	l.SetListListener(mem)
	n.sess.lists[l.ID()] = mem
}

// HandleGesture runs the command bound to name. It reports false for
// gestures with no binding.
func (n *Navigator) HandleGesture(name string) (Outcome, bool) {
	cmd, ok := n.bindings[name]
	if !ok {
		n.log.Debug("unbound gesture", "gesture", name)
		return Noop, false
	}
	return n.Run(cmd), true
}

// Run executes one navigation command against the current focus.
func (n *Navigator) Run(cmd Command) Outcome {
	if n.sess == nil {
		n.log.Debug("navigation without session", "command", cmd)
		return Noop
	}

	var out Outcome
	switch cmd {
	case CmdRight:
		out = n.horizontal(DirRight)
	case CmdLeft:
		out = n.horizontal(DirLeft)
	case CmdUp:
		out = n.vertical(DirUp)
	case CmdDown:
		out = n.vertical(DirDown)
	case CmdSelect:
		out = n.selectFocused()
	case CmdBack:
		n.host.Back()
		out = WentBack
	default:
		n.log.Warn("unknown navigation command", "command", int(cmd))
		return Noop
	}
	n.log.Debug("navigation", "command", cmd, "outcome", out)
	return out
}

// horizontal pages inside a focused list until its boundary, then escapes
// to tree search.
func (n *Navigator) horizontal(dir Direction) Outcome {
	current := n.host.CurrentFocus()
	if current == nil {
		n.log.Debug("nothing focused", "direction", dir)
		return Noop
	}

	list, ok := current.(List)
	if !ok {
		return n.search(current, dir)
	}

	index := list.SelectedIndex()
	if index == NoSelection {
		n.log.Warn("list has no valid selection", "list", list.ID())
	}

	last := list.Count() - 1
	if (dir == DirRight && index == last) || (dir == DirLeft && index == 0) {
		return n.search(current, dir)
	}

	var handled bool
	if dir == DirRight {
		handled = n.strategy.Down(current)
	} else {
		handled = n.strategy.Up(current)
	}
	if !handled {
		n.log.Debug("selection strategy did not handle input", "list", list.ID(), "direction", dir)
		return Noop
	}
	n.log.Debug("list selection", "list", list.ID(), "from", index, "to", list.SelectedIndex())
	return Selected
}

// vertical always searches the tree, even from inside a list.
func (n *Navigator) vertical(dir Direction) Outcome {
	current := n.host.CurrentFocus()
	if current == nil {
		n.log.Debug("nothing focused", "direction", dir)
		return Noop
	}
	return n.search(current, dir)
}

func (n *Navigator) search(from Widget, dir Direction) Outcome {
	target := from.FocusSearch(dir)
	if target == nil {
		target = from.FocusSearch(fallback[dir])
	}
	if target == nil {
		n.log.Info("no focus target", "from", from.ID(), "direction", dir, "fallback", fallback[dir])
		return Noop
	}
	if !target.RequestFocusFromTouch() {
		n.log.Info("focus request refused", "from", from.ID(), "target", target.ID())
		return Noop
	}
	return Moved
}

func (n *Navigator) selectFocused() Outcome {
	current := n.host.CurrentFocus()
	if current == nil {
		n.log.Debug("nothing focused to select")
		return Noop
	}

	list, ok := current.(List)
	if !ok {
		if !current.PerformClick() {
			n.log.Debug("click not handled", "widget", current.ID())
			return Noop
		}
		return Clicked
	}

	index := list.SelectedIndex()
	if index == NoSelection {
		n.log.Warn("nothing selected", "list", list.ID())
		return Noop
	}
	if !list.ClickSelected() && !list.PerformItemClick(index) {
		n.log.Warn("item click not handled", "list", list.ID(), "index", index)
		return Noop
	}
	return Clicked
}

// OnModeChanged reacts to the toolkit entering or leaving touch mode.
func (n *Navigator) OnModeChanged(isTouch bool) {
	s := n.sess
	if s == nil {
		return
	}
	n.log.Debug("touch mode changed", "touch", isTouch, "mode", s.mode)

	if !isTouch {
		s.mode = ModeGesture
		return
	}
	wasGesture := s.mode == ModeGesture
	s.mode = ModeTouch
	if wasGesture {
		n.restore()
	}
}

// OnFocusChanged reacts to focus moving from old to next. Either may be nil.
func (n *Navigator) OnFocusChanged(old, next Widget) {
	s := n.sess
	if s == nil {
		return
	}

	if next == nil {
		if old == nil {
			return
		}
		if old.IsInTouchMode() {
			n.log.Debug("focus lost to touch", "widget", old.ID())
			return
		}
		if w := n.host.Lookup(old.ID()); w != nil {
			n.log.Debug("unexpected focus loss, restoring", "widget", old.ID())
			w.RequestFocusFromTouch()
		}
		return
	}

	if next.IsInTouchMode() {
		return
	}

	if s.root.HasFocus() {
		s.lastFocus = next.ID()
		return
	}

	n.log.Debug("focus left managed subtree", "widget", next.ID())
	n.restore()
}

// restore focuses the remembered widget, or the root when it is gone.
func (n *Navigator) restore() {
	s := n.sess
	target := n.resolveLastFocus()
	if target == nil {
		target = s.root
	}
	n.log.Debug("restoring focus", "widget", target.ID())
	target.RequestFocusFromTouch()
}

func (n *Navigator) resolveLastFocus() Widget {
	s := n.sess
	if s.lastFocus == "" {
		return nil
	}
	w := n.host.Lookup(s.lastFocus)
	if w == nil || !contains(s.root, s.lastFocus) {
		n.log.Debug("last focus no longer attached", "widget", s.lastFocus)
		s.lastFocus = ""
		return nil
	}
	return w
}
