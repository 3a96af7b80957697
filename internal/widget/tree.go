// Package widget is a small retained-mode widget toolkit for the terminal.
//
// A Tree owns focus and touch mode for its nodes. State changes never call
// observers directly: notifications are queued and delivered in order by
// Flush, on the goroutine that owns the tree.
package widget

import (
	"log/slog"

	"github.com/olivoil/gesturenav/internal/focus"
)

// maxFlush bounds the notifications delivered by one Flush so observers
// that keep moving focus cannot spin forever.
const maxFlush = 256

// Tree holds a root node and the focus state of everything below it.
type Tree struct {
	root    Node
	nodes   map[string]Node
	focused Node
	touch   bool

	pending   []func()
	animating map[string]*List

	focusObservers []func(old, next focus.Widget)
	touchObservers []func(isTouch bool)
	back           func()

	log *slog.Logger
}

// NewTree returns an empty tree.
func NewTree(log *slog.Logger) *Tree {
	if log == nil {
		log = slog.Default()
	}
	return &Tree{
		nodes:     make(map[string]Node),
		animating: make(map[string]*List),
		log:       log,
	}
}

// OnFocusChange registers fn for every focus change.
func (t *Tree) OnFocusChange(fn func(old, next focus.Widget)) {
	t.focusObservers = append(t.focusObservers, fn)
}

// OnTouchModeChange registers fn for every touch mode transition.
func (t *Tree) OnTouchModeChange(fn func(isTouch bool)) {
	t.touchObservers = append(t.touchObservers, fn)
}

// OnBack sets the handler run by Back.
func (t *Tree) OnBack(fn func()) { t.back = fn }

// SetRoot replaces the whole tree. Focus is dropped without notification
// and queued notifications for the old nodes are discarded.
func (t *Tree) SetRoot(root Node) {
	for _, n := range t.nodes {
		n.base().tree = nil
	}
	t.root = root
	t.nodes = make(map[string]Node)
	t.animating = make(map[string]*List)
	t.focused = nil
	t.pending = nil
	if root == nil {
		return
	}
	root.base().parent = nil
	t.register(root)
}

func (t *Tree) register(n Node) {
	b := n.base()
	if _, dup := t.nodes[b.id]; dup {
		t.log.Warn("duplicate widget id", "id", b.id)
	}
	b.tree = t
	t.nodes[b.id] = n
	if p, ok := n.(*Panel); ok {
		for _, c := range p.children {
			t.register(c)
		}
	}
}

// Root returns the root node.
func (t *Tree) Root() Node { return t.root }

// Node returns the attached node with id.
func (t *Tree) Node(id string) (Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Focused returns the focused node or nil.
func (t *Tree) Focused() Node { return t.focused }

// InTouchMode reports whether the tree is in touch mode.
func (t *Tree) InTouchMode() bool { return t.touch }

func (t *Tree) CurrentFocus() focus.Widget {
	if t.focused == nil {
		return nil
	}
	return t.focused
}

func (t *Tree) Lookup(id string) focus.Widget {
	if n, ok := t.nodes[id]; ok {
		return n
	}
	return nil
}

func (t *Tree) Back() {
	if t.back == nil {
		t.log.Debug("back without handler")
		return
	}
	t.back()
}

func (t *Tree) walk(fn func(Node)) {
	var visit func(Node)
	visit = func(n Node) {
		fn(n)
		if p, ok := n.(*Panel); ok {
			for _, c := range p.children {
				visit(c)
			}
		}
	}
	if t.root != nil {
		visit(t.root)
	}
}

func (t *Tree) attached(n Node) bool {
	if n == nil {
		return false
	}
	cur, ok := t.nodes[n.ID()]
	return ok && cur == n
}

func (t *Tree) canFocus(n Node) bool {
	b := n.base()
	return b.focusable && (!t.touch || b.focusableInTouch)
}

// focusTarget resolves n to itself or its first focusable descendant.
func (t *Tree) focusTarget(n Node) Node {
	if t.canFocus(n) {
		return n
	}
	if p, ok := n.(*Panel); ok {
		for _, c := range p.children {
			if f := t.focusTarget(c); f != nil {
				return f
			}
		}
	}
	return nil
}

// Focus gives focus to n or its first focusable descendant.
func (t *Tree) Focus(n Node) bool {
	return t.requestFocus(n)
}

func (t *Tree) requestFocus(n Node) bool {
	if !t.attached(n) {
		return false
	}
	target := t.focusTarget(n)
	if target == nil {
		return false
	}
	t.setFocus(target)
	return true
}

func (t *Tree) requestFocusFromTouch(n Node) bool {
	if !t.attached(n) {
		return false
	}
	t.setTouch(false)
	return t.requestFocus(n)
}

func (t *Tree) setFocus(next Node) {
	old := t.focused
	if old == next {
		return
	}
	t.focused = next
	t.notifyFocus(old, next)
}

func (t *Tree) clearFocus() {
	old := t.focused
	if old == nil {
		return
	}
	t.focused = nil
	t.notifyFocus(old, nil)
}

func (t *Tree) notifyFocus(old, next Node) {
	if l, ok := old.(*List); ok {
		t.post(func() {
			if l.listener != nil {
				l.listener.OnFocusChange(l, false)
			}
		})
	}
	if l, ok := next.(*List); ok {
		t.post(func() {
			if l.listener != nil {
				l.listener.OnFocusChange(l, true)
			}
		})
	}

	var o, n focus.Widget
	if old != nil {
		o = old
	}
	if next != nil {
		n = next
	}
	for _, fn := range t.focusObservers {
		t.post(func() { fn(o, n) })
	}
}

// SetTouchMode enters or leaves touch mode. Entering it drops focus from
// a node that cannot hold focus in touch mode.
func (t *Tree) SetTouchMode(on bool) {
	t.setTouch(on)
}

func (t *Tree) setTouch(on bool) {
	if t.touch == on {
		return
	}
	t.touch = on
	if on && t.focused != nil && !t.focused.base().focusableInTouch {
		t.clearFocus()
	}
	for _, fn := range t.touchObservers {
		t.post(func() { fn(on) })
	}
}

// Touch handles a tap at (x, y): the tree enters touch mode and the node
// under the point is clicked. It returns that node, or nil.
func (t *Tree) Touch(x, y int) Node {
	t.setTouch(true)
	hit := t.hit(x, y)
	if hit == nil {
		return nil
	}
	if hit.base().focusableInTouch {
		t.setFocus(hit)
	}
	switch n := hit.(type) {
	case *Button:
		n.PerformClick()
	case *List:
		if row := n.rowAt(y); row != focus.NoSelection {
			n.PerformItemClick(row)
		}
	}
	return hit
}

// hit returns the deepest node containing (x, y).
func (t *Tree) hit(x, y int) Node {
	var found Node
	t.walk(func(n Node) {
		if n.base().bounds.Contains(x, y) {
			found = n
		}
	})
	return found
}

// search finds the closest focusable node in dir from from.
func (t *Tree) search(from Node, dir focus.Direction) Node {
	src := from.base().bounds
	var best Node
	bestScore := 0
	t.walk(func(n Node) {
		b := n.base()
		if n == from || !b.focusable || b.bounds.Empty() {
			return
		}
		if !candidate(src, b.bounds, dir) {
			return
		}
		if score := distance(src, b.bounds, dir); best == nil || score < bestScore {
			best, bestScore = n, score
		}
	})
	return best
}

func (t *Tree) dispatchKey(n Node, code focus.KeyCode, action focus.KeyAction) bool {
	if action != focus.KeyActionDown {
		return false
	}
	var dir focus.Direction
	switch code {
	case focus.KeyDPadCenter:
		return n.PerformClick()
	case focus.KeyBack:
		t.Back()
		return true
	case focus.KeyDPadUp:
		dir = focus.DirUp
	case focus.KeyDPadDown:
		dir = focus.DirDown
	case focus.KeyDPadLeft:
		dir = focus.DirLeft
	case focus.KeyDPadRight:
		dir = focus.DirRight
	default:
		return false
	}
	next := t.search(n, dir)
	if next == nil {
		return false
	}
	return t.requestFocus(next)
}

func (t *Tree) post(fn func()) {
	t.pending = append(t.pending, fn)
}

// Pending returns the number of queued notifications.
func (t *Tree) Pending() int { return len(t.pending) }

// Flush delivers queued notifications in order, including those queued
// while delivering, and returns how many ran.
func (t *Tree) Flush() int {
	ran := 0
	for len(t.pending) > 0 && ran < maxFlush {
		fn := t.pending[0]
		t.pending[0] = nil
		t.pending = t.pending[1:]
		fn()
		ran++
	}
	if len(t.pending) > 0 {
		t.log.Warn("notification flush limit reached", "pending", len(t.pending))
	}
	return ran
}
