package widget

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/olivoil/gesturenav/internal/focus"
)

// Node is an element of a Tree.
type Node interface {
	focus.Widget
	focus.KeyDispatcher
	Bounds() Rect
	base() *node
	render(st Styles) string
}

type node struct {
	id     string
	tree   *Tree
	parent *Panel
	self   Node
	bounds Rect

	prefW, prefH int

	focusable        bool
	focusableInTouch bool
}

func (n *node) base() *node { return n }

func (n *node) ID() string   { return n.id }
func (n *node) Bounds() Rect { return n.bounds }

// SetSize fixes the node's size along its parent's layout axis. Zero means
// it shares the remaining space.
func (n *node) SetSize(w, h int) {
	n.prefW, n.prefH = w, h
}

func (n *node) IsInTouchMode() bool {
	return n.tree != nil && n.tree.touch
}

func (n *node) IsFocused() bool {
	return n.tree != nil && n.tree.focused != nil && n.tree.focused == n.self
}

func (n *node) HasFocus() bool {
	if n.tree == nil || n.tree.focused == nil {
		return false
	}
	for cur := n.tree.focused.base(); cur != nil; {
		if cur.self == n.self {
			return true
		}
		if cur.parent == nil {
			break
		}
		cur = &cur.parent.node
	}
	return false
}

func (n *node) FocusSearch(dir focus.Direction) focus.Widget {
	if n.tree == nil {
		return nil
	}
	if next := n.tree.search(n.self, dir); next != nil {
		return next
	}
	return nil
}

// RequestFocus gives focus to the node, or to its first focusable
// descendant.
func (n *node) RequestFocus() bool {
	return n.tree != nil && n.tree.requestFocus(n.self)
}

func (n *node) RequestFocusFromTouch() bool {
	return n.tree != nil && n.tree.requestFocusFromTouch(n.self)
}

func (n *node) PerformClick() bool { return false }

func (n *node) DispatchKey(code focus.KeyCode, action focus.KeyAction) bool {
	if n.tree == nil {
		return false
	}
	return n.tree.dispatchKey(n.self, code, action)
}

func (n *node) render(Styles) string { return "" }

// Axis is the direction a Panel lays out its children.
type Axis int

const (
	Column Axis = iota
	Row
)

// Panel groups children along an axis. Panels never take focus
// themselves.
type Panel struct {
	node
	Axis  Axis
	Gap   int
	Title string

	children []Node
}

// NewPanel returns a panel holding children.
func NewPanel(id string, axis Axis, children ...Node) *Panel {
	p := &Panel{Axis: axis}
	p.id = id
	p.self = p
	for _, c := range children {
		p.Add(c)
	}
	return p
}

// Add appends a child.
func (p *Panel) Add(c Node) {
	c.base().parent = p
	p.children = append(p.children, c)
}

// Nodes returns the panel's children.
func (p *Panel) Nodes() []Node { return p.children }

func (p *Panel) Children() []focus.Widget {
	out := make([]focus.Widget, len(p.children))
	for i, c := range p.children {
		out[i] = c
	}
	return out
}

func (p *Panel) render(st Styles) string {
	if p.Title == "" {
		return ""
	}
	return st.Title.Render(ansi.Truncate(p.Title, p.bounds.W, "…"))
}

// Button is a single-line focusable control.
type Button struct {
	node
	Label   string
	OnClick func()
}

// NewButton returns a focusable button. It cannot take focus in touch
// mode.
func NewButton(id, label string, onClick func()) *Button {
	b := &Button{Label: label, OnClick: onClick}
	b.id = id
	b.self = b
	b.prefH = 1
	b.focusable = true
	return b
}

func (b *Button) PerformClick() bool {
	if b.OnClick == nil {
		return false
	}
	b.OnClick()
	return true
}

func (b *Button) render(st Styles) string {
	label := "[ " + b.Label + " ]"
	label = pad(ansi.Truncate(label, b.bounds.W, "…"), b.bounds.W)
	if b.IsFocused() {
		return st.ButtonFocused.Render(label)
	}
	return st.Button.Render(label)
}

// pad right-fills s with spaces to width cells.
func pad(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
