package app

import (
	"fmt"
	"log/slog"

	"github.com/olivoil/gesturenav/internal/focus"
	"github.com/olivoil/gesturenav/internal/widget"
)

type category struct {
	name  string
	items []string
}

func numbered(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s %02d", prefix, i+1)
	}
	return out
}

var catalog = []category{
	{"Music", numbered("Track", 24)},
	{"Podcasts", numbered("Episode", 12)},
	{"Radio", []string{"Jazz FM", "Classic Rock", "Morning News", "Lo-Fi Beats", "Talk Radio", "Sports Live"}},
	{"Videos", numbered("Clip", 16)},
	{"Photos", numbered("Album", 9)},
	{"Audiobooks", numbered("Chapter", 30)},
}

var devices = []string{"Living room", "Kitchen", "Headphones", "Car", "Garden"}

// screen is one root widget the navigator is attached to.
type screen struct {
	name  string
	root  *widget.Panel
	lists []*widget.List
	// focusID is the widget focused when the screen was left.
	focusID string
}

// request is an action a widget asks the model to run.
type request int

const (
	reqReset request = iota + 1
	reqSimulateTouch
)

// screens owns the widget tree, the navigator and the screen stack. Widget
// callbacks only record what to do; settle applies it once the current
// input has been handled.
type screens struct {
	tree  *widget.Tree
	nav   *focus.Navigator
	log   *slog.Logger
	area  widget.Rect
	stack []*screen

	pending  []func()
	requests []request
	notes    []string
	device   string
}

func newScreens(nav func(focus.Host) *focus.Navigator, logger *slog.Logger) *screens {
	s := &screens{
		tree: widget.NewTree(logger),
		log:  logger,
	}
	s.nav = nav(s.tree)
	s.tree.OnFocusChange(s.nav.OnFocusChanged)
	s.tree.OnTouchModeChange(s.nav.OnModeChanged)
	s.tree.OnBack(func() { s.later(s.pop) })
	s.push(s.home())
	s.settle()
	return s
}

func (s *screens) later(fn func()) { s.pending = append(s.pending, fn) }

func (s *screens) note(format string, args ...any) {
	s.notes = append(s.notes, fmt.Sprintf(format, args...))
}

// current returns the top of the stack.
func (s *screens) current() *screen {
	return s.stack[len(s.stack)-1]
}

func (s *screens) home() *screen {
	items := make([]widget.Item, len(catalog))
	for i, c := range catalog {
		items[i] = widget.Item{Label: c.name, Detail: fmt.Sprint(len(c.items))}
	}
	library := widget.NewList("home.library", "Library", items)
	library.OnItemClick = func(i int) bool {
		c := catalog[i]
		s.later(func() { s.push(s.detail(c)) })
		return true
	}

	devItems := make([]widget.Item, len(devices))
	for i, d := range devices {
		devItems[i] = widget.Item{Label: d}
	}
	devList := widget.NewList("home.devices", "Devices", devItems)
	devList.OnItemClick = func(i int) bool {
		s.device = devices[i]
		s.note("output device: %s", s.device)
		return true
	}

	lists := widget.NewPanel("home.lists", widget.Row, library, devList)
	lists.Gap = 2

	actions := widget.NewPanel("home.actions", widget.Row,
		widget.NewButton("home.shuffle", "Shuffle", func() { s.note("shuffle %s", s.outputDevice()) }),
		widget.NewButton("home.reset", "Reset orientation", func() { s.requests = append(s.requests, reqReset) }),
		widget.NewButton("home.touch", "Simulate touch", func() { s.requests = append(s.requests, reqSimulateTouch) }),
	)
	actions.Gap = 2
	actions.SetSize(0, 1)

	root := widget.NewPanel("home", widget.Column, lists, actions)
	root.Gap = 1
	return &screen{name: "home", root: root, lists: []*widget.List{library, devList}}
}

func (s *screens) detail(c category) *screen {
	items := make([]widget.Item, len(c.items))
	for i, name := range c.items {
		items[i] = widget.Item{Label: name}
	}
	list := widget.NewList("detail.items", c.name, items)
	list.OnItemClick = func(i int) bool {
		s.note("playing %s / %s on %s", c.name, c.items[i], s.outputDevice())
		return true
	}
	back := widget.NewButton("detail.back", "Back", func() { s.later(s.pop) })

	root := widget.NewPanel("detail", widget.Column, list, back)
	root.Gap = 1
	return &screen{name: "detail:" + c.name, root: root, lists: []*widget.List{list}}
}

func (s *screens) outputDevice() string {
	if s.device == "" {
		return devices[0]
	}
	return s.device
}

func (s *screens) push(next *screen) {
	if len(s.stack) > 0 {
		s.leave()
	}
	s.stack = append(s.stack, next)
	s.enter()
}

func (s *screens) pop() {
	if len(s.stack) < 2 {
		s.log.Info("back at root screen ignored")
		s.note("already at home")
		return
	}
	s.leave()
	s.stack = s.stack[:len(s.stack)-1]
	s.enter()
}

func (s *screens) leave() {
	cur := s.current()
	cur.focusID = s.nav.State().LastFocus
	s.nav.Detach()
}

// enter shows the top screen and attaches the navigator to it. Lists keep
// their selection across visits.
func (s *screens) enter() {
	cur := s.current()
	s.tree.SetRoot(cur.root)
	s.tree.Layout(s.area)
	s.nav.Attach(cur.root)
	for _, l := range cur.lists {
		if mem, ok := s.nav.ListMemory(l.ID()); ok {
			mem.OnItemSelected(l, l.SelectedIndex())
		}
	}

	target := widget.Node(cur.root)
	if n, ok := s.tree.Node(cur.focusID); ok {
		target = n
	}
	s.tree.Focus(target)
	s.log.Debug("screen entered", "screen", cur.name, "session", s.nav.State().SessionID)
}

// SetArea lays the tree out in r.
func (s *screens) SetArea(r widget.Rect) {
	s.area = r
	s.tree.Layout(r)
}

// settle runs deferred screen changes and delivers queued notifications.
func (s *screens) settle() {
	s.tree.Flush()
	for i := 0; i < len(s.pending); i++ {
		s.pending[i]()
		s.tree.Flush()
	}
	s.pending = s.pending[:0]
}

// drain returns and clears notes and requests.
func (s *screens) drain() ([]string, []request) {
	notes, reqs := s.notes, s.requests
	s.notes, s.requests = nil, nil
	return notes, reqs
}
