package focus

import "fmt"

// fakeTree is a Host whose widgets record every call made on them.
type fakeTree struct {
	focus    Widget
	touch    bool
	nodes    map[string]Widget
	requests []string
	backs    int
}

func newFakeTree() *fakeTree {
	return &fakeTree{nodes: make(map[string]Widget)}
}

func (t *fakeTree) CurrentFocus() Widget    { return t.focus }
func (t *fakeTree) Lookup(id string) Widget { return t.nodes[id] }
func (t *fakeTree) Back()                   { t.backs++ }

// detach removes id from the tree without touching the parent's children.
func (t *fakeTree) detach(id string) { delete(t.nodes, id) }

type fakeWidget struct {
	id       string
	tree     *fakeTree
	self     Widget
	children []Widget
	next     map[Direction]Widget
	searches []Direction
	clicks   int
	clickOK  bool
	// refuse makes focus requests fail.
	refuse bool
}

func (t *fakeTree) widget(id string, children ...Widget) *fakeWidget {
	w := &fakeWidget{
		id:       id,
		tree:     t,
		children: children,
		next:     make(map[Direction]Widget),
		clickOK:  true,
	}
	w.self = w
	t.nodes[id] = w
	return w
}

func (w *fakeWidget) ID() string         { return w.id }
func (w *fakeWidget) Children() []Widget { return w.children }
func (w *fakeWidget) IsInTouchMode() bool {
	return w.tree.touch
}

func (w *fakeWidget) IsFocused() bool {
	return w.tree.focus != nil && w.tree.focus.ID() == w.id
}

func (w *fakeWidget) HasFocus() bool {
	return w.tree.focus != nil && contains(w.self, w.tree.focus.ID())
}

func (w *fakeWidget) FocusSearch(dir Direction) Widget {
	w.searches = append(w.searches, dir)
	return w.next[dir]
}

func (w *fakeWidget) RequestFocusFromTouch() bool {
	if w.refuse {
		return false
	}
	w.tree.touch = false
	w.tree.focus = w.self
	w.tree.requests = append(w.tree.requests, w.id)
	return true
}

func (w *fakeWidget) PerformClick() bool {
	w.clicks++
	return w.clickOK
}

type fakeList struct {
	*fakeWidget
	count    int
	selected int
	checked  map[int]bool

	focusable        bool
	focusableInTouch bool
	itemsCanFocus    bool
	listener         ListListener

	clickSelectedOK bool
	itemClickOK     bool
	itemClicks      []int
	keys            []string
}

func (t *fakeTree) list(id string, count, selected int) *fakeList {
	l := &fakeList{
		fakeWidget:       t.widget(id),
		count:            count,
		selected:         selected,
		checked:          make(map[int]bool),
		focusableInTouch: true,
		itemsCanFocus:    true,
	}
	l.self = l
	t.nodes[id] = l
	return l
}

func (l *fakeList) Count() int         { return l.count }
func (l *fakeList) SelectedIndex() int { return l.selected }

func (l *fakeList) SetSelection(index int) {
	if l.count == 0 {
		return
	}
	l.selected = max(0, min(index, l.count-1))
}

func (l *fakeList) SetItemChecked(index int, checked bool) { l.checked[index] = checked }

func (l *fakeList) ClickSelected() bool { return l.clickSelectedOK }

func (l *fakeList) PerformItemClick(index int) bool {
	l.itemClicks = append(l.itemClicks, index)
	return l.itemClickOK
}

func (l *fakeList) SetFocusable(v bool)            { l.focusable = v }
func (l *fakeList) SetFocusableInTouchMode(v bool) { l.focusableInTouch = v }
func (l *fakeList) SetItemsCanFocus(v bool)        { l.itemsCanFocus = v }
func (l *fakeList) SetListListener(v ListListener) { l.listener = v }

func (l *fakeList) DispatchKey(code KeyCode, action KeyAction) bool {
	l.keys = append(l.keys, fmt.Sprintf("%d/%d", code, action))
	return true
}

// layoutList adds geometry and records the order of layout calls.
type layoutList struct {
	*fakeList
	ops []string

	itemHeight  int
	divider     int
	selectedTop int
	padTop      int
	padBottom   int
	height      int
}

func (t *fakeTree) layoutList(id string, count, selected int) *layoutList {
	ll := &layoutList{
		fakeList:    t.list(id, count, selected),
		itemHeight:  2,
		divider:     1,
		selectedTop: 5,
		padTop:      1,
		padBottom:   1,
		height:      20,
	}
	ll.self = ll
	t.nodes[id] = ll
	return ll
}

func (l *layoutList) SetItemChecked(index int, checked bool) {
	l.ops = append(l.ops, fmt.Sprintf("checked %d", index))
	l.fakeList.SetItemChecked(index, checked)
}

func (l *layoutList) SetSelection(index int) {
	l.ops = append(l.ops, fmt.Sprintf("select %d", index))
	l.fakeList.SetSelection(index)
}

func (l *layoutList) ItemHeight() int                { return l.itemHeight }
func (l *layoutList) DividerHeight() int             { return l.divider }
func (l *layoutList) SelectedTop() int               { return l.selectedTop }
func (l *layoutList) ListPadding() (top, bottom int) { return l.padTop, l.padBottom }
func (l *layoutList) Height() int                    { return l.height }

func (l *layoutList) SetSelectionFromTop(index, top int) {
	l.ops = append(l.ops, fmt.Sprintf("snap %d %d", index, top))
	l.selected = index
}

func (l *layoutList) SmoothScrollToPositionFromTop(index, top int) {
	l.ops = append(l.ops, fmt.Sprintf("smooth %d %d", index, top))
}
