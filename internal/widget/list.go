package widget

import (
	"math"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/olivoil/gesturenav/internal/focus"
)

// Item is one row of a List.
type Item struct {
	Label  string
	Detail string
	// OnClick handles a click on the row itself.
	OnClick func() bool
}

// List is a scrollable single-choice list. Rows are ItemHeight lines tall
// and separated by Divider lines; the first PadTop lines hold the title.
type List struct {
	node
	Title string
	// OnItemClick handles clicks the row did not handle.
	OnItemClick func(index int) bool

	items     []Item
	selected  int
	checked   int
	itemH     int
	divider   int
	padTop    int
	padBottom int

	scroll   float64
	velocity float64
	target   float64
	moving   bool

	itemsCanFocus bool
	listener      focus.ListListener
}

// NewList returns a focusable list with nothing selected.
func NewList(id, title string, items []Item) *List {
	l := &List{
		Title:    title,
		items:    items,
		selected: focus.NoSelection,
		checked:  focus.NoSelection,
		itemH:    1,
		padTop:   1,
	}
	l.id = id
	l.self = l
	l.focusable = true
	return l
}

// SetRowMetrics sets the row and divider heights in lines.
func (l *List) SetRowMetrics(itemHeight, divider int) {
	l.itemH = max(1, itemHeight)
	l.divider = max(0, divider)
}

// SetPadding sets the lines reserved above and below the rows.
func (l *List) SetPadding(top, bottom int) {
	l.padTop, l.padBottom = max(0, top), max(0, bottom)
}

// SetItems replaces the rows, keeping the selection when still valid.
func (l *List) SetItems(items []Item) {
	l.items = items
	if l.selected >= len(items) {
		l.selected = len(items) - 1
	}
	if l.checked >= len(items) {
		l.checked = focus.NoSelection
	}
	l.scroll = l.clampScroll(l.scroll)
	l.stop()
}

func (l *List) Items() []Item { return l.items }
func (l *List) Count() int    { return len(l.items) }

func (l *List) SelectedIndex() int { return l.selected }

// CheckedIndex returns the checked row or NoSelection.
func (l *List) CheckedIndex() int { return l.checked }

// ScrollOffset is the current scroll position in lines.
func (l *List) ScrollOffset() int { return int(math.Round(l.scroll)) }

// Scrolling reports whether a smooth scroll is in progress.
func (l *List) Scrolling() bool { return l.moving }

func (l *List) SetSelection(index int) {
	if len(l.items) == 0 {
		return
	}
	index = max(0, min(index, len(l.items)-1))
	l.stop()
	l.setSelected(index)
	l.ensureVisible(index)
}

func (l *List) SetItemChecked(index int, checked bool) {
	switch {
	case checked && index >= 0 && index < len(l.items):
		l.checked = index
	case !checked && l.checked == index:
		l.checked = focus.NoSelection
	}
}

func (l *List) ClickSelected() bool {
	if l.selected < 0 || l.selected >= len(l.items) {
		return false
	}
	if click := l.items[l.selected].OnClick; click != nil {
		return click()
	}
	return false
}

func (l *List) PerformItemClick(index int) bool {
	if l.OnItemClick == nil || index < 0 || index >= len(l.items) {
		return false
	}
	return l.OnItemClick(index)
}

func (l *List) SetFocusable(v bool)            { l.focusable = v }
func (l *List) SetFocusableInTouchMode(v bool) { l.focusableInTouch = v }
func (l *List) SetItemsCanFocus(v bool)        { l.itemsCanFocus = v }
func (l *List) SetListListener(v focus.ListListener) {
	l.listener = v
}

func (l *List) ItemHeight() int                { return l.itemH }
func (l *List) DividerHeight() int             { return l.divider }
func (l *List) ListPadding() (top, bottom int) { return l.padTop, l.padBottom }
func (l *List) Height() int                    { return l.bounds.H }

func (l *List) SelectedTop() int {
	if l.selected < 0 {
		return l.padTop
	}
	return l.rowTop(l.selected)
}

// SetSelectionFromTop selects index and scrolls so its row starts top lines
// below the padding.
func (l *List) SetSelectionFromTop(index, top int) {
	if len(l.items) == 0 {
		return
	}
	index = max(0, min(index, len(l.items)-1))
	l.stop()
	l.scroll = l.clampScroll(float64(index*l.step() - top))
	l.target = l.scroll
	l.setSelected(index)
}

// SmoothScrollToPositionFromTop starts a spring towards placing index top
// lines below the padding. Tree.Animate advances it.
func (l *List) SmoothScrollToPositionFromTop(index, top int) {
	if len(l.items) == 0 {
		return
	}
	index = max(0, min(index, len(l.items)-1))
	l.target = l.clampScroll(float64(index*l.step() - top))
	l.moving = l.target != l.scroll
	if l.moving && l.tree != nil {
		l.tree.animating[l.id] = l
	}
}

func (l *List) DispatchKey(code focus.KeyCode, action focus.KeyAction) bool {
	if action != focus.KeyActionDown {
		return false
	}
	switch code {
	case focus.KeyDPadUp:
		if l.selected > 0 {
			l.SetSelection(l.selected - 1)
			return true
		}
	case focus.KeyDPadDown:
		if l.selected < len(l.items)-1 {
			l.SetSelection(l.selected + 1)
			return true
		}
	case focus.KeyDPadCenter:
		if l.selected != focus.NoSelection {
			return l.ClickSelected() || l.PerformItemClick(l.selected)
		}
		return false
	}
	return l.node.DispatchKey(code, action)
}

func (l *List) setSelected(index int) {
	if l.selected == index {
		return
	}
	l.selected = index
	if l.tree == nil {
		return
	}
	l.tree.post(func() {
		if l.listener != nil {
			l.listener.OnItemSelected(l, index)
		}
	})
}

func (l *List) step() int { return l.itemH + l.divider }

func (l *List) viewport() int {
	return max(0, l.bounds.H-l.padTop-l.padBottom)
}

// rowTop is the top of row i relative to the list.
func (l *List) rowTop(i int) int {
	return l.padTop + i*l.step() - l.ScrollOffset()
}

func (l *List) clampScroll(s float64) float64 {
	content := len(l.items)*l.step() - l.divider
	limit := float64(max(0, content-l.viewport()))
	return math.Max(0, math.Min(s, limit))
}

func (l *List) ensureVisible(i int) {
	top := l.rowTop(i)
	bottom := l.bounds.H - l.padBottom
	switch {
	case top < l.padTop:
		l.scroll -= float64(l.padTop - top)
	case top+l.itemH > bottom && l.viewport() >= l.itemH:
		l.scroll += float64(top + l.itemH - bottom)
	}
	l.scroll = l.clampScroll(l.scroll)
	l.target = l.scroll
}

func (l *List) stop() {
	l.moving = false
	l.velocity = 0
	l.target = l.scroll
	if l.tree != nil {
		delete(l.tree.animating, l.id)
	}
}

// rowAt returns the row under screen line y, or NoSelection.
func (l *List) rowAt(y int) int {
	line := y - l.bounds.Y - l.padTop
	if line < 0 || line >= l.viewport() {
		return focus.NoSelection
	}
	c := l.ScrollOffset() + line
	row := c / l.step()
	if c%l.step() >= l.itemH || row >= len(l.items) {
		return focus.NoSelection
	}
	return row
}

func (l *List) render(st Styles) string {
	w := l.bounds.W
	if w <= 0 || l.bounds.H <= 0 {
		return ""
	}

	lines := make([]string, 0, l.bounds.H)
	for i := 0; i < l.padTop; i++ {
		if i == 0 && l.Title != "" {
			title := st.Title
			if l.HasFocus() {
				title = st.TitleFocused
			}
			lines = append(lines, title.Render(pad(ansi.Truncate(l.Title, w, "…"), w)))
			continue
		}
		lines = append(lines, "")
	}

	offset := l.ScrollOffset()
	for line := 0; line < l.viewport(); line++ {
		c := offset + line
		row, within := c/l.step(), c%l.step()
		switch {
		case row >= len(l.items):
			lines = append(lines, "")
		case within >= l.itemH:
			lines = append(lines, st.Divider.Render(strings.Repeat("─", w)))
		default:
			lines = append(lines, l.renderRow(st, row, within, w))
		}
	}
	for len(lines) < l.bounds.H {
		lines = append(lines, "")
	}
	return strings.Join(lines[:l.bounds.H], "\n")
}

func (l *List) renderRow(st Styles, row, within, w int) string {
	item := l.items[row]
	mark := "  "
	if row == l.checked {
		mark = "● "
	}

	text := mark + item.Label
	if within > 0 {
		text = "  " + item.Detail
		if within > 1 {
			text = ""
		}
	}
	text = pad(ansi.Truncate(text, w, "…"), w)

	switch {
	case row == l.selected && l.IsFocused():
		return st.RowSelected.Render(text)
	case row == l.selected:
		return st.RowSelectedBlurred.Render(text)
	case within > 0:
		return st.Muted.Render(text)
	}
	return st.Row.Render(text)
}
