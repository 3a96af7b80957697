package focus

// Direction is a focus-search direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	}
	return "unknown"
}

// Widget is an element that can hold input focus.
type Widget interface {
	// ID is stable for the lifetime of the widget and unique in its tree.
	ID() string
	// FocusSearch returns the nearest focusable widget in dir, or nil.
	FocusSearch(dir Direction) Widget
	// RequestFocusFromTouch leaves touch mode if needed and takes focus.
	RequestFocusFromTouch() bool
	IsInTouchMode() bool
	// IsFocused reports whether this widget itself holds focus.
	IsFocused() bool
	// HasFocus reports whether this widget or a descendant holds focus.
	HasFocus() bool
	PerformClick() bool
}

// Container is a widget with children.
type Container interface {
	Widget
	Children() []Widget
}

// NoSelection is the selected index of a list with nothing selected.
const NoSelection = -1

// List is a focusable widget with an ordered, single-selectable item model.
type List interface {
	Widget
	Count() int
	SelectedIndex() int
	SetSelection(index int)
	SetItemChecked(index int, checked bool)
	// ClickSelected clicks the selected row itself and reports whether the
	// row handled it.
	ClickSelected() bool
	// PerformItemClick invokes the list's own item-click handler.
	PerformItemClick(index int) bool

	SetFocusable(bool)
	SetFocusableInTouchMode(bool)
	SetItemsCanFocus(bool)
	SetListListener(ListListener)
}

// ListListener observes focus and selection changes of one list.
type ListListener interface {
	OnFocusChange(l List, hasFocus bool)
	OnItemSelected(l List, index int)
}

// ListLayout exposes the geometry of a list that can scroll by offset.
type ListLayout interface {
	// ItemHeight is the height of the selected row.
	ItemHeight() int
	DividerHeight() int
	// SelectedTop is the top of the selected row relative to the list.
	SelectedTop() int
	ListPadding() (top, bottom int)
	Height() int
	// SetSelectionFromTop selects index and places its row at top without
	// animating.
	SetSelectionFromTop(index, top int)
	// SmoothScrollToPositionFromTop animates index towards top. It must not
	// change the selection.
	SmoothScrollToPositionFromTop(index, top int)
}

// KeyCode is a directional-pad key.
type KeyCode int

const (
	KeyDPadUp KeyCode = iota
	KeyDPadDown
	KeyDPadLeft
	KeyDPadRight
	KeyDPadCenter
	KeyBack
)

// KeyAction distinguishes press from release.
type KeyAction int

const (
	KeyActionDown KeyAction = iota
	KeyActionUp
)

// KeyDispatcher accepts native key events.
type KeyDispatcher interface {
	DispatchKey(code KeyCode, action KeyAction) bool
}

// Host is the toolkit side of the navigator: it knows which widget holds
// focus and can resolve ID handles back to live widgets.
type Host interface {
	CurrentFocus() Widget
	// Lookup returns the attached widget with id, or nil.
	Lookup(id string) Widget
	// Back runs the host's default back navigation.
	Back()
}

// walk visits w and its descendants. Lists are leaves.
func walk(w Widget, fn func(Widget)) {
	if w == nil {
		return
	}
	fn(w)
	if _, ok := w.(List); ok {
		return
	}
	if c, ok := w.(Container); ok {
		for _, child := range c.Children() {
			walk(child, fn)
		}
	}
}

// contains reports whether a widget with id is root or below it.
func contains(root Widget, id string) bool {
	found := false
	walk(root, func(w Widget) {
		if w.ID() == id {
			found = true
		}
	})
	return found
}
