package focus

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/olivoil/gesturenav/internal/event"
)

// screen is root{list, button} with focus on the list.
type screen struct {
	tree   *fakeTree
	root   *fakeWidget
	list   *fakeList
	button *fakeWidget
	nav    *Navigator
}

func newScreen(t *testing.T, count, selected int, opts ...Option) *screen {
	t.Helper()
	tree := newFakeTree()
	list := tree.list("list", count, selected)
	button := tree.widget("button")
	root := tree.widget("root", list, button)
	tree.focus = list

	nav := New(tree, opts...)
	nav.Attach(root)
	return &screen{tree: tree, root: root, list: list, button: button, nav: nav}
}

func TestSwipeRightInsideListSelectsNext(t *testing.T) {
	t.Parallel()

	s := newScreen(t, 5, 2)
	out, ok := s.nav.HandleGesture(event.GestureSwipeR)

	require.True(t, ok)
	require.Equal(t, Selected, out)
	require.Equal(t, 3, s.list.selected)
	require.True(t, s.list.checked[3])
	require.Empty(t, s.list.searches)
	require.Empty(t, s.tree.requests)
}

func TestSwipeLeftInsideListSelectsPrevious(t *testing.T) {
	t.Parallel()

	for _, strategy := range []Strategy{AnimatedSelection{}, PlainSelection{}} {
		s := newScreen(t, 5, 2, WithStrategy(strategy))
		out, _ := s.nav.HandleGesture(event.GestureSwipeL)
		require.Equal(t, Selected, out)
		require.Equal(t, 1, s.list.selected)
		require.Empty(t, s.list.searches)
	}
}

func TestSwipeRightAtListEnd(t *testing.T) {
	t.Parallel()

	t.Run("no target on either axis", func(t *testing.T) {
		s := newScreen(t, 5, 4)
		out, _ := s.nav.HandleGesture(event.GestureSwipeR)

		require.Equal(t, Noop, out)
		require.Equal(t, []Direction{DirRight, DirDown}, s.list.searches)
		require.Same(t, s.list, s.tree.focus)
		require.Equal(t, 4, s.list.selected)
	})

	t.Run("secondary axis", func(t *testing.T) {
		s := newScreen(t, 5, 4)
		s.list.next[DirDown] = s.button
		out, _ := s.nav.HandleGesture(event.GestureSwipeR)

		require.Equal(t, Moved, out)
		require.Equal(t, []Direction{DirRight, DirDown}, s.list.searches)
		require.Same(t, s.button, s.tree.focus)
	})

	t.Run("primary axis", func(t *testing.T) {
		s := newScreen(t, 5, 4)
		s.list.next[DirRight] = s.button
		s.list.next[DirDown] = s.root
		out, _ := s.nav.HandleGesture(event.GestureSwipeR)

		require.Equal(t, Moved, out)
		require.Equal(t, []Direction{DirRight}, s.list.searches)
		require.Same(t, s.button, s.tree.focus)
	})
}

func TestSwipeLeftAtListStartSearchesLeftThenUp(t *testing.T) {
	t.Parallel()

	s := newScreen(t, 5, 0)
	out, _ := s.nav.HandleGesture(event.GestureSwipeL)

	require.Equal(t, Noop, out)
	require.Equal(t, []Direction{DirLeft, DirUp}, s.list.searches)
	require.Equal(t, 0, s.list.selected)
}

func TestVerticalNeverPagesInsideList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		gesture string
		want    []Direction
	}{
		{event.GestureSwipeDown, []Direction{DirDown, DirRight}},
		{event.GestureSwipeUp, []Direction{DirUp, DirLeft}},
	}
	for _, tt := range tests {
		s := newScreen(t, 5, 2)
		out, ok := s.nav.HandleGesture(tt.gesture)

		require.True(t, ok)
		require.Equal(t, Noop, out)
		require.Equal(t, tt.want, s.list.searches, tt.gesture)
		require.Equal(t, 2, s.list.selected)
	}
}

func TestNonListSearchesTree(t *testing.T) {
	t.Parallel()

	s := newScreen(t, 5, 0)
	s.tree.focus = s.button
	s.button.next[DirLeft] = s.list

	out := s.nav.Run(CmdLeft)
	require.Equal(t, Moved, out)
	require.Equal(t, []Direction{DirLeft}, s.button.searches)
	require.Same(t, s.list, s.tree.focus)
	require.Equal(t, []string{"list"}, s.tree.requests)
}

func TestRefusedFocusRequestIsNoop(t *testing.T) {
	t.Parallel()

	s := newScreen(t, 5, 0)
	s.tree.focus = s.button
	s.button.next[DirLeft] = s.list
	s.list.refuse = true

	require.Equal(t, Noop, s.nav.Run(CmdLeft))
	require.Same(t, s.button, s.tree.focus)
	require.Empty(t, s.tree.requests)
}

func TestNothingFocusedIsNoop(t *testing.T) {
	t.Parallel()

	s := newScreen(t, 5, 2)
	s.tree.focus = nil
	for _, cmd := range []Command{CmdRight, CmdLeft, CmdUp, CmdDown, CmdSelect} {
		require.Equal(t, Noop, s.nav.Run(cmd), cmd.String())
	}
}

func TestSelect(t *testing.T) {
	t.Parallel()

	t.Run("row handles click", func(t *testing.T) {
		s := newScreen(t, 5, 2)
		s.list.clickSelectedOK = true
		require.Equal(t, Clicked, s.nav.Run(CmdSelect))
		require.Empty(t, s.list.itemClicks)
	})

	t.Run("falls back to item click", func(t *testing.T) {
		s := newScreen(t, 5, 2)
		s.list.itemClickOK = true
		require.Equal(t, Clicked, s.nav.Run(CmdSelect))
		require.Equal(t, []int{2}, s.list.itemClicks)
	})

	t.Run("both unhandled", func(t *testing.T) {
		s := newScreen(t, 5, 2)
		require.Equal(t, Noop, s.nav.Run(CmdSelect))
		require.Equal(t, []int{2}, s.list.itemClicks)
	})

	t.Run("nothing selected", func(t *testing.T) {
		s := newScreen(t, 5, NoSelection)
		s.list.itemClickOK = true
		require.Equal(t, Noop, s.nav.Run(CmdSelect))
		require.Empty(t, s.list.itemClicks)
	})

	t.Run("plain widget", func(t *testing.T) {
		s := newScreen(t, 5, 2)
		s.tree.focus = s.button
		out, ok := s.nav.HandleGesture(event.GestureRotateRL)
		require.True(t, ok)
		require.Equal(t, Clicked, out)
		require.Equal(t, 1, s.button.clicks)
	})
}

func TestBackUsesHost(t *testing.T) {
	t.Parallel()

	s := newScreen(t, 5, 2)
	out, ok := s.nav.HandleGesture(event.GestureRotateLR)
	require.True(t, ok)
	require.Equal(t, WentBack, out)
	require.Equal(t, 1, s.tree.backs)
}

func TestUnboundGesture(t *testing.T) {
	t.Parallel()

	s := newScreen(t, 5, 2)
	out, ok := s.nav.HandleGesture(event.GestureTap)
	require.False(t, ok)
	require.Equal(t, Noop, out)
	require.Equal(t, 2, s.list.selected)

	_, ok = s.nav.HandleGesture("Backflip")
	require.False(t, ok)
}

func TestCustomBindings(t *testing.T) {
	t.Parallel()

	b, err := ParseBindings(map[string]string{event.GestureTap: "select", event.GestureRotateLR: ""})
	require.NoError(t, err)

	s := newScreen(t, 5, 2, WithBindings(b))
	s.list.clickSelectedOK = true

	out, ok := s.nav.HandleGesture(event.GestureTap)
	require.True(t, ok)
	require.Equal(t, Clicked, out)

	_, ok = s.nav.HandleGesture(event.GestureRotateLR)
	require.False(t, ok)

	_, err = ParseBindings(map[string]string{event.GestureTap: "jump"})
	require.Error(t, err)
}

func TestWithoutSessionEverythingIsNoop(t *testing.T) {
	t.Parallel()

	s := newScreen(t, 5, 2)
	s.nav.Detach()

	require.Equal(t, State{}, s.nav.State())
	require.Equal(t, Noop, s.nav.Run(CmdRight))
	require.Equal(t, Noop, s.nav.Run(CmdBack))
	require.Zero(t, s.tree.backs)

	s.nav.OnModeChanged(true)
	s.nav.OnFocusChanged(s.list, nil)
	require.Empty(t, s.tree.requests)
	require.Equal(t, 2, s.list.selected)
}

func TestAttachConfiguresLists(t *testing.T) {
	t.Parallel()

	tree := newFakeTree()
	inner := tree.list("inner", 3, 0)
	outer := tree.list("outer", 3, 0)
	panel := tree.widget("panel", inner)
	root := tree.widget("root", panel, outer)

	nav := New(tree)
	nav.Attach(root)

	for _, l := range []*fakeList{inner, outer} {
		require.True(t, l.focusable, l.id)
		require.False(t, l.focusableInTouch, l.id)
		require.False(t, l.itemsCanFocus, l.id)
		require.IsType(t, &ListMemory{}, l.listener)

		mem, ok := nav.ListMemory(l.id)
		require.True(t, ok)
		require.Same(t, mem, l.listener)
	}

	first := nav.State()
	require.True(t, first.Attached)
	require.Equal(t, "root", first.Root)
	require.Equal(t, ModeGesture, first.Mode)
	require.Empty(t, first.LastFocus)
	require.NotEmpty(t, first.SessionID)

	nav.Attach(root)
	require.NotEqual(t, first.SessionID, nav.State().SessionID)
}

func TestFocusLossToTouchChangesNothing(t *testing.T) {
	t.Parallel()

	s := newScreen(t, 5, 2)
	s.nav.OnFocusChanged(nil, s.button)
	before := s.nav.State()
	require.Equal(t, "button", before.LastFocus)

	s.tree.touch = true
	s.tree.focus = nil
	s.nav.OnFocusChanged(s.button, nil)

	require.Equal(t, before, s.nav.State())
	require.Empty(t, s.tree.requests)
	require.Nil(t, s.tree.focus)
}

func TestUnexpectedFocusLossRestoresOld(t *testing.T) {
	t.Parallel()

	s := newScreen(t, 5, 2)
	s.tree.focus = nil
	s.nav.OnFocusChanged(s.button, nil)

	require.Equal(t, []string{"button"}, s.tree.requests)
	require.Same(t, s.button, s.tree.focus)

	s.tree.focus = nil
	s.tree.detach("button")
	s.nav.OnFocusChanged(s.button, nil)
	require.Equal(t, []string{"button"}, s.tree.requests)
}

func TestFocusChangeInsideRootIsRemembered(t *testing.T) {
	t.Parallel()

	s := newScreen(t, 5, 2)
	s.tree.focus = s.button
	s.nav.OnFocusChanged(s.list, s.button)
	require.Equal(t, "button", s.nav.State().LastFocus)

	s.tree.touch = true
	s.tree.focus = s.list
	s.nav.OnFocusChanged(s.button, s.list)
	require.Equal(t, "button", s.nav.State().LastFocus)
	require.Empty(t, s.tree.requests)
}

func TestFocusEscapingRootIsPulledBack(t *testing.T) {
	t.Parallel()

	t.Run("to last focus", func(t *testing.T) {
		s := newScreen(t, 5, 2)
		s.tree.focus = s.button
		s.nav.OnFocusChanged(s.list, s.button)

		outside := s.tree.widget("outside")
		s.tree.focus = outside
		s.nav.OnFocusChanged(s.button, outside)

		require.Equal(t, []string{"button"}, s.tree.requests)
		require.Same(t, s.button, s.tree.focus)
	})

	t.Run("to root without memory", func(t *testing.T) {
		s := newScreen(t, 5, 2)
		outside := s.tree.widget("outside")
		s.tree.focus = outside
		s.nav.OnFocusChanged(s.list, outside)

		require.Equal(t, []string{"root"}, s.tree.requests)
	})
}

func TestTouchModeRestoresLastFocus(t *testing.T) {
	t.Parallel()

	s := newScreen(t, 5, 2)
	s.tree.focus = s.button
	s.nav.OnFocusChanged(s.list, s.button)

	s.tree.touch = true
	s.tree.focus = s.list
	s.nav.OnModeChanged(true)

	require.Equal(t, []string{"button"}, s.tree.requests)
	require.Same(t, s.button, s.tree.focus)
	require.Equal(t, ModeTouch, s.nav.State().Mode)

	// Already in touch mode: no second restore.
	s.nav.OnModeChanged(true)
	require.Len(t, s.tree.requests, 1)

	s.nav.OnModeChanged(false)
	require.Equal(t, ModeGesture, s.nav.State().Mode)
}

func TestTouchModeFallsBackToRoot(t *testing.T) {
	t.Parallel()

	t.Run("nothing remembered", func(t *testing.T) {
		s := newScreen(t, 5, 2)
		s.nav.OnModeChanged(true)
		require.Equal(t, []string{"root"}, s.tree.requests)
	})

	t.Run("remembered widget detached", func(t *testing.T) {
		s := newScreen(t, 5, 2)
		s.tree.focus = s.button
		s.nav.OnFocusChanged(s.list, s.button)
		s.tree.detach("button")

		s.nav.OnModeChanged(true)
		require.Equal(t, []string{"root"}, s.tree.requests)
		require.Empty(t, s.nav.State().LastFocus)
	})

	t.Run("remembered widget moved out of root", func(t *testing.T) {
		s := newScreen(t, 5, 2)
		s.tree.focus = s.button
		s.nav.OnFocusChanged(s.list, s.button)
		s.root.children = []Widget{s.list}

		s.nav.OnModeChanged(true)
		require.Equal(t, []string{"root"}, s.tree.requests)
	})
}

func TestListMemory(t *testing.T) {
	t.Parallel()

	s := newScreen(t, 5, 3)
	mem := s.list.listener

	mem.OnFocusChange(s.list, true)
	require.Equal(t, 0, s.list.selected)
	require.True(t, s.list.checked[0])

	s.list.selected = 4
	mem.OnFocusChange(s.list, false)
	s.list.selected = 1
	mem.OnFocusChange(s.list, true)
	require.Equal(t, 4, s.list.selected)
	require.True(t, s.list.checked[4])

	// Touch-driven loss keeps the old memory.
	s.list.selected = 2
	s.tree.touch = true
	mem.OnFocusChange(s.list, false)
	s.tree.touch = false
	mem.OnFocusChange(s.list, true)
	require.Equal(t, 4, s.list.selected)

	mem.OnItemSelected(s.list, 1)
	mem.OnItemSelected(s.list, NoSelection)
	require.Equal(t, 1, mem.(*ListMemory).Last())
}
