package focus

import "log/slog"

// ListMemory remembers the selection of one list across focus changes.
type ListMemory struct {
	last int
	log  *slog.Logger
}

// Last is the remembered index.
func (m *ListMemory) Last() int {
	return m.last
}

func (m *ListMemory) OnFocusChange(l List, hasFocus bool) {
	if !hasFocus && l.IsInTouchMode() {
		return
	}
	if hasFocus {
		l.SetSelection(m.last)
		l.SetItemChecked(m.last, true)
		return
	}
	if index := l.SelectedIndex(); index != NoSelection {
		m.last = index
	}
}

func (m *ListMemory) OnItemSelected(l List, index int) {
	if index == NoSelection {
		return
	}
	if m.log != nil {
		m.log.Debug("list item selected", "list", l.ID(), "index", index)
	}
	m.last = index
}
