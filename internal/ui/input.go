package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hollowbyte/it2jump/internal/logging/events"
	"github.com/hollowbyte/it2jump/internal/provider"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "ctrl+c", "ctrl+q":
		events.App.Quit("interactive")
		return tea.Quit
	case "esc":
		if m.input.Value() != "" {
			m.input.SetValue("")
			m.controller.SetQuery("")
			m.errMsg = ""
			m.forceClearInfo()
			events.Filter.Cleared()
			return nil
		}
		events.App.Quit("escape")
		return tea.Quit
	case "enter":
		if m.activating {
			return nil
		}
		m.activating = true
		m.errMsg = ""
		m.forceClearInfo()
		return m.activateCmd()
	case "up", "ctrl+p":
		m.moveSelection(-1)
		return nil
	case "down", "ctrl+n":
		m.moveSelection(1)
		return nil
	case "pgup":
		m.moveSelection(-m.pageSize())
		return nil
	case "pgdown":
		m.moveSelection(m.pageSize())
		return nil
	case "ctrl+h":
		return m.movePaneCmd(provider.Left)
	case "ctrl+j":
		return m.movePaneCmd(provider.Down)
	case "ctrl+k":
		return m.movePaneCmd(provider.Up)
	case "ctrl+l":
		return m.movePaneCmd(provider.Right)
	}
	return m.handleTextInput(key)
}

// handleTextInput forwards remaining key presses to the query input and
// re-ranks when the text changed.
func (m *Model) handleTextInput(key tea.KeyMsg) tea.Cmd {
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	after := m.input.Value()
	if after != before {
		m.controller.SetQuery(after)
		m.errMsg = ""
		m.forceClearInfo()
		if after == "" {
			events.Filter.Cleared()
		} else {
			events.Filter.Changed(after, len(m.controller.Rows()))
		}
	}
	return cmd
}

func (m *Model) moveSelection(delta int) {
	m.controller.MoveSelection(delta)
	if row, ok := m.controller.SelectedRow(); ok {
		events.Session.Select(m.controller.Snapshot().SelectedIndex, row.SessionID)
	}
}

// pageSize is the stride for pgup/pgdown, derived from the space the row list
// actually occupies.
func (m *Model) pageSize() int {
	if size := m.maxVisibleRows(); size > 1 {
		return size
	}
	return 10
}
