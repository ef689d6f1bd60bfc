package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hollowbyte/it2jump/internal/logging/events"
	"github.com/hollowbyte/it2jump/internal/provider"
	"github.com/hollowbyte/it2jump/internal/refresh"
)

// waitForUpdate blocks on the coalescer's update channel and converts the
// next refresh outcome into a message. It is re-issued after every refresh so
// exactly one reader is outstanding at a time.
func waitForUpdate(c *refresh.Coalescer) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-c.Updates()
		if !ok {
			return refreshDoneMsg{}
		}
		return refreshMsg{update: update}
	}
}

type refreshMsg struct {
	update refresh.Update
}

type refreshDoneMsg struct{}

type activateResultMsg struct {
	label string
	err   error
}

type paneResultMsg struct {
	direction provider.Direction
	moved     bool
	err       error
}

func (m *Model) handleRefreshMsg(msg tea.Msg) tea.Cmd {
	refreshed, ok := msg.(refreshMsg)
	if !ok {
		return nil
	}
	m.applyRefresh(refreshed.update)
	if m.coalescer != nil {
		return waitForUpdate(m.coalescer)
	}
	return nil
}

func (m *Model) handleRefreshDoneMsg(tea.Msg) tea.Cmd {
	m.coalescer = nil
	return nil
}

func (m *Model) applyRefresh(update refresh.Update) {
	if update.Err != nil {
		m.errMsg = update.Err.Error()
		events.Refresh.Failed(update.Err)
		return
	}
	m.controller.SetRowsFromSnapshot(update.Snapshot)
	m.errMsg = ""
	events.Refresh.Applied(len(m.controller.Rows()))
}

func (m *Model) activateCmd() tea.Cmd {
	ctx := m.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	controller := m.controller
	return func() tea.Msg {
		row, selected := controller.SelectedRow()
		label, err := controller.ActivateSelected(ctx)
		switch {
		case err != nil:
			events.Session.ActivateFailed(row.SessionID, err)
		case selected:
			events.Session.Activate(row.SessionID, label)
		}
		return activateResultMsg{label: label, err: err}
	}
}

func (m *Model) movePaneCmd(dir provider.Direction) tea.Cmd {
	ctx := m.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	controller := m.controller
	return func() tea.Msg {
		moved, err := controller.MovePane(ctx, dir)
		return paneResultMsg{direction: dir, moved: moved, err: err}
	}
}

func (m *Model) handleActivateResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(activateResultMsg)
	if !ok {
		return nil
	}
	m.activating = false
	if result.err != nil {
		m.errMsg = result.err.Error()
		m.forceClearInfo()
		return nil
	}
	m.errMsg = ""
	if result.label != "" && m.verbose {
		m.setInfo("Activated " + result.label)
	} else {
		m.forceClearInfo()
	}
	return nil
}

func (m *Model) handlePaneResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(paneResultMsg)
	if !ok {
		return nil
	}
	if result.err != nil {
		m.errMsg = result.err.Error()
		events.Pane.MoveFailed(result.direction.String(), result.err)
		return nil
	}
	m.errMsg = ""
	events.Pane.Move(result.direction.String(), result.moved)
	return nil
}
