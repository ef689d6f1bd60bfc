// Package picker owns the selection state machine: the current query, the
// filtered row list, and a selection index that stays valid across filtering,
// live snapshot updates, and user navigation.
package picker

import (
	"context"
	"sync"

	"github.com/hollowbyte/it2jump/internal/provider"
	"github.com/hollowbyte/it2jump/internal/search"
	"github.com/hollowbyte/it2jump/internal/session"
)

// Status messages for the informational no-op cases.
const (
	StatusNoSelection = "No session selected"
	StatusNoPane      = "No pane in that direction"
)

// State is the observable selection state. The display surface receives
// copies; the controller is the only writer.
type State struct {
	AllRows       []session.Row
	FilteredRows  []session.Row
	Query         string
	SelectedIndex int
	Status        string
}

func (s *State) clamp() {
	if len(s.FilteredRows) == 0 {
		s.SelectedIndex = 0
		return
	}
	if s.SelectedIndex < 0 {
		s.SelectedIndex = 0
	}
	if s.SelectedIndex > len(s.FilteredRows)-1 {
		s.SelectedIndex = len(s.FilteredRows) - 1
	}
}

// Controller mediates every mutation of the selection state. Provider calls
// issued by user actions run on Bubble Tea command goroutines, so all state
// access is serialized behind one mutex.
type Controller struct {
	mu       sync.Mutex
	provider provider.Provider
	strict   bool
	state    State
}

// New projects the initial snapshot, shows all rows, and lands the selection
// on the active session when one is visible.
func New(p provider.Provider, snap session.Snapshot, strict bool) *Controller {
	rows := session.Project(snap)
	c := &Controller{
		provider: p,
		strict:   strict,
		state: State{
			AllRows:      rows,
			FilteredRows: session.CloneRows(rows),
		},
	}
	c.selectActive()
	return c
}

// SetQuery replaces the filter query, re-ranks, clamps the selection, and
// prefers the active session when it survived the filter.
func (c *Controller) SetQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setQueryLocked(query)
}

func (c *Controller) setQueryLocked(query string) {
	c.state.Query = query
	c.state.FilteredRows = c.rank(c.state.AllRows, query)
	c.state.clamp()
	c.selectActive()
}

func (c *Controller) rank(rows []session.Row, query string) []session.Row {
	if c.strict {
		return search.RankStrict(rows, query)
	}
	return search.Rank(rows, query)
}

// SetRowsFromSnapshot absorbs a live update: fresh base rows, same query.
func (c *Controller) SetRowsFromSnapshot(snap session.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.AllRows = session.Project(snap)
	c.setQueryLocked(c.state.Query)
}

// SelectIndex moves the selection. Out-of-range values, including negatives
// from decrementing past zero, are clamped rather than wrapped or rejected.
func (c *Controller) SelectIndex(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SelectedIndex = index
	c.state.clamp()
}

// MoveSelection shifts the selection by delta with the same clamping rules.
func (c *Controller) MoveSelection(delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SelectedIndex += delta
	c.state.clamp()
}

// SelectedRow returns the row under the selection, or false when the filtered
// list is empty.
func (c *Controller) SelectedRow() (session.Row, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedRowLocked()
}

func (c *Controller) selectedRowLocked() (session.Row, bool) {
	if len(c.state.FilteredRows) == 0 {
		return session.Row{}, false
	}
	c.state.clamp()
	return c.state.FilteredRows[c.state.SelectedIndex], true
}

// ActivateSelected asks the provider to foreground the selected session.
// With nothing selected it records an informational status and does not call
// the provider. On success it clears the status and returns the row's
// window/tab-qualified label; provider failures are recorded as status and
// propagated to the caller.
func (c *Controller) ActivateSelected(ctx context.Context) (string, error) {
	c.mu.Lock()
	row, ok := c.selectedRowLocked()
	if !ok {
		c.state.Status = StatusNoSelection
		c.mu.Unlock()
		return "", nil
	}
	c.mu.Unlock()

	if err := c.provider.ActivateSession(ctx, row.SessionID); err != nil {
		c.mu.Lock()
		c.state.Status = err.Error()
		c.mu.Unlock()
		return "", err
	}

	c.mu.Lock()
	c.state.Status = ""
	c.mu.Unlock()
	return row.Label(), nil
}

// MovePane forwards an adjacent-pane focus move to the provider. A missing
// pane in the requested direction is informational, never an error.
func (c *Controller) MovePane(ctx context.Context, dir provider.Direction) (bool, error) {
	ok, err := c.provider.SelectPane(ctx, dir)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state.Status = err.Error()
		return false, err
	}
	if !ok {
		c.state.Status = StatusNoPane
		return false, nil
	}
	c.state.Status = ""
	return true, nil
}

// Rows returns the filtered rows for rendering.
func (c *Controller) Rows() []session.Row {
	c.mu.Lock()
	defer c.mu.Unlock()
	return session.CloneRows(c.state.FilteredRows)
}

// Snapshot returns a copy of the selection state for rendering.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.state
	st.AllRows = session.CloneRows(c.state.AllRows)
	st.FilteredRows = session.CloneRows(c.state.FilteredRows)
	return st
}

// SetStatus lets the display surface record transient messages (e.g. refresh
// failures) in the shared status slot.
func (c *Controller) SetStatus(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Status = message
}

// selectActive scans the filtered rows in order and lands the selection on
// the first active one. Callers hold the mutex.
func (c *Controller) selectActive() {
	for i, row := range c.state.FilteredRows {
		if row.Active {
			c.state.SelectedIndex = i
			return
		}
	}
}
