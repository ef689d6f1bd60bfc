package picker

import (
	"context"
	"errors"
	"testing"

	"pgregory.net/rapid"

	"github.com/hollowbyte/it2jump/internal/provider"
	"github.com/hollowbyte/it2jump/internal/session"
)

type fakeProvider struct {
	activated   []string
	activateErr error
	paneOK      bool
	paneErr     error
	paneMoves   []provider.Direction
}

func (f *fakeProvider) Snapshot(context.Context) (session.Snapshot, error) {
	return session.Snapshot{}, nil
}

func (f *fakeProvider) ActivateSession(_ context.Context, id string) error {
	if f.activateErr != nil {
		return f.activateErr
	}
	f.activated = append(f.activated, id)
	return nil
}

func (f *fakeProvider) SelectPane(_ context.Context, dir provider.Direction) (bool, error) {
	f.paneMoves = append(f.paneMoves, dir)
	return f.paneOK, f.paneErr
}

func (f *fakeProvider) Events(context.Context) (<-chan provider.Notification, error) {
	ch := make(chan provider.Notification)
	close(ch)
	return ch, nil
}

func (f *fakeProvider) Close() error { return nil }

func alphaBravoSnapshot() session.Snapshot {
	return session.Snapshot{
		Windows: []session.Window{
			{ID: "w1", Index: 1, Tabs: []session.Tab{
				{ID: "t1", Index: 1, Sessions: []session.Session{
					{ID: "s1", Name: "alpha"},
					{ID: "s2", Name: "bravo"},
				}},
			}},
		},
		ActiveSessionID: "s1",
	}
}

func TestNewAutoSelectsActiveRow(t *testing.T) {
	c := New(&fakeProvider{}, alphaBravoSnapshot(), false)
	st := c.Snapshot()
	if st.SelectedIndex != 0 {
		t.Fatalf("expected selection on s1, got index %d", st.SelectedIndex)
	}
	row, ok := c.SelectedRow()
	if !ok || row.SessionID != "s1" {
		t.Fatalf("expected s1 selected, got %v ok=%v", row.SessionID, ok)
	}
}

func TestNewAutoSelectsActiveRowDeeperInList(t *testing.T) {
	snap := alphaBravoSnapshot()
	snap.ActiveSessionID = "s2"
	c := New(&fakeProvider{}, snap, false)
	row, ok := c.SelectedRow()
	if !ok || row.SessionID != "s2" {
		t.Fatalf("expected active s2 selected, got %v ok=%v", row.SessionID, ok)
	}
}

func TestSetQueryFiltersAndClamps(t *testing.T) {
	c := New(&fakeProvider{}, alphaBravoSnapshot(), false)
	c.SetQuery("bravo")
	st := c.Snapshot()
	if len(st.FilteredRows) != 1 || st.FilteredRows[0].SessionID != "s2" {
		t.Fatalf("expected only s2, got %#v", st.FilteredRows)
	}
	if st.SelectedIndex != 0 {
		t.Fatalf("expected index 0, got %d", st.SelectedIndex)
	}
}

func TestSetQueryPrefersActiveSurvivor(t *testing.T) {
	snap := session.Snapshot{
		Windows: []session.Window{
			{ID: "w1", Index: 1, Tabs: []session.Tab{
				{ID: "t1", Index: 1, Sessions: []session.Session{
					{ID: "s1", Name: "build one"},
					{ID: "s2", Name: "build two"},
				}},
			}},
		},
		ActiveSessionID: "s2",
	}
	c := New(&fakeProvider{}, snap, false)
	c.SetQuery("build")
	row, ok := c.SelectedRow()
	if !ok || row.SessionID != "s2" {
		t.Fatalf("expected active row re-selected after filtering, got %v", row.SessionID)
	}
}

func TestSetRowsFromSnapshotKeepsQuery(t *testing.T) {
	c := New(&fakeProvider{}, alphaBravoSnapshot(), false)
	c.SetQuery("bravo")

	snap := alphaBravoSnapshot()
	snap.Windows[0].Tabs[0].Sessions = append(snap.Windows[0].Tabs[0].Sessions,
		session.Session{ID: "s3", Name: "bravo two"})
	c.SetRowsFromSnapshot(snap)

	st := c.Snapshot()
	if st.Query != "bravo" {
		t.Fatalf("expected query preserved, got %q", st.Query)
	}
	if len(st.FilteredRows) != 2 {
		t.Fatalf("expected both bravo rows, got %#v", st.FilteredRows)
	}
}

func TestSelectIndexClampsOutOfRange(t *testing.T) {
	c := New(&fakeProvider{}, alphaBravoSnapshot(), false)
	c.SelectIndex(99)
	if st := c.Snapshot(); st.SelectedIndex != 1 {
		t.Fatalf("expected clamp to last row, got %d", st.SelectedIndex)
	}
	c.SelectIndex(-5)
	if st := c.Snapshot(); st.SelectedIndex != 0 {
		t.Fatalf("expected clamp to 0, got %d", st.SelectedIndex)
	}
	c.MoveSelection(-3)
	if st := c.Snapshot(); st.SelectedIndex != 0 {
		t.Fatalf("expected decrement at 0 to stay at 0, got %d", st.SelectedIndex)
	}
}

func TestSelectionClampInvariant(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := New(&fakeProvider{}, alphaBravoSnapshot(), false)
		queries := []string{"", "alpha", "bravo", "nothing-matches-this"}
		steps := rapid.IntRange(1, 20).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 2).Draw(rt, "op") {
			case 0:
				c.SetQuery(queries[rapid.IntRange(0, len(queries)-1).Draw(rt, "query")])
			case 1:
				c.SelectIndex(rapid.IntRange(-1000, 1000).Draw(rt, "index"))
			case 2:
				c.MoveSelection(rapid.IntRange(-1000, 1000).Draw(rt, "delta"))
			}
			st := c.Snapshot()
			if len(st.FilteredRows) == 0 {
				if st.SelectedIndex != 0 {
					rt.Fatalf("empty list must pin index to 0, got %d", st.SelectedIndex)
				}
				continue
			}
			if st.SelectedIndex < 0 || st.SelectedIndex >= len(st.FilteredRows) {
				rt.Fatalf("index %d out of range for %d rows", st.SelectedIndex, len(st.FilteredRows))
			}
		}
	})
}

func TestActivateSelectedWithEmptyListDoesNotCallProvider(t *testing.T) {
	p := &fakeProvider{}
	c := New(p, alphaBravoSnapshot(), false)
	c.SetQuery("nothing-matches-this")

	label, err := c.ActivateSelected(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if label != "" {
		t.Fatalf("expected no label, got %q", label)
	}
	if got := c.Snapshot().Status; got != StatusNoSelection {
		t.Fatalf("expected %q status, got %q", StatusNoSelection, got)
	}
	if len(p.activated) != 0 {
		t.Fatalf("provider must not be called, got %v", p.activated)
	}
}

func TestActivateSelectedCallsProviderAndClearsStatus(t *testing.T) {
	p := &fakeProvider{}
	c := New(p, alphaBravoSnapshot(), false)
	c.SetStatus("stale message")

	label, err := c.ActivateSelected(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if label != "1:1 alpha" {
		t.Fatalf("expected qualified label, got %q", label)
	}
	if got := p.activated; len(got) != 1 || got[0] != "s1" {
		t.Fatalf("expected activation of s1, got %v", got)
	}
	if got := c.Snapshot().Status; got != "" {
		t.Fatalf("expected status cleared, got %q", got)
	}
}

func TestActivateSelectedPropagatesProviderFailure(t *testing.T) {
	p := &fakeProvider{activateErr: &provider.NotFoundError{SessionID: "s1"}}
	c := New(p, alphaBravoSnapshot(), false)

	_, err := c.ActivateSelected(context.Background())
	var nf *provider.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if got := c.Snapshot().Status; got != err.Error() {
		t.Fatalf("expected failure surfaced as status, got %q", got)
	}
	// Selection state is otherwise unchanged.
	if row, ok := c.SelectedRow(); !ok || row.SessionID != "s1" {
		t.Fatalf("selection disturbed by failed activation: %v ok=%v", row.SessionID, ok)
	}
}

func TestMovePaneReportsMissingPaneAsStatus(t *testing.T) {
	p := &fakeProvider{paneOK: false}
	c := New(p, alphaBravoSnapshot(), false)

	ok, err := c.MovePane(context.Background(), provider.Left)
	if err != nil || ok {
		t.Fatalf("expected informational no-op, got ok=%v err=%v", ok, err)
	}
	if got := c.Snapshot().Status; got != StatusNoPane {
		t.Fatalf("expected %q, got %q", StatusNoPane, got)
	}
	if len(p.paneMoves) != 1 || p.paneMoves[0] != provider.Left {
		t.Fatalf("expected one left move, got %v", p.paneMoves)
	}
}

func TestMovePaneSuccessClearsStatus(t *testing.T) {
	p := &fakeProvider{paneOK: true}
	c := New(p, alphaBravoSnapshot(), false)
	c.SetStatus("stale")

	ok, err := c.MovePane(context.Background(), provider.Right)
	if err != nil || !ok {
		t.Fatalf("expected success, got ok=%v err=%v", ok, err)
	}
	if got := c.Snapshot().Status; got != "" {
		t.Fatalf("expected cleared status, got %q", got)
	}
}

func TestStrictModeSkipsFuzzyMatches(t *testing.T) {
	snap := alphaBravoSnapshot()
	snap.Windows[0].Tabs[0].Sessions[0].Name = "alpfa"
	c := New(&fakeProvider{}, snap, true)
	c.SetQuery("alpha")
	if rows := c.Rows(); len(rows) != 0 {
		t.Fatalf("strict mode must drop fuzzy-only matches, got %#v", rows)
	}
}
