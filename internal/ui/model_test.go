package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hollowbyte/it2jump/internal/picker"
	"github.com/hollowbyte/it2jump/internal/provider"
	"github.com/hollowbyte/it2jump/internal/refresh"
	"github.com/hollowbyte/it2jump/internal/session"
)

type fakeProvider struct {
	activated []string
	paneMoved bool
	paneErr   error
	actErr    error
}

func (f *fakeProvider) Snapshot(context.Context) (session.Snapshot, error) {
	return session.Snapshot{}, nil
}

func (f *fakeProvider) ActivateSession(_ context.Context, id string) error {
	if f.actErr != nil {
		return f.actErr
	}
	f.activated = append(f.activated, id)
	return nil
}

func (f *fakeProvider) SelectPane(context.Context, provider.Direction) (bool, error) {
	return f.paneMoved, f.paneErr
}

func (f *fakeProvider) Events(context.Context) (<-chan provider.Notification, error) {
	ch := make(chan provider.Notification)
	close(ch)
	return ch, nil
}

func (f *fakeProvider) Close() error { return nil }

func testSnapshot() session.Snapshot {
	return session.Snapshot{
		Windows: []session.Window{
			{
				ID:    "w1",
				Index: 1,
				Tabs: []session.Tab{
					{
						ID:    "t1",
						Index: 1,
						Sessions: []session.Session{
							{ID: "s1", Name: "alpha", WorkingDirectory: "/src"},
							{ID: "s2", Name: "bravo"},
						},
					},
				},
			},
		},
		ActiveSessionID: "s2",
	}
}

func newTestModel(t *testing.T, fake *fakeProvider) *Model {
	t.Helper()
	controller := picker.New(fake, testSnapshot(), false)
	m := NewModel(context.Background(), controller, nil, 0, 0, false, false)
	m.Init()
	return m
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTypingUpdatesQueryAndRows(t *testing.T) {
	m := newTestModel(t, &fakeProvider{})
	for _, r := range "alpha" {
		m.Update(keyMsg(string(r)))
	}
	state := m.controller.Snapshot()
	if state.Query != "alpha" {
		t.Fatalf("expected query alpha, got %q", state.Query)
	}
	if len(state.FilteredRows) != 1 || state.FilteredRows[0].SessionID != "s1" {
		t.Fatalf("expected only alpha, got %#v", state.FilteredRows)
	}
}

func TestEscapeClearsQueryBeforeQuitting(t *testing.T) {
	m := newTestModel(t, &fakeProvider{})
	m.Update(keyMsg("a"))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd != nil {
		t.Fatalf("expected no quit while clearing the query")
	}
	if got := m.controller.Snapshot().Query; got != "" {
		t.Fatalf("expected cleared query, got %q", got)
	}
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("expected quit command on second escape")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg, got %T", cmd())
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestModel(t, &fakeProvider{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg, got %T", cmd())
	}
}

func TestArrowKeysMoveSelection(t *testing.T) {
	m := newTestModel(t, &fakeProvider{})
	// Selection starts on the active session (index 1).
	if got := m.controller.Snapshot().SelectedIndex; got != 1 {
		t.Fatalf("expected initial selection 1, got %d", got)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := m.controller.Snapshot().SelectedIndex; got != 0 {
		t.Fatalf("expected selection 0, got %d", got)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := m.controller.Snapshot().SelectedIndex; got != 0 {
		t.Fatalf("expected selection clamped at 0, got %d", got)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := m.controller.Snapshot().SelectedIndex; got != 1 {
		t.Fatalf("expected selection clamped at 1, got %d", got)
	}
}

func TestEnterActivatesSelection(t *testing.T) {
	fake := &fakeProvider{}
	m := newTestModel(t, fake)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected activation command")
	}
	msg := cmd()
	result, ok := msg.(activateResultMsg)
	if !ok {
		t.Fatalf("expected activateResultMsg, got %T", msg)
	}
	if result.err != nil {
		t.Fatalf("unexpected error: %v", result.err)
	}
	if result.label != "1:1 bravo" {
		t.Fatalf("unexpected label %q", result.label)
	}
	if len(fake.activated) != 1 || fake.activated[0] != "s2" {
		t.Fatalf("expected activation of s2, got %v", fake.activated)
	}
	m.Update(msg)
	if m.activating {
		t.Fatalf("expected activating flag cleared")
	}
}

func TestActivateFailureSurfacesError(t *testing.T) {
	fake := &fakeProvider{actErr: &provider.NotFoundError{SessionID: "s2"}}
	m := newTestModel(t, fake)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(cmd())
	if m.errMsg == "" || !strings.Contains(m.errMsg, "s2") {
		t.Fatalf("expected error message naming s2, got %q", m.errMsg)
	}
}

func TestPaneMoveReportsMissingPane(t *testing.T) {
	fake := &fakeProvider{paneMoved: false}
	m := newTestModel(t, fake)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlJ})
	if cmd == nil {
		t.Fatalf("expected pane command")
	}
	m.Update(cmd())
	if got := m.controller.Snapshot().Status; got != picker.StatusNoPane {
		t.Fatalf("expected %q status, got %q", picker.StatusNoPane, got)
	}
}

func TestRefreshMsgAppliesSnapshotAndRearms(t *testing.T) {
	fake := &fakeProvider{}
	controller := picker.New(fake, testSnapshot(), false)
	coalescer := refresh.NewCoalescer(context.Background(), fake, refresh.DefaultDelay)
	m := NewModel(context.Background(), controller, coalescer, 0, 0, false, false)
	m.Init()

	next := testSnapshot()
	next.Windows[0].Tabs[0].Sessions = next.Windows[0].Tabs[0].Sessions[:1]
	next.ActiveSessionID = "s1"
	_, cmd := m.Update(refreshMsg{update: refresh.Update{Snapshot: next}})
	if cmd == nil {
		t.Fatalf("expected re-armed wait command")
	}
	rows := m.controller.Rows()
	if len(rows) != 1 || rows[0].SessionID != "s1" {
		t.Fatalf("expected refreshed rows, got %#v", rows)
	}
}

func TestRefreshErrorBecomesStatus(t *testing.T) {
	m := newTestModel(t, &fakeProvider{})
	m.applyRefresh(refresh.Update{Err: errors.New("osascript exploded")})
	if !strings.Contains(m.errMsg, "osascript exploded") {
		t.Fatalf("expected refresh error surfaced, got %q", m.errMsg)
	}
}
