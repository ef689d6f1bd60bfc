package iterm2

import (
	"testing"

	"github.com/hollowbyte/it2jump/internal/provider"
	"github.com/hollowbyte/it2jump/internal/session"
)

func snapshotWith(active string, names map[string]string) session.Snapshot {
	tab := session.Tab{ID: "t1", Index: 1}
	for _, id := range []string{"s1", "s2", "s3"} {
		name, ok := names[id]
		if !ok {
			continue
		}
		tab.Sessions = append(tab.Sessions, session.Session{ID: id, Name: name})
	}
	return session.Snapshot{
		Windows:         []session.Window{{ID: "w1", Index: 1, Tabs: []session.Tab{tab}}},
		ActiveSessionID: active,
	}
}

func reasonsOf(notes []provider.Notification) map[provider.Reason][]string {
	m := make(map[provider.Reason][]string)
	for _, n := range notes {
		m[n.Reason] = append(m[n.Reason], n.SessionID)
	}
	return m
}

func TestDiffDetectsNewAndTerminatedSessions(t *testing.T) {
	prev := snapshotWith("s1", map[string]string{"s1": "alpha", "s2": "bravo"})
	next := snapshotWith("s1", map[string]string{"s1": "alpha", "s3": "charlie"})

	reasons := reasonsOf(diffSnapshots(prev, next))
	if got := reasons[provider.ReasonNewSession]; len(got) != 1 || got[0] != "s3" {
		t.Fatalf("expected new_session for s3, got %v", got)
	}
	if got := reasons[provider.ReasonTerminateSession]; len(got) != 1 || got[0] != "s2" {
		t.Fatalf("expected terminate_session for s2, got %v", got)
	}
}

func TestDiffDetectsFocusChange(t *testing.T) {
	prev := snapshotWith("s1", map[string]string{"s1": "alpha", "s2": "bravo"})
	next := snapshotWith("s2", map[string]string{"s1": "alpha", "s2": "bravo"})

	reasons := reasonsOf(diffSnapshots(prev, next))
	if got := reasons[provider.ReasonFocusChange]; len(got) != 1 || got[0] != "s2" {
		t.Fatalf("expected focus_change to s2, got %v", got)
	}
	if len(reasons) != 1 {
		t.Fatalf("expected only focus_change, got %v", reasons)
	}
}

func TestDiffDetectsVariableChange(t *testing.T) {
	prev := snapshotWith("s1", map[string]string{"s1": "alpha"})
	next := snapshotWith("s1", map[string]string{"s1": "renamed"})

	reasons := reasonsOf(diffSnapshots(prev, next))
	if got := reasons[provider.ReasonVariableChange]; len(got) != 1 || got[0] != "s1" {
		t.Fatalf("expected variable_change for s1, got %v", got)
	}
}

func TestDiffDetectsLayoutChange(t *testing.T) {
	prev := snapshotWith("s1", map[string]string{"s1": "alpha"})
	next := prev
	next.Windows = []session.Window{{ID: "w2", Index: 2, Tabs: prev.Windows[0].Tabs}}

	reasons := reasonsOf(diffSnapshots(prev, next))
	if got := reasons[provider.ReasonLayoutChange]; len(got) != 1 || got[0] != "s1" {
		t.Fatalf("expected layout_change for s1, got %v", got)
	}
}

func TestDiffIdenticalSnapshotsProduceNothing(t *testing.T) {
	snap := snapshotWith("s1", map[string]string{"s1": "alpha", "s2": "bravo"})
	if notes := diffSnapshots(snap, snap); len(notes) != 0 {
		t.Fatalf("expected no notifications, got %v", notes)
	}
}
