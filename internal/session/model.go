package session

import "fmt"

// Session describes one terminal session inside a tab.
type Session struct {
	ID               string
	Name             string
	WorkingDirectory string
	CommandLine      string
}

// Tab groups an ordered run of sessions inside a window.
type Tab struct {
	ID       string
	Index    int
	Sessions []Session
}

// Window is one top-level terminal window in a snapshot.
type Window struct {
	ID    string
	Index int
	Tabs  []Tab
}

// Snapshot is an immutable point-in-time capture of the window/tab/session
// tree. The provider always constructs snapshots wholesale; a new snapshot
// fully replaces the previous one.
type Snapshot struct {
	Windows         []Window
	ActiveSessionID string
}

// Row is the flattened, display-ready projection of one session.
type Row struct {
	WindowID         string
	WindowIndex      int
	TabID            string
	TabIndex         int
	SessionID        string
	Name             string
	WorkingDirectory string
	CommandLine      string
	Active           bool
}

// DisplayName returns the row name with a placeholder for unnamed sessions.
func (r Row) DisplayName() string {
	if r.Name == "" {
		return "(unnamed)"
	}
	return r.Name
}

// Label returns the window/tab-qualified display label used when reporting
// activations.
func (r Row) Label() string {
	return fmt.Sprintf("%d:%d %s", r.WindowIndex, r.TabIndex, r.DisplayName())
}

// Project flattens a snapshot into rows, preserving the snapshot's
// window → tab → session nesting order. The row whose session id matches the
// snapshot's active session id is tagged active; at most one row qualifies,
// zero when the id is absent from the tree.
func Project(snap Snapshot) []Row {
	total := 0
	for _, w := range snap.Windows {
		for _, t := range w.Tabs {
			total += len(t.Sessions)
		}
	}
	rows := make([]Row, 0, total)
	for _, w := range snap.Windows {
		for _, t := range w.Tabs {
			for _, s := range t.Sessions {
				rows = append(rows, Row{
					WindowID:         w.ID,
					WindowIndex:      w.Index,
					TabID:            t.ID,
					TabIndex:         t.Index,
					SessionID:        s.ID,
					Name:             s.Name,
					WorkingDirectory: s.WorkingDirectory,
					CommandLine:      s.CommandLine,
					Active:           snap.ActiveSessionID != "" && snap.ActiveSessionID == s.ID,
				})
			}
		}
	}
	return rows
}

// CloneRows produces a shallow copy of the provided rows.
func CloneRows(rows []Row) []Row {
	dup := make([]Row, len(rows))
	copy(dup, rows)
	return dup
}
