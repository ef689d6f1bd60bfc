package iterm2

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/hollowbyte/it2jump/internal/logging"
	"github.com/hollowbyte/it2jump/internal/provider"
	"github.com/hollowbyte/it2jump/internal/session"
)

const (
	defaultPollInterval = 1500 * time.Millisecond
	bridgeThrottle      = 250 * time.Millisecond
)

// Events synthesizes change notifications by polling the host and diffing
// consecutive snapshots. A filesystem watch on iTerm2's application-support
// directory kicks an immediate poll so interactive changes surface faster
// than the poll interval. The returned channel closes when ctx is cancelled
// or the provider is closed; the filesystem subscription is released on every
// exit path.
func (p *Provider) Events(ctx context.Context) (<-chan provider.Notification, error) {
	ch := make(chan provider.Notification, 16)
	kick := make(chan struct{}, 1)

	watcher := newStateWatcher(ctx, kick)
	go p.pollLoop(ctx, ch, kick, watcher)
	return ch, nil
}

// newStateWatcher wires fsnotify to the host's state directory. Watch setup
// is best-effort: on any failure the event source degrades to polling alone.
func newStateWatcher(ctx context.Context, kick chan<- struct{}) *fsnotify.Watcher {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil
	}
	dir := filepath.Join(home, "Library", "Application Support", "iTerm2")
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Events:
				if !ok {
					return
				}
				select {
				case kick <- struct{}{}:
				default:
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return watcher
}

func (p *Provider) pollLoop(ctx context.Context, ch chan<- provider.Notification, kick <-chan struct{}, watcher *fsnotify.Watcher) {
	defer close(ch)
	if watcher != nil {
		defer watcher.Close()
	}

	gate := newThrottle(bridgeThrottle)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	var prev session.Snapshot
	var primed bool

	poll := func() {
		gate.wait()
		next, err := p.Snapshot(ctx)
		if err != nil {
			logging.Error(err)
			return
		}
		if !primed {
			prev = next
			primed = true
			return
		}
		for _, note := range diffSnapshots(prev, next) {
			select {
			case ch <- note:
			case <-ctx.Done():
				return
			case <-p.done:
				return
			}
		}
		prev = next
	}

	poll()
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.done:
			return
		case <-ticker.C:
			poll()
		case <-kick:
			poll()
		}
	}
}

// diffSnapshots reduces two consecutive snapshots to typed notifications.
// Reasons carry no ordering guarantee relative to one another.
func diffSnapshots(prev, next session.Snapshot) []provider.Notification {
	prevRows := indexRows(session.Project(prev))
	nextRows := indexRows(session.Project(next))

	var notes []provider.Notification
	for id := range nextRows {
		if _, ok := prevRows[id]; !ok {
			notes = append(notes, provider.Notification{Reason: provider.ReasonNewSession, SessionID: id})
		}
	}
	for id := range prevRows {
		if _, ok := nextRows[id]; !ok {
			notes = append(notes, provider.Notification{Reason: provider.ReasonTerminateSession, SessionID: id})
		}
	}
	if prev.ActiveSessionID != next.ActiveSessionID {
		notes = append(notes, provider.Notification{Reason: provider.ReasonFocusChange, SessionID: next.ActiveSessionID})
	}
	for id, nextRow := range nextRows {
		prevRow, ok := prevRows[id]
		if !ok {
			continue
		}
		if prevRow.WindowID != nextRow.WindowID || prevRow.TabID != nextRow.TabID ||
			prevRow.WindowIndex != nextRow.WindowIndex || prevRow.TabIndex != nextRow.TabIndex {
			notes = append(notes, provider.Notification{Reason: provider.ReasonLayoutChange, SessionID: id})
			continue
		}
		if prevRow.Name != nextRow.Name || prevRow.WorkingDirectory != nextRow.WorkingDirectory ||
			prevRow.CommandLine != nextRow.CommandLine {
			notes = append(notes, provider.Notification{Reason: provider.ReasonVariableChange, SessionID: id})
		}
	}
	return notes
}

func indexRows(rows []session.Row) map[string]session.Row {
	m := make(map[string]session.Row, len(rows))
	for _, row := range rows {
		m[row.SessionID] = row
	}
	return m
}
