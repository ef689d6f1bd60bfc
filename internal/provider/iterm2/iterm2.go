// Package iterm2 adapts the iTerm2 automation surface to the provider
// contract. All host communication goes through osascript JXA bridge scripts;
// the heterogeneous field names of the host API never leak past this package.
package iterm2

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hollowbyte/it2jump/internal/provider"
	"github.com/hollowbyte/it2jump/internal/session"
)

// Provider drives iTerm2 through its scripting interface.
type Provider struct {
	pollInterval time.Duration

	closeOnce sync.Once
	done      chan struct{}
}

// Option tweaks provider construction.
type Option func(*Provider)

// WithPollInterval overrides how often the event source re-inspects the host.
func WithPollInterval(interval time.Duration) Option {
	return func(p *Provider) {
		if interval > 0 {
			p.pollInterval = interval
		}
	}
}

// New constructs a provider without probing the host. Use Detect for the
// startup path that must distinguish a missing environment.
func New(opts ...Option) *Provider {
	p := &Provider{
		pollInterval: defaultPollInterval,
		done:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Detect verifies that the host automation environment is usable: osascript
// on PATH, macOS, and a running iTerm2. Failures wrap
// provider.ErrUnavailable, the fatal-at-startup case.
func Detect(ctx context.Context, opts ...Option) (*Provider, error) {
	if runtime.GOOS != "darwin" {
		return nil, fmt.Errorf("%w: iTerm2 automation requires macOS (detected %s)", provider.ErrUnavailable, runtime.GOOS)
	}
	if _, err := lookPath("osascript"); err != nil {
		return nil, fmt.Errorf("%w: osascript not found on PATH", provider.ErrUnavailable)
	}
	out, err := runScript(ctx, runningScript)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", provider.ErrUnavailable, err)
	}
	if out != "true" {
		return nil, fmt.Errorf("%w: iTerm2 is not running", provider.ErrUnavailable)
	}
	return New(opts...), nil
}

// Snapshot captures the full window/tab/session tree in one bridge call.
func (p *Provider) Snapshot(ctx context.Context) (session.Snapshot, error) {
	out, err := runScript(ctx, snapshotScript)
	if err != nil {
		return session.Snapshot{}, fmt.Errorf("snapshot: %w", err)
	}
	return parseSnapshot([]byte(out))
}

// ActivateSession brings the named session, its tab, and its window to the
// foreground.
func (p *Provider) ActivateSession(ctx context.Context, sessionID string) error {
	script := fmt.Sprintf(activateScriptTemplate, quoteJS(sessionID))
	out, err := runScript(ctx, script)
	if err != nil {
		return fmt.Errorf("activate session: %w", err)
	}
	if out != "true" {
		return &provider.NotFoundError{SessionID: sessionID}
	}
	return nil
}

// SelectPane moves focus to the adjacent pane via the host's split-pane menu.
// A disabled menu item means no pane exists in that direction.
func (p *Provider) SelectPane(ctx context.Context, dir provider.Direction) (bool, error) {
	title, ok := paneMenuTitles[dir]
	if !ok {
		return false, fmt.Errorf("select pane: unknown direction %v", dir)
	}
	script := fmt.Sprintf(selectPaneScriptTemplate, quoteJS(title))
	out, err := runScript(ctx, script)
	if err != nil {
		return false, fmt.Errorf("select pane: %w", err)
	}
	return out == "true", nil
}

// Close releases the provider's background resources. Safe to call more than
// once and on every exit path.
func (p *Provider) Close() error {
	p.closeOnce.Do(func() {
		close(p.done)
	})
	return nil
}

var paneMenuTitles = map[provider.Direction]string{
	provider.Left:  "Select Pane Left",
	provider.Down:  "Select Pane Below",
	provider.Up:    "Select Pane Above",
	provider.Right: "Select Pane Right",
}

// quoteJS renders s as a JavaScript string literal.
func quoteJS(s string) string {
	return fmt.Sprintf("%q", s)
}

// parseSnapshot decodes bridge JSON into the snapshot model, probing each
// object for the known field-name variants. Windows and tabs missing an id
// receive a generated one so downstream identity checks stay meaningful.
func parseSnapshot(data []byte) (session.Snapshot, error) {
	var root map[string]interface{}
	if err := json.Unmarshal(data, &root); err != nil {
		return session.Snapshot{}, fmt.Errorf("snapshot: malformed bridge output: %w", err)
	}

	snap := session.Snapshot{
		ActiveSessionID: stringField(root, activeSessionKeys),
	}
	for wi, wv := range listField(root, windowListKeys) {
		w, ok := asObject(wv)
		if !ok {
			continue
		}
		window := session.Window{
			ID:    stringField(w, windowIDKeys),
			Index: intField(w, windowIndexKeys, wi+1),
		}
		if window.ID == "" {
			window.ID = uuid.NewString()
		}
		for ti, tv := range listField(w, tabListKeys) {
			t, ok := asObject(tv)
			if !ok {
				continue
			}
			tab := session.Tab{
				ID:    stringField(t, tabIDKeys),
				Index: intField(t, tabIndexKeys, ti+1),
			}
			if tab.ID == "" {
				tab.ID = uuid.NewString()
			}
			for _, sv := range listField(t, sessionListKeys) {
				s, ok := asObject(sv)
				if !ok {
					continue
				}
				id := stringField(s, sessionIDKeys)
				if id == "" {
					// A session without an id cannot be activated;
					// drop it rather than fabricate an identity.
					continue
				}
				tab.Sessions = append(tab.Sessions, session.Session{
					ID:               id,
					Name:             stringField(s, nameKeys),
					WorkingDirectory: stringField(s, workingDirKeys),
					CommandLine:      stringField(s, commandKeys),
				})
			}
			window.Tabs = append(window.Tabs, tab)
		}
		snap.Windows = append(snap.Windows, window)
	}
	return snap, nil
}
