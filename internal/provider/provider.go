// Package provider defines the contract between the picker core and the
// terminal-emulator automation layer that supplies session topology and
// accepts focus commands.
package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/hollowbyte/it2jump/internal/session"
)

// ErrUnavailable reports that the host automation API is missing, disabled,
// or unauthorized. Fatal at startup, surfaced as status text afterwards.
var ErrUnavailable = errors.New("session provider unavailable")

// NotFoundError reports an activation target that vanished between selection
// and activation.
type NotFoundError struct {
	SessionID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("session not found: %s", e.SessionID)
}

// Direction names an adjacent-pane movement inside the current tab.
type Direction int

const (
	Left Direction = iota
	Down
	Up
	Right
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Down:
		return "down"
	case Up:
		return "up"
	case Right:
		return "right"
	}
	return "unknown"
}

// Reason classifies a change notification. No ordering is guaranteed between
// distinct reasons.
type Reason string

const (
	ReasonLayoutChange     Reason = "layout_change"
	ReasonFocusChange      Reason = "focus_change"
	ReasonNewSession       Reason = "new_session"
	ReasonTerminateSession Reason = "terminate_session"
	ReasonPrompt           Reason = "prompt"
	ReasonVariableChange   Reason = "variable_change"
)

// Notification is one external change event. SessionID is set when the change
// can be attributed to a single session.
type Notification struct {
	Reason    Reason
	SessionID string
}

// Provider is the external automation surface the picker drives. All calls
// may block on IPC to the host application and honour context cancellation.
type Provider interface {
	// Snapshot captures the current window/tab/session tree wholesale.
	Snapshot(ctx context.Context) (session.Snapshot, error)

	// ActivateSession brings the named session to the foreground. Returns a
	// *NotFoundError when the id no longer exists.
	ActivateSession(ctx context.Context, sessionID string) error

	// SelectPane moves focus to an adjacent pane in the current tab. A false
	// return means no pane exists in that direction; it is not an error.
	SelectPane(ctx context.Context, dir Direction) (bool, error)

	// Events returns change notifications until ctx is cancelled, at which
	// point the channel is closed. Termination is always caller-driven.
	Events(ctx context.Context) (<-chan Notification, error)

	// Close releases any subscriptions the provider holds.
	Close() error
}
