package events

import "github.com/hollowbyte/it2jump/internal/logging"

type SessionTracer struct{}

var Session = SessionTracer{}

func (SessionTracer) Activate(sessionID, label string) {
	logging.Trace("session.activate", map[string]interface{}{"target": sessionID, "label": label})
}

func (SessionTracer) ActivateFailed(sessionID string, err error) {
	logging.Trace("session.activate.failed", map[string]interface{}{"target": sessionID, "error": err.Error()})
}

func (SessionTracer) Select(index int, sessionID string) {
	logging.Trace("session.select", map[string]interface{}{"index": index, "target": sessionID})
}
