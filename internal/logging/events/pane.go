package events

import "github.com/hollowbyte/it2jump/internal/logging"

type PaneTracer struct{}

var Pane = PaneTracer{}

func (PaneTracer) Move(direction string, moved bool) {
	logging.Trace("pane.move", map[string]interface{}{"direction": direction, "moved": moved})
}

func (PaneTracer) MoveFailed(direction string, err error) {
	logging.Trace("pane.move.failed", map[string]interface{}{"direction": direction, "error": err.Error()})
}
