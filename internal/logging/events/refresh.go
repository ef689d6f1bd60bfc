package events

import "github.com/hollowbyte/it2jump/internal/logging"

type RefreshTracer struct{}

var Refresh = RefreshTracer{}

func (RefreshTracer) Notify(reason string) {
	logging.Trace("refresh.notify", map[string]interface{}{"reason": reason})
}

func (RefreshTracer) Applied(rows int) {
	logging.Trace("refresh.applied", map[string]interface{}{"rows": rows})
}

func (RefreshTracer) Failed(err error) {
	logging.Trace("refresh.failed", map[string]interface{}{"error": err.Error()})
}

type FilterTracer struct{}

var Filter = FilterTracer{}

func (FilterTracer) Changed(query string, matches int) {
	logging.Trace("filter.changed", map[string]interface{}{"query": query, "matches": matches})
}

func (FilterTracer) Cleared() {
	logging.Trace("filter.cleared", nil)
}
