package events

import "github.com/atomicstack/touch-widgets/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Snapshot(path string, width, height int) {
	logging.Trace("app.snapshot", map[string]interface{}{"path": path, "width": width, "height": height})
}

func (AppTracer) Layout(path string, pages int) {
	logging.Trace("app.layout", map[string]interface{}{"path": path, "pages": pages})
}
