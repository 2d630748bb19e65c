package events

import "github.com/atomicstack/touch-widgets/internal/logging"

type GestureTracer struct{}

var Gesture = GestureTracer{}

func (GestureTracer) Bind(band string, slot int, kind string) {
	logging.Trace("gesture.bind", map[string]interface{}{"band": band, "slot": slot, "kind": kind})
}

func (GestureTracer) Cancel(band string, slot int) {
	logging.Trace("gesture.cancel", map[string]interface{}{"band": band, "slot": slot})
}

func (GestureTracer) Dispatch(band string, slot int, kind string, released bool) {
	logging.Trace("gesture.dispatch", map[string]interface{}{
		"band":     band,
		"slot":     slot,
		"kind":     kind,
		"released": released,
	})
}

// Violation records a registry contract breach. These are always written, even
// with tracing disabled, because they indicate a widget bookkeeping bug.
func (GestureTracer) Violation(reason, band string, slot int) {
	logging.Warn("gesture.violation", map[string]interface{}{"reason": reason, "band": band, "slot": slot})
}

func (GestureTracer) Overlay(acquired bool) {
	logging.Trace("gesture.overlay", map[string]interface{}{"acquired": acquired})
}
