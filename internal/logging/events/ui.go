package events

import "github.com/atomicstack/touch-widgets/internal/logging"

type MenuTracer struct{}

type PagerTracer struct{}

type HostTracer struct{}

var (
	Menu  = MenuTracer{}
	Pager = PagerTracer{}
	Host  = HostTracer{}
)

func (MenuTracer) Open(slot int, items int) {
	logging.Trace("menu.open", map[string]interface{}{"slot": slot, "items": items})
}

func (MenuTracer) Busy(slot int) {
	logging.Trace("menu.busy", map[string]interface{}{"slot": slot})
}

func (MenuTracer) Highlight(slot, item, first int) {
	logging.Trace("menu.highlight", map[string]interface{}{"slot": slot, "item": item, "first": first})
}

func (MenuTracer) Close(slot int, code string) {
	logging.Trace("menu.close", map[string]interface{}{"slot": slot, "code": code})
}

func (PagerTracer) Transition(code string) {
	logging.Trace("pager.transition", map[string]interface{}{"code": code})
}

func (PagerTracer) Absorbed(page, dx int) {
	logging.Trace("pager.absorbed", map[string]interface{}{"page": page, "dx": dx})
}

func (HostTracer) Sample(phase string, x, y int) {
	logging.Trace("host.sample", map[string]interface{}{"phase": phase, "x": x, "y": y})
}

func (HostTracer) Key(key string) {
	logging.Trace("host.key", map[string]interface{}{"key": key})
}
