package gesture

import (
	"github.com/atomicstack/touch-widgets/internal/geom"
	"github.com/atomicstack/touch-widgets/internal/logging/events"
)

// target remembers a binding chosen earlier in a touch sequence. The
// generation guards against delivering to a slot that was cancelled and then
// rebound by another owner in the meantime.
type target struct {
	band *band
	slot int
	gen  uint64
}

func (t target) live() (*binding, bool) {
	if t.band == nil {
		return nil, false
	}
	b := &t.band.slots[t.slot]
	if !b.active || b.gen != t.gen {
		return nil, false
	}
	return b, true
}

// Detector is the gesture registry. It is not safe for concurrent use; feed it
// from the single loop that owns the widgets.
type Detector struct {
	widgets *band
	system  *band
	overlay *band
	lease   *Overlay

	gen        uint64
	violations int

	down  bool
	start geom.Point
	last  geom.Point
	tap   target
	drag  target
}

var _ Registry = (*Detector)(nil)

// NewDetector returns an empty registry.
func NewDetector() *Detector {
	d := &Detector{}
	d.widgets = newBand("widget", MaxPriority, d)
	d.system = newBand("system", SystemSlots, d)
	d.overlay = newBand("overlay", OverlaySlots, d)
	return d
}

func (d *Detector) OnTap(slot int, area geom.Rect, h Handler) {
	d.widgets.OnTap(slot, area, h)
}

func (d *Detector) OnDrag(slot int, area geom.Rect, h Handler) {
	d.widgets.OnDrag(slot, area, h)
}

func (d *Detector) OnSwipe(slot int, area geom.Rect, h Handler, axis Axis, minDistance int) {
	d.widgets.OnSwipe(slot, area, h, axis, minDistance)
}

func (d *Detector) Cancel(slot int) {
	d.widgets.Cancel(slot)
}

func (d *Detector) Registered(slot int) bool {
	return d.widgets.Registered(slot)
}

func (d *Detector) System() Binder {
	return d.system
}

func (d *Detector) AcquireOverlay() (*Overlay, bool) {
	if d.lease != nil {
		return nil, false
	}
	d.lease = &Overlay{band: d.overlay}
	events.Gesture.Overlay(true)
	return d.lease, true
}

func (d *Detector) OverlayActive() bool {
	return d.lease != nil
}

// Violations counts contract breaches seen so far: rebinding a live slot,
// cancelling an idle one, out-of-range slots and use of a released overlay.
func (d *Detector) Violations() int {
	return d.violations
}

// Bound returns the number of live regions across all bands.
func (d *Detector) Bound() int {
	n := 0
	for _, b := range d.tiers() {
		for i := range b.slots {
			if b.slots[i].active {
				n++
			}
		}
	}
	return n
}

func (d *Detector) violation(reason, band string, slot int) {
	d.violations++
	events.Gesture.Violation(reason, band, slot)
}

func (d *Detector) tiers() [3]*band {
	return [3]*band{d.overlay, d.system, d.widgets}
}

func (d *Detector) find(kind Kind, p geom.Point) (target, bool) {
	for _, b := range d.tiers() {
		for slot := len(b.slots) - 1; slot >= 0; slot-- {
			if b.slots[slot].matches(kind, p) {
				return target{band: b, slot: slot, gen: b.slots[slot].gen}, true
			}
		}
	}
	return target{}, false
}

func (d *Detector) findSwipe(start, delta geom.Point) (target, geom.Point, bool) {
	for _, b := range d.tiers() {
		for slot := len(b.slots) - 1; slot >= 0; slot-- {
			bd := &b.slots[slot]
			if !bd.matches(Swipe, start) {
				continue
			}
			if v, ok := qualifies(bd.axis, bd.minDistance, delta); ok {
				return target{band: b, slot: slot, gen: bd.gen}, v, true
			}
		}
	}
	return target{}, geom.Point{}, false
}

// qualifies applies a swipe region's axis and distance constraints and returns
// the delta as the handler should see it.
func qualifies(axis Axis, minDistance int, delta geom.Point) (geom.Point, bool) {
	ax, ay := abs(delta.X), abs(delta.Y)
	switch axis {
	case AxisHorizontal:
		return geom.Point{X: delta.X}, ax >= minDistance && ax > ay
	case AxisVertical:
		return geom.Point{Y: delta.Y}, ay >= minDistance && ay > ax
	default:
		return delta, max(ax, ay) >= minDistance
	}
}

func (d *Detector) deliver(t target, ev Event) {
	b, ok := t.live()
	if !ok {
		return
	}
	ev.Slot = t.slot
	events.Gesture.Dispatch(t.band.name, t.slot, ev.Kind.String(), ev.Released)
	b.handler.OnGesture(ev)
}

// Feed advances recognition by one raw sample and dispatches whatever events
// it completes. Handlers run synchronously and may bind or cancel regions.
func (d *Detector) Feed(s Sample) {
	switch s.Phase {
	case PhaseDown:
		d.press(s.Pos)
	case PhaseMove:
		d.move(s.Pos)
	case PhaseUp:
		d.release(s.Pos)
	}
}

func (d *Detector) press(p geom.Point) {
	if d.down {
		// The lift for the previous touch never arrived.
		d.release(d.last)
	}
	d.down = true
	d.start, d.last = p, p
	d.tap, d.drag = target{}, target{}
	if t, ok := d.find(Tap, p); ok {
		d.tap = t
		d.deliver(t, Event{Kind: Tap, Pos: p})
	}
}

func (d *Detector) move(p geom.Point) {
	if !d.down {
		return
	}
	d.last = p
	if _, ok := d.drag.live(); !ok {
		d.drag = target{}
		if t, ok := d.find(Drag, d.start); ok {
			d.drag = t
		}
	}
	d.deliver(d.drag, Event{Kind: Drag, Pos: d.start, Delta: p.Sub(d.start)})
}

func (d *Detector) release(p geom.Point) {
	if !d.down {
		return
	}
	d.down = false
	d.last = p
	tap, drag := d.tap, d.drag
	d.tap, d.drag = target{}, target{}

	delta := p.Sub(d.start)
	if _, ok := drag.live(); ok {
		d.deliver(drag, Event{Kind: Drag, Released: true, Pos: d.start, Delta: delta})
		return
	}
	if t, v, ok := d.findSwipe(d.start, delta); ok {
		d.deliver(t, Event{Kind: Swipe, Released: true, Pos: d.start, Delta: v})
		return
	}
	d.deliver(tap, Event{Kind: Tap, Released: true, Pos: p})
}

// Pressed reports whether a touch is in progress.
func (d *Detector) Pressed() bool {
	return d.down
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
