package gesture

import (
	"github.com/atomicstack/touch-widgets/internal/geom"
	"github.com/atomicstack/touch-widgets/internal/logging/events"
)

type binding struct {
	active      bool
	kind        Kind
	area        geom.Rect
	handler     Handler
	axis        Axis
	minDistance int
	gen         uint64
}

func (b *binding) matches(kind Kind, p geom.Point) bool {
	return b.active && b.kind == kind && b.area.Contains(p)
}

// band is a fixed table of slots sharing one dispatch tier.
type band struct {
	name  string
	slots []binding
	d     *Detector
}

func newBand(name string, size int, d *Detector) *band {
	return &band{name: name, slots: make([]binding, size), d: d}
}

func (b *band) valid(slot int) bool {
	if slot < 0 || slot >= len(b.slots) {
		b.d.violation("range", b.name, slot)
		return false
	}
	return true
}

func (b *band) bind(slot int, nb binding) {
	if !b.valid(slot) {
		return
	}
	if nb.handler == nil {
		b.d.violation("nil-handler", b.name, slot)
		return
	}
	if b.slots[slot].active {
		b.d.violation("rebind", b.name, slot)
	}
	b.d.gen++
	nb.active = true
	nb.gen = b.d.gen
	b.slots[slot] = nb
	events.Gesture.Bind(b.name, slot, nb.kind.String())
}

func (b *band) OnTap(slot int, area geom.Rect, h Handler) {
	b.bind(slot, binding{kind: Tap, area: area, handler: h})
}

func (b *band) OnDrag(slot int, area geom.Rect, h Handler) {
	b.bind(slot, binding{kind: Drag, area: area, handler: h})
}

func (b *band) OnSwipe(slot int, area geom.Rect, h Handler, axis Axis, minDistance int) {
	b.bind(slot, binding{kind: Swipe, area: area, handler: h, axis: axis, minDistance: max(minDistance, 1)})
}

func (b *band) Cancel(slot int) {
	if !b.valid(slot) {
		return
	}
	if !b.slots[slot].active {
		b.d.violation("idle-cancel", b.name, slot)
		return
	}
	b.slots[slot] = binding{}
	events.Gesture.Cancel(b.name, slot)
}

func (b *band) Registered(slot int) bool {
	return slot >= 0 && slot < len(b.slots) && b.slots[slot].active
}

func (b *band) cancelAll() {
	for slot := range b.slots {
		if b.slots[slot].active {
			b.slots[slot] = binding{}
			events.Gesture.Cancel(b.name, slot)
		}
	}
}

// Overlay is the lease on the overlay band. Only one exists at a time; an open
// menu holds it and every transient region it binds goes through it.
type Overlay struct {
	band     *band
	released bool
}

func (o *Overlay) usable(slot int) bool {
	if o.released {
		o.band.d.violation("stale-overlay", o.band.name, slot)
		return false
	}
	return true
}

func (o *Overlay) OnTap(slot int, area geom.Rect, h Handler) {
	if o.usable(slot) {
		o.band.OnTap(slot, area, h)
	}
}

func (o *Overlay) OnDrag(slot int, area geom.Rect, h Handler) {
	if o.usable(slot) {
		o.band.OnDrag(slot, area, h)
	}
}

func (o *Overlay) OnSwipe(slot int, area geom.Rect, h Handler, axis Axis, minDistance int) {
	if o.usable(slot) {
		o.band.OnSwipe(slot, area, h, axis, minDistance)
	}
}

func (o *Overlay) Cancel(slot int) {
	if o.usable(slot) {
		o.band.Cancel(slot)
	}
}

func (o *Overlay) Registered(slot int) bool {
	return !o.released && o.band.Registered(slot)
}

// Release cancels every overlay region and frees the lease. Calling it again
// is a no-op.
func (o *Overlay) Release() {
	if o.released {
		return
	}
	o.band.cancelAll()
	o.released = true
	if o.band.d.lease == o {
		o.band.d.lease = nil
	}
	events.Gesture.Overlay(false)
}

// Released reports whether Release has run.
func (o *Overlay) Released() bool {
	return o.released
}
