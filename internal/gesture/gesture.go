// Package gesture turns raw touch samples into tap, drag and swipe events and
// routes them to registered regions by priority.
//
// Regions live in three bands. The widget band holds ordinary widgets, indexed
// by priority 0..MaxPriority-1. The system band holds the pager's swipe and
// indicator regions. The overlay band belongs to whoever holds the single
// Overlay lease (an open menu). Dispatch always tries the overlay band first,
// then the system band, then widgets; inside a band higher slots win.
package gesture

import (
	"fmt"

	"github.com/atomicstack/touch-widgets/internal/geom"
)

const (
	// MaxPriority bounds the widget band.
	MaxPriority = 32
	// SystemSlots is the size of the system band.
	SystemSlots = 2
	// OverlaySlots is the size of the overlay band.
	OverlaySlots = 4
)

// Kind identifies a gesture.
type Kind int

const (
	Tap Kind = iota
	Drag
	Swipe
)

func (k Kind) String() string {
	switch k {
	case Tap:
		return "tap"
	case Drag:
		return "drag"
	case Swipe:
		return "swipe"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Axis constrains swipe recognition.
type Axis int

const (
	AxisFree Axis = iota
	AxisHorizontal
	AxisVertical
)

// Event is delivered to a Handler.
//
// Tap events arrive twice: once on touch down with Released false and once on
// lift with Released true. Drag events report the touch-down point in Pos and
// the accumulated movement in Delta; the last one has Released set. Swipe
// events arrive once, on lift.
type Event struct {
	Kind     Kind
	Released bool
	Slot     int
	Pos      geom.Point
	Delta    geom.Point
}

// Handler receives gesture events for a region.
type Handler interface {
	OnGesture(ev Event)
}

// HandlerFunc adapts a function, typically a method value, to Handler.
type HandlerFunc func(ev Event)

func (f HandlerFunc) OnGesture(ev Event) { f(ev) }

// Binder registers and cancels regions in one band. Pass geom.Anywhere to
// match every point; an empty area matches none.
type Binder interface {
	OnTap(slot int, area geom.Rect, h Handler)
	OnDrag(slot int, area geom.Rect, h Handler)
	OnSwipe(slot int, area geom.Rect, h Handler, axis Axis, minDistance int)
	Cancel(slot int)
	Registered(slot int) bool
}

// Registry is the full surface widgets depend on.
type Registry interface {
	Binder
	// System returns the band reserved for pagers.
	System() Binder
	// AcquireOverlay hands out the overlay band. It fails while another
	// lease is outstanding.
	AcquireOverlay() (*Overlay, bool)
	// OverlayActive reports whether an overlay lease is outstanding.
	OverlayActive() bool
}

// Phase is the state of a raw touch sample.
type Phase int

const (
	PhaseDown Phase = iota
	PhaseMove
	PhaseUp
)

func (p Phase) String() string {
	switch p {
	case PhaseDown:
		return "down"
	case PhaseMove:
		return "move"
	case PhaseUp:
		return "up"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// ParsePhase is the inverse of Phase.String.
func ParsePhase(s string) (Phase, error) {
	switch s {
	case "down":
		return PhaseDown, nil
	case "move":
		return PhaseMove, nil
	case "up":
		return PhaseUp, nil
	default:
		return 0, fmt.Errorf("unknown phase %q", s)
	}
}

// Sample is one raw reading from the touch panel.
type Sample struct {
	Phase Phase
	Pos   geom.Point
}
