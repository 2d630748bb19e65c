// Package pager switches between full-screen pages with horizontal swipes.
//
// Every page change is reported as a wire.Code whose outgoing byte is the page
// being left and whose incoming byte is the page being shown. The application
// repaints the widgets of the incoming page from the callback. Pagers bind in
// the registry's system band, above page widgets and below an open menu.
package pager

import (
	"github.com/atomicstack/touch-widgets/internal/geom"
	"github.com/atomicstack/touch-widgets/internal/gesture"
	"github.com/atomicstack/touch-widgets/internal/gfx"
	"github.com/atomicstack/touch-widgets/internal/logging/events"
	"github.com/atomicstack/touch-widgets/internal/rgb565"
	"github.com/atomicstack/touch-widgets/internal/wire"
)

// System band slots.
const (
	slotIndicator = 0
	slotSwipe     = 1
)

// Metrics sizes the page indicators. Units are those of the renderer.
type Metrics struct {
	DotSize       int
	DotSpacing    int
	BarWidth      int
	BarInset      int
	SwipeDistance int
}

// DefaultMetrics suits a pixel display.
func DefaultMetrics() Metrics {
	return Metrics{DotSize: 20, DotSpacing: 12, BarWidth: 3, BarInset: 5, SwipeDistance: 3}
}

// CellMetrics suits a terminal, where one unit is a character cell.
func CellMetrics() Metrics {
	return Metrics{DotSize: 1, DotSpacing: 1, BarWidth: 1, BarInset: 1, SwipeDistance: 3}
}

// indicator paints the current page, with or without its position marker,
// and manages whatever tap region the marker needs.
type indicator interface {
	paint(show bool)
	clear()
}

// Pager holds the page state shared by every pager flavour.
type Pager struct {
	reg     gesture.Registry
	r       gfx.Renderer
	metrics Metrics
	ind     indicator

	pages    int
	current  int
	fill     rgb565.Color
	callback wire.Callback
	live     bool
}

func newPager(reg gesture.Registry, r gfx.Renderer, m Metrics) *Pager {
	return &Pager{reg: reg, r: r, metrics: m}
}

func (p *Pager) start(pages, first int, cb wire.Callback, fill rgb565.Color) {
	if p.live {
		p.unbind()
	}
	p.pages = max(pages, 1)
	p.current = min(max(first, 0), p.pages-1)
	p.callback = cb
	p.fill = fill
	p.live = true

	p.ind.paint(true)
	p.report(wire.Encode(wire.None, p.current))
	p.reg.System().OnSwipe(slotSwipe, geom.Anywhere, gesture.HandlerFunc(p.onSwipe),
		gesture.AxisHorizontal, p.metrics.SwipeDistance)
}

// GotoPage shows page and reports the transition. Pages outside the pager
// are ignored.
func (p *Pager) GotoPage(page int) {
	if !p.live || page < 0 || page >= p.pages {
		return
	}
	leaving := p.current
	p.current = page
	p.ind.paint(true)
	p.report(wire.Encode(leaving, page))
}

// Destroy paints the current page without its indicator, drops the pager's
// regions and reports the current page being left for no page. Later calls do
// nothing.
func (p *Pager) Destroy() {
	if !p.live {
		return
	}
	p.ind.paint(false)
	p.unbind()
	p.report(wire.Encode(p.current, wire.None))
}

// Repaint draws the current page and indicator again without reporting.
func (p *Pager) Repaint() {
	if p.live {
		p.ind.paint(true)
	}
}

func (p *Pager) unbind() {
	p.live = false
	p.ind.clear()
	p.reg.System().Cancel(slotSwipe)
}

func (p *Pager) onSwipe(ev gesture.Event) {
	dx := ev.Delta.X
	switch {
	case dx > 0 && p.current > 0:
		p.GotoPage(p.current - 1)
	case dx < 0 && p.current < p.pages-1:
		p.GotoPage(p.current + 1)
	default:
		events.Pager.Absorbed(p.current, dx)
	}
}

func (p *Pager) report(code wire.Code) {
	events.Pager.Transition(code.String())
	if p.callback != nil {
		p.callback(code)
	}
}

func (p *Pager) Current() int     { return p.current }
func (p *Pager) Pages() int       { return p.pages }
func (p *Pager) Live() bool       { return p.live }
func (p *Pager) Metrics() Metrics { return p.metrics }

func (p *Pager) screen() geom.Rect {
	if p.r == nil {
		return geom.Rect{}
	}
	return gfx.Screen(p.r)
}
