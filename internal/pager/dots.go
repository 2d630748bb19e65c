package pager

import (
	"github.com/atomicstack/touch-widgets/internal/geom"
	"github.com/atomicstack/touch-widgets/internal/gesture"
	"github.com/atomicstack/touch-widgets/internal/gfx"
	"github.com/atomicstack/touch-widgets/internal/rgb565"
	"github.com/atomicstack/touch-widgets/internal/widget"
	"github.com/atomicstack/touch-widgets/internal/wire"
)

// DotPager shows a row of dots along the bottom edge, one per page, with the
// current page's dot filled. Tapping a dot jumps to its page.
type DotPager struct {
	*Pager
	button *widget.Button
}

// NewDots returns a dot pager drawing on r.
func NewDots(reg gesture.Registry, r gfx.Renderer, m Metrics) *DotPager {
	d := &DotPager{Pager: newPager(reg, r, m)}
	d.button = widget.NewButton(reg.System(), nil)
	d.ind = d
	return d
}

// Init shows first and reports it as entered from no page.
func (d *DotPager) Init(pages, first int, cb wire.Callback, fill rgb565.Color) {
	d.start(pages, first, cb, fill)
}

// Row returns the centre of the first dot; the rest follow at DotSize +
// DotSpacing intervals.
func (d *DotPager) Row() geom.Point {
	screen := d.screen()
	step := d.metrics.DotSize + d.metrics.DotSpacing
	return geom.Point{
		X: screen.W/2 - d.pages*step/2,
		Y: screen.H - d.metrics.DotSize - d.metrics.DotSpacing,
	}
}

func (d *DotPager) paint(show bool) {
	if d.r == nil {
		return
	}
	d.r.FillRect(d.screen(), d.fill)
	if !show {
		return
	}

	radius := d.metrics.DotSize / 2
	step := d.metrics.DotSize + d.metrics.DotSpacing
	row := d.Row()
	d.button.Init(geom.R(row.X-radius, row.Y-radius, d.pages*step, step),
		widget.Style{}, "", 1, gesture.HandlerFunc(d.onTap), slotIndicator)

	// The inverse of the page fill shows up on any background.
	color := d.fill.Invert()
	for i := 0; i < d.pages; i++ {
		center := geom.Point{X: row.X + i*step, Y: row.Y}
		if i == d.current {
			d.r.FillCircle(center, radius, color)
		} else {
			d.r.DrawCircle(center, radius, color)
		}
	}
}

func (d *DotPager) clear() {
	d.button.Destroy()
}

func (d *DotPager) onTap(ev gesture.Event) {
	if !ev.Released {
		return
	}
	rect := d.button.Rect()
	if ev.Pos.X < rect.X {
		return
	}
	step := d.metrics.DotSize + d.metrics.DotSpacing
	dot := (ev.Pos.X - rect.X) / step
	if dot != d.current && dot < d.pages {
		d.GotoPage(dot)
	}
}
