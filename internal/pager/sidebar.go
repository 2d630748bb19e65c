package pager

import (
	"github.com/atomicstack/touch-widgets/internal/geom"
	"github.com/atomicstack/touch-widgets/internal/gesture"
	"github.com/atomicstack/touch-widgets/internal/gfx"
	"github.com/atomicstack/touch-widgets/internal/rgb565"
	"github.com/atomicstack/touch-widgets/internal/widget"
	"github.com/atomicstack/touch-widgets/internal/wire"
)

// Side describes the sidebars of a SidebarPager.
type Side struct {
	Width  int
	Color  rgb565.Color
	Border rgb565.Color
}

// SidebarPager has one full-screen main page with sidebars on either side of
// it. Pages before the main page slide in from the left edge, pages after it
// from the right. While a sidebar is showing, a tap anywhere outside it
// returns to the main page.
type SidebarPager struct {
	*Pager
	side   Side
	main   int
	cancel *widget.Button
}

// NewSidebar returns a sidebar pager drawing on r.
func NewSidebar(reg gesture.Registry, r gfx.Renderer, m Metrics) *SidebarPager {
	s := &SidebarPager{Pager: newPager(reg, r, m)}
	s.cancel = widget.NewButton(reg.System(), nil)
	s.ind = s
	return s
}

// Init makes first the main page, shows it and reports it as entered from no
// page.
func (s *SidebarPager) Init(pages, first int, side Side, cb wire.Callback, fill rgb565.Color) {
	s.side = side
	s.main = min(max(first, 0), max(pages, 1)-1)
	s.start(pages, first, cb, fill)
}

func (s *SidebarPager) Main() int  { return s.main }
func (s *SidebarPager) Side() Side { return s.side }

// Panel returns the area the current page occupies: the whole screen for the
// main page, a strip along one edge for a sidebar.
func (s *SidebarPager) Panel() geom.Rect {
	screen := s.screen()
	switch {
	case s.current < s.main:
		return geom.R(0, 0, s.side.Width, screen.H)
	case s.current > s.main:
		return geom.R(screen.W-s.side.Width-1, 0, s.side.Width, screen.H)
	default:
		return screen
	}
}

func (s *SidebarPager) paint(show bool) {
	if s.r == nil {
		return
	}
	screen := s.screen()
	panel := s.Panel()
	barH := screen.H / 3
	bar := func(x int) {
		s.r.FillRect(geom.R(x, barH, s.metrics.BarWidth, barH), s.side.Border)
	}
	leftBar := s.metrics.BarInset
	rightBar := screen.W - s.metrics.BarInset - s.metrics.BarWidth

	if s.current == s.main {
		s.cancel.Destroy()
		s.r.FillRect(screen, s.fill)
		if show && s.current > 0 {
			bar(leftBar)
		}
		if show && s.current < s.pages-1 {
			bar(rightBar)
		}
		return
	}

	s.r.FillRect(panel, s.side.Color)
	s.r.DrawRect(panel, s.side.Border)
	if show && s.current < s.main && s.current > 0 {
		bar(leftBar)
	}
	if show && s.current > s.main && s.current < s.pages-1 {
		bar(rightBar)
	}
	if !show {
		return
	}

	rest := geom.R(panel.Right(), 0, screen.W-panel.Right(), screen.H)
	if s.current > s.main {
		rest = geom.R(0, 0, panel.X, screen.H)
	}
	// A sidebar as wide as the screen leaves nothing to tap.
	if rest.Empty() {
		s.cancel.Destroy()
		return
	}
	s.cancel.Init(rest, widget.Style{}, "", 1, gesture.HandlerFunc(s.onCancel), slotIndicator)
}

func (s *SidebarPager) clear() {
	s.cancel.Destroy()
}

func (s *SidebarPager) onCancel(ev gesture.Event) {
	if ev.Released {
		s.GotoPage(s.main)
	}
}
