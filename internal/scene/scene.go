// Package scene builds the widgets a layout describes and swaps them as the
// pager changes page.
package scene

import (
	"github.com/atomicstack/touch-widgets/internal/gesture"
	"github.com/atomicstack/touch-widgets/internal/gfx"
	"github.com/atomicstack/touch-widgets/internal/layout"
	"github.com/atomicstack/touch-widgets/internal/menu"
	"github.com/atomicstack/touch-widgets/internal/pager"
	"github.com/atomicstack/touch-widgets/internal/rgb565"
	"github.com/atomicstack/touch-widgets/internal/widget"
	"github.com/atomicstack/touch-widgets/internal/wire"
)

// HistorySize is how many activities a scene remembers.
const HistorySize = 8

// Activity kinds.
const (
	KindPage   = "page"
	KindMenu   = "menu"
	KindButton = "button"
)

// Activity is one thing that happened in the scene: a page transition, a
// menu result or a button tap.
type Activity struct {
	Kind  string
	Code  wire.Code
	Slot  int
	Label string
}

type switcher interface {
	GotoPage(page int)
	Destroy()
	Repaint()
	Current() int
	Pages() int
	Live() bool
}

type entry struct {
	spec   layout.Button
	button *widget.Button
	menu   *menu.Menu
}

// Scene owns the pager and the widgets of the page on display.
type Scene struct {
	layout  *layout.Layout
	reg     gesture.Registry
	r       gfx.Renderer
	metrics pager.Metrics

	pager   switcher
	page    int
	entries []entry
	toggles map[int][]bool

	history  []Activity
	listener func(Activity)
}

// New prepares a scene. Nothing is bound or drawn until Start.
func New(l *layout.Layout, reg gesture.Registry, r gfx.Renderer, m pager.Metrics) *Scene {
	return &Scene{
		layout:  l,
		reg:     reg,
		r:       r,
		metrics: m,
		page:    wire.None,
		toggles: make(map[int][]bool),
	}
}

// OnActivity registers fn to hear about every activity as it happens.
func (s *Scene) OnActivity(fn func(Activity)) {
	s.listener = fn
}

// Start creates the pager, which shows the first page.
func (s *Scene) Start() {
	p := s.layout.Pager
	fill := layout.Color(p.Fill, rgb565.Black)
	switch p.Kind {
	case layout.KindSidebar:
		sp := pager.NewSidebar(s.reg, s.r, s.metrics)
		s.pager = sp
		side := pager.Side{
			Width:  p.Side.Width,
			Color:  layout.Color(p.Side.Color, rgb565.DarkGrey),
			Border: layout.Color(p.Side.Border, rgb565.White),
		}
		sp.Init(p.Pages, p.First, side, s.onPage, fill)
	default:
		dp := pager.NewDots(s.reg, s.r, s.metrics)
		s.pager = dp
		dp.Init(p.Pages, p.First, s.onPage, fill)
	}
}

// Stop destroys the pager, which tears the current page down.
func (s *Scene) Stop() {
	if s.pager != nil {
		s.pager.Destroy()
	}
}

// Page returns the page on display, or wire.None.
func (s *Scene) Page() int { return s.page }

// Pages returns the number of pages, or 0 before Start.
func (s *Scene) Pages() int {
	if s.pager == nil {
		return 0
	}
	return s.pager.Pages()
}

// GotoPage switches page directly.
func (s *Scene) GotoPage(page int) {
	if s.pager != nil {
		s.pager.GotoPage(page)
	}
}

// History returns the most recent activities, oldest first.
func (s *Scene) History() []Activity {
	return append([]Activity(nil), s.history...)
}

// OpenMenu returns the open menu on the current page, if any.
func (s *Scene) OpenMenu() *menu.Menu {
	for _, e := range s.entries {
		if e.menu != nil && e.menu.IsOpen() {
			return e.menu
		}
	}
	return nil
}

// CloseMenu cancels the open menu. It reports whether one was open.
func (s *Scene) CloseMenu() bool {
	m := s.OpenMenu()
	if m == nil {
		return false
	}
	m.Close()
	return true
}

// Buttons returns the buttons on the current page.
func (s *Scene) Buttons() []*widget.Button {
	out := make([]*widget.Button, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.button)
	}
	return out
}

// Redraw paints the current page and its widgets again, erasing any menu.
func (s *Scene) Redraw() {
	if s.pager == nil || !s.pager.Live() {
		return
	}
	if s.r != nil {
		s.r.FillRect(gfx.Screen(s.r), layout.Color(s.layout.Pager.Fill, rgb565.Black))
	}
	s.pager.Repaint()
	for _, e := range s.entries {
		e.button.Draw()
	}
}

func (s *Scene) onPage(code wire.Code) {
	s.teardown()
	s.page = code.Incoming()
	if s.page != wire.None {
		s.build(s.page)
	}
	s.record(Activity{Kind: KindPage, Code: code})
}

func (s *Scene) teardown() {
	for _, e := range s.entries {
		if e.menu != nil {
			e.menu.Destroy()
		}
		e.button.Destroy()
	}
	s.entries = nil
}

func (s *Scene) build(page int) {
	for i, spec := range s.layout.Buttons {
		if spec.Page != page {
			continue
		}
		style := widget.Style{
			Outline: layout.Color(spec.Outline, rgb565.White),
			Fill:    layout.Color(spec.Fill, rgb565.Blue),
			Text:    layout.Color(spec.Text, rgb565.White),
		}
		e := entry{spec: spec, button: widget.NewButton(s.reg, s.r)}
		if len(spec.Menu) == 0 {
			e.button.Init(spec.Area(), style, spec.Label, spec.Scale, s.tapHandler(spec), spec.Priority)
		} else {
			e.button.Init(spec.Area(), style, spec.Label, spec.Scale, nil, spec.Priority)
			e.menu = s.buildMenu(i, spec, e.button, style)
		}
		e.button.Draw()
		s.entries = append(s.entries, e)
	}
}

func (s *Scene) buildMenu(index int, spec layout.Button, anchor *widget.Button, style widget.Style) *menu.Menu {
	checked, ok := s.toggles[index]
	if !ok {
		checked = make([]bool, len(spec.Menu))
		for i, item := range spec.Menu {
			checked[i] = item.Checked
		}
		s.toggles[index] = checked
	}

	m := menu.New(s.reg, s.r)
	m.Init(anchor, menu.Style{
		Outline:   style.Outline,
		Fill:      style.Fill,
		Highlight: layout.Color(spec.Highlight, rgb565.Cyan),
		Text:      style.Text,
	}, func(code wire.Code) { s.onMenu(index, spec, code) }, spec.Priority)
	for i, item := range spec.Menu {
		m.SetItem(i, item.Label, !item.Disabled, checked[i])
	}
	return m
}

func (s *Scene) onMenu(index int, spec layout.Button, code wire.Code) {
	act := Activity{Kind: KindMenu, Code: code, Slot: spec.Priority}
	if item := code.Incoming(); item != wire.None && item < len(spec.Menu) {
		act.Label = spec.Menu[item].Label
		if spec.Menu[item].Toggle {
			s.toggles[index][item] = !s.toggles[index][item]
			for _, e := range s.entries {
				if e.menu != nil && e.spec.Priority == spec.Priority {
					e.menu.CheckItem(item, s.toggles[index][item])
				}
			}
		}
	}
	s.Redraw()
	s.record(act)
}

func (s *Scene) tapHandler(spec layout.Button) gesture.Handler {
	return gesture.HandlerFunc(func(ev gesture.Event) {
		if !ev.Released {
			return
		}
		s.record(Activity{Kind: KindButton, Slot: spec.Priority, Label: spec.Label})
	})
}

func (s *Scene) record(a Activity) {
	s.history = append(s.history, a)
	if len(s.history) > HistorySize {
		s.history = s.history[len(s.history)-HistorySize:]
	}
	if s.listener != nil {
		s.listener(a)
	}
}
