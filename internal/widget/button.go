// Package widget holds the persistent touch widgets that menus and pagers
// build on.
package widget

import (
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/touch-widgets/internal/geom"
	"github.com/atomicstack/touch-widgets/internal/gesture"
	"github.com/atomicstack/touch-widgets/internal/gfx"
	"github.com/atomicstack/touch-widgets/internal/rgb565"
)

// LabelCells is the longest button label, in display cells.
const LabelCells = 9

// ClampLabel cuts s down to limit display cells. Wide runes that would straddle
// the limit are dropped and no ellipsis is added.
func ClampLabel(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	return truncate.String(s, uint(limit))
}

// Style holds the three colors of a button or menu.
type Style struct {
	Outline rgb565.Color
	Fill    rgb565.Color
	Text    rgb565.Color
}

// Button is a labelled rectangle with one tap region.
//
// A Button created without a tap handler is a menu trigger: it registers
// nothing, and the Menu attached to it owns the slot instead. A Button
// without a renderer draws nothing but still receives taps.
type Button struct {
	binder gesture.Binder
	r      gfx.Renderer

	rect        geom.Rect
	style       Style
	label       string
	scale       int
	priority    int
	menuTrigger bool
	bound       bool
}

// NewButton returns an uninitialised button. r may be nil.
func NewButton(binder gesture.Binder, r gfx.Renderer) *Button {
	return &Button{binder: binder, r: r}
}

// Init places the button and registers onTap at priority. A nil onTap makes
// the button a menu trigger.
func (b *Button) Init(rect geom.Rect, style Style, label string, scale int, onTap gesture.Handler, priority int) {
	if b.bound {
		b.binder.Cancel(b.priority)
		b.bound = false
	}
	b.rect = rect
	b.style = style
	b.label = ClampLabel(label, LabelCells)
	b.scale = max(scale, 1)
	b.priority = priority
	b.menuTrigger = onTap == nil
	if onTap != nil {
		b.binder.OnTap(priority, rect, onTap)
		b.bound = true
	}
}

// Destroy cancels the button's tap region. Menu triggers leave the slot to
// their menu.
func (b *Button) Destroy() {
	if !b.bound {
		return
	}
	b.binder.Cancel(b.priority)
	b.bound = false
}

// Draw paints the button.
func (b *Button) Draw() {
	if b.r == nil {
		return
	}
	if b.menuTrigger {
		// Square corners line up with the menu that drops below.
		b.r.FillRect(b.rect, b.style.Fill)
		b.r.DrawRect(b.rect, b.style.Outline)
	} else {
		radius := min(b.rect.W, b.rect.H) / 4
		b.r.FillRoundRect(b.rect, radius, b.style.Fill)
		b.r.DrawRoundRect(b.rect, radius, b.style.Outline)
	}
	if b.label == "" {
		return
	}
	x, y := CenterText(b.r, b.label, b.rect, b.scale)
	b.r.DrawText(b.label, x, y, b.style.Text, b.scale)
}

// CenterText returns the glyph origin that centers s inside area.
func CenterText(r gfx.Renderer, s string, area geom.Rect, scale int) (int, int) {
	bounds := r.TextBounds(s, area.X, area.Y, scale)
	x := area.X + area.W/2 - bounds.W/2
	y := area.Y + area.H/2 - bounds.H/2 + (area.Y - bounds.Y)
	return x, y
}

// SetText replaces the label and redraws.
func (b *Button) SetText(label string) {
	b.label = ClampLabel(label, LabelCells)
	b.Draw()
}

// SetColor replaces the colors and redraws.
func (b *Button) SetColor(style Style) {
	b.style = style
	b.Draw()
}

func (b *Button) Rect() geom.Rect   { return b.rect }
func (b *Button) Priority() int     { return b.priority }
func (b *Button) Label() string     { return b.label }
func (b *Button) Scale() int        { return b.scale }
func (b *Button) Style() Style      { return b.style }
func (b *Button) MenuTrigger() bool { return b.menuTrigger }

// Renderer returns the renderer the button draws with, possibly nil.
func (b *Button) Renderer() gfx.Renderer { return b.r }
