// Package menu implements the drop-down menu attached to a trigger button.
//
// A menu opens on the trigger's tap-down and tracks the finger through the
// registry's overlay band until the touch lifts, then reports one packed code
// through its callback. Only one menu is open at a time: opening requires the
// registry's single overlay lease.
package menu

import (
	"github.com/atomicstack/touch-widgets/internal/geom"
	"github.com/atomicstack/touch-widgets/internal/gesture"
	"github.com/atomicstack/touch-widgets/internal/gfx"
	"github.com/atomicstack/touch-widgets/internal/logging/events"
	"github.com/atomicstack/touch-widgets/internal/rgb565"
	"github.com/atomicstack/touch-widgets/internal/widget"
	"github.com/atomicstack/touch-widgets/internal/wire"
)

// Overlay slots held while the menu is open, highest priority first.
const (
	slotAnchorDrag = 3
	slotItemTap    = 2
	slotItemDrag   = 1
	slotCancel     = 0
)

// State is the externally visible menu state.
type State int

const (
	Closed State = iota
	OpenNoSelection
	OpenHighlighted
)

func (s State) String() string {
	switch s {
	case OpenNoSelection:
		return "open"
	case OpenHighlighted:
		return "highlighted"
	default:
		return "closed"
	}
}

// Style holds the menu colors. Disabled text is drawn in the average of Fill
// and Text.
type Style struct {
	Outline   rgb565.Color
	Fill      rgb565.Color
	Highlight rgb565.Color
	Text      rgb565.Color
}

// Menu is a drop-down list of up to MaxItems rows below an anchor button.
type Menu struct {
	reg gesture.Registry
	r   gfx.Renderer

	anchor   *widget.Button
	style    Style
	disabled rgb565.Color
	callback wire.Callback
	priority int
	scale    int

	rect         geom.Rect
	emW, emH     int
	itemHeight   int
	items        items
	first        int
	displayed    int
	maxDisplayed int

	highlighted int
	drawnFirst  int
	armed       bool
	overlay     *gesture.Overlay
}

// New returns an uninitialised menu. r may be nil, in which case nothing is
// drawn and the screen height does not limit the visible rows.
func New(reg gesture.Registry, r gfx.Renderer) *Menu {
	return &Menu{reg: reg, r: r, highlighted: -1}
}

// AnyOpen reports whether some menu currently holds the registry's overlay.
func AnyOpen(reg gesture.Registry) bool {
	return reg.OverlayActive()
}

// Init attaches the menu below anchor. The anchor should be a menu trigger,
// built without its own tap handler. priority is the widget slot the menu
// listens on and the outgoing byte of every code it reports.
func (m *Menu) Init(anchor *widget.Button, style Style, cb wire.Callback, priority int) {
	m.Destroy()

	ar := anchor.Rect()
	m.anchor = anchor
	m.style = style
	m.disabled = rgb565.Average(style.Fill, style.Text)
	m.callback = cb
	m.priority = priority
	m.scale = anchor.Scale()
	m.rect = geom.R(ar.X, ar.Bottom(), 0, 0)
	m.items.reset()
	m.first, m.displayed = 0, 0
	m.highlighted, m.drawnFirst = -1, 0

	m.emW, m.emH = 0, 0
	if m.r != nil {
		em := m.r.TextBounds("M", 0, 0, m.scale)
		m.emW, m.emH = em.W, em.H
	} else {
		// Without a font the rows take the anchor's width.
		m.rect.W = ar.W
	}
	m.itemHeight = max(ar.H, 2*m.emH, 1)
	m.maxDisplayed = MaxItems
	if m.r != nil {
		m.maxDisplayed = max(1, (m.r.Height()-m.rect.Y)/m.itemHeight)
	}
}

// SetItem defines row i. The first call arms the anchor. Indices outside
// [0, MaxItems) are ignored.
func (m *Menu) SetItem(i int, label string, enabled, checked bool) {
	item := Item{
		Label:   widget.ClampLabel(label, LabelCells),
		Enabled: enabled,
		Checked: checked,
	}
	item.Width = 3 * m.emW
	if m.r != nil {
		item.Width += m.r.TextBounds(item.Label, 0, 0, m.scale).W
	}
	if !m.items.put(i, item) {
		return
	}
	m.displayed = min(m.items.len(), m.maxDisplayed)

	if item.Width > m.rect.W {
		m.rect.W = item.Width
		if m.r != nil && m.rect.X+m.rect.W >= m.r.Width() {
			m.rect.X = max(0, m.r.Width()-m.rect.W-1)
		}
	}
	m.rect.H = m.displayed * m.itemHeight

	if !m.armed && m.anchor != nil {
		m.reg.OnTap(m.priority, m.anchor.Rect(), gesture.HandlerFunc(m.onAnchor))
		m.armed = true
	}
}

// EnableItem changes whether row i can be selected.
func (m *Menu) EnableItem(i int, enabled bool) {
	m.items.update(i, func(it *Item) { it.Enabled = enabled })
}

// CheckItem changes whether row i shows a check mark.
func (m *Menu) CheckItem(i int, checked bool) {
	m.items.update(i, func(it *Item) { it.Checked = checked })
}

// Destroy cancels the anchor's tap region and, if the menu is open, drops the
// overlay without reporting anything.
func (m *Menu) Destroy() {
	m.release()
	if m.armed {
		m.reg.Cancel(m.priority)
		m.armed = false
	}
}

func (m *Menu) IsOpen() bool { return m.overlay != nil }

func (m *Menu) State() State {
	switch {
	case m.overlay == nil:
		return Closed
	case m.highlighted < 0:
		return OpenNoSelection
	default:
		return OpenHighlighted
	}
}

func (m *Menu) Len() int                { return m.items.len() }
func (m *Menu) Item(i int) (Item, bool) { return m.items.at(i) }
func (m *Menu) Rect() geom.Rect         { return m.rect }
func (m *Menu) Priority() int           { return m.priority }
func (m *Menu) Highlighted() int        { return m.highlighted }
func (m *Menu) First() int              { return m.first }
func (m *Menu) Displayed() int          { return m.displayed }
func (m *Menu) MaxDisplayed() int       { return m.maxDisplayed }
func (m *Menu) ItemHeight() int         { return m.itemHeight }

// Close cancels an open menu and reports None as the selection.
func (m *Menu) Close() {
	if m.overlay == nil {
		return
	}
	m.finish(-1)
}

// Choose selects row i as if it had been tapped, whether or not the menu is
// open. Disabled or missing rows report None.
func (m *Menu) Choose(i int) {
	it, ok := m.items.at(i)
	if !ok || !it.Enabled {
		i = -1
	}
	m.finish(i)
}

func (m *Menu) onAnchor(ev gesture.Event) {
	if ev.Released || m.overlay != nil || m.items.len() == 0 {
		return
	}
	lease, ok := m.reg.AcquireOverlay()
	if !ok {
		events.Menu.Busy(m.priority)
		return
	}
	m.overlay = lease
	m.highlighted = -1
	m.Draw(-1)

	lease.OnDrag(slotAnchorDrag, m.anchor.Rect(), gesture.HandlerFunc(m.onDrag))
	lease.OnTap(slotItemTap, m.rect, gesture.HandlerFunc(m.onTrack))
	lease.OnDrag(slotItemDrag, m.rect, gesture.HandlerFunc(m.onDrag))
	lease.OnTap(slotCancel, geom.Anywhere, gesture.HandlerFunc(m.onCancel))
	events.Menu.Open(m.priority, m.items.len())
}

// onDrag turns the drag's start and offset into the finger's position.
func (m *Menu) onDrag(ev gesture.Event) {
	ev.Pos = ev.Pos.Add(ev.Delta)
	m.onTrack(ev)
}

func (m *Menu) onTrack(ev gesture.Event) {
	if ev.Released {
		m.finish(m.pick(ev.Pos, false))
		return
	}
	m.drawIfChanged(m.pick(ev.Pos, true))
}

func (m *Menu) onCancel(gesture.Event) {
	m.finish(-1)
}

// pick maps p to a selectable row, or -1 outside the menu or on a disabled
// row. With scroll set, resting on the first or last visible row moves the
// window one row further in that direction.
func (m *Menu) pick(p geom.Point, scroll bool) int {
	if m.displayed == 0 {
		return -1
	}
	if p.X < m.rect.X || p.X > m.rect.Right() || p.Y < m.rect.Y || p.Y > m.rect.Bottom() {
		return -1
	}
	row := min((p.Y-m.rect.Y)/m.itemHeight, m.displayed-1)
	i := m.first + row
	if scroll {
		if row == 0 && m.first > 0 {
			m.first--
			i--
		} else if row == m.displayed-1 && i < m.items.len()-1 {
			m.first++
			i++
		}
	}
	if m.items.list[i].Enabled {
		return i
	}
	return -1
}

func (m *Menu) drawIfChanged(item int) {
	if item == m.highlighted && m.first == m.drawnFirst {
		return
	}
	m.Draw(item)
	m.highlighted = item
	events.Menu.Highlight(m.priority, item, m.first)
}

// finish drops the overlay and then reports item. The anchor stays armed so
// the next tap reopens the menu; only Destroy cancels it.
func (m *Menu) finish(item int) {
	m.release()
	code := wire.Encode(m.priority, item)
	events.Menu.Close(m.priority, code.String())
	if m.callback != nil {
		m.callback(code)
	}
}

func (m *Menu) release() {
	if m.overlay == nil {
		return
	}
	m.overlay.Release()
	m.overlay = nil
	m.highlighted = -1
}

// Draw paints the visible rows with highlight filled in the highlight color.
func (m *Menu) Draw(highlight int) {
	m.drawnFirst = m.first
	if m.r == nil {
		return
	}
	y := m.rect.Y
	last := m.first + m.displayed - 1
	for i := m.first; i <= last; i++ {
		it := m.items.list[i]
		fill := m.style.Fill
		if i == highlight {
			fill = m.style.Highlight
		}
		m.r.FillRect(geom.R(m.rect.X, y, m.rect.W, m.itemHeight), fill)

		color := m.style.Text
		if !it.Enabled {
			color = m.disabled
		}
		b := m.r.TextBounds(it.Label, m.rect.X, y, m.scale)
		textY := y + m.itemHeight/2 - b.H/2 + (y - b.Y)

		// Scroll arrows take the place of a check mark.
		marker := ""
		switch {
		case i == m.first && m.first > 0:
			marker = gfx.MarkerUp
		case i == last && i < m.items.len()-1:
			marker = gfx.MarkerDown
		case it.Checked:
			marker = gfx.MarkerCheck
		}
		if marker != "" {
			m.r.DrawText(marker, m.rect.X+m.emW/2, textY, color, m.scale)
		}
		m.r.DrawText(it.Label, m.rect.X+2*m.emW, textY, color, m.scale)
		y += m.itemHeight
	}
	m.r.DrawRect(m.rect, m.style.Outline)
}
