package testutil

import (
	"fmt"
	"unicode/utf8"

	"github.com/atomicstack/touch-widgets/internal/geom"
	"github.com/atomicstack/touch-widgets/internal/rgb565"
)

// Metrics of the fake font used by Renderer: fixed-width glyphs whose origin
// sits on the baseline, like the custom fonts on real panels.
const (
	GlyphWidth  = 6
	GlyphHeight = 8
	GlyphAscent = 7
)

// Op is one recorded drawing call.
type Op struct {
	Name   string
	Rect   geom.Rect
	Center geom.Point
	Radius int
	Color  rgb565.Color
	Text   string
	Scale  int
}

func (o Op) String() string {
	switch o.Name {
	case "text":
		return fmt.Sprintf("text %q @%d,%d %#04x", o.Text, o.Rect.X, o.Rect.Y, uint16(o.Color))
	case "fillCircle", "drawCircle":
		return fmt.Sprintf("%s @%d,%d r%d %#04x", o.Name, o.Center.X, o.Center.Y, o.Radius, uint16(o.Color))
	default:
		return fmt.Sprintf("%s %d,%d %dx%d %#04x", o.Name, o.Rect.X, o.Rect.Y, o.Rect.W, o.Rect.H, uint16(o.Color))
	}
}

// Renderer records drawing calls for assertions.
type Renderer struct {
	W, H int
	ops  []Op
}

// NewRenderer returns a recorder for a display of the given size.
func NewRenderer(w, h int) *Renderer {
	return &Renderer{W: w, H: h}
}

func (r *Renderer) Width() int  { return r.W }
func (r *Renderer) Height() int { return r.H }

func (r *Renderer) record(op Op) {
	r.ops = append(r.ops, op)
}

func (r *Renderer) FillRect(rect geom.Rect, c rgb565.Color) {
	r.record(Op{Name: "fillRect", Rect: rect, Color: c})
}

func (r *Renderer) DrawRect(rect geom.Rect, c rgb565.Color) {
	r.record(Op{Name: "drawRect", Rect: rect, Color: c})
}

func (r *Renderer) FillRoundRect(rect geom.Rect, radius int, c rgb565.Color) {
	r.record(Op{Name: "fillRoundRect", Rect: rect, Radius: radius, Color: c})
}

func (r *Renderer) DrawRoundRect(rect geom.Rect, radius int, c rgb565.Color) {
	r.record(Op{Name: "drawRoundRect", Rect: rect, Radius: radius, Color: c})
}

func (r *Renderer) FillCircle(center geom.Point, radius int, c rgb565.Color) {
	r.record(Op{Name: "fillCircle", Center: center, Radius: radius, Color: c})
}

func (r *Renderer) DrawCircle(center geom.Point, radius int, c rgb565.Color) {
	r.record(Op{Name: "drawCircle", Center: center, Radius: radius, Color: c})
}

func (r *Renderer) TextBounds(s string, x, y, scale int) geom.Rect {
	scale = max(scale, 1)
	return geom.R(x, y-GlyphAscent*scale, utf8.RuneCountInString(s)*GlyphWidth*scale, GlyphHeight*scale)
}

func (r *Renderer) DrawText(s string, x, y int, c rgb565.Color, scale int) {
	r.record(Op{Name: "text", Rect: geom.R(x, y, 0, 0), Text: s, Color: c, Scale: scale})
}

// Ops returns the recorded calls.
func (r *Renderer) Ops() []Op {
	return r.ops
}

// Reset forgets recorded calls.
func (r *Renderer) Reset() {
	r.ops = nil
}

// Count returns how many calls used the given name.
func (r *Renderer) Count(name string) int {
	n := 0
	for _, op := range r.ops {
		if op.Name == name {
			n++
		}
	}
	return n
}

// Filter returns the calls with the given name.
func (r *Renderer) Filter(name string) []Op {
	var out []Op
	for _, op := range r.ops {
		if op.Name == name {
			out = append(out, op)
		}
	}
	return out
}

// Texts returns the strings drawn, in order.
func (r *Renderer) Texts() []string {
	var out []string
	for _, op := range r.ops {
		if op.Name == "text" {
			out = append(out, op.Text)
		}
	}
	return out
}
