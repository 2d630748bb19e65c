// Package gfx declares the drawing surface widgets paint on.
package gfx

import (
	"github.com/atomicstack/touch-widgets/internal/geom"
	"github.com/atomicstack/touch-widgets/internal/rgb565"
)

// Renderer draws primitives and reports text metrics for one display.
//
// TextBounds returns the box a string would cover when drawn with its glyph
// origin at (x, y). Fonts that draw from the baseline report a box starting
// above y; callers use y - bounds.Y to convert a top edge into a glyph origin.
type Renderer interface {
	Width() int
	Height() int
	FillRect(r geom.Rect, c rgb565.Color)
	DrawRect(r geom.Rect, c rgb565.Color)
	FillRoundRect(r geom.Rect, radius int, c rgb565.Color)
	DrawRoundRect(r geom.Rect, radius int, c rgb565.Color)
	FillCircle(center geom.Point, radius int, c rgb565.Color)
	DrawCircle(center geom.Point, radius int, c rgb565.Color)
	TextBounds(s string, x, y, scale int) geom.Rect
	DrawText(s string, x, y int, c rgb565.Color, scale int)
}

// Screen returns the full display rectangle.
func Screen(r Renderer) geom.Rect {
	return geom.R(0, 0, r.Width(), r.Height())
}

// Markers drawn in a menu's left column.
const (
	MarkerUp    = "▲"
	MarkerDown  = "▼"
	MarkerCheck = "✓"
)
