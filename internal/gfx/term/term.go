// Package term implements gfx.Renderer on a grid of terminal cells. One display
// unit is one cell; text ignores scale because a cell cannot be magnified.
package term

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/touch-widgets/internal/geom"
	"github.com/atomicstack/touch-widgets/internal/rgb565"
)

// wideTail fills the cell covered by the right half of a double-width rune.
const wideTail rune = -1

type cell struct {
	ch rune
	fg rgb565.Color
	bg rgb565.Color
}

type frame struct {
	topLeft, topRight, bottomLeft, bottomRight rune
}

var (
	squareFrame = frame{'┌', '┐', '└', '┘'}
	roundFrame  = frame{'╭', '╮', '╰', '╯'}
)

// Canvas is a terminal display.
type Canvas struct {
	width  int
	height int
	cells  []cell
}

// New allocates a canvas cleared to black.
func New(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Resize reallocates the grid. Previous content is discarded.
func (c *Canvas) Resize(width, height int) {
	c.width = max(width, 0)
	c.height = max(height, 0)
	c.cells = make([]cell, c.width*c.height)
	c.FillRect(geom.R(0, 0, c.width, c.height), rgb565.Black)
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

func (c *Canvas) at(x, y int) *cell {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return nil
	}
	return &c.cells[y*c.width+x]
}

// Rune returns the character drawn at a cell, or 0 outside the grid.
func (c *Canvas) Rune(x, y int) rune {
	if cl := c.at(x, y); cl != nil {
		return cl.ch
	}
	return 0
}

// Background returns the fill color of a cell.
func (c *Canvas) Background(x, y int) rgb565.Color {
	if cl := c.at(x, y); cl != nil {
		return cl.bg
	}
	return rgb565.Black
}

// Foreground returns the glyph color of a cell.
func (c *Canvas) Foreground(x, y int) rgb565.Color {
	if cl := c.at(x, y); cl != nil {
		return cl.fg
	}
	return rgb565.Black
}

func (c *Canvas) FillRect(r geom.Rect, col rgb565.Color) {
	clip := r.Intersect(geom.R(0, 0, c.width, c.height))
	for y := clip.Y; y < clip.Bottom(); y++ {
		for x := clip.X; x < clip.Right(); x++ {
			cl := c.at(x, y)
			cl.ch, cl.fg, cl.bg = ' ', col, col
		}
	}
}

func (c *Canvas) DrawRect(r geom.Rect, col rgb565.Color) {
	c.frame(r, squareFrame, col)
}

// FillRoundRect fills like FillRect; cells have no sub-cell corners.
func (c *Canvas) FillRoundRect(r geom.Rect, _ int, col rgb565.Color) {
	c.FillRect(r, col)
}

func (c *Canvas) DrawRoundRect(r geom.Rect, radius int, col rgb565.Color) {
	if radius <= 0 {
		c.frame(r, squareFrame, col)
		return
	}
	c.frame(r, roundFrame, col)
}

func (c *Canvas) frame(r geom.Rect, f frame, col rgb565.Color) {
	if r.Empty() {
		return
	}
	right, bottom := r.Right()-1, r.Bottom()-1
	for x := r.X; x <= right; x++ {
		c.put(x, r.Y, '─', col)
		c.put(x, bottom, '─', col)
	}
	for y := r.Y; y <= bottom; y++ {
		c.put(r.X, y, '│', col)
		c.put(right, y, '│', col)
	}
	if r.W > 1 && r.H > 1 {
		c.put(r.X, r.Y, f.topLeft, col)
		c.put(right, r.Y, f.topRight, col)
		c.put(r.X, bottom, f.bottomLeft, col)
		c.put(right, bottom, f.bottomRight, col)
	}
}

func (c *Canvas) FillCircle(center geom.Point, radius int, col rgb565.Color) {
	if radius <= 0 {
		c.put(center.X, center.Y, '●', col)
		return
	}
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius+radius {
				c.FillRect(geom.R(center.X+dx, center.Y+dy, 1, 1), col)
			}
		}
	}
}

func (c *Canvas) DrawCircle(center geom.Point, radius int, col rgb565.Color) {
	if radius <= 0 {
		c.put(center.X, center.Y, '○', col)
		return
	}
	inner := (radius-1)*(radius-1) + radius - 1
	outer := radius*radius + radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if d := dx*dx + dy*dy; d <= outer && d > inner {
				c.put(center.X+dx, center.Y+dy, '•', col)
			}
		}
	}
}

// TextBounds reports one row of cells; text is drawn from its top-left cell.
func (c *Canvas) TextBounds(s string, x, y, _ int) geom.Rect {
	return geom.R(x, y, ansi.StringWidth(s), 1)
}

func (c *Canvas) DrawText(s string, x, y int, col rgb565.Color, _ int) {
	for _, r := range s {
		w := ansi.StringWidth(string(r))
		if w == 0 {
			continue
		}
		c.put(x, y, r, col)
		if w == 2 {
			c.put(x+1, y, wideTail, col)
		}
		x += w
	}
}

func (c *Canvas) put(x, y int, r rune, col rgb565.Color) {
	if cl := c.at(x, y); cl != nil {
		cl.ch = r
		cl.fg = col
	}
}

// Plain returns the grid as text without styling.
func (c *Canvas) Plain() string {
	var b strings.Builder
	for y := 0; y < c.height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < c.width; x++ {
			if ch := c.cells[y*c.width+x].ch; ch != wideTail {
				b.WriteRune(ch)
			}
		}
	}
	return b.String()
}

// String renders the grid with lipgloss colors, one styled run per color change.
func (c *Canvas) String() string {
	rows := make([]string, c.height)
	for y := 0; y < c.height; y++ {
		var (
			row strings.Builder
			run strings.Builder
			cur cell
		)
		flush := func() {
			if run.Len() == 0 {
				return
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(cur.fg.Hex())).
				Background(lipgloss.Color(cur.bg.Hex()))
			row.WriteString(style.Render(run.String()))
			run.Reset()
		}
		for x := 0; x < c.width; x++ {
			cl := c.cells[y*c.width+x]
			if cl.ch == wideTail {
				continue
			}
			if x == 0 || cl.fg != cur.fg || cl.bg != cur.bg {
				flush()
				cur = cl
			}
			run.WriteRune(cl.ch)
		}
		flush()
		rows[y] = row.String()
	}
	return strings.Join(rows, "\n")
}
