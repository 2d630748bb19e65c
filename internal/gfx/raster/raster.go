// Package raster implements gfx.Renderer on an in-memory RGBA image. It backs
// snapshot output and pixel-level tests.
package raster

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/atomicstack/touch-widgets/internal/geom"
	"github.com/atomicstack/touch-widgets/internal/rgb565"
)

// Canvas is a raster display.
type Canvas struct {
	img  *image.RGBA
	face font.Face
}

// New allocates a black canvas of the given size.
func New(width, height int) *Canvas {
	return &Canvas{
		img:  image.NewRGBA(image.Rect(0, 0, width, height)),
		face: basicfont.Face7x13,
	}
}

func (c *Canvas) Width() int  { return c.img.Bounds().Dx() }
func (c *Canvas) Height() int { return c.img.Bounds().Dy() }

// Image exposes the backing image.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// At returns the packed color at a pixel.
func (c *Canvas) At(x, y int) rgb565.Color {
	px := c.img.RGBAAt(x, y)
	return rgb565.Pack(px.R, px.G, px.B)
}

// WritePNG encodes the canvas.
func (c *Canvas) WritePNG(w io.Writer) error {
	if err := png.Encode(w, c.img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func (c *Canvas) FillRect(r geom.Rect, col rgb565.Color) {
	if r.Empty() {
		return
	}
	dst := image.Rect(r.X, r.Y, r.Right(), r.Bottom()).Intersect(c.img.Bounds())
	draw.Draw(c.img, dst, image.NewUniform(col.RGBA()), image.Point{}, draw.Src)
}

func (c *Canvas) DrawRect(r geom.Rect, col rgb565.Color) {
	if r.Empty() {
		return
	}
	c.FillRect(geom.R(r.X, r.Y, r.W, 1), col)
	c.FillRect(geom.R(r.X, r.Bottom()-1, r.W, 1), col)
	c.FillRect(geom.R(r.X, r.Y, 1, r.H), col)
	c.FillRect(geom.R(r.Right()-1, r.Y, 1, r.H), col)
}

func (c *Canvas) FillRoundRect(r geom.Rect, radius int, col rgb565.Color) {
	radius = clampRadius(r, radius)
	if radius == 0 {
		c.FillRect(r, col)
		return
	}
	c.FillRect(geom.R(r.X+radius, r.Y, r.W-2*radius, r.H), col)
	c.FillRect(geom.R(r.X, r.Y+radius, radius, r.H-2*radius), col)
	c.FillRect(geom.R(r.Right()-radius, r.Y+radius, radius, r.H-2*radius), col)
	for _, ctr := range corners(r, radius) {
		c.FillCircle(ctr, radius, col)
	}
}

func (c *Canvas) DrawRoundRect(r geom.Rect, radius int, col rgb565.Color) {
	radius = clampRadius(r, radius)
	if radius == 0 {
		c.DrawRect(r, col)
		return
	}
	c.FillRect(geom.R(r.X+radius, r.Y, r.W-2*radius, 1), col)
	c.FillRect(geom.R(r.X+radius, r.Bottom()-1, r.W-2*radius, 1), col)
	c.FillRect(geom.R(r.X, r.Y+radius, 1, r.H-2*radius), col)
	c.FillRect(geom.R(r.Right()-1, r.Y+radius, 1, r.H-2*radius), col)
	cs := corners(r, radius)
	c.arc(cs[0], radius, -1, -1, col)
	c.arc(cs[1], radius, 1, -1, col)
	c.arc(cs[2], radius, -1, 1, col)
	c.arc(cs[3], radius, 1, 1, col)
}

func (c *Canvas) FillCircle(center geom.Point, radius int, col rgb565.Color) {
	for dy := -radius; dy <= radius; dy++ {
		dx := isqrt(radius*radius - dy*dy)
		c.FillRect(geom.R(center.X-dx, center.Y+dy, 2*dx+1, 1), col)
	}
}

func (c *Canvas) DrawCircle(center geom.Point, radius int, col rgb565.Color) {
	for _, sx := range []int{-1, 1} {
		for _, sy := range []int{-1, 1} {
			c.arc(center, radius, sx, sy, col)
		}
	}
}

// arc plots one quadrant of a circle outline; sx and sy select the quadrant.
func (c *Canvas) arc(center geom.Point, radius, sx, sy int, col rgb565.Color) {
	rgba := col.RGBA()
	x, y := radius, 0
	d := 1 - radius
	for x >= y {
		c.img.SetRGBA(center.X+sx*x, center.Y+sy*y, rgba)
		c.img.SetRGBA(center.X+sx*y, center.Y+sy*x, rgba)
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

func (c *Canvas) TextBounds(s string, x, y, scale int) geom.Rect {
	scale = max(scale, 1)
	b := c.bounds(s)
	return geom.R(x+b.Min.X*scale, y+b.Min.Y*scale, b.Dx()*scale, b.Dy()*scale)
}

func (c *Canvas) DrawText(s string, x, y int, col rgb565.Color, scale int) {
	if s == "" {
		return
	}
	scale = max(scale, 1)
	b := c.bounds(s)
	if b.Empty() {
		return
	}
	glyphs := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	d := font.Drawer{
		Dst:  glyphs,
		Src:  image.NewUniform(col.RGBA()),
		Face: c.face,
		Dot:  fixed.P(-b.Min.X, -b.Min.Y),
	}
	d.DrawString(s)
	dst := image.Rect(x+b.Min.X*scale, y+b.Min.Y*scale, x+b.Max.X*scale, y+b.Max.Y*scale)
	draw.NearestNeighbor.Scale(c.img, dst, glyphs, glyphs.Bounds(), draw.Over, nil)
}

// bounds returns the unscaled glyph box relative to the drawing origin.
func (c *Canvas) bounds(s string) image.Rectangle {
	fb, _ := font.BoundString(c.face, s)
	return image.Rect(fb.Min.X.Floor(), fb.Min.Y.Floor(), fb.Max.X.Ceil(), fb.Max.Y.Ceil())
}

func corners(r geom.Rect, radius int) [4]geom.Point {
	left, right := r.X+radius, r.Right()-1-radius
	top, bottom := r.Y+radius, r.Bottom()-1-radius
	return [4]geom.Point{{X: left, Y: top}, {X: right, Y: top}, {X: left, Y: bottom}, {X: right, Y: bottom}}
}

func clampRadius(r geom.Rect, radius int) int {
	limit := (min(r.W, r.H) - 1) / 2
	if radius > limit {
		radius = limit
	}
	return max(radius, 0)
}

func isqrt(n int) int {
	if n <= 0 {
		return 0
	}
	x := 0
	for (x+1)*(x+1) <= n {
		x++
	}
	return x
}
