// Package rgb565 handles 16-bit colors packed as 5 bits red, 6 bits green and
// 5 bits blue, the native pixel format of small TFT panels.
package rgb565

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is a packed 5-6-5 color.
type Color uint16

const (
	Black   Color = 0x0000
	White   Color = 0xFFFF
	Red     Color = 0xF800
	Green   Color = 0x07E0
	Blue    Color = 0x001F
	Cyan    Color = 0x07FF
	Magenta Color = 0xF81F
	Yellow  Color = 0xFFE0
)

var (
	Grey     = Pack(0x7F, 0x7F, 0x7F)
	DarkGrey = Pack(0x3F, 0x3F, 0x3F)
)

var named = map[string]Color{
	"black":    Black,
	"white":    White,
	"red":      Red,
	"green":    Green,
	"blue":     Blue,
	"cyan":     Cyan,
	"magenta":  Magenta,
	"yellow":   Yellow,
	"grey":     Grey,
	"gray":     Grey,
	"darkgrey": DarkGrey,
	"darkgray": DarkGrey,
}

// Pack quantizes 8-bit channels into a packed color. Low bits are dropped.
func Pack(red, green, blue uint8) Color {
	return Color(uint16(red&0xF8)<<8 | uint16(green&0xFC)<<3 | uint16(blue>>3))
}

// Unpack expands c into 8-bit channels with the low bits zeroed.
func (c Color) Unpack() (red, green, blue uint8) {
	red = uint8(c>>8) & 0xF8
	green = uint8(c>>3) & 0xFC
	blue = uint8(c<<3) & 0xF8
	return red, green, blue
}

// Average returns the per-channel mean of two colors.
func Average(a, b Color) Color {
	r1, g1, b1 := a.Unpack()
	r2, g2, b2 := b.Unpack()
	return Pack(
		uint8((int(r1)+int(r2))/2),
		uint8((int(g1)+int(g2))/2),
		uint8((int(b1)+int(b2))/2),
	)
}

// Invert returns the bitwise complement, which contrasts with c on any background.
func (c Color) Invert() Color {
	return ^c
}

// RGBA converts c to an opaque image/color value, replicating the high bits into
// the dropped low bits so white stays 0xFF.
func (c Color) RGBA() color.RGBA {
	r, g, b := c.Unpack()
	return color.RGBA{R: r | r>>5, G: g | g>>6, B: b | b>>5, A: 0xFF}
}

// Hex formats c as a #rrggbb string.
func (c Color) Hex() string {
	rgba := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

// Parse accepts a color name, a #rrggbb string, or a packed value such as 0x07FF.
func Parse(s string) (Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if c, ok := named[v]; ok {
		return c, nil
	}
	if strings.HasPrefix(v, "#") && len(v) == 7 {
		n, err := strconv.ParseUint(v[1:], 16, 32)
		if err != nil {
			return 0, fmt.Errorf("parse color %q: %w", s, err)
		}
		return Pack(uint8(n>>16), uint8(n>>8), uint8(n)), nil
	}
	n, err := strconv.ParseUint(v, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color(n), nil
}
