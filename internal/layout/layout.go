// Package layout describes a set of pages and the widgets on them, loaded from
// TOML or YAML.
package layout

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/atomicstack/touch-widgets/internal/geom"
	"github.com/atomicstack/touch-widgets/internal/gesture"
	"github.com/atomicstack/touch-widgets/internal/menu"
	"github.com/atomicstack/touch-widgets/internal/rgb565"
	"github.com/atomicstack/touch-widgets/internal/wire"
)

// Pager kinds.
const (
	KindDots    = "dots"
	KindSidebar = "sidebar"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid layout")

// Layout is a complete scene description.
type Layout struct {
	Pager   Pager    `toml:"pager" yaml:"pager"`
	Buttons []Button `toml:"buttons" yaml:"buttons"`
}

// Pager selects the pager flavour and its pages.
type Pager struct {
	Kind  string `toml:"kind" yaml:"kind"`
	Pages int    `toml:"pages" yaml:"pages"`
	First int    `toml:"first" yaml:"first"`
	Fill  string `toml:"fill" yaml:"fill"`
	Side  Side   `toml:"side" yaml:"side"`
}

// Side styles the panels of a sidebar pager.
type Side struct {
	Width  int    `toml:"width" yaml:"width"`
	Color  string `toml:"color" yaml:"color"`
	Border string `toml:"border" yaml:"border"`
}

// Button places one button on a page. A button with menu items becomes the
// trigger of a drop-down menu.
type Button struct {
	Page      int        `toml:"page" yaml:"page"`
	Rect      []int      `toml:"rect" yaml:"rect"`
	Label     string     `toml:"label" yaml:"label"`
	Scale     int        `toml:"scale" yaml:"scale"`
	Priority  int        `toml:"priority" yaml:"priority"`
	Outline   string     `toml:"outline" yaml:"outline"`
	Fill      string     `toml:"fill" yaml:"fill"`
	Text      string     `toml:"text" yaml:"text"`
	Highlight string     `toml:"highlight" yaml:"highlight"`
	Menu      []MenuItem `toml:"menu" yaml:"menu"`
}

// MenuItem is one row of a button's menu.
type MenuItem struct {
	Label    string `toml:"label" yaml:"label"`
	Disabled bool   `toml:"disabled" yaml:"disabled"`
	Checked  bool   `toml:"checked" yaml:"checked"`
	// Toggle flips Checked each time the row is chosen.
	Toggle bool `toml:"toggle" yaml:"toggle"`
}

// Format is a layout file encoding.
type Format int

const (
	TOML Format = iota
	YAML
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return 0, fmt.Errorf("unknown layout extension %q", filepath.Ext(path))
	}
}

// Load reads, parses and validates a layout file.
func Load(path string) (*Layout, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout: %w", err)
	}
	l, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Parse decodes and validates a layout.
func Parse(data []byte, format Format) (*Layout, error) {
	var l Layout
	switch format {
	case TOML:
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&l)
		if err != nil {
			return nil, fmt.Errorf("failed to parse layout: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%w: unknown key %s", ErrInvalid, undecoded[0])
		}
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&l); err != nil {
			return nil, fmt.Errorf("failed to parse layout: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown layout format %d", format)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Validate checks page counts, slot numbers, rectangles and colors.
func (l *Layout) Validate() error {
	p := l.Pager
	if p.Kind == "" {
		l.Pager.Kind = KindDots
		p.Kind = KindDots
	}
	if p.Kind != KindDots && p.Kind != KindSidebar {
		return invalid("pager kind %q", p.Kind)
	}
	if p.Pages < 1 || p.Pages >= wire.None {
		return invalid("pager needs between 1 and %d pages, got %d", wire.None-1, p.Pages)
	}
	if p.First < 0 || p.First >= p.Pages {
		return invalid("first page %d outside 0..%d", p.First, p.Pages-1)
	}
	if p.Kind == KindSidebar && p.Side.Width <= 0 {
		return invalid("sidebar width must be positive")
	}
	for _, c := range []string{p.Fill, p.Side.Color, p.Side.Border} {
		if err := checkColor(c); err != nil {
			return err
		}
	}

	type slot struct{ page, priority int }
	seen := make(map[slot]int)
	for i, b := range l.Buttons {
		where := fmt.Sprintf("button %d (%q)", i, b.Label)
		if b.Page < 0 || b.Page >= p.Pages {
			return invalid("%s: page %d outside 0..%d", where, b.Page, p.Pages-1)
		}
		if len(b.Rect) != 4 || b.Rect[2] <= 0 || b.Rect[3] <= 0 {
			return invalid("%s: rect must be [x, y, w, h] with positive size", where)
		}
		if b.Priority < 0 || b.Priority >= gesture.MaxPriority {
			return invalid("%s: priority %d outside 0..%d", where, b.Priority, gesture.MaxPriority-1)
		}
		if prev, ok := seen[slot{b.Page, b.Priority}]; ok {
			return invalid("%s: priority %d already used by button %d", where, b.Priority, prev)
		}
		seen[slot{b.Page, b.Priority}] = i
		if len(b.Menu) > menu.MaxItems {
			return invalid("%s: %d menu items, at most %d", where, len(b.Menu), menu.MaxItems)
		}
		for _, c := range []string{b.Outline, b.Fill, b.Text, b.Highlight} {
			if err := checkColor(c); err != nil {
				return fmt.Errorf("%s: %w", where, err)
			}
		}
	}
	return nil
}

// ButtonsOn returns the buttons placed on page, in file order.
func (l *Layout) ButtonsOn(page int) []Button {
	var out []Button
	for _, b := range l.Buttons {
		if b.Page == page {
			out = append(out, b)
		}
	}
	return out
}

// Area returns the button's rectangle.
func (b Button) Area() geom.Rect {
	if len(b.Rect) != 4 {
		return geom.Rect{}
	}
	return geom.R(b.Rect[0], b.Rect[1], b.Rect[2], b.Rect[3])
}

// Color parses s, falling back to def when s is empty. Layouts are validated
// on load, so a parse failure here also yields def.
func Color(s string, def rgb565.Color) rgb565.Color {
	if s == "" {
		return def
	}
	c, err := rgb565.Parse(s)
	if err != nil {
		return def
	}
	return c
}

func checkColor(s string) error {
	if s == "" {
		return nil
	}
	if _, err := rgb565.Parse(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}
