package widget

import (
	"testing"

	"github.com/atomicstack/touch-widgets/internal/geom"
	"github.com/atomicstack/touch-widgets/internal/gesture"
	"github.com/atomicstack/touch-widgets/internal/rgb565"
	"github.com/atomicstack/touch-widgets/internal/testutil"
)

var testStyle = Style{Outline: rgb565.White, Fill: rgb565.Blue, Text: rgb565.Yellow}

func TestClampLabel(t *testing.T) {
	cases := []struct {
		in    string
		limit int
		want  string
	}{
		{"Settings", 9, "Settings"},
		{"Preferences", 9, "Preferenc"},
		{"日本語テキスト", 5, "日本"},
		{"anything", 0, ""},
	}
	for _, tc := range cases {
		if got := ClampLabel(tc.in, tc.limit); got != tc.want {
			t.Fatalf("ClampLabel(%q, %d) = %q, expected %q", tc.in, tc.limit, got, tc.want)
		}
	}
}

func TestButtonRegistersAndReleasesTapRegion(t *testing.T) {
	d := gesture.NewDetector()
	var taps []gesture.Event
	b := NewButton(d, nil)
	b.Init(geom.R(10, 10, 40, 20), testStyle, "Go", 1, gesture.HandlerFunc(func(ev gesture.Event) {
		taps = append(taps, ev)
	}), 3)

	if !d.Registered(3) || b.MenuTrigger() {
		t.Fatalf("expected tap region at priority 3")
	}
	d.Feed(gesture.Sample{Phase: gesture.PhaseDown, Pos: geom.Point{X: 15, Y: 15}})
	d.Feed(gesture.Sample{Phase: gesture.PhaseUp, Pos: geom.Point{X: 15, Y: 15}})
	if len(taps) != 2 {
		t.Fatalf("expected headless button to still receive taps, got %d", len(taps))
	}

	b.Destroy()
	b.Destroy()
	if d.Registered(3) {
		t.Fatalf("expected destroy to cancel the region")
	}
	if d.Violations() != 0 {
		t.Fatalf("expected exactly one cancel, got %d violations", d.Violations())
	}
}

func TestMenuTriggerLeavesSlotAlone(t *testing.T) {
	d := gesture.NewDetector()
	d.OnTap(4, geom.Anywhere, gesture.HandlerFunc(func(gesture.Event) {}))
	b := NewButton(d, nil)
	b.Init(geom.R(0, 0, 10, 10), testStyle, "Menu", 1, nil, 4)
	if !b.MenuTrigger() {
		t.Fatalf("expected nil handler to mark a menu trigger")
	}
	b.Destroy()
	if !d.Registered(4) {
		t.Fatalf("menu trigger must not cancel the slot its menu owns")
	}
}

func TestDrawCentersLabelWithBaselineCorrection(t *testing.T) {
	r := testutil.NewRenderer(320, 240)
	b := NewButton(gesture.NewDetector(), r)
	b.Init(geom.R(20, 40, 100, 30), testStyle, "Play", 2, gesture.HandlerFunc(func(gesture.Event) {}), 0)
	b.Draw()

	ops := r.Ops()
	if len(ops) != 3 {
		t.Fatalf("expected fill, outline and text, got %v", ops)
	}
	if ops[0].Name != "fillRoundRect" || ops[0].Radius != 7 || ops[1].Name != "drawRoundRect" {
		t.Fatalf("expected rounded rect with radius 7, got %v", ops[:2])
	}
	// "Play" at scale 2 is 48x16 with a 14 px ascent.
	text := ops[2]
	if text.Rect.X != 20+50-24 {
		t.Fatalf("expected x %d, got %d", 46, text.Rect.X)
	}
	if text.Rect.Y != 40+15-8+14 {
		t.Fatalf("expected baseline y %d, got %d", 61, text.Rect.Y)
	}
	if text.Color != rgb565.Yellow {
		t.Fatalf("expected text color yellow")
	}
}

func TestMenuTriggerDrawsSquare(t *testing.T) {
	r := testutil.NewRenderer(320, 240)
	b := NewButton(gesture.NewDetector(), r)
	b.Init(geom.R(0, 0, 60, 20), testStyle, "File", 1, nil, 1)
	b.Draw()
	if r.Count("fillRect") != 1 || r.Count("drawRect") != 1 || r.Count("fillRoundRect") != 0 {
		t.Fatalf("expected square drawing, got %v", r.Ops())
	}
}

func TestSetTextAndColorRedraw(t *testing.T) {
	r := testutil.NewRenderer(320, 240)
	b := NewButton(gesture.NewDetector(), r)
	b.Init(geom.R(0, 0, 60, 20), testStyle, "One", 1, gesture.HandlerFunc(func(gesture.Event) {}), 1)
	b.SetText("Two, and more")
	if b.Label() != "Two, and " {
		t.Fatalf("expected label truncated to 9 cells, got %q", b.Label())
	}
	texts := r.Texts()
	if len(texts) != 1 || texts[0] != "Two, and " {
		t.Fatalf("expected redraw with new label, got %v", texts)
	}
	b.SetColor(Style{Outline: rgb565.Red, Fill: rgb565.Black, Text: rgb565.Green})
	if r.Count("text") != 2 || r.Filter("fillRoundRect")[1].Color != rgb565.Black {
		t.Fatalf("expected redraw with new fill")
	}
}

func TestReinitReplacesRegionWithoutViolation(t *testing.T) {
	d := gesture.NewDetector()
	b := NewButton(d, nil)
	h := gesture.HandlerFunc(func(gesture.Event) {})
	b.Init(geom.R(0, 0, 5, 5), testStyle, "", 1, h, 2)
	b.Init(geom.R(5, 5, 5, 5), testStyle, "", 1, h, 2)
	if d.Violations() != 0 || !d.Registered(2) {
		t.Fatalf("expected clean rebind, got %d violations", d.Violations())
	}
}
