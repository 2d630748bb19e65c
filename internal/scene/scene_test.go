package scene

import (
	"testing"

	"github.com/atomicstack/touch-widgets/internal/geom"
	"github.com/atomicstack/touch-widgets/internal/gesture"
	"github.com/atomicstack/touch-widgets/internal/layout"
	"github.com/atomicstack/touch-widgets/internal/pager"
	"github.com/atomicstack/touch-widgets/internal/testutil"
	"github.com/atomicstack/touch-widgets/internal/wire"
)

// On a 320x240 screen the demo's buttons are 64x30 at x = 8, 80 and 152, and
// menu rows are 30 high starting at y = 31.
func startDemo(t *testing.T) (*gesture.Detector, *testutil.Renderer, *Scene) {
	t.Helper()
	d := gesture.NewDetector()
	r := testutil.NewRenderer(320, 240)
	s := New(layout.Demo(320, 240), d, r, pager.DefaultMetrics())
	s.Start()
	return d, r, s
}

func tap(d *gesture.Detector, x, y int) {
	d.Feed(gesture.Sample{Phase: gesture.PhaseDown, Pos: geom.Point{X: x, Y: y}})
	d.Feed(gesture.Sample{Phase: gesture.PhaseUp, Pos: geom.Point{X: x, Y: y}})
}

func swipe(d *gesture.Detector, dx int) {
	d.Feed(gesture.Sample{Phase: gesture.PhaseDown, Pos: geom.Point{X: 160, Y: 120}})
	d.Feed(gesture.Sample{Phase: gesture.PhaseMove, Pos: geom.Point{X: 160 + dx, Y: 120}})
	d.Feed(gesture.Sample{Phase: gesture.PhaseUp, Pos: geom.Point{X: 160 + dx, Y: 120}})
}

func last(s *Scene) Activity {
	h := s.History()
	if len(h) == 0 {
		return Activity{}
	}
	return h[len(h)-1]
}

func TestStartBuildsFirstPage(t *testing.T) {
	d, r, s := startDemo(t)
	if s.Page() != 0 || s.Pages() != 3 {
		t.Fatalf("expected page 0 of 3, got %d of %d", s.Page(), s.Pages())
	}
	if got := last(s); got.Kind != KindPage || got.Code != 0xFF00 {
		t.Fatalf("expected entry into page 0, got %+v", got)
	}
	if len(s.Buttons()) != 3 {
		t.Fatalf("expected 3 buttons, got %d", len(s.Buttons()))
	}
	for _, slot := range []int{1, 2, 4} {
		if !d.Registered(slot) {
			t.Fatalf("expected slot %d bound", slot)
		}
	}
	texts := r.Texts()
	if len(texts) != 3 || texts[0] != "File" {
		t.Fatalf("expected three labels drawn, got %v", texts)
	}
}

func TestButtonTapIsRecorded(t *testing.T) {
	d, _, s := startDemo(t)
	var heard []Activity
	s.OnActivity(func(a Activity) { heard = append(heard, a) })
	tap(d, 100, 10)
	if len(heard) != 1 || heard[0].Kind != KindButton || heard[0].Label != "Play" || heard[0].Slot != 1 {
		t.Fatalf("expected Play tap, got %+v", heard)
	}
}

func TestSwipeSwapsPageWidgets(t *testing.T) {
	d, _, s := startDemo(t)
	swipe(d, -60)
	if s.Page() != 1 || last(s).Code != 0x0001 {
		t.Fatalf("expected page 1, got %d (%v)", s.Page(), last(s).Code)
	}
	labels := []string{}
	for _, b := range s.Buttons() {
		labels = append(labels, b.Label())
	}
	if len(labels) != 3 || labels[0] != "View" || labels[1] != "Zoom in" {
		t.Fatalf("unexpected page 1 buttons %v", labels)
	}
	swipe(d, -60)
	if len(s.Buttons()) != 1 || d.Registered(2) || d.Registered(4) {
		t.Fatalf("expected only the About button on page 2")
	}
	if d.Violations() != 0 {
		t.Fatalf("unexpected violations %d", d.Violations())
	}
}

func TestMenuToggleSurvivesPageChange(t *testing.T) {
	d, _, s := startDemo(t)
	s.GotoPage(1)
	tap(d, 20, 10)
	if s.OpenMenu() == nil {
		t.Fatalf("expected View menu open")
	}
	tap(d, 20, 31+30+15)
	if got := last(s); got.Kind != KindMenu || got.Code != 0x0401 || got.Label != "Rulers" {
		t.Fatalf("expected Rulers chosen, got %+v", got)
	}
	if s.OpenMenu() != nil {
		t.Fatalf("expected menu closed after choice")
	}

	s.GotoPage(0)
	s.GotoPage(1)
	tap(d, 20, 10)
	m := s.OpenMenu()
	if m == nil {
		t.Fatalf("expected View menu open again")
	}
	if it, _ := m.Item(1); !it.Checked {
		t.Fatalf("expected Rulers to stay checked")
	}
	if !s.CloseMenu() || s.CloseMenu() {
		t.Fatalf("expected exactly one menu to close")
	}
	if got := last(s); got.Code != 0x04FF {
		t.Fatalf("expected cancel code, got %v", got.Code)
	}
}

func TestStopTearsEverythingDown(t *testing.T) {
	d, _, s := startDemo(t)
	tap(d, 20, 10)
	s.Stop()
	if s.Page() != wire.None || last(s).Code != 0x00FF {
		t.Fatalf("expected exit to no page, got %d %v", s.Page(), last(s).Code)
	}
	if d.Bound() != 0 || d.OverlayActive() {
		t.Fatalf("expected no regions left, got %d", d.Bound())
	}
	if d.Violations() != 0 {
		t.Fatalf("unexpected violations %d", d.Violations())
	}
}

func TestHistoryIsBounded(t *testing.T) {
	d, _, s := startDemo(t)
	for i := 0; i < HistorySize+4; i++ {
		tap(d, 100, 10)
	}
	if len(s.History()) != HistorySize {
		t.Fatalf("expected %d entries, got %d", HistorySize, len(s.History()))
	}
}
