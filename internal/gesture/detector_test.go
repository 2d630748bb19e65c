package gesture

import (
	"testing"

	"github.com/atomicstack/touch-widgets/internal/geom"
)

type recorder struct {
	events []Event
}

func (r *recorder) OnGesture(ev Event) {
	r.events = append(r.events, ev)
}

func tap(d *Detector, x, y int) {
	d.Feed(Sample{Phase: PhaseDown, Pos: geom.Point{X: x, Y: y}})
	d.Feed(Sample{Phase: PhaseUp, Pos: geom.Point{X: x, Y: y}})
}

func stroke(d *Detector, from geom.Point, to ...geom.Point) {
	d.Feed(Sample{Phase: PhaseDown, Pos: from})
	last := from
	for _, p := range to {
		d.Feed(Sample{Phase: PhaseMove, Pos: p})
		last = p
	}
	d.Feed(Sample{Phase: PhaseUp, Pos: last})
}

func TestTapDeliversDownAndRelease(t *testing.T) {
	d := NewDetector()
	rec := &recorder{}
	d.OnTap(4, geom.R(0, 0, 10, 10), rec)

	tap(d, 3, 3)
	if len(rec.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(rec.events))
	}
	if rec.events[0].Released || !rec.events[1].Released {
		t.Fatalf("expected down then release, got %+v", rec.events)
	}
	if rec.events[0].Slot != 4 || rec.events[0].Kind != Tap {
		t.Fatalf("unexpected event %+v", rec.events[0])
	}

	tap(d, 30, 30)
	if len(rec.events) != 2 {
		t.Fatalf("expected tap outside region to be ignored")
	}
}

func TestEmptyAreaMatchesNothing(t *testing.T) {
	d := NewDetector()
	empty, anywhere := &recorder{}, &recorder{}
	d.OnTap(1, geom.Anywhere, anywhere)
	d.System().OnTap(0, geom.R(10, 30, 0, 40), empty)

	tap(d, 10, 40)
	tap(d, 200, 5)
	if len(empty.events) != 0 {
		t.Fatalf("expected a zero-width region to miss every tap, got %+v", empty.events)
	}
	if len(anywhere.events) != 4 {
		t.Fatalf("expected Anywhere to catch both taps, got %d events", len(anywhere.events))
	}
}

func TestDispatchOrderAcrossBands(t *testing.T) {
	d := NewDetector()
	low, high, system, overlay := &recorder{}, &recorder{}, &recorder{}, &recorder{}
	d.OnTap(2, geom.R(0, 0, 10, 10), low)
	d.OnTap(5, geom.R(0, 0, 10, 10), high)

	tap(d, 1, 1)
	if len(high.events) != 2 || len(low.events) != 0 {
		t.Fatalf("expected higher widget slot to win, got high=%d low=%d", len(high.events), len(low.events))
	}

	d.System().OnTap(0, geom.Anywhere, system)
	tap(d, 1, 1)
	if len(system.events) != 2 || len(high.events) != 2 {
		t.Fatalf("expected system band to outrank widgets")
	}

	lease, ok := d.AcquireOverlay()
	if !ok {
		t.Fatalf("expected overlay lease")
	}
	lease.OnTap(0, geom.Anywhere, overlay)
	tap(d, 1, 1)
	if len(overlay.events) != 2 || len(system.events) != 2 {
		t.Fatalf("expected overlay slot 0 to outrank the system band")
	}

	lease.Release()
	tap(d, 1, 1)
	if len(system.events) != 4 {
		t.Fatalf("expected system band to receive taps after overlay release")
	}
}

func TestReleaseSkipsRegionReboundByAnotherOwner(t *testing.T) {
	d := NewDetector()
	next := &recorder{}
	first := &recorder{}
	d.OnTap(1, geom.Anywhere, HandlerFunc(func(ev Event) {
		first.OnGesture(ev)
		if !ev.Released {
			d.Cancel(1)
			d.OnTap(1, geom.Anywhere, next)
		}
	}))

	tap(d, 0, 0)
	if len(first.events) != 1 {
		t.Fatalf("expected only the press on the original handler, got %d", len(first.events))
	}
	if len(next.events) != 0 {
		t.Fatalf("expected replacement handler to miss the old touch's release")
	}
	if d.Violations() != 0 {
		t.Fatalf("unexpected violations %d", d.Violations())
	}
}

func TestDragReportsStartAndDelta(t *testing.T) {
	d := NewDetector()
	drags, taps := &recorder{}, &recorder{}
	d.OnTap(0, geom.R(0, 0, 20, 20), taps)
	d.OnDrag(1, geom.R(0, 0, 20, 20), drags)

	stroke(d, geom.Point{X: 2, Y: 2}, geom.Point{X: 4, Y: 6}, geom.Point{X: 8, Y: 30})
	if len(drags.events) != 3 {
		t.Fatalf("expected 2 moves and a release, got %d", len(drags.events))
	}
	last := drags.events[2]
	if !last.Released || last.Pos != (geom.Point{X: 2, Y: 2}) || last.Delta != (geom.Point{X: 6, Y: 28}) {
		t.Fatalf("unexpected final drag %+v", last)
	}
	if len(taps.events) != 1 || taps.events[0].Released {
		t.Fatalf("expected tap press only when a drag took over, got %+v", taps.events)
	}
}

func TestSwipeThresholdAndAxis(t *testing.T) {
	d := NewDetector()
	swipes, taps := &recorder{}, &recorder{}
	d.OnTap(0, geom.Anywhere, taps)
	d.System().OnSwipe(1, geom.Anywhere, swipes, AxisHorizontal, 3)

	stroke(d, geom.Point{X: 10, Y: 10}, geom.Point{X: 12, Y: 10})
	if len(swipes.events) != 0 {
		t.Fatalf("expected short stroke to stay a tap")
	}
	if n := len(taps.events); n != 2 || !taps.events[1].Released {
		t.Fatalf("expected tap release for short stroke, got %+v", taps.events)
	}

	stroke(d, geom.Point{X: 10, Y: 10}, geom.Point{X: 11, Y: 20})
	if len(swipes.events) != 0 {
		t.Fatalf("expected vertical stroke to be rejected by horizontal swipe")
	}

	stroke(d, geom.Point{X: 10, Y: 10}, geom.Point{X: 5, Y: 11})
	if len(swipes.events) != 1 {
		t.Fatalf("expected one swipe, got %d", len(swipes.events))
	}
	if got := swipes.events[0].Delta; got != (geom.Point{X: -5}) {
		t.Fatalf("expected horizontal-only delta, got %+v", got)
	}
	if taps.events[len(taps.events)-1].Released {
		t.Fatalf("expected swipe to suppress the tap release")
	}
}

func TestSingleOverlayLease(t *testing.T) {
	d := NewDetector()
	lease, ok := d.AcquireOverlay()
	if !ok || !d.OverlayActive() {
		t.Fatalf("expected first acquire to succeed")
	}
	if _, ok := d.AcquireOverlay(); ok {
		t.Fatalf("expected second acquire to fail")
	}
	for slot := 0; slot < OverlaySlots; slot++ {
		lease.OnTap(slot, geom.Anywhere, &recorder{})
	}
	if d.Bound() != OverlaySlots {
		t.Fatalf("expected %d overlay regions, got %d", OverlaySlots, d.Bound())
	}
	lease.Release()
	lease.Release()
	if d.OverlayActive() || d.Bound() != 0 {
		t.Fatalf("expected release to clear every overlay region")
	}
	lease.OnTap(0, geom.Anywhere, &recorder{})
	if d.Violations() != 1 {
		t.Fatalf("expected stale lease use to count as a violation, got %d", d.Violations())
	}
	if _, ok := d.AcquireOverlay(); !ok {
		t.Fatalf("expected lease to be available again")
	}
}

func TestContractViolations(t *testing.T) {
	d := NewDetector()
	d.Cancel(3)
	d.OnTap(MaxPriority, geom.Anywhere, &recorder{})
	d.OnTap(1, geom.Anywhere, &recorder{})
	d.OnTap(1, geom.Anywhere, &recorder{})
	d.OnTap(2, geom.Anywhere, nil)
	if d.Violations() != 4 {
		t.Fatalf("expected 4 violations, got %d", d.Violations())
	}
	if !d.Registered(1) || d.Registered(2) || d.Registered(-1) {
		t.Fatalf("unexpected registration state")
	}
}

func TestPressWithoutLiftReleasesPreviousTouch(t *testing.T) {
	d := NewDetector()
	rec := &recorder{}
	d.OnTap(0, geom.Anywhere, rec)
	d.Feed(Sample{Phase: PhaseDown, Pos: geom.Point{X: 1, Y: 1}})
	d.Feed(Sample{Phase: PhaseDown, Pos: geom.Point{X: 2, Y: 2}})
	if len(rec.events) != 3 || !rec.events[1].Released {
		t.Fatalf("expected synthetic release between presses, got %+v", rec.events)
	}
	d.Feed(Sample{Phase: PhaseUp, Pos: geom.Point{X: 2, Y: 2}})
	d.Feed(Sample{Phase: PhaseMove, Pos: geom.Point{X: 9, Y: 9}})
	if d.Pressed() || len(rec.events) != 4 {
		t.Fatalf("expected idle detector after lift")
	}
}

func TestParsePhase(t *testing.T) {
	for _, p := range []Phase{PhaseDown, PhaseMove, PhaseUp} {
		got, err := ParsePhase(p.String())
		if err != nil || got != p {
			t.Fatalf("round trip of %v failed: %v %v", p, got, err)
		}
	}
	if _, err := ParsePhase("hover"); err == nil {
		t.Fatalf("expected error for unknown phase")
	}
}
