package collide

import (
	"testing"

	"github.com/san-kum/planar/internal/phys"
	"github.com/san-kum/planar/internal/vect"
)

func addBody(t *testing.T, s *phys.Space, x, y, radius float64) (*phys.Body, *phys.Shape) {
	t.Helper()
	b, err := phys.NewBody(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	b.SetPosition(vect.Vect{X: x, Y: y})
	if err := s.AddBody(b); err != nil {
		t.Fatal(err)
	}
	sh := phys.NewCircle(b, radius, vect.Zero)
	if err := s.AddShape(sh); err != nil {
		t.Fatal(err)
	}
	return b, sh
}

func TestDetectOverlap(t *testing.T) {
	s := phys.NewSpace()
	addBody(t, s, 0, 0, 1)
	addBody(t, s, 1.5, 0, 1)
	addBody(t, s, 10, 0, 1)

	d := New()
	if err := d.Detect(s); err != nil {
		t.Fatalf("detect failed: %v", err)
	}
	if s.ArbiterCount() != 1 {
		t.Errorf("arbiter count = %d, want 1 (only the close pair)", s.ArbiterCount())
	}
}

func TestDetectFloor(t *testing.T) {
	s := phys.NewSpace()
	_, low := addBody(t, s, 0, 0.4, 0.5)
	addBody(t, s, 3, 5, 0.5)

	d, err := New().WithFloor(s, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Detect(s); err != nil {
		t.Fatal(err)
	}
	if s.ArbiterCount() != 1 {
		t.Fatalf("arbiter count = %d, want 1", s.ArbiterCount())
	}

	found := false
	low.Body().EachArbiter(func(arb *phys.Arbiter) {
		sa, sb := arb.Shapes()
		if sa == d.Floor() || sb == d.Floor() {
			found = true
		}
	})
	if !found {
		t.Error("low body should touch the floor")
	}
}
