package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/planar/internal/phys"
	"github.com/san-kum/planar/internal/vect"
)

func spaceWithMovingBody(t *testing.T, speed float64) *phys.Space {
	t.Helper()
	s := phys.NewSpace()
	b, err := phys.NewBody(2, 1)
	if err != nil {
		t.Fatal(err)
	}
	b.SetVelocity(vect.Vect{X: speed})
	if err := s.AddBody(b); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestEnergyAverages(t *testing.T) {
	s := spaceWithMovingBody(t, 3) // KE = 0.5*2*9 = 9
	m := NewEnergy()

	m.Observe(s, 0)
	m.Observe(s, 0.1)

	if got := m.Value(); math.Abs(got-9) > 1e-12 {
		t.Errorf("energy = %f, want 9", got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestPeakEnergy(t *testing.T) {
	slow := spaceWithMovingBody(t, 1) // KE = 1
	fast := spaceWithMovingBody(t, 3) // KE = 9

	m := NewPeakEnergy()
	m.Observe(slow, 0)
	m.Observe(fast, 0.1)
	m.Observe(slow, 0.2)

	if got := m.Value(); math.Abs(got-9) > 1e-12 {
		t.Errorf("peak = %f, want 9", got)
	}
}

func TestSleepRatio(t *testing.T) {
	s := spaceWithMovingBody(t, 0)
	m := NewSleepRatio()

	m.Observe(s, 0) // awake
	s.EachBody(func(b *phys.Body) {
		if err := b.Sleep(); err != nil {
			t.Fatal(err)
		}
	})
	m.Observe(s, 0.1) // asleep

	if got := m.Value(); got != 0.5 {
		t.Errorf("sleep ratio = %f, want 0.5", got)
	}
}
