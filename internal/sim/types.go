package sim

import (
	"fmt"

	"github.com/san-kum/planar/internal/phys"
)

// ContactSource feeds contact membership facts into the space before each
// step. Implementations stand in for a real collision pipeline.
type ContactSource interface {
	Detect(s *phys.Space) error
}

// Metric accumulates a scalar over a run.
type Metric interface {
	Name() string
	Observe(s *phys.Space, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every step.
type Observer interface {
	OnStep(s *phys.Space, t float64)
}

// Config controls a run.
type Config struct {
	Dt       float64
	Duration float64

	// KeepForces leaves force accumulators untouched between steps. The
	// default policy clears the forces of every awake body after each step,
	// once integration is done; sleeping bodies keep theirs until woken.
	KeepForces bool
}

func (c Config) validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", c.Duration)
	}
	return nil
}

// Result records per-step series and final metric values.
type Result struct {
	Times      []float64
	Energy     []float64 // total kinetic energy of dynamic bodies
	Awake      []int     // size of the integration set
	Metrics    map[string]float64
	StepsTaken int
}
