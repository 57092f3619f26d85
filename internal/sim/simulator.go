package sim

import (
	"context"

	"github.com/san-kum/planar/internal/phys"
)

// Runner drives a space through fixed steps, collecting series, metrics,
// and observer callbacks. It owns the force-reset policy: the space itself
// never clears accumulators.
type Runner struct {
	space     *phys.Space
	source    ContactSource
	metrics   []Metric
	observers []Observer
}

// New returns a runner for space. source may be nil when contacts come from
// elsewhere (or nowhere).
func New(space *phys.Space, source ContactSource) *Runner {
	return &Runner{
		space:  space,
		source: source,
	}
}

func (r *Runner) Space() *phys.Space { return r.space }

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run steps the space for cfg.Duration. The per-step order is: detect
// contacts, integrate (velocity then position for every awake body), reset
// forces per policy, then notify metrics and observers.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Times:   make([]float64, 0, steps),
		Energy:  make([]float64, 0, steps),
		Awake:   make([]int, 0, steps),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	t := 0.0
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := r.StepOnce(cfg); err != nil {
			return result, err
		}
		t += cfg.Dt
		result.StepsTaken++

		result.Times = append(result.Times, t)
		result.Energy = append(result.Energy, TotalEnergy(r.space))
		result.Awake = append(result.Awake, r.space.ActiveCount())

		for _, m := range r.metrics {
			m.Observe(r.space, t)
		}
		for _, obs := range r.observers {
			obs.OnStep(r.space, t)
		}
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// StepOnce advances the space by one step under the runner's policies.
func (r *Runner) StepOnce(cfg Config) error {
	if r.source != nil {
		if err := r.source.Detect(r.space); err != nil {
			return err
		}
	}
	r.space.Step(cfg.Dt)
	if !cfg.KeepForces {
		// Clearing a sleeping body's forces would wake it, so only the
		// integration set is cleared. ResetForces leaves an awake body's
		// idle time alone, so this policy does not block auto-sleep.
		r.space.EachActiveBody(func(b *phys.Body) {
			b.ResetForces()
		})
	}
	return nil
}

// TotalEnergy sums the kinetic energy of every dynamic body in the space,
// sleeping ones included.
func TotalEnergy(s *phys.Space) float64 {
	var total float64
	s.EachBody(func(b *phys.Body) {
		total += b.KineticEnergy()
	})
	return total
}
