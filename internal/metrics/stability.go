package metrics

import "github.com/san-kum/planar/internal/phys"

// SleepRatio measures what fraction of observed steps had the whole scene
// asleep. 1.0 means the scene settled immediately; 0 means it never did.
type SleepRatio struct {
	name    string
	settled int
	samples int
}

func NewSleepRatio() *SleepRatio {
	return &SleepRatio{name: "sleep_ratio"}
}

func (r *SleepRatio) Name() string { return r.name }

func (r *SleepRatio) Observe(s *phys.Space, t float64) {
	r.samples++
	if s.ActiveCount() == 0 {
		r.settled++
	}
}

func (r *SleepRatio) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return float64(r.settled) / float64(r.samples)
}

func (r *SleepRatio) Reset() {
	r.settled = 0
	r.samples = 0
}
