package main

import (
	"fmt"
	"math"

	"github.com/san-kum/planar/internal/collide"
	"github.com/san-kum/planar/internal/config"
	"github.com/san-kum/planar/internal/phys"
	"github.com/san-kum/planar/internal/sim"
	"github.com/san-kum/planar/internal/vect"
)

// buildScene assembles a space and contact detector from a scene config and
// wraps them in a runner.
func buildScene(cfg *config.Config) (*sim.Runner, error) {
	s := phys.NewSpace()
	s.Gravity = vect.Vect{X: cfg.Gravity.X, Y: cfg.Gravity.Y}
	s.Damping = cfg.Damping
	s.SleepTimeThreshold = cfg.SleepTimeThreshold
	s.IdleSpeedThreshold = cfg.IdleSpeedThreshold

	det := collide.New()
	if cfg.Floor.Enabled {
		if _, err := det.WithFloor(s, cfg.Floor.Y); err != nil {
			return nil, err
		}
	}

	for i, bc := range cfg.Bodies {
		if err := addBody(s, bc); err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
	}

	return sim.New(s, det), nil
}

func addBody(s *phys.Space, bc config.BodyConfig) error {
	mass := bc.Mass
	if bc.Platform {
		mass = math.Inf(1)
	}

	b, err := phys.NewBody(mass, bc.DiscMoment())
	if err != nil {
		return err
	}
	b.SetPosition(vect.Vect{X: bc.X, Y: bc.Y})
	b.SetVelocity(vect.Vect{X: bc.VX, Y: bc.VY})

	if bc.Platform {
		scriptPlatform(b, bc)
	}

	if err := s.AddBody(b); err != nil {
		return err
	}
	return s.AddShape(phys.NewCircle(b, bc.CircleRadius(), vect.Zero))
}

// scriptPlatform replaces the Newtonian integrator with a sinusoidal motion
// law along x. The body keeps infinite mass so collisions cannot push it.
func scriptPlatform(b *phys.Body, bc config.BodyConfig) {
	period := bc.Period
	if period <= 0 {
		period = 1
	}
	elapsed := 0.0

	b.SetVelocityFunc(func(*phys.Body, vect.Vect, float64, float64) {})
	b.SetPositionFunc(func(body *phys.Body, dt float64) {
		elapsed += dt
		x := bc.X + bc.Amplitude*math.Sin(2*math.Pi*elapsed/period)
		body.SetPosition(vect.Vect{X: x, Y: bc.Y})
	})
}

// loadScene resolves the scene from a config file or a preset name, with the
// file taking precedence.
func loadScene(configFile, preset string) (*config.Config, error) {
	if configFile != "" {
		return config.Load(configFile)
	}
	if cfg := config.GetPreset(preset); cfg != nil {
		return cfg, nil
	}
	return nil, fmt.Errorf("unknown scene: %s (available: %v)", preset, config.ListPresets())
}
