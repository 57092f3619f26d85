package config

import (
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt       = 1.0 / 60
	DefaultDuration = 10.0
	DefaultGravityY = -9.81
	DefaultDamping  = 0.99
	DefaultSleep    = 0.5
	DefaultRadius   = 0.5
)

// Config describes a scene: space parameters plus the bodies placed in it.
type Config struct {
	Scene              string       `yaml:"scene"`
	Dt                 float64      `yaml:"dt"`
	Duration           float64      `yaml:"duration"`
	Gravity            VectConfig   `yaml:"gravity"`
	Damping            float64      `yaml:"damping"`
	SleepTimeThreshold float64      `yaml:"sleep_time_threshold"`
	IdleSpeedThreshold float64      `yaml:"idle_speed_threshold"`
	Floor              FloorConfig  `yaml:"floor"`
	Bodies             []BodyConfig `yaml:"bodies"`
}

type VectConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type FloorConfig struct {
	Enabled bool    `yaml:"enabled"`
	Y       float64 `yaml:"y"`
}

// BodyConfig describes one body. A zero moment means "derive from the
// bounding circle" (solid disc). Platform bodies get infinite mass and a
// scripted sinusoidal motion law instead of the Newtonian integrator.
type BodyConfig struct {
	Mass     float64 `yaml:"mass"`
	Moment   float64 `yaml:"moment"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	VX       float64 `yaml:"vx"`
	VY       float64 `yaml:"vy"`
	Radius   float64 `yaml:"radius"`
	Platform bool    `yaml:"platform"`
	// Amplitude and Period drive platform motion along x.
	Amplitude float64 `yaml:"amplitude"`
	Period    float64 `yaml:"period"`
}

// CircleRadius returns the configured radius or the default.
func (b BodyConfig) CircleRadius() float64 {
	if b.Radius == 0 {
		return DefaultRadius
	}
	return b.Radius
}

// DiscMoment returns the moment for the body: the configured value, or the
// solid-disc moment 0.5·m·r² when unset. Platforms are infinite.
func (b BodyConfig) DiscMoment() float64 {
	if b.Platform {
		return math.Inf(1)
	}
	if b.Moment != 0 {
		return b.Moment
	}
	r := b.CircleRadius()
	return 0.5 * b.Mass * r * r
}

func DefaultConfig() *Config {
	return &Config{
		Scene:              "stack",
		Dt:                 DefaultDt,
		Duration:           DefaultDuration,
		Gravity:            VectConfig{Y: DefaultGravityY},
		Damping:            DefaultDamping,
		SleepTimeThreshold: DefaultSleep,
		Floor:              FloorConfig{Enabled: true},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
