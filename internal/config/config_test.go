package config

import (
	"math"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Scene != "stack" {
		t.Errorf("expected scene stack, got %s", cfg.Scene)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if cfg.Gravity.Y >= 0 {
		t.Error("default gravity should point down")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("stack")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if len(cfg.Bodies) == 0 {
		t.Error("stack preset should place bodies")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Error("expected built-in presets")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")

	cfg := DefaultConfig()
	cfg.Scene = "custom"
	cfg.Bodies = []BodyConfig{{Mass: 2.5, X: 1, Y: 2, Radius: 0.75}}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Scene != "custom" {
		t.Errorf("scene = %s, want custom", loaded.Scene)
	}
	if len(loaded.Bodies) != 1 || loaded.Bodies[0].Mass != 2.5 {
		t.Errorf("bodies not round-tripped: %+v", loaded.Bodies)
	}
}

func TestDiscMoment(t *testing.T) {
	tests := []struct {
		name string
		body BodyConfig
		want float64
	}{
		{"explicit", BodyConfig{Mass: 1, Moment: 3}, 3},
		{"derived", BodyConfig{Mass: 2, Radius: 1}, 1},
		{"default radius", BodyConfig{Mass: 8}, 8 * 0.5 * DefaultRadius * DefaultRadius},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.body.DiscMoment(); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("moment = %f, want %f", got, tt.want)
			}
		})
	}

	if m := (BodyConfig{Platform: true}).DiscMoment(); !math.IsInf(m, 1) {
		t.Errorf("platform moment = %f, want +Inf", m)
	}
}
