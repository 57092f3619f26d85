package config

import "math"

// Presets are the built-in scenes, keyed by name.
var Presets = map[string]*Config{
	"stack": {
		Scene: "stack", Dt: DefaultDt, Duration: 10.0,
		Gravity: VectConfig{Y: DefaultGravityY}, Damping: DefaultDamping,
		SleepTimeThreshold: 0.5, Floor: FloorConfig{Enabled: true},
		Bodies: []BodyConfig{
			{Mass: 1, X: 0, Y: 0.5, Radius: 0.5},
			{Mass: 1, X: 0, Y: 1.5, Radius: 0.5},
			{Mass: 1, X: 0, Y: 2.5, Radius: 0.5},
			{Mass: 1, X: 0, Y: 3.5, Radius: 0.5},
		},
	},
	"drop": {
		Scene: "drop", Dt: DefaultDt, Duration: 12.0,
		Gravity: VectConfig{Y: DefaultGravityY}, Damping: DefaultDamping,
		SleepTimeThreshold: 0.5, Floor: FloorConfig{Enabled: true},
		Bodies: []BodyConfig{
			{Mass: 1, X: -3, Y: 6, Radius: 0.5},
			{Mass: 2, X: -1, Y: 8, Radius: 0.6},
			{Mass: 1, X: 1, Y: 5, VX: 0.5, Radius: 0.4},
			{Mass: 3, X: 3, Y: 9, Radius: 0.8},
			{Mass: 1, X: 0, Y: 11, VX: -0.3, Radius: 0.5},
		},
	},
	"platform": {
		Scene: "platform", Dt: DefaultDt, Duration: 20.0,
		Gravity: VectConfig{Y: DefaultGravityY}, Damping: DefaultDamping,
		SleepTimeThreshold: math.Inf(1), Floor: FloorConfig{Enabled: true},
		Bodies: []BodyConfig{
			{Platform: true, X: 0, Y: 3, Radius: 1.5, Amplitude: 4, Period: 6},
			{Mass: 1, X: 0, Y: 5, Radius: 0.5},
		},
	},
	"spin": {
		Scene: "spin", Dt: DefaultDt, Duration: 8.0,
		Gravity: VectConfig{}, Damping: 1.0,
		SleepTimeThreshold: math.Inf(1), Floor: FloorConfig{},
		Bodies: []BodyConfig{
			{Mass: 1, Moment: 0.2, X: -2, VX: 1, Radius: 0.5},
			{Mass: 1, Moment: 0.2, X: 2, VX: -1, Radius: 0.5},
		},
	},
}

// GetPreset returns the named scene, or nil.
func GetPreset(name string) *Config {
	return Presets[name]
}

// ListPresets returns the available scene names.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
