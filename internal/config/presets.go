package config

import (
	"sort"

	"github.com/san-kum/fluxsim/internal/initial"
	"github.com/san-kum/fluxsim/internal/potentials"
)

func atomic(v float64) potentials.Spec {
	return potentials.Spec{Name: "atomic", Strength: v}
}

// Presets holds the built-in scenarios. The "default" preset of each
// scenario reproduces its reference setup; "coarse" is a cheap variant for
// quick looks and benchmarks.
var Presets = map[string]map[string]*Config{
	"soliton1d": {
		"default": {
			Scenario: "soliton1d", Length: 20, Points: []int{200}, Dt: 0.01, Steps: 500,
			Mass: 1, Coupling: 1, Initial: "kink", LogEvery: 100,
		},
		"coarse": {
			Scenario: "soliton1d", Length: 20, Points: []int{100}, Dt: 0.01, Steps: 500,
			Mass: 1, Coupling: 1, Initial: "kink", LogEvery: 100,
		},
		"fast": {
			Scenario: "soliton1d", Length: 20, Points: []int{200}, Dt: 0.01, Steps: 500,
			Mass: 1, Coupling: 1, Initial: "kink", LogEvery: 100,
			InitParams: initial.Params{Velocity: initial.Float(0.6)},
		},
	},
	"matter2d": {
		"default": {
			Scenario: "matter2d", Length: 15, Points: []int{150, 150}, Dt: 0.01, Steps: 1000,
			Mass: 1, Coupling: 1, Initial: "orbital", LogEvery: 100,
			Terms: []potentials.Spec{atomic(-0.5)},
		},
		"coarse": {
			Scenario: "matter2d", Length: 15, Points: []int{60, 60}, Dt: 0.01, Steps: 300,
			Mass: 1, Coupling: 1, Initial: "orbital", LogEvery: 100,
			Terms: []potentials.Spec{atomic(-0.5)},
		},
	},
	"gravity2d": {
		"default": {
			Scenario: "gravity2d", Length: 15, Points: []int{150, 150}, Dt: 0.01, Steps: 1500,
			Mass: 1, Coupling: 1, Initial: "rotating", LogEvery: 100,
			Terms: []potentials.Spec{
				{Name: "gravity", Strength: -1.0},
				{Name: "rotation", Strength: -0.8},
			},
		},
		"coarse": {
			Scenario: "gravity2d", Length: 15, Points: []int{60, 60}, Dt: 0.01, Steps: 300,
			Mass: 1, Coupling: 1, Initial: "rotating", LogEvery: 100,
			Terms: []potentials.Spec{
				{Name: "gravity", Strength: -1.0},
				{Name: "rotation", Strength: -0.8},
			},
		},
	},
	"wave3d": {
		"default": {
			Scenario: "wave3d", Length: 10, Points: []int{50, 50, 50}, Dt: 0.01, Steps: 700,
			Mass: 1, Coupling: 1, Initial: "wave", LogEvery: 100,
			Terms: []potentials.Spec{atomic(-0.8)},
		},
		"coarse": {
			Scenario: "wave3d", Length: 10, Points: []int{24, 24, 24}, Dt: 0.01, Steps: 200,
			Mass: 1, Coupling: 1, Initial: "wave", LogEvery: 50,
			Terms: []potentials.Spec{atomic(-0.8)},
		},
	},
	"collapse3d": {
		"default": {
			Scenario: "collapse3d", Length: 10, Points: []int{50, 50, 50}, Dt: 0.01, Steps: 700,
			Mass: 1, Coupling: 1, Initial: "collapse", LogEvery: 100,
			Terms: []potentials.Spec{atomic(-1.5)},
		},
		"coarse": {
			Scenario: "collapse3d", Length: 10, Points: []int{24, 24, 24}, Dt: 0.01, Steps: 200,
			Mass: 1, Coupling: 1, Initial: "collapse", LogEvery: 50,
			Terms: []potentials.Spec{atomic(-1.5)},
		},
	},
	"shielding3d": {
		"default": {
			Scenario: "shielding3d", Length: 10, Points: []int{50, 50, 50}, Dt: 0.01, Steps: 700,
			Mass: 1, Coupling: 1, Initial: "wave", LogEvery: 100,
			Terms: []potentials.Spec{
				atomic(-2.0),
				{Name: "barrier", Strength: -2.0, Width: 1.0},
			},
		},
		"coarse": {
			Scenario: "shielding3d", Length: 10, Points: []int{24, 24, 24}, Dt: 0.01, Steps: 200,
			Mass: 1, Coupling: 1, Initial: "wave", LogEvery: 50,
			Terms: []potentials.Spec{
				atomic(-2.0),
				{Name: "barrier", Strength: -2.0, Width: 1.0},
			},
		},
	},
	"atomic3d": {
		"default": {
			Scenario: "atomic3d", Length: 10, Points: []int{50, 50, 50}, Dt: 0.01, Steps: 700,
			Mass: 1, Coupling: 1, Initial: "orbital", LogEvery: 100,
			Terms: []potentials.Spec{atomic(-0.5)},
		},
		"coarse": {
			Scenario: "atomic3d", Length: 10, Points: []int{24, 24, 24}, Dt: 0.01, Steps: 200,
			Mass: 1, Coupling: 1, Initial: "orbital", LogEvery: 50,
			Terms: []potentials.Spec{atomic(-0.5)},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(scenario, preset string) *Config {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	cfg, ok := scenarioPresets[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(scenario string) []string {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenarioPresets))
	for name := range scenarioPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func ListScenarios() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
