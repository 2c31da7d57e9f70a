package main

import (
	"fmt"

	"github.com/san-kum/fluxsim/internal/config"
	"github.com/san-kum/fluxsim/internal/initial"
	"github.com/spf13/cobra"
)

// resolveConfig builds the run configuration. A config file replaces the
// preset, and flags set on the command line override both.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	var cfg *config.Config

	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		if len(args) > 0 {
			cfg.Scenario = args[0]
		}
	case len(args) > 0:
		cfg = config.GetPreset(args[0], preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s/%s (available: %v)", args[0], preset, config.ListPresets(args[0]))
		}
	default:
		return nil, fmt.Errorf("scenario or --config required (available: %v)", config.ListScenarios())
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("length") {
		cfg.Length = length
	}
	if flags.Changed("points") {
		cfg.Resize(points)
	}
	if flags.Changed("mass") {
		cfg.Mass = mass
	}
	if flags.Changed("coupling") {
		cfg.Coupling = coupling
	}
	if flags.Changed("initial") {
		cfg.Initial = initName
	}
	if flags.Changed("velocity") {
		cfg.InitParams.Velocity = initial.Float(velocity)
	}
	if flags.Changed("log-every") {
		cfg.LogEvery = logEvery
	}

	return cfg, nil
}
