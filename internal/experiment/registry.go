package experiment

import (
	"fmt"

	"github.com/san-kum/fluxsim/internal/config"
	"github.com/san-kum/fluxsim/internal/field"
	"github.com/san-kum/fluxsim/internal/initial"
	"github.com/san-kum/fluxsim/internal/metrics"
	"github.com/san-kum/fluxsim/internal/potentials"
)

// Setup is everything a leapfrog run needs, resolved from a Config.
type Setup struct {
	Grid      *field.Grid
	Params    field.Params
	Terms     []field.Term
	Condition initial.Condition
	Prev      field.Field
	Curr      field.Field
}

type Registry struct {
	terms *potentials.Registry
}

func NewRegistry() *Registry {
	return &Registry{terms: potentials.NewRegistry()}
}

// Scenario returns the configuration of a named scenario preset.
func (r *Registry) Scenario(name, preset string) (*config.Config, error) {
	if preset == "" {
		preset = "default"
	}
	cfg := config.GetPreset(name, preset)
	if cfg == nil {
		return nil, fmt.Errorf("%w: unknown scenario: %s/%s", field.ErrInvalidConfiguration, name, preset)
	}
	return cfg, nil
}

func (r *Registry) ListScenarios() []string {
	return config.ListScenarios()
}

func (r *Registry) ListTerms() []string {
	return r.terms.List()
}

func (r *Registry) ListConditions() []string {
	return initial.List()
}

// Build resolves the grid, terms and initial snapshots of cfg.
func (r *Registry) Build(cfg *config.Config) (*Setup, error) {
	g, err := cfg.Grid()
	if err != nil {
		return nil, err
	}
	terms, err := r.terms.Build(g, cfg.Terms)
	if err != nil {
		return nil, err
	}
	cond, err := initial.Get(cfg.Initial, cfg.InitParams)
	if err != nil {
		return nil, err
	}
	prev, curr, err := cond.Build(g, cfg.Dt)
	if err != nil {
		return nil, err
	}

	return &Setup{
		Grid:      g,
		Params:    cfg.Params(),
		Terms:     terms,
		Condition: cond,
		Prev:      prev,
		Curr:      curr,
	}, nil
}

func (r *Registry) DefaultMetrics(g *field.Grid, p field.Params) []field.Metric {
	return metrics.Defaults(g, p)
}
