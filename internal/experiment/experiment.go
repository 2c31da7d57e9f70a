package experiment

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	kitlog "github.com/go-kit/kit/log"
	"github.com/san-kum/fluxsim/internal/config"
	"github.com/san-kum/fluxsim/internal/field"
	"github.com/san-kum/fluxsim/internal/integrators"
)

// Result is the outcome of one scenario run.
type Result struct {
	Scenario   string
	Config     *config.Config
	Grid       *field.Grid
	Field      field.Field
	StepsTaken int
	Time       float64
	Elapsed    time.Duration
	Metrics    map[string]float64
}

type Experiment struct {
	cfg        *config.Config
	registry   *Registry
	logger     kitlog.Logger
	setup      *Setup
	integrator *integrators.Leapfrog
}

// DefaultLogger writes logfmt lines to stderr.
func DefaultLogger() kitlog.Logger {
	return kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))
}

func New(cfg *config.Config, logger kitlog.Logger) *Experiment {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	return &Experiment{
		cfg:      cfg,
		registry: NewRegistry(),
		logger:   kitlog.With(logger, "scenario", cfg.Scenario),
	}
}

func (e *Experiment) Setup(metrics []field.Metric) error {
	setup, err := e.registry.Build(e.cfg)
	if err != nil {
		return err
	}
	l, err := integrators.NewLeapfrog(setup.Grid, setup.Params, setup.Terms, setup.Prev, setup.Curr)
	if err != nil {
		return err
	}
	if metrics == nil {
		metrics = e.registry.DefaultMetrics(setup.Grid, setup.Params)
	}
	for _, m := range metrics {
		l.AddMetric(m)
	}

	e.setup = setup
	e.integrator = l
	return nil
}

// Integrator returns the underlying integrator for adding observers.
func (e *Experiment) Integrator() *integrators.Leapfrog {
	return e.integrator
}

func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.integrator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	l, cfg := e.integrator, e.cfg
	if cfg.Steps <= 0 {
		return nil, field.Invalidf("step count must be positive, got %d", cfg.Steps)
	}

	e.logger.Log("level", "info", "subsys", "integrator", "status", "start",
		"dim", l.Grid().Dim(), "points", l.Grid().Size(), "dt", cfg.Dt, "steps", cfg.Steps,
		"initial", e.setup.Condition.Name(), "terms", len(e.setup.Terms))

	start := time.Now()
	var runErr error
	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
		default:
			runErr = l.Step()
		}
		if runErr != nil {
			break
		}
		if cfg.LogEvery > 0 && l.Steps()%cfg.LogEvery == 0 {
			e.logger.Log("level", "debug", "subsys", "integrator", "step", l.Steps(),
				"t", l.Time(), "peak", l.Current().MaxAbs())
		}
	}

	res := &Result{
		Scenario:   cfg.Scenario,
		Config:     cfg,
		Grid:       l.Grid(),
		Field:      l.Current(),
		StepsTaken: l.Steps(),
		Time:       l.Time(),
		Elapsed:    time.Since(start),
		Metrics:    l.Metrics(),
	}

	var simErr *field.SimulationError
	switch {
	case errors.As(runErr, &simErr):
		e.logger.Log("level", "critical", "subsys", "integrator", "status", "diverged",
			"step", simErr.Step, "t", simErr.Time)
	case runErr != nil:
		e.logger.Log("level", "warning", "subsys", "integrator", "status", "stopped",
			"step", l.Steps(), "err", runErr)
	default:
		e.logger.Log("level", "notice", "subsys", "integrator", "status", "finished",
			"steps", res.StepsTaken, "t", res.Time, "elapsed", res.Elapsed)
	}

	return res, runErr
}
