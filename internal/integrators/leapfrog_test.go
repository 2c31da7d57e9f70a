package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/fluxsim/internal/field"
)

type countingObserver struct {
	steps []int
	times []float64
}

func (c *countingObserver) OnStep(step int, t float64, _ field.Field) {
	c.steps = append(c.steps, step)
	c.times = append(c.times, t)
}

type rejectAll struct{}

func (rejectAll) Name() string                                    { return "reject" }
func (rejectAll) Apply(_ *field.Grid, _, _ field.Field, _, _ int) {}
func (rejectAll) CheckGrid(_ *field.Grid) error                   { return field.Invalidf("never valid") }

func sineField(g *field.Grid) field.Field {
	return g.Apply(func(p []float64) float64 { return 0.5 * math.Sin(p[0]) })
}

func TestNewLeapfrogInvalidConfig(t *testing.T) {
	g, _ := field.NewGrid(10, 32)
	phi := sineField(g)
	short := make(field.Field, 10)

	tests := []struct {
		name  string
		p     field.Params
		terms []field.Term
		prev  field.Field
		curr  field.Field
	}{
		{"zero dt", field.Params{Mass: 1, Dt: 0}, nil, phi, phi},
		{"nan dt", field.Params{Mass: 1, Dt: math.NaN()}, nil, phi, phi},
		{"inf mass", field.Params{Mass: math.Inf(1), Dt: 0.01}, nil, phi, phi},
		{"negative steps", field.Params{Dt: 0.01, Steps: -1}, nil, phi, phi},
		{"short previous", field.Params{Dt: 0.01}, nil, short, phi},
		{"short current", field.Params{Dt: 0.01}, nil, phi, short},
		{"nil term", field.Params{Dt: 0.01}, []field.Term{nil}, phi, phi},
		{"term rejects grid", field.Params{Dt: 0.01}, []field.Term{rejectAll{}}, phi, phi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLeapfrog(g, tt.p, tt.terms, tt.prev, tt.curr)
			if !errors.Is(err, field.ErrInvalidConfiguration) {
				t.Errorf("expected ErrInvalidConfiguration, got %v", err)
			}
		})
	}

	if _, err := NewLeapfrog(nil, field.DefaultParams(), nil, phi, phi); !errors.Is(err, field.ErrInvalidConfiguration) {
		t.Errorf("expected nil grid to be rejected, got %v", err)
	}
}

func TestLeapfrogOwnsBuffers(t *testing.T) {
	g, _ := field.NewGrid(10, 32)
	prev, curr := sineField(g), sineField(g)

	l, err := NewLeapfrog(g, field.DefaultParams(), nil, prev, curr)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	curr[0] = 99
	if l.Current()[0] == 99 {
		t.Error("integrator shares the caller's current buffer")
	}

	out := l.Current()
	out[1] = 99
	if l.Current()[1] == 99 {
		t.Error("Current exposes the internal buffer")
	}
}

func TestLeapfrogSingleStepFormula(t *testing.T) {
	g, _ := field.NewGrid(10, 16)
	p := field.Params{Mass: 1.5, Coupling: 0.7, Dt: 0.02}
	prev := g.Apply(func(x []float64) float64 { return 0.4 * math.Cos(x[0]) })
	curr := sineField(g)

	l, _ := NewLeapfrog(g, p, nil, prev, curr)
	if err := l.Step(); err != nil {
		t.Fatalf("step failed: %v", err)
	}

	lap := field.Laplacian(g, curr)
	got := l.Current()
	for k := range curr {
		v := curr[k]
		s := lap[k] - p.Mass*p.Mass*v - p.Coupling*v*v*v
		want := 2*v - prev[k] + p.Dt*p.Dt*s
		if math.Abs(got[k]-want) > 1e-14 {
			t.Errorf("point %d: expected %.15f, got %.15f", k, want, got[k])
		}
	}

	back := l.Previous()
	for k := range curr {
		if back[k] != curr[k] {
			t.Fatalf("point %d: previous should be the pre-step current", k)
		}
	}
}

func TestLeapfrogRunNotifiesObservers(t *testing.T) {
	g, _ := field.NewGrid(10, 16)
	phi := sineField(g)
	l, _ := NewLeapfrog(g, field.Params{Mass: 1, Coupling: 1, Dt: 0.01}, nil, phi, phi)

	obs := &countingObserver{}
	l.AddObserver(obs)

	if _, err := l.Run(5); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(obs.steps) != 5 || obs.steps[4] != 5 {
		t.Errorf("expected steps 1..5, got %v", obs.steps)
	}
	if math.Abs(obs.times[4]-0.05) > 1e-12 {
		t.Errorf("expected final time 0.05, got %f", obs.times[4])
	}
	if l.Steps() != 5 {
		t.Errorf("expected 5 steps taken, got %d", l.Steps())
	}
}

func TestLeapfrogRunRejectsZeroSteps(t *testing.T) {
	g, _ := field.NewGrid(10, 16)
	phi := sineField(g)
	l, _ := NewLeapfrog(g, field.DefaultParams(), nil, phi, phi)

	if _, err := l.Run(0); !errors.Is(err, field.ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration, got %v", err)
	}
	if l.Steps() != 0 {
		t.Error("no step should have been taken")
	}
}

func TestLeapfrogDetectsDivergence(t *testing.T) {
	g, _ := field.NewGrid(1, 16)
	phi := g.Apply(func(x []float64) float64 { return math.Sin(2 * math.Pi * x[0]) })

	l, _ := NewLeapfrog(g, field.Params{Mass: 1, Coupling: 1, Dt: 1}, nil, phi, phi)
	_, err := l.Run(1000)
	if !errors.Is(err, field.ErrNumericalDivergence) {
		t.Fatalf("expected ErrNumericalDivergence, got %v", err)
	}

	var simErr *field.SimulationError
	if !errors.As(err, &simErr) {
		t.Fatalf("expected *SimulationError, got %T", err)
	}
	if simErr.Step < 1 || simErr.Step >= 1000 {
		t.Errorf("unexpected divergence step %d", simErr.Step)
	}

	taken := l.Steps()
	if err := l.Step(); !errors.Is(err, field.ErrNumericalDivergence) {
		t.Errorf("expected further steps to fail, got %v", err)
	}
	if l.Steps() != taken {
		t.Error("integrator stepped after divergence")
	}
}

func TestLeapfrogDivergenceCheckDisabled(t *testing.T) {
	g, _ := field.NewGrid(1, 16)
	phi := g.Apply(func(x []float64) float64 { return math.Sin(2 * math.Pi * x[0]) })

	l, _ := NewLeapfrog(g, field.Params{Mass: 1, Coupling: 1, Dt: 1}, nil, phi, phi)
	l.CheckDivergence = false

	out, err := l.Run(200)
	if err != nil {
		t.Fatalf("expected no error with checks disabled, got %v", err)
	}
	if out.IsValid() {
		t.Error("expected the unchecked run to overflow")
	}
}
