package integrators

import (
	"math"

	"github.com/san-kum/fluxsim/internal/field"
)

// minChunk is the smallest slab of grid points handed to a worker.
const minChunk = 4096

// Leapfrog advances φ'' = ∇²φ − m²φ − gφ³ + Σ terms with the explicit
// Störmer-Verlet update φ_next = 2φ − φ_prev + dt²·S(φ).
//
// It owns its three snapshots exclusively. Not safe for concurrent use.
type Leapfrog struct {
	grid   *field.Grid
	params field.Params
	terms  []field.Term

	prev, curr, next field.Field
	source           field.Field

	step      int
	observers []field.Observer
	metrics   []field.Metric

	// CheckDivergence stops stepping at the first non-finite value.
	CheckDivergence bool
	failed          error
}

// NewLeapfrog validates the configuration and copies prev and curr into
// buffers owned by the integrator.
func NewLeapfrog(g *field.Grid, p field.Params, terms []field.Term, prev, curr field.Field) (*Leapfrog, error) {
	if g == nil {
		return nil, field.Invalidf("grid is required")
	}
	if err := validateParams(p); err != nil {
		return nil, err
	}
	if err := g.Check(prev); err != nil {
		return nil, err
	}
	if err := g.Check(curr); err != nil {
		return nil, err
	}
	for _, t := range terms {
		if t == nil {
			return nil, field.Invalidf("nil potential term")
		}
		if c, ok := t.(field.GridChecker); ok {
			if err := c.CheckGrid(g); err != nil {
				return nil, err
			}
		}
	}

	return &Leapfrog{
		grid:            g,
		params:          p,
		terms:           append([]field.Term(nil), terms...),
		prev:            prev.Clone(),
		curr:            curr.Clone(),
		next:            g.NewField(),
		source:          g.NewField(),
		CheckDivergence: true,
	}, nil
}

func validateParams(p field.Params) error {
	if math.IsNaN(p.Dt) || math.IsInf(p.Dt, 0) || p.Dt == 0 {
		return field.Invalidf("dt must be finite and non-zero, got %g", p.Dt)
	}
	if p.Steps < 0 {
		return field.Invalidf("step count must not be negative, got %d", p.Steps)
	}
	if math.IsNaN(p.Mass) || math.IsInf(p.Mass, 0) {
		return field.Invalidf("mass must be finite, got %g", p.Mass)
	}
	if math.IsNaN(p.Coupling) || math.IsInf(p.Coupling, 0) {
		return field.Invalidf("coupling must be finite, got %g", p.Coupling)
	}
	return nil
}

func (l *Leapfrog) AddObserver(o field.Observer) { l.observers = append(l.observers, o) }

func (l *Leapfrog) AddMetric(m field.Metric) {
	m.Reset()
	l.metrics = append(l.metrics, m)
}

func (l *Leapfrog) Grid() *field.Grid     { return l.grid }
func (l *Leapfrog) Params() field.Params  { return l.params }
func (l *Leapfrog) Steps() int            { return l.step }
func (l *Leapfrog) Time() float64         { return float64(l.step) * l.params.Dt }
func (l *Leapfrog) Current() field.Field  { return l.curr.Clone() }
func (l *Leapfrog) Previous() field.Field { return l.prev.Clone() }
func (l *Leapfrog) Terms() []field.Term   { return append([]field.Term(nil), l.terms...) }

// Source evaluates the right-hand side S on the current snapshot without
// advancing the integrator.
func (l *Leapfrog) Source() field.Field {
	l.evalSource()
	return l.source.Clone()
}

func (l *Leapfrog) evalSource() {
	g, phi, src := l.grid, l.curr, l.source
	m2, c := l.params.Mass*l.params.Mass, l.params.Coupling

	field.ParallelFor(len(phi), minChunk, func(start, end int) {
		field.LaplacianRange(g, phi, src, start, end)
		for k := start; k < end; k++ {
			v := phi[k]
			src[k] += -m2*v - c*v*v*v
		}
		for _, t := range l.terms {
			t.Apply(g, phi, src, start, end)
		}
	})
}

// Step advances the field by one time step.
func (l *Leapfrog) Step() error {
	if l.failed != nil {
		return l.failed
	}

	l.evalSource()

	dt2 := l.params.Dt * l.params.Dt
	prev, curr, next, src := l.prev, l.curr, l.next, l.source
	field.ParallelFor(len(curr), minChunk, func(start, end int) {
		for k := start; k < end; k++ {
			next[k] = 2*curr[k] - prev[k] + dt2*src[k]
		}
	})

	l.prev, l.curr, l.next = curr, next, prev
	l.step++

	if l.CheckDivergence && !l.curr.IsValid() {
		l.failed = &field.SimulationError{
			Step:    l.step,
			Time:    l.Time(),
			Wrapped: field.ErrNumericalDivergence,
		}
		return l.failed
	}

	t := l.Time()
	for _, m := range l.metrics {
		m.Observe(l.step, t, l.curr)
	}
	for _, o := range l.observers {
		o.OnStep(l.step, t, l.curr)
	}

	return nil
}

// Run performs nt sequential steps and returns the final snapshot.
func (l *Leapfrog) Run(nt int) (field.Field, error) {
	if nt <= 0 {
		return nil, field.Invalidf("step count must be positive, got %d", nt)
	}
	for i := 0; i < nt; i++ {
		if err := l.Step(); err != nil {
			return l.Current(), err
		}
	}
	return l.Current(), nil
}

// Metrics returns the current value of every registered metric.
func (l *Leapfrog) Metrics() map[string]float64 {
	out := make(map[string]float64, len(l.metrics))
	for _, m := range l.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}
