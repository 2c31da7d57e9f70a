package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/fluxsim/internal/field"
	"github.com/san-kum/fluxsim/internal/integrators"
)

func TestFieldEnergyStaticUniform(t *testing.T) {
	g, _ := field.NewGrid(10, 20, 20)
	p := field.Params{Mass: 1, Coupling: 2, Dt: 0.01}
	phi := g.Apply(func([]float64) float64 { return 0.5 })

	dv := g.Spacing(0) * g.Spacing(1)
	want := float64(g.Size()) * dv * (0.5*0.25 + 0.25*2*0.0625)

	got := FieldEnergy(g, p, phi, phi)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("expected energy %f, got %f", want, got)
	}
}

func TestEnergyNeedsTwoSamples(t *testing.T) {
	g, _ := field.NewGrid(10, 16)
	m := NewEnergy(g, field.DefaultParams())
	phi := g.Apply(func(x []float64) float64 { return math.Sin(x[0]) })

	m.Observe(1, 0.01, phi)
	if m.Value() != 0 {
		t.Errorf("expected zero before two samples, got %f", m.Value())
	}

	m.Observe(2, 0.02, phi)
	if m.Value() == 0 {
		t.Error("expected non-zero energy after two samples")
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyDriftSmallForStableRun(t *testing.T) {
	g, _ := field.NewGrid(2*math.Pi*4, 128)
	p := field.Params{Mass: 1, Coupling: 1, Dt: 0.002}
	phi := g.Apply(func(x []float64) float64 { return 0.3 * math.Cos(x[0]/2) })

	l, err := integrators.NewLeapfrog(g, p, nil, phi, phi)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	drift := NewEnergyDrift(g, p)
	l.AddMetric(drift)

	if _, err := l.Run(500); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if drift.Value() > 2e-2 {
		t.Errorf("expected drift below 2e-2, got %g", drift.Value())
	}
}

func TestStabilityAndPeak(t *testing.T) {
	s := NewStability(1.0)
	pk := NewPeak()
	n := NewNorm()

	for i, f := range []field.Field{{0.5, -0.2}, {1.5, 0}, {0.1, -0.9}, {-3, 0}} {
		s.Observe(i+1, 0, f)
		pk.Observe(i+1, 0, f)
		n.Observe(i+1, 0, f)
	}

	if s.Value() != 0.5 {
		t.Errorf("expected stability 0.5, got %f", s.Value())
	}
	if pk.Value() != 3 {
		t.Errorf("expected peak 3, got %f", pk.Value())
	}
	if n.Value() <= 0 {
		t.Error("expected positive mean norm")
	}

	s.Reset()
	pk.Reset()
	n.Reset()
	if s.Value() != 1 || pk.Value() != 0 || n.Value() != 0 {
		t.Error("expected metrics to reset")
	}
}
