package analysis

import (
	"math"
	"testing"

	"github.com/san-kum/fluxsim/internal/field"
)

func TestProfileMidline(t *testing.T) {
	g, _ := field.NewGrid(4, 4, 5)
	phi := g.Apply(func(x []float64) float64 { return x[0] + 10*x[1] })

	xs, values := Profile(g, phi)
	if len(xs) != 4 || len(values) != 4 {
		t.Fatalf("expected 4 samples, got %d/%d", len(xs), len(values))
	}
	mid := g.Coords(1)[2]
	for i := range values {
		want := xs[i] + 10*mid
		if math.Abs(values[i]-want) > 1e-12 {
			t.Errorf("sample %d: expected %f, got %f", i, want, values[i])
		}
	}
}

func TestPowerSpectrumPeak(t *testing.T) {
	n := 64
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * 5 * float64(i) / float64(n))
	}

	ps := PowerSpectrum(data)
	if len(ps) != n/2 {
		t.Fatalf("expected %d bins, got %d", n/2, len(ps))
	}
	best := 0
	for i := range ps {
		if ps[i] > ps[best] {
			best = i
		}
	}
	if best != 5 {
		t.Errorf("expected peak at bin 5, got %d", best)
	}
	if math.Abs(ps[5]-float64(n)/2) > 1e-9 {
		t.Errorf("expected magnitude %d, got %f", n/2, ps[5])
	}
}

func TestDominantWavenumber(t *testing.T) {
	// Periodic samples: use the spacing L/N so bins are exact.
	g, _ := field.NewGrid(2*math.Pi, 64)
	phi := make(field.Field, g.Size())
	for i := range phi {
		phi[i] = math.Cos(3 * float64(i) * g.Spacing(0))
	}

	k := DominantWavenumber(g, phi)
	if math.Abs(k-3) > 1e-9 {
		t.Errorf("expected wavenumber 3, got %f", k)
	}
}

func TestOddDefect(t *testing.T) {
	g, _ := field.NewGrid(20, 201)

	odd := g.Apply(func(x []float64) float64 { return math.Tanh(x[0] / math.Sqrt2) })
	if d := OddDefect(g, odd); d > 1e-12 {
		t.Errorf("expected zero defect for tanh, got %g", d)
	}

	even := g.Apply(func(x []float64) float64 { return math.Exp(-x[0] * x[0]) })
	if d := OddDefect(g, even); math.Abs(d-2) > 1e-12 {
		t.Errorf("expected defect 2 for a unit gaussian, got %g", d)
	}
}

func TestSummarize(t *testing.T) {
	g, _ := field.NewGrid(10, 11)
	phi := g.Apply(func(x []float64) float64 { return -x[0] })

	s := Summarize(g, phi)
	if s.Min != -5 || s.Max != 5 || s.MaxAbs != 5 {
		t.Errorf("unexpected bounds %+v", s)
	}
	if math.Abs(s.Mean) > 1e-12 {
		t.Errorf("expected zero mean, got %g", s.Mean)
	}
	if s.Peak[0] != -5 {
		t.Errorf("expected peak at x=-5, got %v", s.Peak)
	}
}

func TestMeanWhere(t *testing.T) {
	g, _ := field.NewGrid(20, 200)
	phi := g.Apply(func(x []float64) float64 { return math.Tanh(x[0]) })

	right := MeanWhere(g, phi, func(x []float64) bool { return x[0] > 0 })
	left := MeanWhere(g, phi, func(x []float64) bool { return x[0] < 0 })
	if right <= 0.5 || left >= -0.5 {
		t.Errorf("expected opposite signs, got %f and %f", right, left)
	}

	none := MeanWhere(g, phi, func([]float64) bool { return false })
	if !math.IsNaN(none) {
		t.Errorf("expected NaN for empty selection, got %f", none)
	}
}

func TestRadialProfile(t *testing.T) {
	g, _ := field.NewGrid(10, 41, 41)
	phi := g.Apply(func(x []float64) float64 { return math.Exp(-(x[0]*x[0] + x[1]*x[1])) })

	centers, means := RadialProfile(g, phi, 8)
	if len(centers) != 8 {
		t.Fatalf("expected 8 bins, got %d", len(centers))
	}
	for b := 1; b < len(means); b++ {
		if means[b] > means[b-1] {
			t.Errorf("expected decaying profile, bin %d: %f > %f", b, means[b], means[b-1])
		}
	}
}
