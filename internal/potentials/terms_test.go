package potentials

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/fluxsim/internal/field"
)

func TestAtomicIsLinear(t *testing.T) {
	g, _ := field.NewGrid(10, 20)
	phi := g.Apply(func(p []float64) float64 { return math.Sin(p[0]) })

	got := Evaluate(NewAtomic(-0.5), g, phi)
	for k := range phi {
		if got[k] != -0.5*phi[k] {
			t.Fatalf("point %d: expected %f, got %f", k, -0.5*phi[k], got[k])
		}
	}
}

func TestGravityUsesAllAxes(t *testing.T) {
	g, _ := field.NewGrid(4, 5, 5, 5)
	phi := g.Apply(func([]float64) float64 { return 1 })

	got := Evaluate(NewGravity(-1), g, phi)
	k := g.Index(4, 4, 4)
	want := -math.Sqrt(3 * 2 * 2)
	if math.Abs(got[k]-want) > 1e-12 {
		t.Errorf("expected %f at corner, got %f", want, got[k])
	}
	if got[g.Index(2, 2, 2)] != 0 {
		t.Error("gravity should vanish at the origin")
	}
}

func TestRotationUsesShiftedField(t *testing.T) {
	g, _ := field.NewGrid(2, 3, 3)
	phi := field.Field{0, 1, 2, 3, 4, 5, 6, 7, 8}

	got := Evaluate(NewRotation(2), g, phi)

	shiftY := field.Shift(g, phi, 1)
	shiftX := field.Shift(g, phi, 0)
	x, y := g.Mesh(0), g.Mesh(1)
	for k := range phi {
		want := 2 * (x[k]*shiftY[k] - y[k]*shiftX[k])
		if math.Abs(got[k]-want) > 1e-12 {
			t.Errorf("point %d: expected %f, got %f", k, want, got[k])
		}
	}

	// (x=1, y=-1) reads phi at (x=1, y=0) and the wrapped (x=-1, y=-1).
	k := g.Index(2, 0)
	want := 2 * (1*phi[g.Index(2, 1)] - (-1)*phi[g.Index(0, 0)])
	if got[k] != want {
		t.Errorf("corner: expected %f, got %f", want, got[k])
	}
}

func TestBarrierRestrictedToSlab(t *testing.T) {
	g, _ := field.NewGrid(10, 41, 5)
	phi := g.Apply(func([]float64) float64 { return 1 })

	got := Evaluate(NewBarrier(-2, 1), g, phi)
	x := g.Mesh(0)
	inside := 0
	for k := range got {
		if math.Abs(x[k]) < 1 {
			inside++
			if got[k] != -2 {
				t.Errorf("point %d (x=%f): expected -2, got %f", k, x[k], got[k])
			}
		} else if got[k] != 0 {
			t.Errorf("point %d (x=%f): expected 0 outside barrier, got %f", k, x[k], got[k])
		}
	}
	if inside == 0 {
		t.Error("expected some points inside the barrier")
	}
}

func TestTermsAccumulate(t *testing.T) {
	g, _ := field.NewGrid(10, 8)
	phi := g.Apply(func([]float64) float64 { return 2 })

	dst := g.NewField()
	for k := range dst {
		dst[k] = 1
	}
	NewAtomic(3).Apply(g, phi, dst, 0, len(dst))
	for k := range dst {
		if dst[k] != 7 {
			t.Fatalf("point %d: expected accumulated 7, got %f", k, dst[k])
		}
	}
}

func TestRegistryBuild(t *testing.T) {
	r := NewRegistry()
	g2, _ := field.NewGrid(10, 8, 8)
	g1, _ := field.NewGrid(10, 8)

	terms, err := r.Build(g2, []Spec{
		{Name: "gravity", Strength: -1},
		{Name: "rotation", Strength: -0.8},
		{Name: "barrier", Strength: -2},
	})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if len(terms) != 3 {
		t.Fatalf("expected 3 terms, got %d", len(terms))
	}
	if b := terms[2].(*Barrier); b.HalfWidth != DefaultBarrierWidth {
		t.Errorf("expected default barrier width, got %f", b.HalfWidth)
	}

	if _, err := r.Build(g1, []Spec{{Name: "rotation", Strength: 1}}); !errors.Is(err, field.ErrInvalidConfiguration) {
		t.Errorf("expected rotation on 1D grid to fail, got %v", err)
	}
	if _, err := r.Build(g1, []Spec{{Name: "magnetic"}}); !errors.Is(err, field.ErrInvalidConfiguration) {
		t.Errorf("expected unknown term to fail, got %v", err)
	}
}
