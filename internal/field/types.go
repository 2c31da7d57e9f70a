package field

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Field is a snapshot of the scalar field amplitude at every grid point.
type Field []float64

func (f Field) Clone() Field {
	c := make(Field, len(f))
	copy(c, f)
	return c
}

// IsValid reports whether every value is finite.
func (f Field) IsValid() bool {
	for _, v := range f {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (f Field) Norm() float64 {
	if len(f) == 0 {
		return 0
	}
	return floats.Norm(f, 2)
}

// MaxAbs returns the largest absolute amplitude.
func (f Field) MaxAbs() float64 {
	if len(f) == 0 {
		return 0
	}
	return math.Max(math.Abs(floats.Max(f)), math.Abs(floats.Min(f)))
}

func (f Field) Sum() float64 {
	return floats.Sum(f)
}

// Term is an additive contribution to the right-hand side of the equation
// of motion. Apply accumulates the term evaluated on phi into dst[start:end].
// Implementations must only read phi and must only write dst inside the
// given range, so disjoint ranges can be evaluated concurrently.
type Term interface {
	Name() string
	Apply(g *Grid, phi, dst Field, start, end int)
}

// GridChecker is implemented by terms that only make sense on some grids.
type GridChecker interface {
	CheckGrid(g *Grid) error
}

// Params are the equation coefficients and stepping controls of a run.
type Params struct {
	Mass     float64
	Coupling float64
	Dt       float64
	Steps    int
}

func DefaultParams() Params {
	return Params{
		Mass:     1.0,
		Coupling: 1.0,
		Dt:       0.01,
		Steps:    500,
	}
}

type Observer interface {
	OnStep(step int, t float64, phi Field)
}

type Metric interface {
	Name() string
	Observe(step int, t float64, phi Field)
	Value() float64
	Reset()
}
