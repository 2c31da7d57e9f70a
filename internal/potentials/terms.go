package potentials

import (
	"math"

	"github.com/san-kum/fluxsim/internal/field"
)

type Gravity struct {
	Strength float64
}

func NewGravity(strength float64) *Gravity {
	return &Gravity{Strength: strength}
}

func (p *Gravity) Name() string { return "gravity" }

func (p *Gravity) Apply(g *field.Grid, phi, dst field.Field, start, end int) {
	r := g.Radius()
	for k := start; k < end; k++ {
		dst[k] += p.Strength * r[k] * phi[k]
	}
}

// Rotation couples each point to its +1 neighbours along x and y.
type Rotation struct {
	Strength float64
}

func NewRotation(strength float64) *Rotation {
	return &Rotation{Strength: strength}
}

func (p *Rotation) Name() string { return "rotation" }

func (p *Rotation) CheckGrid(g *field.Grid) error {
	if g.Dim() < 2 {
		return field.Invalidf("rotation term needs a grid of dimension >= 2, got %d", g.Dim())
	}
	return nil
}

func (p *Rotation) Apply(g *field.Grid, phi, dst field.Field, start, end int) {
	x, y := g.Mesh(0), g.Mesh(1)
	for k := start; k < end; k++ {
		shiftY := phi[g.Neighbor(k, 1, 1)]
		shiftX := phi[g.Neighbor(k, 0, 1)]
		dst[k] += p.Strength * (x[k]*shiftY - y[k]*shiftX)
	}
}

type Atomic struct {
	Strength float64
}

func NewAtomic(strength float64) *Atomic {
	return &Atomic{Strength: strength}
}

func (p *Atomic) Name() string { return "atomic" }

func (p *Atomic) Apply(_ *field.Grid, phi, dst field.Field, start, end int) {
	for k := start; k < end; k++ {
		dst[k] += p.Strength * phi[k]
	}
}

// Barrier acts only inside the slab |x| < HalfWidth.
type Barrier struct {
	Strength  float64
	HalfWidth float64
}

func NewBarrier(strength, halfWidth float64) *Barrier {
	return &Barrier{Strength: strength, HalfWidth: halfWidth}
}

func (p *Barrier) Name() string { return "barrier" }

func (p *Barrier) CheckGrid(_ *field.Grid) error {
	if math.IsNaN(p.HalfWidth) || p.HalfWidth <= 0 {
		return field.Invalidf("barrier half width must be positive, got %g", p.HalfWidth)
	}
	return nil
}

func (p *Barrier) Apply(g *field.Grid, phi, dst field.Field, start, end int) {
	x := g.Mesh(0)
	for k := start; k < end; k++ {
		if math.Abs(x[k]) < p.HalfWidth {
			dst[k] += p.Strength * phi[k]
		}
	}
}

// Evaluate returns the contribution of a single term over the whole grid.
func Evaluate(t field.Term, g *field.Grid, phi field.Field) field.Field {
	dst := g.NewField()
	t.Apply(g, phi, dst, 0, len(dst))
	return dst
}
