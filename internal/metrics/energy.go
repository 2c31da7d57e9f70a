package metrics

import (
	"math"

	"github.com/san-kum/fluxsim/internal/field"
	"gonum.org/v1/gonum/floats"
)

// FieldEnergy is the discrete energy of the free nonlinear equation,
//
//	E = Σ [ ½φ_t² + ½|∇φ|² + ½m²φ² + ¼gφ⁴ ] dV
//
// with φ_t = (curr - prev)/dt and forward differences for ∇φ. Potential
// terms are not included.
func FieldEnergy(g *field.Grid, p field.Params, prev, curr field.Field) float64 {
	vel := make([]float64, len(curr))
	floats.SubTo(vel, curr, prev)
	floats.Scale(1/p.Dt, vel)
	kinetic := 0.5 * floats.Dot(vel, vel)

	gradient := 0.0
	for axis := 0; axis < g.Dim(); axis++ {
		inv := 1 / g.Spacing(axis)
		for k, v := range curr {
			d := (curr[g.Neighbor(k, axis, 1)] - v) * inv
			gradient += 0.5 * d * d
		}
	}

	m2 := p.Mass * p.Mass
	local := 0.0
	for _, v := range curr {
		v2 := v * v
		local += 0.5*m2*v2 + 0.25*p.Coupling*v2*v2
	}

	dv := 1.0
	for axis := 0; axis < g.Dim(); axis++ {
		dv *= g.Spacing(axis)
	}
	return (kinetic + gradient + local) * dv
}

// Energy reports the field energy at the most recent step.
type Energy struct {
	name   string
	grid   *field.Grid
	params field.Params
	last   field.Field
	energy float64
	valid  bool
}

func NewEnergy(g *field.Grid, p field.Params) *Energy {
	return &Energy{
		name:   "energy",
		grid:   g,
		params: p,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(step int, t float64, phi field.Field) {
	if e.last != nil {
		e.energy = FieldEnergy(e.grid, e.params, e.last, phi)
		e.valid = true
	} else {
		e.last = make(field.Field, len(phi))
	}
	copy(e.last, phi)
}

func (e *Energy) Value() float64 {
	if !e.valid {
		return 0
	}
	return e.energy
}

func (e *Energy) Reset() {
	e.last = nil
	e.energy = 0
	e.valid = false
}

// EnergyDrift reports the largest relative deviation from the first
// measured energy.
type EnergyDrift struct {
	name     string
	energy   *Energy
	initial  float64
	samples  int
	maxDrift float64
}

func NewEnergyDrift(g *field.Grid, p field.Params) *EnergyDrift {
	return &EnergyDrift{
		name:   "energy_drift",
		energy: NewEnergy(g, p),
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(step int, t float64, phi field.Field) {
	e.energy.Observe(step, t, phi)
	if !e.energy.valid {
		return
	}

	current := e.energy.Value()
	if e.samples == 0 {
		e.initial = current
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(current-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.energy.Reset()
	e.initial = 0
	e.samples = 0
	e.maxDrift = 0
}
