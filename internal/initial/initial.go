// Package initial builds the (previous, current) snapshot pairs that seed
// an integration.
package initial

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/fluxsim/internal/field"
)

// Condition produces the snapshots at t = -dt and t = 0.
type Condition interface {
	Name() string
	Build(g *field.Grid, dt float64) (prev, curr field.Field, err error)
}

// Kink is the tanh soliton profile along x, boosted by Velocity.
type Kink struct {
	Velocity float64
}

func (c Kink) Name() string { return "kink" }

func (c Kink) Build(g *field.Grid, dt float64) (field.Field, field.Field, error) {
	profile := func(shift float64) field.Field {
		return g.Apply(func(p []float64) float64 {
			return math.Tanh((p[0] - shift) / math.Sqrt2)
		})
	}
	return profile(c.Velocity * dt), profile(0), nil
}

// Orbital is exp(-r²)·cos(k·r).
type Orbital struct {
	WaveNumber float64
}

func (c Orbital) Name() string { return "orbital" }

func (c Orbital) Build(g *field.Grid, _ float64) (field.Field, field.Field, error) {
	r := g.Radius()
	curr := g.NewField()
	for i := range curr {
		curr[i] = math.Exp(-r[i]*r[i]) * math.Cos(c.WaveNumber*r[i])
	}
	return curr.Clone(), curr, nil
}

// Rotating is exp(-r²)·sin(m·atan2(y, x)).
type Rotating struct {
	Harmonic float64
}

func (c Rotating) Name() string { return "rotating" }

func (c Rotating) Build(g *field.Grid, _ float64) (field.Field, field.Field, error) {
	angle, err := g.Angle()
	if err != nil {
		return nil, nil, err
	}
	r := g.Radius()
	curr := g.NewField()
	for i := range curr {
		curr[i] = math.Exp(-r[i]*r[i]) * math.Sin(c.Harmonic*angle[i])
	}
	return curr.Clone(), curr, nil
}

// Collapse is a unit Gaussian at the origin.
type Collapse struct{}

func (Collapse) Name() string { return "collapse" }

func (Collapse) Build(g *field.Grid, _ float64) (field.Field, field.Field, error) {
	r := g.Radius()
	curr := g.NewField()
	for i := range curr {
		curr[i] = math.Exp(-r[i] * r[i])
	}
	return curr.Clone(), curr, nil
}

// Wave is exp(-ρ²)·sin(k·ρ), with ρ measured from (Offset, 0, 0).
type Wave struct {
	Offset     float64
	WaveNumber float64
}

func (c Wave) Name() string { return "wave" }

func (c Wave) Build(g *field.Grid, _ float64) (field.Field, field.Field, error) {
	curr := g.Apply(func(p []float64) float64 {
		rho2 := 0.0
		for axis, v := range p {
			if axis == 0 {
				v -= c.Offset
			}
			rho2 += v * v
		}
		return math.Exp(-rho2) * math.Sin(c.WaveNumber*math.Sqrt(rho2))
	})
	return curr.Clone(), curr, nil
}

// Uniform is a constant amplitude moving with a uniform velocity.
type Uniform struct {
	Amplitude float64
	Velocity  float64
}

func (c Uniform) Name() string { return "uniform" }

func (c Uniform) Build(g *field.Grid, dt float64) (field.Field, field.Field, error) {
	prev, curr := g.NewField(), g.NewField()
	for i := range curr {
		curr[i] = c.Amplitude
		prev[i] = c.Amplitude - c.Velocity*dt
	}
	return prev, curr, nil
}

// Params carries the optional knobs of named conditions. A nil knob keeps
// the condition's default; an explicit zero is honoured.
type Params struct {
	Velocity   *float64 `yaml:"velocity,omitempty" json:"velocity,omitempty"`
	WaveNumber *float64 `yaml:"wave_number,omitempty" json:"wave_number,omitempty"`
	Harmonic   *float64 `yaml:"harmonic,omitempty" json:"harmonic,omitempty"`
	Offset     *float64 `yaml:"offset,omitempty" json:"offset,omitempty"`
	Amplitude  *float64 `yaml:"amplitude,omitempty" json:"amplitude,omitempty"`
}

// Float returns a pointer to v for setting a knob.
func Float(v float64) *float64 { return &v }

// Clone returns a copy that shares no knob with p.
func (p Params) Clone() Params {
	cp := func(v *float64) *float64 {
		if v == nil {
			return nil
		}
		return Float(*v)
	}
	return Params{
		Velocity:   cp(p.Velocity),
		WaveNumber: cp(p.WaveNumber),
		Harmonic:   cp(p.Harmonic),
		Offset:     cp(p.Offset),
		Amplitude:  cp(p.Amplitude),
	}
}

// Defaults reproduce the constants of the reference scenarios.
const (
	DefaultKinkVelocity     = 0.3
	DefaultOrbitalWaveNum   = 4.0
	DefaultRotatingHarmonic = 4.0
	DefaultWaveOffset       = 5.0
	DefaultWaveNumber       = 6.0
)

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

var conditions = map[string]func(Params) Condition{
	"kink": func(p Params) Condition {
		return Kink{Velocity: orDefault(p.Velocity, DefaultKinkVelocity)}
	},
	"orbital": func(p Params) Condition {
		return Orbital{WaveNumber: orDefault(p.WaveNumber, DefaultOrbitalWaveNum)}
	},
	"rotating": func(p Params) Condition {
		return Rotating{Harmonic: orDefault(p.Harmonic, DefaultRotatingHarmonic)}
	},
	"collapse": func(Params) Condition { return Collapse{} },
	"wave": func(p Params) Condition {
		return Wave{
			Offset:     orDefault(p.Offset, DefaultWaveOffset),
			WaveNumber: orDefault(p.WaveNumber, DefaultWaveNumber),
		}
	},
	"uniform": func(p Params) Condition {
		return Uniform{Amplitude: orDefault(p.Amplitude, 0), Velocity: orDefault(p.Velocity, 0)}
	},
}

func Get(name string, p Params) (Condition, error) {
	fn, ok := conditions[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown initial condition: %s", field.ErrInvalidConfiguration, name)
	}
	return fn(p), nil
}

func List() []string {
	names := make([]string, 0, len(conditions))
	for name := range conditions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
