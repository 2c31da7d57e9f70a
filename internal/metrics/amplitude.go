package metrics

import (
	"math"

	"github.com/san-kum/fluxsim/internal/field"
)

// Peak tracks the largest absolute amplitude seen during a run.
type Peak struct {
	name string
	peak float64
}

func NewPeak() *Peak {
	return &Peak{name: "peak_amplitude"}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(step int, t float64, phi field.Field) {
	p.peak = math.Max(p.peak, phi.MaxAbs())
}

func (p *Peak) Value() float64 { return p.peak }

func (p *Peak) Reset() { p.peak = 0 }

// Norm is the mean L2 norm of the field over observed steps.
type Norm struct {
	name    string
	sum     float64
	samples int
}

func NewNorm() *Norm {
	return &Norm{name: "mean_norm"}
}

func (n *Norm) Name() string { return n.name }

func (n *Norm) Observe(step int, t float64, phi field.Field) {
	n.sum += phi.Norm()
	n.samples++
}

func (n *Norm) Value() float64 {
	if n.samples == 0 {
		return 0
	}
	return n.sum / float64(n.samples)
}

func (n *Norm) Reset() {
	n.sum = 0
	n.samples = 0
}

// Defaults returns the metrics recorded for every stored run.
func Defaults(g *field.Grid, p field.Params) []field.Metric {
	return []field.Metric{
		NewEnergy(g, p),
		NewEnergyDrift(g, p),
		NewStability(10.0),
		NewPeak(),
		NewNorm(),
	}
}
