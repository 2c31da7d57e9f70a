package analysis

import (
	"math"

	"github.com/san-kum/fluxsim/internal/field"
	"gonum.org/v1/gonum/floats"
)

// Summary holds amplitude statistics of one snapshot.
type Summary struct {
	Min    float64
	Max    float64
	MaxAbs float64
	Mean   float64
	RMS    float64
	Norm   float64
	// Peak is the position of the largest |φ|.
	Peak []float64
}

func Summarize(g *field.Grid, phi field.Field) Summary {
	n := float64(len(phi))
	norm := floats.Norm(phi, 2)

	abs := make([]float64, len(phi))
	for k, v := range phi {
		abs[k] = math.Abs(v)
	}
	peakIdx := floats.MaxIdx(abs)
	peak := make([]float64, g.Dim())
	for axis := range peak {
		peak[axis] = g.Mesh(axis)[peakIdx]
	}

	return Summary{
		Min:    floats.Min(phi),
		Max:    floats.Max(phi),
		MaxAbs: abs[peakIdx],
		Mean:   floats.Sum(phi) / n,
		RMS:    norm / math.Sqrt(n),
		Norm:   norm,
		Peak:   peak,
	}
}

// MeanWhere averages phi over the points whose position satisfies keep.
// It returns NaN when no point is selected.
func MeanWhere(g *field.Grid, phi field.Field, keep func(pos []float64) bool) float64 {
	sum, count := 0.0, 0
	pos := make([]float64, g.Dim())
	for k, v := range phi {
		for axis := range pos {
			pos[axis] = g.Mesh(axis)[k]
		}
		if keep(pos) {
			sum += v
			count++
		}
	}
	if count == 0 {
		return math.NaN()
	}
	return sum / float64(count)
}

// OddDefect returns max |φ(x) + φ(-x)| mirroring along the x axis only.
// Linspace coordinates make index i and n-1-i exact mirrors.
func OddDefect(g *field.Grid, phi field.Field) float64 {
	n := g.Points(0)
	defect := 0.0
	for k, v := range phi {
		i := g.Coord(k, 0)
		mirror := g.Neighbor(k, 0, n-1-2*i)
		defect = math.Max(defect, math.Abs(v+phi[mirror]))
	}
	return defect
}

// RadialProfile averages phi over bins shells of equal width between the
// origin and the largest radius on the grid. Empty shells are NaN.
func RadialProfile(g *field.Grid, phi field.Field, bins int) ([]float64, []float64) {
	if bins < 1 {
		bins = 1
	}
	r := g.Radius()
	rmax := floats.Max(r)

	sums := make([]float64, bins)
	counts := make([]int, bins)
	for k, v := range phi {
		b := int(r[k] / rmax * float64(bins))
		if b >= bins {
			b = bins - 1
		}
		sums[b] += v
		counts[b]++
	}

	centers := make([]float64, bins)
	means := make([]float64, bins)
	width := rmax / float64(bins)
	for b := range means {
		centers[b] = (float64(b) + 0.5) * width
		if counts[b] == 0 {
			means[b] = math.NaN()
			continue
		}
		means[b] = sums[b] / float64(counts[b])
	}
	return centers, means
}
