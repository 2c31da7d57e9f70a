package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/san-kum/fluxsim/internal/field"
)

// Profile returns the coordinates and values of the field along x. For
// grids of dimension 2 or 3 the line through the middle index of the other
// axes is used.
func Profile(g *field.Grid, phi field.Field) ([]float64, []float64) {
	idx := make([]int, g.Dim())
	for axis := 1; axis < g.Dim(); axis++ {
		idx[axis] = g.Points(axis) / 2
	}

	n := g.Points(0)
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		idx[0] = i
		values[i] = phi[g.Index(idx...)]
	}
	return append([]float64(nil), g.Coords(0)...), values
}

// PowerSpectrum returns |F_k| for k = 0..n/2-1 of a real profile.
func PowerSpectrum(data []float64) []float64 {
	spectrum := fft.FFTReal(data)
	ps := make([]float64, len(spectrum)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}

	return ps
}

// Wavenumbers returns the angular wavenumber of each PowerSpectrum bin for
// n samples spaced dx apart.
func Wavenumbers(n int, dx float64) []float64 {
	k := make([]float64, n/2)
	for i := range k {
		k[i] = 2 * math.Pi * float64(i) / (float64(n) * dx)
	}
	return k
}

// DominantWavenumber returns the wavenumber of the strongest non-constant
// mode of the x profile.
func DominantWavenumber(g *field.Grid, phi field.Field) float64 {
	_, values := Profile(g, phi)
	ps := PowerSpectrum(values)
	if len(ps) < 2 {
		return 0
	}

	best := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[best] {
			best = i
		}
	}
	return Wavenumbers(len(values), g.Spacing(0))[best]
}
