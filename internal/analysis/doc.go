// Package analysis extracts diagnostics from field snapshots.
//
// The package works on a single snapshot and its grid:
//
//   - [Profile]: the 1D field or the x-midline of a 2D/3D field
//   - [PowerSpectrum]: spatial spectrum of a profile
//   - [RadialProfile]: shell average around the origin
//   - [OddDefect]: deviation from φ(-x) = -φ(x)
//   - [Summarize]: amplitude bounds and moments
//
// # Kink checks
//
// A kink soliton keeps its sign structure and symmetry:
//
//	s := analysis.Summarize(g, phi)
//	if analysis.OddDefect(g, phi) > 0.15*s.MaxAbs {
//	    // symmetry broken
//	}
package analysis
