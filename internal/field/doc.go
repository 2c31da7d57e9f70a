// Package field provides the core primitives for integrating scalar field
// equations on periodic grids.
//
// The package defines the fundamental types shared by integrators, terms
// and output collaborators:
//
//   - [Grid]: immutable uniform mesh of dimension 1, 2 or 3
//   - [Field]: flat snapshot of the field amplitude over a grid
//   - [Term]: pluggable contribution to the right-hand side
//   - [Observer] and [Metric]: per-step hooks for integrators
//
// # Layout
//
// Fields are stored row-major with axis 0 (x) outermost, so for a 3D grid
// the flat index of (i, j, k) is (i*Ny+j)*Nz+k. Every neighbour lookup wraps
// modulo the axis length: the grid models a torus and has no edges.
//
// # Example
//
//	g, _ := field.NewGrid(20, 200)
//	lap := field.Laplacian(g, phi)
//
// # Thread Safety
//
// A Grid is immutable and may be shared. Fields are plain slices and carry
// no synchronisation.
package field
