// Package potentials provides pluggable right-hand-side terms for the
// field equation.
//
// Each term implements [field.Term] and accumulates its contribution into
// a destination buffer:
//
//   - [Gravity]: radial coupling V·|r|·φ
//   - [Rotation]: angular coupling V·(x·φ(y+dy) − y·φ(x+dx))
//   - [Atomic]: uniform linear coupling V·φ
//   - [Barrier]: V·φ restricted to the slab |x| < HalfWidth
//
// # Rotation coupling
//
// The rotation term multiplies coordinates by the field shifted one point
// along the other axis. It is not a derivative and so is not an angular
// momentum operator.
//
// Axis 0 is x here, so x multiplies the field shifted along y and y
// multiplies the field shifted along x. On an "xy"-indexed mesh, whose
// first array axis is y, the same expression pairs each coordinate with a
// shift along its own axis. Rotation results computed on such a mesh do
// not match gravity2d runs here.
package potentials
