package field

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// MaxDim is the highest supported grid dimensionality.
const MaxDim = 3

// Grid is a uniform periodic mesh over [-L/2, L/2] along every axis.
// Axis 0 is x, axis 1 is y and axis 2 is z.
type Grid struct {
	length  float64
	shape   []int
	spacing []float64
	strides []int
	size    int
	coords  [][]float64
	mesh    [][]float64
	radius  []float64
}

// NewGrid builds a grid of extent length with one point count per axis.
//
// Coordinates follow the linspace convention: n points cover both
// endpoints, giving n-1 intervals. The spacing used by finite differences
// is length/n, matching the periodic reading of the same points.
func NewGrid(length float64, n ...int) (*Grid, error) {
	if len(n) < 1 || len(n) > MaxDim {
		return nil, Invalidf("grid dimension must be 1..%d, got %d", MaxDim, len(n))
	}
	if math.IsNaN(length) || math.IsInf(length, 0) || length <= 0 {
		return nil, Invalidf("grid length must be positive and finite, got %g", length)
	}
	for axis, pts := range n {
		if pts < 2 {
			return nil, Invalidf("axis %d needs at least 2 points, got %d", axis, pts)
		}
	}

	dim := len(n)
	g := &Grid{
		length:  length,
		shape:   append([]int(nil), n...),
		spacing: make([]float64, dim),
		strides: make([]int, dim),
		coords:  make([][]float64, dim),
		mesh:    make([][]float64, dim),
	}

	g.size = 1
	for axis := dim - 1; axis >= 0; axis-- {
		g.strides[axis] = g.size
		g.size *= n[axis]
	}

	for axis, pts := range n {
		g.spacing[axis] = length / float64(pts)
		g.coords[axis] = floats.Span(make([]float64, pts), -length/2, length/2)
	}

	for axis := range n {
		m := make([]float64, g.size)
		c, stride, pts := g.coords[axis], g.strides[axis], n[axis]
		for k := range m {
			m[k] = c[(k/stride)%pts]
		}
		g.mesh[axis] = m
	}

	g.radius = make([]float64, g.size)
	for k := range g.radius {
		r2 := 0.0
		for axis := range n {
			v := g.mesh[axis][k]
			r2 += v * v
		}
		g.radius[k] = math.Sqrt(r2)
	}

	return g, nil
}

func (g *Grid) Dim() int            { return len(g.shape) }
func (g *Grid) Length() float64     { return g.length }
func (g *Grid) Size() int           { return g.size }
func (g *Grid) Points(axis int) int { return g.shape[axis] }

// Shape returns a copy of the per-axis point counts.
func (g *Grid) Shape() []int {
	return append([]int(nil), g.shape...)
}

func (g *Grid) Spacing(axis int) float64 { return g.spacing[axis] }
func (g *Grid) Stride(axis int) int      { return g.strides[axis] }

// Coords returns the 1D coordinate array of an axis. Callers must not
// modify it.
func (g *Grid) Coords(axis int) []float64 { return g.coords[axis] }

// Mesh returns the coordinate of axis broadcast over the full grid.
// Callers must not modify it.
func (g *Grid) Mesh(axis int) []float64 { return g.mesh[axis] }

// Radius returns the distance from the origin of every grid point, using
// all present axes. Callers must not modify it.
func (g *Grid) Radius() []float64 { return g.radius }

// Angle returns atan2(y, x) at every grid point. It needs at least two axes.
func (g *Grid) Angle() ([]float64, error) {
	if g.Dim() < 2 {
		return nil, Invalidf("angle needs a grid of dimension >= 2, got %d", g.Dim())
	}
	a := make([]float64, g.size)
	x, y := g.mesh[0], g.mesh[1]
	for k := range a {
		a[k] = math.Atan2(y[k], x[k])
	}
	return a, nil
}

// Index returns the flat index of a multi-index. Components wrap periodically.
func (g *Grid) Index(idx ...int) int {
	flat := 0
	for axis, i := range idx {
		n := g.shape[axis]
		i %= n
		if i < 0 {
			i += n
		}
		flat += i * g.strides[axis]
	}
	return flat
}

// Coord returns the index along axis of the flat index k.
func (g *Grid) Coord(k, axis int) int {
	return (k / g.strides[axis]) % g.shape[axis]
}

// Neighbor returns the flat index reached from k by moving offset points
// along axis, wrapping at the boundary.
func (g *Grid) Neighbor(k, axis, offset int) int {
	n, stride := g.shape[axis], g.strides[axis]
	c := (k / stride) % n
	nc := (c + offset) % n
	if nc < 0 {
		nc += n
	}
	return k + (nc-c)*stride
}

// NewField allocates a zero field shaped like the grid.
func (g *Grid) NewField() Field {
	return make(Field, g.size)
}

// Apply fills a new field with fn evaluated at each point's coordinates.
func (g *Grid) Apply(fn func(pos []float64) float64) Field {
	f := make(Field, g.size)
	pos := make([]float64, g.Dim())
	for k := range f {
		for axis := range pos {
			pos[axis] = g.mesh[axis][k]
		}
		f[k] = fn(pos)
	}
	return f
}

// Check reports whether f matches the grid size.
func (g *Grid) Check(f Field) error {
	if len(f) != g.size {
		return Invalidf("field has %d points, grid has %d", len(f), g.size)
	}
	return nil
}
