package export

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/fluxsim/internal/field"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Render writes a PNG of the snapshot: a line for 1D grids, a heatmap for
// 2D grids and a projected scatter for 3D grids.
func Render(filename string, g *field.Grid, phi field.Field, o Options) error {
	if err := g.Check(phi); err != nil {
		return err
	}
	o = o.withDefaults()

	switch g.Dim() {
	case 1:
		return renderLine(filename, g, phi, o)
	case 2:
		return renderHeatmap(filename, planeGrid{g: g, phi: phi}, o)
	case 3:
		return renderScatter(filename, g, phi, o)
	}
	return field.Invalidf("cannot render a grid of dimension %d", g.Dim())
}

// RenderSlice writes a heatmap of the plane z = z_mid of a 3D snapshot.
func RenderSlice(filename string, g *field.Grid, phi field.Field, o Options) error {
	if g.Dim() != 3 {
		return field.Invalidf("slice needs a 3D grid, got %d", g.Dim())
	}
	if err := g.Check(phi); err != nil {
		return err
	}
	return renderHeatmap(filename, planeGrid{g: g, phi: phi, k: g.Points(2) / 2}, o.withDefaults())
}

func newFieldPlot(title, x, y string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = x
	p.Y.Label.Text = y
	stylePlot(p)
	return p
}

func renderLine(filename string, g *field.Grid, phi field.Field, o Options) error {
	p := newFieldPlot(titleOr(o.Title, "Fluxon Field"), "x", "φ")

	xs := g.Coords(0)
	pts := make(plotter.XYs, len(xs))
	for i := range pts {
		pts[i].X = xs[i]
		pts[i].Y = phi[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(2)
	p.Add(line, plotter.NewGrid())

	return savePlotPNG(p, o, filename)
}

// planeGrid exposes the (x, y) plane at z index k as a heatmap grid.
type planeGrid struct {
	g   *field.Grid
	phi field.Field
	k   int
}

func (p planeGrid) Dims() (c, r int)   { return p.g.Points(0), p.g.Points(1) }
func (p planeGrid) X(c int) float64    { return p.g.Coords(0)[c] }
func (p planeGrid) Y(r int) float64    { return p.g.Coords(1)[r] }
func (p planeGrid) Z(c, r int) float64 { return p.phi[p.index(c, r)] }

func (p planeGrid) index(c, r int) int {
	if p.g.Dim() == 3 {
		return p.g.Index(c, r, p.k)
	}
	return p.g.Index(c, r)
}

func (p planeGrid) bounds() (float64, float64) {
	c, r := p.Dims()
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := 0; i < c; i++ {
		for j := 0; j < r; j++ {
			v := p.Z(i, j)
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}
	return lo, hi
}

func colorMap(lo, hi float64) palette.ColorMap {
	if hi <= lo {
		lo, hi = lo-0.5, hi+0.5
	}
	cm := moreland.SmoothBlueRed()
	cm.SetMin(lo)
	cm.SetMax(hi)
	return cm
}

func colorBar(cm palette.ColorMap) *plot.Plot {
	bar := plot.New()
	bar.Add(&plotter.ColorBar{ColorMap: cm, Vertical: true, Colors: 255})
	bar.HideX()
	bar.Y.Label.Text = ColorBarLabel
	stylePlot(bar)
	return bar
}

func renderHeatmap(filename string, pg planeGrid, o Options) error {
	p := newFieldPlot(titleOr(o.Title, "Fluxon Field"), "x", "y")

	cm := colorMap(pg.bounds())
	hm := plotter.NewHeatMap(pg, cm.Palette(255))
	hm.Min, hm.Max = cm.Min(), cm.Max()
	p.Add(hm)

	return saveWithColorBar(p, colorBar(cm), o, filename)
}

// Isometric view used by the 3D scatter.
const (
	viewYaw   = math.Pi / 5
	viewPitch = math.Pi / 7
)

// Project rotates pos by the fixed view and returns screen coordinates and
// depth. Larger depth is further from the viewer.
func Project(pos [3]float64) (sx, sy, depth float64) {
	cy, sy0 := math.Cos(viewYaw), math.Sin(viewYaw)
	cp, sp := math.Cos(viewPitch), math.Sin(viewPitch)

	x := cy*pos[0] - sy0*pos[1]
	y := sy0*pos[0] + cy*pos[1]
	z := pos[2]

	return x, cp*z - sp*y, cp*y + sp*z
}

// Cloud returns the flat indices with |φ| above frac of the peak, ordered
// back to front under Project.
func Cloud(g *field.Grid, phi field.Field, frac float64) []int {
	peak := math.Max(math.Abs(floats.Max(phi)), math.Abs(floats.Min(phi)))
	if peak == 0 {
		return nil
	}
	cut := frac * peak

	idx := make([]int, 0)
	depth := make(map[int]float64)
	for k, v := range phi {
		if math.Abs(v) < cut {
			continue
		}
		_, _, d := Project(position(g, k))
		idx = append(idx, k)
		depth[k] = d
	}
	sort.SliceStable(idx, func(a, b int) bool { return depth[idx[a]] > depth[idx[b]] })
	return idx
}

func position(g *field.Grid, k int) [3]float64 {
	var pos [3]float64
	for axis := 0; axis < g.Dim(); axis++ {
		pos[axis] = g.Mesh(axis)[k]
	}
	return pos
}

func renderScatter(filename string, g *field.Grid, phi field.Field, o Options) error {
	p := newFieldPlot(titleOr(o.Title, "Fluxon Field"), "", "")
	p.HideAxes()

	idx := Cloud(g, phi, o.Threshold)
	if len(idx) == 0 {
		return fmt.Errorf("no points above %.0f%% of the peak", o.Threshold*100)
	}

	pts := make(plotter.XYs, len(idx))
	vals := make([]float64, len(idx))
	for i, k := range idx {
		pts[i].X, pts[i].Y, _ = Project(position(g, k))
		vals[i] = phi[k]
	}
	cm := colorMap(floats.Min(vals), floats.Max(vals))

	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		c, err := cm.At(vals[i])
		if err != nil {
			c = cm.Palette(2).Colors()[0]
		}
		return draw.GlyphStyle{Color: c, Radius: vg.Points(2), Shape: draw.CircleGlyph{}}
	}
	p.Add(sc)

	return saveWithColorBar(p, colorBar(cm), o, filename)
}

func titleOr(title, fallback string) string {
	if title == "" {
		return fallback
	}
	return title
}
