package export

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// ColorBarLabel titles the intensity scale of heatmaps and scatters.
const ColorBarLabel = "Fluxon Field Intensity"

type Options struct {
	Title string
	// Width and Height are in inches.
	Width  float64
	Height float64
	DPI    int
	// Threshold keeps 3D points with |φ| above this fraction of the peak.
	Threshold float64
}

func DefaultOptions() Options {
	return Options{
		Width:     8,
		Height:    6.5,
		DPI:       150,
		Threshold: 0.2,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.DPI <= 0 {
		o.DPI = d.DPI
	}
	if o.Threshold <= 0 || o.Threshold >= 1 {
		o.Threshold = d.Threshold
	}
	return o
}

func stylePlot(p *plot.Plot) {
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Title.Padding = vg.Points(8)
	p.X.Label.TextStyle.Font.Size = vg.Points(13)
	p.Y.Label.TextStyle.Font.Size = vg.Points(13)
	p.X.Tick.Label.Font.Size = vg.Points(10)
	p.Y.Tick.Label.Font.Size = vg.Points(10)
	p.X.Padding = vg.Points(6)
	p.Y.Padding = vg.Points(6)
}

func newCanvas(o Options) *vgimg.Canvas {
	return vgimg.NewWith(
		vgimg.UseWH(vg.Length(o.Width)*vg.Inch, vg.Length(o.Height)*vg.Inch),
		vgimg.UseDPI(o.DPI),
	)
}

func writePNG(c *vgimg.Canvas, filename string) error {
	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create directory: %w", err)
		}
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("cannot create png: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	png := vgimg.PngCanvas{Canvas: c}
	if _, err := png.WriteTo(bw); err != nil {
		return fmt.Errorf("cannot write png: %w", err)
	}
	return bw.Flush()
}

func savePlotPNG(p *plot.Plot, o Options, filename string) error {
	c := newCanvas(o)
	p.Draw(draw.New(c))
	return writePNG(c, filename)
}

// saveWithColorBar draws main on the left and bar in a narrow strip on the
// right of the same image.
func saveWithColorBar(main, bar *plot.Plot, o Options, filename string) error {
	c := newCanvas(o)
	dc := draw.New(c)
	strip := vg.Length(o.Width) * vg.Inch * 0.18

	main.Draw(draw.Crop(dc, 0, -strip, 0, 0))
	bar.Draw(draw.Crop(dc, dc.Max.X-dc.Min.X-strip, 0, 0, 0))
	return writePNG(c, filename)
}
