package viz

import (
	"math"
	"strings"
)

// Braille cells hold 2x4 dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
const brailleBase = 0x2800

var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// bayer is a 2x2 ordered-dither matrix used to shade intensities.
var bayer = [2][2]float64{
	{0.125, 0.625},
	{0.875, 0.375},
}

// Canvas is a Braille pixel buffer of Width x Height cells, which is
// 2*Width x 4*Height dots.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Dots returns the canvas size in dots.
func (c *Canvas) Dots() (int, int) { return c.Width * 2, c.Height * 4 }

// Set turns on the dot at (x, y). Out-of-range dots are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= pixelMap[y%4][x%2]
}

// IsSet reports whether the dot at (x, y) is on.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&pixelMap[y%4][x%2] != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBase
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawProfile plots ys against their index, scaled so that [-limit, limit]
// fills the canvas height. A centre line marks zero.
func (c *Canvas) DrawProfile(ys []float64, limit float64) {
	if len(ys) == 0 || limit <= 0 {
		return
	}
	cw, ch := c.Dots()
	toY := func(v float64) int {
		v = math.Max(-limit, math.Min(limit, v))
		return int(math.Round((1 - (v/limit+1)/2) * float64(ch-1)))
	}

	for x := 0; x < cw; x += 4 {
		c.Set(x, ch/2)
	}

	prevX, prevY := -1, 0
	for x := 0; x < cw; x++ {
		i := x * len(ys) / cw
		y := toY(ys[i])
		if prevX >= 0 {
			c.DrawLine(prevX, prevY, x, y)
		}
		prevX, prevY = x, y
	}
}

// Shade fills the canvas from an intensity function on [0, 1] sampled at
// every dot, using ordered dithering.
func (c *Canvas) Shade(intensity func(u, v float64) float64) {
	cw, ch := c.Dots()
	for y := 0; y < ch; y++ {
		for x := 0; x < cw; x++ {
			u := (float64(x) + 0.5) / float64(cw)
			v := (float64(y) + 0.5) / float64(ch)
			if intensity(u, v) > bayer[y%2][x%2] {
				c.Set(x, y)
			}
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
