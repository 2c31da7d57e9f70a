package viz

import (
	"math"
)

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Camera orbits the grid box and projects points onto the canvas.
type Camera struct {
	Distance         float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 4, RotX: -0.5, RotY: 0.6, Zoom: 1.0}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// RotatePoint rotates a point around the camera's axes.
func (c *Camera) RotatePoint(p Vec3) Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project maps a point in the unit cube [-1, 1]³ to dot coordinates on a
// sw x sh canvas. The last result is false when the point is behind the
// camera or off screen.
func (c *Camera) Project(p Vec3, sw, sh int) (int, int, bool) {
	rot := c.RotatePoint(p).Scale(c.Zoom)
	if rot.Z >= c.Distance-0.1 {
		return 0, 0, false
	}
	scale := c.Distance / (c.Distance - rot.Z)
	half := float64(min(sw, sh)) / 3
	sx := int(rot.X*scale*half) + sw/2
	sy := int(-rot.Y*scale*half) + sh/2
	return sx, sy, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

var cubeCorners = []Vec3{
	{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
	{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
}

var cubeEdges = [][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// DrawBox outlines the unit cube.
func DrawBox(c *Canvas, cam *Camera) {
	cw, ch := c.Dots()
	for _, e := range cubeEdges {
		x1, y1, v1 := cam.Project(cubeCorners[e[0]], cw, ch)
		x2, y2, v2 := cam.Project(cubeCorners[e[1]], cw, ch)
		if v1 || v2 {
			c.DrawLine(x1, y1, x2, y2)
		}
	}
}

// DrawCloud sets a dot for every point, scaled into the unit cube by half.
func DrawCloud(c *Canvas, cam *Camera, points []Vec3, half float64) {
	cw, ch := c.Dots()
	for _, p := range points {
		x, y, ok := cam.Project(p.Scale(1/half), cw, ch)
		if ok {
			c.Set(x, y)
		}
	}
}
