package render

import (
	"image/color"

	"seehuhn.de/go/geom/vec"
)

// Point is a 2D position. World geometry uses tile units; Surface methods
// take pixels.
type Point = vec.Vec2

// Canvas draws onto a Surface in scaled, translated units. The renderer
// hands collaborators a tile-unit canvas for world content and a pixel-unit
// canvas for UI. Translate returns a new canvas, so a transform only lasts
// as long as the value that carries it.
type Canvas struct {
	dst    Surface
	ox, oy float64 // pixel offset of the unit origin
	sx, sy float64 // pixels per unit
}

// NewCanvas returns a canvas over dst where one unit is sx×sy pixels.
func NewCanvas(dst Surface, sx, sy float64) *Canvas {
	return &Canvas{dst: dst, sx: sx, sy: sy}
}

// Surface returns the surface being drawn on.
func (c *Canvas) Surface() Surface {
	return c.dst
}

// Scale returns the pixels per unit on each axis.
func (c *Canvas) Scale() (float64, float64) {
	return c.sx, c.sy
}

// Translate returns a canvas whose origin is moved by (dx, dy) pixels.
func (c *Canvas) Translate(dx, dy float64) *Canvas {
	t := *c
	t.ox += dx
	t.oy += dy
	return &t
}

// ToPixels maps a point in canvas units to surface pixels.
func (c *Canvas) ToPixels(p Point) Point {
	return Point{X: c.ox + p.X*c.sx, Y: c.oy + p.Y*c.sy}
}

// FillRect fills a rectangle given in canvas units.
func (c *Canvas) FillRect(x, y, w, h float64, col color.Color) {
	c.dst.FillRect(c.ox+x*c.sx, c.oy+y*c.sy, w*c.sx, h*c.sy, col)
}

// FillPolygon fills a closed polygon given in canvas units.
func (c *Canvas) FillPolygon(pts []Point, col color.Color) {
	c.dst.FillPolygon(c.mapPoints(pts), col)
}

// FillCircle fills a circle centred at (x, y) in canvas units. The radius
// is in pixels so markers keep their size at any tile scale.
func (c *Canvas) FillCircle(x, y, r float64, col color.Color) {
	p := c.ToPixels(Point{X: x, Y: y})
	c.dst.FillCircle(p.X, p.Y, r, col)
}

// StrokeSegments strokes start/end pairs given in canvas units with a
// width in pixels.
func (c *Canvas) StrokeSegments(pts []Point, width float64, col color.Color) {
	c.dst.StrokeSegments(c.mapPoints(pts), width, col)
}

// DrawSurface composites src with its origin at (x, y) canvas units.
func (c *Canvas) DrawSurface(src Surface, x, y float64) {
	p := c.ToPixels(Point{X: x, Y: y})
	c.dst.DrawSurface(src, p.X, p.Y)
}

func (c *Canvas) mapPoints(pts []Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = c.ToPixels(p)
	}
	return out
}
