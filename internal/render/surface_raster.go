package render

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"
)

// circleKappa places cubic control points so four arcs approximate a circle.
const circleKappa = 0.5522847498

// RasterBackend allocates CPU surfaces. It needs no window or GPU, so it is
// what headless runs and tests render with.
type RasterBackend struct{}

// NewSurface returns a transparent RasterSurface.
func (RasterBackend) NewSurface(w, h int) Surface {
	return NewRasterSurface(w, h)
}

// RasterSurface is a Surface backed by an *image.RGBA, rasterised with
// golang.org/x/image/vector.
type RasterSurface struct {
	img  *image.RGBA
	rast *vector.Rasterizer
}

// NewRasterSurface returns a transparent w×h surface.
func NewRasterSurface(w, h int) *RasterSurface {
	return &RasterSurface{
		img:  image.NewRGBA(image.Rect(0, 0, w, h)),
		rast: vector.NewRasterizer(w, h),
	}
}

// Image exposes the pixels. The image is reused across frames.
func (s *RasterSurface) Image() *image.RGBA {
	return s.img
}

func (s *RasterSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *RasterSurface) Clear() {
	clear(s.img.Pix)
}

func (s *RasterSurface) FillRect(x, y, w, h float64, c color.Color) {
	r := s.begin()
	r.MoveTo(float32(x), float32(y))
	r.LineTo(float32(x+w), float32(y))
	r.LineTo(float32(x+w), float32(y+h))
	r.LineTo(float32(x), float32(y+h))
	r.ClosePath()
	s.end(c)
}

func (s *RasterSurface) FillPolygon(pts []Point, c color.Color) {
	if len(pts) < 3 {
		return
	}
	r := s.begin()
	r.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		r.LineTo(float32(p.X), float32(p.Y))
	}
	r.ClosePath()
	s.end(c)
}

func (s *RasterSurface) FillCircle(cx, cy, radius float64, c color.Color) {
	if radius <= 0 {
		return
	}
	r := s.begin()
	x, y, rad := float32(cx), float32(cy), float32(radius)
	k := float32(circleKappa) * rad
	r.MoveTo(x, y-rad)
	r.CubeTo(x+k, y-rad, x+rad, y-k, x+rad, y)
	r.CubeTo(x+rad, y+k, x+k, y+rad, x, y+rad)
	r.CubeTo(x-k, y+rad, x-rad, y+k, x-rad, y)
	r.CubeTo(x-rad, y-k, x-k, y-rad, x, y-rad)
	r.ClosePath()
	s.end(c)
}

func (s *RasterSurface) StrokeSegments(pts []Point, width float64, c color.Color) {
	if len(pts) < 2 || width <= 0 {
		return
	}
	r := s.begin()
	half := width / 2
	for i := 0; i+1 < len(pts); i += 2 {
		a, b := pts[i], pts[i+1]
		d := b.Sub(a)
		l := d.Length()
		if l == 0 {
			continue
		}
		// Every quad winds the same way relative to its own direction, so
		// overlapping strokes saturate instead of cancelling.
		n := Point{X: -d.Y, Y: d.X}
		n = n.Mul(half / l)
		p0, p1, p2, p3 := a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)
		r.MoveTo(float32(p0.X), float32(p0.Y))
		r.LineTo(float32(p1.X), float32(p1.Y))
		r.LineTo(float32(p2.X), float32(p2.Y))
		r.LineTo(float32(p3.X), float32(p3.Y))
		r.ClosePath()
	}
	s.end(c)
}

func (s *RasterSurface) DrawSurface(src Surface, x, y float64) {
	rs, ok := src.(*RasterSurface)
	if !ok {
		panic(foreignSurface("DrawSurface", src))
	}
	m := f64.Aff3{1, 0, x, 0, 1, y}
	xdraw.NearestNeighbor.Transform(s.img, m, rs.img, rs.img.Bounds(), xdraw.Over, nil)
}

func (s *RasterSurface) DestinationIn(mask Surface) {
	ms, ok := mask.(*RasterSurface)
	if !ok {
		panic(foreignSurface("DestinationIn", mask))
	}
	dst, m := s.img.Pix, ms.img.Pix
	for i := 0; i+3 < len(dst); i += 4 {
		a := uint32(m[i+3])
		switch a {
		case 0xff:
		case 0:
			dst[i], dst[i+1], dst[i+2], dst[i+3] = 0, 0, 0, 0
		default:
			// Premultiplied, so all four channels scale alike.
			dst[i] = uint8((uint32(dst[i])*a + 127) / 255)
			dst[i+1] = uint8((uint32(dst[i+1])*a + 127) / 255)
			dst[i+2] = uint8((uint32(dst[i+2])*a + 127) / 255)
			dst[i+3] = uint8((uint32(dst[i+3])*a + 127) / 255)
		}
	}
}

func (s *RasterSurface) Dispose() {
	s.img = image.NewRGBA(image.Rectangle{})
	s.rast = nil
}

func (s *RasterSurface) begin() *vector.Rasterizer {
	w, h := s.Size()
	s.rast.Reset(w, h)
	return s.rast
}

func (s *RasterSurface) end(c color.Color) {
	s.rast.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{})
}
