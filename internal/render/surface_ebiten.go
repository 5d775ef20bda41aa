package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EbitenBackend allocates GPU surfaces as ebiten images.
type EbitenBackend struct{}

// NewSurface returns an owned, transparent ebiten surface.
func (EbitenBackend) NewSurface(w, h int) Surface {
	return &EbitenSurface{img: ebiten.NewImage(w, h), owned: true}
}

// EbitenSurface is a Surface backed by an *ebiten.Image.
type EbitenSurface struct {
	img   *ebiten.Image
	owned bool
}

// WrapImage adapts an image the caller owns, typically the screen passed to
// Game.Draw. Dispose leaves wrapped images alone.
func WrapImage(img *ebiten.Image) *EbitenSurface {
	return &EbitenSurface{img: img}
}

// Image returns the underlying ebiten image.
func (s *EbitenSurface) Image() *ebiten.Image {
	return s.img
}

func (s *EbitenSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *EbitenSurface) Clear() {
	s.img.Clear()
}

func (s *EbitenSurface) FillRect(x, y, w, h float64, c color.Color) {
	vector.FillRect(s.img, float32(x), float32(y), float32(w), float32(h), c, true)
}

func (s *EbitenSurface) FillPolygon(pts []Point, c color.Color) {
	if len(pts) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()

	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(c)
	vector.FillPath(s.img, &path, &vector.FillOptions{}, op)
}

func (s *EbitenSurface) FillCircle(cx, cy, r float64, c color.Color) {
	vector.FillCircle(s.img, float32(cx), float32(cy), float32(r), c, true)
}

func (s *EbitenSurface) StrokeSegments(pts []Point, width float64, c color.Color) {
	for i := 0; i+1 < len(pts); i += 2 {
		a, b := pts[i], pts[i+1]
		vector.StrokeLine(s.img, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), float32(width), c, true)
	}
}

func (s *EbitenSurface) DrawSurface(src Surface, x, y float64) {
	es, ok := src.(*EbitenSurface)
	if !ok {
		panic(foreignSurface("DrawSurface", src))
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	s.img.DrawImage(es.img, op)
}

func (s *EbitenSurface) DestinationIn(mask Surface) {
	ms, ok := mask.(*EbitenSurface)
	if !ok {
		panic(foreignSurface("DestinationIn", mask))
	}
	op := &ebiten.DrawImageOptions{Blend: ebiten.BlendDestinationIn}
	s.img.DrawImage(ms.img, op)
}

func (s *EbitenSurface) Dispose() {
	if s.owned {
		s.img.Deallocate()
	}
}
