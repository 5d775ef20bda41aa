// Package render draws a level as three composited raster layers: what the
// player sees, what the monoliths see (in grayscale), and the mask that
// limits the latter to the monoliths' sight polygons.
package render

import (
	"fmt"
	"image/color"
)

// Mode selects how a collaborator colours what it draws.
type Mode int

const (
	ModeNormal Mode = iota
	ModeGray        // surveillance footage: luminance only
)

func (m Mode) String() string {
	if m == ModeGray {
		return "gray"
	}
	return "normal"
}

// Color returns c as it should appear in this mode. Gray mode keeps alpha
// and replaces the colour channels by their luminance.
func (m Mode) Color(c color.Color) color.Color {
	if m != ModeGray {
		return c
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	// Same weights as color.GrayModel.
	y := uint8((19595*uint32(n.R) + 38470*uint32(n.G) + 7471*uint32(n.B) + 1<<15) >> 16)
	return color.NRGBA{R: y, G: y, B: y, A: n.A}
}

// Surface is an off-screen or on-screen raster target. All coordinates are
// in pixels. Implementations only accept other surfaces from the same
// backend in DrawSurface and DestinationIn.
type Surface interface {
	Size() (w, h int)
	// Clear makes every pixel fully transparent.
	Clear()
	FillRect(x, y, w, h float64, c color.Color)
	// FillPolygon fills the closed polygon pts (nonzero winding).
	FillPolygon(pts []Point, c color.Color)
	FillCircle(cx, cy, r float64, c color.Color)
	// StrokeSegments strokes pts[0]-pts[1], pts[2]-pts[3], ... A trailing
	// unpaired point is ignored.
	StrokeSegments(pts []Point, width float64, c color.Color)
	// DrawSurface composites src over this surface with its origin at (x, y).
	DrawSurface(src Surface, x, y float64)
	// DestinationIn scales every pixel by the alpha of the same pixel in
	// mask. Both surfaces must have the same size.
	DestinationIn(mask Surface)
	// Dispose releases the pixels. The surface must not be used afterwards.
	Dispose()
}

// Backend allocates surfaces.
type Backend interface {
	NewSurface(w, h int) Surface
}

// MaskSurface keeps the pixels of target where mask is opaque and clears
// them where mask is transparent, leaving partially covered pixels scaled
// by the mask alpha. Nothing else about target's drawing state changes.
func MaskSurface(target, mask Surface) error {
	tw, th := target.Size()
	mw, mh := mask.Size()
	if tw != mw || th != mh {
		return fmt.Errorf("render: mask %dx%d does not match target %dx%d", mw, mh, tw, th)
	}
	target.DestinationIn(mask)
	return nil
}

func foreignSurface(op string, s Surface) string {
	return fmt.Sprintf("render: %s: surface of type %T belongs to another backend", op, s)
}
