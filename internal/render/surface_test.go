package render

import (
	"image/color"
	"testing"
)

func TestMode_ColorNormalUnchanged(t *testing.T) {
	c := color.RGBA{R: 10, G: 200, B: 30, A: 255}
	if got := ModeNormal.Color(c); got != color.Color(c) {
		t.Fatalf("normal mode changed colour: %v", got)
	}
}

func TestMode_ColorGrayKeepsAlpha(t *testing.T) {
	got := ModeGray.Color(color.NRGBA{R: 200, G: 40, B: 40, A: 153}).(color.NRGBA)
	if got.R != got.G || got.G != got.B {
		t.Fatalf("gray mode produced a tinted colour: %v", got)
	}
	if got.A != 153 {
		t.Fatalf("gray mode changed alpha: %d", got.A)
	}
	white := ModeGray.Color(color.White).(color.NRGBA)
	if white.R != 255 || white.A != 255 {
		t.Fatalf("white should stay white, got %v", white)
	}
}

func TestModeString(t *testing.T) {
	if ModeNormal.String() != "normal" || ModeGray.String() != "gray" {
		t.Fatalf("unexpected names %q %q", ModeNormal, ModeGray)
	}
}

func TestRaster_FillRectPixelAligned(t *testing.T) {
	s := NewRasterSurface(8, 8)
	s.FillRect(2, 2, 4, 4, color.RGBA{R: 255, A: 255})
	img := s.Image()
	if got := img.RGBAAt(3, 3); got.R != 255 || got.A != 255 {
		t.Fatalf("inside pixel: %v", got)
	}
	if got := img.RGBAAt(1, 1); got.A != 0 {
		t.Fatalf("outside pixel painted: %v", got)
	}
	if got := img.RGBAAt(6, 6); got.A != 0 {
		t.Fatalf("pixel past the far edge painted: %v", got)
	}
}

func TestRaster_DrawSurfaceTranslates(t *testing.T) {
	src := NewRasterSurface(4, 4)
	src.FillRect(0, 0, 1, 1, color.RGBA{G: 255, A: 255})
	dst := NewRasterSurface(8, 8)
	dst.DrawSurface(src, 3, 2)

	if got := dst.Image().RGBAAt(3, 2); got.G != 255 || got.A != 255 {
		t.Fatalf("expected translated pixel at (3,2), got %v", got)
	}
	if got := dst.Image().RGBAAt(0, 0); got.A != 0 {
		t.Fatalf("origin should stay empty, got %v", got)
	}
}

func TestRaster_StrokeSegmentsIgnoresTrailingPoint(t *testing.T) {
	s := NewRasterSurface(10, 10)
	s.StrokeSegments([]Point{{X: 0, Y: 5}, {X: 10, Y: 5}, {X: 5, Y: 0}}, 2, color.Black)
	if got := s.Image().RGBAAt(5, 5); got.A != 255 {
		t.Fatalf("stroke missing at (5,5): %v", got)
	}
	if got := s.Image().RGBAAt(5, 1); got.A != 0 {
		t.Fatalf("unpaired point produced a stroke: %v", got)
	}
}

func TestRaster_ForeignSurfacePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for a surface from another backend")
		}
	}()
	NewRasterSurface(2, 2).DrawSurface(otherSurface{}, 0, 0)
}

type otherSurface struct{ Surface }
