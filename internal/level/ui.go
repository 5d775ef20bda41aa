package level

import (
	"image/color"

	"github.com/Garsondee/Sightline/internal/render"
)

var (
	meterBack  = color.RGBA{R: 20, G: 20, B: 20, A: 200}
	meterFill  = color.RGBA{R: 200, G: 40, B: 40, A: 255}
	meterCalm  = color.RGBA{R: 80, G: 160, B: 90, A: 255}
	frameBlack = color.RGBA{A: 255}
)

// AlertMeter is a screen-space bar showing the level's suspicion. Its
// coordinates are pixels from the top-left of the screen.
type AlertMeter struct {
	X, Y, W, H float64
	lvl        *Level
}

func (m *AlertMeter) Draw(c *render.Canvas, _ render.Mode) {
	c.FillRect(m.X, m.Y, m.W, m.H, meterBack)
	s := m.lvl.Suspicion()
	if s <= 0 {
		c.FillRect(m.X+2, m.Y+2, 4, m.H-4, meterCalm)
		return
	}
	c.FillRect(m.X+2, m.Y+2, (m.W-4)*s, m.H-4, meterFill)
}

// FrameBorder letterboxes the screen with a solid border of Width pixels.
type FrameBorder struct {
	Width float64
}

func (f *FrameBorder) Draw(c *render.Canvas, _ render.Mode) {
	if f.Width <= 0 {
		return
	}
	w, h := c.Surface().Size()
	fw, fh, b := float64(w), float64(h), f.Width
	c.FillRect(0, 0, fw, b, frameBlack)
	c.FillRect(0, fh-b, fw, b, frameBlack)
	c.FillRect(0, 0, b, fh, frameBlack)
	c.FillRect(fw-b, 0, b, fh, frameBlack)
}
