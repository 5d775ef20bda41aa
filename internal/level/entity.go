package level

import (
	"image/color"
	"slices"

	"github.com/Garsondee/Sightline/internal/render"
)

// Entity tags used by levels.
const (
	TagFloor    = render.TagFloor
	TagMonolith = render.TagMonolith
	TagProp     = "prop"
	TagPlayer   = "player"
)

// base carries the state every entity shares. Embedders call resolve once
// they are fully constructed.
type base struct {
	pos  render.Point
	tags []string
	caps render.Capabilities
}

func (b *base) Position() render.Point { return b.pos }

func (b *base) HasTag(tag string) bool { return slices.Contains(b.tags, tag) }

func (b *base) Capabilities() render.Capabilities { return b.caps }

func (b *base) resolve(self any) {
	b.caps = render.CapabilitiesOf(self)
}

// Floor is a flat area such as a carpet or conveyor. It only has a floor
// visual, which the renderer paints once, in the visible layer.
type Floor struct {
	base
	W, H float64
	Col  color.Color
}

// NewFloor returns a w×h floor area with its top-left corner at (x, y).
func NewFloor(x, y, w, h float64, col color.Color) *Floor {
	f := &Floor{
		base: base{pos: render.Point{X: x, Y: y}, tags: []string{TagFloor}},
		W:    w, H: h, Col: col,
	}
	f.resolve(f)
	return f
}

func (f *Floor) DrawFloor(c *render.Canvas, mode render.Mode) {
	c.FillRect(f.pos.X, f.pos.Y, f.W, f.H, mode.Color(f.Col))
}

var (
	monolithColour = color.RGBA{R: 20, G: 20, B: 24, A: 255}
	monolithEye    = color.RGBA{R: 220, G: 40, B: 40, A: 255}
	playerColour   = color.RGBA{R: 240, G: 150, B: 40, A: 255}
	playerOutline  = color.RGBA{R: 40, G: 30, B: 20, A: 255}
)

// Monolith is a surveillance device. Its ray-casting polygon follows the
// map every update; the drawn polygon used for the surveillance mask is
// fixed at load.
type Monolith struct {
	base
	sight []render.Point
	drawn []render.Point
}

// NewMonolith returns a monolith standing at (x, y). drawn may be nil, in
// which case the first Level.Update fills it from the computed sight
// polygon.
func NewMonolith(x, y float64, drawn []render.Point) *Monolith {
	m := &Monolith{
		base:  base{pos: render.Point{X: x, Y: y}, tags: []string{TagMonolith}},
		drawn: drawn,
	}
	m.resolve(m)
	return m
}

func (m *Monolith) SightPolygon() []render.Point      { return m.sight }
func (m *Monolith) SightPolygonDrawn() []render.Point { return m.drawn }

// Draw paints the monolith as a dark slab with a red eye.
func (m *Monolith) Draw(c *render.Canvas, mode render.Mode) {
	c.FillRect(m.pos.X-0.3, m.pos.Y-1.2, 0.6, 1.2, mode.Color(monolithColour))
	c.FillCircle(m.pos.X, m.pos.Y-0.9, 3, mode.Color(monolithEye))
}

// playerRadius is the player's collision radius in tiles.
const playerRadius = 0.3

// Player is the entity the camera follows. Deactivated freezes movement,
// typically while a scripted conversation plays.
type Player struct {
	base
	Deactivated bool
	sight       []render.Point
}

// NewPlayer returns a player standing at (x, y).
func NewPlayer(x, y float64) *Player {
	p := &Player{base: base{pos: render.Point{X: x, Y: y}, tags: []string{TagPlayer}}}
	p.resolve(p)
	return p
}

func (p *Player) SightPolygon() []render.Point { return p.sight }

// Move shifts the player by (dx, dy) tiles, one axis at a time so the
// player slides along walls. It reports whether the player moved.
func (p *Player) Move(dx, dy float64, tm *TileMap) bool {
	if p.Deactivated {
		return false
	}
	moved := false
	if dx != 0 && tm.Passable(p.pos.X+dx, p.pos.Y, playerRadius) {
		p.pos.X += dx
		moved = true
	}
	if dy != 0 && tm.Passable(p.pos.X, p.pos.Y+dy, playerRadius) {
		p.pos.Y += dy
		moved = true
	}
	return moved
}

// Draw paints the player as an outlined disc. The radius is in pixels.
func (p *Player) Draw(c *render.Canvas, mode render.Mode) {
	sx, _ := c.Scale()
	r := playerRadius * sx
	c.FillCircle(p.pos.X, p.pos.Y, r+1.5, mode.Color(playerOutline))
	c.FillCircle(p.pos.X, p.pos.Y, r, mode.Color(playerColour))
}

// Prop is a standing object drawn as a block whose base sits at its
// position, so depth sorting by y puts it in front of things behind it.
type Prop struct {
	base
	W, H float64
	Col  color.Color
}

// NewProp returns a w×h prop whose bottom edge is centred on (x, y).
func NewProp(x, y, w, h float64, col color.Color) *Prop {
	p := &Prop{
		base: base{pos: render.Point{X: x, Y: y}, tags: []string{TagProp}},
		W:    w, H: h, Col: col,
	}
	p.resolve(p)
	return p
}

func (p *Prop) Draw(c *render.Canvas, mode render.Mode) {
	c.FillRect(p.pos.X-p.W/2, p.pos.Y-p.H, p.W, p.H, mode.Color(p.Col))
}

// WallImage is a poster or screen hung on a wall. Wall images are drawn on
// the visible layer before any entity.
type WallImage struct {
	X, Y, W, H float64
	Col        color.Color
}

func (w *WallImage) Draw(c *render.Canvas, mode render.Mode) {
	c.FillRect(w.X, w.Y, w.W, w.H, mode.Color(w.Col))
}
