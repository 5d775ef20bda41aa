package render

import "image/color"

type fakeEntity struct {
	id    int
	pos   Point
	tags  []string
	col   color.Color
	r     float64 // pixels
	caps  Capabilities
	poly  []Point
	drawn []Point
	floor bool
}

func newFakeEntity(id int, x, y float64, tags ...string) *fakeEntity {
	e := &fakeEntity{id: id, pos: Point{X: x, Y: y}, tags: tags}
	e.caps = CapabilitiesOf(e)
	return e
}

func (e *fakeEntity) Position() Point { return e.pos }

func (e *fakeEntity) HasTag(tag string) bool {
	for _, t := range e.tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (e *fakeEntity) Capabilities() Capabilities { return e.caps }

func (e *fakeEntity) Draw(c *Canvas, mode Mode) {
	if e.col == nil || e.r == 0 {
		return
	}
	c.FillCircle(e.pos.X, e.pos.Y, e.r, mode.Color(e.col))
}

func (e *fakeEntity) SightPolygon() []Point      { return e.poly }
func (e *fakeEntity) SightPolygonDrawn() []Point { return e.drawn }

// floorOnly has a floor visual and no standard one.
type floorOnly struct {
	fakeEntity
	painted *int
}

func (f *floorOnly) DrawFloor(c *Canvas, mode Mode) { *f.painted++ }

type fakeMap struct {
	w, h int
	col  color.Color
}

func (m *fakeMap) Size() (int, int) { return m.w, m.h }

func (m *fakeMap) Draw(c *Canvas, mode Mode) {
	c.FillRect(0, 0, float64(m.w), float64(m.h), mode.Color(m.col))
}

func (m *fakeMap) DrawLineArt(*Canvas) {}

type fakeWorld struct {
	m         *fakeMap
	entities  []Entity
	monoliths []Monolith
	player    *fakeEntity
	alert     bool
	ui        []Drawer
}

func (w *fakeWorld) Map() Map        { return w.m }
func (w *fakeWorld) Walls() []Drawer { return nil }

func (w *fakeWorld) Tagged(tag string) []Entity {
	var out []Entity
	for _, e := range w.entities {
		if e.HasTag(tag) {
			out = append(out, e)
		}
	}
	return out
}

func (w *fakeWorld) Entities() []Entity    { return w.entities }
func (w *fakeWorld) Monoliths() []Monolith { return w.monoliths }
func (w *fakeWorld) Player() Player {
	if w.player == nil {
		return nil
	}
	return w.player
}
func (w *fakeWorld) UI() []Drawer { return w.ui }
func (w *fakeWorld) Alert() bool  { return w.alert }

func rectPoly(x, y, w, h float64) []Point {
	return []Point{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}}
}

var (
	mapGreen = color.RGBA{R: 60, G: 120, B: 60, A: 255}
	magenta  = color.RGBA{R: 255, G: 0, B: 255, A: 255}
)

// newFakeScene builds a 10×10 tile world: the player sees the left half,
// one monolith at (8,2) sees the top-right 4×4 block.
func newFakeScene(playerX, playerY float64) *fakeWorld {
	player := newFakeEntity(0, playerX, playerY, "player")
	player.col = magenta
	player.r = 1.6
	player.poly = rectPoly(0, 0, 5, 10)

	mono := newFakeEntity(1, 8, 2, TagMonolith)
	mono.poly = rectPoly(6, 0, 4, 4)
	mono.drawn = mono.poly

	return &fakeWorld{
		m:         &fakeMap{w: 10, h: 10, col: mapGreen},
		entities:  []Entity{player, mono},
		monoliths: []Monolith{mono},
		player:    player,
	}
}
