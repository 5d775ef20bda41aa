package render

// Entity tags the renderer queries.
const (
	TagFloor    = "floor"
	TagMonolith = "monolith"
)

// Drawer draws an object's standard visual.
type Drawer interface {
	Draw(c *Canvas, mode Mode)
}

// FloorDrawer draws an object's floor-layer visual, painted under
// everything that stands on the floor.
type FloorDrawer interface {
	DrawFloor(c *Canvas, mode Mode)
}

// Capabilities lists what an entity can draw. A nil field means the entity
// has no visual for that pass and is skipped there.
type Capabilities struct {
	Floor    FloorDrawer
	Standard Drawer
}

// CapabilitiesOf resolves the drawing capabilities of v. Entities call it
// once when they are constructed, not per frame.
func CapabilitiesOf(v any) Capabilities {
	var caps Capabilities
	if f, ok := v.(FloorDrawer); ok {
		caps.Floor = f
	}
	if d, ok := v.(Drawer); ok {
		caps.Standard = d
	}
	return caps
}

// Entity is a world object with a position in tile units.
type Entity interface {
	Position() Point
	HasTag(tag string) bool
	Capabilities() Capabilities
}

// Monolith is a surveillance device. SightPolygon drives scan lines and
// dots; SightPolygonDrawn is the (possibly simplified) polygon that masks
// the surveillance layer.
type Monolith interface {
	Entity
	SightPolygon() []Point
	SightPolygonDrawn() []Point
}

// Player is the observed character.
type Player interface {
	Entity
	SightPolygon() []Point
}

// Map is the level background.
type Map interface {
	// Size returns the map extent in tiles.
	Size() (w, h int)
	Draw(c *Canvas, mode Mode)
	// DrawLineArt draws the outline overlay shown outside every sight
	// polygon. It is rendered once per Initialize.
	DrawLineArt(c *Canvas)
}

// World is the level state the renderer reads. It is never mutated during
// a draw.
type World interface {
	Map() Map
	Walls() []Drawer
	// Tagged returns entities carrying tag in their collection order.
	Tagged(tag string) []Entity
	Entities() []Entity
	Monoliths() []Monolith
	Player() Player
	UI() []Drawer
	Alert() bool
}
