// Package level holds the world the renderer draws: the tile map, wall
// images, tagged entities, the player, the monoliths watching them and the
// alert state that follows from what the monoliths can see.
package level

import (
	"github.com/Garsondee/Sightline/internal/geom"
	"github.com/Garsondee/Sightline/internal/render"
)

const (
	suspicionRise = 1.0 / 60  // per update while seen
	suspicionFall = 1.0 / 240 // per update while hidden
)

// Level is a loaded scene. It implements render.World.
type Level struct {
	Name string

	tm        *TileMap
	walls     []render.Drawer
	entities  []render.Entity
	monoliths []render.Monolith
	watchers  []*Monolith
	player    *Player
	ui        []render.Drawer

	obstructions []geom.Segment
	alert        bool
	suspicion    float64
}

// New assembles a level from its parts and adds the player to the entity
// list. Only the player's sight polygon is computed here; the alert flag and
// suspicion stay unset until the first Update, which callers make once every
// monolith has been added.
func New(name string, tm *TileMap, player *Player) *Level {
	l := &Level{
		Name:         name,
		tm:           tm,
		player:       player,
		obstructions: tm.Obstructions(),
	}
	player.sight = geom.SightPolygon(player.pos, l.obstructions)
	l.entities = append(l.entities, player)
	return l
}

// AddMonolith places m in the level.
func (l *Level) AddMonolith(m *Monolith) {
	l.watchers = append(l.watchers, m)
	l.monoliths = append(l.monoliths, m)
	l.entities = append(l.entities, m)
	l.updateMonolith(m)
}

// AddEntity places a floor, prop or other entity in the level.
func (l *Level) AddEntity(e render.Entity) {
	l.entities = append(l.entities, e)
}

// AddWall hangs a wall image.
func (l *Level) AddWall(w render.Drawer) {
	l.walls = append(l.walls, w)
}

// AddUI adds a screen-space element.
func (l *Level) AddUI(u render.Drawer) {
	l.ui = append(l.ui, u)
}

// NewAlertMeter returns a meter bound to this level's suspicion.
func (l *Level) NewAlertMeter(x, y, w, h float64) *AlertMeter {
	return &AlertMeter{X: x, Y: y, W: w, H: h, lvl: l}
}

// TileMap returns the level grid.
func (l *Level) TileMap() *TileMap { return l.tm }

// Suspicion returns how long the player has been seen, from 0 to 1.
func (l *Level) Suspicion() float64 { return l.suspicion }

// Update recomputes every sight polygon from the current positions and
// sets the alert flag when any monolith can see the player. It returns
// true when the alert flag changed.
func (l *Level) Update() bool {
	l.player.sight = geom.SightPolygon(l.player.pos, l.obstructions)
	seen := false
	for _, m := range l.watchers {
		l.updateMonolith(m)
		if geom.PointInPolygon(l.player.pos, m.sight) {
			seen = true
		}
	}

	if seen {
		l.suspicion = min(1, l.suspicion+suspicionRise)
	} else {
		l.suspicion = max(0, l.suspicion-suspicionFall)
	}
	if seen == l.alert {
		return false
	}
	l.alert = seen
	if seen {
		logger().Info("player spotted", "level", l.Name,
			"x", l.player.pos.X, "y", l.player.pos.Y)
	} else {
		logger().Info("player lost", "level", l.Name)
	}
	return true
}

// updateMonolith recasts m's sight polygon and fills in the drawn polygon
// when the level file gave none.
func (l *Level) updateMonolith(m *Monolith) {
	m.sight = geom.SightPolygon(m.pos, l.obstructions)
	if m.drawn == nil {
		m.drawn = m.sight
	}
}

// Map returns the tile map as the renderer's map collaborator.
func (l *Level) Map() render.Map { return l.tm }

func (l *Level) Walls() []render.Drawer { return l.walls }

// Tagged returns every entity carrying tag, in collection order.
func (l *Level) Tagged(tag string) []render.Entity {
	var out []render.Entity
	for _, e := range l.entities {
		if e.HasTag(tag) {
			out = append(out, e)
		}
	}
	return out
}

func (l *Level) Entities() []render.Entity { return l.entities }

func (l *Level) Monoliths() []render.Monolith { return l.monoliths }

func (l *Level) Player() render.Player {
	if l.player == nil {
		return nil
	}
	return l.player
}

// PlayerEntity returns the concrete player for movement and scripting.
func (l *Level) PlayerEntity() *Player { return l.player }

func (l *Level) UI() []render.Drawer { return l.ui }

func (l *Level) Alert() bool { return l.alert }
