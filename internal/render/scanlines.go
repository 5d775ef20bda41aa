package render

import (
	"cmp"
	"math"
	"slices"

	"github.com/Garsondee/Sightline/internal/geom"
)

// Scan-line and dot animation constants, in tile units.
const (
	scanRowSpacing = 0.5    // vertical distance between scan rows
	scanPhaseStep  = 0.0125 // phase advance per frame, wraps at scanRowSpacing
	scanRayEps     = 0.01   // keeps rays off polygon vertices on row boundaries
	dotSpacing     = 1.0    // distance between dots, and the dot phase period
	dotPhaseStep   = 0.025
	dotAimOffset   = 0.1 // aim above the player's feet
)

// ScanCaster turns monolith sight polygons into animated scan lines and
// sighting dots. The zero value is ready to use.
type ScanCaster struct {
	phase    float64 // scan row offset in [0, scanRowSpacing)
	dotPhase float64 // first dot distance in [0, dotSpacing)

	row []Point // per-row scratch
}

// Advance moves both animations one frame forward.
func (sc *ScanCaster) Advance() {
	sc.phase = math.Mod(sc.phase+scanPhaseStep, scanRowSpacing)
	sc.dotPhase = math.Mod(sc.dotPhase+dotPhaseStep, dotSpacing)
}

// Phase returns the current scan-row and dot offsets.
func (sc *ScanCaster) Phase() (scan, dot float64) {
	return sc.phase, sc.dotPhase
}

// Cast appends to dst the scan-line path for every monolith: for each row
// the ray's crossings with the monolith's sight polygon, sorted by x. Points
// alternate start, end, start, end for simple polygons.
func (sc *ScanCaster) Cast(dst []Point, monoliths []Monolith, mapHeight float64) []Point {
	for _, m := range monoliths {
		poly := m.SightPolygon()
		for y := scanRowSpacing; y < mapHeight; y += scanRowSpacing {
			sc.row = CastRow(sc.row[:0], poly, y+sc.phase+scanRayEps)
			dst = append(dst, sc.row...)
		}
	}
	return dst
}

// CastRow appends to dst where the horizontal line at height y crosses the
// closed polygon poly, sorted by ascending x. A crossing identical to the
// previous one (a ray through a shared vertex) is recorded once.
func CastRow(dst []Point, poly []Point, y float64) []Point {
	start := len(dst)
	ray := geom.Seg(-1, y, 0, y)
	for i, curr := range poly {
		next := poly[(i+1)%len(poly)]
		p, _, ok := geom.Intersect(ray, geom.Segment{A: curr, B: next})
		if !ok {
			continue
		}
		if n := len(dst); n > start && dst[n-1] == p {
			continue
		}
		dst = append(dst, p)
	}
	slices.SortFunc(dst[start:], func(a, b Point) int {
		return cmp.Compare(a.X, b.X)
	})
	return dst
}

// Dots appends to dst the sighting dots for every monolith whose sight
// polygon contains the player: one dot per tile of distance along the line
// from the monolith toward the player, starting at the dot phase.
func (sc *ScanCaster) Dots(dst []Point, monoliths []Monolith, player Point) []Point {
	for _, m := range monoliths {
		if !geom.PointInPolygon(player, m.SightPolygon()) {
			continue
		}
		from := m.Position()
		aim := Point{X: player.X, Y: player.Y - dotAimOffset}
		v := aim.Sub(from)
		dist := v.Length()
		if dist == 0 {
			continue
		}
		v = v.Mul(1 / dist)
		for t := sc.dotPhase; t < dist; t += dotSpacing {
			dst = append(dst, from.Add(v.Mul(t)))
		}
	}
	return dst
}
