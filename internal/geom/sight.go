package geom

import (
	"math"
	"slices"

	"seehuhn.de/go/geom/vec"
)

// sightFudge is the angular offset (radians) of the two extra rays cast
// either side of every obstruction corner, so rays graze past corners and
// reach whatever lies behind them.
const sightFudge = 0.00001

type sightHit struct {
	p     vec.Vec2
	angle float64
}

// SightPolygon returns the region visible from origin given the obstruction
// segments, as polygon points ordered by angle around origin. The segments
// must enclose origin (include the map border) or rays escaping to infinity
// are dropped and the polygon has gaps.
func SightPolygon(origin vec.Vec2, segments []Segment) []vec.Vec2 {
	// Unique corners.
	seen := make(map[vec.Vec2]struct{}, len(segments)*2)
	var corners []vec.Vec2
	for _, s := range segments {
		for _, p := range [2]vec.Vec2{s.A, s.B} {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			corners = append(corners, p)
		}
	}

	angles := make([]float64, 0, len(corners)*3)
	for _, c := range corners {
		a := math.Atan2(c.Y-origin.Y, c.X-origin.X)
		angles = append(angles, a-sightFudge, a, a+sightFudge)
	}

	hits := make([]sightHit, 0, len(angles))
	for _, a := range angles {
		ray := Segment{A: origin, B: vec.Vec2{X: origin.X + math.Cos(a), Y: origin.Y + math.Sin(a)}}
		best, ok := closestHit(ray, segments)
		if !ok {
			continue
		}
		hits = append(hits, sightHit{p: best, angle: a})
	}

	slices.SortFunc(hits, func(x, y sightHit) int {
		switch {
		case x.angle < y.angle:
			return -1
		case x.angle > y.angle:
			return 1
		}
		return 0
	})

	poly := make([]vec.Vec2, len(hits))
	for i, h := range hits {
		poly[i] = h.p
	}
	return poly
}

// closestHit returns the nearest intersection of ray with any segment.
func closestHit(ray Segment, segments []Segment) (vec.Vec2, bool) {
	var (
		best  vec.Vec2
		bestT = math.Inf(1)
		found bool
	)
	for _, s := range segments {
		p, t, ok := Intersect(ray, s)
		if !ok || t >= bestT {
			continue
		}
		best, bestT, found = p, t, true
	}
	return best, found
}
