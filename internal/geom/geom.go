// Package geom holds the pure geometry used by sight and scan-line code:
// ray/segment intersection, point-in-polygon and sight polygons.
package geom

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// parallelEps is the cross-product magnitude below which a ray and a segment
// are treated as parallel.
const parallelEps = 1e-12

// Segment is a line segment from A to B. Used as a ray it starts at A, passes
// through B and continues without bound.
type Segment struct {
	A, B vec.Vec2
}

// Seg is shorthand for building a Segment from four coordinates.
func Seg(ax, ay, bx, by float64) Segment {
	return Segment{A: vec.Vec2{X: ax, Y: ay}, B: vec.Vec2{X: bx, Y: by}}
}

// Intersect returns the point where ray r crosses segment s and the ray
// parameter of the hit, measured in multiples of |r.B-r.A|. Parallel and
// degenerate pairs report no hit.
func Intersect(r, s Segment) (vec.Vec2, float64, bool) {
	rd := r.B.Sub(r.A)
	sd := s.B.Sub(s.A)

	denom := sd.X*rd.Y - sd.Y*rd.X
	if math.Abs(denom) < parallelEps {
		return vec.Vec2{}, 0, false
	}

	// Segment parameter first, then solve for the ray parameter on the
	// ray's dominant axis so vertical rays do not divide by zero.
	t2 := (rd.X*(s.A.Y-r.A.Y) + rd.Y*(r.A.X-s.A.X)) / denom
	var t1 float64
	if math.Abs(rd.X) >= math.Abs(rd.Y) {
		t1 = (s.A.X + sd.X*t2 - r.A.X) / rd.X
	} else {
		t1 = (s.A.Y + sd.Y*t2 - r.A.Y) / rd.Y
	}

	if t1 < 0 || t2 < 0 || t2 > 1 {
		return vec.Vec2{}, 0, false
	}
	return r.A.Add(rd.Mul(t1)), t1, true
}

// PointInPolygon reports whether p lies inside the closed polygon poly
// (even-odd rule). Polygons with fewer than three points contain nothing.
func PointInPolygon(p vec.Vec2, poly []vec.Vec2) bool {
	n := len(poly)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// PolygonEdges returns the edges of the closed polygon poly, the last one
// joining the final point back to the first.
func PolygonEdges(poly []vec.Vec2) []Segment {
	if len(poly) < 2 {
		return nil
	}
	edges := make([]Segment, len(poly))
	for i, p := range poly {
		edges[i] = Segment{A: p, B: poly[(i+1)%len(poly)]}
	}
	return edges
}

// RectEdges returns the four edges of an axis-aligned rectangle.
func RectEdges(x, y, w, h float64) []Segment {
	return []Segment{
		Seg(x, y, x+w, y),
		Seg(x+w, y, x+w, y+h),
		Seg(x+w, y+h, x, y+h),
		Seg(x, y+h, x, y),
	}
}
