package geom

import (
	"math"
	"testing"

	"seehuhn.de/go/geom/vec"
)

func square() []vec.Vec2 {
	return []vec.Vec2{{X: 2, Y: 2}, {X: 6, Y: 2}, {X: 6, Y: 6}, {X: 2, Y: 6}}
}

func TestIntersect_HorizontalRayHitsVerticalEdge(t *testing.T) {
	ray := Seg(-1, 2.01, 0, 2.01)
	p, tRay, ok := Intersect(ray, Seg(6, 2, 6, 6))
	if !ok {
		t.Fatal("expected hit on vertical edge")
	}
	if math.Abs(p.X-6) > 1e-9 || math.Abs(p.Y-2.01) > 1e-9 {
		t.Fatalf("expected (6, 2.01), got (%.4f, %.4f)", p.X, p.Y)
	}
	if math.Abs(tRay-7) > 1e-9 {
		t.Fatalf("expected ray parameter 7, got %.4f", tRay)
	}
}

func TestIntersect_ParallelIsNoHit(t *testing.T) {
	ray := Seg(-1, 2, 0, 2)
	if _, _, ok := Intersect(ray, Seg(2, 2, 6, 2)); ok {
		t.Fatal("collinear edge should report no hit")
	}
	if _, _, ok := Intersect(ray, Seg(6, 3, 2, 3)); ok {
		t.Fatal("anti-parallel edge should report no hit")
	}
}

func TestIntersect_BehindRayOrigin(t *testing.T) {
	ray := Seg(0, 0, 1, 0)
	if _, _, ok := Intersect(ray, Seg(-5, -1, -5, 1)); ok {
		t.Fatal("segment behind the ray origin should not be hit")
	}
}

func TestIntersect_MissesPastSegmentEnd(t *testing.T) {
	ray := Seg(0, 10, 1, 10)
	if _, _, ok := Intersect(ray, Seg(5, 0, 5, 4)); ok {
		t.Fatal("ray passing beyond segment end should not hit")
	}
}

func TestIntersect_VerticalRay(t *testing.T) {
	ray := Seg(3, 0, 3, 1)
	p, _, ok := Intersect(ray, Seg(0, 4, 10, 4))
	if !ok {
		t.Fatal("vertical ray should hit horizontal segment")
	}
	if math.Abs(p.X-3) > 1e-9 || math.Abs(p.Y-4) > 1e-9 {
		t.Fatalf("expected (3, 4), got (%.4f, %.4f)", p.X, p.Y)
	}
}

func TestPointInPolygon(t *testing.T) {
	poly := square()
	cases := []struct {
		p    vec.Vec2
		want bool
	}{
		{vec.Vec2{X: 5, Y: 5}, true},
		{vec.Vec2{X: 3, Y: 2.5}, true},
		{vec.Vec2{X: 20, Y: 20}, false},
		{vec.Vec2{X: 1, Y: 4}, false},
		{vec.Vec2{X: 4, Y: 7}, false},
	}
	for _, c := range cases {
		if got := PointInPolygon(c.p, poly); got != c.want {
			t.Fatalf("PointInPolygon(%v) = %v, want %v", c.p, got, c.want)
		}
	}
}

func TestPointInPolygon_Degenerate(t *testing.T) {
	if PointInPolygon(vec.Vec2{X: 1, Y: 1}, []vec.Vec2{{X: 0, Y: 0}, {X: 2, Y: 2}}) {
		t.Fatal("two-point polygon should contain nothing")
	}
}

func TestPolygonEdges_ClosesLoop(t *testing.T) {
	edges := PolygonEdges(square())
	if len(edges) != 4 {
		t.Fatalf("expected 4 edges, got %d", len(edges))
	}
	last := edges[3]
	if last.A != (vec.Vec2{X: 2, Y: 6}) || last.B != (vec.Vec2{X: 2, Y: 2}) {
		t.Fatalf("last edge should join final point to first, got %v", last)
	}
}
