package render

import (
	"errors"
	"image/color"
	"testing"
)

// 4 px tiles on a 10×10 map give 40×40 layers; a 40×40 destination with the
// camera at the map centre composites with no translation.
func newTestRenderer(t *testing.T, w World) (*Renderer, *RasterSurface) {
	t.Helper()
	r := NewRenderer(RasterBackend{}, Options{TileWidth: 4, TileHeight: 4})
	if err := r.Initialize(w); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	t.Cleanup(r.Close)
	return r, NewRasterSurface(40, 40)
}

func TestRenderer_CompositeRegions(t *testing.T) {
	w := newFakeScene(2, 2)
	r, dst := newTestRenderer(t, w)
	if err := r.Draw(dst); err != nil {
		t.Fatal(err)
	}
	img := dst.Image()

	// Player's half, away from scan lines and the player sprite.
	if got := img.RGBAAt(6, 34); got != mapGreen {
		t.Fatalf("visible region: expected %v, got %v", mapGreen, got)
	}

	// Monolith block only: grayscale surveillance footage.
	got := img.RGBAAt(37, 14)
	if got.A != 255 || got.R != got.G || got.G != got.B {
		t.Fatalf("surveillance region should be opaque gray, got %v", got)
	}

	// Seen by nobody.
	if got := img.RGBAAt(34, 34); got.A != 0 {
		t.Fatalf("unseen region should be transparent, got %v", got)
	}
}

func TestRenderer_PlayerDrawnUnclipped(t *testing.T) {
	w := newFakeScene(8, 8)
	r, dst := newTestRenderer(t, w)
	if err := r.Draw(dst); err != nil {
		t.Fatal(err)
	}
	if got := dst.Image().RGBAAt(31, 31); got != magenta {
		t.Fatalf("player outside every polygon should still be drawn, got %v", got)
	}
}

func TestRenderer_AlertTintsVisibleLayer(t *testing.T) {
	w := newFakeScene(2, 2)
	w.alert = true
	r, dst := newTestRenderer(t, w)
	if err := r.Draw(dst); err != nil {
		t.Fatal(err)
	}
	img := dst.Image()
	got := img.RGBAAt(6, 34)
	if got == mapGreen || got.R <= got.G {
		t.Fatalf("expected red tint over the map, got %v", got)
	}
	if !r.Stats().Alert {
		t.Fatal("stats should report the alert")
	}
	if got := img.RGBAAt(34, 34); got.A != 0 {
		t.Fatalf("alert tint leaked outside every polygon: %v", got)
	}
}

func TestRenderer_StatsAndNoCCTV(t *testing.T) {
	// Player inside the monolith's polygon so dots are produced.
	w := newFakeScene(2, 2)
	w.player.pos = Point{X: 8, Y: 3}
	r, dst := newTestRenderer(t, w)

	if err := r.Draw(dst); err != nil {
		t.Fatal(err)
	}
	st := r.Stats()
	if st.Frame != 1 || st.ScanPoints == 0 || st.Dots == 0 {
		t.Fatalf("unexpected stats with CCTV on: %+v", st)
	}
	if st.Drawn != 2 {
		t.Fatalf("expected 2 depth-sorted entities, got %d", st.Drawn)
	}

	r.NoCCTV = true
	if err := r.Draw(dst); err != nil {
		t.Fatal(err)
	}
	st = r.Stats()
	if st.Frame != 2 || st.ScanPoints != 0 || st.Dots != 0 {
		t.Fatalf("NoCCTV should suppress scan lines and dots: %+v", st)
	}
}

func TestRenderer_FloorCapability(t *testing.T) {
	w := newFakeScene(2, 2)
	painted := 0
	f := &floorOnly{fakeEntity: fakeEntity{id: 9, pos: Point{X: 1, Y: 9}, tags: []string{TagFloor}}, painted: &painted}
	f.caps = Capabilities{Floor: f}
	w.entities = append(w.entities, f)

	r, dst := newTestRenderer(t, w)
	if err := r.Draw(dst); err != nil {
		t.Fatal(err)
	}
	if painted != 1 {
		t.Fatalf("expected one floor draw per frame, got %d", painted)
	}
	if r.Stats().Drawn != 2 {
		t.Fatalf("floor entity must not enter the depth order, drawn=%d", r.Stats().Drawn)
	}
}

func TestRenderer_EntityWithoutVisualsIsSkipped(t *testing.T) {
	w := newFakeScene(2, 2)
	bare := newFakeEntity(7, 3, 3)
	bare.caps = Capabilities{}
	w.entities = append(w.entities, bare)

	r, dst := newTestRenderer(t, w)
	if err := r.Draw(dst); err != nil {
		t.Fatalf("entity without visuals should not fail the frame: %v", err)
	}
}

func TestRenderer_UIDrawnInScreenSpace(t *testing.T) {
	w := newFakeScene(2, 2)
	w.ui = []Drawer{uiBox{}}
	r, dst := newTestRenderer(t, w)
	r.Camera.Target(0, 0)
	for i := 0; i < 5; i++ {
		if err := r.Draw(dst); err != nil {
			t.Fatal(err)
		}
	}
	if got := dst.Image().RGBAAt(39, 0); got != uiWhite {
		t.Fatalf("UI should ignore the camera, got %v", got)
	}
}

type uiBox struct{}

var uiWhite = color.RGBA{R: 255, G: 255, B: 255, A: 255}

func (uiBox) Draw(c *Canvas, _ Mode) { c.FillRect(38, 0, 2, 2, uiWhite) }

func TestRenderer_CameraTranslatesComposite(t *testing.T) {
	w := newFakeScene(2, 2)
	r, dst := newTestRenderer(t, w)
	// One tile to the right: content shifts 4 px left.
	r.Camera.Reset(6, 5)
	if err := r.Draw(dst); err != nil {
		t.Fatal(err)
	}
	if got := dst.Image().RGBAAt(2, 34); got != mapGreen {
		t.Fatalf("expected map at shifted position, got %v", got)
	}
	if got := dst.Image().RGBAAt(17, 34); got.A != 0 {
		t.Fatalf("expected player's polygon edge to move left, got %v", got)
	}
}

func TestRenderer_Errors(t *testing.T) {
	r := NewRenderer(RasterBackend{}, DefaultOptions())
	if err := r.Draw(NewRasterSurface(1, 1)); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}

	w := newFakeScene(2, 2)
	w.player = nil
	if err := r.Initialize(w); !errors.Is(err, ErrNoPlayer) {
		t.Fatalf("expected ErrNoPlayer, got %v", err)
	}

	w = newFakeScene(2, 2)
	w.m.w = 0
	if err := r.Initialize(w); err == nil {
		t.Fatal("expected error for an empty map")
	}

	w = newFakeScene(2, 2)
	if err := r.Initialize(w); err != nil {
		t.Fatal(err)
	}
	r.Close()
	if err := r.Draw(NewRasterSurface(1, 1)); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized after Close, got %v", err)
	}
}

func TestRenderer_ReinitializeResizesLayers(t *testing.T) {
	r := NewRenderer(RasterBackend{}, Options{TileWidth: 4, TileHeight: 4})
	w := newFakeScene(2, 2)
	if err := r.Initialize(w); err != nil {
		t.Fatal(err)
	}
	w2 := newFakeScene(2, 2)
	w2.m.w, w2.m.h = 5, 3
	if err := r.Initialize(w2); err != nil {
		t.Fatal(err)
	}
	vis, _ := r.Layers()
	if pw, ph := vis.Size(); pw != 20 || ph != 12 {
		t.Fatalf("expected 20x12 layers, got %dx%d", pw, ph)
	}
	if r.Camera.X != 2.5 || r.Camera.Y != 1.5 {
		t.Fatalf("camera should reset to the map centre, got (%v, %v)", r.Camera.X, r.Camera.Y)
	}
	r.Close()
}

func TestNewRenderer_DefaultsInvalidOptions(t *testing.T) {
	r := NewRenderer(RasterBackend{}, Options{})
	if r.Options() != DefaultOptions() {
		t.Fatalf("expected defaults, got %+v", r.Options())
	}
}
