package render

import (
	"errors"
	"fmt"
	"image/color"
	"math"
)

var (
	// ErrNotInitialized is returned by Draw before Initialize or after Close.
	ErrNotInitialized = errors.New("render: renderer not initialized")
	// ErrNoPlayer is returned by Initialize for a world without a player.
	ErrNoPlayer = errors.New("render: world has no player")
)

var (
	scanLineColor = color.NRGBA{A: 64} // rgba(0,0,0,0.25)
	dotColor      = color.White
	alertColor    = color.NRGBA{R: 200, G: 40, B: 40, A: 153} // rgba(200,40,40,0.6)
	maskColor     = color.White
)

const (
	scanLineWidth = 2.0 // pixels
	dotRadius     = 3.0 // pixels
)

// Options configures a Renderer.
type Options struct {
	TileWidth  float64 // pixels per tile horizontally
	TileHeight float64 // pixels per tile vertically
}

// DefaultOptions returns 50×50 pixel tiles.
func DefaultOptions() Options {
	return Options{TileWidth: 50, TileHeight: 50}
}

// FrameStats summarises the last drawn frame.
type FrameStats struct {
	Frame      int
	ScanPoints int // points in the scan-line path
	Dots       int
	Drawn      int // depth-sorted entities drawn per layer
	Alert      bool
	CameraX    float64
	CameraY    float64
}

// Renderer composites a World into a destination surface once per frame.
// Camera and NoCCTV are the only state callers should change between
// frames. A Renderer is not safe for concurrent use.
type Renderer struct {
	Camera Camera
	NoCCTV bool // suppress scan lines and dots on both layers

	backend Backend
	opts    Options
	world   World

	visible      Surface // what the player sees, clipped to their polygon
	surveillance Surface // grayscale monolith view, clipped to their union
	mask         Surface
	lineArt      Surface

	caster ScanCaster
	path   []Point
	dots   []Point
	sorted []Entity
	stats  FrameStats
}

// NewRenderer returns a renderer that allocates its layers from backend.
func NewRenderer(backend Backend, opts Options) *Renderer {
	if opts.TileWidth <= 0 || opts.TileHeight <= 0 {
		opts = DefaultOptions()
	}
	return &Renderer{backend: backend, opts: opts}
}

// Options returns the renderer's configuration.
func (r *Renderer) Options() Options {
	return r.opts
}

// Initialize binds the renderer to w, allocates the layer surfaces at the
// map's pixel size, pre-renders the map line art and centres the camera.
// Surfaces from a previous Initialize are released first.
func (r *Renderer) Initialize(w World) error {
	mw, mh := w.Map().Size()
	if mw <= 0 || mh <= 0 {
		return fmt.Errorf("render: map size %dx%d must be positive", mw, mh)
	}
	if w.Player() == nil {
		return ErrNoPlayer
	}
	r.Close()

	pw := int(math.Ceil(float64(mw) * r.opts.TileWidth))
	ph := int(math.Ceil(float64(mh) * r.opts.TileHeight))
	r.visible = r.backend.NewSurface(pw, ph)
	r.surveillance = r.backend.NewSurface(pw, ph)
	r.mask = r.backend.NewSurface(pw, ph)
	r.lineArt = r.backend.NewSurface(pw, ph)
	w.Map().DrawLineArt(r.tileCanvas(r.lineArt))

	r.world = w
	r.caster = ScanCaster{}
	r.stats = FrameStats{}
	r.Camera.Reset(float64(mw)/2, float64(mh)/2)

	logger().Info("renderer initialized",
		"map_tiles", fmt.Sprintf("%dx%d", mw, mh),
		"layer_pixels", fmt.Sprintf("%dx%d", pw, ph))
	return nil
}

// Close releases the layer surfaces. Draw fails until the next Initialize.
func (r *Renderer) Close() {
	if r.world == nil {
		return
	}
	for _, s := range []Surface{r.visible, r.surveillance, r.mask, r.lineArt} {
		s.Dispose()
	}
	r.visible, r.surveillance, r.mask, r.lineArt = nil, nil, nil, nil
	r.world = nil
	logger().Info("renderer closed")
}

// Layers returns the visible and surveillance layers as of the last Draw.
func (r *Renderer) Layers() (visible, surveillance Surface) {
	return r.visible, r.surveillance
}

// Stats returns counters for the last drawn frame.
func (r *Renderer) Stats() FrameStats {
	return r.stats
}

// Draw renders one frame into dst: the visible layer, the surveillance
// layer, then both composited under the camera transform with the UI on
// top.
func (r *Renderer) Draw(dst Surface) error {
	if r.world == nil {
		return ErrNotInitialized
	}
	w := r.world

	r.caster.Advance()
	r.path, r.dots = r.path[:0], r.dots[:0]
	if !r.NoCCTV {
		_, mh := w.Map().Size()
		monoliths := w.Monoliths()
		r.path = r.caster.Cast(r.path, monoliths, float64(mh))
		r.dots = r.caster.Dots(r.dots, monoliths, w.Player().Position())
	}
	r.sorted = depthSort(r.sorted[:0], w.Entities(), TagFloor)

	if err := r.drawVisibleLayer(); err != nil {
		return err
	}
	if err := r.drawSurveillanceLayer(); err != nil {
		return err
	}
	r.composite(dst)

	r.stats = FrameStats{
		Frame:      r.stats.Frame + 1,
		ScanPoints: len(r.path),
		Dots:       len(r.dots),
		Drawn:      len(r.sorted),
		Alert:      w.Alert(),
		CameraX:    r.Camera.X,
		CameraY:    r.Camera.Y,
	}
	logger().Debug("frame drawn",
		"frame", r.stats.Frame,
		"scan_points", r.stats.ScanPoints,
		"dots", r.stats.Dots,
		"entities", r.stats.Drawn)
	return nil
}

// drawVisibleLayer paints everything the player could see and then clips
// it to the player's sight polygon. The clip must come last: content drawn
// after it, the alert tint included, would leak outside the polygon.
func (r *Renderer) drawVisibleLayer() error {
	w := r.world
	s := r.visible
	s.Clear()
	c := r.tileCanvas(s)

	w.Map().Draw(c, ModeNormal)
	for _, wall := range w.Walls() {
		wall.Draw(c, ModeNormal)
	}
	for _, e := range w.Tagged(TagFloor) {
		if f := e.Capabilities().Floor; f != nil {
			f.DrawFloor(c, ModeNormal)
		}
	}
	if !r.NoCCTV {
		drawScanLines(c, r.path)
		drawDots(c, r.dots)
	}
	if w.Alert() {
		drawAlert(s)
	}
	drawEntities(c, r.sorted, ModeNormal)

	return r.clipToPolygon(s, w.Player().SightPolygon())
}

// drawSurveillanceLayer paints the grayscale monolith view and clips it to
// the union of the monoliths' drawn sight polygons.
func (r *Renderer) drawSurveillanceLayer() error {
	w := r.world
	s := r.surveillance
	s.Clear()
	c := r.tileCanvas(s)

	w.Map().Draw(c, ModeGray)
	if !r.NoCCTV {
		drawScanLines(c, r.path)
		drawDots(c, r.dots)
	}
	drawEntities(c, r.sorted, ModeGray)

	r.mask.Clear()
	mc := r.tileCanvas(r.mask)
	for _, m := range w.Monoliths() {
		mc.FillPolygon(m.SightPolygonDrawn(), maskColor)
	}
	return MaskSurface(s, r.mask)
}

// composite draws the final frame. The surveillance layer goes down before
// the visible layer so the player's own view wins wherever both have
// content.
func (r *Renderer) composite(dst Surface) {
	w := r.world
	dst.Clear()

	r.Camera.Step()
	dw, dh := dst.Size()
	view := r.tileCanvas(dst).Translate(
		float64(dw)/2-r.Camera.X*r.opts.TileWidth,
		float64(dh)/2-r.Camera.Y*r.opts.TileHeight,
	)

	view.DrawSurface(r.lineArt, 0, 0)
	// The player is never clipped: they can always see themself.
	if d := w.Player().Capabilities().Standard; d != nil {
		d.Draw(view, ModeNormal)
	}
	view.DrawSurface(r.surveillance, 0, 0)
	view.DrawSurface(r.visible, 0, 0)

	ui := NewCanvas(dst, 1, 1)
	for _, u := range w.UI() {
		u.Draw(ui, ModeNormal)
	}
}

// clipToPolygon masks s to poly (tile units) using the mask surface as
// scratch.
func (r *Renderer) clipToPolygon(s Surface, poly []Point) error {
	r.mask.Clear()
	r.tileCanvas(r.mask).FillPolygon(poly, maskColor)
	return MaskSurface(s, r.mask)
}

func (r *Renderer) tileCanvas(s Surface) *Canvas {
	return NewCanvas(s, r.opts.TileWidth, r.opts.TileHeight)
}

func drawScanLines(c *Canvas, path []Point) {
	c.StrokeSegments(path, scanLineWidth, scanLineColor)
}

func drawDots(c *Canvas, dots []Point) {
	for _, d := range dots {
		c.FillCircle(d.X, d.Y, dotRadius, dotColor)
	}
}

func drawAlert(s Surface) {
	w, h := s.Size()
	s.FillRect(0, 0, float64(w), float64(h), alertColor)
}

func drawEntities(c *Canvas, entities []Entity, mode Mode) {
	for _, e := range entities {
		if d := e.Capabilities().Standard; d != nil {
			d.Draw(c, mode)
		}
	}
}
