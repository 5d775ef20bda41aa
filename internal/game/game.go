// Package game runs a Sightline level: the ebiten game shell, the headless
// scene harness, and the logs and reports both of them produce.
package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/Sightline/internal/level"
	"github.com/Garsondee/Sightline/internal/render"
)

// LevelLoader builds a fresh level. Game calls it at start and on reload.
type LevelLoader func() (*level.Level, error)

// Game is the ebiten.Game for a single level.
type Game struct {
	width  int // window width, view plus log panel
	height int
	viewW  int
	viewH  int

	load    LevelLoader
	backend render.Backend
	opts    render.Options
	scene   *Scene

	// Offscreen buffer for the composited view; the log panel sits beside it.
	view *ebiten.Image

	showLog bool
	showHUD bool
	lastErr error
}

// New loads the first level and prepares a viewW×viewH view.
func New(load LevelLoader, opts render.Options, viewW, viewH int) (*Game, error) {
	g := &Game{
		width:   viewW + logPanelWidth,
		height:  viewH,
		viewW:   viewW,
		viewH:   viewH,
		load:    load,
		backend: render.EbitenBackend{},
		opts:    opts,
		view:    ebiten.NewImage(viewW, viewH),
		showLog: true,
		showHUD: true,
	}
	if err := g.reload(); err != nil {
		return nil, err
	}
	return g, nil
}

// reload swaps in a freshly loaded scene. The running scene is only closed
// once its replacement is ready; on error it keeps running.
func (g *Game) reload() error {
	lvl, err := g.load()
	if err != nil {
		return fmt.Errorf("load level: %w", err)
	}
	s, err := NewScene(lvl, g.backend, g.opts, NewFrameLog(false))
	if err != nil {
		return err
	}
	var noCCTV bool
	if old := g.scene; old != nil {
		noCCTV = old.Renderer.NoCCTV
		old.Close()
	}
	s.SetNoCCTV(noCCTV)
	g.scene = s
	return nil
}

// Scene returns the running scene.
func (g *Game) Scene() *Scene {
	return g.scene
}

func (g *Game) Update() error {
	g.handleInput()
	g.scene.Step(g.readMovement())
	return nil
}

// readMovement maps WASD and the arrow keys to a unit direction.
func (g *Game) readMovement() Input {
	var in Input
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		in.DY--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		in.DY++
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		in.DX--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		in.DX++
	}
	if in.DX != 0 && in.DY != 0 {
		in.DX /= math.Sqrt2
		in.DY /= math.Sqrt2
	}
	return in
}

// handleInput processes toggle keypresses (edge-triggered).
func (g *Game) handleInput() {
	s := g.scene

	// C: toggle the CCTV overlay.
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		s.SetNoCCTV(!s.Renderer.NoCCTV)
	}

	// F: freeze or release the player.
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		p := s.Level.PlayerEntity()
		p.Deactivated = !p.Deactivated
		s.Events.Addf(s.Frame(), EventInfo, "player deactivated=%t", p.Deactivated)
	}

	// Tab: event log panel. H: key legend.
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.showLog = !g.showLog
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}

	// F9: copy the frame report.
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		if err := s.CopyReport(300); err != nil {
			s.Events.Add(s.Frame(), EventError, err.Error())
		} else {
			s.Events.Add(s.Frame(), EventInfo, "report copied")
		}
	}

	// R: reload the level from disk.
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.reload(); err != nil {
			s.Events.Add(s.Frame(), EventError, err.Error())
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 8, G: 8, B: 10, A: 255})

	if err := g.scene.Render(render.WrapImage(g.view)); err != nil {
		if err != g.lastErr {
			g.scene.Events.Add(g.scene.Frame(), EventError, err.Error())
		}
		g.lastErr = err
	}
	screen.DrawImage(g.view, nil)

	if g.showLog {
		g.scene.Events.Draw(screen, g.viewW, g.height)
	}
	if g.showHUD {
		g.drawHUD(screen)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	st := g.scene.Renderer.Stats()
	lines := []string{
		"WASD move  C cctv  F freeze  R reload",
		"Tab log  H help  F9 copy report",
		fmt.Sprintf("frame %d  scan %d  dots %d  tps %.0f", st.Frame, st.ScanPoints, st.Dots, ebiten.ActualTPS()),
	}
	y := g.viewH - 16*len(lines) - 8
	for _, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, 12, y)
		y += 16
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
