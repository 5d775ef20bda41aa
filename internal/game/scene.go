package game

import (
	"fmt"

	"github.com/Garsondee/Sightline/internal/level"
	"github.com/Garsondee/Sightline/internal/render"
)

// playerSpeed is how far the player walks per frame, in tiles.
const playerSpeed = 0.08

// Input is one frame of player intent. DX and DY are in [-1, 1].
type Input struct {
	DX, DY float64
}

// Scene runs a level frame by frame: it applies input, updates sight and
// alert state, and renders. Game drives it from ebiten; TestScene drives
// it headless.
type Scene struct {
	Level    *level.Level
	Renderer *render.Renderer
	FrameLog *FrameLog
	Events   *EventLog

	frame int
}

// NewScene binds lvl to a renderer allocating from backend.
func NewScene(lvl *level.Level, backend render.Backend, opts render.Options, fl *FrameLog) (*Scene, error) {
	if fl == nil {
		fl = NewFrameLog(false)
	}
	r := render.NewRenderer(backend, opts)
	if err := r.Initialize(lvl); err != nil {
		return nil, fmt.Errorf("init renderer: %w", err)
	}
	s := &Scene{
		Level:    lvl,
		Renderer: r,
		FrameLog: fl,
		Events:   NewEventLog(),
	}
	s.Events.Addf(0, EventInfo, "level %s", lvl.Name)
	fl.Add(0, "level", "loaded", lvl.Name, 0)
	return s, nil
}

// Frame returns the number of completed steps.
func (s *Scene) Frame() int {
	return s.frame
}

// Step advances one frame: movement, sight, alert and camera goal.
func (s *Scene) Step(in Input) {
	s.frame++
	p := s.Level.PlayerEntity()

	if in.DX != 0 || in.DY != 0 {
		if p.Move(in.DX*playerSpeed, in.DY*playerSpeed, s.Level.TileMap()) {
			pos := p.Position()
			s.FrameLog.AddVerbose(s.frame, "input", "move", fmt.Sprintf("(%.2f, %.2f)", pos.X, pos.Y), 0)
		} else if p.Deactivated {
			s.FrameLog.AddVerbose(s.frame, "input", "frozen", "player deactivated", 0)
		}
	}

	if s.Level.Update() {
		pos := p.Position()
		where := fmt.Sprintf("player at (%.1f, %.1f)", pos.X, pos.Y)
		if s.Level.Alert() {
			s.FrameLog.Add(s.frame, "alert", "raised", where, s.Level.Suspicion())
			s.Events.Add(s.frame, EventAlert, "SPOTTED "+where)
		} else {
			s.FrameLog.Add(s.frame, "alert", "cleared", where, s.Level.Suspicion())
			s.Events.Add(s.frame, EventCalm, "hidden again")
		}
	}

	pos := p.Position()
	s.Renderer.Camera.Target(pos.X, pos.Y)
}

// Render draws the current frame into dst.
func (s *Scene) Render(dst render.Surface) error {
	if err := s.Renderer.Draw(dst); err != nil {
		s.FrameLog.Add(s.frame, "render", "error", err.Error(), 0)
		return err
	}
	st := s.Renderer.Stats()
	s.FrameLog.AddVerbose(s.frame, "render", "counts",
		fmt.Sprintf("scan=%d dots=%d entities=%d", st.ScanPoints, st.Dots, st.Drawn), float64(st.ScanPoints))
	s.FrameLog.AddVerbose(s.frame, "camera", "pos",
		fmt.Sprintf("(%.2f, %.2f)", st.CameraX, st.CameraY), 0)
	return nil
}

// SetNoCCTV toggles scan lines and dots and logs the change.
func (s *Scene) SetNoCCTV(off bool) {
	if s.Renderer.NoCCTV == off {
		return
	}
	s.Renderer.NoCCTV = off
	state := "on"
	if off {
		state = "off"
	}
	s.FrameLog.Add(s.frame, "render", "cctv", state, 0)
	s.Events.Addf(s.frame, EventInfo, "cctv overlay %s", state)
}

// Close releases the renderer's surfaces.
func (s *Scene) Close() {
	s.Renderer.Close()
}
