package game

import (
	"fmt"

	"github.com/Garsondee/Sightline/internal/level"
	"github.com/Garsondee/Sightline/internal/render"
)

// TestScene is a headless harness used by tests and the frame-report tool.
// It mirrors Game.Update and Game.Draw but renders with the software
// backend, so every frame's pixels can be inspected.
type TestScene struct {
	*Scene
	Screen *render.RasterSurface

	levelName string
	levelYAML []byte
	opts      render.Options
	screenW   int
	screenH   int
	verbose   bool

	err error
}

// sceneOptionKind controls the pass in which an option is applied.
type sceneOptionKind int

const (
	sceneOptInfra sceneOptionKind = iota // level source, sizes, verbose; applied first
	sceneOptWorld                        // player and renderer tweaks; applied after the scene exists
)

// SceneOption is a builder function applied to a TestScene during construction.
type SceneOption struct {
	kind sceneOptionKind
	fn   func(*TestScene)
}

// WithBuiltinLevel selects a level compiled into the binary.
func WithBuiltinLevel(name string) SceneOption {
	return SceneOption{sceneOptInfra, func(ts *TestScene) {
		ts.levelName = name
	}}
}

// WithLevelYAML uses the given level file contents.
func WithLevelYAML(doc string) SceneOption {
	return SceneOption{sceneOptInfra, func(ts *TestScene) {
		ts.levelYAML = []byte(doc)
	}}
}

// WithTileSize sets the tile size in pixels.
func WithTileSize(w, h float64) SceneOption {
	return SceneOption{sceneOptInfra, func(ts *TestScene) {
		ts.opts = render.Options{TileWidth: w, TileHeight: h}
	}}
}

// WithScreenSize sets the destination surface size in pixels.
func WithScreenSize(w, h int) SceneOption {
	return SceneOption{sceneOptInfra, func(ts *TestScene) {
		ts.screenW, ts.screenH = w, h
	}}
}

// WithVerbose enables per-frame verbose logging.
func WithVerbose(v bool) SceneOption {
	return SceneOption{sceneOptInfra, func(ts *TestScene) {
		ts.verbose = v
	}}
}

// WithNoCCTV starts with scan lines and dots suppressed.
func WithNoCCTV() SceneOption {
	return SceneOption{sceneOptWorld, func(ts *TestScene) {
		ts.SetNoCCTV(true)
	}}
}

// WithPlayerDeactivated freezes the player from the first frame.
func WithPlayerDeactivated() SceneOption {
	return SceneOption{sceneOptWorld, func(ts *TestScene) {
		ts.Level.PlayerEntity().Deactivated = true
	}}
}

// NewTestScene constructs a TestScene from the given options in ordered
// passes:
//  1. Infrastructure (level source, tile and screen size, verbose)
//  2. Load the level and bind the renderer
//  3. World tweaks (player state, CCTV)
func NewTestScene(opts ...SceneOption) (*TestScene, error) {
	ts := &TestScene{
		levelName: level.DefaultLevel,
		opts:      render.Options{TileWidth: 8, TileHeight: 8},
	}
	for _, o := range opts {
		if o.kind == sceneOptInfra {
			o.fn(ts)
		}
	}

	var (
		lvl *level.Level
		err error
	)
	if ts.levelYAML != nil {
		lvl, err = level.Parse(ts.levelYAML)
	} else {
		lvl, err = level.Builtin(ts.levelName)
	}
	if err != nil {
		return nil, fmt.Errorf("test scene: %w", err)
	}

	if ts.screenW <= 0 || ts.screenH <= 0 {
		w, h := lvl.Map().Size()
		ts.screenW = int(float64(w) * ts.opts.TileWidth)
		ts.screenH = int(float64(h) * ts.opts.TileHeight)
	}
	ts.Screen = render.NewRasterSurface(ts.screenW, ts.screenH)

	s, err := NewScene(lvl, render.RasterBackend{}, ts.opts, NewFrameLog(ts.verbose))
	if err != nil {
		return nil, fmt.Errorf("test scene: %w", err)
	}
	ts.Scene = s

	for _, o := range opts {
		if o.kind == sceneOptWorld {
			o.fn(ts)
		}
	}
	return ts, nil
}

// RunFrames steps and renders n frames with the same input. It stops at
// the first render error, which is also returned by Err.
func (ts *TestScene) RunFrames(n int, in Input) error {
	for i := 0; i < n; i++ {
		if err := ts.runOneFrame(in); err != nil {
			return err
		}
	}
	return nil
}

// RunUntil steps up to maxFrames with the same input, stopping early if
// predicate returns true. Returns the frame at which the predicate was
// satisfied, or -1.
func (ts *TestScene) RunUntil(in Input, predicate func(*TestScene) bool, maxFrames int) int {
	for i := 0; i < maxFrames; i++ {
		if ts.runOneFrame(in) != nil {
			return -1
		}
		if predicate(ts) {
			return ts.Frame()
		}
	}
	return -1
}

// runOneFrame mirrors Game.Update followed by Game.Draw.
func (ts *TestScene) runOneFrame(in Input) error {
	ts.Step(in)
	if err := ts.Render(ts.Screen); err != nil {
		ts.err = err
		return err
	}
	return nil
}

// Err returns the first render error seen, if any.
func (ts *TestScene) Err() error {
	return ts.err
}
