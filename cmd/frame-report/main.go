package main

import (
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/Garsondee/Sightline/internal/game"
	"github.com/Garsondee/Sightline/internal/level"
	"github.com/Garsondee/Sightline/internal/render"
)

type runStats struct {
	frames       int
	firstAlert   int
	firstCleared int
	raised       int
	cleared      int
	moves        int
	final        render.FrameStats
}

func main() {
	var (
		levelRef    string
		frames      int
		tile        float64
		walk        string
		out         string
		clip        bool
		noCCTV      bool
		deactivated bool
		verbose     bool
	)
	flag.StringVar(&levelRef, "level", level.DefaultLevel, "builtin level name or path to a level .yaml")
	flag.IntVar(&frames, "frames", 180, "frames to render")
	flag.Float64Var(&tile, "tile", 16, "tile size in pixels")
	flag.StringVar(&walk, "walk", "0,0", "per-frame player input as dx,dy")
	flag.StringVar(&out, "out", "", "write the last frame to this PNG file")
	flag.BoolVar(&clip, "clip", false, "copy the report to the clipboard")
	flag.BoolVar(&noCCTV, "nocctv", false, "suppress scan lines and dots")
	flag.BoolVar(&deactivated, "deactivated", false, "freeze the player")
	flag.BoolVar(&verbose, "v", false, "log renderer and level events to stderr")
	flag.Parse()

	if frames <= 0 {
		fmt.Println("error: -frames must be > 0")
		os.Exit(2)
	}
	in, err := parseWalk(walk)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(2)
	}
	if verbose {
		l := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		render.SetLogger(l)
		level.SetLogger(l)
	}

	opts := []game.SceneOption{game.WithTileSize(tile, tile), game.WithVerbose(true)}
	if strings.HasSuffix(levelRef, ".yaml") || strings.HasSuffix(levelRef, ".yml") {
		data, err := os.ReadFile(levelRef)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}
		opts = append(opts, game.WithLevelYAML(string(data)))
	} else {
		opts = append(opts, game.WithBuiltinLevel(levelRef))
	}
	if noCCTV {
		opts = append(opts, game.WithNoCCTV())
	}
	if deactivated {
		opts = append(opts, game.WithPlayerDeactivated())
	}

	ts, err := game.NewTestScene(opts...)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
	defer ts.Close()

	if err := ts.RunFrames(frames, in); err != nil {
		fmt.Printf("error: frame %d: %v\n", ts.Frame(), err)
		os.Exit(1)
	}

	fmt.Printf("=== Headless Frame Report ===\n")
	fmt.Printf("level=%s frames=%d tile=%g walk=%s\n\n", ts.Level.Name, frames, tile, walk)
	rs := collect(ts.FrameLog.Entries(), ts.Renderer.Stats(), frames)
	printRun(rs)

	report := ts.DebugReport(frames)
	fmt.Println()
	fmt.Print(report)

	if out != "" {
		if err := writePNG(out, ts.Screen); err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nwrote %s\n", out)
	}
	if clip {
		if err := clipboard.WriteAll(report); err != nil {
			fmt.Printf("clipboard: %v\n", err)
		} else {
			fmt.Println("report copied to clipboard")
		}
	}
}

// parseWalk reads "dx,dy" with each component clamped to [-1, 1].
func parseWalk(s string) (game.Input, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return game.Input{}, fmt.Errorf("-walk wants dx,dy, got %q", s)
	}
	var v [2]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return game.Input{}, fmt.Errorf("-walk: %w", err)
		}
		v[i] = min(1, max(-1, f))
	}
	return game.Input{DX: v[0], DY: v[1]}, nil
}

func collect(entries []game.FrameLogEntry, final render.FrameStats, frames int) runStats {
	rs := runStats{
		frames:       frames,
		firstAlert:   firstFrame(entries, "alert", "raised"),
		firstCleared: firstFrame(entries, "alert", "cleared"),
		final:        final,
	}
	for _, e := range entries {
		switch {
		case e.Category == "alert" && e.Key == "raised":
			rs.raised++
		case e.Category == "alert" && e.Key == "cleared":
			rs.cleared++
		case e.Category == "input" && e.Key == "move":
			rs.moves++
		}
	}
	return rs
}

func firstFrame(entries []game.FrameLogEntry, category, key string) int {
	for _, e := range entries {
		if e.Category == category && e.Key == key {
			return e.Frame
		}
	}
	return -1
}

func printRun(rs runStats) {
	fmt.Printf("phase_markers: first_alert=%d first_cleared=%d\n", rs.firstAlert, rs.firstCleared)
	fmt.Printf("event_totals: raised=%d cleared=%d moves=%d/%d\n", rs.raised, rs.cleared, rs.moves, rs.frames)
	fmt.Printf("final_frame: scan_points=%d dots=%d entities=%d alert=%t camera=(%.2f, %.2f)\n",
		rs.final.ScanPoints, rs.final.Dots, rs.final.Drawn, rs.final.Alert, rs.final.CameraX, rs.final.CameraY)
}

func writePNG(path string, s *render.RasterSurface) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, s.Image()); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
