package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Sightline/internal/game"
	"github.com/Garsondee/Sightline/internal/level"
	"github.com/Garsondee/Sightline/internal/render"
)

func main() {
	var (
		levelRef string
		tile     float64
		width    int
		height   int
		verbose  bool
	)
	flag.StringVar(&levelRef, "level", level.DefaultLevel, "builtin level name or path to a level .yaml")
	flag.Float64Var(&tile, "tile", 50, "tile size in pixels")
	flag.IntVar(&width, "width", 1280, "view width in pixels")
	flag.IntVar(&height, "height", 720, "view height in pixels")
	flag.BoolVar(&verbose, "v", false, "log renderer and level events to stderr")
	flag.Parse()

	if verbose {
		l := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		render.SetLogger(l)
		level.SetLogger(l)
	}

	g, err := game.New(func() (*level.Level, error) {
		return level.Open(levelRef)
	}, render.Options{TileWidth: tile, TileHeight: tile}, width, height)
	if err != nil {
		log.Fatal(err)
	}

	w, h := g.Layout(0, 0)
	ebiten.SetWindowTitle("Sightline")
	ebiten.SetWindowSize(w, h)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
