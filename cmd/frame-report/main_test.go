package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Garsondee/Sightline/internal/game"
	"github.com/Garsondee/Sightline/internal/render"
)

func TestParseWalk(t *testing.T) {
	in, err := parseWalk("0.5, -3")
	if err != nil {
		t.Fatal(err)
	}
	if in.DX != 0.5 || in.DY != -1 {
		t.Fatalf("expected (0.5, -1), got (%v, %v)", in.DX, in.DY)
	}
	for _, bad := range []string{"", "1", "a,b", "1,2,3"} {
		if _, err := parseWalk(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestCollect_CountsTransitions(t *testing.T) {
	entries := []game.FrameLogEntry{
		{Frame: 1, Category: "input", Key: "move"},
		{Frame: 4, Category: "alert", Key: "raised"},
		{Frame: 9, Category: "alert", Key: "cleared"},
		{Frame: 12, Category: "alert", Key: "raised"},
	}
	rs := collect(entries, render.FrameStats{Frame: 20}, 20)
	if rs.firstAlert != 4 || rs.firstCleared != 9 {
		t.Fatalf("unexpected phase markers: alert=%d cleared=%d", rs.firstAlert, rs.firstCleared)
	}
	if rs.raised != 2 || rs.cleared != 1 || rs.moves != 1 {
		t.Fatalf("unexpected totals %+v", rs)
	}
}

func TestFirstFrame_Missing(t *testing.T) {
	if got := firstFrame(nil, "alert", "raised"); got != -1 {
		t.Fatalf("expected -1, got %d", got)
	}
}

func TestWritePNG(t *testing.T) {
	ts, err := game.NewTestScene(game.WithTileSize(4, 4))
	if err != nil {
		t.Fatal(err)
	}
	defer ts.Close()
	if err := ts.RunFrames(2, game.Input{}); err != nil {
		t.Fatal(err)
	}

	p := filepath.Join(t.TempDir(), "frame.png")
	if err := writePNG(p, ts.Screen); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(p)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	w, h := ts.Screen.Size()
	if b := img.Bounds(); b.Dx() != w || b.Dy() != h {
		t.Fatalf("expected %dx%d PNG, got %v", w, h, b)
	}
}
