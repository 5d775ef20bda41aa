package game

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
)

// DebugReport summarises the last lastFrames frames of s for pasting into
// a bug report.
func (s *Scene) DebugReport(lastFrames int) string {
	if lastFrames <= 0 {
		lastFrames = 120
	}
	toFrame := s.frame
	fromFrame := max(toFrame-lastFrames+1, 0)

	st := s.Renderer.Stats()
	opts := s.Renderer.Options()
	w, h := s.Level.Map().Size()
	p := s.Level.PlayerEntity()
	pos := p.Position()

	var b strings.Builder
	fmt.Fprintf(&b, "--- Sightline frame report ---\n")
	fmt.Fprintf(&b, "level=%s map=%dx%d tile=%gx%g frame_range=[%d..%d]\n",
		s.Level.Name, w, h, opts.TileWidth, opts.TileHeight, fromFrame, toFrame)
	fmt.Fprintf(&b, "player=(%.2f, %.2f) deactivated=%t sight_points=%d\n",
		pos.X, pos.Y, p.Deactivated, len(p.SightPolygon()))
	for i, m := range s.Level.Monoliths() {
		mp := m.Position()
		fmt.Fprintf(&b, "monolith %d at (%.2f, %.2f) sight_points=%d drawn_points=%d\n",
			i, mp.X, mp.Y, len(m.SightPolygon()), len(m.SightPolygonDrawn()))
	}
	fmt.Fprintf(&b, "cctv=%t\n\n", !s.Renderer.NoCCTV)

	b.WriteString(s.FrameLog.Summary(st, s.Level.Suspicion()))

	var events []string
	for _, e := range s.FrameLog.FilterFrameRange(fromFrame, toFrame) {
		switch e.Category {
		case "alert", "level", "render":
			if e.Key == "counts" {
				continue
			}
			events = append(events, e.String())
		}
	}
	if len(events) > 0 {
		b.WriteString("events:\n")
		for _, e := range events {
			b.WriteString("  - ")
			b.WriteString(e)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// CopyReport puts the debug report on the system clipboard.
func (s *Scene) CopyReport(lastFrames int) error {
	if err := clipboard.WriteAll(s.DebugReport(lastFrames)); err != nil {
		return fmt.Errorf("copy report: %w", err)
	}
	return nil
}
