package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	logPanelWidth = 280
	logMaxEntries = 40
	logLineHeight = 14
)

// EventKind colours an event log line.
type EventKind uint8

const (
	EventInfo  EventKind = iota
	EventAlert           // the player was spotted
	EventCalm            // the player slipped out of sight
	EventError
)

// EventEntry is a single line in the event log.
type EventEntry struct {
	Frame   int
	Kind    EventKind
	Message string
}

// EventLog is a ring buffer of gameplay events rendered on-screen.
type EventLog struct {
	entries []EventEntry
	head    int
	count   int
}

// NewEventLog creates an event log with a fixed capacity.
func NewEventLog() *EventLog {
	return &EventLog{
		entries: make([]EventEntry, logMaxEntries),
	}
}

// Add appends an entry, overwriting the oldest once full.
func (el *EventLog) Add(frame int, kind EventKind, msg string) {
	el.entries[el.head] = EventEntry{Frame: frame, Kind: kind, Message: msg}
	el.head = (el.head + 1) % logMaxEntries
	if el.count < logMaxEntries {
		el.count++
	}
}

// Addf formats and appends an entry.
func (el *EventLog) Addf(frame int, kind EventKind, format string, args ...any) {
	el.Add(frame, kind, fmt.Sprintf(format, args...))
}

// Recent returns entries in chronological order (oldest first).
func (el *EventLog) Recent() []EventEntry {
	result := make([]EventEntry, el.count)
	for i := 0; i < el.count; i++ {
		idx := (el.head - el.count + i + logMaxEntries) % logMaxEntries
		result[i] = el.entries[idx]
	}
	return result
}

func eventColour(k EventKind) color.RGBA {
	switch k {
	case EventAlert:
		return color.RGBA{R: 210, G: 60, B: 60, A: 255}
	case EventCalm:
		return color.RGBA{R: 70, G: 170, B: 90, A: 255}
	case EventError:
		return color.RGBA{R: 230, G: 180, B: 40, A: 255}
	default:
		return color.RGBA{R: 120, G: 130, B: 150, A: 255}
	}
}

// Draw renders the log panel at panelX, newest entry at the bottom.
func (el *EventLog) Draw(screen *ebiten.Image, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), float32(panelH), color.RGBA{R: 12, G: 12, B: 16, A: 230}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 60, G: 60, B: 80, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "EVENTS", panelX+8, 2)

	entries := el.Recent()
	maxVisible := (panelH - 24) / logLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	y := 20
	for _, e := range entries {
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 6, eventColour(e.Kind), false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%5d %s", e.Frame, e.Message), panelX+12, y)
		y += logLineHeight
	}
}
