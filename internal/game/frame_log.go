package game

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/Garsondee/Sightline/internal/render"
)

// FrameLogEntry is something that happened on one frame.
type FrameLogEntry struct {
	Frame    int
	Category string // alert, render, camera, input, level
	Key      string
	Value    string
	NumVal   float64 // suspicion for alert entries, scan points for render counts
}

// String formats the entry as a fixed-width log line.
//
//	[F=042] alert    raised           player at (12.5, 3.1)
func (e FrameLogEntry) String() string {
	return fmt.Sprintf("[F=%03d] %-8s %-16s %s", e.Frame, e.Category, e.Key, e.Value)
}

// matches reports whether e fits the query. Empty fields match anything.
func (e FrameLogEntry) matches(category, key, valueSubstr string) bool {
	return (category == "" || e.Category == category) &&
		(key == "" || e.Key == key) &&
		(valueSubstr == "" || strings.Contains(e.Value, valueSubstr))
}

func byFrame(e FrameLogEntry, frame int) int {
	return cmp.Compare(e.Frame, frame)
}

// FrameLog is the per-frame record of a run, kept in frame order. EventLog
// shows the last few events on screen; FrameLog keeps everything for
// reports and tests.
type FrameLog struct {
	entries []FrameLogEntry
	verbose bool
}

// NewFrameLog creates a FrameLog. If verbose is true, per-frame render
// counters, camera positions and input are also recorded.
func NewFrameLog(verbose bool) *FrameLog {
	return &FrameLog{verbose: verbose}
}

// Add records an entry for frame. An entry for an earlier frame than the
// last one recorded is slotted in after the other entries of its frame.
func (fl *FrameLog) Add(frame int, category, key, value string, numVal float64) {
	e := FrameLogEntry{Frame: frame, Category: category, Key: key, Value: value, NumVal: numVal}
	if n := len(fl.entries); n == 0 || fl.entries[n-1].Frame <= frame {
		fl.entries = append(fl.entries, e)
		return
	}
	i, _ := slices.BinarySearchFunc(fl.entries, frame+1, byFrame)
	fl.entries = slices.Insert(fl.entries, i, e)
}

// AddVerbose records an entry only when verbose mode is on.
func (fl *FrameLog) AddVerbose(frame int, category, key, value string, numVal float64) {
	if fl.verbose {
		fl.Add(frame, category, key, value, numVal)
	}
}

// Entries returns all recorded entries in frame order.
func (fl *FrameLog) Entries() []FrameLogEntry {
	return fl.entries
}

// Filter returns entries matching category and key; empty matches any.
func (fl *FrameLog) Filter(category, key string) []FrameLogEntry {
	var out []FrameLogEntry
	for _, e := range fl.entries {
		if e.matches(category, key, "") {
			out = append(out, e)
		}
	}
	return out
}

// FilterFrameRange returns the entries of frames from..to inclusive.
func (fl *FrameLog) FilterFrameRange(from, to int) []FrameLogEntry {
	lo, _ := slices.BinarySearchFunc(fl.entries, from, byFrame)
	hi, _ := slices.BinarySearchFunc(fl.entries, to+1, byFrame)
	if hi <= lo {
		return nil
	}
	return slices.Clone(fl.entries[lo:hi])
}

func (fl *FrameLog) Count(category, key string) int {
	n := 0
	for _, e := range fl.entries {
		if e.matches(category, key, "") {
			n++
		}
	}
	return n
}

// LastOf returns the latest entry matching category and key.
func (fl *FrameLog) LastOf(category, key string) (FrameLogEntry, bool) {
	for i := len(fl.entries) - 1; i >= 0; i-- {
		if fl.entries[i].matches(category, key, "") {
			return fl.entries[i], true
		}
	}
	return FrameLogEntry{}, false
}

// HasEntry reports whether any entry matches category, key and contains
// valueSubstr.
func (fl *FrameLog) HasEntry(category, key, valueSubstr string) bool {
	return slices.ContainsFunc(fl.entries, func(e FrameLogEntry) bool {
		return e.matches(category, key, valueSubstr)
	})
}

// AlertSpan is a run of frames during which the player was seen. Open spans
// have not been cleared yet.
type AlertSpan struct {
	Start, End int
	Open       bool
}

// Frames returns the span's length, counting an open span up to now.
func (s AlertSpan) Frames(now int) int {
	if s.Open {
		return max(0, now-s.Start)
	}
	return s.End - s.Start
}

// AlertSpans pairs every alert raise with the clear that ends it.
func (fl *FrameLog) AlertSpans() []AlertSpan {
	var spans []AlertSpan
	for _, e := range fl.entries {
		if e.Category != "alert" {
			continue
		}
		switch e.Key {
		case "raised":
			spans = append(spans, AlertSpan{Start: e.Frame, Open: true})
		case "cleared":
			if n := len(spans); n > 0 && spans[n-1].Open {
				spans[n-1].End, spans[n-1].Open = e.Frame, false
			}
		}
	}
	return spans
}

// Format returns the whole log, one entry per line.
func (fl *FrameLog) Format() string {
	return formatEntries(fl.entries)
}

func (fl *FrameLog) FormatRange(from, to int) string {
	return formatEntries(fl.FilterFrameRange(from, to))
}

func formatEntries(entries []FrameLogEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of the run so far.
func (fl *FrameLog) Summary(st render.FrameStats, suspicion float64) string {
	spans := fl.AlertSpans()
	seen := 0
	for _, s := range spans {
		seen += s.Frames(st.Frame)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at F=%03d ---\n", st.Frame)
	fmt.Fprintf(&sb, "alert=%t suspicion=%.2f raised=%d cleared=%d\n",
		st.Alert, suspicion, fl.Count("alert", "raised"), fl.Count("alert", "cleared"))
	fmt.Fprintf(&sb, "seen_frames=%d spans=%d\n", seen, len(spans))
	fmt.Fprintf(&sb, "scan_points=%d dots=%d entities=%d\n", st.ScanPoints, st.Dots, st.Drawn)
	fmt.Fprintf(&sb, "camera=(%.2f, %.2f)\n", st.CameraX, st.CameraY)
	if n := fl.Count("render", "error"); n > 0 {
		fmt.Fprintf(&sb, "render errors: %d\n", n)
	}
	return sb.String()
}
