package level

import (
	"embed"
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/Garsondee/Sightline/internal/render"
)

//go:embed schema.json levels/*.yaml
var files embed.FS

// DefaultLevel is the builtin level loaded when none is named.
const DefaultLevel = "intro"

// ErrInvalid is wrapped by every error caused by level content rather than
// I/O.
var ErrInvalid = errors.New("invalid level")

// ValidationError lists every schema violation found in a level file.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("level schema: %s", strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }

// File is the YAML form of a level.
type File struct {
	Name string `yaml:"name"`
	Map  struct {
		Width  int      `yaml:"width"`
		Height int      `yaml:"height"`
		Rows   []string `yaml:"rows"`
	} `yaml:"map"`
	Player    PointSpec      `yaml:"player"`
	Monoliths []MonolithSpec `yaml:"monoliths,omitempty"`
	Floors    []AreaSpec     `yaml:"floors,omitempty"`
	Props     []AreaSpec     `yaml:"props,omitempty"`
	Walls     []AreaSpec     `yaml:"walls,omitempty"`
	UI        struct {
		AlertMeter bool    `yaml:"alert_meter,omitempty"`
		Border     float64 `yaml:"border,omitempty"`
	} `yaml:"ui,omitempty"`
}

// PointSpec is a position in tiles.
type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// MonolithSpec places a monolith, optionally with a fixed drawn polygon.
type MonolithSpec struct {
	X     float64      `yaml:"x"`
	Y     float64      `yaml:"y"`
	Drawn [][]float64  `yaml:"drawn,omitempty"`
}

// AreaSpec is a coloured rectangle in tiles.
type AreaSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	W      float64 `yaml:"w"`
	H      float64 `yaml:"h"`
	Colour string  `yaml:"colour"`
}

// Load reads and builds the level file at p.
func Load(p string) (*Level, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", p, err)
	}
	return lvl, nil
}

// Builtin builds one of the levels compiled into the binary.
func Builtin(name string) (*Level, error) {
	data, err := files.ReadFile(path.Join("levels", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("builtin level %q: %w", name, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("builtin level %q: %w", name, err)
	}
	return lvl, nil
}

// Open loads a level by builtin name, or from disk when ref looks like a
// file path.
func Open(ref string) (*Level, error) {
	if ref == "" {
		ref = DefaultLevel
	}
	if strings.HasSuffix(ref, ".yaml") || strings.HasSuffix(ref, ".yml") || strings.ContainsRune(ref, '/') {
		return Load(ref)
	}
	return Builtin(ref)
}

// BuiltinNames lists the levels compiled into the binary.
func BuiltinNames() []string {
	entries, err := fs.ReadDir(files, "levels")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	return names
}

// Parse validates YAML level data against the level schema and builds it.
func Parse(data []byte) (*Level, error) {
	if err := validate(data); err != nil {
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode level: %w", err)
	}
	return f.Build()
}

func validate(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse level yaml: %w", err)
	}
	schema, err := files.ReadFile("schema.json")
	if err != nil {
		return fmt.Errorf("load level schema: %w", err)
	}
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schema),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("validate level: %w", err)
	}
	if !result.Valid() {
		verr := &ValidationError{}
		for _, desc := range result.Errors() {
			verr.Problems = append(verr.Problems, desc.String())
		}
		return verr
	}
	return nil
}

// Build turns a decoded file into a level. It checks what the schema
// cannot: the grid matches the declared size and every entity stands on
// the map.
func (f *File) Build() (*Level, error) {
	tm, err := f.tileMap()
	if err != nil {
		return nil, err
	}
	onMap := func(what string, x, y float64) error {
		if x < 0 || y < 0 || x > float64(tm.Cols) || y > float64(tm.Rows) {
			return fmt.Errorf("%w: %s at (%g, %g) is off the %dx%d map", ErrInvalid, what, x, y, tm.Cols, tm.Rows)
		}
		return nil
	}

	if err := onMap("player", f.Player.X, f.Player.Y); err != nil {
		return nil, err
	}
	if !tm.IsPassable(int(f.Player.X), int(f.Player.Y)) {
		return nil, fmt.Errorf("%w: player starts inside a solid cell", ErrInvalid)
	}
	lvl := New(f.Name, tm, NewPlayer(f.Player.X, f.Player.Y))

	for i, fl := range f.Floors {
		col, err := ParseColour(fl.Colour)
		if err != nil {
			return nil, fmt.Errorf("floor %d: %w", i, err)
		}
		if err := onMap(fmt.Sprintf("floor %d", i), fl.X, fl.Y); err != nil {
			return nil, err
		}
		lvl.AddEntity(NewFloor(fl.X, fl.Y, fl.W, fl.H, col))
	}
	for i, p := range f.Props {
		col, err := ParseColour(p.Colour)
		if err != nil {
			return nil, fmt.Errorf("prop %d: %w", i, err)
		}
		if err := onMap(fmt.Sprintf("prop %d", i), p.X, p.Y); err != nil {
			return nil, err
		}
		lvl.AddEntity(NewProp(p.X, p.Y, p.W, p.H, col))
	}
	for i, w := range f.Walls {
		col, err := ParseColour(w.Colour)
		if err != nil {
			return nil, fmt.Errorf("wall %d: %w", i, err)
		}
		lvl.AddWall(&WallImage{X: w.X, Y: w.Y, W: w.W, H: w.H, Col: col})
	}
	for i, m := range f.Monoliths {
		if err := onMap(fmt.Sprintf("monolith %d", i), m.X, m.Y); err != nil {
			return nil, err
		}
		var drawn []render.Point
		for _, p := range m.Drawn {
			drawn = append(drawn, render.Point{X: p[0], Y: p[1]})
		}
		lvl.AddMonolith(NewMonolith(m.X, m.Y, drawn))
	}

	if f.UI.AlertMeter {
		lvl.AddUI(lvl.NewAlertMeter(16, 16, 160, 14))
	}
	if f.UI.Border > 0 {
		lvl.AddUI(&FrameBorder{Width: f.UI.Border})
	}
	lvl.Update()

	logger().Info("level loaded",
		"name", lvl.Name,
		"size", fmt.Sprintf("%dx%d", tm.Cols, tm.Rows),
		"entities", len(lvl.entities),
		"monoliths", len(lvl.monoliths),
		"walls", len(lvl.walls))
	return lvl, nil
}

func (f *File) tileMap() (*TileMap, error) {
	w, h := f.Map.Width, f.Map.Height
	if len(f.Map.Rows) != h {
		return nil, fmt.Errorf("%w: map has %d rows, want %d", ErrInvalid, len(f.Map.Rows), h)
	}
	tm := NewTileMap(w, h)
	for row, line := range f.Map.Rows {
		cells := []rune(line)
		if len(cells) != w {
			return nil, fmt.Errorf("%w: map row %d has %d cells, want %d", ErrInvalid, row, len(cells), w)
		}
		for col, r := range cells {
			c, ok := cellRunes[r]
			if !ok {
				return nil, fmt.Errorf("%w: map row %d: unknown cell %q", ErrInvalid, row, r)
			}
			tm.Set(col, row, c)
		}
	}
	return tm, nil
}

// ParseColour accepts #rrggbb, #rrggbbaa or an SVG colour name.
func ParseColour(s string) (color.Color, error) {
	if hex, ok := strings.CutPrefix(s, "#"); ok {
		if len(hex) != 6 && len(hex) != 8 {
			return nil, fmt.Errorf("%w: colour %q needs 6 or 8 hex digits", ErrInvalid, s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: colour %q: %w", ErrInvalid, s, err)
		}
		if len(hex) == 6 {
			v = v<<8 | 0xff
		}
		return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: unknown colour %q", ErrInvalid, s)
}
