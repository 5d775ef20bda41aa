package level

import (
	"image/color"
	"math"

	"github.com/Garsondee/Sightline/internal/geom"
	"github.com/Garsondee/Sightline/internal/render"
)

// Cell identifies what occupies one tile of the map.
type Cell uint8

const (
	CellFloor  Cell = iota // open floor
	CellWall               // solid wall, blocks movement and sight
	CellGlass              // window, blocks movement but not sight
	CellScreen             // wall-mounted screen, solid like a wall
	cellCount              // sentinel
)

// cellRunes maps level-file characters to cells.
var cellRunes = map[rune]Cell{
	'.': CellFloor,
	' ': CellFloor,
	'#': CellWall,
	'=': CellGlass,
	'S': CellScreen,
}

// cellBlocksMovement returns true if the player cannot walk through c.
func cellBlocksMovement(c Cell) bool {
	return c != CellFloor
}

// cellBlocksSight returns true if c stops sightlines.
func cellBlocksSight(c Cell) bool {
	switch c {
	case CellWall, CellScreen:
		return true
	default:
		return false
	}
}

// cellColour returns the base colour for a cell kind.
func cellColour(c Cell) color.RGBA {
	switch c {
	case CellWall:
		return color.RGBA{R: 46, G: 44, B: 52, A: 255}
	case CellGlass:
		return color.RGBA{R: 150, G: 190, B: 210, A: 255}
	case CellScreen:
		return color.RGBA{R: 30, G: 80, B: 120, A: 255}
	default:
		return color.RGBA{R: 205, G: 200, B: 185, A: 255}
	}
}

var lineArtColour = color.RGBA{R: 90, G: 90, B: 100, A: 255}

const lineArtWidth = 2.0 // pixels

// TileMap is the static level grid. It is immutable after load.
type TileMap struct {
	Cols  int
	Rows  int
	Cells []Cell // row-major: index = row*Cols + col
}

// NewTileMap creates an all-floor tile map.
func NewTileMap(cols, rows int) *TileMap {
	return &TileMap{Cols: cols, Rows: rows, Cells: make([]Cell, cols*rows)}
}

// inBounds returns true if (col, row) is within the tile map.
func (tm *TileMap) inBounds(col, row int) bool {
	return col >= 0 && col < tm.Cols && row >= 0 && row < tm.Rows
}

// At returns the cell at (col, row). Out of bounds reads as wall.
func (tm *TileMap) At(col, row int) Cell {
	if !tm.inBounds(col, row) {
		return CellWall
	}
	return tm.Cells[row*tm.Cols+col]
}

// Set places c at (col, row). Out of bounds writes are ignored.
func (tm *TileMap) Set(col, row int, c Cell) {
	if !tm.inBounds(col, row) {
		return
	}
	tm.Cells[row*tm.Cols+col] = c
}

// IsPassable returns true if the player can stand in (col, row).
func (tm *TileMap) IsPassable(col, row int) bool {
	return !cellBlocksMovement(tm.At(col, row))
}

// BlocksSight returns true if (col, row) stops sightlines.
func (tm *TileMap) BlocksSight(col, row int) bool {
	return cellBlocksSight(tm.At(col, row))
}

// Size returns the map size in tiles.
func (tm *TileMap) Size() (int, int) {
	return tm.Cols, tm.Rows
}

// Draw paints the floor and every non-floor cell.
func (tm *TileMap) Draw(c *render.Canvas, mode render.Mode) {
	c.FillRect(0, 0, float64(tm.Cols), float64(tm.Rows), mode.Color(cellColour(CellFloor)))
	for row := 0; row < tm.Rows; row++ {
		for col := 0; col < tm.Cols; col++ {
			cell := tm.Cells[row*tm.Cols+col]
			if cell == CellFloor {
				continue
			}
			c.FillRect(float64(col), float64(row), 1, 1, mode.Color(cellColour(cell)))
		}
	}
}

// DrawLineArt strokes the outline of every non-floor region. This is the
// part of the map the player remembers when it is out of sight.
func (tm *TileMap) DrawLineArt(c *render.Canvas) {
	segs := tm.edges(func(cell Cell) bool { return cell != CellFloor }, false)
	pts := make([]render.Point, 0, 2*len(segs))
	for _, s := range segs {
		pts = append(pts, s.A, s.B)
	}
	c.StrokeSegments(pts, lineArtWidth, lineArtColour)
}

// Obstructions returns the segments that block sight: the map border plus
// every boundary between a sight-blocking cell and one that is not.
func (tm *TileMap) Obstructions() []geom.Segment {
	segs := geom.RectEdges(0, 0, float64(tm.Cols), float64(tm.Rows))
	return append(segs, tm.edges(cellBlocksSight, true)...)
}

// edges returns the boundaries between cells matching solid and cells that
// do not, merged into maximal horizontal and vertical runs. When skipBorder
// is set, boundaries on the map edge are left out.
func (tm *TileMap) edges(solid func(Cell) bool, skipBorder bool) []geom.Segment {
	in := func(col, row int) bool {
		if !tm.inBounds(col, row) {
			return false
		}
		return solid(tm.Cells[row*tm.Cols+col])
	}
	var out []geom.Segment

	// Horizontal boundaries sit between row-1 and row.
	for row := 0; row <= tm.Rows; row++ {
		if skipBorder && (row == 0 || row == tm.Rows) {
			continue
		}
		start := -1
		for col := 0; col <= tm.Cols; col++ {
			edge := col < tm.Cols && in(col, row-1) != in(col, row)
			if edge && start < 0 {
				start = col
			}
			if !edge && start >= 0 {
				out = append(out, geom.Seg(float64(start), float64(row), float64(col), float64(row)))
				start = -1
			}
		}
	}
	// Vertical boundaries sit between col-1 and col.
	for col := 0; col <= tm.Cols; col++ {
		if skipBorder && (col == 0 || col == tm.Cols) {
			continue
		}
		start := -1
		for row := 0; row <= tm.Rows; row++ {
			edge := row < tm.Rows && in(col-1, row) != in(col, row)
			if edge && start < 0 {
				start = row
			}
			if !edge && start >= 0 {
				out = append(out, geom.Seg(float64(col), float64(start), float64(col), float64(row)))
				start = -1
			}
		}
	}
	return out
}

// Passable reports whether a body of the given radius centred at (x, y)
// fits without overlapping an impassable cell.
func (tm *TileMap) Passable(x, y, radius float64) bool {
	minC, maxC := int(math.Floor(x-radius)), int(math.Floor(x+radius))
	minR, maxR := int(math.Floor(y-radius)), int(math.Floor(y+radius))
	for row := minR; row <= maxR; row++ {
		for col := minC; col <= maxC; col++ {
			if !tm.IsPassable(col, row) {
				return false
			}
		}
	}
	return true
}
