package level

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/Sightline/internal/render"
)

func TestCapabilitiesResolvedAtConstruction(t *testing.T) {
	f := NewFloor(0, 0, 1, 1, color.White)
	assert.NotNil(t, f.Capabilities().Floor)
	assert.Nil(t, f.Capabilities().Standard)
	assert.True(t, f.HasTag(TagFloor))

	m := NewMonolith(1, 1, nil)
	assert.Nil(t, m.Capabilities().Floor)
	assert.NotNil(t, m.Capabilities().Standard)
	assert.True(t, m.HasTag(TagMonolith))

	p := NewPlayer(1, 1)
	assert.NotNil(t, p.Capabilities().Standard)
	assert.False(t, p.HasTag(TagMonolith))

	prop := NewProp(1, 1, 1, 1, color.Black)
	assert.NotNil(t, prop.Capabilities().Standard)
	assert.True(t, prop.HasTag(TagProp))
}

func TestFloor_DrawsItsColour(t *testing.T) {
	f := NewFloor(0, 0, 2, 2, color.RGBA{R: 200, A: 255})

	s := render.NewRasterSurface(12, 12)
	f.DrawFloor(render.NewCanvas(s, 4, 4), render.ModeNormal)
	assert.Equal(t, color.RGBA{R: 200, A: 255}, s.Image().RGBAAt(2, 2))
	assert.Equal(t, color.RGBA{}, s.Image().RGBAAt(10, 10))
}

func TestPlayer_MoveSlidesAlongWalls(t *testing.T) {
	tm := NewTileMap(5, 5)
	tm.Set(3, 1, CellWall)
	p := NewPlayer(2.5, 1.5)

	moved := p.Move(0.5, 0.5, tm)
	require.True(t, moved)
	assert.Equal(t, 2.5, p.Position().X, "x blocked by the wall")
	assert.Equal(t, 2.0, p.Position().Y, "y still free")
}

func TestPlayer_DeactivatedDoesNotMove(t *testing.T) {
	tm := NewTileMap(5, 5)
	p := NewPlayer(2.5, 2.5)
	p.Deactivated = true

	assert.False(t, p.Move(1, 0, tm))
	assert.Equal(t, render.Point{X: 2.5, Y: 2.5}, p.Position())

	p.Deactivated = false
	assert.True(t, p.Move(1, 0, tm))
	assert.Equal(t, 3.5, p.Position().X)
}

func TestWallImage_DrawsInTiles(t *testing.T) {
	w := &WallImage{X: 1, Y: 0, W: 1, H: 1, Col: color.RGBA{B: 255, A: 255}}
	s := render.NewRasterSurface(8, 4)
	w.Draw(render.NewCanvas(s, 4, 4), render.ModeNormal)
	assert.Equal(t, uint8(255), s.Image().RGBAAt(5, 1).B)
	assert.Zero(t, s.Image().RGBAAt(1, 1).A)
}

func TestFrameBorder_CoversEdgesOnly(t *testing.T) {
	s := render.NewRasterSurface(20, 20)
	(&FrameBorder{Width: 2}).Draw(render.NewCanvas(s, 1, 1), render.ModeNormal)
	assert.Equal(t, uint8(255), s.Image().RGBAAt(0, 10).A)
	assert.Equal(t, uint8(255), s.Image().RGBAAt(19, 19).A)
	assert.Zero(t, s.Image().RGBAAt(10, 10).A)
}
