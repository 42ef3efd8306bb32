package tilemap

import (
	"testing"

	"github.com/l1jgo/platformer/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testMap is 4x3 tiles of 16x16: a solid floor row, one ledge tile and a
// hidden collidable layer that must be ignored.
//
//	. . . .
//	. . # .
//	# # # #
func testMap(t *testing.T) *Map {
	t.Helper()
	m, err := New(16, 16, 4, 3)
	require.NoError(t, err)

	m.AddTileset(Tileset{
		Name:     "terrain",
		FirstGID: 1,
		Tiles: map[int]TileDef{
			0: {Glyph: '#', Properties: Properties{"material": "stone", "friction": 0.5}},
			1: {Glyph: '~', Properties: Properties{"material": "grass"}},
		},
	})
	m.AddLayer(Layer{
		Name:       "ground",
		Visible:    true,
		Properties: Properties{"collidable": true},
		Tiles: [][]int{
			{0, 0, 0, 0},
			{0, 0, 1, 0},
			{1, 1, 1, 1},
		},
	})
	m.AddLayer(Layer{
		Name:    "decor",
		Visible: true,
		Tiles: [][]int{
			{0, 0, 0, 0},
			{0, 0, 0, 0},
			{2, 0, 0, 0},
		},
	})
	m.AddLayer(Layer{
		Name:       "ghost",
		Visible:    false,
		Properties: Properties{"collidable": true},
		Tiles: [][]int{
			{1, 1, 1, 1},
		},
	})
	return m
}

func TestNewRejectsBadSizes(t *testing.T) {
	_, err := New(0, 16, 1, 1)
	assert.Error(t, err)
	_, err = New(16, 16, -1, 1)
	assert.Error(t, err)
}

func TestPositionToTile(t *testing.T) {
	m := testMap(t)

	p, err := m.PositionToTile(geom.Vec(17, 47.9), false)
	require.NoError(t, err)
	assert.Equal(t, Point{X: 1, Y: 2}, p)

	_, err = m.PositionToTile(geom.Vec(64, 0), false)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	p, err = m.PositionToTile(geom.Vec(-1, 100), true)
	require.NoError(t, err)
	assert.Equal(t, Point{X: -1, Y: 6}, p, "floor division extrapolates below zero")
}

func TestTileCenterRoundTrip(t *testing.T) {
	m := testMap(t)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			p, err := m.PositionToTile(m.TileCenter(x, y), false)
			require.NoError(t, err)
			assert.Equal(t, Point{X: x, Y: y}, p)
		}
	}
}

func TestValidity(t *testing.T) {
	m := testMap(t)

	assert.True(t, m.IsTileValid(0, 0))
	assert.True(t, m.IsTileValid(3, 2))
	assert.False(t, m.IsTileValid(4, 0))
	assert.False(t, m.IsTileValid(0, -1))

	assert.True(t, m.IsPositionInMap(geom.Vec(0, 0)))
	assert.False(t, m.IsPositionInMap(geom.Vec(64, 10)))
	assert.False(t, m.IsPositionInMap(geom.Vec(10, 48)))
}

func TestCollidableSetIgnoresHiddenAndUntaggedLayers(t *testing.T) {
	m := testMap(t)

	assert.True(t, m.IsTileCollidable(2, 1))
	assert.True(t, m.IsTileCollidable(0, 2))
	assert.False(t, m.IsTileCollidable(0, 0), "hidden layer")
	assert.False(t, m.IsTileCollidable(1, 1))
	assert.Equal(t, 5, m.CollidableCount())
}

func TestTilesInAreaFlushEdges(t *testing.T) {
	m := testMap(t)

	// Exactly one tile; right and bottom edges sit on boundaries.
	tiles, err := m.TilesInArea(geom.Rect{X: 16, Y: 16, W: 16, H: 16}, false, false)
	require.NoError(t, err)
	require.Len(t, tiles, 1)
	assert.Equal(t, Point{X: 1, Y: 1}, tiles[0].Point)

	// A hair wider reaches into the next column.
	tiles, err = m.TilesInArea(geom.Rect{X: 16, Y: 16, W: 16.5, H: 16}, false, false)
	require.NoError(t, err)
	assert.Len(t, tiles, 2)
}

func TestTilesInAreaCollidableOnly(t *testing.T) {
	m := testMap(t)

	// A body resting on the floor: bottom flush with the floor top.
	tiles, err := m.TilesInArea(geom.Rect{X: 0, Y: 20, W: 20, H: 12}, false, true)
	require.NoError(t, err)
	assert.Empty(t, tiles)

	// The same body probed 3 units lower touches two floor tiles.
	tiles, err = m.TilesInArea(geom.Rect{X: 0, Y: 23, W: 20, H: 12}, false, true)
	require.NoError(t, err)
	require.Len(t, tiles, 2)
	assert.Equal(t, Point{X: 0, Y: 2}, tiles[0].Point)
	assert.Equal(t, Point{X: 1, Y: 2}, tiles[1].Point)
}

func TestTilesInAreaBounds(t *testing.T) {
	m := testMap(t)
	r := geom.Rect{X: 40, Y: 40, W: 40, H: 40}

	_, err := m.TilesInArea(r, false, true)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	tiles, err := m.TilesInArea(r, true, true)
	require.NoError(t, err)
	require.Len(t, tiles, 2, "clipped to the grid")
	assert.Equal(t, Point{X: 2, Y: 2}, tiles[0].Point)
	assert.Equal(t, Point{X: 3, Y: 2}, tiles[1].Point)
}

func TestTilePropertiesMergeInLayerOrder(t *testing.T) {
	m := testMap(t)

	props := m.TileProperties(0, 2)
	assert.Equal(t, "grass", props["material"], "later layer overrides")
	f, ok := props.Float("friction")
	require.True(t, ok)
	assert.Equal(t, 0.5, f)

	assert.Nil(t, m.TileProperties(0, 0), "only hidden layer occupies it")
}

func TestConvertProperty(t *testing.T) {
	v, err := ConvertProperty("bool", "true")
	require.NoError(t, err)
	assert.Equal(t, true, v)

	v, err = ConvertProperty("int", " 12 ")
	require.NoError(t, err)
	assert.Equal(t, 12, v)

	v, err = ConvertProperty("float", "1.5")
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)

	v, err = ConvertProperty("int", "twelve")
	assert.Error(t, err)
	assert.Equal(t, "twelve", v, "raw string kept")

	v, err = ConvertProperty("vector", "1,2")
	assert.Error(t, err)
	assert.Equal(t, "1,2", v)

	v, err = ConvertProperty("", "plain")
	require.NoError(t, err)
	assert.Equal(t, "plain", v)
}

func TestPropertyAccessors(t *testing.T) {
	p := Properties{"solid": true, "hp": 3, "speed": 2.5, "name": "bat", "broken": "yes"}

	assert.True(t, p.Bool("solid"))
	assert.False(t, p.Bool("broken"), "raw strings are not booleans")
	n, ok := p.Int("hp")
	assert.True(t, ok)
	assert.Equal(t, 3, n)
	f, ok := p.Float("hp")
	assert.True(t, ok)
	assert.Equal(t, 3.0, f)
	s, ok := p.String("speed")
	assert.True(t, ok)
	assert.Equal(t, "2.5", s)
	_, ok = p.String("missing")
	assert.False(t, ok)
}
