package tilemap

import (
	"errors"
	"fmt"
	"math"

	"github.com/l1jgo/platformer/internal/geom"
)

var ErrOutOfBounds = errors.New("tilemap: out of bounds")

// Point is a tile coordinate.
type Point struct {
	X, Y int
}

// Tile is a query result: a coordinate plus the merged properties of every
// visible layer occupying it.
type Tile struct {
	Point
	Properties Properties
}

// TileDef describes one tile of a tileset.
type TileDef struct {
	Glyph      rune
	Properties Properties
}

// Tileset maps local tile ids to definitions. Global ids start at FirstGID.
type Tileset struct {
	Name     string
	FirstGID int
	Tiles    map[int]TileDef
}

// Layer is a grid of global tile ids, indexed [y][x]. Zero means empty.
type Layer struct {
	Name       string
	Visible    bool
	Properties Properties
	Tiles      [][]int
}

// GID returns the global id at (x, y), or 0 outside the layer.
func (l *Layer) GID(x, y int) int {
	if y < 0 || y >= len(l.Tiles) || x < 0 || x >= len(l.Tiles[y]) {
		return 0
	}
	return l.Tiles[y][x]
}

// Object is an object-layer entry, positioned in map-local pixels.
type Object struct {
	Name       string
	X, Y       float64
	Width      float64
	Height     float64
	Sprite     string
	Glyph      rune
	Components string
	Properties Properties
}

// Map is a loaded tile map. Coordinates are local to the map origin; the
// component owning the map translates world positions.
type Map struct {
	TileWidth  float64
	TileHeight float64
	Width      int
	Height     int
	Background string
	Layers     []Layer
	Objects    []Object

	tiles      map[int]TileDef
	collidable map[Point]struct{}
}

// New creates an empty map. Tile dimensions must be positive.
func New(tileWidth, tileHeight float64, width, height int) (*Map, error) {
	if tileWidth <= 0 || tileHeight <= 0 {
		return nil, fmt.Errorf("tilemap: tile size %gx%g must be positive", tileWidth, tileHeight)
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("tilemap: grid size %dx%d is negative", width, height)
	}
	return &Map{
		TileWidth:  tileWidth,
		TileHeight: tileHeight,
		Width:      width,
		Height:     height,
		tiles:      make(map[int]TileDef),
	}, nil
}

// AddTileset registers the tiles of ts under their global ids.
func (m *Map) AddTileset(ts Tileset) {
	for id, def := range ts.Tiles {
		m.tiles[ts.FirstGID+id] = def
	}
	m.collidable = nil
}

// AddLayer appends a tile layer. Later layers override earlier ones.
func (m *Map) AddLayer(l Layer) {
	m.Layers = append(m.Layers, l)
	m.collidable = nil
}

// TileDef returns the definition registered for a global id.
func (m *Map) TileDef(gid int) (TileDef, bool) {
	d, ok := m.tiles[gid]
	return d, ok
}

func (m *Map) PixelWidth() float64  { return float64(m.Width) * m.TileWidth }
func (m *Map) PixelHeight() float64 { return float64(m.Height) * m.TileHeight }

// IsTileValid reports whether (x, y) lies in [0,Width) x [0,Height).
func (m *Map) IsTileValid(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// IsPositionInMap reports whether a map-local position lies inside the map.
func (m *Map) IsPositionInMap(p geom.Vector2) bool {
	return p.X >= 0 && p.X < m.PixelWidth() && p.Y >= 0 && p.Y < m.PixelHeight()
}

// PositionToTile floor-divides a map-local position by the tile size. Without
// extrapolate a position outside the map fails with ErrOutOfBounds.
func (m *Map) PositionToTile(p geom.Vector2, extrapolate bool) (Point, error) {
	pt := Point{
		X: int(math.Floor(p.X / m.TileWidth)),
		Y: int(math.Floor(p.Y / m.TileHeight)),
	}
	if !extrapolate && !m.IsPositionInMap(p) {
		return pt, fmt.Errorf("position (%g, %g): %w", p.X, p.Y, ErrOutOfBounds)
	}
	return pt, nil
}

// TileRect returns the map-local rectangle covered by tile (x, y).
func (m *Map) TileRect(x, y int) geom.Rect {
	return geom.Rect{
		X: float64(x) * m.TileWidth,
		Y: float64(y) * m.TileHeight,
		W: m.TileWidth,
		H: m.TileHeight,
	}
}

// TileCenter returns the map-local center of tile (x, y).
func (m *Map) TileCenter(x, y int) geom.Vector2 {
	return m.TileRect(x, y).Center()
}

// TileProperties merges the tile properties of every visible layer with a
// non-empty tile at (x, y), in layer order.
func (m *Map) TileProperties(x, y int) Properties {
	var props Properties
	for i := range m.Layers {
		l := &m.Layers[i]
		if !l.Visible {
			continue
		}
		gid := l.GID(x, y)
		if gid == 0 {
			continue
		}
		props = props.merge(m.tiles[gid].Properties)
	}
	return props
}

// TilesInArea returns the tiles covered by a map-local rectangle. Bottom and
// right edges lying exactly on a tile boundary do not include the next tile.
// Without extrapolate the rectangle corners must lie inside the map; with it
// the range is clipped to the grid.
func (m *Map) TilesInArea(r geom.Rect, extrapolate, collidableOnly bool) ([]Tile, error) {
	if r.Empty() {
		return nil, nil
	}
	x0 := int(math.Floor(r.Left() / m.TileWidth))
	y0 := int(math.Floor(r.Top() / m.TileHeight))
	x1 := lastCell(r.Right(), m.TileWidth)
	y1 := lastCell(r.Bottom(), m.TileHeight)

	if !extrapolate && (!m.IsTileValid(x0, y0) || !m.IsTileValid(x1, y1)) {
		return nil, fmt.Errorf("area %v: %w", r, ErrOutOfBounds)
	}
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, m.Width-1), min(y1, m.Height-1)

	var out []Tile
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if collidableOnly && !m.IsTileCollidable(x, y) {
				continue
			}
			out = append(out, Tile{Point: Point{X: x, Y: y}, Properties: m.TileProperties(x, y)})
		}
	}
	return out, nil
}

// IsTileCollidable reports whether a visible layer tagged collidable=true
// occupies (x, y).
func (m *Map) IsTileCollidable(x, y int) bool {
	if m.collidable == nil {
		m.buildCollidable()
	}
	_, ok := m.collidable[Point{X: x, Y: y}]
	return ok
}

// CollidableCount returns the size of the collidable-tile set.
func (m *Map) CollidableCount() int {
	if m.collidable == nil {
		m.buildCollidable()
	}
	return len(m.collidable)
}

func (m *Map) buildCollidable() {
	m.collidable = make(map[Point]struct{})
	for i := range m.Layers {
		l := &m.Layers[i]
		if !l.Visible || !l.Properties.Bool("collidable") {
			continue
		}
		for y, row := range l.Tiles {
			for x, gid := range row {
				if gid != 0 && m.IsTileValid(x, y) {
					m.collidable[Point{X: x, Y: y}] = struct{}{}
				}
			}
		}
	}
}

// lastCell is the index of the last cell touched by a far edge. An edge
// exactly on a boundary belongs to the previous cell.
func lastCell(edge, size float64) int {
	c := edge / size
	f := math.Floor(c)
	if f == c {
		f--
	}
	return int(f)
}
