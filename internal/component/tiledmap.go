package component

import (
	"github.com/l1jgo/platformer/internal/core/ecs"
	"github.com/l1jgo/platformer/internal/geom"
	"github.com/l1jgo/platformer/internal/tilemap"
)

// TiledMap places a tile map in the world with its top-left corner at the
// entity position. All queries take and return world coordinates.
type TiledMap struct {
	ecs.Base
	Map     *tilemap.Map
	Visible bool
}

func NewTiledMap(m *tilemap.Map) *TiledMap {
	return &TiledMap{Map: m, Visible: true}
}

func (t *TiledMap) ShouldRender() bool { return t.Visible }

// Origin is the world position of the map's top-left corner.
func (t *TiledMap) Origin() geom.Vector2 {
	if tr := t.Transform(); tr != nil {
		return tr.Position
	}
	return geom.Vector2{}
}

func (t *TiledMap) WorldToTile(p geom.Vector2, extrapolate bool) (tilemap.Point, error) {
	return t.Map.PositionToTile(p.Sub(t.Origin()), extrapolate)
}

func (t *TiledMap) TileToWorldCenter(x, y int) geom.Vector2 {
	return t.Map.TileCenter(x, y).Add(t.Origin())
}

func (t *TiledMap) RectForTile(x, y int) geom.Rect {
	return t.Map.TileRect(x, y).Move(t.Origin())
}

func (t *TiledMap) IsTileValid(x, y int) bool      { return t.Map.IsTileValid(x, y) }
func (t *TiledMap) IsTileCollidable(x, y int) bool { return t.Map.IsTileCollidable(x, y) }
func (t *TiledMap) IsPositionInMap(p geom.Vector2) bool {
	return t.Map.IsPositionInMap(p.Sub(t.Origin()))
}

// TilesForArea returns the tiles under a world rectangle.
func (t *TiledMap) TilesForArea(r geom.Rect, extrapolate, collidableOnly bool) ([]tilemap.Tile, error) {
	origin := t.Origin()
	return t.Map.TilesInArea(r.Move(origin.Scale(-1)), extrapolate, collidableOnly)
}

// CollisionShapes returns the world rectangles of collidable tiles under the
// other entity's bounding rectangle.
func (t *TiledMap) CollisionShapes(other *ecs.Entity) []geom.Rect {
	b, ok := ecs.GetComponent[ecs.Bounded](other)
	if !ok {
		return nil
	}
	tiles, _ := t.TilesForArea(b.Rectangle(), true, true)
	if len(tiles) == 0 {
		return nil
	}
	rects := make([]geom.Rect, len(tiles))
	for i, tile := range tiles {
		rects[i] = t.RectForTile(tile.X, tile.Y)
	}
	return rects
}
