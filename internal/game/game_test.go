package game

import (
	"testing"

	"github.com/l1jgo/platformer/internal/component"
	"github.com/l1jgo/platformer/internal/core/ecs"
	"github.com/l1jgo/platformer/internal/core/event"
	"github.com/l1jgo/platformer/internal/geom"
	"github.com/l1jgo/platformer/internal/tilemap"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// level is 20x8 tiles of 20x20 units: a floor on row 6 (y 120..140), a
// ceiling tile at column 5 row 2 (x 100..120, y 40..60) and a wall on
// column 10 rows 3-5 (x 200..220).
var level = []string{
	"....................",
	"....................",
	".....#..............",
	"..........#.........",
	"..........#.........",
	"..........#.........",
	"####################",
	"....................",
}

func buildMap(t *testing.T, rows []string) *tilemap.Map {
	t.Helper()
	m, err := tilemap.New(20, 20, len(rows[0]), len(rows))
	require.NoError(t, err)
	m.AddTileset(tilemap.Tileset{FirstGID: 1, Tiles: map[int]tilemap.TileDef{0: {Glyph: '#'}}})

	tiles := make([][]int, len(rows))
	for y, row := range rows {
		tiles[y] = make([]int, len(row))
		for x, c := range row {
			if c == '#' {
				tiles[y][x] = 1
			}
		}
	}
	m.AddLayer(tilemap.Layer{
		Name:       "solid",
		Visible:    true,
		Properties: tilemap.Properties{"collidable": true},
		Tiles:      tiles,
	})
	return m
}

type world struct {
	scene *ecs.Scene
	bus   *event.Bus
}

func newWorld(t *testing.T) *world {
	t.Helper()
	bus := event.NewBus()
	w := &world{scene: ecs.NewScene(zap.NewNop(), bus), bus: bus}
	w.add(t, ecs.NewEntity("map", component.NewTiledMap(buildMap(t, level))))
	return w
}

func (w *world) add(t *testing.T, entities ...*ecs.Entity) {
	t.Helper()
	for _, e := range entities {
		require.NoError(t, w.scene.QueueAdd(e))
	}
	require.NoError(t, w.scene.Setup(0))
}

func (w *world) frame(t *testing.T, dt float64) {
	t.Helper()
	require.NoError(t, w.scene.Setup(dt))
	w.scene.SimulatePreFrame()
	w.scene.SimulatePostFrame()
}

// body is a 10x20 character at pos.
func body(name string, pos geom.Vector2, comps ...ecs.Component) (*ecs.Entity, *CharacterController) {
	ctrl := NewCharacterController()
	all := append([]ecs.Component{component.NewBoundingRectangle(10, 20)}, comps...)
	all = append(all, ctrl)
	e := ecs.NewEntity(name, all...)
	e.SetPosition(pos)
	return e, ctrl
}
