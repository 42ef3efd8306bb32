// Package render turns a scene into a read-only frame and draws frames on a
// terminal.
package render

import (
	"github.com/l1jgo/platformer/internal/component"
	"github.com/l1jgo/platformer/internal/core/ecs"
	"github.com/l1jgo/platformer/internal/geom"
	"github.com/l1jgo/platformer/internal/tilemap"
)

// Renderer draws frames. It never feeds back into the scene.
type Renderer interface {
	Render(f Frame) error
}

// Sprite is the render state of one SpriteRenderer.
type Sprite struct {
	EntityID int64
	Image    string
	Glyph    rune
	Position geom.Vector2
	Rotation float64
	Scale    float64
	FlipH    bool
	FlipV    bool
	Visible  bool
}

// MapView is a tile map placed in the world.
type MapView struct {
	Origin  geom.Vector2
	Map     *tilemap.Map
	Visible bool
}

// Frame is a snapshot of everything renderable in a scene.
type Frame struct {
	Camera     ecs.Transform
	HasCamera  bool
	Background string
	Maps       []MapView
	Sprites    []Sprite
	Status     string
}

// Snapshot captures the renderable components of every active entity in
// admission order, plus the camera transform. Hidden components are kept
// with Visible false.
func Snapshot(s *ecs.Scene) Frame {
	var f Frame
	if cam := s.Camera(); cam != nil {
		f.Camera = *cam.Transform()
		f.HasCamera = true
	}

	for _, e := range s.Entities() {
		t := e.Transform()
		for _, r := range ecs.GetComponents[ecs.Renderable](e) {
			switch c := r.(type) {
			case *component.SpriteRenderer:
				f.Sprites = append(f.Sprites, Sprite{
					EntityID: int64(e.ID()),
					Image:    c.Image,
					Glyph:    c.CurrentGlyph(),
					Position: t.Position,
					Rotation: t.Rotation,
					Scale:    t.Scale,
					FlipH:    c.HorizontalFlip,
					FlipV:    c.VerticalFlip,
					Visible:  c.ShouldRender(),
				})
			case *component.TiledMap:
				f.Maps = append(f.Maps, MapView{Origin: t.Position, Map: c.Map, Visible: c.ShouldRender()})
				if f.Background == "" {
					f.Background = c.Map.Background
				}
			}
		}
	}
	return f
}
