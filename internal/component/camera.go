// Package component holds the engine-level components shared by every game:
// camera, sprites, bounding shapes and tile maps.
package component

import "github.com/l1jgo/platformer/internal/core/ecs"

const DefaultFOV = 80

// Camera marks the entity the renderer follows. The first camera admitted to
// a scene without one becomes the scene camera.
type Camera struct {
	ecs.Base
	FOV float64
}

func NewCamera() *Camera { return &Camera{FOV: DefaultFOV} }

func (c *Camera) Spawn() {
	if s := c.Scene(); s != nil && s.Camera() == nil {
		s.SetCamera(c.Entity())
	}
}
