package component

import (
	"github.com/l1jgo/platformer/internal/core/ecs"
	"github.com/l1jgo/platformer/internal/geom"
)

// BoundingRectangle is a box centered on the entity position, scaled by the
// transform.
type BoundingRectangle struct {
	ecs.Base
	Width  float64
	Height float64
}

func NewBoundingRectangle(w, h float64) *BoundingRectangle {
	return &BoundingRectangle{Width: w, Height: h}
}

func (b *BoundingRectangle) Rectangle() geom.Rect {
	t := b.Transform()
	if t == nil {
		return geom.Rect{W: b.Width, H: b.Height}
	}
	return geom.RectCentered(t.Position, b.Width*t.Scale, b.Height*t.Scale)
}

// StaticBoundingRectangle is a fixed world rectangle independent of the
// transform.
type StaticBoundingRectangle struct {
	ecs.Base
	Rect geom.Rect
}

func (b *StaticBoundingRectangle) Rectangle() geom.Rect { return b.Rect }

// BoxCollider collides with the entity's first bounding rectangle.
type BoxCollider struct {
	ecs.Base
}

func (c *BoxCollider) CollisionShapes(_ *ecs.Entity) []geom.Rect {
	e := c.Entity()
	if e == nil {
		return nil
	}
	b, ok := ecs.GetComponent[ecs.Bounded](e)
	if !ok {
		return nil
	}
	return []geom.Rect{b.Rectangle()}
}
