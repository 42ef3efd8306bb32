// Package game implements the platformer: character physics, player and AI
// control, health, hazards and scripted behaviours.
package game

import (
	"github.com/l1jgo/platformer/internal/component"
	"github.com/l1jgo/platformer/internal/core/ecs"
	"github.com/l1jgo/platformer/internal/geom"
)

const (
	DefaultGravity     = 825
	DefaultEpsilon     = 1
	DefaultGroundProbe = 3
)

// CharacterController integrates gravity and velocity and resolves the
// result against the collidable tiles of the scene's tile map.
type CharacterController struct {
	ecs.Base
	Velocity        geom.Vector2
	Flying          bool
	AppliedVelocity geom.Vector2

	Gravity     float64
	Epsilon     float64 // sweep margin in the direction of travel
	GroundProbe float64 // distance probed below the feet while grounded
}

func NewCharacterController() *CharacterController {
	return &CharacterController{
		Flying:      true,
		Gravity:     DefaultGravity,
		Epsilon:     DefaultEpsilon,
		GroundProbe: DefaultGroundProbe,
	}
}

// Reset stops the character and marks it airborne.
func (c *CharacterController) Reset() {
	c.Velocity = geom.Vector2{}
	c.AppliedVelocity = geom.Vector2{}
	c.Flying = true
}

func (c *CharacterController) Update(dt float64) {
	s := c.Scene()
	if s == nil {
		return
	}
	tm, ok := ecs.FirstComponent[*component.TiledMap](s)
	if !ok {
		return
	}
	e := c.Entity()
	if !tm.IsPositionInMap(e.Position()) {
		return
	}
	bounds, ok := ecs.GetComponent[ecs.Bounded](e)
	if !ok {
		return
	}
	c.step(tm, bounds, dt)
}

func (c *CharacterController) step(tm *component.TiledMap, bounds ecs.Bounded, dt float64) {
	e := c.Entity()
	pos := e.Position()
	rect := bounds.Rectangle()

	if !c.Flying && !blocked(tm, rect.Move(geom.Vec(0, c.GroundProbe))) {
		c.Flying = true
	}
	if c.Flying {
		c.Velocity.Y += c.Gravity * dt
	}

	d := c.Velocity.Scale(dt)

	if c.Velocity.X != 0 {
		c.horizontal(tm, rect.Sweep(geom.Vec(d.X+c.Epsilon*geom.Sign(d.X), 0)), &d)
	}

	if c.Flying {
		probe := rect.Sweep(geom.Vec(0, d.Y+c.Epsilon*geom.Sign(d.Y)))
		tiles, _ := tm.TilesForArea(probe, true, true)
		if len(tiles) > 0 {
			if c.Velocity.Y < 0 {
				c.Velocity.Y = -c.Velocity.Y / 2
			} else {
				top := tiles[0]
				for _, t := range tiles[1:] {
					if t.Y < top.Y {
						top = t
					}
				}
				pos.Y = tm.RectForTile(top.X, top.Y).Top() - rect.H/2 - c.Epsilon
				c.Flying = false
				c.Velocity.Y = 0

				e.SetPosition(pos)
				rect = bounds.Rectangle()
			}
			d.Y = c.Velocity.Y * dt
		}
	}

	if c.Velocity.X != 0 {
		c.horizontal(tm, rect.Sweep(geom.Vec(d.X+c.Epsilon*geom.Sign(d.X), d.Y)), &d)
	}

	c.animate()

	c.AppliedVelocity = d
	e.SetPosition(pos.Add(d))
}

func (c *CharacterController) horizontal(tm *component.TiledMap, probe geom.Rect, d *geom.Vector2) {
	if blocked(tm, probe) {
		c.Velocity.X = 0
		d.X = 0
	}
}

func (c *CharacterController) animate() {
	sprite, ok := ecs.GetComponent[*component.SpriteRenderer](c.Entity())
	if !ok {
		return
	}
	if c.Velocity.X < 0 {
		sprite.HorizontalFlip = true
	} else if c.Velocity.X > 0 {
		sprite.HorizontalFlip = false
	}

	switch {
	case c.Flying:
		sprite.PlayAnimation("jump", true)
	case c.Velocity.X != 0:
		sprite.PlayAnimation("walk", true)
	default:
		sprite.PlayAnimation("stand", true)
	}
}

// blocked reports whether any collidable tile lies under r.
func blocked(tm *component.TiledMap, r geom.Rect) bool {
	tiles, _ := tm.TilesForArea(r, true, true)
	return len(tiles) > 0
}
