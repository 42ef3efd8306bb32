package ecs

import "github.com/l1jgo/platformer/internal/geom"

// Component is a behaviour or data unit owned by exactly one entity.
// Implementations embed Base, which supplies the owner back-reference.
type Component interface {
	Entity() *Entity
	attach(e *Entity)
	detach()
}

// Base carries the owning entity. Embed it in every component.
type Base struct {
	entity *Entity
}

func (b *Base) Entity() *Entity  { return b.entity }
func (b *Base) attach(e *Entity) { b.entity = e }
func (b *Base) detach()          { b.entity = nil }

// Scene returns the owner's scene, or nil when the component is detached or
// its entity is not admitted.
func (b *Base) Scene() *Scene {
	if b.entity == nil {
		return nil
	}
	return b.entity.scene
}

// Transform returns the owner's transform, or nil when detached.
func (b *Base) Transform() *Transform {
	if b.entity == nil {
		return nil
	}
	return &b.entity.transform
}

// Capabilities. A component opts in by implementing the interface; the
// scene and the render collaborator query them with type assertions.

// Adder is notified right after the component is attached to an entity.
type Adder interface {
	OnAdd()
}

// Spawner is notified when its entity is admitted to a scene.
type Spawner interface {
	Spawn()
}

// Starter runs once, strictly before the entity's first Update.
type Starter interface {
	Start()
}

// Updater runs every frame before rendering.
type Updater interface {
	Update(dt float64)
}

// PostFrameUpdater runs every frame after rendering.
type PostFrameUpdater interface {
	UpdatePostFrame(dt float64)
}

// Renderable components are drawn by the render collaborator.
type Renderable interface {
	ShouldRender() bool
}

// Bounded exposes a world-space bounding rectangle.
type Bounded interface {
	Rectangle() geom.Rect
}

// Collider exposes collision shapes relative to another entity. A tile map,
// for instance, answers with one rectangle per collidable tile near other.
type Collider interface {
	CollisionShapes(other *Entity) []geom.Rect
}

// CollisionHandler receives edge-triggered collision notifications.
// StartCollision gets the other entity and those of its shapes that
// intersected; EndCollision fires once when the pair separates.
type CollisionHandler interface {
	StartCollision(other *Entity, shapes []geom.Rect)
	EndCollision(other *Entity)
}
