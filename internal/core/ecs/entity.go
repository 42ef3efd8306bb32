package ecs

import (
	"fmt"
	"slices"

	"github.com/l1jgo/platformer/internal/geom"
)

// EntityID is assigned by a scene on admission. IDs grow monotonically and are
// never reused within one scene.
type EntityID int64

// NoEntity is the id of an entity that is not admitted to any scene.
const NoEntity EntityID = -1

// Entity is an ordered collection of components representing one game object.
// Entities are created outside the scene and admitted with Scene.QueueAdd.
type Entity struct {
	Name string

	id         EntityID
	scene      *Scene
	transform  Transform
	components []Component
	started    bool
}

// NewEntity creates an unadmitted entity owning the given components.
func NewEntity(name string, components ...Component) *Entity {
	e := &Entity{
		Name:      name,
		id:        NoEntity,
		transform: DefaultTransform(),
	}
	e.AddComponents(components...)
	return e
}

func (e *Entity) ID() EntityID          { return e.id }
func (e *Entity) Scene() *Scene         { return e.scene }
func (e *Entity) Started() bool         { return e.started }
func (e *Entity) Transform() *Transform { return &e.transform }

// Position is shorthand for Transform().Position.
func (e *Entity) Position() geom.Vector2 { return e.transform.Position }

// SetPosition copies p into the transform.
func (e *Entity) SetPosition(p geom.Vector2) { e.transform.Position = p }

func (e *Entity) String() string {
	if e.Name == "" {
		return fmt.Sprintf("entity#%d", e.id)
	}
	return fmt.Sprintf("%s#%d", e.Name, e.id)
}

// AddComponents attaches components in order. A component already owned by
// this entity is left in place; one owned by another entity is moved here.
func (e *Entity) AddComponents(components ...Component) {
	for _, c := range components {
		if c == nil {
			continue
		}
		if owner := c.Entity(); owner != nil {
			if owner == e {
				continue
			}
			owner.RemoveComponents(c)
		}
		e.components = append(e.components, c)
		c.attach(e)
		if a, ok := c.(Adder); ok {
			a.OnAdd()
		}
	}
}

// RemoveComponents detaches components owned by this entity and clears their
// back-reference. Components owned elsewhere are ignored.
func (e *Entity) RemoveComponents(components ...Component) {
	for _, c := range components {
		i := slices.Index(e.components, c)
		if i < 0 {
			continue
		}
		e.components = slices.Delete(e.components, i, i+1)
		c.detach()
	}
}

// Components returns a copy of the component list in attach order.
func (e *Entity) Components() []Component {
	return slices.Clone(e.components)
}

func (e *Entity) spawn() {
	for _, c := range e.Components() {
		if s, ok := c.(Spawner); ok {
			s.Spawn()
		}
	}
}

func (e *Entity) start() {
	e.started = true
	for _, c := range e.Components() {
		if s, ok := c.(Starter); ok {
			s.Start()
		}
	}
}

func (e *Entity) update(dt float64) {
	for _, c := range e.Components() {
		if u, ok := c.(Updater); ok {
			u.Update(dt)
		}
	}
}

func (e *Entity) updatePostFrame(dt float64) {
	for _, c := range e.Components() {
		if u, ok := c.(PostFrameUpdater); ok {
			u.UpdatePostFrame(dt)
		}
	}
}
