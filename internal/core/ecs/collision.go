package ecs

import (
	"cmp"
	"slices"

	"github.com/l1jgo/platformer/internal/core/event"
	"github.com/l1jgo/platformer/internal/geom"
)

// pair identifies an unordered pair of entities; a < b.
type pair struct {
	a, b EntityID
}

type colliderEntry struct {
	id EntityID
	e  *Entity
}

// contact remembers both sides of a touching pair so the exit edge can be
// reported even after one side left the scene.
type contact struct {
	a, b *Entity
}

// detectCollisions tests every unordered pair of collider entities once and
// fires StartCollision / EndCollision on the transition edges.
func (s *Scene) detectCollisions() {
	var colliders []colliderEntry
	for _, e := range s.Entities() {
		if HasComponent[Collider](e) {
			colliders = append(colliders, colliderEntry{id: e.id, e: e})
		}
	}

	current := make(map[pair]contact, len(s.touching))
	for i := 0; i < len(colliders); i++ {
		for j := i + 1; j < len(colliders); j++ {
			a, b := colliders[i], colliders[j]
			// A handler earlier in this pass may have removed either side.
			if !s.active(a) || !s.active(b) {
				continue
			}

			hitA, hitB := intersecting(shapesFor(a.e, b.e), shapesFor(b.e, a.e))
			if len(hitA) == 0 {
				continue
			}

			key := pair{a: a.id, b: b.id}
			current[key] = contact{a: a.e, b: b.e}
			if _, ok := s.touching[key]; ok {
				continue
			}

			notifyStart(a.e, b.e, hitB)
			if s.active(b) {
				notifyStart(b.e, a.e, hitA)
			}
			event.Emit(s.bus, event.CollisionStarted{A: int64(a.id), B: int64(b.id)})
		}
	}

	ended := make([]pair, 0)
	for key := range s.touching {
		if _, ok := current[key]; !ok {
			ended = append(ended, key)
		}
	}
	slices.SortFunc(ended, func(x, y pair) int {
		if c := cmp.Compare(x.a, y.a); c != 0 {
			return c
		}
		return cmp.Compare(x.b, y.b)
	})
	for _, key := range ended {
		c := s.touching[key]
		// A side that left the scene gets no further callbacks.
		if s.entities[key.a] == c.a {
			notifyEnd(c.a, c.b)
		}
		if s.entities[key.b] == c.b {
			notifyEnd(c.b, c.a)
		}
		event.Emit(s.bus, event.CollisionEnded{A: int64(key.a), B: int64(key.b)})
	}

	s.touching = current
}

func (s *Scene) active(c colliderEntry) bool {
	return s.entities[c.id] == c.e
}

// shapesFor collects the shapes of every collider on e, relative to other.
func shapesFor(e, other *Entity) []geom.Rect {
	var shapes []geom.Rect
	for _, c := range GetComponents[Collider](e) {
		shapes = append(shapes, c.CollisionShapes(other)...)
	}
	return shapes
}

// intersecting returns the shapes of a that hit any shape of b, and the
// shapes of b that hit any shape of a.
func intersecting(a, b []geom.Rect) (hitA, hitB []geom.Rect) {
	usedB := make([]bool, len(b))
	for _, ra := range a {
		hit := false
		for j, rb := range b {
			if ra.Intersects(rb) {
				hit = true
				usedB[j] = true
			}
		}
		if hit {
			hitA = append(hitA, ra)
		}
	}
	for j, used := range usedB {
		if used {
			hitB = append(hitB, b[j])
		}
	}
	return hitA, hitB
}

func notifyStart(e, other *Entity, shapes []geom.Rect) {
	for _, h := range GetComponents[CollisionHandler](e) {
		h.StartCollision(other, shapes)
	}
}

func notifyEnd(e, other *Entity) {
	for _, h := range GetComponents[CollisionHandler](e) {
		h.EndCollision(other)
	}
}
