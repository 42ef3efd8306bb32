package ecs

import (
	"fmt"
	"slices"

	"github.com/l1jgo/platformer/internal/core/event"
	"go.uber.org/zap"
)

// Scene owns all active entities. Admission is deferred: QueueAdd only
// enqueues, and the next Setup admits the batch before anything is updated.
// Accessed only from the simulation goroutine; no locks.
type Scene struct {
	log *zap.Logger
	bus *event.Bus

	entities map[EntityID]*Entity
	order    []EntityID // ascending ids = admission order

	queue   []*Entity
	pending []*Entity // batch being admitted; removed entries are nil'd
	nextID  EntityID

	dt     float64
	time   float64
	camera *Entity

	touching map[pair]contact
}

// NewScene creates an empty scene. bus may be nil.
func NewScene(log *zap.Logger, bus *event.Bus) *Scene {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scene{
		log:      log,
		bus:      bus,
		entities: make(map[EntityID]*Entity, 256),
		order:    make([]EntityID, 0, 256),
		touching: make(map[pair]contact),
	}
}

func (s *Scene) DT() float64      { return s.dt }
func (s *Scene) Time() float64    { return s.time }
func (s *Scene) Len() int         { return len(s.entities) }
func (s *Scene) Queued() int      { return len(s.queue) }
func (s *Scene) Camera() *Entity  { return s.camera }
func (s *Scene) Bus() *event.Bus  { return s.bus }
func (s *Scene) Log() *zap.Logger { return s.log }

// SetCamera selects the entity whose transform the renderer follows.
func (s *Scene) SetCamera(e *Entity) { s.camera = e }

// Entity returns the active entity with the given id.
func (s *Scene) Entity(id EntityID) (*Entity, bool) {
	e, ok := s.entities[id]
	return e, ok
}

// Entities returns a snapshot of the active entities in admission order.
func (s *Scene) Entities() []*Entity {
	out := make([]*Entity, len(s.order))
	for i, id := range s.order {
		out[i] = s.entities[id]
	}
	return out
}

// QueueAdd requests admission of e at the next Setup.
func (s *Scene) QueueAdd(e *Entity) error {
	if e.id != NoEntity || e.scene != nil || s.isQueued(e) {
		return fmt.Errorf("queue %s: %w", e, ErrAlreadyInScene)
	}
	s.queue = append(s.queue, e)
	return nil
}

// Remove takes e out of the spawn queue, or detaches it when active.
func (s *Scene) Remove(e *Entity) error {
	if s.dequeue(e) {
		return nil
	}
	if e.id == NoEntity || s.entities[e.id] != e {
		return fmt.Errorf("remove %s: %w", e, ErrNotFound)
	}

	id := e.id
	delete(s.entities, id)
	if i, ok := slices.BinarySearch(s.order, id); ok {
		s.order = slices.Delete(s.order, i, i+1)
	}
	if s.camera == e {
		s.camera = nil
	}
	e.scene = nil
	e.id = NoEntity

	event.Emit(s.bus, event.EntityRemoved{EntityID: int64(id), Name: e.Name})
	s.log.Debug("entity removed", zap.Int64("entity", int64(id)), zap.String("name", e.Name))
	return nil
}

// AdmitQueued admits the spawn queue in enqueue order. An entry that was
// admitted elsewhere in the meantime aborts the batch with ErrAlreadyInScene;
// entities admitted before it stay admitted and the rest of the batch is
// discarded. Entities queued by Spawn hooks wait for the next call.
func (s *Scene) AdmitQueued() error {
	s.pending, s.queue = s.queue, nil
	defer func() { s.pending = nil }()

	for i := range s.pending {
		e := s.pending[i]
		if e == nil {
			continue
		}
		s.pending[i] = nil

		if e.id != NoEntity || e.scene != nil {
			s.log.Warn("queued entity already admitted elsewhere, dropping batch",
				zap.String("entity", e.String()),
				zap.Int("discarded", len(s.pending)-i),
			)
			return fmt.Errorf("admit %s: %w", e, ErrAlreadyInScene)
		}

		id := s.nextID
		s.nextID++
		s.entities[id] = e
		s.order = append(s.order, id)
		e.id = id
		e.scene = s

		event.Emit(s.bus, event.EntityAdmitted{EntityID: int64(id), Name: e.Name})
		e.spawn()
	}
	return nil
}

// FindByName returns the first active entity named name. An empty name
// matches nameless entities.
func (s *Scene) FindByName(name string) *Entity {
	for _, e := range s.Entities() {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// FindAllByName returns every active entity named name, in admission order.
func (s *Scene) FindAllByName(name string) []*Entity {
	var out []*Entity
	for _, e := range s.Entities() {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

// Setup prepares a frame: admits queued entities and advances the clock.
// The clock advances even when admission fails.
func (s *Scene) Setup(dt float64) error {
	err := s.AdmitQueued()
	s.dt = dt
	s.time += dt
	return err
}

// SimulatePreFrame runs collision detection, then starts and updates every
// active entity. Iteration uses a snapshot taken at pass start.
func (s *Scene) SimulatePreFrame() {
	s.detectCollisions()
	for _, e := range s.Entities() {
		if !e.started {
			e.start()
		}
		e.update(s.dt)
	}
}

// SimulatePostFrame runs the post-render update on a snapshot of the scene.
func (s *Scene) SimulatePostFrame() {
	for _, e := range s.Entities() {
		e.updatePostFrame(s.dt)
	}
}

func (s *Scene) isQueued(e *Entity) bool {
	return slices.Contains(s.queue, e) || slices.Contains(s.pending, e)
}

func (s *Scene) dequeue(e *Entity) bool {
	if i := slices.Index(s.queue, e); i >= 0 {
		s.queue = slices.Delete(s.queue, i, i+1)
		return true
	}
	if i := slices.Index(s.pending, e); i >= 0 {
		s.pending[i] = nil
		return true
	}
	return false
}
