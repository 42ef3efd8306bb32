package event

import (
	"reflect"
	"sync"
)

// Bus delivers events one frame late, in the order they were emitted, across
// all event types. Emit appends to the pending frame. Once per frame, after
// the post-frame pass, the event system calls SwapBuffers and DispatchAll, so
// handlers observe a scene that finished simulating. Events emitted by a
// handler wait for the next frame.
//
// The scene reports admission and removal, and the collision pass reports
// each touching pair's start and end edge. Collision components already got
// their StartCollision/EndCollision calls synchronously in that pass; the bus
// copies are for observers outside the scene, such as script hooks. An entity
// removed by a collision handler therefore shows up as CollisionStarted, then
// EntityRemoved, then CollisionEnded on the frame after.
type Bus struct {
	mu       sync.Mutex // guards subscriptions; emit and dispatch stay on the frame goroutine
	pending  []envelope
	ready    []envelope
	handlers map[reflect.Type][]func(any)
}

type envelope struct {
	typ reflect.Type
	ev  any
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[reflect.Type][]func(any))}
}

// Emit queues ev for the next dispatch. A nil bus drops it.
func Emit[T any](b *Bus, ev T) {
	if b == nil {
		return
	}
	b.pending = append(b.pending, envelope{typ: reflect.TypeFor[T](), ev: ev})
}

// Subscribe registers fn for events of exactly type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := reflect.TypeFor[T]()
	b.handlers[t] = append(b.handlers[t], func(ev any) { fn(ev.(T)) })
}

// SwapBuffers makes the pending frame ready and opens an empty one. Ready
// events that were never dispatched are dropped.
func (b *Bus) SwapBuffers() {
	b.ready, b.pending = b.pending, b.ready[:0]
}

// DispatchAll hands each ready event to its subscribers, then empties the
// ready frame.
func (b *Bus) DispatchAll() {
	b.mu.Lock()
	handlers := b.handlers
	b.mu.Unlock()

	ready := b.ready
	for _, env := range ready {
		for _, h := range handlers[env.typ] {
			h(env.ev)
		}
	}
	clear(ready)
	b.ready = ready[:0]
}
