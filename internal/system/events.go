package system

import (
	"time"

	"github.com/l1jgo/platformer/internal/core/event"
	coresys "github.com/l1jgo/platformer/internal/core/system"
)

// EventSystem delivers the events emitted during this frame. Handlers see
// them at the end of the frame; anything they emit waits for the next one.
// Phase 5 (Events).
type EventSystem struct {
	bus *event.Bus
}

func NewEventSystem(bus *event.Bus) *EventSystem {
	return &EventSystem{bus: bus}
}

func (s *EventSystem) Phase() coresys.Phase { return coresys.PhaseEvents }

func (s *EventSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
