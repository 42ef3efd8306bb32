package system

import "time"

// Phase defines execution ordering within a single frame.
type Phase int

const (
	PhaseInput     Phase = iota // 0: advance key statuses, apply terminal events
	PhaseSetup                  // 1: admit queued entities, advance scene clock
	PhasePreFrame               // 2: collisions, start, update
	PhaseRender                 // 3: snapshot + draw
	PhasePostFrame              // 4: post-render update
	PhaseEvents                 // 5: swap + dispatch event bus
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhaseSetup:
		return "setup"
	case PhasePreFrame:
		return "preframe"
	case PhaseRender:
		return "render"
	case PhasePostFrame:
		return "postframe"
	case PhaseEvents:
		return "events"
	}
	return "unknown"
}

// System is the interface every frame system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
