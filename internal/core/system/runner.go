package system

import (
	"fmt"
	"time"
)

// Runner groups systems by phase. A frame visits the phases in ascending
// order; systems sharing a phase run in registration order.
type Runner struct {
	byPhase [][]System
	count   int
}

func NewRunner() *Runner {
	return &Runner{byPhase: make([][]System, PhaseEvents+1)}
}

// Register adds s to the bucket of its phase. The phase is read once, here.
func (r *Runner) Register(s System) {
	p := int(s.Phase())
	if p < 0 {
		panic(fmt.Sprintf("system %T: negative phase %d", s, p))
	}
	for len(r.byPhase) <= p {
		r.byPhase = append(r.byPhase, nil)
	}
	r.byPhase[p] = append(r.byPhase[p], s)
	r.count++
}

// Len reports the number of registered systems.
func (r *Runner) Len() int { return r.count }

// Tick runs one frame.
func (r *Runner) Tick(dt time.Duration) {
	for _, bucket := range r.byPhase {
		for _, s := range bucket {
			s.Update(dt)
		}
	}
}
