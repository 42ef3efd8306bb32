package system

import (
	"time"

	"github.com/gdamore/tcell/v2"
	coresys "github.com/l1jgo/platformer/internal/core/system"
	"github.com/l1jgo/platformer/internal/input"
	"github.com/l1jgo/platformer/internal/render"
	"go.uber.org/zap"
)

// InputSystem drains terminal events and folds them into the key state.
// Phase 0 (Input).
type InputSystem struct {
	events   <-chan tcell.Event
	keys     *input.State
	hold     time.Duration
	onQuit   func()
	onResize func()
	now      func() time.Time
	log      *zap.Logger
}

func NewInputSystem(events <-chan tcell.Event, keys *input.State, hold time.Duration, onQuit func(), log *zap.Logger) *InputSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &InputSystem{
		events: events,
		keys:   keys,
		hold:   hold,
		onQuit: onQuit,
		now:    time.Now,
		log:    log,
	}
}

// OnResize installs a callback for terminal resize events.
func (s *InputSystem) OnResize(fn func()) { s.onResize = fn }

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Duration) {
	s.keys.Advance()
	now := s.now()

	for {
		select {
		case ev, ok := <-s.events:
			if !ok {
				goto drained
			}
			s.handle(ev, now)
		default:
			goto drained
		}
	}
drained:

	s.keys.ReleaseStale(now, s.hold)
}

func (s *InputSystem) handle(ev tcell.Event, now time.Time) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if render.IsQuit(ev) {
			s.log.Info("quit requested")
			if s.onQuit != nil {
				s.onQuit()
			}
			return
		}
		if k := render.KeyFromEvent(ev); k != "" {
			s.keys.Press(k, now)
		}
	case *tcell.EventResize:
		if s.onResize != nil {
			s.onResize()
		}
	}
}
