package game

import (
	"github.com/l1jgo/platformer/internal/core/ecs"
	"github.com/l1jgo/platformer/internal/geom"
	"go.uber.org/zap"
)

const (
	AIMovementSpeed = 600
	aiArrival       = 3
)

// AICharacter walks its CharacterController horizontally through a path of
// named node entities.
type AICharacter struct {
	ecs.Base
	PathNames []string
	Loop      bool
	Speed     float64

	path    []*ecs.Entity
	index   int
	stopped bool
}

func NewAICharacter(path []string, loop bool) *AICharacter {
	return &AICharacter{PathNames: path, Loop: loop, Speed: AIMovementSpeed}
}

// Start resolves node names. Names with no matching entity are skipped.
func (a *AICharacter) Start() {
	a.path = a.path[:0]
	for _, name := range a.PathNames {
		if node := a.Scene().FindByName(name); node != nil {
			a.path = append(a.path, node)
		} else {
			a.Scene().Log().Warn("ai path node not found",
				zap.String("entity", a.Entity().String()),
				zap.String("node", name),
			)
		}
	}
}

// Target returns the node currently walked towards.
func (a *AICharacter) Target() *ecs.Entity {
	if len(a.path) == 0 {
		return nil
	}
	return a.path[a.index]
}

func (a *AICharacter) Stopped() bool { return a.stopped }

func (a *AICharacter) Update(dt float64) {
	if len(a.path) == 0 || a.stopped {
		return
	}

	diff := a.path[a.index].Position().Sub(a.Entity().Position())
	diff.Y = 0
	if diff.Length() > aiArrival {
		ctrl, ok := ecs.GetComponent[*CharacterController](a.Entity())
		if !ok {
			return
		}
		v := diff.Normalize().Scale(a.Speed * dt).Add(ctrl.Velocity)
		ctrl.Velocity.X = geom.Clamp(v.X, -a.Speed, a.Speed)
		return
	}

	a.index++
	if a.index >= len(a.path) {
		if a.Loop {
			a.index = 0
		} else {
			a.index = len(a.path) - 1
			a.stopped = true
		}
	}
}
