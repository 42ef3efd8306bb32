package game

import (
	"github.com/l1jgo/platformer/internal/core/ecs"
	"github.com/l1jgo/platformer/internal/scripting"
	"go.uber.org/zap"
)

// Behavior is the scripting surface a ScriptBehavior needs.
type Behavior interface {
	CallBehavior(fn string, in scripting.BehaviorInput) (scripting.BehaviorOutput, error)
}

// ScriptBehavior hands the controller state to a Lua function every update
// and applies the velocity and jump it returns. After a failed call the
// behaviour disables itself.
type ScriptBehavior struct {
	ecs.Base
	Function  string
	JumpSpeed float64

	scripts  Behavior
	disabled bool
}

func NewScriptBehavior(scripts Behavior, fn string) *ScriptBehavior {
	return &ScriptBehavior{Function: fn, JumpSpeed: PlayerJumpSpeed, scripts: scripts}
}

func (b *ScriptBehavior) Disabled() bool { return b.disabled }

func (b *ScriptBehavior) Update(dt float64) {
	if b.disabled || b.scripts == nil {
		return
	}
	e := b.Entity()
	ctrl, ok := ecs.GetComponent[*CharacterController](e)
	if !ok {
		return
	}

	pos := e.Position()
	out, err := b.scripts.CallBehavior(b.Function, scripting.BehaviorInput{
		Name:   e.Name,
		X:      pos.X,
		Y:      pos.Y,
		VX:     ctrl.Velocity.X,
		VY:     ctrl.Velocity.Y,
		Flying: ctrl.Flying,
		DT:     dt,
		Time:   b.Scene().Time(),
	})
	if err != nil {
		b.disabled = true
		b.Scene().Log().Error("script behaviour disabled",
			zap.String("entity", e.String()),
			zap.String("func", b.Function),
			zap.Error(err),
		)
		return
	}

	if out.HasVX {
		ctrl.Velocity.X = out.VX
	}
	if out.HasVY {
		ctrl.Velocity.Y = out.VY
	}
	if out.Jump && !ctrl.Flying {
		ctrl.Velocity.Y = -b.JumpSpeed
		ctrl.Flying = true
	}
}
