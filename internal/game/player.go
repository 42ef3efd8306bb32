package game

import (
	"errors"
	"math"

	"github.com/l1jgo/platformer/internal/core/ecs"
	"github.com/l1jgo/platformer/internal/geom"
	"github.com/l1jgo/platformer/internal/input"
	"go.uber.org/zap"
)

const (
	PlayerAcceleration  = 1700
	PlayerJumpSpeed     = 700
	PlayerMaxHorizontal = 500
	PlayerMaxVertical   = 1200
)

// bindingReader wraps input lookups and logs each missing binding once.
type bindingReader struct {
	input  *input.State
	log    *zap.Logger
	warned map[string]bool
}

func newBindingReader(in *input.State, log *zap.Logger) bindingReader {
	if log == nil {
		log = zap.NewNop()
	}
	return bindingReader{input: in, log: log, warned: make(map[string]bool)}
}

// pressed treats a missing binding or missing input as released.
func (b *bindingReader) pressed(name string) bool {
	if b.input == nil {
		return false
	}
	ok, err := b.input.IsPressed(name)
	if errors.Is(err, input.ErrBindingNotFound) {
		if !b.warned[name] {
			b.warned[name] = true
			b.log.Warn("binding not found", zap.String("binding", name))
		}
		return false
	}
	return ok
}

// Player steers the entity's CharacterController from the left/right/jump
// bindings and drags the scene camera along.
type Player struct {
	ecs.Base
	Acceleration  float64
	JumpSpeed     float64
	MaxHorizontal float64
	MaxVertical   float64

	bindings bindingReader
}

func NewPlayer(in *input.State, log *zap.Logger) *Player {
	return &Player{
		Acceleration:  PlayerAcceleration,
		JumpSpeed:     PlayerJumpSpeed,
		MaxHorizontal: PlayerMaxHorizontal,
		MaxVertical:   PlayerMaxVertical,
		bindings:      newBindingReader(in, log),
	}
}

func (p *Player) Update(dt float64) {
	e := p.Entity()
	if cam := p.Scene().Camera(); cam != nil && cam != e {
		cam.SetPosition(e.Position())
	}

	ctrl, ok := ecs.GetComponent[*CharacterController](e)
	if !ok {
		return
	}

	step := p.Acceleration * dt
	moving := false
	if p.bindings.pressed("left") {
		moving = true
		ctrl.Velocity.X -= step
	}
	if p.bindings.pressed("right") {
		moving = true
		ctrl.Velocity.X += step
	}
	if !moving {
		ctrl.Velocity.X -= geom.Sign(ctrl.Velocity.X) * math.Min(step, math.Abs(ctrl.Velocity.X))
	}

	if p.bindings.pressed("jump") && !ctrl.Flying {
		ctrl.Velocity.Y = -p.JumpSpeed
		ctrl.Flying = true
	}

	ctrl.Velocity.X = geom.Clamp(ctrl.Velocity.X, -p.MaxHorizontal, p.MaxHorizontal)
	ctrl.Velocity.Y = geom.Clamp(ctrl.Velocity.Y, -p.MaxVertical, p.MaxVertical)
}

// CameraControls flies its entity around with forward/back/left/right.
type CameraControls struct {
	ecs.Base
	Speed float64

	bindings bindingReader
}

const CameraSpeed = 800

func NewCameraControls(in *input.State, log *zap.Logger) *CameraControls {
	return &CameraControls{Speed: CameraSpeed, bindings: newBindingReader(in, log)}
}

func (c *CameraControls) Update(dt float64) {
	t := c.Transform()
	step := c.Speed * dt
	if c.bindings.pressed("forward") {
		t.Position.Y -= step
	}
	if c.bindings.pressed("back") {
		t.Position.Y += step
	}
	if c.bindings.pressed("left") {
		t.Position.X -= step
	}
	if c.bindings.pressed("right") {
		t.Position.X += step
	}
}
