package game

import (
	"github.com/l1jgo/platformer/internal/core/ecs"
	"github.com/l1jgo/platformer/internal/core/event"
	"github.com/l1jgo/platformer/internal/geom"
	"go.uber.org/zap"
)

// Character carries health. Reaching zero kills the entity: it leaves the
// scene, and when Respawn is set it is queued again at its first spawn point
// with full health.
type Character struct {
	ecs.Base
	Health    int
	MaxHealth int
	Respawn   bool

	dead              bool
	spawned           bool
	spawnPoint        geom.Vector2
	invulnerableUntil float64
}

func NewCharacter(health int) *Character {
	if health < 1 {
		health = 1
	}
	return &Character{Health: health, MaxHealth: health}
}

func (c *Character) Spawn() {
	c.dead = false
	if !c.spawned {
		c.spawned = true
		c.spawnPoint = c.Entity().Position()
	}
}

func (c *Character) Dead() bool { return c.dead }

// Protect ignores damage for the next d seconds of scene time.
func (c *Character) Protect(d float64) {
	if s := c.Scene(); s != nil {
		c.invulnerableUntil = s.Time() + d
	}
}

// Vulnerable reports whether Damage currently has an effect.
func (c *Character) Vulnerable() bool {
	if c.dead {
		return false
	}
	s := c.Scene()
	return s == nil || s.Time() >= c.invulnerableUntil
}

// Damage subtracts amount and kills the character at zero health.
func (c *Character) Damage(amount int) {
	if !c.Vulnerable() || amount <= 0 {
		return
	}
	c.Health -= amount
	if c.Health < 0 {
		c.Health = 0
	}
	if s := c.Scene(); s != nil {
		event.Emit(s.Bus(), event.CharacterDamaged{
			EntityID: int64(c.Entity().ID()),
			Amount:   amount,
			Health:   c.Health,
		})
	}
	if c.Health == 0 {
		c.Kill()
	}
}

// Kill removes the entity from its scene.
func (c *Character) Kill() {
	if c.dead {
		return
	}
	c.dead = true
	e := c.Entity()
	s := c.Scene()
	if s == nil {
		return
	}

	event.Emit(s.Bus(), event.CharacterDied{EntityID: int64(e.ID()), Name: e.Name})
	s.Log().Info("character died", zap.String("entity", e.String()))
	if err := s.Remove(e); err != nil {
		s.Log().Warn("remove dead character", zap.Error(err))
		return
	}

	if !c.Respawn {
		return
	}
	c.Health = c.MaxHealth
	c.invulnerableUntil = 0
	e.SetPosition(c.spawnPoint)
	if ctrl, ok := ecs.GetComponent[*CharacterController](e); ok {
		ctrl.Reset()
	}
	if err := s.QueueAdd(e); err != nil {
		s.Log().Warn("respawn character", zap.Error(err))
	}
}
