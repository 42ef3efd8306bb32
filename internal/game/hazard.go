package game

import (
	"github.com/l1jgo/platformer/internal/component"
	"github.com/l1jgo/platformer/internal/core/ecs"
	"github.com/l1jgo/platformer/internal/geom"
)

// Hazard damages any Character that starts touching it and makes the victim
// blink, and stay invulnerable, for Grace seconds.
type Hazard struct {
	ecs.Base
	Damage int
	Grace  float64
}

func NewHazard(damage int, grace float64) *Hazard {
	return &Hazard{Damage: damage, Grace: grace}
}

func (h *Hazard) StartCollision(other *ecs.Entity, _ []geom.Rect) {
	ch, ok := ecs.GetComponent[*Character](other)
	if !ok || !ch.Vulnerable() {
		return
	}
	ch.Damage(h.Damage)
	if ch.Dead() || h.Grace <= 0 {
		return
	}
	ch.Protect(h.Grace)
	if sprite, ok := ecs.GetComponent[*component.SpriteRenderer](other); ok {
		sprite.AddEffect(NewBlinkEffect(h.Grace, 0.1))
	}
}

func (h *Hazard) EndCollision(*ecs.Entity) {}
