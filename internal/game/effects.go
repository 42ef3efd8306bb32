package game

import (
	"github.com/l1jgo/platformer/internal/component"
	"github.com/l1jgo/platformer/internal/core/ecs"
)

const DefaultBlinkFrequency = 0.25

// BlinkEffect toggles a sprite's visibility every Frequency seconds for
// Length seconds of scene time, then leaves it visible. A sprite outside any
// scene blinks on its own accumulated time.
type BlinkEffect struct {
	Length    float64
	Frequency float64

	scene   *ecs.Scene
	elapsed float64
	end     float64
	since   float64
}

func NewBlinkEffect(length, frequency float64) *BlinkEffect {
	if frequency <= 0 {
		frequency = DefaultBlinkFrequency
	}
	return &BlinkEffect{Length: length, Frequency: frequency}
}

func (b *BlinkEffect) now() float64 {
	if b.scene != nil {
		return b.scene.Time()
	}
	return b.elapsed
}

func (b *BlinkEffect) Start(s *component.SpriteRenderer) {
	b.scene = s.Scene()
	b.end = b.now() + b.Length
}

func (b *BlinkEffect) Run(s *component.SpriteRenderer, dt float64) bool {
	if b.now() >= b.end {
		s.Visible = true
		return true
	}

	b.elapsed += dt
	b.since += dt
	if b.since >= b.Frequency {
		s.Visible = !s.Visible
		b.since = 0
	}
	return false
}
