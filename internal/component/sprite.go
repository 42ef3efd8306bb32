package component

import "github.com/l1jgo/platformer/internal/core/ecs"

// Animation is a looping or one-shot sequence of glyph frames.
type Animation struct {
	Frames    []rune
	FrameTime float64 // seconds per frame
}

// Effect runs on a sprite every frame until it reports completion.
type Effect interface {
	Start(s *SpriteRenderer)
	Run(s *SpriteRenderer, dt float64) (finished bool)
}

// SpriteRenderer draws an entity. Image names the sprite asset; Glyph is the
// fallback cell for terminal output.
type SpriteRenderer struct {
	ecs.Base
	Image          string
	Glyph          rune
	Visible        bool
	HorizontalFlip bool
	VerticalFlip   bool

	animations map[string]Animation
	current    string
	loop       bool
	frame      int
	elapsed    float64

	effects []runningEffect
}

type runningEffect struct {
	effect  Effect
	started bool
}

func NewSpriteRenderer(image string, glyph rune) *SpriteRenderer {
	return &SpriteRenderer{
		Image:      image,
		Glyph:      glyph,
		Visible:    true,
		animations: make(map[string]Animation),
	}
}

func (s *SpriteRenderer) ShouldRender() bool { return s.Visible }

// AddAnimation registers or replaces a named animation.
func (s *SpriteRenderer) AddAnimation(name string, a Animation) {
	s.animations[name] = a
}

// PlayAnimation switches to name. Playing the current animation again keeps
// its frame position. Names without registered frames are still recorded.
func (s *SpriteRenderer) PlayAnimation(name string, loop bool) {
	s.loop = loop
	if s.current == name {
		return
	}
	s.current = name
	s.frame = 0
	s.elapsed = 0
}

// Animation returns the name of the playing animation.
func (s *SpriteRenderer) Animation() string { return s.current }

// CurrentGlyph returns the glyph of the current animation frame, or Glyph.
func (s *SpriteRenderer) CurrentGlyph() rune {
	if a, ok := s.animations[s.current]; ok && len(a.Frames) > 0 {
		return a.Frames[s.frame]
	}
	return s.Glyph
}

// AddEffect queues an effect. It starts on the next update.
func (s *SpriteRenderer) AddEffect(e Effect) {
	s.effects = append(s.effects, runningEffect{effect: e})
}

// Effects returns the number of running effects.
func (s *SpriteRenderer) Effects() int { return len(s.effects) }

func (s *SpriteRenderer) Update(dt float64) {
	s.advance(dt)

	running := s.effects[:0]
	for _, r := range s.effects {
		if !r.started {
			r.effect.Start(s)
			r.started = true
		}
		if !r.effect.Run(s, dt) {
			running = append(running, r)
		}
	}
	clear(s.effects[len(running):])
	s.effects = running
}

func (s *SpriteRenderer) advance(dt float64) {
	a, ok := s.animations[s.current]
	if !ok || len(a.Frames) < 2 || a.FrameTime <= 0 {
		return
	}
	s.elapsed += dt
	for s.elapsed >= a.FrameTime {
		s.elapsed -= a.FrameTime
		switch {
		case s.frame+1 < len(a.Frames):
			s.frame++
		case s.loop:
			s.frame = 0
		default:
			s.elapsed = 0
			return
		}
	}
}
