package level

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/l1jgo/platformer/internal/component"
	"github.com/l1jgo/platformer/internal/core/ecs"
	"github.com/l1jgo/platformer/internal/data"
	"github.com/l1jgo/platformer/internal/game"
	"github.com/l1jgo/platformer/internal/tilemap"
	"go.uber.org/zap"
)

// NewDefaultRegistry registers every engine and platformer component.
func NewDefaultRegistry(log *zap.Logger) *Registry {
	r := NewRegistry(log)
	r.Register("sprite_renderer", newSprite)
	r.Register("bounding_rectangle", newBoundingRectangle)
	r.Register("box_collider", func(Deps, tilemap.Object, data.Args) (ecs.Component, error) {
		return &component.BoxCollider{}, nil
	})
	r.Register("camera", newCamera)
	r.Register("camera_controls", func(d Deps, _ tilemap.Object, _ data.Args) (ecs.Component, error) {
		return game.NewCameraControls(d.Input, d.Log), nil
	})
	r.Register("character_controller", newController)
	r.Register("player", newPlayer)
	r.Register("ai_character", newAICharacter)
	r.Register("character", newCharacter)
	r.Register("hazard", newHazard)
	r.Register("script", newScript)
	return r
}

func newSprite(_ Deps, obj tilemap.Object, args data.Args) (ecs.Component, error) {
	glyph := obj.Glyph
	if g := args.String("glyph", ""); g != "" {
		glyph, _ = utf8.DecodeRuneInString(g)
	}
	s := component.NewSpriteRenderer(args.String("image", obj.Sprite), glyph)

	// walk=ab|stand=a style animation frames.
	fps, err := args.Float("fps", 8)
	if err != nil {
		return nil, err
	}
	if fps <= 0 {
		return nil, fmt.Errorf("sprite fps %g must be positive", fps)
	}
	for _, name := range []string{"walk", "stand", "jump"} {
		if frames := args.String(name, ""); frames != "" {
			s.AddAnimation(name, component.Animation{Frames: []rune(frames), FrameTime: 1 / fps})
		}
	}
	return s, nil
}

func newBoundingRectangle(_ Deps, obj tilemap.Object, args data.Args) (ecs.Component, error) {
	w, err := args.Float("width", obj.Width)
	if err != nil {
		return nil, err
	}
	h, err := args.Float("height", obj.Height)
	if err != nil {
		return nil, err
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("bounding rectangle %gx%g must be positive", w, h)
	}
	return component.NewBoundingRectangle(w, h), nil
}

func newCamera(_ Deps, _ tilemap.Object, args data.Args) (ecs.Component, error) {
	c := component.NewCamera()
	fov, err := args.Float("fov", c.FOV)
	if err != nil {
		return nil, err
	}
	c.FOV = fov
	return c, nil
}

func newController(d Deps, _ tilemap.Object, args data.Args) (ecs.Component, error) {
	c := game.NewCharacterController()
	if d.Gravity != 0 {
		c.Gravity = d.Gravity
	}
	if d.Epsilon != 0 {
		c.Epsilon = d.Epsilon
	}
	if d.GroundProbe != 0 {
		c.GroundProbe = d.GroundProbe
	}
	var err error
	if c.Gravity, err = args.Float("gravity", c.Gravity); err != nil {
		return nil, err
	}
	return c, nil
}

func newPlayer(d Deps, _ tilemap.Object, args data.Args) (ecs.Component, error) {
	p := game.NewPlayer(d.Input, d.Log)
	var err error
	if p.Acceleration, err = args.Float("acceleration", p.Acceleration); err != nil {
		return nil, err
	}
	if p.JumpSpeed, err = args.Float("jump_speed", p.JumpSpeed); err != nil {
		return nil, err
	}
	return p, nil
}

func newAICharacter(_ Deps, _ tilemap.Object, args data.Args) (ecs.Component, error) {
	loop, err := args.Bool("loop", false)
	if err != nil {
		return nil, err
	}
	a := game.NewAICharacter(args.List("path"), loop)
	if a.Speed, err = args.Float("movement_speed", a.Speed); err != nil {
		return nil, err
	}
	return a, nil
}

func newCharacter(_ Deps, _ tilemap.Object, args data.Args) (ecs.Component, error) {
	health, err := args.Int("health", 1)
	if err != nil {
		return nil, err
	}
	c := game.NewCharacter(health)
	if c.Respawn, err = args.Bool("respawn", false); err != nil {
		return nil, err
	}
	return c, nil
}

func newHazard(_ Deps, _ tilemap.Object, args data.Args) (ecs.Component, error) {
	damage, err := args.Int("damage", 1)
	if err != nil {
		return nil, err
	}
	grace, err := args.Float("grace", 1)
	if err != nil {
		return nil, err
	}
	return game.NewHazard(damage, grace), nil
}

func newScript(d Deps, _ tilemap.Object, args data.Args) (ecs.Component, error) {
	fn := strings.TrimSpace(args.String("fn", ""))
	if fn == "" {
		return nil, fmt.Errorf("script: missing fn argument")
	}
	if d.Scripts == nil {
		return nil, fmt.Errorf("script %s: scripting is disabled", fn)
	}
	return game.NewScriptBehavior(d.Scripts, fn), nil
}
