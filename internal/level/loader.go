package level

import (
	"github.com/l1jgo/platformer/internal/component"
	"github.com/l1jgo/platformer/internal/core/ecs"
	"github.com/l1jgo/platformer/internal/data"
	"github.com/l1jgo/platformer/internal/geom"
	"github.com/l1jgo/platformer/internal/tilemap"
	"go.uber.org/zap"
)

// MapEntityName is the name of the entity carrying the TiledMap.
const MapEntityName = "map"

// Loader queues the entities of a map into a scene.
type Loader struct {
	reg  *Registry
	deps Deps
	log  *zap.Logger
}

func NewLoader(reg *Registry, deps Deps) *Loader {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{reg: reg, deps: deps, log: log}
}

// Populate queues the map entity and one entity per map object. Objects are
// positioned at their center. Content errors are logged and the offending
// directive skipped; the object is still created. A camera entity is added
// when no object carries one.
func (l *Loader) Populate(s *ecs.Scene, m *tilemap.Map) (*ecs.Entity, error) {
	mapEntity := ecs.NewEntity(MapEntityName, component.NewTiledMap(m))
	if err := s.QueueAdd(mapEntity); err != nil {
		return nil, err
	}

	hasCamera := false
	for _, obj := range m.Objects {
		e := l.buildObject(obj)
		if ecs.HasComponent[*component.Camera](e) {
			hasCamera = true
		}
		if err := s.QueueAdd(e); err != nil {
			return mapEntity, err
		}
	}

	if !hasCamera {
		cam := ecs.NewEntity("camera", component.NewCamera())
		cam.SetPosition(geom.Vec(m.PixelWidth()/2, m.PixelHeight()/2))
		if err := s.QueueAdd(cam); err != nil {
			return mapEntity, err
		}
	}

	l.log.Info("level populated",
		zap.Int("objects", len(m.Objects)),
		zap.Int("width", m.Width),
		zap.Int("height", m.Height),
		zap.Int("collidable", m.CollidableCount()),
	)
	return mapEntity, nil
}

func (l *Loader) buildObject(obj tilemap.Object) *ecs.Entity {
	e := ecs.NewEntity(obj.Name)
	e.SetPosition(geom.Vec(obj.X+obj.Width/2, obj.Y+obj.Height/2))

	log := l.log.With(zap.String("object", obj.Name))
	directives, err := data.ParseDirectives(obj.Components)
	if err != nil {
		log.Warn("bad component directive", zap.String("components", obj.Components), zap.Error(err))
	}

	hasSprite := false
	for _, d := range directives {
		c, err := l.reg.Build(d.Name, l.deps, obj, d.Args)
		if err != nil {
			log.Warn("component skipped", zap.String("component", d.Name), zap.Error(err))
			continue
		}
		if _, ok := c.(*component.SpriteRenderer); ok {
			hasSprite = true
		}
		e.AddComponents(c)
	}

	if !hasSprite && (obj.Sprite != "" || obj.Glyph != 0) {
		e.AddComponents(component.NewSpriteRenderer(obj.Sprite, obj.Glyph))
	}
	return e
}
