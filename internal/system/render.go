package system

import (
	"time"

	"github.com/l1jgo/platformer/internal/core/ecs"
	coresys "github.com/l1jgo/platformer/internal/core/system"
	"github.com/l1jgo/platformer/internal/render"
	"go.uber.org/zap"
)

// RenderSystem snapshots the scene and hands the frame to a renderer.
// Phase 3 (Render).
type RenderSystem struct {
	scene    *ecs.Scene
	renderer render.Renderer
	status   func(*ecs.Scene) string
	failures int
	log      *zap.Logger
}

// NewRenderSystem creates a render system. status may be nil.
func NewRenderSystem(scene *ecs.Scene, r render.Renderer, status func(*ecs.Scene) string, log *zap.Logger) *RenderSystem {
	return &RenderSystem{scene: scene, renderer: r, status: status, log: log}
}

func (s *RenderSystem) Phase() coresys.Phase { return coresys.PhaseRender }

func (s *RenderSystem) Update(_ time.Duration) {
	f := render.Snapshot(s.scene)
	if s.status != nil {
		f.Status = s.status(s.scene)
	}
	if err := s.renderer.Render(f); err != nil {
		// Only the first failure of a streak is logged.
		if s.failures == 0 {
			s.log.Warn("render failed", zap.Error(err))
		}
		s.failures++
		return
	}
	s.failures = 0
}
