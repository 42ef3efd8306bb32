package system

import (
	"time"

	"github.com/l1jgo/platformer/internal/core/ecs"
	coresys "github.com/l1jgo/platformer/internal/core/system"
	"go.uber.org/zap"
)

// SetupSystem admits queued entities and advances the scene clock.
// Phase 1 (Setup).
type SetupSystem struct {
	scene *ecs.Scene
	log   *zap.Logger
}

func NewSetupSystem(scene *ecs.Scene, log *zap.Logger) *SetupSystem {
	return &SetupSystem{scene: scene, log: log}
}

func (s *SetupSystem) Phase() coresys.Phase { return coresys.PhaseSetup }

// Update logs a failed admission and lets the frame continue.
func (s *SetupSystem) Update(dt time.Duration) {
	if err := s.scene.Setup(dt.Seconds()); err != nil {
		s.log.Error("entity admission failed", zap.Error(err))
	}
}

// PreFrameSystem runs collision detection and entity updates. Phase 2.
type PreFrameSystem struct {
	scene *ecs.Scene
}

func NewPreFrameSystem(scene *ecs.Scene) *PreFrameSystem {
	return &PreFrameSystem{scene: scene}
}

func (s *PreFrameSystem) Phase() coresys.Phase { return coresys.PhasePreFrame }

func (s *PreFrameSystem) Update(_ time.Duration) { s.scene.SimulatePreFrame() }

// PostFrameSystem runs the post-render entity updates. Phase 4.
type PostFrameSystem struct {
	scene *ecs.Scene
}

func NewPostFrameSystem(scene *ecs.Scene) *PostFrameSystem {
	return &PostFrameSystem{scene: scene}
}

func (s *PostFrameSystem) Phase() coresys.Phase { return coresys.PhasePostFrame }

func (s *PostFrameSystem) Update(_ time.Duration) { s.scene.SimulatePostFrame() }
