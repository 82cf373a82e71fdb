package system

import (
	"time"

	coresys "github.com/voxelgo/engine/internal/core/system"
	"github.com/voxelgo/engine/internal/world"
)

// VisibilitySystem recomputes every entity's visibility after the tick's
// mutations have settled, then stales the query cache so visible-set queries
// recompute on next read. Phase 2 (Visibility).
type VisibilitySystem struct {
	core *world.Core
}

func NewVisibilitySystem(core *world.Core) *VisibilitySystem {
	return &VisibilitySystem{core: core}
}

func (s *VisibilitySystem) Phase() coresys.Phase { return coresys.PhaseVisibility }

func (s *VisibilitySystem) Update(_ time.Duration) {
	s.core.Vis.Evaluate()
	s.core.Cache.MarkChanged()
}
