package system

import (
	"time"

	coresys "github.com/voxelgo/engine/internal/core/system"
	"github.com/voxelgo/engine/internal/world"
)

// ChunkStreamSystem reconciles the loaded chunk set against the tracked
// viewer position at tick start, then walks freshly loaded chunks through
// generation. Phase 0 (Stream).
type ChunkStreamSystem struct {
	core   *world.Core
	viewer world.ChunkPos
}

func NewChunkStreamSystem(core *world.Core) *ChunkStreamSystem {
	return &ChunkStreamSystem{core: core}
}

// SetViewer moves the streaming anchor. Takes effect next tick.
func (s *ChunkStreamSystem) SetViewer(pos world.ChunkPos) {
	s.viewer = pos
}

func (s *ChunkStreamSystem) Phase() coresys.Phase { return coresys.PhaseStream }

func (s *ChunkStreamSystem) Update(_ time.Duration) {
	loaded, _ := s.core.Chunks.UpdateChunkLoading(s.viewer)

	// No async terrain pipeline yet: new chunks complete loading within the
	// same tick so they are queryable immediately.
	for _, pos := range loaded {
		s.core.Chunks.BeginGenerate(pos)
		s.core.Chunks.MarkChunkLoaded(pos)
	}
}
