package system

import (
	"time"

	"github.com/voxelgo/engine/internal/core/event"
	coresys "github.com/voxelgo/engine/internal/core/system"
	"github.com/voxelgo/engine/internal/world"
)

// DirtyMarkSystem rotates the event bus at tick start and marks the chunks
// containing last tick's block mutations dirty, so the mesher revisits them.
// Phase 1 (Mutate).
type DirtyMarkSystem struct {
	core *world.Core
}

func NewDirtyMarkSystem(core *world.Core) *DirtyMarkSystem {
	s := &DirtyMarkSystem{core: core}

	event.Subscribe(core.Bus, func(ev event.BlockPlaced) {
		s.markAt(ev.X, ev.Y, ev.Z)
	})
	event.Subscribe(core.Bus, func(ev event.BlockRemoved) {
		s.markAt(ev.X, ev.Y, ev.Z)
	})

	return s
}

func (s *DirtyMarkSystem) Phase() coresys.Phase { return coresys.PhaseMutate }

func (s *DirtyMarkSystem) Update(_ time.Duration) {
	s.core.Bus.SwapBuffers()
	s.core.Bus.DispatchAll()
}

func (s *DirtyMarkSystem) markAt(x, y, z int32) {
	pos := world.BlockPos{X: x, Y: y, Z: z}
	s.core.Chunks.MarkChunkDirty(s.core.Index.Dims().ChunkOf(pos))
}
