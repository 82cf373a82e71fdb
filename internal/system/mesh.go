package system

import (
	"time"

	coresys "github.com/voxelgo/engine/internal/core/system"
	"github.com/voxelgo/engine/internal/world"
)

// MeshSweepSystem stands in for the renderer boundary: each tick it takes
// the dirty chunks, records placeholder mesh metadata sized from the chunk's
// block count, and clears the dirty flags. A real renderer replaces this by
// calling SetChunkMesh/MarkChunkMeshGenerated itself. Phase 3 (Output).
type MeshSweepSystem struct {
	core *world.Core

	// budget caps remeshes per tick so a mass edit does not stall the frame.
	budget int
}

func NewMeshSweepSystem(core *world.Core, budget int) *MeshSweepSystem {
	if budget <= 0 {
		budget = 8
	}
	return &MeshSweepSystem{core: core, budget: budget}
}

func (s *MeshSweepSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *MeshSweepSystem) Update(_ time.Duration) {
	dirty := s.core.Chunks.DirtyChunks()
	for i, pos := range dirty {
		if i >= s.budget {
			break
		}
		blocks := int32(len(s.core.Blocks.BlocksInChunk(pos)))
		s.core.Chunks.SetChunkMesh(pos, world.MeshInfo{
			VertexCount: blocks * 24,
			IndexCount:  blocks * 36,
			Bounds:      s.core.Index.Dims().Bounds(pos),
		})
		s.core.Chunks.MarkChunkMeshGenerated(pos)
	}
}
