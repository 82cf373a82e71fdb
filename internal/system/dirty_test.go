package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelgo/engine/internal/core/event"
	"github.com/voxelgo/engine/internal/world"
)

func newDirtyFixture() (*world.Core, *DirtyMarkSystem) {
	core := world.NewCore(world.Options{
		Dims:              world.DefaultDims,
		RenderDistance:    2,
		MaxRenderDistance: 100,
	}, nil, event.NewBus(), nil, nil)
	return core, NewDirtyMarkSystem(core)
}

func TestBlockMutationsMarkContainingChunkDirty(t *testing.T) {
	core, sys := newDirtyFixture()

	home := world.ChunkPos{}
	core.Chunks.UpdateChunkLoading(home)
	core.Chunks.MarkChunkLoaded(home)

	pos := world.BlockPos{X: 1, Y: 64, Z: 1}
	core.Blocks.SetBlock(1, pos)
	sys.Update(time.Millisecond)
	require.Contains(t, core.Chunks.DirtyChunks(), home)

	core.Chunks.MarkChunkMeshGenerated(home)
	require.NotContains(t, core.Chunks.DirtyChunks(), home)

	core.Blocks.RemoveBlock(pos)
	sys.Update(time.Millisecond)
	assert.Contains(t, core.Chunks.DirtyChunks(), home)
}

func TestOverwriteRemarksChunkDirty(t *testing.T) {
	core, sys := newDirtyFixture()

	home := world.ChunkPos{}
	core.Chunks.UpdateChunkLoading(home)
	core.Chunks.MarkChunkLoaded(home)

	pos := world.BlockPos{X: 3, Y: 64, Z: 3}
	core.Blocks.SetBlock(1, pos)
	sys.Update(time.Millisecond)
	core.Chunks.MarkChunkMeshGenerated(home)
	require.NotContains(t, core.Chunks.DirtyChunks(), home)

	// In-place type change reuses the entity but must still remesh.
	reused := core.Blocks.SetBlock(2, pos)
	sys.Update(time.Millisecond)
	assert.Contains(t, core.Chunks.DirtyChunks(), home)

	blk, ok := core.Comps.Blocks.Get(reused)
	require.True(t, ok)
	assert.Equal(t, world.BlockID(2), blk.Type)
}
