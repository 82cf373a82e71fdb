package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateChunkLoadingRenderDistanceTwo(t *testing.T) {
	c := newTestCore()
	viewer := ChunkPos{X: 0, Y: 0, Z: 0}

	loaded, unloaded := c.Chunks.UpdateChunkLoading(viewer)
	assert.Len(t, loaded, 25)
	assert.Empty(t, unloaded)
	assert.Equal(t, 25, c.Chunks.Count())

	// Exactly the 5x5 Chebyshev square around the viewer.
	var want []ChunkPos
	for dx := int32(-2); dx <= 2; dx++ {
		for dz := int32(-2); dz <= 2; dz++ {
			want = append(want, ChunkPos{X: dx, Y: 0, Z: dz})
		}
	}
	assert.ElementsMatch(t, want, c.Chunks.LoadedChunks())

	for _, pos := range want {
		id, ok := c.Chunks.Chunk(pos)
		require.True(t, ok)
		info, ok := c.Comps.Chunks.Get(id)
		require.True(t, ok)
		assert.Equal(t, ChunkLoading, info.State)
		assert.LessOrEqual(t, viewer.Chebyshev(pos), int32(2))
	}
}

func TestUpdateChunkLoadingIdempotent(t *testing.T) {
	c := newTestCore()
	viewer := ChunkPos{X: 3, Y: 0, Z: -3}

	c.Chunks.UpdateChunkLoading(viewer)
	loaded, unloaded := c.Chunks.UpdateChunkLoading(viewer)
	assert.Empty(t, loaded)
	assert.Empty(t, unloaded)
	assert.Equal(t, 25, c.Chunks.Count())
}

func TestUpdateChunkLoadingViewerMoves(t *testing.T) {
	c := newTestCore()

	c.Chunks.UpdateChunkLoading(ChunkPos{X: 0, Y: 0, Z: 0})
	loaded, unloaded := c.Chunks.UpdateChunkLoading(ChunkPos{X: 1, Y: 0, Z: 0})

	// One column enters, one leaves.
	assert.Len(t, loaded, 5)
	assert.Len(t, unloaded, 5)
	assert.Equal(t, 25, c.Chunks.Count())

	for _, pos := range unloaded {
		assert.Equal(t, int32(-2), pos.X)
		_, ok := c.Chunks.Chunk(pos)
		assert.False(t, ok)
	}
	for _, pos := range loaded {
		assert.Equal(t, int32(3), pos.X)
	}
}

func TestChunkStateTransitions(t *testing.T) {
	c := newTestCore()
	pos := ChunkPos{X: 0, Y: 0, Z: 0}
	c.Chunks.UpdateChunkLoading(pos)

	id, ok := c.Chunks.Chunk(pos)
	require.True(t, ok)
	info, _ := c.Comps.Chunks.Get(id)

	c.Chunks.BeginGenerate(pos)
	assert.Equal(t, ChunkGenerating, info.State)

	c.Chunks.MarkChunkLoaded(pos)
	assert.Equal(t, ChunkLoaded, info.State)
	assert.True(t, info.Loaded)
	assert.True(t, info.Dirty, "a freshly loaded chunk needs a mesh")

	c.Chunks.SetChunkMesh(pos, MeshInfo{VertexCount: 120, IndexCount: 180})
	c.Chunks.MarkChunkMeshGenerated(pos)
	assert.True(t, info.MeshGenerated)
	assert.False(t, info.Dirty)
	assert.Equal(t, int32(120), info.Mesh.VertexCount)

	// Re-dirtying a loaded chunk walks the meshing arm: Loaded -> Meshing
	// -> Loaded once the mesher reports back.
	c.Chunks.MarkChunkDirty(pos)
	assert.Contains(t, c.Chunks.DirtyChunks(), pos)
	assert.Equal(t, ChunkMeshing, info.State)

	c.Chunks.MarkChunkMeshGenerated(pos)
	assert.Equal(t, ChunkLoaded, info.State)
	assert.False(t, info.Dirty)
}

func TestChunkOpsIgnoreUntrackedPositions(t *testing.T) {
	c := newTestCore()
	far := ChunkPos{X: 100, Y: 0, Z: 100}

	// None of these may panic or create state.
	c.Chunks.BeginGenerate(far)
	c.Chunks.MarkChunkLoaded(far)
	c.Chunks.MarkChunkDirty(far)
	c.Chunks.MarkChunkMeshGenerated(far)
	c.Chunks.SetChunkMesh(far, MeshInfo{})

	assert.Equal(t, 0, c.Chunks.Count())
	_, ok := c.Chunks.Chunk(far)
	assert.False(t, ok)
}

func TestUnloadedChunkEntitiesAreDestroyed(t *testing.T) {
	c := newTestCore()

	c.Chunks.UpdateChunkLoading(ChunkPos{X: 0, Y: 0, Z: 0})
	edge := ChunkPos{X: -2, Y: 0, Z: 0}
	id, ok := c.Chunks.Chunk(edge)
	require.True(t, ok)

	c.Chunks.UpdateChunkLoading(ChunkPos{X: 5, Y: 0, Z: 0})
	assert.False(t, c.World.Alive(id))
	assert.False(t, c.Comps.Chunks.Has(id))
}
