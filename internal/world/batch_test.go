package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelgo/engine/internal/core/ecs"
)

func TestCreateBlocksBatchLengthMismatch(t *testing.T) {
	c := newTestCore()

	ids, err := c.Batch.CreateBlocksBatch(
		[]BlockID{testStone, testStone},
		[]BlockPos{{0, 0, 0}},
	)
	require.ErrorIs(t, err, ErrLengthMismatch)
	assert.Nil(t, ids)
	assert.Equal(t, 0, c.Index.Len(), "a rejected batch must do no partial work")
	assert.Equal(t, 0, c.World.Pool().Live())
}

func TestCreateBlocksBatchSingleVersionBump(t *testing.T) {
	c := newTestCore()
	v0 := c.Index.Version()

	types := make([]BlockID, 100)
	positions := make([]BlockPos, 100)
	for i := range types {
		types[i] = testStone
		positions[i] = BlockPos{X: int32(i % 10), Y: int32(i / 10), Z: 0}
	}
	ids, err := c.Batch.CreateBlocksBatch(types, positions)
	require.NoError(t, err)
	assert.Len(t, ids, 100)
	assert.Equal(t, 100, c.Index.Len())
	assert.Equal(t, v0+1, c.Index.Version(), "one bump per batch, not per entity")
}

func TestCreateBlocksBatchEmpty(t *testing.T) {
	c := newTestCore()
	v0 := c.Index.Version()

	ids, err := c.Batch.CreateBlocksBatch(nil, nil)
	require.NoError(t, err)
	assert.Nil(t, ids)
	assert.Equal(t, v0, c.Index.Version())
}

func TestUpdateLightBatchEmptyDoesNotBump(t *testing.T) {
	c := newTestCore()
	c.Blocks.SetBlock(testStone, BlockPos{0, 0, 0})
	v0 := c.Index.Version()

	require.NoError(t, c.Batch.UpdateLightBatch(nil, nil))
	assert.Equal(t, v0, c.Index.Version(), "an empty batch must not invalidate caches")
}

func TestUpdateLightBatchSkipsDeadEntities(t *testing.T) {
	c := newTestCore()

	alive := c.Blocks.SetBlock(testStone, BlockPos{0, 0, 0})
	dead := c.Blocks.SetBlock(testStone, BlockPos{1, 0, 0})
	c.World.DestroyNow(dead)

	err := c.Batch.UpdateLightBatch([]ecs.EntityID{alive, dead}, []uint8{7, 3})
	require.NoError(t, err)

	blk, _ := c.Comps.Blocks.Get(alive)
	assert.Equal(t, uint8(7), blk.Light)

	err = c.Batch.UpdateLightBatch([]ecs.EntityID{alive}, nil)
	assert.ErrorIs(t, err, ErrLengthMismatch)
	assert.Equal(t, uint8(7), blk.Light, "a rejected batch must do no partial work")
}

func TestDeleteEntitiesBatch(t *testing.T) {
	c := newTestCore()

	a := c.Blocks.SetBlock(testStone, BlockPos{0, 0, 0})
	b := c.Blocks.SetBlock(testStone, BlockPos{1, 0, 0})
	c.World.DestroyNow(b) // already dead, must be skipped

	deleted := c.Batch.DeleteEntitiesBatch([]ecs.EntityID{a, b})
	assert.Equal(t, 1, deleted)
	assert.False(t, c.World.Alive(a))
	_, ok := c.Blocks.GetBlock(BlockPos{0, 0, 0})
	assert.False(t, ok)
}

func TestDeleteEntitiesBatchKeepsOverwrittenSlot(t *testing.T) {
	c := newTestCore()
	pos := BlockPos{0, 0, 0}

	old := c.Blocks.SetBlock(testStone, pos)
	c.Blocks.RemoveBlock(pos)
	replacement := c.Blocks.SetBlock(testGrass, pos)

	// Deleting the stale handle must not unmap the replacement.
	c.Batch.DeleteEntitiesBatch([]ecs.EntityID{old})
	typ, ok := c.Blocks.GetBlock(pos)
	require.True(t, ok)
	assert.Equal(t, testGrass, typ)
	assert.True(t, c.World.Alive(replacement))
}
