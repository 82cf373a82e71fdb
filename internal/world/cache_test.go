package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelgo/engine/internal/core/ecs"
)

func TestQueryCacheServesWithoutRecompute(t *testing.T) {
	c := newTestCore()
	c.Blocks.SetBlock(testStone, BlockPos{0, 0, 0})

	calls := 0
	compute := func() any {
		calls++
		return c.Index.Len()
	}

	first := c.Cache.GetOrCreate("count", compute)
	second := c.Cache.GetOrCreate("count", compute)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls, "second read must be a cache hit")
}

func TestQueryCacheInvalidatesOnMutation(t *testing.T) {
	c := newTestCore()
	c.Blocks.SetBlock(testStone, BlockPos{0, 0, 0})

	count := func() any { return c.Index.Len() }
	assert.Equal(t, 1, c.Cache.GetOrCreate("count", count))

	c.Blocks.SetBlock(testStone, BlockPos{1, 0, 0})
	assert.Equal(t, 2, c.Cache.GetOrCreate("count", count))

	c.Blocks.RemoveBlock(BlockPos{1, 0, 0})
	assert.Equal(t, 1, c.Cache.GetOrCreate("count", count))
}

func TestQueryCacheMarkChangedStalesEntries(t *testing.T) {
	c := newTestCore()

	calls := 0
	compute := func() any {
		calls++
		return calls
	}

	c.Cache.GetOrCreate("k", compute)
	c.Cache.MarkChanged()
	got := c.Cache.GetOrCreate("k", compute)
	assert.Equal(t, 2, got)
	assert.Equal(t, 2, calls)
}

func TestQueryCacheClear(t *testing.T) {
	c := newTestCore()

	calls := 0
	compute := func() any {
		calls++
		return calls
	}

	c.Cache.GetOrCreate("k", compute)
	assert.Equal(t, 1, c.Cache.Len())
	c.Cache.Clear()
	assert.Equal(t, 0, c.Cache.Len())

	c.Cache.GetOrCreate("k", compute)
	assert.Equal(t, 2, calls)
}

func TestVisibleBlocksCachedUntilWorldChanges(t *testing.T) {
	c := newTestCore()
	a := c.Blocks.SetBlock(testStone, BlockPos{0, 0, 0})
	c.Vis.Evaluate()

	got := c.VisibleBlocks()
	require.Equal(t, []ecs.EntityID{a}, got)

	// Unchanged world: the same slice comes back.
	again := c.VisibleBlocks()
	assert.Equal(t, got, again)

	b := c.Blocks.SetBlock(testStone, BlockPos{1, 0, 0})
	c.Vis.Evaluate()
	assert.ElementsMatch(t, []ecs.EntityID{a, b}, c.VisibleBlocks())
}
