package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type posComp struct{ X, Y int }
type tagComp struct{ Name string }

func TestEntityPoolRecyclesIndices(t *testing.T) {
	pool := NewEntityPool()

	a := pool.Create()
	b := pool.Create()
	require.NotEqual(t, a, b)
	require.True(t, pool.Alive(a))

	pool.Destroy(a)
	assert.False(t, pool.Alive(a))
	assert.Equal(t, 1, pool.Live())

	// Recycled slot reuses the index with a bumped generation.
	c := pool.Create()
	assert.Equal(t, a.Index(), c.Index())
	assert.Equal(t, a.Generation()+1, c.Generation())
	assert.True(t, pool.Alive(c))
	assert.False(t, pool.Alive(a), "stale id must stay dead after recycle")
}

func TestDestroyIsIdempotentOnStaleID(t *testing.T) {
	pool := NewEntityPool()
	a := pool.Create()
	pool.Destroy(a)
	pool.Destroy(a) // stale, must not corrupt the free list
	b := pool.Create()
	c := pool.Create()
	assert.NotEqual(t, b, c)
	assert.Equal(t, 2, pool.Live())
}

func TestWorldDestroyNowClearsComponents(t *testing.T) {
	w := NewWorld()
	store := NewPtrComponentStore[posComp]()
	w.Registry().Register(store)

	id := w.CreateEntity()
	store.Set(id, &posComp{X: 1, Y: 2})
	require.True(t, store.Has(id))

	w.DestroyNow(id)
	assert.False(t, w.Alive(id))
	assert.False(t, store.Has(id))

	// Second destroy of a dead id is a no-op.
	w.DestroyNow(id)
	assert.Equal(t, 0, store.Len())
}

func TestFlushDestroyQueue(t *testing.T) {
	w := NewWorld()
	store := NewPtrComponentStore[posComp]()
	w.Registry().Register(store)

	a := w.CreateEntity()
	b := w.CreateEntity()
	store.Set(a, &posComp{})
	store.Set(b, &posComp{})

	w.MarkForDestruction(a)
	require.True(t, w.Alive(a), "deferred destroy must not take effect before flush")

	w.FlushDestroyQueue()
	assert.False(t, w.Alive(a))
	assert.True(t, w.Alive(b))
	assert.False(t, store.Has(a))
	assert.True(t, store.Has(b))
}

func TestEach2IntersectsStores(t *testing.T) {
	w := NewWorld()
	positions := NewPtrComponentStore[posComp]()
	tags := NewPtrComponentStore[tagComp]()

	a := w.CreateEntity()
	b := w.CreateEntity()
	c := w.CreateEntity()
	positions.Set(a, &posComp{X: 1})
	positions.Set(b, &posComp{X: 2})
	tags.Set(b, &tagComp{Name: "both"})
	tags.Set(c, &tagComp{Name: "only-tag"})

	seen := map[EntityID]string{}
	Each2(positions, tags, func(id EntityID, p *posComp, tg *tagComp) {
		seen[id] = tg.Name
	})

	assert.Equal(t, map[EntityID]string{b: "both"}, seen)
}
