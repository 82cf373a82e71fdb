package world

import "github.com/voxelgo/engine/internal/metrics"

// QueryCache memoizes expensive query results keyed by string. Entries are
// stamped with the index version at compute time and recomputed lazily the
// first time they are read after any world mutation — there is no eager
// invalidation pass.
//
// MarkChanged covers mutations the index cannot see (visibility rewrites,
// chunk state flips) by shifting the effective version.
type QueryCache struct {
	index   *BlockIndex
	entries map[string]cacheEntry
	shift   uint64
	stats   *metrics.WorldMetrics
}

type cacheEntry struct {
	value any
	stamp uint64
}

func NewQueryCache(index *BlockIndex, stats *metrics.WorldMetrics) *QueryCache {
	return &QueryCache{
		index:   index,
		entries: make(map[string]cacheEntry, 16),
		stats:   stats,
	}
}

// GetOrCreate returns the cached value for key, or runs compute and caches
// its result when the entry is missing or stale.
func (qc *QueryCache) GetOrCreate(key string, compute func() any) any {
	version := qc.version()
	if e, ok := qc.entries[key]; ok && e.stamp == version {
		qc.stats.CacheHit()
		return e.value
	}
	qc.stats.CacheMiss()
	value := compute()
	qc.entries[key] = cacheEntry{value: value, stamp: version}
	return value
}

// MarkChanged stales every entry without touching the block index.
func (qc *QueryCache) MarkChanged() {
	qc.shift++
}

// Clear drops all entries.
func (qc *QueryCache) Clear() {
	clear(qc.entries)
}

func (qc *QueryCache) Len() int { return len(qc.entries) }

func (qc *QueryCache) version() uint64 {
	return qc.index.Version() + qc.shift
}
