package metrics

import "github.com/prometheus/client_golang/prometheus"

// WorldMetrics holds the engine's Prometheus instruments. A nil *WorldMetrics
// is valid and records nothing, so tests and headless callers can skip the
// registry entirely.
type WorldMetrics struct {
	blocksPlaced  prometheus.Counter
	blocksRemoved prometheus.Counter
	chunksLoaded  prometheus.Gauge
	cacheHits     prometheus.Counter
	cacheMisses   prometheus.Counter
	batchSizes    prometheus.Histogram
}

// New creates and registers the world metrics with the given registerer.
func New(reg prometheus.Registerer) *WorldMetrics {
	m := &WorldMetrics{
		blocksPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxelgo",
			Name:      "blocks_placed_total",
			Help:      "Blocks created or overwritten through the block manager.",
		}),
		blocksRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxelgo",
			Name:      "blocks_removed_total",
			Help:      "Blocks hard-deleted through the block manager.",
		}),
		chunksLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "voxelgo",
			Name:      "chunks_loaded",
			Help:      "Chunk entities currently alive.",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxelgo",
			Name:      "query_cache_hits_total",
			Help:      "Query cache lookups served without recompute.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxelgo",
			Name:      "query_cache_misses_total",
			Help:      "Query cache lookups that invoked the compute function.",
		}),
		batchSizes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "voxelgo",
			Name:      "batch_operation_size",
			Help:      "Entity counts of batch create/update/delete operations.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}
	reg.MustRegister(m.blocksPlaced, m.blocksRemoved, m.chunksLoaded,
		m.cacheHits, m.cacheMisses, m.batchSizes)
	return m
}

func (m *WorldMetrics) BlockPlaced() {
	if m != nil {
		m.blocksPlaced.Inc()
	}
}

func (m *WorldMetrics) BlockRemoved() {
	if m != nil {
		m.blocksRemoved.Inc()
	}
}

func (m *WorldMetrics) ChunksLoaded(n int) {
	if m != nil {
		m.chunksLoaded.Set(float64(n))
	}
}

func (m *WorldMetrics) CacheHit() {
	if m != nil {
		m.cacheHits.Inc()
	}
}

func (m *WorldMetrics) CacheMiss() {
	if m != nil {
		m.cacheMisses.Inc()
	}
}

func (m *WorldMetrics) BatchApplied(size int) {
	if m != nil {
		m.batchSizes.Observe(float64(size))
	}
}
