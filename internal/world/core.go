package world

import (
	"go.uber.org/zap"

	"github.com/voxelgo/engine/internal/core/ecs"
	"github.com/voxelgo/engine/internal/core/event"
	"github.com/voxelgo/engine/internal/data"
	"github.com/voxelgo/engine/internal/metrics"
)

// Core wires the world subsystems over one ECS world: spatial index, block
// and chunk managers, visibility evaluator, query cache and batch processor.
// It is the single handle the systems and the command layer hold.
type Core struct {
	World   *ecs.World
	Comps   *Components
	Index   *BlockIndex
	Blocks  *BlockManager
	Chunks  *ChunkManager
	Vis     *Evaluator
	Cache   *QueryCache
	Batch   *BatchProcessor
	Bus     *event.Bus
	Catalog *data.BlockTable
}

// Options carries the tunables Core needs beyond its collaborators.
type Options struct {
	Dims              Dims
	RenderDistance    int32   // in chunks, Chebyshev
	MaxRenderDistance float64 // in blocks, Euclidean
}

func NewCore(opts Options, catalog *data.BlockTable, bus *event.Bus,
	log *zap.Logger, stats *metrics.WorldMetrics) *Core {
	if opts.Dims == (Dims{}) {
		opts.Dims = DefaultDims
	}
	w := ecs.NewWorld()
	comps := NewComponents(w)
	index := NewBlockIndex(opts.Dims)
	blocks := NewBlockManager(w, comps, index, catalog, bus, log, stats)
	return &Core{
		World:   w,
		Comps:   comps,
		Index:   index,
		Blocks:  blocks,
		Chunks:  NewChunkManager(w, comps, opts.RenderDistance, bus, log, stats),
		Vis:     NewEvaluator(comps, opts.Dims, opts.MaxRenderDistance),
		Cache:   NewQueryCache(index, stats),
		Batch:   NewBatchProcessor(w, comps, blocks, index, stats),
		Bus:     bus,
		Catalog: catalog,
	}
}

// SetViewFrustum is the camera boundary: called once per frame before the
// visibility pass runs.
func (c *Core) SetViewFrustum(f Frustum, viewer Vec3) {
	c.Vis.SetViewFrustum(f, viewer)
}

// VisibleBlocks returns the block entities currently flagged visible, served
// from the query cache.
func (c *Core) VisibleBlocks() []ecs.EntityID {
	v := c.Cache.GetOrCreate("visible_blocks", func() any {
		var out []ecs.EntityID
		ecs.Each2(c.Comps.Blocks, c.Comps.Vis, func(id ecs.EntityID, _ *Block, vis *Visibility) {
			if vis.Visible {
				out = append(out, id)
			}
		})
		return out
	})
	return v.([]ecs.EntityID)
}

// VisibleChunks returns the chunk entities currently flagged visible, served
// from the query cache.
func (c *Core) VisibleChunks() []ecs.EntityID {
	v := c.Cache.GetOrCreate("visible_chunks", func() any {
		var out []ecs.EntityID
		ecs.Each2(c.Comps.Chunks, c.Comps.Vis, func(id ecs.EntityID, _ *ChunkInfo, vis *Visibility) {
			if vis.Visible {
				out = append(out, id)
			}
		})
		return out
	})
	return v.([]ecs.EntityID)
}
