package world

import (
	"errors"

	"github.com/voxelgo/engine/internal/core/ecs"
	"github.com/voxelgo/engine/internal/metrics"
)

// ErrLengthMismatch is returned by batch operations given parallel slices of
// different lengths. No entities are touched when it is returned.
var ErrLengthMismatch = errors.New("batch: parallel slices differ in length")

// BatchProcessor applies bulk mutations with a single index version bump per
// call, so one batch invalidates cached queries once rather than per entity.
// Per-entity failures inside a batch (dead handles, missing components) are
// skipped silently; only malformed input fails the whole call.
type BatchProcessor struct {
	world  *ecs.World
	comps  *Components
	blocks *BlockManager
	index  *BlockIndex
	stats  *metrics.WorldMetrics
}

func NewBatchProcessor(w *ecs.World, comps *Components, blocks *BlockManager,
	index *BlockIndex, stats *metrics.WorldMetrics) *BatchProcessor {
	return &BatchProcessor{
		world:  w,
		comps:  comps,
		blocks: blocks,
		index:  index,
		stats:  stats,
	}
}

// CreateBlocksBatch places one block per (type, position) pair and returns
// the created (or reused) entity handles in input order.
func (bp *BatchProcessor) CreateBlocksBatch(types []BlockID, positions []BlockPos) ([]ecs.EntityID, error) {
	if len(types) != len(positions) {
		return nil, ErrLengthMismatch
	}
	if len(types) == 0 {
		return nil, nil
	}
	ids := make([]ecs.EntityID, len(types))
	for i := range types {
		ids[i] = bp.blocks.setBlock(types[i], positions[i], false)
	}
	bp.index.bump()
	bp.stats.BatchApplied(len(ids))
	return ids, nil
}

// UpdateLightBatch writes light levels onto existing block entities. Handles
// that are dead or have no block component are skipped.
func (bp *BatchProcessor) UpdateLightBatch(ids []ecs.EntityID, lights []uint8) error {
	if len(ids) != len(lights) {
		return ErrLengthMismatch
	}
	if len(ids) == 0 {
		return nil
	}
	for i, id := range ids {
		if !bp.world.Alive(id) {
			continue
		}
		if blk, ok := bp.comps.Blocks.Get(id); ok {
			blk.Light = lights[i]
		}
	}
	bp.index.bump()
	bp.stats.BatchApplied(len(ids))
	return nil
}

// DeleteEntitiesBatch destroys the given block entities and unmaps their
// positions, returning the number actually deleted. Dead handles and
// non-block entities are skipped.
func (bp *BatchProcessor) DeleteEntitiesBatch(ids []ecs.EntityID) int {
	deleted := 0
	for _, id := range ids {
		if !bp.world.Alive(id) {
			continue
		}
		blk, ok := bp.comps.Blocks.Get(id)
		if !ok {
			continue
		}
		// Only unmap if the index still points at this entity; the slot
		// may have been overwritten since the handle was taken.
		if cur, indexed := bp.index.Get(blk.Pos); indexed && cur == id {
			bp.index.remove(blk.Pos)
		}
		bp.world.DestroyNow(id)
		deleted++
	}
	if deleted > 0 {
		bp.index.bump()
	}
	bp.stats.BatchApplied(len(ids))
	return deleted
}
