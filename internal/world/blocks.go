package world

import (
	"math"

	"go.uber.org/zap"

	"github.com/voxelgo/engine/internal/core/ecs"
	"github.com/voxelgo/engine/internal/core/event"
	"github.com/voxelgo/engine/internal/data"
	"github.com/voxelgo/engine/internal/metrics"
)

// BlockManager creates, reads, updates and removes block entities through the
// spatial index. All operations are total over well-formed positions: missing
// is an ok-bool result, never an error.
type BlockManager struct {
	world   *ecs.World
	comps   *Components
	index   *BlockIndex
	catalog *data.BlockTable
	bus     *event.Bus
	log     *zap.Logger
	stats   *metrics.WorldMetrics

	// lightFn optionally overrides placement light level per block type
	// (wired to the Lua rules engine by the caller).
	lightFn func(blockType uint16, def uint8) uint8
}

func NewBlockManager(w *ecs.World, comps *Components, index *BlockIndex,
	catalog *data.BlockTable, bus *event.Bus, log *zap.Logger, stats *metrics.WorldMetrics) *BlockManager {
	return &BlockManager{
		world:   w,
		comps:   comps,
		index:   index,
		catalog: catalog,
		bus:     bus,
		log:     log,
		stats:   stats,
	}
}

// SetLightResolver installs a per-type light override, consulted on every
// placement after the catalog default.
func (bm *BlockManager) SetLightResolver(fn func(blockType uint16, def uint8) uint8) {
	bm.lightFn = fn
}

// SetBlock places a block at pos. If one already exists there, its type and
// data are overwritten in place — entity identity is reused, no churn.
// Always succeeds.
func (bm *BlockManager) SetBlock(typ BlockID, pos BlockPos) ecs.EntityID {
	id := bm.setBlock(typ, pos, true)
	bm.stats.BlockPlaced()
	return id
}

// GetBlock returns the block type at pos, or ok=false when nothing is
// indexed there (or the backing entity has died).
func (bm *BlockManager) GetBlock(pos BlockPos) (BlockID, bool) {
	id, ok := bm.index.Get(pos)
	if !ok {
		return BlockAir, false
	}
	blk, ok := bm.comps.Blocks.Get(id)
	if !ok {
		return BlockAir, false
	}
	return blk.Type, true
}

// RemoveBlock hard-deletes the block at pos. Returns false when nothing was
// present; removing twice yields true then false.
func (bm *BlockManager) RemoveBlock(pos BlockPos) bool {
	id, ok := bm.index.Remove(pos)
	if !ok {
		return false
	}
	bm.world.DestroyNow(id)
	bm.stats.BlockRemoved()
	if bm.bus != nil {
		event.Emit(bm.bus, event.BlockRemoved{EntityID: id, X: pos.X, Y: pos.Y, Z: pos.Z})
	}
	return true
}

// BlocksInChunk resolves the indexed positions of one chunk to live entities.
// Positions whose backing entity has since died are silently skipped.
func (bm *BlockManager) BlocksInChunk(c ChunkPos) []ecs.EntityID {
	return bm.resolve(bm.index.PositionsInChunk(c))
}

// BlocksInRange resolves the indexed positions within radius of center to
// live entities, with the same lazy-consistency rule as BlocksInChunk.
func (bm *BlockManager) BlocksInRange(center Vec3, radius float64) []ecs.EntityID {
	return bm.resolve(bm.index.PositionsInRange(center, radius))
}

// Raycast walks the voxel grid from origin along dir and returns the first
// occupied position within maxDistance. Whole-voxel precision: the nearest
// hit along the ray wins, no sub-voxel face reporting.
func (bm *BlockManager) Raycast(origin, dir Vec3, maxDistance float64) (ecs.EntityID, bool) {
	dir = dir.Normalized()
	if dir == (Vec3{}) || maxDistance <= 0 {
		return 0, false
	}

	cur := BlockPos{X: int32(floor(origin.X)), Y: int32(floor(origin.Y)), Z: int32(floor(origin.Z))}
	stepX, tMaxX, tDeltaX := axisInit(origin.X, dir.X, cur.X)
	stepY, tMaxY, tDeltaY := axisInit(origin.Y, dir.Y, cur.Y)
	stepZ, tMaxZ, tDeltaZ := axisInit(origin.Z, dir.Z, cur.Z)

	for t := 0.0; t <= maxDistance; {
		if id, ok := bm.index.Get(cur); ok {
			if bm.world.Alive(id) {
				return id, true
			}
		}
		// Advance to the next voxel boundary on the axis crossed first.
		switch {
		case tMaxX <= tMaxY && tMaxX <= tMaxZ:
			cur.X += stepX
			t = tMaxX
			tMaxX += tDeltaX
		case tMaxY <= tMaxZ:
			cur.Y += stepY
			t = tMaxY
			tMaxY += tDeltaY
		default:
			cur.Z += stepZ
			t = tMaxZ
			tMaxZ += tDeltaZ
		}
	}
	return 0, false
}

// OptimizeStorage removes entries whose block type is air and compacts the
// chunk buckets. Explicit maintenance, never run automatically. Returns the
// number of entries dropped.
func (bm *BlockManager) OptimizeStorage() int {
	var stale []BlockPos
	for _, pos := range bm.allPositions() {
		id, _ := bm.index.Get(pos)
		blk, ok := bm.comps.Blocks.Get(id)
		if !ok {
			stale = append(stale, pos) // dead entity left behind, compact it
			continue
		}
		if bm.isAir(blk.Type) {
			stale = append(stale, pos)
		}
	}
	for _, pos := range stale {
		if id, ok := bm.index.Remove(pos); ok {
			bm.world.DestroyNow(id)
		}
	}
	if len(stale) > 0 && bm.log != nil {
		bm.log.Info("storage optimized", zap.Int("dropped", len(stale)))
	}
	return len(stale)
}

// setBlock is the shared placement primitive. The batch processor calls it
// with bump=false and applies one version bump for the whole batch.
// Both the overwrite and new-entity paths publish BlockPlaced: an in-place
// type change still stales the containing chunk's mesh.
func (bm *BlockManager) setBlock(typ BlockID, pos BlockPos, bump bool) ecs.EntityID {
	if id, ok := bm.index.Get(pos); ok {
		if blk, alive := bm.comps.Blocks.Get(id); alive {
			blk.Type = typ
			blk.Light = bm.lightFor(typ)
			if bump {
				bm.index.Set(pos, id)
			} else {
				bm.index.set(pos, id)
			}
			bm.emitPlaced(id, typ, pos)
			return id
		}
	}

	id := bm.world.CreateEntity()
	bm.comps.Blocks.Set(id, &Block{
		Type:   typ,
		Pos:    pos,
		Light:  bm.lightFor(typ),
		Center: pos.Center(),
		Bounds: UnitCubeAt(pos),
	})
	bm.comps.Vis.Set(id, &Visibility{Visible: true})
	if bump {
		bm.index.Set(pos, id)
	} else {
		bm.index.set(pos, id)
	}
	bm.emitPlaced(id, typ, pos)
	return id
}

func (bm *BlockManager) emitPlaced(id ecs.EntityID, typ BlockID, pos BlockPos) {
	if bm.bus != nil {
		event.Emit(bm.bus, event.BlockPlaced{EntityID: id, Type: uint16(typ), X: pos.X, Y: pos.Y, Z: pos.Z})
	}
}

func (bm *BlockManager) lightFor(typ BlockID) uint8 {
	def := uint8(15)
	if bm.catalog != nil {
		if d := bm.catalog.Get(uint16(typ)); d != nil && d.LightEmission > 0 {
			def = d.LightEmission
		}
	}
	if bm.lightFn != nil {
		if v := bm.lightFn(uint16(typ), def); v <= 15 {
			return v
		}
	}
	return def
}

func (bm *BlockManager) isAir(typ BlockID) bool {
	if bm.catalog != nil {
		return bm.catalog.IsAir(uint16(typ))
	}
	return typ == BlockAir
}

func (bm *BlockManager) resolve(positions []BlockPos) []ecs.EntityID {
	out := make([]ecs.EntityID, 0, len(positions))
	for _, pos := range positions {
		id, ok := bm.index.Get(pos)
		if !ok || !bm.world.Alive(id) {
			continue
		}
		out = append(out, id)
	}
	return out
}

func (bm *BlockManager) allPositions() []BlockPos {
	out := make([]BlockPos, 0, bm.index.Len())
	for pos := range bm.index.blocks {
		out = append(out, pos)
	}
	return out
}

// axisInit computes the DDA stepping parameters for one axis: step
// direction, distance along the ray to the first voxel boundary, and the
// distance between consecutive boundaries.
func axisInit(origin, dir float64, voxel int32) (step int32, tMax, tDelta float64) {
	if dir > 0 {
		return 1, (float64(voxel) + 1 - origin) / dir, 1 / dir
	}
	if dir < 0 {
		return -1, (origin - float64(voxel)) / -dir, 1 / -dir
	}
	return 0, math.Inf(1), math.Inf(1)
}
