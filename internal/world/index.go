package world

import "github.com/voxelgo/engine/internal/core/ecs"

// BlockIndex maps block positions to entity handles. It owns no entities —
// creating and destroying them is the BlockManager's job — and keeps a
// per-chunk bucket so range queries never scan the whole world.
//
// Every mutation bumps a monotonic version counter; the query cache compares
// stamps against it to invalidate cheaply.
//
// Accessed only from the game loop goroutine — no locks.
type BlockIndex struct {
	dims    Dims
	blocks  map[BlockPos]ecs.EntityID
	byChunk map[ChunkPos]map[BlockPos]ecs.EntityID
	version uint64
}

func NewBlockIndex(dims Dims) *BlockIndex {
	return &BlockIndex{
		dims:    dims,
		blocks:  make(map[BlockPos]ecs.EntityID, 4096),
		byChunk: make(map[ChunkPos]map[BlockPos]ecs.EntityID),
	}
}

func (ix *BlockIndex) Dims() Dims      { return ix.dims }
func (ix *BlockIndex) Version() uint64 { return ix.version }
func (ix *BlockIndex) Len() int        { return len(ix.blocks) }

// Set maps a position to an entity, overwriting any existing mapping
// (last-write-wins), and bumps the version counter.
func (ix *BlockIndex) Set(pos BlockPos, id ecs.EntityID) {
	ix.set(pos, id)
	ix.version++
}

// Get returns the entity indexed at pos. Missing is a valid result.
func (ix *BlockIndex) Get(pos BlockPos) (ecs.EntityID, bool) {
	id, ok := ix.blocks[pos]
	return id, ok
}

// Remove unmaps a position and bumps the version counter. Removing an unset
// position is a no-op and does not bump.
func (ix *BlockIndex) Remove(pos BlockPos) (ecs.EntityID, bool) {
	id, ok := ix.remove(pos)
	if ok {
		ix.version++
	}
	return id, ok
}

// PositionsInChunk returns all indexed positions inside one chunk.
func (ix *BlockIndex) PositionsInChunk(c ChunkPos) []BlockPos {
	bucket := ix.byChunk[c]
	if len(bucket) == 0 {
		return nil
	}
	out := make([]BlockPos, 0, len(bucket))
	for pos := range bucket {
		out = append(out, pos)
	}
	return out
}

// PositionsInRange returns all indexed positions whose block center lies
// within radius of center. Candidate chunks are derived from the bounding
// box of the sphere first, then block centers are filtered by Euclidean
// distance.
func (ix *BlockIndex) PositionsInRange(center Vec3, radius float64) []BlockPos {
	if radius < 0 {
		return nil
	}
	minPos := BlockPos{
		X: int32(floor(center.X - radius)),
		Y: int32(floor(center.Y - radius)),
		Z: int32(floor(center.Z - radius)),
	}
	maxPos := BlockPos{
		X: int32(floor(center.X + radius)),
		Y: int32(floor(center.Y + radius)),
		Z: int32(floor(center.Z + radius)),
	}
	minChunk := ix.dims.ChunkOf(minPos)
	maxChunk := ix.dims.ChunkOf(maxPos)

	var out []BlockPos
	for cx := minChunk.X; cx <= maxChunk.X; cx++ {
		for cy := minChunk.Y; cy <= maxChunk.Y; cy++ {
			for cz := minChunk.Z; cz <= maxChunk.Z; cz++ {
				bucket := ix.byChunk[ChunkPos{X: cx, Y: cy, Z: cz}]
				for pos := range bucket {
					if pos.Center().DistanceTo(center) <= radius {
						out = append(out, pos)
					}
				}
			}
		}
	}
	return out
}

// set and remove are the bump-free primitives the batch processor uses to
// apply many mutations under a single version bump.

func (ix *BlockIndex) set(pos BlockPos, id ecs.EntityID) {
	chunk := ix.dims.ChunkOf(pos)
	if _, exists := ix.blocks[pos]; !exists {
		bucket := ix.byChunk[chunk]
		if bucket == nil {
			bucket = make(map[BlockPos]ecs.EntityID, 64)
			ix.byChunk[chunk] = bucket
		}
		bucket[pos] = id
	} else {
		ix.byChunk[chunk][pos] = id
	}
	ix.blocks[pos] = id
}

func (ix *BlockIndex) remove(pos BlockPos) (ecs.EntityID, bool) {
	id, ok := ix.blocks[pos]
	if !ok {
		return 0, false
	}
	delete(ix.blocks, pos)
	chunk := ix.dims.ChunkOf(pos)
	if bucket := ix.byChunk[chunk]; bucket != nil {
		delete(bucket, pos)
		if len(bucket) == 0 {
			delete(ix.byChunk, chunk)
		}
	}
	return id, true
}

func (ix *BlockIndex) bump() {
	ix.version++
}

func floor(v float64) int64 {
	i := int64(v)
	if v < 0 && float64(i) != v {
		i--
	}
	return i
}
