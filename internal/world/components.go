package world

import "github.com/voxelgo/engine/internal/core/ecs"

// BlockID is the enumerated block type tag. 0 is the air sentinel: air is
// never stored as an entity by SetBlock, but batch imports may introduce it,
// which is what OptimizeStorage cleans up.
type BlockID uint16

const BlockAir BlockID = 0

// Block is the per-block-entity component.
type Block struct {
	Type   BlockID
	Data   uint16 // tag-dependent small payload
	Pos    BlockPos
	Light  uint8 // 0..15
	Center Vec3
	Bounds AABB
}

// Visibility is written by the evaluator and read by the renderer boundary.
// Attached to both block and chunk entities.
type Visibility struct {
	Visible   bool
	Distance  float64
	InFrustum bool
}

// ChunkState is the chunk lifecycle state machine.
type ChunkState uint8

const (
	ChunkUnloaded ChunkState = iota
	ChunkLoading
	ChunkGenerating // sub-state of Loading, reserved for terrain generation
	ChunkLoaded
	ChunkMeshing
	ChunkUnloading
)

func (s ChunkState) String() string {
	switch s {
	case ChunkUnloaded:
		return "unloaded"
	case ChunkLoading:
		return "loading"
	case ChunkGenerating:
		return "generating"
	case ChunkLoaded:
		return "loaded"
	case ChunkMeshing:
		return "meshing"
	case ChunkUnloading:
		return "unloading"
	}
	return "unknown"
}

// MeshInfo is renderer-produced metadata for a chunk mesh.
type MeshInfo struct {
	VertexCount int32
	IndexCount  int32
	Bounds      AABB
}

// ChunkInfo is the per-chunk-entity component.
type ChunkInfo struct {
	Pos           ChunkPos
	State         ChunkState
	Dirty         bool
	Loaded        bool
	MeshGenerated bool
	Mesh          MeshInfo
}

// Components bundles the typed stores the world core operates on. Every
// store is registered with the ECS registry so destroyed entities are
// scrubbed from all of them.
type Components struct {
	Blocks *ecs.PtrComponentStore[Block]
	Vis    *ecs.PtrComponentStore[Visibility]
	Chunks *ecs.PtrComponentStore[ChunkInfo]
}

func NewComponents(w *ecs.World) *Components {
	c := &Components{
		Blocks: ecs.NewPtrComponentStore[Block](),
		Vis:    ecs.NewPtrComponentStore[Visibility](),
		Chunks: ecs.NewPtrComponentStore[ChunkInfo](),
	}
	w.Registry().Register(c.Blocks)
	w.Registry().Register(c.Vis)
	w.Registry().Register(c.Chunks)
	return c
}
