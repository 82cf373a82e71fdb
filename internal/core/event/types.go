package event

import "github.com/voxelgo/engine/internal/core/ecs"

// World mutation events. Coordinates are carried as raw int32 triples so this
// package stays below internal/world in the import graph.

type BlockPlaced struct {
	EntityID ecs.EntityID
	Type     uint16
	X, Y, Z  int32
}

type BlockRemoved struct {
	EntityID ecs.EntityID
	X, Y, Z  int32
}

type ChunkLoaded struct {
	EntityID ecs.EntityID
	X, Y, Z  int32 // chunk coordinates
}

type ChunkUnloaded struct {
	EntityID ecs.EntityID
	X, Y, Z  int32 // chunk coordinates
}
