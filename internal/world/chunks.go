package world

import (
	"go.uber.org/zap"

	"github.com/voxelgo/engine/internal/core/ecs"
	"github.com/voxelgo/engine/internal/core/event"
	"github.com/voxelgo/engine/internal/metrics"
)

// ChunkManager tracks chunk entities and drives their lifecycle from a
// viewer position. Chunks are column-shaped: render distance is measured in
// Chebyshev distance on the X/Z plane and the viewer's Y layer is used for
// every loaded chunk.
//
// Accessed only from the game loop goroutine — no locks.
type ChunkManager struct {
	world *ecs.World
	comps *Components
	bus   *event.Bus
	log   *zap.Logger
	stats *metrics.WorldMetrics

	renderDistance int32
	chunks         map[ChunkPos]ecs.EntityID
}

func NewChunkManager(w *ecs.World, comps *Components, renderDistance int32,
	bus *event.Bus, log *zap.Logger, stats *metrics.WorldMetrics) *ChunkManager {
	return &ChunkManager{
		world:          w,
		comps:          comps,
		bus:            bus,
		log:            log,
		stats:          stats,
		renderDistance: renderDistance,
		chunks:         make(map[ChunkPos]ecs.EntityID, 64),
	}
}

func (cm *ChunkManager) RenderDistance() int32 { return cm.renderDistance }

// UpdateChunkLoading reconciles the loaded chunk set against the square of
// side 2*renderDistance+1 centered on the viewer. It returns the chunks that
// entered and left the set this call; calling again with the same viewer
// returns two empty slices.
func (cm *ChunkManager) UpdateChunkLoading(viewer ChunkPos) (loaded, unloaded []ChunkPos) {
	want := make(map[ChunkPos]struct{}, (2*cm.renderDistance+1)*(2*cm.renderDistance+1))
	for dx := -cm.renderDistance; dx <= cm.renderDistance; dx++ {
		for dz := -cm.renderDistance; dz <= cm.renderDistance; dz++ {
			want[ChunkPos{X: viewer.X + dx, Y: viewer.Y, Z: viewer.Z + dz}] = struct{}{}
		}
	}

	for pos := range want {
		if _, ok := cm.chunks[pos]; ok {
			continue
		}
		cm.spawn(pos)
		loaded = append(loaded, pos)
	}
	for pos, id := range cm.chunks {
		if _, ok := want[pos]; ok {
			continue
		}
		cm.despawn(pos, id)
		unloaded = append(unloaded, pos)
	}

	cm.stats.ChunksLoaded(len(cm.chunks))
	if (len(loaded) > 0 || len(unloaded) > 0) && cm.log != nil {
		cm.log.Debug("chunk set reconciled",
			zap.Int32("cx", viewer.X), zap.Int32("cz", viewer.Z),
			zap.Int("loaded", len(loaded)), zap.Int("unloaded", len(unloaded)),
			zap.Int("total", len(cm.chunks)))
	}
	return loaded, unloaded
}

// Chunk returns the entity backing a chunk position, if it is loaded.
func (cm *ChunkManager) Chunk(pos ChunkPos) (ecs.EntityID, bool) {
	id, ok := cm.chunks[pos]
	return id, ok
}

// LoadedChunks returns the positions of every tracked chunk.
func (cm *ChunkManager) LoadedChunks() []ChunkPos {
	out := make([]ChunkPos, 0, len(cm.chunks))
	for pos := range cm.chunks {
		out = append(out, pos)
	}
	return out
}

func (cm *ChunkManager) Count() int { return len(cm.chunks) }

// BeginGenerate moves a loading chunk into the generating sub-state. No-op
// for chunks that are not loading.
func (cm *ChunkManager) BeginGenerate(pos ChunkPos) {
	if info := cm.info(pos); info != nil && info.State == ChunkLoading {
		info.State = ChunkGenerating
	}
}

// MarkChunkLoaded completes loading: the chunk becomes queryable and is
// flagged dirty so the mesher picks it up. No-op for untracked chunks.
func (cm *ChunkManager) MarkChunkLoaded(pos ChunkPos) {
	info := cm.info(pos)
	if info == nil {
		return
	}
	info.State = ChunkLoaded
	info.Loaded = true
	info.Dirty = true
}

// MarkChunkDirty flags a chunk for remeshing; a loaded chunk enters the
// meshing state until the mesher reports back. No-op for untracked chunks.
func (cm *ChunkManager) MarkChunkDirty(pos ChunkPos) {
	info := cm.info(pos)
	if info == nil {
		return
	}
	info.Dirty = true
	if info.State == ChunkLoaded {
		info.State = ChunkMeshing
	}
}

// MarkChunkMeshGenerated records that the renderer finished a mesh for the
// chunk and clears the dirty flag. No-op for untracked chunks.
func (cm *ChunkManager) MarkChunkMeshGenerated(pos ChunkPos) {
	info := cm.info(pos)
	if info == nil {
		return
	}
	info.MeshGenerated = true
	info.Dirty = false
	if info.State == ChunkMeshing {
		info.State = ChunkLoaded
	}
}

// SetChunkMesh stores renderer-produced mesh metadata. No-op for untracked
// chunks.
func (cm *ChunkManager) SetChunkMesh(pos ChunkPos, mesh MeshInfo) {
	if info := cm.info(pos); info != nil {
		info.Mesh = mesh
	}
}

// DirtyChunks returns the positions of loaded chunks awaiting a remesh.
func (cm *ChunkManager) DirtyChunks() []ChunkPos {
	var out []ChunkPos
	for pos, id := range cm.chunks {
		if info, ok := cm.comps.Chunks.Get(id); ok && info.Dirty {
			out = append(out, pos)
		}
	}
	return out
}

func (cm *ChunkManager) spawn(pos ChunkPos) {
	id := cm.world.CreateEntity()
	cm.comps.Chunks.Set(id, &ChunkInfo{Pos: pos, State: ChunkLoading})
	cm.comps.Vis.Set(id, &Visibility{Visible: true})
	cm.chunks[pos] = id
	if cm.bus != nil {
		event.Emit(cm.bus, event.ChunkLoaded{EntityID: id, X: pos.X, Y: pos.Y, Z: pos.Z})
	}
}

func (cm *ChunkManager) despawn(pos ChunkPos, id ecs.EntityID) {
	if info, ok := cm.comps.Chunks.Get(id); ok {
		info.State = ChunkUnloading
	}
	delete(cm.chunks, pos)
	cm.world.DestroyNow(id)
	if cm.bus != nil {
		event.Emit(cm.bus, event.ChunkUnloaded{EntityID: id, X: pos.X, Y: pos.Y, Z: pos.Z})
	}
}

func (cm *ChunkManager) info(pos ChunkPos) *ChunkInfo {
	id, ok := cm.chunks[pos]
	if !ok {
		return nil
	}
	info, ok := cm.comps.Chunks.Get(id)
	if !ok {
		return nil
	}
	return info
}
