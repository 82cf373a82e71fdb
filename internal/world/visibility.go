package world

import (
	"github.com/voxelgo/engine/internal/core/ecs"
)

// Evaluator recomputes the Visibility component of every block and chunk
// entity from the current view state. Until a frustum is supplied it fails
// open: everything stays visible, so a headless run renders nothing wrongly
// hidden.
type Evaluator struct {
	comps *Components
	dims  Dims

	// maxRenderDistance is in blocks, measured from the viewer to the
	// entity's bounds center.
	maxRenderDistance float64

	viewer     Vec3
	frustum    Frustum
	hasFrustum bool
}

func NewEvaluator(comps *Components, dims Dims, maxRenderDistance float64) *Evaluator {
	return &Evaluator{
		comps:             comps,
		dims:              dims,
		maxRenderDistance: maxRenderDistance,
	}
}

// SetViewFrustum installs the camera state for subsequent Evaluate calls.
func (ev *Evaluator) SetViewFrustum(f Frustum, viewer Vec3) {
	ev.frustum = f
	ev.viewer = viewer
	ev.hasFrustum = true
}

// Evaluate rewrites every Visibility component. An entity is visible when it
// is both within max render distance and inside the frustum; distance wins,
// so an in-frustum entity beyond the cutoff stays hidden.
func (ev *Evaluator) Evaluate() {
	if !ev.hasFrustum {
		ev.comps.Vis.Each(func(_ ecs.EntityID, vis *Visibility) {
			vis.Visible = true
		})
		return
	}

	ecs.Each2(ev.comps.Blocks, ev.comps.Vis, func(_ ecs.EntityID, blk *Block, vis *Visibility) {
		ev.judge(vis, blk.Bounds)
	})
	ecs.Each2(ev.comps.Chunks, ev.comps.Vis, func(_ ecs.EntityID, info *ChunkInfo, vis *Visibility) {
		ev.judge(vis, ev.dims.Bounds(info.Pos))
	})
}

func (ev *Evaluator) judge(vis *Visibility, bounds AABB) {
	vis.Distance = bounds.Center().DistanceTo(ev.viewer)
	vis.InFrustum = ev.frustum.ContainsAABB(bounds)
	vis.Visible = vis.InFrustum && vis.Distance <= ev.maxRenderDistance
}
