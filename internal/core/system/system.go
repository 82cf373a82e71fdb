package system

import "time"

// Phase defines execution ordering within a single tick. The order mirrors
// the engine's frame contract: chunk streaming first, then batched world
// mutation, then visibility, then consumers, then deferred cleanup.
type Phase int

const (
	PhaseStream     Phase = iota // 0: chunk load/unload around the viewer
	PhaseMutate                  // 1: batched block creation/removal
	PhaseVisibility              // 2: distance + frustum evaluation
	PhaseOutput                  // 3: renderer-facing queries, stats
	PhaseCleanup                 // 4: destroy queued entities
)

// System is the interface every engine system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
