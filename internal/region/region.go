// Package region implements the region model, resource-node regeneration
// law, and the dual-rate region scheduler (spec.md section 4.3/4.4, C3/C4).
// The scheduler generalizes the teacher's single-rate Engine.step
// (internal/engine/tick.go) to per-region ACTIVE/BACKGROUND processing rates
// instead of a single global layered callback, since here every region
// advances independently rather than the whole world advancing in lockstep.
package region

import "fmt"

// State is a region's current processing rate.
type State uint8

const (
	Active State = iota
	Background
)

func (s State) String() string {
	if s == Active {
		return "ACTIVE"
	}
	return "BACKGROUND"
}

// Region is a rectangular tile container that the scheduler ticks
// independently of world generation (spec.md section 3). Bounds are
// half-open: a tile (x,y) belongs to the region iff
// center.X <= x < center.X+W and center.Y <= y < center.Y+H.
type Region struct {
	ID                string
	CenterX, CenterY  int
	W, H              int
	State             State
	LastProcessedTick uint64
	Resources         map[string]*ResourceNode
	NPCCount          int
}

// New constructs a Region in the given state with no resource nodes yet.
func New(id string, centerX, centerY, w, h int, state State) *Region {
	return &Region{
		ID:        id,
		CenterX:   centerX,
		CenterY:   centerY,
		W:         w,
		H:         h,
		State:     state,
		Resources: map[string]*ResourceNode{},
	}
}

// Contains reports whether (x,y) lies within the region's half-open bounds.
func (r *Region) Contains(x, y int) bool {
	return x >= r.CenterX && x < r.CenterX+r.W && y >= r.CenterY && y < r.CenterY+r.H
}

// AddResource registers a resource node inside this region.
func (r *Region) AddResource(n *ResourceNode) {
	r.Resources[n.ID] = n
}

func (r *Region) String() string {
	return fmt.Sprintf("region[%s] (%d,%d)+%dx%d %s", r.ID, r.CenterX, r.CenterY, r.W, r.H, r.State)
}
