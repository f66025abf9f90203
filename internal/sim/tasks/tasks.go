package tasks

import (
	"voxelpath.ai/internal/sim/blocks"
	"voxelpath.ai/internal/sim/world"
)

type Kind string

const (
	KindAlignToGrid    Kind = "ALIGN_TO_GRID"
	KindWalkTowards    Kind = "WALK_TOWARDS"
	KindJumpMove       Kind = "JUMP_MOVE"
	KindUpwardsMove    Kind = "UPWARDS_MOVE"
	KindDownwardsMove  Kind = "DOWNWARDS_MOVE"
	KindHorizontalMove Kind = "HORIZONTAL_MOVE"
	KindDestroyInRange Kind = "DESTROY_IN_RANGE"
	KindPlantSapling   Kind = "PLANT_SAPLING"
	KindWait           Kind = "WAIT"
)

// Task is one primitive for the executor. Tasks are values and are never
// changed after they are queued.
type Task interface {
	Kind() Kind
}

// AlignToGrid snaps the entity onto the center of Pos.
type AlignToGrid struct {
	Pos world.Pos
}

// WalkTowards walks in a straight line from From to the column (X, Z)
// without leaving From's altitude.
type WalkTowards struct {
	X, Z int
	From world.Pos
}

// JumpMove jumps up into Through and continues to the column (X, Z) at the
// same height.
type JumpMove struct {
	Through world.Pos
	X, Z    int
}

// UpwardsMove climbs one block to Target, placing a block matched by Filter
// underneath when needed.
type UpwardsMove struct {
	Target world.Pos
	Filter ItemFilter
}

type DownwardsMove struct {
	Target world.Pos
}

type HorizontalMove struct {
	Target world.Pos
}

// DestroyInRange mines every block of the box spanned by Low and High.
type DestroyInRange struct {
	Low, High world.Pos
}

type PlantSapling struct {
	Pos  world.Pos
	Wood blocks.WoodType
}

type Wait struct {
	Ticks int
}

func (AlignToGrid) Kind() Kind    { return KindAlignToGrid }
func (WalkTowards) Kind() Kind    { return KindWalkTowards }
func (JumpMove) Kind() Kind       { return KindJumpMove }
func (UpwardsMove) Kind() Kind    { return KindUpwardsMove }
func (DownwardsMove) Kind() Kind  { return KindDownwardsMove }
func (HorizontalMove) Kind() Kind { return KindHorizontalMove }
func (DestroyInRange) Kind() Kind { return KindDestroyInRange }
func (PlantSapling) Kind() Kind   { return KindPlantSapling }
func (Wait) Kind() Kind           { return KindWait }

// Target is the cell the entity stands in after t completes. ok is false for
// tasks that do not move the entity.
func Target(t Task) (p world.Pos, ok bool) {
	switch v := t.(type) {
	case AlignToGrid:
		return v.Pos, true
	case WalkTowards:
		return world.Pos{X: v.X, Y: v.From.Y, Z: v.Z}, true
	case JumpMove:
		return world.Pos{X: v.X, Y: v.Through.Y, Z: v.Z}, true
	case UpwardsMove:
		return v.Target, true
	case DownwardsMove:
		return v.Target, true
	case HorizontalMove:
		return v.Target, true
	}
	return world.Pos{}, false
}
