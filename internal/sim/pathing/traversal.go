package pathing

import (
	"voxelpath.ai/internal/sim/blocks"
	"voxelpath.ai/internal/sim/world"
)

// Traversal decides which moves are safe and what they cost. All sets are
// derived once from the Config; forbidden blocks are removed from the
// allowed sets here and cannot come back.
type Traversal struct {
	footAllowed      blocks.Set
	headAllowed      blocks.Set
	ground           blocks.Set
	groundForUpwards blocks.Set
	shortFoot        blocks.Set
	shortHead        blocks.Set
}

func NewTraversal(cfg Config) Traversal {
	allowed := blocks.SafeAfterDestruction.Union(blocks.SafeCeiling).Union(blocks.Falling)
	notForbidden := cfg.Forbidden.Invert()
	return Traversal{
		footAllowed:      allowed.Intersect(notForbidden).Named("foot_allowed"),
		headAllowed:      allowed.Intersect(notForbidden).Named("head_allowed"),
		ground:           blocks.SafeGround,
		groundForUpwards: blocks.SafeGround.Union(blocks.FeetCanWalkThrough).Named("ground_for_upwards"),
		shortFoot:        blocks.FeetCanWalkThrough,
		shortHead:        blocks.HeadCanWalkThrough,
	}
}

// WithPassThrough returns a copy that also treats extra as free to walk
// through when pricing moves. Admissibility is unchanged.
func (t Traversal) WithPassThrough(extra blocks.Set) Traversal {
	t.shortFoot = t.shortFoot.Union(extra)
	t.shortHead = t.shortHead.Union(extra)
	return t
}

// SafeToTravel reports whether the entity may step from `from` into `to`.
func (t Traversal) SafeToTravel(w blocks.Reader, from, to world.Pos) bool {
	return blocks.SafeSideAround(w, to.X, to.Y+1, to.Z) &&
		t.allowedPosition(w, to) &&
		blocks.SafeSideAround(w, to.X, to.Y, to.Z) &&
		t.headClear(w, from, to) &&
		t.groundOK(w, from, to)
}

func (t Traversal) allowedPosition(w blocks.Reader, p world.Pos) bool {
	return t.footAllowed.IsAt(w, p.X, p.Y, p.Z) &&
		t.headAllowed.IsAt(w, p.X, p.Y+1, p.Z)
}

func (t Traversal) headClear(w blocks.Reader, from, to world.Pos) bool {
	if from.Y > to.Y {
		if from.X != to.X || from.Z != to.Z {
			// Stepping down off a ledge passes through the cell above the
			// target head.
			return blocks.SafeCeiling.IsAt(w, to.X, to.Y+3, to.Z) &&
				blocks.HeadCanWalkThrough.IsAt(w, to.X, to.Y+2, to.Z)
		}
		if blocks.Falling.IsAt(w, to.X, to.Y+2, to.Z) {
			// Digging down: sand and gravel follow into the vacated cell.
			return true
		}
	}
	return blocks.SafeCeiling.IsAt(w, to.X, to.Y+2, to.Z)
}

func (t Traversal) groundOK(w blocks.Reader, from, to world.Pos) bool {
	if from.Y < to.Y {
		return t.groundForUpwards.IsAt(w, to.X, to.Y-1, to.Z)
	}
	return t.ground.IsAt(w, to.X, to.Y-1, to.Z)
}

// Cost is one per step plus the material that must be removed: the floor
// cell when level or descending, the head cell when level or ascending.
func (t Traversal) Cost(w blocks.Reader, from, to world.Pos) int {
	d := 1
	if from.Y >= to.Y {
		d += t.MaterialDistance(w, to, true)
	}
	if from.Y <= to.Y {
		d += t.MaterialDistance(w, to.Up(1), false)
	}
	return d
}

// MaterialDistance prices clearing p: 0 if it can be walked through, 1 if it
// is quick to dig, 2 otherwise.
func (t Traversal) MaterialDistance(w blocks.Reader, p world.Pos, asFloor bool) int {
	short := t.shortHead
	if asFloor {
		short = t.shortFoot
	}
	switch {
	case short.IsAt(w, p.X, p.Y, p.Z):
		return 0
	case blocks.FastDestructible.IsAt(w, p.X, p.Y, p.Z):
		return 1
	default:
		return 2
	}
}

// Passable reports whether the foot (asFloor) or head cell at p needs no
// digging.
func (t Traversal) Passable(w blocks.Reader, p world.Pos, asFloor bool) bool {
	return t.MaterialDistance(w, p, asFloor) == 0
}

// AreaClear reports whether the flat rectangle between a and b can be walked
// in a straight line: same altitude, safe ground below, room for feet and
// head, and a safe ceiling above every cell.
func AreaClear(w blocks.Reader, a, b world.Pos) bool {
	if a.Y != b.Y {
		return false
	}
	lo, hi := world.MinPos(a, b), world.MaxPos(a, b)
	y := a.Y
	for x := lo.X; x <= hi.X; x++ {
		for z := lo.Z; z <= hi.Z; z++ {
			if !blocks.SafeGround.IsAt(w, x, y-1, z) ||
				!blocks.SafeCeiling.IsAt(w, x, y+2, z) ||
				!blocks.FeetCanWalkThrough.IsAt(w, x, y, z) ||
				!blocks.HeadCanWalkThrough.IsAt(w, x, y+1, z) {
				return false
			}
		}
	}
	return true
}
