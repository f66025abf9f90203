package place

import (
	"go.uber.org/zap"

	"voxelpath.ai/internal/sim/blocks"
	"voxelpath.ai/internal/sim/tasks"
	"voxelpath.ai/internal/sim/world"
)

const KindJumpingPlaceAtHalf tasks.Kind = "JUMPING_PLACE_AT_HALF"

// Side selects which half of the target cell the placed block must occupy
// (slabs and stairs).
type Side int

const (
	LowerHalf Side = iota
	UpperHalf
)

func (s Side) String() string {
	if s == UpperHalf {
		return "UPPER_HALF"
	}
	return "LOWER_HALF"
}

var (
	TryForLower = []world.Facing{world.Down, world.East, world.North, world.West, world.South}
	TryForUpper = []world.Facing{world.East, world.North, world.West, world.South}
)

// Facer turns the entity towards a face of a block. MinY and MaxY bound the
// aim point inside the face, as fractions of the block height.
type Facer interface {
	FaceSideOf(block world.Pos, side world.Facing, minY, maxY float64)
}

// JumpingPlaceAtHalf places a block into Pos while the entity jumps out of
// it, aiming at a neighbour so the block lands in the requested half.
type JumpingPlaceAtHalf struct {
	Pos    world.Pos
	Filter tasks.ItemFilter
	Side   Side

	log      *zap.Logger
	attempts int
}

func NewJumpingPlaceAtHalf(pos world.Pos, filter tasks.ItemFilter, side Side, log *zap.Logger) *JumpingPlaceAtHalf {
	if log == nil {
		log = zap.NewNop()
	}
	return &JumpingPlaceAtHalf{Pos: pos, Filter: filter, Side: side, log: log}
}

func (t *JumpingPlaceAtHalf) Kind() tasks.Kind { return KindJumpingPlaceAtHalf }

func (t *JumpingPlaceAtHalf) BuildDirs() []world.Facing {
	if t.Side == UpperHalf {
		return TryForUpper
	}
	return TryForLower
}

// FaceBlock aims at the next usable neighbour. Attempts continue where the
// previous call stopped, so a retry never repeats the direction that just
// failed. When every direction is air the task desyncs.
func (t *JumpingPlaceAtHalf) FaceBlock(w blocks.Reader, f Facer, ops tasks.Operations) error {
	dirs := t.BuildDirs()
	for range dirs {
		dir := dirs[t.attempts%len(dirs)]
		t.attempts++
		if t.faceSide(w, f, dir) {
			return nil
		}
	}
	err := tasks.Desync("Could not face anywhere to place.")
	ops.Desync(err)
	return err
}

func (t *JumpingPlaceAtHalf) faceSide(w blocks.Reader, f Facer, dir world.Facing) bool {
	neighbour := t.Pos.Offset(dir)
	if blocks.AirSet.IsAt(w, neighbour.X, neighbour.Y, neighbour.Z) {
		t.log.Debug("facing side skipped", zap.Stringer("dir", dir), zap.Stringer("block", neighbour))
		return false
	}
	t.log.Debug("facing side", zap.Stringer("dir", dir), zap.Stringer("block", neighbour))
	minY, maxY := 0.0, 1.0
	if sideFor(dir) == UpperHalf {
		minY = 0.5
	} else {
		maxY = 0.5
	}
	f.FaceSideOf(neighbour, dir.Opposite(), minY, maxY)
	return true
}

// sideFor is the half of the neighbour's face that puts the new block into
// the right half: the top of the block below, the lower half of a wall.
func sideFor(dir world.Facing) Side {
	if dir == world.Down {
		return UpperHalf
	}
	return LowerHalf
}

// IsFacingRightBlock reports whether any build direction is currently aimed
// at, according to isFacing.
func (t *JumpingPlaceAtHalf) IsFacingRightBlock(isFacing func(world.Facing) bool) bool {
	for _, d := range t.BuildDirs() {
		if isFacing(d) {
			return true
		}
	}
	return false
}

// Attempts is the number of directions tried so far.
func (t *JumpingPlaceAtHalf) Attempts() int { return t.attempts }
