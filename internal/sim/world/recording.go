package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"voxelpath.ai/internal/sim/blocks"
)

const (
	// TimeToPlace is the fixed tick cost of placing any non-air block.
	TimeToPlace = 5
	// TimeToSettle is charged when the player "moves" onto its own cell.
	TimeToSettle = 5
	// UnbreakableTicks is charged for blocks the entity cannot damage.
	UnbreakableTicks = 1 << 20
)

// Recording is a shadow world: edits and moves land in a Delta overlay and
// are charged against a predicted tick count. A fresh Recording is meant to
// be used for one estimation and then dropped.
type Recording struct {
	*Delta

	hardness Hardness
	log      *zap.Logger
	ticks    int
}

type RecordingOption func(*Recording)

func WithRecordingLogger(l *zap.Logger) RecordingOption {
	return func(r *Recording) {
		if l != nil {
			r.log = l
		}
	}
}

func NewRecording(base View, hardness Hardness, opts ...RecordingOption) *Recording {
	r := &Recording{
		Delta:    NewDelta(base),
		hardness: hardness,
		log:      zap.NewNop(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// SetBlock charges the destruction time of the current block (if any) and
// the placement time of st (if not air), then records the override.
func (r *Recording) SetBlock(x, y, z int, st blocks.State) {
	cur := r.Delta.BlockStateAt(x, y, z)
	if !cur.IsAir() {
		r.ticks += r.timeToDestroy(Pos{X: x, Y: y, Z: z}, cur)
	}
	if !st.IsAir() {
		r.ticks += TimeToPlace
	}
	r.Delta.SetBlock(x, y, z, st)
}

func (r *Recording) timeToDestroy(p Pos, st blocks.State) int {
	h := 0.0
	if r.hardness != nil {
		h = r.hardness.RelativeHardness(p, st)
	}
	if h <= 0 || math.IsNaN(h) {
		r.log.Debug("block cannot be destroyed", zap.Stringer("pos", p), zap.Stringer("block", st))
		return UnbreakableTicks
	}
	// The epsilon keeps 1/(1/15) from rounding up to 16.
	t := int(math.Ceil(1/h - 1e-9))
	r.log.Debug("time to destroy block", zap.Stringer("pos", p), zap.Stringer("block", st), zap.Int("ticks", t))
	return t
}

// SetPlayerPosition charges the walking time from the current position.
func (r *Recording) SetPlayerPosition(p Pos) {
	r.ticks += timeToWalk(p, r.Delta.PlayerPosition())
	r.Delta.SetPlayerPosition(p)
}

// timeToWalk uses the distance over the x/y components only, matching the
// footwork cost model rather than a straight 3-D flight.
func timeToWalk(p1, p2 Pos) int {
	if p1 == p2 {
		return TimeToSettle
	}
	dist := mgl64.Vec2{float64(p1.X - p2.X), float64(p1.Y - p2.Y)}.Len()
	return int(math.Ceil((1 + dist/4) * 20))
}

// TimeInTicks is the accumulated predicted cost.
func (r *Recording) TimeInTicks() int { return r.ticks }
