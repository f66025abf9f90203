package pathing

import (
	"go.uber.org/zap"

	"voxelpath.ai/internal/sim/blocks"
	"voxelpath.ai/internal/sim/tasks"
	"voxelpath.ai/internal/sim/world"
)

// MaxShortcut is the most waypoints one WalkTowards may absorb.
const MaxShortcut = 40

// Compiler turns a waypoint path into movement tasks.
type Compiler struct {
	World        blocks.Reader
	UpwardsBuild blocks.Set
	Destination  Destination
	Log          *zap.Logger
}

// Compile emits the tasks for path into sink and returns the final
// position. The first waypoint is where the entity stands; it is aligned
// to, not walked to. An empty path emits nothing.
func (c Compiler) Compile(path []world.Pos, sink tasks.Sink) world.Pos {
	log := c.Log
	if log == nil {
		log = zap.NewNop()
	}
	if len(path) == 0 {
		return world.Pos{}
	}
	cur := path[0]
	rest := path[1:]
	sink.AddTask(tasks.AlignToGrid{Pos: cur})

	for len(rest) > 0 {
		next := rest[0]
		rest = rest[1:]
		dir, hasDir := direction(cur, next)

		folded := 0
		for len(rest) > 0 && folded < MaxShortcut && AreaClear(c.World, cur, rest[0]) {
			next = rest[0]
			rest = rest[1:]
			folded++
		}

		switch {
		case folded > 0:
			log.Debug("shortcut", zap.Stringer("from", cur), zap.Stringer("to", next), zap.Int("folded", folded))
			sink.AddTask(tasks.WalkTowards{X: next.X, Z: next.Z, From: cur})
		case hasDir && dir == world.Up && len(rest) > 0 && rest[0].Y == next.Y:
			peeked := rest[0]
			rest = rest[1:]
			sink.AddTask(tasks.JumpMove{Through: next, X: peeked.X, Z: peeked.Z})
			next = peeked
		case next.Y > cur.Y:
			sink.AddTask(tasks.UpwardsMove{Target: next, Filter: tasks.BlockItemFilter{Blocks: c.UpwardsBuild}})
		case next.Y < cur.Y && next.X == cur.X && next.Z == cur.Z:
			sink.AddTask(tasks.DownwardsMove{Target: next})
		default:
			sink.AddTask(tasks.HorizontalMove{Target: next})
		}
		cur = next
	}

	if c.Destination != nil {
		c.Destination.Arrived(c.World, cur, sink)
	}
	return cur
}

// direction is the facing of the step from cur to next. A step that moves
// both vertically and horizontally counts as horizontal.
func direction(cur, next world.Pos) (world.Facing, bool) {
	d := next.Sub(cur)
	if d.Y != 0 && (d.X != 0 || d.Z != 0) {
		d.Y = 0
	}
	return world.DirectionFor(d)
}
