package pathing

import (
	"go.uber.org/zap"

	"voxelpath.ai/internal/sim/blocks"
	"voxelpath.ai/internal/sim/world"
)

// Estimate replays path on a shadow world and returns the predicted ticks:
// every foot or head cell that cannot be walked through is mined, a block
// is placed under each climb that has no ground, and each waypoint is
// walked to. The real world is not touched.
func (p *Planner) Estimate(hardness world.Hardness) int {
	return estimatePath(p.view, hardness, p.trav, p.cfg.UpwardsBuild, p.path, p.log)
}

func estimatePath(view world.View, hardness world.Hardness, trav Traversal, upwards blocks.Set, path []world.Pos, log *zap.Logger) int {
	if len(path) < 2 {
		return 0
	}
	rec := world.NewRecording(view, hardness, world.WithRecordingLogger(log))
	air := blocks.StateOf(blocks.Air, 0)
	fill := buildBlock(upwards)
	prev := path[0]
	for _, wp := range path[1:] {
		if !trav.Passable(rec, wp, true) {
			rec.SetBlock(wp.X, wp.Y, wp.Z, air)
		}
		head := wp.Up(1)
		if !trav.Passable(rec, head, false) {
			rec.SetBlock(head.X, head.Y, head.Z, air)
		}
		if wp.Y > prev.Y && !blocks.SafeGround.IsAt(rec, wp.X, wp.Y-1, wp.Z) {
			rec.SetBlock(wp.X, wp.Y-1, wp.Z, fill)
		}
		rec.SetPlayerPosition(wp)
		prev = wp
	}
	return rec.TimeInTicks()
}

// buildBlock is the block assumed to be placed when climbing.
func buildBlock(upwards blocks.Set) blocks.State {
	ids := upwards.IDs()
	if len(ids) == 0 {
		return blocks.StateOf(blocks.Cobblestone, 0)
	}
	return blocks.StateOf(ids[0], 0)
}
