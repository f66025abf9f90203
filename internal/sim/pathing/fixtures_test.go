package pathing

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"voxelpath.ai/internal/sim/blocks"
	"voxelpath.ai/internal/sim/tasks"
	"voxelpath.ai/internal/sim/world"
	"voxelpath.ai/internal/sim/world/terrain/store"
)

var (
	stone   = blocks.StateOf(blocks.Stone, 0)
	dirt    = blocks.StateOf(blocks.Dirt, 0)
	oakLog  = blocks.StateOf(blocks.Log, 0)
	bedrock = blocks.StateOf(blocks.Bedrock, 0)
	lava    = blocks.StateOf(blocks.Lava, 0)
)

// flatWorld is a 41x41 stone plate, four blocks thick, with its surface at
// y=63 and the player standing on it at the origin column.
func flatWorld(t *testing.T) *store.ChunkStore {
	t.Helper()
	s := store.NewChunkStore(store.Config{MinY: 0, Height: 128})
	s.Fill(world.Pos{X: -20, Y: 60, Z: -20}, world.Pos{X: 20, Y: 63, Z: 20}, stone)
	s.SetPlayerPosition(world.Pos{Y: 64})
	return s
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Radius = 24
	cfg.MinY = 0
	cfg.MaxY = 127
	cfg.Budget = 500
	return cfg
}

// taskOpts compares filters by membership; blocks.Set has no exported
// fields.
var taskOpts = cmp.Options{
	cmp.Comparer(func(a, b blocks.Set) bool { return a.Equal(b) }),
}

func diffTasks(t *testing.T, want, got []tasks.Task) {
	t.Helper()
	if d := cmp.Diff(want, got, taskOpts); d != "" {
		t.Fatalf("tasks mismatch (-want +got):\n%s", d)
	}
}
