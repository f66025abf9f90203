package pathing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxelpath.ai/internal/sim/blocks"
	"voxelpath.ai/internal/sim/catalogs"
	"voxelpath.ai/internal/sim/tuning"
	"voxelpath.ai/internal/sim/world"
)

func TestSafeToTravel_FlatGround(t *testing.T) {
	w := flatWorld(t)
	tr := NewTraversal(DefaultConfig())
	from := world.Pos{Y: 64}

	assert.True(t, tr.SafeToTravel(w, from, world.Pos{X: 1, Y: 64}))
	assert.False(t, tr.SafeToTravel(w, world.Pos{X: 1, Y: 65}, world.Pos{X: 2, Y: 65}), "no ground under a floating cell")
	assert.True(t, tr.SafeToTravel(w, from, world.Pos{Y: 65}), "climbing in place builds its own floor")
	assert.True(t, tr.SafeToTravel(w, from, world.Pos{Y: 63}), "digging down into stone")
	assert.False(t, tr.SafeToTravel(w, world.Pos{X: 20, Y: 64}, world.Pos{X: 21, Y: 64}), "edge of the plate")
}

func TestSafeToTravel_ForbiddenNeverPasses(t *testing.T) {
	tr := NewTraversal(DefaultConfig())
	from := world.Pos{Y: 64}
	to := world.Pos{X: 1, Y: 64}

	for _, cell := range []world.Pos{to, to.Up(1)} {
		for _, id := range blocks.DefaultForbidden.IDs() {
			w := flatWorld(t)
			w.SetBlock(cell.X, cell.Y, cell.Z, blocks.StateOf(id, 0))
			assert.False(t, tr.SafeToTravel(w, from, to), "%v at %v", id, cell)
		}
	}
}

func TestSafeToTravel_ConfiguredForbidden(t *testing.T) {
	s := tuning.Default()
	s.BlacklistedBlocks = []string{"dirt"}
	cfg, err := NewConfig(s, catalogs.Default().Blocks)
	require.NoError(t, err)

	w := flatWorld(t)
	w.SetBlock(1, 64, 0, dirt)
	assert.False(t, NewTraversal(cfg).SafeToTravel(w, world.Pos{Y: 64}, world.Pos{X: 1, Y: 64}))
	assert.True(t, NewTraversal(DefaultConfig()).SafeToTravel(w, world.Pos{Y: 64}, world.Pos{X: 1, Y: 64}))

	// A configured list replaces the defaults.
	w2 := flatWorld(t)
	w2.SetBlock(1, 64, 0, bedrock)
	assert.True(t, NewTraversal(cfg).SafeToTravel(w2, world.Pos{Y: 64}, world.Pos{X: 1, Y: 64}))
}

func TestSafeToTravel_DangerAround(t *testing.T) {
	tr := NewTraversal(DefaultConfig())
	w := flatWorld(t)
	w.SetBlock(2, 65, 0, lava)
	assert.False(t, tr.SafeToTravel(w, world.Pos{Y: 64}, world.Pos{X: 1, Y: 64}), "lava next to head")

	w = flatWorld(t)
	w.SetBlock(1, 66, 0, blocks.StateOf(blocks.Gravel, 0))
	assert.False(t, tr.SafeToTravel(w, world.Pos{Y: 64}, world.Pos{X: 1, Y: 64}), "gravel would fall on us")
}

func TestSafeToTravel_DigDownUnderFallingBlock(t *testing.T) {
	tr := NewTraversal(DefaultConfig())
	w := flatWorld(t)
	w.SetBlock(0, 65, 0, blocks.StateOf(blocks.Sand, 0))
	assert.True(t, tr.SafeToTravel(w, world.Pos{Y: 64}, world.Pos{Y: 63}))
}

func TestSafeToTravel_StepDownNeedsRoomAbove(t *testing.T) {
	tr := NewTraversal(DefaultConfig())
	w := flatWorld(t)
	w.Fill(world.Pos{X: 1, Y: 63, Z: -20}, world.Pos{X: 20, Y: 63, Z: 20}, blocks.StateOf(blocks.Air, 0))
	from := world.Pos{Y: 64}
	to := world.Pos{X: 1, Y: 63}
	assert.True(t, tr.SafeToTravel(w, from, to))

	w.SetBlock(1, 65, 0, dirt)
	assert.False(t, tr.SafeToTravel(w, from, to), "cell above the target head must be walkable")
}

func TestCostAndMaterialDistance(t *testing.T) {
	tr := NewTraversal(DefaultConfig())
	w := flatWorld(t)
	from := world.Pos{Y: 64}

	assert.Equal(t, 1, tr.Cost(w, from, world.Pos{X: 1, Y: 64}))
	assert.Equal(t, 3, tr.Cost(w, from, world.Pos{Y: 63}), "stone floor")
	assert.Equal(t, 1, tr.Cost(w, from, world.Pos{Y: 65}))

	w.SetBlock(1, 65, 0, dirt)
	assert.Equal(t, 2, tr.Cost(w, from, world.Pos{X: 1, Y: 64}), "dirt in the head cell")
	assert.Equal(t, 1, tr.MaterialDistance(w, world.Pos{X: 1, Y: 65}, false))
	assert.Equal(t, 2, tr.MaterialDistance(w, world.Pos{Y: 63}, true))
	assert.Equal(t, 0, tr.MaterialDistance(w, world.Pos{Y: 64}, true))

	w.SetBlock(2, 64, 0, oakLog)
	assert.Equal(t, 2, tr.MaterialDistance(w, world.Pos{X: 2, Y: 64}, true))
	assert.Equal(t, 0, tr.WithPassThrough(blocks.TreeStuff).MaterialDistance(w, world.Pos{X: 2, Y: 64}, true))
}

func TestAreaClear(t *testing.T) {
	w := flatWorld(t)
	a := world.Pos{X: -2, Y: 64, Z: -2}
	b := world.Pos{X: 3, Y: 64, Z: 4}
	require.True(t, AreaClear(w, a, b))
	assert.True(t, AreaClear(w, b, a))
	assert.False(t, AreaClear(w, a, b.Up(1)), "altitude must be constant")

	for _, breaker := range []struct {
		pos world.Pos
		st  blocks.State
	}{
		{world.Pos{X: 1, Y: 63, Z: 1}, blocks.StateOf(blocks.Air, 0)},
		{world.Pos{X: 1, Y: 64, Z: 1}, stone},
		{world.Pos{X: 1, Y: 65, Z: 1}, blocks.StateOf(blocks.SnowLayer, 0)},
		{world.Pos{X: 1, Y: 66, Z: 1}, blocks.StateOf(blocks.Sand, 0)},
	} {
		w := flatWorld(t)
		w.SetBlock(breaker.pos.X, breaker.pos.Y, breaker.pos.Z, breaker.st)
		assert.False(t, AreaClear(w, a, b), "%v at %v", breaker.st, breaker.pos)
	}
}

func TestSafeToTravel_ClimbCeiling(t *testing.T) {
	tr := NewTraversal(DefaultConfig())
	from := world.Pos{Y: 64}
	to := world.Pos{Y: 65}

	for _, tc := range []struct {
		name string
		st   blocks.State
		want bool
	}{
		{"air", blocks.StateOf(blocks.Air, 0), true},
		{"stone", stone, true},
		{"gravel", blocks.StateOf(blocks.Gravel, 0), false},
		{"sand", blocks.StateOf(blocks.Sand, 0), false},
		{"water", blocks.StateOf(blocks.Water, 0), false},
		{"lava", lava, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			w := flatWorld(t)
			w.SetBlock(0, 67, 0, tc.st)
			assert.Equal(t, tc.want, tr.SafeToTravel(w, from, to))
		})
	}
}

func TestPlanner_KeepsForbiddenAcrossReload(t *testing.T) {
	cat := catalogs.Default().Blocks
	s := tuning.Default()
	s.BlacklistedBlocks = []string{"dirt"}
	cfg, err := NewConfig(s, cat)
	require.NoError(t, err)

	w := flatWorld(t)
	w.SetBlock(1, 64, 0, dirt)
	from, to := world.Pos{Y: 64}, world.Pos{X: 1, Y: 64}
	p := NewPlanner(w, cfg, GoTo{Target: world.Pos{X: 3, Y: 64}})
	require.False(t, p.Admissible(from, to))

	for _, tc := range []struct {
		name      string
		blacklist []string
	}{
		{"defaults", nil},
		{"empty", []string{}},
		{"other block", []string{"stone"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			reloaded := tuning.Default()
			reloaded.BlacklistedBlocks = tc.blacklist
			next, err := NewConfig(reloaded, cat)
			require.NoError(t, err)

			assert.True(t, NewPlanner(w, next, GoTo{Target: world.Pos{X: 3, Y: 64}}).Admissible(from, to))
			assert.False(t, p.Admissible(from, to), "running planner keeps its forbidden set")
		})
	}
}
