package pathing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxelpath.ai/internal/sim/blocks"
	"voxelpath.ai/internal/sim/catalogs"
	"voxelpath.ai/internal/sim/tasks"
	"voxelpath.ai/internal/sim/tuning"
	"voxelpath.ai/internal/sim/world"
	"voxelpath.ai/internal/sim/world/terrain/gen"
	"voxelpath.ai/internal/sim/world/terrain/store"
)

func TestPlanner_GoToOnFlatGround(t *testing.T) {
	w := flatWorld(t)
	p := NewPlanner(w, testConfig(), GoTo{Target: p64(5, 0)})

	res, err := p.Plan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []world.Pos{p64(0, 0), p64(1, 0), p64(2, 0), p64(3, 0), p64(4, 0), p64(5, 0)}, res.Path)
	diffTasks(t, []tasks.Task{
		tasks.AlignToGrid{Pos: p64(0, 0)},
		tasks.WalkTowards{X: 5, Z: 0, From: p64(0, 0)},
	}, res.Tasks)
	assert.GreaterOrEqual(t, res.Steps, 1)
}

func TestPlanner_ClimbsStepWithJump(t *testing.T) {
	w := flatWorld(t)
	w.Fill(world.Pos{X: 3, Y: 64, Z: -20}, world.Pos{X: 20, Y: 64, Z: 20}, stone)
	p := NewPlanner(w, testConfig(), GoTo{Target: world.Pos{X: 5, Y: 65}})

	res, err := p.Plan(context.Background())
	require.NoError(t, err)
	diffTasks(t, []tasks.Task{
		tasks.AlignToGrid{Pos: p64(0, 0)},
		tasks.WalkTowards{X: 2, Z: 0, From: p64(0, 0)},
		tasks.JumpMove{Through: world.Pos{X: 2, Y: 65}, X: 3, Z: 0},
		tasks.WalkTowards{X: 5, Z: 0, From: world.Pos{X: 3, Y: 65}},
	}, res.Tasks)
}

func TestPlanner_PrefersWalkingAroundOverDigging(t *testing.T) {
	w := flatWorld(t)
	// A two-high stone pillar on the straight line.
	w.Fill(world.Pos{X: 2, Y: 64}, world.Pos{X: 2, Y: 65}, stone)
	p := NewPlanner(w, testConfig(), GoTo{Target: p64(4, 0)})
	require.NoError(t, runToEnd(p, 50))

	assert.Len(t, p.Path(), 7)
	assert.NotContains(t, p.Path(), p64(2, 0))
}

func TestPlanner_DigsWhenWalledIn(t *testing.T) {
	w := flatWorld(t)
	w.Fill(world.Pos{X: 2, Y: 64, Z: -20}, world.Pos{X: 2, Y: 65, Z: 20}, dirt)
	p := NewPlanner(w, testConfig(), GoTo{Target: p64(4, 0)})
	require.NoError(t, runToEnd(p, 50))
	assert.Contains(t, p.Path(), p64(2, 0))
}

func TestPlanner_ForbiddenWallMeansNoPath(t *testing.T) {
	w := flatWorld(t)
	w.Fill(world.Pos{X: 2, Y: 60, Z: -20}, world.Pos{X: 2, Y: 70, Z: 20}, blocks.StateOf(blocks.Obsidian, 0))
	cfg := testConfig()
	cfg.MaxY = 72
	p := NewPlanner(w, cfg, GoTo{Target: p64(4, 0)})
	assert.ErrorIs(t, runToEnd(p, 200), ErrNoPath)
	assert.Nil(t, p.Path())

	var q tasks.Queue
	_, err := p.Compile(&q)
	assert.ErrorIs(t, err, ErrNoPath)
}

func TestPlanner_TimeSliced(t *testing.T) {
	w := flatWorld(t)
	p := NewPlanner(w, testConfig(), GoTo{Target: p64(10, 10)})
	p.Start()
	slices := 0
	for {
		done, err := p.Search(5)
		slices++
		if done {
			require.NoError(t, err)
			break
		}
		require.Less(t, slices, 100000)
	}
	assert.Greater(t, slices, 1)
	assert.Equal(t, p64(10, 10), p.Path()[len(p.Path())-1])
}

func TestPlanner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := NewPlanner(flatWorld(t), testConfig(), GoTo{Target: p64(3, 0)})
	_, err := p.Plan(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlanner_MoveStaysPut(t *testing.T) {
	p := NewPlanner(flatWorld(t), testConfig(), nil)
	res, err := p.Plan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []world.Pos{p64(0, 0)}, res.Path)
	diffTasks(t, []tasks.Task{tasks.AlignToGrid{Pos: p64(0, 0)}}, res.Tasks)
}

func TestPlanner_HarvestsTree(t *testing.T) {
	w := flatWorld(t)
	for y := 64; y <= 68; y++ {
		w.SetBlock(3, y, 0, oakLog)
	}
	p := NewPlanner(w, testConfig(), &Tree{})
	res, err := p.Plan(context.Background())
	require.NoError(t, err)
	diffTasks(t, []tasks.Task{
		tasks.AlignToGrid{Pos: p64(0, 0)},
		tasks.WalkTowards{X: 2, Z: 0, From: p64(0, 0)},
		tasks.HorizontalMove{Target: p64(3, 0)},
		tasks.DestroyInRange{Low: world.Pos{X: 3, Y: 66}, High: world.Pos{X: 3, Y: 68}},
		tasks.Wait{Ticks: 8},
	}, res.Tasks)
}

func TestPlanner_FindsGeneratedTree(t *testing.T) {
	oak := blocks.Oak
	terrain := &gen.Terrain{Seed: 7, MinY: 0, BaseY: 63, TreePermille: 1000, Wood: &oak}
	w := store.NewChunkStore(store.Config{MinY: 0, Height: 128, Gen: terrain})
	w.SetPlayerPosition(world.Pos{Y: 64})

	p := NewPlanner(w, testConfig(), &Tree{Wood: &oak})
	res, err := p.Plan(context.Background())
	require.NoError(t, err)

	end := res.Path[len(res.Path)-1]
	tree, ok := terrain.TreeAt(end.X, end.Z)
	require.True(t, ok, "destination %v is not a trunk column", end)
	assert.Equal(t, tree.BaseY, end.Y)
	last := res.Tasks[len(res.Tasks)-1]
	assert.Equal(t, tasks.KindWait, last.Kind())
}

func TestNewConfig(t *testing.T) {
	cat := catalogs.Default().Blocks
	s := tuning.Default()
	s.UpwardsPlaceBlock = []string{"planks"}
	s.Search.Radius = 9
	cfg, err := NewConfig(s, cat)
	require.NoError(t, err)
	assert.True(t, cfg.UpwardsBuild.ContainsID(blocks.Planks))
	assert.False(t, cfg.UpwardsBuild.ContainsID(blocks.Dirt))
	assert.True(t, cfg.Forbidden.Equal(blocks.DefaultForbidden))
	assert.Equal(t, 9, cfg.Radius)

	s.BlacklistedBlocks = []string{"unobtainium"}
	_, err = NewConfig(s, cat)
	assert.ErrorContains(t, err, "unknown block")
}

func runToEnd(p *Planner, budget int) error {
	p.Start()
	for {
		done, err := p.Search(budget)
		if done {
			return err
		}
	}
}
