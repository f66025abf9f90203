package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxelpath.ai/internal/sim/world"
)

// planePolicy walks on the y=0 plane; walls block cells and goals map a
// cell to a fixed bonus subtracted from the distance-based rating.
type planePolicy struct {
	walls map[world.Pos]bool
	goals map[world.Pos]float64
	rated int
}

func (p *planePolicy) Admissible(_, to world.Pos) bool {
	return to.Y == 0 && !p.walls[to]
}

func (p *planePolicy) Cost(_, _ world.Pos) int { return 1 }

func (p *planePolicy) Rate(distance int, at world.Pos) float64 {
	p.rated++
	offset, ok := p.goals[at]
	if !ok {
		return Reject
	}
	return float64(distance) + offset
}

func wallLine(x int, zs ...int) map[world.Pos]bool {
	m := map[world.Pos]bool{}
	for _, z := range zs {
		m[world.Pos{X: x, Z: z}] = true
	}
	return m
}

func TestEngine_StraightPathIncludesOrigin(t *testing.T) {
	pol := &planePolicy{goals: map[world.Pos]float64{{X: 3}: 0}}
	e := NewEngine(pol)
	e.Start(world.Pos{})
	require.Equal(t, StatusFound, e.Step(1000))

	assert.Equal(t, []world.Pos{{}, {X: 1}, {X: 2}, {X: 3}}, e.Path())
	dest, rating, ok := e.Best()
	require.True(t, ok)
	assert.Equal(t, world.Pos{X: 3}, dest)
	assert.Equal(t, 3.0, rating)
}

func TestEngine_DetoursAroundWall(t *testing.T) {
	pol := &planePolicy{
		walls: wallLine(1, -1, 0, 1),
		goals: map[world.Pos]float64{{X: 2}: 0},
	}
	e := NewEngine(pol)
	e.Start(world.Pos{})
	require.Equal(t, StatusFound, e.Step(10000))

	path := e.Path()
	require.NotEmpty(t, path)
	assert.Equal(t, world.Pos{}, path[0])
	assert.Equal(t, world.Pos{X: 2}, path[len(path)-1])
	assert.Len(t, path, 7, "shortest detour is 6 steps")
	for i := 1; i < len(path); i++ {
		assert.Equal(t, 1, world.Manhattan(path[i-1], path[i]))
		assert.False(t, pol.walls[path[i]])
	}
}

func TestEngine_TimeSlicedMatchesSingleRun(t *testing.T) {
	goals := map[world.Pos]float64{{X: 4, Z: 3}: 0}
	walls := wallLine(2, -2, -1, 0, 1, 2)

	whole := NewEngine(&planePolicy{walls: walls, goals: goals})
	whole.Start(world.Pos{})
	require.Equal(t, StatusFound, whole.Step(1<<20))

	sliced := NewEngine(&planePolicy{walls: walls, goals: goals})
	sliced.Start(world.Pos{})
	calls := 0
	status := StatusNeedMoreTime
	for status == StatusNeedMoreTime {
		status = sliced.Step(2)
		calls++
		require.Less(t, calls, 10000)
	}
	assert.Equal(t, StatusFound, status)
	assert.Greater(t, calls, 1)
	assert.Equal(t, whole.Path(), sliced.Path())
	assert.Equal(t, whole.Expanded(), sliced.Expanded())

	// Once finished, further steps are no-ops.
	assert.Equal(t, StatusFound, sliced.Step(5))
}

func TestEngine_PrefersBetterRatingOverNearerGoal(t *testing.T) {
	pol := &planePolicy{goals: map[world.Pos]float64{
		{X: 1}: 20,
		{X: 5}: 2,
	}}
	e := NewEngine(pol)
	e.Start(world.Pos{})
	require.Equal(t, StatusFound, e.Step(100000))
	dest, rating, _ := e.Best()
	assert.Equal(t, world.Pos{X: 5}, dest)
	assert.Equal(t, 7.0, rating)
}

func TestEngine_ExhaustedWhenBoundedWithoutGoal(t *testing.T) {
	pol := &planePolicy{}
	e := NewEngine(pol, WithBounds(3, -1, 1))
	e.Start(world.Pos{X: 10, Z: 10})

	status := StatusNeedMoreTime
	for i := 0; i < 100 && status == StatusNeedMoreTime; i++ {
		status = e.Step(8)
	}
	assert.Equal(t, StatusExhausted, status)
	assert.Nil(t, e.Path())
	assert.Equal(t, 49, e.Nodes(), "7x7 field")
	assert.Equal(t, 49, pol.rated)
}

func TestEngine_EnclosedOriginIsExhausted(t *testing.T) {
	walls := map[world.Pos]bool{{X: 1}: true, {X: -1}: true, {Z: 1}: true, {Z: -1}: true}
	e := NewEngine(&planePolicy{walls: walls})
	e.Start(world.Pos{})
	assert.Equal(t, StatusExhausted, e.Step(10))
	assert.Equal(t, 1, e.Expanded())
}

func TestEngine_NodeHandlesAreUnique(t *testing.T) {
	e := NewEngine(&planePolicy{}, WithBounds(2, 0, 0))
	e.Start(world.Pos{})
	e.Step(1000)

	seen := map[world.Pos]NodeID{}
	for id := NodeID(0); int(id) < e.Nodes(); id++ {
		p, ok := e.Pos(id)
		require.True(t, ok)
		_, dup := seen[p]
		require.False(t, dup, "position %v has two handles", p)
		seen[p] = id
		back, ok := e.Lookup(p)
		require.True(t, ok)
		assert.Equal(t, id, back)
	}
	_, ok := e.Pos(NodeID(e.Nodes()))
	assert.False(t, ok)
}

func TestEngine_OriginOutsideBounds(t *testing.T) {
	e := NewEngine(&planePolicy{}, WithBounds(4, 10, 20))
	e.Start(world.Pos{Y: 0})
	assert.Equal(t, StatusExhausted, e.Status())
	assert.Equal(t, StatusExhausted, e.Step(10))
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "NEED_MORE_TIME", StatusNeedMoreTime.String())
	assert.Equal(t, "FOUND", StatusFound.String())
	assert.Equal(t, "EXHAUSTED", StatusExhausted.String())
}
