package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxelpath.ai/internal/sim/blocks"
)

type mapView struct {
	blocks map[Pos]blocks.State
	player Pos
}

func (m *mapView) BlockStateAt(x, y, z int) blocks.State { return m.blocks[Pos{X: x, Y: y, Z: z}] }
func (m *mapView) PlayerPosition() Pos                   { return m.player }

func constHardness(h float64) Hardness {
	return HardnessFunc(func(Pos, blocks.State) float64 { return h })
}

func TestRecording_SetBlockChargesDestroyAndPlace(t *testing.T) {
	base := &mapView{blocks: map[Pos]blocks.State{
		{X: 1, Y: 64, Z: 0}: blocks.StateOf(blocks.Dirt, 0),
	}}
	r := NewRecording(base, constHardness(0.5))

	r.SetBlock(1, 64, 0, blocks.StateOf(blocks.Air, 0))
	assert.Equal(t, 2, r.TimeInTicks())

	r.SetBlock(1, 64, 0, blocks.StateOf(blocks.Stone, 0))
	assert.Equal(t, 2+TimeToPlace, r.TimeInTicks(), "air cell: placement only")

	r.SetBlock(1, 64, 0, blocks.StateOf(blocks.Cobblestone, 0))
	assert.Equal(t, 2+TimeToPlace+2+TimeToPlace, r.TimeInTicks())

	// The base world is untouched.
	assert.Equal(t, blocks.StateOf(blocks.Dirt, 0), base.BlockStateAt(1, 64, 0))
	assert.Equal(t, blocks.StateOf(blocks.Cobblestone, 0), r.BlockStateAt(1, 64, 0))
}

func TestRecording_SetBlockNonAirOverNonAir(t *testing.T) {
	base := &mapView{blocks: map[Pos]blocks.State{
		{X: 0, Y: 0, Z: 0}: blocks.StateOf(blocks.Stone, 0),
	}}
	r := NewRecording(base, constHardness(0.5))
	r.SetBlock(0, 0, 0, blocks.StateOf(blocks.Dirt, 0))
	assert.Equal(t, 7, r.TimeInTicks())
}

func TestRecording_Unbreakable(t *testing.T) {
	base := &mapView{blocks: map[Pos]blocks.State{
		{X: 0, Y: 0, Z: 0}: blocks.StateOf(blocks.Bedrock, 0),
	}}
	r := NewRecording(base, constHardness(0))
	r.SetBlock(0, 0, 0, blocks.StateOf(blocks.Air, 0))
	assert.Equal(t, UnbreakableTicks, r.TimeInTicks())
}

func TestRecording_Walk(t *testing.T) {
	base := &mapView{player: Pos{X: 0, Y: 64, Z: 0}}
	r := NewRecording(base, nil)

	r.SetPlayerPosition(Pos{X: 4, Y: 64, Z: 0})
	require.Equal(t, 40, r.TimeInTicks())
	assert.Equal(t, Pos{X: 4, Y: 64, Z: 0}, r.PlayerPosition())

	r.SetPlayerPosition(Pos{X: 4, Y: 64, Z: 0})
	assert.Equal(t, 45, r.TimeInTicks())

	// One step sideways: ceil((1 + 1/4) * 20) = 25.
	r.SetPlayerPosition(Pos{X: 5, Y: 64, Z: 0})
	assert.Equal(t, 70, r.TimeInTicks())

	assert.Equal(t, Pos{X: 0, Y: 64, Z: 0}, base.PlayerPosition())
}

func TestDelta_Overrides(t *testing.T) {
	base := &mapView{blocks: map[Pos]blocks.State{}, player: Pos{Y: 3}}
	d := NewDelta(base)
	d.SetBlock(1, 2, 3, blocks.StateOf(blocks.Log, 1))
	assert.Equal(t, blocks.StateOf(blocks.Log, 1), d.BlockStateAt(1, 2, 3))
	assert.True(t, base.BlockStateAt(1, 2, 3).IsAir())
	assert.Equal(t, Pos{Y: 3}, d.PlayerPosition())
	d.SetPlayerPosition(Pos{X: 9})
	assert.Equal(t, Pos{X: 9}, d.PlayerPosition())
	assert.Equal(t, Pos{Y: 3}, base.PlayerPosition())
}

func TestDirectionFor(t *testing.T) {
	f, ok := DirectionFor(Pos{Y: 1})
	require.True(t, ok)
	assert.Equal(t, Up, f)
	assert.Equal(t, Down, f.Opposite())
	_, ok = DirectionFor(Pos{X: 1, Z: 1})
	assert.False(t, ok)
	assert.Equal(t, Pos{X: 1, Y: 5}, Pos{Y: 5}.Offset(East))
}
