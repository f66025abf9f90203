package world

import "voxelpath.ai/internal/sim/blocks"

// Delta layers block and player overrides over a base view. The base is
// never written to.
type Delta struct {
	base      View
	overrides map[Pos]blocks.State
	player    *Pos
}

func NewDelta(base View) *Delta {
	return &Delta{
		base:      base,
		overrides: map[Pos]blocks.State{},
	}
}

func (d *Delta) BlockStateAt(x, y, z int) blocks.State {
	if st, ok := d.overrides[Pos{X: x, Y: y, Z: z}]; ok {
		return st
	}
	return d.base.BlockStateAt(x, y, z)
}

func (d *Delta) SetBlock(x, y, z int, st blocks.State) {
	d.overrides[Pos{X: x, Y: y, Z: z}] = st
}

func (d *Delta) PlayerPosition() Pos {
	if d.player != nil {
		return *d.player
	}
	return d.base.PlayerPosition()
}

func (d *Delta) SetPlayerPosition(p Pos) {
	d.player = &p
}
