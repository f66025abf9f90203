package blocks

import "fmt"

// State packs a block id and its 4-bit metadata as id<<4 | meta.
type State uint16

const stateCount = (uint(MaxID) + 1) << 4

func StateOf(id ID, meta int) State {
	return State(uint16(id)<<4 | uint16(meta&0xf))
}

func (s State) ID() ID    { return ID(s >> 4) }
func (s State) Meta() int { return int(s & 0xf) }

func (s State) IsAir() bool { return s.ID() == Air }

func (s State) String() string {
	return fmt.Sprintf("%d:%d", s.ID(), s.Meta())
}

// Reader is the read side of a voxel world as far as classification cares.
type Reader interface {
	BlockStateAt(x, y, z int) State
}
