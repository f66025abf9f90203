package world

import "voxelpath.ai/internal/sim/blocks"

// View is read access to a voxel world and the controlled entity.
type View interface {
	blocks.Reader
	PlayerPosition() Pos
}

// Editable accepts block and player updates. Implementations decide whether
// an edit reaches a real world or only an overlay.
type Editable interface {
	View
	SetBlock(x, y, z int, st blocks.State)
	SetPlayerPosition(p Pos)
}

// BlockAt is a convenience for Pos-based reads.
func BlockAt(v blocks.Reader, p Pos) blocks.State {
	return v.BlockStateAt(p.X, p.Y, p.Z)
}
