package world

import "voxelpath.ai/internal/sim/blocks"

// Hardness computes how much of a block the controlled entity destroys per
// tick at a position; the block breaks once the accumulated damage reaches 1.
type Hardness interface {
	RelativeHardness(p Pos, st blocks.State) float64
}

type HardnessFunc func(p Pos, st blocks.State) float64

func (f HardnessFunc) RelativeHardness(p Pos, st blocks.State) float64 { return f(p, st) }
