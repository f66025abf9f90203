package tasks

import "voxelpath.ai/internal/sim/blocks"

// ItemFilter selects the inventory items a task may use. Picking the actual
// stack is up to the executor.
type ItemFilter interface {
	Matches(st blocks.State) bool
}

// BlockItemFilter accepts items that place one of Blocks.
type BlockItemFilter struct {
	Blocks blocks.Set
}

func (f BlockItemFilter) Matches(st blocks.State) bool { return f.Blocks.Contains(st) }
