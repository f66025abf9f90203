package gen

import (
	"voxelpath.ai/internal/sim/blocks"
	"voxelpath.ai/internal/sim/world/logic/mathx"
)

func BiomeFrom(noise uint64) string {
	switch noise % 3 {
	case 0:
		return "PLAINS"
	case 1:
		return "FOREST"
	default:
		return "DESERT"
	}
}

func BiomeAt(seed int64, x, z, regionSize int) string {
	if regionSize <= 0 {
		regionSize = 1
	}
	rx := mathx.FloorDiv(x, regionSize)
	rz := mathx.FloorDiv(z, regionSize)
	return BiomeFrom(mathx.Hash2(seed, rx, rz))
}

func ClampPermille(v int) int {
	if v < 0 {
		return 0
	}
	if v > 1000 {
		return 1000
	}
	return v
}

// Terrain is a deterministic column generator: layered ground with gentle
// one-block steps and sparse trees in forest regions.
type Terrain struct {
	Seed            int64
	MinY            int
	BaseY           int
	BiomeRegionSize int
	StepGrid        int
	TreePermille    int
	// Wood forces a single species; nil picks one per tree.
	Wood *blocks.WoodType
}

const treeGrid = 6

var speciesCycle = []blocks.WoodType{blocks.Oak, blocks.Birch, blocks.Spruce}

func (t Terrain) Biome(x, z int) string {
	return BiomeAt(t.Seed, x, z, t.BiomeRegionSize)
}

// GroundY is the y of the top solid block of column (x,z).
func (t Terrain) GroundY(x, z int) int {
	grid := t.StepGrid
	if grid <= 0 {
		return t.BaseY
	}
	h := mathx.Hash2(t.Seed+17, mathx.FloorDiv(x, grid), mathx.FloorDiv(z, grid))
	return t.BaseY + int(h%2)
}

// Tree describes the trunk rooted at a column, if any.
type Tree struct {
	X, Z   int
	BaseY  int
	Height int
	Wood   blocks.WoodType
}

// TreeAt reports the tree whose trunk stands on column (x,z). Trunks sit on
// a jittered grid so two trunks are never closer than three blocks.
func (t Terrain) TreeAt(x, z int) (Tree, bool) {
	if t.TreePermille <= 0 {
		return Tree{}, false
	}
	if t.BiomeRegionSize > 0 && t.Biome(x, z) != "FOREST" {
		return Tree{}, false
	}
	gx := mathx.FloorDiv(x, treeGrid)
	gz := mathx.FloorDiv(z, treeGrid)
	h := mathx.Hash2(t.Seed+201, gx, gz)
	if h%1000 >= uint64(ClampPermille(t.TreePermille)) {
		return Tree{}, false
	}
	ox := 1 + int((h>>10)%4)
	oz := 1 + int((h>>20)%4)
	if x != gx*treeGrid+ox || z != gz*treeGrid+oz {
		return Tree{}, false
	}
	wood := speciesCycle[(h>>30)%uint64(len(speciesCycle))]
	if t.Wood != nil {
		wood = *t.Wood
	}
	return Tree{
		X:      x,
		Z:      z,
		BaseY:  t.GroundY(x, z) + 1,
		Height: 4 + int((h>>40)%3),
		Wood:   wood,
	}, true
}

func (t Terrain) leavesAt(x, y, z int) (blocks.State, bool) {
	for dz := -1; dz <= 1; dz++ {
		for dx := -1; dx <= 1; dx++ {
			tr, ok := t.TreeAt(x+dx, z+dz)
			if !ok {
				continue
			}
			top := tr.BaseY + tr.Height - 1
			switch {
			case (dx != 0 || dz != 0) && (y == top || y == top-1):
				return leavesFor(tr.Wood), true
			case dx == 0 && dz == 0 && y == top+1:
				return leavesFor(tr.Wood), true
			}
		}
	}
	return 0, false
}

func leavesFor(w blocks.WoodType) blocks.State {
	if w.Block == blocks.Log2 {
		return blocks.StateOf(blocks.Leaves2, w.LowerBits)
	}
	return blocks.StateOf(blocks.Leaves, w.LowerBits)
}

// BlockAt generates the block at (x,y,z).
func (t Terrain) BlockAt(x, y, z int) blocks.State {
	ground := t.GroundY(x, z)
	switch {
	case y < t.MinY:
		return blocks.StateOf(blocks.Air, 0)
	case y == t.MinY:
		return blocks.StateOf(blocks.Bedrock, 0)
	case y < ground-3:
		return blocks.StateOf(blocks.Stone, 0)
	case y < ground:
		if t.Biome(x, z) == "DESERT" && t.BiomeRegionSize > 0 {
			return blocks.StateOf(blocks.Sandstone, 0)
		}
		return blocks.StateOf(blocks.Dirt, 0)
	case y == ground:
		if t.Biome(x, z) == "DESERT" && t.BiomeRegionSize > 0 {
			return blocks.StateOf(blocks.Sand, 0)
		}
		return blocks.StateOf(blocks.Grass, 0)
	}
	if tr, ok := t.TreeAt(x, z); ok && y >= tr.BaseY && y < tr.BaseY+tr.Height {
		return tr.Wood.LogState()
	}
	if st, ok := t.leavesAt(x, y, z); ok {
		return st
	}
	return blocks.StateOf(blocks.Air, 0)
}
