package protocol

import (
	"fmt"

	"voxelpath.ai/internal/sim/blocks"
	"voxelpath.ai/internal/sim/encoding"
)

// MaxRegionVolume bounds a single PLAN region.
const MaxRegionVolume = 128 * 128 * 128

func (r Region) Volume() int { return r.Size[0] * r.Size[1] * r.Size[2] }

func (r Region) Validate() error {
	for i, n := range r.Size {
		if n <= 0 {
			return fmt.Errorf("region size[%d] must be positive, got %d", i, n)
		}
	}
	if v := r.Volume(); v > MaxRegionVolume {
		return fmt.Errorf("region volume %d exceeds %d", v, MaxRegionVolume)
	}
	if r.BlocksRLE != "" {
		return fmt.Errorf("region blocks_rle not expanded")
	}
	if len(r.Blocks) != r.Volume() {
		return fmt.Errorf("region blocks length mismatch: got %d want %d", len(r.Blocks), r.Volume())
	}
	return nil
}

// Expand decodes BlocksRLE into Blocks. Sending both forms is an error.
func (r *Region) Expand() error {
	if r.BlocksRLE == "" {
		return nil
	}
	if len(r.Blocks) > 0 {
		return fmt.Errorf("region has both blocks and blocks_rle")
	}
	limit := r.Volume()
	if limit <= 0 || limit > MaxRegionVolume {
		limit = MaxRegionVolume
	}
	states, err := encoding.DecodeRLE(r.BlocksRLE, limit)
	if err != nil {
		return fmt.Errorf("region blocks_rle: %w", err)
	}
	r.Blocks = states
	r.BlocksRLE = ""
	return nil
}

// Compact returns a copy of r carrying its states as BlocksRLE.
func (r Region) Compact() Region {
	if len(r.Blocks) == 0 {
		return r
	}
	r.BlocksRLE = encoding.EncodeRLE(r.Blocks)
	r.Blocks = nil
	return r
}

// Contains reports whether the world cell (x,y,z) lies inside the region.
func (r Region) Contains(x, y, z int) bool {
	dx, dy, dz := x-r.Origin[0], y-r.Origin[1], z-r.Origin[2]
	return dx >= 0 && dy >= 0 && dz >= 0 && dx < r.Size[0] && dy < r.Size[1] && dz < r.Size[2]
}

func (r Region) index(dx, dy, dz int) int {
	return dx + dz*r.Size[0] + dy*r.Size[0]*r.Size[2]
}

// Apply writes every block of a validated region into dst.
func (r Region) Apply(dst interface {
	SetBlock(x, y, z int, st blocks.State)
}) {
	for dy := 0; dy < r.Size[1]; dy++ {
		for dz := 0; dz < r.Size[2]; dz++ {
			for dx := 0; dx < r.Size[0]; dx++ {
				dst.SetBlock(r.Origin[0]+dx, r.Origin[1]+dy, r.Origin[2]+dz, blocks.State(r.Blocks[r.index(dx, dy, dz)]))
			}
		}
	}
}

// RegionFrom captures the box [origin, origin+size) from src.
func RegionFrom(src blocks.Reader, origin, size [3]int) Region {
	r := Region{Origin: origin, Size: size}
	if size[0] <= 0 || size[1] <= 0 || size[2] <= 0 {
		return r
	}
	r.Blocks = make([]uint16, r.Volume())
	for dy := 0; dy < size[1]; dy++ {
		for dz := 0; dz < size[2]; dz++ {
			for dx := 0; dx < size[0]; dx++ {
				r.Blocks[r.index(dx, dy, dz)] = uint16(src.BlockStateAt(origin[0]+dx, origin[1]+dy, origin[2]+dz))
			}
		}
	}
	return r
}
