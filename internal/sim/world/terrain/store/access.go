package store

import (
	"sort"

	"voxelpath.ai/internal/sim/blocks"
	"voxelpath.ai/internal/sim/world"
	"voxelpath.ai/internal/sim/world/logic/mathx"
)

func (s *ChunkStore) InBounds(y int) bool {
	return y >= s.MinY && y < s.MinY+s.Height
}

func (s *ChunkStore) LoadedChunkKeys() []ChunkKey {
	keys := make([]ChunkKey, 0, len(s.Chunks))
	for k := range s.Chunks {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].CX != keys[j].CX {
			return keys[i].CX < keys[j].CX
		}
		return keys[i].CZ < keys[j].CZ
	})
	return keys
}

func (s *ChunkStore) BlockStateAt(x, y, z int) blocks.State {
	if !s.InBounds(y) {
		return blocks.StateOf(blocks.Air, 0)
	}
	ch := s.GetOrGenChunk(mathx.FloorDiv(x, ChunkSize), mathx.FloorDiv(z, ChunkSize))
	return blocks.State(ch.Get(mathx.Mod(x, ChunkSize), y-s.MinY, mathx.Mod(z, ChunkSize)))
}

// SetBlock writes a state; writes outside [MinY, MinY+Height) are dropped.
func (s *ChunkStore) SetBlock(x, y, z int, st blocks.State) {
	if !s.InBounds(y) {
		return
	}
	ch := s.GetOrGenChunk(mathx.FloorDiv(x, ChunkSize), mathx.FloorDiv(z, ChunkSize))
	ch.Set(mathx.Mod(x, ChunkSize), y-s.MinY, mathx.Mod(z, ChunkSize), uint16(st))
}

// Fill sets every cell of the inclusive box spanned by a and b.
func (s *ChunkStore) Fill(a, b world.Pos, st blocks.State) {
	lo, hi := world.MinPos(a, b), world.MaxPos(a, b)
	for y := lo.Y; y <= hi.Y; y++ {
		for z := lo.Z; z <= hi.Z; z++ {
			for x := lo.X; x <= hi.X; x++ {
				s.SetBlock(x, y, z, st)
			}
		}
	}
}

func (s *ChunkStore) PlayerPosition() world.Pos     { return s.player }
func (s *ChunkStore) SetPlayerPosition(p world.Pos) { s.player = p }

func (s *ChunkStore) GetOrGenChunk(cx, cz int) *Chunk {
	k := ChunkKey{CX: cx, CZ: cz}
	if ch, ok := s.Chunks[k]; ok {
		return ch
	}
	ch := newChunk(cx, cz, s.Height)
	s.GenerateChunk(ch)
	s.Chunks[k] = ch
	return ch
}

func (s *ChunkStore) GenerateChunk(ch *Chunk) {
	if s.Gen == nil {
		return
	}
	for layer := 0; layer < ch.Height; layer++ {
		y := s.MinY + layer
		for z := 0; z < ChunkSize; z++ {
			for x := 0; x < ChunkSize; x++ {
				st := s.Gen.BlockAt(ch.CX*ChunkSize+x, y, ch.CZ*ChunkSize+z)
				ch.Blocks[ch.index(x, layer, z)] = uint16(st)
			}
		}
	}
}
