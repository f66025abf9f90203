package store

import (
	"crypto/sha256"
	"encoding/binary"

	"voxelpath.ai/internal/sim/world"
	genpkg "voxelpath.ai/internal/sim/world/terrain/gen"
)

const ChunkSize = 16

type ChunkKey struct {
	CX int
	CZ int
}

// Chunk is a 16x16 column of Height layers. Blocks holds block states
// (id<<4 | meta) indexed x + z*16 + layer*256.
type Chunk struct {
	CX, CZ int
	Height int
	Blocks []uint16

	// hash caches Digest until the next Set.
	hash   [32]byte
	hashed bool
}

func newChunk(cx, cz, height int) *Chunk {
	return &Chunk{
		CX:     cx,
		CZ:     cz,
		Height: height,
		Blocks: make([]uint16, ChunkSize*ChunkSize*height),
	}
}

func (c *Chunk) index(x, layer, z int) int {
	return x + z*ChunkSize + layer*ChunkSize*ChunkSize
}

func (c *Chunk) Get(x, layer, z int) uint16 {
	return c.Blocks[c.index(x, layer, z)]
}

func (c *Chunk) Set(x, layer, z int, b uint16) {
	i := c.index(x, layer, z)
	if c.Blocks[i] == b {
		return
	}
	c.Blocks[i] = b
	c.hashed = false
}

// Digest is the SHA-256 of the chunk's block states, little-endian. It is
// computed on first use, so chunks that are only read never pay for it.
func (c *Chunk) Digest() [32]byte {
	if c.hashed {
		return c.hash
	}
	buf := make([]byte, 2*len(c.Blocks))
	for i, v := range c.Blocks {
		binary.LittleEndian.PutUint16(buf[2*i:], v)
	}
	c.hash = sha256.Sum256(buf)
	c.hashed = true
	return c.hash
}

type Config struct {
	MinY   int
	Height int
	// Gen fills chunks on first access; nil leaves them empty (air).
	Gen *genpkg.Terrain
}

// ChunkStore is an in-memory voxel world. It implements world.Editable.
type ChunkStore struct {
	MinY   int
	Height int
	Gen    *genpkg.Terrain
	Chunks map[ChunkKey]*Chunk

	player world.Pos
}

func NewChunkStore(cfg Config) *ChunkStore {
	if cfg.Height <= 0 {
		cfg.Height = 256
	}
	return &ChunkStore{
		MinY:   cfg.MinY,
		Height: cfg.Height,
		Gen:    cfg.Gen,
		Chunks: map[ChunkKey]*Chunk{},
	}
}
