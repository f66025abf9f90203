package store

import (
	"fmt"

	snapv1 "voxelpath.ai/internal/persistence/snapshot"
	"voxelpath.ai/internal/sim/world"
)

// Export captures the loaded chunks and the player position.
func (s *ChunkStore) Export(region string) snapv1.SnapshotV1 {
	keys := s.LoadedChunkKeys()
	chunks := make([]snapv1.ChunkV1, 0, len(keys))
	for _, k := range keys {
		ch := s.Chunks[k]
		if ch == nil {
			continue
		}
		blocks := make([]uint16, len(ch.Blocks))
		copy(blocks, ch.Blocks)
		chunks = append(chunks, snapv1.ChunkV1{
			CX:     k.CX,
			CZ:     k.CZ,
			Height: ch.Height,
			Blocks: blocks,
		})
	}
	var seed int64
	if s.Gen != nil {
		seed = s.Gen.Seed
	}
	return snapv1.SnapshotV1{
		Header: snapv1.Header{Version: snapv1.Version, Region: region, Digest: s.RegionDigest()},
		Seed:   seed,
		MinY:   s.MinY,
		Height: s.Height,
		Player: s.player.ToArray(),
		Chunks: chunks,
	}
}

// Import rebuilds a store from a snapshot. Chunks missing from the
// snapshot read as air.
func Import(snap snapv1.SnapshotV1) (*ChunkStore, error) {
	if snap.Height <= 0 {
		return nil, fmt.Errorf("snapshot height must be positive, got %d", snap.Height)
	}
	s := NewChunkStore(Config{MinY: snap.MinY, Height: snap.Height})
	want := ChunkSize * ChunkSize * snap.Height
	for _, ch := range snap.Chunks {
		if ch.Height != snap.Height {
			return nil, fmt.Errorf("snapshot chunk height mismatch: got %d want %d", ch.Height, snap.Height)
		}
		if len(ch.Blocks) != want {
			return nil, fmt.Errorf("snapshot chunk blocks length mismatch: got %d want %d", len(ch.Blocks), want)
		}
		c := newChunk(ch.CX, ch.CZ, ch.Height)
		copy(c.Blocks, ch.Blocks)
		s.Chunks[ChunkKey{CX: ch.CX, CZ: ch.CZ}] = c
	}
	if want := snap.Header.Digest; want != "" {
		if got := s.RegionDigest(); got != want {
			return nil, fmt.Errorf("snapshot digest mismatch: header %s, blocks %s", want, got)
		}
	}
	s.player = world.PosFromArray(snap.Player)
	return s, nil
}
