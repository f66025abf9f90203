package store

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// RegionDigest hashes the store shape and every loaded chunk, keyed by
// chunk coordinates in LoadedChunkKeys order. The player position is not
// part of it.
func (s *ChunkStore) RegionDigest() string {
	h := sha256.New()
	var hdr [16]byte
	binary.LittleEndian.PutUint64(hdr[:8], uint64(int64(s.MinY)))
	binary.LittleEndian.PutUint64(hdr[8:], uint64(int64(s.Height)))
	h.Write(hdr[:])
	for _, k := range s.LoadedChunkKeys() {
		binary.LittleEndian.PutUint64(hdr[:8], uint64(int64(k.CX)))
		binary.LittleEndian.PutUint64(hdr[8:], uint64(int64(k.CZ)))
		h.Write(hdr[:])
		d := s.Chunks[k].Digest()
		h.Write(d[:])
	}
	return hex.EncodeToString(h.Sum(nil))
}

// ChunkDigests returns the hex digest of every loaded chunk.
func (s *ChunkStore) ChunkDigests() map[ChunkKey]string {
	out := make(map[ChunkKey]string, len(s.Chunks))
	for k, ch := range s.Chunks {
		d := ch.Digest()
		out[k] = hex.EncodeToString(d[:])
	}
	return out
}
