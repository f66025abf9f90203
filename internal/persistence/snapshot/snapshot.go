package snapshot

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

const Version = 1

type Header struct {
	Version int    `json:"version"`
	Region  string `json:"region"`
	// Digest is the region digest of the chunks; empty skips the check on import.
	Digest string `json:"digest,omitempty"`
}

// SnapshotV1 is a voxel region: loaded chunks plus where the player stands.
type SnapshotV1 struct {
	Header Header `json:"header"`

	Seed   int64  `json:"seed"`
	MinY   int    `json:"min_y"`
	Height int    `json:"height"`
	Player [3]int `json:"player"`

	Chunks []ChunkV1 `json:"chunks"`
}

type ChunkV1 struct {
	CX     int      `json:"cx"`
	CZ     int      `json:"cz"`
	Height int      `json:"height"`
	Blocks []uint16 `json:"blocks"`
}

// Encode writes a JSON header line followed by the gob-encoded snapshot,
// all inside one zstd stream.
func Encode(w io.Writer, snap SnapshotV1) error {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(zw, 256*1024)
	if err := writeBody(bw, snap); err != nil {
		_ = zw.Close()
		return err
	}
	return errors.Join(bw.Flush(), zw.Close())
}

func writeBody(w *bufio.Writer, snap SnapshotV1) error {
	hb, err := json.Marshal(snap.Header)
	if err != nil {
		return err
	}
	if _, err := w.Write(append(hb, '\n')); err != nil {
		return err
	}
	if err := gob.NewEncoder(w).Encode(&snap); err != nil {
		return fmt.Errorf("gob encode: %w", err)
	}
	return nil
}

// Decode reads what Encode wrote, rejecting other header versions before
// touching the gob body.
func Decode(r io.Reader) (SnapshotV1, error) {
	var snap SnapshotV1
	zr, err := zstd.NewReader(r)
	if err != nil {
		return snap, err
	}
	defer zr.Close()

	br := bufio.NewReaderSize(zr, 256*1024)
	hb, err := br.ReadBytes('\n')
	if err != nil {
		return snap, fmt.Errorf("read header: %w", err)
	}
	var h Header
	if err := json.Unmarshal(hb, &h); err != nil {
		return snap, fmt.Errorf("decode header: %w", err)
	}
	if h.Version != Version {
		return snap, fmt.Errorf("unsupported snapshot version %d", h.Version)
	}
	if err := gob.NewDecoder(br).Decode(&snap); err != nil {
		return snap, fmt.Errorf("gob decode: %w", err)
	}
	return snap, nil
}

// WriteSnapshot replaces path atomically: the snapshot goes to a temp file
// in the same directory which is renamed over path once synced.
func WriteSnapshot(path string, snap SnapshotV1) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	if err := errors.Join(Encode(tmp, snap), tmp.Sync(), tmp.Close()); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func ReadSnapshot(path string) (SnapshotV1, error) {
	f, err := os.Open(path)
	if err != nil {
		return SnapshotV1{}, err
	}
	defer f.Close()
	return Decode(f)
}
