package log

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/klauspost/compress/zstd"

	"voxelpath.ai/internal/protocol"
)

// ScanJSONLZstd calls fn with every line of a compressed JSONL file.
func ScanJSONLZstd(path string, fn func(line []byte) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return err
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	for sc.Scan() {
		if len(sc.Bytes()) == 0 {
			continue
		}
		if err := fn(sc.Bytes()); err != nil {
			return err
		}
	}
	return sc.Err()
}

// ReadPlans decodes every plan entry of one plan log file.
func ReadPlans(path string) ([]protocol.PlanLogEntry, error) {
	var out []protocol.PlanLogEntry
	line := 0
	err := ScanJSONLZstd(path, func(b []byte) error {
		line++
		var e protocol.PlanLogEntry
		if err := json.Unmarshal(b, &e); err != nil {
			return fmt.Errorf("%s:%d: %w", path, line, err)
		}
		out = append(out, e)
		return nil
	})
	return out, err
}

// PlanFiles lists the plan log files under dataDir, oldest first.
func PlanFiles(dataDir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dataDir, "plans", "plans-*.jsonl.zst"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
