package log

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"voxelpath.ai/internal/protocol"
)

const hourLayout = "2006-01-02-15"

// HourlyWriter appends JSON lines to <dir>/<prefix>-YYYY-MM-DD-HH.jsonl.zst,
// switching files when the UTC hour changes. Every entry ends a zstd block,
// so a crash loses at most the entry being written.
type HourlyWriter struct {
	dir    string
	prefix string
	now    func() time.Time

	mu   sync.Mutex
	hour string
	out  *hourFile
}

type hourFile struct {
	f   *os.File
	enc *zstd.Encoder
	buf *bufio.Writer
}

func NewHourlyWriter(dir, prefix string) *HourlyWriter {
	return &HourlyWriter{dir: dir, prefix: prefix, now: time.Now}
}

// Path is the file that entries written at t land in.
func (w *HourlyWriter) Path(t time.Time) string {
	return filepath.Join(w.dir, fmt.Sprintf("%s-%s.jsonl.zst", w.prefix, t.UTC().Format(hourLayout)))
}

func (w *HourlyWriter) Write(v any) error {
	line, err := json.Marshal(v)
	if err != nil {
		return err
	}
	line = append(line, '\n')

	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	if hour := now.UTC().Format(hourLayout); hour != w.hour || w.out == nil {
		if err := w.closeLocked(); err != nil {
			return err
		}
		out, err := openHourFile(w.Path(now))
		if err != nil {
			return err
		}
		w.out, w.hour = out, hour
	}
	return w.out.append(line)
}

func (w *HourlyWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeLocked()
}

func (w *HourlyWriter) closeLocked() error {
	if w.out == nil {
		return nil
	}
	err := w.out.close()
	w.out, w.hour = nil, ""
	return err
}

func openHourFile(path string) (*hourFile, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &hourFile{f: f, enc: enc, buf: bufio.NewWriterSize(enc, 64*1024)}, nil
}

func (h *hourFile) append(line []byte) error {
	if _, err := h.buf.Write(line); err != nil {
		return err
	}
	if err := h.buf.Flush(); err != nil {
		return err
	}
	return h.enc.Flush()
}

func (h *hourFile) close() error {
	return errors.Join(h.buf.Flush(), h.enc.Close(), h.f.Close())
}

// PlanLogger is the plan trace log: one entry per finished search under
// <data>/plans.
type PlanLogger struct{ w *HourlyWriter }

func NewPlanLogger(dataDir string) *PlanLogger {
	return &PlanLogger{w: NewHourlyWriter(filepath.Join(dataDir, "plans"), "plans")}
}

func (l *PlanLogger) WritePlan(e protocol.PlanLogEntry) error { return l.w.Write(e) }
func (l *PlanLogger) Close() error                            { return l.w.Close() }
