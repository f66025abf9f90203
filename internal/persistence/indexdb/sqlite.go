package indexdb

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"voxelpath.ai/internal/protocol"
	"voxelpath.ai/internal/sim/catalogs"
	"voxelpath.ai/internal/sim/tuning"
)

// SQLiteIndex mirrors finished plans into a queryable sqlite database.
// Writes are queued and applied by one goroutine in batched transactions.
type SQLiteIndex struct {
	db *sql.DB

	ch   chan protocol.PlanLogEntry
	wg   sync.WaitGroup
	once sync.Once

	// mu orders sends on ch against close(ch).
	mu     sync.RWMutex
	closed bool

	dropped atomic.Uint64
	failed  atomic.Uint64
}

type Stats struct {
	QueueDepth    int
	QueueCapacity int
	DroppedTotal  uint64
	FailedTotal   uint64
}

const defaultQueue = 4096

func OpenSQLite(path string) (*SQLiteIndex, error) {
	return openSQLite(path, defaultQueue)
}

func openSQLite(path string, queue int) (*SQLiteIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLiteIndex{
		db: db,
		ch: make(chan protocol.PlanLogEntry, queue),
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
	return s, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS catalogs (
			name TEXT PRIMARY KEY,
			digest TEXT NOT NULL,
			json TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS plans (
			plan_id TEXT PRIMARY KEY,
			request_id TEXT NOT NULL,
			session_id TEXT NOT NULL,
			created_at TEXT NOT NULL,
			goal TEXT NOT NULL,
			status TEXT NOT NULL,
			start_x INTEGER NOT NULL,
			start_y INTEGER NOT NULL,
			start_z INTEGER NOT NULL,
			end_x INTEGER NOT NULL,
			end_y INTEGER NOT NULL,
			end_z INTEGER NOT NULL,
			waypoints INTEGER NOT NULL,
			tasks INTEGER NOT NULL,
			estimate_ticks INTEGER NOT NULL,
			steps INTEGER NOT NULL,
			expanded INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			raw_json TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_plans_created ON plans(created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_plans_status_created ON plans(status, created_at);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteIndex) Close() error {
	var err error
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.ch)
		s.mu.Unlock()
		s.wg.Wait()
		err = s.db.Close()
	})
	return err
}

// WritePlan queues a plan for indexing. It never blocks: when the writer
// falls behind the entry is dropped and counted, the plan log stays the
// source of truth.
func (s *SQLiteIndex) WritePlan(e protocol.PlanLogEntry) error {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil
	}
	select {
	case s.ch <- e:
	default:
		s.dropped.Add(1)
	}
	return nil
}

func (s *SQLiteIndex) Stats() Stats {
	return Stats{
		QueueDepth:    len(s.ch),
		QueueCapacity: cap(s.ch),
		DroppedTotal:  s.dropped.Load(),
		FailedTotal:   s.failed.Load(),
	}
}

// UpsertCatalogs stores the block catalog and the settings the server
// runs with, keyed by digest.
func (s *SQLiteIndex) UpsertCatalogs(cat *catalogs.Catalogs, settings tuning.Settings) error {
	if s == nil {
		return nil
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)

	type kv struct {
		name   string
		digest string
		json   []byte
	}
	var rows []kv
	if b, _ := json.Marshal(cat.Blocks.Defs); len(b) > 0 {
		rows = append(rows, kv{name: "blocks", digest: cat.Blocks.Digest, json: b})
	}
	{
		b, _ := json.Marshal(settings)
		sum := sha256.Sum256(b)
		rows = append(rows, kv{name: "settings", digest: hex.EncodeToString(sum[:]), json: b})
	}

	tx, err := s.db.BeginTx(context.Background(), nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`INSERT OR REPLACE INTO meta(key,value) VALUES('schema_version','1')`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO catalogs(name,digest,json,updated_at) VALUES(?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, r := range rows {
		if _, err := stmt.Exec(r.name, r.digest, string(r.json), now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

const maxBatch = 500

const insertPlanSQL = `INSERT OR REPLACE INTO plans(
	plan_id,request_id,session_id,created_at,goal,status,
	start_x,start_y,start_z,end_x,end_y,end_z,
	waypoints,tasks,estimate_ticks,steps,expanded,duration_ms,raw_json
) VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`

// loop blocks for one entry, then drains whatever else is queued (up to
// maxBatch) and writes the batch in a single transaction.
func (s *SQLiteIndex) loop() {
	batch := make([]protocol.PlanLogEntry, 0, maxBatch)
	for e := range s.ch {
		batch = append(batch[:0], e)
	drain:
		for len(batch) < maxBatch {
			select {
			case more, ok := <-s.ch:
				if !ok {
					break drain
				}
				batch = append(batch, more)
			default:
				break drain
			}
		}
		if err := s.writeBatch(context.Background(), batch); err != nil {
			s.failed.Add(uint64(len(batch)))
		}
	}
}

func (s *SQLiteIndex) writeBatch(ctx context.Context, batch []protocol.PlanLogEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, insertPlanSQL)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range batch {
		raw, err := json.Marshal(e)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx,
			e.PlanID, e.RequestID, e.SessionID, e.CreatedAt, e.Goal.Kind, e.Status,
			e.Start[0], e.Start[1], e.Start[2],
			e.End[0], e.End[1], e.End[2],
			len(e.Waypoints), len(e.Tasks), e.EstimateTicks, e.Steps, e.Expanded, e.DurationMs,
			string(raw),
		); err != nil {
			return fmt.Errorf("insert plan %s: %w", e.PlanID, err)
		}
	}
	return tx.Commit()
}
