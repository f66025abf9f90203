package indexdb

import (
	"context"
	"database/sql"
	"os"
	"strings"
)

// PlanRow is one indexed plan summary.
type PlanRow struct {
	PlanID        string
	RequestID     string
	SessionID     string
	CreatedAt     string
	Goal          string
	Status        string
	Start         [3]int
	End           [3]int
	Waypoints     int
	Tasks         int
	EstimateTicks int
	Steps         int
	Expanded      int
	DurationMs    int64
}

// PlanFilter narrows ListPlans. Zero fields match everything; Limit <= 0
// means 50.
type PlanFilter struct {
	Status  string
	Goal    string
	Session string
	Limit   int
}

// OpenDB opens an existing index database for queries without starting
// a writer.
func OpenDB(path string) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return sql.Open("sqlite", path)
}

// ListPlans returns the newest plans first.
func ListPlans(ctx context.Context, db *sql.DB, f PlanFilter) ([]PlanRow, error) {
	var (
		where []string
		args  []any
	)
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, f.Status)
	}
	if f.Goal != "" {
		where = append(where, "goal = ?")
		args = append(args, f.Goal)
	}
	if f.Session != "" {
		where = append(where, "session_id = ?")
		args = append(args, f.Session)
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	q := `SELECT plan_id,request_id,session_id,created_at,goal,status,
		start_x,start_y,start_z,end_x,end_y,end_z,
		waypoints,tasks,estimate_ticks,steps,expanded,duration_ms
		FROM plans`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY created_at DESC, plan_id LIMIT ?"
	args = append(args, limit)

	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PlanRow
	for rows.Next() {
		var r PlanRow
		if err := rows.Scan(
			&r.PlanID, &r.RequestID, &r.SessionID, &r.CreatedAt, &r.Goal, &r.Status,
			&r.Start[0], &r.Start[1], &r.Start[2], &r.End[0], &r.End[1], &r.End[2],
			&r.Waypoints, &r.Tasks, &r.EstimateTicks, &r.Steps, &r.Expanded, &r.DurationMs,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
