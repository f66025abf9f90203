package protocol

// PlanLogEntry is the durable record of one finished search. It is written
// to the plan trace log and mirrored into the plan index.
type PlanLogEntry struct {
	PlanID    string `json:"plan_id"`
	RequestID string `json:"request_id"`
	SessionID string `json:"session_id,omitempty"`
	CreatedAt string `json:"created_at"`

	Goal   Goal   `json:"goal"`
	Status string `json:"status"`
	Start  [3]int `json:"start"`
	End    [3]int `json:"end"`

	Waypoints     [][3]int   `json:"waypoints"`
	Tasks         []TaskJSON `json:"tasks"`
	EstimateTicks int        `json:"estimate_ticks"`
	Steps         int        `json:"steps"`
	Expanded      int        `json:"expanded"`
	DurationMs    int64      `json:"duration_ms"`
}

// Result is the PLAN_RESULT message for this entry.
func (e PlanLogEntry) Result() PlanResultMsg {
	return PlanResultMsg{
		Type:          TypePlanResult,
		ID:            e.RequestID,
		PlanID:        e.PlanID,
		Status:        e.Status,
		Waypoints:     e.Waypoints,
		Tasks:         e.Tasks,
		EstimateTicks: e.EstimateTicks,
		Steps:         e.Steps,
		Expanded:      e.Expanded,
	}
}
