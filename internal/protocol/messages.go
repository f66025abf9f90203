package protocol

// HELLO (client -> server)
type HelloMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ClientName      string `json:"client_name"`
}

// WELCOME (server -> client)
type WelcomeMsg struct {
	Type            string      `json:"type"`
	ProtocolVersion string      `json:"protocol_version"`
	SessionID       string      `json:"session_id"`
	Catalog         CatalogInfo `json:"catalog"`
}

type CatalogInfo struct {
	BlocksDigest string `json:"blocks_digest"`
	BlockCount   int    `json:"block_count"`
}

// Goal kinds.
const (
	GoalMove = "MOVE"
	GoalGoTo = "GOTO"
	GoalTree = "TREE"
)

type Goal struct {
	Kind      string  `json:"kind"`
	Target    *[3]int `json:"target,omitempty"`
	Tolerance int     `json:"tolerance,omitempty"`
	Wood      string  `json:"wood,omitempty"`
	Replant   bool    `json:"replant,omitempty"`
}

// Region is a box of block states. Blocks are ordered x fastest, then z,
// then y; each entry is id<<4|meta.
type Region struct {
	Origin [3]int   `json:"origin"`
	Size   [3]int   `json:"size"`
	Blocks []uint16 `json:"blocks,omitempty"`
	// BlocksRLE carries the same states run-length encoded; see Compact.
	BlocksRLE string `json:"blocks_rle,omitempty"`
}

// PLAN (client -> server)
type PlanMsg struct {
	Type   string `json:"type"`
	ID     string `json:"id"`
	Goal   Goal   `json:"goal"`
	Region Region `json:"region"`
	Player [3]int `json:"player"`
}

// Plan result statuses.
const (
	StatusFound  = "FOUND"
	StatusNoPath = "NO_PATH"
)

// PLAN_RESULT (server -> client)
type PlanResultMsg struct {
	Type          string     `json:"type"`
	ID            string     `json:"id"`
	PlanID        string     `json:"plan_id"`
	Status        string     `json:"status"`
	Waypoints     [][3]int   `json:"waypoints"`
	Tasks         []TaskJSON `json:"tasks"`
	EstimateTicks int        `json:"estimate_ticks"`
	Steps         int        `json:"steps"`
	Expanded      int        `json:"expanded"`
}

// ERROR (server -> client)
type ErrorMsg struct {
	Type    string `json:"type"`
	ID      string `json:"id,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
