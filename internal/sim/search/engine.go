package search

import (
	"container/heap"

	"go.uber.org/zap"

	"voxelpath.ai/internal/sim/world"
)

// Reject is the rating a Policy returns for a node that is not a goal.
// Every real rating is >= 0.
const Reject = -1.0

// Policy plugs the voxel rules into the engine.
type Policy interface {
	// Admissible reports whether the entity may move from one cell into a
	// neighbouring one.
	Admissible(from, to world.Pos) bool
	// Cost is the non-negative price of an admissible move.
	Cost(from, to world.Pos) int
	// Rate scores p as a destination reached after distance. Lower is
	// better; a negative value rejects p. A rating must never be below the
	// distance it was given.
	Rate(distance int, p world.Pos) float64
}

type Status int

const (
	// StatusNeedMoreTime means the budget ran out; call Step again.
	StatusNeedMoreTime Status = iota
	StatusFound
	StatusExhausted
)

func (s Status) String() string {
	switch s {
	case StatusNeedMoreTime:
		return "NEED_MORE_TIME"
	case StatusFound:
		return "FOUND"
	case StatusExhausted:
		return "EXHAUSTED"
	default:
		return "UNKNOWN"
	}
}

// NodeID is a handle into the engine's node arena. IDs are dense, start at
// 0 for the origin, and are never reused within one search.
type NodeID int32

const noNode NodeID = -1

type node struct {
	pos    world.Pos
	parent NodeID
	dist   int
	closed bool
}

// neighbourOffsets is the move vocabulary: four level steps, straight up,
// straight down, and four steps down off a ledge.
var neighbourOffsets = [...]world.Pos{
	{X: 1}, {X: -1}, {Z: 1}, {Z: -1},
	{Y: 1}, {Y: -1},
	{X: 1, Y: -1}, {X: -1, Y: -1}, {Z: 1, Y: -1}, {Z: -1, Y: -1},
}

// Engine is an incremental best-first search over the integer grid. It
// expands nodes in order of accumulated cost and keeps the best rated
// destination; the search is complete once no open node can beat it.
type Engine struct {
	policy Policy
	log    *zap.Logger

	bounded bool
	radius  int
	minY    int
	maxY    int

	origin world.Pos
	nodes  []node
	index  map[world.Pos]NodeID
	open   openQueue
	seq    uint64

	best       NodeID
	bestRating float64
	expanded   int
	status     Status
}

type Option func(*Engine)

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithBounds limits the field to cells within radius of the origin on x and
// z and to y in [minY, maxY]. Cells outside are never created.
func WithBounds(radius, minY, maxY int) Option {
	return func(e *Engine) {
		e.bounded = true
		e.radius = radius
		e.minY = minY
		e.maxY = maxY
	}
}

func NewEngine(policy Policy, opts ...Option) *Engine {
	e := &Engine{
		policy: policy,
		log:    zap.NewNop(),
		best:   noNode,
		status: StatusExhausted,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Start discards any previous search and opens a new one at origin.
func (e *Engine) Start(origin world.Pos) {
	e.origin = origin
	e.nodes = e.nodes[:0]
	e.index = make(map[world.Pos]NodeID, 1024)
	e.open = e.open[:0]
	e.seq = 0
	e.best = noNode
	e.bestRating = 0
	e.expanded = 0
	e.status = StatusNeedMoreTime
	if !e.inField(origin) {
		e.status = StatusExhausted
		return
	}
	id := e.newNode(origin, noNode, 0)
	e.push(id, 0)
}

func (e *Engine) inField(p world.Pos) bool {
	if !e.bounded {
		return true
	}
	dx := p.X - e.origin.X
	dz := p.Z - e.origin.Z
	return dx >= -e.radius && dx <= e.radius &&
		dz >= -e.radius && dz <= e.radius &&
		p.Y >= e.minY && p.Y <= e.maxY
}

func (e *Engine) newNode(p world.Pos, parent NodeID, dist int) NodeID {
	id := NodeID(len(e.nodes))
	e.nodes = append(e.nodes, node{pos: p, parent: parent, dist: dist})
	e.index[p] = id
	return id
}

func (e *Engine) push(id NodeID, dist int) {
	e.seq++
	heap.Push(&e.open, &openEntry{id: id, dist: dist, seq: e.seq})
}

// Step expands at most budget nodes. It returns StatusNeedMoreTime when the
// budget ran out before the search could finish.
func (e *Engine) Step(budget int) Status {
	if e.status != StatusNeedMoreTime {
		return e.status
	}
	for n := 0; n < budget; {
		if e.open.Len() == 0 {
			return e.finish()
		}
		entry := heap.Pop(&e.open).(*openEntry)
		cur := &e.nodes[entry.id]
		if cur.closed || entry.dist > cur.dist {
			continue
		}
		if e.best != noNode && float64(cur.dist) >= e.bestRating {
			return e.finish()
		}
		cur.closed = true
		e.expanded++
		n++
		if r := e.policy.Rate(cur.dist, cur.pos); r >= 0 && (e.best == noNode || r < e.bestRating) {
			e.best = entry.id
			e.bestRating = r
		}
		e.expand(entry.id)
	}
	return e.status
}

func (e *Engine) expand(id NodeID) {
	from := e.nodes[id].pos
	dist := e.nodes[id].dist
	for _, off := range neighbourOffsets {
		to := from.Add(off)
		if !e.inField(to) {
			continue
		}
		nid, seen := e.index[to]
		if seen && e.nodes[nid].closed {
			continue
		}
		if !e.policy.Admissible(from, to) {
			continue
		}
		cost := e.policy.Cost(from, to)
		if cost < 0 {
			cost = 0
		}
		nd := dist + cost
		if !seen {
			nid = e.newNode(to, id, nd)
			e.push(nid, nd)
			continue
		}
		if nd < e.nodes[nid].dist {
			e.nodes[nid].dist = nd
			e.nodes[nid].parent = id
			e.push(nid, nd)
		}
	}
}

func (e *Engine) finish() Status {
	if e.best == noNode {
		e.status = StatusExhausted
		e.log.Debug("search exhausted",
			zap.Stringer("origin", e.origin),
			zap.Int("expanded", e.expanded),
		)
		return e.status
	}
	e.status = StatusFound
	e.log.Debug("search found destination",
		zap.Stringer("origin", e.origin),
		zap.Stringer("destination", e.nodes[e.best].pos),
		zap.Float64("rating", e.bestRating),
		zap.Int("expanded", e.expanded),
	)
	return e.status
}

func (e *Engine) Status() Status { return e.status }

// Expanded is the number of nodes closed so far.
func (e *Engine) Expanded() int { return e.expanded }

// Nodes is the number of cells the search has created.
func (e *Engine) Nodes() int { return len(e.nodes) }

func (e *Engine) Origin() world.Pos { return e.origin }

// Pos decodes a node handle.
func (e *Engine) Pos(id NodeID) (world.Pos, bool) {
	if id < 0 || int(id) >= len(e.nodes) {
		return world.Pos{}, false
	}
	return e.nodes[id].pos, true
}

// Lookup returns the handle of p, if the search has created it.
func (e *Engine) Lookup(p world.Pos) (NodeID, bool) {
	id, ok := e.index[p]
	return id, ok
}

// Best returns the chosen destination and its rating once found.
func (e *Engine) Best() (world.Pos, float64, bool) {
	if e.best == noNode {
		return world.Pos{}, 0, false
	}
	return e.nodes[e.best].pos, e.bestRating, true
}

// Path returns the waypoints from the origin to the best destination, both
// inclusive. It is nil unless the search has found a destination.
func (e *Engine) Path() []world.Pos {
	if e.status != StatusFound {
		return nil
	}
	var path []world.Pos
	for id := e.best; id != noNode; id = e.nodes[id].parent {
		path = append(path, e.nodes[id].pos)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
