package pathing

import (
	"errors"

	"voxelpath.ai/internal/sim/blocks"
	"voxelpath.ai/internal/sim/search"
	"voxelpath.ai/internal/sim/tasks"
	"voxelpath.ai/internal/sim/world"
)

// Destination scores candidate cells and emits the tasks to perform once
// the chosen cell is reached.
type Destination interface {
	// Rate returns a score >= distance, lower is better, or search.Reject.
	Rate(w blocks.Reader, distance int, p world.Pos) float64
	// Arrived runs after the path to p has been compiled.
	Arrived(w blocks.Reader, p world.Pos, sink tasks.Sink)
}

// passThrougher is implemented by destinations that want extra blocks
// priced as walk-through.
type passThrougher interface {
	PassThrough() blocks.Set
}

// Move accepts every reachable cell; the nearest one is the origin itself.
type Move struct{}

func (Move) Rate(_ blocks.Reader, distance int, _ world.Pos) float64 { return float64(distance) }

func (Move) Arrived(blocks.Reader, world.Pos, tasks.Sink) {}

// GoTo accepts cells within Tolerance (Manhattan) of Target.
type GoTo struct {
	Target    world.Pos
	Tolerance int
}

func (g GoTo) Rate(_ blocks.Reader, distance int, p world.Pos) float64 {
	if world.Manhattan(p, g.Target) > g.Tolerance {
		return search.Reject
	}
	return float64(distance)
}

func (GoTo) Arrived(blocks.Reader, world.Pos, tasks.Sink) {}

// TreeHeight is the height of the column scanned for logs above a candidate.
const TreeHeight = 7

var ErrReplantNeedsWood = errors.New("replanting needs a wood type")

// Tree looks for a spot under a tree trunk and harvests it.
type Tree struct {
	// Wood restricts the species; nil accepts every log.
	Wood    *blocks.WoodType
	Replant bool
}

func NewTree(wood *blocks.WoodType, replant bool) (*Tree, error) {
	if replant && wood == nil {
		return nil, ErrReplantNeedsWood
	}
	return &Tree{Wood: wood, Replant: replant}, nil
}

func (t *Tree) PassThrough() blocks.Set { return blocks.TreeStuff }

func (t *Tree) isTree(w blocks.Reader, x, y, z int) bool {
	st := w.BlockStateAt(x, y, z)
	if t.Wood == nil {
		return blocks.Logs.Contains(st)
	}
	return t.Wood.Matches(st)
}

// Rate prefers columns with more logs reachable from p: the two cells the
// entity occupies count, then every log above while the column stays safe
// to stand in.
func (t *Tree) Rate(w blocks.Reader, distance int, p world.Pos) float64 {
	points := 0
	if t.isTree(w, p.X, p.Y, p.Z) {
		points++
	}
	if t.isTree(w, p.X, p.Y+1, p.Z) {
		points++
	}
	for i := 2; i < TreeHeight; i++ {
		if !blocks.SafeSideAndCeilingAround(w, p.X, p.Y+i, p.Z) {
			break
		}
		if t.isTree(w, p.X, p.Y+i, p.Z) {
			points++
		}
	}
	if points == 0 {
		return search.Reject
	}
	return float64(distance + 20 - points*2)
}

// Arrived mines the trunk above the entity, optionally replants, and waits
// for the drops.
func (t *Tree) Arrived(w blocks.Reader, p world.Pos, sink tasks.Sink) {
	mineAbove := 0
	for i := 2; i < TreeHeight; i++ {
		if t.isTree(w, p.X, p.Y+i, p.Z) {
			mineAbove = i
		}
	}
	top := 0
	for i := 2; i <= mineAbove; i++ {
		if !blocks.SafeSideAndCeilingAround(w, p.X, p.Y+i, p.Z) {
			break
		}
		if !blocks.AirSet.IsAt(w, p.X, p.Y+i, p.Z) {
			top = i
		}
	}
	if top > 0 {
		sink.AddTask(tasks.DestroyInRange{Low: p.Up(2), High: p.Up(top)})
	}
	if t.Replant && t.Wood != nil {
		sink.AddTask(tasks.PlantSapling{Pos: p, Wood: *t.Wood})
	}
	sink.AddTask(tasks.Wait{Ticks: mineAbove * 2})
}
