package pathing

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"voxelpath.ai/internal/sim/search"
	"voxelpath.ai/internal/sim/tasks"
	"voxelpath.ai/internal/sim/world"
)

var ErrNoPath = errors.New("no path found")

// Planner runs one destination search over a world view. It is the search
// policy: traversal rules decide edges, the destination rates nodes.
type Planner struct {
	view world.View
	cfg  Config
	trav Traversal
	dest Destination
	log  *zap.Logger

	engine *search.Engine
	path   []world.Pos
}

type Option func(*Planner)

func WithLogger(l *zap.Logger) Option {
	return func(p *Planner) {
		if l != nil {
			p.log = l
		}
	}
}

func NewPlanner(view world.View, cfg Config, dest Destination, opts ...Option) *Planner {
	if dest == nil {
		dest = Move{}
	}
	p := &Planner{
		view: view,
		cfg:  cfg,
		trav: NewTraversal(cfg),
		dest: dest,
		log:  zap.NewNop(),
	}
	for _, o := range opts {
		o(p)
	}
	if pt, ok := dest.(passThrougher); ok {
		p.trav = p.trav.WithPassThrough(pt.PassThrough())
	}
	engineOpts := []search.Option{search.WithLogger(p.log)}
	if cfg.Radius > 0 {
		engineOpts = append(engineOpts, search.WithBounds(cfg.Radius, cfg.MinY, cfg.MaxY))
	}
	p.engine = search.NewEngine(p, engineOpts...)
	return p
}

func (p *Planner) Admissible(from, to world.Pos) bool {
	return p.trav.SafeToTravel(p.view, from, to)
}

func (p *Planner) Cost(from, to world.Pos) int {
	return p.trav.Cost(p.view, from, to)
}

func (p *Planner) Rate(distance int, at world.Pos) float64 {
	return p.dest.Rate(p.view, distance, at)
}

// Start opens a search from the entity's current position.
func (p *Planner) Start() {
	p.path = nil
	p.engine.Start(p.view.PlayerPosition())
}

// Search expands up to budget nodes. done is false while the search needs
// more time; once done, err is nil on success and ErrNoPath otherwise.
func (p *Planner) Search(budget int) (done bool, err error) {
	switch p.engine.Step(budget) {
	case search.StatusNeedMoreTime:
		return false, nil
	case search.StatusFound:
		p.path = p.engine.Path()
		return true, nil
	default:
		return true, ErrNoPath
	}
}

// Path is the found waypoint list, origin first.
func (p *Planner) Path() []world.Pos { return p.path }

// Expanded is the number of nodes the search has closed.
func (p *Planner) Expanded() int { return p.engine.Expanded() }

// Compile emits the tasks for the found path, including the destination's
// arrival tasks, and returns the final position.
func (p *Planner) Compile(sink tasks.Sink) (world.Pos, error) {
	if len(p.path) == 0 {
		return world.Pos{}, ErrNoPath
	}
	c := Compiler{
		World:        p.view,
		UpwardsBuild: p.cfg.UpwardsBuild,
		Destination:  p.dest,
		Log:          p.log,
	}
	return c.Compile(p.path, sink), nil
}

// Result summarizes a finished plan.
type Result struct {
	Path     []world.Pos
	Tasks    []tasks.Task
	Steps    int
	Expanded int
}

// Plan runs the search to completion in budget-sized slices, checking ctx
// between slices, and compiles the result.
func (p *Planner) Plan(ctx context.Context) (Result, error) {
	budget := p.cfg.Budget
	if budget <= 0 {
		budget = DefaultConfig().Budget
	}
	p.Start()
	steps := 0
	for {
		if err := ctx.Err(); err != nil {
			return Result{Steps: steps, Expanded: p.Expanded()}, err
		}
		steps++
		done, err := p.Search(budget)
		if !done {
			continue
		}
		if err != nil {
			return Result{Steps: steps, Expanded: p.Expanded()}, err
		}
		break
	}
	var q tasks.Queue
	if _, err := p.Compile(&q); err != nil {
		return Result{}, err
	}
	return Result{
		Path:     p.Path(),
		Tasks:    q.Tasks(),
		Steps:    steps,
		Expanded: p.Expanded(),
	}, nil
}
