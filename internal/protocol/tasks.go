package protocol

import (
	"fmt"

	"voxelpath.ai/internal/sim/blocks"
	"voxelpath.ai/internal/sim/tasks"
	"voxelpath.ai/internal/sim/world"
)

// TaskJSON is the wire form of one task primitive. Only the fields of the
// given kind are set.
type TaskJSON struct {
	Kind    string  `json:"kind"`
	Pos     *[3]int `json:"pos,omitempty"`
	From    *[3]int `json:"from,omitempty"`
	Through *[3]int `json:"through,omitempty"`
	Target  *[3]int `json:"target,omitempty"`
	Low     *[3]int `json:"low,omitempty"`
	High    *[3]int `json:"high,omitempty"`
	X       *int    `json:"x,omitempty"`
	Z       *int    `json:"z,omitempty"`
	// FilterIDs lists the block ids an UpwardsMove may place.
	FilterIDs []int  `json:"filter_ids,omitempty"`
	Wood      string `json:"wood,omitempty"`
	Ticks     *int   `json:"ticks,omitempty"`
}

func arr(p world.Pos) *[3]int {
	a := p.ToArray()
	return &a
}

func intp(v int) *int { return &v }

func EncodeTask(t tasks.Task) TaskJSON {
	out := TaskJSON{Kind: string(t.Kind())}
	switch v := t.(type) {
	case tasks.AlignToGrid:
		out.Pos = arr(v.Pos)
	case tasks.WalkTowards:
		out.X, out.Z, out.From = intp(v.X), intp(v.Z), arr(v.From)
	case tasks.JumpMove:
		out.Through, out.X, out.Z = arr(v.Through), intp(v.X), intp(v.Z)
	case tasks.UpwardsMove:
		out.Target = arr(v.Target)
		if f, ok := v.Filter.(tasks.BlockItemFilter); ok {
			for _, id := range f.Blocks.IDs() {
				out.FilterIDs = append(out.FilterIDs, int(id))
			}
		}
	case tasks.DownwardsMove:
		out.Target = arr(v.Target)
	case tasks.HorizontalMove:
		out.Target = arr(v.Target)
	case tasks.DestroyInRange:
		out.Low, out.High = arr(v.Low), arr(v.High)
	case tasks.PlantSapling:
		out.Pos = arr(v.Pos)
		out.Wood = v.Wood.Name
	case tasks.Wait:
		out.Ticks = intp(v.Ticks)
	}
	return out
}

func EncodeTasks(ts []tasks.Task) []TaskJSON {
	out := make([]TaskJSON, 0, len(ts))
	for _, t := range ts {
		out = append(out, EncodeTask(t))
	}
	return out
}

// DecodeTask is the inverse of EncodeTask.
func DecodeTask(j TaskJSON) (tasks.Task, error) {
	need := func(name string, ok bool) error {
		if !ok {
			return fmt.Errorf("task %s: missing %s", j.Kind, name)
		}
		return nil
	}
	pos := func(a *[3]int) world.Pos { return world.PosFromArray(*a) }

	switch tasks.Kind(j.Kind) {
	case tasks.KindAlignToGrid:
		if err := need("pos", j.Pos != nil); err != nil {
			return nil, err
		}
		return tasks.AlignToGrid{Pos: pos(j.Pos)}, nil
	case tasks.KindWalkTowards:
		if err := need("x/z/from", j.X != nil && j.Z != nil && j.From != nil); err != nil {
			return nil, err
		}
		return tasks.WalkTowards{X: *j.X, Z: *j.Z, From: pos(j.From)}, nil
	case tasks.KindJumpMove:
		if err := need("through/x/z", j.Through != nil && j.X != nil && j.Z != nil); err != nil {
			return nil, err
		}
		return tasks.JumpMove{Through: pos(j.Through), X: *j.X, Z: *j.Z}, nil
	case tasks.KindUpwardsMove:
		if err := need("target", j.Target != nil); err != nil {
			return nil, err
		}
		ids := make([]blocks.ID, 0, len(j.FilterIDs))
		for _, id := range j.FilterIDs {
			ids = append(ids, blocks.ID(id))
		}
		return tasks.UpwardsMove{Target: pos(j.Target), Filter: tasks.BlockItemFilter{Blocks: blocks.New("filter", ids...)}}, nil
	case tasks.KindDownwardsMove:
		if err := need("target", j.Target != nil); err != nil {
			return nil, err
		}
		return tasks.DownwardsMove{Target: pos(j.Target)}, nil
	case tasks.KindHorizontalMove:
		if err := need("target", j.Target != nil); err != nil {
			return nil, err
		}
		return tasks.HorizontalMove{Target: pos(j.Target)}, nil
	case tasks.KindDestroyInRange:
		if err := need("low/high", j.Low != nil && j.High != nil); err != nil {
			return nil, err
		}
		return tasks.DestroyInRange{Low: pos(j.Low), High: pos(j.High)}, nil
	case tasks.KindPlantSapling:
		if err := need("pos", j.Pos != nil); err != nil {
			return nil, err
		}
		w, ok := blocks.WoodTypeByName(j.Wood)
		if !ok {
			return nil, fmt.Errorf("task %s: unknown wood %q", j.Kind, j.Wood)
		}
		return tasks.PlantSapling{Pos: pos(j.Pos), Wood: w}, nil
	case tasks.KindWait:
		if err := need("ticks", j.Ticks != nil); err != nil {
			return nil, err
		}
		return tasks.Wait{Ticks: *j.Ticks}, nil
	}
	return nil, fmt.Errorf("unknown task kind %q", j.Kind)
}
