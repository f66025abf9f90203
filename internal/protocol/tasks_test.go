package protocol

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"voxelpath.ai/internal/sim/blocks"
	"voxelpath.ai/internal/sim/tasks"
	"voxelpath.ai/internal/sim/world"
)

func TestTaskWireForm(t *testing.T) {
	all := []tasks.Task{
		tasks.AlignToGrid{Pos: world.Pos{X: 1, Y: 64, Z: -1}},
		tasks.WalkTowards{X: 0, Z: 9, From: world.Pos{Y: 64}},
		tasks.JumpMove{Through: world.Pos{Y: 65}, X: 1, Z: 0},
		tasks.UpwardsMove{Target: world.Pos{Y: 65}, Filter: tasks.BlockItemFilter{Blocks: blocks.DefaultUpwardsBuild}},
		tasks.DownwardsMove{Target: world.Pos{Y: 63}},
		tasks.HorizontalMove{Target: world.Pos{X: 1, Y: 63}},
		tasks.DestroyInRange{Low: world.Pos{Y: 66}, High: world.Pos{Y: 68}},
		tasks.PlantSapling{Pos: world.Pos{Y: 64}, Wood: blocks.DarkOak},
		tasks.Wait{Ticks: 8},
	}
	raw, err := json.Marshal(EncodeTasks(all))
	if err != nil {
		t.Fatal(err)
	}
	var wire []TaskJSON
	if err := json.Unmarshal(raw, &wire); err != nil {
		t.Fatal(err)
	}
	var back []tasks.Task
	for _, j := range wire {
		task, err := DecodeTask(j)
		if err != nil {
			t.Fatalf("decode %s: %v", j.Kind, err)
		}
		back = append(back, task)
	}
	if d := cmp.Diff(all, back, cmp.Comparer(func(a, b blocks.Set) bool { return a.Equal(b) })); d != "" {
		t.Fatalf("wire form changed tasks (-want +got):\n%s", d)
	}
}

func TestWalkTowardsKeepsZeroCoordinates(t *testing.T) {
	raw, _ := json.Marshal(EncodeTask(tasks.WalkTowards{From: world.Pos{Y: 64}}))
	if string(raw) != `{"kind":"WALK_TOWARDS","from":[0,64,0],"x":0,"z":0}` {
		t.Fatalf("unexpected wire form: %s", raw)
	}
}

func TestDecodeTaskErrors(t *testing.T) {
	if _, err := DecodeTask(TaskJSON{Kind: "FLY"}); err == nil {
		t.Fatalf("expected unknown kind error")
	}
	if _, err := DecodeTask(TaskJSON{Kind: string(tasks.KindWait)}); err == nil {
		t.Fatalf("expected missing ticks error")
	}
	if _, err := DecodeTask(TaskJSON{Kind: string(tasks.KindPlantSapling), Pos: &[3]int{}, Wood: "palm"}); err == nil {
		t.Fatalf("expected unknown wood error")
	}
}

func TestRegion(t *testing.T) {
	src := map[[3]int]blocks.State{
		{1, 2, 3}: blocks.StateOf(blocks.Stone, 0),
		{2, 3, 4}: blocks.StateOf(blocks.Log, 1),
	}
	reader := readerFunc(func(x, y, z int) blocks.State { return src[[3]int{x, y, z}] })
	r := RegionFrom(reader, [3]int{1, 2, 3}, [3]int{2, 2, 2})
	if err := r.Validate(); err != nil {
		t.Fatal(err)
	}
	dst := map[[3]int]blocks.State{}
	r.Apply(writerFunc(func(x, y, z int, st blocks.State) {
		if st != 0 {
			dst[[3]int{x, y, z}] = st
		}
	}))
	if d := cmp.Diff(src, dst); d != "" {
		t.Fatalf("region round trip (-want +got):\n%s", d)
	}
	if !r.Contains(2, 3, 4) || r.Contains(3, 3, 4) {
		t.Fatalf("contains mismatch")
	}

	compact := r.Compact()
	if len(compact.Blocks) != 0 || compact.BlocksRLE == "" {
		t.Fatalf("compact kept raw blocks: %+v", compact)
	}
	if err := compact.Validate(); err == nil {
		t.Fatalf("expected unexpanded region to fail validation")
	}
	if err := compact.Expand(); err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(r, compact); d != "" {
		t.Fatalf("compact round trip (-want +got):\n%s", d)
	}
	both := Region{Size: [3]int{1, 1, 1}, Blocks: []uint16{0}, BlocksRLE: "AAE="}
	if err := both.Expand(); err == nil {
		t.Fatalf("expected error for both block encodings")
	}
	tooLong := Region{Size: [3]int{1, 1, 1}, BlocksRLE: Region{Blocks: []uint16{0, 0}}.Compact().BlocksRLE}
	if err := tooLong.Expand(); err == nil {
		t.Fatalf("expected overlong blocks_rle to fail")
	}

	bad := Region{Size: [3]int{2, 2, 2}, Blocks: make([]uint16, 7)}
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected length mismatch")
	}
}

type readerFunc func(x, y, z int) blocks.State

func (f readerFunc) BlockStateAt(x, y, z int) blocks.State { return f(x, y, z) }

type writerFunc func(x, y, z int, st blocks.State)

func (f writerFunc) SetBlock(x, y, z int, st blocks.State) { f(x, y, z, st) }
