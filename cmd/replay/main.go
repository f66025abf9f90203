package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	persistlog "voxelpath.ai/internal/persistence/log"
	"voxelpath.ai/internal/persistence/snapshot"
	"voxelpath.ai/internal/protocol"
	"voxelpath.ai/internal/sim/catalogs"
	"voxelpath.ai/internal/sim/pathing"
	"voxelpath.ai/internal/sim/tuning"
	"voxelpath.ai/internal/sim/world"
	"voxelpath.ai/internal/sim/world/terrain/store"
	"voxelpath.ai/internal/transport/ws"
)

var (
	dataDir   string
	snapPath  string
	configDir string
	status    string
)

var rootCmd = &cobra.Command{
	Use:   "replay [plans-*.jsonl.zst ...]",
	Short: "Summarize plan trace logs and optionally re-plan them against a snapshot",
	Long: `Reads plan trace logs (default: every file under <data>/plans) and prints
one line per plan. With --snapshot each FOUND plan is searched again from
its start position and the waypoints are compared with the logged ones.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&dataDir, "data", "./data", "Runtime data directory")
	f.StringVar(&snapPath, "snapshot", "", "Region snapshot to re-plan against (optional)")
	f.StringVar(&configDir, "configs", "./configs", "Config directory (blocks.json)")
	f.StringVar(&status, "status", "", "Only plans with this status")
}

func run(cmd *cobra.Command, args []string) error {
	files := args
	if len(files) == 0 {
		var err error
		files, err = persistlog.PlanFiles(dataDir)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no plan logs under %s", filepath.Join(dataDir, "plans"))
		}
	}

	var rp *replanner
	if snapPath != "" {
		var err error
		rp, err = newReplanner(snapPath, configDir)
		if err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CREATED\tPLAN\tGOAL\tSTATUS\tWAYPOINTS\tTASKS\tEST_TICKS\tSTEPS\tREPLAY")
	var total, mismatched int
	for _, path := range files {
		entries, err := persistlog.ReadPlans(path)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if status != "" && !strings.EqualFold(e.Status, status) {
				continue
			}
			total++
			verdict := "-"
			if rp != nil && e.Status == protocol.StatusFound {
				ok, err := rp.matches(cmd.Context(), e)
				switch {
				case err != nil:
					verdict = "error: " + err.Error()
					mismatched++
				case ok:
					verdict = "match"
				default:
					verdict = "MISMATCH"
					mismatched++
				}
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
				e.CreatedAt, e.PlanID, e.Goal.Kind, e.Status, len(e.Waypoints), len(e.Tasks), e.EstimateTicks, e.Steps, verdict)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d plans\n", total)
	if mismatched > 0 {
		return fmt.Errorf("%d plans did not replay", mismatched)
	}
	return nil
}

type replanner struct {
	snap     snapshot.SnapshotV1
	cat      *catalogs.Catalogs
	settings tuning.Settings
}

func newReplanner(path, configDir string) (*replanner, error) {
	snap, err := snapshot.ReadSnapshot(path)
	if err != nil {
		return nil, err
	}
	cat, err := catalogs.Load(configDir)
	if err != nil {
		return nil, err
	}
	return &replanner{snap: snap, cat: cat, settings: tuning.Default()}, nil
}

func (r *replanner) matches(ctx context.Context, e protocol.PlanLogEntry) (bool, error) {
	view, err := store.Import(r.snap)
	if err != nil {
		return false, err
	}
	view.SetPlayerPosition(world.PosFromArray(e.Start))
	dest, err := ws.Destination(e.Goal, r.settings)
	if err != nil {
		return false, err
	}
	cfg, err := pathing.NewConfig(r.settings, r.cat.Blocks)
	if err != nil {
		return false, err
	}
	res, err := pathing.NewPlanner(view, cfg, dest).Plan(ctx)
	if errors.Is(err, pathing.ErrNoPath) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	got := make([][3]int, 0, len(res.Path))
	for _, p := range res.Path {
		got = append(got, p.ToArray())
	}
	return slices.Equal(got, e.Waypoints), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
