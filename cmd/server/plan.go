package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"voxelpath.ai/internal/persistence/snapshot"
	"voxelpath.ai/internal/protocol"
	"voxelpath.ai/internal/sim/pathing"
	"voxelpath.ai/internal/sim/world/terrain/store"
	"voxelpath.ai/internal/transport/ws"
)

var (
	planSnapshot  string
	planGoal      string
	planTarget    string
	planTolerance int
	planWood      string
	planReplant   bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan once over a region snapshot and print the result as JSON",
	Example: `  server plan --snapshot data/regions/forest.snap.zst --goal TREE --wood oak --replant
  server plan --snapshot data/regions/flat.snap.zst --goal GOTO --target 10,64,-3`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planSnapshot, "snapshot", "", "Region snapshot (.snap.zst)")
	planCmd.Flags().StringVar(&planGoal, "goal", protocol.GoalTree, "Goal kind: MOVE, GOTO or TREE")
	planCmd.Flags().StringVar(&planTarget, "target", "", "GOTO target as x,y,z")
	planCmd.Flags().IntVar(&planTolerance, "tolerance", 0, "GOTO tolerance (Manhattan)")
	planCmd.Flags().StringVar(&planWood, "wood", "", "TREE wood type")
	planCmd.Flags().BoolVar(&planReplant, "replant", false, "TREE: plant a sapling after harvesting")
	_ = planCmd.MarkFlagRequired("snapshot")
}

func parseVec3(s string) ([3]int, error) {
	var out [3]int
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return out, fmt.Errorf("want x,y,z, got %q", s)
	}
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return out, fmt.Errorf("bad coordinate %q: %w", p, err)
		}
		out[i] = v
	}
	return out, nil
}

func runPlan(cmd *cobra.Command, args []string) error {
	cat, settings, err := loadConfig()
	if err != nil {
		return err
	}
	goal := protocol.Goal{
		Kind:      strings.ToUpper(planGoal),
		Tolerance: planTolerance,
		Wood:      planWood,
		Replant:   planReplant,
	}
	if planTarget != "" {
		v, err := parseVec3(planTarget)
		if err != nil {
			return fmt.Errorf("--target: %w", err)
		}
		goal.Target = &v
	}
	dest, err := ws.Destination(goal, settings)
	if err != nil {
		return err
	}

	snap, err := snapshot.ReadSnapshot(planSnapshot)
	if err != nil {
		return err
	}
	view, err := store.Import(snap)
	if err != nil {
		return err
	}
	cfg, err := pathing.NewConfig(settings, cat.Blocks)
	if err != nil {
		return err
	}

	began := time.Now()
	p := pathing.NewPlanner(view, cfg, dest, pathing.WithLogger(logger.Named("plan")))
	res, err := p.Plan(cmd.Context())

	entry := protocol.PlanLogEntry{
		PlanID:    uuid.NewString(),
		RequestID: snap.Header.Region,
		CreatedAt: began.UTC().Format(time.RFC3339Nano),
		Goal:      goal,
		Status:    protocol.StatusFound,
		Start:     view.PlayerPosition().ToArray(),
		End:       view.PlayerPosition().ToArray(),
		Steps:     res.Steps,
		Expanded:  res.Expanded,
	}
	switch {
	case errors.Is(err, pathing.ErrNoPath):
		entry.Status = protocol.StatusNoPath
	case err != nil:
		return err
	default:
		for _, wp := range res.Path {
			entry.Waypoints = append(entry.Waypoints, wp.ToArray())
		}
		entry.End = entry.Waypoints[len(entry.Waypoints)-1]
		entry.Tasks = protocol.EncodeTasks(res.Tasks)
		entry.EstimateTicks = p.Estimate(cat.Blocks.Hardness())
	}
	entry.DurationMs = time.Since(began).Milliseconds()
	logger.Debug("plan done", zap.String("status", entry.Status), zap.Int("expanded", entry.Expanded))

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(entry)
}
