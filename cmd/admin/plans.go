package main

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"voxelpath.ai/internal/persistence/indexdb"
)

var (
	plansData    string
	plansDB      string
	plansStatus  string
	plansGoal    string
	plansSession string
	plansLimit   int
)

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "List recent plans from the sqlite plan index",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := plansDB
		if path == "" {
			path = filepath.Join(plansData, "index", "plans.db")
		}
		db, err := indexdb.OpenDB(path)
		if err != nil {
			return fmt.Errorf("open index: %w", err)
		}
		defer db.Close()

		rows, err := indexdb.ListPlans(cmd.Context(), db, indexdb.PlanFilter{
			Status:  plansStatus,
			Goal:    plansGoal,
			Session: plansSession,
			Limit:   plansLimit,
		})
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "CREATED\tPLAN\tGOAL\tSTATUS\tSTART\tEND\tWAYPOINTS\tTASKS\tEST_TICKS\tEXPANDED")
		for _, r := range rows {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%v\t%v\t%d\t%d\t%d\t%d\n",
				r.CreatedAt, r.PlanID, r.Goal, r.Status, r.Start, r.End, r.Waypoints, r.Tasks, r.EstimateTicks, r.Expanded)
		}
		return tw.Flush()
	},
}

func init() {
	f := plansCmd.Flags()
	f.StringVar(&plansData, "data", "./data", "Runtime data directory")
	f.StringVar(&plansDB, "db", "", "sqlite db path (default: <data>/index/plans.db)")
	f.StringVar(&plansStatus, "status", "", "Filter by status (FOUND, NO_PATH)")
	f.StringVar(&plansGoal, "goal", "", "Filter by goal kind")
	f.StringVar(&plansSession, "session", "", "Filter by session id")
	f.IntVar(&plansLimit, "limit", 20, "Result limit")
}
