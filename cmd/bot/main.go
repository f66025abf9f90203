package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"voxelpath.ai/internal/persistence/snapshot"
	"voxelpath.ai/internal/protocol"
	"voxelpath.ai/internal/sim/world/terrain/store"
)

var (
	url      string
	name     string
	snapPath string
	goal     string
	wood     string
	replant  bool
	radius   int
	below    int
	above    int
	timeout  time.Duration
	rle      bool
)

var rootCmd = &cobra.Command{
	Use:          "bot",
	Short:        "Send one PLAN for the area around the player in a region snapshot",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&url, "url", "ws://localhost:8090/v1/ws", "Service websocket url")
	f.StringVar(&name, "name", "bot", "Client name")
	f.StringVar(&snapPath, "snapshot", "", "Region snapshot to plan in")
	f.StringVar(&goal, "goal", protocol.GoalTree, "Goal kind: MOVE or TREE")
	f.StringVar(&wood, "wood", "", "TREE wood type")
	f.BoolVar(&replant, "replant", false, "TREE: plant a sapling after harvesting")
	f.IntVar(&radius, "radius", 16, "Blocks sent around the player on x and z")
	f.IntVar(&below, "below", 4, "Blocks sent below the player")
	f.IntVar(&above, "above", 12, "Blocks sent above the player")
	f.BoolVar(&rle, "rle", true, "Send region blocks run-length encoded")
	f.DurationVar(&timeout, "timeout", 30*time.Second, "How long to wait for the result")
	_ = rootCmd.MarkFlagRequired("snapshot")
}

func run(cmd *cobra.Command, args []string) error {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	snap, err := snapshot.ReadSnapshot(snapPath)
	if err != nil {
		return err
	}
	s, err := store.Import(snap)
	if err != nil {
		return err
	}
	p := s.PlayerPosition()
	origin := [3]int{p.X - radius, max(p.Y-below, s.MinY), p.Z - radius}
	top := min(p.Y+above, s.MinY+s.Height-1)
	size := [3]int{2*radius + 1, top - origin[1] + 1, 2*radius + 1}
	region := protocol.RegionFrom(s, origin, size)
	volume := region.Volume()
	if rle {
		region = region.Compact()
	}

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(protocol.HelloMsg{Type: protocol.TypeHello, ProtocolVersion: protocol.Version, ClientName: name}); err != nil {
		return fmt.Errorf("send HELLO: %w", err)
	}
	deadline := time.Now().Add(timeout)
	_ = conn.SetReadDeadline(deadline)

	planID := fmt.Sprintf("%s-%d", name, time.Now().UnixNano())
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		base, err := protocol.DecodeBase(msg)
		if err != nil {
			continue
		}
		switch base.Type {
		case protocol.TypeWelcome:
			var w protocol.WelcomeMsg
			if err := json.Unmarshal(msg, &w); err != nil {
				return err
			}
			logger.Info("WELCOME", zap.String("session", w.SessionID), zap.String("blocks_digest", w.Catalog.BlocksDigest))
			plan := protocol.PlanMsg{
				Type:   protocol.TypePlan,
				ID:     planID,
				Goal:   protocol.Goal{Kind: strings.ToUpper(goal), Wood: wood, Replant: replant},
				Region: region,
				Player: p.ToArray(),
			}
			if err := conn.WriteJSON(plan); err != nil {
				return fmt.Errorf("send PLAN: %w", err)
			}
			logger.Info("PLAN sent", zap.String("id", planID), zap.Int("blocks", volume), zap.Bool("rle", rle))

		case protocol.TypePlanResult:
			var res protocol.PlanResultMsg
			if err := json.Unmarshal(msg, &res); err != nil {
				return err
			}
			logger.Info("PLAN_RESULT",
				zap.String("status", res.Status),
				zap.Int("waypoints", len(res.Waypoints)),
				zap.Int("estimate_ticks", res.EstimateTicks),
				zap.Int("steps", res.Steps),
			)
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res.Tasks)

		case protocol.TypeError:
			var e protocol.ErrorMsg
			_ = json.Unmarshal(msg, &e)
			return fmt.Errorf("%s: %s", e.Code, e.Message)
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
