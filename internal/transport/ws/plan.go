package ws

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"voxelpath.ai/internal/protocol"
	"voxelpath.ai/internal/sim/blocks"
	"voxelpath.ai/internal/sim/pathing"
	"voxelpath.ai/internal/sim/tasks"
	"voxelpath.ai/internal/sim/tuning"
	"voxelpath.ai/internal/sim/world"
	"voxelpath.ai/internal/sim/world/terrain/store"
)

func planError(id, code, format string, args ...any) *protocol.ErrorMsg {
	return &protocol.ErrorMsg{Type: protocol.TypeError, ID: id, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Destination maps a wire goal onto a destination policy. A tree goal
// without its own wood or replant flag falls back to the tree settings.
func Destination(g protocol.Goal, settings tuning.Settings) (pathing.Destination, error) {
	switch g.Kind {
	case protocol.GoalMove:
		return pathing.Move{}, nil
	case protocol.GoalGoTo:
		if g.Target == nil {
			return nil, errors.New("GOTO needs a target")
		}
		return pathing.GoTo{Target: world.PosFromArray(*g.Target), Tolerance: g.Tolerance}, nil
	case protocol.GoalTree:
		if g.Wood == "" && !g.Replant {
			return pathing.TreeDestination(settings)
		}
		var wood *blocks.WoodType
		if g.Wood != "" {
			w, ok := blocks.WoodTypeByName(g.Wood)
			if !ok {
				return nil, fmt.Errorf("unknown wood type %q", g.Wood)
			}
			wood = &w
		}
		return pathing.NewTree(wood, g.Replant)
	}
	return nil, fmt.Errorf("unknown goal kind %q", g.Kind)
}

// RegionWorld loads a region into a fresh store with the player placed.
// Cells outside the region read as air.
func RegionWorld(r protocol.Region, player [3]int) (*store.ChunkStore, error) {
	if err := r.Expand(); err != nil {
		return nil, err
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if !r.Contains(player[0], player[1], player[2]) {
		return nil, fmt.Errorf("player %v outside region", player)
	}
	s := store.NewChunkStore(store.Config{MinY: r.Origin[1], Height: r.Size[1]})
	r.Apply(s)
	s.SetPlayerPosition(world.PosFromArray(player))
	return s, nil
}

// execute runs one PLAN to completion. The search advances by the
// configured node budget once per service tick; conn ends the search when
// the client leaves and stop when the server shuts down.
func (s *Server) execute(conn, stop context.Context, pm protocol.PlanMsg, sessionID string) (protocol.PlanLogEntry, *protocol.ErrorMsg) {
	settings := s.Settings()
	began := time.Now()

	dest, err := Destination(pm.Goal, settings)
	if err != nil {
		return protocol.PlanLogEntry{}, planError(pm.ID, protocol.ErrBadRequest, "%v", err)
	}
	view, err := RegionWorld(pm.Region, pm.Player)
	if err != nil {
		return protocol.PlanLogEntry{}, planError(pm.ID, protocol.ErrBadRegion, "%v", err)
	}
	cfg, err := pathing.NewConfig(settings, s.cat.Blocks)
	if err != nil {
		return protocol.PlanLogEntry{}, planError(pm.ID, protocol.ErrInternal, "%v", err)
	}
	cfg.MinY = max(cfg.MinY, pm.Region.Origin[1])
	cfg.MaxY = min(cfg.MaxY, pm.Region.Origin[1]+pm.Region.Size[1]-1)

	planID := uuid.NewString()
	log := s.log.With(zap.String("session", sessionID), zap.String("plan_id", planID), zap.String("goal", pm.Goal.Kind))
	p := pathing.NewPlanner(view, cfg, dest, pathing.WithLogger(log))

	ticker := time.NewTicker(time.Duration(settings.Server.TickMs) * time.Millisecond)
	defer ticker.Stop()

	p.Start()
	log.Debug("plan started", zap.String("request", pm.ID), zap.Int("budget", cfg.Budget))
	steps := 0
	var searchErr error
	for {
		steps++
		done, err := p.Search(cfg.Budget)
		if done {
			searchErr = err
			break
		}
		select {
		case <-conn.Done():
			return protocol.PlanLogEntry{}, planError(pm.ID, protocol.ErrCancelled, "session closed")
		case <-stop.Done():
			return protocol.PlanLogEntry{}, planError(pm.ID, protocol.ErrCancelled, "server shutting down")
		case <-ticker.C:
		}
	}

	entry := protocol.PlanLogEntry{
		PlanID:    planID,
		RequestID: pm.ID,
		SessionID: sessionID,
		CreatedAt: began.UTC().Format(time.RFC3339Nano),
		Goal:      pm.Goal,
		Start:     pm.Player,
		End:       pm.Player,
		Steps:     steps,
		Expanded:  p.Expanded(),
	}
	switch {
	case errors.Is(searchErr, pathing.ErrNoPath):
		entry.Status = protocol.StatusNoPath
	case searchErr != nil:
		return protocol.PlanLogEntry{}, planError(pm.ID, protocol.ErrInternal, "%v", searchErr)
	default:
		var q tasks.Queue
		end, err := p.Compile(&q)
		if err != nil {
			return protocol.PlanLogEntry{}, planError(pm.ID, protocol.ErrInternal, "%v", err)
		}
		entry.Status = protocol.StatusFound
		entry.End = end.ToArray()
		entry.Tasks = protocol.EncodeTasks(q.Tasks())
		for _, wp := range p.Path() {
			entry.Waypoints = append(entry.Waypoints, wp.ToArray())
		}
		entry.EstimateTicks = p.Estimate(s.cat.Blocks.Hardness())
	}
	entry.DurationMs = time.Since(began).Milliseconds()

	log.Info("plan finished",
		zap.String("status", entry.Status),
		zap.Int("steps", entry.Steps),
		zap.Int("expanded", entry.Expanded),
		zap.Int("waypoints", len(entry.Waypoints)),
		zap.Int("estimate_ticks", entry.EstimateTicks),
	)
	for _, r := range s.recorders {
		if err := r.WritePlan(entry); err != nil {
			log.Warn("record plan", zap.Error(err))
		}
	}
	return entry, nil
}
