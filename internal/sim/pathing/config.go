package pathing

import (
	"fmt"

	"voxelpath.ai/internal/sim/blocks"
	"voxelpath.ai/internal/sim/catalogs"
	"voxelpath.ai/internal/sim/tuning"
)

// Config is the resolved, immutable planner configuration. Planners copy
// it at construction; later settings reloads never reach a running search.
type Config struct {
	Forbidden    blocks.Set
	UpwardsBuild blocks.Set
	// TorchLightLevel is carried through but not acted on by the compiler.
	TorchLightLevel float64

	Radius     int
	MinY, MaxY int
	Budget     int
}

func DefaultConfig() Config {
	s := tuning.Default()
	return Config{
		Forbidden:       blocks.DefaultForbidden,
		UpwardsBuild:    blocks.DefaultUpwardsBuild,
		TorchLightLevel: s.PlaceTorchesAt,
		Radius:          s.Search.Radius,
		MinY:            s.Search.MinY,
		MaxY:            s.Search.MaxY,
		Budget:          s.Search.BudgetNodes,
	}
}

// NewConfig resolves block names from settings against the catalog.
func NewConfig(s tuning.Settings, cat catalogs.BlockCatalog) (Config, error) {
	cfg := DefaultConfig()
	s = s.Normalize()
	if s.BlacklistedBlocks != nil {
		set, err := cat.SetOf("blacklisted_blocks", s.BlacklistedBlocks)
		if err != nil {
			return Config{}, fmt.Errorf("settings: %w", err)
		}
		cfg.Forbidden = set
	}
	if s.UpwardsPlaceBlock != nil {
		set, err := cat.SetOf("upwards_place_block", s.UpwardsPlaceBlock)
		if err != nil {
			return Config{}, fmt.Errorf("settings: %w", err)
		}
		cfg.UpwardsBuild = set
	}
	cfg.TorchLightLevel = s.PlaceTorchesAt
	cfg.Radius = s.Search.Radius
	cfg.MinY = s.Search.MinY
	cfg.MaxY = s.Search.MaxY
	cfg.Budget = s.Search.BudgetNodes
	return cfg, nil
}

// TreeDestination builds the tree destination described by settings.
func TreeDestination(s tuning.Settings) (*Tree, error) {
	var wood *blocks.WoodType
	if s.Tree.Wood != "" {
		w, ok := blocks.WoodTypeByName(s.Tree.Wood)
		if !ok {
			return nil, fmt.Errorf("settings: unknown wood type %q", s.Tree.Wood)
		}
		wood = &w
	}
	return NewTree(wood, s.Tree.Replant)
}
