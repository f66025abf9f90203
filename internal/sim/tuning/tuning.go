package tuning

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed settings.schema.json
var settingsSchemaJSON []byte

// Settings is the planner configuration file. Unset block lists keep the
// built-in defaults; an explicitly empty list clears them.
type Settings struct {
	BlacklistedBlocks []string `yaml:"blacklisted_blocks" json:"blacklisted_blocks"`
	UpwardsPlaceBlock []string `yaml:"upwards_place_block" json:"upwards_place_block"`
	// PlaceTorchesAt is the light level below which torches would be
	// placed. It is read and clamped but no planner acts on it yet.
	PlaceTorchesAt float64 `yaml:"place_torches_at" json:"place_torches_at"`

	Search Search `yaml:"search" json:"search"`
	Tree   Tree   `yaml:"tree" json:"tree"`
	Server Server `yaml:"server" json:"server"`
}

type Search struct {
	BudgetNodes int `yaml:"budget_nodes" json:"budget_nodes"`
	Radius      int `yaml:"radius" json:"radius"`
	MinY        int `yaml:"min_y" json:"min_y"`
	MaxY        int `yaml:"max_y" json:"max_y"`
}

type Tree struct {
	Wood    string `yaml:"wood" json:"wood"`
	Replant bool   `yaml:"replant" json:"replant"`
}

type Server struct {
	Addr    string `yaml:"addr" json:"addr"`
	TickMs  int    `yaml:"tick_ms" json:"tick_ms"`
	DataDir string `yaml:"data_dir" json:"data_dir"`
}

func Default() Settings {
	return Settings{
		PlaceTorchesAt: 1,
		Search: Search{
			BudgetNodes: 2000,
			Radius:      64,
			MinY:        0,
			MaxY:        255,
		},
		Server: Server{
			Addr:    ":8090",
			TickMs:  50,
			DataDir: "data",
		},
	}
}

func Load(path string) (Settings, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, err
	}
	s, err := Parse(raw)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes YAML over the defaults, validates it and normalizes ranges.
func Parse(raw []byte) (Settings, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Settings{}, fmt.Errorf("settings: %w", err)
	}
	if doc != nil {
		if err := validate(doc); err != nil {
			return Settings{}, fmt.Errorf("settings: %w", err)
		}
	}
	s := Default()
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return Settings{}, fmt.Errorf("settings: %w", err)
	}
	return s.Normalize(), nil
}

// Normalize clamps values into their supported ranges.
func (s Settings) Normalize() Settings {
	if s.PlaceTorchesAt < -1 {
		s.PlaceTorchesAt = -1
	}
	if s.PlaceTorchesAt > 15 {
		s.PlaceTorchesAt = 15
	}
	if s.Search.BudgetNodes <= 0 {
		s.Search.BudgetNodes = Default().Search.BudgetNodes
	}
	if s.Search.MaxY < s.Search.MinY {
		s.Search.MinY, s.Search.MaxY = s.Search.MaxY, s.Search.MinY
	}
	if s.Server.TickMs <= 0 {
		s.Server.TickMs = Default().Server.TickMs
	}
	return s
}

const settingsSchemaURL = "https://voxelpath.ai/schemas/settings.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func settingsSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(settingsSchemaURL, bytes.NewReader(settingsSchemaJSON)); err != nil {
			schemaErr = err
			return
		}
		schema, schemaErr = c.Compile(settingsSchemaURL)
	})
	return schema, schemaErr
}

// validate checks a decoded YAML document. The document goes through JSON
// so that YAML-native types (int, map[string]any) match what the schema
// validator expects.
func validate(doc any) error {
	s, err := settingsSchema()
	if err != nil {
		return err
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	return s.Validate(v)
}
