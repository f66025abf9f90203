package catalogs

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"voxelpath.ai/internal/sim/blocks"
	"voxelpath.ai/internal/sim/world"
)

//go:embed blocks.json
var defaultBlocksJSON []byte

type Catalogs struct {
	Blocks BlockCatalog
}

type BlockCatalog struct {
	Defs   []BlockDef
	ByName map[string]BlockDef
	ByID   map[blocks.ID]BlockDef
	Digest string
}

type BlockDef struct {
	Name     string  `json:"name"`
	ID       int     `json:"id"`
	Hardness float64 `json:"hardness"`
	// Hand is true when the block drops without a tool, which also makes
	// it break faster by hand.
	Hand bool `json:"hand"`
}

// Load reads <configDir>/blocks.json, falling back to the embedded catalog
// when configDir is empty or holds no blocks.json.
func Load(configDir string) (*Catalogs, error) {
	raw := defaultBlocksJSON
	if configDir != "" {
		b, err := os.ReadFile(filepath.Join(configDir, "blocks.json"))
		switch {
		case err == nil:
			raw = b
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, err
		}
	}
	var c Catalogs
	if err := parseBlocks(raw, &c.Blocks); err != nil {
		return nil, err
	}
	return &c, nil
}

// Default returns the embedded catalog.
func Default() *Catalogs {
	c, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("embedded blocks.json: %v", err))
	}
	return c
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func parseBlocks(raw []byte, out *BlockCatalog) error {
	var defs []BlockDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("blocks.json: %w", err)
	}
	out.ByName = make(map[string]BlockDef, len(defs))
	out.ByID = make(map[blocks.ID]BlockDef, len(defs))
	for _, d := range defs {
		d.Name = strings.ToLower(strings.TrimSpace(d.Name))
		if d.Name == "" {
			return fmt.Errorf("blocks.json: empty name")
		}
		if d.ID < 0 || d.ID > int(blocks.MaxID) {
			return fmt.Errorf("blocks.json: %s: id %d out of range", d.Name, d.ID)
		}
		if _, dup := out.ByName[d.Name]; dup {
			return fmt.Errorf("blocks.json: duplicate name %q", d.Name)
		}
		if _, dup := out.ByID[blocks.ID(d.ID)]; dup {
			return fmt.Errorf("blocks.json: duplicate id %d", d.ID)
		}
		out.ByName[d.Name] = d
		out.ByID[blocks.ID(d.ID)] = d
		out.Defs = append(out.Defs, d)
	}
	if d, ok := out.ByName["air"]; !ok || d.ID != int(blocks.Air) {
		return fmt.Errorf("blocks.json: missing air with id 0")
	}
	sort.Slice(out.Defs, func(i, j int) bool { return out.Defs[i].ID < out.Defs[j].ID })
	canon, _ := json.Marshal(out.Defs)
	out.Digest = sha256Hex(canon)
	return nil
}

// SetOf resolves block names into a named set. A name may carry a ":meta"
// suffix to select a single state; otherwise every metadata value matches.
func (c BlockCatalog) SetOf(setName string, names []string) (blocks.Set, error) {
	var ids []blocks.ID
	var states []blocks.State
	for _, raw := range names {
		name, metaStr, hasMeta := strings.Cut(strings.ToLower(strings.TrimSpace(raw)), ":")
		d, ok := c.ByName[name]
		if !ok {
			return blocks.Set{}, fmt.Errorf("%s: unknown block %q", setName, raw)
		}
		if !hasMeta {
			ids = append(ids, blocks.ID(d.ID))
			continue
		}
		meta, err := strconv.Atoi(metaStr)
		if err != nil || meta < 0 || meta > 15 {
			return blocks.Set{}, fmt.Errorf("%s: bad metadata in %q", setName, raw)
		}
		states = append(states, blocks.StateOf(blocks.ID(d.ID), meta))
	}
	return blocks.New(setName, ids...).Union(blocks.NewStates(setName, states...)).Named(setName), nil
}

// Names lists the catalog names of the ids present in s.
func (c BlockCatalog) Names(s blocks.Set) []string {
	var out []string
	for _, id := range s.IDs() {
		if d, ok := c.ByID[id]; ok {
			out = append(out, d.Name)
		} else {
			out = append(out, strconv.Itoa(int(id)))
		}
	}
	return out
}

func (c BlockCatalog) Name(id blocks.ID) string {
	if d, ok := c.ByID[id]; ok {
		return d.Name
	}
	return strconv.Itoa(int(id))
}

// Hardness is the bare-hand relative hardness: damage per tick, where the
// block breaks at 1. Unknown and unbreakable blocks yield 0.
func (c BlockCatalog) Hardness() world.HardnessFunc {
	return func(_ world.Pos, st blocks.State) float64 {
		d, ok := c.ByID[st.ID()]
		if !ok || d.Hardness < 0 {
			return 0
		}
		if d.Hardness == 0 {
			return math.Inf(1)
		}
		if d.Hand {
			return 1 / d.Hardness / 30
		}
		return 1 / d.Hardness / 100
	}
}
