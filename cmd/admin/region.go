package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"voxelpath.ai/internal/persistence/snapshot"
	"voxelpath.ai/internal/sim/blocks"
	"voxelpath.ai/internal/sim/world"
	"voxelpath.ai/internal/sim/world/terrain/gen"
	"voxelpath.ai/internal/sim/world/terrain/store"
)

var (
	regionOut     string
	regionName    string
	regionSeed    int64
	regionChunks  int
	regionMinY    int
	regionHeight  int
	regionBaseY   int
	regionTrees   int
	regionWood    string
	regionBiomeSz int
	inspectChunks bool
)

var genRegionCmd = &cobra.Command{
	Use:   "gen-region",
	Short: "Generate a terrain region and write it as a snapshot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t := &gen.Terrain{
			Seed:            regionSeed,
			MinY:            regionMinY,
			BaseY:           regionBaseY,
			BiomeRegionSize: regionBiomeSz,
			StepGrid:        8,
			TreePermille:    regionTrees,
		}
		if regionWood != "" {
			w, ok := blocks.WoodTypeByName(regionWood)
			if !ok {
				return fmt.Errorf("unknown wood type %q", regionWood)
			}
			t.Wood = &w
		}
		s := store.NewChunkStore(store.Config{MinY: regionMinY, Height: regionHeight, Gen: t})
		for cx := -regionChunks; cx < regionChunks; cx++ {
			for cz := -regionChunks; cz < regionChunks; cz++ {
				s.GetOrGenChunk(cx, cz)
			}
		}
		s.SetPlayerPosition(world.Pos{X: 0, Y: t.GroundY(0, 0) + 1, Z: 0})

		snap := s.Export(regionName)
		if err := snapshot.WriteSnapshot(regionOut, snap); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %d chunks, player %v, digest %s\n", regionOut, len(snap.Chunks), snap.Player, snap.Header.Digest)
		return nil
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <snapshot>",
	Short: "Summarize a region snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := snapshot.ReadSnapshot(args[0])
		if err != nil {
			return err
		}
		s, err := store.Import(snap)
		if err != nil {
			return err
		}
		counts := map[blocks.ID]int{}
		for _, k := range s.LoadedChunkKeys() {
			for _, b := range s.Chunks[k].Blocks {
				counts[blocks.State(b).ID()]++
			}
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "region=%q seed=%d min_y=%d height=%d chunks=%d player=%v digest=%s\n",
			snap.Header.Region, snap.Seed, snap.MinY, snap.Height, len(snap.Chunks), snap.Player, s.RegionDigest())
		for _, id := range []blocks.ID{blocks.Stone, blocks.Dirt, blocks.Grass, blocks.Log, blocks.Log2, blocks.Leaves, blocks.Water} {
			if counts[id] > 0 {
				fmt.Fprintf(out, "  id %3d: %d\n", id, counts[id])
			}
		}
		if inspectChunks {
			digests := s.ChunkDigests()
			for _, k := range s.LoadedChunkKeys() {
				fmt.Fprintf(out, "  chunk %d,%d %s\n", k.CX, k.CZ, digests[k])
			}
		}
		return nil
	},
}

func init() {
	f := genRegionCmd.Flags()
	f.StringVar(&regionOut, "out", "data/regions/region.snap.zst", "Output snapshot path")
	f.StringVar(&regionName, "region", "generated", "Region name stored in the header")
	f.Int64Var(&regionSeed, "seed", 1337, "Terrain seed")
	f.IntVar(&regionChunks, "chunks", 2, "Half-width in chunks; the region spans [-n, n) chunks on x and z")
	f.IntVar(&regionMinY, "min-y", 0, "Lowest stored y")
	f.IntVar(&regionHeight, "height", 128, "Stored layers")
	f.IntVar(&regionBaseY, "base-y", 63, "Ground level")
	f.IntVar(&regionTrees, "trees", 400, "Tree chance per grid cell, in permille")
	f.StringVar(&regionWood, "wood", "", "Force one wood type")
	f.IntVar(&regionBiomeSz, "biome-size", 0, "Biome region size; 0 makes the whole region forest")

	inspectCmd.Flags().BoolVar(&inspectChunks, "chunks", false, "Also print every chunk digest")
}
