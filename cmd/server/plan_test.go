package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxelpath.ai/internal/persistence/snapshot"
	"voxelpath.ai/internal/protocol"
	"voxelpath.ai/internal/sim/blocks"
	"voxelpath.ai/internal/sim/world"
	"voxelpath.ai/internal/sim/world/terrain/store"
)

func TestParseVec3(t *testing.T) {
	v, err := parseVec3("10, 64,-3")
	require.NoError(t, err)
	assert.Equal(t, [3]int{10, 64, -3}, v)

	_, err = parseVec3("1,2")
	assert.ErrorContains(t, err, "want x,y,z")
	_, err = parseVec3("1,two,3")
	assert.ErrorContains(t, err, "bad coordinate")
}

func TestPlanCommand_WritesEntry(t *testing.T) {
	dir := t.TempDir()
	s := store.NewChunkStore(store.Config{MinY: 0, Height: 128})
	s.Fill(world.Pos{X: -4, Y: 63, Z: -4}, world.Pos{X: 4, Y: 63, Z: 4}, blocks.StateOf(blocks.Stone, 0))
	s.SetPlayerPosition(world.Pos{X: 0, Y: 64, Z: 0})
	path := filepath.Join(dir, "plate.snap.zst")
	require.NoError(t, snapshot.WriteSnapshot(path, s.Export("plate")))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"plan", "--configs", dir, "--snapshot", path, "--goal", "GOTO", "--target", "3,64,0"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	require.NoError(t, rootCmd.Execute())

	var entry protocol.PlanLogEntry
	require.NoError(t, json.Unmarshal(out.Bytes(), &entry))
	assert.Equal(t, protocol.StatusFound, entry.Status)
	assert.Equal(t, "plate", entry.RequestID)
	assert.Equal(t, [3]int{0, 64, 0}, entry.Start)
	assert.Equal(t, [3]int{3, 64, 0}, entry.End)
	assert.NotEmpty(t, entry.Tasks)
}
