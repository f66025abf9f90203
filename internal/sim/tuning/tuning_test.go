package tuning

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_DefaultsAndOverrides(t *testing.T) {
	s, err := Parse([]byte(`
blacklisted_blocks: [bedrock, "log:2"]
place_torches_at: 40
search:
  radius: 16
tree:
  wood: birch
  replant: true
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"bedrock", "log:2"}, s.BlacklistedBlocks)
	assert.Nil(t, s.UpwardsPlaceBlock, "unset list keeps defaults")
	assert.Equal(t, 15.0, s.PlaceTorchesAt, "clamped")
	assert.Equal(t, 16, s.Search.Radius)
	assert.Equal(t, Default().Search.BudgetNodes, s.Search.BudgetNodes)
	assert.Equal(t, "birch", s.Tree.Wood)
	assert.True(t, s.Tree.Replant)
	assert.Equal(t, ":8090", s.Server.Addr)
}

func TestParse_Empty(t *testing.T) {
	s, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestParse_RejectsSchemaViolations(t *testing.T) {
	cases := map[string]string{
		"unknown key":  "torches: 3\n",
		"bad wood":     "tree:\n  wood: palm\n",
		"zero budget":  "search:\n  budget_nodes: 0\n",
		"list of ints": "blacklisted_blocks: [1, 2]\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestNormalize(t *testing.T) {
	s := Settings{PlaceTorchesAt: -7, Search: Search{MinY: 100, MaxY: 10}}.Normalize()
	assert.Equal(t, -1.0, s.PlaceTorchesAt)
	assert.Equal(t, 10, s.Search.MinY)
	assert.Equal(t, 100, s.Search.MaxY)
	assert.Equal(t, 50, s.Server.TickMs)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWatch_ReloadsValidEdits(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search:\n  radius: 8\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	got := make(chan Settings, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, nil, func(s Settings) { got <- s })
	}()

	// Give the watcher time to register before editing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("search:\n  radius: 12\n"), 0o644))

	select {
	case s := <-got:
		assert.Equal(t, 12, s.Search.Radius)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload observed")
	}

	cancel()
	require.NoError(t, <-done)
}
