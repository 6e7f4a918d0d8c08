package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 100.0, cfg.Scoring.OriginalTermWeight)
	assert.Equal(t, 7, cfg.Index.WindowSize)
	assert.Equal(t, 30000, cfg.Tiers["standard"].SuperChunkSize)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := Defaults()
	cfg.Scoring.MinimumScoreThreshold = 42

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 42.0, loaded.Scoring.MinimumScoreThreshold)
}

func TestScorerConfigConversion(t *testing.T) {
	cfg := Defaults()
	sc := cfg.ScorerConfig()
	assert.Equal(t, cfg.Scoring.ProximityDistance, sc.ProximityDistance)
	assert.Equal(t, cfg.Scoring.SemanticWeight, sc.SemanticWeight)
}

func TestCooccurOptionsReturnsThreeOptions(t *testing.T) {
	cfg := Defaults()
	cfg.Index.WindowSize = 3
	opts := cfg.CooccurOptions()
	assert.Len(t, opts, 3)
}
