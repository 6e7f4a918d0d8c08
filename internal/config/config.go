// Package config loads the retrieval engine's tunable constants from a
// YAML file: a struct with yaml tags, a documented directory layout, and
// a loader that falls back to defaults when the file is absent.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bad33ndj3/corpus-reduce/internal/cooccur"
	"github.com/bad33ndj3/corpus-reduce/internal/domain"
	"github.com/bad33ndj3/corpus-reduce/internal/expander"
	"github.com/bad33ndj3/corpus-reduce/internal/orchestrator"
	"github.com/bad33ndj3/corpus-reduce/internal/scorer"
	"github.com/bad33ndj3/corpus-reduce/internal/similarity"
	"github.com/bad33ndj3/corpus-reduce/internal/spatial"
	"gopkg.in/yaml.v3"
)

const configDirName = "corpus_reduce_cfg"

// ConfigDir returns the workspace-local configuration directory.
func ConfigDir(workspace string) string {
	if workspace == "" {
		workspace = "."
	}
	return filepath.Join(workspace, configDirName)
}

// DefaultConfigPath returns corpus_reduce_cfg/config.yaml within workspace.
func DefaultConfigPath(workspace string) string {
	return filepath.Join(ConfigDir(workspace), "config.yaml")
}

// ScoringConfig mirrors scorer.Config for YAML round-tripping.
type ScoringConfig struct {
	OriginalTermWeight     float64 `yaml:"original_term_weight"`
	SemanticWeight         float64 `yaml:"semantic_weight"`
	ProximityWeight        float64 `yaml:"proximity_weight"`
	HighSimilarityThreshold float64 `yaml:"high_similarity_threshold"`
	MinimumScoreThreshold  float64 `yaml:"minimum_score_threshold"`
	ProximityDistance      int     `yaml:"proximity_distance"`
}

// IndexConfig mirrors cooccur.Builder/similarity tunables for YAML
// round-tripping.
type IndexConfig struct {
	WindowSize    int     `yaml:"window_size"`
	MinFrequency  int     `yaml:"min_frequency"`
	MaxTerms      int     `yaml:"max_terms"`
	MinSimilarity float64 `yaml:"min_similarity"`
	MaxExpansions int     `yaml:"max_expansions"`
}

// SpatialConfig mirrors spatial.Config for YAML round-tripping.
type SpatialConfig struct {
	ConcentratedBelow float64 `yaml:"concentrated_below"`
	SpreadAbove       float64 `yaml:"spread_above"`
}

// TierPreset mirrors one row of the tier-preset table.
type TierPreset struct {
	SuperChunkSize int `yaml:"super_chunk_size"`
	PackageSize    int `yaml:"package_size"`
}

// GlobalConfig is the full set of tunables the engine loads from disk.
type GlobalConfig struct {
	Version string                 `yaml:"version"`
	Scoring ScoringConfig          `yaml:"scoring"`
	Index   IndexConfig            `yaml:"index"`
	Spatial SpatialConfig          `yaml:"spatial"`
	Tiers   map[string]TierPreset  `yaml:"tiers"`
	Logging LoggingConfig          `yaml:"logging"`
}

// LoggingConfig describes log output: level and destination file.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Defaults returns the documented default constants.
func Defaults() *GlobalConfig {
	return &GlobalConfig{
		Version: "1.0.0",
		Scoring: ScoringConfig{
			OriginalTermWeight:      100,
			SemanticWeight:          30,
			ProximityWeight:         50,
			HighSimilarityThreshold: 0.7,
			MinimumScoreThreshold:   30,
			ProximityDistance:       200,
		},
		Index: IndexConfig{
			WindowSize:    cooccur.DefaultWindowSize,
			MinFrequency:  cooccur.DefaultMinFrequency,
			MaxTerms:      cooccur.DefaultMaxTerms,
			MinSimilarity: similarity.DefaultMinSimilarity,
			MaxExpansions: similarity.DefaultMaxExpansions,
		},
		Spatial: SpatialConfig{ConcentratedBelow: 10, SpreadAbove: 50},
		Tiers: map[string]TierPreset{
			"standard": {SuperChunkSize: 30000, PackageSize: 75000},
			"large":    {SuperChunkSize: 100000, PackageSize: 150000},
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load loads the config at path, or returns Defaults() when the file is
// absent.
func Load(path string) (*GlobalConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Defaults(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating its parent directory if needed.
func Save(path string, cfg *GlobalConfig) error {
	if cfg == nil {
		return errors.New("config missing")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ScorerConfig converts the loaded scoring tunables into scorer.Config.
func (c *GlobalConfig) ScorerConfig() scorer.Config {
	return scorer.Config{
		OriginalTermWeight:      c.Scoring.OriginalTermWeight,
		SemanticWeight:          c.Scoring.SemanticWeight,
		ProximityWeight:         c.Scoring.ProximityWeight,
		HighSimilarityThreshold: c.Scoring.HighSimilarityThreshold,
		MinimumScoreThreshold:   c.Scoring.MinimumScoreThreshold,
		ProximityDistance:       c.Scoring.ProximityDistance,
	}
}

// ExpanderConfig converts the loaded index tunables into expander.Config.
func (c *GlobalConfig) ExpanderConfig() expander.Config {
	return expander.Config{
		MinSimilarity: c.Index.MinSimilarity,
		MaxExpansions: c.Index.MaxExpansions,
	}
}

// CooccurOptions converts the loaded index tunables into cooccur.Options.
func (c *GlobalConfig) CooccurOptions() []cooccur.Option {
	return []cooccur.Option{
		cooccur.WithWindowSize(c.Index.WindowSize),
		cooccur.WithMinFrequency(c.Index.MinFrequency),
		cooccur.WithMaxTerms(c.Index.MaxTerms),
	}
}

// SpatialConfig converts the loaded spatial tunables into spatial.Config.
func (c *GlobalConfig) SpatialConfig() spatial.Config {
	return spatial.Config{
		ConcentratedBelow: c.Spatial.ConcentratedBelow,
		SpreadAbove:       c.Spatial.SpreadAbove,
	}
}

// TierPresets converts the loaded tier table into orchestrator.TierPreset,
// keyed by domain.AccountTier. Unrecognized tier names are skipped.
func (c *GlobalConfig) TierPresets() map[domain.AccountTier]orchestrator.TierPreset {
	presets := make(map[domain.AccountTier]orchestrator.TierPreset, len(c.Tiers))
	for name, p := range c.Tiers {
		tier := domain.AccountTier(name)
		if tier != domain.TierStandard && tier != domain.TierLarge {
			continue
		}
		presets[tier] = orchestrator.TierPreset{
			SuperChunkSize: p.SuperChunkSize,
			PackageSize:    p.PackageSize,
		}
	}
	return presets
}

// OrchestratorOptions builds the Option slice that wires this config's
// tunables into a new orchestrator.Orchestrator.
func (c *GlobalConfig) OrchestratorOptions() []orchestrator.Option {
	return []orchestrator.Option{
		orchestrator.WithScorerConfig(c.ScorerConfig()),
		orchestrator.WithExpanderConfig(c.ExpanderConfig()),
		orchestrator.WithSpatialConfig(c.SpatialConfig()),
		orchestrator.WithTierPresets(c.TierPresets()),
	}
}
