// Package spatial classifies and optionally filters a ranked chunk list
// by how concentrated or spread its chunk indices are.
package spatial

import (
	"math"

	"github.com/bad33ndj3/corpus-reduce/internal/domain"
)

// Config holds the tunable variance cutoffs. These are configuration,
// not fixed semantic truths.
type Config struct {
	ConcentratedBelow float64
	SpreadAbove       float64
}

// DefaultConfig returns the documented default cutoffs (10, 50).
func DefaultConfig() Config {
	return Config{ConcentratedBelow: 10, SpreadAbove: 50}
}

// Variance computes the population standard deviation of chunk numbers.
func Variance(chunks []domain.ScoredChunk) float64 {
	n := len(chunks)
	if n == 0 {
		return 0
	}
	var sum float64
	for _, c := range chunks {
		sum += float64(c.Chunk.ChunkNumber)
	}
	mean := sum / float64(n)

	var sq float64
	for _, c := range chunks {
		d := float64(c.Chunk.ChunkNumber) - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(n))
}

// Classify returns the spatial pattern of a ranked chunk list.
func Classify(chunks []domain.ScoredChunk, cfg Config) domain.SpatialPattern {
	switch len(chunks) {
	case 0:
		return domain.PatternNone
	case 1:
		return domain.PatternSingle
	}

	v := Variance(chunks)
	switch {
	case v < cfg.ConcentratedBelow:
		return domain.PatternConcentrated
	case v > cfg.SpreadAbove:
		return domain.PatternSpread
	default:
		return domain.PatternModerate
	}
}

// Filter applies the user-selected spatial mode: auto passes everything
// through; concentrated/spread keep the ranked list only when the
// computed pattern matches, otherwise return empty.
func Filter(chunks []domain.ScoredChunk, mode domain.SpatialCategory, cfg Config) ([]domain.ScoredChunk, domain.SpatialPattern) {
	pattern := Classify(chunks, cfg)

	switch mode {
	case domain.SpatialConcentrated:
		if pattern != domain.PatternConcentrated {
			return nil, pattern
		}
	case domain.SpatialSpread:
		if pattern != domain.PatternSpread {
			return nil, pattern
		}
	}
	return chunks, pattern
}
