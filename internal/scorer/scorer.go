// Package scorer implements hybrid chunk scoring: combining original-term,
// semantic-expansion, and proximity signals into one relevance score per
// chunk via a config of named weights plus a per-chunk accumulator.
package scorer

import (
	"sort"
	"strings"

	"github.com/bad33ndj3/corpus-reduce/internal/domain"
)

// Config holds the tunable scoring weights.
type Config struct {
	OriginalTermWeight     float64
	SemanticWeight         float64
	ProximityWeight        float64
	HighSimilarityThreshold float64
	MinimumScoreThreshold  float64
	ProximityDistance      int
}

// DefaultConfig returns the documented default weights.
func DefaultConfig() Config {
	return Config{
		OriginalTermWeight:      100,
		SemanticWeight:          30,
		ProximityWeight:         50,
		HighSimilarityThreshold: 0.7,
		MinimumScoreThreshold:   30,
		ProximityDistance:       200,
	}
}

// ScoreChunk computes the hybrid score of one chunk against one expanded
// concept.
func ScoreChunk(chunk domain.Chunk, concept *domain.ExpandedConcept, cfg Config) domain.ScoreBreakdown {
	content := strings.ToLower(chunk.Content)

	var breakdown domain.ScoreBreakdown
	var offsets []int

	// Deterministic iteration order for matched-term reporting.
	terms := make([]string, 0, len(concept.Terms))
	for t := range concept.Terms {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	for _, term := range terms {
		idx := strings.Index(content, term)
		if idx < 0 {
			continue
		}

		meta := concept.TermMetadata[term]
		breakdown.MatchedTerms = append(breakdown.MatchedTerms, term)
		breakdown.MatchCount++

		if meta.IsOriginal {
			breakdown.OriginalTermScore += cfg.OriginalTermWeight
			breakdown.MatchedOriginalTerms = append(breakdown.MatchedOriginalTerms, term)
		} else if meta.Similarity >= cfg.HighSimilarityThreshold {
			breakdown.SemanticScore += cfg.SemanticWeight * meta.Similarity
		} else {
			breakdown.SemanticScore += cfg.SemanticWeight * meta.Similarity * 0.5
		}

		for start := idx; start >= 0; {
			offsets = append(offsets, start)
			next := strings.Index(content[start+1:], term)
			if next < 0 {
				break
			}
			start = start + 1 + next
		}
	}

	if len(breakdown.MatchedTerms) >= 2 {
		sort.Ints(offsets)
		minGap := -1
		for i := 1; i < len(offsets); i++ {
			gap := offsets[i] - offsets[i-1]
			if minGap < 0 || gap < minGap {
				minGap = gap
			}
		}
		if minGap >= 0 && minGap <= cfg.ProximityDistance {
			breakdown.ProximityScore = cfg.ProximityWeight * (1 - float64(minGap)/float64(cfg.ProximityDistance))
		}
	}

	return breakdown
}

// ScoreAndFilter scores every chunk against concept, drops chunks below
// MinimumScoreThreshold, and ranks the survivors: descending by score,
// ties broken ascending by (DocumentID, ChunkNumber) for determinism.
func ScoreAndFilter(chunks []domain.Chunk, concept *domain.ExpandedConcept, cfg Config) []domain.ScoredChunk {
	scored := make([]domain.ScoredChunk, 0, len(chunks))
	for _, c := range chunks {
		breakdown := ScoreChunk(c, concept, cfg)
		total := breakdown.Total()
		if total < cfg.MinimumScoreThreshold {
			continue
		}
		scored = append(scored, domain.ScoredChunk{
			Chunk:          c,
			RelevanceScore: total,
			Breakdown:      breakdown,
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].RelevanceScore != scored[j].RelevanceScore {
			return scored[i].RelevanceScore > scored[j].RelevanceScore
		}
		if scored[i].Chunk.DocumentID != scored[j].Chunk.DocumentID {
			return scored[i].Chunk.DocumentID < scored[j].Chunk.DocumentID
		}
		return scored[i].Chunk.ChunkNumber < scored[j].Chunk.ChunkNumber
	})

	return scored
}
