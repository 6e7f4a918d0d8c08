// Package expander implements query expansion: widening a topic's literal
// question terms with similar neighbors drawn from each queried
// document's co-occurrence index.
package expander

import (
	"github.com/bad33ndj3/corpus-reduce/internal/domain"
	"github.com/bad33ndj3/corpus-reduce/internal/similarity"
	"github.com/bad33ndj3/corpus-reduce/internal/store"
	"github.com/bad33ndj3/corpus-reduce/internal/tokenizer"
)

// Config tunes expansion.
type Config struct {
	MinSimilarity float64
	MaxExpansions int
}

// DefaultConfig returns the package defaults.
func DefaultConfig() Config {
	return Config{
		MinSimilarity: similarity.DefaultMinSimilarity,
		MaxExpansions: similarity.DefaultMaxExpansions,
	}
}

// ExpandTopic builds the single collapsed ExpandedConcept for one topic's
// question across the given documents. Documents with no stored index
// degrade gracefully: they contribute only the original terms, never an
// error (ErrIndexMissing is recovered here, not propagated).
func ExpandTopic(s store.Storage, question string, docIDs []int, cfg Config) (*domain.ExpandedConcept, error) {
	concept := domain.NewExpandedConcept(question)

	originalTerms := tokenizer.Terms(question)
	for _, t := range originalTerms {
		concept.OriginalTerms[t] = struct{}{}
		concept.Terms[t] = struct{}{}
	}

	// best tracks the maximum similarity observed for each expansion
	// term across all documents, merged into a single concept.
	best := make(map[string]float64)

	for _, docID := range docIDs {
		index, err := s.GetVectors(docID)
		if err != nil {
			return nil, err
		}
		if index == nil {
			// IndexMissing: recovered locally, no contribution beyond
			// original terms for this document.
			continue
		}

		for _, term := range originalTerms {
			if _, ok := index.Matrix[term]; !ok {
				continue
			}
			candidates := similarity.FindSimilarTerms(term, index, cfg.MaxExpansions, cfg.MinSimilarity)
			for _, c := range candidates {
				if c.Similarity > best[c.Term] {
					best[c.Term] = c.Similarity
				}
			}
		}
	}

	for term, sim := range best {
		concept.Terms[term] = struct{}{}
		if _, isOriginal := concept.OriginalTerms[term]; isOriginal {
			continue
		}
		concept.TermMetadata[term] = domain.TermMeta{Similarity: sim, IsOriginal: false}
	}

	for t := range concept.OriginalTerms {
		concept.TermMetadata[t] = domain.TermMeta{Similarity: 1.0, IsOriginal: true}
	}

	return concept, nil
}
