// Package similarity computes cosine similarity over the sparse
// co-occurrence vectors produced by internal/cooccur, and exposes a
// top-K "similar terms" lookup used by query expansion.
package similarity

import (
	"math"
	"sort"

	"github.com/bad33ndj3/corpus-reduce/internal/domain"
)

// DefaultMinSimilarity is the floor below which a candidate term is
// excluded from top-K results.
const DefaultMinSimilarity = 0.3

// DefaultMaxExpansions is the default K for FindSimilarTerms when called
// from query expansion.
const DefaultMaxExpansions = 5

// Cosine computes cosine similarity between two sparse count vectors. If
// either magnitude is zero, it returns 0. The result is always in [0, 1]
// since counts are non-negative.
func Cosine(vec1, vec2 map[string]int) float64 {
	if len(vec1) == 0 || len(vec2) == 0 {
		return 0
	}

	// Iterate the smaller map for the dot product.
	a, b := vec1, vec2
	if len(b) < len(a) {
		a, b = b, a
	}

	var dot, normA, normB float64
	for term, count := range a {
		if other, ok := b[term]; ok {
			dot += float64(count) * float64(other)
		}
	}
	for _, count := range vec1 {
		normA += float64(count) * float64(count)
	}
	for _, count := range vec2 {
		normB += float64(count) * float64(count)
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Candidate is one similar-term result.
type Candidate struct {
	Term       string
	Similarity float64
}

// FindSimilarTerms returns the top-K terms U != term from index.Matrix
// ordered by descending similarity to term's row vector, excluding any
// below minSimilarity. Ties are broken lexicographically for determinism.
func FindSimilarTerms(term string, index *domain.CoOccurrenceIndex, k int, minSimilarity float64) []Candidate {
	vec, ok := index.Matrix[term]
	if !ok {
		return nil
	}

	candidates := make([]Candidate, 0, len(index.Matrix))
	for other, otherVec := range index.Matrix {
		if other == term {
			continue
		}
		sim := Cosine(vec, otherVec)
		if sim < minSimilarity {
			continue
		}
		candidates = append(candidates, Candidate{Term: other, Similarity: sim})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Similarity != candidates[j].Similarity {
			return candidates[i].Similarity > candidates[j].Similarity
		}
		return candidates[i].Term < candidates[j].Term
	})

	if k >= 0 && len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates
}
