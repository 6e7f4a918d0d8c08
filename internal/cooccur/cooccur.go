// Package cooccur builds per-document co-occurrence indices: a sparse
// term-by-term count matrix plus term frequencies, used downstream by the
// similarity engine for query expansion.
package cooccur

import (
	"sort"

	"github.com/bad33ndj3/corpus-reduce/internal/domain"
	"github.com/bad33ndj3/corpus-reduce/internal/tokenizer"
)

// Default index tunables.
const (
	DefaultWindowSize   = 7
	DefaultMinFrequency = 2
	DefaultMaxTerms     = 10000
)

// Builder constructs a CoOccurrenceIndex from document text. It is
// configured via functional options.
type Builder struct {
	windowSize   int
	minFrequency int
	maxTerms     int
}

// Option configures a Builder.
type Option func(*Builder)

// WithWindowSize overrides the co-occurrence window half-width.
func WithWindowSize(n int) Option {
	return func(b *Builder) { b.windowSize = n }
}

// WithMinFrequency overrides the minimum term frequency to be retained.
func WithMinFrequency(n int) Option {
	return func(b *Builder) { b.minFrequency = n }
}

// WithMaxTerms overrides the retained-vocabulary cap.
func WithMaxTerms(n int) Option {
	return func(b *Builder) { b.maxTerms = n }
}

// NewBuilder returns a Builder configured with package defaults,
// overridden by any supplied options.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		windowSize:   DefaultWindowSize,
		minFrequency: DefaultMinFrequency,
		maxTerms:     DefaultMaxTerms,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build indexes the full text of a document: tokenize, extract n-grams,
// concatenate into one positional sequence, drop terms below
// minFrequency, cap vocabulary size, then window-count co-occurring
// pairs. Empty text yields an empty index, not an error.
func (b *Builder) Build(text string) *domain.CoOccurrenceIndex {
	idx := domain.NewCoOccurrenceIndex()
	if text == "" {
		return idx
	}

	seq := tokenizer.Sequence(text)
	if len(seq) == 0 {
		return idx
	}

	freq := make(map[string]int, len(seq))
	for _, t := range seq {
		freq[t.Term]++
	}

	kept := make(map[string]struct{}, len(freq))
	for term, count := range freq {
		if count >= b.minFrequency {
			kept[term] = struct{}{}
		}
	}

	if b.maxTerms > 0 && len(kept) > b.maxTerms {
		kept = capVocabulary(freq, kept, b.maxTerms)
	}

	filtered := make([]domain.TokenOccurrence, 0, len(seq))
	for _, t := range seq {
		if _, ok := kept[t.Term]; ok {
			filtered = append(filtered, t)
		}
	}

	for term := range kept {
		idx.TermFrequencies[term] = freq[term]
	}
	idx.TotalTerms = len(filtered)

	for i := range filtered {
		center := filtered[i].Term
		for j := i - b.windowSize; j <= i+b.windowSize; j++ {
			if j < 0 || j >= len(filtered) || j == i {
				continue
			}
			other := filtered[j].Term
			if other == center {
				continue
			}
			row, ok := idx.Matrix[center]
			if !ok {
				row = make(map[string]int)
				idx.Matrix[center] = row
			}
			row[other]++
		}
	}

	return idx
}

// capVocabulary keeps only the maxTerms most frequent kept terms,
// breaking ties lexicographically for determinism.
func capVocabulary(freq map[string]int, kept map[string]struct{}, maxTerms int) map[string]struct{} {
	terms := make([]string, 0, len(kept))
	for term := range kept {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if freq[terms[i]] != freq[terms[j]] {
			return freq[terms[i]] > freq[terms[j]]
		}
		return terms[i] < terms[j]
	})

	out := make(map[string]struct{}, maxTerms)
	for i := 0; i < maxTerms && i < len(terms); i++ {
		out[terms[i]] = struct{}{}
	}
	return out
}
