package cooccur

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEmptyText(t *testing.T) {
	idx := NewBuilder().Build("")
	assert.Empty(t, idx.Matrix)
	assert.Equal(t, 0, idx.TotalTerms)
}

func TestBuildDropsBelowMinFrequency(t *testing.T) {
	idx := NewBuilder(WithMinFrequency(2)).Build("alpha beta gamma delta")
	// every unigram appears once; all should be dropped by minFrequency.
	assert.Empty(t, idx.Matrix)
}

func TestBuildCountsWindowedCoOccurrence(t *testing.T) {
	text := "alpha beta alpha beta alpha beta"
	idx := NewBuilder(WithMinFrequency(2), WithWindowSize(7)).Build(text)

	require.Contains(t, idx.TermFrequencies, "alpha")
	require.Contains(t, idx.TermFrequencies, "beta")
	assert.Equal(t, 3, idx.TermFrequencies["alpha"])
	assert.Equal(t, 3, idx.TermFrequencies["beta"])

	require.Contains(t, idx.Matrix, "alpha")
	assert.Greater(t, idx.Matrix["alpha"]["beta"], 0)
}

func TestBuildNeverStoresSelfCount(t *testing.T) {
	text := "alpha alpha alpha alpha"
	idx := NewBuilder(WithMinFrequency(2)).Build(text)
	if row, ok := idx.Matrix["alpha"]; ok {
		_, selfPresent := row["alpha"]
		assert.False(t, selfPresent)
	}
}

func TestBuildCapsVocabularyByFrequency(t *testing.T) {
	// n-grams compete for the cap too: "gamma gamma" (3) ties "beta" (3)
	// and loses the lexicographic tie-break.
	text := "alpha alpha beta beta beta gamma gamma gamma gamma"
	idx := NewBuilder(WithMinFrequency(1), WithMaxTerms(2)).Build(text)

	assert.Contains(t, idx.TermFrequencies, "gamma")
	assert.Contains(t, idx.TermFrequencies, "beta")
	assert.NotContains(t, idx.TermFrequencies, "alpha")
}

func TestBuildIdempotent(t *testing.T) {
	text := "fuel pump fuel line fuel pump clean"
	b := NewBuilder()
	idx1 := b.Build(text)
	idx2 := b.Build(text)
	assert.Equal(t, idx1.Matrix, idx2.Matrix)
	assert.Equal(t, idx1.TermFrequencies, idx2.TermFrequencies)
}
