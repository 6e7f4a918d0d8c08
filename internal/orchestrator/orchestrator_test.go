package orchestrator

import (
	"context"
	"testing"
	"time"

	"github.com/bad33ndj3/corpus-reduce/internal/cooccur"
	"github.com/bad33ndj3/corpus-reduce/internal/domain"
	"github.com/bad33ndj3/corpus-reduce/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }

func newTestStore() *store.InMemoryStore {
	s := store.NewInMemoryStore()
	s.PutDocument(domain.Document{
		ID:   1,
		Name: "manual.txt",
		Chunks: []domain.Chunk{
			{ID: "c0", DocumentID: 1, ChunkNumber: 0, Content: "Install the fuel pump. The fuel line must be clean."},
			{ID: "c1", DocumentID: 1, ChunkNumber: 1, Content: "Safety procedures require goggles."},
		},
	})
	return s
}

// single topic, single doc, single chunk, under the size limit.
func TestExecuteQuerySingleTopicSingleChunk(t *testing.T) {
	s := newTestStore()
	ts := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	o := New(s, WithClock(fixedClock{ts}))

	q := domain.QueryStructure{
		Version:               "2.3",
		AccountTier:           domain.TierStandard,
		SourceType:            domain.SourceDocuments,
		DocumentIDs:           []int{1},
		MaxCharsPerSuperChunk: 30000,
		Topics: []domain.TopicQuery{
			{TopicID: "t1", Question: "fuel system", SpatialCategory: domain.SpatialAuto},
		},
	}

	result, err := o.ExecuteQuery(context.Background(), q)
	require.NoError(t, err)
	assert.False(t, result.Cancelled)
	assert.Equal(t, ts, result.Timestamp)
	require.Len(t, result.SuperChunks, 1)
	require.Len(t, result.TopicResults, 1)
	require.Len(t, result.TopicResults[0].Chunks, 1)
	assert.Equal(t, 0, result.TopicResults[0].Chunks[0].Chunk.ChunkNumber)

	content := result.SuperChunks[0].Content
	assert.Contains(t, content, "[[chat package]]")
	assert.Contains(t, content, "[[/chat package]]")
	assert.Contains(t, content, "manual.txt")
}

// a document with no stored co-occurrence index degrades gracefully.
func TestExecuteQueryMissingIndexDegradesGracefully(t *testing.T) {
	s := store.NewInMemoryStore()
	s.PutDocument(domain.Document{ID: 1, Name: "a.txt", Chunks: []domain.Chunk{
		{ID: "c0", DocumentID: 1, ChunkNumber: 0, Content: "fuel pump installation"},
	}})
	s.PutDocument(domain.Document{ID: 2, Name: "b.txt", Chunks: []domain.Chunk{
		{ID: "d0", DocumentID: 2, ChunkNumber: 0, Content: "fuel filter replacement"},
	}})
	b := cooccur.NewBuilder(cooccur.WithMinFrequency(1))
	require.NoError(t, s.AddVectors(1, b.Build("fuel pump installation fuel pump installation")))
	// doc 2 has no vectors stored.

	o := New(s)
	q := domain.QueryStructure{
		AccountTier:           domain.TierStandard,
		SourceType:            domain.SourceDocuments,
		DocumentIDs:           []int{1, 2},
		MaxCharsPerSuperChunk: 30000,
		Topics: []domain.TopicQuery{
			{TopicID: "t1", Question: "fuel", SpatialCategory: domain.SpatialAuto},
		},
	}

	result, err := o.ExecuteQuery(context.Background(), q)
	require.NoError(t, err)
	assert.False(t, result.Cancelled)
}

func TestExecuteQueryInputInvalidNoTopics(t *testing.T) {
	s := newTestStore()
	o := New(s)
	q := domain.QueryStructure{
		AccountTier:           domain.TierStandard,
		SourceType:            domain.SourceDocuments,
		DocumentIDs:           []int{1},
		MaxCharsPerSuperChunk: 30000,
	}
	_, err := o.ExecuteQuery(context.Background(), q)
	require.ErrorIs(t, err, domain.ErrInputInvalid)
}

func TestExecuteQueryInputInvalidUnknownTier(t *testing.T) {
	s := newTestStore()
	o := New(s)
	q := domain.QueryStructure{
		AccountTier:           domain.AccountTier("enterprise"),
		SourceType:            domain.SourceDocuments,
		DocumentIDs:           []int{1},
		MaxCharsPerSuperChunk: 30000,
		Topics:                []domain.TopicQuery{{Question: "fuel"}},
	}
	_, err := o.ExecuteQuery(context.Background(), q)
	require.ErrorIs(t, err, domain.ErrInputInvalid)
}

func TestExecuteQueryCancelledBeforeStart(t *testing.T) {
	s := newTestStore()
	o := New(s)
	q := domain.QueryStructure{
		AccountTier:           domain.TierStandard,
		SourceType:            domain.SourceDocuments,
		DocumentIDs:           []int{1},
		MaxCharsPerSuperChunk: 30000,
		Topics:                []domain.TopicQuery{{Question: "fuel"}},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := o.ExecuteQuery(ctx, q)
	require.NoError(t, err)
	assert.True(t, result.Cancelled)
}

func TestExecuteQueryDeterministicAcrossRuns(t *testing.T) {
	s := newTestStore()
	ts := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	o := New(s, WithClock(fixedClock{ts}))
	q := domain.QueryStructure{
		AccountTier:           domain.TierStandard,
		SourceType:            domain.SourceDocuments,
		DocumentIDs:           []int{1},
		MaxCharsPerSuperChunk: 30000,
		Topics:                []domain.TopicQuery{{Question: "fuel system"}},
	}

	r1, err := o.ExecuteQuery(context.Background(), q)
	require.NoError(t, err)
	r2, err := o.ExecuteQuery(context.Background(), q)
	require.NoError(t, err)

	require.Len(t, r1.SuperChunks, 1)
	require.Len(t, r2.SuperChunks, 1)
	assert.Equal(t, r1.SuperChunks[0].Content, r2.SuperChunks[0].Content)
}
