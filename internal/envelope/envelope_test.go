package envelope

import (
	"strings"
	"testing"

	"github.com/bad33ndj3/corpus-reduce/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestPackageHeaderSizeMatchesRender(t *testing.T) {
	questions := []string{"fuel system", "safety procedures"}
	rendered := PackageHeader(questions)
	assert.Equal(t, len(rendered), PackageHeaderSize(questions))
	assert.True(t, strings.HasPrefix(rendered, "[[chat package]]\n"))
	assert.Contains(t, rendered, "Q1: fuel system\n")
	assert.Contains(t, rendered, "Q2: safety procedures\n")
}

func TestSuperChunkHeaderContinuationMarker(t *testing.T) {
	first := SuperChunkHeader(1, 2, false)
	assert.NotContains(t, first, "continued from previous")

	later := SuperChunkHeader(2, 2, true)
	assert.Contains(t, later, "[[continued from previous super chunk]]")
}

func TestTopicSectionHeaderSizeMatchesRender(t *testing.T) {
	rendered := TopicSectionHeader("fuel system", "manual.txt", false)
	assert.Equal(t, len(rendered), TopicSectionHeaderSize("fuel system", "manual.txt", false))
	assert.Contains(t, rendered, "[[topic: fuel system]]")
	assert.Contains(t, rendered, "[[document: manual.txt]]")

	continued := TopicSectionHeader("fuel system", "manual.txt", true)
	assert.Contains(t, continued, "[[topic: fuel system (continued)]]")
}

func TestChunkEnvelopeSizeMatchesRender(t *testing.T) {
	rendered := ChunkEnvelope(0, 42.345, "Install the fuel pump.")
	assert.Equal(t, len(rendered), ChunkEnvelopeSize(0, 42.345, "Install the fuel pump."))
	assert.Contains(t, rendered, "[[chunk 0]] (score: 42.3)\n")
	assert.Contains(t, rendered, "Install the fuel pump.")
}

func TestRenderSuperChunkStartsAndEndsWithPackageMarkers(t *testing.T) {
	section := domain.TopicSection{
		TopicQuestion: "fuel system",
		Chunks: []domain.ScoredChunk{
			{Chunk: domain.Chunk{DocumentID: 1, ChunkNumber: 0, Content: "Install the fuel pump."}, RelevanceScore: 100},
		},
	}
	sc := domain.SuperChunk{Topics: []domain.TopicSection{section}, IsFirst: true, Index: 1, Count: 1}
	docNames := map[int]string{1: "manual.txt"}

	rendered := RenderSuperChunk(sc, 1, 1, true, []string{"fuel system"}, docNames)

	assert.True(t, strings.HasPrefix(rendered, "[[chat package]]\n"))
	assert.True(t, strings.HasSuffix(rendered, "[[/chat package]]"))
	assert.Contains(t, rendered, "[[super chunk 1 of 1]]\n")
	assert.Contains(t, rendered, "[[document: manual.txt]]")
	assert.Contains(t, rendered, "[[/super chunk 1]]\n")
}

func TestRenderSuperChunkNonFirstOmitsPackageHeader(t *testing.T) {
	section := domain.TopicSection{
		TopicQuestion:  "fuel system",
		IsContinuation: true,
		Chunks: []domain.ScoredChunk{
			{Chunk: domain.Chunk{DocumentID: 1, ChunkNumber: 1, Content: "more content"}, RelevanceScore: 80},
		},
	}
	sc := domain.SuperChunk{Topics: []domain.TopicSection{section}, IsFirst: false, Index: 2, Count: 2}
	docNames := map[int]string{1: "manual.txt"}

	rendered := RenderSuperChunk(sc, 2, 2, true, []string{"fuel system"}, docNames)

	assert.False(t, strings.Contains(rendered, "[[chat package]]"))
	assert.Contains(t, rendered, "[[continued from previous super chunk]]")
	assert.Contains(t, rendered, "(continued)")
	assert.True(t, strings.HasSuffix(rendered, "[[/chat package]]"))
}
