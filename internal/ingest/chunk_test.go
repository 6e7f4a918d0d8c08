package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkTextSplitsOnBlankLines(t *testing.T) {
	text := "Install the fuel pump.\n\nSafety procedures require goggles.\n\n\nFinal paragraph."
	doc := ChunkText(1, "manual.txt", text)

	require.Len(t, doc.Chunks, 3)
	assert.Equal(t, 0, doc.Chunks[0].ChunkNumber)
	assert.Equal(t, "Install the fuel pump.", doc.Chunks[0].Content)
	assert.Equal(t, "Safety procedures require goggles.", doc.Chunks[1].Content)
	assert.Equal(t, "Final paragraph.", doc.Chunks[2].Content)
	assert.Equal(t, len(doc.Chunks[0].Content), doc.Chunks[0].CharCount)
}

func TestChunkTextDropsEmptyParagraphs(t *testing.T) {
	doc := ChunkText(1, "d.txt", "one\n\n\n\n\ntwo")
	assert.Len(t, doc.Chunks, 2)
}

func TestCorpusTextJoinsChunks(t *testing.T) {
	doc := ChunkText(1, "d.txt", "alpha\n\nbeta")
	assert.Equal(t, "alpha\n\nbeta", CorpusText(doc))
}
