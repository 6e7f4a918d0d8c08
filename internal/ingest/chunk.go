// Package ingest turns raw document text into the pre-chunked Documents
// the retrieval core expects. This is deliberately minimal: a paragraph
// splitter for the CLI and MCP load tool to hand the core something to
// work with, not a parsing pipeline in its own right.
package ingest

import (
	"fmt"
	"strings"

	"github.com/bad33ndj3/corpus-reduce/internal/domain"
)

// ChunkText splits text into paragraphs (separated by one or more blank
// lines) and returns a Document with one Chunk per non-empty paragraph.
func ChunkText(docID int, name, text string) domain.Document {
	paragraphs := splitParagraphs(text)
	chunks := make([]domain.Chunk, 0, len(paragraphs))
	for i, p := range paragraphs {
		chunks = append(chunks, domain.Chunk{
			ID:          paragraphID(docID, i),
			DocumentID:  docID,
			ChunkNumber: i,
			Content:     p,
			CharCount:   len(p),
		})
	}
	return domain.Document{ID: docID, Name: name, Chunks: chunks}
}

// CorpusText concatenates a document's chunk contents in chunk order, the
// input the co-occurrence builder consumes for that document.
func CorpusText(doc domain.Document) string {
	parts := make([]string, len(doc.Chunks))
	for i, c := range doc.Chunks {
		parts[i] = c.Content
	}
	return strings.Join(parts, "\n\n")
}

func splitParagraphs(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n")
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func paragraphID(docID, chunkNumber int) string {
	return fmt.Sprintf("doc-%d-chunk-%d", docID, chunkNumber)
}
