// Package envelope renders the fixed textual super-chunk format: package
// header/footer, per-super-chunk headers/footers, topic section headers,
// and per-chunk envelopes. The byte length this package emits for a given
// piece MUST match what the packer accounted for, so the package header,
// topic section header and chunk envelope each have a matching Size
// function that measures the rendered string itself.
package envelope

import (
	"fmt"
	"strings"

	"github.com/bad33ndj3/corpus-reduce/internal/domain"
)

// PackageHeader renders the one-time chat-package preamble, including the
// numbered list of topic questions. Emitted only on the first SuperChunk.
func PackageHeader(questions []string) string {
	var b strings.Builder
	b.WriteString("[[chat package]]\n")
	b.WriteString("[[Only respond with OK until all Super Chunks have been provided to you.]]\n\n")
	b.WriteString("[[paste all super chunks sequentially]]\n\n")
	b.WriteString("[[Answer questions ONLY from the provided content and tell user if other content is needed.]]\n\n")
	b.WriteString("Questions:\n")
	for i, q := range questions {
		fmt.Fprintf(&b, "  Q%d: %s\n", i+1, q)
	}
	b.WriteString("\n")
	return b.String()
}

// PackageHeaderSize returns len(PackageHeader(questions)).
func PackageHeaderSize(questions []string) int {
	return len(PackageHeader(questions))
}

// PackageFooter is appended once, after the last SuperChunk's footer.
const PackageFooter = "\n[[/chat package]]"

// SuperChunkHeader renders the "super chunk N of M" banner. continuation
// is true for every SuperChunk after the first.
func SuperChunkHeader(n, m int, continuation bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[[super chunk %d of %d]]\n", n, m)
	if continuation {
		b.WriteString("[[continued from previous super chunk]]\n")
	}
	b.WriteString("\n")
	return b.String()
}

// SuperChunkFooter renders the per-SuperChunk closing marker.
func SuperChunkFooter(n int) string {
	return fmt.Sprintf("[[/super chunk %d]]\n", n)
}

// TopicSectionHeader renders a topic section's opening banner: the topic
// question (with "(continued)" suffix when isContinuation) followed by
// the document label naming the section's first chunk's document.
func TopicSectionHeader(topicQuestion, documentName string, isContinuation bool) string {
	var b strings.Builder
	b.WriteString("[[topic: ")
	b.WriteString(topicQuestion)
	if isContinuation {
		b.WriteString(" (continued)")
	}
	b.WriteString("]]\n\n")
	fmt.Fprintf(&b, "[[document: %s]]\n\n", documentName)
	return b.String()
}

// TopicSectionHeaderSize returns len(TopicSectionHeader(...)).
func TopicSectionHeaderSize(topicQuestion, documentName string, isContinuation bool) int {
	return len(TopicSectionHeader(topicQuestion, documentName, isContinuation))
}

// ChunkEnvelope renders one chunk's envelope: the chunk-number/score
// banner followed by its content and a trailing blank line.
func ChunkEnvelope(chunkNumber int, score float64, content string) string {
	return fmt.Sprintf("[[chunk %d]] (score: %.1f)\n%s\n\n", chunkNumber, score, content)
}

// ChunkEnvelopeSize returns len(ChunkEnvelope(...)); used by the packer
// to decide whether a chunk fits.
func ChunkEnvelopeSize(chunkNumber int, score float64, content string) int {
	return len(ChunkEnvelope(chunkNumber, score, content))
}

// RenderTopicSection renders a fully-built TopicSection's header plus all
// of its chunk envelopes, in the order the chunks already appear (the
// packer is responsible for chronological ordering before this is called).
func RenderTopicSection(section domain.TopicSection, docNames map[int]string) string {
	var b strings.Builder
	docName := ""
	if len(section.Chunks) > 0 {
		docName = docNames[section.Chunks[0].Chunk.DocumentID]
	}
	b.WriteString(TopicSectionHeader(section.TopicQuestion, docName, section.IsContinuation))
	for _, sc := range section.Chunks {
		b.WriteString(ChunkEnvelope(sc.Chunk.ChunkNumber, sc.RelevanceScore, sc.Chunk.Content))
	}
	return b.String()
}

// RenderSuperChunk renders a complete SuperChunk: header, every topic
// section, and footer. n and m are this SuperChunk's 1-based index and the
// total SuperChunk count; allQuestions lists every topic's question in
// query order (the package header enumerates all of them, not just the
// topics represented in this particular SuperChunk); isLast appends the
// package footer.
func RenderSuperChunk(sc domain.SuperChunk, n, m int, isLast bool, allQuestions []string, docNames map[int]string) string {
	var b strings.Builder
	if sc.IsFirst {
		b.WriteString(PackageHeader(allQuestions))
	}
	b.WriteString(SuperChunkHeader(n, m, n > 1))
	for _, section := range sc.Topics {
		b.WriteString(RenderTopicSection(section, docNames))
	}
	b.WriteString(SuperChunkFooter(n))
	if isLast {
		b.WriteString(PackageFooter)
	}
	return b.String()
}
