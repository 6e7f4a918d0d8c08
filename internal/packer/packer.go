// Package packer groups ranked chunks by topic into size-bounded
// SuperChunks, walking ranked results greedily against a byte budget.
// The size accounting here must track
// github.com/bad33ndj3/corpus-reduce/internal/envelope byte-for-byte,
// since that package renders the final text.
package packer

import (
	"sort"

	"github.com/bad33ndj3/corpus-reduce/internal/domain"
	"github.com/bad33ndj3/corpus-reduce/internal/envelope"
)

// Config holds the packer's size and limiting knobs.
type Config struct {
	MaxCharsPerSuperChunk  int
	LimitSuperChunks       bool
	MaxSuperChunksPerTopic int
}

// Pack runs the greedy single-pass packing algorithm over an ordered list
// of topic results, producing an ordered list of SuperChunks. docNames
// resolves a chunk's DocumentID to the document name used in each topic
// section's document label.
func Pack(topics []domain.TopicResult, cfg Config, docNames map[int]string) []domain.SuperChunk {
	allQuestions := make([]string, len(topics))
	for i, t := range topics {
		allQuestions[i] = t.TopicQuestion
	}

	var result []domain.SuperChunk
	current := domain.SuperChunk{IsFirst: true}
	chars := 0
	chunksInCurrent := 0
	isFirst := true

	closeCurrent := func() {
		if len(current.Topics) > 0 {
			result = append(result, current)
		}
		current = domain.SuperChunk{IsFirst: false}
		chars = 0
		chunksInCurrent = 0
		isFirst = false
	}

	for _, topic := range topics {
		if len(topic.Chunks) == 0 {
			continue
		}

		chunks := make([]domain.ScoredChunk, len(topic.Chunks))
		copy(chunks, topic.Chunks)
		sortChronological(chunks)

		section := domain.TopicSection{TopicID: topic.TopicID, TopicQuestion: topic.TopicQuestion}

		for _, k := range chunks {
			docName := docNames[k.Chunk.DocumentID]
			chunkSize := envelope.ChunkEnvelopeSize(k.Chunk.ChunkNumber, k.RelevanceScore, k.Chunk.Content)

			headerNeeded := len(section.Chunks) == 0
			packageNeeded := len(current.Topics) == 0 && chunksInCurrent == 0 && isFirst

			need := chunkSize
			if headerNeeded {
				need += envelope.TopicSectionHeaderSize(topic.TopicQuestion, docName, section.IsContinuation)
			}
			if packageNeeded {
				need += envelope.PackageHeaderSize(allQuestions)
			}

			hasAnyChunk := chunksInCurrent > 0 || len(section.Chunks) > 0
			if chars+need > cfg.MaxCharsPerSuperChunk && hasAnyChunk {
				if len(section.Chunks) > 0 {
					current.Topics = append(current.Topics, section)
				}
				closeCurrent()
				section = domain.TopicSection{TopicID: topic.TopicID, TopicQuestion: topic.TopicQuestion, IsContinuation: true}
				need = chunkSize + envelope.TopicSectionHeaderSize(topic.TopicQuestion, docName, true)
			}

			section.Chunks = append(section.Chunks, k)
			chars += need
			chunksInCurrent++
		}

		if len(section.Chunks) > 0 {
			current.Topics = append(current.Topics, section)
		}
	}

	if len(current.Topics) > 0 {
		result = append(result, current)
	}

	stampIndices(result)
	return result
}

// ApplyLimit enforces the optional per-topic SuperChunk limit: when
// enabled, keeps at most MaxSuperChunksPerTopic SuperChunks per primary
// topic (the topic of the first TopicSection), in emission order.
func ApplyLimit(superChunks []domain.SuperChunk, cfg Config) []domain.SuperChunk {
	if !cfg.LimitSuperChunks {
		return superChunks
	}

	counts := make(map[string]int)
	kept := make([]domain.SuperChunk, 0, len(superChunks))
	for _, sc := range superChunks {
		if len(sc.Topics) == 0 {
			continue
		}
		primary := sc.Topics[0].TopicID
		if counts[primary] >= cfg.MaxSuperChunksPerTopic {
			continue
		}
		counts[primary]++
		kept = append(kept, sc)
	}

	stampIndices(kept)
	return kept
}

// CountUniqueChunks reports the number of distinct (documentId, chunkNumber)
// pairs selected across all topics. A chunk matched by multiple topics
// is counted once here
// even though it retains its own copy in each topic's section for
// packing.
func CountUniqueChunks(topics []domain.TopicResult) int {
	seen := make(map[[2]int]struct{})
	for _, topic := range topics {
		for _, c := range topic.Chunks {
			seen[[2]int{c.Chunk.DocumentID, c.Chunk.ChunkNumber}] = struct{}{}
		}
	}
	return len(seen)
}

func sortChronological(chunks []domain.ScoredChunk) {
	sort.Slice(chunks, func(i, j int) bool {
		if chunks[i].Chunk.DocumentID != chunks[j].Chunk.DocumentID {
			return chunks[i].Chunk.DocumentID < chunks[j].Chunk.DocumentID
		}
		return chunks[i].Chunk.ChunkNumber < chunks[j].Chunk.ChunkNumber
	})
}

func stampIndices(superChunks []domain.SuperChunk) {
	for i := range superChunks {
		superChunks[i].Index = i + 1
		superChunks[i].Count = len(superChunks)
		superChunks[i].IsFirst = i == 0
	}
}
