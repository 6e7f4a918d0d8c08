// Package mcp provides MCP tool handlers for the corpus-reduction
// server. Handlers parse MCP request arguments and delegate to the store
// and orchestrator: one args struct per tool with jsonschema_description
// tags, a Handlers struct wrapping its collaborators plus a logger, and
// methods of the form (ctx, req, args) -> (*mcp.CallToolResult, any, error).
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/bad33ndj3/corpus-reduce/internal/cooccur"
	"github.com/bad33ndj3/corpus-reduce/internal/domain"
	"github.com/bad33ndj3/corpus-reduce/internal/ingest"
	"github.com/bad33ndj3/corpus-reduce/internal/orchestrator"
	"github.com/bad33ndj3/corpus-reduce/internal/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// LoadDocumentArgs defines the arguments for the load_document tool.
type LoadDocumentArgs struct {
	DocumentID int    `json:"document_id" jsonschema_description:"Caller-chosen integer id for this document"`
	Name       string `json:"name" jsonschema_description:"Document name, shown in rendered output (e.g. 'manual.txt')"`
	Content    string `json:"content" jsonschema_description:"Raw document text; split into paragraph chunks and indexed"`
	CollectionID int  `json:"collection_id,omitempty" jsonschema_description:"Optional collection id to group this document under"`
}

// ListDocumentsArgs defines the arguments for the list_documents tool (none).
type ListDocumentsArgs struct{}

// TopicArg is one topic within a QueryArgs request.
type TopicArg struct {
	TopicID         string `json:"topic_id,omitempty" jsonschema_description:"Stable id for this topic; auto-assigned if omitted"`
	Question        string `json:"question" jsonschema_description:"Natural-language question for this topic"`
	SpatialCategory string `json:"spatial_category,omitempty" jsonschema_description:"auto|concentrated|spread (default auto)"`
}

// QueryArgs defines the arguments for the query tool.
type QueryArgs struct {
	DocumentIDs            []int      `json:"document_ids,omitempty" jsonschema_description:"Document ids to query (mutually exclusive with collection_id)"`
	CollectionID           int        `json:"collection_id,omitempty" jsonschema_description:"Collection id to query (mutually exclusive with document_ids)"`
	AccountTier            string     `json:"account_tier,omitempty" jsonschema_description:"standard|large (default standard)"`
	MaxCharsPerSuperChunk  int        `json:"max_chars_per_super_chunk,omitempty" jsonschema_description:"Override the tier's default super-chunk size"`
	Topics                 []TopicArg `json:"topics" jsonschema_description:"One or more topic questions to answer"`
	LimitSuperChunks       bool       `json:"limit_super_chunks,omitempty" jsonschema_description:"Cap super chunks emitted per primary topic"`
	MaxSuperChunksPerTopic int        `json:"max_super_chunks_per_topic,omitempty" jsonschema_description:"Used when limit_super_chunks is true (1..10)"`
}

// Handlers wraps the store and orchestrator and provides MCP tool handlers.
type Handlers struct {
	store   *store.InMemoryStore
	orch    *orchestrator.Orchestrator
	builder *cooccur.Builder
	logger  *slog.Logger

	nextDocID int
}

// NewHandlers creates handlers with the given collaborators.
func NewHandlers(s *store.InMemoryStore, orch *orchestrator.Orchestrator, builder *cooccur.Builder, logger *slog.Logger) *Handlers {
	return &Handlers{store: s, orch: orch, builder: builder, logger: logger}
}

// LoadDocument handles the load_document tool call: chunks args.Content
// into a Document, stores it, and builds its co-occurrence index.
func (h *Handlers) LoadDocument(ctx context.Context, req *mcp.CallToolRequest, args LoadDocumentArgs) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(args.Content) == "" {
		return nil, nil, fmt.Errorf("content is required")
	}
	if strings.TrimSpace(args.Name) == "" {
		return nil, nil, fmt.Errorf("name is required")
	}

	docID := args.DocumentID
	if docID == 0 {
		h.nextDocID++
		docID = h.nextDocID
	}

	doc := ingest.ChunkText(docID, args.Name, args.Content)
	h.store.PutDocument(doc)
	if args.CollectionID != 0 {
		h.store.PutInCollection(args.CollectionID, docID)
	}

	index := h.builder.Build(ingest.CorpusText(doc))
	if err := h.store.AddVectors(docID, index); err != nil {
		h.logger.Error("load_document: failed to build index", "document_id", docID, "error", err)
		return nil, nil, fmt.Errorf("build index: %w", err)
	}

	h.logger.Info("load_document: indexed", "document_id", docID, "name", args.Name, "chunks", len(doc.Chunks))

	msg := fmt.Sprintf("Loaded document_id=%d (%s): %d chunks, %d indexed terms.",
		docID, args.Name, len(doc.Chunks), index.TotalTerms)
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: msg}}}, nil, nil
}

// ListDocuments handles the list_documents tool call.
func (h *Handlers) ListDocuments(ctx context.Context, req *mcp.CallToolRequest, args ListDocumentsArgs) (*mcp.CallToolResult, any, error) {
	docs := h.store.ListDocuments()
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })

	var b strings.Builder
	for _, d := range docs {
		fmt.Fprintf(&b, "%d\t%s\t%d chunks\n", d.ID, d.Name, len(d.Chunks))
	}
	if b.Len() == 0 {
		b.WriteString("No documents loaded.")
	}
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: b.String()}}}, nil, nil
}

// Query handles the query tool call: runs the full retrieval pipeline
// and returns the rendered super chunks joined together.
func (h *Handlers) Query(ctx context.Context, req *mcp.CallToolRequest, args QueryArgs) (*mcp.CallToolResult, any, error) {
	q := toQueryStructure(args)

	result, err := h.orch.ExecuteQuery(ctx, q)
	if err != nil {
		h.logger.Error("query: failed", "error", err)
		return nil, nil, err
	}
	if result.Cancelled {
		return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: "query cancelled"}}}, nil, nil
	}

	h.logger.Info("query: success", "run_id", result.RunID, "super_chunks", len(result.SuperChunks))

	texts := make([]string, len(result.SuperChunks))
	for i, sc := range result.SuperChunks {
		texts[i] = sc.Content
	}
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: strings.Join(texts, "\n")}}}, nil, nil
}

func toQueryStructure(args QueryArgs) domain.QueryStructure {
	tier := domain.AccountTier(args.AccountTier)
	if tier == "" {
		tier = domain.TierStandard
	}

	sourceType := domain.SourceDocuments
	if len(args.DocumentIDs) == 0 && args.CollectionID != 0 {
		sourceType = domain.SourceCollection
	}

	topics := make([]domain.TopicQuery, len(args.Topics))
	for i, t := range args.Topics {
		cat := domain.SpatialCategory(t.SpatialCategory)
		if cat == "" {
			cat = domain.SpatialAuto
		}
		topics[i] = domain.TopicQuery{TopicID: t.TopicID, Question: t.Question, SpatialCategory: cat}
	}

	return domain.QueryStructure{
		Version:                "2.3",
		AccountTier:            tier,
		MaxCharsPerSuperChunk:  args.MaxCharsPerSuperChunk,
		SourceType:             sourceType,
		DocumentIDs:            args.DocumentIDs,
		CollectionID:           args.CollectionID,
		Topics:                 topics,
		LimitSuperChunks:       args.LimitSuperChunks,
		MaxSuperChunksPerTopic: args.MaxSuperChunksPerTopic,
	}
}
