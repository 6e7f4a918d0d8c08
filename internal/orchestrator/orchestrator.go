// Package orchestrator implements ExecuteQuery: the single entry point
// that fans a query's topics out to the expander and scorer, applies the
// spatial filter, packs the result, and renders the final envelope. It is
// an interfaces-in, functional-options struct wrapping a storage
// collaborator, with a logger and a Clock seam for deterministic tests.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/bad33ndj3/corpus-reduce/internal/domain"
	"github.com/bad33ndj3/corpus-reduce/internal/envelope"
	"github.com/bad33ndj3/corpus-reduce/internal/expander"
	"github.com/bad33ndj3/corpus-reduce/internal/packer"
	"github.com/bad33ndj3/corpus-reduce/internal/scorer"
	"github.com/bad33ndj3/corpus-reduce/internal/spatial"
	"github.com/bad33ndj3/corpus-reduce/internal/store"
	"github.com/google/uuid"
)

// Clock abstracts time access so tests can assert on a fixed timestamp.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Phase identifies one of the fixed progress checkpoints.
type Phase string

const (
	PhaseRetrieve Phase = "retrieve"
	PhaseExpand   Phase = "expand"
	PhaseScore    Phase = "score"
	PhasePack     Phase = "pack"
	PhaseFormat   Phase = "format"
)

// ProgressFunc is invoked at each fixed phase, optionally per-topic.
type ProgressFunc func(phase Phase, topicID string)

// TierPreset holds a tier's size defaults.
type TierPreset struct {
	SuperChunkSize int
	PackageSize    int
}

var tierPresets = map[domain.AccountTier]TierPreset{
	domain.TierStandard: {SuperChunkSize: 30000, PackageSize: 75000},
	domain.TierLarge:     {SuperChunkSize: 100000, PackageSize: 150000},
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger attaches a structured logger. It receives one kind of
// message: a warning for each rendered super chunk larger than the
// configured limit; phases are reported through WithProgress, not logged.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithClock overrides the time source used to stamp Result.Timestamp.
func WithClock(c Clock) Option {
	return func(o *Orchestrator) { o.clock = c }
}

// WithProgress registers a callback invoked at each fixed phase.
func WithProgress(p ProgressFunc) Option {
	return func(o *Orchestrator) { o.progress = p }
}

// WithExpanderConfig overrides the query-expansion tunables.
func WithExpanderConfig(cfg expander.Config) Option {
	return func(o *Orchestrator) { o.expanderCfg = cfg }
}

// WithScorerConfig overrides the hybrid-scoring tunables.
func WithScorerConfig(cfg scorer.Config) Option {
	return func(o *Orchestrator) { o.scorerCfg = cfg }
}

// WithSpatialConfig overrides the spatial-classifier cutoffs.
func WithSpatialConfig(cfg spatial.Config) Option {
	return func(o *Orchestrator) { o.spatialCfg = cfg }
}

// WithTierPresets overrides the built-in standard/large size presets.
// Tiers absent from presets keep their built-in default.
func WithTierPresets(presets map[domain.AccountTier]TierPreset) Option {
	return func(o *Orchestrator) {
		for tier, preset := range presets {
			o.tierPresets[tier] = preset
		}
	}
}

// Orchestrator runs executeQuery against an injected storage collaborator.
type Orchestrator struct {
	store store.Storage

	logger      *slog.Logger
	clock       Clock
	progress    ProgressFunc
	expanderCfg expander.Config
	scorerCfg   scorer.Config
	spatialCfg  spatial.Config
	tierPresets map[domain.AccountTier]TierPreset
}

// New builds an Orchestrator with sensible defaults, applying opts on top.
func New(s store.Storage, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		store:       s,
		clock:       realClock{},
		expanderCfg: expander.DefaultConfig(),
		scorerCfg:   scorer.DefaultConfig(),
		spatialCfg:  spatial.DefaultConfig(),
		tierPresets: map[domain.AccountTier]TierPreset{
			domain.TierStandard: tierPresets[domain.TierStandard],
			domain.TierLarge:    tierPresets[domain.TierLarge],
		},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Orchestrator) logf(msg string, args ...any) {
	if o.logger != nil {
		o.logger.Warn(msg, args...)
	}
}

func (o *Orchestrator) notify(phase Phase, topicID string) {
	if o.progress != nil {
		o.progress(phase, topicID)
	}
}

// validate runs the InputInvalid checks against a query structure.
func (o *Orchestrator) validate(q domain.QueryStructure) error {
	if len(q.Topics) == 0 {
		return fmt.Errorf("%w: no topics in query", domain.ErrInputInvalid)
	}
	for _, t := range q.Topics {
		if t.Question == "" {
			return fmt.Errorf("%w: topic %q has an empty question", domain.ErrInputInvalid, t.TopicID)
		}
	}
	switch q.SourceType {
	case domain.SourceDocuments:
		if len(q.DocumentIDs) == 0 {
			return fmt.Errorf("%w: no documents selected", domain.ErrInputInvalid)
		}
	case domain.SourceCollection:
		if q.CollectionID == 0 {
			return fmt.Errorf("%w: no collection selected", domain.ErrInputInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown source type %q", domain.ErrInputInvalid, q.SourceType)
	}
	if _, ok := o.tierPresets[q.AccountTier]; !ok {
		return fmt.Errorf("%w: unknown account tier %q", domain.ErrInputInvalid, q.AccountTier)
	}
	return nil
}

// normalize fills in defaults for legacy/partial query structures: topics
// without an id get a stable positional one, and an empty spatial
// category defaults to auto.
func (o *Orchestrator) normalize(q domain.QueryStructure) domain.QueryStructure {
	topics := make([]domain.TopicQuery, len(q.Topics))
	copy(topics, q.Topics)
	for i := range topics {
		if topics[i].TopicID == "" {
			topics[i].TopicID = fmt.Sprintf("topic-%d", i)
		}
		if topics[i].SpatialCategory == "" {
			topics[i].SpatialCategory = domain.SpatialAuto
		}
	}
	q.Topics = topics

	if q.MaxCharsPerSuperChunk <= 0 {
		if preset, ok := o.tierPresets[q.AccountTier]; ok {
			q.MaxCharsPerSuperChunk = preset.SuperChunkSize
		}
	}
	return q
}

// ExecuteQuery runs the full retrieval and packing pipeline over q.
func (o *Orchestrator) ExecuteQuery(ctx context.Context, q domain.QueryStructure) (domain.Result, error) {
	if err := o.validate(q); err != nil {
		return domain.Result{}, err
	}
	q = o.normalize(q)

	runID := uuid.NewString()

	o.notify(PhaseRetrieve, "")
	chunks, docNames, err := o.retrieveChunks(q)
	if err != nil {
		return domain.Result{}, err
	}

	var allDocIDs []int
	switch q.SourceType {
	case domain.SourceDocuments:
		allDocIDs = q.DocumentIDs
	case domain.SourceCollection:
		seen := make(map[int]struct{})
		for _, c := range chunks {
			if _, ok := seen[c.DocumentID]; !ok {
				seen[c.DocumentID] = struct{}{}
				allDocIDs = append(allDocIDs, c.DocumentID)
			}
		}
	}

	topicResults := make([]domain.TopicResult, 0, len(q.Topics))
	for _, topic := range q.Topics {
		if ctx.Err() != nil {
			return cancelledResult(runID, o.clock.Now()), nil
		}

		o.notify(PhaseExpand, topic.TopicID)
		concept, err := expander.ExpandTopic(o.store, topic.Question, allDocIDs, o.expanderCfg)
		if err != nil {
			return domain.Result{}, fmt.Errorf("%w: expand topic %s: %v", domain.ErrStorageUnavailable, topic.TopicID, err)
		}

		if ctx.Err() != nil {
			return cancelledResult(runID, o.clock.Now()), nil
		}

		o.notify(PhaseScore, topic.TopicID)
		ranked := scorer.ScoreAndFilter(chunks, concept, o.scorerCfg)

		filtered, pattern := spatial.Filter(ranked, topic.SpatialCategory, o.spatialCfg)

		topicResults = append(topicResults, domain.TopicResult{
			TopicID:       topic.TopicID,
			TopicQuestion: topic.Question,
			Concept:       concept,
			Chunks:        filtered,
			Pattern:       pattern,
		})
	}

	if ctx.Err() != nil {
		return cancelledResult(runID, o.clock.Now()), nil
	}

	o.notify(PhasePack, "")
	superChunks := packer.Pack(topicResults, packer.Config{
		MaxCharsPerSuperChunk:  q.MaxCharsPerSuperChunk,
		LimitSuperChunks:       q.LimitSuperChunks,
		MaxSuperChunksPerTopic: q.MaxSuperChunksPerTopic,
	}, docNames)
	superChunks = packer.ApplyLimit(superChunks, packer.Config{
		LimitSuperChunks:       q.LimitSuperChunks,
		MaxSuperChunksPerTopic: q.MaxSuperChunksPerTopic,
	})

	o.notify(PhaseFormat, "")
	allQuestions := make([]string, len(q.Topics))
	for i, t := range q.Topics {
		allQuestions[i] = t.Question
	}
	for i := range superChunks {
		rendered := envelope.RenderSuperChunk(superChunks[i], i+1, len(superChunks), i == len(superChunks)-1, allQuestions, docNames)
		if len(rendered) > q.MaxCharsPerSuperChunk {
			o.logf("super chunk exceeds configured limit", "index", i+1, "size", len(rendered), "limit", q.MaxCharsPerSuperChunk)
		}
		superChunks[i].Content = rendered
		superChunks[i].TotalChars = len(rendered)
	}

	return domain.Result{
		RunID:        runID,
		TopicResults: topicResults,
		SuperChunks:  superChunks,
		Timestamp:    o.clock.Now(),
		Cancelled:    false,
	}, nil
}

func cancelledResult(runID string, ts time.Time) domain.Result {
	return domain.Result{RunID: runID, Timestamp: ts, Cancelled: true}
}

// retrieveChunks resolves the query's document set to its chunks and a
// DocumentID → name lookup for envelope rendering.
func (o *Orchestrator) retrieveChunks(q domain.QueryStructure) ([]domain.Chunk, map[int]string, error) {
	var chunks []domain.Chunk

	switch q.SourceType {
	case domain.SourceDocuments:
		for _, docID := range q.DocumentIDs {
			cs, err := o.store.GetChunksByDocument(docID)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: document %d: %v", domain.ErrStorageUnavailable, docID, err)
			}
			chunks = append(chunks, cs...)
		}
	case domain.SourceCollection:
		cs, err := o.store.GetChunksByCollection(q.CollectionID)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: collection %d: %v", domain.ErrStorageUnavailable, q.CollectionID, err)
		}
		chunks = cs
	}

	docIDs := make(map[int]struct{})
	for _, c := range chunks {
		docIDs[c.DocumentID] = struct{}{}
	}
	ids := make([]int, 0, len(docIDs))
	for id := range docIDs {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	names := make(map[int]string, len(ids))
	for _, id := range ids {
		doc, err := o.store.GetDocument(id)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: document %d: %v", domain.ErrStorageUnavailable, id, err)
		}
		names[id] = doc.Name
	}

	return chunks, names, nil
}
