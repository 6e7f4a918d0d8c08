package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bad33ndj3/corpus-reduce/internal/cooccur"
	"github.com/bad33ndj3/corpus-reduce/internal/domain"
	"github.com/bad33ndj3/corpus-reduce/internal/ingest"
	"github.com/bad33ndj3/corpus-reduce/internal/orchestrator"
	"github.com/bad33ndj3/corpus-reduce/internal/store"
	"github.com/spf13/cobra"
)

// newQueryCmd runs a one-shot query over a directory of plain-text
// documents: load, build indices, expand/score/pack/format, print.
func newQueryCmd() *cobra.Command {
	var (
		docsDir     string
		topics      []string
		tier        string
		spatialMode string
		maxChars    int
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run a corpus-reduction query against a directory of plain-text documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			if docsDir == "" {
				return fmt.Errorf("--documents is required")
			}
			if len(topics) == 0 {
				return fmt.Errorf("at least one --topic is required")
			}

			docs, err := loadDocuments(docsDir)
			if err != nil {
				return err
			}
			if len(docs) == 0 {
				return fmt.Errorf("no documents found in %s", docsDir)
			}

			st := store.NewInMemoryStore()
			builder := cooccur.NewBuilder(globalCfg.CooccurOptions()...)
			docIDs := make([]int, 0, len(docs))
			for _, doc := range docs {
				st.PutDocument(doc)
				index := builder.Build(ingest.CorpusText(doc))
				if err := st.AddVectors(doc.ID, index); err != nil {
					return err
				}
				docIDs = append(docIDs, doc.ID)
			}

			topicQueries := make([]domain.TopicQuery, len(topics))
			for i, q := range topics {
				topicQueries[i] = domain.TopicQuery{
					TopicID:         fmt.Sprintf("topic-%d", i),
					Question:        q,
					SpatialCategory: domain.SpatialCategory(spatialMode),
				}
			}

			orch := orchestrator.New(st, globalCfg.OrchestratorOptions()...)
			q := domain.QueryStructure{
				Version:               "2.3",
				AccountTier:           domain.AccountTier(tier),
				MaxCharsPerSuperChunk: maxChars,
				SourceType:            domain.SourceDocuments,
				DocumentIDs:           docIDs,
				Topics:                topicQueries,
			}

			result, err := orch.ExecuteQuery(cmd.Context(), q)
			if err != nil {
				return err
			}
			if result.Cancelled {
				fmt.Fprintln(cmd.OutOrStdout(), "query cancelled")
				return nil
			}

			for _, sc := range result.SuperChunks {
				fmt.Fprintln(cmd.OutOrStdout(), sc.Content)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&docsDir, "documents", "", "directory of plain-text documents to load")
	cmd.Flags().StringArrayVar(&topics, "topic", nil, "topic question (repeatable)")
	cmd.Flags().StringVar(&tier, "tier", string(domain.TierStandard), "account tier (standard|large)")
	cmd.Flags().StringVar(&spatialMode, "spatial", string(domain.SpatialAuto), "spatial category applied to every topic (auto|concentrated|spread)")
	cmd.Flags().IntVar(&maxChars, "max-chars", 0, "override the tier's default max characters per super chunk")
	return cmd
}

// loadDocuments reads every non-directory entry directly under dir,
// skipping dot-prefixed names, sorted by name, assigning sequential
// document ids starting at 1.
func loadDocuments(dir string) ([]domain.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read documents dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	docs := make([]domain.Document, 0, len(names))
	for i, name := range names {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		docs = append(docs, ingest.ChunkText(i+1, name, string(content)))
	}
	return docs, nil
}
