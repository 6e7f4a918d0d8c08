package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/bad33ndj3/corpus-reduce/internal/cooccur"
	"github.com/bad33ndj3/corpus-reduce/internal/mcp"
	"github.com/bad33ndj3/corpus-reduce/internal/orchestrator"
	"github.com/bad33ndj3/corpus-reduce/internal/store"
	"github.com/spf13/cobra"
)

// newServeCmd starts the corpus-reduce MCP server over stdio: a dated
// debug log file under the workspace's config directory, then a single
// blocking server.Run call.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the corpus-reduce MCP server over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, logFile, err := setupLogger(workspace)
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to set up file logger: %v\n", err)
				logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
			} else {
				defer logFile.Close()
			}

			logger.Info("server starting", "name", mcp.ServerName, "version", mcp.ServerVersion)

			st := store.NewInMemoryStore()
			builder := cooccur.NewBuilder(globalCfg.CooccurOptions()...)
			opts := append(globalCfg.OrchestratorOptions(), orchestrator.WithLogger(logger))
			orch := orchestrator.New(st, opts...)

			handlers := mcp.NewHandlers(st, orch, builder, logger)
			server := mcp.NewServer(handlers)

			logger.Info("server ready, waiting for requests")
			return mcp.Serve(cmd.Context(), server)
		},
	}
}

// setupLogger writes a debug-YYYY-MM-DD.txt log under the workspace's
// config directory.
func setupLogger(workspace string) (*slog.Logger, *os.File, error) {
	dir := filepath.Join(workspace, "corpus_reduce_cfg", "logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}

	date := time.Now().Format("2006-01-02")
	path := filepath.Join(dir, fmt.Sprintf("debug-%s.txt", date))

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	handler := slog.NewTextHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler), file, nil
}
