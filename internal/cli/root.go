// Package cli wires the corpus-reduce command tree: a cobra root with
// persistent --workspace / --config flags that load a GlobalConfig in
// PersistentPreRunE, and subcommands that read the package-level config
// back out.
package cli

import (
	"fmt"
	"os"

	"github.com/bad33ndj3/corpus-reduce/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	workspace string

	globalCfg *config.GlobalConfig
)

// Execute is the entry point for the CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCmd wires the cobra tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "corpus-reduce",
		Short:         "Intelligent corpus reduction: tokenize, expand, score, and pack text into size-bounded super chunks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if workspace == "" {
				wd, err := os.Getwd()
				if err != nil {
					return err
				}
				workspace = wd
			}
			if cfgFile == "" {
				cfgFile = config.DefaultConfigPath(workspace)
			}
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			globalCfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVar(&workspace, "workspace", "", "Workspace directory")
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to corpus-reduce config file")

	root.AddCommand(
		newQueryCmd(),
		newServeCmd(),
		newConfigCmd(),
	)
	return root
}
