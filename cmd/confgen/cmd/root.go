// Package cmd wires the confgen CLI: schema generation from a confgen.yaml
// plus a scaffolding subcommand for new projects.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/confgen/confgen/logger"
)

var (
	jsonLogs bool
	verbose  bool
)

// RootCmd is the confgen entry point.
var RootCmd = &cobra.Command{
	Use:   "confgen",
	Short: "Generate structured config schemas from Go types",
	Long: `confgen introspects Go configuration structs and generates Python
dataclass schemas compatible with OmegaConf and Hydra.

Each generated dataclass carries a _target_ field naming its Go source
type, typed fields checked against the structured-config grammar, and
defaults taken from struct tags. Fields whose types the grammar cannot
express degrade to Any with the original type preserved as a comment.

Examples:
  confgen init                    # Scaffold a confgen.yaml
  confgen generate                # Generate from ./confgen.yaml
  confgen generate --config x.yaml`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Initialize(jsonLogs, verbose)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Emit logs as JSON")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	RootCmd.AddCommand(generateCmd)
	RootCmd.AddCommand(initCmd)
}
