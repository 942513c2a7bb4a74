// Package cli provides the Cobra command structure for quarto-reconcile.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/quarto-dev/q2-sub003/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root quarto-reconcile command with all
// subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "quarto-reconcile",
		Short: "Merge an executed document's computed output back into its original source positions",
		Long: `quarto-reconcile reconciles a pre-execution document AST against its
post-execution counterpart: unchanged content keeps the original's source
offsets, changed or newly generated content takes the executed tree's values.

It implements the three-stage hash / plan / apply pipeline described by the
AST reconciliation specification, operating on Markdown/Quarto documents or
pre-serialized JSON ASTs.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newReconcileCommand())
	rootCmd.AddCommand(newBatchCommand())
	rootCmd.AddCommand(newStatsCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
