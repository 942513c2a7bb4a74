package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quarto-dev/q2-sub003/internal/ui/pretty"
	"github.com/quarto-dev/q2-sub003/pkg/fsutil"
	"github.com/quarto-dev/q2-sub003/pkg/pandocjson"
)

func newStatsCommand() *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "stats <plan.json>",
		Short: "Render a previously emitted reconciliation plan's stats",
		Long:  `stats loads a plan written by "reconcile --plan" and renders its Stats as a summary block.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, args[0], color)
		},
	}

	cmd.Flags().StringVar(&color, "color", "auto", "colorize output: auto, always, never")

	return cmd
}

func runStats(cmd *cobra.Command, planPath string, color string) error {
	ctx := cmd.Context()
	content, _, err := fsutil.ReadFile(ctx, planPath)
	if err != nil {
		return fmt.Errorf("read plan: %w", err)
	}

	plan, err := pandocjson.DecodePlan(content)
	if err != nil {
		return fmt.Errorf("decode plan: %w", err)
	}

	colorEnabled := pretty.IsColorEnabled(color, os.Stdout)
	styles := pretty.NewStyles(colorEnabled)

	fmt.Fprintln(cmd.OutOrStdout(), styles.FormatStatsSummary(plan.Stats, 1, 0))
	return nil
}
