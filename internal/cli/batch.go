package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quarto-dev/q2-sub003/internal/logging"
	"github.com/quarto-dev/q2-sub003/internal/ui/pretty"
	"github.com/quarto-dev/q2-sub003/pkg/config"
	"github.com/quarto-dev/q2-sub003/pkg/discovery"
	"github.com/quarto-dev/q2-sub003/pkg/reconcile"
)

type batchFlags struct {
	ignore       []string
	strictVerify bool
	color        string
	format       string
}

func newBatchCommand() *cobra.Command {
	flags := &batchFlags{}

	cmd := &cobra.Command{
		Use:   "batch [paths...]",
		Short: "Discover and reconcile every original/executed document pair under paths",
		Long: `batch uses pkg/discovery to find *.qmd/*.md source documents and their
"<name>.executed<ext>" counterparts under the given paths (defaulting to the
current directory), reconciles each pair, and prints an aggregate stats table.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args, flags)
		},
	}

	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to exclude")
	cmd.Flags().BoolVar(&flags.strictVerify, "strict-verify", true, "double-check every KeepOriginal decision with StructuralEqual")
	cmd.Flags().StringVar(&flags.color, "color", "auto", "colorize output: auto, always, never")
	cmd.Flags().StringVar(&flags.format, "format", "table", "output format: table, text")

	return cmd
}

// batchOutcome records one pair's reconciliation result for the
// summary table; Err is non-nil when that pair failed.
type batchOutcome struct {
	Pair  discovery.Pair
	Stats reconcile.Stats
	Err   error
}

func runBatch(cmd *cobra.Command, paths []string, flags *batchFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	pairs, err := discovery.Discover(ctx, discovery.Options{
		Paths:        paths,
		ExcludeGlobs: flags.ignore,
	})
	if err != nil {
		return fmt.Errorf("discover document pairs: %w", err)
	}

	logger.Info("discovered pairs", logging.FieldPairsDiscovered, len(pairs))

	cfg := config.NewConfig()
	cfg.StrictVerify = flags.strictVerify
	opts := cfg.ReconcileOptions()

	outcomes := make([]batchOutcome, 0, len(pairs))
	var total reconcile.Stats
	failed := 0

	for _, pair := range pairs {
		original, err := loadDocument(ctx, 0, pair.Original)
		if err != nil {
			outcomes = append(outcomes, batchOutcome{Pair: pair, Err: fmt.Errorf("load original: %w", err)})
			failed++
			continue
		}
		executed, err := loadDocument(ctx, 1, pair.Executed)
		if err != nil {
			outcomes = append(outcomes, batchOutcome{Pair: pair, Err: fmt.Errorf("load executed: %w", err)})
			failed++
			continue
		}

		_, plan, err := reconcile.Reconcile(original, executed, opts)
		if err != nil {
			outcomes = append(outcomes, batchOutcome{Pair: pair, Err: err})
			failed++
			continue
		}

		outcomes = append(outcomes, batchOutcome{Pair: pair, Stats: plan.Stats})
		total.Add(plan.Stats)
	}

	logger.Info("batch complete",
		logging.FieldPairsReconciled, len(pairs)-failed,
		logging.FieldPairsFailed, failed,
	)

	colorEnabled := pretty.IsColorEnabled(flags.color, os.Stdout)
	styles := pretty.NewStyles(colorEnabled)
	formatter := pretty.NewStatsTableFormatter(styles, colorEnabled, pretty.DefaultTermWidth())

	if flags.format == "table" {
		fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBatchTable(toPrettyOutcomes(outcomes)))
	}
	fmt.Fprintln(cmd.OutOrStdout(), styles.FormatStatsSummary(total, len(pairs), failed))

	if failed > 0 {
		return errExitCode(ExitReconcileErrors)
	}
	return nil
}

func toPrettyOutcomes(outcomes []batchOutcome) []pretty.BatchRow {
	rows := make([]pretty.BatchRow, len(outcomes))
	for i, o := range outcomes {
		errMsg := ""
		if o.Err != nil {
			errMsg = o.Err.Error()
		}
		rows[i] = pretty.BatchRow{
			Original: o.Pair.Original,
			Stats:    o.Stats,
			Err:      errMsg,
		}
	}
	return rows
}
