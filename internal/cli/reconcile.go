package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quarto-dev/q2-sub003/internal/logging"
	"github.com/quarto-dev/q2-sub003/pkg/config"
	"github.com/quarto-dev/q2-sub003/pkg/fsutil"
	"github.com/quarto-dev/q2-sub003/pkg/mdreader"
	"github.com/quarto-dev/q2-sub003/pkg/pandoc"
	"github.com/quarto-dev/q2-sub003/pkg/pandocjson"
	"github.com/quarto-dev/q2-sub003/pkg/reconcile"
	"github.com/quarto-dev/q2-sub003/pkg/sourcemap"
)

type reconcileFlags struct {
	output       string
	emitPlan     string
	strictVerify bool
}

func newReconcileCommand() *cobra.Command {
	flags := &reconcileFlags{}

	cmd := &cobra.Command{
		Use:   "reconcile <original> <executed>",
		Short: "Reconcile an original document against its executed counterpart",
		Long: `reconcile parses two Markdown (or pre-serialized JSON AST) files, runs the
three-stage hash/plan/apply pipeline, and writes the merged document as JSON.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReconcile(cmd, args[0], args[1], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write merged document here instead of stdout")
	cmd.Flags().StringVar(&flags.emitPlan, "plan", "", "also write the reconciliation plan as JSON here")
	cmd.Flags().BoolVar(&flags.strictVerify, "strict-verify", true, "double-check every KeepOriginal decision with StructuralEqual")

	return cmd
}

func runReconcile(cmd *cobra.Command, originalPath, executedPath string, flags *reconcileFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	original, err := loadDocument(ctx, 0, originalPath)
	if err != nil {
		return fmt.Errorf("load original: %w", err)
	}
	executed, err := loadDocument(ctx, 1, executedPath)
	if err != nil {
		return fmt.Errorf("load executed: %w", err)
	}

	cfg := config.NewConfig()
	cfg.StrictVerify = flags.strictVerify
	opts := cfg.ReconcileOptions()

	merged, plan, err := reconcile.Reconcile(original, executed, opts)
	if err != nil {
		return fmt.Errorf("reconcile %s against %s: %w", originalPath, executedPath, err)
	}

	logger.Info("reconciled",
		logging.FieldOriginal, originalPath,
		logging.FieldExecuted, executedPath,
		logging.FieldBlocksKept, plan.Stats.BlocksKept,
		logging.FieldBlocksReplaced, plan.Stats.BlocksReplaced,
		logging.FieldBlocksRecursed, plan.Stats.BlocksRecursed,
	)

	mergedJSON, err := pandocjson.EncodeDocument(merged)
	if err != nil {
		return fmt.Errorf("encode merged document: %w", err)
	}
	if err := writeOutput(ctx, flags.output, mergedJSON); err != nil {
		return err
	}

	if flags.emitPlan != "" {
		planJSON, err := pandocjson.EncodePlan(plan)
		if err != nil {
			return fmt.Errorf("encode plan: %w", err)
		}
		if err := fsutil.WriteAtomic(ctx, flags.emitPlan, planJSON, 0); err != nil {
			return fmt.Errorf("write plan: %w", err)
		}
	}

	return nil
}

// loadDocument reads path and parses it as either pre-serialized
// pandocjson (".json") or Markdown/Quarto source (anything else),
// tagging its nodes' provenance with fileID.
func loadDocument(ctx context.Context, fileID sourcemap.FileID, path string) (pandoc.Document, error) {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return pandoc.Document{}, err
	}

	if filepath.Ext(path) == ".json" {
		return pandocjson.DecodeDocument(content)
	}
	return mdreader.Read(fileID, path, content), nil
}

func writeOutput(ctx context.Context, output string, content []byte) error {
	if output == "" {
		_, err := os.Stdout.Write(content)
		return err
	}
	return fsutil.WriteAtomic(ctx, output, content, 0)
}
