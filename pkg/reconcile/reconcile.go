package reconcile

import (
	"fmt"

	"github.com/quarto-dev/q2-sub003/pkg/pandoc"
)

// Reconcile runs the full H -> P -> A pipeline: it hashes both trees,
// computes an alignment plan, and applies that plan to produce the
// merged document. original and executed must both be non-nil
// documents rooted at a NodeDocument; the returned document's Root is
// a freshly built tree and does not alias original.Root or
// executed.Root at the top level, though unchanged subtrees are
// reused by pointer from original and replaced subtrees are reused by
// pointer from executed (see applyPlan's doc comment on
// value-consuming semantics: neither input tree should be read or
// mutated by the caller afterward).
func Reconcile(original, executed pandoc.Document, opts Options) (pandoc.Document, *ReconciliationPlan, error) {
	plan, err := ComputeReconciliation(original, executed, opts)
	if err != nil {
		return pandoc.Document{}, nil, err
	}
	merged, err := ApplyReconciliation(original, executed, plan)
	if err != nil {
		return pandoc.Document{}, nil, err
	}
	return merged, plan, nil
}

// ComputeReconciliation runs the Structural Hasher and Plan Computer
// stages only, returning the plan without applying it. Useful for
// inspecting or serializing a plan (pkg/pandocjson) before committing
// to a merge.
func ComputeReconciliation(original, executed pandoc.Document, opts Options) (*ReconciliationPlan, error) {
	if original.Root == nil || executed.Root == nil {
		return nil, fmt.Errorf("reconcile: both documents must have a root node")
	}
	if original.Root.Kind != pandoc.NodeDocument || executed.Root.Kind != pandoc.NodeDocument {
		return nil, fmt.Errorf("reconcile: document roots must be NodeDocument")
	}
	return computePlan(original.Root, executed.Root, NewHashCache(), opts)
}

// ApplyReconciliation runs the Plan Applier stage against an
// already-computed plan. original and executed must be the same
// trees (by structure, not necessarily by pointer) the plan was
// computed from; indices in plan reference positions within their
// child sequences, so a plan computed against one pair of trees is
// meaningless applied to another.
func ApplyReconciliation(original, executed pandoc.Document, plan *ReconciliationPlan) (pandoc.Document, error) {
	if original.Root == nil || executed.Root == nil {
		return pandoc.Document{}, fmt.Errorf("reconcile: both documents must have a root node")
	}
	mergedRoot := applyPlan(original.Root, executed.Root, plan)
	return pandoc.Document{
		Meta: executed.Meta,
		Root: mergedRoot,
		File: original.File,
	}, nil
}
