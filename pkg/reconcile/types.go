// Package reconcile implements the three-stage AST reconciliation
// pipeline: a Structural Hasher (H)
// that fingerprints nodes independent of source position, a Plan
// Computer (P) that aligns an original (pre-execution) tree against
// an executed (post-execution) tree into an immutable
// ReconciliationPlan, and a Plan Applier (A) that consumes the
// executed tree's node values according to the plan to produce a
// merged tree carrying the original tree's SourceInfo wherever content
// is unchanged. The three stages run in that order, synchronously, on
// a single goroutine: there is no concurrency within one reconciliation
// call, matching the pipeline's original single-threaded, purely
// functional design.
package reconcile

// AlignmentTag discriminates a BlockAlignment or InlineAlignment's
// chosen strategy for one matched position.
type AlignmentTag uint8

const (
	// AlignKeepOriginal reuses the original node at index J verbatim,
	// including its SourceInfo. Chosen only when the original and
	// executed nodes at the aligned position are structurally equal.
	AlignKeepOriginal AlignmentTag = iota
	// AlignUseExecuted takes the executed node at index K verbatim,
	// including whatever SourceInfo the executed tree attached to it
	// (typically a FilterProvenance or fresh Original span). Chosen
	// when no structurally compatible original node exists.
	AlignUseExecuted
	// AlignRecurseContainer reuses the original container node's own
	// identity (attrs, kind) but recursively reconciles its children
	// against the executed container's children. Chosen when both
	// nodes are the same container variant and their non-child fields
	// are structurally equal, so only content nested underneath may
	// have changed.
	AlignRecurseContainer
)

// BlockAlignment is one entry in a block-sequence reconciliation plan.
// OriginalIndex/ExecutedIndex are only meaningful for the tag that
// uses them. The planner sets OriginalIndex to -1 for AlignUseExecuted
// and always sets ExecutedIndex.
type BlockAlignment struct {
	Tag AlignmentTag

	// OriginalIndex indexes into the original block sequence.
	// Valid for AlignKeepOriginal and AlignRecurseContainer.
	OriginalIndex int
	// ExecutedIndex indexes into the executed block sequence.
	// Valid for AlignUseExecuted and AlignRecurseContainer.
	ExecutedIndex int

	// Container holds the nested plan when Tag is
	// AlignRecurseContainer. Nil otherwise.
	Container *ContainerPlan
}

// InlineAlignment mirrors BlockAlignment for inline sequences.
type InlineAlignment struct {
	Tag AlignmentTag

	OriginalIndex int
	ExecutedIndex int

	// Container holds the nested plan when Tag is
	// AlignRecurseContainer. Nil otherwise.
	Container *InlineContainerPlan
}

// ContainerPlan is the recursive plan for a block container's
// children (e.g. a Div, BlockQuote, table cell, or list item whose own
// identity matched but whose content needs further alignment). It
// holds only an ordered list of alignments plus, when the recursed
// node's children are themselves inline content (an inline-bearing
// leaf block such as a Paragraph, Plain or Header), an inline plan
// instead.
type ContainerPlan struct {
	// Blocks is populated when the recursed container holds block
	// children (Div, BlockQuote, list items, table cells holding
	// blocks).
	Blocks []BlockAlignment
	// Inline is populated instead of Blocks when the recursed node
	// holds inline children directly (a matched Paragraph, Plain or
	// Header, for instance).
	Inline []InlineAlignment
	// Table is populated instead of Blocks/Inline when the recursed
	// container is a Table whose colspec/caption/head/foot matched
	// under the strict table-cell policy (DESIGN.md decision 1).
	Table *TablePlan
}

// InlineContainerPlan is the recursive plan for an inline container's
// children (Emph, Strong, Span, Link, and similar).
type InlineContainerPlan struct {
	Inline []InlineAlignment
}

// Stats tallies how a reconciliation plan resolved, for observability
// (surfaced by the CLI's "stats" subcommand and recorded in batch
// summaries).
type Stats struct {
	BlocksKept      int
	BlocksReplaced  int
	BlocksRecursed  int
	InlinesKept     int
	InlinesReplaced int
	InlinesRecursed int
	HashCollisions  int
}

// Add merges other into s in place.
func (s *Stats) Add(other Stats) {
	s.BlocksKept += other.BlocksKept
	s.BlocksReplaced += other.BlocksReplaced
	s.BlocksRecursed += other.BlocksRecursed
	s.InlinesKept += other.InlinesKept
	s.InlinesReplaced += other.InlinesReplaced
	s.InlinesRecursed += other.InlinesRecursed
	s.HashCollisions += other.HashCollisions
}

// ReconciliationPlan is the immutable output of the Plan Computer. It
// references its original/executed trees only by index, never by
// pointer, so it can be serialized (pkg/pandocjson) and inspected
// without holding either source tree alive.
type ReconciliationPlan struct {
	Blocks []BlockAlignment
	Stats  Stats
}

// TableCellPolicy selects how table cell content is recursed during
// planning. This module implements the "strict" policy (see DESIGN.md): a table
// reconciles cell-by-cell only when its column spec, head, foot, and
// caption are all structurally unchanged, otherwise the whole table is
// replaced wholesale from the executed tree.
type TableCellPolicy uint8

const (
	// TableCellStrict requires colspec/head/foot/caption equality
	// before attempting per-cell recursion.
	TableCellStrict TableCellPolicy = iota
)

// Options configures a reconciliation run. The zero value selects the
// specification's default behavior.
type Options struct {
	TableCellPolicy TableCellPolicy
	// SkipVerification disables the StructuralEqual check normally run
	// before committing any AlignKeepOriginal, which otherwise guards
	// against a 64-bit hash collision silently pairing unrelated nodes.
	// The zero value (false) selects the conservative policy (DESIGN.md
	// decision 3); set true only for benchmarking the planner without
	// the verification pass.
	SkipVerification bool
}
