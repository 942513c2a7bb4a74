// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldOriginal   = "original"
	FieldExecuted   = "executed"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldFlavor             = "flavor"
	FieldStrictVerify       = "strict_verify"
	FieldTableCellRecursion = "table_cell_recursion"

	// Reconciliation statistics fields.
	FieldPairsDiscovered  = "pairs_discovered"
	FieldPairsReconciled  = "pairs_reconciled"
	FieldPairsFailed      = "pairs_failed"
	FieldBlocksKept       = "blocks_kept"
	FieldBlocksReplaced   = "blocks_replaced"
	FieldBlocksRecursed   = "blocks_recursed"
	FieldInlinesKept      = "inlines_kept"
	FieldInlinesReplaced  = "inlines_replaced"
	FieldInlinesRecursed  = "inlines_recursed"
	FieldHashCollisions   = "hash_collisions"
	FieldReconciled       = "reconciled"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
