package reconcile

import "github.com/quarto-dev/q2-sub003/pkg/pandoc"

// applyPlan is the Plan Applier (A) behind ApplyReconciliation. It consumes original
// and executed (the resulting tree takes ownership of whichever
// subtrees the plan selects from either input; callers must not reuse
// original or executed afterward) and produces the merged tree: every
// KeepOriginal-aligned subtree keeps its original SourceInfo
// untouched, every UseExecuted-aligned subtree is spliced in from the
// executed tree as-is, and every RecurseContainer position rebuilds a
// fresh container node carrying the original container's own identity
// (attrs, non-child fields, SourceInfo) around recursively applied
// children.
func applyPlan(original, executed *pandoc.Node, plan *ReconciliationPlan) *pandoc.Node {
	merged := cloneNodeShallow(original)
	applyBlockChildren(merged, original.Children(), executed.Children(), plan.Blocks)
	return merged
}

// cloneNodeShallow copies a node's identity fields (kind, source,
// attr, block/inline field structs) without copying its tree pointers
// or children; the caller is responsible for attaching children.
func cloneNodeShallow(n *pandoc.Node) *pandoc.Node {
	clone := pandoc.NewNode(n.Kind)
	clone.Source = n.Source
	clone.Attr = n.Attr
	clone.Block = n.Block
	clone.Inline = n.Inline
	return clone
}

// applyBlockSequence resolves a plan's block alignments into the
// merged child sequence, without attaching the results to any parent.
func applyBlockSequence(original, executed []*pandoc.Node, alignments []BlockAlignment) []*pandoc.Node {
	children := make([]*pandoc.Node, 0, len(alignments))
	for _, a := range alignments {
		children = append(children, applyBlockAlignment(a, original, executed))
	}
	return children
}

// applyInlineSequence mirrors applyBlockSequence for inline content.
func applyInlineSequence(original, executed []*pandoc.Node, alignments []InlineAlignment) []*pandoc.Node {
	children := make([]*pandoc.Node, 0, len(alignments))
	for _, a := range alignments {
		children = append(children, applyInlineAlignment(a, original, executed))
	}
	return children
}

func applyBlockChildren(parent *pandoc.Node, original, executed []*pandoc.Node, alignments []BlockAlignment) {
	pandoc.AppendChildren(parent, applyBlockSequence(original, executed, alignments))
}

func applyInlineChildren(parent *pandoc.Node, original, executed []*pandoc.Node, alignments []InlineAlignment) {
	pandoc.AppendChildren(parent, applyInlineSequence(original, executed, alignments))
}

func applyBlockAlignment(a BlockAlignment, original, executed []*pandoc.Node) *pandoc.Node {
	switch a.Tag {
	case AlignKeepOriginal:
		return original[a.OriginalIndex]
	case AlignUseExecuted:
		return executed[a.ExecutedIndex]
	case AlignRecurseContainer:
		origNode := original[a.OriginalIndex]
		execNode := executed[a.ExecutedIndex]
		merged := cloneNodeShallow(origNode)
		switch {
		case a.Container.Table != nil:
			applyTablePlan(merged, origNode, execNode, a.Container.Table)
		case a.Container.Inline != nil:
			applyInlineChildren(merged, origNode.Children(), execNode.Children(), a.Container.Inline)
		default:
			applyBlockChildren(merged, origNode.Children(), execNode.Children(), a.Container.Blocks)
		}
		return merged
	default:
		return executed[a.ExecutedIndex]
	}
}

func applyInlineAlignment(a InlineAlignment, original, executed []*pandoc.Node) *pandoc.Node {
	switch a.Tag {
	case AlignKeepOriginal:
		return original[a.OriginalIndex]
	case AlignUseExecuted:
		return executed[a.ExecutedIndex]
	case AlignRecurseContainer:
		origNode := original[a.OriginalIndex]
		execNode := executed[a.ExecutedIndex]
		merged := cloneNodeShallow(origNode)
		applyInlineChildren(merged, origNode.Children(), execNode.Children(), a.Container.Inline)
		return merged
	default:
		return executed[a.ExecutedIndex]
	}
}

// applyTablePlan rebuilds a recursed table's Block.Table, reusing the
// original's colspec/caption/head/foot (already verified equal by
// tryTableRecursion) and rebuilding only the body rows the plan
// recursed into.
func applyTablePlan(merged, origNode, execNode *pandoc.Node, plan *TablePlan) {
	ot := origNode.Block.Table
	et := execNode.Block.Table

	tableFields := *ot // shallow copy: colspecs/head/foot/caption carried over verbatim
	tableFields.Bodies = make([]pandoc.TableBody, len(plan.Bodies))

	for i, bodyPlan := range plan.Bodies {
		ob, eb := ot.Bodies[i], et.Bodies[i]
		newBody := pandoc.TableBody{
			Attr:           ob.Attr,
			RowHeadColumns: ob.RowHeadColumns,
			HeadRows:       applyBlockSequence(ob.HeadRows, eb.HeadRows, bodyPlan.HeadRows),
			BodyRows:       applyBlockSequence(ob.BodyRows, eb.BodyRows, bodyPlan.BodyRows),
		}

		tableFields.Bodies[i] = newBody
	}

	blockFields := *origNode.Block
	blockFields.Table = &tableFields
	merged.Block = &blockFields
}
