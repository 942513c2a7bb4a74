package reconcile

import "github.com/quarto-dev/q2-sub003/pkg/pandoc"

// TablePlan is the recursive plan for a table whose colspec, caption,
// head, and foot all matched (strict table-cell policy, DESIGN.md
// decision 1): only body rows and cells may still differ.
type TablePlan struct {
	Bodies []TableBodyPlan
}

// TableBodyPlan aligns one TableBody's head-row and body-row
// sequences independently, since a body's RowHeadColumns split is
// itself part of its non-child identity checked before recursion.
type TableBodyPlan struct {
	HeadRows []BlockAlignment
	BodyRows []BlockAlignment
}

// hashQueue is the deque-per-hash multimap used to align two
// sequences: each hash value owns a FIFO of original-sequence
// indices, so repeated identical nodes are matched to each other in
// original order with no reordering cost and no quadratic scan.
type hashQueue struct {
	byHash map[uint64][]int
}

func newHashQueue(hashes []uint64) *hashQueue {
	q := &hashQueue{byHash: make(map[uint64][]int, len(hashes))}
	for i, h := range hashes {
		q.byHash[h] = append(q.byHash[h], i)
	}
	return q
}

func (q *hashQueue) pop(h uint64) (int, bool) {
	list := q.byHash[h]
	if len(list) == 0 {
		return 0, false
	}
	q.byHash[h] = list[1:]
	return list[0], true
}

// computePlan is the Plan Computer (P): it aligns the original
// document's top-level block sequence against the executed document's
// top-level block sequence and returns the resulting plan together
// with tallied Stats.
func computePlan(original, executed *pandoc.Node, hc *HashCache, opts Options) (*ReconciliationPlan, error) {
	stats := Stats{}
	blocks := alignBlockSequence(original.Children(), executed.Children(), hc, opts, &stats)
	return &ReconciliationPlan{Blocks: blocks, Stats: stats}, nil
}

// alignBlockSequence aligns two ordered block sequences (either a
// document's top-level blocks, or the children of a recursed
// container). hc caches hashes for nodes under original; executed is
// hashed with its own throwaway cache since it is only ever visited
// once per reconciliation.
func alignBlockSequence(original, executed []*pandoc.Node, hc *HashCache, opts Options, stats *Stats) []BlockAlignment {
	origHashes := make([]uint64, len(original))
	for i, n := range original {
		origHashes[i] = hc.Hash(n)
	}
	execCache := NewHashCache()
	execHashes := make([]uint64, len(executed))
	for k, n := range executed {
		execHashes[k] = execCache.Hash(n)
	}

	queue := newHashQueue(origHashes)
	used := make([]bool, len(original))
	alignments := make([]BlockAlignment, 0, len(executed))

	for k, execNode := range executed {
		if j, ok := queue.pop(execHashes[k]); ok {
			if opts.SkipVerification || StructuralEqual(original[j], execNode) {
				used[j] = true
				alignments = append(alignments, BlockAlignment{Tag: AlignKeepOriginal, OriginalIndex: j, ExecutedIndex: k})
				stats.BlocksKept++
				continue
			}
			// Hash collision: two structurally different nodes hashed
			// equal. Fall through to recursion/replacement; j is
			// already consumed from the queue and stays unused so a
			// later, genuinely matching executed node doesn't pair with
			// content this node turned out not to match.
			stats.HashCollisions++
		}

		if execNode.Kind == pandoc.NodeTable {
			if j := findUnusedOfKind(original, used, pandoc.NodeTable); j >= 0 {
				if plan, ok := tryTableRecursion(original[j], execNode, hc, opts, stats); ok {
					used[j] = true
					alignments = append(alignments, BlockAlignment{
						Tag: AlignRecurseContainer, OriginalIndex: j, ExecutedIndex: k,
						Container: &ContainerPlan{Table: plan},
					})
					stats.BlocksRecursed++
					continue
				}
			}
			alignments = append(alignments, BlockAlignment{Tag: AlignUseExecuted, OriginalIndex: -1, ExecutedIndex: k})
			stats.BlocksReplaced++
			continue
		}

		if j := findRecursionCandidate(original, used, execNode); j >= 0 {
			used[j] = true
			cp := &ContainerPlan{}
			if execNode.IsInlineLeaf() {
				cp.Inline = alignInlineSequence(original[j].Children(), execNode.Children(), hc, opts, stats)
			} else {
				cp.Blocks = alignBlockSequence(original[j].Children(), execNode.Children(), hc, opts, stats)
			}
			alignments = append(alignments, BlockAlignment{Tag: AlignRecurseContainer, OriginalIndex: j, ExecutedIndex: k, Container: cp})
			stats.BlocksRecursed++
			continue
		}

		alignments = append(alignments, BlockAlignment{Tag: AlignUseExecuted, OriginalIndex: -1, ExecutedIndex: k})
		stats.BlocksReplaced++
	}

	return alignments
}

// alignInlineSequence mirrors alignBlockSequence for inline content.
func alignInlineSequence(original, executed []*pandoc.Node, hc *HashCache, opts Options, stats *Stats) []InlineAlignment {
	origHashes := make([]uint64, len(original))
	for i, n := range original {
		origHashes[i] = hc.Hash(n)
	}
	execCache := NewHashCache()
	execHashes := make([]uint64, len(executed))
	for k, n := range executed {
		execHashes[k] = execCache.Hash(n)
	}

	queue := newHashQueue(origHashes)
	used := make([]bool, len(original))
	alignments := make([]InlineAlignment, 0, len(executed))

	for k, execNode := range executed {
		if j, ok := queue.pop(execHashes[k]); ok {
			if opts.SkipVerification || StructuralEqual(original[j], execNode) {
				used[j] = true
				alignments = append(alignments, InlineAlignment{Tag: AlignKeepOriginal, OriginalIndex: j, ExecutedIndex: k})
				stats.InlinesKept++
				continue
			}
			stats.HashCollisions++
		}

		if j := findInlineRecursionCandidate(original, used, execNode); j >= 0 {
			used[j] = true
			ip := &InlineContainerPlan{
				Inline: alignInlineSequence(original[j].Children(), execNode.Children(), hc, opts, stats),
			}
			alignments = append(alignments, InlineAlignment{Tag: AlignRecurseContainer, OriginalIndex: j, ExecutedIndex: k, Container: ip})
			stats.InlinesRecursed++
			continue
		}

		alignments = append(alignments, InlineAlignment{Tag: AlignUseExecuted, OriginalIndex: -1, ExecutedIndex: k})
		stats.InlinesReplaced++
	}

	return alignments
}

func findUnusedOfKind(nodes []*pandoc.Node, used []bool, kind pandoc.NodeKind) int {
	for i, n := range nodes {
		if !used[i] && n.Kind == kind {
			return i
		}
	}
	return -1
}

// findRecursionCandidate finds the first unused original node eligible
// to recurse against execNode: same kind, a block-container or
// inline-leaf variant (custom blocks are excluded; see DESIGN.md), and
// non-child fields structurally equal.
func findRecursionCandidate(original []*pandoc.Node, used []bool, execNode *pandoc.Node) int {
	if !recursableBlock(execNode.Kind) {
		return -1
	}
	for i, n := range original {
		if used[i] || n.Kind != execNode.Kind {
			continue
		}
		if nonChildFieldsEqual(n, execNode) {
			return i
		}
	}
	return -1
}

func findInlineRecursionCandidate(original []*pandoc.Node, used []bool, execNode *pandoc.Node) int {
	if !execNode.IsInlineContainer() || execNode.Kind == pandoc.NodeCustomInline {
		return -1
	}
	for i, n := range original {
		if used[i] || n.Kind != execNode.Kind {
			continue
		}
		if nonChildFieldsEqual(n, execNode) {
			return i
		}
	}
	return -1
}

// recursableBlock reports whether kind is a block container or
// inline-bearing leaf eligible for recursion. Custom blocks carry
// their children in named slots rather than the generic sibling list
// and are deliberately excluded: they are matched or replaced whole
// (see DESIGN.md).
func recursableBlock(kind pandoc.NodeKind) bool {
	probe := pandoc.NewNode(kind)
	return kind != pandoc.NodeCustomBlock && (probe.IsContainer() || probe.IsInlineLeaf())
}

// nonChildFieldsEqual compares every field the hasher and
// StructuralEqual mix in except a node's children, so it can tell
// whether two container nodes are candidates for recursive alignment
// without requiring their content to already match (that is the
// entire point of recursing).
func nonChildFieldsEqual(a, b *pandoc.Node) bool {
	if !attrEqual(a.Attr, b.Attr) {
		return false
	}
	switch a.Kind {
	case pandoc.NodeDiv, pandoc.NodeFigure:
		return captionEqual(captionOf(a), captionOf(b))
	case pandoc.NodeTableCell:
		ta, tb := a.Block.TableCell, b.Block.TableCell
		return ta.Alignment == tb.Alignment && ta.RowSpan == tb.RowSpan && ta.ColSpan == tb.ColSpan
	case pandoc.NodeHeader:
		return a.Block.HeadingLevel == b.Block.HeadingLevel
	case pandoc.NodeQuoted:
		return a.Inline.QuoteType == b.Inline.QuoteType
	case pandoc.NodeLink, pandoc.NodeImage:
		la, lb := a.Inline.Link, b.Inline.Link
		return la.Destination == lb.Destination && la.Title == lb.Title
	case pandoc.NodeCite:
		ca, cb := a.Inline.Citations, b.Inline.Citations
		if len(ca) != len(cb) {
			return false
		}
		for i := range ca {
			if ca[i].ID != cb[i].ID || ca[i].Mode != cb[i].Mode {
				return false
			}
			if !seqEqual(ca[i].Prefix, cb[i].Prefix) || !seqEqual(ca[i].Suffix, cb[i].Suffix) {
				return false
			}
		}
		return true
	default:
		// BlockQuote, ListItem, DefinitionItem, CaptionLong, Emph,
		// Strong, Underline, Strikeout, Superscript, Subscript,
		// SmallCaps, Span, Insert, Delete, Highlight, EditComment: no
		// non-child fields beyond attr.
		return true
	}
}

// tryTableRecursion implements the strict table-cell policy
// (DESIGN.md decision 1): recursion into body rows/cells is only
// attempted when colspec, caption, head, and foot are all already
// structurally equal. Returns ok=false when the table must fall back
// to whole-table replacement.
func tryTableRecursion(orig, exec *pandoc.Node, hc *HashCache, opts Options, stats *Stats) (*TablePlan, bool) {
	if opts.TableCellPolicy != TableCellStrict {
		return nil, false
	}
	ot, et := orig.Block.Table, exec.Block.Table
	if !colSpecsEqual(ot.ColSpecs, et.ColSpecs) {
		return nil, false
	}
	if !captionEqual(captionOf(orig), captionOf(exec)) {
		return nil, false
	}
	if !tableSectionEqual(ot.Head, et.Head) || !tableSectionEqual(ot.Foot, et.Foot) {
		return nil, false
	}
	if len(ot.Bodies) != len(et.Bodies) {
		return nil, false
	}

	plan := &TablePlan{Bodies: make([]TableBodyPlan, len(ot.Bodies))}
	for i := range ot.Bodies {
		ob, eb := ot.Bodies[i], et.Bodies[i]
		if ob.RowHeadColumns != eb.RowHeadColumns || !attrEqual(ob.Attr, eb.Attr) {
			return nil, false
		}
		plan.Bodies[i] = TableBodyPlan{
			HeadRows: alignBlockSequence(ob.HeadRows, eb.HeadRows, hc, opts, stats),
			BodyRows: alignBlockSequence(ob.BodyRows, eb.BodyRows, hc, opts, stats),
		}
	}
	return plan, true
}

func colSpecsEqual(a, b []pandoc.ColSpec) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Align != b[i].Align || a[i].Width.Default != b[i].Width.Default || a[i].Width.Value != b[i].Width.Value {
			return false
		}
	}
	return true
}
