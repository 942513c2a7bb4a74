package reconcile

import "github.com/quarto-dev/q2-sub003/pkg/pandoc"

// StructuralEqual performs the deep, SourceInfo-excluding comparison
// that backs the conservative verification pass (see DESIGN.md's
// hash-collision decision): before the plan computer commits a
// KeepOriginal alignment (unless Options.SkipVerification is set), it
// calls StructuralEqual on the
// matched original/executed pair so a 64-bit hash collision can never
// silently graft an executed node's content under the wrong original
// offsets. Two nodes are structurally equal when every field the
// hasher mixes in is equal and their children are pairwise equal, in
// order.
func StructuralEqual(a, b *pandoc.Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	if !attrEqual(a.Attr, b.Attr) {
		return false
	}
	if !variantFieldsEqual(a, b) {
		return false
	}
	return childrenEqual(a, b)
}

func childrenEqual(a, b *pandoc.Node) bool {
	ac, bc := a.Children(), b.Children()
	if len(ac) != len(bc) {
		return false
	}
	for i := range ac {
		if !StructuralEqual(ac[i], bc[i]) {
			return false
		}
	}
	return true
}

func attrEqual(a, b *pandoc.Attr) bool {
	aEmpty := a == nil || a.IsEmpty()
	bEmpty := b == nil || b.IsEmpty()
	if aEmpty || bEmpty {
		return aEmpty == bEmpty
	}
	if a.ID != b.ID {
		return false
	}
	if len(a.Classes) != len(b.Classes) {
		return false
	}
	for i := range a.Classes {
		if a.Classes[i] != b.Classes[i] {
			return false
		}
	}
	if len(a.KV) != len(b.KV) {
		return false
	}
	for i := range a.KV {
		if a.KV[i] != b.KV[i] {
			return false
		}
	}
	return true
}

func seqEqual(a, b []*pandoc.Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !StructuralEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

//nolint:gocyclo // mirrors the variant dispatch in hash.go one-for-one
func variantFieldsEqual(a, b *pandoc.Node) bool {
	switch a.Kind {
	case pandoc.NodeHeader:
		return a.Block.HeadingLevel == b.Block.HeadingLevel

	case pandoc.NodeCodeBlock:
		return a.Block.CodeBlock.Text == b.Block.CodeBlock.Text

	case pandoc.NodeRawBlock:
		return a.Block.RawFormat == b.Block.RawFormat && a.Block.RawText == b.Block.RawText

	case pandoc.NodeOrderedList:
		la, lb := a.Block.List, b.Block.List
		return la.StartNumber == lb.StartNumber && la.Delimiter == lb.Delimiter &&
			la.BulletMarker == lb.BulletMarker && la.Tight == lb.Tight

	case pandoc.NodeBulletList:
		la, lb := a.Block.List, b.Block.List
		return la.BulletMarker == lb.BulletMarker && la.Tight == lb.Tight

	case pandoc.NodeDiv, pandoc.NodeFigure:
		return captionEqual(captionOf(a), captionOf(b))

	case pandoc.NodeTable:
		return tableEqual(a.Block.Table, b.Block.Table) && captionEqual(captionOf(a), captionOf(b))

	case pandoc.NodeTableRow:
		return true

	case pandoc.NodeTableCell:
		ta, tb := a.Block.TableCell, b.Block.TableCell
		return ta.Alignment == tb.Alignment && ta.RowSpan == tb.RowSpan && ta.ColSpan == tb.ColSpan

	case pandoc.NodeCustomBlock:
		return customEqual(a.Block.Custom, b.Block.Custom)

	case pandoc.NodeStr:
		return string(a.Inline.Text) == string(b.Inline.Text)

	case pandoc.NodeCode, pandoc.NodeMath, pandoc.NodeRawInline:
		if string(a.Inline.Text) != string(b.Inline.Text) {
			return false
		}
		if a.Kind == pandoc.NodeMath && a.Inline.MathType != b.Inline.MathType {
			return false
		}
		if a.Kind == pandoc.NodeRawInline && a.Inline.RawFormat != b.Inline.RawFormat {
			return false
		}
		return true

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

	case pandoc.NodeCustomInline:
		return customEqual(a.Inline.Custom, b.Inline.Custom)

	default:
		return true
	}
}

func captionEqual(a, b *pandoc.CaptionFields) bool {
	if a == nil || b == nil {
		return a == b
	}
	return StructuralEqual(a.Short, b.Short) && StructuralEqual(a.Long, b.Long)
}

func tableEqual(a, b *pandoc.TableFields) bool {
	if len(a.ColSpecs) != len(b.ColSpecs) {
		return false
	}
	for i := range a.ColSpecs {
		if a.ColSpecs[i].Align != b.ColSpecs[i].Align {
			return false
		}
		if a.ColSpecs[i].Width.Default != b.ColSpecs[i].Width.Default {
			return false
		}
		if a.ColSpecs[i].Width.Value != b.ColSpecs[i].Width.Value {
			return false
		}
	}
	if !tableSectionEqual(a.Head, b.Head) || !tableSectionEqual(a.Foot, b.Foot) {
		return false
	}
	if len(a.Bodies) != len(b.Bodies) {
		return false
	}
	for i := range a.Bodies {
		ba, bb := a.Bodies[i], b.Bodies[i]
		if ba.RowHeadColumns != bb.RowHeadColumns {
			return false
		}
		if !attrEqual(ba.Attr, bb.Attr) {
			return false
		}
		if !seqEqual(ba.HeadRows, bb.HeadRows) || !seqEqual(ba.BodyRows, bb.BodyRows) {
			return false
		}
	}
	return true
}

func tableSectionEqual(a, b *pandoc.TableSection) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !attrEqual(a.Attr, b.Attr) {
		return false
	}
	return seqEqual(a.Rows, b.Rows)
}

func customEqual(a, b *pandoc.CustomFields) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.TypeName != b.TypeName {
		return false
	}
	if !canonicalJSONEqual(a.Payload, b.Payload) {
		return false
	}
	if len(a.Slots) != len(b.Slots) {
		return false
	}
	for i := range a.Slots {
		if a.Slots[i].Name != b.Slots[i].Name || a.Slots[i].Multi != b.Slots[i].Multi {
			return false
		}
		if !seqEqual(a.Slots[i].Nodes, b.Slots[i].Nodes) {
			return false
		}
	}
	return true
}
