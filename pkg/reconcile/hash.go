package reconcile

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/quarto-dev/q2-sub003/pkg/pandoc"
)

// HashCache memoizes structural hashes for nodes belonging to one
// borrowed AST, keyed on node address. A Go pointer is a safe,
// unsafe-free substitute for the address-based cache key the reference
// implementation builds from raw pointers (original_source's
// NodePtr): as long as the tree this cache was built against is not
// mutated or discarded while the cache is in use, the address is a
// stable identity. The cache must not outlive the reconciliation call
// that created it (see plan.go's usage).
type HashCache struct {
	values map[*pandoc.Node]uint64
}

// NewHashCache creates an empty hash cache.
func NewHashCache() *HashCache {
	return &HashCache{values: make(map[*pandoc.Node]uint64)}
}

// Hash returns the structural hash of node, computing and caching it
// on first access. Safe to call repeatedly for the same borrowed tree.
func (c *HashCache) Hash(node *pandoc.Node) uint64 {
	if node == nil {
		return 0
	}
	if h, ok := c.values[node]; ok {
		return h
	}
	h := computeNodeHash(node, c)
	c.values[node] = h
	return h
}

// HashSequence hashes an ordered sequence of sibling nodes, prefixing
// the stream with the sequence length so [A,B] and [A,B,B] never
// collide even if a trailing hash were otherwise absorbing.
func (c *HashCache) HashSequence(nodes []*pandoc.Node) uint64 {
	d := xxhash.New()
	writeInt(d, len(nodes))
	for _, n := range nodes {
		writeUint64(d, c.Hash(n))
	}
	return d.Sum64()
}

// HashFresh computes a node's structural hash without tying the result
// to any long-lived cache, for use on the executed tree which is
// traversed once per reconciliation. It still uses a throwaway cache
// internally so that repeated descendants within the same call aren't
// recomputed.
func HashFresh(node *pandoc.Node) uint64 {
	return NewHashCache().Hash(node)
}

// HashSequenceFresh hashes a sequence of nodes without a caller-owned
// cache, mirroring HashFresh.
func HashSequenceFresh(nodes []*pandoc.Node) uint64 {
	return NewHashCache().HashSequence(nodes)
}

func writeUint64(d *xxhash.Digest, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, _ = d.Write(buf[:])
}

func writeInt(d *xxhash.Digest, v int) {
	writeUint64(d, uint64(v))
}

func writeByte(d *xxhash.Digest, b byte) {
	_, _ = d.Write([]byte{b})
}

func writeString(d *xxhash.Digest, s string) {
	writeInt(d, len(s))
	_, _ = d.Write([]byte(s))
}

func writeBytes(d *xxhash.Digest, b []byte) {
	writeInt(d, len(b))
	_, _ = d.Write(b)
}

// writeAttr hashes an Attr's id, ordered class list, and ordered
// key-value pairs with stable iteration order.
func writeAttr(d *xxhash.Digest, a *pandoc.Attr) {
	if a == nil {
		writeInt(d, 0)
		return
	}
	writeString(d, a.ID)
	writeInt(d, len(a.Classes))
	for _, c := range a.Classes {
		writeString(d, c)
	}
	writeInt(d, len(a.KV))
	for _, kv := range a.KV {
		writeString(d, kv.Key)
		writeString(d, kv.Value)
	}
}

// computeNodeHash computes the structural hash for a single node:
// discriminant, then variant-specific fields, then children, in that
// fixed order, except that Link and Image mix in their children before
// their destination and title.
func computeNodeHash(n *pandoc.Node, c *HashCache) uint64 {
	d := xxhash.New()
	writeInt(d, int(n.Kind))

	switch n.Kind {
	case pandoc.NodeDocument, pandoc.NodeBlockQuote, pandoc.NodeCaptionLong,
		pandoc.NodeDefinitionItem:
		// Pure containers: attr (if any) + children only.
		writeAttr(d, n.Attr)
		hashChildrenInto(d, n, c)

	case pandoc.NodeDiv, pandoc.NodeFigure:
		writeAttr(d, n.Attr)
		hashCaption(d, n, c)
		hashChildrenInto(d, n, c)

	case pandoc.NodeParagraph, pandoc.NodePlain, pandoc.NodeCaptionShort,
		pandoc.NodeDefinitionTerm:
		hashChildrenInto(d, n, c)

	case pandoc.NodeHeader:
		writeInt(d, n.Block.HeadingLevel)
		writeAttr(d, n.Attr)
		hashChildrenInto(d, n, c)

	case pandoc.NodeCodeBlock:
		writeAttr(d, n.Attr)
		writeString(d, n.Block.CodeBlock.Text)

	case pandoc.NodeRawBlock:
		writeString(d, n.Block.RawFormat)
		writeString(d, n.Block.RawText)

	case pandoc.NodeHorizontalRule:
		// Discriminant only.

	case pandoc.NodeOrderedList:
		lf := n.Block.List
		writeInt(d, lf.StartNumber)
		writeString(d, lf.Delimiter)
		writeString(d, lf.BulletMarker)
		writeBool(d, lf.Tight)
		hashChildrenInto(d, n, c) // children are NodeListItem

	case pandoc.NodeBulletList:
		lf := n.Block.List
		writeString(d, lf.BulletMarker)
		writeBool(d, lf.Tight)
		hashChildrenInto(d, n, c)

	case pandoc.NodeListItem:
		hashChildrenInto(d, n, c)

	case pandoc.NodeDefinitionList:
		hashChildrenInto(d, n, c) // children alternate term/item pairs

	case pandoc.NodeTable:
		hashTable(d, n, c)

	case pandoc.NodeTableRow:
		writeAttr(d, n.Attr)
		hashChildrenInto(d, n, c) // children are NodeTableCell

	case pandoc.NodeTableCell:
		writeAttr(d, n.Attr)
		tc := n.Block.TableCell
		writeInt(d, int(tc.Alignment))
		writeInt(d, tc.RowSpan)
		writeInt(d, tc.ColSpan)
		hashChildrenInto(d, n, c)

	case pandoc.NodeCustomBlock:
		hashCustom(d, n.Block.Custom, c)

	// Inlines.
	case pandoc.NodeStr:
		writeBytes(d, n.Inline.Text)

	case pandoc.NodeCode, pandoc.NodeMath, pandoc.NodeRawInline:
		writeAttr(d, n.Attr)
		if n.Kind == pandoc.NodeMath {
			writeInt(d, int(n.Inline.MathType))
		}
		if n.Kind == pandoc.NodeRawInline {
			writeString(d, n.Inline.RawFormat)
		}
		writeBytes(d, n.Inline.Text)

	case pandoc.NodeSpaceInline, pandoc.NodeSoftBreak, pandoc.NodeLineBreak:
		// Discriminant only.

	case pandoc.NodeEmph, pandoc.NodeStrong, pandoc.NodeUnderline,
		pandoc.NodeStrikeout, pandoc.NodeSuperscript, pandoc.NodeSubscript,
		pandoc.NodeSmallCaps, pandoc.NodeSpan, pandoc.NodeInsert,
		pandoc.NodeDelete, pandoc.NodeHighlight, pandoc.NodeEditComment:
		writeAttr(d, n.Attr)
		hashChildrenInto(d, n, c)

	case pandoc.NodeQuoted:
		writeInt(d, int(n.Inline.QuoteType))
		hashChildrenInto(d, n, c)

	case pandoc.NodeLink, pandoc.NodeImage:
		writeAttr(d, n.Attr)
		hashChildrenInto(d, n, c)
		lf := n.Inline.Link
		writeString(d, lf.Destination)
		writeString(d, lf.Title)

	case pandoc.NodeNote:
		hashChildrenInto(d, n, c) // content is blocks

	case pandoc.NodeCite:
		cites := n.Inline.Citations
		writeInt(d, len(cites))
		for _, cit := range cites {
			writeString(d, cit.ID)
			writeUint64(d, c.HashSequence(cit.Prefix))
			writeUint64(d, c.HashSequence(cit.Suffix))
			writeInt(d, int(cit.Mode))
		}
		hashChildrenInto(d, n, c)

	case pandoc.NodeCustomInline:
		hashCustom(d, n.Inline.Custom, c)

	default:
		// Unknown variant: fall back to attr + children so an
		// unrecognized kind still participates in hashing rather than
		// silently collapsing to the bare discriminant.
		writeAttr(d, n.Attr)
		hashChildrenInto(d, n, c)
	}

	return d.Sum64()
}

func writeBool(d *xxhash.Digest, b bool) {
	if b {
		writeByte(d, 1)
	} else {
		writeByte(d, 0)
	}
}

func hashChildrenInto(d *xxhash.Digest, n *pandoc.Node, c *HashCache) {
	children := n.Children()
	writeInt(d, len(children))
	for _, child := range children {
		writeUint64(d, c.Hash(child))
	}
}

func hashCaption(d *xxhash.Digest, n *pandoc.Node, c *HashCache) {
	cap := captionOf(n)
	if cap == nil {
		writeBool(d, false)
		return
	}
	writeBool(d, true)
	if cap.Short != nil {
		writeBool(d, true)
		writeUint64(d, c.Hash(cap.Short))
	} else {
		writeBool(d, false)
	}
	if cap.Long != nil {
		writeBool(d, true)
		writeUint64(d, c.Hash(cap.Long))
	} else {
		writeBool(d, false)
	}
}

func captionOf(n *pandoc.Node) *pandoc.CaptionFields {
	if n.Block == nil {
		return nil
	}
	return n.Block.Caption
}

func hashTable(d *xxhash.Digest, n *pandoc.Node, c *HashCache) {
	t := n.Block.Table
	writeAttr(d, n.Attr)
	hashCaption(d, n, c)

	writeInt(d, len(t.ColSpecs))
	for _, cs := range t.ColSpecs {
		writeInt(d, int(cs.Align))
		writeBool(d, cs.Width.Default)
		writeUint64(d, uint64(cs.Width.Value*1e9))
	}

	hashTableSection(d, t.Head, c)

	writeInt(d, len(t.Bodies))
	for _, body := range t.Bodies {
		writeAttr(d, body.Attr)
		writeInt(d, body.RowHeadColumns)
		writeInt(d, len(body.HeadRows))
		for _, r := range body.HeadRows {
			writeUint64(d, c.Hash(r))
		}
		writeInt(d, len(body.BodyRows))
		for _, r := range body.BodyRows {
			writeUint64(d, c.Hash(r))
		}
	}

	hashTableSection(d, t.Foot, c)
}

func hashTableSection(d *xxhash.Digest, s *pandoc.TableSection, c *HashCache) {
	if s == nil {
		writeInt(d, 0)
		return
	}
	writeAttr(d, s.Attr)
	writeInt(d, len(s.Rows))
	for _, r := range s.Rows {
		writeUint64(d, c.Hash(r))
	}
}

func hashCustom(d *xxhash.Digest, cf *pandoc.CustomFields, c *HashCache) {
	if cf == nil {
		writeInt(d, 0)
		return
	}
	writeString(d, cf.TypeName)
	writeString(d, canonicalJSON(cf.Payload))
	writeInt(d, len(cf.Slots))
	for _, s := range cf.Slots {
		writeString(d, s.Name)
		writeBool(d, s.Multi)
		writeUint64(d, c.HashSequence(s.Nodes))
	}
}
