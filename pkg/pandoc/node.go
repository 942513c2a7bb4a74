// Package pandoc defines the Pandoc-style AST operated on by the
// reconciliation core (package reconcile): a document is an ordered
// sequence of Blocks; leaf blocks carry Inlines or opaque text;
// container blocks and inline containers carry same-kind children.
//
// The core treats this package's types as the data model it moves and
// compares, never as something it needs to serialize or parse itself
// (those concerns live in pkg/pandocjson and pkg/mdreader).
package pandoc

import "github.com/quarto-dev/q2-sub003/pkg/sourcemap"

// NodeKind classifies the variant of an AST node.
type NodeKind uint16

// Node kinds for block-level and inline-level Pandoc elements.
const (
	NodeDocument NodeKind = iota

	// Leaf blocks with inline content.
	NodeParagraph
	NodePlain
	NodeHeader

	// Leaf blocks with opaque text.
	NodeCodeBlock
	NodeRawBlock
	NodeHorizontalRule

	// Container blocks with block children.
	NodeBlockQuote
	NodeDiv
	NodeFigure
	NodeOrderedList
	NodeBulletList
	NodeDefinitionList
	NodeListItem
	NodeDefinitionTerm // inline-bearing leaf inside a definition list item
	NodeDefinitionItem // container block inside a definition list item
	NodeTable
	NodeTableRow
	NodeTableCell
	NodeCaptionShort // inline-bearing leaf: short caption
	NodeCaptionLong  // container block: long caption

	// Custom block, carrying BlockFields.Custom.
	NodeCustomBlock

	// Inline text runs.
	NodeStr
	NodeSpaceInline
	NodeSoftBreak
	NodeLineBreak
	NodeCode
	NodeMath
	NodeRawInline

	// Inline containers.
	NodeEmph
	NodeStrong
	NodeUnderline
	NodeStrikeout
	NodeSuperscript
	NodeSubscript
	NodeSmallCaps
	NodeQuoted
	NodeLink
	NodeImage
	NodeSpan
	NodeCite
	NodeNote
	NodeInsert
	NodeDelete
	NodeHighlight
	NodeEditComment

	// Custom inline, carrying InlineFields.Custom.
	NodeCustomInline
)

// blockKinds and inlineKinds classify NodeKind without requiring a
// switch at every call site.
var blockKinds = map[NodeKind]bool{
	NodeDocument: true, NodeParagraph: true, NodePlain: true, NodeHeader: true,
	NodeCodeBlock: true, NodeRawBlock: true, NodeHorizontalRule: true,
	NodeBlockQuote: true, NodeDiv: true, NodeFigure: true,
	NodeOrderedList: true, NodeBulletList: true, NodeDefinitionList: true,
	NodeListItem: true, NodeDefinitionTerm: true, NodeDefinitionItem: true,
	NodeTable: true, NodeTableRow: true, NodeTableCell: true,
	NodeCaptionShort: true, NodeCaptionLong: true, NodeCustomBlock: true,
}

var inlineKinds = map[NodeKind]bool{
	NodeStr: true, NodeSpaceInline: true, NodeSoftBreak: true, NodeLineBreak: true,
	NodeCode: true, NodeMath: true, NodeRawInline: true,
	NodeEmph: true, NodeStrong: true, NodeUnderline: true, NodeStrikeout: true,
	NodeSuperscript: true, NodeSubscript: true, NodeSmallCaps: true,
	NodeQuoted: true, NodeLink: true, NodeImage: true, NodeSpan: true,
	NodeCite: true, NodeNote: true, NodeInsert: true, NodeDelete: true,
	NodeHighlight: true, NodeEditComment: true, NodeCustomInline: true,
}

// containerKinds lists block-children containers eligible for block
// recursion.
var containerKinds = map[NodeKind]bool{
	NodeBlockQuote: true, NodeDiv: true, NodeFigure: true,
	NodeListItem: true, NodeDefinitionItem: true, NodeTableCell: true,
	NodeCaptionLong: true, NodeCustomBlock: true,
}

// inlineContainerKinds lists inline-children containers eligible for
// inline recursion.
var inlineContainerKinds = map[NodeKind]bool{
	NodeEmph: true, NodeStrong: true, NodeUnderline: true, NodeStrikeout: true,
	NodeSuperscript: true, NodeSubscript: true, NodeSmallCaps: true,
	NodeQuoted: true, NodeLink: true, NodeImage: true, NodeSpan: true,
	NodeCite: true, NodeInsert: true, NodeDelete: true, NodeHighlight: true,
	NodeEditComment: true, NodeCustomInline: true,
}

// inlineLeafKinds lists inline-bearing leaf blocks eligible for inline
// recursion: Paragraph, Plain, Header, plus the two
// caption/definition-term leaves that carry inlines directly.
var inlineLeafKinds = map[NodeKind]bool{
	NodeParagraph: true, NodePlain: true, NodeHeader: true,
	NodeDefinitionTerm: true, NodeCaptionShort: true,
}

// Node represents a single node in the Pandoc AST. Nodes form a tree
// via intrusive parent/child/sibling pointers, expanded to the richer
// Pandoc variant set.
type Node struct {
	Kind NodeKind

	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Source is this node's provenance. The reconciliation core moves
	// this value between trees but never interprets it.
	Source sourcemap.SourceInfo

	// Attr holds the commonmark-style attribute set (id, classes,
	// key-value pairs) for variants that carry one. Nil otherwise.
	Attr *Attr

	// Block holds variant-specific fields for block-level nodes.
	Block *BlockFields

	// Inline holds variant-specific fields for inline-level nodes.
	Inline *InlineFields
}

// IsBlock reports whether this is a block-level node.
func (n *Node) IsBlock() bool { return blockKinds[n.Kind] }

// IsInline reports whether this is an inline-level node.
func (n *Node) IsInline() bool { return inlineKinds[n.Kind] }

// IsContainer reports whether this node's variant carries block
// children eligible for container recursion.
func (n *Node) IsContainer() bool { return containerKinds[n.Kind] }

// IsInlineContainer reports whether this node's variant carries inline
// children eligible for inline-container recursion.
func (n *Node) IsInlineContainer() bool { return inlineContainerKinds[n.Kind] }

// IsInlineLeaf reports whether this node is an inline-bearing leaf
// block eligible for inline recursion.
func (n *Node) IsInlineLeaf() bool { return inlineLeafKinds[n.Kind] }

// HasChildren reports whether this node has any children.
func (n *Node) HasChildren() bool { return n.FirstChild != nil }

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns a slice of all direct children, in order.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}
