package pandoc_test

import (
	"testing"

	"github.com/quarto-dev/q2-sub003/pkg/pandoc"
)

func TestNode_IsBlock(t *testing.T) {
	t.Parallel()

	blockKinds := []pandoc.NodeKind{
		pandoc.NodeDocument, pandoc.NodeParagraph, pandoc.NodeHeader,
		pandoc.NodeCodeBlock, pandoc.NodeRawBlock, pandoc.NodeHorizontalRule,
		pandoc.NodeBlockQuote, pandoc.NodeDiv, pandoc.NodeTable,
	}
	for _, kind := range blockKinds {
		node := &pandoc.Node{Kind: kind}
		if !node.IsBlock() {
			t.Errorf("expected %s to be block", kind)
		}
	}

	inlineKinds := []pandoc.NodeKind{pandoc.NodeStr, pandoc.NodeEmph, pandoc.NodeLink}
	for _, kind := range inlineKinds {
		node := &pandoc.Node{Kind: kind}
		if node.IsBlock() {
			t.Errorf("expected %s to not be block", kind)
		}
	}
}

func TestNode_IsInline(t *testing.T) {
	t.Parallel()

	inlineKinds := []pandoc.NodeKind{
		pandoc.NodeStr, pandoc.NodeSpaceInline, pandoc.NodeEmph,
		pandoc.NodeStrong, pandoc.NodeLink, pandoc.NodeCite,
	}
	for _, kind := range inlineKinds {
		node := &pandoc.Node{Kind: kind}
		if !node.IsInline() {
			t.Errorf("expected %s to be inline", kind)
		}
	}

	blockKinds := []pandoc.NodeKind{pandoc.NodeDocument, pandoc.NodeParagraph, pandoc.NodeHeader}
	for _, kind := range blockKinds {
		node := &pandoc.Node{Kind: kind}
		if node.IsInline() {
			t.Errorf("expected %s to not be inline", kind)
		}
	}
}

func TestNode_IsContainer(t *testing.T) {
	t.Parallel()

	containerKinds := []pandoc.NodeKind{
		pandoc.NodeBlockQuote, pandoc.NodeDiv, pandoc.NodeFigure,
		pandoc.NodeListItem, pandoc.NodeDefinitionItem, pandoc.NodeTableCell,
		pandoc.NodeCaptionLong, pandoc.NodeCustomBlock,
	}
	for _, kind := range containerKinds {
		node := &pandoc.Node{Kind: kind}
		if !node.IsContainer() {
			t.Errorf("expected %s to be a container", kind)
		}
	}

	// Paragraph carries inlines, not block children, so it is not a
	// block container even though it is inline-bearing.
	if (&pandoc.Node{Kind: pandoc.NodeParagraph}).IsContainer() {
		t.Error("expected Paragraph to not be a block container")
	}
}

func TestNode_IsInlineLeaf(t *testing.T) {
	t.Parallel()

	leafKinds := []pandoc.NodeKind{
		pandoc.NodeParagraph, pandoc.NodePlain, pandoc.NodeHeader,
		pandoc.NodeDefinitionTerm, pandoc.NodeCaptionShort,
	}
	for _, kind := range leafKinds {
		node := &pandoc.Node{Kind: kind}
		if !node.IsInlineLeaf() {
			t.Errorf("expected %s to be an inline leaf", kind)
		}
	}

	if (&pandoc.Node{Kind: pandoc.NodeBlockQuote}).IsInlineLeaf() {
		t.Error("expected BlockQuote to not be an inline leaf")
	}
}

func TestNode_IsInlineContainer(t *testing.T) {
	t.Parallel()

	if !(&pandoc.Node{Kind: pandoc.NodeEmph}).IsInlineContainer() {
		t.Error("expected Emph to be an inline container")
	}
	if (&pandoc.Node{Kind: pandoc.NodeStr}).IsInlineContainer() {
		t.Error("expected Str to not be an inline container")
	}
}

func TestNode_HasChildren(t *testing.T) {
	t.Parallel()

	parent := pandoc.NewNode(pandoc.NodeDocument)
	child := pandoc.NewNode(pandoc.NodeParagraph)

	if parent.HasChildren() {
		t.Error("expected empty node to have no children")
	}

	pandoc.AppendChild(parent, child)

	if !parent.HasChildren() {
		t.Error("expected node with child to have children")
	}
}

func TestNode_ChildCount(t *testing.T) {
	t.Parallel()

	parent := pandoc.NewNode(pandoc.NodeDocument)
	if parent.ChildCount() != 0 {
		t.Errorf("expected 0 children, got %d", parent.ChildCount())
	}

	pandoc.AppendChild(parent, pandoc.NewNode(pandoc.NodeParagraph))
	pandoc.AppendChild(parent, pandoc.NewNode(pandoc.NodeParagraph))
	pandoc.AppendChild(parent, pandoc.NewNode(pandoc.NodeParagraph))

	if parent.ChildCount() != 3 {
		t.Errorf("expected 3 children, got %d", parent.ChildCount())
	}
}

func TestNode_Children(t *testing.T) {
	t.Parallel()

	parent := pandoc.NewNode(pandoc.NodeDocument)
	child1 := pandoc.NewNode(pandoc.NodeParagraph)
	child2 := pandoc.NewNode(pandoc.NodeHeader)
	child3 := pandoc.NewNode(pandoc.NodeCodeBlock)

	pandoc.AppendChild(parent, child1)
	pandoc.AppendChild(parent, child2)
	pandoc.AppendChild(parent, child3)

	children := parent.Children()
	if len(children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(children))
	}
	if children[0] != child1 || children[1] != child2 || children[2] != child3 {
		t.Error("children not in expected order")
	}
}

func TestNodeKind_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind     pandoc.NodeKind
		expected string
	}{
		{pandoc.NodeDocument, "Document"},
		{pandoc.NodeParagraph, "Paragraph"},
		{pandoc.NodeHeader, "Header"},
		{pandoc.NodeCodeBlock, "CodeBlock"},
		{pandoc.NodeStr, "Str"},
		{pandoc.NodeCustomInline, "CustomInline"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			t.Parallel()
			if tt.kind.String() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.kind.String())
			}
		})
	}
}

func TestNodeKind_String_Unknown(t *testing.T) {
	t.Parallel()

	unknown := pandoc.NodeKind(9999)
	if unknown.String() != "Unknown" {
		t.Errorf("expected %q, got %q", "Unknown", unknown.String())
	}
}

func TestParseNodeKind(t *testing.T) {
	t.Parallel()

	kind, ok := pandoc.ParseNodeKind("Header")
	if !ok || kind != pandoc.NodeHeader {
		t.Errorf("expected (NodeHeader, true), got (%v, %v)", kind, ok)
	}

	_, ok = pandoc.ParseNodeKind("NotARealKind")
	if ok {
		t.Error("expected ok=false for unrecognized name")
	}
}
