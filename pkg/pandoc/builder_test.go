package pandoc_test

import (
	"testing"

	"github.com/quarto-dev/q2-sub003/pkg/pandoc"
)

func TestNewNode(t *testing.T) {
	t.Parallel()

	node := pandoc.NewNode(pandoc.NodeParagraph)

	if node.Kind != pandoc.NodeParagraph {
		t.Errorf("expected Paragraph, got %s", node.Kind)
	}
	if node.Parent != nil || node.FirstChild != nil || node.LastChild != nil {
		t.Error("expected nil parent and children")
	}
}

func TestNewDocument(t *testing.T) {
	t.Parallel()

	doc := pandoc.NewDocument()
	if doc.Kind != pandoc.NodeDocument {
		t.Errorf("expected Document, got %s", doc.Kind)
	}
}

func TestAppendChild(t *testing.T) {
	t.Parallel()

	parent := pandoc.NewNode(pandoc.NodeDocument)
	child1 := pandoc.NewNode(pandoc.NodeParagraph)
	child2 := pandoc.NewNode(pandoc.NodeHeader)

	pandoc.AppendChild(parent, child1)
	if parent.FirstChild != child1 || parent.LastChild != child1 {
		t.Error("first child not set correctly")
	}
	if child1.Parent != parent {
		t.Error("child1 parent not set")
	}

	pandoc.AppendChild(parent, child2)
	if parent.FirstChild != child1 {
		t.Error("first child should still be child1")
	}
	if parent.LastChild != child2 {
		t.Error("last child should be child2")
	}
	if child1.Next != child2 || child2.Prev != child1 {
		t.Error("sibling links not set correctly")
	}
}

func TestPrependChild(t *testing.T) {
	t.Parallel()

	parent := pandoc.NewNode(pandoc.NodeDocument)
	child1 := pandoc.NewNode(pandoc.NodeParagraph)
	child2 := pandoc.NewNode(pandoc.NodeHeader)

	pandoc.AppendChild(parent, child1)
	pandoc.PrependChild(parent, child2)

	if parent.FirstChild != child2 {
		t.Error("first child should be child2")
	}
	if parent.LastChild != child1 {
		t.Error("last child should be child1")
	}
	if child2.Next != child1 || child1.Prev != child2 {
		t.Error("sibling links not set correctly")
	}
}

func TestInsertAfter(t *testing.T) {
	t.Parallel()

	parent := pandoc.NewNode(pandoc.NodeDocument)
	child1 := pandoc.NewNode(pandoc.NodeParagraph)
	child2 := pandoc.NewNode(pandoc.NodeHeader)
	newNode := pandoc.NewNode(pandoc.NodeCodeBlock)

	pandoc.AppendChild(parent, child1)
	pandoc.AppendChild(parent, child2)

	pandoc.InsertAfter(child1, newNode)

	if child1.Next != newNode {
		t.Error("child1.Next should be newNode")
	}
	if newNode.Prev != child1 || newNode.Next != child2 {
		t.Error("newNode sibling links incorrect")
	}
	if child2.Prev != newNode {
		t.Error("child2.Prev should be newNode")
	}
	if parent.LastChild != child2 {
		t.Error("last child should still be child2")
	}
}

func TestInsertAfter_AtTail(t *testing.T) {
	t.Parallel()

	parent := pandoc.NewNode(pandoc.NodeDocument)
	child1 := pandoc.NewNode(pandoc.NodeParagraph)
	newNode := pandoc.NewNode(pandoc.NodeCodeBlock)

	pandoc.AppendChild(parent, child1)
	pandoc.InsertAfter(child1, newNode)

	if parent.LastChild != newNode {
		t.Error("expected newNode to become the new last child")
	}
	if newNode.Next != nil {
		t.Error("expected newNode.Next to be nil")
	}
}

func TestRemoveChild(t *testing.T) {
	t.Parallel()

	parent := pandoc.NewNode(pandoc.NodeDocument)
	child1 := pandoc.NewNode(pandoc.NodeParagraph)
	child2 := pandoc.NewNode(pandoc.NodeHeader)
	child3 := pandoc.NewNode(pandoc.NodeCodeBlock)

	pandoc.AppendChild(parent, child1)
	pandoc.AppendChild(parent, child2)
	pandoc.AppendChild(parent, child3)

	pandoc.RemoveChild(parent, child2)

	if child1.Next != child3 || child3.Prev != child1 {
		t.Error("sibling links not updated after removal")
	}
	if child2.Parent != nil || child2.Prev != nil || child2.Next != nil {
		t.Error("removed child should have nil links")
	}

	pandoc.RemoveChild(parent, child1)
	if parent.FirstChild != child3 {
		t.Error("first child should now be child3")
	}

	pandoc.RemoveChild(parent, child3)
	if parent.FirstChild != nil || parent.LastChild != nil {
		t.Error("parent should have no children")
	}
}

func TestRemoveChild_WrongParentIsNoOp(t *testing.T) {
	t.Parallel()

	parent1 := pandoc.NewNode(pandoc.NodeDocument)
	parent2 := pandoc.NewNode(pandoc.NodeDocument)
	child := pandoc.NewNode(pandoc.NodeParagraph)

	pandoc.AppendChild(parent1, child)
	pandoc.RemoveChild(parent2, child)

	if child.Parent != parent1 {
		t.Error("expected child to remain under parent1")
	}
}

func TestAppendChild_MovesFromPreviousParent(t *testing.T) {
	t.Parallel()

	parent1 := pandoc.NewNode(pandoc.NodeDocument)
	parent2 := pandoc.NewNode(pandoc.NodeDocument)
	child := pandoc.NewNode(pandoc.NodeParagraph)

	pandoc.AppendChild(parent1, child)
	pandoc.AppendChild(parent2, child)

	if parent1.FirstChild != nil {
		t.Error("parent1 should have no children after move")
	}
	if parent2.FirstChild != child {
		t.Error("child should be in parent2")
	}
	if child.Parent != parent2 {
		t.Error("child.Parent should be parent2")
	}
}

func TestAppendChildren(t *testing.T) {
	t.Parallel()

	parent := pandoc.NewNode(pandoc.NodeDocument)
	children := []*pandoc.Node{
		pandoc.NewNode(pandoc.NodeParagraph),
		pandoc.NewNode(pandoc.NodeHeader),
		pandoc.NewNode(pandoc.NodeCodeBlock),
	}

	pandoc.AppendChildren(parent, children)

	got := parent.Children()
	if len(got) != 3 {
		t.Fatalf("expected 3 children, got %d", len(got))
	}
	for i := range children {
		if got[i] != children[i] {
			t.Errorf("child %d: expected %v, got %v", i, children[i], got[i])
		}
	}
}
