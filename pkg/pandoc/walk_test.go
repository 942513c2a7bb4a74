package pandoc_test

import (
	"errors"
	"testing"

	"github.com/quarto-dev/q2-sub003/pkg/pandoc"
)

func buildTestTree() *pandoc.Node {
	// Document
	//   Header
	//     Str
	//   Paragraph
	//     Str
	//     Emph
	//       Str
	doc := pandoc.NewNode(pandoc.NodeDocument)

	header := pandoc.NewNode(pandoc.NodeHeader)
	pandoc.AppendChild(header, pandoc.NewNode(pandoc.NodeStr))
	pandoc.AppendChild(doc, header)

	para := pandoc.NewNode(pandoc.NodeParagraph)
	pandoc.AppendChild(para, pandoc.NewNode(pandoc.NodeStr))

	emph := pandoc.NewNode(pandoc.NodeEmph)
	pandoc.AppendChild(emph, pandoc.NewNode(pandoc.NodeStr))
	pandoc.AppendChild(para, emph)

	pandoc.AppendChild(doc, para)

	return doc
}

func TestWalk(t *testing.T) {
	t.Parallel()

	doc := buildTestTree()

	var visited []pandoc.NodeKind
	err := pandoc.Walk(doc, func(n *pandoc.Node) error {
		visited = append(visited, n.Kind)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}

	expected := []pandoc.NodeKind{
		pandoc.NodeDocument, pandoc.NodeHeader, pandoc.NodeStr,
		pandoc.NodeParagraph, pandoc.NodeStr, pandoc.NodeEmph, pandoc.NodeStr,
	}
	if len(visited) != len(expected) {
		t.Fatalf("expected %d nodes, got %d", len(expected), len(visited))
	}
	for i, kind := range expected {
		if visited[i] != kind {
			t.Errorf("node %d: expected %s, got %s", i, kind, visited[i])
		}
	}
}

func TestWalk_NilRoot(t *testing.T) {
	t.Parallel()

	err := pandoc.Walk(nil, func(_ *pandoc.Node) error {
		t.Error("callback should not be called for nil root")
		return nil
	})
	if err != nil {
		t.Errorf("expected nil error for nil root, got %v", err)
	}
}

func TestWalk_EarlyTermination(t *testing.T) {
	t.Parallel()

	doc := buildTestTree()

	expectedErr := errors.New("stop here")
	count := 0
	err := pandoc.Walk(doc, func(n *pandoc.Node) error {
		count++
		if n.Kind == pandoc.NodeParagraph {
			return expectedErr
		}
		return nil
	})

	if !errors.Is(err, expectedErr) {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
	if count != 4 {
		t.Errorf("expected 4 nodes before stopping, got %d", count)
	}
}

func TestWalkWithContext(t *testing.T) {
	t.Parallel()

	doc := buildTestTree()

	var enterOrder, leaveOrder []pandoc.NodeKind
	err := pandoc.WalkWithContext(doc,
		func(n *pandoc.Node) error {
			enterOrder = append(enterOrder, n.Kind)
			return nil
		},
		func(n *pandoc.Node) error {
			leaveOrder = append(leaveOrder, n.Kind)
			return nil
		},
	)
	if err != nil {
		t.Fatalf("WalkWithContext returned error: %v", err)
	}

	expectedEnter := []pandoc.NodeKind{
		pandoc.NodeDocument, pandoc.NodeHeader, pandoc.NodeStr,
		pandoc.NodeParagraph, pandoc.NodeStr, pandoc.NodeEmph, pandoc.NodeStr,
	}
	expectedLeave := []pandoc.NodeKind{
		pandoc.NodeStr, pandoc.NodeHeader, pandoc.NodeStr,
		pandoc.NodeStr, pandoc.NodeEmph, pandoc.NodeParagraph, pandoc.NodeDocument,
	}

	if len(enterOrder) != len(expectedEnter) {
		t.Fatalf("enter: expected %d, got %d", len(expectedEnter), len(enterOrder))
	}
	for i, kind := range expectedEnter {
		if enterOrder[i] != kind {
			t.Errorf("enter %d: expected %s, got %s", i, kind, enterOrder[i])
		}
	}

	if len(leaveOrder) != len(expectedLeave) {
		t.Fatalf("leave: expected %d, got %d", len(expectedLeave), len(leaveOrder))
	}
	for i, kind := range expectedLeave {
		if leaveOrder[i] != kind {
			t.Errorf("leave %d: expected %s, got %s", i, kind, leaveOrder[i])
		}
	}
}

func TestWalkWithContext_NilCallbacks(t *testing.T) {
	t.Parallel()

	doc := buildTestTree()

	if err := pandoc.WalkWithContext(doc, nil, nil); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

func TestFindAll(t *testing.T) {
	t.Parallel()

	doc := buildTestTree()

	strNodes := pandoc.FindAll(doc, func(n *pandoc.Node) bool {
		return n.Kind == pandoc.NodeStr
	})
	if len(strNodes) != 3 {
		t.Errorf("expected 3 Str nodes, got %d", len(strNodes))
	}
}

func TestFindFirst(t *testing.T) {
	t.Parallel()

	doc := buildTestTree()

	para := pandoc.FindFirst(doc, func(n *pandoc.Node) bool {
		return n.Kind == pandoc.NodeParagraph
	})
	if para == nil {
		t.Fatal("expected to find paragraph")
	}
	if para.Kind != pandoc.NodeParagraph {
		t.Errorf("expected Paragraph, got %s", para.Kind)
	}

	notFound := pandoc.FindFirst(doc, func(n *pandoc.Node) bool {
		return n.Kind == pandoc.NodeCodeBlock
	})
	if notFound != nil {
		t.Error("expected nil for non-existent node")
	}
}

func TestFindByKind(t *testing.T) {
	t.Parallel()

	doc := buildTestTree()

	headers := pandoc.FindByKind(doc, pandoc.NodeHeader)
	if len(headers) != 1 {
		t.Errorf("expected 1 header, got %d", len(headers))
	}

	codeBlocks := pandoc.FindByKind(doc, pandoc.NodeCodeBlock)
	if len(codeBlocks) != 0 {
		t.Errorf("expected 0 code blocks, got %d", len(codeBlocks))
	}
}
