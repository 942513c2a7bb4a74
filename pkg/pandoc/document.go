package pandoc

// Document is a parsed Pandoc-style document: frontmatter metadata
// plus an ordered sequence of blocks, rooted under Root (kind
// NodeDocument). File, when set, backs Root's descendants' Source
// values with byte-offset-to-line/column conversion.
type Document struct {
	Meta map[string]any
	Root *Node
	File *FileSnapshot
}

// Blocks returns the document's top-level block sequence.
func (d Document) Blocks() []*Node {
	if d.Root == nil {
		return nil
	}
	return d.Root.Children()
}

// NewEmptyDocument creates an empty document with a fresh root node.
func NewEmptyDocument() Document {
	return Document{Meta: map[string]any{}, Root: NewNode(NodeDocument)}
}
