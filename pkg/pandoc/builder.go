package pandoc

// NewNode creates a new, detached node of the given kind.
func NewNode(kind NodeKind) *Node {
	return &Node{Kind: kind}
}

// NewDocument creates a new document root node.
func NewDocument() *Node {
	return NewNode(NodeDocument)
}

// AppendChild appends child to parent, maintaining sibling pointers.
// If child already has a parent, it is detached first.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}
	if child.Parent != nil {
		RemoveChild(child.Parent, child)
	}

	child.Parent = parent
	child.Prev = parent.LastChild
	child.Next = nil

	if parent.LastChild != nil {
		parent.LastChild.Next = child
	} else {
		parent.FirstChild = child
	}
	parent.LastChild = child
}

// PrependChild prepends child to parent, maintaining sibling pointers.
func PrependChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}
	if child.Parent != nil {
		RemoveChild(child.Parent, child)
	}

	child.Parent = parent
	child.Prev = nil
	child.Next = parent.FirstChild

	if parent.FirstChild != nil {
		parent.FirstChild.Prev = child
	} else {
		parent.LastChild = child
	}
	parent.FirstChild = child
}

// InsertAfter inserts child immediately after sibling under sibling's
// parent.
func InsertAfter(sibling, child *Node) {
	if sibling == nil || child == nil || sibling.Parent == nil {
		return
	}
	if child.Parent != nil {
		RemoveChild(child.Parent, child)
	}

	parent := sibling.Parent
	child.Parent = parent
	child.Prev = sibling
	child.Next = sibling.Next

	if sibling.Next != nil {
		sibling.Next.Prev = child
	} else {
		parent.LastChild = child
	}
	sibling.Next = child
}

// RemoveChild detaches child from parent, patching sibling pointers.
// It is a no-op if child's parent is not parent.
func RemoveChild(parent, child *Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}

	if child.Prev != nil {
		child.Prev.Next = child.Next
	} else {
		parent.FirstChild = child.Next
	}

	if child.Next != nil {
		child.Next.Prev = child.Prev
	} else {
		parent.LastChild = child.Prev
	}

	child.Parent = nil
	child.Prev = nil
	child.Next = nil
}

// AppendChildren appends each of children to parent in order.
func AppendChildren(parent *Node, children []*Node) {
	for _, c := range children {
		AppendChild(parent, c)
	}
}
