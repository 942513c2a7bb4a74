package pandoc

var nodeKindNames = map[NodeKind]string{
	NodeDocument:       "Document",
	NodeParagraph:      "Paragraph",
	NodePlain:          "Plain",
	NodeHeader:         "Header",
	NodeCodeBlock:      "CodeBlock",
	NodeRawBlock:       "RawBlock",
	NodeHorizontalRule: "HorizontalRule",
	NodeBlockQuote:     "BlockQuote",
	NodeDiv:            "Div",
	NodeFigure:         "Figure",
	NodeOrderedList:    "OrderedList",
	NodeBulletList:     "BulletList",
	NodeDefinitionList: "DefinitionList",
	NodeListItem:       "ListItem",
	NodeDefinitionTerm: "DefinitionTerm",
	NodeDefinitionItem: "DefinitionItem",
	NodeTable:          "Table",
	NodeTableRow:       "TableRow",
	NodeTableCell:      "TableCell",
	NodeCaptionShort:   "CaptionShort",
	NodeCaptionLong:    "CaptionLong",
	NodeCustomBlock:    "CustomBlock",
	NodeStr:            "Str",
	NodeSpaceInline:    "Space",
	NodeSoftBreak:      "SoftBreak",
	NodeLineBreak:      "LineBreak",
	NodeCode:           "Code",
	NodeMath:           "Math",
	NodeRawInline:      "RawInline",
	NodeEmph:           "Emph",
	NodeStrong:         "Strong",
	NodeUnderline:      "Underline",
	NodeStrikeout:      "Strikeout",
	NodeSuperscript:    "Superscript",
	NodeSubscript:      "Subscript",
	NodeSmallCaps:      "SmallCaps",
	NodeQuoted:         "Quoted",
	NodeLink:           "Link",
	NodeImage:          "Image",
	NodeSpan:           "Span",
	NodeCite:           "Cite",
	NodeNote:           "Note",
	NodeInsert:         "Insert",
	NodeDelete:         "Delete",
	NodeHighlight:      "Highlight",
	NodeEditComment:    "EditComment",
	NodeCustomInline:   "CustomInline",
}

var nodeKindByName = func() map[string]NodeKind {
	m := make(map[string]NodeKind, len(nodeKindNames))
	for k, v := range nodeKindNames {
		m[v] = k
	}
	return m
}()

// String renders a NodeKind by its Pandoc-style variant name.
func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// ParseNodeKind looks up a NodeKind by its String() name, for decoding
// the wire format pkg/pandocjson produces.
func ParseNodeKind(name string) (NodeKind, bool) {
	k, ok := nodeKindByName[name]
	return k, ok
}
