// Package mdreader builds a pandoc.Document from Markdown/Quarto
// source text. It is the reconciler's front end: both the original
// (A0) and executed (A1) trees a caller hands to pkg/reconcile
// normally come from this package, parsing the same document at two
// points in its execution pipeline.
//
// Maps goldmark's AST directly into the full pandoc.Node variant set
// (GFM tables become NodeTable; definition lists are not emitted by
// Markdown parsing itself and are left to filters/Custom nodes
// downstream).
package mdreader

import (
	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	gtext "github.com/yuin/goldmark/text"

	"github.com/quarto-dev/q2-sub003/pkg/langdetect"
	"github.com/quarto-dev/q2-sub003/pkg/pandoc"
	"github.com/quarto-dev/q2-sub003/pkg/sourcemap"
)

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Read parses content into a pandoc.Document. fileID identifies
// content within the caller's sourcemap.FileID space; every node
// goldmark can attribute a byte range to carries an Original
// SourceInfo built from that range.
func Read(fileID sourcemap.FileID, path string, content []byte) pandoc.Document {
	reader := gtext.NewReader(content)
	gmRoot := md.Parser().Parse(reader)

	m := &mapper{fileID: fileID, content: content}
	root := m.mapDocument(gmRoot)

	return pandoc.Document{
		Meta: map[string]any{},
		Root: root,
		File: pandoc.NewFileSnapshot(path, content),
	}
}

type mapper struct {
	fileID  sourcemap.FileID
	content []byte
}

func (m *mapper) source(gmNode gast.Node) sourcemap.SourceInfo {
	start, end := nodeByteRange(gmNode, m.content)
	if start < 0 || end < start {
		return sourcemap.Zero
	}
	return sourcemap.Original(m.fileID, start, end)
}

func (m *mapper) mapDocument(gmDoc gast.Node) *pandoc.Node {
	doc := pandoc.NewDocument()
	m.mapChildren(gmDoc, doc)
	return doc
}

func (m *mapper) mapChildren(gmParent gast.Node, parent *pandoc.Node) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		if node := m.mapNode(child); node != nil {
			pandoc.AppendChild(parent, node)
		}
	}
}

//nolint:gocyclo // one dispatch table covering every goldmark node kind
func (m *mapper) mapNode(gmNode gast.Node) *pandoc.Node {
	var node *pandoc.Node

	switch gmn := gmNode.(type) {
	case *gast.Heading:
		node = m.mapHeading(gmn)
	case *gast.Paragraph:
		node = pandoc.NewNode(pandoc.NodeParagraph)
		node.Source = m.source(gmNode)
		m.mapChildren(gmNode, node)
	case *gast.TextBlock:
		node = pandoc.NewNode(pandoc.NodePlain)
		node.Source = m.source(gmNode)
		m.mapChildren(gmNode, node)
	case *gast.List:
		node = m.mapList(gmn)
	case *gast.ListItem:
		node = pandoc.NewNode(pandoc.NodeListItem)
		node.Source = m.source(gmNode)
		m.mapChildren(gmNode, node)
	case *gast.Blockquote:
		node = pandoc.NewNode(pandoc.NodeBlockQuote)
		node.Source = m.source(gmNode)
		m.mapChildren(gmNode, node)
	case *gast.FencedCodeBlock:
		node = m.mapFencedCodeBlock(gmn)
	case *gast.CodeBlock:
		node = m.mapIndentedCodeBlock(gmn)
	case *gast.ThematicBreak:
		node = pandoc.NewNode(pandoc.NodeHorizontalRule)
		node.Source = m.source(gmNode)
	case *gast.HTMLBlock:
		node = m.mapHTMLBlock(gmn)

	case *gast.Text:
		node = m.mapText(gmn)
	case *gast.Emphasis:
		node = m.mapEmphasis(gmn)
	case *gast.CodeSpan:
		node = m.mapCodeSpan(gmn)
	case *gast.Link:
		node = m.mapLink(gmn)
	case *gast.Image:
		node = m.mapImage(gmn)
	case *gast.AutoLink:
		node = m.mapAutoLink(gmn)
	case *gast.RawHTML:
		node = m.mapRawHTML(gmn)
	case *gast.String:
		node = pandoc.NewNode(pandoc.NodeStr)
		node.Inline = &pandoc.InlineFields{Text: gmn.Value}

	case *east.Strikethrough:
		node = pandoc.NewNode(pandoc.NodeStrikeout)
		node.Source = m.source(gmNode)
		m.mapChildren(gmNode, node)
	case *east.TaskCheckBox:
		node = pandoc.NewNode(pandoc.NodeSpan)
		node.Attr = &pandoc.Attr{
			Classes: []string{"task-list-item-checkbox"},
			KV:      []pandoc.KV{{Key: "checked", Value: boolStr(gmn.IsChecked)}},
		}
	case *east.Table:
		node = m.mapTable(gmn)

	default:
		node = m.mapRawFallback(gmNode)
	}

	return node
}

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func (m *mapper) mapHeading(h *gast.Heading) *pandoc.Node {
	node := pandoc.NewNode(pandoc.NodeHeader)
	node.Source = m.source(h)
	node.Block = &pandoc.BlockFields{HeadingLevel: h.Level}
	m.mapChildren(h, node)
	return node
}

func (m *mapper) mapList(list *gast.List) *pandoc.Node {
	if list.IsOrdered() {
		node := pandoc.NewNode(pandoc.NodeOrderedList)
		node.Source = m.source(list)
		node.Block = &pandoc.BlockFields{List: &pandoc.ListFields{
			Ordered:     true,
			StartNumber: list.Start,
			Delimiter:   ".",
			Tight:       list.IsTight,
		}}
		m.mapChildren(list, node)
		return node
	}
	node := pandoc.NewNode(pandoc.NodeBulletList)
	node.Source = m.source(list)
	node.Block = &pandoc.BlockFields{List: &pandoc.ListFields{
		BulletMarker: string(list.Marker),
		Tight:        list.IsTight,
	}}
	m.mapChildren(list, node)
	return node
}

func (m *mapper) mapFencedCodeBlock(cb *gast.FencedCodeBlock) *pandoc.Node {
	node := pandoc.NewNode(pandoc.NodeCodeBlock)
	node.Source = m.source(cb)

	rawInfo := ""
	if cb.Info != nil {
		rawInfo = string(cb.Info.Value(m.content))
	}
	fenceChar, fenceLength := detectFenceStyle(cb, m.content)
	text := linesValue(cb, m.content)

	info := rawInfo
	if info == "" {
		// No explicit language tag: guess one for syntax highlighting.
		// This is never an executable cell (EngineTag stays empty),
		// just a display hint.
		info = langdetect.Detect(text)
	}

	node.Block = &pandoc.BlockFields{CodeBlock: &pandoc.CodeBlockFields{
		FenceChar:   fenceChar,
		FenceLength: fenceLength,
		Info:        info,
		Text:        string(text),
		EngineTag:   langdetect.EngineTag(rawInfo),
	}}
	return node
}

func (m *mapper) mapIndentedCodeBlock(cb *gast.CodeBlock) *pandoc.Node {
	node := pandoc.NewNode(pandoc.NodeCodeBlock)
	node.Source = m.source(cb)
	node.Block = &pandoc.BlockFields{CodeBlock: &pandoc.CodeBlockFields{
		Indented: true,
		Text:     string(linesValue(cb, m.content)),
	}}
	return node
}

func (m *mapper) mapHTMLBlock(hb *gast.HTMLBlock) *pandoc.Node {
	node := pandoc.NewNode(pandoc.NodeRawBlock)
	node.Source = m.source(hb)
	var text []byte
	for i := range hb.Lines().Len() {
		seg := hb.Lines().At(i)
		text = append(text, seg.Value(m.content)...)
	}
	node.Block = &pandoc.BlockFields{RawFormat: "html", RawText: string(text)}
	return node
}

func (m *mapper) mapText(t *gast.Text) *pandoc.Node {
	if t.SoftLineBreak() {
		node := pandoc.NewNode(pandoc.NodeSoftBreak)
		node.Source = m.source(t)
		return node
	}
	if t.HardLineBreak() {
		node := pandoc.NewNode(pandoc.NodeLineBreak)
		node.Source = m.source(t)
		return node
	}
	node := pandoc.NewNode(pandoc.NodeStr)
	node.Source = m.source(t)
	node.Inline = &pandoc.InlineFields{Text: t.Value(m.content)}
	return node
}

func (m *mapper) mapEmphasis(e *gast.Emphasis) *pandoc.Node {
	var node *pandoc.Node
	if e.Level == 2 {
		node = pandoc.NewNode(pandoc.NodeStrong)
	} else {
		node = pandoc.NewNode(pandoc.NodeEmph)
	}
	node.Source = m.source(e)
	m.mapChildren(e, node)
	return node
}

func (m *mapper) mapCodeSpan(cs *gast.CodeSpan) *pandoc.Node {
	node := pandoc.NewNode(pandoc.NodeCode)
	node.Source = m.source(cs)
	var text []byte
	for child := cs.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*gast.Text); ok {
			text = append(text, t.Value(m.content)...)
		}
	}
	node.Inline = &pandoc.InlineFields{Text: text}
	return node
}

func (m *mapper) mapLink(l *gast.Link) *pandoc.Node {
	node := pandoc.NewNode(pandoc.NodeLink)
	node.Source = m.source(l)
	node.Inline = &pandoc.InlineFields{Link: &pandoc.LinkFields{
		Destination:    string(l.Destination),
		Title:          string(l.Title),
		ReferenceStyle: pandoc.RefStyleInline,
	}}
	m.mapChildren(l, node)
	return node
}

func (m *mapper) mapImage(img *gast.Image) *pandoc.Node {
	node := pandoc.NewNode(pandoc.NodeImage)
	node.Source = m.source(img)
	node.Inline = &pandoc.InlineFields{Link: &pandoc.LinkFields{
		Destination:    string(img.Destination),
		Title:          string(img.Title),
		ReferenceStyle: pandoc.RefStyleInline,
	}}
	m.mapChildren(img, node)
	return node
}

func (m *mapper) mapAutoLink(al *gast.AutoLink) *pandoc.Node {
	node := pandoc.NewNode(pandoc.NodeLink)
	node.Source = m.source(al)
	node.Inline = &pandoc.InlineFields{Link: &pandoc.LinkFields{
		Destination:    string(al.URL(m.content)),
		ReferenceStyle: pandoc.RefStyleAutolink,
	}}
	text := pandoc.NewNode(pandoc.NodeStr)
	text.Inline = &pandoc.InlineFields{Text: al.Label(m.content)}
	pandoc.AppendChild(node, text)
	return node
}

func (m *mapper) mapRawHTML(rh *gast.RawHTML) *pandoc.Node {
	node := pandoc.NewNode(pandoc.NodeRawInline)
	node.Source = m.source(rh)
	var text []byte
	for i := range rh.Segments.Len() {
		seg := rh.Segments.At(i)
		text = append(text, seg.Value(m.content)...)
	}
	node.Inline = &pandoc.InlineFields{RawFormat: "html", Text: text}
	return node
}

func (m *mapper) mapTable(t *east.Table) *pandoc.Node {
	node := pandoc.NewNode(pandoc.NodeTable)
	node.Source = m.source(t)

	colSpecs := make([]pandoc.ColSpec, len(t.Alignments))
	for i, a := range t.Alignments {
		colSpecs[i] = pandoc.ColSpec{Align: mapAlignment(a), Width: pandoc.ColWidth{Default: true}}
	}

	var head *pandoc.TableSection
	var bodyRows []*pandoc.Node

	for child := t.FirstChild(); child != nil; child = child.NextSibling() {
		switch row := child.(type) {
		case *east.TableHeader:
			head = &pandoc.TableSection{Rows: []*pandoc.Node{m.mapTableRow(row, true)}}
		case *east.TableRow:
			bodyRows = append(bodyRows, m.mapTableRow(row, false))
		}
	}

	node.Block = &pandoc.BlockFields{Table: &pandoc.TableFields{
		ColSpecs: colSpecs,
		Head:     head,
		Bodies:   []pandoc.TableBody{{BodyRows: bodyRows}},
	}}
	return node
}

func (m *mapper) mapTableRow(row gast.Node, header bool) *pandoc.Node {
	rowNode := pandoc.NewNode(pandoc.NodeTableRow)
	rowNode.Source = m.source(row)
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		tc, ok := cell.(*east.TableCell)
		if !ok {
			continue
		}
		cellNode := pandoc.NewNode(pandoc.NodeTableCell)
		cellNode.Source = m.source(tc)
		cellNode.Block = &pandoc.BlockFields{TableCell: &pandoc.TableCellFields{
			Alignment: mapAlignment(tc.Alignment), RowSpan: 1, ColSpan: 1,
		}}
		inline := pandoc.NewNode(pandoc.NodePlain)
		m.mapChildren(tc, inline)
		pandoc.AppendChild(cellNode, inline)
		pandoc.AppendChild(rowNode, cellNode)
	}
	_ = header
	return rowNode
}

func mapAlignment(a east.Alignment) pandoc.Alignment {
	switch a {
	case east.AlignLeft:
		return pandoc.AlignLeft
	case east.AlignCenter:
		return pandoc.AlignCenter
	case east.AlignRight:
		return pandoc.AlignRight
	default:
		return pandoc.AlignDefault
	}
}

func (m *mapper) mapRawFallback(gmNode gast.Node) *pandoc.Node {
	node := pandoc.NewNode(pandoc.NodeRawBlock)
	node.Source = m.source(gmNode)
	node.Block = &pandoc.BlockFields{RawFormat: "unknown"}
	return node
}
