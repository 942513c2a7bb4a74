// Package pandocjson encodes and decodes pandoc.Document values and
// reconcile.ReconciliationPlan values as JSON, for the CLI's file I/O
// and for fixtures. The wire shape is a generic node envelope (kind
// name plus whichever variant fields apply) rather than one Go struct
// per Pandoc variant, mirroring pkg/pandoc's own Node/Kind/side-table
// design so encode and decode stay in lockstep with the in-memory
// model without a second type hierarchy to keep in sync.
package pandocjson

import (
	"encoding/json"
	"fmt"

	"github.com/quarto-dev/q2-sub003/pkg/pandoc"
	"github.com/quarto-dev/q2-sub003/pkg/sourcemap"
)

// wireDocument is the top-level envelope.
type wireDocument struct {
	Meta map[string]any `json:"meta,omitempty"`
	Root *wireNode      `json:"root"`
}

type wireSource struct {
	Kind       string             `json:"kind"`
	FileID     int32              `json:"fileId,omitempty"`
	Start      int                `json:"start,omitempty"`
	End        int                `json:"end,omitempty"`
	Parent     *wireSource        `json:"parent,omitempty"`
	Pieces     []wireSourcePiece  `json:"pieces,omitempty"`
	FilterPath string             `json:"filterPath,omitempty"`
	FilterLine int                `json:"filterLine,omitempty"`
}

type wireSourcePiece struct {
	Source         wireSource `json:"source"`
	OffsetInConcat int        `json:"offsetInConcat"`
	Length         int        `json:"length"`
}

type wireAttr struct {
	ID      string           `json:"id,omitempty"`
	Classes []string         `json:"classes,omitempty"`
	KV      []pandoc.KV      `json:"kv,omitempty"`
}

type wireNode struct {
	Kind     string      `json:"kind"`
	Attr     *wireAttr   `json:"attr,omitempty"`
	Source   *wireSource `json:"source,omitempty"`
	Children []*wireNode `json:"children,omitempty"`

	// Leaf/scalar payload, variant-specific. Only the field(s)
	// matching Kind are populated.
	Text          string                `json:"text,omitempty"`
	HeadingLevel  *int                  `json:"headingLevel,omitempty"`
	List          *pandoc.ListFields    `json:"list,omitempty"`
	CodeBlock     *pandoc.CodeBlockFields `json:"codeBlock,omitempty"`
	RawFormat     string                `json:"rawFormat,omitempty"`
	RawText       string                `json:"rawText,omitempty"`
	Caption       *wireCaption          `json:"caption,omitempty"`
	Table         *wireTable            `json:"table,omitempty"`
	TableCell     *pandoc.TableCellFields `json:"tableCell,omitempty"`
	Custom        *wireCustom           `json:"custom,omitempty"`
	Link          *pandoc.LinkFields    `json:"link,omitempty"`
	QuoteType     *pandoc.QuoteType     `json:"quoteType,omitempty"`
	MathType      *pandoc.MathType      `json:"mathType,omitempty"`
	Citations     []wireCitation        `json:"citations,omitempty"`
}

type wireCaption struct {
	Short *wireNode `json:"short,omitempty"`
	Long  *wireNode `json:"long,omitempty"`
}

type wireColSpec struct {
	Align pandoc.Alignment `json:"align"`
	Width pandoc.ColWidth  `json:"width"`
}

type wireTableSection struct {
	Attr *wireAttr   `json:"attr,omitempty"`
	Rows []*wireNode `json:"rows"`
}

type wireTableBody struct {
	Attr           *wireAttr   `json:"attr,omitempty"`
	RowHeadColumns int         `json:"rowHeadColumns"`
	HeadRows       []*wireNode `json:"headRows,omitempty"`
	BodyRows       []*wireNode `json:"bodyRows,omitempty"`
}

type wireTable struct {
	ColSpecs []wireColSpec     `json:"colSpecs"`
	Head     *wireTableSection `json:"head,omitempty"`
	Bodies   []wireTableBody   `json:"bodies"`
	Foot     *wireTableSection `json:"foot,omitempty"`
}

type wireCustom struct {
	TypeName string          `json:"typeName"`
	Payload  json.RawMessage `json:"payload,omitempty"`
	Slots    []wireSlot      `json:"slots,omitempty"`
}

type wireSlot struct {
	Name  string      `json:"name"`
	Multi bool        `json:"multi"`
	Nodes []*wireNode `json:"nodes"`
}

type wireCitation struct {
	ID     string              `json:"id"`
	Prefix []*wireNode         `json:"prefix,omitempty"`
	Suffix []*wireNode         `json:"suffix,omitempty"`
	Mode   pandoc.CitationMode `json:"mode"`
}

// EncodeDocument renders doc as its JSON wire form.
func EncodeDocument(doc pandoc.Document) ([]byte, error) {
	return json.Marshal(wireDocument{Meta: doc.Meta, Root: encodeNode(doc.Root)})
}

// DecodeDocument parses a JSON wire-form document. The result carries
// no FileSnapshot; callers that need line/column mapping must attach
// one from the original source bytes separately.
func DecodeDocument(data []byte) (pandoc.Document, error) {
	var wd wireDocument
	if err := json.Unmarshal(data, &wd); err != nil {
		return pandoc.Document{}, fmt.Errorf("pandocjson: decode document: %w", err)
	}
	root, err := decodeNode(wd.Root)
	if err != nil {
		return pandoc.Document{}, err
	}
	return pandoc.Document{Meta: wd.Meta, Root: root}, nil
}

func encodeAttr(a *pandoc.Attr) *wireAttr {
	if a == nil {
		return nil
	}
	return &wireAttr{ID: a.ID, Classes: a.Classes, KV: a.KV}
}

func decodeAttr(w *wireAttr) *pandoc.Attr {
	if w == nil {
		return nil
	}
	return &pandoc.Attr{ID: w.ID, Classes: w.Classes, KV: w.KV}
}

func encodeSource(s sourcemap.SourceInfo) *wireSource {
	switch s.Kind {
	case sourcemap.KindOriginal:
		return &wireSource{Kind: "original", FileID: int32(s.FileID), Start: s.StartOffset, End: s.EndOffset}
	case sourcemap.KindSubstring:
		return &wireSource{Kind: "substring", Parent: encodeSource(*s.Parent), Start: s.StartOffset, End: s.EndOffset}
	case sourcemap.KindConcat:
		pieces := make([]wireSourcePiece, len(s.Pieces))
		for i, p := range s.Pieces {
			pieces[i] = wireSourcePiece{Source: *encodeSource(p.Source), OffsetInConcat: p.OffsetInConcat, Length: p.Length}
		}
		return &wireSource{Kind: "concat", Pieces: pieces}
	case sourcemap.KindFilterProvenance:
		return &wireSource{Kind: "filter", FilterPath: s.FilterPath, FilterLine: s.Line}
	default:
		return &wireSource{Kind: "none"}
	}
}

func decodeSource(w *wireSource) sourcemap.SourceInfo {
	if w == nil {
		return sourcemap.Zero
	}
	switch w.Kind {
	case "original":
		return sourcemap.Original(sourcemap.FileID(w.FileID), w.Start, w.End)
	case "substring":
		return sourcemap.Substring(decodeSource(w.Parent), w.Start, w.End)
	case "concat":
		pieces := make([]sourcemap.SourcePiece, len(w.Pieces))
		for i, p := range w.Pieces {
			pieces[i] = sourcemap.SourcePiece{Source: decodeSource(&p.Source), OffsetInConcat: p.OffsetInConcat, Length: p.Length}
		}
		return sourcemap.Concat(pieces)
	case "filter":
		return sourcemap.FilterProvenance(w.FilterPath, w.FilterLine)
	default:
		return sourcemap.Zero
	}
}

func encodeNodes(nodes []*pandoc.Node) []*wireNode {
	out := make([]*wireNode, len(nodes))
	for i, n := range nodes {
		out[i] = encodeNode(n)
	}
	return out
}

func decodeNodes(nodes []*wireNode) ([]*pandoc.Node, error) {
	out := make([]*pandoc.Node, len(nodes))
	for i, n := range nodes {
		node, err := decodeNode(n)
		if err != nil {
			return nil, err
		}
		out[i] = node
	}
	return out, nil
}

//nolint:gocyclo // one encode dispatch mirroring hash.go's variant switch
func encodeNode(n *pandoc.Node) *wireNode {
	if n == nil {
		return nil
	}
	w := &wireNode{
		Kind:     n.Kind.String(),
		Attr:     encodeAttr(n.Attr),
		Source:   encodeSource(n.Source),
		Children: encodeNodes(n.Children()),
	}

	switch n.Kind {
	case pandoc.NodeHeader:
		lvl := n.Block.HeadingLevel
		w.HeadingLevel = &lvl
	case pandoc.NodeOrderedList, pandoc.NodeBulletList:
		w.List = n.Block.List
	case pandoc.NodeCodeBlock:
		w.CodeBlock = n.Block.CodeBlock
	case pandoc.NodeRawBlock:
		w.RawFormat = n.Block.RawFormat
		w.RawText = n.Block.RawText
	case pandoc.NodeDiv, pandoc.NodeFigure, pandoc.NodeTable:
		w.Caption = encodeCaption(n.Block.Caption)
	case pandoc.NodeTableCell:
		w.TableCell = n.Block.TableCell
	case pandoc.NodeCustomBlock:
		w.Custom = encodeCustom(n.Block.Custom)
	case pandoc.NodeStr:
		w.Text = string(n.Inline.Text)
	case pandoc.NodeCode, pandoc.NodeMath, pandoc.NodeRawInline:
		w.Text = string(n.Inline.Text)
		if n.Kind == pandoc.NodeMath {
			mt := n.Inline.MathType
			w.MathType = &mt
		}
		if n.Kind == pandoc.NodeRawInline {
			w.RawFormat = n.Inline.RawFormat
		}
	case pandoc.NodeQuoted:
		qt := n.Inline.QuoteType
		w.QuoteType = &qt
	case pandoc.NodeLink, pandoc.NodeImage:
		w.Link = n.Inline.Link
	case pandoc.NodeCite:
		w.Citations = encodeCitations(n.Inline.Citations)
	case pandoc.NodeCustomInline:
		w.Custom = encodeCustom(n.Inline.Custom)
	}

	if n.Kind == pandoc.NodeTable {
		w.Table = encodeTable(n.Block.Table)
	}

	return w
}

func encodeCaption(c *pandoc.CaptionFields) *wireCaption {
	if c == nil {
		return nil
	}
	return &wireCaption{Short: encodeNode(c.Short), Long: encodeNode(c.Long)}
}

func encodeCustom(c *pandoc.CustomFields) *wireCustom {
	if c == nil {
		return nil
	}
	slots := make([]wireSlot, len(c.Slots))
	for i, s := range c.Slots {
		slots[i] = wireSlot{Name: s.Name, Multi: s.Multi, Nodes: encodeNodes(s.Nodes)}
	}
	return &wireCustom{TypeName: c.TypeName, Payload: c.Payload, Slots: slots}
}

func encodeCitations(cites []pandoc.Citation) []wireCitation {
	out := make([]wireCitation, len(cites))
	for i, c := range cites {
		out[i] = wireCitation{ID: c.ID, Prefix: encodeNodes(c.Prefix), Suffix: encodeNodes(c.Suffix), Mode: c.Mode}
	}
	return out
}

func encodeTable(t *pandoc.TableFields) *wireTable {
	if t == nil {
		return nil
	}
	colSpecs := make([]wireColSpec, len(t.ColSpecs))
	for i, cs := range t.ColSpecs {
		colSpecs[i] = wireColSpec{Align: cs.Align, Width: cs.Width}
	}
	bodies := make([]wireTableBody, len(t.Bodies))
	for i, b := range t.Bodies {
		bodies[i] = wireTableBody{
			Attr: encodeAttr(b.Attr), RowHeadColumns: b.RowHeadColumns,
			HeadRows: encodeNodes(b.HeadRows), BodyRows: encodeNodes(b.BodyRows),
		}
	}
	return &wireTable{
		ColSpecs: colSpecs,
		Head:     encodeTableSection(t.Head),
		Bodies:   bodies,
		Foot:     encodeTableSection(t.Foot),
	}
}

func encodeTableSection(s *pandoc.TableSection) *wireTableSection {
	if s == nil {
		return nil
	}
	return &wireTableSection{Attr: encodeAttr(s.Attr), Rows: encodeNodes(s.Rows)}
}

//nolint:gocyclo // one decode dispatch mirroring encodeNode
func decodeNode(w *wireNode) (*pandoc.Node, error) {
	if w == nil {
		return nil, nil
	}
	kind, ok := pandoc.ParseNodeKind(w.Kind)
	if !ok {
		return nil, fmt.Errorf("pandocjson: unknown node kind %q", w.Kind)
	}

	n := pandoc.NewNode(kind)
	n.Attr = decodeAttr(w.Attr)
	n.Source = decodeSource(w.Source)

	switch kind {
	case pandoc.NodeHeader:
		lvl := 0
		if w.HeadingLevel != nil {
			lvl = *w.HeadingLevel
		}
		n.Block = &pandoc.BlockFields{HeadingLevel: lvl}
	case pandoc.NodeOrderedList, pandoc.NodeBulletList:
		n.Block = &pandoc.BlockFields{List: w.List}
	case pandoc.NodeCodeBlock:
		n.Block = &pandoc.BlockFields{CodeBlock: w.CodeBlock}
	case pandoc.NodeRawBlock:
		n.Block = &pandoc.BlockFields{RawFormat: w.RawFormat, RawText: w.RawText}
	case pandoc.NodeDiv, pandoc.NodeFigure:
		cap, err := decodeCaption(w.Caption)
		if err != nil {
			return nil, err
		}
		n.Block = &pandoc.BlockFields{Caption: cap}
	case pandoc.NodeTable:
		cap, err := decodeCaption(w.Caption)
		if err != nil {
			return nil, err
		}
		table, err := decodeTable(w.Table)
		if err != nil {
			return nil, err
		}
		n.Block = &pandoc.BlockFields{Caption: cap, Table: table}
	case pandoc.NodeTableCell:
		n.Block = &pandoc.BlockFields{TableCell: w.TableCell}
	case pandoc.NodeCustomBlock:
		custom, err := decodeCustom(w.Custom)
		if err != nil {
			return nil, err
		}
		n.Block = &pandoc.BlockFields{Custom: custom}
	case pandoc.NodeStr:
		n.Inline = &pandoc.InlineFields{Text: []byte(w.Text)}
	case pandoc.NodeCode, pandoc.NodeMath, pandoc.NodeRawInline:
		fields := &pandoc.InlineFields{Text: []byte(w.Text), RawFormat: w.RawFormat}
		if w.MathType != nil {
			fields.MathType = *w.MathType
		}
		n.Inline = fields
	case pandoc.NodeQuoted:
		qt := pandoc.SingleQuote
		if w.QuoteType != nil {
			qt = *w.QuoteType
		}
		n.Inline = &pandoc.InlineFields{QuoteType: qt}
	case pandoc.NodeLink, pandoc.NodeImage:
		n.Inline = &pandoc.InlineFields{Link: w.Link}
	case pandoc.NodeCite:
		cites, err := decodeCitations(w.Citations)
		if err != nil {
			return nil, err
		}
		n.Inline = &pandoc.InlineFields{Citations: cites}
	case pandoc.NodeCustomInline:
		custom, err := decodeCustom(w.Custom)
		if err != nil {
			return nil, err
		}
		n.Inline = &pandoc.InlineFields{Custom: custom}
	}

	children, err := decodeNodes(w.Children)
	if err != nil {
		return nil, err
	}
	pandoc.AppendChildren(n, children)
	return n, nil
}

func decodeCaption(w *wireCaption) (*pandoc.CaptionFields, error) {
	if w == nil {
		return nil, nil
	}
	short, err := decodeNode(w.Short)
	if err != nil {
		return nil, err
	}
	long, err := decodeNode(w.Long)
	if err != nil {
		return nil, err
	}
	return &pandoc.CaptionFields{Short: short, Long: long}, nil
}

func decodeCustom(w *wireCustom) (*pandoc.CustomFields, error) {
	if w == nil {
		return nil, nil
	}
	slots := make([]pandoc.Slot, len(w.Slots))
	for i, s := range w.Slots {
		nodes, err := decodeNodes(s.Nodes)
		if err != nil {
			return nil, err
		}
		slots[i] = pandoc.Slot{Name: s.Name, Multi: s.Multi, Nodes: nodes}
	}
	return &pandoc.CustomFields{TypeName: w.TypeName, Payload: w.Payload, Slots: slots}, nil
}

func decodeCitations(ws []wireCitation) ([]pandoc.Citation, error) {
	out := make([]pandoc.Citation, len(ws))
	for i, w := range ws {
		prefix, err := decodeNodes(w.Prefix)
		if err != nil {
			return nil, err
		}
		suffix, err := decodeNodes(w.Suffix)
		if err != nil {
			return nil, err
		}
		out[i] = pandoc.Citation{ID: w.ID, Prefix: prefix, Suffix: suffix, Mode: w.Mode}
	}
	return out, nil
}

func decodeTable(w *wireTable) (*pandoc.TableFields, error) {
	if w == nil {
		return nil, nil
	}
	colSpecs := make([]pandoc.ColSpec, len(w.ColSpecs))
	for i, cs := range w.ColSpecs {
		colSpecs[i] = pandoc.ColSpec{Align: cs.Align, Width: cs.Width}
	}
	head, err := decodeTableSection(w.Head)
	if err != nil {
		return nil, err
	}
	foot, err := decodeTableSection(w.Foot)
	if err != nil {
		return nil, err
	}
	bodies := make([]pandoc.TableBody, len(w.Bodies))
	for i, b := range w.Bodies {
		headRows, err := decodeNodes(b.HeadRows)
		if err != nil {
			return nil, err
		}
		bodyRows, err := decodeNodes(b.BodyRows)
		if err != nil {
			return nil, err
		}
		bodies[i] = pandoc.TableBody{
			Attr: decodeAttr(b.Attr), RowHeadColumns: b.RowHeadColumns,
			HeadRows: headRows, BodyRows: bodyRows,
		}
	}
	return &pandoc.TableFields{ColSpecs: colSpecs, Head: head, Bodies: bodies, Foot: foot}, nil
}

func decodeTableSection(w *wireTableSection) (*pandoc.TableSection, error) {
	if w == nil {
		return nil, nil
	}
	rows, err := decodeNodes(w.Rows)
	if err != nil {
		return nil, err
	}
	return &pandoc.TableSection{Attr: decodeAttr(w.Attr), Rows: rows}, nil
}
