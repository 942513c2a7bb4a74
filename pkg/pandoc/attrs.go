package pandoc

import "encoding/json"

// KV is an ordered key-value attribute pair. A slice rather than a map
// so hashing and equality see a stable iteration order without needing
// to sort at every comparison.
type KV struct {
	Key   string
	Value string
}

// Attr is the commonmark-style attribute set carried by attr-bearing
// block and inline nodes: an id, an ordered class list, and an ordered
// key-value map.
type Attr struct {
	ID      string
	Classes []string
	KV      []KV
}

// IsEmpty reports whether the attribute set carries no information.
func (a *Attr) IsEmpty() bool {
	return a == nil || (a.ID == "" && len(a.Classes) == 0 && len(a.KV) == 0)
}

// QuoteType distinguishes single- and double-quoted Quoted inlines.
type QuoteType uint8

const (
	SingleQuote QuoteType = iota
	DoubleQuote
)

// MathType distinguishes inline and display math.
type MathType uint8

const (
	InlineMath MathType = iota
	DisplayMath
)

// CitationMode controls how a Cite's citation is rendered.
type CitationMode uint8

const (
	CitationNormal CitationMode = iota
	CitationAuthorInText
	CitationSuppressAuthor
)

// Citation is one entry in a Cite inline's citation list.
type Citation struct {
	ID     string
	Prefix []*Node // inline sequence
	Suffix []*Node // inline sequence
	Mode   CitationMode
}

// Alignment is a table column or cell alignment.
type Alignment uint8

const (
	AlignDefault Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// ColWidth is a table column width specifier.
type ColWidth struct {
	Default bool // true for ColWidthDefault, ignoring Value
	Value   float64
}

// ColSpec pairs a column's alignment with its width.
type ColSpec struct {
	Align Alignment
	Width ColWidth
}

// ReferenceStyle records the Markdown syntax a link/image used, for
// round-tripping through a front end; it plays no role in
// reconciliation itself (not part of the structural hash).
type ReferenceStyle uint8

const (
	RefStyleInline ReferenceStyle = iota
	RefStyleFull
	RefStyleCollapsed
	RefStyleShortcut
	RefStyleAutolink
)

// BlockFields holds variant-specific fields for block-level nodes.
// Exactly one group of fields is meaningful, selected by the owning
// Node's Kind.
type BlockFields struct {
	// NodeHeader
	HeadingLevel int

	// NodeOrderedList / NodeBulletList
	List *ListFields

	// NodeCodeBlock
	CodeBlock *CodeBlockFields

	// NodeRawBlock
	RawFormat string
	RawText   string

	// NodeDiv / NodeFigure / NodeTableCell share Attr (on Node) plus,
	// for NodeFigure and NodeTable, a caption.
	Caption *CaptionFields

	// NodeTable
	Table *TableFields

	// NodeTableCell
	TableCell *TableCellFields

	// NodeDefinitionItem: definitions attached to a term (handled via
	// children directly; no extra fields needed).

	// NodeCustomBlock
	Custom *CustomFields
}

// ListFields holds attributes for ordered/bullet list nodes.
type ListFields struct {
	Ordered      bool
	BulletMarker string // "-", "+", "*"
	StartNumber  int
	Delimiter    string // "." or ")"
	Tight        bool
}

// CodeBlockFields holds attributes for code block nodes.
type CodeBlockFields struct {
	FenceChar   byte
	FenceLength int
	Info        string
	Indented    bool
	Text        string
	// EngineTag is the executable-cell engine identifier parsed out of
	// Info (e.g. "r", "python", "ojs"), empty for a plain code block.
	EngineTag string
}

// CaptionFields holds a Pandoc caption: an optional short inline form
// and an optional long block form, each represented as a child Node
// (NodeCaptionShort / NodeCaptionLong) so the reconciler can recurse
// into them uniformly.
type CaptionFields struct {
	Short *Node
	Long  *Node
}

// TableFields holds table structure.
type TableFields struct {
	ColSpecs []ColSpec
	Head     *TableSection
	Bodies   []TableBody
	Foot     *TableSection
}

// TableSection is a homogeneous run of table rows (head or foot).
type TableSection struct {
	Attr *Attr
	Rows []*Node // NodeTableRow
}

// TableBody is one table body group, with a row-head column count.
type TableBody struct {
	Attr           *Attr
	RowHeadColumns int
	HeadRows       []*Node // NodeTableRow
	BodyRows       []*Node // NodeTableRow
}

// TableCellFields holds attributes for a NodeTableCell.
type TableCellFields struct {
	Alignment Alignment
	RowSpan   int
	ColSpan   int
}

// CustomFields holds a custom block's or inline's type name, extra
// JSON-serializable payload, and named slots.
type CustomFields struct {
	TypeName string
	Payload  json.RawMessage
	Slots    []Slot
}

// Slot is one named slot of a custom node, holding either a single
// child or an ordered sequence of children.
type Slot struct {
	Name  string
	Multi bool
	Nodes []*Node
}

// LinkFields holds attributes for Link and Image inlines.
type LinkFields struct {
	Destination    string
	Title          string
	ReferenceLabel string
	ReferenceStyle ReferenceStyle
}

// InlineFields holds variant-specific fields for inline-level nodes.
type InlineFields struct {
	// NodeStr, NodeCode, NodeRawInline, NodeMath
	Text []byte

	// NodeLink / NodeImage
	Link *LinkFields

	// NodeEmph.../NodeSuperscript etc. carry no extra fields beyond
	// Attr (when present) and children.

	// NodeQuoted
	QuoteType QuoteType

	// NodeMath
	MathType MathType

	// NodeRawInline
	RawFormat string

	// NodeCite
	Citations []Citation

	// NodeNote: content lives in children (blocks). No extra field
	// needed beyond the node's own children.

	// NodeCustomInline
	Custom *CustomFields
}
