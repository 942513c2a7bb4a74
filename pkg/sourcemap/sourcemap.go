// Package sourcemap provides provenance tracking for AST nodes.
//
// SourceInfo values are opaque to the reconciliation core: reconcile
// only moves them between nodes, never interprets their contents. This
// package exists so the rest of the module has a concrete type to move
// around; nothing here depends on pkg/pandoc or pkg/reconcile.
package sourcemap

// FileID identifies a source file within a reconciliation run.
// File 0 is conventionally the original document; file 1 the executed
// document, but callers may use any stable numbering.
type FileID int32

// Kind discriminates the variant held by a SourceInfo value.
type Kind uint8

const (
	// KindOriginal is a direct byte-offset position in a source file.
	KindOriginal Kind = iota
	// KindSubstring is a sub-range of a parent SourceInfo's text.
	KindSubstring
	// KindConcat combines multiple SourceInfo pieces, preserving
	// provenance when text from different origins is coalesced.
	KindConcat
	// KindFilterProvenance marks content synthesized by a filter or
	// engine, tracked by filter path and line for diagnostics.
	KindFilterProvenance
)

// SourceInfo is a tagged union over the four ways a node's provenance
// can be described. Exactly the fields for Kind are meaningful; the
// others are zero.
type SourceInfo struct {
	Kind Kind

	// KindOriginal
	FileID      FileID
	StartOffset int
	EndOffset   int

	// KindSubstring (StartOffset/EndOffset above are relative to Parent)
	Parent *SourceInfo

	// KindConcat
	Pieces []SourcePiece

	// KindFilterProvenance
	FilterPath string
	Line       int
}

// SourcePiece is one piece of a Concat SourceInfo.
type SourcePiece struct {
	Source       SourceInfo
	OffsetInConcat int
	Length         int
}

// Original constructs a SourceInfo pointing directly at a file.
func Original(file FileID, start, end int) SourceInfo {
	return SourceInfo{Kind: KindOriginal, FileID: file, StartOffset: start, EndOffset: end}
}

// Substring constructs a SourceInfo relative to a parent SourceInfo.
func Substring(parent SourceInfo, start, end int) SourceInfo {
	p := parent
	return SourceInfo{Kind: KindSubstring, Parent: &p, StartOffset: start, EndOffset: end}
}

// Concat constructs a SourceInfo from concatenated pieces, computing
// each piece's offset within the concatenation.
func Concat(pieces []SourcePiece) SourceInfo {
	offset := 0
	out := make([]SourcePiece, len(pieces))
	for i, p := range pieces {
		p.OffsetInConcat = offset
		out[i] = p
		offset += p.Length
	}
	return SourceInfo{Kind: KindConcat, Pieces: out}
}

// FilterProvenance constructs a SourceInfo for content synthesized by
// a filter or engine at the given path and line.
func FilterProvenance(path string, line int) SourceInfo {
	return SourceInfo{Kind: KindFilterProvenance, FilterPath: path, Line: line}
}

// Zero is the default SourceInfo value: KindOriginal pointing at file
// 0, offset 0..0.
var Zero = SourceInfo{Kind: KindOriginal}

// Equal reports whether two SourceInfo values are identical, recursing
// through Substring/Concat. Used only by tests that check provenance
// preservation; never by the reconciler itself.
func (s SourceInfo) Equal(o SourceInfo) bool {
	if s.Kind != o.Kind {
		return false
	}
	switch s.Kind {
	case KindOriginal:
		return s.FileID == o.FileID && s.StartOffset == o.StartOffset && s.EndOffset == o.EndOffset
	case KindSubstring:
		if s.StartOffset != o.StartOffset || s.EndOffset != o.EndOffset {
			return false
		}
		if (s.Parent == nil) != (o.Parent == nil) {
			return false
		}
		if s.Parent == nil {
			return true
		}
		return s.Parent.Equal(*o.Parent)
	case KindConcat:
		if len(s.Pieces) != len(o.Pieces) {
			return false
		}
		for i := range s.Pieces {
			if s.Pieces[i].OffsetInConcat != o.Pieces[i].OffsetInConcat ||
				s.Pieces[i].Length != o.Pieces[i].Length ||
				!s.Pieces[i].Source.Equal(o.Pieces[i].Source) {
				return false
			}
		}
		return true
	case KindFilterProvenance:
		return s.FilterPath == o.FilterPath && s.Line == o.Line
	default:
		return false
	}
}
