package mdreader

import gast "github.com/yuin/goldmark/ast"

// nodeByteRange extracts a goldmark node's [start, end) byte range in
// the source content. Returns (-1, -1) when no range can be determined.
func nodeByteRange(gmNode gast.Node, content []byte) (int, int) {
	if gmNode.Type() == gast.TypeInline {
		return inlineByteRange(gmNode, content)
	}

	lines := gmNode.Lines()
	if lines.Len() == 0 {
		return -1, -1
	}
	first := lines.At(0)
	last := lines.At(lines.Len() - 1)
	return first.Start, last.Stop
}

func inlineByteRange(gmNode gast.Node, content []byte) (int, int) {
	start, end := -1, -1

	if rawHTML, ok := gmNode.(*gast.RawHTML); ok {
		segs := rawHTML.Segments
		for i := range segs.Len() {
			seg := segs.At(i)
			if start == -1 || seg.Start < start {
				start = seg.Start
			}
			if seg.Stop > end {
				end = seg.Stop
			}
		}
		return start, end
	}

	if t, ok := gmNode.(*gast.Text); ok {
		seg := t.Segment
		return seg.Start, seg.Stop
	}

	for child := gmNode.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*gast.Text); ok {
			seg := t.Segment
			if start == -1 || seg.Start < start {
				start = seg.Start
			}
			if seg.Stop > end {
				end = seg.Stop
			}
		}
	}

	_ = content
	return start, end
}

// linesValue concatenates a block node's source lines verbatim.
func linesValue(gmNode gast.Node, content []byte) []byte {
	lines := gmNode.Lines()
	var out []byte
	for i := range lines.Len() {
		out = append(out, lines.At(i).Value(content)...)
	}
	return out
}

// detectFenceStyle recovers a fenced code block's fence character and
// length by scanning the source line that precedes its content.
func detectFenceStyle(cb *gast.FencedCodeBlock, content []byte) (byte, int) {
	lines := cb.Lines()
	if lines.Len() == 0 {
		return '`', 3
	}

	searchStart := lines.At(0).Start
	lineStart := searchStart
	for lineStart > 0 && content[lineStart-1] != '\n' {
		lineStart--
	}
	if lineStart == 0 {
		return '`', 3
	}

	prevLineEnd := lineStart - 1
	prevLineStart := prevLineEnd
	for prevLineStart > 0 && content[prevLineStart-1] != '\n' {
		prevLineStart--
	}
	return extractFenceFromLine(content, prevLineStart, prevLineEnd)
}

func extractFenceFromLine(content []byte, start, end int) (byte, int) {
	if start >= end || start >= len(content) {
		return '`', 3
	}

	pos := start
	for pos < end && pos < len(content) && (content[pos] == ' ' || content[pos] == '\t') {
		pos++
	}
	if pos >= end || pos >= len(content) {
		return '`', 3
	}

	fenceChar := content[pos]
	if fenceChar != '`' && fenceChar != '~' {
		return '`', 3
	}

	length := 0
	for pos < end && pos < len(content) && content[pos] == fenceChar {
		length++
		pos++
	}
	if length < 3 {
		length = 3
	}
	return fenceChar, length
}
