package pandoc

import "sort"

// FileSnapshot is an immutable view of a source file: its raw bytes
// plus a line index, used to turn byte offsets carried in SourceInfo
// into human-readable line/column positions for diagnostics.
type FileSnapshot struct {
	Path    string
	Content []byte
	Lines   []LineInfo
}

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	StartOffset  int
	NewlineStart int
	EndOffset    int
}

// NewFileSnapshot builds a FileSnapshot from file content, computing
// the line index eagerly.
func NewFileSnapshot(path string, content []byte) *FileSnapshot {
	return &FileSnapshot{Path: path, Content: content, Lines: BuildLines(content)}
}

// BuildLines computes line metadata from file content, handling both
// LF and CRLF line endings.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx, char := range content {
		if char == '\n' {
			newlineStart := idx
			if idx > 0 && content[idx-1] == '\r' {
				newlineStart = idx - 1
			}
			lines = append(lines, LineInfo{
				StartOffset:  lineStart,
				NewlineStart: newlineStart,
				EndOffset:    idx + 1,
			})
			lineStart = idx + 1
		}
	}

	if lineStart <= len(content) {
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: len(content),
			EndOffset:    len(content),
		})
	}

	return lines
}

// LineCount returns the number of lines in the file.
func (f *FileSnapshot) LineCount() int { return len(f.Lines) }

// LineAt converts a byte offset to a 1-based (line, column) pair.
// Column counts bytes. Returns (0, 0) for a negative offset or an empty
// file; an offset at or past the end of the content maps onto the last
// line.
func (f *FileSnapshot) LineAt(offset int) (int, int) {
	if offset < 0 || len(f.Lines) == 0 {
		return 0, 0
	}

	if offset >= len(f.Content) {
		last := f.Lines[len(f.Lines)-1]
		return len(f.Lines), offset - last.StartOffset + 1
	}

	lineIdx := sort.Search(len(f.Lines), func(i int) bool {
		return f.Lines[i].EndOffset > offset
	})
	if lineIdx >= len(f.Lines) {
		lineIdx = len(f.Lines) - 1
	}

	line := f.Lines[lineIdx]
	if offset < line.StartOffset {
		return 0, 0
	}
	return lineIdx + 1, offset - line.StartOffset + 1
}

// LineContent returns the content of a 1-based line number, excluding
// the line terminator. Returns nil if out of range.
func (f *FileSnapshot) LineContent(line int) []byte {
	if line < 1 || line > len(f.Lines) {
		return nil
	}
	info := f.Lines[line-1]
	return f.Content[info.StartOffset:info.NewlineStart]
}
