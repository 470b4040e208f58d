package tplast

import (
	"bytes"
	"sort"
)

// BuildLines constructs line metadata from file content.
// LF and CRLF line endings are both recognised; a trailing line without a
// newline is always present, so "a\n" has two lines.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	lines := make([]LineInfo, 0, bytes.Count(content, []byte{'\n'})+1)
	start := 0

	for {
		idx := bytes.IndexByte(content[start:], '\n')
		if idx < 0 {
			break
		}
		nl := start + idx
		newlineStart := nl
		if nl > start && content[nl-1] == '\r' {
			newlineStart = nl - 1
		}
		lines = append(lines, LineInfo{
			StartOffset:  start,
			NewlineStart: newlineStart,
			EndOffset:    nl + 1,
		})
		start = nl + 1
	}

	return append(lines, LineInfo{
		StartOffset:  start,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})
}

// LineCount returns the number of lines in the file.
func (f *FileSnapshot) LineCount() int {
	return len(f.Lines)
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Column counts bytes, not runes. Offsets at or past the end of content map
// onto the last line. Returns (0, 0) for negative offsets or empty files.
func (f *FileSnapshot) LineAt(offset int) (int, int) {
	if offset < 0 || len(f.Lines) == 0 {
		return 0, 0
	}

	if offset >= len(f.Content) {
		last := f.Lines[len(f.Lines)-1]
		return len(f.Lines), offset - last.StartOffset + 1
	}

	idx := sort.Search(len(f.Lines), func(i int) bool {
		return f.Lines[i].EndOffset > offset
	})
	if idx >= len(f.Lines) {
		idx = len(f.Lines) - 1
	}

	return idx + 1, offset - f.Lines[idx].StartOffset + 1
}

// Offset converts 1-based line and column numbers to a byte offset.
// Column may point one past the line's last byte.
func (f *FileSnapshot) Offset(line, col int) (int, bool) {
	if line < 1 || line > len(f.Lines) || col < 1 {
		return 0, false
	}

	info := f.Lines[line-1]
	offset := info.StartOffset + col - 1
	if offset > info.EndOffset {
		return 0, false
	}

	return offset, true
}

// LineContent returns the content of a 1-based line number, excluding the newline.
// Returns nil if the line number is out of range.
func (f *FileSnapshot) LineContent(line int) []byte {
	if line < 1 || line > len(f.Lines) {
		return nil
	}

	info := f.Lines[line-1]
	return f.Content[info.StartOffset:info.NewlineStart]
}
