// Package tplast provides the template representation vuelint rules work on.
// It defines a lossless view of a file together with the element tree of
// its template body:
// - FileSnapshot: the complete file plus the located template body
// - Node: elements, text and comments of the template body
// - Attribute: key and value ranges of a start-tag attribute
// - ParseError: tokenizer errors such as an unexpected end of file
package tplast

// FileSnapshot is an immutable, lossless view of a file at a specific time.
// All ranges are absolute byte offsets into Content.
type FileSnapshot struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full file bytes.
	Content []byte

	// Lines contains metadata for each line in the file.
	Lines []LineInfo

	// Template is the byte range of the template body. For HTML files it
	// covers the whole content.
	Template SourceRange

	// Lang is the template's lang attribute. Empty means HTML.
	Lang string

	// Root is the Document node of the template body.
	Root *Node

	// Errors lists the problems found while tokenizing the template body.
	Errors []ParseError
}

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// NewFileSnapshot creates a new FileSnapshot from content.
// It builds the line index and an empty Document root; locating and
// tokenizing the template body is left to a Parser.
func NewFileSnapshot(path string, content []byte) *FileSnapshot {
	snapshot := &FileSnapshot{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
	snapshot.Root = NewNode(NodeDocument)
	snapshot.Root.File = snapshot
	return snapshot
}

// Text returns the source bytes of r, or nil when r lies outside Content.
func (f *FileSnapshot) Text(r SourceRange) []byte {
	if r.StartOffset < 0 || r.EndOffset > len(f.Content) || r.StartOffset > r.EndOffset {
		return nil
	}
	return f.Content[r.StartOffset:r.EndOffset]
}

// Position converts r to line/column positions.
func (f *FileSnapshot) Position(r SourceRange) SourcePosition {
	startLine, startCol := f.LineAt(r.StartOffset)
	endLine, endCol := f.LineAt(r.EndOffset)

	return SourcePosition{
		StartLine:   startLine,
		StartColumn: startCol,
		EndLine:     endLine,
		EndColumn:   endCol,
	}
}
