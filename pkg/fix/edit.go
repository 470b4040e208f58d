// Package fix models byte-range replacements and applies them to file content.
//
// Rules describe fixes as TextEdits. The lint pipeline collects them, drops the
// ones that collide, applies the rest in a single pass and renders a unified
// diff of the outcome.
package fix

import "github.com/yaklabco/vuelint/pkg/quotes"

// TextEdit replaces the bytes [StartOffset, EndOffset) with NewText.
type TextEdit struct {
	StartOffset int
	EndOffset   int
	NewText     string
}

// Len returns the number of bytes the edit replaces.
func (e TextEdit) Len() int {
	return e.EndOffset - e.StartOffset
}

// FromQuoteFix converts a quote fix into a TextEdit.
func FromQuoteFix(f quotes.Fix) TextEdit {
	return TextEdit{
		StartOffset: f.Span.Start,
		EndOffset:   f.Span.End,
		NewText:     f.Text,
	}
}

// EditBuilder collects the edits a single rule produces for one file.
type EditBuilder struct {
	Edits []TextEdit
}

// NewEditBuilder returns an empty builder.
func NewEditBuilder() *EditBuilder {
	return &EditBuilder{Edits: make([]TextEdit, 0, 1)}
}

// ReplaceRange replaces bytes [start, end) with newText.
func (b *EditBuilder) ReplaceRange(start, end int, newText string) {
	b.Edits = append(b.Edits, TextEdit{StartOffset: start, EndOffset: end, NewText: newText})
}

// ReplaceQuoteFix adds the edit described by a quote fix.
func (b *EditBuilder) ReplaceQuoteFix(f quotes.Fix) {
	b.Edits = append(b.Edits, FromQuoteFix(f))
}

// Insert inserts text at offset.
func (b *EditBuilder) Insert(offset int, text string) {
	b.ReplaceRange(offset, offset, text)
}

// Delete removes bytes [start, end).
func (b *EditBuilder) Delete(start, end int) {
	b.ReplaceRange(start, end, "")
}

// Empty reports whether no edits were recorded.
func (b *EditBuilder) Empty() bool {
	return b == nil || len(b.Edits) == 0
}
