// Package vue provides a lint.Parser for Vue single-file components and
// plain HTML documents.
//
// For .vue files the parser locates the first top-level <template> block and
// tokenizes its body; for HTML files the whole content is the body. Only the
// parts of HTML tokenization that affect attribute spans are implemented:
// tags, attributes, comments, CDATA, doctypes and the content of raw text
// elements.
package vue

import (
	"context"
	"fmt"

	"github.com/yaklabco/vuelint/pkg/langdetect"
	"github.com/yaklabco/vuelint/pkg/tplast"
)

// Parser implements lint.Parser. It holds no state and is safe for
// concurrent use.
type Parser struct{}

// New creates a new template parser.
func New() *Parser {
	return &Parser{}
}

// Parse converts raw file bytes into a FileSnapshot.
//
// The method:
//  1. Checks for context cancellation.
//  2. Builds a FileSnapshot shell with path, content, and lines.
//  3. Detects whether the file is a single-file component or HTML.
//  4. Locates the template body and tokenizes it into the element tree.
//  5. Sets File back-references throughout the tree.
//
// Files without a template block, and templates in a language other than
// HTML, yield an empty tree. Tokenizer problems are recorded in
// snapshot.Errors rather than returned.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*tplast.FileSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	snapshot := tplast.NewFileSnapshot(path, copyContent(content))

	var err error
	switch langdetect.Detect(path, snapshot.Content) {
	case langdetect.Vue:
		err = p.parseComponent(ctx, snapshot)
	case langdetect.HTML:
		err = p.parseDocument(ctx, snapshot)
	case langdetect.Unknown:
	}
	if err != nil {
		return nil, err
	}

	tplast.SetFile(snapshot.Root, snapshot)
	return snapshot, nil
}

// parseComponent tokenizes the template block of a single-file component.
func (p *Parser) parseComponent(ctx context.Context, snapshot *tplast.FileSnapshot) error {
	block, found := findTemplate(snapshot.Content)
	if !found {
		end := len(snapshot.Content)
		snapshot.Template = tplast.SourceRange{StartOffset: end, EndOffset: end}
		return nil
	}

	snapshot.Template = block.body
	snapshot.Errors = append(snapshot.Errors, block.errs...)
	tplast.AppendChild(snapshot.Root, block.element)
	block.element.File = snapshot

	if lang := block.element.Attr("lang"); lang != nil {
		snapshot.Lang = unquoteValue(lang.ValueText())
	}
	if !langdetect.IsHTMLTemplate(snapshot.Lang) {
		return nil
	}

	tok := newTokenizer(snapshot.Content, block.body, snapshot.Root)
	tok.stack = append(tok.stack, block.element)
	if err := tok.run(ctx); err != nil {
		return err
	}
	block.element.Range.EndOffset = block.closeEnd

	snapshot.Errors = append(snapshot.Errors, tok.errs...)
	return nil
}

// parseDocument tokenizes a whole HTML document.
func (p *Parser) parseDocument(ctx context.Context, snapshot *tplast.FileSnapshot) error {
	snapshot.Template = tplast.SourceRange{StartOffset: 0, EndOffset: len(snapshot.Content)}

	tok := newTokenizer(snapshot.Content, snapshot.Template, snapshot.Root)
	if err := tok.run(ctx); err != nil {
		return err
	}

	snapshot.Errors = append(snapshot.Errors, tok.errs...)
	return nil
}

// unquoteValue strips the delimiters of a quoted attribute value.
func unquoteValue(raw string) string {
	if len(raw) >= 2 && (raw[0] == '"' || raw[0] == '\'') && raw[len(raw)-1] == raw[0] {
		return raw[1 : len(raw)-1]
	}
	return raw
}

// copyContent creates a copy of the content slice.
func copyContent(content []byte) []byte {
	if content == nil {
		return nil
	}
	result := make([]byte, len(content))
	copy(result, content)
	return result
}
