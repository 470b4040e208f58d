package vue

import (
	"bytes"
	"strings"

	"github.com/yaklabco/vuelint/pkg/tplast"
)

const templateTag = "template"

// templateBlock is the first top-level <template> block of a single-file
// component.
type templateBlock struct {
	// element is the <template> element with its attributes.
	element *tplast.Node

	// body is the range between the start tag and the matching end tag (or
	// the end of the file when the end tag is missing).
	body tplast.SourceRange

	// closeEnd is the offset just after the end tag, or the body end.
	closeEnd int

	// errs holds errors found in the start tag.
	errs []tplast.ParseError
}

// findTemplate locates the first top-level <template> block in content.
// Other top-level blocks are skipped as raw text. It returns false when
// there is no template block.
func findTemplate(content []byte) (templateBlock, bool) {
	pos := 0
	for pos < len(content) {
		lt := bytes.IndexByte(content[pos:], '<')
		if lt < 0 {
			return templateBlock{}, false
		}
		pos += lt
		rest := content[pos+1:]

		switch {
		case bytes.HasPrefix(rest, commentOpen):
			idx := bytes.Index(content[pos+1+len(commentOpen):], commentClose)
			if idx < 0 {
				return templateBlock{}, false
			}
			pos += 1 + len(commentOpen) + idx + len(commentClose)
		case len(rest) > 0 && isASCIIAlpha(rest[0]):
			name := tagName(content, pos+1)
			if strings.EqualFold(name, templateTag) {
				return readTemplate(content, pos), true
			}
			next, ok := skipBlock(content, pos, strings.ToLower(name))
			if !ok {
				return templateBlock{}, false
			}
			pos = next
		default:
			pos++
		}
	}
	return templateBlock{}, false
}

// readTemplate reads the template start tag at start and locates its body.
func readTemplate(content []byte, start int) templateBlock {
	whole := tplast.SourceRange{StartOffset: 0, EndOffset: len(content)}
	tok := newTokenizer(content, whole, nil)

	el, selfClosing, ok := tok.readStartTag(start)
	block := templateBlock{element: el, errs: tok.errs}

	switch {
	case !ok:
		block.body = tplast.SourceRange{StartOffset: len(content), EndOffset: len(content)}
		block.closeEnd = len(content)
	case selfClosing:
		block.body = tplast.SourceRange{StartOffset: tok.pos, EndOffset: tok.pos}
		block.closeEnd = tok.pos
	default:
		bodyEnd, closeEnd := matchTemplateEnd(content, tok.pos)
		block.body = tplast.SourceRange{StartOffset: tok.pos, EndOffset: bodyEnd}
		block.closeEnd = closeEnd
	}
	el.Range.EndOffset = block.closeEnd

	return block
}

// matchTemplateEnd finds the </template> that closes a template body
// starting at from, counting nested templates. It returns the body end and
// the offset after the end tag; both are len(content) when it is missing.
func matchTemplateEnd(content []byte, from int) (int, int) {
	depth := 1
	pos := from
	for pos < len(content) {
		lt := bytes.IndexByte(content[pos:], '<')
		if lt < 0 {
			break
		}
		pos += lt
		rest := content[pos+1:]

		switch {
		case bytes.HasPrefix(rest, commentOpen):
			idx := bytes.Index(content[pos+1+len(commentOpen):], commentClose)
			if idx < 0 {
				return len(content), len(content)
			}
			pos += 1 + len(commentOpen) + idx + len(commentClose)
		case len(rest) > 0 && rest[0] == '/' && strings.EqualFold(tagName(content, pos+2), templateTag):
			end, _ := scanTagEnd(content, pos+2)
			if end < 0 {
				return len(content), len(content)
			}
			depth--
			if depth == 0 {
				return pos, end
			}
			pos = end
		case len(rest) > 0 && isASCIIAlpha(rest[0]):
			name := tagName(content, pos+1)
			end, selfClosing := scanTagEnd(content, pos+1)
			if end < 0 {
				return len(content), len(content)
			}
			if strings.EqualFold(name, templateTag) && !selfClosing {
				depth++
			}
			pos = end
		default:
			pos++
		}
	}
	return len(content), len(content)
}

// skipBlock skips a top-level block other than <template>, returning the
// offset after its end tag.
func skipBlock(content []byte, start int, name string) (int, bool) {
	end, selfClosing := scanTagEnd(content, start+1)
	if end < 0 {
		return 0, false
	}
	if selfClosing || voidElements[name] {
		return end, true
	}

	idx := indexEndTag(content[end:], name)
	if idx < 0 {
		return 0, false
	}
	closeEnd, _ := scanTagEnd(content, end+idx+2)
	if closeEnd < 0 {
		return 0, false
	}
	return closeEnd, true
}

// tagName returns the tag name starting at from.
func tagName(content []byte, from int) string {
	end := from
	for end < len(content) && !isTagNameEnd(content[end]) {
		end++
	}
	return string(content[from:end])
}

// scanTagEnd returns the offset after the '>' closing the tag whose name
// starts at from, skipping quoted attribute values. It returns -1 when the
// file ends first.
func scanTagEnd(content []byte, from int) (int, bool) {
	afterEquals := false
	for pos := from; pos < len(content); pos++ {
		switch c := content[pos]; {
		case c == '>':
			return pos + 1, pos > from && content[pos-1] == '/'
		case c == '=':
			afterEquals = true
		case (c == '"' || c == '\'') && afterEquals:
			idx := bytes.IndexByte(content[pos+1:], c)
			if idx < 0 {
				return -1, false
			}
			pos += idx + 1
			afterEquals = false
		case isSpace(c):
		default:
			afterEquals = false
		}
	}
	return -1, false
}
