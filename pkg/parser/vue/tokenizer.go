package vue

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/vuelint/pkg/tplast"
)

// cancelCheckInterval is the number of markup constructs consumed between
// context checks.
const cancelCheckInterval = 256

// Literal markers recognised after '<'.
var (
	commentOpen  = []byte("!--")
	commentClose = []byte("-->")
	cdataOpen    = []byte("![CDATA[")
	cdataClose   = []byte("]]>")
	doctypeOpen  = []byte("!doctype")
)

// voidElements never have children or an end tag.
//
//nolint:gochecknoglobals // lookup table
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// textElements hold raw text (script, style) or escapable raw text
// (textarea, title): their content is not tokenized as markup.
//
//nolint:gochecknoglobals // lookup table
var textElements = map[string]bool{
	"script": true, "style": true, "textarea": true, "title": true,
}

// tokenizer reads the markup in src[pos:end] and builds the element tree
// under a root node. All ranges are absolute offsets into src.
type tokenizer struct {
	src []byte
	pos int
	end int

	root  *tplast.Node
	stack []*tplast.Node
	errs  []tplast.ParseError
}

func newTokenizer(src []byte, body tplast.SourceRange, root *tplast.Node) *tokenizer {
	return &tokenizer{
		src:  src,
		pos:  body.StartOffset,
		end:  body.EndOffset,
		root: root,
	}
}

// run consumes the whole body. Elements still open at the end of the body
// are closed there without an error.
func (t *tokenizer) run(ctx context.Context) error {
	for steps := 0; t.pos < t.end; steps++ {
		if steps%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("tokenize cancelled: %w", err)
			}
		}

		lt := bytes.IndexByte(t.src[t.pos:t.end], '<')
		if lt < 0 {
			t.text(t.pos, t.end)
			t.pos = t.end
			break
		}
		if lt > 0 {
			t.text(t.pos, t.pos+lt)
			t.pos += lt
		}
		t.markup()
	}

	for len(t.stack) > 0 {
		t.pop(t.end)
	}
	return nil
}

// markup dispatches on the construct that starts with '<' at t.pos.
func (t *tokenizer) markup() {
	start := t.pos
	rest := t.src[start+1 : t.end]

	switch {
	case len(rest) == 0:
		t.fail(tplast.ErrEOFBeforeTagName, start, "unexpected end of file after '<'")
		t.text(start, t.end)
		t.pos = t.end
	case bytes.HasPrefix(rest, commentOpen):
		t.comment(start)
	case bytes.HasPrefix(rest, cdataOpen):
		t.delimited(start, len(cdataOpen)+1, cdataClose, tplast.ErrEOFInCDATA, "CDATA section")
	case hasPrefixFold(rest, doctypeOpen):
		t.doctype(start)
	case rest[0] == '!' || rest[0] == '?':
		t.bogusComment(start)
	case rest[0] == '/':
		t.endTag(start)
	case isASCIIAlpha(rest[0]):
		t.startTag(start)
	default:
		t.text(start, start+1)
		t.pos++
	}
}

// comment consumes `<!-- ... -->`, including the abrupt forms `<!-->` and
// `<!--->`.
func (t *tokenizer) comment(start int) {
	bodyStart := start + 1 + len(commentOpen)
	rest := t.src[bodyStart:t.end]

	switch {
	case bytes.HasPrefix(rest, []byte(">")):
		t.pos = bodyStart + 1
		t.leaf(tplast.NodeComment, start, t.pos)
		return
	case bytes.HasPrefix(rest, []byte("->")):
		t.pos = bodyStart + 2
		t.leaf(tplast.NodeComment, start, t.pos)
		return
	}

	t.delimited(start, len(commentOpen)+1, commentClose, tplast.ErrEOFInComment, "comment")
}

// delimited consumes a comment-like construct ending with closer. When the
// closer is missing the construct runs to the end of the body and code is
// recorded.
func (t *tokenizer) delimited(start, openLen int, closer []byte, code tplast.ErrorCode, what string) {
	bodyStart := start + openLen
	idx := bytes.Index(t.src[bodyStart:t.end], closer)
	if idx < 0 {
		t.fail(code, t.end, "unexpected end of file in "+what)
		t.leaf(tplast.NodeComment, start, t.end)
		t.pos = t.end
		return
	}

	t.pos = bodyStart + idx + len(closer)
	t.leaf(tplast.NodeComment, start, t.pos)
}

func (t *tokenizer) doctype(start int) {
	idx := bytes.IndexByte(t.src[start:t.end], '>')
	if idx < 0 {
		t.fail(tplast.ErrEOFInDoctype, t.end, "unexpected end of file in doctype")
		t.pos = t.end
		return
	}
	t.pos = start + idx + 1
}

// bogusComment consumes `<!...>` and `<?...>`. It ends at the first '>' or at
// the end of the body, without an error.
func (t *tokenizer) bogusComment(start int) {
	idx := bytes.IndexByte(t.src[start:t.end], '>')
	if idx < 0 {
		t.pos = t.end
	} else {
		t.pos = start + idx + 1
	}
	t.leaf(tplast.NodeComment, start, t.pos)
}

// startTag consumes a start tag, attaches the element to the tree and, for
// text elements, consumes their content up to the matching end tag.
func (t *tokenizer) startTag(start int) {
	el, selfClosing, ok := t.readStartTag(start)
	t.attach(el)
	if !ok {
		return
	}

	name := strings.ToLower(el.Name)
	switch {
	case selfClosing, voidElements[name]:
		return
	case textElements[name]:
		t.stack = append(t.stack, el)
		t.rawText(name)
	default:
		t.stack = append(t.stack, el)
	}
}

// readStartTag reads the tag name and attributes of the start tag at start.
// ok is false when the body ends inside the tag.
func (t *tokenizer) readStartTag(start int) (*tplast.Node, bool, bool) {
	t.pos = start + 1
	nameStart := t.pos
	for t.pos < t.end && !isTagNameEnd(t.src[t.pos]) {
		t.pos++
	}

	el := tplast.NewNode(tplast.NodeElement)
	el.Name = string(t.src[nameStart:t.pos])
	el.Range = tplast.SourceRange{StartOffset: start, EndOffset: t.end}

	selfClosing, ok := t.readAttributes(el)
	if ok {
		el.Range.EndOffset = t.pos
	}
	return el, selfClosing, ok
}

// readAttributes consumes attributes up to and including the closing '>'.
// Attributes are added to el unless el is nil (end tags). It returns false
// when the body ends first.
func (t *tokenizer) readAttributes(el *tplast.Node) (bool, bool) {
	seen := make(map[string]bool)

	for {
		t.skipSpace()
		if t.pos >= t.end {
			t.fail(tplast.ErrEOFInTag, t.end, "unexpected end of file in tag")
			return false, false
		}

		switch t.src[t.pos] {
		case '>':
			t.pos++
			return false, true
		case '/':
			t.pos++
			if t.pos < t.end && t.src[t.pos] == '>' {
				t.pos++
				return true, true
			}
			continue
		}

		// The first character of a name may be '='.
		keyStart := t.pos
		t.pos++
		for t.pos < t.end && !isAttrNameEnd(t.src[t.pos]) {
			t.pos++
		}
		attr := &tplast.Attribute{
			Key:  tplast.SourceRange{StartOffset: keyStart, EndOffset: t.pos},
			Node: el,
		}

		t.skipSpace()
		if t.pos < t.end && t.src[t.pos] == '=' {
			t.pos++
			t.skipSpace()
			value, ok := t.readValue()
			if !ok {
				return false, false
			}
			attr.Value = value
		}

		if el == nil {
			continue
		}
		key := string(t.src[attr.Key.StartOffset:attr.Key.EndOffset])
		if seen[key] {
			t.fail(tplast.ErrDuplicateAttribute, keyStart, "duplicate attribute "+key)
		}
		seen[key] = true
		el.Attrs = append(el.Attrs, attr)
	}
}

// readValue reads an attribute value after '='. Quoted values include their
// delimiters and always end with the quote they start with.
func (t *tokenizer) readValue() (*tplast.SourceRange, bool) {
	if t.pos >= t.end {
		t.fail(tplast.ErrEOFInTag, t.end, "unexpected end of file in tag")
		return nil, false
	}

	switch quote := t.src[t.pos]; quote {
	case '"', '\'':
		idx := bytes.IndexByte(t.src[t.pos+1:t.end], quote)
		if idx < 0 {
			t.fail(tplast.ErrEOFInTag, t.end, "unexpected end of file in attribute value")
			t.pos = t.end
			return nil, false
		}
		value := tplast.SourceRange{StartOffset: t.pos, EndOffset: t.pos + idx + 2}
		t.pos = value.EndOffset
		return &value, true
	case '>':
		t.fail(tplast.ErrMissingAttrValue, t.pos, "missing attribute value")
		return nil, true
	default:
		start := t.pos
		for t.pos < t.end && !isSpace(t.src[t.pos]) && t.src[t.pos] != '>' {
			t.pos++
		}
		return &tplast.SourceRange{StartOffset: start, EndOffset: t.pos}, true
	}
}

// rawText consumes the content of a text element up to its end tag. The end
// tag itself is left for the main loop.
func (t *tokenizer) rawText(name string) {
	start := t.pos
	idx := indexEndTag(t.src[start:t.end], name)
	if idx < 0 {
		t.text(start, t.end)
		t.pos = t.end
		return
	}
	t.text(start, start+idx)
	t.pos = start + idx
}

// endTag consumes `</name ...>` and closes the matching open element.
func (t *tokenizer) endTag(start int) {
	t.pos = start + 2
	if t.pos >= t.end {
		t.fail(tplast.ErrEOFBeforeTagName, t.end, "unexpected end of file after '</'")
		t.text(start, t.end)
		t.pos = t.end
		return
	}

	switch c := t.src[t.pos]; {
	case c == '>':
		t.fail(tplast.ErrMissingEndTagName, start, "missing end tag name")
		t.pos++
		return
	case !isASCIIAlpha(c):
		t.bogusComment(start)
		return
	}

	nameStart := t.pos
	for t.pos < t.end && !isTagNameEnd(t.src[t.pos]) {
		t.pos++
	}
	name := strings.ToLower(string(t.src[nameStart:t.pos]))

	if _, ok := t.readAttributes(nil); !ok {
		return
	}
	t.close(name, start)
}

// close pops open elements up to the innermost one named name. Elements
// closed implicitly end where the end tag starts.
func (t *tokenizer) close(name string, tagStart int) {
	for i := len(t.stack) - 1; i >= 0; i-- {
		if strings.ToLower(t.stack[i].Name) != name {
			continue
		}
		for len(t.stack) > i+1 {
			t.pop(tagStart)
		}
		t.pop(t.pos)
		return
	}
	t.fail(tplast.ErrInvalidEndTag, tagStart, "end tag </"+name+"> has no open element")
}

func (t *tokenizer) pop(end int) {
	last := t.stack[len(t.stack)-1]
	last.Range.EndOffset = end
	t.stack = t.stack[:len(t.stack)-1]
}

func (t *tokenizer) parent() *tplast.Node {
	if len(t.stack) == 0 {
		return t.root
	}
	return t.stack[len(t.stack)-1]
}

func (t *tokenizer) attach(n *tplast.Node) {
	tplast.AppendChild(t.parent(), n)
}

func (t *tokenizer) leaf(kind tplast.NodeKind, start, end int) {
	n := tplast.NewNode(kind)
	n.Range = tplast.SourceRange{StartOffset: start, EndOffset: end}
	t.attach(n)
}

// text appends [start, end) as text, merging with an adjacent text node.
func (t *tokenizer) text(start, end int) {
	if start >= end {
		return
	}
	parent := t.parent()
	if last := parent.LastChild; last != nil && last.Kind == tplast.NodeText && last.Range.EndOffset == start {
		last.Range.EndOffset = end
		return
	}
	t.leaf(tplast.NodeText, start, end)
}

func (t *tokenizer) fail(code tplast.ErrorCode, offset int, msg string) {
	t.errs = append(t.errs, tplast.ParseError{Code: code, Offset: offset, Message: msg})
}

func (t *tokenizer) skipSpace() {
	for t.pos < t.end && isSpace(t.src[t.pos]) {
		t.pos++
	}
}

// indexEndTag returns the index of the first `</name` in b that is followed
// by whitespace, '/', '>' or the end of b. Name matching ignores case.
func indexEndTag(b []byte, name string) int {
	offset := 0
	for {
		idx := bytes.Index(b[offset:], []byte("</"))
		if idx < 0 {
			return -1
		}
		at := offset + idx
		nameEnd := at + 2 + len(name)
		if nameEnd <= len(b) && strings.EqualFold(string(b[at+2:nameEnd]), name) &&
			(nameEnd == len(b) || isTagNameEnd(b[nameEnd])) {
			return at
		}
		offset = at + 2
	}
}

func hasPrefixFold(b, prefix []byte) bool {
	return len(b) >= len(prefix) && bytes.EqualFold(b[:len(prefix)], prefix)
}

func isASCIIAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isTagNameEnd(c byte) bool {
	return isSpace(c) || c == '/' || c == '>'
}

func isAttrNameEnd(c byte) bool {
	return isTagNameEnd(c) || c == '='
}
