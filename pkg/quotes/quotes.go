// Package quotes normalizes the quote characters around template attribute values.
//
// The package is pure: it knows nothing about parsing, files, or reporting.
// Callers build one Occurrence per attribute that has a value and ask Check
// whether it conforms to a Config. Non-conforming occurrences come back as a
// Violation carrying a replacement for the value's span.
package quotes

import (
	"errors"
	"fmt"
	"strings"
)

// Style is the quote style an attribute value must be enclosed by.
type Style string

const (
	StyleDouble Style = "double"
	StyleSingle Style = "single"
)

// ErrInvalidStyle is returned by ParseStyle for unknown style names.
var ErrInvalidStyle = errors.New("invalid quote style")

// ParseStyle parses a style name. The empty string selects the default (double).
func ParseStyle(name string) (Style, error) {
	switch Style(name) {
	case "", StyleDouble:
		return StyleDouble, nil
	case StyleSingle:
		return StyleSingle, nil
	default:
		return "", fmt.Errorf("%w %q; must be one of: double, single", ErrInvalidStyle, name)
	}
}

// IsValid returns true if s is a known style.
func (s Style) IsValid() bool {
	return s == StyleDouble || s == StyleSingle
}

// Config holds the constants derived from a Style.
// Char and Other are always the double and single quote, in some order.
type Config struct {
	Style Style

	// Char is the quote character values must be enclosed by.
	Char byte

	// Other is the quote character that was not chosen.
	Other byte

	// Name is the human label used in messages.
	Name string

	// Escaped is the character reference that replaces a literal Char inside
	// non-bound content.
	Escaped string
}

// NewConfig derives a Config from style. Anything other than StyleSingle
// selects double quotes.
func NewConfig(style Style) Config {
	if style == StyleSingle {
		return Config{
			Style:   StyleSingle,
			Char:    '\'',
			Other:   '"',
			Name:    "single quotes",
			Escaped: "&apos;",
		}
	}
	return Config{
		Style:   StyleDouble,
		Char:    '"',
		Other:   '\'',
		Name:    "double quotes",
		Escaped: "&quot;",
	}
}

// Message returns the violation message for this configuration.
func (c Config) Message() string {
	return "Expected to be enclosed by " + c.Name + "."
}

// bindPrefix is the long form of the ':' shorthand.
const bindPrefix = "v-bind:"

// Classify reports whether an attribute key denotes a bound attribute,
// i.e. it starts with ':' or with "v-bind:".
func Classify(key string) bool {
	if key == "" {
		return false
	}
	return key[0] == ':' || strings.HasPrefix(key, bindPrefix)
}

// Span is a byte range [Start, End) in the source document.
type Span struct {
	Start int
	End   int
}

// Occurrence is a single attribute value to check.
type Occurrence struct {
	// Raw is the exact source text of the value, including delimiters if any.
	Raw string

	// Bound is true for dynamic bindings (see Classify).
	Bound bool

	// Span locates Raw in the document.
	Span Span
}

// NewOccurrence builds an Occurrence, classifying key.
func NewOccurrence(key, raw string, span Span) Occurrence {
	return Occurrence{
		Raw:   raw,
		Bound: Classify(key),
		Span:  span,
	}
}

// Fix replaces Span with Text.
type Fix struct {
	Span Span
	Text string
}

// Violation describes a value that is not enclosed by the configured quotes.
type Violation struct {
	Span    Span
	Message string

	// Fix is nil only when no safe fix exists.
	Fix *Fix
}

// Check reports whether occ conforms to cfg. Only the opening character is
// inspected; the parser guarantees quoted spans end with the same quote.
func Check(occ Occurrence, cfg Config) (Violation, bool) {
	if occ.Raw == "" || occ.Raw[0] == cfg.Char {
		return Violation{}, false
	}

	return Violation{
		Span:    occ.Span,
		Message: cfg.Message(),
		Fix: &Fix{
			Span: occ.Span,
			Text: ComputeFix(occ, cfg),
		},
	}, true
}

// ComputeFix returns the replacement text for occ: the content re-escaped for
// its attribute kind and enclosed by cfg.Char.
//
// Bound content is an expression, so Char becomes Other and the expression
// keeps its own string literals intact. Literal content is markup text, so
// Char becomes its character reference.
func ComputeFix(occ Occurrence, cfg Config) string {
	content := unquote(occ.Raw)

	if occ.Bound {
		content = strings.ReplaceAll(content, string(cfg.Char), string(cfg.Other))
	} else {
		content = strings.ReplaceAll(content, string(cfg.Char), cfg.Escaped)
	}

	quote := string(cfg.Char)
	return quote + content + quote
}

// unquote strips one delimiter from each side when raw is quoted.
func unquote(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	first := raw[0]
	if (first == '"' || first == '\'') && raw[len(raw)-1] == first {
		return raw[1 : len(raw)-1]
	}
	return raw
}

// Document is the input for one document's check pass.
type Document struct {
	// InvalidEOF is true when the markup ended inside a tag, comment or
	// similar construct. Such documents are not checked at all.
	InvalidEOF bool

	Occurrences []Occurrence
}

// CheckDocument checks every occurrence of doc in order.
// It returns nil when doc.InvalidEOF is set.
func CheckDocument(doc Document, cfg Config) []Violation {
	if doc.InvalidEOF {
		return nil
	}

	var violations []Violation
	for _, occ := range doc.Occurrences {
		if v, ok := Check(occ, cfg); ok {
			violations = append(violations, v)
		}
	}
	return violations
}
