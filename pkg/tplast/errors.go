package tplast

import (
	"fmt"
	"strings"
)

// ErrorCode identifies a tokenizer error. Codes follow the HTML parsing
// error names.
type ErrorCode string

// Error codes recorded by the parser.
const (
	ErrEOFInTag           ErrorCode = "eof-in-tag"
	ErrEOFInComment       ErrorCode = "eof-in-comment"
	ErrEOFInCDATA         ErrorCode = "eof-in-cdata"
	ErrEOFInDoctype       ErrorCode = "eof-in-doctype"
	ErrEOFBeforeTagName   ErrorCode = "eof-before-tag-name"
	ErrMissingEndTagName  ErrorCode = "missing-end-tag-name"
	ErrMissingAttrValue   ErrorCode = "missing-attribute-value"
	ErrDuplicateAttribute ErrorCode = "duplicate-attribute"
	ErrInvalidEndTag      ErrorCode = "x-invalid-end-tag"
)

// eofPrefix marks codes that mean the input ended inside a construct.
const eofPrefix = "eof-"

// IsEOF reports whether the code denotes an unexpected end of file.
func (c ErrorCode) IsEOF() bool {
	return strings.HasPrefix(string(c), eofPrefix)
}

// ParseError is a problem found while tokenizing a template body.
type ParseError struct {
	Code ErrorCode

	// Offset is the absolute byte offset the error refers to.
	Offset int

	Message string
}

// Error implements the error interface.
func (e ParseError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s at offset %d", e.Code, e.Offset)
	}
	return fmt.Sprintf("%s at offset %d: %s", e.Code, e.Offset, e.Message)
}

// HasInvalidEOF reports whether any template error is an end-of-file error.
// Such files are not reliable enough to be fixed.
func (f *FileSnapshot) HasInvalidEOF() bool {
	for _, err := range f.Errors {
		if err.Code.IsEOF() {
			return true
		}
	}
	return false
}
