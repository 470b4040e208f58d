// Package langdetect decides how a file's markup should be located.
// It uses go-enry to classify files as Vue single-file components or plain
// HTML documents, and to resolve template lang attributes.
package langdetect

import (
	"bytes"
	"slices"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language identifies the markup container of a file.
type Language int

const (
	// Unknown content is not linted.
	Unknown Language = iota

	// Vue is a single-file component whose <template> block holds the markup.
	Vue

	// HTML is a document whose whole content is markup.
	HTML
)

// enry language names.
const (
	enryVue  = "Vue"
	enryHTML = "HTML"
)

// String returns the lower-case language name.
func (l Language) String() string {
	switch l {
	case Vue:
		return "vue"
	case HTML:
		return "html"
	default:
		return "unknown"
	}
}

// Detect returns the language of the file at path.
// The extension is consulted first; content is only inspected when the
// extension is not conclusive.
func Detect(path string, content []byte) Language {
	// Strategy 1: extension.
	if lang := detectByExtension(path); lang != Unknown {
		return lang
	}

	if len(content) == 0 {
		return Unknown
	}

	// Strategy 2: highly indicative patterns.
	if lang := detectByPattern(content); lang != Unknown {
		return lang
	}

	// Strategy 3: classifier restricted to the two candidates we handle.
	if lang, safe := enry.GetLanguageByClassifier(content, []string{enryVue, enryHTML}); safe {
		return fromEnry(lang)
	}

	return Unknown
}

// detectByExtension maps the file extension through enry's linguist data.
func detectByExtension(path string) Language {
	candidates := enry.GetLanguagesByExtension(path, nil, nil)
	switch {
	case slices.Contains(candidates, enryVue):
		return Vue
	case slices.Contains(candidates, enryHTML):
		return HTML
	default:
		return Unknown
	}
}

// detectByPattern checks for a top-level template block or an HTML document
// skeleton.
func detectByPattern(content []byte) Language {
	lower := bytes.ToLower(content)

	if bytes.HasPrefix(bytes.TrimSpace(lower), []byte("<template")) ||
		bytes.Contains(lower, []byte("\n<template")) {
		if bytes.Contains(lower, []byte("</template>")) {
			return Vue
		}
	}

	trimmed := bytes.TrimSpace(lower)
	if bytes.HasPrefix(trimmed, []byte("<!doctype html")) ||
		bytes.HasPrefix(trimmed, []byte("<html")) {
		return HTML
	}

	return Unknown
}

// IsHTMLTemplate reports whether a template lang attribute denotes HTML.
// The empty string is HTML.
func IsHTMLTemplate(lang string) bool {
	lang = strings.TrimSpace(lang)
	if lang == "" || strings.EqualFold(lang, "html") {
		return true
	}
	name, ok := enry.GetLanguageByAlias(lang)
	return ok && name == enryHTML
}

func fromEnry(lang string) Language {
	switch lang {
	case enryVue:
		return Vue
	case enryHTML:
		return HTML
	default:
		return Unknown
	}
}
