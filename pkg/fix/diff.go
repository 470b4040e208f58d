package fix

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Diff is a line-based unified diff of one file.
type Diff struct {
	Path     string
	Original []byte
	Modified []byte
	Hunks    []DiffHunk

	// Additions and Deletions count added and removed lines across all hunks.
	Additions int
	Deletions int
}

// DiffHunk is one "@@" block. Starts are 1-based; a zero count pairs with the
// line before the change, as in GNU diff.
type DiffHunk struct {
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
	Lines         []DiffLine
}

// DiffLine is a single line of a hunk without its prefix character.
type DiffLine struct {
	Kind    DiffLineKind
	Content string
}

// DiffLineKind tells context, added and removed lines apart.
type DiffLineKind int

const (
	DiffLineContext DiffLineKind = iota
	DiffLineAdd
	DiffLineRemove
)

// prefix returns the unified diff marker for k.
func (k DiffLineKind) prefix() byte {
	switch k {
	case DiffLineAdd:
		return '+'
	case DiffLineRemove:
		return '-'
	default:
		return ' '
	}
}

const contextLines = 3

// GenerateDiff diffs original against modified line by line. It returns nil
// when the two have the same lines.
func GenerateDiff(path string, original, modified []byte) *Diff {
	if bytes.Equal(original, modified) {
		return nil
	}

	origLines := splitLines(original)
	modLines := splitLines(modified)

	matcher := difflib.NewMatcher(origLines, modLines)
	groups := matcher.GetGroupedOpCodes(contextLines)
	if len(groups) == 0 {
		return nil
	}

	diff := &Diff{
		Path:     path,
		Original: original,
		Modified: modified,
		Hunks:    make([]DiffHunk, 0, len(groups)),
	}

	for _, group := range groups {
		first, last := group[0], group[len(group)-1]
		hunk := DiffHunk{
			OriginalStart: hunkStart(first.I1, last.I2),
			OriginalCount: last.I2 - first.I1,
			ModifiedStart: hunkStart(first.J1, last.J2),
			ModifiedCount: last.J2 - first.J1,
		}

		for _, op := range group {
			switch op.Tag {
			case 'e':
				hunk.Lines = appendLines(hunk.Lines, DiffLineContext, origLines[op.I1:op.I2])
			case 'd':
				hunk.Lines = appendLines(hunk.Lines, DiffLineRemove, origLines[op.I1:op.I2])
				diff.Deletions += op.I2 - op.I1
			case 'i':
				hunk.Lines = appendLines(hunk.Lines, DiffLineAdd, modLines[op.J1:op.J2])
				diff.Additions += op.J2 - op.J1
			case 'r':
				hunk.Lines = appendLines(hunk.Lines, DiffLineRemove, origLines[op.I1:op.I2])
				hunk.Lines = appendLines(hunk.Lines, DiffLineAdd, modLines[op.J1:op.J2])
				diff.Deletions += op.I2 - op.I1
				diff.Additions += op.J2 - op.J1
			}
		}

		diff.Hunks = append(diff.Hunks, hunk)
	}

	return diff
}

func hunkStart(begin, end int) int {
	if end == begin {
		return begin
	}
	return begin + 1
}

func appendLines(dst []DiffLine, kind DiffLineKind, lines []string) []DiffLine {
	for _, line := range lines {
		dst = append(dst, DiffLine{Kind: kind, Content: line})
	}
	return dst
}

// splitLines splits content on '\n'. A trailing newline does not produce an
// empty final line.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	text := strings.TrimSuffix(string(content), "\n")
	return strings.Split(text, "\n")
}

// GitHeader returns the "diff --git" line for d.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// String renders d in unified format without the git header.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n+++ b/%s\n", path, path)

	for _, hunk := range d.Hunks {
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.ModifiedStart, hunk.ModifiedCount)
		for _, line := range hunk.Lines {
			sb.WriteByte(line.Kind.prefix())
			sb.WriteString(line.Content)
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

// FullString renders d with the git header.
func (d *Diff) FullString() string {
	if !d.HasChanges() {
		return ""
	}
	return d.GitHeader() + "\n" + d.String()
}

// HasChanges reports whether d has at least one hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}
