package pretty

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/vuelint/pkg/config"
	"github.com/yaklabco/vuelint/pkg/lint"
)

// contextIndent aligns source context under the diagnostic line.
const contextIndent = "        "

// FormatDiagnostic formats a single diagnostic for terminal output, naming
// the rule according to ruleFormat. With showContext, sourceLine is printed
// below it with a marker under the reported range.
func (s *Styles) FormatDiagnostic(
	diag *lint.Diagnostic,
	showContext bool,
	sourceLine string,
	ruleFormat config.RuleFormat,
) string {
	var builder strings.Builder

	location := s.Location.Render(fmt.Sprintf("%d:%d", diag.StartLine, diag.StartColumn))
	rule := s.RuleID.Render(config.FormatRuleID(ruleFormat, diag.RuleID, diag.RuleName))

	fmt.Fprintf(&builder, "  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
		rule,
	)

	if showContext && sourceLine != "" {
		endColumn := 0
		if diag.EndLine == diag.StartLine {
			endColumn = diag.EndColumn
		}
		builder.WriteString(s.FormatSourceContext(sourceLine, diag.StartColumn, endColumn))
	}

	if diag.Suggestion != "" {
		builder.WriteString("    " + s.Dim.Render("Suggestion:") + " " +
			s.Suggestion.Render(diag.Suggestion) + "\n")
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext prints line and marks the byte columns
// [column, endColumn) beneath it. An endColumn at or before column marks a
// single position. Wide characters and tabs in line keep the marker aligned.
func (s *Styles) FormatSourceContext(line string, column, endColumn int) string {
	line = strings.TrimRight(line, "\r\n")

	var builder strings.Builder
	builder.WriteString(contextIndent + s.SourceLine.Render(line) + "\n")

	if column <= 0 {
		return builder.String()
	}

	start := min(column-1, len(line))
	width := 1
	if endColumn > column {
		end := min(endColumn-1, len(line))
		width = max(runewidth.StringWidth(line[start:end]), 1)
	}

	marker := "^" + strings.Repeat("~", width-1)
	builder.WriteString(contextIndent + CaretPadding(line[:start]) + s.Caret.Render(marker) + "\n")

	return builder.String()
}

// CaretPadding returns whitespace as wide on screen as prefix. Tabs are
// kept so the terminal expands them the same way in both lines.
func CaretPadding(prefix string) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		header += s.Dim.Render(" (" + Plural(issueCount, "issue", "issues") + ")")
	}
	return header
}
