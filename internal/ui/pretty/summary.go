package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/vuelint/pkg/config"
	"github.com/yaklabco/vuelint/pkg/runner"
)

const summaryDividerWidth = 40

// Plural formats n with the singular or plural noun.
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "12 issues (8 errors, 4 warnings) in 3 files, 6 fixable".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var parts []string

	if stats.DiagnosticsTotal == 0 {
		parts = append(parts, s.Success.Render("No issues found")+
			s.Dim.Render(fmt.Sprintf(" (%s checked)", Plural(stats.FilesProcessed, "file", "files"))))
	} else {
		total := Plural(stats.DiagnosticsTotal, "issue", "issues")
		if breakdown := s.severityBreakdown(stats); breakdown != "" {
			total += " (" + breakdown + ")"
		}
		parts = append(parts, total+" in "+Plural(stats.FilesWithIssues, "file", "files"))
		if stats.DiagnosticsFixable > 0 {
			parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixable", stats.DiagnosticsFixable)))
		}
	}

	if stats.DiagnosticsFixed > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixed in %s",
			stats.DiagnosticsFixed, Plural(stats.FilesModified, "file", "files"))))
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Warning.Render(Plural(stats.FilesSkipped, "file", "files")+" skipped"))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(Plural(stats.FilesErrored, "file", "files")+" failed"))
	}

	return strings.Join(parts, ", ") + "\n"
}

func (s *Styles) severityBreakdown(stats runner.Stats) string {
	var parts []string
	if n := stats.DiagnosticsBySeverity[string(config.SeverityError)]; n > 0 {
		parts = append(parts, s.Error.Render(Plural(n, "error", "errors")))
	}
	if n := stats.DiagnosticsBySeverity[string(config.SeverityWarning)]; n > 0 {
		parts = append(parts, s.Warning.Render(Plural(n, "warning", "warnings")))
	}
	if n := stats.DiagnosticsBySeverity[string(config.SeverityInfo)]; n > 0 {
		parts = append(parts, s.Info.Render(fmt.Sprintf("%d info", n)))
	}
	return strings.Join(parts, ", ")
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	row := func(label string, value string) {
		fmt.Fprintf(&builder, "  %-19s%s\n", label+":", value)
	}

	builder.WriteString("\n" + s.SummaryTitle.Render("Summary") + "\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth) + "\n")

	row("Files checked", s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)))
	if stats.FilesWithIssues > 0 {
		row("Files with issues", s.Failure.Render(strconv.Itoa(stats.FilesWithIssues)))
	}
	if stats.FilesModified > 0 {
		row("Files modified", s.Success.Render(strconv.Itoa(stats.FilesModified)))
	}
	builder.WriteString("\n")

	row("Total issues", s.SummaryValue.Render(strconv.Itoa(stats.DiagnosticsTotal)))
	if n := stats.DiagnosticsBySeverity[string(config.SeverityError)]; n > 0 {
		row("  Errors", s.Error.Render(strconv.Itoa(n)))
	}
	if n := stats.DiagnosticsBySeverity[string(config.SeverityWarning)]; n > 0 {
		row("  Warnings", s.Warning.Render(strconv.Itoa(n)))
	}
	if n := stats.DiagnosticsBySeverity[string(config.SeverityInfo)]; n > 0 {
		row("  Info", s.Info.Render(strconv.Itoa(n)))
	}
	builder.WriteString("\n")

	switch {
	case stats.DiagnosticsBySeverity[string(config.SeverityError)] > 0:
		builder.WriteString(s.Failure.Render("Lint failed with errors"))
	case stats.DiagnosticsBySeverity[string(config.SeverityWarning)] > 0:
		builder.WriteString(s.Warning.Render("Lint completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Lint passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
