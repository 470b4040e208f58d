package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/vuelint/internal/ui/pretty"
	"github.com/yaklabco/vuelint/pkg/lint"
	"github.com/yaklabco/vuelint/pkg/runner"
	"github.com/yaklabco/vuelint/pkg/tplast"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		total += r.reportFile(file)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

// reportFile writes one file's errors, skip notice and diagnostics.
func (r *TextReporter) reportFile(file runner.FileOutcome) int {
	path := r.opts.displayPath(file.Path)

	if file.Error != nil {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(path),
			r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
		)
		return 0
	}

	pr := file.Result
	if pr == nil {
		return 0
	}
	if pr.Skipped {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(path),
			r.styles.Warning.Render("skipped: "+pr.SkipReason),
		)
	}
	if pr.FileResult == nil || len(pr.Diagnostics) == 0 {
		return 0
	}

	if r.opts.GroupByFile {
		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(pr.Diagnostics)))
	}

	for i := range pr.Diagnostics {
		diag := &pr.Diagnostics[i]
		formatted := r.styles.FormatDiagnostic(diag, r.opts.ShowContext, sourceLine(pr.Snapshot, diag), r.opts.RuleFormat)
		if !r.opts.GroupByFile {
			formatted = r.styles.FilePath.Render(path) + ":" + strings.TrimPrefix(formatted, "  ")
		}
		fmt.Fprint(r.bw, formatted)
	}

	if r.opts.GroupByFile {
		fmt.Fprintln(r.bw)
	}

	return len(pr.Diagnostics)
}

// sourceLine returns the line diag starts on, without its newline.
func sourceLine(snapshot *tplast.FileSnapshot, diag *lint.Diagnostic) string {
	if snapshot == nil {
		return ""
	}
	return strings.TrimRight(string(snapshot.LineContent(diag.StartLine)), "\r\n")
}
