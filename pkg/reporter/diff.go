package reporter

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/vuelint/internal/ui/pretty"
	"github.com/yaklabco/vuelint/pkg/fix"
	"github.com/yaklabco/vuelint/pkg/runner"
)

// DiffReporter prints the fixes of a dry run as git-style unified diffs.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. It returns the number of files with changes.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var files, additions, deletions int
	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(r.opts.displayPath(file.Path)),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}
		if file.Result == nil || !file.Result.Diff.HasChanges() {
			continue
		}

		diff := file.Result.Diff
		files++
		additions += diff.Additions
		deletions += diff.Deletions
		r.writeDiff(diff)
	}

	if files > 0 && r.opts.ShowSummary {
		r.writeSummary(files, additions, deletions)
	}

	return files, nil
}

func (r *DiffReporter) writeDiff(diff *fix.Diff) {
	path := filepath.ToSlash(r.opts.displayPath(diff.Path))
	path = strings.TrimPrefix(path, "/")

	fmt.Fprintln(r.bw, r.styles.DiffHeader.Render(fmt.Sprintf("diff --git a/%s b/%s", path, path)))
	fmt.Fprintln(r.bw, r.styles.DiffRemove.Render("--- a/"+path))
	fmt.Fprintln(r.bw, r.styles.DiffAdd.Render("+++ b/"+path))

	for _, hunk := range diff.Hunks {
		fmt.Fprintln(r.bw, r.styles.DiffHunk.Render(fmt.Sprintf("@@ -%d,%d +%d,%d @@",
			hunk.OriginalStart, hunk.OriginalCount, hunk.ModifiedStart, hunk.ModifiedCount)))

		for _, line := range hunk.Lines {
			switch line.Kind {
			case fix.DiffLineAdd:
				fmt.Fprintln(r.bw, r.styles.DiffAdd.Render("+"+line.Content))
			case fix.DiffLineRemove:
				fmt.Fprintln(r.bw, r.styles.DiffRemove.Render("-"+line.Content))
			default:
				fmt.Fprintln(r.bw, r.styles.DiffContext.Render(" "+line.Content))
			}
		}
	}

	fmt.Fprintln(r.bw)
}

// writeSummary writes a git-style shortstat line.
func (r *DiffReporter) writeSummary(files, additions, deletions int) {
	parts := []string{pretty.Plural(files, "file", "files") + " changed"}
	if additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(pretty.Plural(additions, "insertion(+)", "insertions(+)")))
	}
	if deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(pretty.Plural(deletions, "deletion(-)", "deletions(-)")))
	}
	fmt.Fprintln(r.bw, strings.Join(parts, ", "))
}
