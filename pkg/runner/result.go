package runner

import (
	"github.com/yaklabco/vuelint/pkg/config"
	"github.com/yaklabco/vuelint/pkg/lint"
)

// FileOutcome is the pipeline result for one discovered file.
type FileOutcome struct {
	Path string

	// Result is nil when Error is set.
	Result *lint.PipelineResult

	Error error
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int

	// FilesSkipped counts files left alone because they changed on disk
	// while being fixed.
	FilesSkipped int

	FilesErrored    int
	FilesWithIssues int
	FilesModified   int

	DiagnosticsTotal   int
	DiagnosticsFixable int
	DiagnosticsFixed   int

	// DiagnosticsBySeverity counts diagnostics per severity name.
	DiagnosticsBySeverity map[string]int
}

// Result is the overall runner result.
type Result struct {
	// Files are ordered by path.
	Files []FileOutcome

	Stats Stats

	// Errors holds failures not tied to a single file.
	Errors []error
}

// HasFailures reports whether any diagnostic has error severity.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsBySeverity[string(config.SeverityError)] > 0
}

// HasIssues reports whether any diagnostics were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsTotal > 0
}

// Diagnostics returns every diagnostic of the run in file order.
func (r *Result) Diagnostics() []lint.Diagnostic {
	if r == nil {
		return nil
	}
	var diags []lint.Diagnostic
	for _, f := range r.Files {
		if f.Result != nil && f.Result.FileResult != nil {
			diags = append(diags, f.Result.Diagnostics...)
		}
	}
	return diags
}

func newStats() Stats {
	return Stats{DiagnosticsBySeverity: make(map[string]int)}
}

// accumulate appends outcome and folds it into the stats.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	pr := outcome.Result
	if pr == nil {
		return
	}

	r.Stats.FilesProcessed++
	if pr.Skipped {
		r.Stats.FilesSkipped++
	}
	if pr.Written {
		r.Stats.FilesModified++
	}
	r.Stats.DiagnosticsFixed += pr.TotalEditsApplied

	if pr.FileResult == nil {
		return
	}

	if n := len(pr.Diagnostics); n > 0 {
		r.Stats.DiagnosticsTotal += n
		r.Stats.FilesWithIssues++
	}
	r.Stats.DiagnosticsFixable += pr.FixableCount()

	for _, diag := range pr.Diagnostics {
		severity := string(diag.Severity)
		if severity == "" {
			severity = string(config.SeverityWarning)
		}
		r.Stats.DiagnosticsBySeverity[severity]++
	}
}
