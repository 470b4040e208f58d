package lint

import (
	"context"
	"fmt"

	"github.com/yaklabco/vuelint/pkg/config"
	"github.com/yaklabco/vuelint/pkg/fix"
	"github.com/yaklabco/vuelint/pkg/tplast"
)

// FileResult contains the results of linting a single file.
type FileResult struct {
	Snapshot    *tplast.FileSnapshot
	Diagnostics []Diagnostic

	// Edits are the validated, sorted edits of auto-fixable rules. Empty
	// unless fixing was requested.
	Edits []fix.TextEdit

	// SkippedEdits lost a conflict against an earlier edit. A later fix pass
	// may still apply them.
	SkippedEdits []fix.TextEdit

	// EditConflicts is true if any edits were skipped or failed validation.
	EditConflicts bool

	// RuleErrors maps rule IDs to the error their Apply returned.
	RuleErrors map[string]error
}

// HasIssues returns true if any diagnostics were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Diagnostics) > 0
}

// HasFixes returns true if any fixes are available.
func (fr *FileResult) HasFixes() bool {
	return len(fr.Edits) > 0
}

// IssueCount returns the total number of diagnostics.
func (fr *FileResult) IssueCount() int {
	return len(fr.Diagnostics)
}

// FixableCount returns the number of diagnostics with fixes.
func (fr *FileResult) FixableCount() int {
	count := 0
	for i := range fr.Diagnostics {
		if fr.Diagnostics[i].HasFix() {
			count++
		}
	}
	return count
}

// Engine parses files and runs the resolved rules over them.
type Engine struct {
	Parser   Parser
	Registry *Registry
}

// NewEngine creates a new Engine with the given parser and registry.
func NewEngine(parser Parser, registry *Registry) *Engine {
	return &Engine{
		Parser:   parser,
		Registry: registry,
	}
}

// LintFile parses content and runs every enabled rule on it. A failing rule
// is recorded in RuleErrors and does not stop the others.
func (e *Engine) LintFile(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*FileResult, error) {
	snapshot, err := e.Parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	result := &FileResult{
		Snapshot:   snapshot,
		RuleErrors: make(map[string]error),
	}

	var edits []fix.TextEdit

	for _, rr := range ResolveRules(e.Registry, cfg) {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("linting cancelled: %w", err)
		}

		ruleCtx := NewRuleContext(ctx, snapshot, cfg, rr.Config)
		ruleCtx.Registry = e.Registry

		diags, err := rr.Rule.Apply(ruleCtx)
		if err != nil {
			result.RuleErrors[rr.Rule.ID()] = err
			continue
		}

		for i := range diags {
			diag := &diags[i]
			diag.Severity = rr.Severity
			if diag.FilePath == "" {
				diag.FilePath = path
			}
			if diag.RuleName == "" {
				diag.RuleName = rr.Rule.Name()
			}
			if rr.AutoFix {
				edits = append(edits, diag.FixEdits...)
			}
		}

		result.Diagnostics = append(result.Diagnostics, diags...)
	}

	if len(edits) > 0 {
		accepted, skipped, _, err := fix.PrepareEditsFiltered(edits, len(content))
		if err != nil {
			// Keep the diagnostics but apply nothing.
			result.EditConflicts = true
		} else {
			result.Edits = accepted
			result.SkippedEdits = skipped
			result.EditConflicts = len(skipped) > 0
		}
	}

	return result, nil
}
