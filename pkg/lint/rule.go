// Package lint provides the rule engine, diagnostics and registry for vuelint.
package lint

import (
	"github.com/yaklabco/vuelint/pkg/config"
	"github.com/yaklabco/vuelint/pkg/fix"
	"github.com/yaklabco/vuelint/pkg/tplast"
)

// Diagnostic represents a single lint issue found in a file.
type Diagnostic struct {
	// RuleID is the identifier of the rule that produced this diagnostic.
	RuleID string

	// RuleName is the human-readable name of the rule (e.g., "html-quotes").
	RuleName string

	Message  string
	Severity config.Severity
	FilePath string

	// Positions are 1-based. The end column is exclusive.
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int

	// Suggestion is an optional human-readable fix suggestion.
	Suggestion string

	// FixEdits contains the text edits to fix this issue (may be empty).
	FixEdits []fix.TextEdit
}

// HasFix returns true if this diagnostic has associated fix edits.
func (d *Diagnostic) HasFix() bool {
	return len(d.FixEdits) > 0
}

// SourcePosition returns the diagnostic position as a SourcePosition.
func (d *Diagnostic) SourcePosition() tplast.SourcePosition {
	return tplast.SourcePosition{
		StartLine:   d.StartLine,
		StartColumn: d.StartColumn,
		EndLine:     d.EndLine,
		EndColumn:   d.EndColumn,
	}
}

// Rule defines the interface that all lint rules must implement.
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "VT001").
	ID() string

	// Name returns the human-readable name of the rule.
	Name() string

	// Description returns a detailed description of what the rule checks.
	Description() string

	DefaultEnabled() bool
	DefaultSeverity() config.Severity

	// Tags returns categorization tags for this rule (e.g., ["template", "style"]).
	Tags() []string

	// CanFix returns whether this rule can auto-fix issues.
	CanFix() bool

	// Apply executes the rule against the given context and returns diagnostics.
	//
	// Rules must:
	//   - Return diagnostics for each violation found.
	//   - Attach fix edits only if CanFix() is true.
	//   - Respect context cancellation.
	//   - Return error only for internal failures, not violations.
	Apply(ctx *RuleContext) ([]Diagnostic, error)
}

// OptionsValidator is implemented by rules that accept options. The config
// loader calls it for every configured rule so bad options fail at startup
// instead of being silently replaced by defaults.
type OptionsValidator interface {
	ValidateOptions(options map[string]any) error
}

// OptionsProvider is implemented by rules whose options have defaults worth
// documenting, for example in generated config templates.
type OptionsProvider interface {
	DefaultOptions() map[string]any
}
