package lint

import (
	"github.com/yaklabco/vuelint/pkg/config"
	"github.com/yaklabco/vuelint/pkg/fix"
	"github.com/yaklabco/vuelint/pkg/tplast"
)

// DiagnosticBuilder helps construct Diagnostic values.
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnostic starts a diagnostic covering node.
func NewDiagnostic(ruleID string, node *tplast.Node, message string) *DiagnosticBuilder {
	if node == nil || node.File == nil {
		return NewDiagnosticAt(ruleID, "", tplast.SourcePosition{}, message)
	}
	return NewDiagnosticInRange(ruleID, node.File, node.Range, message)
}

// NewDiagnosticInRange starts a diagnostic covering the byte range r of file.
func NewDiagnosticInRange(
	ruleID string,
	file *tplast.FileSnapshot,
	r tplast.SourceRange,
	message string,
) *DiagnosticBuilder {
	return NewDiagnosticAt(ruleID, file.Path, file.Position(r), message)
}

// NewDiagnosticAt starts a diagnostic at a line/column position.
func NewDiagnosticAt(
	ruleID string,
	filePath string,
	pos tplast.SourcePosition,
	message string,
) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		diag: Diagnostic{
			RuleID:      ruleID,
			Message:     message,
			FilePath:    filePath,
			StartLine:   pos.StartLine,
			StartColumn: pos.StartColumn,
			EndLine:     pos.EndLine,
			EndColumn:   pos.EndColumn,
		},
	}
}

// WithRuleName sets the rule's display name.
func (b *DiagnosticBuilder) WithRuleName(name string) *DiagnosticBuilder {
	b.diag.RuleName = name
	return b
}

// WithSeverity sets the severity.
func (b *DiagnosticBuilder) WithSeverity(s config.Severity) *DiagnosticBuilder {
	b.diag.Severity = s
	return b
}

// WithSuggestion sets a human-readable fix suggestion.
func (b *DiagnosticBuilder) WithSuggestion(s string) *DiagnosticBuilder {
	b.diag.Suggestion = s
	return b
}

// WithFix adds the edits collected by builder.
func (b *DiagnosticBuilder) WithFix(builder *fix.EditBuilder) *DiagnosticBuilder {
	if builder != nil {
		b.diag.FixEdits = append(b.diag.FixEdits, builder.Edits...)
	}
	return b
}

// WithEdit adds a single fix edit.
func (b *DiagnosticBuilder) WithEdit(edit fix.TextEdit) *DiagnosticBuilder {
	b.diag.FixEdits = append(b.diag.FixEdits, edit)
	return b
}

// Build returns the constructed Diagnostic.
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}
