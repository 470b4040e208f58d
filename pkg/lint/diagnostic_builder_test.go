package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/vuelint/pkg/config"
	"github.com/yaklabco/vuelint/pkg/fix"
	"github.com/yaklabco/vuelint/pkg/lint"
	"github.com/yaklabco/vuelint/pkg/tplast"
)

func TestNewDiagnostic_Node(t *testing.T) {
	t.Parallel()

	snapshot := parseSnapshot(t, "page.html", "<div>\n  <p id='x'></p>\n</div>\n")
	paragraphs := tplast.FindAll(snapshot.Root, func(n *tplast.Node) bool { return n.Name == "p" })
	require.Len(t, paragraphs, 1)

	diag := lint.NewDiagnostic("VT001", paragraphs[0], "msg").Build()

	assert.Equal(t, "VT001", diag.RuleID)
	assert.Equal(t, "page.html", diag.FilePath)
	assert.Equal(t, "msg", diag.Message)
	assert.Equal(t, 2, diag.StartLine)
	assert.Equal(t, 3, diag.StartColumn)
	assert.Equal(t, 2, diag.EndLine)
}

func TestNewDiagnostic_NilNode(t *testing.T) {
	t.Parallel()

	diag := lint.NewDiagnostic("VT001", nil, "msg").Build()
	assert.Empty(t, diag.FilePath)
	assert.Zero(t, diag.StartLine)
	assert.False(t, diag.SourcePosition().IsValid())
}

func TestNewDiagnosticInRange(t *testing.T) {
	t.Parallel()

	snapshot := parseSnapshot(t, "a.html", "<a\n  href='x'>")
	attrs := tplast.Attributes(snapshot.Root)
	require.Len(t, attrs, 1)

	diag := lint.NewDiagnosticInRange("VT001", snapshot, *attrs[0].Value, "msg").Build()

	assert.Equal(t, tplast.SourcePosition{StartLine: 2, StartColumn: 8, EndLine: 2, EndColumn: 11}, diag.SourcePosition())
}

func TestDiagnosticBuilder_Chaining(t *testing.T) {
	t.Parallel()

	builder := fix.NewEditBuilder()
	builder.ReplaceRange(0, 1, "a")
	builder.ReplaceRange(2, 3, "b")

	pos := tplast.SourcePosition{StartLine: 1, StartColumn: 2, EndLine: 1, EndColumn: 5}
	diag := lint.NewDiagnosticAt("VT001", "x.vue", pos, "msg").
		WithRuleName("html-quotes").
		WithSeverity(config.SeverityError).
		WithSuggestion("use double quotes").
		WithFix(builder).
		WithFix(nil).
		WithEdit(fix.TextEdit{StartOffset: 4, EndOffset: 4, NewText: "c"}).
		Build()

	assert.Equal(t, "html-quotes", diag.RuleName)
	assert.Equal(t, config.SeverityError, diag.Severity)
	assert.Equal(t, "use double quotes", diag.Suggestion)
	assert.Equal(t, pos, diag.SourcePosition())
	assert.True(t, diag.HasFix())
	require.Len(t, diag.FixEdits, 3)
	assert.Equal(t, "c", diag.FixEdits[2].NewText)
}
