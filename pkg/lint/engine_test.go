package lint_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/vuelint/pkg/config"
	"github.com/yaklabco/vuelint/pkg/fix"
	"github.com/yaklabco/vuelint/pkg/lint"
	"github.com/yaklabco/vuelint/pkg/parser/vue"
)

func diagWithEdit(start, end int, text string) lint.Diagnostic {
	return lint.Diagnostic{
		Message:  "issue",
		FixEdits: []fix.TextEdit{{StartOffset: start, EndOffset: end, NewText: text}},
	}
}

func TestEngine_LintFile_NoRules(t *testing.T) {
	t.Parallel()

	engine := lint.NewEngine(vue.New(), lint.NewRegistry())
	result, err := engine.LintFile(context.Background(), "a.html", []byte("<p></p>"), config.NewConfig())

	require.NoError(t, err)
	require.NotNil(t, result.Snapshot)
	assert.Equal(t, "a.html", result.Snapshot.Path)
	assert.False(t, result.HasIssues())
	assert.False(t, result.HasFixes())
	assert.Empty(t, result.RuleErrors)
}

func TestEngine_LintFile_ParseError(t *testing.T) {
	t.Parallel()

	parseErr := errors.New("boom")
	engine := lint.NewEngine(&stubParser{err: parseErr}, lint.NewRegistry())

	_, err := engine.LintFile(context.Background(), "a.vue", nil, nil)
	require.ErrorIs(t, err, parseErr)
}

func TestEngine_LintFile_FillsDiagnostics(t *testing.T) {
	t.Parallel()

	rule := newStaticRule("VT001", "html-quotes", false, lint.Diagnostic{Message: "m"})
	cfg := config.NewConfig()
	cfg.Rules["VT001"] = config.RuleConfig{Severity: strPtr("error")}

	engine := lint.NewEngine(&stubParser{}, newRegistry(rule))
	result, err := engine.LintFile(context.Background(), "src/App.vue", []byte("x"), cfg)
	require.NoError(t, err)

	require.Len(t, result.Diagnostics, 1)
	diag := result.Diagnostics[0]
	assert.Equal(t, "src/App.vue", diag.FilePath)
	assert.Equal(t, "html-quotes", diag.RuleName)
	assert.Equal(t, config.SeverityError, diag.Severity)
	assert.Equal(t, 1, result.IssueCount())
	assert.Equal(t, 0, result.FixableCount())
}

func TestEngine_LintFile_RuleErrorDoesNotStopOthers(t *testing.T) {
	t.Parallel()

	failing := newStaticRule("VT001", "failing", false)
	failing.err = errors.New("rule failed")
	working := newStaticRule("VT002", "working", false, lint.Diagnostic{Message: "m"})

	engine := lint.NewEngine(&stubParser{}, newRegistry(failing, working))
	result, err := engine.LintFile(context.Background(), "a.vue", []byte("x"), nil)
	require.NoError(t, err)

	require.Contains(t, result.RuleErrors, "VT001")
	assert.EqualError(t, result.RuleErrors["VT001"], "rule failed")
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, "working", result.Diagnostics[0].RuleName)
}

func TestEngine_LintFile_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := lint.NewEngine(&stubParser{}, newRegistry(newStaticRule("VT001", "r", false)))
	_, err := engine.LintFile(ctx, "a.vue", []byte("x"), nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestEngine_LintFile_Edits(t *testing.T) {
	t.Parallel()

	content := []byte("0123456789")

	t.Run("only with fix enabled", func(t *testing.T) {
		t.Parallel()

		rule := newStaticRule("VT001", "r", true, diagWithEdit(0, 1, "x"))
		engine := lint.NewEngine(&stubParser{}, newRegistry(rule))

		result, err := engine.LintFile(context.Background(), "a.vue", content, config.NewConfig())
		require.NoError(t, err)
		assert.Equal(t, 1, result.FixableCount())
		assert.False(t, result.HasFixes())

		result, err = engine.LintFile(context.Background(), "a.vue", content, fixConfig())
		require.NoError(t, err)
		assert.True(t, result.HasFixes())
	})

	t.Run("conflicts are skipped", func(t *testing.T) {
		t.Parallel()

		rule := newStaticRule("VT001", "r", true,
			diagWithEdit(5, 8, "late"),
			diagWithEdit(2, 6, "early"),
		)
		engine := lint.NewEngine(&stubParser{}, newRegistry(rule))

		result, err := engine.LintFile(context.Background(), "a.vue", content, fixConfig())
		require.NoError(t, err)
		require.Len(t, result.Edits, 1)
		assert.Equal(t, "early", result.Edits[0].NewText)
		require.Len(t, result.SkippedEdits, 1)
		assert.True(t, result.EditConflicts)
	})

	t.Run("invalid edits drop all fixes", func(t *testing.T) {
		t.Parallel()

		rule := newStaticRule("VT001", "r", true, diagWithEdit(0, 1, "x"), diagWithEdit(5, 50, "y"))
		engine := lint.NewEngine(&stubParser{}, newRegistry(rule))

		result, err := engine.LintFile(context.Background(), "a.vue", content, fixConfig())
		require.NoError(t, err)
		assert.Empty(t, result.Edits)
		assert.True(t, result.EditConflicts)
		assert.Len(t, result.Diagnostics, 2)
	})
}
