package lint_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/vuelint/pkg/config"
	"github.com/yaklabco/vuelint/pkg/fix"
	"github.com/yaklabco/vuelint/pkg/lint"
	"github.com/yaklabco/vuelint/pkg/parser/vue"
	"github.com/yaklabco/vuelint/pkg/tplast"
)

// stubParser returns canned snapshots or errors.
type stubParser struct {
	err error
}

func (p *stubParser) Parse(_ context.Context, path string, content []byte) (*tplast.FileSnapshot, error) {
	if p.err != nil {
		return nil, p.err
	}
	return tplast.NewFileSnapshot(path, content), nil
}

// staticRule returns the same diagnostics on every call.
type staticRule struct {
	lint.BaseRule
	diags []lint.Diagnostic
	err   error
	calls int
}

func newStaticRule(id, name string, fixable bool, diags ...lint.Diagnostic) *staticRule {
	return &staticRule{
		BaseRule: lint.NewBaseRule(id, name, "test rule", []string{"test"}, fixable),
		diags:    diags,
	}
}

func (r *staticRule) Apply(_ *lint.RuleContext) ([]lint.Diagnostic, error) {
	r.calls++
	out := make([]lint.Diagnostic, len(r.diags))
	copy(out, r.diags)
	return out, r.err
}

// singleQuoteRule flags every attribute value that starts with a single quote
// and fixes it by swapping the delimiters.
type singleQuoteRule struct {
	lint.BaseRule
}

func newSingleQuoteRule() *singleQuoteRule {
	return &singleQuoteRule{
		BaseRule: lint.NewBaseRule("VT900", "no-single-quotes", "test rule", []string{"test"}, true),
	}
}

func (r *singleQuoteRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic
	for _, attr := range ctx.ValuedAttributes() {
		raw := attr.ValueText()
		if !strings.HasPrefix(raw, "'") {
			continue
		}
		edit := fix.TextEdit{
			StartOffset: attr.Value.StartOffset,
			EndOffset:   attr.Value.EndOffset,
			NewText:     `"` + strings.Trim(raw, "'") + `"`,
		}
		diags = append(diags, lint.NewDiagnosticInRange(r.ID(), ctx.File, *attr.Value, "single quotes").
			WithEdit(edit).
			Build())
	}
	return diags, nil
}

// truncateRule drops the last byte of the file, producing broken markup.
type truncateRule struct {
	lint.BaseRule
}

func (r *truncateRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	n := len(ctx.File.Content)
	if n == 0 {
		return nil, nil
	}
	return []lint.Diagnostic{
		lint.NewDiagnosticAt(r.ID(), ctx.File.Path, tplast.SourcePosition{StartLine: 1, StartColumn: 1}, "truncate").
			WithEdit(fix.TextEdit{StartOffset: n - 1, EndOffset: n}).
			Build(),
	}, nil
}

func newRegistry(rules ...lint.Rule) *lint.Registry {
	reg := lint.NewRegistry()
	for _, r := range rules {
		reg.Register(r)
	}
	return reg
}

func fixConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.Fix = true
	return cfg
}

func parseSnapshot(t *testing.T, path, content string) *tplast.FileSnapshot {
	t.Helper()
	snapshot, err := vue.New().Parse(context.Background(), path, []byte(content))
	require.NoError(t, err)
	return snapshot
}

// appendRule appends "!" inside every valued attribute that lacks one.
type appendRule struct {
	lint.BaseRule
}

func (r *appendRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic
	for _, attr := range ctx.ValuedAttributes() {
		raw := attr.ValueText()
		if strings.Contains(raw, "!") || len(raw) < 2 {
			continue
		}
		edit := fix.TextEdit{
			StartOffset: attr.Value.StartOffset,
			EndOffset:   attr.Value.EndOffset,
			NewText:     raw[:len(raw)-1] + "!" + raw[len(raw)-1:],
		}
		diags = append(diags, lint.NewDiagnosticInRange(r.ID(), ctx.File, *attr.Value, "append").
			WithEdit(edit).
			Build())
	}
	return diags, nil
}
