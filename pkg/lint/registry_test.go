package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/vuelint/pkg/lint"
)

func TestRegistry_Lookup(t *testing.T) {
	t.Parallel()

	rule := newStaticRule("VT001", "html-quotes", true)
	reg := newRegistry(rule)
	reg.RegisterAlias("vue/html-quotes", "VT001")

	got, ok := reg.Get("VT001")
	require.True(t, ok)
	assert.Same(t, rule, got)

	got, ok = reg.Get("html-quotes")
	require.True(t, ok)
	assert.Same(t, rule, got)

	_, ok = reg.Get("vue/html-quotes")
	assert.False(t, ok, "Get does not follow aliases")

	_, ok = reg.GetByID("html-quotes")
	assert.False(t, ok)

	for _, key := range []string{"VT001", "html-quotes", "vue/html-quotes"} {
		id, resolved, ok := reg.Resolve(key)
		require.True(t, ok, key)
		assert.Equal(t, "VT001", id)
		assert.Same(t, rule, resolved)
	}

	_, _, ok = reg.Resolve("vue/no-such-rule")
	assert.False(t, ok)
}

func TestRegistry_AliasToUnknownRule(t *testing.T) {
	t.Parallel()

	reg := lint.NewRegistry()
	reg.RegisterAlias("legacy", "VT999")

	_, _, ok := reg.Resolve("legacy")
	assert.False(t, ok)
}

func TestRegistry_Aliases(t *testing.T) {
	t.Parallel()

	reg := newRegistry(newStaticRule("VT001", "html-quotes", true))
	reg.RegisterAlias("vue/html-quotes", "VT001")
	reg.RegisterAlias("html-quote", "VT001")
	reg.RegisterAlias("other", "VT002")

	assert.Equal(t, []string{"html-quote", "vue/html-quotes"}, reg.Aliases("VT001"))
	assert.Empty(t, reg.Aliases("VT003"))
}

func TestRegistry_SortedOutput(t *testing.T) {
	t.Parallel()

	reg := newRegistry(
		newStaticRule("VT003", "c", false),
		newStaticRule("VT001", "a", false),
		newStaticRule("VT002", "b", false),
	)

	assert.Equal(t, []string{"VT001", "VT002", "VT003"}, reg.IDs())

	rules := reg.Rules()
	require.Len(t, rules, 3)
	assert.Equal(t, "VT001", rules[0].ID())
	assert.Equal(t, "VT003", rules[2].ID())
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	t.Parallel()

	first := newStaticRule("VT001", "html-quotes", false)
	second := newStaticRule("VT001", "html-quotes", true)
	reg := newRegistry(first, second)

	got, ok := reg.GetByID("VT001")
	require.True(t, ok)
	assert.Same(t, second, got)
	assert.Len(t, reg.Rules(), 1)
}

func TestBaseRule_Defaults(t *testing.T) {
	t.Parallel()

	rule := lint.NewBaseRule("VT001", "html-quotes", "desc", []string{"template"}, true)

	assert.Equal(t, "VT001", rule.ID())
	assert.Equal(t, "html-quotes", rule.Name())
	assert.Equal(t, "desc", rule.Description())
	assert.Equal(t, []string{"template"}, rule.Tags())
	assert.True(t, rule.CanFix())
	assert.True(t, rule.DefaultEnabled())
	assert.Equal(t, "warning", string(rule.DefaultSeverity()))

	diags, err := rule.Apply(nil)
	require.NoError(t, err)
	assert.Empty(t, diags)
}
