package lint_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/vuelint/pkg/config"
	"github.com/yaklabco/vuelint/pkg/lint"
	"github.com/yaklabco/vuelint/pkg/tplast"
)

func TestNewRuleContext(t *testing.T) {
	t.Parallel()

	snapshot := parseSnapshot(t, "a.html", `<p class="x"></p>`)
	cfg := config.NewConfig()
	ruleCfg := &config.RuleConfig{}

	rc := lint.NewRuleContext(context.Background(), snapshot, cfg, ruleCfg)

	assert.Same(t, snapshot, rc.File)
	assert.Same(t, snapshot.Root, rc.Root)
	assert.Same(t, cfg, rc.Config)
	assert.Same(t, ruleCfg, rc.RuleConfig)
	require.NotNil(t, rc.Builder)
	assert.True(t, rc.Builder.Empty())
	assert.False(t, rc.Cancelled())
}

func TestNewRuleContext_NilFile(t *testing.T) {
	t.Parallel()

	rc := lint.NewRuleContext(context.Background(), nil, nil, nil)
	assert.Nil(t, rc.Root)
	assert.Empty(t, rc.Attributes())
	assert.Empty(t, rc.Elements())
}

func TestRuleContext_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	rc := lint.NewRuleContext(ctx, nil, nil, nil)
	assert.False(t, rc.Cancelled())

	cancel()
	assert.True(t, rc.Cancelled())
}

func TestRuleContext_Attributes(t *testing.T) {
	t.Parallel()

	content := "<template>\n  <div id='a' hidden>\n    <input :value=\"v\" disabled type=text>\n  </div>\n</template>\n"
	snapshot := parseSnapshot(t, "Comp.vue", content)
	rc := lint.NewRuleContext(context.Background(), snapshot, nil, nil)

	var names []string
	for _, el := range rc.Elements() {
		names = append(names, el.Name)
	}
	assert.Equal(t, []string{"template", "div", "input"}, names)

	keys := func(attrs []*tplast.Attribute) []string {
		out := make([]string, 0, len(attrs))
		for _, a := range attrs {
			out = append(out, a.KeyText())
		}
		return out
	}
	assert.Equal(t, []string{"id", "hidden", ":value", "disabled", "type"}, keys(rc.Attributes()))
	assert.Equal(t, []string{"id", ":value", "type"}, keys(rc.ValuedAttributes()))

	// Cached: the same backing slice is returned.
	first := rc.Attributes()
	second := rc.Attributes()
	require.NotEmpty(t, first)
	assert.Same(t, first[0], second[0])
}

func TestRuleContext_Options(t *testing.T) {
	t.Parallel()

	ruleCfg := &config.RuleConfig{Options: map[string]any{
		"style": "single",
		"count": 3,
	}}
	rc := lint.NewRuleContext(context.Background(), nil, nil, ruleCfg)

	assert.Equal(t, "single", rc.OptionString("style", "double"))
	assert.Equal(t, "fallback", rc.OptionString("missing", "fallback"))
	assert.Equal(t, "fallback", rc.OptionString("count", "fallback"), "wrong type falls back")
	assert.Equal(t, 3, rc.Option("count", 0))

	empty := lint.NewRuleContext(context.Background(), nil, nil, nil)
	assert.Equal(t, "double", empty.OptionString("style", "double"))
}
