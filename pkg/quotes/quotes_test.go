package quotes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/vuelint/pkg/quotes"
)

func TestParseStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    quotes.Style
		wantErr bool
	}{
		{"empty defaults to double", "", quotes.StyleDouble, false},
		{"double", "double", quotes.StyleDouble, false},
		{"single", "single", quotes.StyleSingle, false},
		{"unknown", "backtick", "", true},
		{"case sensitive", "Single", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := quotes.ParseStyle(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, quotes.ErrInvalidStyle)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	double := quotes.NewConfig(quotes.StyleDouble)
	assert.Equal(t, byte('"'), double.Char)
	assert.Equal(t, byte('\''), double.Other)
	assert.Equal(t, "double quotes", double.Name)
	assert.Equal(t, "&quot;", double.Escaped)

	single := quotes.NewConfig(quotes.StyleSingle)
	assert.Equal(t, byte('\''), single.Char)
	assert.Equal(t, byte('"'), single.Other)
	assert.Equal(t, "single quotes", single.Name)
	assert.Equal(t, "&apos;", single.Escaped)

	// Anything that is not "single" falls back to double.
	assert.Equal(t, double, quotes.NewConfig("whatever"))
}

func TestConfig_ComplementaryPair(t *testing.T) {
	t.Parallel()

	for _, style := range []quotes.Style{quotes.StyleDouble, quotes.StyleSingle} {
		cfg := quotes.NewConfig(style)
		assert.NotEqual(t, cfg.Char, cfg.Other)
		assert.ElementsMatch(t, []byte{'"', '\''}, []byte{cfg.Char, cfg.Other})
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key  string
		want bool
	}{
		{"", false},
		{":", true},
		{":foo", true},
		{"v-bind:foo", true},
		{"v-bind:", true},
		{"v-bind", false},
		{"v-bin:foo", false},
		{"foo", false},
		{"@click", false},
		{"v-on:click", false},
		{"#default", false},
		{"data-x", false},
		{" :foo", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, quotes.Classify(tt.key))
		})
	}
}

func TestCheck(t *testing.T) {
	t.Parallel()

	double := quotes.NewConfig(quotes.StyleDouble)
	single := quotes.NewConfig(quotes.StyleSingle)

	tests := []struct {
		name      string
		cfg       quotes.Config
		key       string
		raw       string
		wantFix   string
		wantValid bool
	}{
		{
			name:      "double conforming",
			cfg:       double,
			key:       "class",
			raw:       `"hello"`,
			wantValid: true,
		},
		{
			name:    "double expected, single found",
			cfg:     single,
			key:     "class",
			raw:     `"hello"`,
			wantFix: `'hello'`,
		},
		{
			name:    "literal escapes target quote",
			cfg:     double,
			key:     "title",
			raw:     `'say "hi"'`,
			wantFix: `"say &quot;hi&quot;"`,
		},
		{
			name:    "bound swaps quote characters",
			cfg:     double,
			key:     ":x",
			raw:     `'a === "b"'`,
			wantFix: `"a === 'b'"`,
		},
		{
			name:    "v-bind long form swaps quote characters",
			cfg:     double,
			key:     "v-bind:x",
			raw:     `'a === "b"'`,
			wantFix: `"a === 'b'"`,
		},
		{
			name:    "unquoted value",
			cfg:     double,
			key:     "type",
			raw:     `value`,
			wantFix: `"value"`,
		},
		{
			name:    "unquoted bound value",
			cfg:     single,
			key:     ":count",
			raw:     `n+1`,
			wantFix: `'n+1'`,
		},
		{
			name:    "single literal escapes apostrophe",
			cfg:     single,
			key:     "alt",
			raw:     `"it's"`,
			wantFix: `'it&apos;s'`,
		},
		{
			name:    "single bound swaps inner single quotes",
			cfg:     single,
			key:     ":label",
			raw:     `"'a' + b"`,
			wantFix: `'"a" + b'`,
		},
		{
			name:    "literal keeps other quote",
			cfg:     double,
			key:     "title",
			raw:     `'it''s'`,
			wantFix: `"it''s"`,
		},
		{
			name:    "empty quoted value",
			cfg:     double,
			key:     "class",
			raw:     `''`,
			wantFix: `""`,
		},
		{
			name:      "empty raw text is ignored",
			cfg:       double,
			key:       "class",
			raw:       ``,
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			span := quotes.Span{Start: 10, End: 10 + len(tt.raw)}
			occ := quotes.NewOccurrence(tt.key, tt.raw, span)

			v, found := quotes.Check(occ, tt.cfg)
			if tt.wantValid {
				assert.False(t, found)
				return
			}

			require.True(t, found)
			assert.Equal(t, span, v.Span)
			assert.Equal(t, "Expected to be enclosed by "+tt.cfg.Name+".", v.Message)
			require.NotNil(t, v.Fix)
			assert.Equal(t, span, v.Fix.Span)
			assert.Equal(t, tt.wantFix, v.Fix.Text)
		})
	}
}

func TestComputeFix_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []struct {
		key string
		raw string
	}{
		{"class", `'a b'`},
		{"title", `'say "hi"'`},
		{":x", `'a === "b"'`},
		{"v-bind:y", `"x"`},
		{"id", `plain`},
		{"alt", `"it's"`},
	}

	for _, style := range []quotes.Style{quotes.StyleDouble, quotes.StyleSingle} {
		cfg := quotes.NewConfig(style)
		for _, in := range inputs {
			occ := quotes.NewOccurrence(in.key, in.raw, quotes.Span{})
			first := quotes.ComputeFix(occ, cfg)

			again := quotes.NewOccurrence(in.key, first, quotes.Span{})
			_, found := quotes.Check(again, cfg)
			assert.False(t, found, "style=%s raw=%s fixed=%s", style, in.raw, first)
		}
	}
}

func TestComputeFix_MalformedSpanKeepsContent(t *testing.T) {
	t.Parallel()

	cfg := quotes.NewConfig(quotes.StyleDouble)

	// Opening quote without a matching close: nothing is stripped.
	occ := quotes.NewOccurrence("class", `'abc`, quotes.Span{})
	assert.Equal(t, `"'abc"`, quotes.ComputeFix(occ, cfg))

	occ = quotes.NewOccurrence("class", `'`, quotes.Span{})
	assert.Equal(t, `"'"`, quotes.ComputeFix(occ, cfg))
}

func TestCheckDocument(t *testing.T) {
	t.Parallel()

	cfg := quotes.NewConfig(quotes.StyleDouble)
	occs := []quotes.Occurrence{
		quotes.NewOccurrence("a", `"ok"`, quotes.Span{Start: 0, End: 4}),
		quotes.NewOccurrence("b", `'bad'`, quotes.Span{Start: 5, End: 10}),
		quotes.NewOccurrence("c", `bare`, quotes.Span{Start: 11, End: 15}),
	}

	t.Run("reports in order", func(t *testing.T) {
		t.Parallel()

		got := quotes.CheckDocument(quotes.Document{Occurrences: occs}, cfg)
		require.Len(t, got, 2)
		assert.Equal(t, 5, got[0].Span.Start)
		assert.Equal(t, `"bad"`, got[0].Fix.Text)
		assert.Equal(t, 11, got[1].Span.Start)
		assert.Equal(t, `"bare"`, got[1].Fix.Text)
	})

	t.Run("invalid EOF suppresses everything", func(t *testing.T) {
		t.Parallel()

		got := quotes.CheckDocument(quotes.Document{InvalidEOF: true, Occurrences: occs}, cfg)
		assert.Empty(t, got)
	})

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, quotes.CheckDocument(quotes.Document{}, cfg))
	})
}
