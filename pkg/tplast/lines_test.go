package tplast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/vuelint/pkg/tplast"
)

func TestBuildLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected []tplast.LineInfo
	}{
		{
			name:     "empty content",
			content:  "",
			expected: []tplast.LineInfo{},
		},
		{
			name:    "single line no newline",
			content: "<a>",
			expected: []tplast.LineInfo{
				{StartOffset: 0, NewlineStart: 3, EndOffset: 3},
			},
		},
		{
			name:    "trailing LF",
			content: "<a>\n",
			expected: []tplast.LineInfo{
				{StartOffset: 0, NewlineStart: 3, EndOffset: 4},
				{StartOffset: 4, NewlineStart: 4, EndOffset: 4},
			},
		},
		{
			name:    "CRLF",
			content: "<a>\r\n<b>",
			expected: []tplast.LineInfo{
				{StartOffset: 0, NewlineStart: 3, EndOffset: 5},
				{StartOffset: 5, NewlineStart: 8, EndOffset: 8},
			},
		},
		{
			name:    "only newline",
			content: "\n",
			expected: []tplast.LineInfo{
				{StartOffset: 0, NewlineStart: 0, EndOffset: 1},
				{StartOffset: 1, NewlineStart: 1, EndOffset: 1},
			},
		},
		{
			name:    "lone CR is not a line break",
			content: "a\rb",
			expected: []tplast.LineInfo{
				{StartOffset: 0, NewlineStart: 3, EndOffset: 3},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tplast.BuildLines([]byte(tt.content)))
		})
	}
}

func TestFileSnapshot_LineAt(t *testing.T) {
	t.Parallel()

	snapshot := tplast.NewFileSnapshot("x.vue", []byte("line1\nline2\nline3"))

	tests := []struct {
		name     string
		offset   int
		wantLine int
		wantCol  int
	}{
		{"start of file", 0, 1, 1},
		{"newline of line 1", 5, 1, 6},
		{"start of line 2", 6, 2, 1},
		{"middle of line 3", 14, 3, 3},
		{"end of file", 17, 3, 6},
		{"negative", -1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			line, col := snapshot.LineAt(tt.offset)
			assert.Equal(t, tt.wantLine, line)
			assert.Equal(t, tt.wantCol, col)
		})
	}
}

func TestFileSnapshot_OffsetRoundTrip(t *testing.T) {
	t.Parallel()

	content := "<template>\n  <div id='a'></div>\n</template>\n"
	snapshot := tplast.NewFileSnapshot("x.vue", []byte(content))

	for offset := range len(content) {
		line, col := snapshot.LineAt(offset)
		got, ok := snapshot.Offset(line, col)
		require.True(t, ok, "offset %d", offset)
		assert.Equal(t, offset, got)
	}

	_, ok := snapshot.Offset(0, 1)
	assert.False(t, ok)
	_, ok = snapshot.Offset(1, 0)
	assert.False(t, ok)
	_, ok = snapshot.Offset(99, 1)
	assert.False(t, ok)
}

func TestFileSnapshot_LineContent(t *testing.T) {
	t.Parallel()

	snapshot := tplast.NewFileSnapshot("x.html", []byte("<p>\r\n</p>"))

	assert.Equal(t, "<p>", string(snapshot.LineContent(1)))
	assert.Equal(t, "</p>", string(snapshot.LineContent(2)))
	assert.Nil(t, snapshot.LineContent(3))
	assert.Equal(t, 2, snapshot.LineCount())
}

func TestFileSnapshot_Position(t *testing.T) {
	t.Parallel()

	snapshot := tplast.NewFileSnapshot("x.html", []byte("<p>\n<a b='c'>"))
	pos := snapshot.Position(tplast.SourceRange{StartOffset: 9, EndOffset: 12})

	assert.Equal(t, tplast.SourcePosition{StartLine: 2, StartColumn: 6, EndLine: 2, EndColumn: 9}, pos)
	assert.True(t, pos.IsValid())
	assert.Equal(t, tplast.Position{Line: 2, Column: 6}, pos.Start())
	assert.Equal(t, "'c'", string(snapshot.Text(tplast.SourceRange{StartOffset: 9, EndOffset: 12})))
	assert.Nil(t, snapshot.Text(tplast.SourceRange{StartOffset: 5, EndOffset: 99}))
}
