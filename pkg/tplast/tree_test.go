package tplast_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/vuelint/pkg/tplast"
)

// buildTestTree builds the tree for `<div id="a"><b :x='y'>t</b></div>`.
func buildTestTree() *tplast.FileSnapshot {
	content := `<div id="a"><b :x='y'>t</b></div>`
	snapshot := tplast.NewFileSnapshot("test.html", []byte(content))

	div := tplast.NewNode(tplast.NodeElement)
	div.Name = "div"
	div.Range = tplast.SourceRange{StartOffset: 0, EndOffset: len(content)}
	div.Attrs = []*tplast.Attribute{{
		Key:   tplast.SourceRange{StartOffset: 5, EndOffset: 7},
		Value: &tplast.SourceRange{StartOffset: 8, EndOffset: 11},
		Node:  div,
	}}

	bold := tplast.NewNode(tplast.NodeElement)
	bold.Name = "b"
	bold.Range = tplast.SourceRange{StartOffset: 12, EndOffset: 27}
	bold.Attrs = []*tplast.Attribute{{
		Key:   tplast.SourceRange{StartOffset: 15, EndOffset: 17},
		Value: &tplast.SourceRange{StartOffset: 18, EndOffset: 21},
		Node:  bold,
	}}

	text := tplast.NewNode(tplast.NodeText)
	text.Range = tplast.SourceRange{StartOffset: 22, EndOffset: 23}

	tplast.AppendChild(bold, text)
	tplast.AppendChild(div, bold)
	tplast.AppendChild(snapshot.Root, div)
	tplast.SetFile(snapshot.Root, snapshot)

	return snapshot
}

func TestWalk_PreOrder(t *testing.T) {
	t.Parallel()

	snapshot := buildTestTree()

	var visited []tplast.NodeKind
	err := tplast.Walk(snapshot.Root, func(n *tplast.Node) error {
		visited = append(visited, n.Kind)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []tplast.NodeKind{
		tplast.NodeDocument,
		tplast.NodeElement,
		tplast.NodeElement,
		tplast.NodeText,
	}, visited)
}

func TestWalk_StopsOnError(t *testing.T) {
	t.Parallel()

	snapshot := buildTestTree()
	stop := errors.New("stop")

	count := 0
	err := tplast.Walk(snapshot.Root, func(n *tplast.Node) error {
		count++
		if n.Kind == tplast.NodeElement {
			return stop
		}
		return nil
	})

	require.ErrorIs(t, err, stop)
	assert.Equal(t, 2, count)
	assert.NoError(t, tplast.Walk(nil, nil))
}

func TestAttributes_DocumentOrder(t *testing.T) {
	t.Parallel()

	snapshot := buildTestTree()
	attrs := tplast.Attributes(snapshot.Root)

	require.Len(t, attrs, 2)
	assert.Equal(t, "id", attrs[0].KeyText())
	assert.Equal(t, `"a"`, attrs[0].ValueText())
	assert.Equal(t, ":x", attrs[1].KeyText())
	assert.Equal(t, `'y'`, attrs[1].ValueText())
	assert.True(t, attrs[1].HasValue())
}

func TestNode_Helpers(t *testing.T) {
	t.Parallel()

	snapshot := buildTestTree()
	elements := tplast.FindByKind(snapshot.Root, tplast.NodeElement)
	require.Len(t, elements, 2)

	div := elements[0]
	assert.Equal(t, "div", div.Name)
	assert.True(t, div.HasChildren())
	assert.Len(t, div.Children(), 1)
	assert.NotNil(t, div.Attr("id"))
	assert.Nil(t, div.Attr("class"))
	assert.Equal(t, `<b :x='y'>t</b>`, string(elements[1].Text()))
	assert.Equal(t, "Element", tplast.NodeElement.String())
}

func TestAttribute_WithoutValue(t *testing.T) {
	t.Parallel()

	snapshot := tplast.NewFileSnapshot("x.html", []byte("<input disabled>"))
	input := tplast.NewNode(tplast.NodeElement)
	input.File = snapshot
	attr := &tplast.Attribute{Key: tplast.SourceRange{StartOffset: 7, EndOffset: 15}, Node: input}

	assert.False(t, attr.HasValue())
	assert.Equal(t, "disabled", attr.KeyText())
	assert.Empty(t, attr.ValueText())
}

func TestHasInvalidEOF(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		codes []tplast.ErrorCode
		want  bool
	}{
		{"no errors", nil, false},
		{"eof in tag", []tplast.ErrorCode{tplast.ErrEOFInTag}, true},
		{"eof in comment", []tplast.ErrorCode{tplast.ErrEOFInComment}, true},
		{"non eof errors only", []tplast.ErrorCode{tplast.ErrMissingEndTagName, tplast.ErrDuplicateAttribute}, false},
		{"mixed", []tplast.ErrorCode{tplast.ErrMissingAttrValue, tplast.ErrEOFInCDATA}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			snapshot := tplast.NewFileSnapshot("x.vue", nil)
			for _, code := range tt.codes {
				snapshot.Errors = append(snapshot.Errors, tplast.ParseError{Code: code})
			}
			assert.Equal(t, tt.want, snapshot.HasInvalidEOF())
		})
	}
}

func TestParseError_Error(t *testing.T) {
	t.Parallel()

	err := tplast.ParseError{Code: tplast.ErrEOFInTag, Offset: 12, Message: "unexpected end of file in tag"}
	assert.Equal(t, "eof-in-tag at offset 12: unexpected end of file in tag", err.Error())

	bare := tplast.ParseError{Code: tplast.ErrMissingEndTagName, Offset: 3}
	assert.Equal(t, "missing-end-tag-name at offset 3", bare.Error())
}
