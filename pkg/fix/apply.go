package fix

import "bytes"

// ApplyEdits returns content with edits applied. The edits must be sorted and
// free of overlaps; run them through PrepareEdits or PrepareEditsFiltered first.
// content itself is never modified.
func ApplyEdits(content []byte, edits []TextEdit) []byte {
	if len(edits) == 0 {
		return content
	}

	size := len(content)
	for _, e := range edits {
		size += len(e.NewText) - e.Len()
	}

	var out bytes.Buffer
	out.Grow(max(size, 0))

	cursor := 0
	for _, e := range edits {
		out.Write(content[cursor:e.StartOffset])
		out.WriteString(e.NewText)
		cursor = e.EndOffset
	}
	out.Write(content[cursor:])

	return out.Bytes()
}
