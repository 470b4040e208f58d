package fix

import (
	"cmp"
	"fmt"
	"slices"
)

// ValidationError reports an edit whose range does not fit the content.
type ValidationError struct {
	Edit    TextEdit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.StartOffset, e.Edit.EndOffset, e.Message)
}

// ConflictError reports two edits that overlap.
type ConflictError struct {
	First  TextEdit
	Second TextEdit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.First.StartOffset, e.First.EndOffset,
		e.Second.StartOffset, e.Second.EndOffset)
}

// ValidateEdits returns the first edit whose range lies outside [0, contentLen]
// or is inverted.
func ValidateEdits(edits []TextEdit, contentLen int) error {
	for _, edit := range edits {
		switch {
		case edit.StartOffset < 0:
			return &ValidationError{Edit: edit, Message: "start offset is negative"}
		case edit.EndOffset < edit.StartOffset:
			return &ValidationError{Edit: edit, Message: "end offset is before start offset"}
		case edit.EndOffset > contentLen:
			return &ValidationError{
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", edit.EndOffset, contentLen),
			}
		}
	}
	return nil
}

// SortEdits orders edits by start offset, then end offset. The sort is stable
// so edits with identical ranges keep their reporting order.
func SortEdits(edits []TextEdit) {
	slices.SortStableFunc(edits, func(a, b TextEdit) int {
		if c := cmp.Compare(a.StartOffset, b.StartOffset); c != 0 {
			return c
		}
		return cmp.Compare(a.EndOffset, b.EndOffset)
	})
}

// PrepareEdits validates and sorts a copy of edits. Any overlap is an error.
func PrepareEdits(edits []TextEdit, contentLen int) ([]TextEdit, error) {
	if len(edits) == 0 {
		return edits, nil
	}
	if err := ValidateEdits(edits, contentLen); err != nil {
		return nil, err
	}

	sorted := slices.Clone(edits)
	SortEdits(sorted)

	for i := 1; i < len(sorted); i++ {
		if sorted[i].StartOffset < sorted[i-1].EndOffset {
			return nil, &ConflictError{First: sorted[i-1], Second: sorted[i]}
		}
	}
	return sorted, nil
}

// MergeAndFilterConflicts walks sorted edits and keeps the earliest of any
// overlapping pair. Overlapping deletions are merged into one deletion over
// their union instead. It returns the accepted edits, the skipped ones and
// the number of merges performed.
func MergeAndFilterConflicts(edits []TextEdit) (accepted, skipped []TextEdit, merged int) {
	if len(edits) == 0 {
		return nil, nil, 0
	}

	accepted = make([]TextEdit, 0, len(edits))
	current := edits[0]

	for _, edit := range edits[1:] {
		switch {
		case edit.StartOffset >= current.EndOffset:
			accepted = append(accepted, current)
			current = edit
		case current.NewText == "" && edit.NewText == "":
			current.EndOffset = max(current.EndOffset, edit.EndOffset)
			merged++
		default:
			skipped = append(skipped, edit)
		}
	}
	accepted = append(accepted, current)

	return accepted, skipped, merged
}

// PrepareEditsFiltered validates and sorts a copy of edits, then resolves
// overlaps with MergeAndFilterConflicts. Only range validation fails.
func PrepareEditsFiltered(edits []TextEdit, contentLen int) ([]TextEdit, []TextEdit, int, error) {
	if len(edits) == 0 {
		return nil, nil, 0, nil
	}
	if err := ValidateEdits(edits, contentLen); err != nil {
		return nil, nil, 0, err
	}

	sorted := slices.Clone(edits)
	SortEdits(sorted)

	accepted, skipped, merged := MergeAndFilterConflicts(sorted)
	return accepted, skipped, merged, nil
}
