package edit

import (
	"fmt"
	"slices"
)

// Validate checks that every edit lies within text of length textLen.
// It returns the first problem found.
func Validate(edits []TextEdit, textLen int) error {
	for _, e := range edits {
		switch {
		case e.Range.Start < 0:
			return &ValidationError{Edit: e, Message: "start offset is negative"}
		case e.Range.End < e.Range.Start:
			return &ValidationError{Edit: e, Message: "end offset is before start offset"}
		case e.Range.End > textLen:
			return &ValidationError{
				Edit:    e,
				Message: fmt.Sprintf("end offset %d exceeds text length %d", e.Range.End, textLen),
			}
		}
	}
	return nil
}

// Prepare validates the edits and returns a sorted copy. Overlapping edits
// are rejected with a ConflictError. Two insertions at the same offset
// conflict as well, since their order would be ambiguous.
func Prepare(edits []TextEdit, textLen int) ([]TextEdit, error) {
	if len(edits) == 0 {
		return nil, nil
	}
	if err := Validate(edits, textLen); err != nil {
		return nil, err
	}

	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b TextEdit) int {
		if a.Range.Start != b.Range.Start {
			return a.Range.Start - b.Range.Start
		}
		return a.Range.End - b.Range.End
	})

	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if cur.Range.Start < prev.Range.End || cur.Range.Start == prev.Range.Start {
			return nil, &ConflictError{First: prev, Second: cur}
		}
	}
	return sorted, nil
}
