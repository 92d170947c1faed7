// Package edit applies text edits to syntax trees as persistent updates.
//
// An edit replaces a byte range of the tree's text. It is applied by
// rewriting the single token that covers the range, which rebuilds only the
// spine from that token to the root. The edited text must lex back to a
// single token of the same kind; otherwise the edit is refused and callers
// re-parse the edited text instead.
package edit

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/yaklabco/syntree/pkg/syntax"
)

var (
	// ErrInvalidEdit is wrapped by every ValidationError.
	ErrInvalidEdit = errors.New("invalid edit")

	// ErrEditSpansTokens is returned when an edit range is not inside one token.
	ErrEditSpansTokens = errors.New("edit spans more than one token")

	// ErrOverlappingEdits is wrapped by every ConflictError.
	ErrOverlappingEdits = errors.New("overlapping edits")

	// ErrTokenChanged is returned when the edited text of a token no longer
	// lexes as one token of its original kind.
	ErrTokenChanged = errors.New("edit changes token kind or boundaries")
)

// Relexer classifies the text of a single token. It reports false when text
// does not lex to exactly one token.
type Relexer func(text string) (syntax.Kind, bool)

// TextEdit replaces the bytes in Range with NewText.
type TextEdit struct {
	Range   syntax.TextRange
	NewText string
}

// Replace returns an edit replacing [start, end) with text.
func Replace(start, end int, text string) TextEdit {
	return TextEdit{Range: syntax.TextRange{Start: start, End: end}, NewText: text}
}

// Insert returns an edit inserting text at offset.
func Insert(offset int, text string) TextEdit {
	return Replace(offset, offset, text)
}

// Delete returns an edit removing [start, end).
func Delete(start, end int) TextEdit {
	return Replace(start, end, "")
}

func (e TextEdit) String() string {
	return e.Range.String() + " " + strconv.Quote(e.NewText)
}

// ValidationError describes an edit that does not fit the text.
type ValidationError struct {
	Edit    TextEdit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit %s: %s", e.Edit.Range, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidEdit
}

// ConflictError describes two edits whose ranges overlap.
type ConflictError struct {
	First  TextEdit
	Second TextEdit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: %s and %s", e.First.Range, e.Second.Range)
}

func (e *ConflictError) Unwrap() error {
	return ErrOverlappingEdits
}
