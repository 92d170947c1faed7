package green

import (
	"errors"
	"fmt"
)

// Sentinel errors reported by green tree operations.
var (
	// ErrInvalidChildIndex is returned when a child index or range is out of bounds.
	ErrInvalidChildIndex = errors.New("invalid child index")

	// ErrInvalidElement is returned when the zero Element is used as a child.
	ErrInvalidElement = errors.New("invalid element")

	// ErrUnbalancedTree is returned when builder calls do not nest properly.
	ErrUnbalancedTree = errors.New("unbalanced tree")

	// ErrInvalidCheckpoint is returned when a checkpoint no longer matches the
	// builder state it was taken from.
	ErrInvalidCheckpoint = errors.New("invalid checkpoint")
)

// IndexError describes an out-of-bounds child access.
type IndexError struct {
	// Index is the offending index (or range start).
	Index int

	// End is the range end for splice operations, or -1 for single-index access.
	End int

	// Len is the number of children of the node.
	Len int
}

func (e *IndexError) Error() string {
	if e.End >= 0 {
		return fmt.Sprintf("child range %d..%d out of bounds for %d children", e.Index, e.End, e.Len)
	}
	return fmt.Sprintf("child index %d out of bounds for %d children", e.Index, e.Len)
}

// Unwrap returns ErrInvalidChildIndex.
func (e *IndexError) Unwrap() error {
	return ErrInvalidChildIndex
}

// BuildError describes a rejected Builder call.
type BuildError struct {
	// Op names the builder operation, e.g. "finish_node".
	Op string

	// Reason is a human-readable description.
	Reason string

	// Err is the sentinel classifying the failure.
	Err error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Reason, e.Err)
}

// Unwrap returns the classifying sentinel.
func (e *BuildError) Unwrap() error {
	return e.Err
}
