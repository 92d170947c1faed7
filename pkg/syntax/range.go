package syntax

import "fmt"

// TextRange is a half-open byte range [Start, End) in source text.
type TextRange struct {
	// Start is the byte index where the range begins (inclusive).
	Start int

	// End is the byte index where the range ends (exclusive).
	End int
}

// NewRange returns the range [start, end). It panics if start > end.
func NewRange(start, end int) TextRange {
	if start > end {
		panic(fmt.Sprintf("syntax: invalid range %d..%d", start, end))
	}
	return TextRange{Start: start, End: end}
}

// RangeAt returns the range of length n starting at offset.
func RangeAt(offset, n int) TextRange {
	return NewRange(offset, offset+n)
}

// Len returns the length of the range in bytes.
func (r TextRange) Len() int {
	return r.End - r.Start
}

// IsEmpty returns true if the range has zero length.
func (r TextRange) IsEmpty() bool {
	return r.Start == r.End
}

// Contains returns true if offset is within [Start, End).
func (r TextRange) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// ContainsRange returns true if other lies entirely within r.
// An empty range at End is considered contained.
func (r TextRange) ContainsRange(other TextRange) bool {
	return r.Start <= other.Start && other.End <= r.End
}

// Shift returns the range moved right by offset bytes.
func (r TextRange) Shift(offset int) TextRange {
	return TextRange{Start: r.Start + offset, End: r.End + offset}
}

// String formats the range as "start..end".
func (r TextRange) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}
