package green

import (
	"io"
	"iter"
	"slices"
	"strings"

	"github.com/yaklabco/syntree/pkg/syntax"
)

// Node is an immutable interior node of the green tree.
//
// TextLen is the sum of the children's lengths. It is computed once, together
// with the relative start offset of every child, when the node is constructed.
type Node struct {
	kind     syntax.Kind
	children []Element
	offsets  []int
	textLen  int
	hash     uint64
}

// NewNode creates a node without interning it. The children slice is copied.
// Invalid (zero) elements are dropped.
func NewNode(kind syntax.Kind, children []Element) *Node {
	owned := make([]Element, 0, len(children))
	for _, child := range children {
		if child.IsValid() {
			owned = append(owned, child)
		}
	}
	return newNode(kind, owned, nodeHash(kind, owned))
}

// newNode takes ownership of children.
func newNode(kind syntax.Kind, children []Element, hash uint64) *Node {
	offsets := make([]int, len(children))
	textLen := 0
	for i, child := range children {
		offsets[i] = textLen
		textLen += child.TextLen()
	}
	return &Node{
		kind:     kind,
		children: children,
		offsets:  offsets,
		textLen:  textLen,
		hash:     hash,
	}
}

// Kind returns the node's kind.
func (n *Node) Kind() syntax.Kind {
	return n.kind
}

// TextLen returns the length of the text covered by the node.
func (n *Node) TextLen() int {
	return n.textLen
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	return len(n.children)
}

// Child returns the child at index i. It panics if i is out of range.
func (n *Node) Child(i int) Element {
	return n.children[i]
}

// ChildOffset returns the start offset of child i relative to the node start.
// It panics if i is out of range.
func (n *Node) ChildOffset(i int) int {
	return n.offsets[i]
}

// Children iterates over the direct children in order.
func (n *Node) Children() iter.Seq2[int, Element] {
	return func(yield func(int, Element) bool) {
		for i, child := range n.children {
			if !yield(i, child) {
				return
			}
		}
	}
}

// Tokens iterates over every leaf token of the subtree in source order.
func (n *Node) Tokens() iter.Seq[*Token] {
	return func(yield func(*Token) bool) {
		type frame struct {
			node *Node
			next int
		}

		stack := []frame{{node: n}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next == len(top.node.children) {
				stack = stack[:len(stack)-1]
				continue
			}

			child := top.node.children[top.next]
			top.next++

			if child.token != nil {
				if !yield(child.token) {
					return
				}
				continue
			}
			stack = append(stack, frame{node: child.node})
		}
	}
}

// ReplaceChild returns a new node whose child at index is replaced by el.
// The receiver is not modified. Siblings are shared with the new node.
func (n *Node) ReplaceChild(index int, el Element) (*Node, error) {
	if index < 0 || index >= len(n.children) {
		return nil, &IndexError{Index: index, End: -1, Len: len(n.children)}
	}
	if !el.IsValid() {
		return nil, ErrInvalidElement
	}

	children := slices.Clone(n.children)
	children[index] = el
	return newNode(n.kind, children, nodeHash(n.kind, children)), nil
}

// SpliceChildren returns a new node with children[start:end] replaced by
// replacement. The receiver is not modified.
func (n *Node) SpliceChildren(start, end int, replacement ...Element) (*Node, error) {
	if start < 0 || end < start || end > len(n.children) {
		return nil, &IndexError{Index: start, End: end, Len: len(n.children)}
	}
	for _, el := range replacement {
		if !el.IsValid() {
			return nil, ErrInvalidElement
		}
	}

	children := make([]Element, 0, len(n.children)-(end-start)+len(replacement))
	children = append(children, n.children[:start]...)
	children = append(children, replacement...)
	children = append(children, n.children[end:]...)
	return newNode(n.kind, children, nodeHash(n.kind, children)), nil
}

// InsertChild returns a new node with el inserted before index.
// An index equal to ChildCount appends.
func (n *Node) InsertChild(index int, el Element) (*Node, error) {
	return n.SpliceChildren(index, index, el)
}

// RemoveChild returns a new node without the child at index.
func (n *Node) RemoveChild(index int) (*Node, error) {
	if index < 0 || index >= len(n.children) {
		return nil, &IndexError{Index: index, End: -1, Len: len(n.children)}
	}
	return n.SpliceChildren(index, index+1)
}

// Equal reports whether n and other have the same kind and recursively equal
// children. Interned nodes usually compare by identity, but equality never
// depends on interning.
func (n *Node) Equal(other *Node) bool {
	if n == other {
		return true
	}
	if n == nil || other == nil {
		return false
	}
	if n.hash != other.hash || n.kind != other.kind ||
		n.textLen != other.textLen || len(n.children) != len(other.children) {
		return false
	}
	for i := range n.children {
		if !n.children[i].Equal(other.children[i]) {
			return false
		}
	}
	return true
}

// String returns the exact source text covered by the node.
func (n *Node) String() string {
	var sb strings.Builder
	sb.Grow(n.textLen)
	for tok := range n.Tokens() {
		sb.WriteString(tok.text)
	}
	return sb.String()
}

// WriteTo writes the node's source text to w.
func (n *Node) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for tok := range n.Tokens() {
		written, err := io.WriteString(w, tok.text)
		total += int64(written)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
