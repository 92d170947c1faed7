// Package red implements the navigation tree: a lazy, position-aware view over
// a green tree.
//
// A red node wraps a green node together with its absolute text offset, its
// index in the parent and a link to its parent. Red nodes are created on
// demand while traversing and are never cached; two traversals of the same
// green tree produce independent red nodes. Each goroutine that navigates a
// tree should start from its own NewRoot.
//
// Edits go through ReplaceChild, which path-copies the green spine from the
// edited node to the root and returns a fresh red root. Red nodes created
// before an edit keep describing the tree they were created from.
package red

import (
	"fmt"
	"iter"
	"sort"

	"github.com/yaklabco/syntree/pkg/green"
	"github.com/yaklabco/syntree/pkg/syntax"
)

// Node is an interior node of the red tree.
type Node struct {
	parent *Node
	green  *green.Node
	index  int
	offset int
}

// NewRoot wraps a green root node. The root starts at offset 0.
func NewRoot(root *green.Node) *Node {
	return &Node{green: root}
}

// Green returns the underlying green node.
func (n *Node) Green() *green.Node {
	return n.green
}

// Kind returns the node's kind.
func (n *Node) Kind() syntax.Kind {
	return n.green.Kind()
}

// TextLen returns the length of the text covered by the node.
func (n *Node) TextLen() int {
	return n.green.TextLen()
}

// TextOffset returns the absolute offset of the node's first byte.
func (n *Node) TextOffset() int {
	return n.offset
}

// TextRange returns the absolute range covered by the node.
func (n *Node) TextRange() syntax.TextRange {
	return syntax.RangeAt(n.offset, n.green.TextLen())
}

// IndexInParent returns the node's position among its parent's children.
// It is 0 for the root.
func (n *Node) IndexInParent() int {
	return n.index
}

// Parent returns the enclosing node, or nil at the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// IsRoot reports whether the node has no parent.
func (n *Node) IsRoot() bool {
	return n.parent == nil
}

// Root returns the root of the tree this node belongs to.
func (n *Node) Root() *Node {
	root := n
	for root.parent != nil {
		root = root.parent
	}
	return root
}

// Ancestors iterates from n to the root, n first.
func (n *Node) Ancestors() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for cur := n; cur != nil; cur = cur.parent {
			if !yield(cur) {
				return
			}
		}
	}
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	return n.green.ChildCount()
}

// Children iterates over the direct children, materializing each one as it
// is reached.
func (n *Node) Children() iter.Seq[Element] {
	return func(yield func(Element) bool) {
		for i := range n.green.ChildCount() {
			if !yield(n.child(i)) {
				return
			}
		}
	}
}

// ChildNodes iterates over the direct children that are nodes.
func (n *Node) ChildNodes() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for child := range n.Children() {
			if node, ok := child.AsNode(); ok {
				if !yield(node) {
					return
				}
			}
		}
	}
}

// FirstChildNode returns the first child that is a node.
func (n *Node) FirstChildNode() (*Node, bool) {
	for node := range n.ChildNodes() {
		return node, true
	}
	return nil, false
}

// NthChild returns the child at index i in constant time.
func (n *Node) NthChild(i int) (Element, bool) {
	if i < 0 || i >= n.green.ChildCount() {
		return Element{}, false
	}
	return n.child(i), true
}

// NextSibling returns the element after n in its parent.
func (n *Node) NextSibling() (Element, bool) {
	if n.parent == nil {
		return Element{}, false
	}
	return n.parent.NthChild(n.index + 1)
}

// PrevSibling returns the element before n in its parent.
func (n *Node) PrevSibling() (Element, bool) {
	if n.parent == nil {
		return Element{}, false
	}
	return n.parent.NthChild(n.index - 1)
}

// ChildContainingRange returns the single child whose range contains r.
//
// Children are contiguous, so the candidate is found by binary search over
// the children's end offsets. It returns false if r is inverted, lies
// outside the node or crosses a child boundary.
func (n *Node) ChildContainingRange(r syntax.TextRange) (Element, bool) {
	if r.End < r.Start || !n.TextRange().ContainsRange(r) {
		return Element{}, false
	}

	count := n.green.ChildCount()
	rel := r.Shift(-n.offset)

	// First child whose end lies past the range start.
	i := sort.Search(count, func(i int) bool {
		return n.childEnd(i) > rel.Start
	})
	if i == count {
		return Element{}, false
	}
	if n.green.ChildOffset(i) > rel.Start || rel.End > n.childEnd(i) {
		return Element{}, false
	}
	return n.child(i), true
}

// CoveringElement descends from n to the deepest element whose range
// contains r. It returns false if r is outside n.
func (n *Node) CoveringElement(r syntax.TextRange) (Element, bool) {
	if r.End < r.Start || !n.TextRange().ContainsRange(r) {
		return Element{}, false
	}

	cur := n
	for {
		child, ok := cur.ChildContainingRange(r)
		if !ok {
			return Element{node: cur}, true
		}
		next, isNode := child.AsNode()
		if !isNode {
			return child, true
		}
		cur = next
	}
}

// TokenAtOffset returns the token containing the byte at offset.
func (n *Node) TokenAtOffset(offset int) (*Token, bool) {
	if !n.TextRange().Contains(offset) {
		return nil, false
	}
	el, ok := n.CoveringElement(syntax.RangeAt(offset, 1))
	if !ok {
		return nil, false
	}
	return el.AsToken()
}

// Descendants iterates over n and every element below it in pre-order.
func (n *Node) Descendants() iter.Seq[Element] {
	return func(yield func(Element) bool) {
		for el := range n.walk() {
			if !yield(el) {
				return
			}
		}
	}
}

// walk is Descendants with each element's depth relative to n.
func (n *Node) walk() iter.Seq2[Element, int] {
	return func(yield func(Element, int) bool) {
		if !yield(Element{node: n}, 0) {
			return
		}

		type frame struct {
			node *Node
			next int
		}

		stack := []frame{{node: n}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next == top.node.ChildCount() {
				stack = stack[:len(stack)-1]
				continue
			}

			child := top.node.child(top.next)
			top.next++

			if !yield(child, len(stack)) {
				return
			}
			if child.node != nil {
				stack = append(stack, frame{node: child.node})
			}
		}
	}
}

// Tokens iterates over the leaf tokens below n in source order.
func (n *Node) Tokens() iter.Seq[*Token] {
	return func(yield func(*Token) bool) {
		for el := range n.Descendants() {
			if tok, ok := el.AsToken(); ok {
				if !yield(tok) {
					return
				}
			}
		}
	}
}

// ReplaceChild replaces the child at index with el and returns the root of
// the resulting tree.
//
// Only the green nodes on the path from n to the root are rebuilt; every
// other subtree is shared with the original tree. The original tree and all
// red nodes over it are unaffected. On error nothing is built.
func (n *Node) ReplaceChild(index int, el green.Element) (*Node, error) {
	updated, err := n.green.ReplaceChild(index, el)
	if err != nil {
		return nil, fmt.Errorf("replace child of %s: %w", n.TextRange(), err)
	}
	return n.rebuild(updated), nil
}

// ReplaceWith substitutes replacement for the node's green subtree and
// returns the new root. Called on a root, it simply wraps replacement.
// A nil replacement fails with green.ErrInvalidElement.
func (n *Node) ReplaceWith(replacement *green.Node) (*Node, error) {
	if replacement == nil {
		return nil, fmt.Errorf("replace node at %s: %w", n.TextRange(), green.ErrInvalidElement)
	}
	return n.rebuild(replacement), nil
}

// rebuild path-copies the spine above n with replacement in n's place.
// replacement must be non-nil.
func (n *Node) rebuild(replacement *green.Node) *Node {
	current := replacement
	for cur := n; cur.parent != nil; cur = cur.parent {
		parent, err := cur.parent.green.ReplaceChild(cur.index, green.NodeElement(current))
		if err != nil {
			// Parent links always carry a valid index.
			panic(fmt.Sprintf("red: corrupt parent link: %v", err))
		}
		current = parent
	}
	return NewRoot(current)
}

// String returns the exact source text covered by the node.
func (n *Node) String() string {
	return n.green.String()
}

func (n *Node) childEnd(i int) int {
	return n.green.ChildOffset(i) + n.green.Child(i).TextLen()
}

func (n *Node) child(i int) Element {
	greenChild := n.green.Child(i)
	offset := n.offset + n.green.ChildOffset(i)

	if node, ok := greenChild.AsNode(); ok {
		return Element{node: &Node{parent: n, green: node, index: i, offset: offset}}
	}
	tok, _ := greenChild.AsToken()
	return Element{token: &Token{parent: n, green: tok, index: i, offset: offset}}
}
