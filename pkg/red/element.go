package red

import (
	"github.com/yaklabco/syntree/pkg/green"
	"github.com/yaklabco/syntree/pkg/syntax"
)

// Element is a red child: either a *Node or a *Token.
type Element struct {
	node  *Node
	token *Token
}

// NodeElement wraps a node as an Element.
func NodeElement(node *Node) Element {
	return Element{node: node}
}

// TokenElement wraps a token as an Element.
func TokenElement(token *Token) Element {
	return Element{token: token}
}

// IsValid reports whether the element holds a node or a token.
func (e Element) IsValid() bool {
	return e.node != nil || e.token != nil
}

// IsNode reports whether the element is a node.
func (e Element) IsNode() bool {
	return e.node != nil
}

// IsToken reports whether the element is a token.
func (e Element) IsToken() bool {
	return e.token != nil
}

// AsNode returns the node and true if the element is a node.
func (e Element) AsNode() (*Node, bool) {
	return e.node, e.node != nil
}

// AsToken returns the token and true if the element is a token.
func (e Element) AsToken() (*Token, bool) {
	return e.token, e.token != nil
}

// Green returns the underlying green element.
func (e Element) Green() green.Element {
	switch {
	case e.node != nil:
		return green.NodeElement(e.node.green)
	case e.token != nil:
		return green.TokenElement(e.token.green)
	default:
		return green.Element{}
	}
}

// Kind returns the kind of the node or token.
func (e Element) Kind() syntax.Kind {
	switch {
	case e.node != nil:
		return e.node.Kind()
	case e.token != nil:
		return e.token.Kind()
	default:
		return 0
	}
}

// TextLen returns the length of the covered text.
func (e Element) TextLen() int {
	switch {
	case e.node != nil:
		return e.node.TextLen()
	case e.token != nil:
		return e.token.TextLen()
	default:
		return 0
	}
}

// TextOffset returns the absolute start offset.
func (e Element) TextOffset() int {
	switch {
	case e.node != nil:
		return e.node.TextOffset()
	case e.token != nil:
		return e.token.TextOffset()
	default:
		return 0
	}
}

// TextRange returns the absolute range covered by the element.
func (e Element) TextRange() syntax.TextRange {
	return syntax.RangeAt(e.TextOffset(), e.TextLen())
}

// IndexInParent returns the element's position among its parent's children.
func (e Element) IndexInParent() int {
	switch {
	case e.node != nil:
		return e.node.IndexInParent()
	case e.token != nil:
		return e.token.IndexInParent()
	default:
		return 0
	}
}

// Parent returns the enclosing node, or nil for a root node.
func (e Element) Parent() *Node {
	switch {
	case e.node != nil:
		return e.node.Parent()
	case e.token != nil:
		return e.token.Parent()
	default:
		return nil
	}
}

// String returns the covered source text.
func (e Element) String() string {
	switch {
	case e.node != nil:
		return e.node.String()
	case e.token != nil:
		return e.token.String()
	default:
		return ""
	}
}
