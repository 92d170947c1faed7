package green

import "github.com/yaklabco/syntree/pkg/syntax"

// Element is a child of a green node: either a *Node or a *Token.
// The zero Element holds neither and is rejected wherever a child is expected.
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

// Kind returns the kind of the node or token.
func (e Element) Kind() syntax.Kind {
	if e.node != nil {
		return e.node.Kind()
	}
	if e.token != nil {
		return e.token.Kind()
	}
	return 0
}

// TextLen returns the length of the text covered by the element.
func (e Element) TextLen() int {
	if e.node != nil {
		return e.node.TextLen()
	}
	if e.token != nil {
		return e.token.TextLen()
	}
	return 0
}

// Equal reports structural equality. A node never equals a token.
func (e Element) Equal(other Element) bool {
	switch {
	case e.node != nil:
		return other.node != nil && e.node.Equal(other.node)
	case e.token != nil:
		return other.token != nil && e.token.Equal(other.token)
	default:
		return !other.IsValid()
	}
}

// String returns the source text covered by the element.
func (e Element) String() string {
	if e.node != nil {
		return e.node.String()
	}
	if e.token != nil {
		return e.token.String()
	}
	return ""
}

func (e Element) fingerprint() uint64 {
	if e.node != nil {
		return e.node.hash
	}
	if e.token != nil {
		return e.token.hash
	}
	return 0
}
