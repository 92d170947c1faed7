package red

import (
	"fmt"
	"iter"

	"github.com/yaklabco/syntree/pkg/green"
	"github.com/yaklabco/syntree/pkg/syntax"
)

// Token is a leaf of the red tree. Every token has a parent node.
type Token struct {
	parent *Node
	green  *green.Token
	index  int
	offset int
}

// Green returns the underlying green token.
func (t *Token) Green() *green.Token {
	return t.green
}

// Kind returns the token's kind.
func (t *Token) Kind() syntax.Kind {
	return t.green.Kind()
}

// Text returns the token's source text.
func (t *Token) Text() string {
	return t.green.Text()
}

// TextLen returns the length of the token's text.
func (t *Token) TextLen() int {
	return t.green.TextLen()
}

// TextOffset returns the absolute offset of the token's first byte.
func (t *Token) TextOffset() int {
	return t.offset
}

// TextRange returns the absolute range covered by the token.
func (t *Token) TextRange() syntax.TextRange {
	return syntax.RangeAt(t.offset, t.green.TextLen())
}

// IndexInParent returns the token's position among its parent's children.
func (t *Token) IndexInParent() int {
	return t.index
}

// Parent returns the node containing the token.
func (t *Token) Parent() *Node {
	return t.parent
}

// Ancestors iterates from the token's parent to the root.
func (t *Token) Ancestors() iter.Seq[*Node] {
	return t.parent.Ancestors()
}

// NextSibling returns the element after t in its parent.
func (t *Token) NextSibling() (Element, bool) {
	return t.parent.NthChild(t.index + 1)
}

// PrevSibling returns the element before t in its parent.
func (t *Token) PrevSibling() (Element, bool) {
	return t.parent.NthChild(t.index - 1)
}

// ReplaceWith substitutes replacement for the token and returns the new root.
// A nil replacement fails with green.ErrInvalidElement.
func (t *Token) ReplaceWith(replacement *green.Token) (*Node, error) {
	if replacement == nil {
		return nil, fmt.Errorf("replace token at %s: %w", t.TextRange(), green.ErrInvalidElement)
	}
	return t.parent.ReplaceChild(t.index, green.TokenElement(replacement))
}

// WithText replaces the token with one of the same kind and the given text,
// and returns the new root.
func (t *Token) WithText(text string) *Node {
	updated, err := t.parent.green.ReplaceChild(t.index, green.TokenElement(green.NewToken(t.green.Kind(), text)))
	if err != nil {
		// Parent links always carry a valid index.
		panic("red: corrupt parent link: " + err.Error())
	}
	return t.parent.rebuild(updated)
}

// String returns the token's text.
func (t *Token) String() string {
	return t.green.Text()
}
