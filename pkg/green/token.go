package green

import (
	"fmt"

	"github.com/yaklabco/syntree/pkg/syntax"
)

// Token is an immutable leaf of the green tree.
// Its length is derived from its text.
type Token struct {
	kind syntax.Kind
	text string
	hash uint64
}

// NewToken creates a token without interning it.
// Use a Cache or Builder to share identical tokens.
func NewToken(kind syntax.Kind, text string) *Token {
	return &Token{
		kind: kind,
		text: text,
		hash: tokenHash(kind, text),
	}
}

// Kind returns the token's kind.
func (t *Token) Kind() syntax.Kind {
	return t.kind
}

// Text returns the token's source text.
func (t *Token) Text() string {
	return t.text
}

// TextLen returns the length of the token's text in bytes.
func (t *Token) TextLen() int {
	return len(t.text)
}

// Equal reports whether t and other have the same kind and text.
func (t *Token) Equal(other *Token) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil {
		return false
	}
	return t.hash == other.hash && t.kind == other.kind && t.text == other.text
}

// String returns the token's text.
func (t *Token) String() string {
	return t.text
}

// GoString formats the token for debugging.
func (t *Token) GoString() string {
	return fmt.Sprintf("green.Token{kind: %d, text: %q}", t.kind, t.text)
}
