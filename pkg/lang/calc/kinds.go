// Package calc parses arithmetic expressions into lossless syntax trees.
//
// The grammar covers numbers, identifiers, the binary operators + - * /,
// unary + and -, and parentheses. Parsing never fails on malformed input:
// unexpected tokens are wrapped in ERROR nodes and missing operands become
// empty ERROR nodes, so the tree always renders back to the input.
package calc

import "github.com/yaklabco/syntree/pkg/syntax"

// Token kinds.
const (
	Whitespace syntax.Kind = iota
	Number
	Ident
	Plus
	Minus
	Star
	Slash
	LParen
	RParen
	Unknown

	// Node kinds.

	Root
	BinExpr
	PrefixExpr
	ParenExpr
	Error
)

//nolint:gochecknoglobals // Static kind table
var kindName = syntax.KindTable([]string{
	Whitespace: "WHITESPACE",
	Number:     "NUMBER",
	Ident:      "IDENT",
	Plus:       "PLUS",
	Minus:      "MINUS",
	Star:       "STAR",
	Slash:      "SLASH",
	LParen:     "L_PAREN",
	RParen:     "R_PAREN",
	Unknown:    "UNKNOWN",
	Root:       "ROOT",
	BinExpr:    "BIN_EXPR",
	PrefixExpr: "PREFIX_EXPR",
	ParenExpr:  "PAREN_EXPR",
	Error:      "ERROR",
})

// KindName returns the display name of a calc kind.
func KindName(kind syntax.Kind) string {
	return syntax.NameOf(kindName, kind)
}

// IsTrivia reports whether the kind carries no meaning for the grammar.
func IsTrivia(kind syntax.Kind) bool {
	return kind == Whitespace
}
