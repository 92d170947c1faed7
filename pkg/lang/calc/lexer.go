package calc

import (
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/syntree/pkg/syntax"
)

// Lexeme is a token produced by Lex.
type Lexeme struct {
	Kind syntax.Kind
	Text string
}

// lexer splits the input into a contiguous token stream covering every byte.
type lexer struct {
	src    string
	pos    int
	tokens []Lexeme
}

// Lex tokenizes src. Concatenating the texts of the result yields src.
func Lex(src string) []Lexeme {
	if src == "" {
		return nil
	}

	const initialCapacityDivisor = 2
	lx := &lexer{
		src:    src,
		tokens: make([]Lexeme, 0, len(src)/initialCapacityDivisor+1),
	}
	for lx.pos < len(lx.src) {
		lx.next()
	}
	return lx.tokens
}

func (lx *lexer) next() {
	start := lx.pos
	r, size := utf8.DecodeRuneInString(lx.src[lx.pos:])

	switch {
	case unicode.IsSpace(r):
		lx.eatWhile(unicode.IsSpace)
		lx.emit(Whitespace, start)
	case isDigit(r):
		lx.eatWhile(isDigit)
		if lx.peekByte() == '.' {
			lx.pos++
			lx.eatWhile(isDigit)
		}
		lx.emit(Number, start)
	case r == '_' || unicode.IsLetter(r):
		lx.eatWhile(isIdentRune)
		lx.emit(Ident, start)
	default:
		lx.pos += size
		lx.emit(punctKind(r), start)
	}
}

func (lx *lexer) eatWhile(pred func(rune) bool) {
	for lx.pos < len(lx.src) {
		r, size := utf8.DecodeRuneInString(lx.src[lx.pos:])
		if !pred(r) {
			return
		}
		lx.pos += size
	}
}

func (lx *lexer) peekByte() byte {
	if lx.pos < len(lx.src) {
		return lx.src[lx.pos]
	}
	return 0
}

func (lx *lexer) emit(kind syntax.Kind, start int) {
	lx.tokens = append(lx.tokens, Lexeme{Kind: kind, Text: lx.src[start:lx.pos]})
}

func punctKind(r rune) syntax.Kind {
	switch r {
	case '+':
		return Plus
	case '-':
		return Minus
	case '*':
		return Star
	case '/':
		return Slash
	case '(':
		return LParen
	case ')':
		return RParen
	default:
		return Unknown
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
