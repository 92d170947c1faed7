package decl

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/syntree/pkg/syntax"
)

// Lexeme is a token produced by Lex.
type Lexeme struct {
	Kind syntax.Kind
	Text string
}

// Lex tokenizes src. Concatenating the texts of the result yields src.
func Lex(src string) []Lexeme {
	var tokens []Lexeme
	for pos := 0; pos < len(src); {
		kind, n := lexOne(src[pos:])
		tokens = append(tokens, Lexeme{Kind: kind, Text: src[pos : pos+n]})
		pos += n
	}
	return tokens
}

// lexOne returns the kind and byte length of the token at the start of s.
func lexOne(s string) (syntax.Kind, int) {
	r, size := utf8.DecodeRuneInString(s)

	switch {
	case unicode.IsSpace(r):
		return KindWhitespace, prefixLen(s, unicode.IsSpace)
	case strings.HasPrefix(s, "//"):
		if end := strings.IndexByte(s, '\n'); end >= 0 {
			return KindComment, end
		}
		return KindComment, len(s)
	case r == '_' || unicode.IsLetter(r):
		n := prefixLen(s, isIdentRune)
		if s[:n] == "struct" {
			return KindStructKw, n
		}
		return KindIdent, n
	}

	switch r {
	case '{':
		return KindLBrace, size
	case '}':
		return KindRBrace, size
	case ':':
		return KindColon, size
	case ',':
		return KindComma, size
	default:
		return KindUnknown, size
	}
}

func prefixLen(s string, pred func(rune) bool) int {
	for i, r := range s {
		if !pred(r) {
			return i
		}
	}
	return len(s)
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
