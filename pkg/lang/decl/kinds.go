// Package decl parses struct declarations of the form
//
//	struct Foo { foo: String, bar: IpAddr }
//
// into lossless syntax trees, and provides typed views over them.
package decl

import "github.com/yaklabco/syntree/pkg/syntax"

// Token kinds.
const (
	KindWhitespace syntax.Kind = iota
	KindComment
	KindStructKw
	KindIdent
	KindLBrace
	KindRBrace
	KindColon
	KindComma
	KindUnknown

	KindSourceFile
	KindStruct
	KindField
	KindName
	KindType
	KindError
)

//nolint:gochecknoglobals // Static kind table
var kindName = syntax.KindTable([]string{
	KindWhitespace: "WHITESPACE",
	KindComment:    "COMMENT",
	KindStructKw:   "STRUCT_KW",
	KindIdent:      "IDENT",
	KindLBrace:     "L_BRACE",
	KindRBrace:     "R_BRACE",
	KindColon:      "COLON",
	KindComma:      "COMMA",
	KindUnknown:    "UNKNOWN",
	KindSourceFile: "SOURCE_FILE",
	KindStruct:     "STRUCT",
	KindField:      "FIELD",
	KindName:       "NAME",
	KindType:       "TYPE",
	KindError:      "ERROR",
})

// KindString returns the display name of a decl kind.
func KindString(kind syntax.Kind) string {
	return syntax.NameOf(kindName, kind)
}

// IsTrivia reports whether the kind is whitespace or a comment.
func IsTrivia(kind syntax.Kind) bool {
	return kind == KindWhitespace || kind == KindComment
}
