package decl

import (
	"context"

	"github.com/yaklabco/syntree/pkg/green"
	"github.com/yaklabco/syntree/pkg/syntax"
)

// Language exposes decl to the language registry.
type Language struct{}

func (Language) Name() string                     { return "decl" }
func (Language) Extensions() []string             { return []string{".decl"} }
func (Language) KindName(kind syntax.Kind) string { return KindString(kind) }

func (Language) RelexToken(text string) (syntax.Kind, bool) {
	lexemes := Lex(text)
	if len(lexemes) != 1 {
		return 0, false
	}
	return lexemes[0].Kind, true
}

func (Language) Parse(ctx context.Context, src []byte, cache green.Interner) (*green.Node, error) {
	return Parse(ctx, src, cache)
}
