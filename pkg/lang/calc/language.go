package calc

import (
	"context"

	"github.com/yaklabco/syntree/pkg/green"
	"github.com/yaklabco/syntree/pkg/syntax"
)

// Language exposes calc to the language registry.
type Language struct{}

// Name implements lang.Language.
func (Language) Name() string { return "calc" }

// Extensions implements lang.Language.
func (Language) Extensions() []string { return []string{".calc"} }

// KindName implements lang.Language.
func (Language) KindName(kind syntax.Kind) string { return KindName(kind) }

// RelexToken implements lang.Relexer.
func (Language) RelexToken(text string) (syntax.Kind, bool) {
	lexemes := Lex(text)
	if len(lexemes) != 1 {
		return 0, false
	}
	return lexemes[0].Kind, true
}

// Parse implements lang.Language.
func (Language) Parse(ctx context.Context, src []byte, cache green.Interner) (*green.Node, error) {
	return Parse(ctx, src, cache)
}
