// Package lang connects language front-ends to the syntax tree core.
//
// A Language lexes and parses source text by feeding a green.Builder. The
// core never parses on its own; the languages in the subpackages are the
// drivers shipped with syntree. Subpackages register themselves with
// DefaultRegistry from the builtin package.
package lang

import (
	"context"
	"errors"

	"github.com/yaklabco/syntree/pkg/green"
	"github.com/yaklabco/syntree/pkg/syntax"
)

// ErrUnknownLanguage is returned when no registered language matches a name or path.
var ErrUnknownLanguage = errors.New("unknown language")

// Language is a parser front-end producing green trees.
type Language interface {
	// Name returns the canonical lowercase name, e.g. "markdown".
	Name() string

	// Extensions returns the file extensions handled by the language,
	// lowercase with a leading dot.
	Extensions() []string

	// KindName returns the display name of a kind, e.g. "BIN_EXPR".
	KindName(kind syntax.Kind) string

	// Parse builds a lossless tree for src, interning through cache.
	// Malformed input produces error nodes, not errors; an error is returned
	// only when ctx is cancelled or the builder rejects the event stream.
	Parse(ctx context.Context, src []byte, cache green.Interner) (*green.Node, error)
}

// Relexer is implemented by languages that can classify the text of a single
// token, which lets edits stay inside one token without a re-parse.
type Relexer interface {
	// RelexToken returns the kind of text if it lexes to exactly one token.
	RelexToken(text string) (syntax.Kind, bool)
}
