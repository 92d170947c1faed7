package edit

import (
	"bytes"
	"fmt"

	"github.com/yaklabco/syntree/pkg/red"
	"github.com/yaklabco/syntree/pkg/syntax"
)

// Apply applies e to the tree below root and returns the new root. The
// original tree is unchanged, also on error.
//
// A non-empty range must lie inside one token. An insertion goes into the
// token starting at its offset, or into the last token when it is at the
// end of the text. A token whose text becomes empty is removed.
//
// The new token text is checked with relex and must come back as one token
// of the old kind, or Apply fails with ErrTokenChanged. A nil relex skips
// the check and keeps the kind as is.
func Apply(root *red.Node, e TextEdit, relex Relexer) (*red.Node, error) {
	if err := Validate([]TextEdit{e}, root.TextLen()); err != nil {
		return nil, err
	}

	tok, err := target(root, e.Range)
	if err != nil {
		return nil, err
	}

	local := e.Range.Shift(-tok.TextOffset())
	text := tok.Text()
	newText := text[:local.Start] + e.NewText + text[local.End:]

	if newText == "" {
		parent := tok.Parent()
		updated, err := parent.Green().RemoveChild(tok.IndexInParent())
		if err != nil {
			return nil, fmt.Errorf("apply edit %s: %w", e, err)
		}
		newRoot, err := parent.ReplaceWith(updated)
		if err != nil {
			return nil, fmt.Errorf("apply edit %s: %w", e, err)
		}
		return newRoot, nil
	}

	if relex != nil {
		kind, single := relex(newText)
		if !single || kind != tok.Kind() {
			return nil, fmt.Errorf("%w: %q at %s", ErrTokenChanged, newText, tok.TextRange())
		}
	}
	return tok.WithText(newText), nil
}

// ApplyAll applies a batch of edits given in offsets of the original text.
// The batch is applied back to front so earlier offsets stay valid. It
// either applies every edit or none.
func ApplyAll(root *red.Node, edits []TextEdit, relex Relexer) (*red.Node, error) {
	sorted, err := Prepare(edits, root.TextLen())
	if err != nil {
		return nil, err
	}

	current := root
	for i := len(sorted) - 1; i >= 0; i-- {
		current, err = Apply(current, sorted[i], relex)
		if err != nil {
			return nil, err
		}
	}
	return current, nil
}

// ApplyText applies prepared edits to raw text. It serves callers that
// re-parse after editing.
func ApplyText(content []byte, edits []TextEdit) ([]byte, error) {
	sorted, err := Prepare(edits, len(content))
	if err != nil {
		return nil, err
	}

	delta := 0
	for _, e := range sorted {
		delta += len(e.NewText) - e.Range.Len()
	}

	var out bytes.Buffer
	out.Grow(len(content) + delta)

	cursor := 0
	for _, e := range sorted {
		out.Write(content[cursor:e.Range.Start])
		out.WriteString(e.NewText)
		cursor = e.Range.End
	}
	out.Write(content[cursor:])
	return out.Bytes(), nil
}

func target(root *red.Node, rng syntax.TextRange) (*red.Token, error) {
	if rng.IsEmpty() {
		if rng.Start < root.TextLen() {
			if tok, ok := root.TokenAtOffset(rng.Start); ok {
				return tok, nil
			}
		}
		if tok, ok := lastToken(root); ok {
			return tok, nil
		}
		return nil, fmt.Errorf("%w: no token at %d", ErrEditSpansTokens, rng.Start)
	}

	el, ok := root.CoveringElement(rng)
	if ok {
		if tok, isToken := el.AsToken(); isToken {
			return tok, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrEditSpansTokens, rng)
}

func lastToken(root *red.Node) (*red.Token, bool) {
	var last *red.Token
	for tok := range root.Tokens() {
		last = tok
	}
	return last, last != nil
}
