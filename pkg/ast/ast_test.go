package ast_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/syntree/pkg/ast"
	"github.com/yaklabco/syntree/pkg/green"
	"github.com/yaklabco/syntree/pkg/red"
	"github.com/yaklabco/syntree/pkg/syntax"
)

const (
	kindList syntax.Kind = iota
	kindItem
	kindOther
	kindWord
	kindComma
)

type item struct{ syntax *red.Node }

func (i item) Syntax() *red.Node { return i.syntax }

var castItem = ast.Caster(kindItem, func(n *red.Node) item { return item{syntax: n} })

func buildList(t *testing.T) *red.Node {
	t.Helper()

	b := green.NewBuilder()
	b.StartNode(kindList)
	for i, word := range []string{"a", "b", "c"} {
		if i > 0 {
			b.Token(kindComma, ",")
		}
		kind := kindItem
		if word == "b" {
			kind = kindOther
		}
		b.StartNode(kind)
		b.Token(kindWord, word)
		b.FinishNode()
	}
	b.FinishNode()

	root, err := b.Finish()
	require.NoError(t, err)
	return red.NewRoot(root)
}

func TestCast(t *testing.T) {
	t.Parallel()

	root := buildList(t)

	n, ok := ast.Cast(root, kindList)
	assert.True(t, ok)
	assert.Same(t, root, n)

	_, ok = ast.Cast(root, kindItem)
	assert.False(t, ok, "kind mismatch is reported as no match")

	_, ok = ast.Cast(nil, kindList)
	assert.False(t, ok)

	_, ok = castItem(root)
	assert.False(t, ok)
}

func TestChildOfAndChildrenOf(t *testing.T) {
	t.Parallel()

	root := buildList(t)

	first, ok := ast.ChildOf(root, castItem)
	require.True(t, ok)
	assert.Equal(t, "a", first.Syntax().String())

	var words []string
	for it := range ast.ChildrenOf(root, castItem) {
		words = append(words, it.Syntax().String())
	}
	assert.Equal(t, []string{"a", "c"}, words)

	_, ok = ast.ChildOf(first.Syntax(), castItem)
	assert.False(t, ok)
}

func TestTokenOf(t *testing.T) {
	t.Parallel()

	root := buildList(t)

	comma, ok := ast.TokenOf(root, kindComma)
	require.True(t, ok)
	assert.Equal(t, 1, comma.TextOffset())

	_, ok = ast.TokenOf(root, kindWord)
	assert.False(t, ok, "only direct children are considered")
}

func TestDescendantsOf(t *testing.T) {
	t.Parallel()

	root := buildList(t)
	castOther := ast.Caster(kindOther, func(n *red.Node) *red.Node { return n })

	found := slices.Collect(ast.DescendantsOf(root, castOther))
	require.Len(t, found, 1)
	assert.Equal(t, "b", found[0].String())
}
