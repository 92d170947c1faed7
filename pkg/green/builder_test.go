package green_test

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/syntree/pkg/green"
	"github.com/yaklabco/syntree/pkg/syntax"
)

func kinds(n *green.Node) []syntax.Kind {
	var out []syntax.Kind
	for _, child := range n.Children() {
		out = append(out, child.Kind())
	}
	return out
}

func TestBuilderSimpleTree(t *testing.T) {
	t.Parallel()

	b := green.NewBuilder()
	b.StartNode(kindRoot)
	b.StartNode(kindBinExpr)
	b.Token(kindNumber, "1")
	b.Token(kindPlus, "+")
	b.Token(kindNumber, "2")
	b.FinishNode()
	b.FinishNode()

	root, err := b.Finish()
	require.NoError(t, err)

	assert.Equal(t, kindRoot, root.Kind())
	assert.Equal(t, "1+2", root.String())
	require.Equal(t, 1, root.ChildCount())

	bin, ok := root.Child(0).AsNode()
	require.True(t, ok)
	assert.Equal(t, []syntax.Kind{kindNumber, kindPlus, kindNumber}, kinds(bin))
}

func TestBuilderCheckpointWrapsSuffix(t *testing.T) {
	t.Parallel()

	b := green.NewBuilder()
	b.StartNode(kindRoot)
	b.Token(kindNumber, "1")
	cp := b.Checkpoint()
	b.Token(kindPlus, "+")
	b.Token(kindNumber, "2")
	b.StartNodeAt(cp, kindBinExpr)
	b.FinishNode()
	b.FinishNode()

	root, err := b.Finish()
	require.NoError(t, err)

	assert.Equal(t, "1+2", root.String())
	assert.Equal(t, []syntax.Kind{kindNumber, kindBinExpr}, kinds(root))

	first, ok := root.Child(0).AsToken()
	require.True(t, ok)
	assert.Equal(t, "1", first.Text())

	wrapped, ok := root.Child(1).AsNode()
	require.True(t, ok)
	assert.Equal(t, []syntax.Kind{kindPlus, kindNumber}, kinds(wrapped))
	assert.Equal(t, "+2", wrapped.String())
}

func TestBuilderCheckpointBeforeAnyChild(t *testing.T) {
	t.Parallel()

	// Typical Pratt parser shape: checkpoint, operand, then discover the operator.
	b := green.NewBuilder()
	b.StartNode(kindRoot)
	cp := b.Checkpoint()
	b.Token(kindNumber, "1")
	b.StartNodeAt(cp, kindBinExpr)
	b.Token(kindStar, "*")
	b.Token(kindNumber, "2")
	b.FinishNode()
	b.FinishNode()

	root, err := b.Finish()
	require.NoError(t, err)

	assert.Equal(t, []syntax.Kind{kindBinExpr}, kinds(root))
	assert.Equal(t, "1*2", root.String())
}

func TestBuilderCheckpointAroundFinishedNode(t *testing.T) {
	t.Parallel()

	b := green.NewBuilder()
	b.StartNode(kindRoot)
	cp := b.Checkpoint()
	b.StartNode(kindBinExpr)
	b.Token(kindNumber, "1")
	b.Token(kindStar, "*")
	b.Token(kindNumber, "2")
	b.FinishNode()
	b.StartNodeAt(cp, kindBinExpr)
	b.Token(kindPlus, "+")
	b.Token(kindNumber, "3")
	b.FinishNode()
	b.FinishNode()

	root, err := b.Finish()
	require.NoError(t, err)

	outer, ok := root.Child(0).AsNode()
	require.True(t, ok)
	assert.Equal(t, []syntax.Kind{kindBinExpr, kindPlus, kindNumber}, kinds(outer))
	assert.Equal(t, "1*2+3", root.String())
}

func TestBuilderUnbalanced(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		build func(b *green.Builder)
	}{
		{"finish_node without start", func(b *green.Builder) {
			b.FinishNode()
		}},
		{"token outside node", func(b *green.Builder) {
			b.Token(kindNumber, "1")
		}},
		{"unclosed node", func(b *green.Builder) {
			b.StartNode(kindRoot)
			b.Token(kindNumber, "1")
		}},
		{"nothing built", func(_ *green.Builder) {}},
		{"two roots", func(b *green.Builder) {
			b.StartNode(kindRoot)
			b.FinishNode()
			b.StartNode(kindRoot)
			b.FinishNode()
		}},
		{"extra finish after root", func(b *green.Builder) {
			b.StartNode(kindRoot)
			b.FinishNode()
			b.FinishNode()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := green.NewBuilder()
			tt.build(b)

			root, err := b.Finish()
			require.Error(t, err)
			assert.Nil(t, root)
			require.ErrorIs(t, err, green.ErrUnbalancedTree)

			var buildErr *green.BuildError
			assert.ErrorAs(t, err, &buildErr)
		})
	}
}

func TestBuilderErrorIsSticky(t *testing.T) {
	t.Parallel()

	b := green.NewBuilder()
	b.FinishNode()
	require.Error(t, b.Err())

	// Later calls are ignored and do not change the outcome.
	b.StartNode(kindRoot)
	b.Token(kindNumber, "1")
	b.FinishNode()
	assert.Equal(t, 0, b.Depth())

	_, err := b.Finish()
	require.ErrorIs(t, err, green.ErrUnbalancedTree)

	// Finish resets the builder for another session.
	b.StartNode(kindRoot)
	b.Token(kindNumber, "1")
	b.FinishNode()
	root, err := b.Finish()
	require.NoError(t, err)
	assert.Equal(t, "1", root.String())
}

func TestBuilderInvalidCheckpoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		build func(b *green.Builder)
	}{
		{"different depth", func(b *green.Builder) {
			b.StartNode(kindRoot)
			cp := b.Checkpoint()
			b.StartNode(kindBinExpr)
			b.StartNodeAt(cp, kindBinExpr)
		}},
		{"position past emitted children", func(b *green.Builder) {
			b.StartNode(kindRoot)
			b.Token(kindNumber, "1")
			b.Token(kindNumber, "2")
			cp := b.Checkpoint()
			b.FinishNode()
			b.StartNode(kindRoot)
			b.StartNodeAt(cp, kindBinExpr)
		}},
		{"position before current node", func(b *green.Builder) {
			b.StartNode(kindRoot)
			b.StartNode(kindBinExpr)
			cp := b.Checkpoint()
			b.FinishNode()
			b.Token(kindNumber, "1")
			b.StartNode(kindBinExpr)
			b.Token(kindNumber, "2")
			b.StartNodeAt(cp, kindBinExpr)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := green.NewBuilder()
			tt.build(b)
			require.ErrorIs(t, b.Err(), green.ErrInvalidCheckpoint)

			_, err := b.Finish()
			require.ErrorIs(t, err, green.ErrInvalidCheckpoint)
		})
	}
}

func TestBuilderDeepNesting(t *testing.T) {
	t.Parallel()

	const depth = 100_000

	b := green.NewBuilder()
	for range depth {
		b.StartNode(kindRoot)
	}
	b.Token(kindNumber, "x")
	for range depth {
		b.FinishNode()
	}

	root, err := b.Finish()
	require.NoError(t, err)
	assert.Equal(t, "x", root.String())
	assert.Equal(t, 1, root.TextLen())
}

// TestBuilderFidelity feeds random token streams with random nesting and
// checks the root renders exactly the concatenated input.
func TestBuilderFidelity(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2))
	alphabet := []string{"a", "bb", " ", "\n", "+", "ccc", "", "//x"}

	for iteration := range 50 {
		b := green.NewBuilder()
		var want strings.Builder

		b.StartNode(kindRoot)
		depth := 1
		var checkpoints []green.Checkpoint
		for range 200 {
			switch rng.IntN(6) {
			case 0:
				b.StartNode(kindBinExpr)
				depth++
				checkpoints = checkpoints[:0]
			case 1:
				if depth > 1 {
					b.FinishNode()
					depth--
					checkpoints = checkpoints[:0]
				}
			case 2:
				checkpoints = append(checkpoints, b.Checkpoint())
			case 3:
				if len(checkpoints) > 0 {
					b.StartNodeAt(checkpoints[rng.IntN(len(checkpoints))], kindBinExpr)
					depth++
					checkpoints = checkpoints[:0]
				}
			default:
				text := alphabet[rng.IntN(len(alphabet))]
				b.Token(kindNumber, text)
				want.WriteString(text)
			}
		}
		for ; depth > 0; depth-- {
			b.FinishNode()
		}

		root, err := b.Finish()
		require.NoError(t, err, "iteration %d", iteration)
		assert.Equal(t, want.String(), root.String(), "iteration %d", iteration)
		assertLengthInvariant(t, root)
	}
}
