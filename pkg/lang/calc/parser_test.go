package calc_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/syntree/pkg/green"
	"github.com/yaklabco/syntree/pkg/lang/calc"
	"github.com/yaklabco/syntree/pkg/red"
	"github.com/yaklabco/syntree/pkg/syntax"
)

func parse(t *testing.T, src string) *red.Node {
	t.Helper()
	root, err := calc.Parse(context.Background(), []byte(src), nil)
	require.NoError(t, err)
	require.Equal(t, src, root.String(), "parse must be lossless")
	return red.NewRoot(root)
}

func debug(n *red.Node) string {
	return n.Debug(calc.KindName)
}

func TestLexIsLossless(t *testing.T) {
	t.Parallel()

	src := "foo_1 + 3.25*(x-\t7) $ é"
	var sb strings.Builder
	for _, lx := range calc.Lex(src) {
		require.NotEmpty(t, lx.Text)
		sb.WriteString(lx.Text)
	}
	assert.Equal(t, src, sb.String())
	assert.Nil(t, calc.Lex(""))
}

func TestLexKinds(t *testing.T) {
	t.Parallel()

	var kinds []syntax.Kind
	for _, lx := range calc.Lex("a1 12.5 (-)/ ?") {
		kinds = append(kinds, lx.Kind)
	}
	assert.Equal(t, []syntax.Kind{
		calc.Ident, calc.Whitespace, calc.Number, calc.Whitespace,
		calc.LParen, calc.Minus, calc.RParen, calc.Slash, calc.Whitespace, calc.Unknown,
	}, kinds)
}

func TestParsePrecedence(t *testing.T) {
	t.Parallel()

	root := parse(t, "1 * 2 + 1 * 2")
	want := `ROOT@0..13
  BIN_EXPR@0..13
    BIN_EXPR@0..5
      NUMBER@0..1 "1"
      WHITESPACE@1..2 " "
      STAR@2..3 "*"
      WHITESPACE@3..4 " "
      NUMBER@4..5 "2"
    WHITESPACE@5..6 " "
    PLUS@6..7 "+"
    WHITESPACE@7..8 " "
    BIN_EXPR@8..13
      NUMBER@8..9 "1"
      WHITESPACE@9..10 " "
      STAR@10..11 "*"
      WHITESPACE@11..12 " "
      NUMBER@12..13 "2"
`
	assert.Equal(t, want, debug(root))
}

func TestParseLeftAssociative(t *testing.T) {
	t.Parallel()

	root := parse(t, "1-2-3")
	want := `ROOT@0..5
  BIN_EXPR@0..5
    BIN_EXPR@0..3
      NUMBER@0..1 "1"
      MINUS@1..2 "-"
      NUMBER@2..3 "2"
    MINUS@3..4 "-"
    NUMBER@4..5 "3"
`
	assert.Equal(t, want, debug(root))
}

func TestParsePrefixAndParens(t *testing.T) {
	t.Parallel()

	root := parse(t, "-(a + 1) * 2")
	want := `ROOT@0..12
  BIN_EXPR@0..12
    PREFIX_EXPR@0..8
      MINUS@0..1 "-"
      PAREN_EXPR@1..8
        L_PAREN@1..2 "("
        BIN_EXPR@2..7
          IDENT@2..3 "a"
          WHITESPACE@3..4 " "
          PLUS@4..5 "+"
          WHITESPACE@5..6 " "
          NUMBER@6..7 "1"
        R_PAREN@7..8 ")"
    WHITESPACE@8..9 " "
    STAR@9..10 "*"
    WHITESPACE@10..11 " "
    NUMBER@11..12 "2"
`
	assert.Equal(t, want, debug(root))
}

func TestParseRecovers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "missing operand",
			src:  "1 +",
			want: `ROOT@0..3
  BIN_EXPR@0..3
    NUMBER@0..1 "1"
    WHITESPACE@1..2 " "
    PLUS@2..3 "+"
    ERROR@3..3
`,
		},
		{
			name: "unclosed paren",
			src:  "(1",
			want: `ROOT@0..2
  PAREN_EXPR@0..2
    L_PAREN@0..1 "("
    NUMBER@1..2 "1"
    ERROR@2..2
`,
		},
		{
			name: "stray token",
			src:  "1 $ 2",
			want: `ROOT@0..5
  NUMBER@0..1 "1"
  WHITESPACE@1..2 " "
  ERROR@2..3
    UNKNOWN@2..3 "$"
  WHITESPACE@3..4 " "
  NUMBER@4..5 "2"
`,
		},
		{
			name: "stray close paren",
			src:  ")",
			want: `ROOT@0..1
  ERROR@0..1
    R_PAREN@0..1 ")"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, debug(parse(t, tt.src)))
		})
	}
}

func TestParseIsLossless(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"   ",
		"1",
		" 1 + 2 ",
		"((((",
		"))))",
		"1 + * 2",
		"a b c",
		"--1",
		"1 / (2 - ) * $ é",
		"\n\t1\n*\n2\n",
	}
	for _, src := range inputs {
		root, err := calc.Parse(context.Background(), []byte(src), nil)
		require.NoError(t, err, "input %q", src)
		assert.Equal(t, src, root.String(), "input %q", src)
		assert.Equal(t, calc.Root, root.Kind())
	}
}

func TestParseSharesCache(t *testing.T) {
	t.Parallel()

	cache := green.NewCache()
	first, err := calc.Parse(context.Background(), []byte("1 * 2 + 1 * 2"), cache)
	require.NoError(t, err)
	second, err := calc.Parse(context.Background(), []byte("1 * 2 + 1 * 2"), cache)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Positive(t, cache.Stats().NodeHits)
}

func TestParseCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := strings.Repeat("1 + ", 1000) + "1"
	root, err := calc.Parse(ctx, []byte(src), nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, root)
}

func TestEval(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src     string
		want    float64
		wantErr bool
	}{
		{src: "1 * 2 + 1 * 2", want: 4},
		{src: "1 - 2 - 3", want: -4},
		{src: "-(x + 1) * 2", want: -8},
		{src: "10 / 4", want: 2.5},
		{src: "1 +", wantErr: true},
		{src: "y", wantErr: true},
		{src: "1 / 0", wantErr: true},
		{src: "1 2", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()

			got, err := calc.Eval(parse(t, tt.src), map[string]float64{"x": 3})
			if tt.wantErr {
				require.ErrorIs(t, err, calc.ErrInvalidExpr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestEvalAfterEdit(t *testing.T) {
	t.Parallel()

	root := parse(t, "1 * 2 + 1 * 2")
	tok, ok := root.TokenAtOffset(12)
	require.True(t, ok)

	edited := tok.WithText("3")
	got, err := calc.Eval(edited, nil)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, got, 1e-9)

	got, err = calc.Eval(root, nil)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, got, 1e-9)
}

func TestBinaryView(t *testing.T) {
	t.Parallel()

	root := parse(t, "1 * 2 + 1 * 2")
	expr, ok := root.FirstChildNode()
	require.True(t, ok)

	bin, ok := calc.CastBinary(expr)
	require.True(t, ok)

	op, ok := bin.Op()
	require.True(t, ok)
	assert.Equal(t, calc.Plus, op.Kind())

	lhs, rhs := bin.Operands()
	assert.Equal(t, "1 * 2", lhs.String())
	assert.Equal(t, syntax.NewRange(8, 13), rhs.TextRange())

	_, ok = calc.CastBinary(root)
	assert.False(t, ok)
}

func TestRelexToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text     string
		wantKind syntax.Kind
		wantOK   bool
	}{
		{"42", calc.Number, true},
		{"x1", calc.Ident, true},
		{"-", calc.Minus, true},
		{"   ", calc.Whitespace, true},
		{"1 ", 0, false},
		{"a+b", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()

			kind, ok := calc.Language{}.RelexToken(tt.text)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantKind, kind)
			}
		})
	}
}
