package decl_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/syntree/pkg/green"
	"github.com/yaklabco/syntree/pkg/lang/decl"
	"github.com/yaklabco/syntree/pkg/red"
	"github.com/yaklabco/syntree/pkg/syntax"
)

const fooSource = "struct Foo { foo: String, bar: IpAddr }"

func fieldNames(s decl.Struct) []string {
	var names []string
	for field := range s.Fields() {
		if name, ok := field.Name(); ok {
			names = append(names, name.Text())
		}
	}
	return names
}

func fieldTypes(s decl.Struct) []string {
	var types []string
	for field := range s.Fields() {
		if typ, ok := field.Type(); ok {
			types = append(types, typ.Text())
		}
	}
	return types
}

// buildStruct assembles fooSource through the builder directly.
func buildStruct(t *testing.T) *red.Node {
	t.Helper()

	b := green.NewBuilder()
	ws := func() { b.Token(decl.KindWhitespace, " ") }
	wrap := func(kind syntax.Kind, text string) {
		b.StartNode(kind)
		b.Token(decl.KindIdent, text)
		b.FinishNode()
	}
	field := func(name, typ string) {
		b.StartNode(decl.KindField)
		wrap(decl.KindName, name)
		b.Token(decl.KindColon, ":")
		ws()
		wrap(decl.KindType, typ)
		b.FinishNode()
	}

	b.StartNode(decl.KindStruct)
	b.Token(decl.KindStructKw, "struct")
	ws()
	wrap(decl.KindName, "Foo")
	ws()
	b.Token(decl.KindLBrace, "{")
	ws()
	field("foo", "String")
	b.Token(decl.KindComma, ",")
	ws()
	field("bar", "IpAddr")
	ws()
	b.Token(decl.KindRBrace, "}")
	b.FinishNode()

	root, err := b.Finish()
	require.NoError(t, err)
	return red.NewRoot(root)
}

func TestStructView(t *testing.T) {
	t.Parallel()

	root := buildStruct(t)
	assert.Equal(t, fooSource, root.String())

	st, ok := decl.CastStruct(root)
	require.True(t, ok)

	name, ok := st.Name()
	require.True(t, ok)
	assert.Equal(t, "Foo", name.Text())
	assert.Equal(t, []string{"foo", "bar"}, fieldNames(st))
	assert.Equal(t, []string{"String", "IpAddr"}, fieldTypes(st))

	_, ok = decl.CastField(root)
	assert.False(t, ok)
}

func TestParseMatchesBuiltTree(t *testing.T) {
	t.Parallel()

	root, err := decl.Parse(context.Background(), []byte(fooSource), nil)
	require.NoError(t, err)
	assert.Equal(t, fooSource, root.String())
	assert.Equal(t, decl.KindSourceFile, root.Kind())

	parsed, ok := root.Child(0).AsNode()
	require.True(t, ok)
	assert.True(t, parsed.Equal(buildStruct(t).Green()))
}

func TestSourceFileStructs(t *testing.T) {
	t.Parallel()

	src := "// points\nstruct Point { x: Int, y: Int, }\n\nstruct Empty {}\n"
	root, err := decl.Parse(context.Background(), []byte(src), nil)
	require.NoError(t, err)
	require.Equal(t, src, root.String())

	file, ok := decl.CastSourceFile(red.NewRoot(root))
	require.True(t, ok)

	var got []string
	for st := range file.Structs() {
		name, _ := st.Name()
		got = append(got, name.Text())
	}
	assert.Equal(t, []string{"Point", "Empty"}, got)

	var first decl.Struct
	for st := range file.Structs() {
		first = st
		break
	}
	assert.Equal(t, []string{"x", "y"}, fieldNames(first))
}

func TestParseTriviaStaysOutsideNodes(t *testing.T) {
	t.Parallel()

	root, err := decl.Parse(context.Background(), []byte("struct  A{b:C}"), nil)
	require.NoError(t, err)

	want := `SOURCE_FILE@0..14
  STRUCT@0..14
    STRUCT_KW@0..6 "struct"
    WHITESPACE@6..8 "  "
    NAME@8..9
      IDENT@8..9 "A"
    L_BRACE@9..10 "{"
    FIELD@10..13
      NAME@10..11
        IDENT@10..11 "b"
      COLON@11..12 ":"
      TYPE@12..13
        IDENT@12..13 "C"
    R_BRACE@13..14 "}"
`
	assert.Equal(t, want, red.NewRoot(root).Debug(decl.KindString))
}

func TestParseRecovers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		src        string
		wantFields []string
		wantErrors int
	}{
		{name: "missing type", src: "struct A { b: }", wantFields: []string{"b"}, wantErrors: 1},
		{name: "missing colon", src: "struct A { b C }", wantFields: []string{"b"}, wantErrors: 1},
		{name: "unclosed", src: "struct A { b: C", wantFields: []string{"b"}, wantErrors: 1},
		{name: "junk inside", src: "struct A { ; b: C }", wantFields: []string{"b"}, wantErrors: 1},
		{name: "junk outside", src: "} struct A {}", wantErrors: 1},
		{name: "missing name", src: "struct { b: C }", wantFields: []string{"b"}, wantErrors: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			parsed, err := decl.Parse(context.Background(), []byte(tt.src), nil)
			require.NoError(t, err)
			require.Equal(t, tt.src, parsed.String())

			root := red.NewRoot(parsed)
			errorCount := 0
			for el := range root.Descendants() {
				if el.Kind() == decl.KindError {
					errorCount++
				}
			}
			assert.Equal(t, tt.wantErrors, errorCount)

			file, _ := decl.CastSourceFile(root)
			var fields []string
			for st := range file.Structs() {
				fields = append(fields, fieldNames(st)...)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestLanguage(t *testing.T) {
	t.Parallel()

	var language decl.Language
	assert.Equal(t, "decl", language.Name())
	assert.Equal(t, "FIELD", language.KindName(decl.KindField))
	assert.Equal(t, "KIND_999", language.KindName(999))
	assert.Equal(t, "NAME", decl.KindString(decl.KindName))

	kind, ok := language.RelexToken("struct")
	require.True(t, ok)
	assert.Equal(t, decl.KindStructKw, kind)

	kind, ok = language.RelexToken("structure")
	require.True(t, ok)
	assert.Equal(t, decl.KindIdent, kind)

	_, ok = language.RelexToken("a: b")
	assert.False(t, ok)
}
