package decl

import (
	"iter"

	"github.com/yaklabco/syntree/pkg/ast"
	"github.com/yaklabco/syntree/pkg/red"
)

// SourceFile is the root of a parsed file.
type SourceFile struct{ syntax *red.Node }

// Struct is a `struct Name { ... }` declaration.
type Struct struct{ syntax *red.Node }

// Field is a `name: Type` entry of a struct.
type Field struct{ syntax *red.Node }

// Name is the identifier naming a struct or field.
type Name struct{ syntax *red.Node }

// Type is the identifier naming a field's type.
type Type struct{ syntax *red.Node }

// Typed casts. Each returns false if the node has a different kind.
//
//nolint:gochecknoglobals // Typed cast helpers
var (
	CastSourceFile = ast.Caster(KindSourceFile, func(n *red.Node) SourceFile { return SourceFile{n} })
	CastStruct     = ast.Caster(KindStruct, func(n *red.Node) Struct { return Struct{n} })
	CastField      = ast.Caster(KindField, func(n *red.Node) Field { return Field{n} })
	CastName       = ast.Caster(KindName, func(n *red.Node) Name { return Name{n} })
	CastType       = ast.Caster(KindType, func(n *red.Node) Type { return Type{n} })
)

func (f SourceFile) Syntax() *red.Node { return f.syntax }
func (s Struct) Syntax() *red.Node     { return s.syntax }
func (f Field) Syntax() *red.Node      { return f.syntax }
func (n Name) Syntax() *red.Node       { return n.syntax }
func (t Type) Syntax() *red.Node       { return t.syntax }

// Structs iterates over the declarations in source order.
func (f SourceFile) Structs() iter.Seq[Struct] {
	return ast.ChildrenOf(f.syntax, CastStruct)
}

// Name returns the struct's name, if present.
func (s Struct) Name() (Name, bool) {
	return ast.ChildOf(s.syntax, CastName)
}

// Fields iterates over the fields in declaration order.
func (s Struct) Fields() iter.Seq[Field] {
	return ast.ChildrenOf(s.syntax, CastField)
}

// Name returns the field's name, if present.
func (f Field) Name() (Name, bool) {
	return ast.ChildOf(f.syntax, CastName)
}

// Type returns the field's type, if present.
func (f Field) Type() (Type, bool) {
	return ast.ChildOf(f.syntax, CastType)
}

// Text returns the identifier.
func (n Name) Text() string { return identText(n.syntax) }

// Text returns the identifier.
func (t Type) Text() string { return identText(t.syntax) }

func identText(n *red.Node) string {
	if tok, ok := ast.TokenOf(n, KindIdent); ok {
		return tok.Text()
	}
	return ""
}
