// Package ast provides the building blocks for typed views over red nodes.
//
// A typed view wraps a red node whose kind matches the view's tag. Casting a
// node of any other kind yields ok == false; a mismatch is an expected
// outcome when walking partially parsed code, never an error. Accessors are
// written with the helpers in this package on top of red child iteration.
package ast

import (
	"iter"

	"github.com/yaklabco/syntree/pkg/red"
	"github.com/yaklabco/syntree/pkg/syntax"
)

// Node is implemented by every typed view.
type Node interface {
	// Syntax returns the wrapped red node.
	Syntax() *red.Node
}

// CastFunc converts a red node into a typed view, reporting whether the
// node's kind matched.
type CastFunc[T any] func(*red.Node) (T, bool)

// Cast returns n if it has the given kind.
func Cast(n *red.Node, kind syntax.Kind) (*red.Node, bool) {
	if n == nil || n.Kind() != kind {
		return nil, false
	}
	return n, true
}

// Caster builds a CastFunc for views that are a plain wrapper of a red node.
func Caster[T any](kind syntax.Kind, wrap func(*red.Node) T) CastFunc[T] {
	return func(n *red.Node) (T, bool) {
		if _, ok := Cast(n, kind); !ok {
			var zero T
			return zero, false
		}
		return wrap(n), true
	}
}

// ChildOf returns the first child node of n accepted by cast.
func ChildOf[T any](n *red.Node, cast CastFunc[T]) (T, bool) {
	for child := range n.ChildNodes() {
		if view, ok := cast(child); ok {
			return view, true
		}
	}
	var zero T
	return zero, false
}

// ChildrenOf iterates over the child nodes of n accepted by cast, in order.
func ChildrenOf[T any](n *red.Node, cast CastFunc[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for child := range n.ChildNodes() {
			if view, ok := cast(child); ok {
				if !yield(view) {
					return
				}
			}
		}
	}
}

// TokenOf returns the first direct child token of n with the given kind.
func TokenOf(n *red.Node, kind syntax.Kind) (*red.Token, bool) {
	for child := range n.Children() {
		if tok, ok := child.AsToken(); ok && tok.Kind() == kind {
			return tok, true
		}
	}
	return nil, false
}

// DescendantsOf iterates over every node below n (n included) accepted by cast.
func DescendantsOf[T any](n *red.Node, cast CastFunc[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for el := range n.Descendants() {
			node, ok := el.AsNode()
			if !ok {
				continue
			}
			if view, ok := cast(node); ok {
				if !yield(view) {
					return
				}
			}
		}
	}
}
