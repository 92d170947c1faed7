package calc

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/yaklabco/syntree/pkg/ast"
	"github.com/yaklabco/syntree/pkg/red"
	"github.com/yaklabco/syntree/pkg/syntax"
)

// ErrInvalidExpr is returned by Eval for trees containing ERROR nodes or
// unbound identifiers.
var ErrInvalidExpr = errors.New("invalid expression")

// Binary is a typed view over a BIN_EXPR node.
type Binary struct{ syntax *red.Node }

// Syntax implements ast.Node.
func (b Binary) Syntax() *red.Node { return b.syntax }

// CastBinary views n as a Binary.
//
//nolint:gochecknoglobals // Typed cast helper
var CastBinary = ast.Caster(BinExpr, func(n *red.Node) Binary { return Binary{syntax: n} })

// Operands returns the left and right operands. Either may be invalid if the
// expression is incomplete.
func (b Binary) Operands() (red.Element, red.Element) {
	var operands []red.Element
	for child := range b.syntax.Children() {
		if isOperand(child.Kind()) {
			operands = append(operands, child)
		}
	}

	var lhs, rhs red.Element
	if len(operands) > 0 {
		lhs = operands[0]
	}
	if len(operands) > 1 {
		rhs = operands[1]
	}
	return lhs, rhs
}

// Op returns the operator token.
func (b Binary) Op() (*red.Token, bool) {
	for child := range b.syntax.Children() {
		if tok, ok := child.AsToken(); ok && isOperator(tok.Kind()) {
			return tok, true
		}
	}
	return nil, false
}

// Eval evaluates the expression below root. Identifiers are resolved in vars.
func Eval(root *red.Node, vars map[string]float64) (float64, error) {
	var exprs []red.Element
	for child := range root.Children() {
		if !IsTrivia(child.Kind()) {
			exprs = append(exprs, child)
		}
	}
	if len(exprs) != 1 {
		return 0, fmt.Errorf("%w: expected one expression, found %d", ErrInvalidExpr, len(exprs))
	}
	return eval(exprs[0], vars)
}

func eval(el red.Element, vars map[string]float64) (float64, error) {
	if tok, ok := el.AsToken(); ok {
		return evalToken(tok, vars)
	}

	node, ok := el.AsNode()
	if !ok {
		return 0, fmt.Errorf("%w: missing operand", ErrInvalidExpr)
	}

	switch node.Kind() {
	case BinExpr:
		return evalBinary(Binary{syntax: node}, vars)
	case PrefixExpr, ParenExpr:
		return evalWrapper(node, vars)
	default:
		return 0, fmt.Errorf("%w: %s at %s", ErrInvalidExpr, KindName(node.Kind()), node.TextRange())
	}
}

func evalToken(tok *red.Token, vars map[string]float64) (float64, error) {
	switch tok.Kind() {
	case Number:
		value, err := strconv.ParseFloat(tok.Text(), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrInvalidExpr, err)
		}
		return value, nil
	case Ident:
		value, ok := vars[tok.Text()]
		if !ok {
			return 0, fmt.Errorf("%w: unbound identifier %q", ErrInvalidExpr, tok.Text())
		}
		return value, nil
	default:
		return 0, fmt.Errorf("%w: unexpected %s at %s", ErrInvalidExpr, KindName(tok.Kind()), tok.TextRange())
	}
}

func evalBinary(bin Binary, vars map[string]float64) (float64, error) {
	lhsEl, rhsEl := bin.Operands()
	op, ok := bin.Op()
	if !ok {
		return 0, fmt.Errorf("%w: missing operator at %s", ErrInvalidExpr, bin.syntax.TextRange())
	}

	lhs, err := eval(lhsEl, vars)
	if err != nil {
		return 0, err
	}
	rhs, err := eval(rhsEl, vars)
	if err != nil {
		return 0, err
	}

	switch op.Kind() {
	case Plus:
		return lhs + rhs, nil
	case Minus:
		return lhs - rhs, nil
	case Star:
		return lhs * rhs, nil
	default:
		if rhs == 0 {
			return 0, fmt.Errorf("%w: division by zero at %s", ErrInvalidExpr, op.TextRange())
		}
		return lhs / rhs, nil
	}
}

// evalWrapper handles PREFIX_EXPR and PAREN_EXPR, which hold one operand.
func evalWrapper(node *red.Node, vars map[string]float64) (float64, error) {
	negate := false
	var operand red.Element
	for child := range node.Children() {
		switch kind := child.Kind(); {
		case kind == Error:
			return 0, fmt.Errorf("%w: ERROR at %s", ErrInvalidExpr, child.TextRange())
		case kind == Minus && node.Kind() == PrefixExpr:
			negate = true
		case isOperand(kind):
			operand = child
		}
	}

	value, err := eval(operand, vars)
	if err != nil {
		return 0, err
	}
	if negate {
		return -value, nil
	}
	return value, nil
}

func isOperand(kind syntax.Kind) bool {
	switch kind {
	case Number, Ident, BinExpr, PrefixExpr, ParenExpr, Error:
		return true
	default:
		return false
	}
}

func isOperator(kind syntax.Kind) bool {
	switch kind {
	case Plus, Minus, Star, Slash:
		return true
	default:
		return false
	}
}
