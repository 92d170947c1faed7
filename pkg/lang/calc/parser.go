package calc

import (
	"context"
	"fmt"

	"github.com/yaklabco/syntree/pkg/green"
	"github.com/yaklabco/syntree/pkg/syntax"
)

// eof is returned by peek past the last token. It is never emitted.
const eof syntax.Kind = 1<<16 - 1

// cancelCheckInterval is the number of tokens fed between context checks.
const cancelCheckInterval = 256

const prefixBindingPower = 5

// Parse parses src into a tree rooted at a ROOT node.
// A nil cache gives the parse a private cache.
func Parse(ctx context.Context, src []byte, cache green.Interner) (*green.Node, error) {
	p := &parser{
		ctx:     ctx,
		tokens:  Lex(string(src)),
		builder: green.NewBuilderWithCache(cache),
	}

	p.builder.StartNode(Root)
	for {
		p.eatTrivia()
		if p.peek() == eof {
			break
		}
		if !p.atAtomStart() {
			p.errorBump()
			continue
		}
		p.expr(0)
	}
	p.eatTrivia()
	p.builder.FinishNode()

	if p.err != nil {
		return nil, fmt.Errorf("parse calc: %w", p.err)
	}

	root, err := p.builder.Finish()
	if err != nil {
		return nil, fmt.Errorf("parse calc: %w", err)
	}
	return root, nil
}

type parser struct {
	ctx     context.Context
	tokens  []Lexeme
	pos     int
	fed     int
	builder *green.Builder
	err     error
}

// expr parses an expression whose operators bind tighter than minBP.
// Operands already emitted are wrapped into BIN_EXPR through a checkpoint
// taken before the left operand.
func (p *parser) expr(minBP int) {
	p.eatTrivia()
	checkpoint := p.builder.Checkpoint()

	if !p.atom() {
		return
	}

	for {
		leftBP, rightBP, ok := infixBindingPower(p.peek())
		if !ok || leftBP < minBP {
			return
		}

		p.builder.StartNodeAt(checkpoint, BinExpr)
		p.bump()
		p.expr(rightBP)
		p.builder.FinishNode()
	}
}

// atom parses an operand. It returns false if no operand was found, in which
// case an empty ERROR node marks the gap.
func (p *parser) atom() bool {
	switch p.peek() {
	case Number, Ident:
		p.bump()
	case LParen:
		p.builder.StartNode(ParenExpr)
		p.bump()
		p.expr(0)
		p.expect(RParen)
		p.builder.FinishNode()
	case Plus, Minus:
		p.builder.StartNode(PrefixExpr)
		p.bump()
		p.expr(prefixBindingPower)
		p.builder.FinishNode()
	case RParen, eof:
		p.missing()
		return false
	default:
		p.errorBump()
	}
	return true
}

func (p *parser) atAtomStart() bool {
	switch p.peek() {
	case Number, Ident, LParen, Plus, Minus:
		return true
	default:
		return false
	}
}

func (p *parser) expect(kind syntax.Kind) {
	if p.peek() == kind {
		p.bump()
		return
	}
	p.missing()
}

// missing emits an empty ERROR node.
func (p *parser) missing() {
	p.builder.StartNode(Error)
	p.builder.FinishNode()
}

// errorBump wraps the next token in an ERROR node.
func (p *parser) errorBump() {
	p.eatTrivia()
	p.builder.StartNode(Error)
	p.bump()
	p.builder.FinishNode()
}

// peek returns the kind of the next significant token.
func (p *parser) peek() syntax.Kind {
	if p.err != nil {
		return eof
	}
	for i := p.pos; i < len(p.tokens); i++ {
		if !IsTrivia(p.tokens[i].Kind) {
			return p.tokens[i].Kind
		}
	}
	return eof
}

// bump feeds pending trivia and the next significant token.
func (p *parser) bump() {
	p.eatTrivia()
	if p.pos < len(p.tokens) {
		p.feed()
	}
}

func (p *parser) eatTrivia() {
	for p.err == nil && p.pos < len(p.tokens) && IsTrivia(p.tokens[p.pos].Kind) {
		p.feed()
	}
}

func (p *parser) feed() {
	if p.err != nil {
		return
	}

	p.fed++
	if p.fed%cancelCheckInterval == 0 {
		if err := p.ctx.Err(); err != nil {
			p.err = err
			return
		}
	}

	tok := p.tokens[p.pos]
	p.builder.Token(tok.Kind, tok.Text)
	p.pos++
}

func infixBindingPower(kind syntax.Kind) (int, int, bool) {
	switch kind {
	case Plus, Minus:
		return 1, 2, true
	case Star, Slash:
		return 3, 4, true
	default:
		return 0, 0, false
	}
}
