package decl

import (
	"context"
	"fmt"

	"github.com/yaklabco/syntree/pkg/green"
	"github.com/yaklabco/syntree/pkg/syntax"
)

const eof syntax.Kind = 1<<16 - 1

const cancelCheckInterval = 256

// Parse parses a sequence of struct declarations into a SOURCE_FILE tree.
// A nil cache gives the parse a private cache.
func Parse(ctx context.Context, src []byte, cache green.Interner) (*green.Node, error) {
	p := &parser{
		ctx:     ctx,
		tokens:  Lex(string(src)),
		builder: green.NewBuilderWithCache(cache),
	}

	p.builder.StartNode(KindSourceFile)
	for {
		p.eatTrivia()
		switch p.peek() {
		case eof:
			p.builder.FinishNode()
			return p.finish()
		case KindStructKw:
			p.structDecl()
		default:
			p.errorBump()
		}
	}
}

type parser struct {
	ctx     context.Context
	tokens  []Lexeme
	pos     int
	fed     int
	builder *green.Builder
	err     error
}

func (p *parser) finish() (*green.Node, error) {
	if p.err != nil {
		return nil, fmt.Errorf("parse decl: %w", p.err)
	}
	root, err := p.builder.Finish()
	if err != nil {
		return nil, fmt.Errorf("parse decl: %w", err)
	}
	return root, nil
}

// structDecl parses `struct Name { field: Type, ... }`.
func (p *parser) structDecl() {
	p.start(KindStruct)
	defer p.builder.FinishNode()

	p.bump() // struct
	p.wrapIdent(KindName)
	if p.peek() != KindLBrace {
		p.missing()
		return
	}
	p.bump()

	for {
		switch p.peek() {
		case KindRBrace:
			p.bump()
			return
		case eof, KindStructKw:
			p.missing()
			return
		case KindIdent:
			p.field()
			if p.peek() == KindComma {
				p.bump()
			}
		default:
			p.errorBump()
		}
	}
}

// field parses `name: Type`.
func (p *parser) field() {
	p.start(KindField)
	defer p.builder.FinishNode()

	p.wrapIdent(KindName)
	if p.peek() == KindColon {
		p.bump()
	} else {
		p.missing()
	}
	p.wrapIdent(KindType)
}

// wrapIdent wraps the next identifier in a node of the given kind, or emits
// an empty ERROR node if there is none.
func (p *parser) wrapIdent(kind syntax.Kind) {
	if p.peek() != KindIdent {
		p.missing()
		return
	}
	p.start(kind)
	p.bump()
	p.builder.FinishNode()
}

// start opens a node after any pending trivia, so trivia stays outside it.
func (p *parser) start(kind syntax.Kind) {
	p.eatTrivia()
	p.builder.StartNode(kind)
}

func (p *parser) missing() {
	p.start(KindError)
	p.builder.FinishNode()
}

func (p *parser) errorBump() {
	p.start(KindError)
	p.bump()
	p.builder.FinishNode()
}

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
