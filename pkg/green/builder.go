package green

import (
	"fmt"

	"github.com/yaklabco/syntree/pkg/syntax"
)

// frame is an open node: its kind and the index of its first child in the
// builder's shared child list.
type frame struct {
	kind  syntax.Kind
	start int
}

// Checkpoint marks a position in the builder's current node.
// Pass it to StartNodeAt to wrap everything emitted after it in a new node.
type Checkpoint struct {
	depth int
	pos   int
}

// Builder assembles a green tree from start/token/finish events.
//
// Open nodes are kept on an explicit stack over a single child list, so
// arbitrarily deep input never recurses. Every token and finished node goes
// through the builder's Interner.
//
// Errors are sticky: the first rejected call records an error and leaves the
// builder state unchanged, later calls are ignored, and Finish reports the
// error instead of producing a tree.
type Builder struct {
	cache    Interner
	parents  []frame
	children []Element
	err      error
}

// NewBuilder creates a builder with a private Cache.
func NewBuilder() *Builder {
	return NewBuilderWithCache(NewCache())
}

// NewBuilderWithCache creates a builder that interns through cache.
// A nil cache gets a private Cache.
func NewBuilderWithCache(cache Interner) *Builder {
	if cache == nil {
		cache = NewCache()
	}
	return &Builder{cache: cache}
}

// Cache returns the builder's interner.
func (b *Builder) Cache() Interner {
	return b.cache
}

// Err returns the first error recorded by the builder, if any.
func (b *Builder) Err() error {
	return b.err
}

// Depth returns the number of open nodes.
func (b *Builder) Depth() int {
	return len(b.parents)
}

// StartNode opens a new node of the given kind.
func (b *Builder) StartNode(kind syntax.Kind) {
	if b.err != nil {
		return
	}
	b.parents = append(b.parents, frame{kind: kind, start: len(b.children)})
}

// Token appends a token to the current node.
func (b *Builder) Token(kind syntax.Kind, text string) {
	if b.err != nil {
		return
	}
	if len(b.parents) == 0 {
		b.fail("token", "token outside of any node", ErrUnbalancedTree)
		return
	}
	b.children = append(b.children, TokenElement(b.cache.Token(kind, text)))
}

// FinishNode closes the current node and appends it to its parent.
// Closing the outermost node makes it the root.
func (b *Builder) FinishNode() {
	if b.err != nil {
		return
	}
	if len(b.parents) == 0 {
		b.fail("finish_node", "no open node", ErrUnbalancedTree)
		return
	}

	top := b.parents[len(b.parents)-1]
	b.parents = b.parents[:len(b.parents)-1]

	node := b.cache.Node(top.kind, b.children[top.start:])

	clear(b.children[top.start:])
	b.children = append(b.children[:top.start], NodeElement(node))
}

// Checkpoint returns a marker for the current position in the current node.
func (b *Builder) Checkpoint() Checkpoint {
	return Checkpoint{depth: len(b.parents), pos: len(b.children)}
}

// StartNodeAt opens a new node of the given kind that adopts every element
// added to the current node since cp was taken. Elements before cp stay
// siblings of the new node.
func (b *Builder) StartNodeAt(cp Checkpoint, kind syntax.Kind) {
	if b.err != nil {
		return
	}
	if cp.depth != len(b.parents) {
		b.fail("start_node_at",
			fmt.Sprintf("checkpoint taken at depth %d, builder is at depth %d", cp.depth, len(b.parents)),
			ErrInvalidCheckpoint)
		return
	}
	if cp.pos > len(b.children) {
		b.fail("start_node_at",
			fmt.Sprintf("checkpoint position %d is past %d emitted elements", cp.pos, len(b.children)),
			ErrInvalidCheckpoint)
		return
	}
	if n := len(b.parents); n > 0 && cp.pos < b.parents[n-1].start {
		b.fail("start_node_at",
			fmt.Sprintf("checkpoint position %d precedes the current node", cp.pos),
			ErrInvalidCheckpoint)
		return
	}

	b.parents = append(b.parents, frame{kind: kind, start: cp.pos})
}

// Finish returns the completed root node.
//
// Exactly one root node must have been finished and no node may remain open.
// Finish resets the builder, keeping its cache, so it can build another tree.
func (b *Builder) Finish() (*Node, error) {
	defer b.reset()

	if b.err != nil {
		return nil, b.err
	}
	if len(b.parents) != 0 {
		return nil, &BuildError{
			Op:     "finish",
			Reason: fmt.Sprintf("%d unfinished node(s)", len(b.parents)),
			Err:    ErrUnbalancedTree,
		}
	}

	switch len(b.children) {
	case 0:
		return nil, &BuildError{Op: "finish", Reason: "no root node", Err: ErrUnbalancedTree}
	case 1:
		return b.children[0].node, nil
	default:
		return nil, &BuildError{
			Op:     "finish",
			Reason: fmt.Sprintf("%d root nodes", len(b.children)),
			Err:    ErrUnbalancedTree,
		}
	}
}

func (b *Builder) fail(op, reason string, sentinel error) {
	b.err = &BuildError{Op: op, Reason: reason, Err: sentinel}
}

func (b *Builder) reset() {
	b.parents = b.parents[:0]
	clear(b.children)
	b.children = b.children[:0]
	b.err = nil
}
