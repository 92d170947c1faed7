package markdown

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/syntree/pkg/green"
	"github.com/yaklabco/syntree/pkg/syntax"
)

const cancelCheckInterval = 256

// Options configures the Markdown language.
type Options struct {
	// GFM enables the GitHub Flavored Markdown extensions (tables,
	// strikethrough, task lists, autolinks).
	GFM bool
}

// Language parses Markdown. It is safe for concurrent use.
type Language struct {
	md goldmark.Markdown
}

// New creates a Markdown language with the given options.
func New(opts Options) *Language {
	var gmOpts []goldmark.Option
	if opts.GFM {
		gmOpts = append(gmOpts, goldmark.WithExtensions(extension.GFM))
	}
	return &Language{md: goldmark.New(gmOpts...)}
}

func (l *Language) Name() string { return "markdown" }

func (l *Language) Extensions() []string {
	return []string{".md", ".markdown", ".mdown", ".mkd"}
}

func (l *Language) KindName(kind syntax.Kind) string { return KindName(kind) }

// RelexToken classifies text as if it started a line, where the most
// markers are recognized.
func (l *Language) RelexToken(text string) (syntax.Kind, bool) {
	spans := Tokenize([]byte(text))
	if len(spans) != 1 {
		return 0, false
	}
	return spans[0].Kind, true
}

// Parse builds a DOCUMENT tree for src.
func (l *Language) Parse(ctx context.Context, src []byte, cache green.Interner) (*green.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse markdown: %w", err)
	}

	doc := l.md.Parser().Parse(text.NewReader(src), parser.WithContext(parser.NewContext()))
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse markdown: %w", err)
	}

	d := &driver{
		ctx:     ctx,
		src:     src,
		spans:   Tokenize(src),
		ranges:  make(map[gast.Node]syntax.TextRange),
		builder: green.NewBuilderWithCache(cache),
	}
	d.measure(doc)

	d.builder.StartNode(Document)
	d.children(doc)
	d.feedUntil(len(src))
	d.builder.FinishNode()

	if d.err != nil {
		return nil, fmt.Errorf("parse markdown: %w", d.err)
	}
	root, err := d.builder.Finish()
	if err != nil {
		return nil, fmt.Errorf("parse markdown: %w", err)
	}
	return root, nil
}

// driver feeds tokens to the builder, opening a node for each mapped block.
type driver struct {
	ctx     context.Context
	src     []byte
	spans   []Span
	next    int
	ranges  map[gast.Node]syntax.TextRange
	builder *green.Builder
	err     error
}

// children emits the blocks below n. Unmapped blocks are transparent: their
// own children are emitted in the current node.
func (d *driver) children(n gast.Node) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if child.Type() == gast.TypeInline {
			continue
		}

		kind, mapped := blockKind(child)
		rng, measured := d.ranges[child]
		if !mapped || !measured {
			d.children(child)
			continue
		}

		d.feedUntil(rng.Start)
		if !d.hasTokenBefore(rng.End) {
			continue
		}
		d.builder.StartNode(kind)
		d.children(child)
		d.feedUntil(rng.End)
		d.builder.FinishNode()
	}
}

// feedUntil feeds every remaining token that starts before offset.
func (d *driver) feedUntil(offset int) {
	for d.err == nil && d.hasTokenBefore(offset) {
		if d.next%cancelCheckInterval == 0 {
			if err := d.ctx.Err(); err != nil {
				d.err = err
				return
			}
		}
		span := d.spans[d.next]
		d.builder.Token(span.Kind, string(d.src[span.Start:span.End]))
		d.next++
	}
}

func (d *driver) hasTokenBefore(offset int) bool {
	return d.next < len(d.spans) && d.spans[d.next].Start < offset
}

// measure records the line-aligned range of every block below n and returns
// the range of n itself.
func (d *driver) measure(n gast.Node) (syntax.TextRange, bool) {
	start, end := -1, -1
	widen := func(s, e int) {
		if start < 0 || s < start {
			start = s
		}
		if e > end {
			end = e
		}
	}

	lines := n.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		widen(seg.Start, seg.Stop)
	}
	if fenced, ok := n.(*gast.FencedCodeBlock); ok && fenced.Info != nil {
		widen(fenced.Info.Segment.Start, fenced.Info.Segment.Stop)
	}

	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if child.Type() == gast.TypeInline {
			inlineSegments(child, widen)
			continue
		}
		if rng, ok := d.measure(child); ok {
			widen(rng.Start, rng.End)
		}
	}

	if start < 0 || n.Kind() == gast.KindDocument {
		return syntax.TextRange{}, false
	}

	rng := d.lineAligned(start, end)
	if fenced, ok := n.(*gast.FencedCodeBlock); ok {
		rng = d.withFences(fenced, rng)
	}
	d.ranges[n] = rng
	return rng, true
}

// lineAligned widens [start, end) to whole lines, excluding the final line
// break.
func (d *driver) lineAligned(start, end int) syntax.TextRange {
	start = lineStart(d.src, start)
	if end > start && d.src[end-1] == '\n' {
		end--
	}
	if end > start && d.src[end-1] == '\r' {
		end--
	}
	return syntax.NewRange(start, lineEnd(d.src, end))
}

// withFences extends a fenced block's content range over its opening and
// closing fence lines.
func (d *driver) withFences(fenced *gast.FencedCodeBlock, rng syntax.TextRange) syntax.TextRange {
	if fenced.Info == nil && rng.Start > 0 {
		rng.Start = lineStart(d.src, rng.Start-1)
	}

	next := rng.End
	if next < len(d.src) && d.src[next] == '\r' {
		next++
	}
	if next < len(d.src) && d.src[next] == '\n' {
		next++
	}
	if next > rng.End && isFenceLine(d.src[next:]) {
		rng.End = lineEnd(d.src, next)
	}
	return rng
}

// inlineSegments reports the source segments of the text and raw HTML below
// an inline node. Some blocks, such as table cells, carry no lines of their
// own.
func inlineSegments(n gast.Node, widen func(start, end int)) {
	switch inline := n.(type) {
	case *gast.Text:
		if !inline.Segment.IsEmpty() {
			widen(inline.Segment.Start, inline.Segment.Stop)
		}
	case *gast.RawHTML:
		for i := range inline.Segments.Len() {
			if seg := inline.Segments.At(i); !seg.IsEmpty() {
				widen(seg.Start, seg.Stop)
			}
		}
	}
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		inlineSegments(child, widen)
	}
}

func blockKind(n gast.Node) (syntax.Kind, bool) {
	switch n.Kind() {
	case gast.KindHeading:
		return Heading, true
	case gast.KindParagraph, gast.KindTextBlock:
		return Paragraph, true
	case gast.KindBlockquote:
		return Blockquote, true
	case gast.KindList:
		return List, true
	case gast.KindListItem:
		return ListItem, true
	case gast.KindCodeBlock:
		return CodeBlock, true
	case gast.KindFencedCodeBlock:
		return FencedCode, true
	case gast.KindHTMLBlock:
		return HTMLBlock, true
	case east.KindTable:
		return Table, true
	default:
		return 0, false
	}
}

func lineStart(src []byte, i int) int {
	for i > 0 && src[i-1] != '\n' {
		i--
	}
	return i
}

func lineEnd(src []byte, i int) int {
	for i < len(src) && src[i] != '\n' && src[i] != '\r' {
		i++
	}
	return i
}

func isFenceLine(line []byte) bool {
	trimmed := bytes.TrimLeft(line, " ")
	return bytes.HasPrefix(trimmed, []byte("```")) || bytes.HasPrefix(trimmed, []byte("~~~"))
}
