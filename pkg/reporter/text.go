package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/syntree/internal/ui/pretty"
	"github.com/yaklabco/syntree/pkg/red"
	"github.com/yaklabco/syntree/pkg/runner"
	"github.com/yaklabco/syntree/pkg/syntax"
)

// errorKindName is the kind name drivers give to error recovery nodes.
const errorKindName = "ERROR"

// TextReporter prints trees as indented, styled lines:
//
//	ROOT@0..5
//	  BIN_EXPR@0..5
//	    NUMBER@0..1 "1"
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		fmt.Fprintln(r.bw, r.styles.Warning.Render("No files to parse."))
		return 0, nil
	}

	withHeaders := len(result.Files) > 1
	for i, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return i, fmt.Errorf("report cancelled: %w", err)
		}

		path := displayPath(file.Path, r.opts.WorkingDir)
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		if withHeaders {
			if i > 0 {
				fmt.Fprintln(r.bw)
			}
			fmt.Fprintf(r.bw, "%s %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Dim.Render("("+file.Language.Name()+")"),
			)
		}
		r.writeTree(r.bw, red.NewRoot(file.Root), file.Language.KindName)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, "\n"+r.styles.FormatSummaryOneLine(result.Stats))
	}
	return len(result.Files), nil
}

// writeTree prints root and its descendants down to MaxDepth. A node whose
// children are cut off ends in an ellipsis.
func (r *TextReporter) writeTree(w io.Writer, root *red.Node, namer syntax.KindNamer) {
	var visit func(el red.Element, depth int)
	visit = func(el red.Element, depth int) {
		var line strings.Builder
		line.WriteString(strings.Repeat("  ", depth))
		r.writeElement(&line, el, namer)

		node, isNode := el.AsNode()
		truncated := isNode && node.ChildCount() > 0 && r.opts.MaxDepth > 0 && depth+1 >= r.opts.MaxDepth
		if truncated {
			line.WriteString(r.styles.Dim.Render(" …"))
		}
		fmt.Fprintln(w, line.String())

		if !isNode || truncated {
			return
		}
		for child := range node.Children() {
			visit(child, depth+1)
		}
	}
	visit(red.NodeElement(root), 0)
}

func (r *TextReporter) writeElement(sb *strings.Builder, el red.Element, namer syntax.KindNamer) {
	name := syntax.NameOf(namer, el.Kind())
	tok, isToken := el.AsToken()

	switch {
	case name == errorKindName:
		sb.WriteString(r.styles.ErrorKind.Render(name))
	case isToken:
		sb.WriteString(r.styles.TokenKind.Render(name))
	default:
		sb.WriteString(r.styles.NodeKind.Render(name))
	}

	if r.opts.Offsets {
		sb.WriteString(r.styles.Range.Render("@" + el.TextRange().String()))
	}
	if isToken {
		text := tok.Text()
		if width := r.opts.textWidth(); width > 0 {
			text = pretty.Truncate(text, width)
		}
		sb.WriteByte(' ')
		sb.WriteString(r.styles.Text.Render(strconv.Quote(text)))
	}
}
