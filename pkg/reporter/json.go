package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/tidwall/pretty"

	ui "github.com/yaklabco/syntree/internal/ui/pretty"
	"github.com/yaklabco/syntree/pkg/red"
	"github.com/yaklabco/syntree/pkg/runner"
	"github.com/yaklabco/syntree/pkg/syntax"
)

// jsonVersion is bumped when the output layout changes incompatibly.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's tree.
type JSONFileResult struct {
	Path     string       `json:"path"`
	Language string       `json:"language,omitempty"`
	Stats    *JSONStats   `json:"stats,omitempty"`
	Tree     *JSONElement `json:"tree,omitempty"`
	Error    string       `json:"error,omitempty"`
}

// JSONStats mirrors runner.FileStats.
type JSONStats struct {
	Bytes      int `json:"bytes"`
	Nodes      int `json:"nodes"`
	Tokens     int `json:"tokens"`
	Depth      int `json:"depth"`
	ErrorNodes int `json:"errorNodes"`
}

// JSONElement is one node or token. Nodes carry children and tokens carry
// text. Start and End are omitted when offsets are disabled.
type JSONElement struct {
	Kind      string         `json:"kind"`
	Start     *int           `json:"start,omitempty"`
	End       *int           `json:"end,omitempty"`
	Text      *string        `json:"text,omitempty"`
	Children  []*JSONElement `json:"children,omitempty"`
	Truncated bool           `json:"truncated,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesParsed  int     `json:"filesParsed"`
	FilesFailed  int     `json:"filesFailed"`
	Bytes        int     `json:"bytes"`
	Nodes        int     `json:"nodes"`
	Tokens       int     `json:"tokens"`
	MaxDepth     int     `json:"maxDepth"`
	ErrorNodes   int     `json:"errorNodes"`
	CacheHitRate float64 `json:"cacheHitRate"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts  Options
	color bool
	bw    *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts:  opts,
		color: ui.IsColorEnabled(opts.Color, opts.Writer),
		bw:    bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output, err := r.buildOutput(ctx, result)
	if err != nil {
		return 0, err
	}

	data, err := json.Marshal(output)
	if err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	if r.opts.Compact {
		data = append(pretty.Ugly(data), '\n')
	} else {
		data = pretty.Pretty(data)
	}
	if r.color {
		data = pretty.Color(data, nil)
	}

	if _, err := r.bw.Write(data); err != nil {
		return 0, fmt.Errorf("write JSON: %w", err)
	}
	return len(output.Files), nil
}

func (r *JSONReporter) buildOutput(ctx context.Context, result *runner.Result) (*JSONOutput, error) {
	output := &JSONOutput{Version: jsonVersion, Files: make([]JSONFileResult, 0)}
	if result == nil {
		return output, nil
	}

	for _, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("report cancelled: %w", err)
		}

		entry := JSONFileResult{Path: displayPath(file.Path, r.opts.WorkingDir)}
		if file.Language != nil {
			entry.Language = file.Language.Name()
		}
		if file.Error != nil {
			entry.Error = file.Error.Error()
			output.Files = append(output.Files, entry)
			continue
		}

		entry.Stats = &JSONStats{
			Bytes:      file.Stats.Bytes,
			Nodes:      file.Stats.Nodes,
			Tokens:     file.Stats.Tokens,
			Depth:      file.Stats.Depth,
			ErrorNodes: file.Stats.ErrorNodes,
		}
		entry.Tree = r.element(red.NodeElement(red.NewRoot(file.Root)), file.Language.KindName, 0)
		output.Files = append(output.Files, entry)
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesParsed:  stats.FilesParsed,
		FilesFailed:  stats.FilesFailed,
		Bytes:        stats.Bytes,
		Nodes:        stats.Nodes,
		Tokens:       stats.Tokens,
		MaxDepth:     stats.MaxDepth,
		ErrorNodes:   stats.ErrorNodes,
		CacheHitRate: stats.Cache.HitRate(),
	}
	return output, nil
}

func (r *JSONReporter) element(el red.Element, namer syntax.KindNamer, depth int) *JSONElement {
	out := &JSONElement{Kind: syntax.NameOf(namer, el.Kind())}
	if r.opts.Offsets {
		rng := el.TextRange()
		out.Start, out.End = &rng.Start, &rng.End
	}

	if tok, ok := el.AsToken(); ok {
		text := tok.Text()
		out.Text = &text
		return out
	}

	node, _ := el.AsNode()
	if node.ChildCount() == 0 {
		return out
	}
	if r.opts.MaxDepth > 0 && depth+1 >= r.opts.MaxDepth {
		out.Truncated = true
		return out
	}

	out.Children = make([]*JSONElement, 0, node.ChildCount())
	for child := range node.Children() {
		out.Children = append(out.Children, r.element(child, namer, depth+1))
	}
	return out
}
