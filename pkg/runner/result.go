package runner

import (
	"time"

	"github.com/yaklabco/syntree/pkg/green"
	"github.com/yaklabco/syntree/pkg/lang"
)

// FileStats describes the tree built for one file.
type FileStats struct {
	Bytes      int
	Nodes      int
	Tokens     int
	Depth      int
	ErrorNodes int
}

// FileOutcome is the result of parsing one file.
type FileOutcome struct {
	Path     string
	Language lang.Language

	// Root is nil if Error is set.
	Root     *green.Node
	Stats    FileStats
	Duration time.Duration
	Error    error

	// cache holds the statistics of the file's private cache, if any.
	cache green.CacheStats
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered int
	FilesParsed     int
	FilesFailed     int

	Bytes      int
	Nodes      int
	Tokens     int
	MaxDepth   int
	ErrorNodes int

	// Cache sums the interning statistics of every cache used in the run.
	Cache green.CacheStats

	Duration time.Duration
}

// Result is the outcome of a run. Files are in path order.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// HasFailures reports whether any file could not be parsed.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.FilesFailed > 0
}

// HasErrorNodes reports whether any tree contains ERROR nodes.
func (r *Result) HasErrorNodes() bool {
	return r != nil && r.Stats.ErrorNodes > 0
}

// NewResult aggregates outcomes produced outside Run, such as a source read
// from stdin.
func NewResult(outcomes ...FileOutcome) *Result {
	result := &Result{Files: make([]FileOutcome, 0, len(outcomes))}
	result.Stats.FilesDiscovered = len(outcomes)
	for _, outcome := range outcomes {
		result.accumulate(outcome)
		result.Stats.Duration += outcome.Duration
	}
	return result
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)
	r.Stats.Cache = addCacheStats(r.Stats.Cache, outcome.cache)

	if outcome.Error != nil {
		r.Stats.FilesFailed++
		return
	}

	r.Stats.FilesParsed++
	r.Stats.Bytes += outcome.Stats.Bytes
	r.Stats.Nodes += outcome.Stats.Nodes
	r.Stats.Tokens += outcome.Stats.Tokens
	r.Stats.ErrorNodes += outcome.Stats.ErrorNodes
	r.Stats.MaxDepth = max(r.Stats.MaxDepth, outcome.Stats.Depth)
}

func addCacheStats(a, b green.CacheStats) green.CacheStats {
	return green.CacheStats{
		TokenHits:   a.TokenHits + b.TokenHits,
		TokenMisses: a.TokenMisses + b.TokenMisses,
		NodeHits:    a.NodeHits + b.NodeHits,
		NodeMisses:  a.NodeMisses + b.NodeMisses,
		Tokens:      a.Tokens + b.Tokens,
		Nodes:       a.Nodes + b.Nodes,
	}
}

// Measure walks a green tree and counts its elements. Nodes whose kind the
// language names "ERROR" are counted as error nodes.
func Measure(root *green.Node, language lang.Language) FileStats {
	stats := FileStats{Bytes: root.TextLen()}

	type frame struct {
		node  *green.Node
		depth int
	}
	stack := []frame{{node: root, depth: 1}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		stats.Nodes++
		stats.Depth = max(stats.Depth, top.depth)
		if language != nil && language.KindName(top.node.Kind()) == "ERROR" {
			stats.ErrorNodes++
		}

		for _, child := range top.node.Children() {
			if node, ok := child.AsNode(); ok {
				stack = append(stack, frame{node: node, depth: top.depth + 1})
			} else {
				stats.Tokens++
			}
		}
	}
	return stats
}
