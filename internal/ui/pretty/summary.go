package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/syntree/pkg/runner"
)

const summaryDividerWidth = 40

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 files parsed, 412 nodes, 1280 tokens, 1 failed, 2 error nodes in 4ms".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	parts := []string{
		fmt.Sprintf("%d %s parsed", stats.FilesParsed, plural(stats.FilesParsed, "file", "files")),
		fmt.Sprintf("%d nodes", stats.Nodes),
		fmt.Sprintf("%d tokens", stats.Tokens),
	}
	if stats.FilesFailed > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesFailed)))
	}
	if stats.ErrorNodes > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d error %s",
			stats.ErrorNodes, plural(stats.ErrorNodes, "node", "nodes"))))
	}
	if stats.FilesFailed == 0 && stats.ErrorNodes == 0 {
		parts[0] = s.Success.Render(parts[0])
	}
	return strings.Join(parts, ", ") + s.Dim.Render(" in "+FormatDuration(stats.Duration)) + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var b strings.Builder

	line := func(label string, value string) {
		b.WriteString("  " + PadRight(label+":", 20) + value + "\n")
	}

	b.WriteString("\n")
	b.WriteString(s.SummaryTitle.Render("Summary"))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", summaryDividerWidth))
	b.WriteString("\n")

	line("Files discovered", s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)))
	line("Files parsed", s.SummaryValue.Render(strconv.Itoa(stats.FilesParsed)))
	if stats.FilesFailed > 0 {
		line("Files failed", s.Failure.Render(strconv.Itoa(stats.FilesFailed)))
	}
	b.WriteString("\n")

	line("Bytes", s.SummaryValue.Render(strconv.Itoa(stats.Bytes)))
	line("Nodes", s.SummaryValue.Render(strconv.Itoa(stats.Nodes)))
	line("Tokens", s.SummaryValue.Render(strconv.Itoa(stats.Tokens)))
	line("Max depth", s.SummaryValue.Render(strconv.Itoa(stats.MaxDepth)))
	if stats.ErrorNodes > 0 {
		line("Error nodes", s.Warning.Render(strconv.Itoa(stats.ErrorNodes)))
	}
	b.WriteString("\n")

	cache := stats.Cache
	line("Cache entries", s.SummaryValue.Render(fmt.Sprintf("%d tokens, %d nodes", cache.Tokens, cache.Nodes)))
	line("Cache hit rate", s.SummaryValue.Render(fmt.Sprintf("%.1f%%", cache.HitRate()*100)))
	b.WriteString("\n")

	switch {
	case stats.FilesFailed > 0:
		b.WriteString(s.Failure.Render("Some files could not be parsed"))
	case stats.ErrorNodes > 0:
		b.WriteString(s.Warning.Render("Parsed with syntax errors"))
	default:
		b.WriteString(s.Success.Render("All files parsed cleanly"))
	}
	b.WriteString("\n")
	return b.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
