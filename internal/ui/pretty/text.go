package pretty

import (
	"strings"

	"github.com/rivo/uniseg"
)

const ellipsis = "…"

// Width returns the number of terminal cells s occupies.
func Width(s string) int {
	return uniseg.StringWidth(s)
}

// Truncate shortens s to at most width cells, ending in an ellipsis when
// anything was cut. Grapheme clusters are never split.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if uniseg.StringWidth(s) <= width {
		return s
	}

	var b strings.Builder
	used := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if used+w > width-1 {
			break
		}
		b.WriteString(cluster)
		used += w
	}
	b.WriteString(ellipsis)
	return b.String()
}

// TruncateLeft is Truncate keeping the end of s, for file paths.
func TruncateLeft(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if uniseg.StringWidth(s) <= width {
		return s
	}

	var clusters []string
	var widths []int
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		clusters = append(clusters, cluster)
		widths = append(widths, w)
	}

	used := 0
	start := len(clusters)
	for start > 0 && used+widths[start-1] <= width-1 {
		start--
		used += widths[start]
	}
	return ellipsis + strings.Join(clusters[start:], "")
}

// PadRight pads s with spaces to width cells.
func PadRight(s string, width int) string {
	if gap := width - uniseg.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// PadLeft right-aligns s within width cells.
func PadLeft(s string, width int) string {
	if gap := width - uniseg.StringWidth(s); gap > 0 {
		return strings.Repeat(" ", gap) + s
	}
	return s
}
