package pretty_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/syntree/internal/ui/pretty"
	"github.com/yaklabco/syntree/pkg/lang/calc"
	"github.com/yaklabco/syntree/pkg/runner"
)

func TestFormatTable(t *testing.T) {
	result := &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path:     "a.calc",
				Language: calc.Language{},
				Stats:    runner.FileStats{Bytes: 5, Nodes: 2, Tokens: 5, Depth: 2},
				Duration: 20 * time.Microsecond,
			},
			{Path: "notes.txt", Error: errors.New("unknown language")},
		},
		Stats: runner.Stats{FilesParsed: 1, FilesFailed: 1, Bytes: 5, Nodes: 2, Tokens: 5, MaxDepth: 2},
	}

	out := pretty.NewTableFormatter(pretty.NewStyles(false), 80).FormatTable(result)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 7)

	assert.Equal(t, " FILE              LANG   BYTES  NODES  TOKENS  DEPTH  ERRORS  TIME", lines[0])
	assert.Equal(t, " a.calc            calc       5      2       5      2       0  20µs", lines[2])
	assert.Equal(t, " notes.txt         -     failed      -       -      -       -     -", lines[3])
	assert.True(t, strings.HasPrefix(lines[5], " TOTAL (1 parsed)"))
	assert.Equal(t, strings.Repeat("=", len(lines[1])), lines[1])

	assert.Empty(t, pretty.NewTableFormatter(pretty.NewStyles(false), 0).FormatTable(&runner.Result{}))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0s", pretty.FormatDuration(0))
	assert.Equal(t, "12µs", pretty.FormatDuration(12345*time.Nanosecond))
	assert.Equal(t, "1.23ms", pretty.FormatDuration(1234567*time.Nanosecond))
	assert.Equal(t, "2.346s", pretty.FormatDuration(2345678901*time.Nanosecond))
}
