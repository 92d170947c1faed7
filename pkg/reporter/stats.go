package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/syntree/internal/ui/pretty"
	"github.com/yaklabco/syntree/pkg/runner"
)

// StatsReporter prints a per-file statistics table.
type StatsReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewStatsReporter creates a new statistics reporter.
func NewStatsReporter(opts Options) *StatsReporter {
	styles := pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer))
	return &StatsReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, pretty.TerminalWidth(opts.Writer)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// newSummaryReporter creates a reporter printing only the summary block.
func newSummaryReporter(opts Options) *StatsReporter {
	r := NewStatsReporter(opts)
	r.formatter = nil
	return r
}

// Report implements Reporter.
func (r *StatsReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		fmt.Fprintln(r.bw, r.styles.Warning.Render("No files to parse."))
		return 0, nil
	}

	if r.formatter != nil {
		relative := *result
		relative.Files = make([]runner.FileOutcome, len(result.Files))
		for i, file := range result.Files {
			file.Path = displayPath(file.Path, r.opts.WorkingDir)
			relative.Files[i] = file
		}
		fmt.Fprint(r.bw, r.formatter.FormatTable(&relative))
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))
	}
	return len(result.Files), nil
}
