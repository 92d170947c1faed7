package pretty

import (
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/syntree/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minFileWidth     = 12
	heavySeparator   = "="
	lightSeparator   = "-"
	failedCellMarker = "failed"
)

// statsColumns are the numeric columns after FILE.
//
//nolint:gochecknoglobals // Read-only table layout.
var statsColumns = []string{"LANG", "BYTES", "NODES", "TOKENS", "DEPTH", "ERRORS", "TIME"}

// TableRow is one file in the statistics table.
type TableRow struct {
	File   string
	Cells  []string
	Failed bool
}

// TableFormatter formats run statistics as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// FormatTable formats per-file statistics followed by a totals row.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	if result == nil || len(result.Files) == 0 {
		return ""
	}

	rows := make([]TableRow, 0, len(result.Files))
	for _, file := range result.Files {
		rows = append(rows, FileRow(file))
	}
	totals := totalsRow(result.Stats)

	widths := t.columnWidths(append(rows, totals))

	var b strings.Builder
	b.WriteString(t.formatHeader(widths))
	b.WriteString("\n")
	b.WriteString(t.formatSeparator(widths, heavySeparator))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(t.formatRow(row, widths))
		b.WriteString("\n")
	}
	b.WriteString(t.formatSeparator(widths, lightSeparator))
	b.WriteString("\n")
	b.WriteString(t.styles.Bold.Render(t.formatCells(totals, widths)))
	b.WriteString("\n")
	b.WriteString(t.formatSeparator(widths, heavySeparator))
	b.WriteString("\n")
	return b.String()
}

// FileRow converts one outcome into a table row.
func FileRow(file runner.FileOutcome) TableRow {
	language := "-"
	if file.Language != nil {
		language = file.Language.Name()
	}
	if file.Error != nil {
		cells := make([]string, len(statsColumns))
		cells[0] = language
		cells[1] = failedCellMarker
		for i := 2; i < len(cells); i++ {
			cells[i] = "-"
		}
		return TableRow{File: file.Path, Cells: cells, Failed: true}
	}

	s := file.Stats
	return TableRow{
		File: file.Path,
		Cells: []string{
			language,
			strconv.Itoa(s.Bytes),
			strconv.Itoa(s.Nodes),
			strconv.Itoa(s.Tokens),
			strconv.Itoa(s.Depth),
			strconv.Itoa(s.ErrorNodes),
			FormatDuration(file.Duration),
		},
	}
}

func totalsRow(s runner.Stats) TableRow {
	return TableRow{
		File: "TOTAL (" + strconv.Itoa(s.FilesParsed) + " parsed)",
		Cells: []string{
			"",
			strconv.Itoa(s.Bytes),
			strconv.Itoa(s.Nodes),
			strconv.Itoa(s.Tokens),
			strconv.Itoa(s.MaxDepth),
			strconv.Itoa(s.ErrorNodes),
			FormatDuration(s.Duration),
		},
	}
}

type columnWidths struct {
	file  int
	cells []int
}

// columnWidths sizes every column to its content. Only the FILE column
// shrinks to fit the terminal.
func (t *TableFormatter) columnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{file: max(minFileWidth, Width("FILE")), cells: make([]int, len(statsColumns))}
	for i, name := range statsColumns {
		widths.cells[i] = Width(name)
	}
	for _, row := range rows {
		widths.file = max(widths.file, Width(row.File))
		for i, cell := range row.Cells {
			widths.cells[i] = max(widths.cells[i], Width(cell))
		}
	}

	if total := widths.total(); total > t.termWidth {
		widths.file = max(minFileWidth, widths.file-(total-t.termWidth))
	}
	return widths
}

func (w columnWidths) total() int {
	total := w.file + tablePadding
	for _, cell := range w.cells {
		total += cell + tablePadding
	}
	return total
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	return t.styles.TableHeader.Render(t.formatCells(TableRow{File: "FILE", Cells: statsColumns}, widths))
}

func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, widths.total()))
}

func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	content := t.formatCells(row, widths)
	if row.Failed {
		return t.styles.TableFailedRow.Render(content)
	}
	return content
}

// formatCells lays out one line. The language column is left aligned and
// every numeric column right aligned.
func (t *TableFormatter) formatCells(row TableRow, widths columnWidths) string {
	var b strings.Builder
	b.WriteString(" ")
	b.WriteString(PadRight(TruncateLeft(row.File, widths.file), widths.file))
	for i, cell := range row.Cells {
		b.WriteString(strings.Repeat(" ", tablePadding))
		if i == 0 {
			b.WriteString(PadRight(cell, widths.cells[i]))
		} else {
			b.WriteString(PadLeft(cell, widths.cells[i]))
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// FormatDuration renders d with a precision suited to parse timings.
func FormatDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "0s"
	case d < time.Millisecond:
		return d.Round(time.Microsecond).String()
	case d < time.Second:
		return d.Round(10 * time.Microsecond).String()
	default:
		return d.Round(time.Millisecond).String()
	}
}
