package reporter

import (
	"io"
	"os"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// defaultMaxTextWidth bounds how much of a token's text is printed.
const defaultMaxTextWidth = 60

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// Offsets prints the start..end range of every element.
	Offsets bool

	// MaxDepth stops printing trees below this depth. 0 means unlimited.
	MaxDepth int

	// MaxTextWidth truncates token text to this many terminal cells.
	// 0 means the default; negative means never truncate.
	MaxTextWidth int

	// ShowSummary displays aggregate statistics after the trees.
	ShowSummary bool

	// Compact uses minified output where applicable.
	Compact bool

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is.
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:       os.Stdout,
		Format:       FormatText,
		Color:        "auto",
		Offsets:      true,
		MaxTextWidth: defaultMaxTextWidth,
	}
}

func (o Options) textWidth() int {
	if o.MaxTextWidth == 0 {
		return defaultMaxTextWidth
	}
	return o.MaxTextWidth
}
