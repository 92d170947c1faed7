package reporter

import "fmt"

// Format represents an output format.
type Format string

// Output formats supported by the reporter.
const (
	// FormatText prints each tree as indented KIND@start..end lines.
	FormatText Format = "text"

	// FormatJSON prints every tree as nested JSON objects.
	FormatJSON Format = "json"

	// FormatStats prints a per-file statistics table.
	FormatStats Format = "stats"

	// FormatSummary prints aggregate statistics only.
	FormatSummary Format = "summary"
)

// ParseFormat parses a format string, returning an error for unknown formats.
func ParseFormat(formatStr string) (Format, error) {
	switch Format(formatStr) {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatStats, FormatSummary:
		return Format(formatStr), nil
	default:
		return "", fmt.Errorf("unknown format %q; valid formats: text, json, stats, summary", formatStr)
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatStats, FormatSummary:
		return true
	default:
		return false
	}
}
