package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting with its default value. Otherwise settings
	// are written commented out.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string

	// Languages are the language names mentioned in the template comments.
	Languages []string
}

// templateExcludes are the example exclude patterns written by templates.
//
//nolint:gochecknoglobals // Read-only template data
var templateExcludes = []string{"vendor/**"}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# syntree configuration
# See: https://github.com/yaklabco/syntree`
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}

	languages := "detected from the file name and content"
	if len(opts.Languages) > 0 {
		languages = "one of " + strings.Join(opts.Languages, ", ")
	}

	comment := "# "
	if opts.Full {
		comment = ""
	}

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n\n")
	fmt.Fprintf(&buf, "# Force a language for every input (%s)\n", languages)
	buf.WriteString("# language: calc\n\n")
	buf.WriteString("# Output format: text or json\n")
	fmt.Fprintf(&buf, "%sformat: %s\n\n", comment, FormatText)
	buf.WriteString("# Styled output: auto, always or never\n")
	fmt.Fprintf(&buf, "%scolor: %s\n\n", comment, ColorAuto)
	buf.WriteString("# Log level: debug, info, warn or error\n")
	fmt.Fprintf(&buf, "%slog_level: warn\n\n", comment)
	buf.WriteString("# Number of parallel workers (0 = one per CPU)\n")
	fmt.Fprintf(&buf, "%sjobs: 0\n\n", comment)
	buf.WriteString("# Share one interning cache between all files of a run\n")
	fmt.Fprintf(&buf, "%scache:\n%s  shared: false\n\n", comment, comment)
	buf.WriteString("# Markdown driver\n")
	fmt.Fprintf(&buf, "%smarkdown:\n%s  gfm: true\n\n", comment, comment)
	buf.WriteString("# Tree rendering (max_depth 0 = unlimited)\n")
	fmt.Fprintf(&buf, "%soutput:\n%s  offsets: true\n%s  max_depth: 0\n\n", comment, comment, comment)
	buf.WriteString("# File discovery (glob patterns)\n")
	fmt.Fprintf(&buf, "%sfiles:\n", comment)
	fmt.Fprintf(&buf, "%s  exclude:\n", comment)
	for _, pattern := range templateExcludes {
		fmt.Fprintf(&buf, "%s    - %q\n", comment, pattern)
	}
	fmt.Fprintf(&buf, "%s  follow_symlinks: false\n", comment)

	return buf.Bytes(), nil
}

// templateToJSON renders the default configuration as indented JSON. JSON
// has no comments, so it matches the full YAML template.
func templateToJSON() ([]byte, error) {
	yamlBytes, err := NewConfig().ToYAML()
	if err != nil {
		return nil, err
	}

	var generic map[string]any
	if err := yaml.Unmarshal(yamlBytes, &generic); err != nil {
		return nil, fmt.Errorf("decode defaults: %w", err)
	}

	jsonBytes, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	jsonBytes, err = sjson.SetBytes(jsonBytes, "files.exclude", templateExcludes)
	if err != nil {
		return nil, fmt.Errorf("set files.exclude: %w", err)
	}
	return pretty.PrettyOptions(jsonBytes, &pretty.Options{Indent: "  ", SortKeys: true}), nil
}
