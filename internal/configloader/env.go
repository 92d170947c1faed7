package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/syntree/pkg/config"
)

// envVarPrefix is the prefix for all syntree environment variables.
const envVarPrefix = "SYNTREE_"

// envBinding ties an environment variable to a config field. field returns a
// pointer to a string, ColorMode, OutputFormat, int, bool or []string.
type envBinding struct {
	description string
	field       func(cfg *config.Config) any
}

// envBindings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envBindings = map[string]envBinding{
	"LANGUAGE":              {"Force a language for every input", func(c *config.Config) any { return &c.Language }},
	"FORMAT":                {"Output format: text or json", func(c *config.Config) any { return &c.Format }},
	"COLOR":                 {"Styled output: auto, always or never", func(c *config.Config) any { return &c.Color }},
	"LOG_LEVEL":             {"Log level: debug, info, warn or error", func(c *config.Config) any { return &c.LogLevel }},
	"JOBS":                  {"Number of parallel workers (0 = auto)", func(c *config.Config) any { return &c.Jobs }},
	"CACHE_SHARED":          {"Share one interning cache across files: true or false", func(c *config.Config) any { return &c.Cache.Shared }},
	"MARKDOWN_GFM":          {"Enable GitHub Flavored Markdown: true or false", func(c *config.Config) any { return &c.Markdown.GFM }},
	"OUTPUT_OFFSETS":        {"Print element ranges: true or false", func(c *config.Config) any { return &c.Output.Offsets }},
	"OUTPUT_MAX_DEPTH":      {"Maximum printed tree depth (0 = unlimited)", func(c *config.Config) any { return &c.Output.MaxDepth }},
	"FILES_INCLUDE":         {"Comma-separated list of include patterns", func(c *config.Config) any { return &c.Files.Include }},
	"FILES_EXCLUDE":         {"Comma-separated list of exclude patterns", func(c *config.Config) any { return &c.Files.Exclude }},
	"FILES_FOLLOW_SYMLINKS": {"Follow directory symlinks: true or false", func(c *config.Config) any { return &c.Files.FollowSymlinks }},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with SYNTREE_ (e.g., SYNTREE_JOBS).
func LoadFromEnv(cfg *config.Config) error {
	return loadFromEnv(cfg, os.LookupEnv)
}

func loadFromEnv(cfg *config.Config, lookup func(string) (string, bool)) error {
	if cfg == nil {
		return nil
	}

	for suffix, binding := range envBindings {
		envVar := envVarPrefix + suffix
		value, ok := lookup(envVar)
		if !ok || value == "" {
			continue
		}
		if err := applyEnvValue(binding.field(cfg), value, envVar); err != nil {
			return err
		}
	}
	return nil
}

func applyEnvValue(target any, value, envVar string) error {
	switch field := target.(type) {
	case *string:
		*field = value
	case *config.OutputFormat:
		*field = config.OutputFormat(value)
	case *config.ColorMode:
		*field = config.ColorMode(value)
	case *bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		*field = b
	case *int:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		*field = i
	case *[]string:
		*field = parseSliceValue(value)
	default:
		return fmt.Errorf("unsupported field type %T for %s", target, envVar)
	}
	return nil
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// EnvVar describes one supported environment variable.
type EnvVar struct {
	Name        string
	Description string
}

// ListEnvVars returns all supported environment variables sorted by name.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(envBindings))
	for suffix, binding := range envBindings {
		vars = append(vars, EnvVar{Name: envVarPrefix + suffix, Description: binding.description})
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	return vars
}
