package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "output.max_depth").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Err returns the first error, or nil.
func (r *ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	return &r.Errors[0]
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	knownFormats   = []OutputFormat{FormatText, FormatJSON}
	knownColors    = []ColorMode{ColorAuto, ColorAlways, ColorNever}
	knownLogLevels = []string{"debug", "info", "warn", "error"}
)

// IsValid reports whether f is a known output format.
func (f OutputFormat) IsValid() bool {
	return oneOf(f, knownFormats)
}

// IsValid reports whether m is a known color mode.
func (m ColorMode) IsValid() bool {
	return oneOf(m, knownColors)
}

// Validate checks a configuration for errors and warnings.
func (c *Config) Validate() *ValidationResult {
	result := &ValidationResult{}
	if c == nil {
		return result
	}

	if c.Format != "" && !c.Format.IsValid() {
		result.addError("format", c.Format, "invalid format %q; must be one of: %s", c.Format, joinAll(knownFormats))
	}
	if c.Color != "" && !c.Color.IsValid() {
		result.addError("color", c.Color, "invalid color mode %q; must be one of: %s", c.Color, joinAll(knownColors))
	}
	if c.LogLevel != "" && !oneOf(strings.ToLower(c.LogLevel), knownLogLevels) {
		result.addError("log_level", c.LogLevel, "invalid log level %q; must be one of: %s",
			c.LogLevel, strings.Join(knownLogLevels, ", "))
	}
	if c.Jobs < 0 {
		result.addError("jobs", c.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	if c.Output.MaxDepth < 0 {
		result.addError("output.max_depth", c.Output.MaxDepth, "max_depth must be >= 0 (0 means unlimited)")
	}
	if c.Language != "" && c.Language != strings.TrimSpace(c.Language) {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "language",
			Value:   c.Language,
			Message: "surrounding whitespace is ignored",
		})
		c.Language = strings.TrimSpace(c.Language)
	}

	validatePatterns(result, "files.include", c.Files.Include)
	validatePatterns(result, "files.exclude", c.Files.Exclude)

	return result
}

// ValidateWithFile validates the configuration and attributes findings to filePath.
func (c *Config) ValidateWithFile(filePath string) *ValidationResult {
	result := c.Validate()
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}

func validatePatterns(result *ValidationResult, field string, patterns []string) {
	for i, pattern := range patterns {
		if strings.TrimSpace(pattern) == "" {
			result.addError(fmt.Sprintf("%s[%d]", field, i), pattern, "empty glob pattern")
			continue
		}
		// filepath.Match only fails on malformed patterns.
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.addError(fmt.Sprintf("%s[%d]", field, i), pattern, "invalid glob pattern: %v", err)
		}
	}
}

func (r *ValidationResult) addError(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	})
}

func oneOf[T comparable](v T, known []T) bool {
	return slices.Contains(known, v)
}

func joinAll[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
