// Package config defines core configuration types for syntree.
// These types are pure data structures with no dependency on how they are loaded.
package config

// OutputFormat selects how trees are rendered.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ColorMode controls styled output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// CacheConfig controls green node interning across files.
type CacheConfig struct {
	// Shared interns every file of a run through one synchronized cache.
	Shared bool `yaml:"shared"`
}

// MarkdownConfig controls the markdown driver.
type MarkdownConfig struct {
	// GFM enables GitHub Flavored Markdown blocks (tables and friends).
	GFM bool `yaml:"gfm"`
}

// OutputConfig controls tree rendering.
type OutputConfig struct {
	// Offsets prints start..end ranges next to every element.
	Offsets bool `yaml:"offsets"`

	// MaxDepth limits how deep trees are printed. 0 means unlimited.
	MaxDepth int `yaml:"max_depth"`
}

// FilesConfig controls file discovery.
type FilesConfig struct {
	Include        []string `yaml:"include,omitempty"`
	Exclude        []string `yaml:"exclude,omitempty"`
	FollowSymlinks bool     `yaml:"follow_symlinks"`
}

// Config is the root configuration structure for syntree.
type Config struct {
	// Language forces one language for every input. Empty means detect.
	Language string `yaml:"language,omitempty"`

	Format   OutputFormat `yaml:"format"`
	Color    ColorMode    `yaml:"color"`
	LogLevel string       `yaml:"log_level"`

	// Jobs is the number of parallel workers. 0 means one per CPU.
	Jobs int `yaml:"jobs"`

	Cache    CacheConfig    `yaml:"cache"`
	Markdown MarkdownConfig `yaml:"markdown"`
	Output   OutputConfig   `yaml:"output"`
	Files    FilesConfig    `yaml:"files"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Format:   FormatText,
		Color:    ColorAuto,
		LogLevel: "warn",
		Markdown: MarkdownConfig{GFM: true},
		Output:   OutputConfig{Offsets: true},
	}
}
