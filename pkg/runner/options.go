// Package runner parses many files concurrently.
package runner

import (
	"github.com/yaklabco/syntree/pkg/config"
	"github.com/yaklabco/syntree/pkg/lang"
)

// Options controls a multi-file run.
type Options struct {
	// Paths are the files or directories to process. Defaults to ".".
	Paths []string

	// WorkingDir resolves relative Paths. Defaults to the process working directory.
	WorkingDir string

	// Language forces one language for every file. Empty means detect per file.
	Language string

	// IncludeGlobs restrict discovered files to those matching a pattern.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files and directories.
	ExcludeGlobs []string

	// FollowSymlinks traverses directory symlinks.
	FollowSymlinks bool

	// Jobs bounds the number of concurrent workers. 0 or negative means runtime.NumCPU().
	Jobs int

	// SharedCache makes all workers intern through one synchronized cache, so
	// identical subtrees across files share an allocation.
	SharedCache bool
}

// OptionsFromConfig derives run options from a resolved configuration.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	opts := Options{Paths: paths}
	if cfg == nil {
		return opts
	}
	opts.Language = cfg.Language
	opts.Jobs = cfg.Jobs
	opts.SharedCache = cfg.Cache.Shared
	opts.IncludeGlobs = cfg.Files.Include
	opts.ExcludeGlobs = cfg.Files.Exclude
	opts.FollowSymlinks = cfg.Files.FollowSymlinks
	return opts
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

// extensions returns the extensions eligible during directory walks.
func (o Options) extensions(registry *lang.Registry) []string {
	if o.Language != "" {
		if language, ok := registry.Lookup(o.Language); ok {
			return language.Extensions()
		}
	}
	return registry.Extensions()
}
