// Package builtin registers the languages shipped with syntree.
package builtin

import (
	"errors"
	"fmt"

	"github.com/yaklabco/syntree/pkg/lang"
	"github.com/yaklabco/syntree/pkg/lang/calc"
	"github.com/yaklabco/syntree/pkg/lang/decl"
	"github.com/yaklabco/syntree/pkg/lang/markdown"
)

// Options configures the built-in languages.
type Options struct {
	Markdown markdown.Options
}

// DefaultOptions returns the options used for lang.DefaultRegistry.
func DefaultOptions() Options {
	return Options{Markdown: markdown.Options{GFM: true}}
}

// RegisterAll registers every built-in language with the given registry.
func RegisterAll(registry *lang.Registry, opts Options) error {
	var errs []error
	for _, language := range []lang.Language{
		calc.Language{},
		decl.Language{},
		markdown.New(opts.Markdown),
	} {
		if err := registry.Register(language); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("register built-in languages: %w", err)
	}
	return nil
}

// NewRegistry returns a fresh registry holding the built-in languages.
func NewRegistry(opts Options) (*lang.Registry, error) {
	registry := lang.NewRegistry()
	if err := RegisterAll(registry, opts); err != nil {
		return nil, err
	}
	return registry, nil
}

//nolint:gochecknoinits // Populates the default registry on import
func init() {
	if err := RegisterAll(lang.DefaultRegistry, DefaultOptions()); err != nil {
		panic(err)
	}
}
