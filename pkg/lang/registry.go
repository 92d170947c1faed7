package lang

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// Registry holds the available languages.
type Registry struct {
	mu          sync.RWMutex
	byName      map[string]Language
	byExtension map[string]Language
}

// DefaultRegistry is populated by the builtin package.
//
//nolint:gochecknoglobals // Package-level registry mirrors the rule registry pattern
var DefaultRegistry = NewRegistry()

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:      make(map[string]Language),
		byExtension: make(map[string]Language),
	}
}

// Register adds a language. It fails if the name or one of the extensions is
// already taken.
func (r *Registry) Register(language Language) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := strings.ToLower(language.Name())
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("register %s: language already registered", name)
	}
	for _, ext := range language.Extensions() {
		if other, exists := r.byExtension[strings.ToLower(ext)]; exists {
			return fmt.Errorf("register %s: extension %s already handled by %s", name, ext, other.Name())
		}
	}

	r.byName[name] = language
	for _, ext := range language.Extensions() {
		r.byExtension[strings.ToLower(ext)] = language
	}
	return nil
}

// Lookup returns the language with the given name, ignoring case.
func (r *Registry) Lookup(name string) (Language, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	language, ok := r.byName[strings.ToLower(name)]
	return language, ok
}

// Get is like Lookup but returns ErrUnknownLanguage when nothing matches.
func (r *Registry) Get(name string) (Language, error) {
	if language, ok := r.Lookup(name); ok {
		return language, nil
	}
	return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownLanguage, name, strings.Join(r.Names(), ", "))
}

// ForPath returns the language registered for the path's extension.
func (r *Registry) ForPath(path string) (Language, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	language, ok := r.byExtension[ext]
	return language, ok
}

// Names returns the registered language names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Languages returns the registered languages sorted by name.
func (r *Registry) Languages() []Language {
	names := r.Names()

	r.mu.RLock()
	defer r.mu.RUnlock()

	languages := make([]Language, 0, len(names))
	for _, name := range names {
		languages = append(languages, r.byName[name])
	}
	return languages
}

// Extensions returns every registered extension, sorted.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.byExtension))
	for ext := range r.byExtension {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}
