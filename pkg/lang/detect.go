package lang

import (
	"path/filepath"

	"github.com/go-enry/go-enry/v2"
)

// Detect picks a language for a file.
//
// Strategies, in order:
//  1. The registered extension of path.
//  2. A shebang line in content.
//  3. go-enry's filename and content heuristics.
//
// The detected linguist name is matched against registered names ignoring case.
func (r *Registry) Detect(path string, content []byte) (Language, bool) {
	if language, ok := r.ForPath(path); ok {
		return language, true
	}

	if name, safe := enry.GetLanguageByShebang(content); safe {
		if language, ok := r.Lookup(name); ok {
			return language, true
		}
	}

	if name := enry.GetLanguage(filepath.Base(path), content); name != "" {
		if language, ok := r.Lookup(name); ok {
			return language, true
		}
	}

	return nil, false
}
