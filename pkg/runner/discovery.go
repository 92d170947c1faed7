package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tidwall/match"
)

// Discover lists the files a run would parse, as sorted absolute paths.
//
// Directories are walked for files whose extension belongs to a registered
// language (or to the forced language). Files named explicitly are always
// kept unless excluded. Hidden files and directories below a walked root
// are skipped.
func (r *Runner) Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	w := &walker{
		ctx:        ctx,
		opts:       opts,
		workDir:    workDir,
		extensions: opts.extensions(r.registry),
		seen:       make(map[string]struct{}),
		visited:    make(map[string]struct{}),
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		path := input
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}
		path = filepath.Clean(path)

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}
		if !info.IsDir() {
			if !w.excluded(path) {
				w.add(path)
			}
			continue
		}
		if err := w.walk(path); err != nil {
			return nil, err
		}
	}

	slices.Sort(w.files)
	return w.files, nil
}

type walker struct {
	ctx        context.Context
	opts       Options
	workDir    string
	extensions []string
	seen       map[string]struct{}
	visited    map[string]struct{} // directories walked, by resolved path
	files      []string
}

func (w *walker) walk(root string) error {
	if !w.visit(root) {
		return nil
	}

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")
		if entry.IsDir() {
			if hidden || (path != root && w.excluded(path)) {
				return filepath.SkipDir
			}
			if path != root && !w.visit(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			return w.symlink(path)
		}
		if w.matches(path) {
			w.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// symlink handles a symlink met during a walk. Broken links are skipped;
// directory links are walked at their target only with FollowSymlinks.
func (w *walker) symlink(path string) error {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil //nolint:nilerr // Broken symlinks are skipped
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil //nolint:nilerr // Unreadable targets are skipped
	}
	if info.IsDir() {
		if !w.opts.FollowSymlinks {
			return nil
		}
		return w.walk(target)
	}
	if w.matches(path) {
		w.add(path)
	}
	return nil
}

// visit records dir as walked and reports whether it was new. Directories
// are keyed by their resolved path, so a symlink back to an ancestor or to an
// already walked directory is not walked again.
func (w *walker) visit(dir string) bool {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		resolved = dir
	}
	if _, ok := w.visited[resolved]; ok {
		return false
	}
	w.visited[resolved] = struct{}{}
	return true
}

func (w *walker) add(path string) {
	if _, ok := w.seen[path]; ok {
		return
	}
	w.seen[path] = struct{}{}
	w.files = append(w.files, path)
}

// matches applies the extension, exclude and include filters.
func (w *walker) matches(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains(w.extensions, ext) || w.excluded(path) {
		return false
	}
	if len(w.opts.IncludeGlobs) == 0 {
		return true
	}
	return matchAny(w.rel(path), w.opts.IncludeGlobs)
}

func (w *walker) excluded(path string) bool {
	return matchAny(w.rel(path), w.opts.ExcludeGlobs)
}

func (w *walker) rel(path string) string {
	rel, err := filepath.Rel(w.workDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// matchAny reports whether rel or its base name matches one of the patterns.
//
// Patterns use '*' and '?' wildcards. A '*' also crosses directory
// separators, so "**" and "*" behave alike; "vendor/**" matches everything
// below vendor and "**/testdata" matches a testdata directory anywhere.
func matchAny(rel string, patterns []string) bool {
	base := rel[strings.LastIndex(rel, "/")+1:]
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if match.Match(rel, pattern) || match.Match(base, pattern) {
			return true
		}
		if prefix, ok := strings.CutSuffix(pattern, "/**"); ok && match.Match(rel, prefix) {
			return true
		}
		if suffix, ok := strings.CutPrefix(pattern, "**/"); ok && match.Match(rel, suffix) {
			return true
		}
	}
	return false
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}
