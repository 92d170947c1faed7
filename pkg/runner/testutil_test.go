package runner_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/syntree/pkg/lang/builtin"
	"github.com/yaklabco/syntree/pkg/runner"
)

func newRunner(t *testing.T) *runner.Runner {
	t.Helper()
	registry, err := builtin.NewRegistry(builtin.DefaultOptions())
	require.NoError(t, err)
	return runner.New(registry)
}

// writeTree creates files below dir. Keys are slash-separated relative paths.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
}

func relPaths(t *testing.T, dir string, paths []string) []string {
	t.Helper()
	rels := make([]string, 0, len(paths))
	for _, path := range paths {
		rel, err := filepath.Rel(dir, path)
		require.NoError(t, err)
		rels = append(rels, filepath.ToSlash(rel))
	}
	return rels
}
