package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/syntree/pkg/config"
)

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// isolated returns options that ignore the user config and the environment.
func isolated(dir string) LoadOptions {
	return LoadOptions{WorkingDir: dir, IgnoreUserConfig: true, IgnoreEnv: true}
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t.TempDir()))
	require.NoError(t, err)
	assert.Equal(t, config.NewConfig(), result.Config)
	assert.Empty(t, result.LoadedFrom)
	assert.Empty(t, result.Warnings)
}

func TestLoadProjectConfigUpward(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	project := writeFile(t, filepath.Join(root, ".syntree.yml"), "jobs: 3\nmarkdown:\n  gfm: false\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	result, err := Load(context.Background(), isolated(nested))
	require.NoError(t, err)

	assert.Equal(t, project, result.Paths.Project)
	assert.Equal(t, []string{project}, result.LoadedFrom)
	assert.Equal(t, 3, result.Config.Jobs)
	assert.False(t, result.Config.Markdown.GFM)
	assert.True(t, result.Config.Output.Offsets, "unset keys keep defaults")
}

func TestFindProjectConfigStopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeFile(t, filepath.Join(outer, ".syntree.yml"), "jobs: 1\n")
	repo := filepath.Join(outer, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

	path, err := FindProjectConfig(context.Background(), repo)
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestLoadPrecedence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	writeFile(t, filepath.Join(dir, ".syntree.yml"), "jobs: 2\nformat: json\noutput:\n  max_depth: 4\n")
	explicit := writeFile(t, filepath.Join(dir, "custom.yml"), "jobs: 5\n")

	opts := isolated(dir)
	opts.ExplicitPath = explicit
	opts.Overrides = func(cfg *config.Config) { cfg.Format = config.FormatText }

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, 5, result.Config.Jobs, "explicit file beats project file")
	assert.Equal(t, 4, result.Config.Output.MaxDepth, "project value survives")
	assert.Equal(t, config.FormatText, result.Config.Format, "flags win")
	assert.Len(t, result.LoadedFrom, 2)
	assert.Equal(t, explicit, result.LoadedFrom[1])
}

func TestLoadEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SYNTREE_JOBS", "7")
	t.Setenv("SYNTREE_CACHE_SHARED", "true")

	opts := isolated(dir)
	opts.IgnoreEnv = false
	opts.Overrides = func(cfg *config.Config) { cfg.Jobs = 1 }

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.True(t, result.Config.Cache.Shared)
	assert.Equal(t, 1, result.Config.Jobs, "flags beat the environment")
}

func TestLoadInvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"invalid value", "format: xml\n", "invalid format"},
		{"unknown key", "flavour: gfm\n", "flavour"},
		{"malformed", "jobs: [\n", "parse yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := writeFile(t, filepath.Join(dir, "bad.yml"), tt.content)

			opts := isolated(dir)
			opts.IgnoreProjectConfig = true
			opts.ExplicitPath = path

			_, err := Load(context.Background(), opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Contains(t, err.Error(), path)
		})
	}
}

func TestLoadMissingExplicitConfig(t *testing.T) {
	t.Parallel()

	opts := isolated(t.TempDir())
	opts.ExplicitPath = filepath.Join(t.TempDir(), "missing.yml")

	_, err := Load(context.Background(), opts)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolated(t.TempDir()))
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoadFromEnv(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"SYNTREE_LANGUAGE":         "calc",
		"SYNTREE_FORMAT":           "json",
		"SYNTREE_COLOR":            "never",
		"SYNTREE_MARKDOWN_GFM":     "0",
		"SYNTREE_OUTPUT_MAX_DEPTH": "3",
		"SYNTREE_FILES_EXCLUDE":    " vendor/** , ,testdata ",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg := config.NewConfig()
	require.NoError(t, loadFromEnv(cfg, lookup))

	assert.Equal(t, "calc", cfg.Language)
	assert.Equal(t, config.FormatJSON, cfg.Format)
	assert.Equal(t, config.ColorNever, cfg.Color)
	assert.False(t, cfg.Markdown.GFM)
	assert.Equal(t, 3, cfg.Output.MaxDepth)
	assert.Equal(t, []string{"vendor/**", "testdata"}, cfg.Files.Exclude)
}

func TestLoadFromEnvErrors(t *testing.T) {
	t.Parallel()

	for key, value := range map[string]string{
		"SYNTREE_JOBS":         "many",
		"SYNTREE_CACHE_SHARED": "perhaps",
	} {
		lookup := func(k string) (string, bool) {
			if k == key {
				return value, true
			}
			return "", false
		}
		err := loadFromEnv(config.NewConfig(), lookup)
		require.Error(t, err, key)
		assert.Contains(t, err.Error(), key)
	}

	assert.NoError(t, loadFromEnv(nil, nil))
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	require.Len(t, vars, len(envBindings))
	assert.Equal(t, "SYNTREE_CACHE_SHARED", vars[0].Name)
	for _, v := range vars {
		assert.NotEmpty(t, v.Description, v.Name)
	}
}

func TestWriteConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".syntree.yml")
	require.NoError(t, WriteConfig(path, []byte("jobs: 1\n"), false))

	err := WriteConfig(path, []byte("jobs: 2\n"), false)
	require.ErrorIs(t, err, os.ErrExist)

	require.NoError(t, WriteConfig(path, []byte("jobs: 2\n"), true))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "jobs: 2\n", string(content))
}
