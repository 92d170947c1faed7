package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/yaklabco/syntree/internal/cli"
	"github.com/yaklabco/syntree/pkg/fsutil"
)

const calcTree = `ROOT@0..5
  BIN_EXPR@0..5
    NUMBER@0..1 "1"
    WHITESPACE@1..2 " "
    PLUS@2..3 "+"
    WHITESPACE@3..4 " "
    NUMBER@4..5 "2"
`

// execute runs one subcommand with config files ignored and color off.
func execute(t *testing.T, stdin string, sub string, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{sub, "--no-config", "--color=never"}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIntegration_Parse(t *testing.T) {
	t.Parallel()

	path := writeSource(t, t.TempDir(), "expr.calc", "1 + 2")

	out, _, err := execute(t, "", "parse", path)
	require.NoError(t, err)
	assert.Equal(t, calcTree, out)

	out, _, err = execute(t, "", "parse", "--depth", "2", "--no-offsets", path)
	require.NoError(t, err)
	assert.Equal(t, "ROOT\n  BIN_EXPR …\n", out)
}

func TestIntegration_ParseStdin(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "1 + 2", "parse", "-l", "calc", "-")
	require.NoError(t, err)
	assert.Equal(t, calcTree, out)

	_, _, err = execute(t, "1 + 2", "parse", "-l", "calc", "-", "other.calc")
	require.ErrorIs(t, err, cli.ErrUsage)
}

func TestIntegration_ParseJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSource(t, dir, "a.calc", "1 + 2")
	writeSource(t, dir, "b.decl", "let x = 1;\n")

	out, _, err := execute(t, "", "parse", "--format", "json", "--compact", dir)
	require.NoError(t, err)
	require.True(t, gjson.Valid(out))

	assert.Equal(t, int64(2), gjson.Get(out, "files.#").Int())
	assert.Equal(t, "calc", gjson.Get(out, "files.0.language").String())
	assert.Equal(t, "decl", gjson.Get(out, "files.1.language").String())
	assert.Equal(t, "ROOT", gjson.Get(out, "files.0.tree.kind").String())
	assert.Equal(t, int64(2), gjson.Get(out, "summary.filesParsed").Int())
}

func TestIntegration_ParseExitCodes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	broken := writeSource(t, dir, "broken.calc", "1 +")
	notes := writeSource(t, dir, "notes.txt", "plain text")

	out, _, err := execute(t, "", "parse", broken)
	require.NoError(t, err, "error nodes are not a failure without --strict")
	assert.Contains(t, out, "ERROR@3..3")

	_, _, err = execute(t, "", "parse", "--strict", broken)
	require.ErrorIs(t, err, cli.ErrErrorNodes)
	assert.Equal(t, cli.ExitErrorNodes, cli.ExitCode(err))

	_, stderr, err := execute(t, "", "parse", notes)
	require.ErrorIs(t, err, cli.ErrParseFailures)
	assert.Contains(t, stderr, "parse failed")

	_, _, err = execute(t, "", "parse", "-l", "cobol", dir)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestIntegration_Config(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeSource(t, dir, "expr.calc", "1 + 2")

	cfgFile := writeSource(t, dir, "cfg.yml", "format: json\noutput:\n  offsets: false\n")
	out, _, err := execute(t, "", "parse", "--config", cfgFile, path)
	require.NoError(t, err)
	assert.Equal(t, "ROOT", gjson.Get(out, "files.0.tree.kind").String())
	assert.False(t, gjson.Get(out, "files.0.tree.start").Exists())

	// Flags win over the config file.
	out, _, err = execute(t, "", "parse", "--config", cfgFile, "--format", "text", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "ROOT\n"))

	bad := writeSource(t, dir, "bad.yml", "format: xml\n")
	_, _, err = execute(t, "", "parse", "--config", bad, path)
	require.ErrorIs(t, err, cli.ErrConfig)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}

func TestIntegration_Stats(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSource(t, dir, "a.calc", "1 * 2")
	writeSource(t, dir, "sub/b.calc", "1 * 2")

	out, _, err := execute(t, "", "stats", "--shared-cache", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "FILE")
	assert.Contains(t, out, "TOTAL (2 parsed)")
	assert.Contains(t, out, "All files parsed cleanly")

	out, _, err = execute(t, "", "stats", "--summary-only", dir)
	require.NoError(t, err)
	assert.NotContains(t, out, "FILE")
	assert.Contains(t, out, "Files parsed:")

	out, _, err = execute(t, "", "stats", "--format", "json", dir)
	require.NoError(t, err)
	assert.Equal(t, int64(2), gjson.Get(out, "summary.filesParsed").Int())
	assert.True(t, gjson.Get(out, "files.0.tree.truncated").Bool())
}

func TestIntegration_Edit(t *testing.T) {
	t.Parallel()

	path := writeSource(t, t.TempDir(), "expr.calc", "1 + 2")

	out, _, err := execute(t, "", "edit", path, "--at", "4..5", "--text", "3")
	require.NoError(t, err)
	assert.Equal(t, "1 + 3", out)

	// Crossing token boundaries parses the edited text again.
	out, _, err = execute(t, "", "edit", path, "--at", "0..3", "--text", "7 *", "--tree")
	require.NoError(t, err)
	assert.Contains(t, out, `STAR@2..3 "*"`)

	// A token that would lex differently is re-parsed, not relabelled.
	out, _, err = execute(t, "", "edit", path, "--at", "2..3", "--text", "-", "--tree")
	require.NoError(t, err)
	assert.Contains(t, out, `MINUS@2..3 "-"`)
	assert.NotContains(t, out, "PLUS")

	out, _, err = execute(t, "1 + 2", "edit", "-", "-l", "calc", "--at", "5", "--text", "0")
	require.NoError(t, err)
	assert.Equal(t, "1 + 20", out)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1 + 2", string(got), "without --write the file is untouched")
}

func TestIntegration_EditBatchAndWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeSource(t, dir, "expr.calc", "1 + 2")
	edits := writeSource(t, dir, "edits.json", `{"edits": [
		{"start": 0, "end": 1, "text": "10"},
		{"range": "4..5", "text": "20"}
	]}`)

	out, _, err := execute(t, "", "edit", path, "--edits", edits, "--write", "--backup")
	require.NoError(t, err)
	assert.Empty(t, out)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "10 + 20", string(got))

	backup, err := os.ReadFile(fsutil.BackupPath(path))
	require.NoError(t, err)
	assert.Equal(t, "1 + 2", string(backup))

	_, _, err = execute(t, "", "edit", path, "--restore")
	require.NoError(t, err)
	got, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1 + 2", string(got))
	assert.NoFileExists(t, fsutil.BackupPath(path))

	_, _, err = execute(t, "", "edit", path, "--restore")
	require.ErrorIs(t, err, cli.ErrUsage, "nothing left to restore")
}

func TestIntegration_EditErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeSource(t, dir, "expr.calc", "1 + 2")

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"range past end", []string{path, "--at", "4..9", "--text", "x"}, cli.ExitInvalidUsage},
		{"malformed range", []string{path, "--at", "four", "--text", "x"}, cli.ExitInvalidUsage},
		{"write stdin", []string{"-", "--at", "0..1", "--write"}, cli.ExitInvalidUsage},
		{"missing file", []string{filepath.Join(dir, "missing.calc"), "--at", "0..1"}, cli.ExitIOError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := execute(t, "", "edit", tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.want, cli.ExitCode(err))
		})
	}

	_, _, err := execute(t, "", "edit", path)
	require.Error(t, err, "one of --at and --edits is required")
}

func TestIntegration_Langs(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "", "langs")
	require.NoError(t, err)
	assert.Contains(t, out, "LANGUAGE")
	assert.Contains(t, out, "calc")
	assert.Contains(t, out, ".decl")
	assert.Contains(t, out, "markdown")

	out, _, err = execute(t, "", "langs", "--format", "json")
	require.NoError(t, err)
	names := gjson.Get(out, "#.name").Array()
	require.Len(t, names, 3)
	assert.Equal(t, "calc", names[0].String())
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "syntree.yml")

	_, _, err := execute(t, "", "init", "--output", target)
	require.NoError(t, err)
	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# syntree configuration")

	_, _, err = execute(t, "", "init", "--output", target)
	require.ErrorIs(t, err, cli.ErrUsage)

	_, _, err = execute(t, "", "init", "--output", target, "--force", "--full")
	require.NoError(t, err)

	jsonTarget := filepath.Join(dir, "syntree.json")
	_, _, err = execute(t, "", "init", "--output", jsonTarget, "--format", "json")
	require.NoError(t, err)
	data, err := os.ReadFile(jsonTarget)
	require.NoError(t, err)
	assert.Equal(t, "text", gjson.GetBytes(data, "format").String())
}

func TestIntegration_Version(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "syntree")
	assert.Contains(t, out, "test-version")
}

// executeConfig runs a config subcommand, which sits one level below root.
func executeConfig(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"config"}, args...))

	err := cmd.Execute()
	return stdout.String(), err
}

func TestIntegration_ConfigShow(t *testing.T) {
	t.Parallel()

	out, err := executeConfig(t, "show", "--no-config", "--jobs", "3")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# Resolved from"))
	assert.Contains(t, out, "jobs: 3")
	assert.Contains(t, out, "format: text")

	dir := t.TempDir()
	cfgPath := writeSource(t, dir, "syntree.yml", "format: json\n")
	out, err = executeConfig(t, "show", "--no-config", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "# Resolved from "+cfgPath)
	assert.Contains(t, out, "format: json")
}

func TestIntegration_ConfigEnvAndPath(t *testing.T) {
	t.Parallel()

	out, err := executeConfig(t, "env")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], "SYNTREE_"))
	assert.Contains(t, out, "SYNTREE_JOBS")
	assert.Contains(t, out, "Number of parallel workers")

	out, err = executeConfig(t, "path")
	require.NoError(t, err)
	assert.Contains(t, out, "user dir:")
	assert.Contains(t, out, "project:")
}

func TestIntegration_ConfigValidate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := writeSource(t, dir, "good.yml", "format: json\njobs: 2\n")
	warn := writeSource(t, dir, "warn.yml", "language: \" calc \"\n")
	bad := writeSource(t, dir, "bad.yml", "format: xml\n")

	out, err := executeConfig(t, "validate", good)
	require.NoError(t, err)
	assert.Equal(t, good+": ok\n", out)

	out, err = executeConfig(t, "validate", warn)
	require.NoError(t, err)
	assert.Contains(t, out, "warning: "+warn+": language: surrounding whitespace is ignored")

	out, err = executeConfig(t, "validate", bad)
	require.ErrorIs(t, err, cli.ErrConfig)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
	assert.Contains(t, out, "error: "+bad+": format:")
}
