package fsutil_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/syntree/pkg/fsutil"
)

func TestBackupAndRestore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := writeFile(t, t.TempDir(), "expr.calc", "1 + 2", 0o640)
	backup := fsutil.BackupPath(path)
	assert.Equal(t, path+".syntree.bak", backup)

	created, err := fsutil.Backup(ctx, path)
	require.NoError(t, err)
	assert.True(t, created)

	require.NoError(t, os.WriteFile(path, []byte("3"), 0o640))

	// A second backup keeps the original content.
	created, err = fsutil.Backup(ctx, path)
	require.NoError(t, err)
	assert.False(t, created)

	got, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, "1 + 2", string(got))

	restored, err := fsutil.Restore(ctx, path)
	require.NoError(t, err)
	assert.True(t, restored)
	assert.NoFileExists(t, backup)

	got, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1 + 2", string(got))

	restored, err = fsutil.Restore(ctx, path)
	require.NoError(t, err)
	assert.False(t, restored)
}

func TestBackupMissingSource(t *testing.T) {
	t.Parallel()

	_, err := fsutil.Backup(context.Background(), t.TempDir()+"/missing.calc")
	require.ErrorIs(t, err, fsutil.ErrNotFound)
}
