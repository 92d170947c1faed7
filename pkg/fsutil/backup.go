package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// BackupSuffix is appended to a file's path to name its backup.
const BackupSuffix = ".syntree.bak"

// BackupPath returns where the backup of path lives.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// Backup copies path to its sidecar backup. An existing backup is kept, so
// repeated edits never lose the original content. It reports whether a new
// backup was written.
func Backup(ctx context.Context, path string) (bool, error) {
	dest := BackupPath(path)
	if _, err := os.Stat(dest); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, classify(dest, err)
	}

	content, snap, err := Read(ctx, path)
	if err != nil {
		return false, fmt.Errorf("backup: %w", err)
	}
	if err := WriteAtomic(ctx, dest, content, snap.Mode); err != nil {
		return false, fmt.Errorf("backup: %w", err)
	}
	return true, nil
}

// Restore moves the backup of path back into place. It reports false when
// there is no backup.
func Restore(ctx context.Context, path string) (bool, error) {
	src := BackupPath(path)
	content, snap, err := Read(ctx, src)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("restore: %w", err)
	}

	if err := WriteAtomic(ctx, path, content, snap.Mode); err != nil {
		return false, fmt.Errorf("restore: %w", err)
	}
	if err := os.Remove(src); err != nil {
		return true, fmt.Errorf("remove backup: %w", err)
	}
	return true, nil
}
