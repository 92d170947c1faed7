package fsutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultFileMode is used for files that did not exist before the write.
const DefaultFileMode fs.FileMode = 0o644

// WriteAtomic replaces path with content. The data goes to a temporary file
// in the same directory, which is synced and renamed over the target, so a
// reader never sees a partial file. A zero mode means DefaultFileMode.
func WriteAtomic(ctx context.Context, path string, content []byte, mode fs.FileMode) (err error) {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if mode == 0 {
		mode = DefaultFileMode
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// WriteIfChanged writes content with WriteAtomic unless the file already
// holds exactly that content. It reports whether a write happened.
func WriteIfChanged(ctx context.Context, path string, content []byte, mode fs.FileMode) (bool, error) {
	existing, err := os.ReadFile(path)
	switch {
	case err == nil && bytes.Equal(existing, content):
		return false, nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return false, classify(path, err)
	}

	if err := WriteAtomic(ctx, path, content, mode); err != nil {
		return false, err
	}
	return true, nil
}

// WriteSnapshot writes content over the file described by snap, keeping its
// permissions. It fails with ErrStale if the file changed since the
// snapshot was taken.
func WriteSnapshot(ctx context.Context, snap *Snapshot, content []byte) (bool, error) {
	changed, err := snap.Changed(ctx)
	if err != nil {
		return false, err
	}
	if changed {
		return false, fmt.Errorf("%w: %s", ErrStale, snap.Path)
	}
	return WriteIfChanged(ctx, snap.Path, content, snap.Mode)
}
