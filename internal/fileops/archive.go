// Package fileops implements the mutating file-system primitives of a sync
// run: the archive-move that preserves a file before it is overwritten or
// deleted, the copy with its watchdog timeout, and directory creation.
package fileops

import (
	"fmt"
	"os"
	"path/filepath"
)

// ArchiveDirName is the per-directory archive root. It is never listed into,
// compared, deleted or archived, regardless of user patterns.
const ArchiveDirName = ".kitchensync"

// Archive moves absPath into `.kitchensync/<timestamp>/` alongside it and
// returns the archived path. The move is a rename within the parent's
// filesystem, performed relative to an open handle on the parent directory:
// metadata-only and atomic. Archive never copies-then-deletes;
// cross-filesystem fallback is out of scope. If absPath no longer exists
// (a concurrent writer won the race) the stat error is returned unwrapped
// so callers can recognize it with errors.Is(fs.ErrNotExist).
func Archive(absPath, timestamp string) (string, error) {
	if _, err := os.Lstat(absPath); err != nil {
		return "", err
	}

	parent := filepath.Dir(absPath)
	leaf := filepath.Base(absPath)
	relDir := filepath.Join(ArchiveDirName, timestamp)

	root, err := os.OpenRoot(parent)
	if err != nil {
		return "", fmt.Errorf("open parent %q: %w", parent, err)
	}
	defer func() { _ = root.Close() }()

	if err := root.MkdirAll(relDir, 0o755); err != nil {
		return "", fmt.Errorf("create archive dir: %w", err)
	}
	if err := root.Rename(leaf, filepath.Join(relDir, leaf)); err != nil {
		return "", fmt.Errorf("archive %q: %w", absPath, err)
	}
	return filepath.Join(parent, relDir, leaf), nil
}

// Unarchive renames a previously archived file back into place. Used to roll
// back a copy whose post-copy verification failed.
func Unarchive(archivedPath, originalPath string) error {
	if err := os.Rename(archivedPath, originalPath); err != nil {
		return fmt.Errorf("restore %q: %w", originalPath, err)
	}
	return nil
}

// MkdirAll creates dir and any missing parents, idempotently.
func MkdirAll(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
