package fileops

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestArchiveMovesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	writeFile(t, path, "payload")

	archived, err := Archive(path, "2024-01-15_14-30-45.123")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, ArchiveDirName, "2024-01-15_14-30-45.123", "doc.txt"), archived)
	assert.Equal(t, "payload", readFile(t, archived))
	assert.NoFileExists(t, path)
}

func TestArchiveSharesRunDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "a")
	writeFile(t, filepath.Join(dir, "b.txt"), "b")

	const ts = "2024-01-15_14-30-45.123"
	_, err := Archive(filepath.Join(dir, "a.txt"), ts)
	require.NoError(t, err)
	_, err = Archive(filepath.Join(dir, "b.txt"), ts)
	require.NoError(t, err)

	// One run, one archive subdirectory under the parent.
	runs, err := os.ReadDir(filepath.Join(dir, ArchiveDirName))
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, ts, runs[0].Name())
}

func TestArchiveDirectorySubtree(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "old", "deep", "f.txt"), "x")

	archived, err := Archive(filepath.Join(dir, "old"), "2024-01-15_14-30-45.123")
	require.NoError(t, err)

	assert.NoDirExists(t, filepath.Join(dir, "old"))
	assert.Equal(t, "x", readFile(t, filepath.Join(archived, "deep", "f.txt")))
}

func TestArchiveMissingFile(t *testing.T) {
	_, err := Archive(filepath.Join(t.TempDir(), "ghost.txt"), "2024-01-15_14-30-45.123")
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestUnarchiveRestores(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	writeFile(t, path, "original")

	archived, err := Archive(path, "2024-01-15_14-30-45.123")
	require.NoError(t, err)
	require.NoError(t, Unarchive(archived, path))

	assert.Equal(t, "original", readFile(t, path))
	assert.NoFileExists(t, archived)
}
