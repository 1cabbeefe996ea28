package fileops

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freeideas/kitchensync/internal/types"
)

func TestCopyBasic(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	writeFile(t, src, "hello world")

	require.NoError(t, Copy(src, dst, 0))
	assert.Equal(t, "hello world", readFile(t, dst))
}

func TestCopyCreatesParents(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "a", "b", "c", "dst.txt")
	writeFile(t, src, "nested")

	require.NoError(t, Copy(src, dst, 0))
	assert.Equal(t, "nested", readFile(t, dst))
}

func TestCopyPreservesMtime(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	writeFile(t, src, "timed")

	want := time.Date(2020, 4, 5, 6, 7, 8, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, want, want))

	require.NoError(t, Copy(src, dst, 0))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, want.Unix(), info.ModTime().Unix())
}

func TestCopyPreservesMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on windows")
	}
	dir := t.TempDir()
	src := filepath.Join(dir, "tool.sh")
	dst := filepath.Join(dir, "out", "tool.sh")
	writeFile(t, src, "#!/bin/sh\n")
	require.NoError(t, os.Chmod(src, 0o755))

	require.NoError(t, Copy(src, dst, 0))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestCopyOverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	writeFile(t, src, "new")
	writeFile(t, dst, "previous longer contents")

	require.NoError(t, Copy(src, dst, 0))
	assert.Equal(t, "new", readFile(t, dst))
}

func TestCopyMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := Copy(filepath.Join(dir, "ghost"), filepath.Join(dir, "dst"), 0)
	require.Error(t, err)
}

func TestCopyWithWatchdog(t *testing.T) {
	// A healthy copy under a generous deadline behaves exactly like the
	// synchronous path.
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")
	writeFile(t, src, string(make([]byte, 1<<20)))

	require.NoError(t, Copy(src, dst, 10*time.Second))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, int64(1<<20), info.Size())
}

func TestCopyWatchdogMissingSource(t *testing.T) {
	// Worker failures propagate through the flag pair, not as a timeout.
	dir := t.TempDir()
	err := Copy(filepath.Join(dir, "ghost"), filepath.Join(dir, "dst"), 10*time.Second)
	require.Error(t, err)
	assert.NotErrorIs(t, err, types.ErrTimeout)
}
