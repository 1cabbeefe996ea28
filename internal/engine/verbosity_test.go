package engine

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freeideas/kitchensync/internal/logging"
)

func runWithLog(t *testing.T, cfg Config) string {
	t.Helper()
	var buf bytes.Buffer
	log := logging.New(cfg.Verbosity, cfg.SrcRoot, cfg.DstRoot, &buf)
	_, _, err := New(cfg, log, nil).Run()
	require.NoError(t, err)
	return buf.String()
}

func TestVerbositySilent(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(src, "a.txt"), "A")

	out := runWithLog(t, Config{SrcRoot: src, DstRoot: dst, Verbosity: 0})
	assert.Empty(t, out)
}

func TestVerbosityOperations(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(src, "a.txt"), "NEWDATA")
	writeFile(t, filepath.Join(dst, "a.txt"), "OLD")
	writeFile(t, filepath.Join(dst, "gone.txt"), "G")

	out := runWithLog(t, Config{SrcRoot: src, DstRoot: dst, Verbosity: 1})

	assert.Contains(t, out, "moving to .kitchensync: a.txt")
	assert.Contains(t, out, "copying: a.txt")
	assert.Contains(t, out, "moving to .kitchensync: gone.txt")
	assert.NotContains(t, out, "loading directory")

	// The archive line precedes the copy line for an update.
	assert.Less(t, strings.Index(out, "moving to .kitchensync: a.txt"), strings.Index(out, "copying: a.txt"))

	// Every line is timestamped like [YYYY-MM-DD_HH:MM:SS].
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		assert.Regexp(t, `^\[\d{4}-\d{2}-\d{2}_\d{2}:\d{2}:\d{2}\] `, line)
	}
}

func TestVerbosityDirectoryLoads(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(src, "sub", "b.txt"), "B")

	out := runWithLog(t, Config{SrcRoot: src, DstRoot: dst, Verbosity: 2})

	assert.Contains(t, out, "loading directory: "+src)
	assert.Contains(t, out, "loading directory: "+filepath.Join(src, "sub"))
}
