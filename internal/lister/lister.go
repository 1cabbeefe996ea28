// Package lister returns one directory's children as a single sorted batch.
//
// Two implementations are selected at build time. On Windows the batch comes
// from the kernel's batched find-file enumeration, which returns name, size,
// mtime and type in one record per child. The naive per-child open+stat
// sequence triggers antivirus scans twice per file and costs tens of
// microseconds per kernel transition, which pushes 100k-file directories
// from seconds into minutes. Everywhere else the ordinary directory iterator
// plus a stat per child is used.
//
// Both implementations skip symbolic links (and, on Windows, reparse points)
// outright, which removes the only natural source of traversal cycles.
package lister

import (
	"slices"
	"strings"

	"github.com/freeideas/kitchensync/internal/types"
)

// List returns dir's children as one batch, sorted byte-lexicographically by
// name. At most one batch per directory should be live at a time; peak
// memory is bounded by the largest single directory, not by tree size.
func List(dir string) ([]types.Entry, error) {
	entries, err := listDir(dir)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(entries, func(a, b types.Entry) int {
		return strings.Compare(a.Name, b.Name)
	})
	return entries, nil
}
