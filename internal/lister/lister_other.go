//go:build !windows

package lister

import (
	"io/fs"
	"os"

	"github.com/freeideas/kitchensync/internal/types"
)

// listDir iterates dir with the platform's ordinary directory iterator.
// Symbolic links are skipped outright. Size and mtime come from a stat of
// each child; a directory whose stat fails is still returned, with zero
// size and mtime, so the traversal can descend into it.
func listDir(dir string) ([]types.Entry, error) {
	children, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	entries := make([]types.Entry, 0, len(children))
	for _, child := range children {
		if child.Type()&fs.ModeSymlink != 0 {
			continue
		}
		info, err := child.Info()
		if err != nil {
			if child.IsDir() {
				entries = append(entries, types.Entry{Name: child.Name(), IsDir: true})
			}
			// Files that vanish between listing and stat are dropped;
			// the next run will see whatever replaced them.
			continue
		}
		entry := types.Entry{
			Name:  child.Name(),
			Mtime: info.ModTime().Unix(),
			IsDir: child.IsDir(),
		}
		if !entry.IsDir {
			entry.Size = info.Size()
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
