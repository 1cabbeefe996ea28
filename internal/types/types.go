// Package types provides shared records used across the kitchensync codebase.
package types

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// Entry is the minimal per-child metadata record produced by a directory
// listing. Name is the leaf name only and never contains a path separator.
// Mtime is whole seconds since the Unix epoch; sub-second precision is
// truncated before any comparison. Size is 0 for directories, and Mtime may
// be 0 only for a directory whose stat failed.
type Entry struct {
	Name  string
	Size  int64
	Mtime int64
	IsDir bool
}

// Stats holds the counters for a single sync run. Counters are owned by one
// engine invocation and mutated only on the engine's goroutine.
type Stats struct {
	FilesCopied    int64
	FilesUpdated   int64
	FilesDeleted   int64
	DirsCreated    int64
	FilesUnchanged int64
	Errors         int64
	BytesCopied    int64
	StartTime      time.Time
}

func (s *Stats) String() string {
	return fmt.Sprintf("copied %d, updated %d, deleted %d, created %d dirs, %d unchanged (%s) in %.1fs",
		s.FilesCopied, s.FilesUpdated, s.FilesDeleted, s.DirsCreated, s.FilesUnchanged,
		humanize.IBytes(uint64(s.BytesCopied)), time.Since(s.StartTime).Seconds())
}

// SyncError records a failed operation on an individual entry. Errors are
// collected in traversal order and surfaced after the run completes.
type SyncError struct {
	SourcePath string
	DestPath   string
	Kind       ErrorKind
	Op         string
	Err        error
}

// Path returns the path the failed operation acted on: the destination when
// one is recorded, otherwise the source.
func (e SyncError) Path() string {
	if e.DestPath != "" {
		return e.DestPath
	}
	return e.SourcePath
}

func (e SyncError) Error() string {
	return fmt.Sprintf("%s '%s': %s: %v", e.Op, e.Path(), e.Kind, e.Err)
}

func (e SyncError) Unwrap() error { return e.Err }
