package engine

import "github.com/freeideas/kitchensync/internal/types"

// action is the outcome of one comparison. Never stored; computed per entry.
type action int

const (
	actionSkip action = iota
	actionCopy
	actionUpdate
)

// decide selects the action for a source file s against its destination
// counterpart d (nil when absent). Mtimes are whole seconds, truncated at
// listing time, because filesystems commonly have millisecond or coarser
// precision. Equal size and mtime count as unchanged even when useModTime
// is false: the flag only disables the mtime tiebreaker, it never forces a
// copy.
func decide(s, d *types.Entry, useModTime bool) action {
	switch {
	case d == nil:
		return actionCopy
	case d.IsDir:
		// A directory stands where the source has a file; it has to be
		// archived out of the way like any stale destination state.
		return actionUpdate
	case s.Size != d.Size:
		return actionUpdate
	case useModTime && s.Mtime > d.Mtime:
		return actionUpdate
	default:
		return actionSkip
	}
}
