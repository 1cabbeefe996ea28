package fileops

import "time"

// ArchiveTimestamp formats t as `YYYY-MM-DD_HH-MM-SS.mmm`: exactly 23 bytes
// of ASCII digits, `-`, `_` and `.`. Windows disallows `:` in file names, so
// `-` separates hour, minute and second. Milliseconds are zero-padded so the
// string is unique to the run at sub-second precision.
func ArchiveTimestamp(t time.Time) string {
	return t.Format("2006-01-02_15-04-05.000")
}
