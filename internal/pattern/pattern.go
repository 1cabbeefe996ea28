// Package pattern provides stateless glob evaluation and the timestamp-name
// heuristic used to filter out backup-style file names.
//
// Glob syntax (via doublestar):
//   - `?` matches exactly one character other than `/`
//   - `*` matches zero or more characters other than `/`
//   - `**` matches any number of characters including `/`; `**/` may also
//     consume zero directories
//   - `[abc]`, `[a-z]`, `[^abc]` character classes with optional negation
//   - `{alt1,alt2}` alternation
//
// Matching is byte-exact; there is no case folding.
package pattern

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrBadPattern reports a malformed pattern (unclosed `[` or `{`).
var ErrBadPattern = doublestar.ErrBadPattern

// Match reports whether name matches the glob pattern. It is pure and total:
// it returns for all finite inputs. name must use `/` as the path separator.
func Match(pat, name string) (bool, error) {
	ok, err := doublestar.Match(pat, name)
	if err != nil {
		return false, fmt.Errorf("pattern %q: %w", pat, err)
	}
	return ok, nil
}

// Validate checks every pattern upfront so malformed patterns surface before
// any traversal begins.
func Validate(patterns []string) error {
	for _, pat := range patterns {
		if !doublestar.ValidatePattern(pat) {
			return fmt.Errorf("pattern %q: %w", pat, ErrBadPattern)
		}
	}
	return nil
}
