// Package filter decides, without state, whether an absolute path is
// excluded from a sync run.
package filter

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/freeideas/kitchensync/internal/pattern"
)

// Filter bundles a root directory with an ordered list of glob patterns.
// Patterns are evaluated against the path relative to root, using `/` as the
// separator regardless of host. Every call is independent; the filter holds
// no per-path state.
type Filter struct {
	root     string
	patterns []string
}

// New creates a filter rooted at root. root is cleaned once at construction.
func New(root string, patterns []string) *Filter {
	return &Filter{root: filepath.Clean(root), patterns: patterns}
}

// Matches reports whether absPath lies under the filter's root and its
// relative path matches any pattern. Paths outside the root never match.
func (f *Filter) Matches(absPath string) bool {
	if len(f.patterns) == 0 {
		return false
	}
	rel, ok := f.relative(absPath)
	if !ok {
		return false
	}
	for _, pat := range f.patterns {
		// Malformed patterns are rejected upfront by pattern.Validate;
		// a failure here means no match.
		if ok, _ := pattern.Match(pat, rel); ok {
			return true
		}
	}
	return false
}

// relative computes the path of absPath relative to the root by byte-prefix
// match of the cleaned root plus separator.
func (f *Filter) relative(absPath string) (string, bool) {
	prefix := f.root + string(os.PathSeparator)
	cleaned := filepath.Clean(absPath)
	if !strings.HasPrefix(cleaned, prefix) {
		return "", false
	}
	return filepath.ToSlash(cleaned[len(prefix):]), true
}
