// Package logging emits the per-operation log: one timestamped line per
// event on stdout, in the form `[YYYY-MM-DD_HH:MM:SS] <action>: <path>`.
// The timestamp inside log lines uses `:` between hour, minute and second —
// it is not a filesystem name.
//
// Paths in messages are displayed relative to the matching root (source for
// `copying`, destination for `moving to .kitchensync`) when possible,
// otherwise as-is. Display strings are never reused for I/O.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/freeideas/kitchensync/internal/types"
)

// Verbosity levels.
//
//	0 — silent; the front-end prints only the final summary
//	1 — one line per non-trivial action, and one per error
//	2 — also one `loading directory` line before each lister call, so a
//	    kernel-level stall is visibly attributable
const (
	Silent     = 0
	Operations = 1
	Directory  = 2
)

// Logger writes the run's event lines. It is owned by one engine invocation
// and used only on the engine's goroutine.
type Logger struct {
	log       *logrus.Logger
	verbosity int
	srcRoot   string
	dstRoot   string
}

// New creates a logger for one run. out is normally os.Stdout; tests pass a
// buffer.
func New(verbosity int, srcRoot, dstRoot string, out io.Writer) *Logger {
	if out == nil {
		out = os.Stdout
	}
	log := logrus.New()
	log.SetFormatter(&lineFormatter{})
	log.SetOutput(out)
	if verbosity < Operations {
		log.SetOutput(io.Discard)
	}
	return &Logger{log: log, verbosity: verbosity, srcRoot: srcRoot, dstRoot: dstRoot}
}

// lineFormatter renders `[YYYY-MM-DD_HH:MM:SS] message`.
type lineFormatter struct{}

func (lineFormatter) Format(e *logrus.Entry) ([]byte, error) {
	line := make([]byte, 0, len(e.Message)+24)
	line = append(line, '[')
	line = e.Time.AppendFormat(line, "2006-01-02_15:04:05")
	line = append(line, "] "...)
	line = append(line, e.Message...)
	line = append(line, '\n')
	return line, nil
}

// Copying logs a copy of the source file at absSrc.
func (l *Logger) Copying(absSrc string) {
	if l.verbosity >= Operations {
		l.log.Info("copying: " + display(l.srcRoot, absSrc))
	}
}

// Archiving logs the archive-move of the destination file at absDst.
func (l *Logger) Archiving(absDst string) {
	if l.verbosity >= Operations {
		l.log.Info("moving to .kitchensync: " + display(l.dstRoot, absDst))
	}
}

// LoadingDir logs an imminent directory listing. Emitted before the lister
// call so a stalled listing is attributable.
func (l *Logger) LoadingDir(dir string) {
	if l.verbosity >= Directory {
		l.log.Info("loading directory: " + dir)
	}
}

// Failure logs a recorded sync error.
func (l *Logger) Failure(e types.SyncError) {
	if l.verbosity >= Operations {
		l.log.Info("error: " + e.Op + " '" + e.Path() + "': " + e.Kind.String())
	}
}

// display converts abs to a root-relative path for human consumption,
// falling back to the path as given.
func display(root, abs string) string {
	if root == "" {
		return abs
	}
	if rel, err := filepath.Rel(root, abs); err == nil && rel != ".." &&
		!filepath.IsAbs(rel) && (len(rel) < 3 || rel[:3] != ".."+string(filepath.Separator)) {
		return rel
	}
	return abs
}
