// Package engine implements the recursive compare-and-act synchronization.
//
// # Traversal model
//
// The engine is single-threaded and cooperative: one directory at a time,
// files in sorted order first, then subdirectories recursed in the same
// sorted order, then a deletion pass over the destination batch. There is no
// cross-directory interleaving; the only parallelism in a run lives inside
// the copy watchdog, which owns at most one worker goroutine per in-flight
// copy (and copies are serialized).
//
// # Per-entry state machine
//
//	          start
//	           │
//	  is ".kitchensync"? ──► skip (no counter change)
//	           │ no
//	  filter matches path? ──► skip
//	           │ no
//	  is_dir?
//	    ├─ yes ──► enter directory (create destination dir if absent)
//	    └─ no ──►
//	        timestamp-like name filtered? ──► skip
//	           │ no
//	        locate destination entry by name
//	           │
//	        decide(src, dest) → copy | update | skip
//
// Every file that would be overwritten or removed is first moved into the
// run's `.kitchensync/<run-timestamp>/` directory alongside it, so no run
// ever destroys data. Errors on individual entries are recorded and the
// traversal continues with the next sibling; only failures to access the
// root of either tree are fatal.
package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/freeideas/kitchensync/internal/fileops"
	"github.com/freeideas/kitchensync/internal/filter"
	"github.com/freeideas/kitchensync/internal/lister"
	"github.com/freeideas/kitchensync/internal/logging"
	"github.com/freeideas/kitchensync/internal/pattern"
	"github.com/freeideas/kitchensync/internal/progress"
	"github.com/freeideas/kitchensync/internal/types"
)

// Config is the read-only input of one sync run.
type Config struct {
	SrcRoot string // absolute path of the source tree
	DstRoot string // absolute path of the destination tree
	Preview bool   // report and count, but perform no mutating operation

	ExcludePatterns []string // glob patterns, evaluated against root-relative paths
	SkipTimestamps  bool     // filter out timestamp-like names
	UseModTime      bool     // let a newer source mtime trigger an update

	Verbosity    int           // 0 silent, 1 per-operation, 2 plus directory loads
	AbortTimeout time.Duration // 0 disables the copy watchdog
}

// Engine performs one synchronization run.
//
// The engine is designed for single-use: create with New(), call Run() once.
type Engine struct {
	cfg       Config
	srcFilter *filter.Filter
	dstFilter *filter.Filter
	log       *logging.Logger
	spin      *progress.Spinner

	runTS string
	stats types.Stats
	errs  []types.SyncError
}

// New creates an Engine for one run. log and spin may be nil, in which case
// a stdout logger at cfg.Verbosity and a disabled spinner are used.
func New(cfg Config, log *logging.Logger, spin *progress.Spinner) *Engine {
	if log == nil {
		log = logging.New(cfg.Verbosity, cfg.SrcRoot, cfg.DstRoot, nil)
	}
	if spin == nil {
		spin = progress.New(false)
	}
	return &Engine{
		cfg:       cfg,
		srcFilter: filter.New(cfg.SrcRoot, cfg.ExcludePatterns),
		dstFilter: filter.New(cfg.DstRoot, cfg.ExcludePatterns),
		log:       log,
		spin:      spin,
	}
}

// Run executes the sync and returns the counters plus the ordered error
// collection. The returned error is non-nil only for fatal conditions:
// malformed patterns or inaccessible roots.
func (e *Engine) Run() (*types.Stats, []types.SyncError, error) {
	e.stats = types.Stats{StartTime: time.Now()}

	if err := pattern.Validate(e.cfg.ExcludePatterns); err != nil {
		return nil, nil, types.SyncError{Op: "validate patterns", Kind: types.KindBadPattern, Err: err}
	}

	srcInfo, err := os.Stat(e.cfg.SrcRoot)
	if err != nil || !srcInfo.IsDir() {
		if err == nil {
			err = fmt.Errorf("%q is not a directory", e.cfg.SrcRoot)
		}
		return nil, nil, types.SyncError{Op: "open source root", SourcePath: e.cfg.SrcRoot,
			Kind: types.KindRootInaccessible, Err: err}
	}

	dstExists, err := e.ensureDstRoot()
	if err != nil {
		return nil, nil, types.SyncError{Op: "open destination root", DestPath: e.cfg.DstRoot,
			Kind: types.KindRootInaccessible, Err: err}
	}

	// One archive timestamp per run: every archive of this run shares it, so
	// each affected parent gains at most one archive subdirectory.
	e.runTS = fileops.ArchiveTimestamp(time.Now())

	e.syncDir(e.cfg.SrcRoot, e.cfg.DstRoot, dstExists)

	e.stats.Errors = int64(len(e.errs))
	e.spin.Finish(&e.stats)
	return &e.stats, e.errs, nil
}

// ensureDstRoot verifies (or, outside preview, creates) the destination
// root and reports whether it exists on disk.
func (e *Engine) ensureDstRoot() (bool, error) {
	info, err := os.Stat(e.cfg.DstRoot)
	switch {
	case err == nil && info.IsDir():
		return true, nil
	case err == nil:
		return false, fmt.Errorf("%q is not a directory", e.cfg.DstRoot)
	case !os.IsNotExist(err):
		return false, err
	case e.cfg.Preview:
		return false, nil
	}
	if err := fileops.MkdirAll(e.cfg.DstRoot); err != nil {
		return false, err
	}
	return true, nil
}

// syncDir brings dstDir into alignment with srcDir. dstExists reports
// whether dstDir is present on disk (it never is below a directory created
// during preview).
func (e *Engine) syncDir(srcDir, dstDir string, dstExists bool) {
	e.log.LoadingDir(srcDir)
	srcBatch, err := lister.List(srcDir)
	if err != nil {
		e.record("list", srcDir, "", err)
		return
	}

	var dstBatch []types.Entry
	if dstExists {
		e.log.LoadingDir(dstDir)
		dstBatch, err = lister.List(dstDir)
		if err != nil {
			// The destination side is unreadable; record it and sync as if
			// empty, which at worst re-copies.
			e.record("list", "", dstDir, err)
			dstBatch = nil
		}
	}

	dstIdx := make(map[string]*types.Entry, len(dstBatch))
	for i := range dstBatch {
		dstIdx[dstBatch[i].Name] = &dstBatch[i]
	}
	srcNames := make(map[string]struct{}, len(srcBatch))
	for i := range srcBatch {
		srcNames[srcBatch[i].Name] = struct{}{}
	}

	// Files first, in batch order.
	for i := range srcBatch {
		s := &srcBatch[i]
		if s.IsDir || s.Name == fileops.ArchiveDirName {
			continue
		}
		srcPath := filepath.Join(srcDir, s.Name)
		if e.srcFilter.Matches(srcPath) {
			continue
		}
		if e.cfg.SkipTimestamps && pattern.IsTimestampLike(s.Name) {
			continue
		}
		dstPath := filepath.Join(dstDir, s.Name)
		switch decide(s, dstIdx[s.Name], e.cfg.UseModTime) {
		case actionCopy:
			if e.copyFile(srcPath, dstPath, s, "") {
				e.stats.FilesCopied++
				e.stats.BytesCopied += s.Size
			}
		case actionUpdate:
			e.update(srcPath, dstPath, s)
		case actionSkip:
			e.stats.FilesUnchanged++
		}
	}
	e.spin.Describe(&e.stats)

	// Then subdirectories, recursed in the same order. Excluded directories
	// are never entered: their children are not even listed.
	for i := range srcBatch {
		s := &srcBatch[i]
		if !s.IsDir || s.Name == fileops.ArchiveDirName {
			continue
		}
		srcPath := filepath.Join(srcDir, s.Name)
		if e.srcFilter.Matches(srcPath) {
			continue
		}
		dstPath := filepath.Join(dstDir, s.Name)
		d := dstIdx[s.Name]

		if d != nil && !d.IsDir {
			// The destination holds a file where the source has a
			// directory. Archive it out of the way first.
			if !e.deleteEntry(dstPath) {
				continue
			}
			d = nil
		}

		childExists := d != nil
		if d == nil {
			e.stats.DirsCreated++
			if !e.cfg.Preview {
				if err := fileops.MkdirAll(dstPath); err != nil {
					e.record("create dir", srcPath, dstPath, err)
					continue
				}
				childExists = true
			}
		}
		e.syncDir(srcPath, dstPath, childExists)
	}

	// Deletion pass: anything in the destination batch that has no source
	// counterpart and is neither the archive directory nor excluded gets
	// archived. Destination-only directories go as one subtree rename.
	for i := range dstBatch {
		d := &dstBatch[i]
		if d.Name == fileops.ArchiveDirName {
			continue
		}
		if _, inSrc := srcNames[d.Name]; inSrc {
			continue
		}
		dstPath := filepath.Join(dstDir, d.Name)
		if e.dstFilter.Matches(dstPath) {
			continue
		}
		e.deleteEntry(dstPath)
	}
}

// update archives the destination, then copies over it. A failed archive
// (other than the file having already vanished) records the error and
// suppresses the copy: without the archived pre-state the overwrite would
// be able to lose data.
func (e *Engine) update(srcPath, dstPath string, s *types.Entry) {
	e.log.Archiving(dstPath)
	archived := ""
	if !e.cfg.Preview {
		path, err := fileops.Archive(dstPath, e.runTS)
		switch {
		case err == nil:
			archived = path
		case types.Classify(err) == types.KindNotFound:
			// Vanished since listing; nothing to preserve.
		default:
			e.record("archive", srcPath, dstPath, err)
			return
		}
	}
	if e.copyFile(srcPath, dstPath, s, archived) {
		e.stats.FilesUpdated++
		e.stats.BytesCopied += s.Size
	}
}

// deleteEntry archives a destination-only entry (file, or directory as a
// whole subtree in a single rename). A NotFound at archive time is absorbed
// silently: the work is already done.
func (e *Engine) deleteEntry(dstPath string) bool {
	e.log.Archiving(dstPath)
	if !e.cfg.Preview {
		if _, err := fileops.Archive(dstPath, e.runTS); err != nil {
			if types.Classify(err) != types.KindNotFound {
				e.record("archive", "", dstPath, err)
				return false
			}
		}
	}
	e.stats.FilesDeleted++
	return true
}

// copyFile copies one file and verifies the result, rolling back to the
// archived pre-state on a size mismatch. Reports whether the copy landed.
func (e *Engine) copyFile(srcPath, dstPath string, s *types.Entry, archived string) bool {
	e.log.Copying(srcPath)
	if e.cfg.Preview {
		return true
	}

	if err := fileops.Copy(srcPath, dstPath, e.cfg.AbortTimeout); err != nil {
		e.record("copy", srcPath, dstPath, err)
		return false
	}

	info, err := os.Stat(dstPath)
	if err != nil || info.Size() != s.Size {
		// Never leave a truncated copy behind: drop it and put the archived
		// predecessor (if any) back.
		_ = os.Remove(dstPath)
		if archived != "" {
			if rerr := fileops.Unarchive(archived, dstPath); rerr != nil {
				e.record("restore", srcPath, dstPath, rerr)
			}
		}
		got := int64(-1)
		if err == nil {
			got = info.Size()
		}
		e.recordKind("verify copy", srcPath, dstPath, types.KindSizeMismatch,
			fmt.Errorf("destination size %d, want %d", got, s.Size))
		return false
	}
	return true
}

func (e *Engine) record(op, srcPath, dstPath string, err error) {
	e.recordKind(op, srcPath, dstPath, types.Classify(err), err)
}

// recordKind reports the error immediately at verbosity >= 1 and collects it
// for the end-of-run summary. The engine never re-raises or retries.
func (e *Engine) recordKind(op, srcPath, dstPath string, kind types.ErrorKind, err error) {
	se := types.SyncError{SourcePath: srcPath, DestPath: dstPath, Kind: kind, Op: op, Err: err}
	e.log.Failure(se)
	e.errs = append(e.errs, se)
}
