package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/freeideas/kitchensync/internal/engine"
	"github.com/freeideas/kitchensync/internal/pattern"
	"github.com/freeideas/kitchensync/internal/progress"
)

// syncOptions holds the CLI flags. The Y|N string flags mirror the
// historical option syntax (-p=Y, -m=N, ...).
type syncOptions struct {
	preview      string
	timestamps   string
	useModTime   string
	verbosity    int
	abortTimeout int
	excludes     []string
}

var errSyncFailed = errors.New("sync completed with errors")

// newSyncCmd creates the root command. kitchensync is single-purpose, so
// the root command is the sync itself.
func newSyncCmd() *cobra.Command {
	opts := &syncOptions{
		preview:    "N",
		timestamps: "N",
		useModTime: "N",
		verbosity:  1,
	}

	cmd := &cobra.Command{
		Use:   "kitchensync SOURCE DESTINATION",
		Short: "Safe one-way directory mirroring",
		Long: `Brings DESTINATION into alignment with SOURCE while guaranteeing that no
file is ever lost: every file that would be overwritten or removed is first
moved into a per-run .kitchensync/<timestamp>/ directory alongside it.

Previous versions of any file are therefore always recoverable from the
.kitchensync directory next to it. Archive directories are never treated as
content on later runs.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, args []string) error {
			return runSync(args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.preview, "preview", "p", opts.preview, "Y|N: report what would happen without touching anything")
	cmd.Flags().StringVarP(&opts.timestamps, "timestamps", "t", opts.timestamps, "Y|N: also copy files whose names embed a timestamp")
	cmd.Flags().StringVarP(&opts.useModTime, "use-modtime", "m", opts.useModTime, "Y|N: let a newer source mtime trigger an update")
	cmd.Flags().IntVarP(&opts.verbosity, "verbosity", "v", opts.verbosity, "0 silent, 1 per-operation, 2 plus directory loads")
	cmd.Flags().IntVarP(&opts.abortTimeout, "abort-timeout", "a", 0, "abandon a stalled copy after this many seconds (0 disables)")
	cmd.Flags().StringArrayVarP(&opts.excludes, "exclude", "x", nil, "glob pattern to exclude (repeatable)")

	return cmd
}

// runSync converts the flags into an engine Config, runs the engine, prints
// the summary and maps a non-empty error list to a non-zero exit.
func runSync(src, dst string, opts *syncOptions) error {
	preview, err := parseYN("preview", opts.preview)
	if err != nil {
		return err
	}
	copyTimestamps, err := parseYN("timestamps", opts.timestamps)
	if err != nil {
		return err
	}
	useModTime, err := parseYN("use-modtime", opts.useModTime)
	if err != nil {
		return err
	}

	// Malformed patterns are fatal before any traversal begins.
	if err := pattern.Validate(opts.excludes); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return err
	}

	// Pure path resolution: the destination may not exist yet.
	absSrc, err := filepath.Abs(src)
	if err != nil {
		return err
	}
	absDst, err := filepath.Abs(dst)
	if err != nil {
		return err
	}

	cfg := engine.Config{
		SrcRoot:         absSrc,
		DstRoot:         absDst,
		Preview:         preview,
		ExcludePatterns: opts.excludes,
		SkipTimestamps:  !copyTimestamps,
		UseModTime:      useModTime,
		Verbosity:       opts.verbosity,
		AbortTimeout:    time.Duration(opts.abortTimeout) * time.Second,
	}

	spin := progress.New(opts.verbosity == 0)
	stats, syncErrs, err := engine.New(cfg, nil, spin).Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Println(stats.String())
	if len(syncErrs) > 0 {
		fmt.Fprintf(os.Stderr, "%d errors:\n", len(syncErrs))
		for _, se := range syncErrs {
			fmt.Fprintf(os.Stderr, "  %v\n", se)
		}
		return errSyncFailed
	}
	return nil
}
