package rename

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/fmmd/fmmd/internal/audio"
	"github.com/fmmd/fmmd/internal/model"
	"github.com/fmmd/fmmd/internal/ui"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a rename progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// RenameError reports that the filesystem rename call itself failed
// (permissions, I/O, invalid target). The display string is fixed because
// it is shown to the user as-is; the OS error stays available via Unwrap.
type RenameError struct {
	Err error
}

func (e *RenameError) Error() string { return "Could not rename the file" }

func (e *RenameError) Unwrap() error { return e.Err }

// ErrTargetExists is reported instead of overwriting when the overwrite
// guard is enabled. The text is printed verbatim on standard error.
var ErrTargetExists = errors.New("The target file already exists")

// Config holds the settings for a rename run.
type Config struct {
	// DryRun prints the new names without touching the filesystem.
	DryRun bool

	// Verbose prints the "old -> new" preview line even when renaming.
	Verbose bool

	// NoClobber refuses to rename onto a path that already exists.
	// Off by default: the rename is issued unconditionally and the
	// platform decides what happens to an existing target.
	NoClobber bool

	// Naming controls how the new filename is derived.
	Naming model.NameConfig
}

// Result records what happened to one input file.
type Result struct {
	// Path is the input path as given.
	Path string

	// NewPath is the derived target path, empty when derivation failed.
	NewPath string

	// Renamed is true when the file was actually moved.
	Renamed bool

	// Skipped is true for inputs that did not exist on disk.
	Skipped bool

	// Err is the failure for this file, nil on success.
	Err error
}

// Renamer runs the per-file pipeline: read the tag, derive the new name,
// preview and rename. One Renamer handles many files, strictly one at a
// time; failures are isolated per file.
type Renamer struct {
	cfg    Config
	stdout io.Writer
	stderr io.Writer

	processed int32
	total     int32

	onProgress func(ProgressEvent)
}

// Option configures a Renamer.
type Option func(*Renamer)

// WithOutput redirects the preview lines. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(r *Renamer) { r.stdout = w }
}

// WithErrOutput redirects the per-file error lines. Defaults to os.Stderr.
func WithErrOutput(w io.Writer) Option {
	return func(r *Renamer) { r.stderr = w }
}

// WithProgress registers a callback receiving progress events. Used by the
// TUI and the watch command; the plain CLI leaves it unset.
func WithProgress(fn func(ProgressEvent)) Option {
	return func(r *Renamer) { r.onProgress = fn }
}

// New creates a Renamer with the given configuration.
func New(cfg Config, opts ...Option) *Renamer {
	r := &Renamer{
		cfg:    cfg,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ProcessFile runs the pipeline for one file, in order:
//
//  1. Read the tag; parse failures propagate as *audio.ParseError.
//  2. Derive the new path; model.ErrNotEnoughMetadata and the structured
//     path errors propagate unchanged.
//  3. In dry-run or verbose mode, print "old -> new" before any action.
//  4. In dry-run mode, stop here with no filesystem mutation.
//  5. Rename; an OS failure propagates as *RenameError.
//
// Exactly one rename call is made per file. The returned Result carries
// the same error for callers that collect outcomes.
func (r *Renamer) ProcessFile(path string) (Result, error) {
	res := Result{Path: path}

	tag, err := audio.ReadTag(path)
	if err != nil {
		res.Err = err
		return res, err
	}

	newPath, err := model.DerivePath(tag, path, r.cfg.Naming)
	if err != nil {
		res.Err = err
		return res, err
	}
	res.NewPath = newPath

	if r.cfg.DryRun || r.cfg.Verbose {
		fmt.Fprintf(r.stdout, "%s -> %s\n", path, newPath)
	}

	if r.cfg.DryRun {
		return res, nil
	}

	if r.cfg.NoClobber {
		if target, err := os.Stat(newPath); err == nil {
			// The occupant may be the input itself under another spelling,
			// e.g. "./track.mp3" from a shell glob. Renaming a file onto
			// itself is not an overwrite.
			src, serr := os.Stat(path)
			if serr != nil || !os.SameFile(src, target) {
				res.Err = ErrTargetExists
				return res, ErrTargetExists
			}
		}
	}

	if err := os.Rename(path, newPath); err != nil {
		renameErr := &RenameError{Err: err}
		res.Err = renameErr
		return res, renameErr
	}
	res.Renamed = true

	return res, nil
}

// Run processes each path in input order. Paths that do not exist on disk
// are skipped silently, without any output. Any other failure prints one
// line to standard error and the run continues with the next file; no
// error is ever fatal to the run.
func (r *Renamer) Run(paths []string) []Result {
	atomic.StoreInt32(&r.total, int32(len(paths)))
	atomic.StoreInt32(&r.processed, 0)

	results := make([]Result, 0, len(paths))
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			results = append(results, Result{Path: path, Skipped: true})
			atomic.AddInt32(&r.processed, 1)
			r.progress(ProgressEvent{Message: fmt.Sprintf("Skipping missing file: %s", path), Level: LevelVerbose})
			continue
		}

		res, err := r.ProcessFile(path)
		if err != nil {
			fmt.Fprintf(r.stderr, "%s: \"%s\"\n", ui.Error(err.Error()), ui.Error(path))
			r.progress(ProgressEvent{Message: fmt.Sprintf("%s: %q", err, path), Level: LevelError})
		} else if res.Renamed {
			r.progress(ProgressEvent{Message: fmt.Sprintf("Renamed: %s -> %s", res.Path, res.NewPath), Level: LevelSuccess})
		} else {
			r.progress(ProgressEvent{Message: fmt.Sprintf("Would rename: %s -> %s", res.Path, res.NewPath), Level: LevelInfo})
		}

		results = append(results, res)
		atomic.AddInt32(&r.processed, 1)
	}

	return results
}

// GetProgress returns how many inputs have been handled so far and the
// total for the current run. Safe to call from another goroutine while
// Run executes.
func (r *Renamer) GetProgress() (processed, total int32) {
	return atomic.LoadInt32(&r.processed), atomic.LoadInt32(&r.total)
}

func (r *Renamer) progress(event ProgressEvent) {
	if r.onProgress != nil {
		r.onProgress(event)
	}
}
