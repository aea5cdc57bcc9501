// Package rename orchestrates renaming audio files from their embedded
// metadata.
//
// # Renamer
//
// Renamer is the entry point. It reads the tag of each input file, derives
// the new name next to the original, and issues the rename:
//
//	renamer := rename.New(rename.Config{Verbose: true})
//	results := renamer.Run(paths)
//
// Inputs that do not exist are skipped silently. Every other failure is
// printed to standard error as one line and the run moves on to the next
// file; a run never aborts.
//
// # Dry Runs
//
// With Config.DryRun the new names are computed and printed but nothing on
// disk changes. The preview line is identical to the one verbose mode
// prints before a real rename:
//
//	old/path.mp3 -> old/01-title.mp3
//
// # Progress Tracking
//
// Callers that present their own interface register a callback:
//
//	renamer := rename.New(cfg, rename.WithProgress(func(e rename.ProgressEvent) {
//		log.Print(e.Message)
//	}))
//
// GetProgress reports processed and total counts and may be polled from
// another goroutine while Run executes.
package rename
