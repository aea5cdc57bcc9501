package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/fmmd/fmmd/internal/model"
	"github.com/fmmd/fmmd/internal/rename"
)

var (
	version = "dev" // Set by build flags: -ldflags="-X main.version=1.0.0"

	dryRun     bool
	verbose    bool
	noClobber  bool
	sanitize   bool
	nameFormat string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fmmd <files>...",
		Short: "Rename audio files from their embedded metadata",
		Long: `fmmd renames audio files in place from the metadata embedded in them.

Each file is renamed within its directory to "{tracknum}-{title}", with the
track number zero-padded to two digits. Files that do not exist are skipped;
every other problem is reported on standard error and the run moves on to
the next file.

Examples:
  fmmd ~/music/incoming/*.mp3
  fmmd --dry-run album/*.flac
  fmmd -v --format "{artist} - {title}" track.mp3`,
		Version: version,
		Args:    cobra.MinimumNArgs(1),
		RunE:    runRename,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print what files are renamed to")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "d", false, "print what files would be renamed to, without renaming")
	rootCmd.Flags().BoolVar(&noClobber, "no-clobber", false, "never rename over an existing file")
	rootCmd.Flags().BoolVar(&sanitize, "sanitize", false, "replace filesystem-unsafe characters in the new name")
	rootCmd.Flags().StringVarP(&nameFormat, "format", "f", model.DefaultFormat, "new filename format: {tracknum}, {title}, {artist}, {album}, {year}, {genre}")

	rootCmd.AddCommand(newTagsCmd())
	rootCmd.AddCommand(newPlaylistCmd())
	rootCmd.AddCommand(newArtworkCmd())
	rootCmd.AddCommand(newWatchCmd())

	return rootCmd
}

func runRename(cmd *cobra.Command, args []string) error {
	renamer := rename.New(renameConfig(),
		rename.WithOutput(cmd.OutOrStdout()),
		rename.WithErrOutput(cmd.ErrOrStderr()),
	)
	renamer.Run(args)

	// Per-file failures are already reported on standard error; the run
	// itself always succeeds.
	return nil
}

func renameConfig() rename.Config {
	return rename.Config{
		DryRun:    dryRun,
		Verbose:   verbose,
		NoClobber: noClobber,
		Naming: model.NameConfig{
			Format:   nameFormat,
			Sanitize: sanitize,
		},
	}
}
