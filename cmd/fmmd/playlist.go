package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fmmd/fmmd/internal/audio"
	ioutils "github.com/fmmd/fmmd/internal/io"
	"github.com/fmmd/fmmd/internal/ui"
)

func newPlaylistCmd() *cobra.Command {
	var formatName string
	var output string
	var extended bool

	cmd := &cobra.Command{
		Use:   "playlist <files>...",
		Short: "Create a playlist from audio files",
		Long: `Create a playlist referencing the given files, titled after the album
tag of the first readable file.

Without --output the playlist is written next to the first file, named
after its album. Use "--output -" to print to standard output instead.

Examples:
  fmmd playlist album/*.mp3
  fmmd playlist --type pls --output mix.pls *.flac
  fmmd playlist --output - *.mp3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlaylist(cmd, args, formatName, output, extended)
		},
	}

	cmd.Flags().StringVarP(&formatName, "type", "t", "m3u", "playlist format: m3u, pls, wpl, zpl")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path, or - for standard output")
	cmd.Flags().BoolVar(&extended, "extended", true, "write extended M3U directives")

	return cmd
}

func runPlaylist(cmd *cobra.Command, args []string, formatName, output string, extended bool) error {
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	entries := make([]audio.PlaylistEntry, 0, len(args))
	for _, path := range args {
		if _, err := os.Stat(path); err != nil {
			continue
		}

		tag, err := audio.ReadTag(path)
		if err != nil {
			fmt.Fprintf(stderr, "%s: \"%s\"\n", ui.Error(err.Error()), ui.Error(path))
			continue
		}

		entries = append(entries, audio.PlaylistEntry{Path: path, Tag: tag})
	}

	if len(entries) == 0 {
		return fmt.Errorf("no readable audio files")
	}

	title := entries[0].Tag.Album
	if title == "" {
		title = "Playlist"
	}

	format := audio.ParsePlaylistFormat(formatName)
	creator := audio.NewPlaylistCreator(format, extended)
	content := creator.CreatePlaylist(title, entries)

	if output == "-" {
		fmt.Fprint(stdout, content)
		return nil
	}

	if output == "" {
		output = filepath.Join(filepath.Dir(entries[0].Path), ioutils.SanitizeFileName(title)+format.Extension())
	} else if dir := filepath.Dir(output); dir != "." {
		if err := ioutils.EnsureDir(dir); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	if err := ioutils.WriteFile(cmd.Context(), output, []byte(content)); err != nil {
		return fmt.Errorf("writing playlist: %w", err)
	}

	fmt.Fprintln(stdout, ui.Success("Created "+output))
	return nil
}
