package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/fmmd/fmmd/internal/audio"
	"github.com/fmmd/fmmd/internal/ui"
)

func newTagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags <files>...",
		Short: "Show the metadata embedded in audio files",
		Long: `Show the tag fields fmmd reads from each file, the same ones the
rename is derived from.

Examples:
  fmmd tags track.mp3
  fmmd tags album/*.flac`,
		Args: cobra.MinimumNArgs(1),
		RunE: runTags,
	}
}

func runTags(cmd *cobra.Command, args []string) error {
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	printed := false
	for _, path := range args {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}

		tag, err := audio.ReadTag(path)
		if err != nil {
			fmt.Fprintf(stderr, "%s: \"%s\"\n", ui.Error(err.Error()), ui.Error(path))
			continue
		}

		if printed {
			fmt.Fprintln(stdout)
		}
		printed = true

		fmt.Fprintln(stdout, ui.Path(path))
		printField(stdout, "Title", tag.Title)
		printField(stdout, "Artist", tag.Artist)
		printField(stdout, "Album", tag.Album)
		printField(stdout, "Genre", tag.Genre)
		printField(stdout, "Year", tag.Year)
		if tag.Track > 0 {
			printField(stdout, "Track", fmt.Sprintf("%d", tag.Track))
		}
		if tag.Disc > 0 {
			printField(stdout, "Disc", fmt.Sprintf("%d", tag.Disc))
		}
		if tag.Duration > 0 {
			printField(stdout, "Length", ui.FormatDuration(tag.Duration))
		}
		printField(stdout, "Size", ui.FormatBytes(info.Size()))
		printField(stdout, "Format", tag.Format)

		if art, err := audio.ExtractArtwork(path); err == nil {
			printField(stdout, "Artwork", fmt.Sprintf("%s (%s)", ui.FormatBytes(int64(len(art.Data))), art.MIME))
		}
	}

	return nil
}

func printField(w io.Writer, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(w, "  %s %s\n", ui.Dim(fmt.Sprintf("%-8s", label+":")), value)
}
