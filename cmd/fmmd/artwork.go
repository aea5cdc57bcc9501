package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fmmd/fmmd/internal/audio"
	ioutils "github.com/fmmd/fmmd/internal/io"
	"github.com/fmmd/fmmd/internal/ui"
)

func newArtworkCmd() *cobra.Command {
	var output string
	var maxSize int
	var toJPEG bool

	cmd := &cobra.Command{
		Use:   "artwork <files>...",
		Short: "Extract embedded cover art from audio files",
		Long: `Extract the front cover embedded in each file and save it as an image
next to the file, named after it.

The image format is detected from the embedded bytes. --jpeg re-encodes
to JPEG, --max-size scales covers down that exceed the given dimension.

Examples:
  fmmd artwork track.mp3
  fmmd artwork --jpeg --max-size 500 album/*.flac
  fmmd artwork --out cover.jpg track.flac`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArtwork(cmd, args, output, maxSize, toJPEG)
		},
	}

	cmd.Flags().StringVarP(&output, "out", "o", "", "output path (single file only)")
	cmd.Flags().IntVar(&maxSize, "max-size", 0, "scale covers down to fit this many pixels per side")
	cmd.Flags().BoolVar(&toJPEG, "jpeg", false, "re-encode the cover as JPEG")

	return cmd
}

func runArtwork(cmd *cobra.Command, args []string, output string, maxSize int, toJPEG bool) error {
	if output != "" && len(args) > 1 {
		return fmt.Errorf("--out only works with a single file")
	}

	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()
	images := ioutils.NewImageService()
	ctx := cmd.Context()

	for _, path := range args {
		art, err := audio.ExtractArtwork(path)
		if err != nil {
			fmt.Fprintf(stderr, "%s: \"%s\"\n", ui.Error(err.Error()), ui.Error(path))
			continue
		}

		data := art.Data
		if maxSize > 0 {
			resized, err := images.ResizeImage(ctx, data, maxSize, maxSize)
			if err != nil {
				fmt.Fprintf(stderr, "%s: \"%s\"\n", ui.Error(err.Error()), ui.Error(path))
				continue
			}
			data = resized
		}
		if toJPEG {
			converted, err := images.ConvertToJPEG(ctx, data)
			if err != nil {
				fmt.Fprintf(stderr, "%s: \"%s\"\n", ui.Error(err.Error()), ui.Error(path))
				continue
			}
			data = converted
		}

		outPath := output
		if outPath == "" {
			ext, _ := ioutils.DetectImageFormat(data)
			outPath = strings.TrimSuffix(path, filepath.Ext(path)) + ext
		}

		if err := ioutils.WriteFile(ctx, outPath, data); err != nil {
			fmt.Fprintf(stderr, "%s: \"%s\"\n", ui.Error(err.Error()), ui.Error(path))
			continue
		}

		fmt.Fprintf(stdout, "%s (%s)\n", ui.Success("Extracted "+outPath), ui.FormatBytes(int64(len(data))))
	}

	return nil
}
