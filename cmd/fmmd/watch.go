package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/fmmd/fmmd/internal/rename"
	"github.com/fmmd/fmmd/internal/ui"
	"github.com/fmmd/fmmd/internal/watcher"
)

func newWatchCmd() *cobra.Command {
	var settle time.Duration
	var recursive bool

	cmd := &cobra.Command{
		Use:   "watch <directories>...",
		Short: "Watch directories and rename audio files as they arrive",
		Long: `Monitor directories and rename new audio files once they have finished
writing. A file must stay unchanged for the settle delay before it is
touched, so half-written rips are left alone.

Renaming works like the plain fmmd invocation: files are renamed in place
from their tags, and failures never stop the watch.

Examples:
  fmmd watch ~/music/incoming
  fmmd watch --dry-run --settle 5s /srv/rips
  fmmd watch -v ~/incoming ~/rips`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, settle, recursive)
		},
	}

	cmd.Flags().DurationVar(&settle, "settle", watcher.DefaultSettleDelay, "how long a file must stay unchanged before renaming")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", true, "watch subdirectories too")

	return cmd
}

func runWatch(cmd *cobra.Command, dirs []string, settle time.Duration, recursive bool) error {
	logger := ui.NewLogger(cmd.ErrOrStderr())
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	// All watch output flows through the logger, so the renamer's own
	// writers are silenced.
	renamer := rename.New(renameConfig(),
		rename.WithOutput(io.Discard),
		rename.WithErrOutput(io.Discard),
	)

	handler := watcher.HandlerFunc(func(path string) {
		res, err := renamer.ProcessFile(path)
		switch {
		case err != nil:
			logger.Error(err.Error(), "path", path)
		case res.Renamed:
			logger.Info("Renamed", "from", res.Path, "to", res.NewPath)
		default:
			logger.Info("Would rename", "from", res.Path, "to", res.NewPath)
		}
	})

	w, err := watcher.New(handler,
		watcher.WithSettleDelay(settle),
		watcher.WithRecursive(recursive),
		watcher.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	if err := w.Watch(dirs); err != nil {
		return fmt.Errorf("setting up watch: %w", err)
	}

	if dryRun {
		logger.Info("Dry run, no files will be renamed")
	}
	logger.Info("Press Ctrl+C to stop")

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	// Two members: the watcher loop and the signal wait. A signal cancels
	// the group; a watcher failure cancels the group context and releases
	// the signal waiter.
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return w.Start(ctx)
	})
	g.Go(func() error {
		select {
		case <-sigCh:
			logger.Info("Interrupted, shutting down")
			cancel()
		case <-ctx.Done():
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Info("Stopped")
	return nil
}
