// Package watcher observes directories for incoming audio files and hands
// them to a Handler once they have settled.
//
// Files arriving over the network or from a ripper are written in bursts,
// so acting on the first filesystem event would read half-written tags.
// Every Create and Write event (re)arms a per-file settle timer; only when
// a file has been quiet for the full delay is it passed on. Deliveries are
// serialized: even when several files settle at once, the Handler sees
// them one at a time.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultSettleDelay is how long a file must stay quiet before it is
// considered fully written.
const DefaultSettleDelay = 2 * time.Second

// Handler receives the path of a settled audio file. Calls are made one
// at a time, never concurrently.
type Handler interface {
	HandleFile(path string)
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(path string)

func (f HandlerFunc) HandleFile(path string) { f(path) }

// Watcher wires fsnotify events to a Handler.
type Watcher struct {
	fsWatcher   *fsnotify.Watcher
	handler     Handler
	settleDelay time.Duration
	recursive   bool
	logger      *log.Logger

	mu      sync.Mutex
	pending map[string]*time.Timer

	deliverMu sync.Mutex
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithRecursive controls whether subdirectories are watched too. On by
// default.
func WithRecursive(recursive bool) Option {
	return func(w *Watcher) {
		w.recursive = recursive
	}
}

// WithSettleDelay overrides DefaultSettleDelay.
func WithSettleDelay(delay time.Duration) Option {
	return func(w *Watcher) {
		w.settleDelay = delay
	}
}

// WithLogger sets the logger for lifecycle and error messages.
func WithLogger(logger *log.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// New creates a Watcher delivering settled audio files to handler.
func New(handler Handler, opts ...Option) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("unable to create watcher: %w", err)
	}

	w := &Watcher{
		fsWatcher:   fsWatcher,
		handler:     handler,
		settleDelay: DefaultSettleDelay,
		recursive:   true,
		logger:      log.Default(),
		pending:     make(map[string]*time.Timer),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

// Watch registers the given directories.
func (w *Watcher) Watch(paths []string) error {
	for _, path := range paths {
		if w.recursive {
			if err := w.addRecursive(path); err != nil {
				return err
			}
		} else {
			if err := w.fsWatcher.Add(path); err != nil {
				return fmt.Errorf("unable to watch %s: %w", path, err)
			}
			w.logger.Info("Watching", "path", path)
		}
	}
	return nil
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(filepath.Base(path), ".") {
			return filepath.SkipDir
		}
		if err := w.fsWatcher.Add(path); err != nil {
			return fmt.Errorf("unable to watch %s: %w", path, err)
		}
		w.logger.Info("Watching", "path", path)
		return nil
	})
}

// Start processes filesystem events until ctx is cancelled or the event
// channel closes. The returned error is ctx.Err() on cancellation.
func (w *Watcher) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.cancelPending()
			return ctx.Err()

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("Watcher error", "err", err)
		}
	}
}

// Close stops all pending settle timers and releases the underlying
// filesystem watcher.
func (w *Watcher) Close() error {
	w.cancelPending()
	return w.fsWatcher.Close()
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Create == fsnotify.Create {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if w.recursive && !strings.HasPrefix(filepath.Base(event.Name), ".") {
				w.fsWatcher.Add(event.Name)
				w.logger.Info("Watching new directory", "path", event.Name)
			}
			return
		}
	}

	if !IsAudioFile(event.Name) {
		return
	}

	// The file is gone, drop any pending timer for it.
	if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		w.mu.Lock()
		if timer, exists := w.pending[event.Name]; exists {
			timer.Stop()
			delete(w.pending, event.Name)
		}
		w.mu.Unlock()
		return
	}

	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}

	w.schedule(event.Name)
}

// schedule (re)arms the settle timer for path. Another event before the
// delay elapses starts the wait over.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, exists := w.pending[path]; exists {
		timer.Stop()
		delete(w.pending, path)
	}

	w.pending[path] = time.AfterFunc(w.settleDelay, func() {
		w.settle(path)
	})
}

func (w *Watcher) settle(path string) {
	w.mu.Lock()
	delete(w.pending, path)
	w.mu.Unlock()

	// It may have been removed while the timer ran.
	if _, err := os.Stat(path); err != nil {
		return
	}

	// Each settle timer fires on its own goroutine; deliveries are
	// serialized so the handler never runs concurrently with itself.
	w.deliverMu.Lock()
	defer w.deliverMu.Unlock()

	w.logger.Debug("File settled", "path", path)
	w.handler.HandleFile(path)
}

func (w *Watcher) cancelPending() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
}

// IsAudioFile reports whether path has one of the audio extensions the
// tag reader understands.
func IsAudioFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	audioExts := map[string]bool{
		".mp3":  true,
		".flac": true,
	}
	return audioExts[ext]
}
