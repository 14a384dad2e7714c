package source

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// Invalidator is anything that can forget what it knows about a path.
type Invalidator interface {
	Invalidate(path string)
}

// WatchOptions configures a Watcher.
type WatchOptions struct {
	// IgnorePatterns are doublestar patterns matched against the base name
	// of every directory and file seen by the watcher.
	IgnorePatterns []string
}

// DefaultWatchOptions skips VCS metadata and editor swap files.
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{
		IgnorePatterns: []string{".git", ".hg", "*.swp", "*~", ".#*"},
	}
}

// Watcher evicts cached file text whenever a file under one of its roots
// is written, created, removed or renamed.
//
//	watcher, err := source.NewWatcher(cache, source.DefaultWatchOptions(), logger)
//	if err != nil {
//	    return err
//	}
//	defer watcher.Stop()
//	err = watcher.Start(libraryRoot, styledefRoot)
type Watcher struct {
	watcher *fsnotify.Watcher
	target  Invalidator
	options WatchOptions
	logger  *slog.Logger

	invalidations atomic.Int64

	stopChan chan struct{}
	done     chan struct{}
	started  bool
	stopped  bool
	mu       sync.Mutex
}

// NewWatcher creates a watcher that reports changes to target.
func NewWatcher(target Invalidator, options WatchOptions, logger *slog.Logger) (*Watcher, error) {
	if target == nil {
		return nil, fmt.Errorf("watcher: invalidation target is nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	for _, pattern := range options.IgnorePatterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("watcher: invalid ignore pattern %q", pattern)
		}
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watcher: %w", err)
	}

	return &Watcher{
		watcher:  fw,
		target:   target,
		options:  options,
		logger:   logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Start adds every directory below the given roots and begins processing
// events in the background. It may only be called once.
func (w *Watcher) Start(roots ...string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return fmt.Errorf("watcher already stopped")
	}
	if w.started {
		return fmt.Errorf("watcher already started")
	}

	for _, root := range roots {
		if root == "" {
			continue
		}
		if err := w.addTree(root); err != nil {
			return err
		}
	}

	w.started = true
	go w.eventLoop()

	w.logger.Info("source watcher started", "roots", roots)
	return nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return fmt.Errorf("failed to watch %s: %w", root, err)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.shouldIgnore(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			if path == root {
				return fmt.Errorf("failed to watch %s: %w", root, err)
			}
			w.logger.Warn("failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
}

// Stop halts event processing. Safe to call more than once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	started := w.started
	close(w.stopChan)
	w.mu.Unlock()

	err := w.watcher.Close()
	if started {
		<-w.done
	}
	w.logger.Info("source watcher stopped", "invalidations", w.invalidations.Load())
	return err
}

// Invalidations returns how many change events were forwarded so far.
func (w *Watcher) Invalidations() int64 {
	return w.invalidations.Load()
}

func (w *Watcher) eventLoop() {
	defer close(w.done)
	for {
		select {
		case <-w.stopChan:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("source watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name
	if w.shouldIgnore(path) {
		return
	}

	w.logger.Debug("source event", "op", event.Op.String(), "path", path)

	if event.Has(fsnotify.Create) {
		// New directories need their own watch.
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			_ = w.addTree(path)
		}
	}

	if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		w.target.Invalidate(path)
		w.invalidations.Add(1)
	}
}

func (w *Watcher) shouldIgnore(path string) bool {
	base := filepath.Base(path)
	for _, pattern := range w.options.IgnorePatterns {
		if matched, _ := doublestar.Match(pattern, base); matched {
			return true
		}
	}
	return false
}
