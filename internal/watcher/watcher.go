// Package watcher invalidates the search index when on-disk content
// changes. Events are debounced so an editor save, which often produces a
// burst of writes and renames, triggers a single rebuild.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounceWindow is how long the watcher waits for events to settle.
const DefaultDebounceWindow = 200 * time.Millisecond

// Invalidator drops cached state. *search.Engine implements it.
type Invalidator interface {
	Clear()
}

// Options configure a Watcher.
type Options struct {
	// DebounceWindow defaults to DefaultDebounceWindow.
	DebounceWindow time.Duration
	// OnChange, if set, runs after Clear with the changed paths relative
	// to the root.
	OnChange func(paths []string)
	Logger   *slog.Logger
}

// Watcher watches a content directory tree and clears an Invalidator
// after changes.
type Watcher struct {
	root   string
	target Invalidator
	opts   Options
	fsw    *fsnotify.Watcher

	mu      sync.Mutex
	pending map[string]bool
	timer   *time.Timer
}

// New creates a Watcher for every directory under root.
func New(root string, target Invalidator, opts Options) (*Watcher, error) {
	if opts.DebounceWindow <= 0 {
		opts.DebounceWindow = DefaultDebounceWindow
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		root:    root,
		target:  target,
		opts:    opts,
		fsw:     fsw,
		pending: make(map[string]bool),
	}
	if err := w.addRecursive(root); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("add directories to watcher: %w", err)
	}
	return w, nil
}

// Run processes events until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.opts.Logger.Warn("content watcher error", "error", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op == fsnotify.Chmod || isHidden(event.Name) {
		return
	}
	// New directories need their own watch
	if event.Op&fsnotify.Create != 0 {
		_ = w.addRecursive(event.Name)
	}

	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		rel = event.Name
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[filepath.ToSlash(rel)] = true
	if w.timer == nil {
		w.timer = time.AfterFunc(w.opts.DebounceWindow, w.flush)
	} else {
		w.timer.Reset(w.opts.DebounceWindow)
	}
}

func (w *Watcher) flush() {
	w.mu.Lock()
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]bool)
	w.timer = nil
	w.mu.Unlock()

	if len(paths) == 0 {
		return
	}
	slices.Sort(paths)

	w.target.Clear()
	w.opts.Logger.Info("content changed, search index cleared", "paths", len(paths))
	if w.opts.OnChange != nil {
		w.opts.OnChange(paths)
	}
}

func (w *Watcher) stop() {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()
	_ = w.fsw.Close()
}

// addRecursive adds root and all directories under it.
func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip entries we can't access
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && isHidden(path) {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

func isHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~")
}
