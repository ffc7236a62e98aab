package theme

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReloadHandler is called with the freshly loaded theme after the watched
// file changes.
type ReloadHandler func(*Theme)

// Watcher reloads a theme file when it changes on disk.
type Watcher struct {
	mu      sync.Mutex
	path    string
	watcher *fsnotify.Watcher
	handler ReloadHandler
	done    chan struct{}
	closed  bool

	// Events are debounced: editors often write config files with several
	// rapid operations (truncate, write, chmod).
	debounce time.Duration
	timer    *time.Timer
}

// Watch starts watching a theme file. The handler runs on the watcher
// goroutine after each successful reload; parse failures are logged and
// skipped so a half-written file never clobbers the active theme.
func Watch(path string, handler ReloadHandler) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating theme watcher: %w", err)
	}

	// Watch the directory, not the file: editors replace files by rename,
	// which drops a direct file watch.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching theme dir: %w", err)
	}

	w := &Watcher{
		path:     path,
		watcher:  fw,
		handler:  handler,
		done:     make(chan struct{}),
		debounce: 100 * time.Millisecond,
	}

	go w.loop()
	return w, nil
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("theme watcher error", "path", w.path, "error", err)
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	t, err := Load(w.path)
	if err != nil {
		slog.Warn("theme reload failed", "path", w.path, "error", err)
		return
	}
	w.mu.Lock()
	handler := w.handler
	closed := w.closed
	w.mu.Unlock()
	if !closed && handler != nil {
		handler(t)
	}
}
