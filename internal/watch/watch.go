// Package watch re-checks notes as they are created or written.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gerunddev/orgparse/internal/check"
	"github.com/gerunddev/orgparse/internal/logger"
)

// DefaultDebounce is how long repeated events for one file are ignored.
const DefaultDebounce = 250 * time.Millisecond

// Watcher runs the checker on every note that changes under a directory
type Watcher struct {
	checker  *check.Checker
	log      *logger.Logger
	debounce time.Duration

	// OnResult receives every re-check. It runs on the watch goroutine.
	OnResult func(check.FileResult)
}

// New creates a watcher that re-checks files with c
func New(c *check.Checker, log *logger.Logger) *Watcher {
	if log == nil {
		log = logger.Discard()
	}
	return &Watcher{
		checker:  c,
		log:      log,
		debounce: DefaultDebounce,
	}
}

// SetDebounce overrides DefaultDebounce. Zero disables debouncing.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run watches dir and its non-hidden subdirectories until ctx is done.
// It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context, dir string) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	if err := addTree(fw, dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.log.Info("watching", "dir", dir)

	last := newDebouncer(w.debounce)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.log.WatchEvent(event.Name, event.Op.String())

			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}

			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				if err := addTree(fw, event.Name); err != nil {
					w.log.FileError(event.Name, err)
				}
				continue
			}

			if !w.checker.Wants(event.Name) {
				continue
			}
			if !last.allow(event.Name, time.Now()) {
				continue
			}

			res := w.checker.CheckFile(ctx, event.Name)
			if w.OnResult != nil {
				w.OnResult(res)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Error("watcher error", "error", err)
		}
	}
}

func addTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return fw.Add(path)
	})
}

// debouncer drops repeated events for a file within a window. Entries are
// pruned once their window has passed.
type debouncer struct {
	window time.Duration
	seen   map[string]time.Time
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{window: window, seen: make(map[string]time.Time)}
}

func (d *debouncer) allow(name string, now time.Time) bool {
	if d.window <= 0 {
		return true
	}
	for n, t := range d.seen {
		if now.Sub(t) >= d.window {
			delete(d.seen, n)
		}
	}
	if _, ok := d.seen[name]; ok {
		return false
	}
	d.seen[name] = now
	return true
}
