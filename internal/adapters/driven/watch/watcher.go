// Package watch provides an fsnotify-backed implementation of driven.ChangeWatcher.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/todos/internal/core/ports/driven"
	"github.com/custodia-labs/todos/internal/logger"
)

// DefaultDebounce is how long the watcher waits for a burst of writes to settle.
const DefaultDebounce = 150 * time.Millisecond

// Ensure DirWatcher implements the interface.
var _ driven.ChangeWatcher = (*DirWatcher)(nil)

// DirWatcher watches a directory for writes to files sharing a base name.
// SQLite in WAL mode writes to db.sqlite-wal rather than db.sqlite, so the
// directory is watched instead of the single file.
type DirWatcher struct {
	dir      string
	prefix   string
	debounce time.Duration
}

// NewDirWatcher creates a watcher for files in dbPath's directory whose
// names start with dbPath's base name.
func NewDirWatcher(dbPath string) *DirWatcher {
	return &DirWatcher{
		dir:      filepath.Dir(dbPath),
		prefix:   filepath.Base(dbPath),
		debounce: DefaultDebounce,
	}
}

// WithDebounce overrides the debounce interval.
func (w *DirWatcher) WithDebounce(d time.Duration) *DirWatcher {
	w.debounce = d
	return w
}

// Watch implements driven.ChangeWatcher.
func (w *DirWatcher) Watch(ctx context.Context) (<-chan struct{}, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(w.dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", w.dir, err)
	}

	out := make(chan struct{}, 1)
	go w.loop(ctx, fsw, out)
	return out, nil
}

func (w *DirWatcher) loop(ctx context.Context, fsw *fsnotify.Watcher, out chan<- struct{}) {
	defer close(out)
	defer fsw.Close()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			select {
			case out <- struct{}{}:
			default:
				// A notification is already pending.
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher error: %v", err)
		}
	}
}

// relevant reports whether the event is a content change to the watched files.
func (w *DirWatcher) relevant(event fsnotify.Event) bool {
	if !strings.HasPrefix(filepath.Base(event.Name), w.prefix) {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove)
}
