// Package watch reports changes to a single file.
//
// Editors rarely write a file in place: many save to a temporary file and
// rename it over the original, which replaces the inode fsnotify was
// watching. The watcher therefore watches the file's directory and filters
// events by name. Bursts of events are debounced into one [Event].
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when Options.Debounce is zero.
const DefaultDebounce = 200 * time.Millisecond

// Event is one debounced batch of changes.
type Event struct {
	Path    string
	Ops     fsnotify.Op // union of the raw operations in the batch
	Removed bool        // the file no longer exists
	Time    time.Time
}

// Options configures [Watch].
type Options struct {
	Debounce time.Duration
	Logger   *log.Logger
}

// Watch calls fn after every change to path until ctx is done. fn runs on
// the watcher goroutine, so a slow fn delays later events but never
// overlaps itself. Watch returns nil when ctx is canceled.
func Watch(ctx context.Context, path string, opts Options, fn func(Event)) error {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	opts.Logger.Debug("watching", "path", abs, "debounce", opts.Debounce)

	timer := time.NewTimer(opts.Debounce)
	timer.Stop()

	var pending fsnotify.Op
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || ev.Op == fsnotify.Chmod {
				continue
			}
			pending |= ev.Op
			timer.Reset(opts.Debounce)

		case <-timer.C:
			_, statErr := os.Stat(abs)
			fn(Event{
				Path:    abs,
				Ops:     pending,
				Removed: os.IsNotExist(statErr),
				Time:    time.Now(),
			})
			pending = 0

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			opts.Logger.Warn("watcher error", "err", err)
		}
	}
}
