// Package watch re-runs a callback when any of a set of files changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/taigrr/tracearoom/internal/logger"
	"go.uber.org/zap"
)

// DefaultDebounce collapses the burst of events a single editor save
// produces.
const DefaultDebounce = 150 * time.Millisecond

// Watcher reports changes to individual files.
//
// The parent directories are watched rather than the files themselves, so
// editors that save by renaming a temp file over the original still
// trigger.
type Watcher struct {
	fs       *fsnotify.Watcher
	files    map[string]struct{}
	Debounce time.Duration
}

// New watches the given files.
func New(paths ...string) (*Watcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fs:       fsWatch,
		files:    make(map[string]struct{}),
		Debounce: DefaultDebounce,
	}

	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsWatch.Close()
			return nil, err
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsWatch.Add(dir); err != nil {
			fsWatch.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	return w, nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

func (w *Watcher) relevant(e fsnotify.Event) bool {
	if e.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return false
	}
	abs, err := filepath.Abs(e.Name)
	if err != nil {
		return false
	}
	_, ok := w.files[abs]
	return ok
}

// Run calls onChange once per debounced burst of changes until ctx is done
// or onChange returns an error. A cancelled context is not an error.
func (w *Watcher) Run(ctx context.Context, onChange func(path string) error) error {
	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending string
	)

	for {
		select {
		case e, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(e) {
				continue
			}
			logger.Debug("file changed", zap.String("path", e.Name), zap.String("op", e.Op.String()))
			pending = e.Name
			if timer == nil {
				timer = time.NewTimer(w.Debounce)
			} else {
				timer.Reset(w.Debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := onChange(pending); err != nil {
				return err
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(err))

		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		}
	}
}
