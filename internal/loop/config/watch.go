package config

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// reloadDebounce collapses the burst of events editors emit for one save.
const reloadDebounce = 100 * time.Millisecond

// Watcher keeps the most recent valid tuning loaded from a file.
// Sessions pick up Current() when they are created; a running session is
// never retuned mid-game.
type Watcher struct {
	path    string
	current atomic.Pointer[Tuning]
	watcher *fsnotify.Watcher
	logger  *log.Logger
}

// NewWatcher loads path once and starts watching its directory.
// The initial load must succeed; later failures keep the previous tuning.
func NewWatcher(path string, logger *log.Logger) (*Watcher, error) {
	t, err := Load(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: editors often replace the file instead of writing it.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	if logger == nil {
		logger = log.Default()
	}

	w := &Watcher{
		path:    filepath.Clean(path),
		watcher: fw,
		logger:  logger,
	}
	w.current.Store(&t)
	return w, nil
}

// Current returns the latest valid tuning.
func (w *Watcher) Current() Tuning {
	return *w.current.Load()
}

// Run processes file events until ctx is cancelled, then closes the watcher.
// A reload happens once the file has been quiet for reloadDebounce.
func (w *Watcher) Run(ctx context.Context) {
	defer w.watcher.Close()

	settle := time.NewTimer(reloadDebounce)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			settle.Reset(reloadDebounce)
		case <-settle.C:
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("tuning watcher error", "err", err)
		}
	}
}

func (w *Watcher) reload() {
	t, err := Load(w.path)
	if err != nil {
		w.logger.Warn("tuning reload rejected, keeping previous values", "path", w.path, "err", err)
		return
	}
	w.current.Store(&t)
	w.logger.Info("tuning reloaded", "path", w.path)
}
