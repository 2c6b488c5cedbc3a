package message

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
)

// ErrWatchUnsupported is returned by Watch when the store does not read from
// the OS filesystem.
var ErrWatchUnsupported = errors.New("message: watching requires the OS filesystem")

// reloadDelay collapses the burst of events an editor produces on save.
const reloadDelay = 200 * time.Millisecond

// Watch reloads a pool whenever its source file is written, created or
// renamed into place. It blocks until ctx is cancelled.
func (s *Store) Watch(ctx context.Context) error {
	if _, ok := s.fs.(*afero.OsFs); !ok {
		return ErrWatchUnsupported
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify.NewWatcher: %w", err)
	}
	defer watcher.Close()

	sources := map[string]Kind{}
	dirs := map[string]bool{}
	for _, kind := range []Kind{KindStart, KindEnd} {
		path := s.Path(kind)
		if path == "" {
			continue
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("filepath.Abs(%s): %w", path, err)
		}
		sources[abs] = kind
		dirs[filepath.Dir(abs)] = true
	}

	// Directories are watched rather than files so that atomic saves
	// (write to temp, rename over) keep being observed.
	for dir := range dirs {
		err = watcher.Add(dir)
		if err != nil {
			return fmt.Errorf("watcher.Add(%s): %w", dir, err)
		}
	}

	rl := &reloader{store: s, timers: map[Kind]*time.Timer{}}
	defer rl.stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher.Events closed")
			}
			kind, ok := sources[filepath.Clean(event.Name)]
			if !ok {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				rl.schedule(kind)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher.Errors closed")
			}
			s.logger.Warn("message watcher error", "error", err)
		}
	}
}

type reloader struct {
	store  *Store
	mu     sync.Mutex
	timers map[Kind]*time.Timer
}

func (rl *reloader) schedule(kind Kind) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if t, ok := rl.timers[kind]; ok {
		t.Reset(reloadDelay)
		return
	}

	rl.timers[kind] = time.AfterFunc(reloadDelay, func() {
		err := rl.store.Reload(kind)
		if err != nil {
			rl.store.logger.Error("reloading messages failed", "kind", kind, "error", err)
			return
		}
		rl.store.logger.Info("messages reloaded", "kind", kind, "count", rl.store.Pool(kind).Len())
	})
}

func (rl *reloader) stop() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for _, t := range rl.timers {
		t.Stop()
	}
}
