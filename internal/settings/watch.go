package settings

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/modhooks/internal/log"
)

// DefaultDebounce coalesces bursts of events from a single save.
const DefaultDebounce = 100 * time.Millisecond

// Watch reloads the settings whenever the file changes on disk and passes
// the result to fn. It watches the parent directory so that the rename
// performed by Save is seen. Watch blocks until ctx is done.
func (s *Store) Watch(ctx context.Context, fn func(GlobalSettings)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	dir := filepath.Dir(s.path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	target := filepath.Clean(s.path)

	timer := time.NewTimer(DefaultDebounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			timer.Reset(DefaultDebounce)

		case <-timer.C:
			fn(s.Load())

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.sink.Fault(log.FaultSerialization, "settings watcher", err, "path", s.path)
		}
	}
}
