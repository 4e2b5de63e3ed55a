package policy

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the store whenever the policy file changes on disk. It
// watches the file's directory rather than the file itself, so editors
// and atomic writers that replace the file are still observed. Events are
// debounced by the configured interval before triggering a reload.
//
// Watch returns once the watcher is installed; reloads happen on a
// background goroutine that exits when ctx is done.
func (s *Store) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("policy: watcher: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := w.Add(dir); err != nil {
		w.Close()
		return fmt.Errorf("policy: watch %s: %w", dir, err)
	}

	go s.watchLoop(ctx, w)

	if s.log != nil {
		s.log.Infof("policy watcher started, file=%s debounce=%s", s.path, s.debounce)
	}
	return nil
}

func (s *Store) watchLoop(ctx context.Context, w *fsnotify.Watcher) {
	defer w.Close()

	target := filepath.Clean(s.path)
	var timer *time.Timer
	var debounceCh <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			if s.log != nil {
				s.log.Infof("policy watcher stopped, file=%s", s.path)
			}
			return

		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(s.debounce)
			debounceCh = timer.C

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			if s.log != nil {
				s.log.Warnf("policy watch error: %v", err)
			}

		case <-debounceCh:
			timer = nil
			debounceCh = nil
			// Reload already logs and records failures; the old
			// snapshot stays in place until a good file appears.
			_ = s.Reload()
		}
	}
}
