package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/jonathan/fairpath/internal/logger"
)

// watchDebounce coalesces the burst of events editors emit on save
const watchDebounce = 250 * time.Millisecond

// Watch reloads cache whenever the catalog file at path is written or replaced.
// It blocks until ctx is cancelled. Reload failures are logged and the previous
// snapshot keeps serving.
func Watch(ctx context.Context, path string, cache *Cache, log *zap.Logger) error {
	log = logger.OrNop(log)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory so atomic rename-into-place is seen.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !shouldReload(event, path) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			fire = timer.C
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("catalog watcher error", zap.Error(err))
		case <-fire:
			fire = nil
			if _, err := cache.Reload(ctx); err != nil {
				log.Warn("catalog reload failed, keeping previous snapshot", zap.String("path", path), zap.Error(err))
				continue
			}
			log.Info("catalog reloaded from file change", zap.String("path", path))
		}
	}
}

// shouldReload reports whether event changes the contents of target.
func shouldReload(event fsnotify.Event, target string) bool {
	if filepath.Clean(event.Name) != filepath.Clean(target) {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
