package kvstore

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 150 * time.Millisecond

// Watch streams the keys written or removed under the disk store's directory
// until ctx is cancelled. Bursts for the same key are coalesced. Slow
// consumers lose events rather than stall the watcher.
func (d *Disk) Watch(ctx context.Context, logger *slog.Logger) (<-chan string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("kvstore: create watcher: %w", err)
	}
	if err := watcher.Add(d.basePath); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("kvstore: watch %s: %w", d.basePath, err)
	}

	keys := make(chan string, 16)

	go func() {
		defer close(keys)
		defer func() {
			if err := watcher.Close(); err != nil {
				logger.Warn("kvstore watcher close failed", "error", err)
			}
		}()

		var (
			mu      sync.Mutex
			stopped bool
			pending = make(map[string]*time.Timer)
		)
		defer func() {
			mu.Lock()
			stopped = true
			for _, t := range pending {
				t.Stop()
			}
			mu.Unlock()
		}()

		// send holds mu so it cannot race the close of keys
		send := func(key string) {
			mu.Lock()
			defer mu.Unlock()
			delete(pending, key)
			if stopped {
				return
			}
			select {
			case keys <- key:
			default:
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("kvstore watcher error", "error", err)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !evt.Has(fsnotify.Create) && !evt.Has(fsnotify.Write) &&
					!evt.Has(fsnotify.Remove) && !evt.Has(fsnotify.Rename) {
					continue
				}

				key := filepath.Base(evt.Name)
				if strings.HasPrefix(key, ".") {
					continue
				}
				if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
					continue
				}

				mu.Lock()
				if t, found := pending[key]; found {
					t.Reset(watchDebounce)
				} else {
					pending[key] = time.AfterFunc(watchDebounce, func() { send(key) })
				}
				mu.Unlock()
			}
		}
	}()

	return keys, nil
}
