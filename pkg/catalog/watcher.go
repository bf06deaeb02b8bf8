package catalog

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 500 * time.Millisecond

// ReloadFunc receives the fresh result after the watched tree settles.
type ReloadFunc func(*Result)

// WatchOptions tunes catalog watching.
type WatchOptions struct {
	// Debounce is how long to wait for further changes before reloading.
	// Zero selects the default of 500ms.
	Debounce time.Duration
}

// Watch blocks, reloading the catalog whenever documents under root
// change and handing each fresh result to onReload. It returns when the
// context is cancelled or the underlying watcher fails. The initial load
// is delivered before the first filesystem event.
func (c *Catalog) Watch(ctx context.Context, root string, opts WatchOptions, onReload ReloadFunc) error {
	if onReload == nil {
		return fmt.Errorf("catalog: reload callback is required")
	}
	c.applyDefaults()

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	result, err := c.Load(ctx, root)
	if err != nil {
		return err
	}
	onReload(result)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("catalog: create watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	if err := addTree(watcher, root); err != nil {
		return err
	}

	// A nil-channel timer pattern: the timer only ticks while changes are
	// pending.
	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending int
	)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !c.relevantEvent(event) {
				continue
			}
			// New directories must be registered or their contents are
			// invisible to the watcher.
			if event.Op.Has(fsnotify.Create) {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					_ = addTree(watcher, event.Name)
				}
			}
			pending++
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounce)
			}

		case <-timerC:
			c.logger.Debug("catalog reload", zap.Int("events", pending))
			pending = 0
			timer = nil
			timerC = nil

			result, err := c.Load(ctx, root)
			if err != nil {
				// The root disappearing mid-watch is fatal for the load
				// but not for the watch; the next event retries.
				c.logger.Warn("catalog reload failed", zap.Error(err))
				continue
			}
			onReload(result)

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.logger.Warn("catalog watch error", zap.Error(watchErr))
		}
	}
}

// relevantEvent filters noise: only create/write/remove/rename of
// directories or documents with a matching extension trigger a reload.
func (c *Catalog) relevantEvent(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(event.Name))
	if ext == "" {
		// Probably a directory; stat may no longer be possible after a
		// remove, so err on the side of reloading.
		return true
	}
	for _, candidate := range c.extensions {
		if ext == candidate {
			return true
		}
	}
	return false
}

// addTree registers root and every subdirectory with the watcher.
func addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if isHiddenDir(path) && path != root {
			return fs.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("catalog: watch %s: %w", path, err)
		}
		return nil
	})
}
