// Package watch maps filesystem change events onto item staleness.
//
// A Watcher observes the directories containing the discovered items;
// when a known item is written, its modification time is advanced and
// its staleness cache is invalidated, so the next incremental engine
// pass re-runs every inspector for it.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vk/tagscan/internal/ctxlog"
	"github.com/vk/tagscan/internal/item"
)

// Watcher invalidates items when their backing files change.
type Watcher struct {
	fsw   *fsnotify.Watcher
	items map[string]*item.Item
}

// New creates a watcher over the given items. fsnotify watches
// directories, not files, so each item's parent directory is added
// once.
func New(items []*item.Item) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create filesystem watcher: %w", err)
	}

	w := &Watcher{
		fsw:   fsw,
		items: make(map[string]*item.Item, len(items)),
	}
	dirs := make(map[string]struct{})
	for _, it := range items {
		abs, err := filepath.Abs(it.Path())
		if err != nil {
			continue
		}
		w.items[abs] = it
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
	}
	return w, nil
}

// Changed returns a channel of items invalidated by filesystem events.
// The channel closes when ctx is done or the underlying watcher stops.
func (w *Watcher) Changed(ctx context.Context) <-chan *item.Item {
	logger := ctxlog.FromContext(ctx)
	out := make(chan *item.Item)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.fsw.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				abs, err := filepath.Abs(event.Name)
				if err != nil {
					continue
				}
				it, known := w.items[abs]
				if !known {
					continue
				}
				logger.Debug("Item changed on disk.", "item", it.ID(), "op", event.Op.String())
				it.Invalidate(time.Now())
				select {
				case out <- it:
				case <-ctx.Done():
					return
				}
			case err, ok := <-w.fsw.Errors:
				if !ok {
					return
				}
				logger.Warn("Filesystem watcher error.", "error", err)
			}
		}
	}()
	return out
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
