package fs

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/cofiy/pkg/core"
)

// Watch reports changes to the canonical document made by any process. The
// channel is closed when ctx is cancelled.
func (r *Repository) Watch(ctx context.Context) (<-chan core.Event, error) {
	return r.WatchBuffered(ctx, 100)
}

// WatchBuffered is Watch with an explicit channel size.
func (r *Repository) WatchBuffered(ctx context.Context, size int) (<-chan core.Event, error) {
	// Claim the slot under one lock so concurrent callers cannot both start.
	r.mu.Lock()
	if r.watcherActive {
		r.mu.Unlock()
		return nil, ErrWatcherActive
	}
	r.watcherActive = true
	r.mu.Unlock()

	events := make(chan core.Event, size)
	w := newWatchWorker(r, events)
	if err := w.Start(ctx); err != nil {
		r.setWatcherActive(false)
		close(events)
		return nil, err
	}
	return events, nil
}

type watchWorker struct {
	repo      *Repository
	events    chan core.Event
	watcher   *fsnotify.Watcher
	debouncer *debouncer
}

func newWatchWorker(repo *Repository, events chan core.Event) *watchWorker {
	return &watchWorker{repo: repo, events: events}
}

func (w *watchWorker) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	// Watching the directory survives the rename done by atomic saves.
	if err := watcher.Add(w.repo.Path); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", w.repo.Path, err)
	}

	w.watcher = watcher
	w.debouncer = newDebouncer(50 * time.Millisecond)

	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		w.repo.handleError(fmt.Errorf("watcher stopped: %w", err))
	}))
	return nil
}

func (w *watchWorker) logger() *slog.Logger {
	return w.repo.config.Logger
}

// relevant filters events down to the canonical document.
func (w *watchWorker) relevant(event fsnotify.Event) bool {
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, TempFilePrefix) {
		return false
	}
	return filepath.Clean(event.Name) == filepath.Clean(w.repo.file)
}

func mapEventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Create):
		return core.EventCreate
	case event.Has(fsnotify.Write):
		return core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	default:
		return ""
	}
}

func (w *watchWorker) send(ctx context.Context, e core.Event) {
	w.debouncer.add(e, func(e core.Event) {
		defer func() {
			// channel closed during shutdown
			_ = recover()
		}()
		select {
		case w.events <- e:
		case <-ctx.Done():
		}
	})
}

func (w *watchWorker) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			panicErr := fmt.Errorf("watcher panic: %v", recovered)
			if w.logger().Enabled(ctx, slog.LevelDebug) {
				w.logger().Error("watcher panic", "error", panicErr, "stack", string(debug.Stack()))
			} else {
				w.logger().Error("watcher panic", "error", panicErr)
			}
			err = panicErr
		}
	}()
	defer close(w.events)
	defer w.repo.setWatcherActive(false)
	defer w.watcher.Close()

	err = w.loop(ctx)
	w.debouncer.stopAndWait(5 * time.Second)
	return err
}

func (w *watchWorker) loop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.logger().Debug("event received", "name", event.Name, "op", event.Op.String())
			if !w.relevant(event) {
				continue
			}
			eType := mapEventType(event)
			if eType == "" {
				continue
			}
			w.repo.cache.Invalidate()
			w.send(ctx, core.Event{Type: eType, Path: event.Name, Timestamp: time.Now().Unix()})

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.repo.handleError(wErr)
		}
	}
}
