package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sourcegraph/conc/pool"

	"github.com/fernandezgh/kanban/internal/board/repositoryimpl"
	"github.com/fernandezgh/kanban/internal/engine"
	"github.com/fernandezgh/kanban/internal/repl"
	"github.com/fernandezgh/kanban/pkg/storage"
)

// watchDebounceInterval is the delay after an fsnotify event before the board
// is reloaded, so a burst of events triggers one render.
const watchDebounceInterval = 100 * time.Millisecond

// runWatch re-renders the board every time the saved state file changes.
// Useful next to an interactive session in another terminal.
func runWatch(ctx context.Context, eng *engine.Engine, store storage.Storage) error {
	local, ok := store.(*storage.LocalStorage)
	if !ok {
		return fmt.Errorf("watch mode requires local storage")
	}

	statePath := local.Resolve(repositoryimpl.StatePath)
	dir := filepath.Dir(statePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: the atomic temp+rename save replaces
	// the file, and a watch on the old inode would go stale.
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	repl.RenderBoard(os.Stdout, eng.Contents())

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		var pending <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case ev, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if ev.Name != statePath {
					continue
				}
				if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
					continue
				}
				pending = time.After(watchDebounceInterval)
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				slog.Warn("watcher error", "error", err)
			case <-pending:
				pending = nil
				if err := eng.Load(ctx); err != nil {
					slog.Warn("failed to reload board", "error", err)
					continue
				}
				fmt.Fprintln(os.Stdout)
				repl.RenderBoard(os.Stdout, eng.Contents())
			}
		}
	})

	if err := p.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
