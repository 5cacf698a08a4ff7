// Package preset reloads a galaxy preset file whenever it changes on disk.
package preset

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"galaxy/internal/galaxy"
)

// Settle is how long the file must stay quiet before it is re-read. Editors
// often save in several writes.
const Settle = 100 * time.Millisecond

// Loader turns a preset path into the full parameter set, normally the
// defaults, the file, the environment and the flags in that order.
type Loader func(path string) (galaxy.Params, error)

// WatchParams calls apply with every version of path that load accepts,
// until ctx is done. Versions load rejects are logged and skipped, so the
// previous parameters stay in force. It watches the parent directory so
// rename-on-save editors are followed.
func WatchParams(ctx context.Context, path string, load Loader, apply func(galaxy.Params)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch preset: %w", err)
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch preset: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch preset: %w", err)
	}

	timer := time.NewTimer(Settle)
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
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(Settle)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			galaxy.Logger().Warn("preset: watch error", "err", err)
		case <-timer.C:
			p, err := load(abs)
			if err != nil {
				galaxy.Logger().Warn("preset: keeping previous parameters", "path", abs, "err", err)
				continue
			}
			galaxy.Logger().Info("preset: reloaded", "path", abs)
			apply(p)
		}
	}
}
