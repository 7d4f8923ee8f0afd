package respfile

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/tycho-core/console-app/pkg/logging"
)

// DefaultDebounce coalesces the bursts of events editors produce on save.
const DefaultDebounce = 100 * time.Millisecond

// Watch reads the response file at path and passes its tokens to onChange,
// then again after every change to the file, until ctx is done. Read
// failures are passed to onChange as well; a file that is removed and later
// recreated is picked up again.
//
// The parent directory is watched rather than the file, since editors
// commonly save by renaming a new file over the old one.
func Watch(ctx context.Context, path string, debounce time.Duration, onChange func(tokens []string, err error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			logging.Warn("ResponseFile", "closing watcher: %v", err)
		}
	}()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}
	logging.Debug("ResponseFile", "Watching %s", abs)

	onChange(ReadFile(abs))

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			logging.Debug("ResponseFile", "%s: %s", event.Op, event.Name)
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			onChange(ReadFile(abs))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Error("ResponseFile", err, "Watcher error")
		}
	}
}
