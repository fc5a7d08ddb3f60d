package shaders

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jhenstridge/go-inotify"
)

// Watch calls onChange with the path of any of the given shader files that
// is closed after writing or replaced, until ctx is cancelled.
func Watch(ctx context.Context, paths []string, onChange func(path string)) error {
	watcher, err := inotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not start inotify watcher: %w", err)
	}

	for _, path := range paths {
		_, err = watcher.Watch(path)
		if err != nil {
			_ = watcher.Close()
			return fmt.Errorf("could not watch %s: %w", path, err)
		}
	}

	go func() {
		<-ctx.Done()
		err := watcher.Close()
		if err != nil {
			logError("could not close inotify watcher: %s", err)
		}
	}()

	go func() {
		for ev := range watcher.Event {
			if ev.Watch == nil {
				continue
			}
			path := ev.Watch.Path

			switch {
			case ev.Mask&inotify.IN_CLOSE_WRITE != 0:
				slog.Debug(fmt.Sprintf("%s changed", path), slog.String("module", "shaders"))
				// editors sometimes write in more than one go
				time.Sleep(100 * time.Millisecond)
				onChange(path)
			case ev.Mask&inotify.IN_IGNORED != 0:
				// the file was replaced, e.g. renamed over by an editor
				time.Sleep(100 * time.Millisecond)
				if ctx.Err() != nil {
					return
				}
				_, err := watcher.Watch(path)
				if err != nil {
					logError("stopped watching %s: %s", path, err)
					continue
				}
				slog.Debug(fmt.Sprintf("%s replaced", path), slog.String("module", "shaders"))
				onChange(path)
			}
		}
	}()

	return nil
}
