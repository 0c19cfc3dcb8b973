package core

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchRecord watches the audit record file and invokes callback after each
// external rewrite, debounced. It blocks until the watcher fails or the
// events channel closes. Used by the watch command so a second terminal (or
// another process syncing the store directory) refreshes the summary.
func (s *Session) WatchRecord(recordPath string, ui UICallback, callback func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory too, for when the record file is replaced rather
	// than written in place.
	recordDir := filepath.Dir(recordPath)
	if err := watcher.Add(recordDir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", recordDir, err)
	}
	if _, err := os.Stat(recordPath); err == nil {
		if err := watcher.Add(recordPath); err != nil {
			return fmt.Errorf("failed to watch %s: %w", recordPath, err)
		}
	}

	fmt.Printf("Watching for changes to %s...\n", recordPath)
	fmt.Println("Press Ctrl+C to stop")

	// Debounce rapid changes
	var debounceTimer *time.Timer
	const debounceDelay = 1 * time.Second

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Name != recordPath {
				continue
			}

			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				if debounceTimer != nil {
					debounceTimer.Stop()
				}

				debounceTimer = time.AfterFunc(debounceDelay, func() {
					if _, err := os.Stat(recordPath); err != nil {
						ui.ShowWarning("Record Not Found", "Audit record was deleted or is inaccessible")
						return
					}

					if err := callback(); err != nil {
						ui.ShowError("Refresh Failed", err.Error())
					}
				})
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Warn().Err(err).Msg("watcher error")
		}
	}
}
