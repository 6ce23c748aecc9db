package commands

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce groups bursts of events (editor save, git checkout) into one run.
const watchDebounce = 100 * time.Millisecond

// watchExtensions are the file types whose changes trigger a re-lint.
var watchExtensions = map[string]bool{".rb": true, ".yaml": true, ".yml": true, ".json": true}

// watchAndLint calls relint after each debounced batch of changes under
// paths until ctx is canceled. relint runs on the calling goroutine.
func watchAndLint(ctx context.Context, paths []string, logger *slog.Logger, relint func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		if err := watchPath(watcher, p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
	}
	logger.Info("watching for changes", "paths", paths)

	// Debounce timer
	var debounceTimer *time.Timer
	changed := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watchDirRecursive(watcher, event.Name); err != nil {
						logger.Warn("failed to watch new directory", "dir", event.Name, "error", err)
					}
					continue
				}
			}
			if !watchExtensions[filepath.Ext(event.Name)] {
				continue
			}

			// Debounce
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			name := event.Name
			debounceTimer = time.AfterFunc(watchDebounce, func() {
				logger.Debug("file changed, re-linting", "file", name)
				select {
				case changed <- struct{}{}:
				default:
				}
			})

		case <-changed:
			relint()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "error", err)
		}
	}
}

// watchPath watches a directory tree, or the directory holding a file.
func watchPath(watcher *fsnotify.Watcher, p string) error {
	info, err := os.Stat(p)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return watcher.Add(filepath.Dir(p))
	}
	return watchDirRecursive(watcher, p)
}

// watchDirRecursive adds a directory and all non-hidden subdirectories to the watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
