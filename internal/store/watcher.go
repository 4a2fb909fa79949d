package store

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher watches the preferences file and reloads the store when
// another process rewrites it.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	kv      *FileKV
	logger  *slog.Logger
	done    chan struct{}
	stopped chan struct{}
	mu      sync.Mutex
	running bool
}

// NewFileWatcher creates a watcher for kv's backing file.
func NewFileWatcher(kv *FileKV, logger *slog.Logger) (*FileWatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &FileWatcher{
		watcher: watcher,
		kv:      kv,
		logger:  logger,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}, nil
}

// Start begins watching. The directory is watched rather than the file so
// atomic rename-into-place writes are seen.
func (fw *FileWatcher) Start() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.running {
		return nil
	}

	if err := fw.watcher.Add(filepath.Dir(fw.kv.Path())); err != nil {
		return err
	}
	fw.running = true

	go fw.watch()
	return nil
}

// watch is the main watch loop.
func (fw *FileWatcher) watch() {
	defer close(fw.stopped)
	filename := filepath.Base(fw.kv.Path())

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != filename {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				changed, err := fw.kv.Reload()
				if err != nil {
					fw.logger.Warn("failed to reload preferences", "path", fw.kv.Path(), "error", err)
					continue
				}
				if changed {
					fw.logger.Debug("preferences changed on disk", "path", fw.kv.Path())
				}
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("preferences watcher error", "error", err)

		case <-fw.done:
			return
		}
	}
}

// Stop stops the watcher and waits for the loop to exit.
func (fw *FileWatcher) Stop() error {
	fw.mu.Lock()
	if !fw.running {
		fw.mu.Unlock()
		return fw.watcher.Close()
	}
	fw.running = false
	close(fw.done)
	fw.mu.Unlock()

	err := fw.watcher.Close()
	<-fw.stopped
	return err
}
