package ml

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"resumetric/internal/errors"
)

// ModelWatcher watches the model artifact file and reloads the predictor when
// it changes. Editors and deploy tooling often replace files via rename, so
// the artifact's directory is watched alongside the file itself.
type ModelWatcher struct {
	mu sync.Mutex

	path        string
	lastModTime time.Time

	fsWatcher     *fsnotify.Watcher
	debounceDelay time.Duration
	debounceTimer *time.Timer

	stopChan   chan struct{}
	reloadChan chan struct{}

	predictor *Predictor
	logger    *errors.Logger

	running bool
}

// NewModelWatcher creates a watcher for the predictor's artifact file.
func NewModelWatcher(path string, debounceDelay time.Duration, predictor *Predictor, logger *errors.Logger) *ModelWatcher {
	if debounceDelay == 0 {
		debounceDelay = time.Second
	}

	return &ModelWatcher{
		path:          path,
		debounceDelay: debounceDelay,
		stopChan:      make(chan struct{}),
		reloadChan:    make(chan struct{}, 1), // Buffered to prevent blocking
		predictor:     predictor,
		logger:        logger,
	}
}

// Start begins watching the artifact file for changes
func (mw *ModelWatcher) Start() error {
	mw.mu.Lock()
	defer mw.mu.Unlock()

	if mw.running {
		return fmt.Errorf("model watcher is already running")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	mw.fsWatcher = watcher

	if stat, err := os.Stat(mw.path); err == nil {
		mw.lastModTime = stat.ModTime()
	}

	if err := mw.fsWatcher.Add(mw.path); err != nil && !os.IsNotExist(err) {
		mw.cleanupWatcher()
		return fmt.Errorf("failed to watch model artifact %s: %w", mw.path, err)
	}

	// Watch the directory too, to catch atomic writes (rename operations)
	dir := filepath.Dir(mw.path)
	if err := mw.fsWatcher.Add(dir); err != nil {
		mw.cleanupWatcher()
		return fmt.Errorf("failed to watch model directory %s: %w", dir, err)
	}

	mw.running = true
	go mw.watchLoop()

	if mw.logger != nil {
		mw.logger.Info("Model artifact watcher started",
			"path", mw.path,
			"debounce_delay", mw.debounceDelay)
	}
	return nil
}

// Stop stops the model artifact watcher
func (mw *ModelWatcher) Stop() error {
	mw.mu.Lock()
	defer mw.mu.Unlock()

	if !mw.running {
		return nil
	}

	close(mw.stopChan)

	if mw.debounceTimer != nil {
		mw.debounceTimer.Stop()
	}

	if mw.fsWatcher != nil {
		if err := mw.fsWatcher.Close(); err != nil {
			if mw.logger != nil {
				mw.logger.LogError(err, "Failed to close file system watcher")
			}
			return err
		}
	}

	mw.running = false

	if mw.logger != nil {
		mw.logger.Info("Model artifact watcher stopped")
	}
	return nil
}

func (mw *ModelWatcher) cleanupWatcher() {
	if mw.fsWatcher != nil {
		if closeErr := mw.fsWatcher.Close(); closeErr != nil && mw.logger != nil {
			mw.logger.LogError(closeErr, "Failed to close file watcher during cleanup")
		}
	}
}

// watchLoop is the main event loop for file watching
func (mw *ModelWatcher) watchLoop() {
	for {
		select {
		case event, ok := <-mw.fsWatcher.Events:
			if !ok {
				return
			}
			if mw.shouldProcessEvent(event) {
				mw.scheduleReload()
			}

		case err, ok := <-mw.fsWatcher.Errors:
			if !ok {
				return
			}
			if mw.logger != nil {
				mw.logger.LogError(err, "File watcher error")
			}

		case <-mw.reloadChan:
			// Debounced reload trigger
			if mw.hasFileChanged() {
				mw.reload()
			}

		case <-mw.stopChan:
			return
		}
	}
}

// shouldProcessEvent filters events down to changes of the artifact file
func (mw *ModelWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Name != mw.path && filepath.Base(event.Name) != filepath.Base(mw.path) {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// hasFileChanged checks if the artifact has been modified since last check
func (mw *ModelWatcher) hasFileChanged() bool {
	stat, err := os.Stat(mw.path)
	if err != nil {
		return false
	}

	mw.mu.Lock()
	defer mw.mu.Unlock()

	if stat.ModTime().After(mw.lastModTime) {
		mw.lastModTime = stat.ModTime()
		return true
	}
	return false
}

// reload swaps in the new artifact. A bad artifact is logged and the previous
// one stays active, so a half-written deploy never takes down scoring.
func (mw *ModelWatcher) reload() {
	if err := mw.predictor.Reload(); err != nil {
		if mw.logger != nil {
			mw.logger.LogError(err, "Model artifact reload failed, keeping previous model",
				"path", mw.path)
		}
		return
	}
}

// scheduleReload schedules a debounced reload
func (mw *ModelWatcher) scheduleReload() {
	mw.mu.Lock()
	defer mw.mu.Unlock()

	if mw.debounceTimer != nil {
		mw.debounceTimer.Stop()
	}

	mw.debounceTimer = time.AfterFunc(mw.debounceDelay, func() {
		select {
		case mw.reloadChan <- struct{}{}:
		default:
			// A reload is already pending
		}
	})
}
