package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// CanvasWatcher watches the canvas YAML file and reloads it on change.
// A reload that fails to parse or fails schema integrity keeps the
// current canvas; the editor never sees a broken schema.
type CanvasWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	current  *CanvasConfig
	mu       sync.RWMutex
	onChange []func(*CanvasConfig)
	logger   *zap.Logger
	stopCh   chan struct{}
}

// NewCanvasWatcher loads the canvas file and sets up the file watcher
func NewCanvasWatcher(canvasPath string, logger *zap.Logger) (*CanvasWatcher, error) {
	canvas, err := LoadCanvas(canvasPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load initial canvas: %w", err)
	}

	// Reject a canvas whose schema would not load before watching it
	if _, err := canvas.BuildRegistry(); err != nil {
		return nil, fmt.Errorf("initial canvas schema invalid: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := watcher.Add(canvasPath); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch canvas file: %w", err)
	}

	// Also watch the directory for atomic saves (rename operations)
	dir := filepath.Dir(canvasPath)
	if err := watcher.Add(dir); err != nil {
		logger.Warn("Failed to watch canvas directory", zap.Error(err))
	}

	return &CanvasWatcher{
		path:     canvasPath,
		watcher:  watcher,
		current:  canvas,
		onChange: make([]func(*CanvasConfig), 0),
		logger:   logger,
		stopCh:   make(chan struct{}),
	}, nil
}

// Start begins watching for canvas changes
func (w *CanvasWatcher) Start() {
	go w.watchLoop()
	w.logger.Info("Canvas watcher started", zap.String("path", w.path))
}

// Stop stops watching for canvas changes
func (w *CanvasWatcher) Stop() {
	close(w.stopCh)
	w.watcher.Close()
	w.logger.Info("Canvas watcher stopped")
}

// OnChange registers a callback for canvas reloads
func (w *CanvasWatcher) OnChange(handler func(*CanvasConfig)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = append(w.onChange, handler)
}

// GetCurrent returns the current canvas configuration
func (w *CanvasWatcher) GetCurrent() *CanvasConfig {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// watchLoop is the main loop that watches for file changes
func (w *CanvasWatcher) watchLoop() {
	// Debounce timer to avoid multiple reloads on editor save patterns
	var debounceTimer *time.Timer
	debounceDuration := 100 * time.Millisecond

	for {
		select {
		case <-w.stopCh:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounceDuration, func() {
					w.handleCanvasChange()
				})
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("File watcher error", zap.Error(err))
		}
	}
}

// handleCanvasChange reloads and validates the canvas file
func (w *CanvasWatcher) handleCanvasChange() {
	w.logger.Info("Canvas file changed, reloading", zap.String("path", w.path))

	newCanvas, err := LoadCanvas(w.path)
	if err != nil {
		w.logger.Error("Failed to reload canvas, keeping current", zap.Error(err))
		return
	}

	// A canvas that cannot produce a registry never replaces the current one
	if _, err := newCanvas.BuildRegistry(); err != nil {
		w.logger.Error("Reloaded canvas schema invalid, keeping current", zap.Error(err))
		return
	}

	w.mu.Lock()
	w.current = newCanvas
	handlers := make([]func(*CanvasConfig), len(w.onChange))
	copy(handlers, w.onChange)
	w.mu.Unlock()

	for _, handler := range handlers {
		go handler(newCanvas)
	}

	w.logger.Info("Canvas reloaded",
		zap.Int("templates", len(newCanvas.Templates)),
		zap.Int("groups", len(newCanvas.Groups)))
}
