package indexer

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/codanna/codanna/pkg/registry"
)

// FileWatcher watches for file system changes and re-indexes files
// incrementally, debouncing rapid successive writes to the same path
// (ported from the teacher's FileWatcher, pkg/indexer/watcher.go,
// generalized to dispatch through the registry instead of a fixed
// TypeScript/JavaScript extension check).
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	indexer  *SymbolIndexer
	registry *registry.Registry
	checker  registry.EnabledChecker
	logger   *slog.Logger
	options  WatchOptions

	debounceTimers map[string]*time.Timer
	debounceMu     sync.Mutex

	stopChan chan struct{}
	stopped  bool
	mu       sync.Mutex
}

// NewFileWatcher creates a new file watcher.
func NewFileWatcher(indexer *SymbolIndexer, reg *registry.Registry, checker registry.EnabledChecker, options WatchOptions, logger *slog.Logger) *FileWatcher {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		panic(fmt.Sprintf("failed to create file watcher: %v", err))
	}
	if options.DebounceMs == 0 {
		options.DebounceMs = 200
	}
	return &FileWatcher{
		watcher:        watcher,
		indexer:        indexer,
		registry:       reg,
		checker:        checker,
		logger:         logger,
		options:        options,
		debounceTimers: make(map[string]*time.Timer),
		stopChan:       make(chan struct{}),
	}
}

// Start begins watching the specified directory tree in a background
// goroutine.
func (fw *FileWatcher) Start(rootPath string) error {
	fw.mu.Lock()
	if fw.stopped {
		fw.mu.Unlock()
		return fmt.Errorf("watcher already stopped")
	}
	fw.mu.Unlock()

	if err := fw.watcher.Add(rootPath); err != nil {
		return fmt.Errorf("failed to watch %s: %w", rootPath, err)
	}

	err := filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if fw.shouldIgnore(path) {
				return filepath.SkipDir
			}
			if err := fw.watcher.Add(path); err != nil {
				fw.logger.Warn("failed to watch directory", "path", path, "error", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to setup watches: %w", err)
	}

	fw.logger.Info("file watcher started", "root", rootPath)
	go fw.eventLoop()
	return nil
}

// Stop stops the file watcher. Idempotent.
func (fw *FileWatcher) Stop() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.stopped {
		return nil
	}
	fw.stopped = true
	close(fw.stopChan)

	fw.debounceMu.Lock()
	for _, timer := range fw.debounceTimers {
		timer.Stop()
	}
	fw.debounceTimers = make(map[string]*time.Timer)
	fw.debounceMu.Unlock()

	err := fw.watcher.Close()
	fw.logger.Info("file watcher stopped")
	return err
}

func (fw *FileWatcher) eventLoop() {
	for {
		select {
		case <-fw.stopChan:
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handleEvent(event)
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Error("file watcher error", "error", err)
		}
	}
}

func (fw *FileWatcher) handleEvent(event fsnotify.Event) {
	filePath := event.Name
	if fw.shouldIgnore(filePath) {
		return
	}
	if !fw.isSupported(filePath) {
		return
	}

	fw.logger.Debug("file event", "op", event.Op.String(), "file", filePath)

	switch {
	case event.Op&fsnotify.Write == fsnotify.Write:
		fw.debounceReindex(filePath)
	case event.Op&fsnotify.Create == fsnotify.Create:
		fw.debounceReindex(filePath)
	case event.Op&fsnotify.Remove == fsnotify.Remove:
		fw.removeFile(filePath)
	case event.Op&fsnotify.Rename == fsnotify.Rename:
		fw.removeFile(filePath)
	}
}

func (fw *FileWatcher) isSupported(filePath string) bool {
	ext := strings.TrimPrefix(filepath.Ext(filePath), ".")
	if ext == "" {
		return false
	}
	def, err := fw.registry.GetByExtension(ext)
	if err != nil {
		return false
	}
	return fw.registry.IsEnabled(def.ID, fw.checker)
}

func (fw *FileWatcher) debounceReindex(filePath string) {
	fw.debounceMu.Lock()
	defer fw.debounceMu.Unlock()

	if timer, exists := fw.debounceTimers[filePath]; exists {
		timer.Stop()
	}
	fw.debounceTimers[filePath] = time.AfterFunc(
		time.Duration(fw.options.DebounceMs)*time.Millisecond,
		func() {
			fw.reindexFile(filePath)
			fw.debounceMu.Lock()
			delete(fw.debounceTimers, filePath)
			fw.debounceMu.Unlock()
		},
	)
}

func (fw *FileWatcher) reindexFile(filePath string) {
	fw.logger.Debug("reindexing file", "file", filePath)
	fw.indexer.InvalidateFile(filePath)

	fs, err := fw.indexer.IndexFile(filePath)
	if err != nil {
		fw.logger.Warn("failed to reindex file", "file", filePath, "error", err)
		return
	}
	fw.indexer.ResolvePending()

	fw.logger.Debug("file reindexed", "file", filePath, "symbols", len(fs.Symbols), "imports", len(fs.Imports))
}

func (fw *FileWatcher) removeFile(filePath string) {
	fw.logger.Debug("removing file from index", "file", filePath)
	fw.indexer.RemoveFile(filePath)
}

func (fw *FileWatcher) shouldIgnore(path string) bool {
	for _, pattern := range fw.options.IgnorePatterns {
		if matched, _ := filepath.Match(pattern, filepath.Base(path)); matched {
			return true
		}
	}
	base := filepath.Base(path)
	switch base {
	case "node_modules", ".git", "dist", "build", ".next", "target", "vendor", "obj", "bin", ".codanna":
		return true
	}
	return false
}

// GetStats returns file watcher statistics.
func (fw *FileWatcher) GetStats() FileWatcherStats {
	fw.debounceMu.Lock()
	pending := len(fw.debounceTimers)
	fw.debounceMu.Unlock()

	return FileWatcherStats{PendingReindexes: pending, IsRunning: !fw.stopped}
}
