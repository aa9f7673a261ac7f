package indexer

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"

	"github.com/codanna/codanna/pkg/registry"
	"github.com/codanna/codanna/pkg/util"
)

// WorkspaceScanner scans and indexes entire workspaces in parallel across
// every language the registry has enabled, generalizing the teacher's
// TypeScript/JavaScript-only WorkspaceScanner (pkg/indexer/scanner.go).
type WorkspaceScanner struct {
	indexer  *SymbolIndexer
	registry *registry.Registry
	checker  registry.EnabledChecker
	logger   *slog.Logger
}

// NewWorkspaceScanner creates a new workspace scanner.
func NewWorkspaceScanner(reg *registry.Registry, checker registry.EnabledChecker, indexer *SymbolIndexer, logger *slog.Logger) *WorkspaceScanner {
	return &WorkspaceScanner{indexer: indexer, registry: reg, checker: checker, logger: logger}
}

// ScanWorkspace scans an entire workspace and indexes every matching file,
// then resolves any relationship edges that referenced a symbol in a file
// scanned later (spec §4.C).
func (ws *WorkspaceScanner) ScanWorkspace(rootPath string, options ScanOptions, progressCallback ProgressCallback) (*ScanStats, error) {
	startTime := time.Now()
	stats := &ScanStats{ScanID: uuid.NewString(), StartTime: startTime, Errors: make([]FileError, 0)}

	ws.logger.Info("starting workspace scan", "scan_id", stats.ScanID, "root", rootPath)

	if len(options.Include) == 0 {
		exts := ws.registry.EnabledExtensions(ws.checker)
		options.Include = make([]string, 0, len(exts))
		for _, ext := range exts {
			options.Include = append(options.Include, "**/*."+ext)
		}
	}

	discoveryStart := time.Now()
	files, err := ws.discoverFiles(rootPath, options)
	if err != nil {
		return nil, fmt.Errorf("file discovery failed: %w", err)
	}
	stats.FilesDiscovered = len(files)
	stats.DiscoveryTimeMs = time.Since(discoveryStart).Milliseconds()

	ws.logger.Info("file discovery complete", "files_found", len(files), "duration_ms", stats.DiscoveryTimeMs)

	if len(files) == 0 {
		stats.EndTime = time.Now()
		stats.TotalTimeMs = time.Since(startTime).Milliseconds()
		return stats, nil
	}

	indexingStart := time.Now()
	if err := ws.processFilesParallel(files, stats, progressCallback); err != nil {
		return nil, fmt.Errorf("file processing failed: %w", err)
	}
	stats.IndexingTimeMs = time.Since(indexingStart).Milliseconds()

	resolved := ws.indexer.ResolvePending()
	ws.logger.Info("resolved pending cross-file relationships", "count", resolved)

	stats.EndTime = time.Now()
	stats.TotalTimeMs = time.Since(startTime).Milliseconds()

	if stats.FilesIndexed > 0 {
		stats.AverageFileTimeMs = float64(stats.IndexingTimeMs) / float64(stats.FilesIndexed)
		stats.FilesPerSecond = float64(stats.FilesIndexed) / (float64(stats.IndexingTimeMs) / 1000.0)
	}
	if stats.FilesDiscovered > 0 {
		stats.SuccessRate = float64(stats.FilesIndexed) / float64(stats.FilesDiscovered)
	}

	ws.logger.Info("workspace scan complete",
		"files_indexed", stats.FilesIndexed,
		"files_failed", stats.FilesFailed,
		"symbols_extracted", stats.SymbolsExtracted,
		"duration_ms", stats.TotalTimeMs)

	return stats, nil
}

func (ws *WorkspaceScanner) discoverFiles(rootPath string, options ScanOptions) ([]string, error) {
	var files []string

	for _, pattern := range options.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern: %s", pattern)
		}
	}
	for _, pattern := range options.Include {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid include pattern: %s", pattern)
		}
	}

	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			ws.logger.Warn("walk error", "path", path, "error", err)
			return nil
		}

		relPath, err := filepath.Rel(rootPath, path)
		if err != nil {
			relPath = path
		}
		relPath = filepath.ToSlash(relPath)

		for _, pattern := range options.Exclude {
			if matched, _ := doublestar.PathMatch(pattern, relPath); matched {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if d.IsDir() {
			return nil
		}

		if len(options.Include) > 0 {
			matched := false
			for _, pattern := range options.Include {
				if m, _ := doublestar.PathMatch(pattern, relPath); m {
					matched = true
					break
				}
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (ws *WorkspaceScanner) processFilesParallel(files []string, stats *ScanStats, progressCallback ProgressCallback) error {
	totalFiles := len(files)

	numWorkers := util.GetOptimalPoolSize()
	stats.WorkerCount = numWorkers

	pool := NewWorkerPool(numWorkers, ws.indexer, ws.logger)
	pool.Start()
	defer pool.Stop()

	indexed := atomic.Int32{}
	failed := atomic.Int32{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return

			case result, ok := <-pool.Results():
				if !ok {
					return
				}
				stats.SymbolsExtracted += len(result.Symbols.Symbols)
				stats.ImportsExtracted += len(result.Symbols.Imports)
				stats.RelationshipsExtracted += len(result.Symbols.Relationships)
				stats.FilesIndexed++

				count := indexed.Add(1)
				if progressCallback != nil {
					progressCallback(int(count), totalFiles, result.FilePath)
				}
				if int(count)+int(failed.Load()) >= totalFiles {
					cancel()
					return
				}

			case fileErr, ok := <-pool.Errors():
				if !ok {
					return
				}
				stats.Errors = append(stats.Errors, fileErr)
				stats.FilesFailed++
				ws.logger.Warn("file processing failed", "file", fileErr.FilePath, "error", fileErr.Error)

				count := failed.Add(1)
				if int(indexed.Load())+int(count) >= totalFiles {
					cancel()
					return
				}
			}
		}
	}()

	for i, file := range files {
		if err := pool.Submit(FileJob{FilePath: file, JobID: i}); err != nil {
			return fmt.Errorf("failed to submit job for %s: %w", file, err)
		}
	}

	pool.FinishSubmitting()
	<-done

	return nil
}

// GetIndexer returns the internal symbol indexer.
func (ws *WorkspaceScanner) GetIndexer() *SymbolIndexer { return ws.indexer }
