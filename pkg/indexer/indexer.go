package indexer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/codanna/codanna/pkg/codannaerr"
	"github.com/codanna/codanna/pkg/parser"
	"github.com/codanna/codanna/pkg/registry"
	"github.com/codanna/codanna/pkg/symbol"
	"github.com/codanna/codanna/pkg/types"
)

// SymbolIndexer is the top-level index: an LRU cache of per-file extraction
// results plus the resolved symbol/relationship Graph they feed, ported
// from the teacher's SymbolIndexer (pkg/indexer/indexer.go) and generalized
// from a flat FQN hash map to a Graph that also tracks directed edges.
//
// **Thread Safety:** safe for concurrent IndexContent/RemoveFile/queries; a
// sync.RWMutex guards the file cache and a separate mutex inside Graph
// guards symbol/relationship state.
type SymbolIndexer struct {
	fileCache *lru.Cache[string, *FileSymbols]
	fileIDs   map[string]types.FileId
	filePaths map[types.FileId]string
	nextFileID uint32

	graph     *Graph
	processor *FileProcessor
	counter   *types.SymbolCounter

	mu sync.RWMutex

	dirtyFiles map[string]bool

	indexedFiles   atomic.Int64
	cacheHits      atomic.Int64
	cacheMisses    atomic.Int64
	evictions      atomic.Int64
	totalIndexTime atomic.Int64 // microseconds

	config SymbolIndexerConfig
	logger *slog.Logger
}

// NewSymbolIndexer creates a new symbol indexer wired to reg for language
// dispatch and pm for parsing; root is the workspace root used to compute
// module paths.
func NewSymbolIndexer(config SymbolIndexerConfig, reg *registry.Registry, pm *parser.Manager, root string, logger *slog.Logger) *SymbolIndexer {
	if config.MaxCachedFiles == 0 {
		config.MaxCachedFiles = 1000
	}
	if logger == nil {
		logger = slog.Default()
	}

	counter := types.NewSymbolCounter()
	si := &SymbolIndexer{
		fileIDs:    make(map[string]types.FileId, 1000),
		filePaths:  make(map[types.FileId]string, 1000),
		graph:      NewGraph(logger),
		processor:  NewFileProcessor(reg, pm, counter, root),
		counter:    counter,
		dirtyFiles: make(map[string]bool, 100),
		config:     config,
		logger:     logger,
	}

	cache, err := lru.NewWithEvict(config.MaxCachedFiles, func(key string, value *FileSymbols) {
		si.evictions.Add(1)
		if config.Debug {
			logger.Debug("LRU evicting file", "path", key, "symbols", len(value.Symbols))
		}
	})
	if err != nil {
		panic(fmt.Sprintf("indexer: failed to create LRU cache: %v", err))
	}
	si.fileCache = cache

	logger.Info("SymbolIndexer initialized", "max_cached_files", config.MaxCachedFiles)
	return si
}

// fileIDFor returns the stable FileId for path, allocating one on first
// sight; ids are never reused within the indexer's lifetime (types.FileId
// invariant).
func (si *SymbolIndexer) fileIDFor(path string) types.FileId {
	si.mu.Lock()
	defer si.mu.Unlock()
	if id, ok := si.fileIDs[path]; ok {
		return id
	}
	si.nextFileID++
	id, _ := types.NewFileId(si.nextFileID)
	si.fileIDs[path] = id
	si.filePaths[id] = path
	return id
}

// FilePathFor returns the path a FileId was allocated for, used to resolve
// a symbol's FileID back to a source path for snippet retrieval.
func (si *SymbolIndexer) FilePathFor(id types.FileId) (string, bool) {
	si.mu.RLock()
	defer si.mu.RUnlock()
	path, ok := si.filePaths[id]
	return path, ok
}

// IndexFile reads, parses, and indexes a single file, replacing any
// previous entry for the same path.
func (si *SymbolIndexer) IndexFile(filePath string) (*FileSymbols, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, codannaerr.FileRead(filePath, err)
	}
	return si.IndexContent(filePath, content)
}

// IndexContent indexes already-read file content, skipping the re-parse
// when the content hash matches what's cached (spec §4.C incremental-scan
// discipline).
func (si *SymbolIndexer) IndexContent(filePath string, content []byte) (*FileSymbols, error) {
	start := time.Now()
	defer func() { si.totalIndexTime.Add(time.Since(start).Microseconds()) }()

	hash := ComputeContentHash(content)
	if cached, ok := si.fileCache.Get(filePath); ok && cached.ContentHash == hash {
		si.cacheHits.Add(1)
		si.mu.Lock()
		delete(si.dirtyFiles, filePath)
		si.mu.Unlock()
		return cached, nil
	}
	si.cacheMisses.Add(1)

	fileID := si.fileIDFor(filePath)
	si.RemoveFile(filePath)

	fs, err := si.processor.Process(filePath, content, fileID)
	if err != nil {
		return nil, err
	}
	fs.Timestamp = time.Now().UnixMilli()

	si.graph.AddFile(fs)

	si.mu.Lock()
	evicted := si.fileCache.Add(filePath, fs)
	delete(si.dirtyFiles, filePath)
	si.mu.Unlock()
	_ = evicted

	si.indexedFiles.Add(1)
	if si.config.Debug {
		si.logger.Debug("indexed file", "path", filePath, "symbols", len(fs.Symbols), "imports", len(fs.Imports))
	}
	return fs, nil
}

// ResolvePending retries cross-file relationships that couldn't resolve at
// AddFile time because their target hadn't been indexed yet. Call once
// after a full workspace scan (spec §4.C).
func (si *SymbolIndexer) ResolvePending() int {
	return si.graph.ResolvePending()
}

// GetFileSymbols retrieves the cached extraction result for a file.
func (si *SymbolIndexer) GetFileSymbols(filePath string) (*FileSymbols, bool) {
	fs, ok := si.fileCache.Get(filePath)
	if ok {
		si.cacheHits.Add(1)
	} else {
		si.cacheMisses.Add(1)
	}
	return fs, ok
}

// GetAllFileSymbols returns a snapshot of every cached file.
func (si *SymbolIndexer) GetAllFileSymbols() []*FileSymbols {
	keys := si.fileCache.Keys()
	out := make([]*FileSymbols, 0, len(keys))
	for _, k := range keys {
		if fs, ok := si.fileCache.Peek(k); ok {
			out = append(out, fs)
		}
	}
	return out
}

// Graph exposes the resolved symbol/relationship store for query callers
// (pkg/mcpserver, cmd/codanna).
func (si *SymbolIndexer) Graph() *Graph { return si.graph }

// FindSymbolsByName is a thin convenience wrapper over Graph.FindByName.
func (si *SymbolIndexer) FindSymbolsByName(name string) []*symbol.Symbol {
	return si.graph.FindByName(name)
}

// InvalidateFile marks a file dirty for lazy recomputation without
// removing its current symbols (Salsa-style lazy invalidation, matching
// the teacher's InvalidateFile/IsDirty pair).
func (si *SymbolIndexer) InvalidateFile(filePath string) {
	si.mu.Lock()
	si.dirtyFiles[filePath] = true
	si.mu.Unlock()
}

// IsDirty reports whether a file is marked for recomputation.
func (si *SymbolIndexer) IsDirty(filePath string) bool {
	si.mu.RLock()
	defer si.mu.RUnlock()
	return si.dirtyFiles[filePath]
}

// RemoveFile removes a file and its symbols/edges from the index.
func (si *SymbolIndexer) RemoveFile(filePath string) {
	si.mu.Lock()
	id, ok := si.fileIDs[filePath]
	delete(si.dirtyFiles, filePath)
	si.mu.Unlock()

	if ok {
		si.graph.RemoveFile(id)
	}
	si.fileCache.Remove(filePath)
}

// GetStats returns current indexer statistics.
func (si *SymbolIndexer) GetStats() SymbolIndexerStats {
	symbols, relationships, _ := si.graph.Stats()
	cachedFiles := si.fileCache.Len()

	si.mu.RLock()
	dirtyFiles := len(si.dirtyFiles)
	si.mu.RUnlock()

	hits := si.cacheHits.Load()
	misses := si.cacheMisses.Load()
	total := hits + misses
	hitRate := 0.0
	if total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	totalTime := si.totalIndexTime.Load()
	indexedCount := si.indexedFiles.Load()
	avgTime := 0.0
	if indexedCount > 0 {
		avgTime = float64(totalTime) / float64(indexedCount) / 1000.0
	}

	memoryEstimate := int64(symbols)*200 + int64(cachedFiles)*500*1024

	return SymbolIndexerStats{
		IndexedFiles:        int(indexedCount),
		TotalSymbols:        symbols,
		TotalRelationships:  relationships,
		CachedFiles:         cachedFiles,
		DirtyFiles:          dirtyFiles,
		CacheHits:           hits,
		CacheMisses:         misses,
		CacheHitRate:        hitRate,
		Evictions:           si.evictions.Load(),
		MemoryEstimateBytes: memoryEstimate,
		AverageIndexTimeMs:  avgTime,
	}
}

// ComputeContentHash computes the SHA-256 hash of file content.
func ComputeContentHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// Close releases indexer resources. The indexer cannot be used afterward.
func (si *SymbolIndexer) Close() {
	si.fileCache.Purge()
	si.mu.Lock()
	si.dirtyFiles = nil
	si.mu.Unlock()
	si.logger.Info("SymbolIndexer closed")
}
