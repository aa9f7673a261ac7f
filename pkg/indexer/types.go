package indexer

import (
	"time"

	"github.com/codanna/codanna/pkg/symbol"
	"github.com/codanna/codanna/pkg/types"
)

// FileSymbols contains all extracted data for a single file: the unit of
// caching in the SymbolIndexer (spec §4.B/§4.C, one parse per file feeding
// both the symbol and import query).
type FileSymbols struct {
	FilePath string
	FileID   types.FileId

	// LanguageID is the grammar.ID string this file was parsed as.
	LanguageID string

	Symbols       []*symbol.Symbol
	Imports       []symbol.Import
	Relationships []symbol.UnresolvedRelationship

	// VariableTypes records the declared/annotated type of each variable or
	// field the parser could extract one for (spec §4.D, find_variable_types).
	VariableTypes []symbol.VariableType

	// ExternalImportNames lists the local binding names (aliases, or bare
	// names for unaliased imports) this file's imports classified as
	// external, per resolve.Scope.ExternalBindingNames (spec §4.F,
	// "Import-origin discipline"). The Graph consults these before letting
	// a same-named local symbol resolve a call/use edge meant for one of
	// these bindings.
	ExternalImportNames []string

	// Timestamp when the file was indexed (Unix milliseconds).
	Timestamp int64

	// ContentHash is the SHA-256 hash of file content, used both for LRU
	// identity and for project.Index-style change detection.
	ContentHash string
}

// SymbolIndexerConfig configures the symbol indexer behavior.
type SymbolIndexerConfig struct {
	// MaxCachedFiles is the maximum number of files to keep in the LRU cache.
	MaxCachedFiles int

	Debug bool
}

// DefaultSymbolIndexerConfig returns the default configuration.
func DefaultSymbolIndexerConfig() SymbolIndexerConfig {
	return SymbolIndexerConfig{MaxCachedFiles: 1000, Debug: false}
}

// SymbolIndexerStats provides statistics about the indexer state.
type SymbolIndexerStats struct {
	IndexedFiles        int
	TotalSymbols        int
	TotalRelationships  int
	CachedFiles         int
	DirtyFiles          int
	CacheHits           int64
	CacheMisses         int64
	CacheHitRate        float64
	Evictions           int64
	MemoryEstimateBytes int64
	AverageIndexTimeMs  float64
}

// ScanOptions configures workspace scanning behavior.
type ScanOptions struct {
	// Include patterns (glob syntax, e.g. "**/*.go"). If empty, the
	// scanner falls back to every extension the registry has enabled.
	Include []string

	Exclude          []string
	RespectGitignore bool
	MaxDepth         int
	FollowSymlinks   bool
}

// DefaultExcludes lists directories every scan skips regardless of options,
// matching the teacher's DefaultScanOptions exclusions generalized beyond
// the Node/TS toolchain to the full language set's build directories.
var DefaultExcludes = []string{
	"node_modules/**",
	".git/**",
	"dist/**",
	"build/**",
	"target/**",
	"vendor/**",
	"bin/**",
	"obj/**",
	".codanna/**",
	".vscode/**",
	"coverage/**",
	"out/**",
	".next/**",
}

// DefaultScanOptions returns recommended scan options. Include is left
// empty: ScanWorkspace fills it from the registry's enabled extensions so
// adding a language never requires touching this default.
func DefaultScanOptions() ScanOptions {
	return ScanOptions{
		Exclude:          DefaultExcludes,
		RespectGitignore: true,
		MaxDepth:         0,
		FollowSymlinks:   false,
	}
}

// ScanStats contains statistics about a workspace scan.
type ScanStats struct {
	// ScanID uniquely identifies this scan run, for correlating log lines
	// and progress events across a long-running index (spec §5: concurrent
	// scans of different workspaces must not be confused in shared logs).
	ScanID string

	FilesDiscovered  int
	FilesIndexed     int
	FilesFailed      int
	FilesSkipped     int
	SymbolsExtracted int
	ImportsExtracted int
	RelationshipsExtracted int
	TotalTimeMs      int64
	DiscoveryTimeMs  int64
	IndexingTimeMs   int64
	AverageFileTimeMs float64
	FilesPerSecond    float64
	WorkerCount       int
	SuccessRate       float64
	Errors            []FileError
	Cancelled         bool
	StartTime         time.Time
	EndTime           time.Time
}

// FileError represents an error that occurred while processing a file.
type FileError struct {
	FilePath string
	Error    error
}

// ProgressCallback is called periodically during workspace scanning.
type ProgressCallback func(indexed, total int, currentFile string)

// WatchOptions configures file watching behavior.
type WatchOptions struct {
	DebounceMs     int
	IgnorePatterns []string
	BatchSize      int
}

// DefaultWatchOptions returns recommended watch options.
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{
		DebounceMs: 200,
		IgnorePatterns: []string{
			"**/*.swp",
			"**/*.tmp",
			"**/*~",
			".git/**",
		},
		BatchSize: 1,
	}
}

// WatchEvent represents a file system change event.
type WatchEvent struct {
	FilePath  string
	Op        string
	Timestamp time.Time
}

// FileWatcherStats contains file watcher statistics.
type FileWatcherStats struct {
	PendingReindexes int
	IsRunning        bool
}

// WorkerPoolStats contains statistics about the worker pool.
type WorkerPoolStats struct {
	NumWorkers    int
	JobsSubmitted int64
	JobsProcessed int64
	JobsFailed    int64
	QueueLength   int
	ResultsQueued int
	ErrorsQueued  int
}
