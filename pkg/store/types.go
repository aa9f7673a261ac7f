// Package store implements the index's two persistence concerns (spec
// §4.I, §6): a document store backing full-text search, and an optional
// semantic store for vector embeddings. Both are write-through from the
// indexer and rewrite IndexMetadata on every save, grounded on the
// teacher's pkg/catalog/catalog.go JSON load/validate/index pattern and
// on original_source/src/storage/persistence.rs for the metadata and
// schema-versioning shape.
package store

import "time"

// SchemaVersion is bumped whenever IndexMetadata's on-disk shape changes
// incompatibly; Load refuses to read a metadata file from a different
// version (spec §4.I, §7 IncompatibleSchema).
const SchemaVersion = 1

// DataSource tags where an IndexMetadata's symbol/file counts came from.
type DataSource struct {
	Kind string `json:"kind"` // "workspace_scan", "single_file", "incremental"
	Root string `json:"root,omitempty"`
}

// IndexMetadata is rewritten on every save (spec §4.I); readers check
// SchemaVersion before trusting the rest of the file.
type IndexMetadata struct {
	SchemaVersion int        `json:"schema_version"`
	SymbolCount   int        `json:"symbol_count"`
	FileCount     int        `json:"file_count"`
	LastModified  string     `json:"last_modified"` // ISO-8601
	DataSource    DataSource `json:"data_source"`
}

// NewIndexMetadata builds an IndexMetadata stamped with the current
// schema version and time.
func NewIndexMetadata(symbolCount, fileCount int, source DataSource) IndexMetadata {
	return IndexMetadata{
		SchemaVersion: SchemaVersion,
		SymbolCount:   symbolCount,
		FileCount:     fileCount,
		LastModified:  time.Now().UTC().Format(time.RFC3339),
		DataSource:    source,
	}
}

// Document is one full-text-searchable record, emitted for every persisted
// symbol (spec §4.I: "name, kind, file_path, module_path, doc, signature").
type Document struct {
	ID         string `json:"id"` // stringified SymbolId
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	FilePath   string `json:"file_path"`
	ModulePath string `json:"module_path"`
	Doc        string `json:"doc"`
	Signature  string `json:"signature"`
}

// Hit is one full-text search result, ordered by descending relevance
// Score (spec §6, "search(query, limit, kind_filter, module_filter) ->
// [Hit]").
type Hit struct {
	Document Document
	Score    float64
}
