package store

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/edsrzf/mmap-go"

	"github.com/codanna/codanna/pkg/codannaerr"
)

// DocumentStore is the full-text store interface (spec §4.I): write-through
// from the indexer, queried by the MCP/CLI search surface.
type DocumentStore interface {
	// Put indexes or replaces the document for a symbol id.
	Put(doc Document)
	// Delete removes every document for a file path (used on re-index).
	Delete(filePath string)
	// Search runs a token-overlap ranked search over name/doc/signature,
	// optionally filtered by kind and module-path prefix (spec §6).
	Search(query string, limit int, kindFilter, moduleFilter string) []Hit
	// Save persists the store to dir, rewriting IndexMetadata.
	Save(dir string) error
}

// JSONStore is a DocumentStore backed by a single JSON file of documents
// plus an in-memory inverted index, generalizing the teacher's
// catalog.LoadFromFile/BuildIndex pattern (load-validate-index) from a
// fixed design-system catalog to an open-ended, continuously-updated
// symbol corpus.
//
// No full-text engine appeared anywhere in the example pack (the closest
// analogue, catalog.CatalogIndex, is a handful of exact-match maps), so
// Search's token-overlap ranking is hand-rolled on the standard library
// rather than grounded on a third-party library — see DESIGN.md.
type JSONStore struct {
	mu     sync.RWMutex
	docs   map[string]Document  // id -> document
	byFile map[string][]string  // file path -> ids
	index  map[string][]string  // lowercase token -> ids
}

// NewJSONStore constructs an empty JSONStore.
func NewJSONStore() *JSONStore {
	return &JSONStore{
		docs:   make(map[string]Document),
		byFile: make(map[string][]string),
		index:  make(map[string][]string),
	}
}

// Put indexes or replaces doc.
func (s *JSONStore) Put(doc Document) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.docs[doc.ID]; ok {
		s.unindex(old)
	}
	s.docs[doc.ID] = doc
	s.byFile[doc.FilePath] = append(s.byFile[doc.FilePath], doc.ID)
	for _, tok := range tokenize(doc.Name, doc.Doc, doc.Signature) {
		s.index[tok] = append(s.index[tok], doc.ID)
	}
}

func (s *JSONStore) unindex(doc Document) {
	for _, tok := range tokenize(doc.Name, doc.Doc, doc.Signature) {
		s.index[tok] = removeString(s.index[tok], doc.ID)
		if len(s.index[tok]) == 0 {
			delete(s.index, tok)
		}
	}
}

// Delete removes every document that came from filePath.
func (s *JSONStore) Delete(filePath string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.byFile[filePath] {
		if doc, ok := s.docs[id]; ok {
			s.unindex(doc)
			delete(s.docs, id)
		}
	}
	delete(s.byFile, filePath)
}

// Search ranks documents by token overlap with query, applying kindFilter
// and moduleFilter (prefix match) when non-empty.
func (s *JSONStore) Search(query string, limit int, kindFilter, moduleFilter string) []Hit {
	s.mu.RLock()
	defer s.mu.RUnlock()

	terms := tokenize(query)
	if len(terms) == 0 {
		return nil
	}

	scores := make(map[string]float64)
	for _, term := range terms {
		for _, id := range s.index[term] {
			scores[id]++
		}
	}

	hits := make([]Hit, 0, len(scores))
	for id, score := range scores {
		doc := s.docs[id]
		if kindFilter != "" && doc.Kind != kindFilter {
			continue
		}
		if moduleFilter != "" && !strings.HasPrefix(doc.ModulePath, moduleFilter) {
			continue
		}
		hits = append(hits, Hit{Document: doc, Score: score / float64(len(terms))})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Document.ID < hits[j].Document.ID
	})

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}

// Save writes documents.jsonl and metadata.json into dir, creating it if
// necessary.
func (s *JSONStore) Save(dir string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return codannaerr.SaveFailure(dir, err)
	}

	docsPath := filepath.Join(dir, "documents.jsonl")
	f, err := os.Create(docsPath)
	if err != nil {
		return codannaerr.SaveFailure(docsPath, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	fileSet := make(map[string]struct{})
	for _, doc := range s.docs {
		if err := enc.Encode(doc); err != nil {
			return codannaerr.SaveFailure(docsPath, err)
		}
		fileSet[doc.FilePath] = struct{}{}
	}
	if err := w.Flush(); err != nil {
		return codannaerr.SaveFailure(docsPath, err)
	}

	meta := NewIndexMetadata(len(s.docs), len(fileSet), DataSource{Kind: "workspace_scan", Root: dir})
	metaPath := filepath.Join(dir, "metadata.json")
	metaBytes, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return codannaerr.SaveFailure(metaPath, err)
	}
	if err := os.WriteFile(metaPath, metaBytes, 0o644); err != nil {
		return codannaerr.SaveFailure(metaPath, err)
	}
	return nil
}

// LoadJSONStore reads a JSONStore previously written by Save. The
// documents file is read via mmap (github.com/edsrzf/mmap-go) rather than
// os.ReadFile since document corpora can reach hundreds of megabytes on a
// large workspace and mmap avoids the up-front copy.
func LoadJSONStore(dir string) (*JSONStore, IndexMetadata, error) {
	metaPath := filepath.Join(dir, "metadata.json")
	metaBytes, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, IndexMetadata{}, codannaerr.Wrap(codannaerr.CodeFileRead, "run `codanna index` to build a store first", err,
			"failed to read %q", metaPath)
	}
	var meta IndexMetadata
	if err := json.Unmarshal(metaBytes, &meta); err != nil {
		return nil, IndexMetadata{}, codannaerr.ParseError(metaPath, err)
	}
	if meta.SchemaVersion != SchemaVersion {
		return nil, IndexMetadata{}, codannaerr.IncompatibleSchema(meta.SchemaVersion, SchemaVersion)
	}

	docsPath := filepath.Join(dir, "documents.jsonl")
	f, err := os.Open(docsPath)
	if err != nil {
		return nil, IndexMetadata{}, codannaerr.FileRead(docsPath, err)
	}
	defer f.Close()

	if fi, statErr := f.Stat(); statErr == nil && fi.Size() == 0 {
		return NewJSONStore(), meta, nil
	}

	mapped, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, IndexMetadata{}, codannaerr.Wrap(codannaerr.CodeFileRead, "check file permissions", err,
			"failed to mmap %q", docsPath)
	}
	defer mapped.Unmap()

	s := NewJSONStore()
	scanner := bufio.NewScanner(strings.NewReader(string(mapped)))
	scanner.Buffer(make([]byte, 64*1024), 10*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var doc Document
		if err := json.Unmarshal(line, &doc); err != nil {
			return nil, IndexMetadata{}, codannaerr.ParseError(docsPath, err)
		}
		s.Put(doc)
	}
	if err := scanner.Err(); err != nil {
		return nil, IndexMetadata{}, codannaerr.Wrap(codannaerr.CodeParseError, "", err, "failed to scan %q", docsPath)
	}
	return s, meta, nil
}

func tokenize(parts ...string) []string {
	var out []string
	for _, part := range parts {
		for _, field := range strings.FieldsFunc(part, func(r rune) bool {
			return !(r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'))
		}) {
			out = append(out, strings.ToLower(field))
		}
	}
	return out
}

func removeString(ss []string, target string) []string {
	out := ss[:0]
	for _, s := range ss {
		if s != target {
			out = append(out, s)
		}
	}
	return out
}

// symbolIDKey renders a SymbolId (or any integer id) as the string key
// Document.ID and the store's internal maps use.
func symbolIDKey(id uint32) string {
	return strconv.FormatUint(uint64(id), 10)
}
