// Package queries provides tree-sitter query compilation, caching, and
// execution shared by every language's symbol extractor, generalized from
// the teacher's TypeScript/JavaScript-only QueryManager to the full
// grammar.ID set via a query-string registry populated by each
// pkg/behavior/<language> package.
package queries

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/codanna/codanna/pkg/parser"
	"github.com/codanna/codanna/pkg/parser/grammar"
)

// Type identifies which kind of query to execute against a language.
type Type int

const (
	// TypeSymbols extracts symbol definitions (functions, classes, methods, etc).
	TypeSymbols Type = iota
	// TypeImports extracts import/use/include statements.
	TypeImports
	// TypeCalls extracts call-expression sites (find_calls, spec §4.D).
	TypeCalls
)

func (t Type) String() string {
	switch t {
	case TypeSymbols:
		return "symbols"
	case TypeImports:
		return "imports"
	case TypeCalls:
		return "calls"
	default:
		return "unknown"
	}
}

// source holds the query strings for one language. Empty fields mean that
// language has no queries of that kind registered (yet); calls in
// particular is optional; a language without one simply never produces
// find_calls edges.
type source struct {
	symbols string
	imports string
	calls   string
}

var (
	registryMu sync.RWMutex
	registry   = make(map[grammar.ID]source)
)

// Register attaches the symbol and import query strings for id. Called
// from each pkg/behavior/<language> package's init().
func Register(id grammar.ID, symbolQuery, importQuery string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	src := registry[id]
	src.symbols = symbolQuery
	src.imports = importQuery
	registry[id] = src
}

// RegisterCalls attaches the call-expression query string for id. Called
// from each pkg/behavior/<language> package's init(), after Register.
func RegisterCalls(id grammar.ID, callQuery string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	src := registry[id]
	src.calls = callQuery
	registry[id] = src
}

func lookup(id grammar.ID, t Type) (string, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	src, ok := registry[id]
	if !ok {
		return "", fmt.Errorf("queries: no queries registered for language %q", id)
	}
	switch t {
	case TypeSymbols:
		if src.symbols == "" {
			return "", fmt.Errorf("queries: no symbol query registered for language %q", id)
		}
		return src.symbols, nil
	case TypeImports:
		if src.imports == "" {
			return "", fmt.Errorf("queries: no import query registered for language %q", id)
		}
		return src.imports, nil
	case TypeCalls:
		if src.calls == "" {
			return "", fmt.Errorf("queries: no call query registered for language %q", id)
		}
		return src.calls, nil
	default:
		return "", fmt.Errorf("queries: unknown query type %d", t)
	}
}

type queryKey struct {
	id grammar.ID
	t  Type
}

// Manager compiles and caches tree-sitter queries per (language, type),
// lazily on first use, matching the teacher's QueryManager design.
type Manager struct {
	parserManager *parser.Manager
	cache         map[queryKey]*ts.Query
	mutex         sync.RWMutex
	logger        *slog.Logger
}

// NewManager constructs a Manager backed by pm for grammar-pointer access.
func NewManager(pm *parser.Manager, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{parserManager: pm, cache: make(map[queryKey]*ts.Query), logger: logger}
}

// GetQuery returns the compiled query for id and t, compiling and caching
// it on first use.
func (m *Manager) GetQuery(id grammar.ID, t Type) (*ts.Query, error) {
	key := queryKey{id: id, t: t}

	m.mutex.RLock()
	q, ok := m.cache[key]
	m.mutex.RUnlock()
	if ok {
		return q, nil
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	if q, ok = m.cache[key]; ok {
		return q, nil
	}

	queryString, err := lookup(id, t)
	if err != nil {
		return nil, err
	}

	langPtr, err := m.parserManager.LanguagePointer(id, false)
	if err != nil {
		return nil, fmt.Errorf("queries: failed to get language pointer for %s: %w", id, err)
	}

	tsLang := ts.NewLanguage(langPtr)
	q, qerr := ts.NewQuery(tsLang, queryString)
	if qerr != nil {
		return nil, fmt.Errorf("queries: failed to compile %s query for %s: %s", t, id, qerr.Message)
	}

	m.cache[key] = q
	m.logger.Debug("compiled query", "language", string(id), "type", t.String())
	return q, nil
}

// ExecuteQuery runs a compiled query against tree and returns structured
// matches, identical in shape to the teacher's ExecuteQuery.
func (m *Manager) ExecuteQuery(tree *ts.Tree, query *ts.Query, source []byte) ([]Match, error) {
	if tree == nil {
		return nil, fmt.Errorf("queries: tree is nil")
	}
	if query == nil {
		return nil, fmt.Errorf("queries: query is nil")
	}

	cursor := ts.NewQueryCursor()
	defer cursor.Close()

	iter := cursor.Matches(query, tree.RootNode(), source)
	captureNames := query.CaptureNames()

	var matches []Match
	for {
		match := iter.Next()
		if match == nil {
			break
		}

		var captures []Capture
		for _, capture := range match.Captures {
			var name string
			if int(capture.Index) < len(captureNames) {
				name = captureNames[capture.Index]
			}
			category, field := splitCaptureName(name)
			captures = append(captures, Capture{
				Name:     name,
				Category: category,
				Field:    field,
				Node:     &capture.Node,
				Text:     capture.Node.Utf8Text(source),
				Location: nodeLocation(&capture.Node),
			})
		}

		matches = append(matches, Match{PatternIndex: uint32(match.PatternIndex), Captures: captures})
	}

	return matches, nil
}

// Close releases every compiled query. The Manager must not be used
// afterward.
func (m *Manager) Close() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.logger.Info("closing query manager", "queries_compiled", len(m.cache))
	for key, q := range m.cache {
		if q != nil {
			q.Close()
		}
		delete(m.cache, key)
	}
}

// Match is a single pattern match from query execution.
type Match struct {
	PatternIndex uint32
	Captures     []Capture
}

// Capture is a single captured node from a query match.
type Capture struct {
	Name     string
	Category string
	Field    string
	Node     *ts.Node
	Text     string
	Location Location
}

// Location is a position in source code, 1-based for line/column to match
// editor/LSP conventions, 0-based for byte offsets.
type Location struct {
	StartLine   uint32
	StartColumn uint32
	EndLine     uint32
	EndColumn   uint32
	StartByte   uint32
	EndByte     uint32
}

func splitCaptureName(name string) (category, field string) {
	parts := strings.SplitN(name, ".", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return name, ""
}

func nodeLocation(node *ts.Node) Location {
	start := node.StartPosition()
	end := node.EndPosition()
	return Location{
		StartLine:   uint32(start.Row + 1),
		StartColumn: uint32(start.Column + 1),
		EndLine:     uint32(end.Row + 1),
		EndColumn:   uint32(end.Column + 1),
		StartByte:   uint32(node.StartByte()),
		EndByte:     uint32(node.EndByte()),
	}
}
