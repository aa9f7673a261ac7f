package parser

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"unsafe"

	"github.com/codanna/codanna/pkg/parser/grammar"
	ts "github.com/tree-sitter/go-tree-sitter"
)

// poolKey identifies one parser pool: a language plus, for languages with
// more than one grammar dialect (TypeScript/TSX, PHP/PHP-only), the
// dialect variant.
type poolKey struct {
	id      grammar.ID
	variant bool // true selects the TSX / PHP-only dialect
}

// Manager owns one lazily-created parser pool per (language, variant),
// generalizing the teacher's ParserManager (pkg/parser/parser.go) from a
// hardcoded TypeScript/JavaScript switch to grammar.All().
type Manager struct {
	pools map[poolKey]*parserPool
	mutex sync.RWMutex

	logger *slog.Logger

	stats struct {
		parsesCalled int
	}
}

// NewManager constructs a Manager. Pools are created lazily on first Parse
// call for a given language.
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{pools: make(map[poolKey]*parserPool), logger: logger}
}

// ParseDefault parses source with id's default grammar dialect.
func (m *Manager) ParseDefault(source []byte, id grammar.ID) (*ts.Tree, error) {
	return m.parse(source, id, false)
}

// ParseDialect parses source with id's alternate dialect: TSX for
// TypeScript, php_only for PHP.
func (m *Manager) ParseDialect(source []byte, id grammar.ID) (*ts.Tree, error) {
	return m.parse(source, id, true)
}

func (m *Manager) parse(source []byte, id grammar.ID, dialect bool) (*ts.Tree, error) {
	m.mutex.Lock()
	m.stats.parsesCalled++
	m.mutex.Unlock()

	p, err := m.getOrCreatePool(id, dialect)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to get pool for %s: %w", id, err)
	}

	parser, err := p.acquire()
	if err != nil {
		return nil, fmt.Errorf("parser: failed to acquire parser: %w", err)
	}

	tree := parser.Parse(source, nil)
	p.release(parser)

	if tree == nil {
		return nil, fmt.Errorf("parser: Parse returned nil tree for %s", id)
	}

	if tree.RootNode().HasError() {
		m.logger.Warn("parse tree contains errors", "language", string(id))
	}

	return tree, nil
}

// ExtensionResolver is the minimal registry capability ParseFile needs to
// go from a file extension to a language id, satisfied by
// *registry.Registry without importing it here (that would create an
// import cycle: registry -> lang -> parser).
type ExtensionResolver interface {
	IDForExtension(ext string) (grammar.ID, bool)
}

// ParseFile detects the language from filePath's extension via reg and
// parses source accordingly, selecting the TSX/PHP-only dialect when the
// extension calls for it.
func (m *Manager) ParseFile(source []byte, filePath string, reg ExtensionResolver) (*ts.Tree, grammar.ID, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filePath)), ".")
	id, ok := reg.IDForExtension(ext)
	if !ok {
		return nil, "", fmt.Errorf("parser: unsupported file extension %q", ext)
	}
	dialect := id == grammar.TypeScript && ext == "tsx"
	tree, err := m.parse(source, id, dialect)
	return tree, id, err
}

// LanguagePointer exposes the raw tree-sitter grammar pointer for id, used
// by pkg/parser/queries to compile queries against the same grammar the
// pool parses with.
func (m *Manager) LanguagePointer(id grammar.ID, dialect bool) (unsafe.Pointer, error) {
	v := grammar.VariantDefault
	if dialect {
		if id == grammar.TypeScript {
			v = grammar.VariantTSX
		} else if id == grammar.PHP {
			v = grammar.VariantPHPOnly
		}
	}
	return grammar.Pointer(id, v)
}

func (m *Manager) getOrCreatePool(id grammar.ID, dialect bool) (*parserPool, error) {
	key := poolKey{id: id, variant: dialect}

	m.mutex.RLock()
	p, ok := m.pools[key]
	m.mutex.RUnlock()
	if ok {
		return p, nil
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	if p, ok = m.pools[key]; ok {
		return p, nil
	}

	v := grammar.VariantDefault
	if dialect {
		if id == grammar.TypeScript {
			v = grammar.VariantTSX
		} else if id == grammar.PHP {
			v = grammar.VariantPHPOnly
		}
	}
	langPtr, err := grammar.Pointer(id, v)
	if err != nil {
		return nil, err
	}

	size := getDefaultPoolSize()
	p = newParserPool(id, langPtr, size, m.logger)
	m.pools[key] = p

	m.logger.Debug("created new parser pool", "language", string(id), "dialect", dialect, "maxSize", size)
	return p, nil
}

// Close releases all parser pools. The Manager must not be used afterward.
func (m *Manager) Close() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.logger.Info("closing parser manager", "parses_called", m.stats.parsesCalled)

	for key, p := range m.pools {
		p.close()
		m.logger.Debug("closed parser pool", "language", string(key.id), "dialect", key.variant)
	}
	m.pools = make(map[poolKey]*parserPool)
}

// Stats reports cumulative parser usage.
type Stats struct {
	ParsersCreated int
	ParsesCalled   int
}

// GetStats returns cumulative parser usage across all pools.
func (m *Manager) GetStats() Stats {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	total := 0
	for _, p := range m.pools {
		total += p.getCreatedCount()
	}
	return Stats{ParsersCreated: total, ParsesCalled: m.stats.parsesCalled}
}
