package parser

import (
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	"github.com/codanna/codanna/pkg/parser/grammar"
	ts "github.com/tree-sitter/go-tree-sitter"
)

// parserPool manages a pool of tree-sitter parsers for one grammar.ID,
// channel-based and lazily grown up to maxSize, generalized from the
// teacher's two-language parserPool (keyed on a closed Language enum plus
// an isTSX bool) to grammar.ID across the full language set.
type parserPool struct {
	pool    chan *ts.Parser
	langPtr unsafe.Pointer
	id      grammar.ID

	mutex   sync.Mutex
	maxSize int
	created int

	logger *slog.Logger
}

func newParserPool(id grammar.ID, langPtr unsafe.Pointer, maxSize int, logger *slog.Logger) *parserPool {
	return &parserPool{
		pool:    make(chan *ts.Parser, maxSize),
		langPtr: langPtr,
		id:      id,
		maxSize: maxSize,
		logger:  logger,
	}
}

// acquire returns a parser from the pool, creating one lazily if the pool
// hasn't reached maxSize yet, else blocks for one to be released.
func (p *parserPool) acquire() (*ts.Parser, error) {
	select {
	case parser := <-p.pool:
		return parser, nil
	default:
		return p.createParserIfNeeded()
	}
}

func (p *parserPool) createParserIfNeeded() (*ts.Parser, error) {
	p.mutex.Lock()

	if p.created < p.maxSize {
		parser := ts.NewParser()
		if parser == nil {
			p.mutex.Unlock()
			return nil, fmt.Errorf("failed to create parser for %s", p.id)
		}

		tsLang := ts.NewLanguage(p.langPtr)
		if err := parser.SetLanguage(tsLang); err != nil {
			parser.Close()
			p.mutex.Unlock()
			return nil, fmt.Errorf("failed to set language %s: %w", p.id, err)
		}

		p.created++
		p.logger.Debug("created parser in pool", "language", string(p.id), "pool_size", p.created)

		p.mutex.Unlock()
		return parser, nil
	}

	p.mutex.Unlock()
	parser := <-p.pool
	return parser, nil
}

// release returns a parser to the pool for reuse; if the pool is already
// full (should not happen under correct usage) the parser is closed
// instead of leaked.
func (p *parserPool) release(parser *ts.Parser) {
	if parser == nil {
		return
	}

	select {
	case p.pool <- parser:
	default:
		parser.Close()
		p.logger.Warn("parser pool full, closing excess parser", "language", string(p.id))
	}
}

// close releases every parser currently held by the pool. After close the
// pool must not be used again.
func (p *parserPool) close() {
	close(p.pool)

	count := 0
	for parser := range p.pool {
		if parser != nil {
			parser.Close()
			count++
		}
	}

	p.logger.Debug("closed parser pool", "language", string(p.id), "parsers_closed", count)
}

func (p *parserPool) getCreatedCount() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.created
}
