package indexer

import (
	"log/slog"

	"github.com/codanna/codanna/pkg/behavior/golang"
	"github.com/codanna/codanna/pkg/parser"
	"github.com/codanna/codanna/pkg/parser/grammar"
	"github.com/codanna/codanna/pkg/parser/queries"
	"github.com/codanna/codanna/pkg/registry"
)

// allEnabled enables every available language, used by tests that don't
// care about per-language opt-out.
type allEnabled struct{}

func (allEnabled) IsLanguageEnabled(grammar.ID) bool { return true }

// newTestRegistry registers just the Go language definition; enough for
// this package's tests, which exercise multi-language dispatch rather than
// any one language's extraction details (those live under pkg/behavior/*).
func newTestRegistry(logger *slog.Logger) (*registry.Registry, *parser.Manager, *queries.Manager) {
	pm := parser.NewManager(logger)
	qm := queries.NewManager(pm, logger)
	reg := registry.New()
	reg.Register(golang.Definition(qm, logger))
	return reg, pm, qm
}
