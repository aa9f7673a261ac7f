package store

import (
	"github.com/codanna/codanna/pkg/symbol"
	"github.com/codanna/codanna/pkg/types"
)

// IncludeFlag names one relationship group get_symbol_context can
// populate (spec §6: "includes_bitset names the relationship groups to
// populate").
type IncludeFlag uint8

const (
	IncludeDefinitions IncludeFlag = 1 << iota
	IncludeCalls
	IncludeCalledBy
	IncludeImplementations
	IncludeExtends
	IncludeUsedTypes

	IncludeAll = IncludeDefinitions | IncludeCalls | IncludeCalledBy |
		IncludeImplementations | IncludeExtends | IncludeUsedTypes
)

func (f IncludeFlag) has(bit IncludeFlag) bool { return f&bit != 0 }

// GraphQuerier is the subset of pkg/indexer.Graph's surface SymbolContext
// needs, kept as an interface here so pkg/store has no import-cycle-risking
// dependency on pkg/indexer.
type GraphQuerier interface {
	Get(id types.SymbolId) (*symbol.Symbol, bool)
	CalledFunctions(id types.SymbolId) []symbol.Relationship
	Callers(id types.SymbolId) []symbol.Relationship
	Implementations(id types.SymbolId) []symbol.Relationship
	Dependencies(id types.SymbolId) []symbol.Relationship
}

// SymbolContext aggregates everything the MCP/CLI "describe" surface needs
// about one symbol in a single call (spec §6,
// "get_symbol_context(id, includes_bitset) -> SymbolContext").
type SymbolContext struct {
	Definition      *symbol.Symbol
	Calls           []*symbol.Symbol
	CalledBy        []*symbol.Symbol
	Implementations []*symbol.Symbol
	Extends         []*symbol.Symbol
	UsedTypes       []*symbol.Symbol
}

// BuildSymbolContext aggregates id's definition and requested relationship
// groups from g, resolving each edge's "To" endpoint via g.Get.
func BuildSymbolContext(g GraphQuerier, id types.SymbolId, includes IncludeFlag) SymbolContext {
	var ctx SymbolContext

	if includes.has(IncludeDefinitions) {
		if sym, ok := g.Get(id); ok {
			ctx.Definition = sym
		}
	}
	if includes.has(IncludeCalls) {
		ctx.Calls = resolveTargets(g, g.CalledFunctions(id))
	}
	if includes.has(IncludeCalledBy) {
		ctx.CalledBy = resolveTargets(g, g.Callers(id))
	}
	if includes.has(IncludeImplementations) {
		ctx.Implementations = resolveTargets(g, g.Implementations(id))
	}
	if includes.has(IncludeExtends) || includes.has(IncludeUsedTypes) {
		for _, rel := range g.Dependencies(id) {
			sym, ok := g.Get(rel.To)
			if !ok {
				continue
			}
			switch rel.Kind {
			case types.RelationExtends:
				if includes.has(IncludeExtends) {
					ctx.Extends = append(ctx.Extends, sym)
				}
			case types.RelationUses:
				if includes.has(IncludeUsedTypes) {
					ctx.UsedTypes = append(ctx.UsedTypes, sym)
				}
			}
		}
	}
	return ctx
}

func resolveTargets(g GraphQuerier, rels []symbol.Relationship) []*symbol.Symbol {
	out := make([]*symbol.Symbol, 0, len(rels))
	for _, rel := range rels {
		if sym, ok := g.Get(rel.To); ok {
			out = append(out, sym)
		}
	}
	return out
}
