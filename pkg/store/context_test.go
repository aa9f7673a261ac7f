package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codanna/codanna/pkg/symbol"
	"github.com/codanna/codanna/pkg/types"
)

// fakeGraph is a minimal, hand-wired GraphQuerier used to exercise
// BuildSymbolContext without pulling in pkg/indexer.
type fakeGraph struct {
	symbols   map[types.SymbolId]*symbol.Symbol
	calls     map[types.SymbolId][]symbol.Relationship
	callers   map[types.SymbolId][]symbol.Relationship
	impls     map[types.SymbolId][]symbol.Relationship
	deps      map[types.SymbolId][]symbol.Relationship
}

func newFakeGraph() *fakeGraph {
	return &fakeGraph{
		symbols: make(map[types.SymbolId]*symbol.Symbol),
		calls:   make(map[types.SymbolId][]symbol.Relationship),
		callers: make(map[types.SymbolId][]symbol.Relationship),
		impls:   make(map[types.SymbolId][]symbol.Relationship),
		deps:    make(map[types.SymbolId][]symbol.Relationship),
	}
}

func (g *fakeGraph) add(id types.SymbolId, name string, kind types.SymbolKind) {
	g.symbols[id] = symbol.New(id, name, kind, types.FileId(1), types.Range{})
}

func (g *fakeGraph) Get(id types.SymbolId) (*symbol.Symbol, bool) {
	sym, ok := g.symbols[id]
	return sym, ok
}

func (g *fakeGraph) CalledFunctions(id types.SymbolId) []symbol.Relationship { return g.calls[id] }
func (g *fakeGraph) Callers(id types.SymbolId) []symbol.Relationship         { return g.callers[id] }
func (g *fakeGraph) Implementations(id types.SymbolId) []symbol.Relationship { return g.impls[id] }
func (g *fakeGraph) Dependencies(id types.SymbolId) []symbol.Relationship    { return g.deps[id] }

// Builds: Dog (1) extends Animal (2), Dog uses Leash (3), Dog calls Bark (4),
// Speak (5) calls Dog. Reverse edges are stored as the indexer's Graph
// stores them: From is the queried symbol, To is the caller/implementor.
func buildFakeGraph() *fakeGraph {
	g := newFakeGraph()
	g.add(1, "Dog", types.KindClass)
	g.add(2, "Animal", types.KindClass)
	g.add(3, "Leash", types.KindClass)
	g.add(4, "bark", types.KindFunction)
	g.add(5, "speak", types.KindFunction)

	g.deps[1] = []symbol.Relationship{
		{From: 1, To: 2, Kind: types.RelationExtends},
		{From: 1, To: 3, Kind: types.RelationUses},
	}
	g.calls[1] = []symbol.Relationship{{From: 1, To: 4, Kind: types.RelationCalls}}
	g.callers[1] = []symbol.Relationship{{From: 1, To: 5, Kind: types.RelationCalledBy}}
	g.impls[2] = []symbol.Relationship{{From: 2, To: 1, Kind: types.RelationImplementedBy}}
	return g
}

func TestBuildSymbolContext_IncludeDefinitions(t *testing.T) {
	g := buildFakeGraph()
	ctx := BuildSymbolContext(g, 1, IncludeDefinitions)

	require.NotNil(t, ctx.Definition)
	assert.Equal(t, "Dog", ctx.Definition.Name)
	assert.Nil(t, ctx.Calls)
	assert.Nil(t, ctx.Extends)
}

func TestBuildSymbolContext_IncludeCallsAndCalledBy(t *testing.T) {
	g := buildFakeGraph()
	ctx := BuildSymbolContext(g, 1, IncludeCalls|IncludeCalledBy)

	require.Len(t, ctx.Calls, 1)
	assert.Equal(t, "bark", ctx.Calls[0].Name)

	require.Len(t, ctx.CalledBy, 1)
	assert.Equal(t, "speak", ctx.CalledBy[0].Name)
}

func TestBuildSymbolContext_IncludeImplementations(t *testing.T) {
	g := buildFakeGraph()
	ctx := BuildSymbolContext(g, 2, IncludeImplementations)

	require.Len(t, ctx.Implementations, 1)
	assert.Equal(t, "Dog", ctx.Implementations[0].Name)
}

func TestBuildSymbolContext_IncludeExtendsAndUsedTypes(t *testing.T) {
	g := buildFakeGraph()
	ctx := BuildSymbolContext(g, 1, IncludeExtends|IncludeUsedTypes)

	require.Len(t, ctx.Extends, 1)
	assert.Equal(t, "Animal", ctx.Extends[0].Name)

	require.Len(t, ctx.UsedTypes, 1)
	assert.Equal(t, "Leash", ctx.UsedTypes[0].Name)
}

func TestBuildSymbolContext_ExtendsFlagExcludesUsedTypes(t *testing.T) {
	g := buildFakeGraph()
	ctx := BuildSymbolContext(g, 1, IncludeExtends)

	require.Len(t, ctx.Extends, 1)
	assert.Empty(t, ctx.UsedTypes, "IncludeExtends alone must not populate UsedTypes")
}

func TestBuildSymbolContext_IncludeAll(t *testing.T) {
	g := buildFakeGraph()
	ctx := BuildSymbolContext(g, 1, IncludeAll)

	assert.NotNil(t, ctx.Definition)
	assert.Len(t, ctx.Calls, 1)
	assert.Len(t, ctx.CalledBy, 1)
	assert.Len(t, ctx.Extends, 1)
	assert.Len(t, ctx.UsedTypes, 1)
}

func TestBuildSymbolContext_UnknownSymbolLeavesDefinitionNil(t *testing.T) {
	g := buildFakeGraph()
	ctx := BuildSymbolContext(g, 999, IncludeDefinitions)
	assert.Nil(t, ctx.Definition)
}

func TestBuildSymbolContext_NoFlagsReturnsEmptyContext(t *testing.T) {
	g := buildFakeGraph()
	ctx := BuildSymbolContext(g, 1, 0)

	assert.Nil(t, ctx.Definition)
	assert.Nil(t, ctx.Calls)
	assert.Nil(t, ctx.CalledBy)
	assert.Nil(t, ctx.Implementations)
	assert.Nil(t, ctx.Extends)
	assert.Nil(t, ctx.UsedTypes)
}
