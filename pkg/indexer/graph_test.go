package indexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codanna/codanna/pkg/symbol"
	"github.com/codanna/codanna/pkg/types"
	"github.com/codanna/codanna/pkg/util"
)

// sym is a small FileSymbols-building helper so the diamond-inheritance and
// external-import fixtures below stay readable.
func sym(id types.SymbolId, name string, kind types.SymbolKind, fileID types.FileId) *symbol.Symbol {
	return &symbol.Symbol{ID: id, Name: name, Kind: kind, FileID: fileID}
}

func newTestGraph() *Graph {
	return NewGraph(util.NewLogger(util.DefaultLoggerConfig()))
}

// TestGraph_ResolveMethodWalksInheritanceChain builds a three-level
// diamond-free chain (Grandparent -> Parent -> Child, each defining a
// distinct method plus Child overriding one shared with Parent) entirely
// through Graph.AddFile, then checks ResolveMethod walks to the nearest
// ancestor that actually defines the requested method rather than the first
// same-named symbol anywhere in the index.
func TestGraph_ResolveMethodWalksInheritanceChain(t *testing.T) {
	g := newTestGraph()

	const fileID = types.FileId(1)
	grandparent := sym(1, "GrandParent", types.KindClass, fileID)
	parent := sym(2, "Parent", types.KindClass, fileID)
	child := sym(3, "Child", types.KindClass, fileID)
	onlyGrandparent := sym(4, "base_only", types.KindMethod, fileID)
	shared := sym(5, "shared", types.KindMethod, fileID)
	childShared := sym(6, "shared", types.KindMethod, fileID)
	childOnly := sym(7, "child_only", types.KindMethod, fileID)

	g.AddFile(&FileSymbols{
		FileID: fileID,
		Symbols: []*symbol.Symbol{
			grandparent, parent, child, onlyGrandparent, shared, childShared, childOnly,
		},
		Relationships: []symbol.UnresolvedRelationship{
			{FromName: "Parent", ToName: "GrandParent", Kind: types.RelationExtends, FileID: fileID},
			{FromName: "Child", ToName: "Parent", Kind: types.RelationExtends, FileID: fileID},
			{FromName: "GrandParent", ToName: "base_only", Kind: types.RelationDefines, FileID: fileID},
			{FromName: "Parent", ToName: "shared", Kind: types.RelationDefines, FileID: fileID},
		},
	})

	// childShared and childOnly are attributed to Child directly since
	// resolveNameUnlocked would otherwise pick the first "shared" symbol
	// (Parent's) for a same-file Defines edge naming Child as the from-side.
	g.addRelationshipUnlocked(symbol.Relationship{From: child.ID, To: childShared.ID, Kind: types.RelationDefines})
	g.addRelationshipUnlocked(symbol.Relationship{From: child.ID, To: childOnly.ID, Kind: types.RelationDefines})

	owner, ok := g.ResolveMethod("Child", "child_only")
	require.True(t, ok)
	assert.Equal(t, childOnly.ID, owner.ID, "child_only should resolve to Child's own definition")

	owner, ok = g.ResolveMethod("Child", "shared")
	require.True(t, ok)
	assert.Equal(t, childShared.ID, owner.ID, "shared should resolve to Child's override, not Parent's")

	owner, ok = g.ResolveMethod("Child", "base_only")
	require.True(t, ok)
	assert.Equal(t, onlyGrandparent.ID, owner.ID, "base_only should resolve through Parent up to GrandParent")

	_, ok = g.ResolveMethod("Child", "nonexistent")
	assert.False(t, ok)
}

// TestGraph_ResolveMethodPrefersOverrideNotFirstMatch is the direct
// demonstration of resolve_method("D", "shared") == an override owner, not
// the first indexed "shared" symbol: Parent is indexed (and thus occupies
// byName["shared"][0]) before Child's own override of the same name.
func TestGraph_ResolveMethodPrefersOverrideNotFirstMatch(t *testing.T) {
	g := newTestGraph()
	const fileID = types.FileId(1)

	parent := sym(1, "Parent", types.KindClass, fileID)
	child := sym(2, "Child", types.KindClass, fileID)
	parentShared := sym(3, "shared", types.KindMethod, fileID)
	childShared := sym(4, "shared", types.KindMethod, fileID)

	g.AddFile(&FileSymbols{
		FileID:  fileID,
		Symbols: []*symbol.Symbol{parent, child, parentShared, childShared},
		Relationships: []symbol.UnresolvedRelationship{
			{FromName: "Child", ToName: "Parent", Kind: types.RelationExtends, FileID: fileID},
			{FromName: "Parent", ToName: "shared", Kind: types.RelationDefines, FileID: fileID},
		},
	})
	g.addRelationshipUnlocked(symbol.Relationship{From: child.ID, To: childShared.ID, Kind: types.RelationDefines})

	require.NotEqual(t, parentShared.ID, childShared.ID)
	owner, ok := g.ResolveMethod("Child", "shared")
	require.True(t, ok)
	assert.Equal(t, "Child", mustContainerName(t, g, owner), "override owner must be Child")
	assert.Equal(t, childShared.ID, owner.ID)
}

func mustContainerName(t *testing.T, g *Graph, method *symbol.Symbol) string {
	t.Helper()
	for _, rel := range g.reverse[method.ID] {
		if rel.Kind == types.RelationDefinedIn {
			if owner, ok := g.Get(rel.To); ok {
				return owner.Name
			}
		}
	}
	return ""
}

// TestGraph_InherentMethodsExcludesTraitImpls checks InherentMethods filters
// out Defines edges flagged trait_impl, keeping only a type's own methods.
func TestGraph_InherentMethodsExcludesTraitImpls(t *testing.T) {
	g := newTestGraph()
	const fileID = types.FileId(1)

	owner := sym(1, "Widget", types.KindStruct, fileID)
	inherent := sym(2, "new", types.KindMethod, fileID)
	traitImpl := sym(3, "fmt", types.KindMethod, fileID)

	g.AddFile(&FileSymbols{
		FileID:  fileID,
		Symbols: []*symbol.Symbol{owner, inherent, traitImpl},
	})
	g.addRelationshipUnlocked(symbol.Relationship{From: owner.ID, To: inherent.ID, Kind: types.RelationDefines, Metadata: "inherent"})
	g.addRelationshipUnlocked(symbol.Relationship{From: owner.ID, To: traitImpl.ID, Kind: types.RelationDefines, Metadata: "trait_impl"})

	methods := g.InherentMethods(owner.ID)
	require.Len(t, methods, 1)
	assert.Equal(t, "new", methods[0].Name)
}

// TestGraph_DefinesAndUses exercises the two plain accessors directly.
func TestGraph_DefinesAndUses(t *testing.T) {
	g := newTestGraph()
	const fileID = types.FileId(1)

	owner := sym(1, "Widget", types.KindStruct, fileID)
	method := sym(2, "render", types.KindMethod, fileID)
	field := sym(3, "label", types.KindField, fileID)
	fieldType := sym(4, "string", types.KindStruct, fileID)

	g.AddFile(&FileSymbols{
		FileID:  fileID,
		Symbols: []*symbol.Symbol{owner, method, field, fieldType},
	})
	g.addRelationshipUnlocked(symbol.Relationship{From: owner.ID, To: method.ID, Kind: types.RelationDefines})
	g.addRelationshipUnlocked(symbol.Relationship{From: owner.ID, To: field.ID, Kind: types.RelationDefines})
	g.addRelationshipUnlocked(symbol.Relationship{From: field.ID, To: fieldType.ID, Kind: types.RelationUses})

	defines := g.Defines(owner.ID)
	require.Len(t, defines, 2)

	uses := g.Uses(field.ID)
	require.Len(t, uses, 1)
	assert.Equal(t, fieldType.ID, uses[0].To)

	assert.Empty(t, g.Uses(owner.ID))
}

// TestGraph_VariableTypesInFile checks VariableTypesInFile returns the
// per-file slice AddFile recorded, and an empty/defensive-copy result for an
// unknown file rather than nil aliasing the internal map's entry.
func TestGraph_VariableTypesInFile(t *testing.T) {
	g := newTestGraph()
	const fileID = types.FileId(1)

	vt := []symbol.VariableType{
		{VariableName: "count", TypeName: "int", FileID: fileID},
		{VariableName: "name", TypeName: "string", FileID: fileID},
	}
	g.AddFile(&FileSymbols{FileID: fileID, VariableTypes: vt})

	got := g.VariableTypesInFile(fileID)
	require.Len(t, got, 2)
	assert.Equal(t, "count", got[0].VariableName)

	assert.Empty(t, g.VariableTypesInFile(types.FileId(999)))
}

// TestGraph_ExternalImportShadowing is the direct S3 demonstration: a file
// imports something named "Logger" from an external package, and separately
// defines its own local "Logger" symbol. A call edge naming "Logger" must be
// dropped, not silently resolved to the local symbol.
func TestGraph_ExternalImportShadowing(t *testing.T) {
	g := newTestGraph()
	const fileID = types.FileId(1)

	caller := sym(1, "run", types.KindFunction, fileID)
	localLogger := sym(2, "Logger", types.KindClass, fileID)

	g.AddFile(&FileSymbols{
		FileID:              fileID,
		Symbols:             []*symbol.Symbol{caller, localLogger},
		ExternalImportNames: []string{"Logger"},
		Relationships: []symbol.UnresolvedRelationship{
			{FromName: "run", ToName: "Logger", Kind: types.RelationCalls, FileID: fileID},
		},
	})

	calls := g.CalledFunctions(caller.ID)
	assert.Empty(t, calls, "edge targeting an externally-bound name must be dropped, not resolved to the local symbol")

	symbols, rels, pending := g.Stats()
	assert.Equal(t, 2, symbols)
	assert.Equal(t, 0, rels)
	assert.Equal(t, 0, pending, "a dropped external-shadow edge must not be parked for a later retry either")
}

// TestGraph_ExternalImportShadowing_DoesNotAffectOtherFiles checks the
// external-name classification is scoped per file: a same-named call in a
// file that did NOT classify "Logger" as external resolves normally.
func TestGraph_ExternalImportShadowing_DoesNotAffectOtherFiles(t *testing.T) {
	g := newTestGraph()
	const shadowedFile = types.FileId(1)
	const plainFile = types.FileId(2)

	caller := sym(1, "run", types.KindFunction, shadowedFile)
	g.AddFile(&FileSymbols{
		FileID:              shadowedFile,
		Symbols:             []*symbol.Symbol{caller},
		ExternalImportNames: []string{"Logger"},
		Relationships: []symbol.UnresolvedRelationship{
			{FromName: "run", ToName: "Logger", Kind: types.RelationCalls, FileID: shadowedFile},
		},
	})

	otherCaller := sym(2, "start", types.KindFunction, plainFile)
	localLogger := sym(3, "Logger", types.KindClass, plainFile)
	g.AddFile(&FileSymbols{
		FileID:  plainFile,
		Symbols: []*symbol.Symbol{otherCaller, localLogger},
		Relationships: []symbol.UnresolvedRelationship{
			{FromName: "start", ToName: "Logger", Kind: types.RelationCalls, FileID: plainFile},
		},
	})

	assert.Empty(t, g.CalledFunctions(caller.ID))
	calls := g.CalledFunctions(otherCaller.ID)
	require.Len(t, calls, 1)
	assert.Equal(t, localLogger.ID, calls[0].To)
}

func TestGraph_RemoveFileClearsVariableTypesAndExternalNames(t *testing.T) {
	g := newTestGraph()
	const fileID = types.FileId(1)

	owner := sym(1, "Widget", types.KindStruct, fileID)
	g.AddFile(&FileSymbols{
		FileID:              fileID,
		Symbols:             []*symbol.Symbol{owner},
		VariableTypes:       []symbol.VariableType{{VariableName: "x", TypeName: "int", FileID: fileID}},
		ExternalImportNames: []string{"ext"},
	})
	require.Len(t, g.VariableTypesInFile(fileID), 1)

	g.RemoveFile(fileID)
	assert.Empty(t, g.VariableTypesInFile(fileID))
	assert.False(t, g.externalNames[fileID]["ext"], "RemoveFile must drop the file's external-name classification")
}
