package indexer

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/codanna/codanna/pkg/resolve"
	"github.com/codanna/codanna/pkg/symbol"
	"github.com/codanna/codanna/pkg/types"
)

// Graph is the resolved symbol/relationship store the indexer builds
// incrementally as files are processed: per-file unresolved edges
// (symbol.UnresolvedRelationship) are promoted to resolved edges
// (symbol.Relationship) once both endpoint names can be looked up,
// matching spec §3's invariant that only Relationship, never
// UnresolvedRelationship, is ever queried.
type Graph struct {
	mu sync.RWMutex

	byID   map[types.SymbolId]*symbol.Symbol
	byName map[string][]types.SymbolId

	// forward[id] holds every edge with From == id; reverse[id] holds the
	// synthesized mirror for every edge with To == id (spec §3, "only the
	// forward direction is ever persisted").
	forward map[types.SymbolId][]symbol.Relationship
	reverse map[types.SymbolId][]symbol.Relationship

	// fileSymbols maps a FileId to the SymbolIds it contributed, so
	// RemoveFile can undo AddFile in O(symbols-in-file).
	fileSymbols map[types.FileId][]types.SymbolId

	// pending holds UnresolvedRelationship edges not yet resolvable (the
	// target name wasn't indexed yet); ResolvePending retries them.
	pending []pendingEdge

	// variableTypes holds find_variable_types records per file, so
	// RemoveFile can drop them alongside the rest of that file's data.
	variableTypes map[types.FileId][]symbol.VariableType

	// externalNames[fileID] holds every local binding name that file's
	// import-origin classification resolved to an external import (spec
	// §4.F, "Import-origin discipline"). resolveOrPark consults it before
	// accepting a same-name match so a local symbol never silently shadows
	// a call meant for the external import (S3, "External-import safety").
	externalNames map[types.FileId]map[string]bool

	// inheritance accumulates Extends/Implements edges as they resolve, so
	// qualified method lookups (ResolveMethod) can walk a type's
	// ancestor chain instead of taking the first same-named symbol
	// anywhere in the index (spec §4.F; S2, resolve_method("D","shared")).
	inheritance resolve.InheritanceResolver

	// methodsByType accumulates every method/function name a Defines edge
	// has attributed to a container type, so each new edge can feed
	// inheritance.AddTypeMethods with the type's full method set rather
	// than a single name (AddTypeMethods replaces, it does not append).
	methodsByType map[string][]string

	logger *slog.Logger
}

type pendingEdge struct {
	fromID types.SymbolId
	edge   symbol.UnresolvedRelationship
}

// containerKinds mirrors common.containerKinds: the symbol kinds
// ResolveMethod/InherentMethods treat as a type that can own methods.
var containerKinds = map[types.SymbolKind]bool{
	types.KindStruct:    true,
	types.KindClass:     true,
	types.KindInterface: true,
	types.KindTrait:     true,
	types.KindEnum:      true,
}

// NewGraph constructs an empty Graph.
func NewGraph(logger *slog.Logger) *Graph {
	if logger == nil {
		logger = slog.Default()
	}
	return &Graph{
		byID:          make(map[types.SymbolId]*symbol.Symbol),
		byName:        make(map[string][]types.SymbolId),
		forward:       make(map[types.SymbolId][]symbol.Relationship),
		reverse:       make(map[types.SymbolId][]symbol.Relationship),
		fileSymbols:   make(map[types.FileId][]types.SymbolId),
		variableTypes: make(map[types.FileId][]symbol.VariableType),
		externalNames: make(map[types.FileId]map[string]bool),
		methodsByType: make(map[string][]string),
		inheritance:   resolve.NewGenericInheritanceResolver(),
		logger:        logger,
	}
}

// AddFile indexes fs's symbols and attempts to resolve its relationships
// immediately; edges whose target isn't indexed yet (forward reference
// across files, common in non-topological scan order) are parked in
// pending and retried by ResolvePending after the whole workspace is
// scanned.
func (g *Graph) AddFile(fs *FileSymbols) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var ids []types.SymbolId
	for _, sym := range fs.Symbols {
		g.byID[sym.ID] = sym
		g.byName[sym.Name] = append(g.byName[sym.Name], sym.ID)
		ids = append(ids, sym.ID)
	}
	g.fileSymbols[fs.FileID] = ids
	g.variableTypes[fs.FileID] = fs.VariableTypes

	if len(fs.ExternalImportNames) > 0 {
		names := make(map[string]bool, len(fs.ExternalImportNames))
		for _, n := range fs.ExternalImportNames {
			names[n] = true
		}
		g.externalNames[fs.FileID] = names
	}

	for _, edge := range fs.Relationships {
		g.resolveOrPark(edge)
	}
}

// resolveOrPark looks up edge.FromName/ToName among symbols already
// indexed; a successful match is promoted to a Relationship and both
// directions are indexed, an unresolved match is parked for a later
// ResolvePending pass. An edge whose ToName is bound to an external import
// in edge.FileID is dropped outright rather than resolved or parked: a
// same-named local symbol elsewhere in the workspace must never be mistaken
// for a reference to that import (spec §4.F, "External-import safety").
func (g *Graph) resolveOrPark(edge symbol.UnresolvedRelationship) {
	if g.externalNames[edge.FileID][edge.ToName] {
		return
	}
	fromID, fromOK := g.resolveNameInFileUnlocked(edge.FromName, edge.FileID)
	if !fromOK {
		g.pending = append(g.pending, pendingEdge{edge: edge})
		return
	}
	toID, toOK := g.resolveNameUnlocked(edge.ToName)
	if !toOK {
		g.pending = append(g.pending, pendingEdge{fromID: fromID, edge: edge})
		return
	}
	g.addRelationshipUnlocked(symbol.Relationship{From: fromID, To: toID, Kind: edge.Kind, Metadata: edge.Metadata})
}

func (g *Graph) addRelationshipUnlocked(rel symbol.Relationship) {
	g.forward[rel.From] = append(g.forward[rel.From], rel)
	reverseRel := symbol.Relationship{From: rel.To, To: rel.From, Kind: rel.Kind.Reverse(), Metadata: rel.Metadata}
	g.reverse[rel.To] = append(g.reverse[rel.To], reverseRel)
	g.feedInheritanceUnlocked(rel)
}

// feedInheritanceUnlocked keeps g.inheritance current as Extends/Implements/
// Defines edges resolve, so ResolveMethod can walk a type's real ancestor
// chain instead of taking the first same-named symbol anywhere in the index
// (spec §4.F; S2, resolve_method("D", "shared")).
func (g *Graph) feedInheritanceUnlocked(rel symbol.Relationship) {
	fromSym, fromOK := g.byID[rel.From]
	toSym, toOK := g.byID[rel.To]
	if !fromOK || !toOK {
		return
	}
	switch rel.Kind {
	case types.RelationExtends, types.RelationImplements:
		g.inheritance.AddInheritance(fromSym.Name, toSym.Name, string(rel.Kind))
	case types.RelationDefines:
		if !(toSym.Kind == types.KindMethod || toSym.Kind == types.KindFunction) {
			return
		}
		methods := g.methodsByType[fromSym.Name]
		for _, m := range methods {
			if m == toSym.Name {
				return
			}
		}
		methods = append(methods, toSym.Name)
		g.methodsByType[fromSym.Name] = methods
		g.inheritance.AddTypeMethods(fromSym.Name, methods)
	}
}

// resolveNameInFileUnlocked prefers a symbol declared in the same file
// before falling back to a global name match, approximating the teacher's
// lexical-scope-first lookup without a full per-file Scope replay.
func (g *Graph) resolveNameInFileUnlocked(name string, fileID types.FileId) (types.SymbolId, bool) {
	ids := g.byName[name]
	for _, id := range ids {
		if sym := g.byID[id]; sym != nil && sym.FileID == fileID {
			return id, true
		}
	}
	return g.resolveNameUnlocked(name)
}

func (g *Graph) resolveNameUnlocked(name string) (types.SymbolId, bool) {
	ids := g.byName[name]
	if len(ids) == 0 {
		return 0, false
	}
	return ids[0], true
}

// ResolvePending retries every parked edge, dropping any still unresolved
// after the retry (they reference a name never defined anywhere in the
// scanned workspace, most often an external/third-party symbol spec §4.F
// classifies as an external import rather than a graph edge). Returns the
// number of edges newly resolved.
func (g *Graph) ResolvePending() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	var stillPending []pendingEdge
	resolved := 0
	for _, pe := range g.pending {
		fromID := pe.fromID
		if fromID == 0 {
			id, ok := g.resolveNameInFileUnlocked(pe.edge.FromName, pe.edge.FileID)
			if !ok {
				stillPending = append(stillPending, pe)
				continue
			}
			fromID = id
		}
		toID, ok := g.resolveNameUnlocked(pe.edge.ToName)
		if !ok {
			stillPending = append(stillPending, pendingEdge{fromID: fromID, edge: pe.edge})
			continue
		}
		g.addRelationshipUnlocked(symbol.Relationship{From: fromID, To: toID, Kind: pe.edge.Kind, Metadata: pe.edge.Metadata})
		resolved++
	}
	g.pending = stillPending
	return resolved
}

// RemoveFile undoes AddFile for fileID: its symbols, their edges (in both
// directions), and any still-pending edges they participated in are
// removed.
func (g *Graph) RemoveFile(fileID types.FileId) {
	g.mu.Lock()
	defer g.mu.Unlock()

	ids, ok := g.fileSymbols[fileID]
	if !ok {
		return
	}
	idSet := make(map[types.SymbolId]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}

	for _, id := range ids {
		if sym := g.byID[id]; sym != nil {
			g.byName[sym.Name] = removeID(g.byName[sym.Name], id)
			if len(g.byName[sym.Name]) == 0 {
				delete(g.byName, sym.Name)
			}
		}
		delete(g.byID, id)
		for _, rel := range g.forward[id] {
			g.reverse[rel.To] = removeRelationship(g.reverse[rel.To], id)
		}
		delete(g.forward, id)
		for _, rel := range g.reverse[id] {
			g.forward[rel.To] = removeRelationship(g.forward[rel.To], id)
		}
		delete(g.reverse, id)
	}
	delete(g.fileSymbols, fileID)
	delete(g.variableTypes, fileID)
	delete(g.externalNames, fileID)

	var keptPending []pendingEdge
	for _, pe := range g.pending {
		if pe.edge.FileID == fileID {
			continue
		}
		if _, stale := idSet[pe.fromID]; stale {
			continue
		}
		keptPending = append(keptPending, pe)
	}
	g.pending = keptPending
}

func removeID(ids []types.SymbolId, target types.SymbolId) []types.SymbolId {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}

func removeRelationship(rels []symbol.Relationship, target types.SymbolId) []symbol.Relationship {
	out := rels[:0]
	for _, rel := range rels {
		if rel.To != target {
			out = append(out, rel)
		}
	}
	return out
}

// Get returns a symbol by id.
func (g *Graph) Get(id types.SymbolId) (*symbol.Symbol, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	sym, ok := g.byID[id]
	return sym, ok
}

// FindByName returns every symbol registered under name, sorted by id for
// deterministic output (spec §4.D, find_symbols_by_name).
func (g *Graph) FindByName(name string) []*symbol.Symbol {
	g.mu.RLock()
	defer g.mu.RUnlock()
	ids := append([]types.SymbolId(nil), g.byName[name]...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*symbol.Symbol, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.byID[id])
	}
	return out
}

// Find returns every symbol satisfying predicate.
func (g *Graph) Find(predicate func(*symbol.Symbol) bool) []*symbol.Symbol {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []*symbol.Symbol
	for _, sym := range g.byID {
		if predicate(sym) {
			out = append(out, sym)
		}
	}
	return out
}

// edgesOfKind filters a relationship slice to the requested kind(s).
func edgesOfKind(rels []symbol.Relationship, kinds ...types.RelationKind) []symbol.Relationship {
	if len(kinds) == 0 {
		return rels
	}
	want := make(map[types.RelationKind]struct{}, len(kinds))
	for _, k := range kinds {
		want[k] = struct{}{}
	}
	var out []symbol.Relationship
	for _, rel := range rels {
		if _, ok := want[rel.Kind]; ok {
			out = append(out, rel)
		}
	}
	return out
}

// CalledFunctions returns every symbol id that id calls (spec §4.D,
// get_called_functions_with_metadata).
func (g *Graph) CalledFunctions(id types.SymbolId) []symbol.Relationship {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return edgesOfKind(g.forward[id], types.RelationCalls)
}

// Callers returns every symbol id that calls id (the inverse query).
func (g *Graph) Callers(id types.SymbolId) []symbol.Relationship {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return edgesOfKind(g.reverse[id], types.RelationCalledBy)
}

// Implementations returns every symbol that implements/extends id (spec
// §4.D, get_implementations).
func (g *Graph) Implementations(id types.SymbolId) []symbol.Relationship {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return edgesOfKind(g.reverse[id], types.RelationImplementedBy, types.RelationExtendedBy)
}

// Defines returns every member id's container directly owns (spec §4.D,
// find_defines).
func (g *Graph) Defines(id types.SymbolId) []symbol.Relationship {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return edgesOfKind(g.forward[id], types.RelationDefines)
}

// Uses returns every RelationUses edge id is the source of (spec §4.D,
// find_uses) — typically a variable/field symbol pointing at the symbol for
// its declared type, when that type resolved to something in the index.
func (g *Graph) Uses(id types.SymbolId) []symbol.Relationship {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return edgesOfKind(g.forward[id], types.RelationUses)
}

// Dependencies returns every symbol id depends on, across calls, uses, and
// implements/extends edges (spec §4.D, get_dependencies).
func (g *Graph) Dependencies(id types.SymbolId) []symbol.Relationship {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return edgesOfKind(g.forward[id], types.RelationCalls, types.RelationUses, types.RelationImplements, types.RelationExtends)
}

// Dependents returns every symbol that depends on id (get_dependents).
func (g *Graph) Dependents(id types.SymbolId) []symbol.Relationship {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return edgesOfKind(g.reverse[id], types.RelationCalledBy, types.RelationUsedBy, types.RelationImplementedBy, types.RelationExtendedBy)
}

// ImpactNode is one hop in an impact-radius BFS result.
type ImpactNode struct {
	Symbol *symbol.Symbol
	Depth  int
	Via    types.RelationKind
}

// ImpactRadius performs a breadth-first walk over types.ReverseKinds
// starting at id, up to maxDepth hops (spec §4.H): "who is affected if this
// symbol changes". maxDepth <= 0 means unbounded.
func (g *Graph) ImpactRadius(id types.SymbolId, maxDepth int) []ImpactNode {
	g.mu.RLock()
	defer g.mu.RUnlock()

	visited := map[types.SymbolId]struct{}{id: {}}
	queue := []ImpactNode{{Symbol: g.byID[id], Depth: 0}}
	var out []ImpactNode

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current.Depth > 0 {
			out = append(out, current)
		}
		if maxDepth > 0 && current.Depth >= maxDepth {
			continue
		}
		if current.Symbol == nil {
			continue
		}
		for _, rel := range g.reverse[current.Symbol.ID] {
			if !isReverseKind(rel.Kind) {
				continue
			}
			if _, seen := visited[rel.To]; seen {
				continue
			}
			visited[rel.To] = struct{}{}
			queue = append(queue, ImpactNode{Symbol: g.byID[rel.To], Depth: current.Depth + 1, Via: rel.Kind})
		}
	}
	return out
}

func isReverseKind(k types.RelationKind) bool {
	for _, rk := range types.ReverseKinds {
		if rk == k {
			return true
		}
	}
	return false
}

// resolveContainerByNameUnlocked finds a container-kind symbol (struct,
// class, interface, trait, enum) registered under name.
func (g *Graph) resolveContainerByNameUnlocked(name string) (types.SymbolId, bool) {
	for _, id := range g.byName[name] {
		if sym := g.byID[id]; sym != nil && containerKinds[sym.Kind] {
			return id, true
		}
	}
	return 0, false
}

// ResolveMethod finds which symbol actually provides method on
// receiverType, walking the type's real inheritance chain via g.inheritance
// rather than taking the first same-named symbol anywhere in the index
// (spec §4.D, find_inherent_methods / §4.F S2).
func (g *Graph) ResolveMethod(receiverType, method string) (*symbol.Symbol, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	owner, ok := g.inheritance.ResolveMethod(receiverType, method)
	if !ok {
		return nil, false
	}
	ownerID, ok := g.resolveContainerByNameUnlocked(owner)
	if !ok {
		return nil, false
	}
	for _, rel := range g.forward[ownerID] {
		if rel.Kind != types.RelationDefines {
			continue
		}
		if sym := g.byID[rel.To]; sym != nil && sym.Name == method {
			return sym, true
		}
	}
	return nil, false
}

// InherentMethods returns the methods id (a struct/class/trait impl owner)
// defines directly, excluding those defined via a trait implementation
// (spec §4.D, find_inherent_methods — Rust's inherent-vs-trait-impl
// distinction generalizes here to "Metadata != trait_impl").
func (g *Graph) InherentMethods(id types.SymbolId) []*symbol.Symbol {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []*symbol.Symbol
	for _, rel := range g.forward[id] {
		if rel.Kind != types.RelationDefines || rel.Metadata == "trait_impl" {
			continue
		}
		if sym := g.byID[rel.To]; sym != nil {
			out = append(out, sym)
		}
	}
	return out
}

// VariableTypesInFile returns every find_variable_types record extracted
// from fileID (spec §4.D, find_variable_types).
func (g *Graph) VariableTypesInFile(fileID types.FileId) []symbol.VariableType {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]symbol.VariableType(nil), g.variableTypes[fileID]...)
}

// Stats reports the graph's current size.
func (g *Graph) Stats() (symbols, relationships, pending int) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	rels := 0
	for _, v := range g.forward {
		rels += len(v)
	}
	return len(g.byID), rels, len(g.pending)
}
