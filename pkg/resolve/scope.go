// Package resolve holds the language-agnostic resolution abstractions: the
// Scope and InheritanceResolver interfaces each language behavior
// implements or wraps, plus generic default implementations. This is a
// direct idiomatic-Go port of original_source/src/parsing/resolution.rs,
// generalized from a single trait object per file to the full language set
// (spec §4.F).
package resolve

import (
	"strings"

	"github.com/codanna/codanna/pkg/symbol"
	"github.com/codanna/codanna/pkg/types"
)

// Level is a scope level searched in a fixed order during resolution,
// ported from resolution.rs's ScopeLevel.
type Level int

const (
	LevelLocal Level = iota
	LevelModule
	LevelPackage
	LevelGlobal
)

// searchOrder is the order resolve() checks scope levels in: innermost to
// outermost, matching resolution.rs's Local -> Module -> Package -> Global.
var searchOrder = []Level{LevelLocal, LevelModule, LevelPackage, LevelGlobal}

// ScopeKind distinguishes the kind of lexical scope currently entered, used
// by Scope.ExitScope to decide whether to clear local bindings. It mirrors
// the cases of ScopeType actually referenced by resolution.rs (Global and
// Function); languages needing finer distinctions (block, closure) extend
// it in their own behavior package rather than here.
type ScopeKind int

const (
	ScopeKindGlobal ScopeKind = iota
	ScopeKindFunction
	ScopeKindBlock
)

// ScopeFrame is one entry on the scope stack.
type ScopeFrame struct {
	Kind ScopeKind
	Name string // function/block name, empty for Global
}

// Scope is the language-agnostic resolution scope interface. Every language
// behavior returns GenericScope as-is, so all languages share its single
// local -> module -> package -> global search order; language-specific
// binding rules (Rust crate paths, Python LEGB, TypeScript hoisting and
// type vs value space) are not modelled.
type Scope interface {
	AddSymbol(name string, id types.SymbolId, level Level)
	Resolve(name string) (types.SymbolId, bool)
	ClearLocalScope()
	EnterScope(frame ScopeFrame)
	ExitScope()
	SymbolsInScope() []ScopeEntry

	// PopulateImports classifies each import's origin with classify (true
	// means external) and registers its local binding name so
	// IsExternalImport can later answer whether a bare name a call/use
	// edge targets is actually bound to an external import rather than a
	// same-named local symbol (spec §4.F, "Import-origin discipline").
	// Returns the imports with Origin set, since Import is a value type.
	PopulateImports(imports []symbol.Import, classify func(path string) bool) []symbol.Import

	// RegisterImportBinding records a single local name's origin directly,
	// for callers that classify imports outside PopulateImports.
	RegisterImportBinding(localName string, origin symbol.ImportOrigin)

	// IsExternalImport reports whether localName is currently bound to an
	// import classified as external (spec §4.F testable property,
	// "External-import safety").
	IsExternalImport(localName string) bool

	// ExternalBindingNames lists every local name currently bound to an
	// external import.
	ExternalBindingNames() []string
}

// ScopeEntry is one (name, id, level) triple, used for diagnostics.
type ScopeEntry struct {
	Name  string
	ID    types.SymbolId
	Level Level
}

// GenericScope is the default Scope implementation, direct port of
// GenericResolutionContext. It searches local, then module, then package,
// then global; every language behavior uses it as-is.
type GenericScope struct {
	fileID     types.FileId
	symbols    map[Level]map[string]types.SymbolId
	scopeStack []ScopeFrame

	// importBindings maps a local name (alias, or the last path segment
	// when unaliased) to the origin classification of the import that
	// introduced it, so a same-named local symbol elsewhere in the index
	// never gets mistaken for this file's reference to the import.
	importBindings map[string]symbol.ImportOrigin
}

// NewGenericScope creates a scope context for fileID with all four levels
// pre-seeded empty, and the scope stack starting at Global.
func NewGenericScope(fileID types.FileId) *GenericScope {
	return &GenericScope{
		fileID: fileID,
		symbols: map[Level]map[string]types.SymbolId{
			LevelLocal:   {},
			LevelModule:  {},
			LevelPackage: {},
			LevelGlobal:  {},
		},
		scopeStack:     []ScopeFrame{{Kind: ScopeKindGlobal}},
		importBindings: make(map[string]symbol.ImportOrigin),
	}
}

// localImportBindingName derives the name an import introduces into local
// scope: its alias if one was given, otherwise the last segment of its
// path across whichever separator the source language uses.
func localImportBindingName(imp symbol.Import) string {
	if imp.Alias != "" {
		return imp.Alias
	}
	path := imp.Path
	for _, sep := range []string{"::", "\\", ".", "/"} {
		if idx := strings.LastIndex(path, sep); idx >= 0 {
			path = path[idx+len(sep):]
		}
	}
	return path
}

// PopulateImports classifies each import with classify and records its
// local binding name, returning the imports with Origin now set (Import is
// a value type, so the caller must use the returned slice).
func (g *GenericScope) PopulateImports(imports []symbol.Import, classify func(path string) bool) []symbol.Import {
	out := make([]symbol.Import, len(imports))
	for i, imp := range imports {
		origin := symbol.OriginInternal
		if classify != nil && classify(imp.Path) {
			origin = symbol.OriginExternal
		}
		imp.Origin = origin
		out[i] = imp
		g.RegisterImportBinding(localImportBindingName(imp), origin)
	}
	return out
}

func (g *GenericScope) RegisterImportBinding(localName string, origin symbol.ImportOrigin) {
	if localName == "" {
		return
	}
	if g.importBindings == nil {
		g.importBindings = make(map[string]symbol.ImportOrigin)
	}
	g.importBindings[localName] = origin
}

func (g *GenericScope) IsExternalImport(localName string) bool {
	return g.importBindings[localName] == symbol.OriginExternal
}

func (g *GenericScope) ExternalBindingNames() []string {
	var out []string
	for name, origin := range g.importBindings {
		if origin == symbol.OriginExternal {
			out = append(out, name)
		}
	}
	return out
}

func (g *GenericScope) AddSymbol(name string, id types.SymbolId, level Level) {
	bucket, ok := g.symbols[level]
	if !ok {
		bucket = make(map[string]types.SymbolId)
		g.symbols[level] = bucket
	}
	bucket[name] = id
}

func (g *GenericScope) Resolve(name string) (types.SymbolId, bool) {
	for _, level := range searchOrder {
		if bucket, ok := g.symbols[level]; ok {
			if id, ok := bucket[name]; ok {
				return id, true
			}
		}
	}
	return 0, false
}

func (g *GenericScope) ClearLocalScope() {
	if bucket, ok := g.symbols[LevelLocal]; ok {
		for k := range bucket {
			delete(bucket, k)
		}
	}
}

func (g *GenericScope) EnterScope(frame ScopeFrame) {
	g.scopeStack = append(g.scopeStack, frame)
}

// ExitScope pops the current frame and, if the scope it returns into is a
// function body, clears local bindings — matching resolution.rs's behavior
// of clearing locals whenever the new top-of-stack is ScopeType::Function.
func (g *GenericScope) ExitScope() {
	if len(g.scopeStack) == 0 {
		return
	}
	g.scopeStack = g.scopeStack[:len(g.scopeStack)-1]
	if len(g.scopeStack) > 0 && g.scopeStack[len(g.scopeStack)-1].Kind == ScopeKindFunction {
		g.ClearLocalScope()
	}
}

func (g *GenericScope) SymbolsInScope() []ScopeEntry {
	var out []ScopeEntry
	for level, bucket := range g.symbols {
		for name, id := range bucket {
			out = append(out, ScopeEntry{Name: name, ID: id, Level: level})
		}
	}
	return out
}
