// Package lang defines the interfaces that tie a tree-sitter grammar, a
// language's extraction rules, and its resolution semantics together into
// one pluggable unit (spec §4.C-§4.E). Concrete implementations live under
// pkg/behavior/<language>; pkg/registry holds the runtime map from
// grammar.ID to Definition, generalizing the teacher's two-case
// Language enum (pkg/parser/language.go) to the full language set.
package lang

import (
	"github.com/codanna/codanna/pkg/parser/grammar"
	"github.com/codanna/codanna/pkg/resolve"
	"github.com/codanna/codanna/pkg/symbol"
	"github.com/codanna/codanna/pkg/types"
	ts "github.com/tree-sitter/go-tree-sitter"
)

// ParseResult is everything a single-file parse produces before resolution:
// the symbols it defines, its relationships as name-keyed unresolved edges
// needing project-wide lookup, the raw imports for the project resolver,
// and the variable-type bindings it observed.
type ParseResult struct {
	Symbols       []*symbol.Symbol
	Relationships []symbol.UnresolvedRelationship
	Imports       []symbol.Import
	VariableTypes []symbol.VariableType
}

// Parser extracts symbols and relationships from one already-parsed
// tree-sitter tree (spec §4.C). Implementations hold the compiled queries
// for their language; the shared query-execution plumbing lives in
// pkg/parser.
type Parser interface {
	Parse(tree *ts.Tree, source []byte, fileID types.FileId, counter *types.SymbolCounter) (*ParseResult, error)
}

// Behavior encodes everything about a language's semantics that the
// resolution and indexing layers need beyond raw extraction (spec §4.E):
// module path formatting, import classification,
// and the hooks into the resolve package's scope/inheritance abstractions.
type Behavior interface {
	// ModulePathFromFile derives the language's canonical module path for a
	// file relative to the project root, e.g. "crate::foo::bar" (Rust),
	// "app.models.user" (Python), "\App\Models" (PHP).
	ModulePathFromFile(relPath string) string

	// ImportMatchesSymbol reports whether importPath could plausibly bind to
	// a symbol whose module path is symbolModulePath, per the language's
	// import resolution rules (aliasing, globs, relative paths).
	ImportMatchesSymbol(importPath, symbolModulePath string) bool

	// MapRelationship translates a language-specific relation hint (as
	// recorded in UnresolvedRelationship.Metadata) to a types.RelationKind,
	// e.g. Rust "trait impl" vs "inherent impl" both map to RelationImplements
	// but carry different metadata for display.
	MapRelationship(hint string) types.RelationKind

	// ModuleSeparator returns the language's path separator ("::", ".", "\\").
	ModuleSeparator() string

	// SupportsTraits / SupportsInherentMethods distinguish languages (Rust)
	// where a method can be defined outside any trait from those where
	// every method belongs to a declared type.
	SupportsTraits() bool
	SupportsInherentMethods() bool

	// InheritanceRelationName names the RelationKind used for this
	// language's primary inheritance mechanism label, e.g. "implements" for
	// Rust trait impls, "extends" for TS class extension.
	InheritanceRelationName() string

	// NewScope and NewInheritanceResolver construct per-file/per-project
	// resolution state. Every language's NewScope returns
	// resolve.NewGenericScope unchanged; no language-specific lookup order
	// (Python LEGB, Rust crate-relative) is implemented. NewInheritanceResolver
	// returns resolve.NewGenericInheritanceResolver for every language except
	// C++, which gets a non-deduplicating resolver.
	NewScope(fileID types.FileId) resolve.Scope
	NewInheritanceResolver() resolve.InheritanceResolver

	// ResolveMethodTrait resolves which trait or interface provides a
	// method called on a receiver of the given type, consulting the
	// inheritance resolver and returning the owning type name.
	ResolveMethodTrait(ir resolve.InheritanceResolver, receiverType, method string) (string, bool)

	// IsExternalImportPath reports whether importPath refers outside the
	// indexed project (a third-party package, not a sibling module), per
	// the language's own path conventions (spec §4.F, "Import-origin
	// discipline"). Feeds Scope.PopulateImports so a local symbol can
	// never silently shadow a reference meant for an external import.
	IsExternalImportPath(importPath string) bool
}

// Definition bundles a language's identity, grammar access, parser, and
// behavior into the single unit the registry manages (spec §4.C).
type Definition struct {
	ID         grammar.ID
	Extensions []string
	Parser     Parser
	Behavior   Behavior
}
