// Package golang implements the Go language definition: extraction via
// tree-sitter-go queries, and behavior reflecting Go's package-based
// module system and interface-based structural "implements" relation.
package golang

import (
	"log/slog"
	"path"
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/codanna/codanna/pkg/behavior/common"
	"github.com/codanna/codanna/pkg/lang"
	"github.com/codanna/codanna/pkg/parser/grammar"
	"github.com/codanna/codanna/pkg/parser/queries"
	symbolspkg "github.com/codanna/codanna/pkg/parser/queries/symbols"
	importspkg "github.com/codanna/codanna/pkg/parser/queries/imports"
	callspkg "github.com/codanna/codanna/pkg/parser/queries/calls"
	"github.com/codanna/codanna/pkg/resolve"
	"github.com/codanna/codanna/pkg/types"
)

func init() {
	queries.Register(grammar.Go, symbolspkg.GoQueries, importspkg.GoQueries)
	queries.RegisterCalls(grammar.Go, callspkg.GoQueries)
}

var kinds = common.CategoryKinds{
	"function":     types.KindFunction,
	"method":       types.KindMethod,
	"struct":       types.KindStruct,
	"interface":    types.KindInterface,
	"type_alias":   types.KindTypeAlias,
	"constant":     types.KindConstant,
	"variable":     types.KindVariable,
}

// Parser adapts common.Extractor to lang.Parser for Go.
type Parser struct {
	extractor *common.Extractor
}

// NewParser constructs a Go Parser using qm for compiled queries.
func NewParser(qm *queries.Manager, logger *slog.Logger) *Parser {
	return &Parser{extractor: common.NewExtractor(grammar.Go, qm, kinds, logger)}
}

func (p *Parser) Parse(tree *ts.Tree, source []byte, fileID types.FileId, counter *types.SymbolCounter) (*lang.ParseResult, error) {
	res, err := p.extractor.Extract(tree, source, fileID, counter)
	if err != nil {
		return nil, err
	}
	return &lang.ParseResult{Symbols: res.Symbols, Relationships: res.Relationships, Imports: res.Imports, VariableTypes: res.VariableTypes}, nil
}

// Behavior implements lang.Behavior for Go: package-path module naming.
// Go never declares interface satisfaction, and no method-set matching is
// done anywhere in the indexer, so no receiver -> interface "implements"
// edges are recorded for Go.
type Behavior struct {
	// ModuleRoot is the Go module path from go.mod (e.g.
	// "github.com/codanna/codanna"), joined with a file's package-relative
	// directory to form its full import path.
	ModuleRoot string
}

func (b *Behavior) ModulePathFromFile(relPath string) string {
	dir := path.Dir(strings.ReplaceAll(relPath, "\\", "/"))
	if dir == "." {
		return b.ModuleRoot
	}
	if b.ModuleRoot == "" {
		return dir
	}
	return path.Join(b.ModuleRoot, dir)
}

func (b *Behavior) ImportMatchesSymbol(importPath, symbolModulePath string) bool {
	return importPath == symbolModulePath || strings.HasPrefix(symbolModulePath, importPath+"/")
}

func (b *Behavior) MapRelationship(hint string) types.RelationKind {
	switch hint {
	case "trait_impl", "inherent":
		return types.RelationImplements
	default:
		return types.RelationReferences
	}
}

func (b *Behavior) ModuleSeparator() string { return "/" }

func (b *Behavior) SupportsTraits() bool           { return false }
func (b *Behavior) SupportsInherentMethods() bool   { return true }
func (b *Behavior) InheritanceRelationName() string { return "implements" }

func (b *Behavior) NewScope(fileID types.FileId) resolve.Scope {
	return resolve.NewGenericScope(fileID)
}

func (b *Behavior) NewInheritanceResolver() resolve.InheritanceResolver {
	return resolve.NewGenericInheritanceResolver()
}

func (b *Behavior) ResolveMethodTrait(ir resolve.InheritanceResolver, receiverType, method string) (string, bool) {
	return ir.ResolveMethod(receiverType, method)
}

// IsExternalImportPath reports an import path as external unless it falls
// under this module's own root, matching go.mod's module directive
// (pkg/project.ModuleRootFromGoMod). Standard-library packages (no module
// root prefix) count as external too, since they live outside this project.
func (b *Behavior) IsExternalImportPath(importPath string) bool {
	if b.ModuleRoot == "" {
		return true
	}
	return importPath != b.ModuleRoot && !strings.HasPrefix(importPath, b.ModuleRoot+"/")
}

// Definition bundles the Go parser and behavior for registry wiring.
func Definition(qm *queries.Manager, logger *slog.Logger) *lang.Definition {
	return &lang.Definition{
		ID:         grammar.Go,
		Extensions: grammar.Extensions(grammar.Go),
		Parser:     NewParser(qm, logger),
		Behavior:   &Behavior{},
	}
}
