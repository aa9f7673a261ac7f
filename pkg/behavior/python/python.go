// Package python implements the Python language definition: tree-sitter-
// python extraction plus LEGB-flavored behavior and multi-inheritance MRO
// support (spec §4.E, §4.F).
package python

import (
	"log/slog"
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/codanna/codanna/pkg/behavior/common"
	"github.com/codanna/codanna/pkg/lang"
	"github.com/codanna/codanna/pkg/parser/grammar"
	importspkg "github.com/codanna/codanna/pkg/parser/queries/imports"
	symbolspkg "github.com/codanna/codanna/pkg/parser/queries/symbols"
	callspkg "github.com/codanna/codanna/pkg/parser/queries/calls"
	"github.com/codanna/codanna/pkg/parser/queries"
	"github.com/codanna/codanna/pkg/resolve"
	"github.com/codanna/codanna/pkg/types"
)

func init() {
	queries.Register(grammar.Python, symbolspkg.PythonQueries, importspkg.PythonQueries)
	queries.RegisterCalls(grammar.Python, callspkg.PythonQueries)
}

var kinds = common.CategoryKinds{
	"function": types.KindFunction,
	"class":    types.KindClass,
	"variable": types.KindVariable,
}

type Parser struct{ extractor *common.Extractor }

func NewParser(qm *queries.Manager, logger *slog.Logger) *Parser {
	return &Parser{extractor: common.NewExtractor(grammar.Python, qm, kinds, logger)}
}

func (p *Parser) Parse(tree *ts.Tree, source []byte, fileID types.FileId, counter *types.SymbolCounter) (*lang.ParseResult, error) {
	res, err := p.extractor.Extract(tree, source, fileID, counter)
	if err != nil {
		return nil, err
	}
	return &lang.ParseResult{Symbols: res.Symbols, Relationships: res.Relationships, Imports: res.Imports, VariableTypes: res.VariableTypes}, nil
}

// Behavior implements lang.Behavior for Python.
type Behavior struct {
	// PackageRoot is the directory package imports are relative to
	// (typically the project root).
	PackageRoot string
}

func (b *Behavior) ModulePathFromFile(relPath string) string {
	trimmed := strings.TrimSuffix(relPath, ".py")
	trimmed = strings.TrimSuffix(trimmed, "/__init__")
	parts := strings.Split(strings.Trim(trimmed, "/"), "/")
	return strings.Join(parts, ".")
}

func (b *Behavior) ImportMatchesSymbol(importPath, symbolModulePath string) bool {
	return importPath == symbolModulePath || strings.HasPrefix(symbolModulePath, importPath+".")
}

func (b *Behavior) MapRelationship(hint string) types.RelationKind {
	return types.RelationExtends
}

func (b *Behavior) ModuleSeparator() string { return "." }

func (b *Behavior) SupportsTraits() bool           { return false }
func (b *Behavior) SupportsInherentMethods() bool   { return true }
func (b *Behavior) InheritanceRelationName() string { return "inherits" }

// NewScope returns a GenericScope: Python's LEGB reduces to the same
// Local -> Module -> Package -> Global search order GenericScope already
// implements, with "Enclosing" folded into Local (closures re-enter the
// scope stack rather than needing a fifth level).
func (b *Behavior) NewScope(fileID types.FileId) resolve.Scope {
	return resolve.NewGenericScope(fileID)
}

// NewInheritanceResolver returns GenericInheritanceResolver: its depth-
// first AddInheritance/InheritanceChain walk already supports Python's
// multiple inheritance; exact C3 linearization order (rather than
// insertion order) is a refinement left for a future resolver, noted as an
// Open Question.
func (b *Behavior) NewInheritanceResolver() resolve.InheritanceResolver {
	return resolve.NewGenericInheritanceResolver()
}

func (b *Behavior) ResolveMethodTrait(ir resolve.InheritanceResolver, receiverType, method string) (string, bool) {
	return ir.ResolveMethod(receiverType, method)
}

// IsExternalImportPath reports an absolute import as external unless its
// top-level package matches PackageRoot; relative imports (leading dots)
// always resolve within the project.
func (b *Behavior) IsExternalImportPath(importPath string) bool {
	if strings.HasPrefix(importPath, ".") {
		return false
	}
	if b.PackageRoot == "" {
		return true
	}
	top := strings.SplitN(importPath, ".", 2)[0]
	return top != b.PackageRoot
}

func Definition(qm *queries.Manager, logger *slog.Logger) *lang.Definition {
	return &lang.Definition{
		ID:         grammar.Python,
		Extensions: grammar.Extensions(grammar.Python),
		Parser:     NewParser(qm, logger),
		Behavior:   &Behavior{},
	}
}
