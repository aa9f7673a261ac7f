// Package cfamily implements the C and C++ language definitions, sharing
// tree-sitter query execution and module-path conventions. C++ additionally
// gets a nonDedupResolver that does not collapse method names
// repeated across diamond ancestors (spec §4.E, "C++ non-dedup multiple
// inheritance").
package cfamily

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
	queries.Register(grammar.C, symbolspkg.CQueries, importspkg.CQueries)
	queries.Register(grammar.Cpp, symbolspkg.CppQueries, importspkg.CppQueries)
	queries.RegisterCalls(grammar.C, callspkg.CQueries)
	queries.RegisterCalls(grammar.Cpp, callspkg.CppQueries)
}

var cKinds = common.CategoryKinds{
	"function":   types.KindFunction,
	"struct":     types.KindStruct,
	"enum":       types.KindEnum,
	"type_alias": types.KindTypeAlias,
}

var cppKinds = common.CategoryKinds{
	"function": types.KindFunction,
	"method":   types.KindMethod,
	"class":    types.KindClass,
	"struct":   types.KindStruct,
	"enum":     types.KindEnum,
	"module":   types.KindNamespace,
}

type Parser struct{ extractor *common.Extractor }

func newParser(id grammar.ID, kinds common.CategoryKinds, qm *queries.Manager, logger *slog.Logger) *Parser {
	return &Parser{extractor: common.NewExtractor(id, qm, kinds, logger)}
}

func NewCParser(qm *queries.Manager, logger *slog.Logger) *Parser {
	return newParser(grammar.C, cKinds, qm, logger)
}

func NewCppParser(qm *queries.Manager, logger *slog.Logger) *Parser {
	return newParser(grammar.Cpp, cppKinds, qm, logger)
}

func (p *Parser) Parse(tree *ts.Tree, source []byte, fileID types.FileId, counter *types.SymbolCounter) (*lang.ParseResult, error) {
	res, err := p.extractor.Extract(tree, source, fileID, counter)
	if err != nil {
		return nil, err
	}
	return &lang.ParseResult{Symbols: res.Symbols, Relationships: res.Relationships, Imports: res.Imports, VariableTypes: res.VariableTypes}, nil
}

// Behavior implements lang.Behavior for both C and C++; C never uses the
// namespace-related members (no namespaces in C), but shares the same type
// to avoid a near-empty duplicate.
type Behavior struct {
	IsCpp bool
}

func (b *Behavior) ModulePathFromFile(relPath string) string {
	trimmed := relPath
	for _, ext := range []string{".cpp", ".cc", ".cxx", ".hpp", ".hh", ".c", ".h"} {
		trimmed = strings.TrimSuffix(trimmed, ext)
	}
	return strings.ReplaceAll(strings.Trim(trimmed, "/"), "/", "::")
}

func (b *Behavior) ImportMatchesSymbol(importPath, symbolModulePath string) bool {
	base := strings.TrimSuffix(importPath, ".h")
	base = strings.TrimSuffix(base, ".hpp")
	return strings.HasSuffix(symbolModulePath, base)
}

func (b *Behavior) MapRelationship(hint string) types.RelationKind { return types.RelationExtends }

func (b *Behavior) ModuleSeparator() string { return "::" }

func (b *Behavior) SupportsTraits() bool         { return false }
func (b *Behavior) SupportsInherentMethods() bool { return true }
func (b *Behavior) InheritanceRelationName() string {
	if b.IsCpp {
		return "extends"
	}
	return ""
}

func (b *Behavior) NewScope(fileID types.FileId) resolve.Scope {
	return resolve.NewGenericScope(fileID)
}

// NewInheritanceResolver returns the generic resolver for C (no
// inheritance concept) and the non-deduplicating resolver for C++, where a
// method reachable through two distinct base-class paths must be reported
// twice: ambiguous-name diamonds are themselves diagnostic information a
// single de-duplicated list would hide.
func (b *Behavior) NewInheritanceResolver() resolve.InheritanceResolver {
	if b.IsCpp {
		return newNonDedupResolver()
	}
	return resolve.NewGenericInheritanceResolver()
}

func (b *Behavior) ResolveMethodTrait(ir resolve.InheritanceResolver, receiverType, method string) (string, bool) {
	return ir.ResolveMethod(receiverType, method)
}

// IsExternalImportPath reports a #include target as external unless it
// looks like a project-relative path (contains a directory separator or an
// explicit "./" prefix); bare headers (<vector>, "stdio.h") sit outside
// the indexed project.
func (b *Behavior) IsExternalImportPath(importPath string) bool {
	trimmed := strings.TrimPrefix(importPath, "./")
	return !strings.Contains(trimmed, "/")
}

func DefinitionC(qm *queries.Manager, logger *slog.Logger) *lang.Definition {
	return &lang.Definition{
		ID:         grammar.C,
		Extensions: grammar.Extensions(grammar.C),
		Parser:     NewCParser(qm, logger),
		Behavior:   &Behavior{IsCpp: false},
	}
}

func DefinitionCpp(qm *queries.Manager, logger *slog.Logger) *lang.Definition {
	return &lang.Definition{
		ID:         grammar.Cpp,
		Extensions: grammar.Extensions(grammar.Cpp),
		Parser:     NewCppParser(qm, logger),
		Behavior:   &Behavior{IsCpp: true},
	}
}
