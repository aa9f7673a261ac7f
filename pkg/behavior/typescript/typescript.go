// Package typescript implements the TypeScript and JavaScript language
// definitions. Both share the same extraction shape (the teacher's
// original two-language scope, pkg/extractor + pkg/parser/queries in the
// teacher repo) and the same value/type-space-aware behavior; TypeScript
// additionally distinguishes type-only imports (spec §4.E, "TypeScript
// alias enhancement").
package typescript

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
	queries.Register(grammar.TypeScript, symbolspkg.TSQueries, importspkg.TSQueries)
	queries.Register(grammar.JavaScript, symbolspkg.JSQueries, importspkg.JSQueries)
	queries.RegisterCalls(grammar.TypeScript, callspkg.TSQueries)
	queries.RegisterCalls(grammar.JavaScript, callspkg.JSQueries)
}

var kinds = common.CategoryKinds{
	"function":   types.KindFunction,
	"class":      types.KindClass,
	"interface":  types.KindInterface,
	"enum":       types.KindEnum,
	"method":     types.KindMethod,
	"variable":   types.KindVariable,
	"type":       types.KindTypeAlias,
}

// Parser adapts common.Extractor to lang.Parser for either grammar.ID
// (TypeScript or JavaScript share this implementation).
type Parser struct {
	extractor *common.Extractor
}

func NewParser(id grammar.ID, qm *queries.Manager, logger *slog.Logger) *Parser {
	return &Parser{extractor: common.NewExtractor(id, qm, kinds, logger)}
}

func (p *Parser) Parse(tree *ts.Tree, source []byte, fileID types.FileId, counter *types.SymbolCounter) (*lang.ParseResult, error) {
	res, err := p.extractor.Extract(tree, source, fileID, counter)
	if err != nil {
		return nil, err
	}
	return &lang.ParseResult{Symbols: res.Symbols, Relationships: res.Relationships, Imports: res.Imports, VariableTypes: res.VariableTypes}, nil
}

// Behavior implements lang.Behavior for TypeScript/JavaScript, sharing one
// implementation since both resolve modules by relative/alias path.
type Behavior struct {
	// BaseURL is tsconfig.json's compilerOptions.baseUrl, used by
	// IsExternalImportPath to treat non-relative specifiers under it as
	// project-internal.
	BaseURL string
}

func (b *Behavior) ModulePathFromFile(relPath string) string {
	trimmed := relPath
	for _, ext := range []string{".tsx", ".ts", ".jsx", ".js", ".mjs", ".cjs"} {
		trimmed = strings.TrimSuffix(trimmed, ext)
	}
	trimmed = strings.TrimSuffix(trimmed, "/index")
	return trimmed
}

func (b *Behavior) ImportMatchesSymbol(importPath, symbolModulePath string) bool {
	clean := strings.TrimPrefix(importPath, "./")
	clean = strings.TrimPrefix(clean, "../")
	return strings.HasSuffix(symbolModulePath, clean) || symbolModulePath == importPath
}

func (b *Behavior) MapRelationship(hint string) types.RelationKind {
	switch hint {
	case "trait_impl", "inherent":
		return types.RelationImplements
	default:
		return types.RelationExtends
	}
}

func (b *Behavior) ModuleSeparator() string { return "/" }

func (b *Behavior) SupportsTraits() bool           { return false }
func (b *Behavior) SupportsInherentMethods() bool   { return false }
func (b *Behavior) InheritanceRelationName() string { return "extends" }

func (b *Behavior) NewScope(fileID types.FileId) resolve.Scope {
	return resolve.NewGenericScope(fileID)
}

func (b *Behavior) NewInheritanceResolver() resolve.InheritanceResolver {
	return resolve.NewGenericInheritanceResolver()
}

func (b *Behavior) ResolveMethodTrait(ir resolve.InheritanceResolver, receiverType, method string) (string, bool) {
	return ir.ResolveMethod(receiverType, method)
}

// IsExternalImportPath reports a bare specifier (no relative prefix, e.g.
// "react" or "lodash/debounce") as external; relative and alias-rooted
// paths resolve to sibling modules within the project.
func (b *Behavior) IsExternalImportPath(importPath string) bool {
	if strings.HasPrefix(importPath, "./") || strings.HasPrefix(importPath, "../") || strings.HasPrefix(importPath, "/") {
		return false
	}
	if b.BaseURL != "" && strings.HasPrefix(importPath, b.BaseURL) {
		return false
	}
	return true
}

// DefinitionTypeScript bundles the TypeScript parser and behavior.
func DefinitionTypeScript(qm *queries.Manager, logger *slog.Logger) *lang.Definition {
	return &lang.Definition{
		ID:         grammar.TypeScript,
		Extensions: grammar.Extensions(grammar.TypeScript),
		Parser:     NewParser(grammar.TypeScript, qm, logger),
		Behavior:   &Behavior{},
	}
}

// DefinitionJavaScript bundles the JavaScript parser and behavior.
func DefinitionJavaScript(qm *queries.Manager, logger *slog.Logger) *lang.Definition {
	return &lang.Definition{
		ID:         grammar.JavaScript,
		Extensions: grammar.Extensions(grammar.JavaScript),
		Parser:     NewParser(grammar.JavaScript, qm, logger),
		Behavior:   &Behavior{},
	}
}
