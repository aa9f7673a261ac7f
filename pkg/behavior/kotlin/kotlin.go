// Package kotlin implements the Kotlin language definition: tree-sitter-
// kotlin extraction and package-qualified module paths.
package kotlin

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
	queries.Register(grammar.Kotlin, symbolspkg.KotlinQueries, importspkg.KotlinQueries)
	queries.RegisterCalls(grammar.Kotlin, callspkg.KotlinQueries)
}

var kinds = common.CategoryKinds{
	"function":    types.KindFunction,
	"class":       types.KindClass,
	"variable":    types.KindVariable,
	"enum_member": types.KindEnumMember,
}

type Parser struct{ extractor *common.Extractor }

func NewParser(qm *queries.Manager, logger *slog.Logger) *Parser {
	return &Parser{extractor: common.NewExtractor(grammar.Kotlin, qm, kinds, logger)}
}

func (p *Parser) Parse(tree *ts.Tree, source []byte, fileID types.FileId, counter *types.SymbolCounter) (*lang.ParseResult, error) {
	res, err := p.extractor.Extract(tree, source, fileID, counter)
	if err != nil {
		return nil, err
	}
	return &lang.ParseResult{Symbols: res.Symbols, Relationships: res.Relationships, Imports: res.Imports, VariableTypes: res.VariableTypes}, nil
}

// Behavior implements lang.Behavior for Kotlin. Module paths are derived
// from the file's directory structure rather than its `package` declaration
// since the latter requires a separate node walk the symbol query doesn't
// currently capture; directory-derived paths are the same approximation
// golang.Behavior makes for packages without an explicit module file.
type Behavior struct{}

func (b *Behavior) ModulePathFromFile(relPath string) string {
	trimmed := strings.TrimSuffix(relPath, ".kt")
	trimmed = strings.TrimSuffix(trimmed, ".kts")
	const sourceRoot = "src/main/kotlin/"
	if idx := strings.Index(trimmed, sourceRoot); idx >= 0 {
		trimmed = trimmed[idx+len(sourceRoot):]
	}
	return strings.ReplaceAll(strings.Trim(trimmed, "/"), "/", ".")
}

func (b *Behavior) ImportMatchesSymbol(importPath, symbolModulePath string) bool {
	if strings.HasSuffix(importPath, ".*") {
		return strings.HasPrefix(symbolModulePath, strings.TrimSuffix(importPath, "*"))
	}
	return importPath == symbolModulePath
}

func (b *Behavior) MapRelationship(hint string) types.RelationKind { return types.RelationExtends }

func (b *Behavior) ModuleSeparator() string { return "." }

func (b *Behavior) SupportsTraits() bool           { return false }
func (b *Behavior) SupportsInherentMethods() bool   { return true }
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

// IsExternalImportPath reports an import as external when it's rooted in
// the Kotlin/Java/Android standard packages rather than project code.
func (b *Behavior) IsExternalImportPath(importPath string) bool {
	for _, root := range []string{"kotlin.", "kotlinx.", "java.", "javax.", "androidx.", "android."} {
		if strings.HasPrefix(importPath, root) {
			return true
		}
	}
	return false
}

func Definition(qm *queries.Manager, logger *slog.Logger) *lang.Definition {
	return &lang.Definition{
		ID:         grammar.Kotlin,
		Extensions: grammar.Extensions(grammar.Kotlin),
		Parser:     NewParser(qm, logger),
		Behavior:   &Behavior{},
	}
}
