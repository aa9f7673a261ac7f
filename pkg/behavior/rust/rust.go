// Package rust implements the Rust language definition: tree-sitter-rust
// extraction plus behavior distinguishing trait impls from inherent impls
// (spec §4.E) and crate-relative module path formatting.
package rust

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
	queries.Register(grammar.Rust, symbolspkg.RustQueries, importspkg.RustQueries)
	queries.RegisterCalls(grammar.Rust, callspkg.RustQueries)
}

var kinds = common.CategoryKinds{
	"function":   types.KindFunction,
	"struct":     types.KindStruct,
	"enum":       types.KindEnum,
	"enum_member": types.KindEnumMember,
	"trait":      types.KindTrait,
	"type_alias": types.KindTypeAlias,
	"module":     types.KindModule,
	"macro":      types.KindMacro,
	"constant":   types.KindConstant,
	"field":      types.KindField,
}

// Parser adapts common.Extractor to lang.Parser for Rust.
type Parser struct{ extractor *common.Extractor }

func NewParser(qm *queries.Manager, logger *slog.Logger) *Parser {
	return &Parser{extractor: common.NewExtractor(grammar.Rust, qm, kinds, logger)}
}

func (p *Parser) Parse(tree *ts.Tree, source []byte, fileID types.FileId, counter *types.SymbolCounter) (*lang.ParseResult, error) {
	res, err := p.extractor.Extract(tree, source, fileID, counter)
	if err != nil {
		return nil, err
	}
	return &lang.ParseResult{Symbols: res.Symbols, Relationships: res.Relationships, Imports: res.Imports, VariableTypes: res.VariableTypes}, nil
}

// Behavior implements lang.Behavior for Rust.
type Behavior struct {
	// CrateName prefixes module paths derived from file paths, e.g. "my_crate".
	CrateName string
}

func (b *Behavior) ModulePathFromFile(relPath string) string {
	trimmed := strings.TrimSuffix(relPath, ".rs")
	trimmed = strings.TrimPrefix(trimmed, "src/")
	trimmed = strings.TrimSuffix(trimmed, "/mod")
	trimmed = strings.TrimSuffix(trimmed, "/lib")
	trimmed = strings.TrimSuffix(trimmed, "lib")
	trimmed = strings.TrimSuffix(trimmed, "main")
	parts := strings.Split(strings.Trim(trimmed, "/"), "/")
	path := strings.Join(parts, "::")
	if b.CrateName == "" {
		return path
	}
	if path == "" {
		return "crate"
	}
	return "crate::" + path
}

func (b *Behavior) ImportMatchesSymbol(importPath, symbolModulePath string) bool {
	return importPath == symbolModulePath || strings.HasSuffix(symbolModulePath, "::"+lastSegment(importPath))
}

func lastSegment(path string) string {
	parts := strings.Split(path, "::")
	return parts[len(parts)-1]
}

func (b *Behavior) MapRelationship(hint string) types.RelationKind {
	switch hint {
	case "trait_impl", "inherent":
		return types.RelationImplements
	default:
		return types.RelationReferences
	}
}

func (b *Behavior) ModuleSeparator() string { return "::" }

func (b *Behavior) SupportsTraits() bool           { return true }
func (b *Behavior) SupportsInherentMethods() bool   { return true }
func (b *Behavior) InheritanceRelationName() string { return "implements" }

func (b *Behavior) NewScope(fileID types.FileId) resolve.Scope {
	return resolve.NewGenericScope(fileID)
}

func (b *Behavior) NewInheritanceResolver() resolve.InheritanceResolver {
	return resolve.NewGenericInheritanceResolver()
}

// ResolveMethodTrait consults the inheritance resolver's recorded impl
// edges: a method on a Rust type may be provided by an inherent impl (type
// itself "provides" it) or by a trait impl (trait name is the owner).
func (b *Behavior) ResolveMethodTrait(ir resolve.InheritanceResolver, receiverType, method string) (string, bool) {
	return ir.ResolveMethod(receiverType, method)
}

// IsExternalImportPath reports a use path as external unless it starts
// with crate/self/super (this crate) or this crate's own name.
func (b *Behavior) IsExternalImportPath(importPath string) bool {
	if strings.HasPrefix(importPath, "crate") || strings.HasPrefix(importPath, "self") || strings.HasPrefix(importPath, "super") {
		return false
	}
	if b.CrateName != "" && strings.HasPrefix(importPath, b.CrateName) {
		return false
	}
	return true
}

func Definition(qm *queries.Manager, logger *slog.Logger) *lang.Definition {
	return &lang.Definition{
		ID:         grammar.Rust,
		Extensions: grammar.Extensions(grammar.Rust),
		Parser:     NewParser(qm, logger),
		Behavior:   &Behavior{},
	}
}
