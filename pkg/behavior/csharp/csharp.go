// Package csharp implements the C# language definition: tree-sitter-c-
// sharp extraction, namespace-based module paths, and ad-hoc XML doc
// comment scanning (spec §4.E — tree-sitter-c-sharp exposes doc comments
// as unstructured `///` comment trivia, not a structured node, so this
// package re-scans the raw source around each definition's start line
// rather than relying on a query capture).
package csharp

import (
	"bytes"
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
	queries.Register(grammar.CSharp, symbolspkg.CSharpQueries, importspkg.CSharpQueries)
	queries.RegisterCalls(grammar.CSharp, callspkg.CSharpQueries)
}

var kinds = common.CategoryKinds{
	"method":      types.KindMethod,
	"class":       types.KindClass,
	"interface":   types.KindInterface,
	"struct":      types.KindStruct,
	"enum":        types.KindEnum,
	"enum_member": types.KindEnumMember,
	"module":      types.KindNamespace,
	"field":       types.KindField,
}

// Parser adapts common.Extractor to lang.Parser for C#, then walks each
// emitted symbol's preceding lines to attach XML doc comment text.
type Parser struct{ extractor *common.Extractor }

func NewParser(qm *queries.Manager, logger *slog.Logger) *Parser {
	return &Parser{extractor: common.NewExtractor(grammar.CSharp, qm, kinds, logger)}
}

func (p *Parser) Parse(tree *ts.Tree, source []byte, fileID types.FileId, counter *types.SymbolCounter) (*lang.ParseResult, error) {
	res, err := p.extractor.Extract(tree, source, fileID, counter)
	if err != nil {
		return nil, err
	}
	lines := bytes.Split(source, []byte("\n"))
	for _, sym := range res.Symbols {
		if doc := precedingXMLDoc(lines, int(sym.Range.Start.Line)); doc != "" {
			sym.DocComment = doc
		}
	}
	return &lang.ParseResult{Symbols: res.Symbols, Relationships: res.Relationships, Imports: res.Imports, VariableTypes: res.VariableTypes}, nil
}

// precedingXMLDoc walks upward from startLine (0-based, the definition's
// first line) collecting the `///` comment lines above it, skipping blank
// lines and stopping at the first other line, then returns them joined in
// source order.
func precedingXMLDoc(lines [][]byte, startLine int) string {
	var collected []string
	for i := startLine - 1; i >= 0; i-- {
		trimmed := strings.TrimSpace(string(lines[i]))
		if strings.HasPrefix(trimmed, "///") {
			collected = append(collected, strings.TrimSpace(strings.TrimPrefix(trimmed, "///")))
			continue
		}
		if trimmed == "" {
			continue
		}
		break
	}
	if len(collected) == 0 {
		return ""
	}
	for i, j := 0, len(collected)-1; i < j; i, j = i+1, j-1 {
		collected[i], collected[j] = collected[j], collected[i]
	}
	return strings.Join(collected, "\n")
}

// Behavior implements lang.Behavior for C#.
type Behavior struct{}

func (b *Behavior) ModulePathFromFile(relPath string) string {
	trimmed := strings.TrimSuffix(relPath, ".cs")
	return strings.ReplaceAll(strings.Trim(trimmed, "/"), "/", ".")
}

func (b *Behavior) ImportMatchesSymbol(importPath, symbolModulePath string) bool {
	return importPath == symbolModulePath || strings.HasPrefix(symbolModulePath, importPath+".")
}

func (b *Behavior) MapRelationship(hint string) types.RelationKind { return types.RelationImplements }

func (b *Behavior) ModuleSeparator() string { return "." }

func (b *Behavior) SupportsTraits() bool           { return false }
func (b *Behavior) SupportsInherentMethods() bool   { return false }
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

// IsExternalImportPath reports a using directive as external when it's a
// BCL or well-known third-party namespace root; anything else is assumed
// to be this project's own namespace tree.
func (b *Behavior) IsExternalImportPath(importPath string) bool {
	for _, root := range []string{"System", "Microsoft", "Newtonsoft", "Serilog"} {
		if importPath == root || strings.HasPrefix(importPath, root+".") {
			return true
		}
	}
	return false
}

func Definition(qm *queries.Manager, logger *slog.Logger) *lang.Definition {
	return &lang.Definition{
		ID:         grammar.CSharp,
		Extensions: grammar.Extensions(grammar.CSharp),
		Parser:     NewParser(qm, logger),
		Behavior:   &Behavior{},
	}
}
