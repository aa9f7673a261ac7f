// Package php implements the PHP language definition: tree-sitter-php
// extraction plus PSR-4 namespace-aware behavior (spec §4.E/§4.F).
package php

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
	queries.Register(grammar.PHP, symbolspkg.PHPQueries, importspkg.PHPQueries)
	queries.RegisterCalls(grammar.PHP, callspkg.PHPQueries)
}

var kinds = common.CategoryKinds{
	"function":  types.KindFunction,
	"class":     types.KindClass,
	"interface": types.KindInterface,
	"trait":     types.KindTrait,
	"method":    types.KindMethod,
	"enum":      types.KindEnum,
	"constant":  types.KindConstant,
	"module":    types.KindNamespace,
	"field":     types.KindField,
}

type Parser struct{ extractor *common.Extractor }

func NewParser(qm *queries.Manager, logger *slog.Logger) *Parser {
	return &Parser{extractor: common.NewExtractor(grammar.PHP, qm, kinds, logger)}
}

func (p *Parser) Parse(tree *ts.Tree, source []byte, fileID types.FileId, counter *types.SymbolCounter) (*lang.ParseResult, error) {
	res, err := p.extractor.Extract(tree, source, fileID, counter)
	if err != nil {
		return nil, err
	}
	return &lang.ParseResult{Symbols: res.Symbols, Relationships: res.Relationships, Imports: res.Imports, VariableTypes: res.VariableTypes}, nil
}

// Behavior implements lang.Behavior for PHP, deriving namespaces from
// PSR-4 prefix/directory rules supplied by the project resolver
// (pkg/project.RulesFromComposerJSON) rather than from the file path alone.
type Behavior struct {
	// PSR4 maps a namespace prefix to its base directory, as read from
	// composer.json's autoload.psr-4 section.
	PSR4 map[string][]string
}

func (b *Behavior) ModulePathFromFile(relPath string) string {
	trimmed := strings.TrimSuffix(relPath, ".php")
	for prefix, dirs := range b.PSR4 {
		for _, dir := range dirs {
			dir = strings.TrimSuffix(dir, "/")
			if strings.HasPrefix(trimmed, dir+"/") {
				rest := strings.TrimPrefix(trimmed, dir+"/")
				return "\\" + strings.TrimSuffix(prefix, "\\") + "\\" + strings.ReplaceAll(rest, "/", "\\")
			}
		}
	}
	return "\\" + strings.ReplaceAll(strings.Trim(trimmed, "/"), "/", "\\")
}

func (b *Behavior) ImportMatchesSymbol(importPath, symbolModulePath string) bool {
	return strings.TrimPrefix(importPath, "\\") == strings.TrimPrefix(symbolModulePath, "\\")
}

func (b *Behavior) MapRelationship(hint string) types.RelationKind {
	return types.RelationImplements
}

func (b *Behavior) ModuleSeparator() string { return "\\" }

func (b *Behavior) SupportsTraits() bool           { return true }
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

// IsExternalImportPath reports a use path as external unless it falls
// under one of this project's PSR-4 prefixes.
func (b *Behavior) IsExternalImportPath(importPath string) bool {
	trimmed := strings.TrimPrefix(importPath, "\\")
	for prefix := range b.PSR4 {
		if strings.HasPrefix(trimmed, strings.TrimPrefix(prefix, "\\")) {
			return false
		}
	}
	return true
}

func Definition(qm *queries.Manager, logger *slog.Logger) *lang.Definition {
	return &lang.Definition{
		ID:         grammar.PHP,
		Extensions: grammar.Extensions(grammar.PHP),
		Parser:     NewParser(qm, logger),
		Behavior:   &Behavior{},
	}
}
