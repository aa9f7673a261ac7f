package indexer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/codanna/codanna/pkg/codannaerr"
	"github.com/codanna/codanna/pkg/lang"
	"github.com/codanna/codanna/pkg/parser"
	"github.com/codanna/codanna/pkg/registry"
	"github.com/codanna/codanna/pkg/types"
)

// FileProcessor turns raw file content into a FileSymbols by running one
// parse through the registered language's Parser and Behavior, replacing
// the teacher's single TypeScript/JavaScript-only extractor.Extractor
// (pkg/extractor/extractor.go) with a dispatch over every registered
// grammar.ID.
type FileProcessor struct {
	registry      *registry.Registry
	parserManager *parser.Manager
	counter       *types.SymbolCounter
	root          string
}

// NewFileProcessor constructs a FileProcessor. root is the workspace root,
// used to compute each file's module path relative to it.
func NewFileProcessor(reg *registry.Registry, pm *parser.Manager, counter *types.SymbolCounter, root string) *FileProcessor {
	return &FileProcessor{registry: reg, parserManager: pm, counter: counter, root: root}
}

// Process parses content as filePath's detected language and returns the
// resulting FileSymbols, annotating every emitted Symbol with its
// language-specific ModulePath via the language's Behavior.
func (fp *FileProcessor) Process(filePath string, content []byte, fileID types.FileId) (*FileSymbols, error) {
	tree, id, err := fp.parserManager.ParseFile(content, filePath, fp.registry)
	if err != nil {
		return nil, codannaerr.Wrap(codannaerr.CodeParseError, "verify the file is well-formed for its language", err,
			"failed to parse %s", filePath)
	}
	defer tree.Close()

	def, err := fp.registry.Get(id)
	if err != nil {
		return nil, err
	}

	result, err := def.Parser.Parse(tree, content, fileID, fp.counter)
	if err != nil {
		return nil, codannaerr.Wrap(codannaerr.CodeParseError, "file may use unsupported syntax", err,
			"failed to extract symbols from %s", filePath)
	}

	relPath := relativeTo(fp.root, filePath)
	modulePath := def.Behavior.ModulePathFromFile(relPath)
	for _, sym := range result.Symbols {
		sym.WithModulePath(joinModulePath(modulePath, def.Behavior.ModuleSeparator(), sym.Name, sym.Kind))
	}

	// Classify each import's origin and record which local names resolve
	// to an external binding, so the graph can later refuse to let a local
	// symbol shadow a call meant for one of them (spec §4.F).
	scope := def.Behavior.NewScope(fileID)
	imports := scope.PopulateImports(result.Imports, def.Behavior.IsExternalImportPath)

	return &FileSymbols{
		FilePath:            filePath,
		FileID:              fileID,
		LanguageID:          string(id),
		Symbols:             result.Symbols,
		Imports:             imports,
		Relationships:       result.Relationships,
		VariableTypes:       result.VariableTypes,
		ExternalImportNames: scope.ExternalBindingNames(),
		ContentHash:         ComputeContentHash(content),
	}, nil
}

// joinModulePath appends a top-level symbol's name to its file's module
// path, e.g. ("app.models", ".", "User", class) -> "app.models.User". A
// symbol whose kind is itself a module-like container (namespace) keeps
// the file's module path unchanged.
func joinModulePath(filePath, sep, name string, kind types.SymbolKind) string {
	if kind == types.KindNamespace || kind == types.KindModule {
		return filePath
	}
	if filePath == "" {
		return name
	}
	return filePath + sep + name
}

func relativeTo(root, path string) string {
	if root == "" {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// languageDisplayNames renders one "id (ext, ...)" line per definition, in
// the order defs is given.
func languageDisplayNames(defs []*lang.Definition) []string {
	out := make([]string, 0, len(defs))
	for _, d := range defs {
		out = append(out, fmt.Sprintf("%s (%s)", d.ID, strings.Join(d.Extensions, ", ")))
	}
	return out
}
