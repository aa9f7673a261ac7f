// Command codanna is the CLI surface over the indexer core (spec §6),
// generalizing the teacher's cmd/uispec (a fixed validate/serve CLI for
// one design-system catalog) into the index/retrieve subcommands a
// multi-language code-intelligence indexer needs.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/codanna/codanna/pkg/behavior/cfamily"
	"github.com/codanna/codanna/pkg/behavior/csharp"
	"github.com/codanna/codanna/pkg/behavior/golang"
	"github.com/codanna/codanna/pkg/behavior/kotlin"
	"github.com/codanna/codanna/pkg/behavior/php"
	"github.com/codanna/codanna/pkg/behavior/python"
	"github.com/codanna/codanna/pkg/behavior/rust"
	"github.com/codanna/codanna/pkg/behavior/typescript"
	"github.com/codanna/codanna/pkg/codannaerr"
	"github.com/codanna/codanna/pkg/config"
	"github.com/codanna/codanna/pkg/indexer"
	"github.com/codanna/codanna/pkg/mcplog"
	"github.com/codanna/codanna/pkg/mcpserver"
	"github.com/codanna/codanna/pkg/parser"
	"github.com/codanna/codanna/pkg/parser/grammar"
	"github.com/codanna/codanna/pkg/parser/queries"
	"github.com/codanna/codanna/pkg/project"
	"github.com/codanna/codanna/pkg/registry"
	"github.com/codanna/codanna/pkg/store"
	"github.com/codanna/codanna/pkg/types"
	"github.com/codanna/codanna/pkg/util"
)

const version = "0.1.0-dev"

// Exit codes (spec §6): 0 success, 1 general, 2 blocking, 3 not-found,
// 4 parse, 5 I/O, 6 config, 7 index-corrupted, 8 unsupported.
const (
	exitOK              = 0
	exitGeneral         = 1
	exitBlocking        = 2
	exitNotFound        = 3
	exitParse           = 4
	exitIO              = 5
	exitConfig          = 6
	exitIndexCorrupted  = 7
	exitUnsupported     = 8
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(exitGeneral)
	}

	command := os.Args[1]
	var code int
	switch command {
	case "index":
		code = runIndex(os.Args[2:])
	case "retrieve":
		code = runRetrieve(os.Args[2:])
	case "serve":
		code = runServe(os.Args[2:])
	case "version":
		fmt.Printf("codanna %s\n", version)
		code = exitOK
	case "help":
		printUsage()
		code = exitOK
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage()
		code = exitGeneral
	}
	os.Exit(code)
}

func printUsage() {
	fmt.Println("Usage: codanna <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  index <path> [--progress]")
	fmt.Println("  retrieve {symbol|callers|calls|implementations|uses|impact|search|defines|dependencies|describe|source} [args]")
	fmt.Println("  serve      Start MCP server")
	fmt.Println("  version    Print version")
	fmt.Println("  help       Show this help message")
}

// newRegistry registers every compiled-in language behavior (spec §4.C).
func newRegistry(qm *queries.Manager, logger *slog.Logger) *registry.Registry {
	reg := registry.New()
	reg.Register(golang.Definition(qm, logger))
	reg.Register(rust.Definition(qm, logger))
	reg.Register(python.Definition(qm, logger))
	reg.Register(typescript.DefinitionTypeScript(qm, logger))
	reg.Register(typescript.DefinitionJavaScript(qm, logger))
	reg.Register(php.Definition(qm, logger))
	reg.Register(cfamily.DefinitionC(qm, logger))
	reg.Register(cfamily.DefinitionCpp(qm, logger))
	reg.Register(csharp.Definition(qm, logger))
	reg.Register(kotlin.Definition(qm, logger))
	return reg
}

// applyProjectConfig reads whichever of go.mod/composer.json/tsconfig.json
// exist at root and injects the alias rules they declare into the matching
// language's Behavior, so golang.Behavior.ModuleRoot, php.Behavior.PSR4, and
// typescript.Behavior.BaseURL are populated from real project config rather
// than left zero-valued (spec §4.E/§4.F; pkg/project was otherwise dead
// code never reached from the index command).
func applyProjectConfig(reg *registry.Registry, root string, logger *slog.Logger) {
	if def, err := reg.Get(grammar.Go); err == nil {
		if b, ok := def.Behavior.(*golang.Behavior); ok {
			if goModPath := filepath.Join(root, "go.mod"); fileExists(goModPath) {
				if moduleRoot, _, err := project.ModuleRootFromGoMod(goModPath); err == nil {
					b.ModuleRoot = moduleRoot
				} else {
					logger.Warn("failed to parse go.mod", "path", goModPath, "error", err)
				}
			}
		}
	}

	if def, err := reg.Get(grammar.PHP); err == nil {
		if b, ok := def.Behavior.(*php.Behavior); ok {
			if composerPath := filepath.Join(root, "composer.json"); fileExists(composerPath) {
				if rules, _, err := project.RulesFromComposerJSON(composerPath); err == nil {
					b.PSR4 = rules.Paths
				} else {
					logger.Warn("failed to parse composer.json", "path", composerPath, "error", err)
				}
			}
		}
	}

	tsconfigPath := filepath.Join(root, "tsconfig.json")
	if !fileExists(tsconfigPath) {
		tsconfigPath = filepath.Join(root, "jsconfig.json")
	}
	if fileExists(tsconfigPath) {
		if rules, _, err := project.RulesFromTSConfig(tsconfigPath); err == nil {
			for _, id := range []grammar.ID{grammar.TypeScript, grammar.JavaScript} {
				if def, err := reg.Get(id); err == nil {
					if b, ok := def.Behavior.(*typescript.Behavior); ok {
						b.BaseURL = rules.BaseURL
					}
				}
			}
		} else {
			logger.Warn("failed to parse tsconfig", "path", tsconfigPath, "error", err)
		}
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// openIndexer wires the registry, parser manager, and symbol indexer for
// workspace root, loading settings.toml if present.
func openIndexer(root string) (*indexer.SymbolIndexer, *registry.Registry, config.Settings, *parser.Manager, error) {
	logger := util.NewLogger(util.DefaultLoggerConfig())

	settings, err := config.Load(root + "/settings.toml")
	if err != nil {
		return nil, nil, config.Settings{}, nil, err
	}

	pm := parser.NewManager(logger)
	qm := queries.NewManager(pm, logger)
	reg := newRegistry(qm, logger)
	applyProjectConfig(reg, root, logger)

	idx := indexer.NewSymbolIndexer(indexer.DefaultSymbolIndexerConfig(), reg, pm, root, logger)
	return idx, reg, settings, pm, nil
}

// runIndex scans and indexes path. The only flag it reads is --progress;
// --force, --threads, --max-files and --dry-run are not recognised, and
// every run does a full scan.
func runIndex(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: codanna index <path> [--progress]")
		return exitGeneral
	}

	path := args[0]
	progress := false
	for _, a := range args[1:] {
		if a == "--progress" {
			progress = true
		}
	}

	idx, reg, settings, pm, err := openIndexer(path)
	if err != nil {
		return reportError(err)
	}
	defer pm.Close()

	checker := config.NewChecker(settings)
	logger := util.NewLogger(util.DefaultLoggerConfig())
	scanner := indexer.NewWorkspaceScanner(reg, checker, idx, logger)

	var cb indexer.ProgressCallback
	if progress {
		cb = func(filesDone, filesTotal int, currentFile string) {
			fmt.Fprintf(os.Stderr, "\r[%d/%d] %s", filesDone, filesTotal, currentFile)
		}
	}

	stats, err := scanner.ScanWorkspace(path, indexer.DefaultScanOptions(), cb)
	if err != nil {
		return reportError(err)
	}
	if progress {
		fmt.Fprintln(os.Stderr)
	}

	fmt.Printf("indexed %d files (%d symbols, %d relationships) in %dms\n",
		stats.FilesIndexed, stats.SymbolsExtracted, stats.RelationshipsExtracted, stats.TotalTimeMs)
	if stats.FilesFailed > 0 {
		fmt.Printf("%d file(s) failed to parse\n", stats.FilesFailed)
	}

	if err := saveIndex(idx, settings.IndexPath); err != nil {
		return reportError(err)
	}
	return exitOK
}

func saveIndex(idx *indexer.SymbolIndexer, indexPath string) error {
	docs := store.NewJSONStore()
	for _, fs := range idx.GetAllFileSymbols() {
		for _, sym := range fs.Symbols {
			docs.Put(store.FromSymbol(sym, fs.FilePath))
		}
	}
	return docs.Save(indexPath)
}

func runRetrieve(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: codanna retrieve {symbol|callers|calls|implementations|uses|impact|search|defines|dependencies|describe|source} [args]")
		return exitGeneral
	}

	root := "."
	idx, _, settings, pm, err := openIndexer(root)
	if err != nil {
		return reportError(err)
	}
	defer pm.Close()

	docs, _, err := store.LoadJSONStore(settings.IndexPath)
	if err != nil {
		// A missing/corrupted document store does not block graph queries
		// (spec §4.I: the document store's absence degrades search only).
		docs = store.NewJSONStore()
	}

	op := args[0]
	rest := args[1:]

	switch op {
	case "symbol":
		if len(rest) < 1 {
			return exitGeneral
		}
		return printJSON(idx.FindSymbolsByName(rest[0]))
	case "calls":
		id, err := parseSymbolID(rest)
		if err != nil {
			return exitGeneral
		}
		return printJSON(idx.Graph().CalledFunctions(id))
	case "callers":
		id, err := parseSymbolID(rest)
		if err != nil {
			return exitGeneral
		}
		return printJSON(idx.Graph().Callers(id))
	case "implementations":
		id, err := parseSymbolID(rest)
		if err != nil {
			return exitGeneral
		}
		return printJSON(idx.Graph().Implementations(id))
	case "dependencies":
		id, err := parseSymbolID(rest)
		if err != nil {
			return exitGeneral
		}
		return printJSON(idx.Graph().Dependencies(id))
	case "uses":
		id, err := parseSymbolID(rest)
		if err != nil {
			return exitGeneral
		}
		return printJSON(idx.Graph().Dependents(id))
	case "impact":
		id, err := parseSymbolID(rest)
		if err != nil {
			return exitGeneral
		}
		depth := 0
		if len(rest) > 1 {
			depth, _ = strconv.Atoi(rest[1])
		}
		return printJSON(idx.Graph().ImpactRadius(id, depth))
	case "search":
		if len(rest) < 1 {
			return exitGeneral
		}
		return printJSON(docs.Search(strings.Join(rest, " "), settings.Search.DefaultLimit, "", ""))
	case "defines":
		if len(rest) < 1 {
			return exitGeneral
		}
		return printJSON(idx.FindSymbolsByName(rest[0]))
	case "describe":
		id, err := parseSymbolID(rest)
		if err != nil {
			return exitGeneral
		}
		return printJSON(store.BuildSymbolContext(idx.Graph(), id, store.IncludeAll))
	case "source":
		id, err := parseSymbolID(rest)
		if err != nil {
			return exitGeneral
		}
		return runSource(idx, id)
	default:
		fmt.Fprintf(os.Stderr, "unknown retrieve operation: %s\n", op)
		return exitGeneral
	}
}

// runSource prints a symbol's literal source text, fetched with an O(1)
// byte-offset slice off a memory-mapped file rather than a re-parse or a
// line-by-line read.
func runSource(idx *indexer.SymbolIndexer, id types.SymbolId) int {
	sym, ok := idx.Graph().Get(id)
	if !ok {
		fmt.Fprintf(os.Stderr, "no such symbol: %d\n", id)
		return exitNotFound
	}
	path, ok := idx.FilePathFor(sym.FileID)
	if !ok {
		fmt.Fprintf(os.Stderr, "no source path recorded for symbol %d\n", id)
		return exitNotFound
	}

	cache := util.NewFileCache(util.DefaultFileCacheConfig())
	defer cache.Close()

	code, err := cache.FetchCode(path, sym.StartByte, sym.EndByte)
	if err != nil {
		return reportError(codannaerr.Wrap(codannaerr.CodeFileRead, "verify the file still exists at its indexed path", err,
			"failed to fetch source for %s", sym.Name))
	}
	fmt.Println(code)
	return exitOK
}

func parseSymbolID(args []string) (types.SymbolId, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("missing symbol id")
	}
	n, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return 0, err
	}
	return types.SymbolId(uint32(n)), nil
}

func printJSON(v any) int {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode result: %v\n", err)
		return exitGeneral
	}
	return exitOK
}

func runServe(args []string) int {
	root := "."
	idx, _, settings, pm, err := openIndexer(root)
	if err != nil {
		return reportError(err)
	}
	defer pm.Close()

	docs, _, err := store.LoadJSONStore(settings.IndexPath)
	if err != nil {
		docs = store.NewJSONStore()
	}

	var logger *mcplog.Logger
	if logPath := os.Getenv("CODANNA_MCP_LOG"); logPath != "" {
		logger, err = mcplog.NewLogger(logPath)
		if err != nil {
			return reportError(err)
		}
	}

	srv := mcpserver.NewServer(idx, docs, logger)
	defer srv.Close()

	if err := srv.ServeStdio(); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		return exitGeneral
	}
	return exitOK
}

// reportError prints err and maps its codannaerr.Code to an exit code
// (spec §6, §7).
func reportError(err error) int {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)

	var ce *codannaerr.Error
	if !errors.As(err, &ce) {
		return exitGeneral
	}

	switch ce.Code {
	case codannaerr.CodeNotFound:
		return exitNotFound
	case codannaerr.CodeParseError:
		return exitParse
	case codannaerr.CodeFileRead, codannaerr.CodeSaveFailure:
		return exitIO
	case codannaerr.CodeConfig:
		return exitConfig
	case codannaerr.CodeIncompatibleSchema:
		return exitIndexCorrupted
	case codannaerr.CodeLanguageNotFound, codannaerr.CodeLanguageDisabled,
		codannaerr.CodeExtensionNotMapped, codannaerr.CodeParserCreation:
		return exitUnsupported
	default:
		return exitGeneral
	}
}

