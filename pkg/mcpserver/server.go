// Package mcpserver exposes the query surface (spec §6) over the Model
// Context Protocol, generalizing the teacher's pkg/mcp server (a fixed
// nine-tool design-system catalog API) into a thin wrapper over
// pkg/indexer.SymbolIndexer's find/calls/implementations/dependencies/
// impact/search/context operations.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/codanna/codanna/pkg/indexer"
	"github.com/codanna/codanna/pkg/mcplog"
	"github.com/codanna/codanna/pkg/store"
	"github.com/codanna/codanna/pkg/util"
)

const serverVersion = "0.1.0-dev"

// Server implements the MCP server for codanna, exposing the indexer's
// query surface as MCP tools.
type Server struct {
	mcpServer *server.MCPServer
	indexer   *indexer.SymbolIndexer
	docs      store.DocumentStore
	files     util.FileCache
	logger    *mcplog.Logger // may be nil if logging is disabled
}

// NewServer creates an MCP server backed by idx for graph queries and docs
// for full-text search. Pass nil for logger to disable call logging.
func NewServer(idx *indexer.SymbolIndexer, docs store.DocumentStore, logger *mcplog.Logger) *Server {
	s := &Server{indexer: idx, docs: docs, logger: logger, files: util.NewFileCache(util.DefaultFileCacheConfig())}

	opts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	}
	if logger != nil {
		opts = append(opts, server.WithToolHandlerMiddleware(s.loggingMiddleware()))
	}

	s.mcpServer = server.NewMCPServer("codanna", serverVersion, opts...)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: findSymbolTool(), Handler: s.handleFindSymbol},
		server.ServerTool{Tool: getCalleesTool(), Handler: s.handleGetCallees},
		server.ServerTool{Tool: getCallersTool(), Handler: s.handleGetCallers},
		server.ServerTool{Tool: getImplementationsTool(), Handler: s.handleGetImplementations},
		server.ServerTool{Tool: getDependenciesTool(), Handler: s.handleGetDependencies},
		server.ServerTool{Tool: getDependentsTool(), Handler: s.handleGetDependents},
		server.ServerTool{Tool: getImpactRadiusTool(), Handler: s.handleGetImpactRadius},
		server.ServerTool{Tool: findDefinesTool(), Handler: s.handleFindDefines},
		server.ServerTool{Tool: findUsesTool(), Handler: s.handleFindUses},
		server.ServerTool{Tool: findVariableTypesTool(), Handler: s.handleFindVariableTypes},
		server.ServerTool{Tool: findInherentMethodsTool(), Handler: s.handleFindInherentMethods},
		server.ServerTool{Tool: resolveMethodTool(), Handler: s.handleResolveMethod},
		server.ServerTool{Tool: searchTool(), Handler: s.handleSearch},
		server.ServerTool{Tool: describeSymbolTool(), Handler: s.handleDescribeSymbol},
		server.ServerTool{Tool: getSourceTool(), Handler: s.handleGetSource},
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// Close shuts down the logger and file cache. Should be deferred after
// NewServer.
func (s *Server) Close() error {
	_ = s.files.Close()
	if s.logger != nil {
		return s.logger.Close()
	}
	return nil
}
