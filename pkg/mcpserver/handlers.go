package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/codanna/codanna/pkg/store"
	"github.com/codanna/codanna/pkg/symbol"
	"github.com/codanna/codanna/pkg/types"
)

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func symbolID(req mcp.CallToolRequest, key string) (types.SymbolId, error) {
	n, err := req.RequireFloat(key)
	if err != nil {
		return 0, err
	}
	return types.SymbolId(uint32(n)), nil
}

func (s *Server) handleFindSymbol(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.indexer.FindSymbolsByName(name))
}

func (s *Server) handleGetCallees(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := symbolID(req, "symbol_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.resolveRelationships(s.indexer.Graph().CalledFunctions(id)))
}

func (s *Server) handleGetCallers(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := symbolID(req, "symbol_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.resolveRelationships(s.indexer.Graph().Callers(id)))
}

func (s *Server) handleGetImplementations(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := symbolID(req, "symbol_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.resolveRelationships(s.indexer.Graph().Implementations(id)))
}

func (s *Server) handleGetDependencies(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := symbolID(req, "symbol_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.groupByKind(s.indexer.Graph().Dependencies(id)))
}

func (s *Server) handleGetDependents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := symbolID(req, "symbol_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.groupByKind(s.indexer.Graph().Dependents(id)))
}

func (s *Server) handleGetImpactRadius(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := symbolID(req, "symbol_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	depth := int(req.GetFloat("depth", 0))
	return jsonResult(s.indexer.Graph().ImpactRadius(id, depth))
}

func (s *Server) handleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if s.docs == nil {
		return mcp.NewToolResultError("full-text search is not configured for this session"), nil
	}
	limit := int(req.GetFloat("limit", 20))
	kindFilter := req.GetString("kind_filter", "")
	moduleFilter := req.GetString("module_filter", "")
	return jsonResult(s.docs.Search(query, limit, kindFilter, moduleFilter))
}

func (s *Server) handleFindDefines(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := symbolID(req, "symbol_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.resolveRelationships(s.indexer.Graph().Defines(id)))
}

func (s *Server) handleFindUses(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := symbolID(req, "symbol_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.resolveRelationships(s.indexer.Graph().Uses(id)))
}

func (s *Server) handleFindVariableTypes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n, err := req.RequireFloat("file_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.indexer.Graph().VariableTypesInFile(types.FileId(uint32(n))))
}

func (s *Server) handleFindInherentMethods(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := symbolID(req, "symbol_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.indexer.Graph().InherentMethods(id))
}

func (s *Server) handleResolveMethod(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	receiverType, err := req.RequireString("receiver_type")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	method, err := req.RequireString("method")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sym, ok := s.indexer.Graph().ResolveMethod(receiverType, method)
	if !ok {
		return mcp.NewToolResultError("method not found on type or its ancestors"), nil
	}
	return jsonResult(sym)
}

func (s *Server) handleDescribeSymbol(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := symbolID(req, "symbol_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(store.BuildSymbolContext(s.indexer.Graph(), id, store.IncludeAll))
}

func (s *Server) handleGetSource(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := symbolID(req, "symbol_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sym, ok := s.indexer.Graph().Get(id)
	if !ok {
		return mcp.NewToolResultError("no such symbol"), nil
	}
	path, ok := s.indexer.FilePathFor(sym.FileID)
	if !ok {
		return mcp.NewToolResultError("no source path recorded for symbol"), nil
	}
	code, err := s.files.FetchCode(path, sym.StartByte, sym.EndByte)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to fetch source: %v", err)), nil
	}
	return mcp.NewToolResultText(code), nil
}

// resolveRelationships resolves each edge's To endpoint to a full Symbol.
func (s *Server) resolveRelationships(rels []symbol.Relationship) []*symbol.Symbol {
	out := make([]*symbol.Symbol, 0, len(rels))
	for _, rel := range rels {
		if sym, ok := s.indexer.Graph().Get(rel.To); ok {
			out = append(out, sym)
		}
	}
	return out
}

// groupByKind resolves edges and groups them by RelationKind (spec §6,
// "get_dependencies(id) -> Map<RelationKind, [Symbol]>").
func (s *Server) groupByKind(rels []symbol.Relationship) map[types.RelationKind][]*symbol.Symbol {
	out := make(map[types.RelationKind][]*symbol.Symbol)
	for _, rel := range rels {
		if sym, ok := s.indexer.Graph().Get(rel.To); ok {
			out[rel.Kind] = append(out[rel.Kind], sym)
		}
	}
	return out
}
