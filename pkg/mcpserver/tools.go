package mcpserver

import "github.com/mark3labs/mcp-go/mcp"

func findSymbolTool() mcp.Tool {
	return mcp.NewTool("find_symbol",
		mcp.WithDescription("Find every symbol registered under a given name"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Symbol name to look up")),
	)
}

func getCalleesTool() mcp.Tool {
	return mcp.NewTool("get_callees",
		mcp.WithDescription("List the functions a symbol calls, with relationship metadata"),
		mcp.WithNumber("symbol_id", mcp.Required(), mcp.Description("Caller symbol id")),
	)
}

func getCallersTool() mcp.Tool {
	return mcp.NewTool("get_callers",
		mcp.WithDescription("List every symbol that calls the given symbol"),
		mcp.WithNumber("symbol_id", mcp.Required(), mcp.Description("Callee symbol id")),
	)
}

func getImplementationsTool() mcp.Tool {
	return mcp.NewTool("get_implementations",
		mcp.WithDescription("List every symbol that implements or extends the given trait/interface/class"),
		mcp.WithNumber("symbol_id", mcp.Required(), mcp.Description("Trait/interface/class symbol id")),
	)
}

func getDependenciesTool() mcp.Tool {
	return mcp.NewTool("get_dependencies",
		mcp.WithDescription("List every symbol the given symbol depends on (calls, uses, implements, extends)"),
		mcp.WithNumber("symbol_id", mcp.Required(), mcp.Description("Symbol id")),
	)
}

func getDependentsTool() mcp.Tool {
	return mcp.NewTool("get_dependents",
		mcp.WithDescription("List every symbol that depends on the given symbol"),
		mcp.WithNumber("symbol_id", mcp.Required(), mcp.Description("Symbol id")),
	)
}

func getImpactRadiusTool() mcp.Tool {
	return mcp.NewTool("get_impact_radius",
		mcp.WithDescription("Breadth-first walk of who is affected if a symbol changes, bounded by depth"),
		mcp.WithNumber("symbol_id", mcp.Required(), mcp.Description("Symbol id")),
		mcp.WithNumber("depth", mcp.Description("Max hops, 0 for unbounded")),
	)
}

func searchTool() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription("Full-text search over symbol name/doc/signature"),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search text")),
		mcp.WithNumber("limit", mcp.Description("Max results, 0 for default")),
		mcp.WithString("kind_filter", mcp.Description("Restrict to one SymbolKind, e.g. \"function\"")),
		mcp.WithString("module_filter", mcp.Description("Restrict to a module-path prefix")),
	)
}

func getSourceTool() mcp.Tool {
	return mcp.NewTool("get_source",
		mcp.WithDescription("Fetch a symbol's literal source text"),
		mcp.WithNumber("symbol_id", mcp.Required(), mcp.Description("Symbol id")),
	)
}

func findDefinesTool() mcp.Tool {
	return mcp.NewTool("find_defines",
		mcp.WithDescription("List every method/function a struct, class, interface, trait, or enum defines"),
		mcp.WithNumber("symbol_id", mcp.Required(), mcp.Description("Container symbol id")),
	)
}

func findUsesTool() mcp.Tool {
	return mcp.NewTool("find_uses",
		mcp.WithDescription("List the types a variable or field's declared type resolved to, where indexed"),
		mcp.WithNumber("symbol_id", mcp.Required(), mcp.Description("Variable/field symbol id")),
	)
}

func findVariableTypesTool() mcp.Tool {
	return mcp.NewTool("find_variable_types",
		mcp.WithDescription("List every variable/field and its declared or annotated type extracted from a file"),
		mcp.WithNumber("file_id", mcp.Required(), mcp.Description("File id")),
	)
}

func findInherentMethodsTool() mcp.Tool {
	return mcp.NewTool("find_inherent_methods",
		mcp.WithDescription("List the methods a type defines directly, excluding those provided via a trait/interface implementation"),
		mcp.WithNumber("symbol_id", mcp.Required(), mcp.Description("Type symbol id")),
	)
}

func resolveMethodTool() mcp.Tool {
	return mcp.NewTool("resolve_method",
		mcp.WithDescription("Find which ancestor in a type's inheritance chain actually provides a method"),
		mcp.WithString("receiver_type", mcp.Required(), mcp.Description("Receiver type name")),
		mcp.WithString("method", mcp.Required(), mcp.Description("Method name")),
	)
}

func describeSymbolTool() mcp.Tool {
	return mcp.NewTool("describe_symbol",
		mcp.WithDescription("Aggregate a symbol's definition, calls, callers, implementations, extends, and used types"),
		mcp.WithNumber("symbol_id", mcp.Required(), mcp.Description("Symbol id")),
	)
}
