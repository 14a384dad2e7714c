package mcp

import "github.com/mark3labs/mcp-go/mcp"

func resolveWidgetTool() mcp.Tool {
	return mcp.NewTool("resolve_widget",
		mcp.WithDescription("Resolve a widget's effective contract: own and inherited props, events, inheritance chain and merged styles. "+
			"Give either file_path (a compiled props file) or widget (a name searched under the library root)."),
		mcp.WithString("file_path", mcp.Description("Props file path, absolute or relative to the library root")),
		mcp.WithString("widget", mcp.Description("Widget name, e.g. \"button\" or \"WmButton\"")),
		mcp.WithBoolean("effective_only", mcp.Description("Return only the first record per prop name")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func getInheritanceChainTool() mcp.Tool {
	return mcp.NewTool("get_inheritance_chain",
		mcp.WithDescription("Return the ancestor class names of a widget, immediate parent first, and why the walk stopped."),
		mcp.WithString("file_path", mcp.Description("Props file path, absolute or relative to the library root")),
		mcp.WithString("widget", mcp.Description("Widget name searched under the library root")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func findWidgetFilesTool() mcp.Tool {
	return mcp.NewTool("find_widget_files",
		mcp.WithDescription("Find files under the library root matching a glob. A pattern without '/' matches base names at any depth."),
		mcp.WithString("pattern", mcp.Required(), mcp.Description("Glob, e.g. \"*.props.js\" or \"basic/**/button.*\"")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func lookupWidgetTool() mcp.Tool {
	return mcp.NewTool("lookup_widget",
		mcp.WithDescription("Look up a widget's catalog entry: category, canonical id and description."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Widget name or alias; case, dashes and a Wm prefix are ignored")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func listWidgetsTool() mcp.Tool {
	return mcp.NewTool("list_widgets",
		mcp.WithDescription("List catalogued widgets, optionally filtered by category or keyword."),
		mcp.WithString("category", mcp.Description("Category name, e.g. \"input\"")),
		mcp.WithString("keyword", mcp.Description("Case-insensitive match on name or description")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}
