package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/gqlsearch-mcp/internal/searcher"
	"github.com/dshills/gqlsearch-mcp/pkg/types"
)

// Tool names handled by the proxy
const (
	SearchSchemaToolName = "search_schema"
	IntrospectToolName   = "introspect"
)

// IntrospectDescription replaces the description the server advertises for introspect
const IntrospectDescription = "Get detailed information about types from the GraphQL schema. " +
	"Use the type name `Query` to get root query fields. " +
	"IMPORTANT: Use the search_schema tool FIRST to find queries, mutations, and types before using introspect for details."

// SearchSchemaDescription is the description advertised for search_schema
const SearchSchemaDescription = "Search the GraphQL schema for types, fields, queries, or mutations. " +
	"ALWAYS USE THIS FIRST when looking for available queries, mutations, or types. " +
	"This is much more efficient than using introspect to browse the entire schema."

// SearchSchemaTool returns the tool definition for search_schema
func SearchSchemaTool() mcp.Tool {
	return mcp.Tool{
		Name:        SearchSchemaToolName,
		Description: SearchSchemaDescription,
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query (supports regex)",
				},
				"type": map[string]interface{}{
					"type":        "string",
					"enum":        types.KindStrings(types.AllKinds),
					"description": "Type of schema element to search for (default: any)",
					"default":     string(types.KindAny),
				},
				"context_lines": map[string]interface{}{
					"type":        "number",
					"description": "Number of context lines to show around matches (default: 5)",
					"default":     searcher.DefaultContextLines,
				},
			},
			Required: []string{"query"},
		},
	}
}
