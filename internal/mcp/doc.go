// Package mcp implements the Model Context Protocol pieces of the gqlsearch proxy.
//
// The proxy sits in front of a GraphQL introspection MCP server and changes
// the tool surface that server exposes:
//   - search_schema: added by the proxy, answered locally from the SDL file
//   - introspect: description rewritten; calls on Query or Mutation blocked
//
// # Protocol Overview
//
// MCP is a JSON-RPC 2.0 protocol over stdio transport, one frame per line:
//
//	Client → Server: {"jsonrpc":"2.0","id":1,"method":"tools/call","params":{...}}
//	Server → Client: {"jsonrpc":"2.0","id":1,"result":{...}}
//
// A line is a frame only when it is a JSON object carrying at least one of
// jsonrpc, method or id. ParseFrame and Frame.IsProtocol implement that test.
//
// # Tool Catalog Rewriting
//
// RewriteToolList patches tools/list responses coming back from the server:
//
//	out, rewritten, err := mcp.RewriteToolList(line)
//
// The introspect description is replaced by IntrospectDescription and the
// SearchSchemaTool descriptor is appended after every server tool.
//
// # Interception Policy
//
// Classify decides, per client frame, whether the proxy answers it:
//
//	switch mcp.Classify(frame).Action {
//	case mcp.ActionSearch:  // tools/call search_schema
//	case mcp.ActionBlock:   // tools/call introspect with type_name Query or Mutation
//	case mcp.ActionForward: // everything else
//	}
//
// # Tool: search_schema
//
//	Request:
//	{
//	  "name": "search_schema",
//	  "arguments": {
//	    "query": "patientId",
//	    "type": "any",
//	    "context_lines": 5
//	  }
//	}
//
//	Response:
//	{
//	  "content": [
//	    {"type": "text", "text": "Found 2 matches for \"patientId\":\n\n..."}
//	  ]
//	}
//
// # Error Handling
//
// Errors are returned as standard JSON-RPC error responses addressed to the
// original request id:
//
//	{"jsonrpc":"2.0","id":1,"error":{"code":-32603,"message":"..."}}
//
// Error codes:
//   - -32602: Invalid params (missing query, unknown type filter)
//   - -32603: Internal error (invalid pattern, blocked introspection)
//
// # Standalone Server
//
// Server exposes search_schema alone through github.com/mark3labs/mcp-go,
// for use without an upstream GraphQL MCP server:
//
//	srv, _ := mcp.NewServer(searcher.NewSearcher(doc))
//	srv.Serve(ctx, os.Stdin, os.Stdout)
package mcp
