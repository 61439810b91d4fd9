package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/gqlsearch-mcp/internal/searcher"
	"github.com/dshills/gqlsearch-mcp/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams = mcp.INVALID_PARAMS // Invalid method parameters
	ErrorCodeInternalError = mcp.INTERNAL_ERROR // Internal JSON-RPC error
)

// Reporter renders search reports. *searcher.Searcher implements it.
type Reporter interface {
	Report(ctx context.Context, req searcher.SearchRequest) (string, error)
}

// SearchArguments are the decoded arguments of a search_schema call
type SearchArguments struct {
	Query        string
	Kind         types.Kind
	ContextLines int
}

// Request converts the arguments into a cached searcher request
func (a SearchArguments) Request() searcher.SearchRequest {
	return searcher.SearchRequest{
		Query:        a.Query,
		Kind:         a.Kind,
		ContextLines: a.ContextLines,
		UseCache:     true,
	}
}

// ParseSearchArguments validates search_schema arguments and applies defaults
func ParseSearchArguments(args map[string]interface{}) (SearchArguments, error) {
	if args == nil {
		return SearchArguments{}, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	query, ok := args["query"].(string)
	if !ok || query == "" {
		return SearchArguments{}, newMCPError(ErrorCodeInvalidParams, "query parameter is required", map[string]interface{}{
			"param":  "query",
			"reason": "missing or empty",
		})
	}

	kind, err := types.ParseKind(getStringDefault(args, "type", string(types.KindAny)))
	if err != nil {
		return SearchArguments{}, newMCPError(ErrorCodeInvalidParams, err.Error(), map[string]interface{}{
			"param":   "type",
			"allowed": types.KindStrings(types.AllKinds),
		})
	}

	return SearchArguments{
		Query:        query,
		Kind:         kind,
		ContextLines: getIntDefault(args, "context_lines", searcher.DefaultContextLines),
	}, nil
}

// DecodeArguments decodes raw tool arguments into a map. Absent or null
// arguments decode to nil.
func DecodeArguments(raw json.RawMessage) (map[string]interface{}, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var args map[string]interface{}
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return args, nil
}

// RunSearch answers a search_schema call with a rendered report
func RunSearch(ctx context.Context, r Reporter, args map[string]interface{}) (string, error) {
	sa, err := ParseSearchArguments(args)
	if err != nil {
		return "", err
	}

	report, err := r.Report(ctx, sa.Request())
	if err != nil {
		return "", newMCPError(ErrorCodeInternalError, err.Error(), nil)
	}
	return report, nil
}

// handleSearchSchema handles the search_schema tool invocation
func (s *Server) handleSearchSchema(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	report, err := RunSearch(ctx, s.searcher, args)
	if err != nil {
		return nil, err
	}

	return mcp.NewToolResultText(report), nil
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// ErrorResponse maps err to the JSON-RPC code and message sent to clients.
// Errors that are not *MCPError are internal errors.
func ErrorResponse(err error) (code int, message string) {
	var mcpErr *MCPError
	if errors.As(err, &mcpErr) {
		return mcpErr.Code, mcpErr.Message
	}
	return ErrorCodeInternalError, err.Error()
}

// getIntDefault extracts an integer parameter with a default value.
// Numbers outside the int32 range saturate; NaN yields the default.
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		if math.IsNaN(val) {
			return defaultValue
		}
		return int(max(math.MinInt32, min(math.MaxInt32, val)))
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}
