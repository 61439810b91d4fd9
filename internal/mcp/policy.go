package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// Action is what the proxy does with a client frame
type Action int

const (
	// ActionForward sends the frame to the server unchanged
	ActionForward Action = iota
	// ActionSearch answers the frame locally with a schema search
	ActionSearch
	// ActionBlock rejects the frame locally with a JSON-RPC error
	ActionBlock
)

// String returns the string representation of Action
func (a Action) String() string {
	switch a {
	case ActionForward:
		return "forward"
	case ActionSearch:
		return "search"
	case ActionBlock:
		return "blocked"
	default:
		return "unknown"
	}
}

// Decision is the outcome of classifying a client frame
type Decision struct {
	Action      Action
	Tool        string          // Tool name for tools/call frames
	Arguments   json.RawMessage // Raw tool arguments
	BlockedType string          // Root type name when Action is ActionBlock
}

// blockedRootTypes may not be introspected directly
var blockedRootTypes = map[string]bool{
	"Query":    true,
	"Mutation": true,
}

// callParams is the params member of a tools/call request
type callParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// Classify decides whether a client frame is served locally or forwarded
func Classify(f *Frame) Decision {
	if f.Method() != string(mcp.MethodToolsCall) {
		return Decision{Action: ActionForward}
	}

	var params callParams
	if err := json.Unmarshal(f.Params(), &params); err != nil {
		return Decision{Action: ActionForward}
	}

	decision := Decision{
		Action:    ActionForward,
		Tool:      params.Name,
		Arguments: params.Arguments,
	}

	switch params.Name {
	case SearchSchemaToolName:
		decision.Action = ActionSearch
	case IntrospectToolName:
		var args struct {
			TypeName string `json:"type_name"`
		}
		if err := json.Unmarshal(params.Arguments, &args); err == nil && blockedRootTypes[args.TypeName] {
			decision.Action = ActionBlock
			decision.BlockedType = args.TypeName
		}
	}

	return decision
}

// BlockedIntrospectionMessage is the error message for a rejected introspect call
func BlockedIntrospectionMessage(typeName string) string {
	return fmt.Sprintf("Direct introspection of '%s' type is not allowed. "+
		"Please use the search_schema tool to find specific queries or mutations, "+
		"then introspect individual types for details.", typeName)
}
