package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classify(t *testing.T, line string) Decision {
	t.Helper()
	f, err := ParseFrame([]byte(line))
	require.NoError(t, err)
	return Classify(f)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		line        string
		action      Action
		tool        string
		blockedType string
	}{
		{
			name:   "search_schema",
			line:   `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"search_schema","arguments":{"query":"patient"}}}`,
			action: ActionSearch,
			tool:   "search_schema",
		},
		{
			name:        "introspect Query",
			line:        `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"introspect","arguments":{"type_name":"Query"}}}`,
			action:      ActionBlock,
			tool:        "introspect",
			blockedType: "Query",
		},
		{
			name:        "introspect Mutation",
			line:        `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"introspect","arguments":{"type_name":"Mutation"}}}`,
			action:      ActionBlock,
			tool:        "introspect",
			blockedType: "Mutation",
		},
		{
			name:   "introspect other type",
			line:   `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"introspect","arguments":{"type_name":"Patient"}}}`,
			action: ActionForward,
			tool:   "introspect",
		},
		{
			name:   "introspect lowercase query",
			line:   `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"introspect","arguments":{"type_name":"query"}}}`,
			action: ActionForward,
			tool:   "introspect",
		},
		{
			name:   "introspect without arguments",
			line:   `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"introspect"}}`,
			action: ActionForward,
			tool:   "introspect",
		},
		{
			name:   "other tool",
			line:   `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"execute","arguments":{}}}`,
			action: ActionForward,
			tool:   "execute",
		},
		{
			name:   "tools/list",
			line:   `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`,
			action: ActionForward,
		},
		{
			name:   "params not an object",
			line:   `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":[1]}`,
			action: ActionForward,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := classify(t, tt.line)
			assert.Equal(t, tt.action, d.Action)
			assert.Equal(t, tt.tool, d.Tool)
			assert.Equal(t, tt.blockedType, d.BlockedType)
		})
	}
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "forward", ActionForward.String())
	assert.Equal(t, "search", ActionSearch.String())
	assert.Equal(t, "blocked", ActionBlock.String())
	assert.Equal(t, "unknown", Action(42).String())
}

func TestBlockedIntrospectionMessage(t *testing.T) {
	msg := BlockedIntrospectionMessage("Query")
	assert.Equal(t, "Direct introspection of 'Query' type is not allowed. "+
		"Please use the search_schema tool to find specific queries or mutations, "+
		"then introspect individual types for details.", msg)
}
