package mcp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

var (
	// ErrInvalidJSON is returned when a line is not valid JSON
	ErrInvalidJSON = errors.New("invalid JSON")
	// ErrNotObject is returned when a line is valid JSON but not an object
	ErrNotObject = errors.New("JSON value is not an object")
)

// Frame is a decoded JSON-RPC message. Members are kept as raw JSON so that
// anything the proxy does not inspect is re-emitted untouched.
type Frame struct {
	members map[string]json.RawMessage
}

// ParseFrame decodes one line of the transport. Lines that are not JSON
// objects return an error wrapping ErrInvalidJSON or ErrNotObject.
func ParseFrame(line []byte) (*Frame, error) {
	if !json.Valid(line) {
		return nil, ErrInvalidJSON
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(line, &members); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotObject, err)
	}
	if members == nil {
		// the literal null
		return nil, ErrNotObject
	}

	return &Frame{members: members}, nil
}

// IsProtocol reports whether the frame carries at least one of the
// JSON-RPC discriminants jsonrpc, method or id
func (f *Frame) IsProtocol() bool {
	return f.has("jsonrpc") || f.has("method") || f.has("id")
}

// Method returns the request method, or "" for responses
func (f *Frame) Method() string {
	var method string
	_ = json.Unmarshal(f.members["method"], &method)
	return method
}

// ID returns the raw request id, or nil when absent
func (f *Frame) ID() json.RawMessage {
	return f.members["id"]
}

// Params returns the raw params member
func (f *Frame) Params() json.RawMessage {
	return f.members["params"]
}

// has reports whether key is present with a non-null value
func (f *Frame) has(key string) bool {
	raw, ok := f.members[key]
	return ok && !bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// Compact returns line with insignificant whitespace removed. Invalid JSON
// is returned unchanged.
func Compact(line []byte) []byte {
	var buf bytes.Buffer
	if err := json.Compact(&buf, line); err != nil {
		return line
	}
	return buf.Bytes()
}

// NewResultFrame builds a JSON-RPC success response addressed to id
func NewResultFrame(id json.RawMessage, result any) ([]byte, error) {
	return marshal(mcp.JSONRPCResponse{
		JSONRPC: mcp.JSONRPC_VERSION,
		ID:      mcp.NewRequestId(id),
		Result:  result,
	})
}

// NewErrorFrame builds a JSON-RPC error response addressed to id
func NewErrorFrame(id json.RawMessage, code int, message string) ([]byte, error) {
	return marshal(mcp.NewJSONRPCError(mcp.NewRequestId(id), code, message, nil))
}

type textContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type textResult struct {
	Content []textContent `json:"content"`
}

// NewTextResultFrame wraps text in a tools/call result with one text block.
// The result is a plain struct so the text is written without HTML escaping.
func NewTextResultFrame(id json.RawMessage, text string) ([]byte, error) {
	return NewResultFrame(id, textResult{
		Content: []textContent{{Type: mcp.ContentTypeText, Text: text}},
	})
}

// marshal encodes v on a single line without HTML escaping
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
