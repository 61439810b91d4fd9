package mcp

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RewriteToolList augments a tools/list response. When frame is a response
// whose result.tools is an array, the introspect descriptor gets
// IntrospectDescription and the search_schema descriptor is appended.
// Every other frame is returned unchanged with rewritten == false.
//
// The append is not de-duplicated: servers emit the tool list once per
// session.
func RewriteToolList(frame []byte) (out []byte, rewritten bool, err error) {
	var msg map[string]json.RawMessage
	if err := json.Unmarshal(frame, &msg); err != nil {
		return frame, false, nil
	}

	var result map[string]json.RawMessage
	if err := json.Unmarshal(msg["result"], &result); err != nil || result == nil {
		return frame, false, nil
	}

	rawTools, ok := result["tools"]
	if !ok || !isArray(rawTools) {
		return frame, false, nil
	}

	var tools []json.RawMessage
	if err := json.Unmarshal(rawTools, &tools); err != nil {
		return frame, false, nil
	}

	tools, err = rewriteIntrospect(tools)
	if err != nil {
		return nil, false, err
	}

	searchTool, err := searchSchemaDescriptor()
	if err != nil {
		return nil, false, fmt.Errorf("failed to encode %s tool: %w", SearchSchemaToolName, err)
	}
	tools = append(tools, searchTool)

	if result["tools"], err = marshal(tools); err != nil {
		return nil, false, err
	}
	if msg["result"], err = marshal(result); err != nil {
		return nil, false, err
	}

	out, err = marshal(msg)
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}

// rewriteIntrospect replaces the description of the first introspect descriptor
func rewriteIntrospect(tools []json.RawMessage) ([]json.RawMessage, error) {
	for i, raw := range tools {
		var desc map[string]json.RawMessage
		if err := json.Unmarshal(raw, &desc); err != nil || desc == nil {
			continue
		}

		var name string
		if err := json.Unmarshal(desc["name"], &name); err != nil || name != IntrospectToolName {
			continue
		}

		description, err := marshal(IntrospectDescription)
		if err != nil {
			return nil, err
		}
		desc["description"] = description

		if tools[i], err = marshal(desc); err != nil {
			return nil, fmt.Errorf("failed to encode %s tool: %w", IntrospectToolName, err)
		}
		return tools, nil
	}
	return tools, nil
}

// searchSchemaDescriptor encodes SearchSchemaTool without the empty
// annotations object the library always emits
func searchSchemaDescriptor() (json.RawMessage, error) {
	raw, err := marshal(SearchSchemaTool())
	if err != nil {
		return nil, err
	}

	var desc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &desc); err != nil {
		return nil, err
	}
	if ann, ok := desc["annotations"]; ok && isEmptyObject(ann) {
		delete(desc, "annotations")
	}
	return marshal(desc)
}

func isEmptyObject(raw json.RawMessage) bool {
	var obj map[string]json.RawMessage
	return json.Unmarshal(raw, &obj) == nil && obj != nil && len(obj) == 0
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
