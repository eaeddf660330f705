package mcp

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
)

// Version is the Model Context Protocol version spoken by the servers
// this client targets
const Version = "2025-11-25"

// Initialize
type (
	// ServerInfo identifies an MCP server implementation
	ServerInfo struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	}

	// ServerCapabilities represents the server's supported capabilities
	ServerCapabilities struct {
		Tools *struct {
			ListChanged bool `json:"listChanged"`
		} `json:"tools,omitempty"`
	}

	// InitializeResult represents the server's response to an initialize request
	InitializeResult struct {
		ProtocolVersion string             `json:"protocolVersion"`
		Capabilities    ServerCapabilities `json:"capabilities"`
		ServerInfo      ServerInfo         `json:"serverInfo"`
	}
)

// Tools
type (
	// Tool represents a single tool in the tools/list response
	Tool struct {
		Name        string             `json:"name"`
		Title       string             `json:"title,omitempty"`
		Description string             `json:"description,omitempty"`
		InputSchema *jsonschema.Schema `json:"inputSchema,omitempty"`
	}

	// ToolsListResult represents the response for the tools/list method
	ToolsListResult struct {
		Tools []Tool `json:"tools"`
	}

	// ToolCallParams represents the parameters for the tools/call method
	ToolCallParams struct {
		Name      string                 `json:"name"`
		Arguments map[string]interface{} `json:"arguments,omitempty"`
	}

	// ToolResult represents the result value of a tools/call response.
	// IsError is the tool-level failure channel; it is distinct from a
	// JSON-RPC protocol error and must be checked by the caller after a
	// successful call.
	ToolResult struct {
		IsError           bool            `json:"isError,omitempty"`
		Content           []ContentPart   `json:"content,omitempty"`
		StructuredContent json.RawMessage `json:"structuredContent,omitempty"`
	}
)

// ContentPart is one element of a tool result's content sequence.
// Servers usually send objects with "type"/"text" fields, but the
// convention allows arbitrary values, so the raw form is kept for
// anything that doesn't match.
type ContentPart struct {
	Type string
	Text string

	// Raw is the original JSON value; non-nil only when the part was
	// not a recognizable content object.
	Raw json.RawMessage
}

var _ json.Unmarshaler = &ContentPart{}

func (p *ContentPart) UnmarshalJSON(data []byte) error {
	var obj struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &obj); err == nil && (obj.Type != "" || obj.Text != "") {
		p.Type = obj.Type
		p.Text = obj.Text
		p.Raw = nil
		return nil
	}
	p.Raw = append(json.RawMessage(nil), data...)
	return nil
}

var _ json.Marshaler = ContentPart{}

func (p ContentPart) MarshalJSON() ([]byte, error) {
	if p.Raw != nil {
		return p.Raw, nil
	}
	return json.Marshal(struct {
		Type string `json:"type,omitempty"`
		Text string `json:"text,omitempty"`
	}{Type: p.Type, Text: p.Text})
}

// String renders the part for human consumption: the text if present,
// the type otherwise, and the raw JSON for opaque values.
func (p ContentPart) String() string {
	switch {
	case p.Text != "":
		return p.Text
	case p.Type != "":
		return p.Type
	default:
		return string(p.Raw)
	}
}
