package domain

// ToolDefinition represents an MCP tool definition.
// This describes a tool that can be called by MCP clients.
type ToolDefinition struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	InputSchema JSONSchema `json:"inputSchema"`
}

// ToolRequest represents an MCP tool call request.
// This is the request format when a client invokes a tool.
type ToolRequest struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

// ToolResponse represents an MCP tool call response.
// This is the response format returned to the client after tool execution.
type ToolResponse struct {
	Content []ContentBlock `json:"content"`
	IsError bool           `json:"isError,omitempty"`
}

// ContentBlock represents one unit of a tool's result payload.
// The Type tag selects the variant: "text", "image" or "resource".
type ContentBlock struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	Data     string    `json:"data,omitempty"`     // base64 payload for "image"
	MimeType string    `json:"mimeType,omitempty"` // mime type for "image"
	Resource *Resource `json:"resource,omitempty"`
}

// Resource represents an embedded resource reference in MCP.
type Resource struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Name     string `json:"name,omitempty"`
}

// TextContent builds a text content block.
func TextContent(text string) ContentBlock {
	return ContentBlock{Type: "text", Text: text}
}

// ImageContent builds an image content block from base64-encoded data.
func ImageContent(data, mimeType string) ContentBlock {
	return ContentBlock{Type: "image", Data: data, MimeType: mimeType}
}

// ResourceContent builds an embedded resource content block.
func ResourceContent(uri, mimeType, name string) ContentBlock {
	return ContentBlock{Type: "resource", Resource: &Resource{URI: uri, MimeType: mimeType, Name: name}}
}

// JSONSchema represents a JSON Schema for tool input validation.
// This is used to define the expected structure of tool arguments.
type JSONSchema struct {
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties,omitempty"`
	Required   []string               `json:"required,omitempty"`
}
