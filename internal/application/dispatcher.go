package application

import (
	"context"
	"encoding/json"
	"fmt"

	"nasa-mcp-server/internal/domain"
)

// serverName and serverVersion identify this server in the initialize
// handshake.
const (
	serverName      = "nasa-mcp-server"
	serverVersion   = "1.0.0"
	protocolVersion = "2024-11-05"
)

// Dispatcher translates one decoded JSON-RPC request into its terminal
// outcome. Protocol-tier problems (malformed envelope, unknown method or
// tool) become RPC error objects; tool-tier failures (bad tool parameters,
// upstream errors) become successful responses carrying a single
// "Error: ..." text block, so a calling agent can read the message and
// retry instead of treating every domain failure as a protocol fault.
type Dispatcher struct {
	registry *Registry
	logger   *StructuredLogger
}

// NewDispatcher creates a dispatcher over a frozen registry.
func NewDispatcher(registry *Registry, logger *StructuredLogger) *Dispatcher {
	if logger == nil {
		logger = NewStructuredLogger()
	}
	return &Dispatcher{
		registry: registry,
		logger:   logger,
	}
}

// Dispatch processes a request and returns the response frames to emit.
// Every supported method currently yields exactly one frame. Notifications
// (null or absent id) are still answered, which JSON-RPC permits the
// server to do and keeps the state machine trivial.
func (d *Dispatcher) Dispatch(ctx context.Context, req *domain.Request) []*domain.Response {
	if err := d.validateRequest(req); err != nil {
		return []*domain.Response{
			domain.NewErrorResponse(nil, domain.InvalidRequest, "Invalid Request", err.Error()),
		}
	}

	d.logger.LogInfo("received request", map[string]interface{}{
		"method":     req.Method,
		"request_id": req.ID,
	})

	switch req.Method {
	case "initialize":
		return []*domain.Response{d.handleInitialize(req)}
	case "tools/list":
		return []*domain.Response{d.handleToolsList(req)}
	case "tools/call":
		return []*domain.Response{d.handleToolsCall(ctx, req)}
	default:
		return []*domain.Response{
			domain.NewErrorResponse(req.ID, domain.MethodNotFound, "Method not found",
				fmt.Sprintf("unknown method: %s", req.Method)),
		}
	}
}

// validateRequest validates the basic structure of a JSON-RPC request.
func (d *Dispatcher) validateRequest(req *domain.Request) error {
	if req.JSONRPC != "2.0" {
		return fmt.Errorf("invalid jsonrpc version: %s", req.JSONRPC)
	}
	if req.Method == "" {
		return fmt.Errorf("method is required")
	}
	return nil
}

// handleInitialize answers the handshake with a fixed capabilities object.
// Calling it repeatedly yields structurally identical results.
func (d *Dispatcher) handleInitialize(req *domain.Request) *domain.Response {
	result := map[string]interface{}{
		"protocolVersion": protocolVersion,
		"capabilities": map[string]interface{}{
			"tools": map[string]interface{}{},
		},
		"serverInfo": map[string]interface{}{
			"name":    serverName,
			"version": serverVersion,
		},
	}
	return domain.NewResultResponse(req.ID, result)
}

// handleToolsList returns every registered tool descriptor.
// A degenerate empty registry yields {"tools": []}, never an error.
func (d *Dispatcher) handleToolsList(req *domain.Request) *domain.Response {
	tools := d.registry.List()
	if tools == nil {
		tools = []domain.ToolDefinition{}
	}
	return domain.NewResultResponse(req.ID, map[string]interface{}{
		"tools": tools,
	})
}

// handleToolsCall resolves the tool, checks required parameters, invokes
// the adapter, and normalizes its outcome into the content envelope.
func (d *Dispatcher) handleToolsCall(ctx context.Context, req *domain.Request) *domain.Response {
	toolReq, err := parseToolRequest(req.Params)
	if err != nil {
		return domain.NewErrorResponse(req.ID, domain.InvalidRequest, "Invalid Request", err.Error())
	}

	adapter, exists := d.registry.Resolve(toolReq.Name)
	if !exists {
		return domain.NewErrorResponse(req.ID, domain.MethodNotFound,
			fmt.Sprintf("Tool not found: %s", toolReq.Name),
			fmt.Sprintf("unknown tool: %s", toolReq.Name))
	}

	// Required parameters from the descriptor are checked before the
	// adapter runs; a miss is a tool-tier failure, not a protocol error,
	// so the call still succeeds at the RPC layer.
	definition := adapter.Definition()
	for _, required := range definition.InputSchema.Required {
		if _, present := toolReq.Arguments[required]; !present {
			return d.toolFailure(req.ID, toolReq.Name,
				fmt.Errorf("missing required parameter: %s", required))
		}
	}

	content, err := d.invoke(ctx, adapter, toolReq.Arguments)
	if err != nil {
		return d.toolFailure(req.ID, toolReq.Name, err)
	}

	return domain.NewResultResponse(req.ID, &domain.ToolResponse{Content: content})
}

// invoke runs the adapter, converting a panic into an ordinary error so
// misbehaving adapters never reach the transport layer.
func (d *Dispatcher) invoke(ctx context.Context, adapter domain.Adapter, args map[string]interface{}) (content []domain.ContentBlock, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%v", rec)
		}
	}()
	return adapter.Call(ctx, args)
}

// toolFailure wraps a tool-tier failure into the uniform error surface:
// one text block prefixed "Error: " inside a successful RPC response.
func (d *Dispatcher) toolFailure(id interface{}, tool string, err error) *domain.Response {
	d.logger.LogError("tool call failed", err, map[string]interface{}{
		"tool":       tool,
		"request_id": id,
	})
	return domain.NewResultResponse(id, &domain.ToolResponse{
		Content: []domain.ContentBlock{
			domain.TextContent(fmt.Sprintf("Error: %s", err.Error())),
		},
		IsError: true,
	})
}

// parseToolRequest parses the params field into a ToolRequest.
func parseToolRequest(params interface{}) (*domain.ToolRequest, error) {
	if params == nil {
		return nil, fmt.Errorf("params is required for tools/call")
	}

	// Round-trip through JSON to accept both raw maps and decoded structs.
	jsonData, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal params: %w", err)
	}

	var toolReq domain.ToolRequest
	if err := json.Unmarshal(jsonData, &toolReq); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tool request: %w", err)
	}

	if toolReq.Name == "" {
		return nil, fmt.Errorf("tool name is required")
	}

	if toolReq.Arguments == nil {
		toolReq.Arguments = make(map[string]interface{})
	}

	return &toolReq, nil
}
