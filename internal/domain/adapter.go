package domain

import (
	"context"
)

// Adapter is the backend implementation of a single tool.
// The dispatcher invokes Call with already-decoded JSON scalars and wraps
// the returned content blocks into the protocol envelope. A non-nil error
// is a tool-tier failure: it is reported to the client as a text block,
// never as a protocol error. Adapters validate their own domain
// constraints (date formats, numeric ranges) and should never panic; the
// dispatcher catches panics anyway.
type Adapter interface {
	// Definition returns the tool descriptor advertised by tools/list.
	Definition() ToolDefinition

	// Call executes the tool with the supplied arguments.
	Call(ctx context.Context, args map[string]interface{}) ([]ContentBlock, error)
}
