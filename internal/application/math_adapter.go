package application

import (
	"context"
	"strconv"

	"nasa-mcp-server/internal/domain"
)

// MathAdapter implements the get_add tool.
// It exists mostly as a connectivity check: no upstream, no state, and it
// exercises the string-to-number coercion agents rely on.
type MathAdapter struct{}

// NewMathAdapter creates the get_add adapter.
func NewMathAdapter() *MathAdapter {
	return &MathAdapter{}
}

// Definition returns the tool descriptor advertised by tools/list.
func (a *MathAdapter) Definition() domain.ToolDefinition {
	return domain.ToolDefinition{
		Name:        "get_add",
		Description: "Gives the addition of 2 numbers",
		InputSchema: domain.JSONSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"a": schemaProp("integer", "Integer"),
				"b": schemaProp("integer", "Integer"),
			},
			Required: []string{"a", "b"},
		},
	}
}

// Call adds the two arguments, accepting numbers sent as strings.
func (a *MathAdapter) Call(ctx context.Context, args map[string]interface{}) ([]domain.ContentBlock, error) {
	first, _, err := getIntArg(args, "a")
	if err != nil {
		return nil, err
	}
	second, _, err := getIntArg(args, "b")
	if err != nil {
		return nil, err
	}

	return []domain.ContentBlock{
		domain.TextContent(strconv.Itoa(first + second)),
	}, nil
}
