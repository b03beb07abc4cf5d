package application

import (
	"context"
	"errors"
	"strings"

	"nasa-mcp-server/internal/domain"
	"nasa-mcp-server/internal/infrastructure"
)

// AlertsAdapter implements the get_alerts tool over the National Weather
// Service alerts API.
type AlertsAdapter struct {
	client *infrastructure.NWSClient
}

// NewAlertsAdapter creates the get_alerts adapter.
func NewAlertsAdapter(client *infrastructure.NWSClient) *AlertsAdapter {
	return &AlertsAdapter{client: client}
}

// Definition returns the tool descriptor advertised by tools/list.
func (a *AlertsAdapter) Definition() domain.ToolDefinition {
	return domain.ToolDefinition{
		Name:        "get_alerts",
		Description: "Get weather alerts for a US state.",
		InputSchema: domain.JSONSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"state": schemaProp("string", "Two-letter US state code (e.g. CA, NY)"),
			},
			Required: []string{"state"},
		},
	}
}

// Call fetches and formats active alerts for the state.
func (a *AlertsAdapter) Call(ctx context.Context, args map[string]interface{}) ([]domain.ContentBlock, error) {
	state, err := getStringArg(args, "state")
	if err != nil {
		return nil, err
	}

	state = strings.ToUpper(strings.TrimSpace(state))
	if len(state) != 2 {
		return nil, errors.New("state must be a two-letter US state code (e.g. CA, NY)")
	}

	alerts, err := a.client.GetActiveAlerts(ctx, state)
	if err != nil {
		return nil, errors.New("Unable to fetch alerts or no alerts found.")
	}

	if len(alerts.Features) == 0 {
		return []domain.ContentBlock{
			domain.TextContent("No active alerts for this state."),
		}, nil
	}

	return []domain.ContentBlock{
		domain.TextContent(alerts.FormatAlerts()),
	}, nil
}
