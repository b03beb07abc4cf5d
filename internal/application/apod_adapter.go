package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nasa-mcp-server/internal/domain"
	"nasa-mcp-server/internal/infrastructure"
)

// APODAdapter implements the get_apod tool over the Astronomy Picture of
// the Day API.
type APODAdapter struct {
	client *infrastructure.NASAClient
}

// NewAPODAdapter creates the get_apod adapter.
func NewAPODAdapter(client *infrastructure.NASAClient) *APODAdapter {
	return &APODAdapter{client: client}
}

// Definition returns the tool descriptor advertised by tools/list.
func (a *APODAdapter) Definition() domain.ToolDefinition {
	return domain.ToolDefinition{
		Name:        "get_apod",
		Description: "Gets the Astronomy Picture of the Day (APOD) from the NASA website.",
		InputSchema: domain.JSONSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"date":       schemaProp("string", "(YYYY-MM-DD). Default is today. The date of the APOD image to retrieve"),
				"start_date": schemaProp("string", "(YYYY-MM-DD). The start of a date range. Cannot be used with date."),
				"end_date":   schemaProp("string", "(YYYY-MM-DD). The end of the date range, when used with start_date."),
				"count":      schemaProp("integer", "Number of randomly chosen images. Cannot be used with date or start_date/end_date."),
			},
		},
	}
}

// Call validates the mutually exclusive selection modes and fetches the
// matching pictures.
func (a *APODAdapter) Call(ctx context.Context, args map[string]interface{}) ([]domain.ContentBlock, error) {
	date, err := getStringArg(args, "date")
	if err != nil {
		return nil, err
	}
	startDate, err := getStringArg(args, "start_date")
	if err != nil {
		return nil, err
	}
	endDate, err := getStringArg(args, "end_date")
	if err != nil {
		return nil, err
	}
	count, countPresent, err := getIntArg(args, "count")
	if err != nil {
		return nil, err
	}

	var query domain.APODQuery
	switch {
	case countPresent:
		if date != "" || startDate != "" || endDate != "" {
			return nil, errors.New("count cannot be used with date, start_date, or end_date")
		}
		if count <= 0 {
			return nil, errors.New("count must be a positive integer")
		}
		query.Count = count
	case startDate != "" || endDate != "":
		if date != "" {
			return nil, errors.New("date cannot be used with start_date or end_date")
		}
		if startDate != "" {
			if !isValidDate(startDate) {
				return nil, errors.New("start_date must be in YYYY-MM-DD format")
			}
			query.StartDate = startDate
		}
		if endDate != "" {
			if !isValidDate(endDate) {
				return nil, errors.New("end_date must be in YYYY-MM-DD format")
			}
			query.EndDate = endDate
		}
	case date != "":
		if !isValidDate(date) {
			return nil, errors.New("date must be in YYYY-MM-DD format")
		}
		query.Date = date
	}

	entries, err := a.client.GetAPOD(ctx, query)
	if err != nil {
		return nil, err
	}

	return []domain.ContentBlock{domain.TextContent(formatAPOD(entries))}, nil
}

// formatAPOD renders one or many APOD records as readable text.
func formatAPOD(entries []domain.APODEntry) string {
	if len(entries) == 0 {
		return "No APOD images found for the specified parameters"
	}

	if len(entries) == 1 {
		entry := entries[0]
		var b strings.Builder
		b.WriteString("NASA Astronomy Picture of the Day\n")
		fmt.Fprintf(&b, "Date: %s\n", orUnknown(entry.Date))
		fmt.Fprintf(&b, "Title: %s\n", orDefaultText(entry.Title, "No title"))
		fmt.Fprintf(&b, "Image URL: %s\n", entry.ImageURL())
		fmt.Fprintf(&b, "Explanation: %s", orDefaultText(entry.Explanation, "No explanation available"))
		return b.String()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d APOD images:\n\n", len(entries))
	for i, entry := range entries {
		fmt.Fprintf(&b, "--- Image %d ---\n", i+1)
		fmt.Fprintf(&b, "Date: %s\n", orUnknown(entry.Date))
		fmt.Fprintf(&b, "Title: %s\n", orDefaultText(entry.Title, "No title"))
		fmt.Fprintf(&b, "Image URL: %s\n", entry.ImageURL())
		fmt.Fprintf(&b, "Explanation: %s\n\n", orDefaultText(entry.Explanation, "No explanation available"))
	}
	return strings.TrimSpace(b.String())
}

func orUnknown(value string) string {
	return orDefaultText(value, "Unknown")
}

func orDefaultText(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
