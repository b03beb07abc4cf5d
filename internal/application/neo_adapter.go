package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"nasa-mcp-server/internal/domain"
	"nasa-mcp-server/internal/infrastructure"
)

// NeoAdapter implements the get_neo_feed tool over the NeoWs feed API.
type NeoAdapter struct {
	client *infrastructure.NASAClient
}

// NewNeoAdapter creates the get_neo_feed adapter.
func NewNeoAdapter(client *infrastructure.NASAClient) *NeoAdapter {
	return &NeoAdapter{client: client}
}

// maxNeoRangeDays is the widest date range the NeoWs feed accepts.
const maxNeoRangeDays = 7

// Definition returns the tool descriptor advertised by tools/list.
func (a *NeoAdapter) Definition() domain.ToolDefinition {
	return domain.ToolDefinition{
		Name:        "get_neo_feed",
		Description: "Gets Near Earth Objects (NEO) data from NASA's NeoWs API.",
		InputSchema: domain.JSONSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"start_date":    schemaProp("string", "(YYYY-MM-DD). Default is today. The starting date for asteroid search."),
				"end_date":      schemaProp("string", "(YYYY-MM-DD). Default is 7 days after start_date. The ending date."),
				"limit_per_day": schemaProp("integer", "Maximum number of asteroids to show per day. Default is 2."),
			},
		},
	}
}

// Call validates the date range and renders the asteroid feed.
func (a *NeoAdapter) Call(ctx context.Context, args map[string]interface{}) ([]domain.ContentBlock, error) {
	startDate, err := getStringArg(args, "start_date")
	if err != nil {
		return nil, err
	}
	endDate, err := getStringArg(args, "end_date")
	if err != nil {
		return nil, err
	}
	limitPerDay, err := getIntArgDefault(args, "limit_per_day", 2)
	if err != nil {
		return nil, err
	}

	if limitPerDay <= 0 {
		return nil, errors.New("limit_per_day must be a positive integer")
	}

	var query domain.NeoQuery
	if startDate != "" || endDate != "" {
		if startDate == "" {
			return nil, errors.New("start_date must be provided to use end_date")
		}
		start, parseErr := parseDate(startDate)
		if parseErr != nil {
			return nil, errors.New("start_date must be in YYYY-MM-DD format")
		}
		query.StartDate = startDate

		if endDate != "" {
			end, parseErr := parseDate(endDate)
			if parseErr != nil {
				return nil, errors.New("end_date must be in YYYY-MM-DD format")
			}
			if end.Before(start) {
				return nil, errors.New("end_date must be after start_date")
			}
			if end.Sub(start).Hours() > maxNeoRangeDays*24 {
				return nil, errors.New("Date range cannot exceed 7 days")
			}
			query.EndDate = endDate
		}
	}

	feed, err := a.client.GetNeoFeed(ctx, query)
	if err != nil {
		return nil, err
	}

	if feed.ElementCount == 0 {
		return []domain.ContentBlock{
			domain.TextContent("No Near Earth Objects found for the specified date range"),
		}, nil
	}

	return []domain.ContentBlock{
		domain.TextContent(formatNeoFeed(feed, query, limitPerDay)),
	}, nil
}

// formatNeoFeed renders the feed with per-day limiting and a hazard
// summary. Dates are sorted so output is deterministic.
func formatNeoFeed(feed *domain.NeoFeed, query domain.NeoQuery, limitPerDay int) string {
	var b strings.Builder
	b.WriteString("NASA Near Earth Objects (NEO) Feed\n")
	fmt.Fprintf(&b, "Total asteroids found: %d\n", feed.ElementCount)
	fmt.Fprintf(&b, "Showing up to %d asteroids per day\n", limitPerDay)

	if query.StartDate != "" {
		end := query.EndDate
		if end == "" {
			end = "auto"
		}
		fmt.Fprintf(&b, "Date range: %s to %s\n\n", query.StartDate, end)
	} else {
		b.WriteString("Date range: Next 7 days (default)\n\n")
	}

	dates := make([]string, 0, len(feed.NearEarthObjects))
	for date := range feed.NearEarthObjects {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	totalShown := 0
	for _, date := range dates {
		asteroids := feed.NearEarthObjects[date]
		shown := asteroids
		if len(shown) > limitPerDay {
			shown = shown[:limitPerDay]
		}
		totalShown += len(shown)

		fmt.Fprintf(&b, "=== %s (%d asteroids total, showing %d) ===\n", date, len(asteroids), len(shown))

		for i, asteroid := range shown {
			fmt.Fprintf(&b, "\n--- Asteroid %d ---\n", i+1)
			fmt.Fprintf(&b, "Name: %s\n", orUnknown(asteroid.Name))
			fmt.Fprintf(&b, "ID: %s\n", orUnknown(asteroid.ID))
			fmt.Fprintf(&b, "Absolute Magnitude: %g\n", asteroid.AbsoluteMagnitude)

			km := asteroid.EstimatedDiameter.Kilometers
			if km.Min != 0 || km.Max != 0 {
				fmt.Fprintf(&b, "Estimated Diameter: %.3f - %.3f km\n", km.Min, km.Max)
			}

			if asteroid.IsHazardous {
				b.WriteString("Potentially Hazardous: Yes\n")
			} else {
				b.WriteString("Potentially Hazardous: No\n")
			}

			if len(asteroid.CloseApproaches) > 0 {
				approach := asteroid.CloseApproaches[0]
				fmt.Fprintf(&b, "Close Approach Date: %s\n", orUnknown(approach.DateFull))
				if approach.RelativeVelocity.KilometersPerHour != "" {
					fmt.Fprintf(&b, "Relative Velocity: %s km/h\n", approach.RelativeVelocity.KilometersPerHour)
				}
				if approach.MissDistance.Kilometers != "" {
					fmt.Fprintf(&b, "Miss Distance: %s km (%s lunar distances)\n",
						approach.MissDistance.Kilometers, orUnknown(approach.MissDistance.Lunar))
				}
				fmt.Fprintf(&b, "Orbiting Body: %s\n", orUnknown(approach.OrbitingBody))
			}

			if asteroid.JPLURL != "" {
				fmt.Fprintf(&b, "More Details: %s\n", asteroid.JPLURL)
			}
		}

		b.WriteString("\n")
	}

	hazardousCount := 0
	for _, asteroids := range feed.NearEarthObjects {
		for _, asteroid := range asteroids {
			if asteroid.IsHazardous {
				hazardousCount++
			}
		}
	}

	b.WriteString("Summary:\n")
	fmt.Fprintf(&b, "Total asteroids in feed: %d\n", feed.ElementCount)
	fmt.Fprintf(&b, "Asteroids shown: %d\n", totalShown)
	fmt.Fprintf(&b, "Potentially hazardous asteroids (total): %d\n", hazardousCount)
	fmt.Fprintf(&b, "Non-hazardous asteroids (total): %d\n", feed.ElementCount-hazardousCount)

	return strings.TrimSpace(b.String())
}
