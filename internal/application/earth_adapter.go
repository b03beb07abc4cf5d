package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nasa-mcp-server/internal/domain"
	"nasa-mcp-server/internal/infrastructure"
)

// EarthAdapter implements the get_earth_image_tool tool over the EPIC
// (Earth Polychromatic Imaging Camera) API.
type EarthAdapter struct {
	client *infrastructure.EPICClient
}

// NewEarthAdapter creates the get_earth_image_tool adapter.
func NewEarthAdapter(client *infrastructure.EPICClient) *EarthAdapter {
	return &EarthAdapter{client: client}
}

// maxEarthImages caps the number of EPIC records rendered per call.
const maxEarthImages = 10

// Definition returns the tool descriptor advertised by tools/list.
func (a *EarthAdapter) Definition() domain.ToolDefinition {
	return domain.ToolDefinition{
		Name:        "get_earth_image_tool",
		Description: "Request to Earth Polychromatic Imaging Camera (EPIC) API. Fetch satellite images of Earth.",
		InputSchema: domain.JSONSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"earth_date": schemaProp("string", "(YYYY-MM-DD). Date when the photo was taken."),
				"type":       schemaProp("string", "Type of image: natural, enhanced, aerosol, cloud"),
				"limit":      schemaProp("integer", "Number of images to retrieve. Default is 1."),
			},
		},
	}
}

// Call fetches EPIC image records and renders archive URLs for them.
func (a *EarthAdapter) Call(ctx context.Context, args map[string]interface{}) ([]domain.ContentBlock, error) {
	earthDate, err := getStringArg(args, "earth_date")
	if err != nil {
		return nil, err
	}
	imageType, err := getStringArg(args, "type")
	if err != nil {
		return nil, err
	}
	limit, err := getIntArgDefault(args, "limit", 1)
	if err != nil {
		return nil, err
	}

	if limit < 1 {
		return nil, errors.New("limit must be at least 1")
	}
	if limit > maxEarthImages {
		limit = maxEarthImages
	}

	if imageType == "" {
		imageType = "natural"
	} else {
		imageType = strings.ToLower(imageType)
		if !domain.IsValidEPICType(imageType) {
			return nil, fmt.Errorf("Invalid type '%s'. Valid options: %s",
				imageType, strings.Join(domain.ValidEPICTypes, ", "))
		}
	}

	if earthDate != "" && !isValidDate(earthDate) {
		return nil, errors.New("earth_date must be in YYYY-MM-DD format")
	}

	images, err := a.client.GetImages(ctx, imageType, earthDate)
	if err != nil {
		return nil, err
	}

	if len(images) == 0 {
		return []domain.ContentBlock{
			domain.TextContent("No images found for the specified parameters"),
		}, nil
	}

	shown := images
	if len(shown) > limit {
		shown = shown[:limit]
	}

	var b strings.Builder
	if len(shown) > 1 {
		b.WriteString("Earth Images Found!\n")
	} else {
		b.WriteString("Earth Image Found!\n")
	}
	fmt.Fprintf(&b, "Image Type: %s\n", capitalize(imageType))
	fmt.Fprintf(&b, "Images returned: %d of %d available\n\n", len(shown), len(images))

	for i := range shown {
		archiveURL, err := shown[i].ArchiveURL(imageType)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&b, "Image %d:\n", i+1)
		fmt.Fprintf(&b, "  URL: %s\n", archiveURL)
		fmt.Fprintf(&b, "  Date: %s\n", shown[i].Date)
		fmt.Fprintf(&b, "  Caption: %s\n", orDefaultText(shown[i].Caption, "No caption available"))
		if i < len(shown)-1 {
			b.WriteString("\n")
		}
	}

	return []domain.ContentBlock{domain.TextContent(b.String())}, nil
}
