package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nasa-mcp-server/internal/domain"
	"nasa-mcp-server/internal/infrastructure"
)

// MarsAdapter implements the get_mars_image tool over the Mars Rover
// Photos API (Curiosity).
type MarsAdapter struct {
	client *infrastructure.NASAClient
}

// NewMarsAdapter creates the get_mars_image adapter.
func NewMarsAdapter(client *infrastructure.NASAClient) *MarsAdapter {
	return &MarsAdapter{client: client}
}

// defaultMarsSol is queried when neither sol nor earth_date is supplied.
const defaultMarsSol = 1000

// Definition returns the tool descriptor advertised by tools/list.
func (a *MarsAdapter) Definition() domain.ToolDefinition {
	return domain.ToolDefinition{
		Name:        "get_mars_image",
		Description: "Request to Mars Rover Image. Fetch any images on Mars Rover.",
		InputSchema: domain.JSONSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"earth_date": schemaProp("string", "(YYYY-MM-DD). Corresponding date on earth when the photo was taken."),
				"sol":        schemaProp("integer", "Martian sol of the Rover's mission. Default 1000."),
				"camera":     schemaProp("string", "Camera type: "+strings.Join(domain.ValidMarsCameras, ", ")),
			},
		},
	}
}

// Call fetches rover photos for a sol or earth date; sol wins when both
// are supplied, and sol 1000 is the fallback.
func (a *MarsAdapter) Call(ctx context.Context, args map[string]interface{}) ([]domain.ContentBlock, error) {
	sol, solPresent, err := getIntArg(args, "sol")
	if err != nil {
		return nil, err
	}
	earthDate, err := getStringArg(args, "earth_date")
	if err != nil {
		return nil, err
	}
	camera, err := getStringArg(args, "camera")
	if err != nil {
		return nil, err
	}

	var query domain.MarsQuery
	switch {
	case solPresent:
		if sol < 0 {
			return nil, errors.New("sol must be a non-negative integer")
		}
		query.Sol = &sol
	case earthDate != "":
		if !isValidDate(earthDate) {
			return nil, errors.New("earth_date must be in YYYY-MM-DD format")
		}
		query.EarthDate = earthDate
	default:
		fallback := defaultMarsSol
		query.Sol = &fallback
	}

	if camera != "" {
		upper := strings.ToUpper(camera)
		if !domain.IsValidMarsCamera(upper) {
			return nil, fmt.Errorf("Invalid camera '%s'. Valid options: %s",
				camera, strings.Join(domain.ValidMarsCameras, ", "))
		}
		query.Camera = upper
	}

	photos, err := a.client.GetMarsPhotos(ctx, query)
	if err != nil {
		return nil, err
	}

	if len(photos.Photos) == 0 {
		return []domain.ContentBlock{
			domain.TextContent("No images are found for the specified parameters"),
		}, nil
	}

	first := photos.Photos[0]
	var b strings.Builder
	b.WriteString("Mars Rover Image Found!\n")
	fmt.Fprintf(&b, "Image URL: %s\n", first.ImgSrc)
	fmt.Fprintf(&b, "Camera: %s (%s)\n", first.Camera.FullName, first.Camera.Name)
	fmt.Fprintf(&b, "Earth Date: %s\n", first.EarthDate)
	fmt.Fprintf(&b, "Sol: %d\n", first.Sol)
	fmt.Fprintf(&b, "Total photos available: %d", len(photos.Photos))

	return []domain.ContentBlock{domain.TextContent(b.String())}, nil
}
